package ir

import "fmt"

// EncodeModule converts a Module to the plain map form used for both
// content addressing (see hash.go) and the loader's document format.
// The encoding is a pure function of the Module value: encoding the same
// module twice yields equal maps, which MarshalCanonical turns into
// byte-identical JSON.
//
// Empty optional fields are omitted so that hand-written IR documents and
// encoded modules agree on the same shape.
func EncodeModule(m *Module) (map[string]any, error) {
	doc := map[string]any{}
	if m.Name != "" {
		doc["name"] = m.Name
	}
	if len(m.FileComments) > 0 {
		doc["file_comments"] = stringsToAny(m.FileComments)
	}
	if len(m.Comments) > 0 {
		doc["comments"] = stringsToAny(m.Comments)
	}
	forms := make([]any, len(m.Forms))
	for i, f := range m.Forms {
		enc, err := EncodeForm(f)
		if err != nil {
			return nil, fmt.Errorf("forms[%d]: %w", i, err)
		}
		forms[i] = enc
	}
	doc["forms"] = forms
	return doc, nil
}

// EncodeForm converts a single form to its map encoding. The "kind" key
// discriminates the variant.
func EncodeForm(f Form) (map[string]any, error) {
	switch form := f.(type) {
	case *HeaderPrelude:
		doc := map[string]any{"kind": "header_prelude"}
		if form.UseBitwise {
			doc["use_bitwise"] = true
		}
		if len(form.MacroFlags) > 0 {
			flags := make([]any, len(form.MacroFlags))
			for i, fl := range form.MacroFlags {
				flags[i] = map[string]any{"macro": fl.MacroName, "flag_attr": fl.FlagAttr}
			}
			doc["macro_flags"] = flags
		}
		if len(form.RecordFieldAttrs) > 0 {
			doc["record_field_attrs"] = stringsToAny(form.RecordFieldAttrs)
		}
		if form.NeedRecordHelpers {
			doc["record_helpers"] = true
		}
		if form.DispatchMacro != "" {
			doc["dispatch_macro"] = form.DispatchMacro
		}
		addComments(doc, form.Comments)
		return doc, nil

	case *Comment:
		return map[string]any{"kind": "comment", "lines": stringsToAny(form.Lines)}, nil

	case *Function:
		doc := map[string]any{"kind": "function", "public": form.Public}
		clauses := make([]any, len(form.Clauses))
		for i, c := range form.Clauses {
			sig, err := EncodeExpr(c.Signature)
			if err != nil {
				return nil, fmt.Errorf("clauses[%d].signature: %w", i, err)
			}
			body, err := encodeExprs(c.Body)
			if err != nil {
				return nil, fmt.Errorf("clauses[%d].body: %w", i, err)
			}
			cdoc := map[string]any{"signature": sig, "body": body}
			addComments(cdoc, c.Comments)
			clauses[i] = cdoc
		}
		doc["clauses"] = clauses
		if len(form.Specs) > 0 {
			specs, err := encodeExprs(form.Specs)
			if err != nil {
				return nil, fmt.Errorf("specs: %w", err)
			}
			doc["specs"] = specs
		}
		addComments(doc, form.Comments)
		return doc, nil

	case *Attribute:
		value, err := EncodeExpr(form.Value)
		if err != nil {
			return nil, fmt.Errorf("attribute %s: %w", form.Name, err)
		}
		doc := map[string]any{"kind": "attribute", "name": form.Name, "value": value}
		if form.Register {
			doc["register"] = true
		}
		addComments(doc, form.Comments)
		return doc, nil

	case *Directive:
		doc := map[string]any{"kind": "directive", "directive": string(form.Kind)}
		if form.FlagAttr != "" {
			doc["flag_attr"] = form.FlagAttr
		}
		addComments(doc, form.Comments)
		return doc, nil

	case *Import:
		mod, err := EncodeExpr(form.Module)
		if err != nil {
			return nil, fmt.Errorf("import module: %w", err)
		}
		funcs := make([]any, len(form.Funcs))
		for i, fn := range form.Funcs {
			funcs[i] = map[string]any{"name": fn.Name, "arity": fn.Arity}
		}
		doc := map[string]any{"kind": "import", "module": mod, "funcs": funcs}
		addComments(doc, form.Comments)
		return doc, nil

	case *RecordDef:
		tag, err := EncodeExpr(form.Tag)
		if err != nil {
			return nil, fmt.Errorf("record %s tag: %w", form.Macro, err)
		}
		fields := make([]any, len(form.Fields))
		for i, fl := range form.Fields {
			fdoc := map[string]any{"name": fl.Name}
			if fl.Default != nil {
				def, err := EncodeExpr(fl.Default)
				if err != nil {
					return nil, fmt.Errorf("record %s field %s: %w", form.Macro, fl.Name, err)
				}
				fdoc["default"] = def
			}
			fields[i] = fdoc
		}
		doc := map[string]any{
			"kind":        "record",
			"tag":         tag,
			"macro":       form.Macro,
			"fields_attr": form.FieldsAttr,
			"fields":      fields,
		}
		addComments(doc, form.Comments)
		return doc, nil

	case *TypeDecl:
		sig, err := EncodeExpr(form.Signature)
		if err != nil {
			return nil, fmt.Errorf("type signature: %w", err)
		}
		def, err := EncodeExpr(form.Definition)
		if err != nil {
			return nil, fmt.Errorf("type definition: %w", err)
		}
		doc := map[string]any{
			"kind":       "type_decl",
			"type_kind":  string(form.Kind),
			"signature":  sig,
			"definition": def,
		}
		addComments(doc, form.Comments)
		return doc, nil

	case *SpecDecl:
		specs, err := encodeExprs(form.Specs)
		if err != nil {
			return nil, fmt.Errorf("spec_decl: %w", err)
		}
		doc := map[string]any{"kind": "spec_decl", "spec_kind": string(form.Kind), "specs": specs}
		addComments(doc, form.Comments)
		return doc, nil

	case *MacroDef:
		sig, err := EncodeExpr(form.Signature)
		if err != nil {
			return nil, fmt.Errorf("macro %s signature: %w", form.Name, err)
		}
		body, err := EncodeExpr(form.Body)
		if err != nil {
			return nil, fmt.Errorf("macro %s body: %w", form.Name, err)
		}
		doc := map[string]any{"kind": "macro_def", "name": form.Name, "signature": sig, "body": body}
		if form.TrackingAttr != "" {
			doc["tracking_attr"] = form.TrackingAttr
		}
		if form.DispatchAttr != "" {
			doc["dispatch_attr"] = form.DispatchAttr
		}
		if len(form.Stringifications) > 0 {
			strs := make([]any, len(form.Stringifications))
			for i, s := range form.Stringifications {
				strs[i] = map[string]any{"var": s.Var, "str_name": s.StrName}
			}
			doc["stringify"] = strs
		}
		if form.GuardBody != nil {
			guard, err := EncodeExpr(form.GuardBody)
			if err != nil {
				return nil, fmt.Errorf("macro %s guard body: %w", form.Name, err)
			}
			doc["guard_body"] = guard
		}
		addComments(doc, form.Comments)
		return doc, nil

	default:
		return nil, fmt.Errorf("unsupported form type: %T", f)
	}
}

// EncodeExpr converts an expression tree to its single-key map encoding.
func EncodeExpr(e Expr) (any, error) {
	switch expr := e.(type) {
	case Atom:
		return map[string]any{"atom": string(expr)}, nil
	case Int:
		return map[string]any{"int": int64(expr)}, nil
	case Str:
		return map[string]any{"str": string(expr)}, nil
	case Var:
		return map[string]any{"var": string(expr)}, nil
	case CharLit:
		return map[string]any{"char": int64(expr)}, nil
	case Call:
		args, err := encodeExprs(expr.Args)
		if err != nil {
			return nil, fmt.Errorf("call %s: %w", expr.Target, err)
		}
		return map[string]any{"call": map[string]any{"target": expr.Target, "args": args}}, nil
	case BinOp:
		left, err := EncodeExpr(expr.Left)
		if err != nil {
			return nil, fmt.Errorf("binop %s left: %w", expr.Op, err)
		}
		right, err := EncodeExpr(expr.Right)
		if err != nil {
			return nil, fmt.Errorf("binop %s right: %w", expr.Op, err)
		}
		return map[string]any{"binop": map[string]any{"op": expr.Op, "left": left, "right": right}}, nil
	case List:
		elems, err := encodeExprs(expr)
		if err != nil {
			return nil, err
		}
		return map[string]any{"list": elems}, nil
	case Tuple:
		elems, err := encodeExprs(expr)
		if err != nil {
			return nil, err
		}
		return map[string]any{"tuple": elems}, nil
	case KeywordList:
		pairs := make([]any, len(expr))
		for i, p := range expr {
			val, err := EncodeExpr(p.Value)
			if err != nil {
				return nil, fmt.Errorf("kw %s: %w", p.Key, err)
			}
			pairs[i] = map[string]any{"key": p.Key, "value": val}
		}
		return map[string]any{"kw": pairs}, nil
	default:
		return nil, fmt.Errorf("unsupported expr type: %T", e)
	}
}

func encodeExprs(exprs []Expr) ([]any, error) {
	out := make([]any, len(exprs))
	for i, e := range exprs {
		enc, err := EncodeExpr(e)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		out[i] = enc
	}
	return out, nil
}

func stringsToAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

func addComments(doc map[string]any, comments []string) {
	if len(comments) > 0 {
		doc["comments"] = stringsToAny(comments)
	}
}
