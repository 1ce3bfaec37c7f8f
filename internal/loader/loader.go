package loader

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/relix-lang/relix/internal/ir"
)

// LoadFile reads and decodes one IR document from disk.
func LoadFile(path string) (*ir.Module, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load module: %w", err)
	}
	return LoadBytes(data, path)
}

// LoadBytes decodes one IR document. The filename is used in error
// positions only.
func LoadBytes(data []byte, filename string) (*ir.Module, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, formatCUEError("module", err)
	}
	return DecodeModule(v)
}

// DecodeModule maps a CUE value onto an ir.Module. The value's shape must
// mirror ir.EncodeModule: optional name/file_comments/comments plus the
// ordered forms list.
func DecodeModule(v cue.Value) (*ir.Module, error) {
	m := &ir.Module{}
	var err error

	if m.Name, err = optString(v, "name"); err != nil {
		return nil, err
	}
	if m.FileComments, err = optStrings(v, "file_comments"); err != nil {
		return nil, err
	}
	if m.Comments, err = optStrings(v, "comments"); err != nil {
		return nil, err
	}

	formsVal := v.LookupPath(cue.ParsePath("forms"))
	if !formsVal.Exists() {
		return nil, &LoadError{Field: "forms", Message: "forms is required", Pos: v.Pos()}
	}
	iter, err := formsVal.List()
	if err != nil {
		return nil, formatCUEError("forms", err)
	}
	for i := 0; iter.Next(); i++ {
		form, err := decodeForm(iter.Value())
		if err != nil {
			return nil, fmt.Errorf("forms[%d]: %w", i, err)
		}
		m.Forms = append(m.Forms, form)
	}
	return m, nil
}

func decodeForm(v cue.Value) (ir.Form, error) {
	kind, err := reqString(v, "kind")
	if err != nil {
		return nil, err
	}
	switch kind {
	case "header_prelude":
		return decodePrelude(v)
	case "comment":
		lines, err := optStrings(v, "lines")
		if err != nil {
			return nil, err
		}
		return &ir.Comment{Lines: lines}, nil
	case "function":
		return decodeFunction(v)
	case "attribute":
		return decodeAttribute(v)
	case "directive":
		return decodeDirective(v)
	case "import":
		return decodeImport(v)
	case "record":
		return decodeRecord(v)
	case "type_decl":
		return decodeTypeDecl(v)
	case "spec_decl":
		return decodeSpecDecl(v)
	case "macro_def":
		return decodeMacroDef(v)
	default:
		return nil, &LoadError{
			Field:   "kind",
			Message: fmt.Sprintf("unknown form kind %q", kind),
			Pos:     v.Pos(),
		}
	}
}

func decodePrelude(v cue.Value) (*ir.HeaderPrelude, error) {
	f := &ir.HeaderPrelude{}
	var err error
	if f.UseBitwise, err = optBool(v, "use_bitwise"); err != nil {
		return nil, err
	}
	if f.NeedRecordHelpers, err = optBool(v, "record_helpers"); err != nil {
		return nil, err
	}
	if f.RecordFieldAttrs, err = optStrings(v, "record_field_attrs"); err != nil {
		return nil, err
	}
	if f.DispatchMacro, err = optString(v, "dispatch_macro"); err != nil {
		return nil, err
	}
	if f.Comments, err = optStrings(v, "comments"); err != nil {
		return nil, err
	}

	flagsVal := v.LookupPath(cue.ParsePath("macro_flags"))
	if flagsVal.Exists() {
		iter, err := flagsVal.List()
		if err != nil {
			return nil, formatCUEError("macro_flags", err)
		}
		for iter.Next() {
			fv := iter.Value()
			macro, err := reqString(fv, "macro")
			if err != nil {
				return nil, err
			}
			attr, err := reqString(fv, "flag_attr")
			if err != nil {
				return nil, err
			}
			f.MacroFlags = append(f.MacroFlags, ir.MacroFlag{MacroName: macro, FlagAttr: attr})
		}
	}
	return f, nil
}

func decodeFunction(v cue.Value) (*ir.Function, error) {
	f := &ir.Function{}
	var err error
	if f.Public, err = optBool(v, "public"); err != nil {
		return nil, err
	}
	if f.Comments, err = optStrings(v, "comments"); err != nil {
		return nil, err
	}
	if f.Specs, err = optExprs(v, "specs"); err != nil {
		return nil, err
	}

	clausesVal := v.LookupPath(cue.ParsePath("clauses"))
	if !clausesVal.Exists() {
		return nil, &LoadError{Field: "clauses", Message: "function requires clauses", Pos: v.Pos()}
	}
	iter, err := clausesVal.List()
	if err != nil {
		return nil, formatCUEError("clauses", err)
	}
	for i := 0; iter.Next(); i++ {
		cv := iter.Value()
		sig, err := reqExpr(cv, "signature")
		if err != nil {
			return nil, fmt.Errorf("clauses[%d]: %w", i, err)
		}
		body, err := optExprs(cv, "body")
		if err != nil {
			return nil, fmt.Errorf("clauses[%d]: %w", i, err)
		}
		comments, err := optStrings(cv, "comments")
		if err != nil {
			return nil, fmt.Errorf("clauses[%d]: %w", i, err)
		}
		f.Clauses = append(f.Clauses, ir.Clause{Signature: sig, Body: body, Comments: comments})
	}
	return f, nil
}

func decodeAttribute(v cue.Value) (*ir.Attribute, error) {
	f := &ir.Attribute{}
	var err error
	if f.Name, err = reqString(v, "name"); err != nil {
		return nil, err
	}
	if f.Value, err = reqExpr(v, "value"); err != nil {
		return nil, err
	}
	if f.Register, err = optBool(v, "register"); err != nil {
		return nil, err
	}
	if f.Comments, err = optStrings(v, "comments"); err != nil {
		return nil, err
	}
	return f, nil
}

func decodeDirective(v cue.Value) (*ir.Directive, error) {
	kind, err := reqString(v, "directive")
	if err != nil {
		return nil, err
	}
	switch ir.DirectiveKind(kind) {
	case ir.DirectiveUndef, ir.DirectiveIfdef, ir.DirectiveIfndef, ir.DirectiveElse, ir.DirectiveEndif:
	default:
		return nil, &LoadError{
			Field:   "directive",
			Message: fmt.Sprintf("unknown directive kind %q", kind),
			Pos:     v.Pos(),
		}
	}
	f := &ir.Directive{Kind: ir.DirectiveKind(kind)}
	if f.FlagAttr, err = optString(v, "flag_attr"); err != nil {
		return nil, err
	}
	if f.Comments, err = optStrings(v, "comments"); err != nil {
		return nil, err
	}
	return f, nil
}

func decodeImport(v cue.Value) (*ir.Import, error) {
	f := &ir.Import{}
	var err error
	if f.Module, err = reqExpr(v, "module"); err != nil {
		return nil, err
	}
	if f.Comments, err = optStrings(v, "comments"); err != nil {
		return nil, err
	}

	funcsVal := v.LookupPath(cue.ParsePath("funcs"))
	if funcsVal.Exists() {
		iter, err := funcsVal.List()
		if err != nil {
			return nil, formatCUEError("funcs", err)
		}
		for iter.Next() {
			fv := iter.Value()
			name, err := reqString(fv, "name")
			if err != nil {
				return nil, err
			}
			arity, err := reqInt(fv, "arity")
			if err != nil {
				return nil, err
			}
			f.Funcs = append(f.Funcs, ir.FuncSig{Name: name, Arity: arity})
		}
	}
	return f, nil
}

func decodeRecord(v cue.Value) (*ir.RecordDef, error) {
	f := &ir.RecordDef{}
	var err error
	if f.Tag, err = reqExpr(v, "tag"); err != nil {
		return nil, err
	}
	if f.Macro, err = reqString(v, "macro"); err != nil {
		return nil, err
	}
	if f.FieldsAttr, err = reqString(v, "fields_attr"); err != nil {
		return nil, err
	}
	if f.Comments, err = optStrings(v, "comments"); err != nil {
		return nil, err
	}

	fieldsVal := v.LookupPath(cue.ParsePath("fields"))
	if fieldsVal.Exists() {
		iter, err := fieldsVal.List()
		if err != nil {
			return nil, formatCUEError("fields", err)
		}
		for iter.Next() {
			fv := iter.Value()
			name, err := reqString(fv, "name")
			if err != nil {
				return nil, err
			}
			field := ir.RecordField{Name: name}
			defVal := fv.LookupPath(cue.ParsePath("default"))
			if defVal.Exists() {
				def, err := decodeExpr(defVal)
				if err != nil {
					return nil, fmt.Errorf("field %s default: %w", name, err)
				}
				field.Default = def
			}
			f.Fields = append(f.Fields, field)
		}
	}
	return f, nil
}

func decodeTypeDecl(v cue.Value) (*ir.TypeDecl, error) {
	kind, err := reqString(v, "type_kind")
	if err != nil {
		return nil, err
	}
	if kind != string(ir.TypeKindType) && kind != string(ir.TypeKindOpaque) {
		return nil, &LoadError{
			Field:   "type_kind",
			Message: fmt.Sprintf("unknown type kind %q", kind),
			Pos:     v.Pos(),
		}
	}
	f := &ir.TypeDecl{Kind: ir.TypeDeclKind(kind)}
	if f.Signature, err = reqExpr(v, "signature"); err != nil {
		return nil, err
	}
	if f.Definition, err = reqExpr(v, "definition"); err != nil {
		return nil, err
	}
	if f.Comments, err = optStrings(v, "comments"); err != nil {
		return nil, err
	}
	return f, nil
}

func decodeSpecDecl(v cue.Value) (*ir.SpecDecl, error) {
	kind, err := reqString(v, "spec_kind")
	if err != nil {
		return nil, err
	}
	if kind != string(ir.SpecKindSpec) && kind != string(ir.SpecKindCallback) {
		return nil, &LoadError{
			Field:   "spec_kind",
			Message: fmt.Sprintf("unknown spec kind %q", kind),
			Pos:     v.Pos(),
		}
	}
	f := &ir.SpecDecl{Kind: ir.SpecDeclKind(kind)}
	if f.Specs, err = optExprs(v, "specs"); err != nil {
		return nil, err
	}
	if f.Comments, err = optStrings(v, "comments"); err != nil {
		return nil, err
	}
	return f, nil
}

func decodeMacroDef(v cue.Value) (*ir.MacroDef, error) {
	f := &ir.MacroDef{}
	var err error
	if f.Name, err = reqString(v, "name"); err != nil {
		return nil, err
	}
	if f.Signature, err = reqExpr(v, "signature"); err != nil {
		return nil, err
	}
	if f.Body, err = reqExpr(v, "body"); err != nil {
		return nil, err
	}
	if f.TrackingAttr, err = optString(v, "tracking_attr"); err != nil {
		return nil, err
	}
	if f.DispatchAttr, err = optString(v, "dispatch_attr"); err != nil {
		return nil, err
	}
	if f.Comments, err = optStrings(v, "comments"); err != nil {
		return nil, err
	}

	guardVal := v.LookupPath(cue.ParsePath("guard_body"))
	if guardVal.Exists() {
		if f.GuardBody, err = decodeExpr(guardVal); err != nil {
			return nil, fmt.Errorf("guard_body: %w", err)
		}
	}

	strsVal := v.LookupPath(cue.ParsePath("stringify"))
	if strsVal.Exists() {
		iter, err := strsVal.List()
		if err != nil {
			return nil, formatCUEError("stringify", err)
		}
		for iter.Next() {
			sv := iter.Value()
			varName, err := reqString(sv, "var")
			if err != nil {
				return nil, err
			}
			strName, err := reqString(sv, "str_name")
			if err != nil {
				return nil, err
			}
			f.Stringifications = append(f.Stringifications, ir.Stringification{Var: varName, StrName: strName})
		}
	}
	return f, nil
}
