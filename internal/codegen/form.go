package codegen

import (
	"fmt"
	"strings"

	"github.com/relix-lang/relix/internal/ir"
)

// renderForm dispatches one form to its rendering rule. The switch is total
// over the sealed Form variants; reaching the default arm means the IR
// contract was violated upstream and the whole render aborts.
func (r *Renderer) renderForm(ctx Context, f ir.Form) (Context, error) {
	switch form := f.(type) {
	case *ir.HeaderPrelude:
		return r.renderPrelude(ctx, form)
	case *ir.Comment:
		return r.renderComment(ctx, form)
	case *ir.Function:
		return r.renderFunction(ctx, form)
	case *ir.Attribute:
		return r.renderAttribute(ctx, form)
	case *ir.Directive:
		return r.renderDirective(ctx, form)
	case *ir.Import:
		return r.renderImport(ctx, form)
	case *ir.RecordDef:
		return r.renderRecord(ctx, form)
	case *ir.TypeDecl:
		return r.renderTypeDecl(ctx, form)
	case *ir.SpecDecl:
		return r.renderSpecDecl(ctx, form)
	case *ir.MacroDef:
		return r.renderMacroDef(ctx, form)
	default:
		return ctx, renderErrorf(ErrCodeUnrecognizedForm, "unrecognized form type %T", f)
	}
}

func (r *Renderer) renderComment(ctx Context, f *ir.Comment) (Context, error) {
	ctx = r.open(ctx, KindComment)
	r.comments(ctx, f.Lines)
	return ctx, nil
}

func (r *Renderer) renderFunction(ctx Context, f *ir.Function) (Context, error) {
	if len(f.Comments) > 0 {
		ctx = r.open(ctx, KindFuncHeader)
		r.comments(ctx, f.Comments)
	}
	if len(f.Specs) > 0 {
		ctx = r.open(ctx, KindFuncSpecs)
		for _, spec := range f.Specs {
			text, err := Unparse(spec)
			if err != nil {
				return ctx, err
			}
			r.prefixed(ctx, "@spec ", text)
		}
	}

	decl := "defp"
	if f.Public {
		decl = "def"
	}
	for i, clause := range f.Clauses {
		kind := KindFuncClause
		if i == 0 {
			kind = KindFuncClauseF
		}
		ctx = r.open(ctx, kind)
		if len(clause.Comments) > 0 {
			r.comments(ctx, clause.Comments)
		}
		sig, err := UnparseSignature(clause.Signature)
		if err != nil {
			return ctx, err
		}
		r.lines(ctx, decl+" "+sig+" do")
		body := ctx
		body.Indent++
		for _, expr := range clause.Body {
			text, err := Unparse(expr)
			if err != nil {
				return ctx, err
			}
			r.lines(body, text)
		}
		r.line(ctx, "end")
	}
	return ctx, nil
}

func (r *Renderer) renderAttribute(ctx Context, f *ir.Attribute) (Context, error) {
	ctx = r.open(ctx, KindAttr)
	r.comments(ctx, f.Comments)
	if f.Register {
		r.line(ctx, fmt.Sprintf(
			"Module.register_attribute __MODULE__, %s, persist: true, accumulate: true",
			atomText(f.Name)))
	}
	value, err := Unparse(f.Value)
	if err != nil {
		return ctx, err
	}
	r.prefixed(ctx, "@"+f.Name+" ", value)
	return ctx, nil
}

func (r *Renderer) renderDirective(ctx Context, f *ir.Directive) (Context, error) {
	switch f.Kind {
	case ir.DirectiveUndef, ir.DirectiveIfdef, ir.DirectiveIfndef:
		if f.FlagAttr == "" {
			return ctx, renderErrorf(ErrCodeMissingFlag,
				"%s directive carries no flag attribute", f.Kind)
		}
	}

	switch f.Kind {
	case ir.DirectiveUndef:
		ctx = r.open(ctx, KindDirective)
		r.comments(ctx, f.Comments)
		r.line(ctx, "@"+f.FlagAttr+" false")
	case ir.DirectiveIfdef:
		ctx = r.open(ctx, KindDirective)
		r.comments(ctx, f.Comments)
		r.line(ctx, "if @"+f.FlagAttr+" do")
		ctx.Indent++
	case ir.DirectiveIfndef:
		ctx = r.open(ctx, KindDirective)
		r.comments(ctx, f.Comments)
		r.line(ctx, "if !@"+f.FlagAttr+" do")
		ctx.Indent++
	case ir.DirectiveElse:
		if ctx.Indent == 0 {
			return ctx, renderErrorf(ErrCodeUnbalancedDirective, "else with no open conditional")
		}
		ctx = r.open(ctx, KindDirective)
		outer := ctx
		outer.Indent--
		r.comments(outer, f.Comments)
		r.line(outer, "else")
	case ir.DirectiveEndif:
		if ctx.Indent == 0 {
			return ctx, renderErrorf(ErrCodeUnbalancedDirective, "endif with no open conditional")
		}
		ctx.Indent--
		ctx = r.open(ctx, KindDirective)
		r.comments(ctx, f.Comments)
		r.line(ctx, "end")
	default:
		return ctx, renderErrorf(ErrCodeUnrecognizedForm, "unrecognized directive kind %q", f.Kind)
	}
	return ctx, nil
}

func (r *Renderer) renderImport(ctx Context, f *ir.Import) (Context, error) {
	ctx = r.open(ctx, KindImport)
	r.comments(ctx, f.Comments)
	module, err := Unparse(f.Module)
	if err != nil {
		return ctx, err
	}
	sigs := make([]string, len(f.Funcs))
	for i, fn := range f.Funcs {
		sigs[i] = fmt.Sprintf("%s: %d", fn.Name, fn.Arity)
	}
	r.line(ctx, "import "+module+", only: ["+strings.Join(sigs, ", ")+"]")
	return ctx, nil
}

func (r *Renderer) renderRecord(ctx Context, f *ir.RecordDef) (Context, error) {
	ctx = r.open(ctx, KindRecord)
	r.comments(ctx, f.Comments)

	names := make([]string, len(f.Fields))
	pairs := make([]string, len(f.Fields))
	for i, field := range f.Fields {
		names[i] = atomText(field.Name)
		def := ":undefined"
		if field.Default != nil {
			text, err := Unparse(field.Default)
			if err != nil {
				return ctx, err
			}
			def = text
		}
		pairs[i] = field.Name + ": " + def
	}
	tag, err := Unparse(f.Tag)
	if err != nil {
		return ctx, err
	}

	// The field-name attribute and the defrecordp sit on adjacent lines:
	// the helper macros resolve fields through the attribute at expansion
	// time, so the two are one unit.
	r.line(ctx, "@"+f.FieldsAttr+" ["+strings.Join(names, ", ")+"]")
	r.line(ctx, fmt.Sprintf("Record.defrecordp %s, %s, [%s]",
		atomText(f.Macro), tag, strings.Join(pairs, ", ")))
	return ctx, nil
}

func (r *Renderer) renderTypeDecl(ctx Context, f *ir.TypeDecl) (Context, error) {
	ctx = r.open(ctx, KindTypeDecl)
	r.comments(ctx, f.Comments)
	attr := "@type"
	if f.Kind == ir.TypeKindOpaque {
		attr = "@opaque"
	}
	sig, err := Unparse(f.Signature)
	if err != nil {
		return ctx, err
	}
	def, err := Unparse(f.Definition)
	if err != nil {
		return ctx, err
	}
	r.lines(ctx, attr+" "+sig+" :: "+def)
	return ctx, nil
}

func (r *Renderer) renderSpecDecl(ctx Context, f *ir.SpecDecl) (Context, error) {
	ctx = r.open(ctx, KindSpecDecl)
	r.comments(ctx, f.Comments)
	attr := "@spec"
	if f.Kind == ir.SpecKindCallback {
		attr = "@callback"
	}
	for _, spec := range f.Specs {
		text, err := Unparse(spec)
		if err != nil {
			return ctx, err
		}
		r.prefixed(ctx, attr+" ", text)
	}
	return ctx, nil
}
