package codegen

import (
	"fmt"

	"github.com/relix-lang/relix/internal/ir"
)

// renderMacroDef emits a translated macro definition as a defmacrop whose
// body evaluates to a quoted expression.
//
// Ordering inside the body: stringification statements first (they bind the
// literal textual form of captured variables before the quoted result is
// assembled), then either a single quote block or the guard-context split.
// The guard split tests Macro.Env.in_guard? at expansion time, because a
// use site inside a guard only admits the restricted expression grammar and
// needs the alternate body.
func (r *Renderer) renderMacroDef(ctx Context, f *ir.MacroDef) (Context, error) {
	ctx = r.open(ctx, KindMacro)
	r.comments(ctx, f.Comments)

	if f.TrackingAttr != "" {
		r.line(ctx, "@"+f.TrackingAttr+" true")
	}
	if f.DispatchAttr != "" {
		r.line(ctx, "@"+f.DispatchAttr+" "+atomText(f.Name))
	}

	sig, err := UnparseSignature(f.Signature)
	if err != nil {
		return ctx, err
	}
	r.lines(ctx, "defmacrop "+sig+" do")

	body := ctx
	body.Indent++
	for _, s := range f.Stringifications {
		r.line(body, fmt.Sprintf("%s = Macro.to_string(quote do: unquote(%s))", s.StrName, s.Var))
	}

	if f.GuardBody != nil {
		r.line(body, "if Macro.Env.in_guard?(__CALLER__) do")
		inner := body
		inner.Indent++
		if err := r.quoteBlock(inner, f.GuardBody); err != nil {
			return ctx, err
		}
		r.line(body, "else")
		if err := r.quoteBlock(inner, f.Body); err != nil {
			return ctx, err
		}
		r.line(body, "end")
	} else {
		if err := r.quoteBlock(body, f.Body); err != nil {
			return ctx, err
		}
	}

	r.line(ctx, "end")
	return ctx, nil
}

// quoteBlock writes `quote do ... end` around the unparsed expression.
func (r *Renderer) quoteBlock(ctx Context, e ir.Expr) error {
	text, err := Unparse(e)
	if err != nil {
		return err
	}
	r.line(ctx, "quote do")
	inner := ctx
	inner.Indent++
	r.lines(inner, text)
	r.line(ctx, "end")
	return nil
}
