package codegen

import (
	"fmt"
	"strings"

	"github.com/relix-lang/relix/internal/ir"
)

// renderPrelude emits the synthesized header forms: the Bitwise operator
// import, record support, macro-presence flag initializers, the record
// size/index helper macros, and the unknown-macro dispatcher. Each piece is
// its own line group; consecutive flag initializers stack tightly like any
// attribute run.
func (r *Renderer) renderPrelude(ctx Context, f *ir.HeaderPrelude) (Context, error) {
	if len(f.Comments) > 0 {
		ctx = r.open(ctx, KindComment)
		r.comments(ctx, f.Comments)
	}

	if f.UseBitwise {
		ctx = r.open(ctx, KindPrelude)
		r.line(ctx, "use Bitwise, only_operators: true")
	}
	if len(f.RecordFieldAttrs) > 0 {
		ctx = r.open(ctx, KindPrelude)
		r.line(ctx, "require Record")
	}

	for _, flag := range f.MacroFlags {
		ctx = r.open(ctx, KindAttr)
		key := ctx.Config.DefinePrefix + flag.MacroName
		if ctx.Config.DefinesFrom != "" {
			r.line(ctx, fmt.Sprintf("@%s Application.get_env(%s, %s) != nil",
				flag.FlagAttr, atomText(ctx.Config.DefinesFrom), atomText(key)))
		} else {
			r.line(ctx, fmt.Sprintf("@%s System.get_env(%q) != nil", flag.FlagAttr, key))
		}
	}

	if f.NeedRecordHelpers {
		ctx = r.open(ctx, KindMacro)
		r.lines(ctx, recordSizeHelper)
		ctx = r.open(ctx, KindMacro)
		r.lines(ctx, recordIndexHelper)
	}

	if f.DispatchMacro != "" {
		for _, clause := range dispatchClauses {
			ctx = r.open(ctx, KindMacro)
			r.lines(ctx, strings.ReplaceAll(clause, "$NAME", f.DispatchMacro))
		}
	}
	return ctx, nil
}

// recordSizeHelper expands to 1 + the number of fields stored in the given
// record attribute, resolved at expansion time through the caller's module.
const recordSizeHelper = `defmacrop erlrecordsize(data_attr) do
  fields = Module.get_attribute(__CALLER__.module, data_attr)
  quote do
    unquote(1 + length(fields))
  end
end`

// recordIndexHelper expands to 1 + the position of the field in the record
// attribute's stored list, or 0 when the field is absent.
const recordIndexHelper = `defmacrop erlrecordindex(data_attr, field) do
  fields = Module.get_attribute(__CALLER__.module, data_attr)
  index = Enum.find_index(fields, fn f -> f == field end)
  quote do
    unquote(if index == nil, do: 0, else: index + 1)
  end
end`

// dispatchClauses realize unknown-macro fallback in a single generated
// dispatcher: a plain identifier resolves through the same-named module
// attribute, anything else is expanded as a macro first.
var dispatchClauses = []string{
	`defmacrop $NAME(name, args) when is_atom(name) do
  impl = Module.get_attribute(__CALLER__.module, name)
  quote do
    unquote(impl)(unquote_splicing(args))
  end
end`,
	`defmacrop $NAME(macro, args) do
  impl = Macro.expand(macro, __CALLER__)
  quote do
    unquote(impl)(unquote_splicing(args))
  end
end`,
}
