package codegen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/relix-lang/relix/internal/ir"
	"github.com/relix-lang/relix/internal/testutil"
)

func TestRenderMacroDef_SimpleBody(t *testing.T) {
	m := &ir.MacroDef{
		Name:      "PI",
		Signature: testutil.Sig("erlmacro_PI"),
		Body:      ir.Int(3),
	}
	want := strings.Join([]string{
		"defmacrop erlmacro_PI() do",
		"  quote do",
		"    3",
		"  end",
		"end",
		"",
	}, "\n")
	assert.Equal(t, want, renderForms(t, m))
}

// TestRenderMacroDef_GuardSplit covers the full macro shape: tracking and
// dispatch attributes, a stringification binding, and the guard-context
// split on Macro.Env.in_guard?.
func TestRenderMacroDef_GuardSplit(t *testing.T) {
	m := &ir.MacroDef{
		Name:         "INC",
		Signature:    testutil.Sig("erlmacro_INC", ir.Var("x")),
		TrackingAttr: "defines_INC",
		DispatchAttr: "erlmacro",
		Stringifications: []ir.Stringification{
			{Var: "x", StrName: "str_x"},
		},
		Body:      ir.BinOp{Op: "+", Left: ir.Var("x"), Right: ir.Int(1)},
		GuardBody: ir.BinOp{Op: "+", Left: ir.Var("x"), Right: ir.Int(1)},
	}
	want := strings.Join([]string{
		"@defines_INC true",
		"@erlmacro :INC",
		"defmacrop erlmacro_INC(x) do",
		"  str_x = Macro.to_string(quote do: unquote(x))",
		"  if Macro.Env.in_guard?(__CALLER__) do",
		"    quote do",
		"      x + 1",
		"    end",
		"  else",
		"    quote do",
		"      x + 1",
		"    end",
		"  end",
		"end",
		"",
	}, "\n")
	assert.Equal(t, want, renderForms(t, m))
}

func TestRenderMacroDef_SignatureCorrection(t *testing.T) {
	// A macro whose signature carries a do-style keyword tail goes through
	// the same disambiguation as a function head.
	m := &ir.MacroDef{
		Name: "WRAP",
		Signature: testutil.Sig("erlmacro_WRAP",
			ir.Var("x"),
			ir.KeywordList{testutil.Pair("do", ir.Atom("ok"))},
		),
		Body: ir.Var("x"),
	}
	out := renderForms(t, m)
	assert.True(t, strings.HasPrefix(out, "defmacrop erlmacro_WRAP(x, do: :ok) do\n"), out)
}
