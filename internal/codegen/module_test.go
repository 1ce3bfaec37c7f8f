package codegen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relix-lang/relix/internal/ir"
	"github.com/relix-lang/relix/internal/testutil"
)

func render(t *testing.T, m *ir.Module) string {
	t.Helper()
	out, err := RenderString(m, Config{})
	require.NoError(t, err)
	return out
}

func TestRender_MinimalModule(t *testing.T) {
	want := strings.Join([]string{
		"defmodule :M do",
		"  @x 1",
		"",
		"  def f() do",
		"    :ok",
		"  end",
		"end",
		"",
	}, "\n")
	assert.Equal(t, want, render(t, testutil.MinimalModule()))
}

func TestRender_IsDeterministic(t *testing.T) {
	m := testutil.MinimalModule()
	first := render(t, m)
	for i := 0; i < 3; i++ {
		assert.Equal(t, first, render(t, m))
	}

	var b strings.Builder
	require.NoError(t, Render(m, Config{}, &b))
	assert.Equal(t, first, b.String())
}

func TestRender_UnnamedModuleHasNoEnvelope(t *testing.T) {
	m := &ir.Module{
		Forms: []ir.Form{testutil.Attr("x", ir.Int(1))},
	}
	assert.Equal(t, "@x 1\n", render(t, m))
}

func TestRender_FileAndModuleComments(t *testing.T) {
	m := &ir.Module{
		Name:         "M",
		FileComments: []string{"# file header"},
		Comments:     []string{"# about the module"},
	}
	want := strings.Join([]string{
		"# file header",
		"",
		"# about the module",
		"defmodule :M do",
		"end",
		"",
	}, "\n")
	assert.Equal(t, want, render(t, m))
}

func TestRender_QuotedModuleName(t *testing.T) {
	m := &ir.Module{Name: "my app"}
	assert.Equal(t, "defmodule :\"my app\" do\nend\n", render(t, m))
}

func TestRender_EndsWithExactlyOneNewline(t *testing.T) {
	out := render(t, testutil.MinimalModule())
	assert.True(t, strings.HasSuffix(out, "\n"))
	assert.False(t, strings.HasSuffix(out, "\n\n"))
}

func TestRender_FormErrorCarriesIndex(t *testing.T) {
	m := &ir.Module{
		Name: "M",
		Forms: []ir.Form{
			testutil.Attr("ok", ir.Int(1)),
			&ir.Directive{Kind: ir.DirectiveIfdef},
		},
	}
	_, err := RenderString(m, Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "form 1:")
	assert.True(t, IsInvariantViolation(err))
}
