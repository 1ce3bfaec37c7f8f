package codegen

import (
	"fmt"
	"io"
	"strings"

	"github.com/relix-lang/relix/internal/ir"
)

// Render writes the Elixir source for one module to w. One module, one
// sink, one pass: rendering either completes and terminates the file with a
// newline, or fails on the first invariant violation without attempting
// partial recovery.
func Render(m *ir.Module, cfg Config, w io.Writer) error {
	r := &Renderer{out: &sink{w: w}}
	ctx := NewContext(cfg)

	if len(m.FileComments) > 0 {
		ctx = r.open(ctx, KindModuleComments)
		r.comments(ctx, m.FileComments)
	}
	if len(m.Comments) > 0 {
		ctx = r.open(ctx, KindModuleComments)
		r.comments(ctx, m.Comments)
	}

	if m.Name != "" {
		ctx = r.open(ctx, KindModuleBegin)
		r.line(ctx, "defmodule "+atomText(m.Name)+" do")
		ctx.Indent++
	}

	for i, form := range m.Forms {
		var err error
		ctx, err = r.renderForm(ctx, form)
		if err != nil {
			return fmt.Errorf("form %d: %w", i, err)
		}
	}

	if m.Name != "" {
		ctx.Indent--
		ctx = r.open(ctx, KindModuleEnd)
		r.line(ctx, "end")
	}

	r.out.writeString("\n")
	return r.out.err
}

// RenderString renders a module into a string.
func RenderString(m *ir.Module, cfg Config) (string, error) {
	var b strings.Builder
	if err := Render(m, cfg, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}
