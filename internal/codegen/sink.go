package codegen

import (
	"io"
	"strings"
)

// sink is the append-only output destination. It carries a sticky write
// error so the renderer can emit unconditionally and check once at the end;
// no renderer ever reads back what was written.
type sink struct {
	w   io.Writer
	err error
}

func (s *sink) writeString(text string) {
	if s.err != nil {
		return
	}
	_, s.err = io.WriteString(s.w, text)
}

// Renderer emits one module to one sink. It holds no render state beyond
// the line-group bookkeeping; everything that influences formatting lives
// in the Context threaded through its methods.
type Renderer struct {
	out *sink

	// fresh is true immediately after a group open: the next line starts
	// without a preceding line break.
	fresh bool
}

// open applies the blank-line policy for the next line group and records
// the group's kind in the returned context.
func (r *Renderer) open(ctx Context, kind FormKind) Context {
	n := blankLines(ctx.LastKind, kind)
	for i := 0; i < n; i++ {
		r.out.writeString("\n")
	}
	ctx.LastKind = kind
	r.fresh = true
	return ctx
}

// line writes one line at the context's indent level. Line groups never end
// with a line break; the next group (or the final terminator) supplies it.
func (r *Renderer) line(ctx Context, text string) {
	if r.fresh {
		r.fresh = false
	} else {
		r.out.writeString("\n")
	}
	if text != "" {
		r.out.writeString(strings.Repeat("  ", ctx.Indent))
		r.out.writeString(text)
	}
}

// lines splits multi-line text on line boundaries and writes every
// resulting line with the same indent prefix.
func (r *Renderer) lines(ctx Context, text string) {
	for _, ln := range strings.Split(text, "\n") {
		r.line(ctx, ln)
	}
}

// comments writes leading comment lines verbatim, one per line.
func (r *Renderer) comments(ctx Context, lines []string) {
	for _, c := range lines {
		r.line(ctx, c)
	}
}

// prefixed writes multi-line text where only the first line carries the
// given prefix (used for "@spec ", "@name " and similar attribute heads).
func (r *Renderer) prefixed(ctx Context, prefix, text string) {
	split := strings.Split(text, "\n")
	r.line(ctx, prefix+split[0])
	for _, ln := range split[1:] {
		r.line(ctx, ln)
	}
}
