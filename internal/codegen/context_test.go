package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestBlankLines_Table verifies the whitespace policy pair by pair. The
// table is part of the output contract: N line breaks means N-1 blank
// lines, and 0 occurs only at the start of a module.
func TestBlankLines_Table(t *testing.T) {
	cases := []struct {
		prev, next FormKind
		want       int
	}{
		// Start of module: no break at all, whatever comes first.
		{KindStart, KindModuleComments, 0},
		{KindStart, KindModuleBegin, 0},
		{KindStart, KindAttr, 0},
		{KindStart, KindDirective, 0},

		// Module envelope.
		{KindModuleComments, KindModuleBegin, 1},
		{KindModuleBegin, KindAttr, 1},
		{KindModuleBegin, KindFuncClauseF, 1},
		{KindModuleBegin, KindComment, 1},
		{KindAttr, KindModuleEnd, 1},
		{KindFuncClause, KindModuleEnd, 1},
		{KindMacro, KindModuleEnd, 1},

		// Tight spacing inside a function.
		{KindFuncHeader, KindFuncSpecs, 1},
		{KindFuncHeader, KindFuncClauseF, 1},
		{KindFuncSpecs, KindFuncClauseF, 1},
		{KindFuncClauseF, KindFuncClause, 1},
		{KindFuncClause, KindFuncClause, 1},

		// Attribute runs stack tightly.
		{KindAttr, KindAttr, 1},

		// Everything else: exactly one blank line.
		{KindModuleComments, KindModuleComments, 2},
		{KindAttr, KindFuncClauseF, 2},
		{KindFuncClause, KindAttr, 2},
		{KindDirective, KindAttr, 2},
		{KindAttr, KindDirective, 2},
		{KindRecord, KindRecord, 2},
		{KindMacro, KindMacro, 2},
		{KindPrelude, KindPrelude, 2},
		{KindImport, KindTypeDecl, 2},
		{KindSpecDecl, KindFuncClauseF, 2},
		{KindComment, KindAttr, 2},
	}

	for _, tc := range cases {
		got := blankLines(tc.prev, tc.next)
		assert.Equal(t, tc.want, got, "blankLines(%s, %s)", tc.prev, tc.next)
	}
}

func TestNewContext_Defaults(t *testing.T) {
	ctx := NewContext(Config{})
	assert.Equal(t, 0, ctx.Indent)
	assert.Equal(t, KindStart, ctx.LastKind)
	assert.Equal(t, DefaultDefinePrefix, ctx.Config.DefinePrefix)
	assert.Empty(t, ctx.Config.DefinesFrom)
}

func TestNewContext_ExplicitConfig(t *testing.T) {
	ctx := NewContext(Config{DefinePrefix: "FLAGS_", DefinesFrom: "my_app"})
	assert.Equal(t, "FLAGS_", ctx.Config.DefinePrefix)
	assert.Equal(t, "my_app", ctx.Config.DefinesFrom)
}
