package loader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relix-lang/relix/internal/ir"
)

func loadString(t *testing.T, doc string) *ir.Module {
	t.Helper()
	m, err := LoadBytes([]byte(doc), "test.cue")
	require.NoError(t, err)
	return m
}

func TestLoadBytes_MinimalModule(t *testing.T) {
	m := loadString(t, `
name: "M"
forms: [
	{kind: "attribute", name: "x", value: {int: 1}},
	{
		kind: "function"
		public: true
		clauses: [{signature: {call: {target: "f"}}, body: [{atom: "ok"}]}]
	},
]
`)
	require.Equal(t, "M", m.Name)
	require.Len(t, m.Forms, 2)

	attr, ok := m.Forms[0].(*ir.Attribute)
	require.True(t, ok)
	assert.Equal(t, "x", attr.Name)
	assert.Equal(t, ir.Int(1), attr.Value)
	assert.False(t, attr.Register)

	fn, ok := m.Forms[1].(*ir.Function)
	require.True(t, ok)
	assert.True(t, fn.Public)
	require.Len(t, fn.Clauses, 1)
	assert.Equal(t, ir.Call{Target: "f"}, fn.Clauses[0].Signature)
	assert.Equal(t, []ir.Expr{ir.Atom("ok")}, fn.Clauses[0].Body)
}

// The document format is a CUE superset of JSON, so plain JSON documents
// load unchanged.
func TestLoadBytes_AcceptsJSON(t *testing.T) {
	m, err := LoadBytes([]byte(`{
		"name": "M",
		"forms": [
			{"kind": "attribute", "name": "x", "value": {"int": 1}}
		]
	}`), "test.json")
	require.NoError(t, err)
	assert.Equal(t, "M", m.Name)
	require.Len(t, m.Forms, 1)
}

func TestLoadBytes_AllFormKinds(t *testing.T) {
	m := loadString(t, `
name: "everything"
file_comments: ["# file"]
comments: ["# module"]
forms: [
	{
		kind: "header_prelude"
		use_bitwise: true
		record_helpers: true
		record_field_attrs: ["erlrecordfields_r"]
		dispatch_macro: "erlmacro"
		macro_flags: [{macro: "DEBUG", flag_attr: "defines_DEBUG"}]
	},
	{kind: "comment", lines: ["# hello"]},
	{kind: "directive", directive: "ifdef", flag_attr: "defines_DEBUG"},
	{kind: "directive", directive: "endif"},
	{kind: "import", module: {atom: "lists"}, funcs: [{name: "map", arity: 2}]},
	{
		kind: "record"
		tag: {atom: "r"}
		macro: "r"
		fields_attr: "erlrecordfields_r"
		fields: [{name: "a", default: {int: 1}}, {name: "b"}]
	},
	{kind: "type_decl", type_kind: "opaque", signature: {call: {target: "t"}}, definition: {call: {target: "integer"}}},
	{kind: "spec_decl", spec_kind: "callback", specs: [{var: "s"}]},
	{
		kind: "macro_def"
		name: "INC"
		signature: {call: {target: "erlmacro_INC", args: [{var: "x"}]}}
		tracking_attr: "defines_INC"
		dispatch_attr: "erlmacro"
		stringify: [{var: "x", str_name: "str_x"}]
		body: {binop: {op: "+", left: {var: "x"}, right: {int: 1}}}
		guard_body: {binop: {op: "+", left: {var: "x"}, right: {int: 1}}}
	},
]
`)
	assert.Equal(t, []string{"# file"}, m.FileComments)
	assert.Equal(t, []string{"# module"}, m.Comments)
	require.Len(t, m.Forms, 9)

	prelude := m.Forms[0].(*ir.HeaderPrelude)
	assert.True(t, prelude.UseBitwise)
	assert.True(t, prelude.NeedRecordHelpers)
	assert.Equal(t, []string{"erlrecordfields_r"}, prelude.RecordFieldAttrs)
	assert.Equal(t, "erlmacro", prelude.DispatchMacro)
	assert.Equal(t, []ir.MacroFlag{{MacroName: "DEBUG", FlagAttr: "defines_DEBUG"}}, prelude.MacroFlags)

	assert.Equal(t, &ir.Comment{Lines: []string{"# hello"}}, m.Forms[1])
	assert.Equal(t, &ir.Directive{Kind: ir.DirectiveIfdef, FlagAttr: "defines_DEBUG"}, m.Forms[2])
	assert.Equal(t, &ir.Directive{Kind: ir.DirectiveEndif}, m.Forms[3])

	imp := m.Forms[4].(*ir.Import)
	assert.Equal(t, ir.Atom("lists"), imp.Module)
	assert.Equal(t, []ir.FuncSig{{Name: "map", Arity: 2}}, imp.Funcs)

	rec := m.Forms[5].(*ir.RecordDef)
	assert.Equal(t, ir.Atom("r"), rec.Tag)
	assert.Equal(t, "r", rec.Macro)
	assert.Equal(t, "erlrecordfields_r", rec.FieldsAttr)
	require.Len(t, rec.Fields, 2)
	assert.Equal(t, ir.RecordField{Name: "a", Default: ir.Int(1)}, rec.Fields[0])
	assert.Nil(t, rec.Fields[1].Default)

	decl := m.Forms[6].(*ir.TypeDecl)
	assert.Equal(t, ir.TypeKindOpaque, decl.Kind)

	spec := m.Forms[7].(*ir.SpecDecl)
	assert.Equal(t, ir.SpecKindCallback, spec.Kind)
	assert.Equal(t, []ir.Expr{ir.Var("s")}, spec.Specs)

	mac := m.Forms[8].(*ir.MacroDef)
	assert.Equal(t, "INC", mac.Name)
	assert.Equal(t, "defines_INC", mac.TrackingAttr)
	assert.Equal(t, "erlmacro", mac.DispatchAttr)
	assert.Equal(t, []ir.Stringification{{Var: "x", StrName: "str_x"}}, mac.Stringifications)
	assert.NotNil(t, mac.GuardBody)
}

func TestLoadBytes_ExprVariants(t *testing.T) {
	m := loadString(t, `
forms: [{kind: "attribute", name: "all", value: {tuple: [
	{atom: "ok"},
	{int: -3},
	{str: "text"},
	{var: "x"},
	{char: 10},
	{list: [{int: 1}]},
	{kw: [{key: "a", value: {int: 1}}]},
]}}]
`)
	attr := m.Forms[0].(*ir.Attribute)
	want := ir.Tuple{
		ir.Atom("ok"),
		ir.Int(-3),
		ir.Str("text"),
		ir.Var("x"),
		ir.CharLit('\n'),
		ir.List{ir.Int(1)},
		ir.KeywordList{{Key: "a", Value: ir.Int(1)}},
	}
	assert.Equal(t, want, attr.Value)
}

func TestLoadBytes_MissingForms(t *testing.T) {
	_, err := LoadBytes([]byte(`name: "M"`), "test.cue")
	require.Error(t, err)
	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "forms", le.Field)
}

func TestLoadBytes_UnknownFormKind(t *testing.T) {
	_, err := LoadBytes([]byte(`forms: [{kind: "mystery"}]`), "test.cue")
	require.Error(t, err)
	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "kind", le.Field)
	assert.Contains(t, err.Error(), "mystery")
}

func TestLoadBytes_MissingRequiredField(t *testing.T) {
	_, err := LoadBytes([]byte(`forms: [{kind: "attribute", value: {int: 1}}]`), "test.cue")
	require.Error(t, err)
	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "name", le.Field)
}

func TestLoadBytes_UnknownDirectiveKind(t *testing.T) {
	_, err := LoadBytes([]byte(`forms: [{kind: "directive", directive: "pragma"}]`), "test.cue")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pragma")
}

func TestLoadBytes_UnrecognizedExprKey(t *testing.T) {
	_, err := LoadBytes([]byte(`forms: [{kind: "attribute", name: "x", value: {float: 1}}]`), "test.cue")
	require.Error(t, err)
	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "expr", le.Field)
}

func TestLoadBytes_FormErrorCarriesIndex(t *testing.T) {
	_, err := LoadBytes([]byte(`
forms: [
	{kind: "attribute", name: "ok", value: {int: 1}},
	{kind: "mystery"},
]
`), "test.cue")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "forms[1]:")
}

func TestLoadBytes_InvalidSyntax(t *testing.T) {
	_, err := LoadBytes([]byte(`forms: [`), "broken.cue")
	assert.Error(t, err)
}

func TestLoadFile_MissingFile(t *testing.T) {
	_, err := LoadFile("testdata/does-not-exist.cue")
	assert.Error(t, err)
}
