package codegen

// Config holds the two configuration values fixed for a whole render.
type Config struct {
	// DefinePrefix is prepended to an external macro's name to build the
	// lookup key for its presence flag. Defaults to DefaultDefinePrefix.
	DefinePrefix string

	// DefinesFrom optionally names the application config namespace that
	// presence flags are read from. Empty means flags are read from the
	// identically named process environment variables instead.
	DefinesFrom string
}

// DefaultDefinePrefix is the flag-key prefix used when none is configured.
const DefaultDefinePrefix = "DEFINES_"

func (c Config) withDefaults() Config {
	if c.DefinePrefix == "" {
		c.DefinePrefix = DefaultDefinePrefix
	}
	return c
}

// FormKind tags a rendered line group for the blank-line policy. Sub-cases
// of one form get distinct tags (a function's first clause vs. later
// clauses, its spec block vs. its comment header) so the policy table can
// express tight spacing inside a function and loose spacing between
// unrelated top-level forms.
type FormKind string

const (
	KindStart          FormKind = "start"
	KindModuleComments FormKind = "module_comments"
	KindModuleBegin    FormKind = "module_begin"
	KindModuleEnd      FormKind = "module_end"
	KindComment        FormKind = "comment"
	KindAttr           FormKind = "attr"
	KindDirective      FormKind = "directive"
	KindImport         FormKind = "import"
	KindRecord         FormKind = "record"
	KindTypeDecl       FormKind = "type_decl"
	KindSpecDecl       FormKind = "spec_decl"
	KindFuncHeader     FormKind = "func_header"
	KindFuncSpecs      FormKind = "func_specs"
	KindFuncClauseF    FormKind = "func_clause_first"
	KindFuncClause     FormKind = "func_clause"
	KindMacro          FormKind = "macro"
	KindPrelude        FormKind = "prelude"
)

// Context is the render state threaded by value through every renderer
// call. The final context of one sub-render becomes the input to the next;
// nothing here is shared or mutated in place.
type Context struct {
	// Indent is the nesting level. One level = two spaces. Never negative.
	Indent int

	// LastKind is the tag of the most recently emitted line group. It
	// drives the blank-line policy and nothing else.
	LastKind FormKind

	// Config is fixed for the whole render.
	Config Config
}

// NewContext builds the initial context for a render.
func NewContext(cfg Config) Context {
	return Context{LastKind: KindStart, Config: cfg.withDefaults()}
}

// blankLines is the whitespace policy: the number of line breaks emitted
// before the next line group. N line breaks means N-1 blank lines; 0 means
// continue with no break at all, which happens only at the start of a
// module.
//
// The table encodes Elixir's idiomatic spacing: tight within a function's
// comment/spec/clause stack and between consecutive attributes, one blank
// line between unrelated top-level forms.
func blankLines(prev, next FormKind) int {
	switch {
	case prev == KindStart:
		return 0
	case prev == KindModuleComments && next == KindModuleBegin:
		return 1
	case prev == KindModuleBegin:
		return 1
	case next == KindModuleEnd:
		return 1
	case prev == KindFuncHeader && next == KindFuncSpecs:
		return 1
	case prev == KindFuncHeader && next == KindFuncClauseF:
		return 1
	case prev == KindFuncSpecs && next == KindFuncClauseF:
		return 1
	case prev == KindFuncClauseF && next == KindFuncClause:
		return 1
	case prev == KindFuncClause && next == KindFuncClause:
		return 1
	case prev == KindAttr && next == KindAttr:
		return 1
	default:
		return 2
	}
}
