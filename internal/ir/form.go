package ir

// Form is one top-level syntactic unit of the target module.
//
// This is a sealed interface - only the concrete form types in this
// package implement it. The renderer dispatches over Form with a type
// switch; an unknown variant there is a frontend contract violation and
// fails the whole render.
type Form interface {
	formNode() // Marker method - seals interface to this package
}

// DirectiveKind enumerates the translated preprocessor directives.
type DirectiveKind string

const (
	DirectiveUndef  DirectiveKind = "undef"
	DirectiveIfdef  DirectiveKind = "ifdef"
	DirectiveIfndef DirectiveKind = "ifndef"
	DirectiveElse   DirectiveKind = "else"
	DirectiveEndif  DirectiveKind = "endif"
)

// TypeDeclKind selects the attribute used for a type declaration.
type TypeDeclKind string

const (
	TypeKindType   TypeDeclKind = "type"
	TypeKindOpaque TypeDeclKind = "opaque"
)

// SpecDeclKind selects the attribute used for a standalone spec block.
type SpecDeclKind string

const (
	SpecKindSpec     SpecDeclKind = "spec"
	SpecKindCallback SpecDeclKind = "callback"
)

// HeaderPrelude carries the synthesized forms the converter determined the
// module needs before any user form: the Bitwise import, macro-presence
// flag initializers, record support, and the unknown-macro dispatcher.
// At most one HeaderPrelude appears per module, always first.
type HeaderPrelude struct {
	// UseBitwise enables Erlang's band/bor/bxor operator family via
	// `use Bitwise, :only_operators`.
	UseBitwise bool

	// MacroFlags lists the externally-defined macros whose presence flag
	// must be initialized at module load time from the environment or the
	// application config.
	MacroFlags []MacroFlag

	// RecordFieldAttrs names the field-name storage attributes of every
	// record in the module. Non-empty means record support is needed and
	// `require Record` is emitted.
	RecordFieldAttrs []string

	// NeedRecordHelpers is set when the source tests record-ness with an
	// is_record predicate, requiring the record size/index helper macros.
	NeedRecordHelpers bool

	// DispatchMacro, when non-empty, names the generated macro that
	// resolves unknown macro invocations at expansion time.
	DispatchMacro string

	Comments []string
}

func (*HeaderPrelude) formNode() {}

// MacroFlag pairs an external macro with its presence-flag attribute.
type MacroFlag struct {
	MacroName string
	FlagAttr  string
}

// Comment is a contiguous block of full-line comments.
type Comment struct {
	Lines []string
}

func (*Comment) formNode() {}

// Function is one function definition: ordered clauses plus optional specs.
type Function struct {
	// Public selects def over defp.
	Public   bool
	Clauses  []Clause
	Specs    []Expr
	Comments []string
}

func (*Function) formNode() {}

// Clause is a single function clause.
type Clause struct {
	// Signature is the call-signature expression, including arguments
	// and any when guard.
	Signature Expr

	// Body is the ordered list of body expressions, one per line.
	Body []Expr

	Comments []string
}

// Attribute is a module attribute assignment.
type Attribute struct {
	Name  string
	Value Expr

	// Register marks attributes that must first be registered as
	// persisted, accumulating module attributes.
	Register bool

	Comments []string
}

func (*Attribute) formNode() {}

// Directive is one translated conditional-compilation directive. FlagAttr
// names the backing flag attribute; it is required for undef/ifdef/ifndef
// and ignored for else/endif.
type Directive struct {
	Kind     DirectiveKind
	FlagAttr string
	Comments []string
}

func (*Directive) formNode() {}

// Import is a translated -import attribute.
type Import struct {
	// Module is the source module expression.
	Module Expr

	// Funcs lists the imported name/arity signatures.
	Funcs []FuncSig

	Comments []string
}

func (*Import) formNode() {}

// FuncSig is a name/arity pair as used by import lists.
type FuncSig struct {
	Name  string
	Arity int64
}

// RecordDef is a translated record definition.
type RecordDef struct {
	// Tag is the record tag expression (usually an atom).
	Tag Expr

	// Macro names the generated accessor macro.
	Macro string

	// FieldsAttr names the attribute that stores the ordered field list.
	FieldsAttr string

	Fields   []RecordField
	Comments []string
}

func (*RecordDef) formNode() {}

// RecordField is one record field with its default. A nil Default renders
// as :undefined, matching Erlang record semantics.
type RecordField struct {
	Name    string
	Default Expr
}

// TypeDecl is a type or opaque-type declaration.
type TypeDecl struct {
	Kind       TypeDeclKind
	Signature  Expr
	Definition Expr
	Comments   []string
}

func (*TypeDecl) formNode() {}

// SpecDecl is a standalone spec or callback block.
type SpecDecl struct {
	Kind     SpecDeclKind
	Specs    []Expr
	Comments []string
}

func (*SpecDecl) formNode() {}

// MacroDef is a translated macro definition, emitted as a defmacrop.
type MacroDef struct {
	Name string

	// Signature is the macro call signature.
	Signature Expr

	// TrackingAttr, when non-empty, names the flag attribute set to true
	// to mark the macro as defined.
	TrackingAttr string

	// DispatchAttr, when non-empty, names the attribute that registers
	// this macro in the unknown-macro dispatch table.
	DispatchAttr string

	// Stringifications lists the captured variables whose literal textual
	// form must be computed before the quoted body is assembled.
	Stringifications []Stringification

	// Body is the default expansion.
	Body Expr

	// GuardBody, when non-nil, is the alternate expansion used when the
	// macro is expanded inside a guard context.
	GuardBody Expr

	Comments []string
}

func (*MacroDef) formNode() {}

// Stringification maps a captured variable to the binding that holds its
// stringified form inside the macro body.
type Stringification struct {
	Var     string
	StrName string
}
