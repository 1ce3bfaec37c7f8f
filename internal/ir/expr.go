package ir

// Expr is the Elixir expression tree attached to forms by the converter.
//
// This is a sealed interface - only types in this package implement it.
// The marker method pattern prevents external implementations and enables
// exhaustive type switches in the unparser.
//
// The renderer treats expression trees as opaque immutable values: it never
// rewrites them, with two narrow exceptions handled inside the unparser
// (character-literal placeholders and call-signature keyword blocks).
type Expr interface {
	exprNode() // Marker method - seals interface to this package
}

// Atom is an Elixir atom, stored without the leading colon.
type Atom string

func (Atom) exprNode() {}

// Int is an integer literal. Always int64, never float.
type Int int64

func (Int) exprNode() {}

// Str is a double-quoted string literal (the unescaped contents).
type Str string

func (Str) exprNode() {}

// Var is a plain identifier: a variable reference or a bare call target.
type Var string

func (Var) exprNode() {}

// CharLit is the character-literal placeholder. Erlang `$c` literals cannot
// round-trip through the generic expression tree, so the converter tags them
// with the raw character code and the unparser restores the `?c` syntax.
type CharLit rune

func (CharLit) exprNode() {}

// Call is a local call: target identifier applied to ordered arguments.
type Call struct {
	Target string
	Args   []Expr
}

func (Call) exprNode() {}

// BinOp is a binary operator application.
type BinOp struct {
	Op    string
	Left  Expr
	Right Expr
}

func (BinOp) exprNode() {}

// List is a bracketed list literal.
type List []Expr

func (List) exprNode() {}

// Tuple is a braced tuple literal.
type Tuple []Expr

func (Tuple) exprNode() {}

// KeywordList is an ordered keyword list. As the final argument of a Call
// whose keys are all block keywords (do/else/catch/rescue/after) it renders
// in block syntax; everywhere else it renders inline as [key: value, ...].
type KeywordList []KeywordPair

func (KeywordList) exprNode() {}

// KeywordPair is one key: value entry of a KeywordList.
type KeywordPair struct {
	Key   string
	Value Expr
}
