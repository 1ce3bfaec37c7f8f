package ir

// Module is one complete translation unit: the fully-resolved representation
// of the Elixir module to be rendered.
//
// A Module is produced once by the frontend converter and consumed once by
// the renderer. The renderer treats it as read-only.
type Module struct {
	// Name is the Elixir module name, rendered as an atom
	// (`defmodule :name do`). Empty means the forms are rendered bare,
	// without a defmodule envelope.
	Name string

	// FileComments are full-line comments that belong to the source file
	// as a whole. Rendered first, verbatim.
	FileComments []string

	// Comments are full-line comments attached to the module itself.
	// Rendered directly above the defmodule line.
	Comments []string

	// Forms is the ordered form sequence. Output order is input order:
	// the renderer never reorders or deduplicates.
	Forms []Form
}
