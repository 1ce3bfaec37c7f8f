// Package codegen renders a resolved ir.Module as Elixir source text.
//
// This is the backend of the translator: everything upstream (lexing,
// parsing, semantic conversion) hands this package a well-formed IR, and
// codegen is responsible only for text emission - the blank-line policy,
// per-form rendering rules, and the translation of Erlang preprocessor
// constructs (ifdef/macros/records) into module-attribute idioms.
//
// Rendering is deterministic: the same module and configuration always
// produce byte-identical output. The render context is threaded by value
// through every renderer call; no state is shared between renders.
//
// Error model: the only error class here is the internal-invariant
// violation (*RenderError) - an unrecognized form or expression variant, a
// directive without its flag attribute, a signature that cannot be
// unparsed. These mean the frontend broke its contract; rendering aborts
// immediately rather than emitting partially-correct source.
package codegen
