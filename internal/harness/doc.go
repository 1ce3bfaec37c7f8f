// Package harness runs end-to-end render scenarios for conformance tests.
//
// A scenario is a YAML file naming an IR module document plus the codegen
// configuration to render it with. The harness loads the document, renders
// it, and compares the full output against a golden file - golden files are
// the source of truth for expected module text.
package harness
