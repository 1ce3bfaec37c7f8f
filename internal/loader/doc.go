// Package loader reads IR documents into ir.Module values.
//
// The frontend converter serializes its output as a CUE (or plain JSON -
// CUE is a superset) document whose shape mirrors ir.EncodeModule. This
// package decodes such documents using the CUE SDK's Go API directly.
//
// Decoding is interchange glue, not semantic validation: a document is
// rejected only when it cannot be mapped onto the IR shape (unknown form
// kind, missing required field, wrong scalar type). Whether the resulting
// module makes sense is still the frontend's contract.
package loader
