// Package testutil provides IR fixture builders shared across package
// tests. Builders keep test modules terse without hiding the IR shape.
package testutil

import "github.com/relix-lang/relix/internal/ir"

// Sig builds a call signature.
func Sig(target string, args ...ir.Expr) ir.Call {
	return ir.Call{Target: target, Args: args}
}

// Func builds a single-clause function.
func Func(public bool, sig ir.Expr, body ...ir.Expr) *ir.Function {
	return &ir.Function{
		Public:  public,
		Clauses: []ir.Clause{{Signature: sig, Body: body}},
	}
}

// Attr builds an unregistered attribute.
func Attr(name string, value ir.Expr) *ir.Attribute {
	return &ir.Attribute{Name: name, Value: value}
}

// Pair builds one keyword-list entry.
func Pair(key string, value ir.Expr) ir.KeywordPair {
	return ir.KeywordPair{Key: key, Value: value}
}

// MinimalModule is the smallest interesting module: one attribute and one
// public single-clause function. Several packages use it as the baseline
// determinism fixture.
func MinimalModule() *ir.Module {
	return &ir.Module{
		Name: "M",
		Forms: []ir.Form{
			Attr("x", ir.Int(1)),
			Func(true, Sig("f"), ir.Atom("ok")),
		},
	}
}
