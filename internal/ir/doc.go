// Package ir defines the intermediate representation handed to the code
// generator by the upstream Erlang frontend.
//
// This package contains type definitions plus content-addressing helpers.
// All other internal packages import ir; ir imports nothing internal. This
// keeps the IR the foundational layer with no circular dependencies.
//
// Key design constraints:
//   - Form and Expr are sealed interfaces (marker method pattern) so that
//     backend dispatch can type-switch exhaustively
//   - A Module is immutable once built; the renderer never mutates it
//   - Numbers are int64 everywhere, never floats (determinism)
//   - Form order is meaningful and is preserved verbatim by the backend
package ir
