package loader

import (
	"fmt"

	"cuelang.org/go/cue"

	"github.com/relix-lang/relix/internal/ir"
)

// decodeExpr maps a single-key expression object onto the sealed Expr
// variants. The key discriminates: atom, int, str, var, char, call, binop,
// list, tuple, kw.
func decodeExpr(v cue.Value) (ir.Expr, error) {
	if fv := v.LookupPath(cue.ParsePath("atom")); fv.Exists() {
		s, err := fv.String()
		if err != nil {
			return nil, formatCUEError("atom", err)
		}
		return ir.Atom(s), nil
	}
	if fv := v.LookupPath(cue.ParsePath("int")); fv.Exists() {
		n, err := fv.Int64()
		if err != nil {
			return nil, formatCUEError("int", err)
		}
		return ir.Int(n), nil
	}
	if fv := v.LookupPath(cue.ParsePath("str")); fv.Exists() {
		s, err := fv.String()
		if err != nil {
			return nil, formatCUEError("str", err)
		}
		return ir.Str(s), nil
	}
	if fv := v.LookupPath(cue.ParsePath("var")); fv.Exists() {
		s, err := fv.String()
		if err != nil {
			return nil, formatCUEError("var", err)
		}
		return ir.Var(s), nil
	}
	if fv := v.LookupPath(cue.ParsePath("char")); fv.Exists() {
		n, err := fv.Int64()
		if err != nil {
			return nil, formatCUEError("char", err)
		}
		return ir.CharLit(rune(n)), nil
	}
	if fv := v.LookupPath(cue.ParsePath("call")); fv.Exists() {
		target, err := reqString(fv, "target")
		if err != nil {
			return nil, err
		}
		args, err := optExprs(fv, "args")
		if err != nil {
			return nil, fmt.Errorf("call %s: %w", target, err)
		}
		return ir.Call{Target: target, Args: args}, nil
	}
	if fv := v.LookupPath(cue.ParsePath("binop")); fv.Exists() {
		op, err := reqString(fv, "op")
		if err != nil {
			return nil, err
		}
		left, err := reqExpr(fv, "left")
		if err != nil {
			return nil, fmt.Errorf("binop %s: %w", op, err)
		}
		right, err := reqExpr(fv, "right")
		if err != nil {
			return nil, fmt.Errorf("binop %s: %w", op, err)
		}
		return ir.BinOp{Op: op, Left: left, Right: right}, nil
	}
	if fv := v.LookupPath(cue.ParsePath("list")); fv.Exists() {
		elems, err := decodeExprList(fv)
		if err != nil {
			return nil, fmt.Errorf("list: %w", err)
		}
		return ir.List(elems), nil
	}
	if fv := v.LookupPath(cue.ParsePath("tuple")); fv.Exists() {
		elems, err := decodeExprList(fv)
		if err != nil {
			return nil, fmt.Errorf("tuple: %w", err)
		}
		return ir.Tuple(elems), nil
	}
	if fv := v.LookupPath(cue.ParsePath("kw")); fv.Exists() {
		iter, err := fv.List()
		if err != nil {
			return nil, formatCUEError("kw", err)
		}
		var pairs ir.KeywordList
		for iter.Next() {
			pv := iter.Value()
			key, err := reqString(pv, "key")
			if err != nil {
				return nil, err
			}
			val, err := reqExpr(pv, "value")
			if err != nil {
				return nil, fmt.Errorf("kw %s: %w", key, err)
			}
			pairs = append(pairs, ir.KeywordPair{Key: key, Value: val})
		}
		return pairs, nil
	}
	return nil, &LoadError{
		Field:   "expr",
		Message: "no recognized expression key (atom/int/str/var/char/call/binop/list/tuple/kw)",
		Pos:     v.Pos(),
	}
}

func decodeExprList(v cue.Value) ([]ir.Expr, error) {
	iter, err := v.List()
	if err != nil {
		return nil, formatCUEError("list", err)
	}
	var exprs []ir.Expr
	for i := 0; iter.Next(); i++ {
		e, err := decodeExpr(iter.Value())
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		exprs = append(exprs, e)
	}
	return exprs, nil
}

// Field extraction helpers. req* fail when the field is absent; opt* return
// zero values instead.

func reqString(v cue.Value, field string) (string, error) {
	fv := v.LookupPath(cue.ParsePath(field))
	if !fv.Exists() {
		return "", &LoadError{Field: field, Message: field + " is required", Pos: v.Pos()}
	}
	s, err := fv.String()
	if err != nil {
		return "", formatCUEError(field, err)
	}
	return s, nil
}

func optString(v cue.Value, field string) (string, error) {
	fv := v.LookupPath(cue.ParsePath(field))
	if !fv.Exists() {
		return "", nil
	}
	s, err := fv.String()
	if err != nil {
		return "", formatCUEError(field, err)
	}
	return s, nil
}

func reqInt(v cue.Value, field string) (int64, error) {
	fv := v.LookupPath(cue.ParsePath(field))
	if !fv.Exists() {
		return 0, &LoadError{Field: field, Message: field + " is required", Pos: v.Pos()}
	}
	n, err := fv.Int64()
	if err != nil {
		return 0, formatCUEError(field, err)
	}
	return n, nil
}

func optBool(v cue.Value, field string) (bool, error) {
	fv := v.LookupPath(cue.ParsePath(field))
	if !fv.Exists() {
		return false, nil
	}
	b, err := fv.Bool()
	if err != nil {
		return false, formatCUEError(field, err)
	}
	return b, nil
}

func optStrings(v cue.Value, field string) ([]string, error) {
	fv := v.LookupPath(cue.ParsePath(field))
	if !fv.Exists() {
		return nil, nil
	}
	iter, err := fv.List()
	if err != nil {
		return nil, formatCUEError(field, err)
	}
	var out []string
	for iter.Next() {
		s, err := iter.Value().String()
		if err != nil {
			return nil, formatCUEError(field, err)
		}
		out = append(out, s)
	}
	return out, nil
}

func reqExpr(v cue.Value, field string) (ir.Expr, error) {
	fv := v.LookupPath(cue.ParsePath(field))
	if !fv.Exists() {
		return nil, &LoadError{Field: field, Message: field + " is required", Pos: v.Pos()}
	}
	e, err := decodeExpr(fv)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}
	return e, nil
}

func optExprs(v cue.Value, field string) ([]ir.Expr, error) {
	fv := v.LookupPath(cue.ParsePath(field))
	if !fv.Exists() {
		return nil, nil
	}
	exprs, err := decodeExprList(fv)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}
	return exprs, nil
}
