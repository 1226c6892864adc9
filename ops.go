package sift

import (
	"fmt"
	"math"
	"reflect"
)

// Truthy classifies a value the way chain predicates expect: nulls are
// false, populated Nodes are true, Collections follow emptiness, Scalars
// follow their value, plain values follow zero-ness.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case *Node:
		return !t.IsNull()
	case *Collection:
		return !t.IsNull() && t.Len() > 0
	case *Scalar:
		if t.IsNull() {
			return false
		}
		val, _ := t.Val()
		return Truthy(val)
	case Wrapper:
		return !t.IsNull()
	}
	if f, ok := toFloat(v); ok {
		return f != 0
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() > 0
	case reflect.Pointer, reflect.Interface:
		return !rv.IsNil()
	}
	return true
}

type binFn func(a, b any) (any, error)

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int8:
		return float64(t), true
	case int16:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint:
		return float64(t), true
	case uint8:
		return float64(t), true
	case uint16:
		return float64(t), true
	case uint32:
		return float64(t), true
	case uint64:
		return float64(t), true
	case float32:
		return float64(t), true
	case float64:
		return t, true
	}
	return 0, false
}

func isIntLike(v any) (int64, bool) {
	switch t := v.(type) {
	case int:
		return int64(t), true
	case int8:
		return int64(t), true
	case int16:
		return int64(t), true
	case int32:
		return int64(t), true
	case int64:
		return t, true
	case uint:
		return int64(t), true
	case uint8:
		return int64(t), true
	case uint16:
		return int64(t), true
	case uint32:
		return int64(t), true
	case uint64:
		return int64(t), true
	}
	return 0, false
}

// compare orders two values: numerics by magnitude, strings
// lexicographically.
func compare(a, b any) (int, error) {
	if as, ok := a.(string); ok {
		bs, ok := b.(string)
		if !ok {
			return 0, fmt.Errorf("cannot compare string with %T", b)
		}
		switch {
		case as < bs:
			return -1, nil
		case as > bs:
			return 1, nil
		}
		return 0, nil
	}
	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	if !aok || !bok {
		return 0, fmt.Errorf("cannot compare %T with %T", a, b)
	}
	switch {
	case af < bf:
		return -1, nil
	case af > bf:
		return 1, nil
	}
	return 0, nil
}

func opEq(a, b any) (any, error) {
	if af, ok := toFloat(a); ok {
		if bf, ok := toFloat(b); ok {
			return af == bf, nil
		}
	}
	return reflect.DeepEqual(a, b), nil
}

func opNe(a, b any) (any, error) {
	eq, err := opEq(a, b)
	if err != nil {
		return nil, err
	}
	return !eq.(bool), nil
}

func opGt(a, b any) (any, error) { return cmpIs(a, b, func(c int) bool { return c > 0 }) }
func opGe(a, b any) (any, error) { return cmpIs(a, b, func(c int) bool { return c >= 0 }) }
func opLt(a, b any) (any, error) { return cmpIs(a, b, func(c int) bool { return c < 0 }) }
func opLe(a, b any) (any, error) { return cmpIs(a, b, func(c int) bool { return c <= 0 }) }

func cmpIs(a, b any, ok func(int) bool) (any, error) {
	c, err := compare(a, b)
	if err != nil {
		return nil, err
	}
	return ok(c), nil
}

func opAdd(a, b any) (any, error) {
	if as, ok := a.(string); ok {
		if bs, ok := b.(string); ok {
			return as + bs, nil
		}
		return nil, fmt.Errorf("cannot add string and %T", b)
	}
	if ai, ok := isIntLike(a); ok {
		if bi, ok := isIntLike(b); ok {
			return int(ai + bi), nil
		}
	}
	return numericOp("add", a, b, func(x, y float64) float64 { return x + y })
}

func opSub(a, b any) (any, error) {
	if ai, ok := isIntLike(a); ok {
		if bi, ok := isIntLike(b); ok {
			return int(ai - bi), nil
		}
	}
	return numericOp("subtract", a, b, func(x, y float64) float64 { return x - y })
}

func opMul(a, b any) (any, error) {
	if ai, ok := isIntLike(a); ok {
		if bi, ok := isIntLike(b); ok {
			return int(ai * bi), nil
		}
	}
	return numericOp("multiply", a, b, func(x, y float64) float64 { return x * y })
}

// opDiv always divides as floating point, FloorDiv keeps integers.
func opDiv(a, b any) (any, error) {
	bf, ok := toFloat(b)
	if ok && bf == 0 {
		return nil, fmt.Errorf("division by zero")
	}
	return numericOp("divide", a, b, func(x, y float64) float64 { return x / y })
}

func opFloorDiv(a, b any) (any, error) {
	ai, aok := isIntLike(a)
	bi, bok := isIntLike(b)
	if aok && bok {
		if bi == 0 {
			return nil, fmt.Errorf("division by zero")
		}
		q := ai / bi
		if ai%bi != 0 && (ai < 0) != (bi < 0) {
			q--
		}
		return int(q), nil
	}
	res, err := numericOp("divide", a, b, func(x, y float64) float64 { return math.Floor(x / y) })
	if err != nil {
		return nil, err
	}
	return res, nil
}

func opMod(a, b any) (any, error) {
	ai, aok := isIntLike(a)
	bi, bok := isIntLike(b)
	if aok && bok {
		if bi == 0 {
			return nil, fmt.Errorf("division by zero")
		}
		return int(ai % bi), nil
	}
	return numericOp("mod", a, b, math.Mod)
}

func opPow(a, b any) (any, error) {
	return numericOp("exponentiate", a, b, math.Pow)
}

func numericOp(verb string, a, b any, f func(x, y float64) float64) (any, error) {
	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	if !aok || !bok {
		return nil, fmt.Errorf("cannot %s %T and %T", verb, a, b)
	}
	return f(af, bf), nil
}
