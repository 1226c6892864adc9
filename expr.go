package sift

import (
	"fmt"
	"strings"
)

// Q is the empty expression, the root every chain grows from.
//
// Expressions are shorthand for building single-argument functions. Each
// builder method records an operation without executing anything and
// returns a new immutable Expr; only Eval touches real data. In
// particular, Call records a "call the value so far" step. It never
// invokes the chain, a frequent point of confusion: use Eval to run an
// expression.
var Q = Expr{}

// Expr is an immutable description of a chain of deferred operations.
// Expr values are safe to share and reuse; every method returns a new one.
type Expr struct {
	ops []op
}

func (e Expr) with(o op) Expr {
	ops := make([]op, len(e.ops)+1)
	copy(ops, e.ops)
	ops[len(e.ops)] = o
	return Expr{ops: ops}
}

// Attr records access to a named attribute: a method, an exported struct
// field, or a string-keyed map entry.
func (e Expr) Attr(name string) Expr { return e.with(attrOp{name: name}) }

// Item records indexing by key or position.
func (e Expr) Item(key any) Expr { return e.with(itemOp{key: key}) }

// Slice records subslicing with clamped bounds; End marks an open upper
// bound and negatives count from the end.
func (e Expr) Slice(lo, hi int) Expr { return e.with(sliceOp{lo: lo, hi: hi}) }

// Call records calling the value produced so far with the given arguments.
// Arguments that are themselves expressions are evaluated against the
// chain's original input first.
func (e Expr) Call(args ...any) Expr { return e.with(callOp{args: args}) }

// Method records fetching a named method and calling it, a shorthand for
// Attr(name).Call(args...).
func (e Expr) Method(name string, args ...any) Expr {
	return e.with(attrOp{name: name}).with(callOp{args: args})
}

// Eq records an equality comparison against other, which may itself be an
// expression.
func (e Expr) Eq(other any) Expr { return e.bin("==", opEq, other) }

// Ne records an inequality comparison.
func (e Expr) Ne(other any) Expr { return e.bin("!=", opNe, other) }

// Gt records a greater-than comparison.
func (e Expr) Gt(other any) Expr { return e.bin(">", opGt, other) }

// Ge records a greater-or-equal comparison.
func (e Expr) Ge(other any) Expr { return e.bin(">=", opGe, other) }

// Lt records a less-than comparison.
func (e Expr) Lt(other any) Expr { return e.bin("<", opLt, other) }

// Le records a less-or-equal comparison.
func (e Expr) Le(other any) Expr { return e.bin("<=", opLe, other) }

// Add records addition (numbers) or concatenation (strings).
func (e Expr) Add(other any) Expr { return e.bin("+", opAdd, other) }

// Sub records subtraction.
func (e Expr) Sub(other any) Expr { return e.bin("-", opSub, other) }

// Mul records multiplication.
func (e Expr) Mul(other any) Expr { return e.bin("*", opMul, other) }

// Div records floating-point division.
func (e Expr) Div(other any) Expr { return e.bin("/", opDiv, other) }

// FloorDiv records integer division flooring toward negative infinity.
func (e Expr) FloorDiv(other any) Expr { return e.bin("//", opFloorDiv, other) }

// Mod records the remainder operation.
func (e Expr) Mod(other any) Expr { return e.bin("%", opMod, other) }

// Pow records exponentiation.
func (e Expr) Pow(other any) Expr { return e.bin("**", opPow, other) }

func (e Expr) bin(sym string, fn binFn, other any) Expr {
	return Expr{ops: []op{binOp{sym: sym, fn: fn, left: e, right: other}}}
}

// Not records boolean negation of the whole chain built so far.
func (e Expr) Not() Expr {
	return Expr{ops: []op{notOp{inner: e}}}
}

// Upper records uppercasing a string value.
func (e Expr) Upper() Expr {
	return e.strfn("Upper()", func(s string) (any, error) { return strings.ToUpper(s), nil })
}

// Lower records lowercasing a string value.
func (e Expr) Lower() Expr {
	return e.strfn("Lower()", func(s string) (any, error) { return strings.ToLower(s), nil })
}

// TrimSpace records trimming surrounding whitespace.
func (e Expr) TrimSpace() Expr {
	return e.strfn("TrimSpace()", func(s string) (any, error) { return strings.TrimSpace(s), nil })
}

// Split records splitting a string around sep.
func (e Expr) Split(sep string) Expr {
	return e.strfn(fmt.Sprintf("Split(%q)", sep), func(s string) (any, error) {
		return strings.Split(s, sep), nil
	})
}

// Replace records replacing every occurrence of from with to.
func (e Expr) Replace(from, to string) Expr {
	return e.strfn(fmt.Sprintf("Replace(%q, %q)", from, to), func(s string) (any, error) {
		return strings.ReplaceAll(s, from, to), nil
	})
}

// Contains records a substring test.
func (e Expr) Contains(sub string) Expr {
	return e.strfn(fmt.Sprintf("Contains(%q)", sub), func(s string) (any, error) {
		return strings.Contains(s, sub), nil
	})
}

// HasPrefix records a prefix test.
func (e Expr) HasPrefix(prefix string) Expr {
	return e.strfn(fmt.Sprintf("HasPrefix(%q)", prefix), func(s string) (any, error) {
		return strings.HasPrefix(s, prefix), nil
	})
}

// HasSuffix records a suffix test.
func (e Expr) HasSuffix(suffix string) Expr {
	return e.strfn(fmt.Sprintf("HasSuffix(%q)", suffix), func(s string) (any, error) {
		return strings.HasSuffix(s, suffix), nil
	})
}

func (e Expr) strfn(label string, fn func(string) (any, error)) Expr {
	return e.with(fnOp{label: label, fn: func(v any) (any, error) {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%s needs a string, got %T", label, v)
		}
		return fn(s)
	}})
}

// Len records taking the length of a string, slice, map or collection.
func (e Expr) Len() Expr {
	return e.with(fnOp{label: "Len()", fn: lengthOf})
}

// String renders the chain for error messages and debugging.
func (e Expr) String() string {
	if len(e.ops) == 1 {
		switch e.ops[0].(type) {
		case binOp, notOp:
			return e.ops[0].String()
		}
	}
	var b strings.Builder
	b.WriteString("Q")
	for _, o := range e.ops {
		b.WriteString(o.String())
	}
	return b.String()
}
