package sift

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// Eval replays the recorded operations, in order, against v and returns the
// final plain value. Failures partway through the chain come back as an
// *EvalError capturing where the chain broke.
func (e Expr) Eval(v any) (any, error) {
	cur := v
	for _, o := range e.ops {
		next, err := o.apply(v, cur)
		if err != nil {
			return nil, evalFail(e, o, v, cur, err)
		}
		cur = next
	}
	return cur, nil
}

// evalFail builds the EvalError for a failing step. Failures bubbling out
// of a nested sub-expression keep their inner location, re-scoped to the
// outermost expression and input.
func evalFail(full Expr, failing op, rootVal, curVal any, err error) error {
	var inner *EvalError
	if errors.As(err, &inner) {
		return &EvalError{
			Expr:      full,
			InnerExpr: inner.InnerExpr,
			Val:       rootVal,
			InnerVal:  inner.InnerVal,
			Err:       inner.Err,
		}
	}
	return &EvalError{
		Expr:      full,
		InnerExpr: Expr{ops: []op{failing}},
		Val:       rootVal,
		InnerVal:  curVal,
		Err:       err,
	}
}

// op is one deferred operation in an expression chain. root is the input
// the whole chain received, cur the value produced by the steps before it.
type op interface {
	apply(root, cur any) (any, error)
	String() string
}

type attrOp struct {
	name string
}

func (o attrOp) apply(_, cur any) (any, error) {
	v, err := getAttr(cur, o.name)
	if err == nil {
		return v, nil
	}
	// Retry against the plain value so expressions written for raw data
	// also work when handed a wrapper.
	if w, ok := cur.(Wrapper); ok {
		val, verr := w.Val()
		if verr != nil {
			return nil, verr
		}
		return getAttr(val, o.name)
	}
	return nil, err
}

func (o attrOp) String() string { return "." + o.name }

type itemOp struct {
	key any
}

func (o itemOp) apply(_, cur any) (any, error) {
	v, err := unwrapped(cur)
	if err != nil {
		return nil, err
	}
	return getItem(v, o.key)
}

func (o itemOp) String() string { return "[" + literal(o.key) + "]" }

type sliceOp struct {
	lo, hi int
}

func (o sliceOp) apply(_, cur any) (any, error) {
	v, err := unwrapped(cur)
	if err != nil {
		return nil, err
	}
	return getSlice(v, o.lo, o.hi)
}

func (o sliceOp) String() string {
	hi := ""
	if o.hi != End {
		hi = fmt.Sprint(o.hi)
	}
	return fmt.Sprintf("[%d:%s]", o.lo, hi)
}

type callOp struct {
	args []any
}

func (o callOp) apply(root, cur any) (any, error) {
	args := make([]any, len(o.args))
	for i, a := range o.args {
		if sub, ok := a.(Expr); ok {
			v, err := sub.Eval(root)
			if err != nil {
				return nil, err
			}
			args[i] = v
			continue
		}
		args[i] = a
	}
	fv := reflect.ValueOf(cur)
	if !fv.IsValid() || fv.Kind() != reflect.Func {
		v, err := unwrapped(cur)
		if err != nil {
			return nil, err
		}
		fv = reflect.ValueOf(v)
		if !fv.IsValid() || fv.Kind() != reflect.Func {
			return nil, fmt.Errorf("not callable: %T", cur)
		}
	}
	return callReflect(fv, args)
}

func (o callOp) String() string {
	parts := make([]string, len(o.args))
	for i, a := range o.args {
		parts[i] = literal(a)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

type binOp struct {
	sym         string
	fn          binFn
	left, right any
}

func (o binOp) apply(root, _ any) (any, error) {
	l, err := operand(o.left, root)
	if err != nil {
		return nil, err
	}
	r, err := operand(o.right, root)
	if err != nil {
		return nil, err
	}
	return o.fn(l, r)
}

// operand resolves one side of a binary operation: expressions evaluate
// against the chain input, wrappers unwrap, literals pass through.
func operand(v any, root any) (any, error) {
	if sub, ok := v.(Expr); ok {
		res, err := sub.Eval(root)
		if err != nil {
			return nil, err
		}
		return unwrapped(res)
	}
	return unwrapped(v)
}

func (o binOp) String() string {
	return fmt.Sprintf("%s %s %s", operandString(o.left), o.sym, operandString(o.right))
}

func operandString(v any) string {
	if sub, ok := v.(Expr); ok {
		s := sub.String()
		if len(sub.ops) == 1 {
			if _, nested := sub.ops[0].(binOp); nested {
				return "(" + s + ")"
			}
		}
		return s
	}
	return literal(v)
}

type notOp struct {
	inner Expr
}

func (o notOp) apply(_, cur any) (any, error) {
	v, err := o.inner.Eval(cur)
	if err != nil {
		return nil, err
	}
	return !Truthy(v), nil
}

func (o notOp) String() string { return "!(" + o.inner.String() + ")" }

type fnOp struct {
	label string
	fn    func(any) (any, error)
}

func (o fnOp) apply(_, cur any) (any, error) {
	v, err := unwrapped(cur)
	if err != nil {
		return nil, err
	}
	return o.fn(v)
}

func (o fnOp) String() string { return "." + o.label }

// lengthOf measures strings, slices, arrays, maps and collections.
func lengthOf(v any) (any, error) {
	if c, ok := v.(*Collection); ok {
		if c.IsNull() {
			return nil, &NullValueError{Msg: "collection is null"}
		}
		return c.Len(), nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len(), nil
	}
	return nil, fmt.Errorf("cannot take length of %T", v)
}

// literal renders an argument or operand the way it was supplied.
func literal(v any) string {
	if s, ok := v.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprint(v)
}
