package sift

import (
	"fmt"
	"reflect"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Evaluator is satisfied by Expr and anything else that can replay itself
// against a concrete input. Transformation methods accept Evaluators
// wherever they accept plain functions.
type Evaluator interface {
	Eval(v any) (any, error)
}

// Wrapper is the uniform chainable surface shared by Node, Collection and
// Scalar. A wrapper holds either real data or a null marker. Every
// navigation and transformation method is total; failure surfaces only at
// extraction (Val) or assertion (NonNull, Require) as a NullValueError.
type Wrapper interface {
	// Val returns the underlying value, or a NullValueError when null.
	Val() (any, error)
	// IsNull reports whether the wrapper holds no value.
	IsNull() bool
	// OrElse substitutes a replacement value when null, and is a no-op
	// otherwise.
	OrElse(v any) Wrapper
	// Map applies fn to the underlying value and rewraps the result by
	// shape. On a null wrapper fn is never invoked and the null
	// propagates unchanged.
	Map(fn any) Wrapper
	// Apply is Map over the wrapper itself rather than its contents.
	Apply(fn any) Wrapper
	// Item indexes into the underlying value: attribute lookup for nodes,
	// key or position for scalars, position for collections.
	Item(key any) Wrapper
}

// Wrap classifies a value into the appropriate wrapper kind: selections and
// parsed nodes become Nodes, sequences become Collections, wrappers pass
// through, everything else becomes a Scalar.
func Wrap(v any) Wrapper {
	switch t := v.(type) {
	case nil:
		return NullScalar()
	case Wrapper:
		return t
	case *goquery.Document:
		return FromDocument(t)
	case *goquery.Selection:
		return FromSelection(t)
	case *html.Node:
		return &Node{sel: singleSel(t)}
	case []Wrapper:
		return NewCollection(t)
	case []byte, string:
		return NewScalar(v)
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		items := make([]Wrapper, rv.Len())
		for i := range items {
			items[i] = Wrap(rv.Index(i).Interface())
		}
		return NewCollection(items)
	}
	return NewScalar(v)
}

// singleSel wraps one parsed node in a selection. The node keeps its links
// into the original tree, so navigation from the result still works.
func singleSel(nd *html.Node) *goquery.Selection {
	return goquery.NewDocumentFromNode(nd).Selection
}

// mapValue applies fn to a raw value and rewraps, routing failures to a
// null scalar instead of erroring mid-chain.
func mapValue(v any, fn any) Wrapper {
	res, err := callFn(fn, v)
	if err != nil {
		return nullScalarErr(err)
	}
	return Wrap(res)
}

// requireOn implements the shared Require rule: a null wrapper always
// fails, a populated wrapper fails when the predicate is falsy or errors.
func requireOn(w Wrapper, pred any, msg string) error {
	if msg == "" {
		msg = "requirement violated"
	}
	if w.IsNull() {
		return &NullValueError{Msg: msg + " (wrapper is null)"}
	}
	res, err := callFn(pred, w)
	if err != nil {
		return &NullValueError{Msg: msg, Cause: err}
	}
	if !Truthy(res) {
		return &NullValueError{Msg: msg}
	}
	return nil
}

// dumpWrapper evaluates each named function against the wrapper and
// collects the unwrapped results into a Scalar record. Any failing field
// turns the whole record null, carrying the cause.
func dumpWrapper(w Wrapper, fields map[string]any) *Scalar {
	if w.IsNull() {
		return NullScalar()
	}
	rec := make(map[string]any, len(fields))
	for name, fn := range fields {
		res, err := callFn(fn, w)
		if err != nil {
			return nullScalarErr(fmt.Errorf("dump field %q: %w", name, err))
		}
		val, err := unwrapped(res)
		if err != nil {
			return nullScalarErr(fmt.Errorf("dump field %q: %w", name, err))
		}
		rec[name] = val
	}
	return NewScalar(rec)
}

// unwrapped extracts the plain value behind v if it is a wrapper. Null
// wrappers yield their extraction error.
func unwrapped(v any) (any, error) {
	if w, ok := v.(Wrapper); ok {
		return w.Val()
	}
	return v, nil
}
