package sift

import (
	"fmt"
	"math"
	"reflect"
)

// End marks an open upper bound for Slice operations.
const End = math.MaxInt

// callFn invokes fn against arg. fn may be an Evaluator (a Q expression),
// one of the common func shapes, or any single-argument function invoked
// through reflection. Reflected calls unwrap wrapper arguments when the
// parameter expects a plain type, so funcs like strings.TrimSpace can be
// passed directly to Each and Map.
func callFn(fn any, arg any) (any, error) {
	switch f := fn.(type) {
	case Evaluator:
		return f.Eval(arg)
	case func(any) any:
		return f(arg), nil
	case func(any) (any, error):
		return f(arg)
	case func(Wrapper) Wrapper:
		w, ok := arg.(Wrapper)
		if !ok {
			w = Wrap(arg)
		}
		return f(w), nil
	}
	fv := reflect.ValueOf(fn)
	if !fv.IsValid() || fv.Kind() != reflect.Func {
		return nil, fmt.Errorf("not callable: %T", fn)
	}
	return callReflect(fv, []any{arg})
}

// callReflect calls a func value with loosely typed arguments, converting
// each to the parameter type. Funcs may return nothing, one value, or a
// value plus an error.
func callReflect(fv reflect.Value, args []any) (any, error) {
	in, err := conformArgs(fv.Type(), args)
	if err != nil {
		return nil, err
	}
	out := fv.Call(in)
	switch len(out) {
	case 0:
		return nil, nil
	case 1:
		return out[0].Interface(), nil
	case 2:
		if e, ok := out[1].Interface().(error); ok && e != nil {
			return nil, e
		}
		return out[0].Interface(), nil
	}
	return nil, fmt.Errorf("unsupported return arity %d", len(out))
}

func conformArgs(ft reflect.Type, args []any) ([]reflect.Value, error) {
	numIn := ft.NumIn()
	if ft.IsVariadic() {
		if len(args) < numIn-1 {
			return nil, fmt.Errorf("got %d arguments, want at least %d", len(args), numIn-1)
		}
	} else if len(args) != numIn {
		return nil, fmt.Errorf("got %d arguments, want %d", len(args), numIn)
	}
	in := make([]reflect.Value, len(args))
	for i, a := range args {
		var want reflect.Type
		if ft.IsVariadic() && i >= numIn-1 {
			want = ft.In(numIn - 1).Elem()
		} else {
			want = ft.In(i)
		}
		v, err := conform(a, want)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		in[i] = v
	}
	return in, nil
}

// conform coerces a into the wanted type: direct assignment first, then
// wrapper unwrapping, then numeric conversion.
func conform(a any, want reflect.Type) (reflect.Value, error) {
	if a == nil {
		return reflect.Zero(want), nil
	}
	av := reflect.ValueOf(a)
	if av.Type().AssignableTo(want) {
		return av, nil
	}
	if w, ok := a.(Wrapper); ok {
		val, err := w.Val()
		if err != nil {
			return reflect.Value{}, err
		}
		return conform(val, want)
	}
	if isNumericKind(av.Kind()) && isNumericKind(want.Kind()) && av.Type().ConvertibleTo(want) {
		return av.Convert(want), nil
	}
	return reflect.Value{}, fmt.Errorf("cannot use %T as %s", a, want)
}

func isNumericKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// getAttr resolves a named attribute on v: a method first, then an exported
// struct field, then a string-keyed map entry.
func getAttr(v any, name string) (any, error) {
	if v == nil {
		return nil, fmt.Errorf("cannot access %q on nil", name)
	}
	rv := reflect.ValueOf(v)
	if m := rv.MethodByName(name); m.IsValid() {
		return m.Interface(), nil
	}
	el := rv
	for el.Kind() == reflect.Pointer {
		if el.IsNil() {
			return nil, fmt.Errorf("cannot access %q on nil %T", name, v)
		}
		el = el.Elem()
	}
	switch el.Kind() {
	case reflect.Struct:
		if f := el.FieldByName(name); f.IsValid() && f.CanInterface() {
			return f.Interface(), nil
		}
	case reflect.Map:
		if el.Type().Key().Kind() == reflect.String {
			mv := el.MapIndex(reflect.ValueOf(name).Convert(el.Type().Key()))
			if mv.IsValid() {
				return mv.Interface(), nil
			}
		}
	}
	return nil, fmt.Errorf("%T has no attribute %q", v, name)
}

// getItem indexes into maps, slices and strings. Negative positions count
// from the end. Missing keys and out-of-range positions are errors; wrapper
// methods translate them into nulls, expressions into EvalErrors.
func getItem(v, key any) (any, error) {
	if v == nil {
		return nil, fmt.Errorf("cannot index nil")
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		kv, err := conform(key, rv.Type().Key())
		if err != nil {
			return nil, fmt.Errorf("bad key: %w", err)
		}
		out := rv.MapIndex(kv)
		if !out.IsValid() {
			return nil, fmt.Errorf("key %v not found", key)
		}
		return out.Interface(), nil
	case reflect.Slice, reflect.Array, reflect.String:
		i, ok := toInt(key)
		if !ok {
			return nil, fmt.Errorf("index must be an integer, got %T", key)
		}
		n := rv.Len()
		if i < 0 {
			i += n
		}
		if i < 0 || i >= n {
			return nil, fmt.Errorf("index %v out of range (len %d)", key, n)
		}
		if rv.Kind() == reflect.String {
			return rv.String()[i : i+1], nil
		}
		return rv.Index(i).Interface(), nil
	}
	return nil, fmt.Errorf("cannot index %T", v)
}

// getSlice subslices slices and strings with clamped bounds; negative
// positions count from the end.
func getSlice(v any, lo, hi int) (any, error) {
	if v == nil {
		return nil, fmt.Errorf("cannot slice nil")
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		lo, hi = clampRange(lo, hi, rv.Len())
		return rv.String()[lo:hi], nil
	case reflect.Slice:
		lo, hi = clampRange(lo, hi, rv.Len())
		return rv.Slice(lo, hi).Interface(), nil
	}
	return nil, fmt.Errorf("cannot slice %T", v)
}

func clampRange(lo, hi, n int) (int, int) {
	if lo < 0 {
		lo += n
	}
	if hi < 0 {
		hi += n
	}
	if lo < 0 {
		lo = 0
	}
	if hi > n {
		hi = n
	}
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

func toInt(v any) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case int8:
		return int(t), true
	case int16:
		return int(t), true
	case int32:
		return int(t), true
	case int64:
		return int(t), true
	case uint:
		return int(t), true
	case uint8:
		return int(t), true
	case uint16:
		return int(t), true
	case uint32:
		return int(t), true
	case uint64:
		return int(t), true
	case float64:
		if t == math.Trunc(t) {
			return int(t), true
		}
	case float32:
		if float64(t) == math.Trunc(float64(t)) {
			return int(t), true
		}
	}
	return 0, false
}
