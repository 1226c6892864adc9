package sift

import "fmt"

// Scalar wraps an arbitrary plain value: strings, numbers, maps, booleans.
// Comparison and arithmetic methods delegate to the underlying value and
// rewrap the result; any of them applied to a null Scalar yields a null
// Scalar.
type Scalar struct {
	v    any
	null bool
	err  error
}

// NewScalar wraps a plain value.
func NewScalar(v any) *Scalar { return &Scalar{v: v} }

// NullScalar returns the null Scalar, produced when a value-level lookup
// fails.
func NullScalar() *Scalar { return &Scalar{null: true} }

func nullScalarErr(err error) *Scalar { return &Scalar{null: true, err: err} }

// IsNull reports whether the scalar holds no value.
func (s *Scalar) IsNull() bool { return s.null }

// Val returns the held value, or a NullValueError carrying the failure
// that produced the null.
func (s *Scalar) Val() (any, error) {
	if s.null {
		return nil, &NullValueError{Cause: s.err}
	}
	return s.v, nil
}

// OrElse substitutes a replacement value when null.
func (s *Scalar) OrElse(v any) Wrapper {
	if s.null {
		return Wrap(v)
	}
	return s
}

// NonNull asserts the scalar matched; it returns the scalar unchanged or a
// NullValueError.
func (s *Scalar) NonNull() (*Scalar, error) {
	if s.null {
		return nil, &NullValueError{Msg: "scalar is null", Cause: s.err}
	}
	return s, nil
}

// Require asserts pred holds for this scalar. A null scalar always fails.
func (s *Scalar) Require(pred any, msg string) (*Scalar, error) {
	if err := requireOn(s, pred, msg); err != nil {
		return nil, err
	}
	return s, nil
}

// Map applies fn to the held value and rewraps the result by shape.
func (s *Scalar) Map(fn any) Wrapper {
	if s.null {
		return s
	}
	return mapValue(s.v, fn)
}

// Apply applies fn to the scalar itself.
func (s *Scalar) Apply(fn any) Wrapper {
	if s.null {
		return s
	}
	return mapValue(s, fn)
}

// Item indexes into the held value (map key, slice or string position).
// Missing keys yield a null Scalar.
func (s *Scalar) Item(key any) Wrapper {
	if s.null {
		return s
	}
	v, err := getItem(s.v, key)
	if err != nil {
		return nullScalarErr(err)
	}
	return Wrap(v)
}

// Slice subslices the held string or slice with clamped bounds. Use End
// for an open upper bound.
func (s *Scalar) Slice(lo, hi int) *Scalar {
	if s.null {
		return s
	}
	v, err := getSlice(s.v, lo, hi)
	if err != nil {
		return nullScalarErr(err)
	}
	return NewScalar(v)
}

// Dump evaluates named functions against this scalar into a Scalar record.
func (s *Scalar) Dump(fields map[string]any) *Scalar {
	return dumpWrapper(s, fields)
}

// Str extracts the held value as a string.
func (s *Scalar) Str() (string, error) {
	v, err := s.Val()
	if err != nil {
		return "", err
	}
	str, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("scalar holds %T, not string", v)
	}
	return str, nil
}

// Int extracts the held value as an int, accepting any integral numeric.
func (s *Scalar) Int() (int, error) {
	v, err := s.Val()
	if err != nil {
		return 0, err
	}
	i, ok := toInt(v)
	if !ok {
		return 0, fmt.Errorf("scalar holds %T, not an integer", v)
	}
	return i, nil
}

// Float extracts the held value as a float64.
func (s *Scalar) Float() (float64, error) {
	v, err := s.Val()
	if err != nil {
		return 0, err
	}
	f, ok := toFloat(v)
	if !ok {
		return 0, fmt.Errorf("scalar holds %T, not numeric", v)
	}
	return f, nil
}

// Bool extracts the held value's truthiness.
func (s *Scalar) Bool() (bool, error) {
	v, err := s.Val()
	if err != nil {
		return false, err
	}
	return Truthy(v), nil
}

// Eq compares the held value with other, rewrapping the bool result.
func (s *Scalar) Eq(other any) *Scalar { return s.binop(opEq, other) }

// Ne is the negated Eq.
func (s *Scalar) Ne(other any) *Scalar { return s.binop(opNe, other) }

// Gt compares numerically or lexicographically.
func (s *Scalar) Gt(other any) *Scalar { return s.binop(opGt, other) }

// Ge compares numerically or lexicographically.
func (s *Scalar) Ge(other any) *Scalar { return s.binop(opGe, other) }

// Lt compares numerically or lexicographically.
func (s *Scalar) Lt(other any) *Scalar { return s.binop(opLt, other) }

// Le compares numerically or lexicographically.
func (s *Scalar) Le(other any) *Scalar { return s.binop(opLe, other) }

// Add adds numbers or concatenates strings.
func (s *Scalar) Add(other any) *Scalar { return s.binop(opAdd, other) }

// Sub subtracts numbers.
func (s *Scalar) Sub(other any) *Scalar { return s.binop(opSub, other) }

// Mul multiplies numbers.
func (s *Scalar) Mul(other any) *Scalar { return s.binop(opMul, other) }

// Div divides as floating point.
func (s *Scalar) Div(other any) *Scalar { return s.binop(opDiv, other) }

// FloorDiv divides integers, flooring toward negative infinity.
func (s *Scalar) FloorDiv(other any) *Scalar { return s.binop(opFloorDiv, other) }

// Mod takes the remainder.
func (s *Scalar) Mod(other any) *Scalar { return s.binop(opMod, other) }

// Pow exponentiates.
func (s *Scalar) Pow(other any) *Scalar { return s.binop(opPow, other) }

func (s *Scalar) binop(fn binFn, other any) *Scalar {
	if s.null {
		return s
	}
	if w, ok := other.(Wrapper); ok {
		if w.IsNull() {
			return NullScalar()
		}
		val, err := w.Val()
		if err != nil {
			return nullScalarErr(err)
		}
		other = val
	}
	res, err := fn(s.v, other)
	if err != nil {
		return nullScalarErr(err)
	}
	return NewScalar(res)
}

// String renders the scalar for debugging.
func (s *Scalar) String() string {
	if s.null {
		return "NullScalar()"
	}
	return fmt.Sprintf("Scalar(%v)", s.v)
}
