package sift

import "fmt"

// Collection wraps an ordered sequence of wrappers. Uniform element type is
// not enforced. Combinators return new Collections; the null Collection
// absorbs every combinator and fails only at extraction.
type Collection struct {
	items []Wrapper
	null  bool
	err   error
}

// NewCollection wraps a sequence of wrappers.
func NewCollection(items []Wrapper) *Collection {
	cp := make([]Wrapper, len(items))
	copy(cp, items)
	return &Collection{items: cp}
}

// NullCollection returns the null Collection, produced when a multi-match
// query is made against a null node.
func NullCollection() *Collection { return &Collection{null: true} }

func nullCollectionErr(err error) *Collection { return &Collection{null: true, err: err} }

// IsNull reports whether the collection holds no value. An empty populated
// collection is not null.
func (c *Collection) IsNull() bool { return c.null }

// Len returns the number of items, zero when null.
func (c *Collection) Len() int { return len(c.items) }

// Items returns a copy of the wrapped elements.
func (c *Collection) Items() []Wrapper {
	cp := make([]Wrapper, len(c.items))
	copy(cp, c.items)
	return cp
}

// Val unwraps every item into a []any. It fails with a NullValueError when
// the collection itself or any of its items is null.
func (c *Collection) Val() (any, error) {
	if c.null {
		return nil, &NullValueError{Cause: c.err}
	}
	vals := make([]any, len(c.items))
	for i, item := range c.items {
		v, err := item.Val()
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return vals, nil
}

// Strings unwraps every item into a string slice; non-string values are
// formatted.
func (c *Collection) Strings() ([]string, error) {
	raw, err := c.Val()
	if err != nil {
		return nil, err
	}
	vals := raw.([]any)
	out := make([]string, len(vals))
	for i, v := range vals {
		if s, ok := v.(string); ok {
			out[i] = s
			continue
		}
		out[i] = fmt.Sprint(v)
	}
	return out, nil
}

// OrElse substitutes a replacement value when null.
func (c *Collection) OrElse(v any) Wrapper {
	if c.null {
		return Wrap(v)
	}
	return c
}

// NonNull asserts the collection matched.
func (c *Collection) NonNull() (*Collection, error) {
	if c.null {
		return nil, &NullValueError{Msg: "collection is null", Cause: c.err}
	}
	return c, nil
}

// Require asserts pred holds for this collection. A null collection always
// fails.
func (c *Collection) Require(pred any, msg string) (*Collection, error) {
	if err := requireOn(c, pred, msg); err != nil {
		return nil, err
	}
	return c, nil
}

// Map applies fn to the item slice itself and rewraps the result.
func (c *Collection) Map(fn any) Wrapper {
	if c.null {
		return c
	}
	return mapValue(c.items, fn)
}

// Apply applies fn to the collection itself.
func (c *Collection) Apply(fn any) Wrapper {
	if c.null {
		return c
	}
	return mapValue(c, fn)
}

// Item returns the element at an integer position, negatives counting from
// the end. Out-of-range positions yield a NullNode, mirroring index access
// on queries that came up empty.
func (c *Collection) Item(key any) Wrapper {
	i, ok := toInt(key)
	if !ok {
		return nullNodeErr(fmt.Errorf("collection index must be an integer, got %T", key))
	}
	if c.null {
		return NullNode()
	}
	if i < 0 {
		i += len(c.items)
	}
	if i < 0 || i >= len(c.items) {
		return NullNode()
	}
	return c.items[i]
}

// First returns the first element, or NullNode when empty.
func (c *Collection) First() Wrapper { return c.Item(0) }

// Slice returns a sub-collection with clamped bounds; negatives count from
// the end and End marks an open upper bound.
func (c *Collection) Slice(lo, hi int) *Collection {
	if c.null {
		return c
	}
	lo, hi = clampRange(lo, hi, len(c.items))
	return NewCollection(c.items[lo:hi])
}

// Each applies fn to every element wrapper and collects the rewrapped
// results. With several fns, every result item is a Scalar holding the
// tuple of unwrapped outputs.
func (c *Collection) Each(fns ...any) *Collection {
	if c.null {
		return c
	}
	if len(fns) == 1 {
		out := make([]Wrapper, len(c.items))
		for i, item := range c.items {
			res, err := callFn(fns[0], item)
			if err != nil {
				out[i] = nullScalarErr(err)
				continue
			}
			out[i] = Wrap(res)
		}
		return NewCollection(out)
	}
	out := make([]Wrapper, len(c.items))
	for i, item := range c.items {
		tuple := make([]any, len(fns))
		failed := false
		for j, fn := range fns {
			res, err := callFn(fn, item)
			if err == nil {
				res, err = unwrapped(res)
			}
			if err != nil {
				out[i] = nullScalarErr(err)
				failed = true
				break
			}
			tuple[j] = res
		}
		if !failed {
			out[i] = NewScalar(tuple)
		}
	}
	return NewCollection(out)
}

// Filter keeps the elements where fn is truthy, in original order.
// Elements where fn errors are dropped.
func (c *Collection) Filter(fn any) *Collection {
	if c.null {
		return c
	}
	out := make([]Wrapper, 0, len(c.items))
	for _, item := range c.items {
		if truthyResult(fn, item) {
			out = append(out, item)
		}
	}
	return NewCollection(out)
}

// TakeWhile keeps the leading elements for which fn stays truthy.
func (c *Collection) TakeWhile(fn any) *Collection {
	if c.null {
		return c
	}
	out := make([]Wrapper, 0, len(c.items))
	for _, item := range c.items {
		if !truthyResult(fn, item) {
			break
		}
		out = append(out, item)
	}
	return NewCollection(out)
}

// DropWhile discards the leading elements for which fn stays truthy.
func (c *Collection) DropWhile(fn any) *Collection {
	if c.null {
		return c
	}
	for i, item := range c.items {
		if !truthyResult(fn, item) {
			return NewCollection(c.items[i:])
		}
	}
	return NewCollection(nil)
}

func truthyResult(fn any, item Wrapper) bool {
	res, err := callFn(fn, item)
	if err != nil {
		return false
	}
	return Truthy(res)
}

// Count returns the item count as a Scalar; a null collection counts zero.
func (c *Collection) Count() *Scalar { return NewScalar(len(c.items)) }

// All is Scalar(true) when every item is truthy or the collection is empty.
func (c *Collection) All() *Scalar {
	if c.null {
		return NullScalar()
	}
	for _, item := range c.items {
		if !Truthy(item) {
			return NewScalar(false)
		}
	}
	return NewScalar(true)
}

// Any is Scalar(true) when at least one item is truthy.
func (c *Collection) Any() *Scalar {
	if c.null {
		return NullScalar()
	}
	for _, item := range c.items {
		if Truthy(item) {
			return NewScalar(true)
		}
	}
	return NewScalar(false)
}

// None is Scalar(true) when no item is truthy.
func (c *Collection) None() *Scalar {
	some := c.Any()
	if some.IsNull() {
		return some
	}
	ok, _ := some.Bool()
	return NewScalar(!ok)
}

// Zip pairs this collection's values positionally with the others. All
// collections must have equal length; a mismatch yields a null collection
// carrying ErrLengthMismatch rather than silent truncation.
func (c *Collection) Zip(others ...*Collection) *Collection {
	if c.null {
		return c
	}
	cols := append([]*Collection{c}, others...)
	for _, col := range cols {
		if col.IsNull() {
			return NullCollection()
		}
		if col.Len() != c.Len() {
			return nullCollectionErr(fmt.Errorf("zip: %w: %d vs %d items", ErrLengthMismatch, c.Len(), col.Len()))
		}
	}
	out := make([]Wrapper, c.Len())
	for i := range out {
		tuple := make([]any, len(cols))
		for j, col := range cols {
			v, err := col.items[i].Val()
			if err != nil {
				return nullCollectionErr(err)
			}
			tuple[j] = v
		}
		out[i] = NewScalar(tuple)
	}
	return NewCollection(out)
}

// DictZip builds a Scalar map from keys to this collection's values,
// positionally. Keys may be a Collection, []string or []any; unequal
// lengths yield a null Scalar carrying ErrLengthMismatch.
func (c *Collection) DictZip(keys any) *Scalar {
	if c.null {
		return NullScalar()
	}
	ks, err := keyStrings(keys)
	if err != nil {
		return nullScalarErr(fmt.Errorf("dictzip: %w", err))
	}
	if len(ks) != c.Len() {
		return nullScalarErr(fmt.Errorf("dictzip: %w: %d keys, %d values", ErrLengthMismatch, len(ks), c.Len()))
	}
	out := make(map[string]any, len(ks))
	for i, k := range ks {
		v, err := c.items[i].Val()
		if err != nil {
			return nullScalarErr(err)
		}
		out[k] = v
	}
	return NewScalar(out)
}

func keyStrings(keys any) ([]string, error) {
	switch t := keys.(type) {
	case *Collection:
		if t.IsNull() {
			return nil, &NullValueError{Msg: "keys collection is null"}
		}
		return t.Strings()
	case []string:
		return t, nil
	case []any:
		out := make([]string, len(t))
		for i, k := range t {
			if s, ok := k.(string); ok {
				out[i] = s
				continue
			}
			out[i] = fmt.Sprint(k)
		}
		return out, nil
	}
	return nil, fmt.Errorf("unsupported key sequence %T", keys)
}

// Dump builds one Scalar record per element.
func (c *Collection) Dump(fields map[string]any) *Collection {
	if c.null {
		return c
	}
	out := make([]Wrapper, len(c.items))
	for i, item := range c.items {
		out[i] = dumpWrapper(item, fields)
	}
	return NewCollection(out)
}

// String renders the collection for debugging.
func (c *Collection) String() string {
	if c.null {
		return "NullCollection()"
	}
	return fmt.Sprintf("Collection(%d items)", len(c.items))
}
