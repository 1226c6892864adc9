package sift

import "fmt"

// EvalError reports a failure partway through expression replay. It carries
// enough state to see exactly where a chain broke without re-running the
// successful prefix:
//
//	Expr      the full expression that was being evaluated
//	InnerExpr the specific sub-expression whose step failed
//	Val       the input the full expression received
//	InnerVal  the value the failing step received
//
// Retrieve it from a chain with errors.As:
//
//	_, err := sift.Q.Item("href").Split("/").Item(1).Eval(val)
//	var ee *sift.EvalError
//	if errors.As(err, &ee) { ... }
type EvalError struct {
	Expr      Expr
	InnerExpr Expr
	Val       any
	InnerVal  any
	Err       error
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("evaluating %s: step %s failed on %s: %v",
		e.Expr, e.InnerExpr, preview(e.InnerVal), e.Err)
}

// Unwrap exposes the underlying failure.
func (e *EvalError) Unwrap() error { return e.Err }

// preview renders a value for an error message, hiding values too large to
// read.
func preview(v any) string {
	s := fmt.Sprintf("%#v", v)
	if len(s) > 150 {
		return fmt.Sprintf("<%T instance>", v)
	}
	return s
}
