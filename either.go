package sift

// Either builds a selector over alternative queries: the returned function
// applies each candidate in turn and yields the first truthy result, or a
// null Scalar when none match.
//
//	title := doc.Apply(sift.Either(
//		sift.Q.Method("Find", "meta[property='og:title']").Method("Attr", "content"),
//		sift.Q.Method("Find", "title").Method("Text"),
//	))
func Either(fns ...any) func(w Wrapper) Wrapper {
	return func(w Wrapper) Wrapper {
		for _, fn := range fns {
			res := w.Apply(fn)
			if Truthy(res) {
				return res
			}
		}
		return NullScalar()
	}
}
