// Package sift provides null-safe chainable queries over parsed HTML.
//
// The package is organized around two cooperating pieces:
//   - A wrapper hierarchy (Node, Collection, Scalar) where every query
//     returns a wrapper of a fixed kind. Failed lookups return the null
//     variant of that kind instead of an error, so chains never branch
//     mid-flight; failure surfaces only at extraction (Val, NonNull,
//     Require) as a NullValueError.
//   - A deferred expression builder (Q) that records attribute access,
//     indexing, calls and operators without executing them, replayed later
//     against concrete values by Eval.
//
// Built on specialized libraries:
//   - goquery: jQuery-like CSS selectors and tree navigation
//   - htmlquery: XPath support for HTML
//   - bluemonday: HTML sanitization
//   - chardet: Character encoding detection
//
// Example Usage:
//
//	doc, _ := sift.Parse(`<div><a href="/home">Home</a></div>`)
//	href, err := doc.Find("a").Attr("href").OrElse("#").Val()
//
//	texts := doc.FindAll("a").Each(sift.Q.Method("Text").TrimSpace())
package sift
