// Command sift extracts structured data from HTML documents.
//
// Inputs may be files, globs, directories, URLs, or stdin ("-").
// Extraction is driven either by one-off flags (-selector, -xpath,
// -attr, -all, -sanitize) or by a YAML recipe (-recipe) describing
// multiple named fields. Results are printed as JSON, one record per
// input document.
//
// Usage:
//
//	sift -selector "h1" page.html
//	sift -selector "a" -attr href -all https://example.com
//	sift -recipe fields.yaml "archive/**/*.html.gz"
package main
