// Package source resolves CLI input arguments (stdin, files, globs,
// directories, URLs) into in-memory documents.
package source
