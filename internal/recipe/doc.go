// Package recipe compiles declarative YAML extraction recipes into
// sift query chains.
package recipe
