// Package logging provides structured logging for the sift CLI.
//
// Logs go to stderr so extracted JSON on stdout stays clean. Production
// output is JSON; development mode switches to a colored console encoder.
package logging
