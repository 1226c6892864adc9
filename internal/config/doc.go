// Package config loads CLI configuration from SIFT_* environment
// variables with sensible defaults.
package config
