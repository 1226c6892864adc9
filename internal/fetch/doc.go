// Package fetch retrieves remote pages with retries and rate limiting.
package fetch
