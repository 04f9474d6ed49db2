// Package resilience provides retry with exponential backoff for remote calls.
//
// The zero RetryConfig performs a single attempt, so callers opt in to
// retries explicitly.
package resilience
