// Package gemini implements generation.DescriptionGenerator on Google's
// Gemini API through the google.golang.org/genai client.
//
// Transient failures (network errors, HTTP 429 and 5xx) are retried with
// exponential backoff and jitter up to the configured number of retries.
// Safety blocks, empty responses and other client errors fail immediately.
// The server normally wraps this generator with generation.WithFallback so
// that an unavailable model degrades to the template description.
package gemini
