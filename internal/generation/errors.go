package generation

import "errors"

// Common errors returned by description generators.
var (
	// ErrGenerationFailed is returned when a description could not be produced.
	ErrGenerationFailed = errors.New("failed to generate description")

	// ErrInvalidResponse is returned when the LLM response is empty or malformed.
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrContentBlocked is returned when the LLM blocks the content due to safety filters.
	ErrContentBlocked = errors.New("content blocked by language model safety filters")

	// ErrTransientFailure is returned for temporary errors that might resolve on retry.
	ErrTransientFailure = errors.New("transient error during description generation")

	// ErrInvalidConfig is returned when the generator configuration is invalid.
	ErrInvalidConfig = errors.New("invalid generator configuration")
)
