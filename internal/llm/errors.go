package llm

import "errors"

var (
	// ErrOllamaUnavailable indicates the Ollama server is unreachable.
	ErrOllamaUnavailable = errors.New("ollama server unavailable")

	// ErrTimeout indicates the request exceeded the task timeout.
	ErrTimeout = errors.New("llm request timed out")

	// ErrInvalidOutput indicates the response did not match the expected
	// structured shape.
	ErrInvalidOutput = errors.New("invalid llm output format")

	// ErrBadStatus indicates a non-200 response from the backend.
	ErrBadStatus = errors.New("llm backend returned an error status")

	// ErrRetryExhausted wraps the last failure once every attempt is used.
	ErrRetryExhausted = errors.New("llm retries exhausted")

	// ErrDisabled is returned by the disabled client.
	ErrDisabled = errors.New("llm generation disabled")
)
