package llm

import "fmt"

// RateLimitError is returned when the API answered 429 on every permitted
// attempt. The caller may retry after a cooldown; this client will not.
type RateLimitError struct {
	Attempts int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exhausted after %d attempts (HTTP 429)", e.Attempts)
}

// RequestError is returned for any non-success, non-429 response, or when
// the request could not be transported at all (StatusCode 0). Never retried.
type RequestError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *RequestError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("chat completion request failed: %v", e.Err)
	}
	return fmt.Sprintf("chat completion API error %d: %s", e.StatusCode, e.Body)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// ResponseShapeError is returned when a success response does not expose
// choices[0].message.content. Indicates an API contract change.
type ResponseShapeError struct {
	Detail string
}

func (e *ResponseShapeError) Error() string {
	return fmt.Sprintf("unexpected chat completion response shape: %s", e.Detail)
}
