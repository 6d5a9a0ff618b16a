package hackernews

import "fmt"

// RequestError reports a transport failure or a non-2xx status from the API.
type RequestError struct {
	URL    string
	Status int // 0 when the request never produced a response
	Err    error
}

func (e *RequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("hackernews: request %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("hackernews: request %s: status %d", e.URL, e.Status)
}

func (e *RequestError) Unwrap() error { return e.Err }

// DecodeError reports a malformed or schema-mismatched JSON response.
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("hackernews: decode %s: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
