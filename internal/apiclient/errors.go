package apiclient

import "fmt"

// APIError carries a non-2xx backend response back to the caller with the
// status and body intact so the presentation layer can render it.
type APIError struct {
	Status      int
	ContentType string
	Body        []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend returned status %d", e.Status)
}

// AsAPIError unwraps an error into an *APIError if it is one.
func AsAPIError(err error) (*APIError, bool) {
	apiErr, ok := err.(*APIError)
	return apiErr, ok
}
