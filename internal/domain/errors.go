package domain

import "fmt"

// RemoteFetchError is returned when the catalog answers with a non-success response.
type RemoteFetchError struct {
	StatusCode int
	Code       int
	Message    string
}

func (e *RemoteFetchError) Error() string {
	if e.StatusCode != 0 && e.StatusCode != 200 {
		return fmt.Sprintf("remote fetch: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("remote fetch: code %d: %s", e.Code, e.Message)
}
