package backend

import (
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Error is a non-2xx response from the backend.
// Message is the response body, or the HTTP status phrase when the body is empty.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return e.Message
}

// errorFromResponse reads the body of a failed response and builds an *Error.
func errorFromResponse(resp *http.Response) *Error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	if msg == "" {
		msg = fmt.Sprintf("HTTP %d", resp.StatusCode)
	}
	return &Error{StatusCode: resp.StatusCode, Message: msg}
}
