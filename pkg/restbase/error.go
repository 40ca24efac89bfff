package restbase

import (
	"fmt"
	"io"
	"net/http"

	"github.com/pkg/errors"
	"github.com/valyala/fastjson"
)

// maxErrorBody bounds the amount of bytes read from an error response.
const maxErrorBody = 1 << 20

// An HTTPError represents an error response returned by the API.
type HTTPError struct {
	StatusCode int
	Status     string
	Method     string
	URL        string
	// Message is the error message sent by the server, if any.
	Message string
	Body    []byte
}

func parseHTTPError(res *http.Response, method, url string) *HTTPError {
	herr := &HTTPError{
		StatusCode: res.StatusCode,
		Status:     http.StatusText(res.StatusCode),
		Method:     method,
		URL:        url,
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
	if err != nil {
		return herr
	}
	herr.Body = body

	v, err := fastjson.ParseBytes(body)
	if err != nil {
		return herr
	}

	// {"error":{"message":"..."}}, {"error":"..."} or {"message":"..."}
	switch {
	case v.Exists("error", "message"):
		herr.Message = string(v.GetStringBytes("error", "message"))
	case v.Get("error") != nil && v.Get("error").Type() == fastjson.TypeString:
		herr.Message = string(v.GetStringBytes("error"))
	default:
		herr.Message = string(v.GetStringBytes("message"))
	}
	return herr
}

// Error implements error interface.
func (e *HTTPError) Error() string {
	msg := fmt.Sprintf("Http failure response for %s: %d %s", e.URL, e.StatusCode, e.Status)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// StatusCode returns the HTTP status code of the given error.
// It returns 0 when err is not an HTTPError.
func StatusCode(err error) int {
	var herr *HTTPError
	if errors.As(err, &herr) {
		return herr.StatusCode
	}
	return 0
}

// IsUnauthorized returns true if err is a 401 response.
func IsUnauthorized(err error) bool {
	return StatusCode(err) == http.StatusUnauthorized
}

// IsForbidden returns true if err is a 403 response.
func IsForbidden(err error) bool {
	return StatusCode(err) == http.StatusForbidden
}
