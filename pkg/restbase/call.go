package restbase

import (
	"context"
	"strings"
)

type (
	// A CallOption configures a single call.
	CallOption func(*Call)

	// A Call is a lazy request. Nothing is sent until Do or Go is invoked
	// and each invocation sends a new request.
	Call struct {
		client                       *Client
		method                       string
		suffix                       string
		body                         any
		params                       QueryParams
		excludeAuthenticationHeaders bool
	}
)

// ExcludeAuthenticationHeaders removes the Authorization header from the call.
func ExcludeAuthenticationHeaders() CallOption {
	return func(c *Call) {
		c.excludeAuthenticationHeaders = true
	}
}

// Method returns the HTTP method of the call.
func (c *Call) Method() string {
	return c.method
}

// URL returns the URL of the call, query string included.
func (c *Call) URL() string {
	u := c.client.resourceURL + c.suffix

	query := c.params.Encode()
	if query == "" {
		return u
	}

	if strings.Contains(c.suffix, "?") {
		return u + "&" + query
	}
	return u + "?" + query
}

// Do sends the request and decodes the JSON response into out.
// A nil out discards the response body.
func (c *Call) Do(ctx context.Context, out any) error {
	return c.client.do(ctx, c, out)
}

// Go sends the request in its own goroutine.
// The returned channel receives the outcome once, out is filled before it is sent.
func (c *Call) Go(ctx context.Context, out any) <-chan error {
	errc := make(chan error, 1)
	go func() {
		errc <- c.Do(ctx, out)
	}()
	return errc
}

// Await sends the call and returns its decoded response.
func Await[T any](ctx context.Context, call *Call) (T, error) {
	var v T
	err := call.Do(ctx, &v)
	return v, err
}
