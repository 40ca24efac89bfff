package restbase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/valyala/fastjson"
)

type (
	// An Option configures a Client.
	Option func(*Client) error

	// A Client issues the calls of one API resource.
	// All its requests are sent to its resource URL.
	Client struct {
		http        *http.Client
		navigator   Navigator
		storage     Storage
		logger      logrus.FieldLogger
		env         Environment
		apiversion  string
		resourceURL string
	}
)

// WithAPIVersion overrides the API version of the environment.
func WithAPIVersion(version string) Option {
	return func(c *Client) error {
		c.apiversion = version
		return nil
	}
}

// WithEnvironment sets the environment used by the client.
func WithEnvironment(env Environment) Option {
	return func(c *Client) error {
		if env.UserKey == "" {
			return errors.New("environment user key can't be empty")
		}
		c.env = env
		return nil
	}
}

// WithStorage sets the storage holding the session credential.
func WithStorage(s Storage) Option {
	return func(c *Client) error {
		if s == nil {
			return errors.New("storage can't be nil")
		}
		c.storage = s
		return nil
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Client) error {
		c.logger = l
		return nil
	}
}

// NewClient returns a new Client for the given resource.
// Its resource URL is `<APIURL>/<APIVersion>/<resource>`.
func NewClient(c *http.Client, navigator Navigator, resource string, opts ...Option) (*Client, error) {
	if c == nil {
		c = http.DefaultClient
	}
	if navigator == nil {
		navigator = NopNavigator
	}

	client := &Client{
		http:      c,
		navigator: navigator,
		env:       DefaultEnvironment(),
	}
	for _, opt := range opts {
		if err := opt(client); err != nil {
			return nil, errors.Wrap(err, "invalid option")
		}
	}

	if client.storage == nil {
		client.storage = NewMemoryStorage()
	}
	if client.logger == nil {
		client.logger = logrus.StandardLogger()
	}
	if client.apiversion == "" {
		client.apiversion = client.env.APIVersion
	}

	if _, err := url.Parse(client.env.APIURL); err != nil {
		return nil, errors.Wrap(err, "could not parse API URL")
	}

	client.resourceURL = fmt.Sprintf("%s/%s/%s",
		strings.TrimSuffix(client.env.APIURL, "/"),
		client.apiversion,
		strings.TrimPrefix(resource, "/"),
	)
	return client, nil
}

// ResourceURL returns the URL all the requests of the client are sent to.
func (c *Client) ResourceURL() string {
	return c.resourceURL
}

// Environment returns the environment of the client.
func (c *Client) Environment() Environment {
	return c.env
}

// Storage returns the storage holding the session credential.
func (c *Client) Storage() Storage {
	return c.storage
}

// ClearSession removes the session credential from the storage.
func (c *Client) ClearSession() error {
	return errors.Wrap(c.storage.RemoveItem(c.env.UserKey), "could not clear session")
}

// AccessToken returns the access token of the stored session.
// It returns an empty string when no session is stored or when the stored value can't be read.
func (c *Client) AccessToken() string {
	raw, ok, err := c.storage.GetItem(c.env.UserKey)
	if err != nil {
		c.logger.WithError(err).Warn("could not read the stored session")
		return ""
	}
	if !ok || raw == "" {
		return ""
	}

	v, err := fastjson.Parse(raw)
	if err != nil {
		c.logger.WithError(err).WithField("key", c.env.UserKey).Warn("malformed stored session")
		return ""
	}

	token := v.Get("accessToken")
	if token == nil {
		return ""
	}

	switch token.Type() {
	case fastjson.TypeString:
		return string(token.GetStringBytes())
	case fastjson.TypeNumber:
		// Zero is a falsy token, as are false and null.
		if f, _ := token.Float64(); f == 0 {
			return ""
		}
		return token.String()
	case fastjson.TypeTrue:
		return token.String()
	case fastjson.TypeFalse, fastjson.TypeNull:
		return ""
	default:
		c.logger.WithField("key", c.env.UserKey).Warnf("unsupported access token type: %s", token.Type())
		return ""
	}
}

// AuthorizationHeaders returns the bearer authorization header.
// It returns nil when there is no access token.
func (c *Client) AuthorizationHeaders() http.Header {
	token := c.AccessToken()
	if token == "" {
		return nil
	}

	return http.Header{
		"Authorization": []string{fmt.Sprintf("Bearer %s", token)},
	}
}

// Get returns a lazy GET call.
func (c *Client) Get(suffix string, params QueryParams, opts ...CallOption) *Call {
	return c.newCall(http.MethodGet, suffix, nil, params, opts)
}

// GetAsync performs a GET call and decodes the response into out.
func (c *Client) GetAsync(ctx context.Context, out any, suffix string, params QueryParams, opts ...CallOption) error {
	return c.Get(suffix, params, opts...).Do(ctx, out)
}

// Post returns a lazy POST call.
func (c *Client) Post(suffix string, body any, params QueryParams, opts ...CallOption) *Call {
	return c.newCall(http.MethodPost, suffix, body, params, opts)
}

// PostAsync performs a POST call and decodes the response into out.
func (c *Client) PostAsync(ctx context.Context, out any, suffix string, body any, params QueryParams, opts ...CallOption) error {
	return c.Post(suffix, body, params, opts...).Do(ctx, out)
}

// Put returns a lazy PUT call.
func (c *Client) Put(suffix string, body any, params QueryParams, opts ...CallOption) *Call {
	return c.newCall(http.MethodPut, suffix, body, params, opts)
}

// PutAsync performs a PUT call and decodes the response into out.
func (c *Client) PutAsync(ctx context.Context, out any, suffix string, body any, params QueryParams, opts ...CallOption) error {
	return c.Put(suffix, body, params, opts...).Do(ctx, out)
}

// Delete returns a lazy DELETE call.
func (c *Client) Delete(suffix string, params QueryParams, opts ...CallOption) *Call {
	return c.newCall(http.MethodDelete, suffix, nil, params, opts)
}

// DeleteAsync performs a DELETE call and decodes the response into out.
func (c *Client) DeleteAsync(ctx context.Context, out any, suffix string, params QueryParams, opts ...CallOption) error {
	return c.Delete(suffix, params, opts...).Do(ctx, out)
}

func (c *Client) newCall(method, suffix string, body any, params QueryParams, opts []CallOption) *Call {
	call := &Call{
		client: c,
		method: method,
		suffix: suffix,
		body:   body,
		params: params,
	}
	for _, opt := range opts {
		opt(call)
	}
	return call
}

// headers builds the headers of a request. The token is read for each request.
func (c *Client) headers(excludeAuthenticationHeaders bool) http.Header {
	headers := http.Header{}
	headers.Set("Content-Type", "application/json")
	headers.Set("Accept", "application/json")

	if !excludeAuthenticationHeaders {
		for k, v := range c.AuthorizationHeaders() {
			headers[k] = v
		}
	}
	return headers
}

func (c *Client) do(ctx context.Context, call *Call, out any) error {
	u := call.URL()

	//
	// Build request
	var body io.Reader
	if call.body != nil {
		payload, err := json.Marshal(call.body)
		if err != nil {
			return errors.Wrap(err, "could not serialize body")
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, call.method, u, body)
	if err != nil {
		return errors.Wrap(err, "could not build request")
	}
	req.Header = c.headers(call.excludeAuthenticationHeaders)

	//
	// Perform request
	res, err := c.http.Do(req)
	if err != nil {
		requestsTotal.WithLabelValues(call.method, "error").Inc()
		return errors.Wrap(err, "could not perform request")
	}
	defer res.Body.Close()
	requestsTotal.WithLabelValues(call.method, strconv.Itoa(res.StatusCode)).Inc()

	if res.StatusCode >= 400 {
		return c.handleError(parseHTTPError(res, call.method, u))
	}

	//
	// Process response
	if out == nil {
		_, err = io.Copy(io.Discard, res.Body)
		return errors.Wrap(err, "could not read response")
	}

	payload, err := io.ReadAll(res.Body)
	if err != nil {
		return errors.Wrap(err, "could not read response")
	}
	if len(bytes.TrimSpace(payload)) == 0 {
		return nil
	}

	return errors.Wrap(json.Unmarshal(payload, out), "could not parse response")
}

// handleError clears the session and navigates away on authentication errors.
// The error is always returned to the caller.
func (c *Client) handleError(herr *HTTPError) error {
	if herr.StatusCode != http.StatusUnauthorized && herr.StatusCode != http.StatusForbidden {
		return herr
	}

	route := c.env.LoginRoute
	if herr.StatusCode == http.StatusForbidden {
		route = c.env.UnauthorizedRoute
	}

	c.displayError(herr)
	if err := c.ClearSession(); err != nil {
		c.logger.WithError(err).Warn("could not clear the stored session")
	}

	authRedirectsTotal.WithLabelValues(route).Inc()
	c.navigator.Navigate(route)

	return herr
}

func (c *Client) displayError(herr *HTTPError) {
	c.logger.WithFields(logrus.Fields{
		"method": herr.Method,
		"url":    herr.URL,
		"status": herr.StatusCode,
	}).Errorf("HttpErrorResponse: %s", herr.Error())
}
