package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/mdouchement/restbase/pkg/restbase"
	"github.com/pkg/errors"
	"github.com/valyala/fastjson"
)

// A Request describes one API call made from the command line.
type Request struct {
	Method   string
	Resource string
	Suffix   string
	// Query holds `key=value` pairs, a repeated key gives several values.
	Query  []string
	Data   string
	NoAuth bool
	Dump   bool
}

// Do performs the request and prints the response.
func (c *CLI) Do(ctx context.Context, r Request) error {
	client, err := c.Client(r.Resource)
	if err != nil {
		return err
	}

	params, err := ParseQuery(r.Query)
	if err != nil {
		return err
	}

	var body any
	if r.Data != "" {
		if err = fastjson.Validate(r.Data); err != nil {
			return errors.Wrap(err, "invalid data")
		}
		body = json.RawMessage(r.Data)
	}

	var opts []restbase.CallOption
	if r.NoAuth {
		opts = append(opts, restbase.ExcludeAuthenticationHeaders())
	}

	var call *restbase.Call
	switch strings.ToUpper(r.Method) {
	case http.MethodGet:
		call = client.Get(r.Suffix, params, opts...)
	case http.MethodPost:
		call = client.Post(r.Suffix, body, params, opts...)
	case http.MethodPut:
		call = client.Put(r.Suffix, body, params, opts...)
	case http.MethodDelete:
		call = client.Delete(r.Suffix, params, opts...)
	default:
		return errors.Errorf("unsupported method: %s", r.Method)
	}

	c.logger.WithField("method", call.Method()).Debug(call.URL())

	var payload json.RawMessage
	if err = call.Do(ctx, &payload); err != nil {
		return err
	}

	return c.print(payload, r.Dump)
}

func (c *CLI) print(payload json.RawMessage, dump bool) error {
	if len(payload) == 0 {
		return nil
	}

	if dump {
		var v any
		if err := json.Unmarshal(payload, &v); err != nil {
			return errors.Wrap(err, "could not parse response")
		}
		Dump(c.out, v)
		return nil
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, payload, "", "  "); err != nil {
		return errors.Wrap(err, "could not format response")
	}
	fmt.Fprintln(c.out, buf.String())
	return nil
}

// ParseQuery converts `key=value` pairs into query parameters.
func ParseQuery(pairs []string) (restbase.QueryParams, error) {
	values := map[string][]string{}
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, errors.Errorf("invalid query parameter: %q", pair)
		}
		values[key] = append(values[key], value)
	}

	params := restbase.QueryParams{}
	for k, v := range values {
		if len(v) == 1 {
			params[k] = v[0]
			continue
		}
		params[k] = v
	}
	return params, nil
}
