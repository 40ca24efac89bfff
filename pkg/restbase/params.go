package restbase

import (
	"fmt"
	"net/url"
	"reflect"
	"time"
)

// QueryParams are the query parameters of a single call.
// Values can be strings, numbers, booleans, time.Time, fmt.Stringer or slices of them.
// A slice produces one key per element and nil values are skipped.
type QueryParams map[string]any

// Values converts the parameters to url.Values.
func (p QueryParams) Values() url.Values {
	values := url.Values{}
	for k, v := range p {
		appendValue(values, k, v)
	}
	return values
}

// Encode serializes the parameters in URL encoded form sorted by key.
func (p QueryParams) Encode() string {
	return p.Values().Encode()
}

func appendValue(values url.Values, key string, v any) {
	switch v := v.(type) {
	case nil:
	case string:
		values.Add(key, v)
	case []byte:
		values.Add(key, string(v))
	case []string:
		for _, s := range v {
			values.Add(key, s)
		}
	case time.Time:
		values.Add(key, v.Format(time.RFC3339))
	case fmt.Stringer:
		values.Add(key, v.String())
	default:
		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
			for i := 0; i < rv.Len(); i++ {
				appendValue(values, key, rv.Index(i).Interface())
			}
			return
		}
		values.Add(key, fmt.Sprint(v))
	}
}
