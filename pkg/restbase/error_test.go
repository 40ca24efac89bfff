package restbase_test

import (
	"net/http"
	"testing"

	"github.com/mdouchement/restbase/pkg/restbase"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestHTTPError(t *testing.T) {
	err := &restbase.HTTPError{
		StatusCode: http.StatusUnauthorized,
		Status:     http.StatusText(http.StatusUnauthorized),
		URL:        "api/v1/widgets",
	}
	assert.Equal(t, "Http failure response for api/v1/widgets: 401 Unauthorized", err.Error())

	err.Message = "Revoked token."
	assert.Equal(t, "Http failure response for api/v1/widgets: 401 Unauthorized: Revoked token.", err.Error())

	wrapped := errors.Wrap(err, "could not list widgets")
	assert.Equal(t, http.StatusUnauthorized, restbase.StatusCode(wrapped))
	assert.True(t, restbase.IsUnauthorized(wrapped))
	assert.False(t, restbase.IsForbidden(wrapped))

	assert.Equal(t, 0, restbase.StatusCode(errors.New("network is unreachable")))
}
