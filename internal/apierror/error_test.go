package apierror_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/mdouchement/restbase/internal/apierror"
	"github.com/stretchr/testify/assert"
)

func TestAPIError(t *testing.T) {
	err := apierror.New("some message")

	assert.Equal(t, "some message", err.Error())
	assert.Equal(t, http.StatusInternalServerError, apierror.StatusCode(err))
}

func TestAPIError_StatusCode(t *testing.T) {
	assert.Equal(t, http.StatusUnauthorized, apierror.StatusCode(apierror.Unauthorized("Invalid login credentials.")))
	assert.Equal(t, http.StatusForbidden, apierror.StatusCode(apierror.Forbidden("Admin role required.")))
	assert.Equal(t, http.StatusInternalServerError, apierror.StatusCode(errors.New("boom")))
}

func TestAPIError_JSON(t *testing.T) {
	payload, err := json.Marshal(apierror.Unauthorized("Invalid login credentials."))
	assert.NoError(t, err)
	assert.JSONEq(t, `{"error":{"tag":"invalid-auth","message":"Invalid login credentials."}}`, string(payload))
}
