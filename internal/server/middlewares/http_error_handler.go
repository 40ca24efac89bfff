package middlewares

import (
	"fmt"
	"net/http"

	"github.com/gofrs/uuid"
	"github.com/labstack/echo/v4"
	"github.com/mdouchement/restbase/internal/apierror"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// HTTPErrorHandler returns a handler that formats rendered errors.
func HTTPErrorHandler(logger logrus.FieldLogger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		switch cause := errors.Cause(err).(type) {
		case *echo.HTTPError:
			if cause.Internal != nil {
				logger.WithError(cause.Internal).Warn("Error [ECHO]")
			}
			_ = c.JSON(cause.Code, echo.Map{
				"error": echo.Map{
					"message": cause.Message,
				},
			})
		case *apierror.APIError:
			status := apierror.StatusCode(cause)
			if status < 500 {
				_ = c.JSON(status, cause)
				return
			}

			internal(logger, err, c)
		default:
			internal(logger, err, c)
		}
	}
}

func internal(logger logrus.FieldLogger, err error, c echo.Context) {
	id := uuid.Must(uuid.NewV4()).String()
	logger.WithField("id", id).Errorf("%+v", err)

	_ = c.JSON(http.StatusInternalServerError, echo.Map{
		"error": echo.Map{
			"message": fmt.Sprintf("Unexpected error (id: %s)", id),
		},
	})
}
