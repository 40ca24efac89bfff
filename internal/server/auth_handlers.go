package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mdouchement/restbase/internal/apierror"
	"github.com/mdouchement/restbase/internal/database"
	"github.com/mdouchement/restbase/internal/server/serializer"
	"github.com/mdouchement/restbase/internal/server/service"
	"github.com/mdouchement/restbase/internal/server/session"
)

// auth contains all authentication handlers.
type auth struct {
	db       database.Client
	sessions session.Manager
}

///// Register
////
//

// Register handler is used to register a member.
func (h *auth) Register(c echo.Context) error {
	// Filter params
	var params service.RegisterParams
	if err := c.Bind(&params); err != nil {
		return apierror.NewWithTagCode(http.StatusBadRequest, apierror.TagInvalidParameters, "Could not get user's params.")
	}
	params.UserAgent = c.Request().UserAgent()

	if params.Email == "" {
		return apierror.NewWithTagCode(http.StatusBadRequest, apierror.TagInvalidParameters, "No email provided.")
	}
	if params.Password == "" {
		return apierror.NewWithTagCode(http.StatusBadRequest, apierror.TagInvalidParameters, "No password provided.")
	}

	register, err := service.NewUser(h.db, h.sessions).Register(params)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, register)
}

///// Login
////
//

// Login used for authenticates a user and returns an account holding its access token.
func (h *auth) Login(c echo.Context) error {
	// Filter params
	var params service.LoginParams
	if err := c.Bind(&params); err != nil {
		return apierror.NewWithTagCode(http.StatusBadRequest, apierror.TagInvalidParameters, "Could not get credentials.")
	}
	params.UserAgent = c.Request().UserAgent()

	if params.Email == "" || params.Password == "" {
		return apierror.NewWithTagCode(http.StatusBadRequest, apierror.TagInvalidParameters, "No email or password provided.")
	}

	login, err := service.NewUser(h.db, h.sessions).Login(params)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, login)
}

///// Logout
////
//

// Logout used for terminates the current session.
func (h *auth) Logout(c echo.Context) error {
	session := currentSession(c)
	if session != nil {
		if err := h.sessions.Revoke(session); err != nil {
			return err
		}
	}

	return c.NoContent(http.StatusNoContent)
}

///// Me
////
//

// Me renders the current user.
func (h *auth) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, serializer.User(currentUser(c)))
}

///// Update Password
////
//

// UpdatePassword used to updates a user's password.
func (h *auth) UpdatePassword(c echo.Context) error {
	// Filter params
	var params service.UpdatePasswordParams
	if err := c.Bind(&params); err != nil {
		return apierror.NewWithTagCode(http.StatusBadRequest, apierror.TagInvalidParameters, "Could not get parameters.")
	}
	params.UserAgent = c.Request().UserAgent()

	if params.CurrentPassword == "" {
		return apierror.NewWithTagCode(http.StatusBadRequest, apierror.TagInvalidParameters, "Your current password is required to change your password.")
	}

	if params.NewPassword == "" {
		return apierror.NewWithTagCode(http.StatusBadRequest, apierror.TagInvalidParameters, "Your new password is required to change your password.")
	}

	err := service.NewUser(h.db, h.sessions).Password(currentUser(c), params)
	if err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
