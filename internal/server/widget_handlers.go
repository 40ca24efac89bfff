package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mdouchement/restbase/internal/apierror"
	"github.com/mdouchement/restbase/internal/database"
	"github.com/mdouchement/restbase/internal/server/service"
)

// widget contains all widget handlers.
type widget struct {
	db database.Client
}

// List renders the widgets, filtered by the `name` and `limit` query parameters.
func (h *widget) List(c echo.Context) error {
	var params service.ListWidgetsParams
	if err := c.Bind(&params); err != nil {
		return apierror.NewWithTagCode(http.StatusBadRequest, apierror.TagInvalidParameters, "Invalid query parameters.")
	}

	widgets, err := service.NewWidget(h.db).List(params)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, widgets)
}

// Show renders one widget.
func (h *widget) Show(c echo.Context) error {
	widget, err := service.NewWidget(h.db).Find(c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, widget)
}

// Create creates a widget owned by the current user.
func (h *widget) Create(c echo.Context) error {
	var params service.WidgetParams
	if err := c.Bind(&params); err != nil {
		return apierror.NewWithTagCode(http.StatusBadRequest, apierror.TagInvalidParameters, "Invalid request body.")
	}
	params.UserAgent = c.Request().UserAgent()

	widget, err := service.NewWidget(h.db).Create(currentUser(c), params)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, widget)
}

// Update updates a widget.
func (h *widget) Update(c echo.Context) error {
	var params service.WidgetParams
	if err := c.Bind(&params); err != nil {
		return apierror.NewWithTagCode(http.StatusBadRequest, apierror.TagInvalidParameters, "Invalid request body.")
	}
	params.UserAgent = c.Request().UserAgent()

	widget, err := service.NewWidget(h.db).Update(c.Param("id"), params)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, widget)
}

// Delete deletes a widget.
func (h *widget) Delete(c echo.Context) error {
	err := service.NewWidget(h.db).Delete(currentUser(c), c.Param("id"))
	if err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
