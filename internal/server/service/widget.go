package service

import (
	"net/http"
	"strings"

	"github.com/mdouchement/restbase/internal/apierror"
	"github.com/mdouchement/restbase/internal/database"
	"github.com/mdouchement/restbase/internal/model"
	"github.com/pkg/errors"
)

type (
	// A WidgetService handles the widgets.
	WidgetService interface {
		List(params ListWidgetsParams) ([]*model.Widget, error)
		Find(id string) (*model.Widget, error)
		Create(user *model.User, params WidgetParams) (*model.Widget, error)
		Update(id string, params WidgetParams) (*model.Widget, error)
		Delete(user *model.User, id string) error
	}

	// ListWidgetsParams are used to filter widgets.
	ListWidgetsParams struct {
		Name  string `query:"name"`
		Limit int    `query:"limit"`
	}

	// WidgetParams are used to create or update a widget.
	WidgetParams struct {
		Params
		Name        string   `json:"name"`
		Description string   `json:"description"`
		Quantity    *int     `json:"quantity"`
		Tags        []string `json:"tags"`
	}

	widgetService struct {
		db database.Client
	}
)

// NewWidget returns a new WidgetService.
func NewWidget(db database.Client) WidgetService {
	return &widgetService{
		db: db,
	}
}

func (s *widgetService) List(params ListWidgetsParams) ([]*model.Widget, error) {
	if params.Limit < 0 {
		return nil, apierror.NewWithTagCode(http.StatusBadRequest, apierror.TagInvalidParameters, "Invalid limit.")
	}

	widgets, err := s.db.FindWidgets(params.Name, params.Limit)
	return widgets, errors.Wrap(err, "could not list widgets")
}

func (s *widgetService) Find(id string) (*model.Widget, error) {
	widget, err := s.db.FindWidget(id)
	if err != nil {
		if s.db.IsNotFound(err) {
			return nil, apierror.NewWithTagCode(http.StatusNotFound, apierror.TagNotFound, "No such widget.")
		}
		return nil, errors.Wrap(err, "could not get widget")
	}
	return widget, nil
}

func (s *widgetService) Create(user *model.User, params WidgetParams) (*model.Widget, error) {
	if strings.TrimSpace(params.Name) == "" {
		return nil, apierror.NewWithTagCode(http.StatusBadRequest, apierror.TagInvalidParameters, "No name provided.")
	}

	widget := &model.Widget{
		OwnerID: user.ID,
		Tags:    []string{},
	}
	s.apply(widget, params)

	if err := s.db.Save(widget); err != nil {
		return nil, errors.Wrap(err, "could not persist widget")
	}
	return widget, nil
}

func (s *widgetService) Update(id string, params WidgetParams) (*model.Widget, error) {
	widget, err := s.Find(id)
	if err != nil {
		return nil, err
	}
	s.apply(widget, params)

	if err := s.db.Save(widget); err != nil {
		return nil, errors.Wrap(err, "could not persist widget")
	}
	return widget, nil
}

func (s *widgetService) Delete(user *model.User, id string) error {
	if !user.IsAdmin() {
		return apierror.Forbidden("Admin role required.")
	}

	widget, err := s.Find(id)
	if err != nil {
		return err
	}
	return errors.Wrap(s.db.Delete(widget), "could not delete widget")
}

// updates given widget with given params.
// works like strong_parameter.
func (s *widgetService) apply(w *model.Widget, params WidgetParams) {
	if params.Name != "" {
		w.Name = params.Name
	}

	if params.Description != "" {
		w.Description = params.Description
	}

	if params.Quantity != nil {
		w.Quantity = *params.Quantity
	}

	if params.Tags != nil {
		w.Tags = params.Tags
	}
}
