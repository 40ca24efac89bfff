package database

import (
	"github.com/mdouchement/restbase/internal/model"
)

type (
	// A Client can interacts with the database.
	Client interface {
		// Save inserts or updates the entry in database with the given model.
		Save(m model.Model) error
		// Delete deletes the entry in database with the given model.
		Delete(m model.Model) error
		// Close the database.
		Close() error
		// IsNotFound returns true if err is a not found error.
		IsNotFound(err error) bool
		// IsAlreadyExists returns true if err is an already exists error.
		IsAlreadyExists(err error) bool

		UserInteraction
		SessionInteraction
		WidgetInteraction
	}

	// An UserInteraction defines all the methods used to interact with a user record.
	UserInteraction interface {
		// FindUser returns the user for the given id (UUID).
		FindUser(id string) (*model.User, error)
		// FindUserByMail returns the user for the given email.
		FindUserByMail(email string) (*model.User, error)
		// DeleteUser deletes the user and all its sessions.
		DeleteUser(user *model.User) error
	}

	// An SessionInteraction defines all the methods used to interact with a session record.
	SessionInteraction interface {
		// FindSessionByTokenID returns the session bound to the given access token id.
		FindSessionByTokenID(id string) (*model.Session, error)
		// FindSessionsByUserID returns all sessions for the given user id.
		FindSessionsByUserID(userID string) ([]*model.Session, error)
	}

	// A WidgetInteraction defines all the methods used to interact with widget records.
	WidgetInteraction interface {
		// FindWidget returns the widget for the given id (UUID).
		FindWidget(id string) (*model.Widget, error)
		// FindWidgets returns the widgets matching the given name, most recent first.
		// An empty name matches all widgets and limit equals to 0 means all widgets.
		FindWidgets(name string, limit int) ([]*model.Widget, error)
	}
)
