package database

import (
	"time"

	"github.com/asdine/storm/v3"
	"github.com/asdine/storm/v3/codec/msgpack"
	"github.com/asdine/storm/v3/q"
	"github.com/gofrs/uuid"
	"github.com/mdouchement/restbase/internal/model"
	"github.com/pkg/errors"
)

type strm struct {
	db *storm.DB
}

// StormCodec is the format used to store data in the database.
var StormCodec = storm.Codec(msgpack.Codec)

// StormInit initializes Storm database.
func StormInit(database string) error {
	db, err := storm.Open(database, StormCodec)
	if err != nil {
		return errors.Wrap(err, "could not get database connection")
	}
	defer db.Close()

	if err := db.Init(&model.User{}); err != nil {
		return errors.Wrap(err, "could not init user index")
	}

	if err := db.Init(&model.Session{}); err != nil {
		return errors.Wrap(err, "could not init session index")
	}

	err = db.Init(&model.Widget{})
	return errors.Wrap(err, "could not init widget index")
}

// StormReIndex reindex Storm database.
func StormReIndex(database string) error {
	db, err := storm.Open(database, StormCodec)
	if err != nil {
		return errors.Wrap(err, "could not get database connection")
	}
	defer db.Close()

	if err := db.ReIndex(&model.User{}); err != nil {
		return errors.Wrap(err, "could not ReIndex users")
	}

	if err := db.ReIndex(&model.Session{}); err != nil {
		return errors.Wrap(err, "could not ReIndex sessions")
	}

	err = db.ReIndex(&model.Widget{})
	return errors.Wrap(err, "could not ReIndex widgets")
}

// StormOpen returns a new Storm database connection.
func StormOpen(database string) (Client, error) {
	db, err := storm.Open(database, StormCodec)
	if err != nil {
		return nil, errors.Wrap(err, "could not get database connection")
	}

	return &strm{
		db: db,
	}, nil
}

// Save inserts or updates the entry in database with the given model.
func (c *strm) Save(m model.Model) error {
	if m.GetID() == "" {
		m.SetID(uuid.Must(uuid.NewV4()).String())
	}
	m.Touch(time.Now().UTC())

	return errors.Wrap(c.db.Save(m), "could not save the model")
}

// Delete deletes the entry in database with the given model.
func (c *strm) Delete(m model.Model) error {
	return errors.Wrap(c.db.DeleteStruct(m), "could not delete the model")
}

// Close the database.
func (c *strm) Close() error {
	return c.db.Close()
}

// IsNotFound returns true if err is a not found error.
func (c *strm) IsNotFound(err error) bool {
	return errors.Cause(err) == storm.ErrNotFound
}

// IsAlreadyExists returns true if err is an already exists error.
func (c *strm) IsAlreadyExists(err error) bool {
	return errors.Cause(err) == storm.ErrAlreadyExists
}

// FindUser returns the user for the given id (UUID).
func (c *strm) FindUser(id string) (*model.User, error) {
	var user model.User
	if err := c.db.One("ID", id, &user); err != nil {
		return nil, errors.Wrap(err, "find user by id")
	}
	return &user, nil
}

// FindUserByMail returns the user for the given email.
func (c *strm) FindUserByMail(email string) (*model.User, error) {
	var user model.User
	if err := c.db.One("Email", email, &user); err != nil {
		return nil, errors.Wrap(err, "find user by mail")
	}
	return &user, nil
}

// DeleteUser deletes the user and all its sessions.
func (c *strm) DeleteUser(user *model.User) error {
	err := c.db.Select(q.Eq("UserID", user.ID)).Delete(&model.Session{})
	if err != nil && !c.IsNotFound(err) {
		return errors.Wrap(err, "could not delete sessions")
	}

	return errors.Wrap(c.db.DeleteStruct(user), "could not delete user")
}

// FindSessionByTokenID returns the session bound to the given access token id.
func (c *strm) FindSessionByTokenID(id string) (*model.Session, error) {
	var session model.Session
	if err := c.db.One("TokenID", id, &session); err != nil {
		return nil, errors.Wrap(err, "find session by token id")
	}
	return &session, nil
}

// FindSessionsByUserID returns all the sessions for the given user id.
func (c *strm) FindSessionsByUserID(userID string) ([]*model.Session, error) {
	sessions := make([]*model.Session, 0)
	err := c.db.Select(q.Eq("UserID", userID)).OrderBy("CreatedAt").Find(&sessions)
	if err != nil && !c.IsNotFound(err) {
		return nil, errors.Wrap(err, "could not find sessions by user id")
	}
	return sessions, nil
}

// FindWidget returns the widget for the given id (UUID).
func (c *strm) FindWidget(id string) (*model.Widget, error) {
	var widget model.Widget
	if err := c.db.One("ID", id, &widget); err != nil {
		return nil, errors.Wrap(err, "could not find widget")
	}
	return &widget, nil
}

// FindWidgets returns the widgets matching the given name, most recent first.
func (c *strm) FindWidgets(name string, limit int) ([]*model.Widget, error) {
	query := []q.Matcher{}
	if name != "" {
		query = append(query, q.Eq("Name", name))
	}

	widgets := make([]*model.Widget, 0)
	stmt := c.db.Select(query...).OrderBy("UpdatedAt").Reverse()
	if limit > 0 {
		stmt = stmt.Limit(limit)
	}

	err := stmt.Find(&widgets)
	if err != nil && !c.IsNotFound(err) {
		return nil, errors.Wrap(err, "could not find widgets")
	}
	return widgets, nil
}
