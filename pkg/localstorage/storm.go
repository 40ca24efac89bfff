package localstorage

import (
	"github.com/asdine/storm/v3"
	"github.com/asdine/storm/v3/codec/msgpack"
	"github.com/pkg/errors"
)

const bucket = "localstorage"

// A Storm is a storage backed by a bbolt database.
type Storm struct {
	db *storm.DB
}

// OpenStorm opens the database at path.
func OpenStorm(path string) (*Storm, error) {
	db, err := storm.Open(path, storm.Codec(msgpack.Codec))
	if err != nil {
		return nil, errors.Wrap(err, "could not get database connection")
	}

	return &Storm{db: db}, nil
}

// GetItem implements restbase.Storage.
func (s *Storm) GetItem(key string) (string, bool, error) {
	var v string
	err := s.db.Get(bucket, key, &v)
	if err != nil {
		if errors.Cause(err) == storm.ErrNotFound {
			return "", false, nil
		}
		return "", false, errors.Wrap(err, "could not get item")
	}
	return v, true, nil
}

// SetItem implements restbase.Storage.
func (s *Storm) SetItem(key, value string) error {
	return errors.Wrap(s.db.Set(bucket, key, value), "could not set item")
}

// RemoveItem implements restbase.Storage.
func (s *Storm) RemoveItem(key string) error {
	err := s.db.Delete(bucket, key)
	if err != nil && errors.Cause(err) != storm.ErrNotFound {
		return errors.Wrap(err, "could not remove item")
	}
	return nil
}

// Close implements io.Closer.
func (s *Storm) Close() error {
	return s.db.Close()
}
