// Package localstorage provides persistent backends for restbase.Storage.
package localstorage

import (
	"io"

	"github.com/mdouchement/restbase/pkg/restbase"
	"github.com/pkg/errors"
)

const (
	// KindFile is a plain JSON file.
	KindFile = "file"
	// KindSealed is a JSON file encrypted with a passphrase.
	KindSealed = "sealed"
	// KindStorm is a bbolt database.
	KindStorm = "storm"
)

// A Storage is a restbase.Storage that must be closed after use.
type Storage interface {
	restbase.Storage
	io.Closer
}

// Open opens the storage of the given kind.
// passphrase is only used by sealed storages.
func Open(kind, path string, passphrase Passphrase) (Storage, error) {
	var s Storage
	var err error

	switch kind {
	case KindFile, "":
		s, err = OpenFile(path)
	case KindSealed:
		s, err = OpenSealed(path, passphrase)
	case KindStorm:
		s, err = OpenStorm(path)
	default:
		return nil, errors.Errorf("unsupported storage kind: %s", kind)
	}

	if err != nil {
		return nil, err
	}
	return s, nil
}
