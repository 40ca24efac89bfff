package localstorage

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/pkg/errors"
)

type (
	// A File is a storage persisted in a single file as a JSON object.
	File struct {
		mu    sync.Mutex
		path  string
		codec codec
		items map[string]string
	}

	// codec transforms the JSON payload before it hits the disk.
	codec interface {
		encode(payload []byte) ([]byte, error)
		decode(data []byte) ([]byte, error)
	}

	plain struct{}
)

func (plain) encode(payload []byte) ([]byte, error) { return payload, nil }
func (plain) decode(data []byte) ([]byte, error)    { return data, nil }

// OpenFile opens the storage persisted at path.
// The file is created on the first write.
func OpenFile(path string) (*File, error) {
	return openFile(path, plain{})
}

func openFile(path string, c codec) (*File, error) {
	f := &File{
		path:  path,
		codec: c,
		items: make(map[string]string),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return f, nil
		}
		return nil, errors.Wrap(err, "could not read storage file")
	}

	payload, err := c.decode(data)
	if err != nil {
		return nil, errors.Wrap(err, "could not decode storage file")
	}

	if err = json.Unmarshal(payload, &f.items); err != nil {
		return nil, errors.Wrap(err, "could not parse storage file")
	}
	return f, nil
}

// GetItem implements restbase.Storage.
func (f *File) GetItem(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	v, ok := f.items[key]
	return v, ok, nil
}

// SetItem implements restbase.Storage.
func (f *File) SetItem(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	previous, existed := f.items[key]
	f.items[key] = value

	if err := f.flush(); err != nil {
		if existed {
			f.items[key] = previous
		} else {
			delete(f.items, key)
		}
		return err
	}
	return nil
}

// RemoveItem implements restbase.Storage.
func (f *File) RemoveItem(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	previous, existed := f.items[key]
	if !existed {
		return nil
	}
	delete(f.items, key)

	if err := f.flush(); err != nil {
		f.items[key] = previous
		return err
	}
	return nil
}

// Close implements io.Closer.
func (f *File) Close() error {
	return nil
}

func (f *File) flush() error {
	payload, err := json.Marshal(f.items)
	if err != nil {
		return errors.Wrap(err, "could not serialize storage")
	}

	data, err := f.codec.encode(payload)
	if err != nil {
		return errors.Wrap(err, "could not encode storage")
	}

	file, err := os.OpenFile(f.path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return errors.Wrapf(err, "could not create %s", f.path)
	}
	defer file.Close()

	_, err = file.Write(data)
	if err != nil {
		return errors.Wrap(err, "could not write storage")
	}

	return errors.Wrap(file.Sync(), "could not write storage")
}
