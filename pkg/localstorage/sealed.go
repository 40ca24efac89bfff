package localstorage

import (
	"sync"

	sargon2 "github.com/mdouchement/simple-argon2"
	"github.com/pkg/errors"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

const saltKeyLength = 16

// A Passphrase returns the secret used to seal a storage.
type Passphrase func() ([]byte, error)

// sealer encrypts the storage payload with XChaCha20-Poly1305.
// The layout on disk is: salt | nonce | ciphertext.
type sealer struct {
	once       sync.Once
	passphrase Passphrase
	salt       []byte
	key        []byte
	err        error
}

// OpenSealed opens the storage persisted at path and encrypted with the given passphrase.
// The passphrase is asked once, when the file is read or first written.
func OpenSealed(path string, passphrase Passphrase) (*File, error) {
	if passphrase == nil {
		return nil, errors.New("passphrase can't be nil")
	}
	return openFile(path, &sealer{passphrase: passphrase})
}

func (s *sealer) derive(salt []byte) ([]byte, error) {
	s.once.Do(func() {
		passphrase, err := s.passphrase()
		if err != nil {
			s.err = errors.Wrap(err, "could not read passphrase")
			return
		}

		if salt == nil {
			salt, err = sargon2.GenerateRandomBytes(saltKeyLength)
			if err != nil {
				s.err = errors.Wrap(err, "could not generate salt")
				return
			}
		}

		s.salt = salt
		s.key = argon2.IDKey(passphrase, salt, 3, 64<<10, 2, chacha20poly1305.KeySize)
	})
	return s.key, s.err
}

func (s *sealer) encode(payload []byte) ([]byte, error) {
	key, err := s.derive(nil)
	if err != nil {
		return nil, err
	}

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, errors.Wrap(err, "could not create AEAD")
	}

	nonce, err := sargon2.GenerateRandomBytes(uint32(aead.NonceSize()))
	if err != nil {
		return nil, errors.Wrap(err, "could not generate nonce")
	}

	ciphertext := aead.Seal(nil, nonce, payload, nil)
	data := make([]byte, 0, len(s.salt)+len(nonce)+len(ciphertext))
	data = append(data, s.salt...)
	data = append(data, nonce...)
	return append(data, ciphertext...), nil
}

func (s *sealer) decode(data []byte) ([]byte, error) {
	if len(data) < saltKeyLength+chacha20poly1305.NonceSizeX {
		return nil, errors.New("sealed storage is too short")
	}

	key, err := s.derive(data[:saltKeyLength])
	if err != nil {
		return nil, err
	}
	data = data[saltKeyLength:]

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, errors.Wrap(err, "could not create AEAD")
	}

	nonce := data[:aead.NonceSize()]
	ciphertext := data[aead.NonceSize():]

	payload, err := aead.Open(nil, nonce, ciphertext, nil)
	return payload, errors.Wrap(err, "could not decrypt storage")
}
