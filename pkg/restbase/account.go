package restbase

import (
	"encoding/json"
	"time"

	"github.com/araddon/dateparse"
	"github.com/pkg/errors"
)

// ErrNoExpiration is returned when an account does not define its expiration date.
var ErrNoExpiration = errors.New("no expiration defined")

// An Account is the session credential persisted in the local storage.
type Account struct {
	Email        string `json:"email,omitempty"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
	// Expiration is written by the login flow and accepts any common date layout.
	Expiration string `json:"expiresAt,omitempty"`
}

// Defined returns true if the account holds an access token.
func (a Account) Defined() bool {
	return a.AccessToken != ""
}

// ExpiresAt returns the expiration date of the access token.
func (a Account) ExpiresAt() (time.Time, error) {
	if a.Expiration == "" {
		return time.Time{}, ErrNoExpiration
	}

	t, err := dateparse.ParseAny(a.Expiration)
	return t, errors.Wrap(err, "could not parse expiration")
}

// ExpiredAt returns true if the access token is expired at the given time.
// An account without a readable expiration is only expired when it is not defined.
func (a Account) ExpiredAt(t time.Time) bool {
	if !a.Defined() {
		return true
	}

	expiration, err := a.ExpiresAt()
	if err != nil {
		return false
	}
	return t.After(expiration)
}

// Expired returns true if the access token is expired.
func (a Account) Expired() bool {
	return a.ExpiredAt(time.Now())
}

// LoadAccount reads the account stored under the given key.
// The returned boolean is false when the key is absent.
func LoadAccount(s Storage, key string) (Account, bool, error) {
	var account Account

	raw, ok, err := s.GetItem(key)
	if err != nil {
		return account, false, errors.Wrap(err, "could not read account")
	}
	if !ok {
		return account, false, nil
	}

	err = json.Unmarshal([]byte(raw), &account)
	return account, true, errors.Wrap(err, "could not parse account")
}

// SaveAccount stores the given account under the given key.
func SaveAccount(s Storage, key string, account Account) error {
	payload, err := json.Marshal(account)
	if err != nil {
		return errors.Wrap(err, "could not serialize account")
	}

	return errors.Wrap(s.SetItem(key, string(payload)), "could not store account")
}
