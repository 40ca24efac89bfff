package restbase_test

import (
	"testing"
	"time"

	"github.com/mdouchement/restbase/pkg/restbase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccount_Expiration(t *testing.T) {
	account := restbase.Account{}
	assert.False(t, account.Defined())
	assert.True(t, account.Expired())

	account.AccessToken = "token42"
	assert.True(t, account.Defined())
	assert.False(t, account.Expired())

	_, err := account.ExpiresAt()
	assert.Equal(t, restbase.ErrNoExpiration, err)

	account.Expiration = "2020-01-15T10:00:00Z"
	expiration, err := account.ExpiresAt()
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2020, 1, 15, 10, 0, 0, 0, time.UTC), expiration.UTC())
	assert.True(t, account.Expired())
	assert.False(t, account.ExpiredAt(expiration.Add(-time.Second)))

	account.Expiration = "gibberish"
	assert.False(t, account.Expired())
}

func TestAccount_Storage(t *testing.T) {
	storage := restbase.NewMemoryStorage()

	_, ok, err := restbase.LoadAccount(storage, "user")
	assert.NoError(t, err)
	assert.False(t, ok)

	account := restbase.Account{
		Email:       "george.abitbol@nowhere.lan",
		AccessToken: "token42",
		Expiration:  "2020-01-15T10:00:00Z",
	}
	require.NoError(t, restbase.SaveAccount(storage, "user", account))

	raw, ok, err := storage.GetItem("user")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"email":"george.abitbol@nowhere.lan","accessToken":"token42","expiresAt":"2020-01-15T10:00:00Z"}`, raw)

	loaded, ok, err := restbase.LoadAccount(storage, "user")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, account, loaded)

	require.NoError(t, storage.SetItem("user", "{"))
	_, ok, err = restbase.LoadAccount(storage, "user")
	assert.Error(t, err)
	assert.True(t, ok)
}
