package serializer_test

import (
	"testing"
	"time"

	"github.com/mdouchement/restbase/internal/model"
	"github.com/mdouchement/restbase/internal/server/serializer"
	"github.com/stretchr/testify/assert"
)

func TestUser(t *testing.T) {
	user := model.NewUser()
	user.ID = "42"
	user.Email = "george.abitbol@nowhere.lan"
	user.Password = "secret"

	r := serializer.User(user)
	assert.Equal(t, map[string]any{
		"id":    "42",
		"email": "george.abitbol@nowhere.lan",
		"role":  model.RoleMember,
	}, r)

	now := time.Now()
	user.Touch(now)
	r = serializer.User(user)
	assert.Equal(t, now.UTC(), r["created_at"])
	assert.NotContains(t, r, "password")
}
