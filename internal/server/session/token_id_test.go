package session_test

import (
	"testing"

	"github.com/mdouchement/restbase/internal/server/session"
	"github.com/stretchr/testify/assert"
)

func TestNewTokenID(t *testing.T) {
	assert.Len(t, session.NewTokenID(), session.TokenIDLength)
	assert.Regexp(t, `^[1-9A-HJ-NP-Za-km-z]+$`, session.NewTokenID())

	n := 4096
	ids := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		ids[session.NewTokenID()] = true
	}
	assert.Len(t, ids, n, "token ids must be unique")
}
