package database_test

import (
	"path/filepath"
	"testing"

	"github.com/mdouchement/restbase/internal/database"
	"github.com/mdouchement/restbase/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorm_Users(t *testing.T) {
	db := setup(t)

	user := model.NewUser()
	user.Email = "george.abitbol@nowhere.lan"
	require.NoError(t, db.Save(user))
	assert.NotEmpty(t, user.ID)
	assert.NotNil(t, user.CreatedAt)

	found, err := db.FindUserByMail(user.Email)
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
	assert.Equal(t, model.RoleMember, found.Role)

	duplicate := model.NewUser()
	duplicate.Email = user.Email
	err = db.Save(duplicate)
	assert.True(t, db.IsAlreadyExists(err))

	session := &model.Session{UserID: user.ID, TokenID: "jti42"}
	require.NoError(t, db.Save(session))

	found2, err := db.FindSessionByTokenID("jti42")
	require.NoError(t, err)
	assert.Equal(t, session.ID, found2.ID)

	require.NoError(t, db.Save(&model.Session{UserID: user.ID, TokenID: "jti43"}))
	require.NoError(t, db.Save(&model.Session{UserID: "someone-else", TokenID: "jti44"}))

	sessions, err := db.FindSessionsByUserID(user.ID)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.ElementsMatch(t, []string{"jti42", "jti43"}, []string{sessions[0].TokenID, sessions[1].TokenID})

	sessions, err = db.FindSessionsByUserID("nobody")
	require.NoError(t, err)
	assert.Empty(t, sessions)

	require.NoError(t, db.DeleteUser(user))

	_, err = db.FindUser(user.ID)
	assert.True(t, db.IsNotFound(err))

	_, err = db.FindSessionByTokenID("jti42")
	assert.True(t, db.IsNotFound(err))

	sessions, err = db.FindSessionsByUserID(user.ID)
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestStorm_Widgets(t *testing.T) {
	db := setup(t)

	for _, name := range []string{"gear", "cog", "gear"} {
		require.NoError(t, db.Save(&model.Widget{Name: name}))
	}

	widgets, err := db.FindWidgets("", 0)
	require.NoError(t, err)
	assert.Len(t, widgets, 3)

	widgets, err = db.FindWidgets("gear", 0)
	require.NoError(t, err)
	assert.Len(t, widgets, 2)

	widgets, err = db.FindWidgets("", 1)
	require.NoError(t, err)
	assert.Len(t, widgets, 1)

	widgets, err = db.FindWidgets("sprocket", 0)
	require.NoError(t, err)
	assert.Empty(t, widgets)

	widget, err := db.FindWidget(cogID(t, db))
	require.NoError(t, err)
	require.NoError(t, db.Delete(widget))

	_, err = db.FindWidget(widget.ID)
	assert.True(t, db.IsNotFound(err))
}

func cogID(t *testing.T, db database.Client) string {
	widgets, err := db.FindWidgets("cog", 1)
	require.NoError(t, err)
	require.Len(t, widgets, 1)
	return widgets[0].ID
}

func setup(t *testing.T) database.Client {
	filename := filepath.Join(t.TempDir(), "restmock.db")
	require.NoError(t, database.StormInit(filename))

	db, err := database.StormOpen(filename)
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close()
	})
	return db
}
