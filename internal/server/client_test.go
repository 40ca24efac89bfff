package server_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mdouchement/restbase/internal/model"
	"github.com/mdouchement/restbase/pkg/restbase"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientAgainstServer(t *testing.T) {
	engine, ctrl, cleanup := setup(t)
	defer cleanup()

	srv := httptest.NewServer(engine)
	defer srv.Close()

	createUser(t, ctrl, model.RoleMember)

	env := restbase.DefaultEnvironment()
	env.APIURL = srv.URL + "/api"
	storage := restbase.NewMemoryStorage()
	logger, _ := test.NewNullLogger()

	var routes []string
	navigator := restbase.NavigatorFunc(func(route string) {
		routes = append(routes, route)
	})

	client := func(resource string) *restbase.Client {
		c, err := restbase.NewClient(srv.Client(), navigator, resource,
			restbase.WithEnvironment(env),
			restbase.WithStorage(storage),
			restbase.WithLogger(logger),
		)
		require.NoError(t, err)
		return c
	}
	auth := client("auth")
	widgets := client("widgets")
	ctx := context.Background()

	//
	// Sign in
	//
	var account restbase.Account
	err := auth.PostAsync(ctx, &account, "/sign_in", map[string]string{
		"email":    "george.abitbol@nowhere.lan",
		"password": "password42",
	}, nil, restbase.ExcludeAuthenticationHeaders())
	require.NoError(t, err)
	assert.True(t, account.Defined())
	assert.False(t, account.Expired())
	require.NoError(t, restbase.SaveAccount(storage, env.UserKey, account))
	assert.Equal(t, account.AccessToken, widgets.AccessToken())

	//
	// Widgets
	//
	var widget model.Widget
	err = widgets.PostAsync(ctx, &widget, "", map[string]any{"name": "sprocket", "quantity": 2}, nil)
	require.NoError(t, err)
	assert.Equal(t, "sprocket", widget.Name)

	found, err := restbase.Await[[]model.Widget](ctx, widgets.Get("", restbase.QueryParams{"name": "sprocket", "limit": 1}))
	require.NoError(t, err)
	assert.Len(t, found, 1)

	err = widgets.DeleteAsync(ctx, nil, "/"+widget.ID, nil)
	assert.True(t, restbase.IsForbidden(err))
	assert.Equal(t, []string{env.UnauthorizedRoute}, routes)
	assert.Empty(t, widgets.AccessToken())

	//
	// Token cleared by the 403, requests are now anonymous
	//
	err = widgets.GetAsync(ctx, nil, "/"+widget.ID, nil)
	assert.Equal(t, http.StatusUnauthorized, restbase.StatusCode(err))
	assert.Equal(t, []string{env.UnauthorizedRoute, env.LoginRoute}, routes)

	//
	// Revoked token
	//
	require.NoError(t, restbase.SaveAccount(storage, env.UserKey, account))
	require.NoError(t, auth.PostAsync(ctx, nil, "/sign_out", nil, nil))

	err = auth.GetAsync(ctx, nil, "/me", nil)
	assert.True(t, restbase.IsUnauthorized(err))
	assert.Equal(t, []string{env.UnauthorizedRoute, env.LoginRoute, env.LoginRoute}, routes)
	_, ok, err := restbase.LoadAccount(storage, env.UserKey)
	assert.NoError(t, err)
	assert.False(t, ok)
}
