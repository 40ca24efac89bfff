package restbase_test

import (
	"testing"

	"github.com/mdouchement/restbase/pkg/restbase"
	"github.com/stretchr/testify/assert"
)

func TestMemoryStorage(t *testing.T) {
	storage := restbase.NewMemoryStorage()

	_, ok, err := storage.GetItem("key")
	assert.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, storage.SetItem("key", "value"))
	v, ok, err := storage.GetItem("key")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "value", v)

	assert.NoError(t, storage.RemoveItem("key"))
	assert.NoError(t, storage.RemoveItem("key"))
	_, ok, err = storage.GetItem("key")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestNavigatorFunc(t *testing.T) {
	var routes []string
	navigator := restbase.NavigatorFunc(func(route string) {
		routes = append(routes, route)
	})

	navigator.Navigate("/login")
	restbase.NopNavigator.Navigate("/nowhere")
	assert.Equal(t, []string{"/login"}, routes)
}
