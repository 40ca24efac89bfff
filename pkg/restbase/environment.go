package restbase

import (
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

const (
	// DefaultAPIURL is the API root used when none is configured.
	DefaultAPIURL = "http://localhost:5000/api"
	// DefaultAPIVersion is the API version used when none is configured.
	DefaultAPIVersion = "v1"
	// DefaultUserKey is the storage key holding the session credential.
	DefaultUserKey = "currentUser"
	// DefaultLoginRoute is the route navigated to on 401 responses.
	DefaultLoginRoute = "/login"
	// DefaultUnauthorizedRoute is the route navigated to on 403 responses.
	DefaultUnauthorizedRoute = "/unauthorized"
)

// An Environment holds the settings shared by all the clients of an application.
type Environment struct {
	APIURL            string `envconfig:"API_URL"            default:"http://localhost:5000/api"`
	APIVersion        string `envconfig:"API_VERSION"        default:"v1"`
	UserKey           string `envconfig:"USER_KEY"           default:"currentUser"`
	LoginRoute        string `envconfig:"LOGIN_ROUTE"        default:"/login"`
	UnauthorizedRoute string `envconfig:"UNAUTHORIZED_ROUTE" default:"/unauthorized"`
}

// DefaultEnvironment returns the environment with all its default values.
func DefaultEnvironment() Environment {
	return Environment{
		APIURL:            DefaultAPIURL,
		APIVersion:        DefaultAPIVersion,
		UserKey:           DefaultUserKey,
		LoginRoute:        DefaultLoginRoute,
		UnauthorizedRoute: DefaultUnauthorizedRoute,
	}
}

// LoadEnvironment reads the environment from the process environment variables.
// Variables are named `<PREFIX>_API_URL`, `<PREFIX>_API_VERSION` and so on.
func LoadEnvironment(prefix string) (Environment, error) {
	var env Environment
	err := envconfig.Process(prefix, &env)
	return env, errors.Wrap(err, "could not load environment")
}
