// Package cli implements the restc commands on top of a restbase.Client.
package cli

import (
	"io"
	"net/http"
	"os"

	"github.com/mdouchement/restbase/pkg/localstorage"
	"github.com/mdouchement/restbase/pkg/restbase"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	// EnvPrefix is the prefix of the environment variables read by restc.
	EnvPrefix = "RESTC"
	// DefaultStoragePath is the local storage location, relative to the current directory.
	DefaultStoragePath = ".restc"
	// DefaultLogFile is the file where the client diagnostics are written.
	DefaultLogFile = "restc.log"
)

// Settings configures a CLI.
type Settings struct {
	Environment restbase.Environment
	Storage     string
	StoragePath string
	LogFile     string
	HTTPClient  *http.Client
	Prompt      Prompt
	Out         io.Writer
}

// A CLI holds the resources shared by the restc commands.
type CLI struct {
	settings Settings
	storage  localstorage.Storage
	logger   *logrus.Logger
	out      io.Writer
	prompt   Prompt
}

// LoadSettings returns the settings read from the environment.
func LoadSettings() (Settings, error) {
	env, err := restbase.LoadEnvironment(EnvPrefix)
	if err != nil {
		return Settings{}, err
	}

	return Settings{
		Environment: env,
		Storage:     localstorage.KindFile,
		StoragePath: DefaultStoragePath,
		LogFile:     DefaultLogFile,
	}, nil
}

// New opens the local storage and returns a new CLI.
func New(settings Settings) (*CLI, error) {
	if settings.Prompt == nil {
		settings.Prompt = Terminal
	}
	if settings.Out == nil {
		settings.Out = os.Stdout
	}
	if settings.StoragePath == "" {
		settings.StoragePath = DefaultStoragePath
	}

	prompt := settings.Prompt
	storage, err := localstorage.Open(settings.Storage, settings.StoragePath, func() ([]byte, error) {
		return prompt.Password("passphrase: ")
	})
	if err != nil {
		return nil, errors.Wrap(err, "could not open local storage")
	}

	return &CLI{
		settings: settings,
		storage:  storage,
		logger:   NewLogger(settings.LogFile),
		out:      settings.Out,
		prompt:   prompt,
	}, nil
}

// Close releases the local storage.
func (c *CLI) Close() error {
	return c.storage.Close()
}

// Client returns a restbase.Client for the given resource.
func (c *CLI) Client(resource string) (*restbase.Client, error) {
	nav := &navigator{
		out: c.out,
		env: c.settings.Environment,
	}

	client, err := restbase.NewClient(c.settings.HTTPClient, nav, resource,
		restbase.WithEnvironment(c.settings.Environment),
		restbase.WithStorage(c.storage),
		restbase.WithLogger(c.logger),
	)
	return client, errors.Wrap(err, "could not create client")
}
