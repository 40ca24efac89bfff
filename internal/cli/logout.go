package cli

import (
	"context"
	"fmt"

	"github.com/mdouchement/restbase/pkg/restbase"
	"github.com/pkg/errors"
)

// Logout terminates the server session and removes the stored account.
func (c *CLI) Logout(ctx context.Context) error {
	client, err := c.Client("auth")
	if err != nil {
		return err
	}

	if client.AccessToken() == "" {
		return errors.New("could not logout because no session is stored")
	}

	// A rejected token has already been removed by the client.
	err = client.PostAsync(ctx, nil, "/sign_out", nil, nil)
	if err != nil && !restbase.IsUnauthorized(err) {
		return errors.Wrap(err, "could not logout")
	}

	if err = client.ClearSession(); err != nil {
		return errors.Wrap(err, "could not remove stored account")
	}

	fmt.Fprintln(c.out, "Logged out")
	return nil
}
