package cli

import (
	"fmt"
	"time"

	"github.com/mdouchement/restbase/pkg/restbase"
	"github.com/pkg/errors"
)

// Whoami prints the stored account.
func (c *CLI) Whoami() error {
	client, err := c.Client("auth")
	if err != nil {
		return err
	}

	account, ok, err := restbase.LoadAccount(client.Storage(), client.Environment().UserKey)
	if err != nil {
		return errors.Wrap(err, "could not read stored account")
	}
	if !ok || !account.Defined() {
		fmt.Fprintln(c.out, "Not logged in")
		return nil
	}

	fmt.Fprintf(c.out, "Email:   %s\n", account.Email)

	expiration, err := account.ExpiresAt()
	switch {
	case errors.Is(err, restbase.ErrNoExpiration):
		fmt.Fprintln(c.out, "Expires: never")
	case err != nil:
		fmt.Fprintf(c.out, "Expires: unknown (%s)\n", account.Expiration)
	case account.Expired():
		fmt.Fprintf(c.out, "Expired: %s\n", expiration.Local().Format(time.RFC1123))
	default:
		fmt.Fprintf(c.out, "Expires: %s (in %s)\n",
			expiration.Local().Format(time.RFC1123),
			time.Until(expiration).Round(time.Second),
		)
	}
	return nil
}
