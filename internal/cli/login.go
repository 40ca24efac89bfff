package cli

import (
	"context"
	"fmt"

	"github.com/mdouchement/restbase/pkg/restbase"
	"github.com/pkg/errors"
)

// Login authenticates against the API and stores the returned account.
func (c *CLI) Login(ctx context.Context) error {
	email, err := c.prompt.Line("Email: ")
	if err != nil {
		return errors.Wrap(err, "could not read email from stdin")
	}

	password, err := c.prompt.Password("Password: ")
	if err != nil {
		return errors.Wrap(err, "could not read password from stdin")
	}

	//
	//

	client, err := c.Client("auth")
	if err != nil {
		return err
	}

	var account restbase.Account
	err = client.PostAsync(ctx, &account, "/sign_in", map[string]string{
		"email":    email,
		"password": string(password),
	}, nil, restbase.ExcludeAuthenticationHeaders())
	if err != nil {
		return errors.Wrap(err, "could not login")
	}
	if !account.Defined() {
		return errors.New("could not login: no access token received")
	}
	if account.Email == "" {
		account.Email = email
	}

	if err = restbase.SaveAccount(client.Storage(), client.Environment().UserKey, account); err != nil {
		return errors.Wrap(err, "could not store account")
	}

	c.logger.WithField("email", account.Email).Info("logged in")
	fmt.Fprintf(c.out, "Logged in as %s\n", account.Email)
	return nil
}
