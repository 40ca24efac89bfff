package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/mdouchement/restbase/internal/cli"
	"github.com/mdouchement/restbase/pkg/localstorage"
	"github.com/spf13/cobra"
)

var (
	version  = "dev"
	revision = "none"
	date     = "unknown"
)

var (
	settings cli.Settings
	request  cli.Request
)

func main() {
	var err error
	settings, err = cli.LoadSettings()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	c := &cobra.Command{
		Use:          "restc",
		Short:        "REST client for the restbase API",
		Version:      fmt.Sprintf("%s - build %.7s @ %s", version, revision, date),
		Args:         cobra.NoArgs,
		SilenceUsage: true,
	}
	c.PersistentFlags().StringVar(&settings.Storage, "storage", settings.Storage,
		fmt.Sprintf("local storage kind (%s|%s|%s)", localstorage.KindFile, localstorage.KindSealed, localstorage.KindStorm))
	c.PersistentFlags().StringVar(&settings.StoragePath, "storage-path", settings.StoragePath, "local storage location")
	c.PersistentFlags().StringVar(&settings.LogFile, "log-file", settings.LogFile, "diagnostics file")
	c.PersistentFlags().StringVar(&settings.Environment.APIURL, "api-url", settings.Environment.APIURL, "API root URL")
	c.PersistentFlags().StringVar(&settings.Environment.APIVersion, "api-version", settings.Environment.APIVersion, "API version")

	c.AddCommand(loginCmd)
	c.AddCommand(logoutCmd)
	c.AddCommand(whoamiCmd)
	for _, method := range []string{"get", "post", "put", "delete"} {
		c.AddCommand(requestCmd(method))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := c.ExecuteContext(ctx); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func run(fn func(ctx context.Context, c *cli.CLI) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		c, err := cli.New(settings)
		if err != nil {
			return err
		}
		defer c.Close()

		return fn(cmd.Context(), c)
	}
}

var (
	loginCmd = &cobra.Command{
		Use:   "login",
		Short: "Login to the API and store the session",
		Args:  cobra.NoArgs,
		RunE: run(func(ctx context.Context, c *cli.CLI) error {
			return c.Login(ctx)
		}),
	}

	logoutCmd = &cobra.Command{
		Use:   "logout",
		Short: "Logout from the API and remove the stored session",
		Args:  cobra.NoArgs,
		RunE: run(func(ctx context.Context, c *cli.CLI) error {
			return c.Logout(ctx)
		}),
	}

	whoamiCmd = &cobra.Command{
		Use:   "whoami",
		Short: "Print the stored session",
		Args:  cobra.NoArgs,
		RunE: run(func(_ context.Context, c *cli.CLI) error {
			return c.Whoami()
		}),
	}
)

func requestCmd(method string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   method + " RESOURCE [SUFFIX]",
		Short: fmt.Sprintf("Perform a %s request on the given resource", strings.ToUpper(method)),
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r := request
			r.Method = method
			r.Resource = args[0]
			if len(args) > 1 {
				r.Suffix = args[1]
			}

			return run(func(ctx context.Context, c *cli.CLI) error {
				return c.Do(ctx, r)
			})(cmd, args)
		},
	}

	cmd.Flags().StringArrayVarP(&request.Query, "query", "q", nil, "query parameter as key=value (repeatable)")
	cmd.Flags().BoolVar(&request.NoAuth, "no-auth", false, "do not send the authentication headers")
	cmd.Flags().BoolVar(&request.Dump, "dump", false, "dump the response as Go values")
	if method == "post" || method == "put" {
		cmd.Flags().StringVarP(&request.Data, "data", "d", "", "JSON request body")
	}
	return cmd
}
