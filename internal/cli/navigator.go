package cli

import (
	"fmt"
	"io"

	"github.com/mdouchement/restbase/pkg/restbase"
)

// navigator turns the client's route navigations into hints for the user.
type navigator struct {
	out io.Writer
	env restbase.Environment
}

func (n *navigator) Navigate(route string) {
	switch route {
	case n.env.LoginRoute:
		fmt.Fprintln(n.out, "Session expired or invalid, run `restc login`")
	case n.env.UnauthorizedRoute:
		fmt.Fprintln(n.out, "Access denied")
	default:
		fmt.Fprintf(n.out, "Navigate to %s\n", route)
	}
}
