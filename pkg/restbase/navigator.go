package restbase

type (
	// A Navigator moves the user to another route of the application.
	Navigator interface {
		Navigate(route string)
	}

	// NavigatorFunc is an adapter to allow the use of ordinary functions as Navigator.
	NavigatorFunc func(route string)

	nop struct{}
)

// NopNavigator is a Navigator that does nothing.
var NopNavigator Navigator = nop{}

// Navigate calls f(route).
func (f NavigatorFunc) Navigate(route string) {
	f(route)
}

func (nop) Navigate(string) {}
