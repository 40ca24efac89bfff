//
// restbase is the base of the REST clients of a front-end application.
//
// A Client is bound to one API resource. It sends its requests to
// `<APIURL>/<APIVersion>/<resource><suffix>`, adds the bearer token of the stored
// session and, on 401 and 403 responses, clears the session and navigates
// to the login or unauthorized route.
//

// Create client
//
//	env, err := restbase.LoadEnvironment("MYAPP")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	navigator := restbase.NavigatorFunc(func(route string) {
//		log.Println("redirected to", route)
//	})
//
//	client, err := restbase.NewClient(http.DefaultClient, navigator, "widgets",
//		restbase.WithEnvironment(env),
//		restbase.WithStorage(storage),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Lazy call
//
//	call := client.Get("/items", restbase.QueryParams{"id": "5"}) // Nothing is sent yet.
//	items, err := restbase.Await[[]Item](ctx, call)
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Awaitable call
//
//	var widget Widget
//	err = client.PostAsync(ctx, &widget, "", Widget{Name: "gear"}, nil)
//	if restbase.IsUnauthorized(err) {
//		// The session has been cleared and the navigator called with the login route.
//	}
package restbase
