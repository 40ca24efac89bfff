package server

import (
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/mdouchement/restbase/internal/database"
	"github.com/mdouchement/restbase/internal/model"
	"github.com/mdouchement/restbase/internal/server/middlewares"
	"github.com/mdouchement/restbase/internal/server/session"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// DefaultAPIVersion is the API version served when none is configured.
const DefaultAPIVersion = "v1"

// A Controller is an Inversion Of Control pattern used to init the server package.
type Controller struct {
	Version        string
	APIVersion     string
	Database       database.Client
	NoRegistration bool
	Logger         logrus.FieldLogger
	// JWT params
	SigningKey                []byte
	AccessTokenExpirationTime time.Duration
}

// EchoEngine instantiates the wep server.
func EchoEngine(ctrl Controller) *echo.Echo {
	if ctrl.APIVersion == "" {
		ctrl.APIVersion = DefaultAPIVersion
	}
	if ctrl.Logger == nil {
		ctrl.Logger = logrus.StandardLogger()
	}

	engine := echo.New()
	engine.HideBanner = true
	engine.Use(middleware.Recover())
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.DefaultCORSConfig))
	engine.Use(middleware.Gzip())

	engine.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "[${status}] ${method} ${uri} (${bytes_in}) ${latency_human}\n",
	}))
	engine.Binder = middlewares.NewBinder()
	// Error handler
	engine.HTTPErrorHandler = middlewares.HTTPErrorHandler(ctrl.Logger)

	engine.Pre(middleware.Rewrite(map[string]string{
		"/": "/version",
	}))

	////////////
	// Router //
	////////////

	sessions := session.NewManager(
		ctrl.Database,
		ctrl.SigningKey,
		ctrl.AccessTokenExpirationTime,
	)

	router := engine.Group("")
	api := router.Group("/api/" + ctrl.APIVersion)
	restricted := api.Group("")
	restricted.Use(middlewares.Session(sessions))

	// generic handlers
	//
	router.GET("/version", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"version":     ctrl.Version,
			"api_version": ctrl.APIVersion,
		})
	})
	router.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	//
	// auth handlers
	//
	auth := &auth{
		db:       ctrl.Database,
		sessions: sessions,
	}
	if !ctrl.NoRegistration {
		api.POST("/auth", auth.Register)
	}
	api.POST("/auth/sign_in", auth.Login)
	restricted.POST("/auth/sign_out", auth.Logout)
	restricted.GET("/auth/me", auth.Me)
	restricted.POST("/auth/change_pw", auth.UpdatePassword)

	//
	// widget handlers
	//
	widget := &widget{
		db: ctrl.Database,
	}
	restricted.GET("/widgets", widget.List)
	restricted.GET("/widgets/:id", widget.Show)
	restricted.POST("/widgets", widget.Create)
	restricted.PUT("/widgets/:id", widget.Update)
	restricted.DELETE("/widgets/:id", widget.Delete, middlewares.RequireRole(model.RoleAdmin))

	return engine
}

// PrintRoutes prints the Echo engin exposed routes.
func PrintRoutes(e *echo.Echo) {
	ignored := map[string]bool{
		"":   true,
		".":  true,
		"/*": true,
	}

	routes := e.Routes()
	sort.Slice(routes, func(i int, j int) bool {
		return routes[i].Path < routes[j].Path
	})

	fmt.Println("Routes:")
	for _, route := range routes {
		if ignored[route.Path] {
			continue
		}
		fmt.Printf("%6s %s\n", route.Method, route.Path)
	}
}

func currentUser(c echo.Context) *model.User {
	user, ok := c.Get(middlewares.CurrentUserContextKey).(*model.User)
	if ok {
		return user
	}
	return nil
}

func currentSession(c echo.Context) *model.Session {
	session, ok := c.Get(middlewares.CurrentSessionContextKey).(*model.Session)
	if ok {
		return session
	}
	return nil
}
