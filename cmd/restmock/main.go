package main

import (
	"fmt"
	"log"
	"net"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/mdouchement/restbase/internal/database"
	"github.com/mdouchement/restbase/internal/model"
	"github.com/mdouchement/restbase/internal/server"
	"github.com/mdouchement/restbase/internal/server/service"
	"github.com/muesli/coral"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const dbname = "restmock.db"

var (
	version  = "dev"
	revision = "none"
	date     = "unknown"

	cfg  string
	role string
)

func main() {
	c := &coral.Command{
		Use:     "restmock",
		Short:   "Mock API server for restbase clients",
		Version: fmt.Sprintf("%s - build %.7s @ %s - %s", version, revision, date, runtime.Version()),
		Args:    coral.ExactArgs(0),
	}

	for _, cmd := range []*coral.Command{initCmd, reindexCmd, serverCmd, useraddCmd, userdelCmd} {
		cmd.Flags().StringVarP(&cfg, "config", "c", "", "Configuration file")
		c.AddCommand(cmd)
	}
	useraddCmd.Flags().StringVarP(&role, "role", "r", model.RoleMember, "User role (member|admin)")

	if err := c.Execute(); err != nil {
		log.Fatalf("%+v", err)
	}
}

func load() (*koanf.Koanf, error) {
	konf := koanf.New(".")
	err := konf.Load(confmap.Provider(map[string]any{
		"address":          "localhost:5000",
		"api_version":      server.DefaultAPIVersion,
		"access_token_ttl": "24h",
	}, "."), nil)
	if err != nil {
		return nil, err
	}

	if err = konf.Load(file.Provider(cfg), yaml.Parser()); err != nil {
		return nil, errors.Wrap(err, "could not load configuration")
	}
	return konf, nil
}

func dbnameWithPath(path string) string {
	if len(path) == 0 {
		return dbname
	}
	return filepath.Join(path, dbname)
}

func open(konf *koanf.Koanf) (database.Client, error) {
	db, err := database.StormOpen(dbnameWithPath(konf.String("database_path")))
	return db, errors.Wrap(err, "could not open database")
}

var (
	initCmd = &coral.Command{
		Use:   "init",
		Short: "Init the database",
		Args:  coral.ExactArgs(0),
		RunE: func(_ *coral.Command, _ []string) error {
			konf, err := load()
			if err != nil {
				return err
			}

			return database.StormInit(dbnameWithPath(konf.String("database_path")))
		},
	}

	//
	reindexCmd = &coral.Command{
		Use:   "reindex",
		Short: "Reindex the database",
		Args:  coral.ExactArgs(0),
		RunE: func(_ *coral.Command, _ []string) error {
			konf, err := load()
			if err != nil {
				return err
			}

			return database.StormReIndex(dbnameWithPath(konf.String("database_path")))
		},
	}

	//
	//
	useraddCmd = &coral.Command{
		Use:   "useradd EMAIL",
		Short: "Add a user to the database",
		Args:  coral.ExactArgs(1),
		RunE: func(_ *coral.Command, args []string) error {
			if role != model.RoleMember && role != model.RoleAdmin {
				return errors.Errorf("unsupported role: %s", role)
			}

			konf, err := load()
			if err != nil {
				return err
			}

			password, err := readline.Password("Password: ")
			if err != nil {
				return errors.Wrap(err, "could not read password from stdin")
			}

			db, err := open(konf)
			if err != nil {
				return err
			}
			defer db.Close()

			user, err := service.CreateUser(db, args[0], string(password), role)
			if err != nil {
				return err
			}

			fmt.Println("User created:", user.ID)
			return nil
		},
	}

	//
	//
	userdelCmd = &coral.Command{
		Use:   "userdel EMAIL",
		Short: "Remove a user and its sessions from the database",
		Args:  coral.ExactArgs(1),
		RunE: func(_ *coral.Command, args []string) error {
			konf, err := load()
			if err != nil {
				return err
			}

			db, err := open(konf)
			if err != nil {
				return err
			}
			defer db.Close()

			// Fetch user
			user, err := db.FindUserByMail(args[0])
			if err != nil {
				if db.IsNotFound(err) {
					fmt.Println("No account for this email")
					return nil
				}
				return err
			}

			fmt.Println("User found:", user.ID)

			sessions, err := db.FindSessionsByUserID(user.ID)
			if err != nil {
				return err
			}

			if err = db.DeleteUser(user); err != nil {
				return err
			}
			fmt.Printf("User removed (%d sessions revoked)\n", len(sessions))

			return nil
		},
	}

	//
	//
	serverCmd = &coral.Command{
		Use:   "server",
		Short: "Start server",
		Args:  coral.ExactArgs(0),
		RunE: func(_ *coral.Command, _ []string) error {
			konf, err := load()
			if err != nil {
				return err
			}

			if konf.String("secret_key") == "" {
				return errors.New("secret_key not found")
			}

			ttl, err := time.ParseDuration(konf.String("access_token_ttl"))
			if err != nil {
				return errors.Wrap(err, "invalid access_token_ttl")
			}

			db, err := open(konf)
			if err != nil {
				return err
			}
			defer db.Close()

			logger := logrus.New()
			logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

			engine := server.EchoEngine(server.Controller{
				Version:                   version,
				APIVersion:                konf.String("api_version"),
				Database:                  db,
				NoRegistration:            konf.Bool("no_registration"),
				Logger:                    logger,
				SigningKey:                konf.MustBytes("secret_key"),
				AccessTokenExpirationTime: ttl,
			})
			server.PrintRoutes(engine)

			address := konf.String("address")
			message := "could not run server"
			logger.Infof("Server listening on %s", address)
			parts := strings.Split(address, ":")
			if len(parts) == 2 && parts[0] == "unix" {
				socketFile := parts[1]
				if _, err := os.Stat(socketFile); err == nil {
					logger.Infof("Removing existing %s", socketFile)
					os.Remove(socketFile)
				}
				defer os.Remove(socketFile)
				listener, err := net.Listen(parts[0], socketFile)
				if err != nil {
					return err
				}
				return errors.Wrap(engine.Server.Serve(listener), message)
			}
			return errors.Wrap(engine.Start(address), message)
		},
	}
)
