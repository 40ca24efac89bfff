package service

import (
	"net/http"
	"time"

	"github.com/mdouchement/restbase/internal/apierror"
	"github.com/mdouchement/restbase/internal/database"
	"github.com/mdouchement/restbase/internal/model"
	"github.com/mdouchement/restbase/internal/server/session"
	"github.com/mdouchement/restbase/pkg/restbase"
	argon2 "github.com/mdouchement/simple-argon2"
	"github.com/pkg/errors"
)

type (
	// A UserService handles the user accounts.
	UserService interface {
		// Register creates a member account and logs it in.
		Register(params RegisterParams) (*restbase.Account, error)
		// Login authenticates the user and opens a new session.
		Login(params LoginParams) (*restbase.Account, error)
		// Password updates the user's password, revoking all its tokens.
		Password(user *model.User, params UpdatePasswordParams) error
	}

	// RegisterParams are used to register a user.
	RegisterParams struct {
		Params
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	// LoginParams are used to login a user.
	LoginParams struct {
		Params
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	// UpdatePasswordParams are used to update user's password.
	UpdatePasswordParams struct {
		Params
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}

	userService struct {
		db       database.Client
		sessions session.Manager
	}
)

// NewUser returns a new UserService.
func NewUser(db database.Client, sessions session.Manager) UserService {
	return &userService{
		db:       db,
		sessions: sessions,
	}
}

// CreateUser persists a new user with the given credentials and role.
func CreateUser(db database.Client, email, password, role string) (*model.User, error) {
	// Check if the email is free to use.
	u, err := db.FindUserByMail(email)
	if err != nil && !db.IsNotFound(err) {
		return nil, errors.Wrap(err, "could not get access to database")
	}
	if u != nil {
		return nil, apierror.NewWithTagCode(http.StatusConflict, "", "This email is already registered.")
	}

	// Initialize user
	user := model.NewUser()
	user.Email = email
	if role != "" {
		user.Role = role
	}

	// Crypt password
	user.Password, err = argon2.GenerateFromPasswordString(password, argon2.Default)
	if err != nil {
		return nil, errors.Wrap(err, "could not store user password safe")
	}
	user.PasswordUpdatedAt = time.Now().Unix()

	// Persist the model
	if err := db.Save(user); err != nil {
		return nil, errors.Wrap(err, "could not persist user")
	}
	return user, nil
}

func (s *userService) Register(params RegisterParams) (*restbase.Account, error) {
	user, err := CreateUser(s.db, params.Email, params.Password, model.RoleMember)
	if err != nil {
		return nil, err
	}

	return s.success(user, params.Params)
}

func (s *userService) Login(params LoginParams) (*restbase.Account, error) {
	// Retrieve user
	user, err := s.db.FindUserByMail(params.Email)
	if err != nil {
		if s.db.IsNotFound(err) {
			return nil, apierror.NewWithTagCode(http.StatusUnauthorized, "", "Invalid email or password.")
		}
		return nil, errors.Wrap(err, "could not get user")
	}

	// Verify password
	if err = argon2.CompareHashAndPasswordString(user.Password, params.Password); err != nil {
		if err == argon2.ErrMismatchedHashAndPassword {
			return nil, apierror.NewWithTagCode(http.StatusUnauthorized, "", "Invalid email or password.")
		}
		return nil, errors.Wrap(err, "could not validate password")
	}

	return s.success(user, params.Params)
}

func (s *userService) Password(user *model.User, params UpdatePasswordParams) error {
	// Verify CurrentPassword
	if err := argon2.CompareHashAndPasswordString(user.Password, params.CurrentPassword); err != nil {
		if err == argon2.ErrMismatchedHashAndPassword {
			return apierror.NewWithTagCode(http.StatusUnauthorized, "", "The current password you entered is incorrect. Please try again.")
		}
		return errors.Wrap(err, "could not validate password")
	}

	// Crypt & update password
	pw, err := argon2.GenerateFromPasswordString(params.NewPassword, argon2.Default)
	if err != nil {
		return errors.Wrap(err, "could not store user password safe")
	}
	user.Password = pw
	user.PasswordUpdatedAt = time.Now().Unix()

	if err = s.db.Save(user); err != nil {
		return errors.Wrap(err, "could not persist user")
	}

	// Revoke all the sessions opened with the previous password.
	sessions, err := s.db.FindSessionsByUserID(user.ID)
	if err != nil {
		return errors.Wrap(err, "could not get user sessions")
	}
	for _, sess := range sessions {
		if err = s.sessions.Revoke(sess); err != nil {
			return err
		}
	}
	return nil
}

func (s *userService) success(user *model.User, params Params) (*restbase.Account, error) {
	session, token, err := s.sessions.Generate(user, params.UserAgent)
	if err != nil {
		return nil, errors.Wrap(err, "could not generate session")
	}

	return &restbase.Account{
		Email:       user.Email,
		AccessToken: token,
		Expiration:  session.ExpireAt.Format(time.RFC3339),
	}, nil
}
