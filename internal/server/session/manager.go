package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mdouchement/restbase/internal/apierror"
	"github.com/mdouchement/restbase/internal/database"
	"github.com/mdouchement/restbase/internal/model"
	"github.com/pkg/errors"
)

// Issuer is the `iss` claim of the generated access tokens.
const Issuer = "restmock"

type (
	// A Manager manages sessions.
	Manager interface {
		// Generate creates a new session for the given user and returns its signed access token.
		Generate(user *model.User, userAgent string) (*model.Session, string, error)
		// Validate validates an access token and returns its session and user.
		Validate(token string) (*model.Session, *model.User, error)
		// Revoke terminates the given session.
		Revoke(session *model.Session) error
	}

	manager struct {
		db                        database.Client
		signingKey                []byte
		accessTokenExpirationTime time.Duration
	}
)

// NewManager returns a new manager.
func NewManager(db database.Client, signingKey []byte, accessTokenExpirationTime time.Duration) Manager {
	return &manager{
		db:                        db,
		signingKey:                signingKey,
		accessTokenExpirationTime: accessTokenExpirationTime,
	}
}

func (m *manager) Generate(user *model.User, userAgent string) (*model.Session, string, error) {
	now := time.Now()
	session := &model.Session{
		ExpireAt:  now.Add(m.accessTokenExpirationTime).UTC(),
		UserID:    user.ID,
		UserAgent: userAgent,
		TokenID:   NewTokenID(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iss":  Issuer,
		"sub":  user.ID,
		"jti":  session.TokenID,
		"role": user.Role,
		"iat":  now.Unix(),
		"exp":  session.ExpireAt.Unix(),
	})

	signed, err := token.SignedString(m.signingKey)
	if err != nil {
		return nil, "", errors.Wrap(err, "could not sign access token")
	}

	if err = m.db.Save(session); err != nil {
		return nil, "", errors.Wrap(err, "could not persist session")
	}
	return session, signed, nil
}

func (m *manager) Validate(token string) (*model.Session, *model.User, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return m.signingKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(Issuer))
	if err != nil {
		return nil, nil, apierror.Unauthorized("Invalid login credentials.")
	}

	jti, _ := claims["jti"].(string)
	session, err := m.db.FindSessionByTokenID(jti)
	if err != nil {
		if m.db.IsNotFound(err) {
			return nil, nil, apierror.Unauthorized("Revoked token.")
		}
		return nil, nil, errors.Wrap(err, "could not get access to database")
	}

	if session.Expired() {
		return nil, nil, apierror.Unauthorized("Invalid login credentials.")
	}

	user, err := m.db.FindUser(session.UserID)
	if err != nil {
		if m.db.IsNotFound(err) {
			return nil, nil, apierror.Unauthorized("No such user for given token.")
		}
		return nil, nil, errors.Wrap(err, "could not get access to database")
	}

	// Check if password has changed since token was generated.
	iat, err := claims.GetIssuedAt()
	if err != nil || iat == nil || iat.Unix() < user.PasswordUpdatedAt {
		return nil, nil, apierror.Unauthorized("Revoked token.")
	}

	return session, user, nil
}

func (m *manager) Revoke(session *model.Session) error {
	err := m.db.Delete(session)
	if err != nil && !m.db.IsNotFound(err) {
		return errors.Wrap(err, "could not revoke session")
	}
	return nil
}
