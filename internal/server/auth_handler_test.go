package server_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/appleboy/gofight/v2"
	"github.com/mdouchement/restbase/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/valyala/fastjson"
)

func TestRequestRegistration(t *testing.T) {
	engine, _, cleanup := setup(t)
	defer cleanup()

	params := gofight.D{}
	gofight.New().POST("/api/v1/auth").SetJSON(params).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusBadRequest, r.Code)
		assert.JSONEq(t, `{"error":{"tag":"invalid-parameters","message":"No email provided."}}`, r.Body.String())
	})

	params["email"] = "george.abitbol@nowhere.lan"
	gofight.New().POST("/api/v1/auth").SetJSON(params).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusBadRequest, r.Code)
		assert.JSONEq(t, `{"error":{"tag":"invalid-parameters","message":"No password provided."}}`, r.Body.String())
	})

	params["password"] = "password42"
	gofight.New().POST("/api/v1/auth").SetJSON(params).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)

		v, err := fastjson.Parse(r.Body.String())
		assert.NoError(t, err)

		assert.True(t, jwtLike(string(v.GetStringBytes("accessToken"))))
		assert.Equal(t, params["email"], string(v.GetStringBytes("email")))

		expiration, err := time.Parse(time.RFC3339, string(v.GetStringBytes("expiresAt")))
		assert.NoError(t, err)
		assert.WithinDuration(t, time.Now().Add(24*time.Hour), expiration, time.Minute)
	})

	gofight.New().POST("/api/v1/auth").SetJSON(params).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusConflict, r.Code)
		assert.JSONEq(t, `{"error":{"message":"This email is already registered."}}`, r.Body.String())
	})
}

func TestRequestLogin(t *testing.T) {
	engine, ctrl, cleanup := setup(t)
	defer cleanup()

	gofight.New().POST("/api/v1/auth/sign_in").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusBadRequest, r.Code)
	})

	params := gofight.D{
		"email": "george.abitbol@nowhere.lan",
	}
	gofight.New().POST("/api/v1/auth/sign_in").SetJSON(params).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusBadRequest, r.Code)
		assert.JSONEq(t, `{"error":{"tag":"invalid-parameters","message":"No email or password provided."}}`, r.Body.String())
	})

	params["password"] = "password42"
	gofight.New().POST("/api/v1/auth/sign_in").SetJSON(params).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusUnauthorized, r.Code)
		assert.JSONEq(t, `{"error":{"message":"Invalid email or password."}}`, r.Body.String())
	})

	createUser(t, ctrl, model.RoleMember)

	params["password"] = "password24"
	gofight.New().POST("/api/v1/auth/sign_in").SetJSON(params).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusUnauthorized, r.Code)
		assert.JSONEq(t, `{"error":{"message":"Invalid email or password."}}`, r.Body.String())
	})

	params["password"] = "password42"
	gofight.New().POST("/api/v1/auth/sign_in").SetJSON(params).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)

		v, err := fastjson.Parse(r.Body.String())
		assert.NoError(t, err)
		token := string(v.GetStringBytes("accessToken"))
		assert.True(t, jwtLike(token))

		gofight.New().GET("/api/v1/auth/me").SetHeader(bearer(token)).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
			assert.Equal(t, http.StatusOK, r.Code)
		})
	})
}

func TestRequestMe(t *testing.T) {
	engine, ctrl, cleanup := setup(t)
	defer cleanup()

	gofight.New().GET("/api/v1/auth/me").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusUnauthorized, r.Code)
		assert.JSONEq(t, `{"error":{"tag":"invalid-auth","message":"Invalid login credentials."}}`, r.Body.String())
	})

	gofight.New().GET("/api/v1/auth/me").SetHeader(bearer("not.a.token")).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusUnauthorized, r.Code)
	})

	user := createUser(t, ctrl, model.RoleMember)
	token := accessToken(t, ctrl, user)

	gofight.New().GET("/api/v1/auth/me").SetHeader(bearer(token)).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)

		v, err := fastjson.Parse(r.Body.String())
		assert.NoError(t, err)
		assert.Equal(t, user.ID, string(v.GetStringBytes("id")))
		assert.Equal(t, user.Email, string(v.GetStringBytes("email")))
		assert.Equal(t, model.RoleMember, string(v.GetStringBytes("role")))
		assert.Nil(t, v.Get("password"))
	})
}

func TestRequestLogout(t *testing.T) {
	engine, ctrl, cleanup := setup(t)
	defer cleanup()

	user := createUser(t, ctrl, model.RoleMember)
	token := accessToken(t, ctrl, user)

	gofight.New().POST("/api/v1/auth/sign_out").SetHeader(bearer(token)).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusNoContent, r.Code)
	})

	gofight.New().GET("/api/v1/auth/me").SetHeader(bearer(token)).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusUnauthorized, r.Code)
		assert.JSONEq(t, `{"error":{"tag":"invalid-auth","message":"Revoked token."}}`, r.Body.String())
	})
}

func TestRequestUpdatePassword(t *testing.T) {
	engine, ctrl, cleanup := setup(t)
	defer cleanup()

	user := createUser(t, ctrl, model.RoleMember)
	token := accessToken(t, ctrl, user)
	other := accessToken(t, ctrl, user)

	params := gofight.D{
		"new_password": "password24",
	}
	gofight.New().POST("/api/v1/auth/change_pw").SetHeader(bearer(token)).SetJSON(params).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusBadRequest, r.Code)
		assert.JSONEq(t, `{"error":{"tag":"invalid-parameters","message":"Your current password is required to change your password."}}`, r.Body.String())
	})

	params["current_password"] = "password24"
	gofight.New().POST("/api/v1/auth/change_pw").SetHeader(bearer(token)).SetJSON(params).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusUnauthorized, r.Code)
		assert.JSONEq(t, `{"error":{"message":"The current password you entered is incorrect. Please try again."}}`, r.Body.String())
	})

	params["current_password"] = "password42"
	gofight.New().POST("/api/v1/auth/change_pw").SetHeader(bearer(token)).SetJSON(params).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusNoContent, r.Code)
	})

	// Every token issued before the change is revoked, whatever its issue second.
	for _, revoked := range []string{token, other} {
		gofight.New().GET("/api/v1/auth/me").SetHeader(bearer(revoked)).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
			assert.Equal(t, http.StatusUnauthorized, r.Code)
			assert.JSONEq(t, `{"error":{"tag":"invalid-auth","message":"Revoked token."}}`, r.Body.String())
		})
	}

	sessions, err := ctrl.Database.FindSessionsByUserID(user.ID)
	assert.NoError(t, err)
	assert.Empty(t, sessions)

	var fresh string
	gofight.New().POST("/api/v1/auth/sign_in").
		SetJSON(gofight.D{"email": user.Email, "password": "password24"}).
		Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
			assert.Equal(t, http.StatusOK, r.Code)

			v, err := fastjson.Parse(r.Body.String())
			assert.NoError(t, err)
			fresh = string(v.GetStringBytes("accessToken"))
		})

	gofight.New().GET("/api/v1/auth/me").SetHeader(bearer(fresh)).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)
	})
}
