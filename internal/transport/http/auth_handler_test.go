package handlers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	s := newTestServer(t)

	reg := s.register(t, "a@test.io")
	assert.Equal(t, "Registration successful", reg.Message)
	assert.NotEmpty(t, reg.AccessToken)
	assert.Equal(t, "basic", reg.User.SubscriptionPlan)
	assert.NotNil(t, reg.User.Profiles)

	w := s.do(t, http.MethodPost, "/api/auth/register", gin.H{"email": "a@test.io", "password": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Email already exists"}`, w.Body.String())

	w = s.do(t, http.MethodPost, "/api/auth/register", gin.H{"email": "b@test.io"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Email and password are required"}`, w.Body.String())

	s.createProfile(t, reg.User.ID, "Anna")
	w = s.do(t, http.MethodPost, "/api/auth/login", gin.H{"email": "a@test.io", "password": "secret"})
	require.Equal(t, http.StatusOK, w.Code)
	login := decode[authBody](t, w)
	assert.Equal(t, "Login successful", login.Message)
	require.Len(t, login.User.Profiles, 1)
	assert.Equal(t, "Anna", login.User.Profiles[0].Name)

	for _, body := range []gin.H{
		{"email": "a@test.io", "password": "wrong"},
		{"email": "ghost@test.io", "password": "secret"},
	} {
		w = s.do(t, http.MethodPost, "/api/auth/login", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Invalid credentials"}`, w.Body.String())
	}
}

func TestRegisterLongPassword(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/auth/register", gin.H{"email": "long@test.io", "password": strings.Repeat("p", 73)})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestMeAndLogout(t *testing.T) {
	s := newTestServer(t)
	reg := s.register(t, "a@test.io")
	bearer := "Bearer " + reg.AccessToken

	w := s.do(t, http.MethodGet, "/api/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"No valid token provided"}`, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/auth/me", nil, "Authorization", "Bearer netflix_token_1")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Invalid token format"}`, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/auth/me", nil, "Authorization", bearer)
	require.Equal(t, http.StatusOK, w.Code)
	me := decode[struct {
		User userResponse `json:"user"`
	}](t, w)
	assert.Equal(t, "a@test.io", me.User.Email)

	w = s.do(t, http.MethodPost, "/api/auth/logout", nil, "Authorization", bearer)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Logout successful"}`, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/auth/me", nil, "Authorization", bearer)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Token has been revoked"}`, w.Body.String())

	// Без токена выход тоже успешен
	w = s.do(t, http.MethodPost, "/api/auth/logout", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMeUnknownUser(t *testing.T) {
	s := newTestServer(t)
	reg := s.register(t, "a@test.io")
	require.NoError(t, s.db.Exec("DELETE FROM users").Error)

	w := s.do(t, http.MethodGet, "/api/auth/me", nil, "Authorization", "Bearer "+reg.AccessToken)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"User not found"}`, w.Body.String())
}

func TestSubscriptionAndPlans(t *testing.T) {
	s := newTestServer(t)
	reg := s.register(t, "a@test.io")

	w := s.do(t, http.MethodPut, "/api/subscription/"+itoa(reg.User.ID), gin.H{"subscription_plan": "premium"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Subscription plan updated successfully","subscription_plan":"premium"}`, w.Body.String())

	w = s.do(t, http.MethodPut, "/api/subscription/"+itoa(reg.User.ID), gin.H{"subscription_plan": "gold"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Invalid subscription plan"}`, w.Body.String())

	w = s.do(t, http.MethodPut, "/api/subscription/999", gin.H{"subscription_plan": "basic"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodPut, "/api/subscription/abc", gin.H{"subscription_plan": "basic"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"invalid user id"}`, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/plans", nil)
	require.Equal(t, http.StatusOK, w.Code)
	plans := decode[struct {
		Success bool `json:"success"`
		Plans   []struct {
			ID       string   `json:"id"`
			Price    string   `json:"price"`
			Features []string `json:"features"`
		} `json:"plans"`
	}](t, w)
	assert.True(t, plans.Success)
	require.Len(t, plans.Plans, 3)
	assert.Equal(t, "basic", plans.Plans[0].ID)
	assert.Equal(t, "£6.99/month", plans.Plans[0].Price)
	assert.Len(t, plans.Plans[2].Features, 4)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
