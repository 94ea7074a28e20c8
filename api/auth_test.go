package api

import (
	"net/http"
	"testing"

	"github.com/Domenick1991/airline/internal/domain"
	"github.com/Domenick1991/airline/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestAuthHandler_login_MissingPassword(t *testing.T) {
	s := newTestServer(t, "")

	w := s.do(http.MethodPost, "/api/auth/login", map[string]string{"email": "asha@example.com"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Missing required fields", decodeBody(t, w)["error"])
	s.auth.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthHandler_register(t *testing.T) {
	s := newTestServer(t, "")
	input := auth.RegisterInput{Email: "asha@example.com", Password: "secret", FirstName: "Asha"}
	user := &domain.User{ID: 1, Email: "asha@example.com", PasswordHash: "$2a$10$hash", FirstName: "Asha"}
	s.auth.On("Register", mock.Anything, input).Return(&auth.Session{User: user, Token: "jwt"}, nil).Once()

	w := s.do(http.MethodPost, "/api/auth/register", map[string]string{
		"email": "asha@example.com", "password": "secret", "first_name": "Asha",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "jwt", body["token"])
	userBody := body["user"].(map[string]interface{})
	assert.Equal(t, "asha@example.com", userBody["email"])
	assert.NotContains(t, userBody, "password_hash")
	assert.NotContains(t, w.Body.String(), "$2a$10$hash")
}

func TestAuthHandler_register_Duplicate(t *testing.T) {
	s := newTestServer(t, "")
	s.auth.On("Register", mock.Anything, mock.Anything).Return(nil, domain.ErrUserExists).Once()

	w := s.do(http.MethodPost, "/api/auth/register", map[string]string{"email": "a@b.c", "password": "x"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "User already exists", decodeBody(t, w)["error"])
}

func TestAuthHandler_login(t *testing.T) {
	s := newTestServer(t, "")
	s.auth.On("Login", mock.Anything, "asha@example.com", "secret").
		Return(&auth.Session{User: &domain.User{ID: 1}, Token: "jwt"}, nil).Once()
	s.auth.On("Login", mock.Anything, "asha@example.com", "wrong").Return(nil, domain.ErrInvalidCredentials).Once()

	w := s.do(http.MethodPost, "/api/auth/login", map[string]string{"email": "asha@example.com", "password": "secret"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "jwt", decodeBody(t, w)["token"])

	w = s.do(http.MethodPost, "/api/auth/login", map[string]string{"email": "asha@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid credentials", decodeBody(t, w)["error"])
}

func TestAuthHandler_verify(t *testing.T) {
	s := newTestServer(t, "")
	s.auth.On("Verify", mock.Anything, "good").Return(&domain.User{ID: 1, Email: "asha@example.com"}, nil).Once()
	s.auth.On("Verify", mock.Anything, "bad").Return(nil, domain.ErrUnauthorized).Once()
	s.auth.On("Verify", mock.Anything, "orphan").Return(nil, domain.ErrUserNotFound).Once()

	w := s.do(http.MethodGet, "/api/auth/verify", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "No token provided", decodeBody(t, w)["error"])

	w = s.do(http.MethodGet, "/api/auth/verify", nil, "Authorization", "Bearer good")
	assert.Equal(t, http.StatusOK, w.Code)
	user := decodeBody(t, w)["user"].(map[string]interface{})
	assert.Equal(t, "asha@example.com", user["email"])

	w = s.do(http.MethodGet, "/api/auth/verify", nil, "Authorization", "Bearer bad")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid token", decodeBody(t, w)["error"])

	w = s.do(http.MethodGet, "/api/auth/verify", nil, "Authorization", "Bearer orphan")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "User not found", decodeBody(t, w)["error"])
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", bearerToken("Bearer abc"))
	assert.Equal(t, "abc", bearerToken("bearer  abc "))
	assert.Equal(t, "", bearerToken("Basic abc"))
	assert.Equal(t, "", bearerToken("abc"))
	assert.Equal(t, "", bearerToken(""))
}
