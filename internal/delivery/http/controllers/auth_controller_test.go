package controllers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"eventbooking/internal/delivery/http/helpers"
	"eventbooking/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAuthService implements domain.AuthService for handler tests.
type fakeAuthService struct {
	registerErr  error
	loginErr     error
	lastEmail    string
	lastPassword string
	lastName     string
}

func (f *fakeAuthService) Register(ctx context.Context, email, password, name string) (*domain.User, error) {
	f.lastEmail, f.lastPassword, f.lastName = email, password, name
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return &domain.User{ID: 9, Email: email, Name: name, Role: domain.RoleUser, PasswordHash: "secret-hash"}, nil
}

func (f *fakeAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	f.lastEmail, f.lastPassword = email, password
	if f.loginErr != nil {
		return "", nil, f.loginErr
	}
	return "signed-token", &domain.User{ID: 9, Email: email, Role: domain.RoleUser}, nil
}

func TestAuthController_Register(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		fakeErr        error
		wantStatus     int
		wantCode       string
		wantBodySubstr string
	}{
		{"success", `{"email":"ada@example.com","password":"password1","name":"Ada"}`, nil, http.StatusCreated, "", ""},
		{"invalid email", `{"email":"ada","password":"password1","name":"Ada"}`, nil, http.StatusBadRequest, helpers.ErrCodeBadRequest, "email must be a valid email"},
		{"short password", `{"email":"ada@example.com","password":"short","name":"Ada"}`, nil, http.StatusBadRequest, helpers.ErrCodeBadRequest, "password must be at least 8 characters"},
		{"missing name", `{"email":"ada@example.com","password":"password1"}`, nil, http.StatusBadRequest, helpers.ErrCodeBadRequest, "name is required"},
		{"long password", `{"email":"ada@example.com","password":"` + strings.Repeat("p", 73) + `","name":"Ada"}`, nil, http.StatusBadRequest, helpers.ErrCodeBadRequest, "password must be at most 72 characters"},
		{"hasher rejects input", `{"email":"ada@example.com","password":"password1","name":"Ada"}`, fmt.Errorf("%w: password is empty", domain.ErrInvalidInput), http.StatusBadRequest, helpers.ErrCodeBadRequest, "password is empty"},
		{"duplicate email", `{"email":"ada@example.com","password":"password1","name":"Ada"}`, domain.ErrDuplicateEmail, http.StatusConflict, helpers.ErrCodeConflict, "email already registered"},
		{"internal error", `{"email":"ada@example.com","password":"password1","name":"Ada"}`, errors.New("db down"), http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeAuthService{registerErr: tt.fakeErr}
			ctrl := NewAuthController(testLogger, fake)
			req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewBufferString(tt.body))
			rr := httptest.NewRecorder()

			ctrl.Register(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantCode == "" {
				assert.NotContains(t, rr.Body.String(), "secret-hash", "password hash must never be serialized")
			}
			var user domain.User
			apiErr := decodeEnvelope(t, rr, &user)
			if tt.wantCode == "" {
				require.Nil(t, apiErr)
				assert.Equal(t, int64(9), user.ID)
				assert.Equal(t, domain.RoleUser, user.Role)
				assert.Equal(t, "Ada", fake.lastName)
				return
			}
			require.NotNil(t, apiErr)
			assert.Equal(t, tt.wantCode, apiErr.Code)
			assert.Contains(t, apiErr.Message, tt.wantBodySubstr)
		})
	}
}

func TestAuthController_Login(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		fakeErr    error
		wantStatus int
		wantCode   string
	}{
		{"success", `{"email":"ada@example.com","password":"password1"}`, nil, http.StatusOK, ""},
		{"missing password", `{"email":"ada@example.com"}`, nil, http.StatusBadRequest, helpers.ErrCodeBadRequest},
		{"bad credentials", `{"email":"ada@example.com","password":"nope"}`, domain.ErrInvalidCredentials, http.StatusUnauthorized, helpers.ErrCodeUnauthorized},
		{"internal error", `{"email":"ada@example.com","password":"password1"}`, errors.New("db down"), http.StatusInternalServerError, helpers.ErrCodeInternalError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeAuthService{loginErr: tt.fakeErr}
			ctrl := NewAuthController(testLogger, fake)
			req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(tt.body))
			rr := httptest.NewRecorder()

			ctrl.Login(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			var resp LoginResponse
			apiErr := decodeEnvelope(t, rr, &resp)
			if tt.wantCode == "" {
				require.Nil(t, apiErr)
				assert.Equal(t, "signed-token", resp.Token)
				assert.Equal(t, "Bearer", resp.TokenType)
				require.NotNil(t, resp.User)
				assert.Equal(t, "ada@example.com", resp.User.Email)
				return
			}
			require.NotNil(t, apiErr)
			assert.Equal(t, tt.wantCode, apiErr.Code)
		})
	}
}
