package middleware

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"eventbooking/internal/delivery/http/helpers"
	"eventbooking/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTokenVerifier implements domain.TokenVerifier for tests.
type fakeTokenVerifier struct {
	principal domain.Principal
	err       error
	lastToken string
}

func (f *fakeTokenVerifier) Verify(token string) (domain.Principal, error) {
	f.lastToken = token
	if f.err != nil {
		return domain.Principal{}, f.err
	}
	return f.principal, nil
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) *helpers.APIError {
	t.Helper()
	var envelope helpers.APIResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
	require.NotNil(t, envelope.Error)
	return envelope.Error
}

func TestRequireAuth(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	user := domain.Principal{UserID: 7, Role: domain.RoleUser}

	tests := []struct {
		name          string
		authHeader    string
		verifier      *fakeTokenVerifier
		wantStatus    int
		wantMessage   string
		nextCalled    bool
		wantPrincipal domain.Principal
	}{
		{
			name:          "valid token sets context and calls next",
			authHeader:    "Bearer valid-token",
			verifier:      &fakeTokenVerifier{principal: user},
			wantStatus:    http.StatusOK,
			nextCalled:    true,
			wantPrincipal: user,
		},
		{
			name:        "missing authorization header",
			authHeader:  "",
			verifier:    &fakeTokenVerifier{principal: user},
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "missing authorization header",
		},
		{
			name:        "invalid authorization format no Bearer prefix",
			authHeader:  "Basic abc",
			verifier:    &fakeTokenVerifier{principal: user},
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "malformed authorization header",
		},
		{
			name:        "too many parts",
			authHeader:  "Bearer a b",
			verifier:    &fakeTokenVerifier{principal: user},
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "malformed authorization header",
		},
		{
			name:        "empty token after Bearer",
			authHeader:  "Bearer ",
			verifier:    &fakeTokenVerifier{principal: user},
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "malformed authorization header",
		},
		{
			name:        "verifier returns error",
			authHeader:  "Bearer bad-token",
			verifier:    &fakeTokenVerifier{err: errors.New("signature is invalid")},
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "invalid or expired token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextCalled := false
			var captured domain.Principal
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				if p, ok := PrincipalFromContext(r.Context()); ok {
					captured = p
				}
				w.WriteHeader(http.StatusOK)
			})
			handler := RequireAuth(tt.verifier, logger)(next)

			req := httptest.NewRequest(http.MethodGet, "http://test/events", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rr := httptest.NewRecorder()

			handler(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			assert.Equal(t, tt.nextCalled, nextCalled, "next handler called")
			if tt.nextCalled {
				assert.Equal(t, tt.wantPrincipal, captured, "principal in context")
				assert.Equal(t, "valid-token", tt.verifier.lastToken)
				return
			}
			e := decodeError(t, rr)
			assert.Equal(t, helpers.ErrCodeUnauthorized, e.Code)
			assert.Equal(t, tt.wantMessage, e.Message)
		})
	}
}

func TestRequirePermission(t *testing.T) {
	tests := []struct {
		name       string
		principal  *domain.Principal
		perm       domain.Permission
		wantStatus int
		wantCode   string
	}{
		{"admin may manage events", &domain.Principal{UserID: 1, Role: domain.RoleAdmin}, domain.PermissionManageEvents, http.StatusOK, ""},
		{"user may get events", &domain.Principal{UserID: 7, Role: domain.RoleUser}, domain.PermissionGetEvents, http.StatusOK, ""},
		{"user may not manage events", &domain.Principal{UserID: 7, Role: domain.RoleUser}, domain.PermissionManageEvents, http.StatusForbidden, helpers.ErrCodeForbidden},
		{"no principal", nil, domain.PermissionGetEvents, http.StatusUnauthorized, helpers.ErrCodeUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextCalled := false
			next := func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				w.WriteHeader(http.StatusOK)
			}
			req := httptest.NewRequest(http.MethodPost, "http://test/events", nil)
			if tt.principal != nil {
				req = req.WithContext(SetPrincipal(req.Context(), *tt.principal))
			}
			rr := httptest.NewRecorder()

			RequirePermission(tt.perm)(next)(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantStatus == http.StatusOK, nextCalled)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decodeError(t, rr).Code)
			}
		})
	}
}
