package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/jobtrack/jobtrack/internal/data/repository"
	"github.com/jobtrack/jobtrack/internal/service"
	"github.com/jobtrack/jobtrack/pkg/jwt"
	"github.com/jobtrack/jobtrack/pkg/logger"
)

type staticUserRepo struct {
	user *repository.User
}

func (r *staticUserRepo) Create(_ context.Context, user *repository.User) (*repository.User, error) {
	return user, nil
}

func (r *staticUserRepo) FindByID(_ context.Context, id string) (*repository.User, error) {
	if r.user != nil && r.user.ID == id {
		return r.user, nil
	}
	return nil, repository.ErrNotFound
}

func (r *staticUserRepo) FindByEmail(_ context.Context, email string) (*repository.User, error) {
	if r.user != nil && r.user.Email == email {
		return r.user, nil
	}
	return nil, repository.ErrNotFound
}

func newTestRouter(t *testing.T, role repository.Role) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens := jwt.NewTokenManager("test-secret")
	user := &repository.User{ID: "u-1", Email: "user@example.com", Role: role}
	auth := service.NewAuthService(&staticUserRepo{user: user}, tokens, logger.StandardLogger())

	token, err := tokens.GenerateAccessToken("jti", map[string]any{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    string(user.Role),
	})
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	e := gin.New()
	e.GET("/protected", Auth(auth), func(c *gin.Context) {
		ident := CurrentIdentity(c)
		c.JSON(http.StatusOK, gin.H{"user_id": ident.UserID})
	})
	e.GET("/admin", Auth(auth), RequireAdmin(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	return e, token
}

// TestAuthMissingToken rejects requests without a bearer token.
func TestAuthMissingToken(t *testing.T) {
	e, _ := newTestRouter(t, repository.RoleUser)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	e.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

// TestAuthInvalidToken rejects garbage tokens.
func TestAuthInvalidToken(t *testing.T) {
	e, _ := newTestRouter(t, repository.RoleUser)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	e.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

// TestAuthValidToken lets a valid token through and exposes the identity.
func TestAuthValidToken(t *testing.T) {
	e, token := newTestRouter(t, repository.RoleUser)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	e.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body %s", w.Code, http.StatusOK, w.Body.String())
	}
}

// TestRequireAdminForbidden rejects plain users on admin routes.
func TestRequireAdminForbidden(t *testing.T) {
	e, token := newTestRouter(t, repository.RoleUser)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	e.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want %d", w.Code, http.StatusForbidden)
	}
}

// TestRequireAdminAllowed lets admins through.
func TestRequireAdminAllowed(t *testing.T) {
	e, token := newTestRouter(t, repository.RoleAdmin)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	e.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
}
