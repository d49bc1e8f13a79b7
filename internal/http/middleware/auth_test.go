package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"devboard/internal/domain"

	"github.com/gin-gonic/gin"
)

type staticResolver struct {
	token string
	user  *domain.User
}

func (r *staticResolver) GetByToken(_ context.Context, token string) (*domain.User, error) {
	if token == r.token {
		return r.user, nil
	}
	return nil, domain.ErrNotFound
}

func authRouter(resolver UserResolver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", Auth(resolver), func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.JSON(500, gin.H{"error": "no user in context"})
			return
		}
		c.JSON(200, gin.H{"email": user.Email})
	})
	return r
}

func TestAuthRejectsMissingOrMalformedHeader(t *testing.T) {
	r := authRouter(&staticResolver{token: "tok", user: &domain.User{Email: "a@b.c"}})

	cases := map[string]string{
		"no header":    "",
		"wrong scheme": "Basic dXNlcjpwdw==",
		"bare token":   "tok",
	}
	for name, header := range cases {
		req := httptest.NewRequest("GET", "/protected", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s: status %d, want 401", name, w.Code)
		}
	}
}

func TestAuthRejectsUnknownToken(t *testing.T) {
	r := authRouter(&staticResolver{token: "tok", user: &domain.User{Email: "a@b.c"}})

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer other")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status %d, want 401", w.Code)
	}
}

func TestAuthSuppliesUserToHandler(t *testing.T) {
	r := authRouter(&staticResolver{token: "tok", user: &domain.User{Email: "a@b.c"}})

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer tok")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", w.Code)
	}
	if w.Body.String() != `{"email":"a@b.c"}` {
		t.Errorf("body = %s", w.Body.String())
	}
}
