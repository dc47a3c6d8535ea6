package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"foodly/utils"

	"github.com/gin-gonic/gin"
)

func protected(mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", mw, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": utils.CurrentUserID(c), "role": utils.CurrentRole(c)})
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	customer, _ := utils.GenerateToken(5, "customer", "k", time.Hour)
	admin, _ := utils.GenerateToken(6, "admin", "k", time.Hour)
	r := protected(AuthMiddleware("k", "admin"))

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"not bearer", "Token " + admin, http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
		{"wrong role", "Bearer " + customer, http.StatusForbidden},
		{"allowed", "Bearer " + admin, http.StatusOK},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != tc.want {
			t.Errorf("%s: got %d want %d", tc.name, w.Code, tc.want)
		}
	}
}

func TestWSAuthMiddleware_AcceptsQueryToken(t *testing.T) {
	tok, _ := utils.GenerateToken(5, "customer", "k", time.Hour)
	r := protected(WSAuthMiddleware("k"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x?token="+tok, nil))
	if w.Code != http.StatusOK {
		t.Errorf("query token: %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("no token: %d", w.Code)
	}
}
