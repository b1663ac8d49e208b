package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func whoami(c *gin.Context) {
	user, ok := GetCurrentUser(c)
	if !ok {
		c.Status(http.StatusTeapot)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": user.ID, "role": user.Role})
}

func TestJWTMiddleware(t *testing.T) {
	r := gin.New()
	r.GET("/me", JWTMiddleware(secret), whoami)

	valid, err := GenerateJWT("user-1", "imam@example.com", "masjid_admin", secret, time.Hour)
	require.NoError(t, err)
	expired, err := GenerateJWT("user-1", "", "", secret, -time.Hour)
	require.NoError(t, err)
	otherKey, err := GenerateJWT("user-1", "", "", "other", time.Hour)
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"valid", "Bearer " + valid, http.StatusOK},
		{"missing", "", http.StatusUnauthorized},
		{"wrong scheme", "Token " + valid, http.StatusUnauthorized},
		{"expired", "Bearer " + expired, http.StatusUnauthorized},
		{"wrong key", "Bearer " + otherKey, http.StatusUnauthorized},
		{"garbage", "Bearer not.a.token", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tc.status, w.Code)
			if tc.status == http.StatusOK {
				assert.JSONEq(t, `{"id":"user-1","role":"masjid_admin"}`, w.Body.String())
			}
		})
	}
}

type fakeAdmins struct {
	admins map[string]bool
	err    error
}

func (f fakeAdmins) IsMasjidAdmin(_ context.Context, userID, masjidID string) (bool, error) {
	return f.admins[userID+"|"+masjidID], f.err
}

func TestRequireMasjidAdmin(t *testing.T) {
	build := func(checker AdminChecker) *gin.Engine {
		r := gin.New()
		r.GET("/masjids/:id", JWTMiddleware(secret), RequireMasjidAdmin(checker), whoami)
		return r
	}
	token := func(sub, role string) string {
		tok, err := GenerateJWT(sub, "", role, secret, time.Hour)
		require.NoError(t, err)
		return "Bearer " + tok
	}

	checker := fakeAdmins{admins: map[string]bool{"user-1|m-1": true}}
	cases := []struct {
		name    string
		checker AdminChecker
		path    string
		auth    string
		status  int
	}{
		{"admin", checker, "/masjids/m-1", token("user-1", ""), http.StatusOK},
		{"other masjid", checker, "/masjids/m-2", token("user-1", ""), http.StatusForbidden},
		{"super admin", checker, "/masjids/m-2", token("root", RoleSuperAdmin), http.StatusOK},
		{"lookup error", fakeAdmins{err: errors.New("db down")}, "/masjids/m-1", token("user-1", ""), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			req.Header.Set("Authorization", tc.auth)
			w := httptest.NewRecorder()
			build(tc.checker).ServeHTTP(w, req)
			assert.Equal(t, tc.status, w.Code)
		})
	}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), RequestLogger())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("requestID")) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	generated := w.Header().Get(RequestIDHeader)
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "abc")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc", w.Header().Get(RequestIDHeader))
}
