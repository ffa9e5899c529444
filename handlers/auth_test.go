package handlers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folioworks/folioworks/internal/admins"
	"github.com/folioworks/folioworks/internal/config"
	"github.com/folioworks/folioworks/internal/sessions"
)

// fake sessions repo
type fakeSessionsRepo struct {
	store map[string]*sessions.Session
}

func (f *fakeSessionsRepo) Create(ctx context.Context, s *sessions.Session) error {
	if f.store == nil {
		f.store = map[string]*sessions.Session{}
	}
	f.store[s.RefreshToken] = s
	return nil
}

func (f *fakeSessionsRepo) GetByRefresh(ctx context.Context, refresh string) (*sessions.Session, error) {
	s, ok := f.store[refresh]
	if !ok {
		return nil, nil
	}
	return s, nil
}

func (f *fakeSessionsRepo) DeleteByRefresh(ctx context.Context, refresh string) error {
	delete(f.store, refresh)
	return nil
}

// seededAdmins returns an admins service with one operator account.
func seededAdmins(t *testing.T, email, password string) *admins.Service {
	t.Helper()
	svc := admins.NewService(admins.NewMemoryRepository())
	require.NoError(t, svc.EnsureSeed(context.Background(), email, password))
	return svc
}

func newAuthRouter(h *AuthHandler) *gin.Engine {
	r := gin.New()
	rg := r.Group("/")
	h.Register(rg)
	return r
}

func TestLogin_Success(t *testing.T) {
	cfg := &config.Config{}
	cfg.JWT.Secret = "login-test-secret-32-bytes-xxxxxxx"
	cfg.JWT.AccessTokenTTL = 15 * time.Minute
	cfg.JWT.RefreshTokenTTL = time.Hour

	aSvc := seededAdmins(t, "ops@example.com", "hunter2-long-enough")
	sSvc := sessions.NewService(&fakeSessionsRepo{})
	h := NewAuthHandler(cfg, aSvc, sSvc)
	r := newAuthRouter(h)

	body := `{"email":"ops@example.com","password":"hunter2-long-enough"}`
	req := httptest.NewRequest("POST", "/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	resp := w.Result()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var got map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&got)
	assert.NotEmpty(t, got["accessToken"])
	assert.NotEmpty(t, got["refreshToken"])
	admin, ok := got["admin"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "ops@example.com", admin["email"])
	// hash must never leak through the login response
	_, leaked := admin["passwordHash"]
	assert.False(t, leaked)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	cfg := &config.Config{}
	cfg.JWT.Secret = "login-test-secret-32-bytes-xxxxxxx"
	cfg.JWT.AccessTokenTTL = 15 * time.Minute

	aSvc := seededAdmins(t, "ops@example.com", "correct-password")
	sSvc := sessions.NewService(&fakeSessionsRepo{})
	h := NewAuthHandler(cfg, aSvc, sSvc)
	r := newAuthRouter(h)

	for _, body := range []string{
		`{"email":"ops@example.com","password":"wrong-password"}`,
		`{"email":"nobody@example.com","password":"correct-password"}`,
	} {
		req := httptest.NewRequest("POST", "/auth/login", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Result().StatusCode)
	}
}

func TestLogin_MissingFields(t *testing.T) {
	cfg := &config.Config{}
	cfg.JWT.Secret = "login-test-secret-32-bytes-xxxxxxx"

	h := NewAuthHandler(cfg, seededAdmins(t, "ops@example.com", "pw-long-enough"), sessions.NewService(&fakeSessionsRepo{}))
	r := newAuthRouter(h)

	req := httptest.NewRequest("POST", "/auth/login", strings.NewReader(`{"email":"ops@example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
}

// Ensure CORS headers are present for browser-origin requests (preflight + actual POST)
func TestLogin_CORSHeaders(t *testing.T) {
	cfg := &config.Config{}
	cfg.JWT.Secret = "cors-test-secret-32-bytes-xxxx"
	cfg.JWT.AccessTokenTTL = 15 * time.Minute
	cfg.JWT.RefreshTokenTTL = time.Hour

	h := NewAuthHandler(cfg, seededAdmins(t, "ops@example.com", "pw-long-enough"), sessions.NewService(&fakeSessionsRepo{}))

	r := gin.New()
	// lightweight CORS middleware consistent with main
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}
		c.Next()
	})
	rg := r.Group("/")
	h.Register(rg)

	// Preflight OPTIONS
	req := httptest.NewRequest("OPTIONS", "/auth/login", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Result().StatusCode)

	// Actual POST should include CORS header when Origin set
	body := `{"email":"ops@example.com","password":"pw-long-enough"}`
	req2 := httptest.NewRequest("POST", "/auth/login", strings.NewReader(body))
	req2.Header.Set("Content-Type", "application/json")
	req2.Header.Set("Origin", "http://localhost:3000")
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, req2)
	if w2.Result().Header.Get("Access-Control-Allow-Origin") == "" {
		t.Fatalf("missing Access-Control-Allow-Origin header on /auth/login response")
	}
}

func TestRefresh_Success(t *testing.T) {
	cfg := &config.Config{}
	cfg.JWT.Secret = "refresh-test-secret-32-bytes-xxxx"
	cfg.JWT.AccessTokenTTL = 15 * time.Minute

	sSvc := sessions.NewService(&fakeSessionsRepo{})
	h := NewAuthHandler(cfg, seededAdmins(t, "ops@example.com", "pw-long-enough"), sSvc)

	rt, err := sSvc.CreateSession(context.Background(), "admin-refresh", time.Hour)
	require.NoError(t, err)

	r := gin.New()
	r.POST("/auth/refresh", h.Refresh)

	body := fmt.Sprintf(`{"refresh_token":"%s"}`, rt)
	req := httptest.NewRequest("POST", "/auth/refresh", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	resp := w.Result()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&got)
	assert.NotEmpty(t, got["access_token"])
}

func TestRefresh_InvalidRefresh(t *testing.T) {
	cfg := &config.Config{}
	cfg.JWT.Secret = "refresh-test-secret-32-bytes-xxxx"

	sSvc := sessions.NewService(&fakeSessionsRepo{}) // empty repo -> invalid refresh
	h := NewAuthHandler(cfg, seededAdmins(t, "ops@example.com", "pw-long-enough"), sSvc)

	r := gin.New()
	r.POST("/auth/refresh", h.Refresh)

	req := httptest.NewRequest("POST", "/auth/refresh", strings.NewReader(`{"refresh_token":"does-not-exist"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Result().StatusCode)
}

func TestLogout_BlacklistsAccessAndDeletesRefresh(t *testing.T) {
	// start miniredis and configure package blacklist client
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()
	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	sessions.SetBlacklistClient(client)
	defer sessions.SetBlacklistClient(nil)

	cfg := &config.Config{}
	sSvc := sessions.NewService(&fakeSessionsRepo{})
	h := NewAuthHandler(cfg, seededAdmins(t, "ops@example.com", "pw-long-enough"), sSvc)

	// create a refresh session to be deleted
	rt, err := sSvc.CreateSession(context.Background(), "admin-1", time.Hour)
	require.NoError(t, err)

	// craft an access token with exp in the future
	exp := time.Now().Add(2 * time.Minute).Unix()
	payload := base64.RawURLEncoding.EncodeToString([]byte(fmt.Sprintf(`{"sub":"admin-1","exp":%d}`, exp)))
	access := "hdr." + payload + ".sig"

	r := newAuthRouter(h)

	body := fmt.Sprintf(`{"refresh_token":"%s"}`, rt)
	req := httptest.NewRequest("POST", "/auth/logout", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+access)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Result().StatusCode)

	// refresh session should be deleted
	sess, err := sSvc.ValidateRefresh(context.Background(), rt)
	assert.NoError(t, err)
	assert.Nil(t, sess)

	// access token should be blacklisted in redis
	assert.True(t, m.Exists("folioworks:blacklist:access:"+access))
}

func TestParseExpFromJWT_VariousFormats(t *testing.T) {
	// numeric exp
	extra := base64.RawURLEncoding.EncodeToString([]byte(`{"sub":"s1","exp":1700000000}`))
	tok := "hdr." + extra + ".sig"
	expTime, err := parseExpFromJWT(tok)
	if err != nil {
		t.Fatalf("unexpected error from parseExpFromJWT: %v", err)
	}
	if expTime.Unix() != 1700000000 {
		t.Fatalf("unexpected exp time: %v", expTime.Unix())
	}

	// missing exp
	nopayload := base64.RawURLEncoding.EncodeToString([]byte(`{"sub":"s2"}`))
	notok := "hdr." + nopayload + ".sig"
	if _, err := parseExpFromJWT(notok); err == nil {
		t.Fatalf("expected error for missing exp claim")
	}

	// malformed token
	if _, err := parseExpFromJWT("not.a.jwt"); err == nil {
		t.Fatalf("expected error for malformed token")
	}
}
