package middleware

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzip"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"minigames-backend/internal/models"
	"minigames-backend/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setup(t *testing.T) (*services.JWTService, *services.RedisService) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return services.NewJWTService("secret", time.Hour), services.NewRedisServiceWithClient(client)
}

func login(t *testing.T, jwt *services.JWTService, store *services.RedisService, role models.Role) string {
	t.Helper()
	session := &models.UserSession{SessionID: "sid", AccountID: 5, Role: role, Username: "alice"}
	if err := store.StoreUserSession(context.Background(), session, time.Hour); err != nil {
		t.Fatal(err)
	}
	token, err := jwt.GenerateToken(session)
	if err != nil {
		t.Fatal(err)
	}
	return token
}

func protectedRouter(jwt *services.JWTService, store *services.RedisService) *gin.Engine {
	r := gin.New()
	auth := r.Group("/", AuthMiddleware(jwt, store))
	auth.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": c.MustGet(KeyAccountID), "role": c.MustGet(KeyRole)})
	})
	auth.GET("/admin", RequireRole(models.RoleAdmin), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	return r
}

func TestAuthMiddlewareTokenSources(t *testing.T) {
	jwt, store := setup(t)
	token := login(t, jwt, store, models.RoleUser)
	r := protectedRouter(jwt, store)

	requests := map[string]*http.Request{
		"header": httptest.NewRequest(http.MethodGet, "/me", nil),
		"cookie": httptest.NewRequest(http.MethodGet, "/me", nil),
		"query":  httptest.NewRequest(http.MethodGet, "/me?token="+token, nil),
	}
	requests["header"].Header.Set("Authorization", "Bearer "+token)
	requests["cookie"].AddCookie(&http.Cookie{Name: TokenCookie, Value: token})

	for name, req := range requests {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Errorf("%s: status %d body %s", name, w.Code, w.Body)
		}
		if !strings.Contains(w.Body.String(), `"id":5`) {
			t.Errorf("%s: body %s", name, w.Body)
		}
	}
}

func TestAuthMiddlewareRejects(t *testing.T) {
	jwt, store := setup(t)
	token := login(t, jwt, store, models.RoleUser)
	r := protectedRouter(jwt, store)

	cases := map[string]string{
		"missing":   "",
		"malformed": "Token " + token,
		"garbage":   "Bearer nope",
	}
	for name, header := range cases {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s: status %d", name, w.Code)
		}
	}

	store.DeleteUserSession(context.Background(), models.RoleUser, 5, "sid")
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized || !strings.Contains(w.Body.String(), "Session") {
		t.Errorf("logged out session: %d %s", w.Code, w.Body)
	}
}

func TestRequireRole(t *testing.T) {
	jwt, store := setup(t)
	r := protectedRouter(jwt, store)

	for role, want := range map[models.Role]int{
		models.RoleUser:  http.StatusForbidden,
		models.RoleAdmin: http.StatusNoContent,
	} {
		token := login(t, jwt, store, role)
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != want {
			t.Errorf("%s: status %d, want %d", role, w.Code, want)
		}
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	_, store := setup(t)
	r := gin.New()
	r.GET("/x", RateLimitMiddleware(store, "x", 2, time.Minute), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 3)
	for i := range codes {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
		codes[i] = w.Code
		if i == 2 && w.Header().Get("Retry-After") != "60" {
			t.Errorf("Retry-After = %q", w.Header().Get("Retry-After"))
		}
	}
	if codes[0] != 200 || codes[1] != 200 || codes[2] != http.StatusTooManyRequests {
		t.Errorf("codes = %v", codes)
	}
}

func TestAccessLogLevels(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetFormatter(&logrus.JSONFormatter{})

	r := gin.New()
	r.Use(AccessLog(log))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/bad", func(c *gin.Context) { c.Status(http.StatusBadRequest) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	for path, level := range map[string]string{"/ok": "info", "/bad": "warning", "/boom": "error"} {
		buf.Reset()
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
		if !strings.Contains(buf.String(), `"level":"`+level+`"`) || !strings.Contains(buf.String(), `"path":"`+path+`"`) {
			t.Errorf("%s logged %s", path, buf.String())
		}
	}
}

func TestGzip(t *testing.T) {
	body := strings.Repeat(`{"8-0":[[0,0,0,0,0,0,0,0]]}`, 100)
	r := gin.New()
	r.GET("/t", Gzip(), func(c *gin.Context) { c.Data(http.StatusOK, "application/json", []byte(body)) })

	req := httptest.NewRequest(http.MethodGet, "/t", nil)
	req.Header.Set("Accept-Encoding", "gzip, deflate")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Header().Get("Content-Encoding") != "gzip" {
		t.Fatalf("not compressed: %v", w.Header())
	}
	zr, err := gzip.NewReader(w.Body)
	if err != nil {
		t.Fatal(err)
	}
	plain, _ := io.ReadAll(zr)
	if string(plain) != body {
		t.Error("round trip mismatch")
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/t", nil))
	if w.Header().Get("Content-Encoding") != "" || w.Body.String() != body {
		t.Error("compressed for a client that did not ask")
	}
}
