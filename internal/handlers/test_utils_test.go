package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"benches/internal/apperr"
	"benches/internal/auth"
	"benches/internal/feed"
	"benches/internal/models"
	"benches/internal/services"
	"benches/internal/services/storage"
)

type tokenNotifier struct {
	mu     sync.Mutex
	verify map[string]string
	reset  map[string]string
}

func (n *tokenNotifier) VerificationRequested(_ context.Context, u models.User, token string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.verify[u.Email] = token
	return nil
}

func (n *tokenNotifier) PasswordResetRequested(_ context.Context, u models.User, token string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.reset[u.Email] = token
	return nil
}

type testEnv struct {
	db       *gorm.DB
	r        *gin.Engine
	mr       *miniredis.Miniredis
	store    *storage.Memory
	uploader *services.PhotoUploader
	hub      *feed.Hub
	manager  *auth.Manager
	notifier *tokenNotifier
}

// setupTest создаёт in-memory БД, miniredis и маршруты для тестов.
func setupTest(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("db open: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	if err := db.AutoMigrate(&models.User{}, &models.Bench{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache := services.NewBenchCache(rdb, "test", time.Minute)

	n := &tokenNotifier{verify: map[string]string{}, reset: map[string]string{}}
	m := auth.NewManager(db, auth.Options{Secret: "test-secret", Lifetime: time.Hour}, n)
	store := storage.NewMemory()
	hub := feed.NewHub()
	up := services.NewPhotoUploader(db, store, cache, hub, services.PhotoOptions{Workers: 1, QueueSize: 4, InitialInterval: time.Millisecond})
	up.Start()
	t.Cleanup(up.Stop)

	r := gin.New()
	r.Use(Recovery())
	RegisterRoutes(r, Deps{
		DB:        db,
		Redis:     rdb,
		Manager:   m,
		Transport: auth.NewCookieTransport(time.Hour, true),
		Cache:     cache,
		Uploader:  up,
		Hub:       hub,
	})
	return &testEnv{db: db, r: r, mr: mr, store: store, uploader: up, hub: hub, manager: m, notifier: n}
}

// do выполняет запрос; token передаётся в заголовке Authorization
func (e *testEnv) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.r.ServeHTTP(w, req)
	return w
}

func (e *testEnv) register(t *testing.T, email, username, password string) models.User {
	t.Helper()
	w := e.do("POST", "/auth/register", "", map[string]string{"email": email, "username": username, "password": password})
	if w.Code != http.StatusCreated {
		t.Fatalf("register status %d: %s", w.Code, w.Body.String())
	}
	var u models.User
	if err := json.Unmarshal(w.Body.Bytes(), &u); err != nil {
		t.Fatalf("register parse: %v", err)
	}
	return u
}

func (e *testEnv) login(t *testing.T, username, password string) string {
	t.Helper()
	form := url.Values{"username": {username}, "password": {password}}
	req, _ := http.NewRequest("POST", "/auth/jwt/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	e.r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("login status %d: %s", w.Code, w.Body.String())
	}
	var resp auth.LoginResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("login parse: %v", err)
	}
	return resp.Token
}

// userToken регистрирует пользователя и возвращает его токен
func (e *testEnv) userToken(t *testing.T, email, username string) (models.User, string) {
	t.Helper()
	u := e.register(t, email, username, "test0123")
	return u, e.login(t, username, "test0123")
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) apperr.Code {
	t.Helper()
	var resp apperr.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("error parse: %v (%s)", err, w.Body.String())
	}
	return resp.Error.Code
}
