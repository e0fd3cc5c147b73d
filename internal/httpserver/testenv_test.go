package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mcastellanos/tienda/internal/config"
	"github.com/mcastellanos/tienda/internal/hash"
	authmw "github.com/mcastellanos/tienda/internal/middleware/auth"
	"github.com/mcastellanos/tienda/internal/models"
	"github.com/mcastellanos/tienda/internal/repo"
	"github.com/mcastellanos/tienda/internal/service"
	"github.com/mcastellanos/tienda/internal/service/token"
)

type recordedEvent struct {
	Topic string
	Key   string
	Event map[string]any
}

type eventRecorder struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (r *eventRecorder) Publish(_ context.Context, topic, key string, event any) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, _ := event.(map[string]any)
	r.events = append(r.events, recordedEvent{Topic: topic, Key: key, Event: m})
	return nil
}

func (r *eventRecorder) byTopic(topic string) []recordedEvent {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []recordedEvent
	for _, e := range r.events {
		if e.Topic == topic {
			out = append(out, e)
		}
	}
	return out
}

type testEnv struct {
	T      *testing.T
	E      *echo.Echo
	DB     *gorm.DB
	Tokens *token.Service
	Events *eventRecorder
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	tokens := token.New([]byte("test-jwt-secret"))
	gormRepo := &repo.GormRepo{DB: db}
	recorder := &eventRecorder{}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())

	Register(e, &Deps{
		Auth:    &AuthHTTP{Svc: &service.AuthService{Repo: gormRepo, Tokens: tokens}, Events: recorder},
		Cart:    &CartHTTP{Svc: &service.CartService{Repo: gormRepo}, Events: recorder},
		Catalog: &CatalogHTTP{Svc: &service.CatalogService{Repo: gormRepo}, Events: recorder},
		Orders:  &OrderHTTP{Svc: &service.OrderService{Repo: gormRepo}},
		Gate:    &authmw.Middleware{Tokens: tokens},
	})

	return &testEnv{T: t, E: e, DB: db, Tokens: tokens, Events: recorder}
}

func (env *testEnv) do(method, path string, body any, bearer string) *httptest.ResponseRecorder {
	env.T.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if bearer != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+bearer)
	}

	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) createUser(email, password string) *models.User {
	env.T.Helper()

	pwHash, err := hash.HashPassword(password)
	require.NoError(env.T, err)

	user := models.User{Email: email, PasswordHash: pwHash}
	require.NoError(env.T, env.DB.Create(&user).Error)
	return &user
}

func (env *testEnv) createProduct(name string, price float64) *models.Product {
	env.T.Helper()

	product := models.Product{Name: name, Description: "test", Price: price}
	require.NoError(env.T, env.DB.Create(&product).Error)
	return &product
}

func (env *testEnv) login(email, password string) string {
	env.T.Helper()

	rec := env.do(http.MethodPost, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, "")
	require.Equal(env.T, http.StatusOK, rec.Code)

	var resp struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	require.NoError(env.T, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(env.T, resp.AccessToken)
	require.Equal(env.T, "bearer", resp.TokenType)

	return resp.AccessToken
}
