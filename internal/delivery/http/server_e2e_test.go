package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"taskboard/config"
	httpdelivery "taskboard/internal/delivery/http"
	"taskboard/internal/delivery/http/cookie"
	"taskboard/internal/delivery/http/middleware"
	"taskboard/internal/delivery/http/router"
	"taskboard/internal/delivery/http/router/handler"
	"taskboard/internal/infra/auth"
	"taskboard/internal/infra/persistence/model"
	"taskboard/internal/infra/persistence/sqlite"
	"taskboard/internal/usecase/impl"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestServer(t *testing.T) (*echo.Echo, *gorm.DB) {
	t.Helper()

	cfg := &config.Config{Auth: &config.AuthConfig{BcryptCost: 4}}
	cfg.Database.Path = ":memory:"
	cfg.SecretKey.Signing = "test_signing_secret_key_very_long_for_testing"

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	db, err := sqlite.Open(cfg)
	require.NoError(t, err)

	userRepo := sqlite.NewUserRepository(db)
	tokenSvc, err := auth.NewJWTService(cfg, sqlite.NewRevocationRepository(db))
	require.NoError(t, err)

	cookies := cookie.NewManager(cfg, tokenSvc)

	accountUC := impl.NewAccountService(impl.AccountServiceParams{
		TxManager:    sqlite.NewTransactionManager(db),
		UserRepo:     userRepo,
		Hasher:       auth.NewBcryptHasher(cfg),
		TokenService: tokenSvc,
		Logger:       logger,
	})
	taskUC := impl.NewTaskService(impl.TaskServiceParams{
		TaskRepo: sqlite.NewTaskRepository(db),
		Logger:   logger,
	})

	params := httpdelivery.HTTPParams{
		Config: cfg,
		Logger: logger,
		RouterParams: router.RouterParams{
			AccountHandler: handler.NewAccountHandler(accountUC, cookies, logger),
			TaskHandler:    handler.NewTaskHandler(taskUC, logger),
			AuthMiddleware: middleware.NewAuthMiddleware(tokenSvc, userRepo, cfg),
		},
		ErrorMiddleware:     middleware.NewErrorMiddleware(logger),
		RequestIDMiddleware: middleware.NewRequestIDMiddleware(logger),
	}

	return httpdelivery.NewEcho(params), db
}

// client drives the echo engine through httptest and keeps a cookie jar the
// way a browser would.
type client struct {
	t       *testing.T
	e       *echo.Echo
	cookies map[string]*http.Cookie
}

func newClient(t *testing.T, e *echo.Echo) *client {
	return &client{t: t, e: e, cookies: make(map[string]*http.Cookie)}
}

func (c *client) do(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}

	rec := httptest.NewRecorder()
	c.e.ServeHTTP(rec, req)

	for _, ck := range rec.Result().Cookies() {
		if ck.MaxAge < 0 || ck.Value == "" {
			delete(c.cookies, ck.Name)
		} else {
			c.cookies[ck.Name] = ck
		}
	}

	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body
}

func registerBody(email string) map[string]any {
	return map[string]any{
		"first_name":       "Jane",
		"last_name":        "Doe",
		"email":            email,
		"password":         "s3cret-password",
		"confirm_password": "s3cret-password",
	}
}

func TestSessionFlow(t *testing.T) {
	e, _ := newTestServer(t)
	c := newClient(t, e)

	// Register: 201, both session cookies set, body carries the user.
	rec := c.do(http.MethodPost, "/register/", registerBody("jane@example.com"))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, c.cookies, cookie.AccessTokenCookie)
	assert.Contains(t, c.cookies, cookie.RefreshTokenCookie)

	body := decode(t, rec)
	user := body["user"].(map[string]any)
	assert.Equal(t, "jane@example.com", user["email"])

	// Login replaces the session with fresh cookies.
	c = newClient(t, e)
	rec = c.do(http.MethodPost, "/login/", map[string]any{
		"email":    "jane@example.com",
		"password": "s3cret-password",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, c.cookies, cookie.AccessTokenCookie)

	// The session cookie authenticates the profile endpoint.
	rec = c.do(http.MethodGet, "/profile/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	profile := decode(t, rec)["user"].(map[string]any)
	assert.Equal(t, "jane@example.com", profile["email"])
	assert.Equal(t, "Jane", profile["first_name"])

	// Logout clears both cookies and always reports success.
	rec = c.do(http.MethodPost, "/logout/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, c.cookies, cookie.AccessTokenCookie)
	assert.NotContains(t, c.cookies, cookie.RefreshTokenCookie)

	// Without a credential the profile endpoint rejects the request.
	rec = c.do(http.MethodGet, "/profile/", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "You are not logged in. Please log in to access this resource.", decode(t, rec)["error"])
}

func TestBearerFallback(t *testing.T) {
	e, _ := newTestServer(t)
	c := newClient(t, e)

	rec := c.do(http.MethodPost, "/register/", registerBody("jane@example.com"))
	require.Equal(t, http.StatusCreated, rec.Code)
	accessToken := c.cookies[cookie.AccessTokenCookie].Value

	// No cookie, but an Authorization header carrying the access token.
	req := httptest.NewRequest(http.MethodGet, "/profile/", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken)
	bare := httptest.NewRecorder()
	e.ServeHTTP(bare, req)

	assert.Equal(t, http.StatusOK, bare.Code)
}

func TestRegisterValidation(t *testing.T) {
	e, _ := newTestServer(t)
	c := newClient(t, e)

	// Missing and malformed fields are reported per field.
	rec := c.do(http.MethodPost, "/register/", map[string]any{
		"first_name": "Jane",
		"email":      "not-an-email",
		"password":   "short",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	fields := decode(t, rec)["errors"].(map[string]any)
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "password")
	assert.Contains(t, fields, "last_name")

	// Mismatched passwords fail after binding validation.
	payload := registerBody("jane@example.com")
	payload["confirm_password"] = "different-password"
	rec = c.do(http.MethodPost, "/register/", payload)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	fields = decode(t, rec)["errors"].(map[string]any)
	assert.Equal(t, "Password fields didn't match.", fields["password"])

	// Re-registering an email is a field-level error.
	rec = c.do(http.MethodPost, "/register/", registerBody("jane@example.com"))
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = c.do(http.MethodPost, "/register/", registerBody("jane@example.com"))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	fields = decode(t, rec)["errors"].(map[string]any)
	assert.Equal(t, "User with this email already exists.", fields["email"])
}

func TestLoginBadCredentials(t *testing.T) {
	e, _ := newTestServer(t)
	c := newClient(t, e)

	rec := c.do(http.MethodPost, "/register/", registerBody("jane@example.com"))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = c.do(http.MethodPost, "/login/", map[string]any{
		"email":    "jane@example.com",
		"password": "wrong-password",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid email or password", decode(t, rec)["error"])
}

func TestRefreshFlow(t *testing.T) {
	e, _ := newTestServer(t)
	c := newClient(t, e)

	// Without the refresh cookie the exchange is rejected up front.
	rec := c.do(http.MethodPost, "/refresh/", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Refresh token not found", decode(t, rec)["error"])

	rec = c.do(http.MethodPost, "/register/", registerBody("jane@example.com"))
	require.Equal(t, http.StatusCreated, rec.Code)
	staleRefresh := *c.cookies[cookie.RefreshTokenCookie]

	// A live refresh token mints a new access cookie.
	rec = c.do(http.MethodPost, "/refresh/", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, c.cookies, cookie.AccessTokenCookie)

	// Logout revokes the refresh token; replaying it can never succeed.
	rec = c.do(http.MethodPost, "/logout/", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	c.cookies[cookie.RefreshTokenCookie] = &staleRefresh
	rec = c.do(http.MethodPost, "/refresh/", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Token is invalid or expired", decode(t, rec)["error"])

	// The rejection also cleared the session cookies.
	assert.NotContains(t, c.cookies, cookie.RefreshTokenCookie)
}

func TestTasksRequireAuthentication(t *testing.T) {
	e, _ := newTestServer(t)
	c := newClient(t, e)

	rec := c.do(http.MethodGet, "/api/tasks/", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = c.do(http.MethodPost, "/api/tasks/", map[string]any{"title": "Nope"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTaskPermissionMatrix(t *testing.T) {
	e, db := newTestServer(t)
	c := newClient(t, e)

	rec := c.do(http.MethodPost, "/register/", registerBody("user@example.com"))
	require.Equal(t, http.StatusCreated, rec.Code)

	// Any authenticated user may create tasks.
	rec = c.do(http.MethodPost, "/api/tasks/", map[string]any{
		"title":       "Shared task",
		"description": "Visible to everyone",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	taskID := int(decode(t, rec)["id"].(float64))

	// Standard users cannot mutate existing tasks.
	path := fmt.Sprintf("/api/tasks/%d/", taskID)
	rec = c.do(http.MethodPut, path, map[string]any{"title": "Hijacked"})
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "You do not have permission to perform this action.", decode(t, rec)["error"])

	rec = c.do(http.MethodDelete, path, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	// The task is unchanged after the denied attempts.
	rec = c.do(http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Shared task", decode(t, rec)["title"])

	// Promote the account; the middleware reloads the principal per request.
	err := db.Model(&model.UserModel{}).
		Where("email = ?", "user@example.com").
		Update("role", "admin").Error
	require.NoError(t, err)

	rec = c.do(http.MethodPut, path, map[string]any{"title": "Renamed by admin", "completed": true})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = c.do(http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "Renamed by admin", body["title"])
	assert.Equal(t, true, body["completed"])
	// Partial update left the description alone.
	assert.Equal(t, "Visible to everyone", body["description"])

	rec = c.do(http.MethodDelete, path, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = c.do(http.MethodGet, path, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Task not found", decode(t, rec)["error"])
}

func TestTaskListFilterAndPagination(t *testing.T) {
	e, _ := newTestServer(t)
	c := newClient(t, e)

	rec := c.do(http.MethodPost, "/register/", registerBody("user@example.com"))
	require.Equal(t, http.StatusCreated, rec.Code)

	for i := range 12 {
		rec = c.do(http.MethodPost, "/api/tasks/", map[string]any{
			"title":     fmt.Sprintf("Task %02d", i+1),
			"completed": i < 3,
		})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	// First page: fixed page size, a next link, no previous link.
	rec = c.do(http.MethodGet, "/api/tasks/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.EqualValues(t, 12, body["count"])
	assert.Len(t, body["results"], 10)
	assert.NotNil(t, body["next"])
	assert.Nil(t, body["previous"])

	// Second page holds the remainder.
	rec = c.do(http.MethodGet, "/api/tasks/?page=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body = decode(t, rec)
	assert.Len(t, body["results"], 2)
	assert.Nil(t, body["next"])
	assert.NotNil(t, body["previous"])

	// Past the end is an invalid page, not an empty one.
	rec = c.do(http.MethodGet, "/api/tasks/?page=3", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// The completed filter holds for every item in the result set.
	rec = c.do(http.MethodGet, "/api/tasks/?completed=true", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body = decode(t, rec)
	assert.EqualValues(t, 3, body["count"])
	for _, item := range body["results"].([]any) {
		assert.Equal(t, true, item.(map[string]any)["completed"])
	}

	// page_size overrides the default within its cap.
	rec = c.do(http.MethodGet, "/api/tasks/?page_size=5&page=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body = decode(t, rec)
	assert.Len(t, body["results"], 5)
}

func TestHealthBypassesAuthentication(t *testing.T) {
	e, _ := newTestServer(t)
	c := newClient(t, e)

	rec := c.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
