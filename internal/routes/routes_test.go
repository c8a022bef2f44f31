package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/backend"
	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/config"
	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/dto"
	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/labels"
	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/mapping"
	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/models"
	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/services"
	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/views"
	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/workflow"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret = "test-secret"
	adminEmail = "ops@example.com"
)

type testEnv struct {
	app     *fiber.App
	mem     *backend.Memory
	adminID uuid.UUID
	token   string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	cfg := &config.Config{JWTSecret: testSecret, SessionCookie: "session", CORSOrigins: "*", MinIOBucket: "trash-images", ImageURLTTL: time.Hour}
	mem := backend.NewMemory()
	adminID := uuid.New()
	mem.SeedAdminUsers(
		models.AdminUser{ID: adminID, Email: adminEmail, Name: "Ops", Role: models.RoleAdmin, IsActive: true},
		models.AdminUser{Email: "off@example.com", Name: "Off", IsActive: false},
	)

	images, err := services.NewImageService(cfg)
	require.NoError(t, err)
	audit := services.NewAuditService(mem)
	set := labels.Default()
	mapCfg := views.MapConfig{
		Viewport: mapping.Viewport{Center: mapping.Point{55.75, 37.61}, Zoom: 10},
		Labels:   set,
		Policy:   workflow.PolicyOpen,
	}

	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})
	Setup(app, cfg, mem,
		handlers.NewHealthHandler(mem),
		handlers.NewUsersHandler(mem, audit),
		handlers.NewAdminsHandler(mem, audit),
		handlers.NewLocationsHandler(mem, audit, mapCfg, images),
		handlers.NewLogsHandler(mem),
		handlers.NewLabelsHandler(set),
	)

	return &testEnv{app: app, mem: mem, adminID: adminID, token: signToken(t, adminEmail)}
}

func signToken(t *testing.T, email string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": email,
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	s, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func coord(v float64) *float64 { return &v }

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) (int, []byte) {
	t.Helper()
	return e.doAs(t, e.token, method, path, body)
}

func (e *testEnv) doAs(t *testing.T, token, method, path string, body interface{}) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	status, body := env.doAs(t, "", http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, status)

	var resp dto.HealthResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "ok", resp.Backend)
}

func TestAuth(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.doAs(t, "", http.MethodGet, "/api/admin/users", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Contains(t, string(body), "missing session token")

	status, _ = env.doAs(t, "garbage", http.MethodGet, "/api/admin/users", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = env.doAs(t, signToken(t, "stranger@example.com"), http.MethodGet, "/api/admin/users", nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = env.doAs(t, signToken(t, "off@example.com"), http.MethodGet, "/api/admin/users", nil)
	assert.Equal(t, http.StatusForbidden, status)

	// The session cookie is accepted in place of the header.
	req := httptest.NewRequest(http.MethodGet, "/api/admin/me", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: env.token})
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	status, body = env.do(t, http.MethodGet, "/api/admin/me", nil)
	require.Equal(t, http.StatusOK, status)
	var me models.AdminUser
	require.NoError(t, json.Unmarshal(body, &me))
	assert.Equal(t, env.adminID, me.ID)
}

func TestUsersFlow(t *testing.T) {
	env := newTestEnv(t)

	for _, name := range []string{"Иван Петров", "Мария Сидорова", "Алексей Козлов"} {
		status, _ := env.do(t, http.MethodPost, "/api/admin/users", dto.CreateUserRequest{
			Email: uuid.NewString() + "@example.com",
			Name:  name,
		})
		require.Equal(t, http.StatusCreated, status)
	}

	status, body := env.do(t, http.MethodGet, "/api/admin/users?q=%D0%BC%D0%B0%D1%80", nil)
	require.Equal(t, http.StatusOK, status)
	var list dto.UsersResponse
	require.NoError(t, json.Unmarshal(body, &list))
	require.Len(t, list.Users, 1)
	assert.Equal(t, "Мария Сидорова", list.Users[0].Name)
	assert.Equal(t, "мар", list.Filter)

	id := list.Users[0].ID
	status, body = env.do(t, http.MethodPost, "/api/admin/users/"+id.String()+"/toggle-active", nil)
	require.Equal(t, http.StatusOK, status)
	var toggled dto.UserMutationResponse
	require.NoError(t, json.Unmarshal(body, &toggled))
	require.NotNil(t, toggled.User)
	assert.False(t, toggled.User.IsActive)
	assert.Equal(t, 3, toggled.Users.Total)

	name := "Мария Иванова"
	status, body = env.do(t, http.MethodPatch, "/api/admin/users/"+id.String(), dto.UpdateUserRequest{Name: &name})
	require.Equal(t, http.StatusOK, status)
	var edited dto.UserMutationResponse
	require.NoError(t, json.Unmarshal(body, &edited))
	assert.Equal(t, "Мария Иванова", edited.User.Name)
	assert.False(t, edited.User.IsActive)

	// Every mutation left an audit entry attributed to the operator.
	logs, err := env.mem.ListSystemLogs(context.Background(), backend.LogQuery{})
	require.NoError(t, err)
	require.Len(t, logs, 5)
	for _, e := range logs {
		require.NotNil(t, e.UserID)
		assert.Equal(t, env.adminID, *e.UserID)
	}
}

func TestUsersErrors(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.do(t, http.MethodPost, "/api/admin/users", map[string]string{"name": "No Email"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, string(body), "Email is required")

	status, _ = env.do(t, http.MethodPost, "/api/admin/users", dto.CreateUserRequest{Email: "a@example.com", Name: "A"})
	require.Equal(t, http.StatusCreated, status)
	status, _ = env.do(t, http.MethodPost, "/api/admin/users", dto.CreateUserRequest{Email: "a@example.com", Name: "B"})
	assert.Equal(t, http.StatusConflict, status)

	status, _ = env.do(t, http.MethodPost, "/api/admin/users/not-a-uuid/toggle-active", nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = env.do(t, http.MethodPost, "/api/admin/users/"+uuid.NewString()+"/toggle-active", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestLocationsFlow(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.do(t, http.MethodPost, "/api/admin/locations", map[string]string{"description": "no coordinates"})
	require.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, string(body), "Latitude is required")

	status, body = env.do(t, http.MethodPost, "/api/admin/locations", dto.CreateLocationRequest{
		Latitude:    coord(55.7558),
		Longitude:   coord(37.6173),
		Description: "Пакеты у входа",
		TrashType:   models.TrashPlastic,
		ImageURL:    "https://cdn.example.com/1.jpg",
	})
	require.Equal(t, http.StatusCreated, status)
	var created dto.LocationMutationResponse
	require.NoError(t, json.Unmarshal(body, &created))
	require.NotNil(t, created.Location)
	assert.Equal(t, models.StatusReported, created.Location.Status)
	assert.Equal(t, models.PriorityMedium, created.Location.Priority)
	require.Len(t, created.Map.Map.Markers, 1)
	assert.Equal(t, "red", created.Map.Map.Markers[0].Color)
	id := created.Location.ID.String()

	status, body = env.do(t, http.MethodGet, "/api/admin/locations/"+id, nil)
	require.Equal(t, http.StatusOK, status)
	var detail struct {
		Actions   []views.Action `json:"actions"`
		ImageLink string         `json:"image_link"`
		Status    string         `json:"status_label"`
	}
	require.NoError(t, json.Unmarshal(body, &detail))
	assert.Len(t, detail.Actions, 3)
	assert.Equal(t, "https://cdn.example.com/1.jpg", detail.ImageLink)
	assert.Equal(t, "Новая заявка", detail.Status)

	status, body = env.do(t, http.MethodPost, "/api/admin/locations/"+id+"/status", dto.StatusChangeRequest{Status: models.StatusCleaned})
	require.Equal(t, http.StatusOK, status)
	var changed dto.LocationMutationResponse
	require.NoError(t, json.Unmarshal(body, &changed))
	require.Len(t, changed.Map.Locations, 1)
	row := changed.Map.Locations[0]
	assert.Equal(t, models.StatusCleaned, row.Status)
	require.NotNil(t, row.CleanedAt)
	assert.False(t, row.CleanedAt.Before(row.CreatedAt))

	status, _ = env.do(t, http.MethodPost, "/api/admin/locations/"+id+"/status", dto.StatusChangeRequest{Status: models.StatusCleaned})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = env.do(t, http.MethodPost, "/api/admin/locations/"+id+"/status", map[string]string{"status": "archived"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = env.do(t, http.MethodGet, "/api/admin/locations?status=cleaned", nil)
	require.Equal(t, http.StatusOK, status)
	var filtered dto.MapResponse
	require.NoError(t, json.Unmarshal(body, &filtered))
	assert.Equal(t, 1, filtered.Total)
	assert.Equal(t, "cleaned", filtered.Status)

	status, _ = env.do(t, http.MethodGet, "/api/admin/locations?status=archived", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestLogs(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.mem.InsertSystemLogs(context.Background(),
		models.SystemLogEntry{Level: models.LevelInfo, Action: "a"},
		models.SystemLogEntry{Level: models.LevelError, Action: "b"},
	))

	status, body := env.do(t, http.MethodGet, "/api/admin/logs?level=critical", nil)
	require.Equal(t, http.StatusOK, status)
	var resp dto.LogsResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.NotNil(t, resp.Logs)
	assert.Empty(t, resp.Logs)
	assert.Equal(t, "critical", resp.Level)

	status, body = env.do(t, http.MethodGet, "/api/admin/logs?level=error", nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(body, &resp))
	require.Len(t, resp.Logs, 1)
	assert.Equal(t, "b", resp.Logs[0].Action)

	status, _ = env.do(t, http.MethodGet, "/api/admin/logs?level=debug", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestAdminsAndLabels(t *testing.T) {
	env := newTestEnv(t)

	role := models.RoleModerator
	status, body := env.do(t, http.MethodPatch, "/api/admin/admins/"+env.adminID.String(), dto.UpdateAdminRequest{Role: &role})
	require.Equal(t, http.StatusOK, status)
	var admins dto.AdminsResponse
	require.NoError(t, json.Unmarshal(body, &admins))
	assert.Equal(t, 2, admins.Total)

	bad := "root"
	status, _ = env.do(t, http.MethodPatch, "/api/admin/admins/"+env.adminID.String(), map[string]string{"role": bad})
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = env.do(t, http.MethodGet, "/api/admin/labels", nil)
	require.Equal(t, http.StatusOK, status)
	var set labels.Set
	require.NoError(t, json.Unmarshal(body, &set))
	assert.Equal(t, "Убрано", set.Status(models.StatusCleaned))
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t)
	status, body := env.doAs(t, "", http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), "go_goroutines")
}
