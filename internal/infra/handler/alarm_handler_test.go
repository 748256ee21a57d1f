package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jpcostan/rise-and-move-ios/internal/app"
	"github.com/Jpcostan/rise-and-move-ios/internal/domain"
	"github.com/Jpcostan/rise-and-move-ios/internal/infra/handler"
	"github.com/Jpcostan/rise-and-move-ios/internal/infra/kvstore"
	"github.com/Jpcostan/rise-and-move-ios/internal/infra/repository"
	"github.com/Jpcostan/rise-and-move-ios/internal/testutil"
)

type testServer struct {
	router   *gin.Engine
	notifier *testutil.FakeNotifier
	clock    *testutil.FixedClock
}

func setupTestRouter(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	testDB := testutil.SetupTestDB(t)

	n := testutil.NewFakeNotifier()
	clock := testutil.NewFixedClock(time.Date(2025, 1, 6, 6, 0, 0, 0, time.UTC))
	reconciler := app.NewReconciler(n, clock.Now)
	store := app.NewAlarmStore(repository.NewAlarmRepository(kvstore.NewGormSlot(testDB.DB), "alarms.v2"), reconciler)
	coordinator := app.NewLifecycleCoordinator(store, reconciler)
	useCase := app.NewAlarmUseCase(store, coordinator, n, clock.Now, app.AlarmUseCaseConfig{DefaultEnabled: true})
	h := handler.NewAlarmHandler(useCase)

	router := gin.New()
	api := router.Group("/api/v1")
	h.RegisterRoutes(api)

	return &testServer{
		router:   router,
		notifier: n,
		clock:    clock,
	}
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	return w
}

func (s *testServer) create(t *testing.T, body map[string]any) handler.AlarmResponse {
	t.Helper()

	w := s.do(t, http.MethodPost, "/api/v1/alarms", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp handler.AlarmResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	return resp
}

func TestCreateAlarmHandlerSuccess(t *testing.T) {
	tests := []struct {
		name            string
		body            map[string]any
		expectedDays    []string
		expectedMinutes int
		expectBackup    bool
	}{
		{
			name:            "one-time alarm",
			body:            map[string]any{"time": "07:00"},
			expectedDays:    []string{},
			expectedMinutes: 10,
		},
		{
			name: "weekday alarm with backup",
			body: map[string]any{
				"time":           "06:30",
				"repeat_days":    []string{"fri", "mon", "tue", "wed", "thu"},
				"label":          "Work",
				"backup_enabled": true,
				"backup_minutes": 5,
			},
			expectedDays:    []string{"mon", "tue", "wed", "thu", "fri"},
			expectedMinutes: 5,
			expectBackup:    true,
		},
		{
			name: "backup minutes clamped",
			body: map[string]any{
				"time":           "06:30",
				"backup_enabled": true,
				"backup_minutes": 999,
			},
			expectedDays:    []string{},
			expectedMinutes: 60,
			expectBackup:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := setupTestRouter(t)

			resp := s.create(t, tt.body)

			assert.NotEmpty(t, resp.ID)
			assert.True(t, resp.Enabled)
			assert.Equal(t, "armed", resp.State)
			assert.Equal(t, tt.expectedDays, resp.RepeatDays)
			assert.Equal(t, tt.expectedMinutes, resp.BackupMinutes)
			require.NotNil(t, resp.NextFireAt)

			if tt.expectBackup {
				require.NotNil(t, resp.BackupFireAt)
				assert.Equal(t, time.Duration(tt.expectedMinutes)*time.Minute, resp.BackupFireAt.Sub(*resp.NextFireAt))
			} else {
				assert.Nil(t, resp.BackupFireAt)
			}
		})
	}
}

func TestCreateAlarmHandlerValidationError(t *testing.T) {
	tests := []struct {
		name          string
		body          any
		expectedField string
	}{
		{name: "missing time", body: map[string]any{"label": "x"}, expectedField: ""},
		{name: "malformed time", body: map[string]any{"time": "7am"}, expectedField: "time"},
		{name: "unknown weekday", body: map[string]any{"time": "07:00", "repeat_days": []string{"xyz"}}, expectedField: "repeat_days[0]"},
		{name: "not an object", body: []int{1, 2}, expectedField: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := setupTestRouter(t)

			w := s.do(t, http.MethodPost, "/api/v1/alarms", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			var resp handler.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "validation_error", resp.Error)
			assert.Equal(t, tt.expectedField, resp.Field)
			assert.Equal(t, 0, s.notifier.TotalOutstanding())
		})
	}
}

func TestListAlarmsHandlerSuccess(t *testing.T) {
	s := setupTestRouter(t)

	first := s.create(t, map[string]any{"time": "09:00"})
	second := s.create(t, map[string]any{"time": "05:00"})

	w := s.do(t, http.MethodGet, "/api/v1/alarms", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp handler.AlarmsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, int32(2), resp.Count)
	assert.Equal(t, first.ID, resp.Alarms[0].ID)
	assert.Equal(t, second.ID, resp.Alarms[1].ID)
}

func TestUpdateAndToggleAlarmHandlerSuccess(t *testing.T) {
	s := setupTestRouter(t)

	created := s.create(t, map[string]any{"time": "07:00", "backup_enabled": true})
	id, err := domain.AlarmIDFromString(created.ID)
	require.NoError(t, err)
	require.Len(t, s.notifier.Outstanding(id), 2)

	w := s.do(t, http.MethodPut, "/api/v1/alarms/"+created.ID, map[string]any{
		"time":        "08:15",
		"repeat_days": []string{"sat"},
		"enabled":     true,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated handler.AlarmResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "08:15", updated.Time)
	assert.Equal(t, []string{"sat"}, updated.RepeatDays)
	assert.False(t, updated.BackupEnabled)
	require.Len(t, s.notifier.Outstanding(id), 1)

	w = s.do(t, http.MethodPut, "/api/v1/alarms/"+created.ID+"/enabled", map[string]any{"enabled": false})
	require.Equal(t, http.StatusOK, w.Code)

	var toggled handler.AlarmResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &toggled))
	assert.False(t, toggled.Enabled)
	assert.Equal(t, "disarmed", toggled.State)
	assert.Nil(t, toggled.NextFireAt)
	assert.Empty(t, s.notifier.Outstanding(id))

	w = s.do(t, http.MethodPut, "/api/v1/alarms/"+created.ID+"/enabled", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAcknowledgeAlarmHandlerSuccess(t *testing.T) {
	s := setupTestRouter(t)

	created := s.create(t, map[string]any{"time": "07:00", "backup_enabled": true})
	s.clock.Set(time.Date(2025, 1, 6, 7, 0, 10, 0, time.UTC))

	w := s.do(t, http.MethodPost, "/api/v1/alarms/"+created.ID+"/ack", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp handler.AlarmResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Enabled)
	assert.Equal(t, 0, s.notifier.TotalOutstanding())

	w = s.do(t, http.MethodPost, "/api/v1/alarms/"+created.ID+"/ack", map[string]any{"kind": "snooze"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteAlarmHandlerSuccess(t *testing.T) {
	s := setupTestRouter(t)

	created := s.create(t, map[string]any{"time": "07:00", "backup_enabled": true})

	w := s.do(t, http.MethodDelete, "/api/v1/alarms/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, 0, s.notifier.TotalOutstanding())

	w = s.do(t, http.MethodGet, "/api/v1/alarms/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Repeating a delete stays successful.
	w = s.do(t, http.MethodDelete, "/api/v1/alarms/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestAlarmHandlerNotFoundError(t *testing.T) {
	s := setupTestRouter(t)
	missing := domain.NewAlarmID().String()

	tests := []struct {
		name   string
		method string
		path   string
		body   any
	}{
		{name: "get", method: http.MethodGet, path: "/api/v1/alarms/" + missing},
		{name: "update", method: http.MethodPut, path: "/api/v1/alarms/" + missing, body: map[string]any{"time": "07:00"}},
		{name: "toggle", method: http.MethodPut, path: "/api/v1/alarms/" + missing + "/enabled", body: map[string]any{"enabled": true}},
		{name: "ack", method: http.MethodPost, path: "/api/v1/alarms/" + missing + "/ack"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(t, tt.method, tt.path, tt.body)

			assert.Equal(t, http.StatusNotFound, w.Code)

			var resp handler.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "not_found", resp.Error)
		})
	}
}

func TestAlarmHandlerInvalidIDError(t *testing.T) {
	s := setupTestRouter(t)

	w := s.do(t, http.MethodGet, "/api/v1/alarms/not-a-uuid", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReconcileAndStatusHandlerSuccess(t *testing.T) {
	s := setupTestRouter(t)

	s.create(t, map[string]any{"time": "07:00", "backup_enabled": true})
	s.create(t, map[string]any{"time": "08:00", "enabled": false})

	w := s.do(t, http.MethodPost, "/api/v1/alarms/reconcile", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var reconciled handler.ReconcileResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reconciled))
	assert.Equal(t, int32(2), reconciled.Alarms)
	assert.Equal(t, int32(2), reconciled.Reminders)

	w = s.do(t, http.MethodGet, "/api/v1/notifier/status", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var status handler.NotifierStatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.True(t, status.AuthorizationCapable)
}

func TestExportCalendarHandlerSuccess(t *testing.T) {
	s := setupTestRouter(t)

	created := s.create(t, map[string]any{"time": "07:00", "repeat_days": []string{"mon", "thu"}, "label": "Run"})

	w := s.do(t, http.MethodGet, "/api/v1/alarms/calendar.ics", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.Contains(t, w.Header().Get("Content-Type"), "text/calendar")

	body := w.Body.String()
	assert.Contains(t, body, "BEGIN:VEVENT")
	assert.Contains(t, body, "UID:"+created.ID)
	assert.Contains(t, body, "SUMMARY:Run")
	assert.Contains(t, body, "FREQ=WEEKLY")
}
