package test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/Venkata-Manoj/Habit-Zen-Web/internal"
	"github.com/Venkata-Manoj/Habit-Zen-Web/internal/api"
	"github.com/Venkata-Manoj/Habit-Zen-Web/internal/auth"
	"github.com/Venkata-Manoj/Habit-Zen-Web/internal/config"
	"github.com/Venkata-Manoj/Habit-Zen-Web/internal/storage"
	"github.com/Venkata-Manoj/Habit-Zen-Web/internal/suggest"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	dir := t.TempDir()
	logger := internal.NewZapLogger(zap.NewNop().Sugar())
	store, err := storage.NewFileStorage(filepath.Join(dir, "habits.json"), filepath.Join(dir, "completions.json"), logger)
	assert.NoError(t, err)
	return setupRouterWithStorage(t, store)
}

func setupRouterWithStorage(t *testing.T, store *storage.FileStorage) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := internal.NewZapLogger(zap.NewNop().Sugar())
	cfg := &config.Config{Env: "development", APIToken: "MOCK-TOKEN"}
	provider := auth.NewLocalAuthProvider(cfg.APIToken, logger)
	app := api.NewApp(logger, store, store, suggest.NewLocalProvider(logger), nil, store)
	return api.NewRouter(app, provider, cfg)
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body == "" {
		req, _ = http.NewRequest(method, path, nil)
	} else {
		req, _ = http.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer MOCK-TOKEN")
	r.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Data  json.RawMessage    `json:"data"`
	Meta  map[string]any     `json:"meta"`
	Error *internal.AppError `json:"error"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var e envelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &e))
	return e
}

func TestAuthRequired(t *testing.T) {
	r := setupRouter(t)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/habits", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, 401, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/api/habits", nil)
	req.Header.Set("Authorization", "Bearer WRONG")
	r.ServeHTTP(w, req)
	assert.Equal(t, 401, w.Code)
}

func TestPostHabit_ValidAndInvalid(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(r, "POST", "/api/habits", `{"title":"Read","description":"Twenty pages","reminder_time":"09:00"}`)
	assert.Equal(t, 200, w.Code)
	e := decode(t, w)
	var habit internal.Habit
	assert.NoError(t, json.Unmarshal(e.Data, &habit))
	assert.NotEmpty(t, habit.ID)
	assert.Equal(t, "Read", habit.Title)

	// Title too short
	w = doJSON(r, "POST", "/api/habits", `{"title":"R"}`)
	assert.Equal(t, 400, w.Code)

	// Bad reminder time
	w = doJSON(r, "POST", "/api/habits", `{"title":"Read","reminder_time":"9am"}`)
	assert.Equal(t, 400, w.Code)

	// Description too long
	w = doJSON(r, "POST", "/api/habits", `{"title":"Read","description":"`+strings.Repeat("x", 201)+`"}`)
	assert.Equal(t, 400, w.Code)
}

func TestToggleAndDayLog(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(r, "POST", "/api/habits", `{"title":"Read"}`)
	assert.Equal(t, 200, w.Code)
	var habit internal.Habit
	assert.NoError(t, json.Unmarshal(decode(t, w).Data, &habit))

	w = doJSON(r, "POST", "/api/habits/"+habit.ID+"/toggle", `{"date":"2024-05-01"}`)
	assert.Equal(t, 200, w.Code)
	var toggle map[string]any
	assert.NoError(t, json.Unmarshal(decode(t, w).Data, &toggle))
	assert.Equal(t, true, toggle["completed"])

	w = doJSON(r, "GET", "/api/log?date=2024-05-01", "")
	assert.Equal(t, 200, w.Code)
	var entries []internal.DayLogEntry
	assert.NoError(t, json.Unmarshal(decode(t, w).Data, &entries))
	assert.Len(t, entries, 1)
	assert.Equal(t, "Read", entries[0].Title)

	// Toggle off
	w = doJSON(r, "POST", "/api/habits/"+habit.ID+"/toggle", `{"date":"2024-05-01"}`)
	assert.Equal(t, 200, w.Code)
	assert.NoError(t, json.Unmarshal(decode(t, w).Data, &toggle))
	assert.Equal(t, false, toggle["completed"])

	// Unknown habit
	w = doJSON(r, "POST", "/api/habits/ghost/toggle", `{"date":"2024-05-01"}`)
	assert.Equal(t, 404, w.Code)

	// Bad date
	w = doJSON(r, "POST", "/api/habits/"+habit.ID+"/toggle", `{"date":"May 1"}`)
	assert.Equal(t, 400, w.Code)
}

func TestDeleteHabitCascades(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(r, "POST", "/api/habits", `{"title":"Read"}`)
	var habit internal.Habit
	assert.NoError(t, json.Unmarshal(decode(t, w).Data, &habit))

	doJSON(r, "POST", "/api/habits/"+habit.ID+"/toggle", `{"date":"2024-05-01"}`)

	w = doJSON(r, "DELETE", "/api/habits/"+habit.ID, "")
	assert.Equal(t, 200, w.Code)

	w = doJSON(r, "GET", "/api/habits", "")
	var habits []internal.Habit
	assert.NoError(t, json.Unmarshal(decode(t, w).Data, &habits))
	assert.Empty(t, habits)

	w = doJSON(r, "GET", "/api/log?date=2024-05-01", "")
	var entries []internal.DayLogEntry
	assert.NoError(t, json.Unmarshal(decode(t, w).Data, &entries))
	assert.Empty(t, entries)
}

func TestDeleteHabitWithDegradedStorage(t *testing.T) {
	r := setupRouterWithStorage(t, setupDegradedStorage(t))

	w := doJSON(r, "POST", "/api/habits", `{"title":"Read"}`)
	assert.Equal(t, 200, w.Code)
	var habit internal.Habit
	assert.NoError(t, json.Unmarshal(decode(t, w).Data, &habit))

	// Toggle succeeds in memory; the failed blob write is an advisory.
	w = doJSON(r, "POST", "/api/habits/"+habit.ID+"/toggle", `{"date":"2024-05-01"}`)
	assert.Equal(t, 200, w.Code)
	assert.Contains(t, decode(t, w).Meta, "warning")

	// Delete must fully apply in memory and report the warning.
	w = doJSON(r, "DELETE", "/api/habits/"+habit.ID, "")
	assert.Equal(t, 200, w.Code)
	assert.Contains(t, decode(t, w).Meta, "warning")

	w = doJSON(r, "GET", "/api/habits", "")
	var habits []internal.Habit
	assert.NoError(t, json.Unmarshal(decode(t, w).Data, &habits))
	assert.Empty(t, habits)

	w = doJSON(r, "GET", "/api/log?date=2024-05-01", "")
	var entries []internal.DayLogEntry
	assert.NoError(t, json.Unmarshal(decode(t, w).Data, &entries))
	assert.Empty(t, entries)

	// Durable storage is degraded and health says so.
	wh := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	r.ServeHTTP(wh, req)
	assert.Contains(t, wh.Body.String(), "degraded")
}

func TestPutReminder(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(r, "POST", "/api/habits", `{"title":"Read"}`)
	var habit internal.Habit
	assert.NoError(t, json.Unmarshal(decode(t, w).Data, &habit))

	w = doJSON(r, "PUT", "/api/habits/"+habit.ID+"/reminder", `{"reminder_time":"09:00"}`)
	assert.Equal(t, 200, w.Code)
	var updated internal.Habit
	assert.NoError(t, json.Unmarshal(decode(t, w).Data, &updated))
	if assert.NotNil(t, updated.ReminderTime) {
		assert.Equal(t, "09:00", *updated.ReminderTime)
	}

	// Clearing. Decode into a fresh struct: the cleared field is omitted
	// from the response and must not inherit the previous value.
	w = doJSON(r, "PUT", "/api/habits/"+habit.ID+"/reminder", `{"reminder_time":null}`)
	assert.Equal(t, 200, w.Code)
	var cleared internal.Habit
	assert.NoError(t, json.Unmarshal(decode(t, w).Data, &cleared))
	assert.Nil(t, cleared.ReminderTime)

	w = doJSON(r, "PUT", "/api/habits/ghost/reminder", `{"reminder_time":"09:00"}`)
	assert.Equal(t, 404, w.Code)

	w = doJSON(r, "PUT", "/api/habits/"+habit.ID+"/reminder", `{"reminder_time":"24:61"}`)
	assert.Equal(t, 400, w.Code)
}

func TestPostSuggestions(t *testing.T) {
	r := setupRouter(t)

	doJSON(r, "POST", "/api/habits", `{"title":"Read"}`)

	w := doJSON(r, "POST", "/api/suggestions", `{"goals":"Sleep better and exercise more"}`)
	assert.Equal(t, 200, w.Code)
	var resp suggest.Response
	assert.NoError(t, json.Unmarshal(decode(t, w).Data, &resp))
	assert.NotEmpty(t, resp.Suggestions)
	assert.NotEmpty(t, resp.Reasoning)

	// Goals under 10 chars rejected at the boundary
	w = doJSON(r, "POST", "/api/suggestions", `{"goals":"short"}`)
	assert.Equal(t, 400, w.Code)
}

func TestHealth(t *testing.T) {
	r := setupRouter(t)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}
