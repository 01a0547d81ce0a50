package controllers_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"learnhub/backend/config"
	"learnhub/backend/middleware"
	"learnhub/backend/models"
	"learnhub/backend/routes"
	"learnhub/backend/services/advisor"
	"learnhub/backend/store"
	"learnhub/backend/utils"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testEnv struct {
	t     *testing.T
	app   *fiber.App
	db    *gorm.DB
	cfg   *config.Config
	store *store.Store
}

// newTestEnv builds the full route table over a fresh SQLite file. A nil gen
// leaves the AI advisor unconfigured.
func newTestEnv(t *testing.T, gen advisor.Generator, opts ...func(*config.Config)) *testEnv {
	t.Helper()
	cfg := &config.Config{
		Env:         "test",
		DBDriver:    "sqlite",
		DBDSN:       filepath.Join(t.TempDir(), "api.db"),
		JWTSecret:   "testsecret",
		JWTTTL:      time.Hour,
		AIRateLimit: 20,
		CORSOrigins: "*",
	}
	for _, opt := range opts {
		opt(cfg)
	}
	db, err := utils.InitDB(cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	log := utils.NopLogger()
	s := store.New(db, log)
	app := fiber.New(fiber.Config{
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
		ErrorHandler: middleware.ErrorHandler(cfg.IsProduction(), log),
	})
	routes.SetupRoutes(app, s, cfg, log, advisor.New(gen, log))
	app.Use(middleware.NotFound)

	return &testEnv{t: t, app: app, db: db, cfg: cfg, store: s}
}

// request sends body as JSON (raw when it is a string) and returns the status
// and the response body.
func (e *testEnv) request(method, path string, body interface{}, token string) (int, []byte) {
	e.t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(e.t, err)
		reader = bytes.NewBuffer(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(e.t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(e.t, err)
	return resp.StatusCode, data
}

// call is request plus decoding into a generic map.
func (e *testEnv) call(method, path string, body interface{}, token string) (int, map[string]interface{}) {
	e.t.Helper()
	status, data := e.request(method, path, body, token)
	var result map[string]interface{}
	if len(data) > 0 && data[0] == '{' {
		require.NoError(e.t, json.Unmarshal(data, &result))
	}
	return status, result
}

func (e *testEnv) decode(data []byte, out interface{}) {
	e.t.Helper()
	require.NoError(e.t, json.Unmarshal(data, out))
}

// register creates a user through the API and returns its token and id.
func (e *testEnv) register(name, email string) (string, string) {
	e.t.Helper()
	status, result := e.call(http.MethodPost, "/api/auth/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": "password123",
	}, "")
	require.Equal(e.t, fiber.StatusCreated, status, result)
	return result["token"].(string), result["_id"].(string)
}

func (e *testEnv) makeAdmin(email string) {
	e.t.Helper()
	require.NoError(e.t, e.db.Model(&models.User{}).Where("email = ?", email).Update("is_admin", true).Error)
}

// seedCourse creates a course tree directly in the store.
func (e *testEnv) seedCourse(title, category string, lessonsPerModule ...int) *models.Course {
	e.t.Helper()
	ctx := context.Background()
	course := &models.Course{Title: title, Description: title + " in depth", Category: category, Difficulty: models.DifficultyBeginner}
	require.NoError(e.t, e.store.Catalog.CreateCourse(ctx, course))
	for mi, n := range lessonsPerModule {
		module := &models.Module{CourseID: course.ID, Title: title + " module " + string(rune('A'+mi))}
		require.NoError(e.t, e.store.Catalog.CreateModule(ctx, module))
		for li := 0; li < n; li++ {
			lesson := &models.Lesson{
				CourseID: course.ID,
				ModuleID: module.ID,
				Title:    module.Title + " lesson " + string(rune('1'+li)),
				Content:  "content",
			}
			require.NoError(e.t, e.store.Catalog.CreateLesson(ctx, lesson))
		}
	}
	got, err := e.store.Catalog.GetCourse(ctx, course.ID)
	require.NoError(e.t, err)
	return got
}

// fakeGenerator answers classification prompts with label and anything else
// with reply or err.
type fakeGenerator struct {
	mu    sync.Mutex
	label string
	reply string
	err   error
	calls int
}

func (g *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	if bytes.Contains([]byte(prompt), []byte("exact labels")) {
		return g.label, nil
	}
	return g.reply, g.err
}
