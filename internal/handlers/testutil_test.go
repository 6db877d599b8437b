package handlers

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	gosqlite "github.com/glebarez/go-sqlite"
	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	"github.com/linkhive/backend/internal/config"
	"github.com/linkhive/backend/internal/metrics"
	"github.com/linkhive/backend/internal/middleware"
	"github.com/linkhive/backend/internal/models"
	"github.com/linkhive/backend/internal/services"
	"github.com/linkhive/backend/internal/store"
	"github.com/linkhive/backend/pkg/logger"
	"github.com/linkhive/backend/pkg/utils"
	"gorm.io/gorm"
)

type testEnv struct {
	app *fiber.App
	db  *gorm.DB
}

var testSetupOnce sync.Once

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	testSetupOnce.Do(func() {
		gosqlite.MustRegisterScalarFunction("NOW", 0, func(ctx *gosqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
			return time.Now().UTC(), nil
		})
		logger.Init()
		utils.ConfigureJWT("test-secret", 24)
	})

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed opening in-memory sqlite database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed getting sql.DB from gorm: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	err = db.AutoMigrate(
		&models.User{},
		&models.Team{},
		&models.TeamMembership{},
		&models.URL{},
	)
	if err != nil {
		t.Fatalf("failed automigrating models: %v", err)
	}

	stores := store.New(db)
	collector := metrics.NewCollector()

	authService := services.NewAuthService(stores)
	usersService := services.NewUsersService(stores)
	teamsService := services.NewTeamsService(stores)
	urlsService := services.NewURLsService(stores, config.ShortLinkConfig{
		BaseURL:    "http://localhost:8080",
		CodeLength: utils.DefaultCodeLength,
	})

	authHandler := NewAuthHandler(authService)
	usersHandler := NewUsersHandler(usersService)
	teamsHandler := NewTeamsHandler(teamsService)
	urlsHandler := NewURLsHandler(urlsService, collector)

	authMiddleware := middleware.NewAuthMiddleware(db)

	app := fiber.New()
	app.Use(recover.New(recover.Config{EnableStackTrace: true}))
	app.Use(middleware.CORS())
	app.Use(middleware.RequestLogger())
	app.Use(middleware.Metrics(collector))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
	})

	authRoutes := app.Group("/auth")
	authRoutes.Post("/register", authHandler.Register)
	authRoutes.Post("/login", authHandler.Login)
	authRoutes.Post("/change-password", authMiddleware.RequireAuth, authHandler.ChangePassword)
	authRoutes.Get("/profile", authMiddleware.RequireAuth, authHandler.Profile)

	userRoutes := app.Group("/users", authMiddleware.RequireAuth)
	userRoutes.Get("/my-info", usersHandler.MyInfo)
	userRoutes.Patch("/update", usersHandler.Update)
	userRoutes.Delete("/delete", usersHandler.Delete)

	teamRoutes := app.Group("/team", authMiddleware.RequireAuth)
	teamRoutes.Post("/create", teamsHandler.Create)
	teamRoutes.Patch("/update/id/:teamId", teamsHandler.Update)
	teamRoutes.Delete("/delete/id/:teamId", teamsHandler.Delete)
	teamRoutes.Put("/add-members/team-id/:teamId", teamsHandler.AddMembers)
	teamRoutes.Put("/remove-members/team-id/:teamId", teamsHandler.RemoveMembers)
	teamRoutes.Get("/id/:teamId", teamsHandler.Get)
	teamRoutes.Get("/all", teamsHandler.All)

	urlRoutes := app.Group("/url")
	urlRoutes.Post("/create/teamId/:teamId", authMiddleware.RequireAuth, urlsHandler.Create)
	urlRoutes.Get("/list", authMiddleware.RequireAuth, urlsHandler.List)
	urlRoutes.Get("/id/:urlId", authMiddleware.RequireAuth, urlsHandler.Get)
	urlRoutes.Patch("/id/:urlId", authMiddleware.RequireAuth, urlsHandler.Update)
	urlRoutes.Get("/:shortCode", urlsHandler.Redirect)

	return &testEnv{app: app, db: db}
}

func createTestUser(t *testing.T, db *gorm.DB, email, password string) (*models.User, string) {
	t.Helper()

	salt, err := utils.NewSalt()
	if err != nil {
		t.Fatalf("failed generating salt: %v", err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: utils.HashPassword(password, salt),
		Salt:         salt,
		FirstName:    "Test",
		LastName:     "User",
		Role:         models.UserRoleUser,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed creating test user: %v", err)
	}

	token, err := utils.GenerateToken(user)
	if err != nil {
		t.Fatalf("failed generating auth token: %v", err)
	}

	return user, token
}

func createTestTeam(t *testing.T, db *gorm.DB, name string, memberIDs ...uuid.UUID) *models.Team {
	t.Helper()

	team := &models.Team{Name: name}
	if err := db.Create(team).Error; err != nil {
		t.Fatalf("failed creating test team: %v", err)
	}
	for _, memberID := range memberIDs {
		membership := &models.TeamMembership{TeamID: team.ID, UserID: memberID}
		if err := db.Create(membership).Error; err != nil {
			t.Fatalf("failed creating test membership: %v", err)
		}
	}

	return team
}

func authHeaders(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func performRequest(t *testing.T, app *fiber.App, method, path string, body io.Reader, headers map[string]string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(method, path, body)
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := app.Test(req, int((10 * time.Second).Milliseconds()))
	if err != nil {
		t.Fatalf("request %s %s failed: %v", method, path, err)
	}

	return resp
}

func performJSONRequest(t *testing.T, app *fiber.App, method, path string, payload any, headers map[string]string) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("failed to marshal payload: %v", err)
		}
		body = bytes.NewReader(encoded)
	}

	requestHeaders := map[string]string{}
	for key, value := range headers {
		requestHeaders[key] = value
	}
	if payload != nil {
		requestHeaders["Content-Type"] = "application/json"
	}

	return performRequest(t, app, method, path, body, requestHeaders)
}

func decodeJSONMap(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed reading response body: %v", err)
	}

	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("failed decoding JSON response: %v body=%q", err, string(raw))
	}

	return payload
}

func dataMap(t *testing.T, body map[string]any) map[string]any {
	t.Helper()

	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data object in response, got %+v", body)
	}
	return data
}

func assertStatus(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	if resp.StatusCode != expected {
		t.Fatalf("expected status %d, got %d", expected, resp.StatusCode)
	}
}

func assertEnvelopeError(t *testing.T, body map[string]any, expected string) {
	t.Helper()
	if success, _ := body["success"].(bool); success {
		t.Fatalf("expected success=false, got %+v", body)
	}
	if got, _ := body["error"].(string); got != expected {
		t.Fatalf("expected error %q, got %q", expected, got)
	}
}
