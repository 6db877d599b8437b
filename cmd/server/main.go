package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/linkhive/backend/internal/config"
	"github.com/linkhive/backend/internal/database"
	"github.com/linkhive/backend/internal/handlers"
	"github.com/linkhive/backend/internal/metrics"
	"github.com/linkhive/backend/internal/middleware"
	"github.com/linkhive/backend/internal/services"
	"github.com/linkhive/backend/internal/store"
	"github.com/linkhive/backend/pkg/logger"
	"github.com/linkhive/backend/pkg/utils"
)

func main() {
	_ = godotenv.Load()

	logger.Init()

	cfg := config.Load()
	utils.ConfigureJWT(cfg.JWT.Secret, cfg.JWT.ExpirationHours)

	db, err := database.Connect(cfg.DB)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}

	stores := store.New(db)
	collector := metrics.NewCollector()

	authService := services.NewAuthService(stores)
	usersService := services.NewUsersService(stores)
	teamsService := services.NewTeamsService(stores)
	urlsService := services.NewURLsService(stores, cfg.ShortLink)

	authHandler := handlers.NewAuthHandler(authService)
	usersHandler := handlers.NewUsersHandler(usersService)
	teamsHandler := handlers.NewTeamsHandler(teamsService)
	urlsHandler := handlers.NewURLsHandler(urlsService, collector)

	authMiddleware := middleware.NewAuthMiddleware(db)

	app := fiber.New()
	app.Use(recover.New(recover.Config{EnableStackTrace: true}))
	app.Use(middleware.CORS())
	app.Use(middleware.RequestLogger())
	app.Use(middleware.Metrics(collector))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(collector.Handler()))

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

	// Authenticated URL routes are registered before the public catch-all so
	// /url/list and /url/id/... never match as short codes.
	urlRoutes := app.Group("/url")
	urlRoutes.Post("/create/teamId/:teamId", authMiddleware.RequireAuth, urlsHandler.Create)
	urlRoutes.Get("/list", authMiddleware.RequireAuth, urlsHandler.List)
	urlRoutes.Get("/id/:urlId", authMiddleware.RequireAuth, urlsHandler.Get)
	urlRoutes.Patch("/id/:urlId", authMiddleware.RequireAuth, urlsHandler.Update)
	urlRoutes.Get("/:shortCode", urlsHandler.Redirect)

	listenAddr := fmt.Sprintf(":%s", cfg.Server.Port)

	logger.Info("server_starting", map[string]interface{}{
		"port":    cfg.Server.Port,
		"address": listenAddr,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(listenAddr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Printf("shutting down server due to signal: %s", sig)
		shutdownDone := make(chan struct{})
		go func() {
			_ = app.Shutdown()
			close(shutdownDone)
		}()
		select {
		case <-shutdownDone:
		case <-time.After(10 * time.Second):
			log.Print("forced shutdown timeout reached")
		}
	case err := <-errCh:
		if err != nil {
			log.Fatalf("server error: %v", err)
		}
	}
}
