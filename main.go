package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"blogify/config"
	"blogify/handlers"
	"blogify/logger"
	"blogify/repository/sqlite"
	"blogify/services/auth"
	"blogify/services/blog"
	"blogify/services/generation"
	"blogify/services/media"
	"blogify/services/transcription"
	"blogify/services/youtube"
	"blogify/storage"
	"blogify/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

func main() {
	// Missing .env is fine; config falls back to process environment.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.LogDir, cfg.Debug)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	db, err := sqlite.InitDB(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	repo, err := sqlite.NewRepository(db)
	if err != nil {
		log.Fatalf("Failed to initialize repository: %v", err)
	}

	httpClient := &http.Client{Timeout: 30 * time.Second}

	titleClient := youtube.NewClient(youtube.Config{
		APIKey:            cfg.YouTube.APIKey,
		BaseURL:           cfg.YouTube.BaseURL,
		RequestsPerMinute: cfg.YouTube.RequestsPerMinute,
	}, httpClient, appLogger)

	audioFetcher, err := media.NewFetcher(media.Config{
		BinPath: cfg.Media.YTDLPPath,
		Dir:     cfg.Media.Dir,
		Timeout: cfg.Media.DownloadTimeout,
	}, appLogger)
	if err != nil {
		log.Fatalf("Failed to initialize audio fetcher: %v", err)
	}

	transcriber := transcription.NewClient(transcription.Config{
		APIKey:       cfg.AssemblyAI.APIKey,
		BaseURL:      cfg.AssemblyAI.BaseURL,
		PollInterval: cfg.AssemblyAI.PollInterval,
		PollTimeout:  cfg.AssemblyAI.PollTimeout,
	}, nil, appLogger)

	generator := generation.NewGenerator(generation.Config{
		APIKey:             cfg.OpenAI.APIKey,
		BaseURL:            cfg.OpenAI.BaseURL,
		Model:              cfg.OpenAI.Model,
		MaxTokens:          cfg.OpenAI.MaxTokens,
		Temperature:        cfg.OpenAI.Temperature,
		MaxTranscriptChars: cfg.OpenAI.MaxTranscriptChars,
	}, appLogger)

	var blogOpts []blog.Option
	if cfg.Spaces.Enabled {
		spacesClient, err := storage.NewSpacesClient(storage.SpacesConfig{
			AccessKey: cfg.Spaces.AccessKey,
			SecretKey: cfg.Spaces.SecretKey,
			Region:    cfg.Spaces.Region,
			Endpoint:  cfg.Spaces.Endpoint,
			Bucket:    cfg.Spaces.Bucket,
		})
		if err != nil {
			log.Fatalf("Failed to initialize archive storage: %v", err)
		}
		blogOpts = append(blogOpts, blog.WithArchiver(spacesClient))
	}

	blogService := blog.NewService(
		repo,
		titleClient,
		audioFetcher,
		transcriber,
		generator,
		validation.NewValidator(),
		appLogger,
		blogOpts...,
	)
	authService := auth.NewService(repo, appLogger)

	app := fiber.New(fiber.Config{
		ReadTimeout:           cfg.ReadTimeout,
		WriteTimeout:          cfg.WriteTimeout,
		IdleTimeout:           cfg.IdleTimeout,
		ErrorHandler:          handlers.NewErrorHandler(appLogger),
		DisableStartupMessage: !cfg.Debug,
		AppName:               "blogify " + cfg.Version,
	})

	setupMiddleware(app, cfg)

	sessionStore := session.New(session.Config{
		KeyLookup:      "cookie:" + cfg.Session.CookieName,
		Expiration:     cfg.Session.Expiration,
		CookieSecure:   cfg.Session.CookieSecure,
		CookieHTTPOnly: true,
	})

	blogHandler := handlers.NewBlogHandler(blogService)
	authHandler := handlers.NewAuthHandler(authService, sessionStore)

	app.Get("/health", handlers.HealthCheck)

	app.Post("/api/signup", authHandler.Signup)
	app.Post("/api/login", authHandler.Login)
	app.Post("/api/logout", authHandler.Logout)

	// Group middleware would also match the auth routes above, so the
	// session check is attached per route.
	app.All("/api/generate", authHandler.RequireAuth, blogHandler.Generate)
	app.Get("/api/posts", authHandler.RequireAuth, blogHandler.ListPosts)
	app.Get("/api/posts/:id", authHandler.RequireAuth, blogHandler.GetPost)

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-shutdownChan
		appLogger.Info("Shutting down server")

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := app.ShutdownWithContext(ctx); err != nil {
			appLogger.WithError(err).Error("Server shutdown error")
		}
	}()

	serverAddr := ":" + cfg.ServerPort
	if cfg.Debug {
		log.Printf("Server starting on http://localhost%s", serverAddr)
	}

	if err := app.Listen(serverAddr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}

func setupMiddleware(app *fiber.App, cfg *config.Config) {
	app.Use(recover.New(recover.Config{
		EnableStackTrace: cfg.Debug,
	}))

	app.Use(requestid.New(requestid.Config{
		Header: "X-Request-ID",
		Generator: func() string {
			return uuid.New().String()
		},
	}))

	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} ${locals:requestid} ${status} ${method} ${path} ${latency}\n",
	}))

	if cfg.CORS.Enabled {
		app.Use(cors.New(cors.Config{
			AllowOrigins:     strings.Join(cfg.CORS.AllowedOrigins, ","),
			AllowMethods:     strings.Join(cfg.CORS.AllowedMethods, ","),
			AllowHeaders:     strings.Join(cfg.CORS.AllowedHeaders, ","),
			AllowCredentials: cfg.CORS.AllowCredentials,
			MaxAge:           cfg.CORS.MaxAge,
		}))
	}

	if cfg.RateLimit.Enabled {
		app.Use(limiter.New(limiter.Config{
			Max:        cfg.RateLimit.RequestsPerMinute,
			Expiration: time.Minute,
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
					"error": "Rate limit exceeded",
				})
			},
		}))
	}
}
