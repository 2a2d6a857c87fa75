package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator/v10"

	"bookmark_service/internal/auth"
	"bookmark_service/internal/bookmarks"
	"bookmark_service/internal/config"
	bookmarkhandlers "bookmark_service/internal/http_server/handlers/bookmarks"
	"bookmark_service/internal/http_server/handlers/edituser"
	"bookmark_service/internal/http_server/handlers/me"
	"bookmark_service/internal/http_server/handlers/signin"
	"bookmark_service/internal/http_server/handlers/signup"
	"bookmark_service/internal/middleware/authn"
	"bookmark_service/internal/rabbitmq"
	"bookmark_service/internal/storage/postgres"
	"bookmark_service/internal/users"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	cfg := config.MustLoad("./config/config.yaml")

	log := setupLogger(cfg.Env)

	log.Info("starting bookmark service", slog.String("env", cfg.Env))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		log.Info("Shutdown signal received")
		cancel()
	}()

	storage, err := postgres.New(ctx, cfg)
	if err != nil {
		log.Error("failed to connect postgres", slog.String("err", err.Error()))
		os.Exit(1)
	}
	defer storage.Close()

	msgBroker, err := rabbitmq.New(cfg.RabbitMQ.URL, cfg.RabbitMQ.QueueName)
	if err != nil {
		log.Error("failed to connect rabbitmq", slog.String("err", err.Error()))
		os.Exit(1)
	}
	defer msgBroker.Close()

	authService := auth.New(log, storage, storage, cfg.Tokens.Secret, cfg.Tokens.AccessTokenTTL)
	usersService := users.New(log, storage)
	bookmarksService := bookmarks.New(log, storage)

	router := setupRouter(
		log,
		cfg.Tokens.Secret,
		storage,
		authService,
		usersService,
		bookmarksService,
		msgBroker,
	)

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	go func() {
		log.Info("HTTP server is running", slog.String("address", cfg.HTTPServer.Address))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed", slog.String("err", err.Error()))
			cancel()
		}
	}()

	<-ctx.Done()

	log.Info("Shutting down HTTP server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", slog.String("err", err.Error()))
	} else {
		log.Info("Server stopped gracefully")
	}

	log.Info("Main service stopped")
}

func setupRouter(
	log *slog.Logger,
	tokenSecret string,
	storage *postgres.PostgresRepo,
	authService *auth.Auth,
	usersService *users.Users,
	bookmarksService *bookmarks.Bookmarks,
	msgBroker *rabbitmq.RabbitMQClient,
) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	validate := validator.New()

	guard := authn.New(log, storage, tokenSecret)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", signup.New(log, validate, authService, msgBroker))
		r.Post("/signin", signin.New(log, validate, authService))
	})

	r.Route("/users", func(r chi.Router) {
		r.Use(guard)
		r.Get("/me", me.New(log))
		r.Patch("/edit", edituser.New(log, validate, usersService))
	})

	r.Route("/bookmarks", func(r chi.Router) {
		r.Use(guard)
		r.Post("/", bookmarkhandlers.Create(log, validate, bookmarksService))
		r.Get("/", bookmarkhandlers.List(log, bookmarksService))
		r.Get("/{id}", bookmarkhandlers.Get(log, bookmarksService))
		r.Patch("/{id}", bookmarkhandlers.Edit(log, validate, bookmarksService))
		r.Delete("/{id}", bookmarkhandlers.Delete(log, bookmarksService))
	})

	return r
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	}

	return log
}
