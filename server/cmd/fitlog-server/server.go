package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"

	"github.com/fitlog/fitlog/server/internal/handlers"
	appmiddleware "github.com/fitlog/fitlog/server/internal/middleware"
	"github.com/fitlog/fitlog/server/internal/repository"
	"github.com/fitlog/fitlog/server/internal/services"
	"github.com/fitlog/fitlog/server/migrations"
)

const (
	defaultReadTimeout     = 10 * time.Second
	defaultWriteTimeout    = 10 * time.Second
	defaultIdleTimeout     = 30 * time.Second
	defaultShutdownTimeout = 5 * time.Second
)

// dependencies - собранные зависимости сервера.
type dependencies struct {
	db             *sqlx.DB
	authService    services.AuthService
	authHandler    *handlers.AuthHandler
	workoutHandler *handlers.WorkoutHandler
}

// newDependencies собирает репозитории, сервисы и обработчики поверх открытой БД.
func newDependencies(db *sqlx.DB, cfg *config) *dependencies {
	userRepo := repository.NewPostgresUserRepository(db)
	workoutRepo := repository.NewPostgresWorkoutRepository(db)

	authService := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	workoutService := services.NewWorkoutService(workoutRepo)

	return &dependencies{
		db:          db,
		authService: authService,
		authHandler: handlers.NewAuthHandler(authService, handlers.CookieOptions{
			Secure: cfg.TLSEnabled(),
			TTL:    cfg.TokenTTL,
		}),
		workoutHandler: handlers.NewWorkoutHandler(workoutService),
	}
}

// setupRouter настраивает роутер chi.
func setupRouter(deps *dependencies) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("pong\n"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(appmiddleware.Session(deps.authService))

		r.Post("/register", deps.authHandler.Register)
		r.Post("/login", deps.authHandler.Login)
		r.Post("/logout", deps.authHandler.Logout)
		r.Get("/current_user", deps.authHandler.CurrentUser)

		r.Group(func(r chi.Router) {
			r.Use(appmiddleware.RequireUser)
			r.Get("/workouts", deps.workoutHandler.List)
			r.Post("/workouts", deps.workoutHandler.Create)
		})
	})
	return r
}

// run поднимает сервер и ждет отмены ctx для graceful shutdown.
func run(ctx context.Context, cfg *config) error {
	log.Println("Запуск сервера FitLog...")

	if cfg.AutoMigrate {
		if err := migrations.Up(cfg.DatabaseDSN); err != nil {
			return err
		}
	}

	db, err := repository.NewPostgresDB(cfg.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("ошибка инициализации БД: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			log.Printf("Ошибка закрытия соединения с БД: %v", closeErr)
		}
	}()

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      setupRouter(newDependencies(db, cfg)),
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
		IdleTimeout:  defaultIdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		if cfg.TLSEnabled() {
			log.Printf("Запуск HTTPS-сервера на порту %s (сертификат %s)", cfg.Port, cfg.CertFile)
			errCh <- server.ListenAndServeTLS(cfg.CertFile, cfg.KeyFile)
			return
		}
		log.Printf("Запуск HTTP-сервера на порту %s", cfg.Port)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err = <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("ошибка запуска сервера: %w", err)
	case <-ctx.Done():
	}

	log.Println("Остановка сервера...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
	defer cancel()
	if err = server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("ошибка остановки сервера: %w", err)
	}
	return nil
}
