package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"go-users/database"
	"go-users/internal/config"
	handlers "go-users/internal/handlers/users"
	"go-users/internal/logging"
	"go-users/internal/router"
	"go-users/internal/stores"
	"go-users/internal/token"
	"go-users/internal/user"
	"go-users/internal/validation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	logger := logging.New(cfg.LogLevel, os.Stdout)
	logger.Info("config loaded", "config", cfg.String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.ConnectDB(ctx, cfg.DSN(), logger)
	if err != nil {
		log.Fatalf("Database connection error: %v", err)
	}

	if err := database.ProcessMigrations(db); err != nil {
		log.Fatalf("Migration error: %v", err)
	}

	userStore := &stores.GormUserStore{DB: db}
	roleStore := &stores.GormRoleStore{DB: db}
	revokedStore := &stores.GormRevokedTokenStore{DB: db}

	if err := roleStore.EnsureRoles(ctx, cfg.SeedRoles...); err != nil {
		log.Fatalf("Role seeding error: %v", err)
	}

	tokenService := &token.JWTService{Secret: []byte(cfg.JWTSecret)}

	h := handlers.NewUserHandler(
		userStore,
		roleStore,
		revokedStore,
		user.NewBcryptHasher(cfg.BcryptCost),
		tokenService,
		validation.New(),
		cfg.AccessTokenTTL,
		logger,
	)

	gin.SetMode(gin.ReleaseMode)
	r := router.NewRouter(h, tokenService, revokedStore, logger, router.Options{
		AdminRole:   cfg.AdminRole,
		CORSOrigins: cfg.CORSOrigins,
	})

	go stores.PurgeLoop(ctx, revokedStore, cfg.RevocationPurgeInterval, logger)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "err", err)
	}
}
