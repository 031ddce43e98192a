package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/config"
	appHTTP "github.com/cmlabs-hris/hris-dashboard-go/internal/handler/http"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/logger"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/storage"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/repository/memory"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}
	if err := cfg.ValidateStub(); err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	log := logger.New(os.Stdout, logger.Options{
		Level:   cfg.App.LogLevel,
		Format:  cfg.App.LogFormat,
		App:     "hrstub",
		Version: cfg.App.Version,
		Env:     cfg.App.Env,
	})

	JWTService := jwt.NewJWTService(cfg.Stub.JWTSecret, cfg.Stub.AccessExpiration)

	db := memory.NewDB()
	seeded, err := db.Seed(context.Background(), memory.DefaultSeed())
	if err != nil {
		log.Error("Failed to seed stub data", "error", err)
		os.Exit(1)
	}
	log.Info("Seeded stub data",
		"admin_user_id", seeded.AdminUserID,
		"hr_id", seeded.HRID,
		"employee_id", seeded.EmployeeID,
	)

	files, err := storage.NewLocalStorage(filepath.Join(cfg.Export.Dir, "uploads"))
	if err != nil {
		log.Error("Failed to initialize file storage", "error", err)
		os.Exit(1)
	}

	router := appHTTP.NewStubRouter(db, JWTService, files, appHTTP.RouterOptions{
		AllowedOrigins: cfg.Stub.AllowedOrigins,
		Logger:         log,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Stub.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info(fmt.Sprintf("Server running at http://localhost%s", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed", "error", err)
	}
}
