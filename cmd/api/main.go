package main

import (
	"SchoolMeal/internal/common"
	"SchoolMeal/internal/controller"
	"SchoolMeal/internal/env"
	"SchoolMeal/internal/history"
	"SchoolMeal/internal/neis"
	"SchoolMeal/internal/render"
	"SchoolMeal/internal/ui"
	"SchoolMeal/internal/v0/meals"
	"SchoolMeal/internal/view"
	"context"
	"database/sql"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/mattn/go-sqlite3"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/gin-gonic/gin"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}
	cfg := env.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}))
	slog.SetDefault(logger)

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Printf("Warning: unknown timezone %q, using local time: %v", cfg.Timezone, err)
		location = time.Local
	}

	// NEIS client
	client := neis.NewClient(neis.Config{
		BaseURL: cfg.NeisBaseURL,
		APIKey:  cfg.NeisAPIKey,
		Timeout: cfg.NeisTimeout,
		Metrics: neis.NewMetrics(prometheus.DefaultRegisterer),
		Logger:  logger,
	})

	// Selection history database
	historyDB, err := sql.Open("sqlite3", cfg.HistoryDBPath)
	if err != nil {
		log.Fatal(err)
	}
	defer historyDB.Close()

	historyRepo := history.NewRepository(historyDB)
	if err := historyRepo.EnableWAL(); err != nil {
		log.Printf("Warning: Failed to enable WAL mode: %v", err)
	}
	tracker := history.NewTracker(historyRepo, logger)
	tracker.Start(ctx)

	// Page sessions
	renderer := render.New()
	defaultSchool := neis.SchoolIdentity{
		Name:       cfg.DefaultSchoolName,
		SchoolCode: cfg.DefaultSchoolCode,
		OfficeCode: cfg.DefaultOfficeCode,
	}
	sessions := ui.NewSessionStore(cfg.SessionTTL, func(sessionCtx context.Context, v view.View) *controller.Controller {
		return controller.New(v, renderer, client, client, controller.Options{
			Default:          defaultSchool,
			Location:         location,
			Debounce:         cfg.SearchDebounce,
			PickFetchesMeals: cfg.PickFetchesMeals,
			Recorder:         tracker,
			Logger:           logger,
			Context:          sessionCtx,
		})
	}, logger)
	sessions.Start(ctx)

	router := gin.Default()

	// Global routes
	global := router.Group("/api")
	common.RegisterRoutes(global, common.NewHandler(sessions))

	// v0 API routes
	v0Group := router.Group("/api/v0")
	{
		meals.RegisterRoutes(v0Group, meals.NewHandler(client, client))
		history.RegisterRoutes(v0Group, history.NewHandler(historyRepo))
	}

	// Interactive page
	ui.RegisterRoutes(router.Group("/ui"), ui.NewHandler(sessions))
	ui.RegisterPage(router)

	common.RegisterMetrics(router)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Graceful shutdown handling
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Println("Shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Warning: server shutdown: %v", err)
		}
		sessions.Stop()
		tracker.Stop()
		cancel()
	}()

	logger.Info("listening", "addr", srv.Addr, "school", defaultSchool.Name)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
	<-stopped
}

func parseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

/*
This project is the school meal lookup service built on the OpenSourceDUTH API backend. It looks up daily cafeteria menus from the NEIS open data service.
API Copyright (C) 2025 OpenSourceDUTH
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU General Public License as published by
    the Free Software Foundation, either version 3 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU General Public License
    along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/
