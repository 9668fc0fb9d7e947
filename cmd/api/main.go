package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Falmousl/Finance-Project/db"
	"github.com/Falmousl/Finance-Project/internal/auth"
	"github.com/Falmousl/Finance-Project/internal/config"
	"github.com/Falmousl/Finance-Project/internal/handler"
	"github.com/Falmousl/Finance-Project/internal/repository"
	"github.com/Falmousl/Finance-Project/internal/snapshot"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	configPath := os.Getenv("CONFIG_FILE")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		users     auth.UserStore
		watchlist handler.WatchlistStore
	)

	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		conn, err := db.Connect(cfg.Store.DatabaseURL)
		if err != nil {
			log.Fatalf("error connecting to DB: %v", err)
		}
		defer conn.Close()

		users = repository.NewUserRepository(conn)
		watchlist = repository.NewWatchlistRepository(conn)
	case config.StoreDriverSQLite:
		conn, err := db.OpenSQLite(cfg.Store.SQLitePath)
		if err != nil {
			log.Fatalf("error opening sqlite: %v", err)
		}

		store, err := repository.NewSQLiteStore(conn)
		if err != nil {
			log.Fatalf("error initializing sqlite store: %v", err)
		}
		defer store.Close()

		users, watchlist = store, store
	}
	slog.Info("store ready", "driver", cfg.Store.Driver)

	var sessions auth.SessionStore
	if cfg.Session.RedisURL != "" {
		client, err := db.ConnectRedis(ctx, cfg.Session.RedisURL)
		if err != nil {
			log.Fatalf("error connecting to redis: %v", err)
		}
		defer client.Close()

		sessions = repository.NewRedisSessionStore(client)
		slog.Info("sessions stored in redis")
	} else {
		memory := repository.NewMemorySessionStore()

		sweeper := cron.New()
		_, err := sweeper.AddFunc(cfg.Session.SweepCron, func() {
			if n := memory.Sweep(); n > 0 {
				slog.Info("swept expired sessions", "count", n)
			}
		})
		if err != nil {
			log.Fatalf("error scheduling session sweep: %v", err)
		}
		sweeper.Start()
		defer sweeper.Stop()

		sessions = memory
		slog.Info("sessions stored in memory", "sweep", cfg.Session.SweepCron)
	}

	assembler, err := snapshot.NewFromConfig(cfg)
	if err != nil {
		log.Fatalf("error configuring providers: %v", err)
	}
	slog.Info("providers configured",
		"market", cfg.Providers.Market, "news", cfg.Providers.News, "llm", cfg.Providers.LLM,
		"timeout", cfg.Providers.UpstreamTimeout.String())

	authService := auth.NewService(users, sessions, cfg.Session.TTL)

	authHandler := handler.NewAuthHandler(authService, handler.CookieConfig{
		Name:   cfg.Session.CookieName,
		TTL:    cfg.Session.TTL,
		Secure: cfg.Session.Secure,
	})
	snapshotHandler := handler.NewSnapshotHandler(assembler)
	watchlistHandler := handler.NewWatchlistHandler(watchlist)

	r := gin.Default()

	slog.Info("AllowOrigins URL:", "urls", cfg.Server.Origins)

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.Origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.POST("/snapshot", snapshotHandler.GetSnapshot)
	r.POST("/submit_investment_out", snapshotHandler.GetSnapshot)

	r.POST("/signup", authHandler.Signup)
	r.POST("/submit_signup", authHandler.Signup)
	r.POST("/login", authHandler.Login)
	r.POST("/submit_login", authHandler.Login)
	r.POST("/logout", authHandler.Logout)

	private := r.Group("/", authHandler.RequireSession())
	private.GET("/watchlist", watchlistHandler.GetWatchlist)
	private.POST("/watchlist", watchlistHandler.AddItem)
	private.POST("/submit_investment_in", watchlistHandler.AddItem)
	private.DELETE("/watchlist/:ticker", watchlistHandler.RemoveItem)
	private.POST("/delete_investment", watchlistHandler.RemoveItem)

	r.GET("/health", watchlistHandler.GetHealth)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 3*cfg.Providers.UpstreamTimeout + 10*time.Second,
	}

	go func() {
		slog.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("error starting server: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	slog.Info("shutdown signal received, stopping")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("error shutting down server", "error", err)
	}
}
