package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rogerio-castellano/sweet-shop/internal/auth"
	"github.com/rogerio-castellano/sweet-shop/internal/cache"
	"github.com/rogerio-castellano/sweet-shop/internal/config"
	"github.com/rogerio-castellano/sweet-shop/internal/db"
	api "github.com/rogerio-castellano/sweet-shop/internal/http"
	"github.com/rogerio-castellano/sweet-shop/internal/http/handlers"
	rl "github.com/rogerio-castellano/sweet-shop/internal/http/rate_limiter"
	"github.com/rogerio-castellano/sweet-shop/internal/repo"
)

// @title Sweet Shop Catalog API
// @version 1.0
// @description REST API for browsing, purchasing and managing sweets.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.LoadServer()
	if err != nil {
		log.Fatal("❌ Invalid configuration: ", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	auth.Configure(cfg.JWTSecret, cfg.JWTTTL)

	closeStorage, err := setupStorage(cfg)
	if err != nil {
		log.Fatal("❌ Could not set up storage: ", err)
	}
	defer closeStorage()

	closeCache, err := setupCache(cfg)
	if err != nil {
		log.Fatal("❌ Could not set up cache: ", err)
	}
	defer closeCache()

	limiter := rl.New(cfg.RateLimitRPS, cfg.RateLimitBurst)
	go limiter.StartCleanupLoop(ctx, time.Minute)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.NewRouter(api.RouterConfig{CORSOrigins: cfg.CORSOrigins, Limiter: limiter}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("⚠️ Shutdown error: %v", err)
		}
	}()

	log.Printf("✅ Server running on %s (storage=%s cache=%s)", cfg.Addr, cfg.StorageDriver, cfg.CacheDriver)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
	log.Println("👋 Server stopped")
}

func setupStorage(cfg config.Server) (func(), error) {
	var (
		database *sql.DB
		err      error
		users    repo.UserRepository
	)

	switch cfg.StorageDriver {
	case config.StoragePostgres:
		if database, err = db.Connect(cfg.DatabaseURL); err != nil {
			return nil, err
		}
		handlers.SetSweetRepo(repo.NewPostgresSweetRepository(database))
		users = repo.NewPostgresUserRepository(database)
	case config.StorageSQLite:
		if database, err = db.OpenSQLite(cfg.SQLitePath); err != nil {
			return nil, err
		}
		handlers.SetSweetRepo(repo.NewSQLiteSweetRepository(database))
		users = repo.NewSQLiteUserRepository(database)
	default:
		handlers.SetSweetRepo(repo.NewInMemorySweetRepository())
		users = repo.NewInMemoryUserRepository()
	}
	handlers.SetUserRepo(users)

	if err := auth.SeedAdmin(users, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		if database != nil {
			database.Close()
		}
		return nil, err
	}

	return func() {
		if database != nil {
			database.Close()
		}
	}, nil
}

func setupCache(cfg config.Server) (func(), error) {
	switch cfg.CacheDriver {
	case config.CacheRedis:
		rc, err := cache.NewRedisCache(cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, err
		}
		handlers.SetCache(rc, cfg.CacheTTL)
		return func() { rc.Close() }, nil
	case config.CacheMemory:
		handlers.SetCache(cache.NewMemoryCache(), cfg.CacheTTL)
	default:
		handlers.SetCache(nil, 0)
	}
	return func() {}, nil
}
