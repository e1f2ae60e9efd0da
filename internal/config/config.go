// Package config loads service and client settings from the environment.
// A .env file in the working directory is read first when present.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"

	CacheNone   = "none"
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// Server holds the catalog service settings.
type Server struct {
	Addr string

	StorageDriver string
	DatabaseURL   string
	SQLitePath    string

	CacheDriver   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	JWTSecret string
	JWTTTL    time.Duration

	RateLimitRPS   float64
	RateLimitBurst int

	CORSOrigins []string

	AdminUsername string
	AdminPassword string
}

// Client holds the shop CLI settings.
type Client struct {
	APIURL  string
	Token   string
	Timeout time.Duration
}

func newViper() *viper.Viper {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

// LoadServer reads the service configuration and validates driver choices.
func LoadServer() (Server, error) {
	v := newViper()
	v.SetDefault("SERVER_ADDR", ":8080")
	v.SetDefault("STORAGE_DRIVER", StorageMemory)
	v.SetDefault("SQLITE_PATH", "sweetshop.db")
	v.SetDefault("CACHE_DRIVER", CacheMemory)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_TTL", "30s")
	v.SetDefault("JWT_TTL", "1h")
	v.SetDefault("RATE_LIMIT_RPS", 10)
	v.SetDefault("RATE_LIMIT_BURST", 20)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("ADMIN_USERNAME", "admin")

	cfg := Server{
		Addr:           v.GetString("SERVER_ADDR"),
		StorageDriver:  strings.ToLower(v.GetString("STORAGE_DRIVER")),
		DatabaseURL:    v.GetString("DATABASE_URL"),
		SQLitePath:     v.GetString("SQLITE_PATH"),
		CacheDriver:    strings.ToLower(v.GetString("CACHE_DRIVER")),
		RedisAddr:      v.GetString("REDIS_ADDR"),
		RedisPassword:  v.GetString("REDIS_PASSWORD"),
		RedisDB:        v.GetInt("REDIS_DB"),
		CacheTTL:       v.GetDuration("CACHE_TTL"),
		JWTSecret:      v.GetString("JWT_SECRET"),
		JWTTTL:         v.GetDuration("JWT_TTL"),
		RateLimitRPS:   v.GetFloat64("RATE_LIMIT_RPS"),
		RateLimitBurst: v.GetInt("RATE_LIMIT_BURST"),
		CORSOrigins:    splitList(v.GetString("CORS_ORIGINS")),
		AdminUsername:  v.GetString("ADMIN_USERNAME"),
		AdminPassword:  v.GetString("ADMIN_PASSWORD"),
	}

	switch cfg.StorageDriver {
	case StorageMemory, StorageSQLite:
	case StoragePostgres:
		if cfg.DatabaseURL == "" {
			return Server{}, fmt.Errorf("DATABASE_URL is required for the %s storage driver", StoragePostgres)
		}
	default:
		return Server{}, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}

	switch cfg.CacheDriver {
	case CacheNone, CacheMemory, CacheRedis:
	default:
		return Server{}, fmt.Errorf("unknown CACHE_DRIVER %q", cfg.CacheDriver)
	}

	if cfg.JWTSecret == "" {
		return Server{}, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.JWTTTL <= 0 {
		return Server{}, fmt.Errorf("JWT_TTL must be positive")
	}

	return cfg, nil
}

// LoadClient reads the CLI configuration.
func LoadClient() (Client, error) {
	v := newViper()
	v.SetDefault("SHOP_API_URL", "http://localhost:8080")
	v.SetDefault("SHOP_TIMEOUT", "10s")

	cfg := Client{
		APIURL:  strings.TrimRight(v.GetString("SHOP_API_URL"), "/"),
		Token:   v.GetString("SHOP_TOKEN"),
		Timeout: v.GetDuration("SHOP_TIMEOUT"),
	}
	if cfg.APIURL == "" {
		return Client{}, fmt.Errorf("SHOP_API_URL is required")
	}
	if cfg.Timeout <= 0 {
		return Client{}, fmt.Errorf("SHOP_TIMEOUT must be positive")
	}
	return cfg, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
