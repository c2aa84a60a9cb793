// Package config provides runtime configuration values for the service.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds configuration knobs for the HTTP server and backing stores.
type Config struct {
	HTTPAddr          string
	MySQLDSN          string
	RedisAddr         string
	RedisPoolSize     int
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration
	TokenSecret       string
	TokenTTL          time.Duration
	ShutdownTimeout   time.Duration
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoienv(key string, def int) int {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func durenvs(key string, defSec int) time.Duration {
	sec := atoienv(key, defSec)
	return time.Duration(sec) * time.Second
}

// Load collects configuration from environment with defaults.
func Load() Config {
	return Config{
		HTTPAddr:          getenv("HTTP_ADDR", ":8080"),
		MySQLDSN:          getenv("MYSQL_DSN", "root:root@tcp(localhost:3306)/grocery?parseTime=true"),
		RedisAddr:         getenv("REDIS_ADDR", "localhost:6379"),
		RedisPoolSize:     atoienv("REDIS_POOL_SIZE", 100),
		DBMaxOpenConns:    atoienv("DB_MAX_OPEN_CONNS", 50),
		DBMaxIdleConns:    atoienv("DB_MAX_IDLE_CONNS", 25),
		DBConnMaxLifetime: durenvs("DB_CONN_MAX_LIFETIME", 300),
		TokenSecret:       getenv("TOKEN_SECRET", "dev-only-secret"),
		TokenTTL:          durenvs("TOKEN_TTL", 86400),
		ShutdownTimeout:   durenvs("SHUTDOWN_TIMEOUT", 5),
	}
}
