package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	HTTPPort        string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration

	// Storage substrate: memory | file | redis | mongo | sql.
	StorageBackend string
	StorageDir     string
	RedisAddr      string
	RedisPassword  string
	MongoURI       string
	MongoDB        string
	SQLDriver      string // sqlite | postgres
	SQLDSN         string

	CartKey     string
	OrdersKey   string
	WishlistKey string

	// Simulated storage latency bounds; zero max disables the delay.
	LatencyMin time.Duration
	LatencyMax time.Duration

	// Catalog source: fixture | sqlite.
	CatalogBackend    string
	CatalogDBPath     string
	CatalogMigrations string

	TaxRate     float64
	ShippingFee float64
}

func Load() *Config {
	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		RequestTimeout:  getDuration("REQUEST_TIMEOUT", 30*time.Second),
		ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", 10*time.Second),

		StorageBackend: getEnv("STORAGE_BACKEND", "memory"),
		StorageDir:     getEnv("STORAGE_DIR", "./data"),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		MongoURI:       getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:        getEnv("MONGO_DB_NAME", "storefrontdb"),
		SQLDriver:      getEnv("SQL_DRIVER", "sqlite"),
		SQLDSN:         getEnv("SQL_DSN", "./data/storefront.db"),

		CartKey:     getEnv("CART_STORAGE_KEY", "marketpulse_cart"),
		OrdersKey:   getEnv("ORDERS_STORAGE_KEY", "marketpulse_orders"),
		WishlistKey: getEnv("WISHLIST_STORAGE_KEY", "marketpulse_wishlist"),

		LatencyMin: getDuration("STORAGE_LATENCY_MIN", 100*time.Millisecond),
		LatencyMax: getDuration("STORAGE_LATENCY_MAX", 500*time.Millisecond),

		CatalogBackend:    getEnv("CATALOG_BACKEND", "fixture"),
		CatalogDBPath:     getEnv("CATALOG_DB_PATH", "./data/catalog.db"),
		CatalogMigrations: getEnv("CATALOG_MIGRATIONS_PATH", "./migrations/catalog"),

		TaxRate:     getFloat("TAX_RATE", 0.08),
		ShippingFee: getFloat("SHIPPING_FEE", 10),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
