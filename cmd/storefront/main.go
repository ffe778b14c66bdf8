package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	_ "modernc.org/sqlite"

	"github.com/apper-canvas/quantum-marketpulse-ecommerce/internal/cart"
	"github.com/apper-canvas/quantum-marketpulse-ecommerce/internal/catalog"
	"github.com/apper-canvas/quantum-marketpulse-ecommerce/internal/checkout"
	"github.com/apper-canvas/quantum-marketpulse-ecommerce/internal/config"
	storefronthttp "github.com/apper-canvas/quantum-marketpulse-ecommerce/internal/http"
	"github.com/apper-canvas/quantum-marketpulse-ecommerce/internal/order"
	"github.com/apper-canvas/quantum-marketpulse-ecommerce/internal/storage"
	"github.com/apper-canvas/quantum-marketpulse-ecommerce/internal/wishlist"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	store, cleanup, err := buildStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to set up storage backend %q: %v", cfg.StorageBackend, err)
	}
	defer cleanup()
	log.Printf("Using %s storage backend", cfg.StorageBackend)

	store = storage.WithLatency(store, cfg.LatencyMin, cfg.LatencyMax)

	cat, catalogCleanup, err := buildCatalog(cfg)
	if err != nil {
		log.Fatalf("Failed to set up catalog backend %q: %v", cfg.CatalogBackend, err)
	}
	defer catalogCleanup()
	log.Printf("Using %s catalog backend", cfg.CatalogBackend)

	seed, err := order.SeedOrders()
	if err != nil {
		log.Fatalf("Failed to load order fixtures: %v", err)
	}

	cartSvc := cart.NewService(store, cat, cfg.CartKey)
	wishlistSvc := wishlist.NewService(store, cfg.WishlistKey)
	orderSvc := order.NewService(store, cfg.OrdersKey, seed)
	sessions := checkout.NewManager(cartSvc, orderSvc, checkout.Pricing{
		TaxRate:     cfg.TaxRate,
		ShippingFee: cfg.ShippingFee,
	})

	router := storefronthttp.NewRouter(cat, cartSvc, wishlistSvc, orderSvc, sessions, cfg.RequestTimeout)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(router, "storefront"),
		ReadTimeout:  cfg.RequestTimeout,
		WriteTimeout: cfg.RequestTimeout,
	}

	go func() {
		log.Printf("Storefront API listening on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}
	log.Println("server exited")
}

func buildStore(ctx context.Context, cfg *config.Config) (storage.KeyedStore, func(), error) {
	noop := func() {}

	switch cfg.StorageBackend {
	case "memory":
		return storage.NewMemoryStore(), noop, nil

	case "file":
		store, err := storage.NewFileStore(cfg.StorageDir)
		return store, noop, err

	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       0,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, noop, fmt.Errorf("redis connection failed: %w", err)
		}
		return storage.NewRedisStore(client), func() { client.Close() }, nil

	case "mongo":
		db, err := storage.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, noop, err
		}
		cleanup := func() { db.Client().Disconnect(context.Background()) }
		return storage.NewMongoStore(db, "storefront_kv"), cleanup, nil

	case "sql":
		store, err := storage.NewSQLStore(cfg.SQLDriver, cfg.SQLDSN)
		if err != nil {
			return nil, noop, err
		}
		return store, func() { store.Close() }, nil

	default:
		return nil, noop, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

func buildCatalog(cfg *config.Config) (catalog.Catalog, func(), error) {
	noop := func() {}

	switch cfg.CatalogBackend {
	case "fixture":
		cat, err := catalog.NewFixtureCatalog()
		return cat, noop, err

	case "sqlite":
		cat, err := catalog.NewSQLiteCatalog(cfg.CatalogDBPath)
		if err != nil {
			return nil, noop, err
		}
		if err := cat.RunMigrations(cfg.CatalogMigrations); err != nil {
			return nil, noop, err
		}
		return cat, func() { cat.Close() }, nil

	default:
		return nil, noop, fmt.Errorf("unknown catalog backend %q", cfg.CatalogBackend)
	}
}
