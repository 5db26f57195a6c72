package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/example/agrigrow/gateway"
	"github.com/example/agrigrow/pkg/config"
	"github.com/example/agrigrow/pkg/discovery"
	"github.com/example/agrigrow/pkg/events"
	"github.com/example/agrigrow/pkg/grpc"
	"github.com/example/agrigrow/pkg/logger"
	"github.com/example/agrigrow/pkg/repository"
	"github.com/example/agrigrow/pkg/service"
	"github.com/joho/godotenv"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to the YAML config file")
	envFile := flag.String("env", ".env", "optional dotenv file loaded before the config")
	flag.Parse()

	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(fmt.Sprintf("Failed to load %s: %v", *envFile, err))
	}

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Setup logger
	log, err := logger.New(cfg.Log)
	if err != nil {
		panic(fmt.Sprintf("Failed to create logger: %v", err))
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Error("Server stopped with error", zap.Error(err))
		os.Exit(1)
	}
	log.Info("Server stopped")
}

func run(cfg *config.Config, log *zap.Logger) (err error) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	log.Info("Starting AgriGrow API",
		zap.String("name", cfg.Server.Name),
		zap.Int("http_port", cfg.Gateway.Port),
		zap.Int("grpc_port", cfg.Server.Port))

	mongoRepo, err := repository.NewMongoRepository(&cfg.MongoDB)
	if err != nil {
		return fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	defer func() { err = multierr.Append(err, mongoRepo.Close(context.Background())) }()

	if err := mongoRepo.Ping(ctx); err != nil {
		return fmt.Errorf("mongodb ping failed: %w", err)
	}
	if err := mongoRepo.EnsureIndexes(ctx); err != nil {
		return err
	}
	log.Info("MongoDB connected", zap.String("database", cfg.MongoDB.Database))

	// The catalog and profile caches are optional: without Redis every read
	// goes to the stores.
	var (
		productCache service.ProductCache
		profileCache service.ProfileCache
	)
	redisRepo := repository.NewRedisRepository(&cfg.Redis)
	defer func() { err = multierr.Append(err, redisRepo.Close()) }()
	if err := redisRepo.Ping(ctx); err != nil {
		log.Warn("Redis connection failed, caching disabled", zap.Error(err))
	} else {
		productCache, profileCache = redisRepo, redisRepo
		log.Info("Redis connected successfully")
	}

	db, err := repository.OpenMySQL(&cfg.MySQL)
	if err != nil {
		return err
	}
	users := repository.NewUserRepository(db)
	defer func() { err = multierr.Append(err, users.Close()) }()
	if err := users.Migrate(); err != nil {
		return err
	}
	log.Info("MySQL connected", zap.String("database", cfg.MySQL.Database))

	dispatcher, err := events.NewDispatcher(mongoRepo, events.LogNotifier{Logger: log.Named("notifier")}, log.Named("events"))
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, dispatcher.Close()) }()

	database := mongoRepo.Database()
	products := repository.NewProductRepository(database)
	addresses := service.NewAddressService(repository.NewAddressRepository(database), log.Named("addresses"))
	services := gateway.Services{
		Auth:      service.NewAuthService(users, profileCache, cfg.Auth, log.Named("auth")),
		Catalog:   service.NewCatalogService(products, productCache, log.Named("catalog")),
		Cart:      service.NewCartService(repository.NewCartRepository(database), products, log.Named("cart")),
		Wishlist:  service.NewWishlistService(repository.NewWishlistRepository(database), products, log.Named("wishlist")),
		Addresses: addresses,
		Orders:    service.NewOrderService(repository.NewOrderRepository(database), products, addresses, dispatcher, log.Named("orders")),
		Payments:  service.NewPaymentService(repository.NewLedgerRepository(database), dispatcher, log.Named("payments")),
		Audit:     mongoRepo,
	}

	gw := gateway.NewGateway(cfg, log.Named("gateway"), services)
	gw.SetupRoutes()

	healthServer := grpc.NewHealthServer(cfg, log.Named("health"),
		grpc.Probe{Name: "mongodb", Pinger: mongoRepo, Required: true},
		grpc.Probe{Name: "redis", Pinger: redisRepo},
		grpc.Probe{Name: "mysql", Pinger: users},
	)
	go healthServer.Watch(ctx)

	// Start servers in goroutines
	serverErr := make(chan error, 2)
	go func() {
		if err := gw.Start(); err != nil {
			serverErr <- err
		}
	}()
	go func() {
		if err := healthServer.Start(); err != nil {
			serverErr <- err
		}
	}()

	if cfg.Etcd.Enabled {
		sd, sdErr := discovery.NewServiceDiscovery(&cfg.Etcd, log.Named("discovery"))
		if sdErr != nil {
			log.Warn("Failed to connect to etcd, continuing without service discovery", zap.Error(sdErr))
		} else {
			instance := &discovery.ServiceInstance{Name: cfg.Server.Name, Host: cfg.Gateway.Host, Port: cfg.Gateway.Port}
			if err := sd.Register(ctx, instance); err != nil {
				log.Warn("Failed to register service", zap.Error(err))
			}
			defer func() {
				err = multierr.Append(err, sd.Deregister(context.Background(), instance))
				err = multierr.Append(err, sd.Close())
			}()
		}
	}

	log.Info("AgriGrow API started successfully")

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("Received shutdown signal", zap.String("signal", sig.String()))
	case err = <-serverErr:
		log.Error("Server error", zap.Error(err))
	}

	cancel()
	healthServer.Stop()
	return multierr.Append(err, gw.Shutdown(context.Background()))
}
