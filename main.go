package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	appaddress "github.com/cartella-shop/fulfillment/internal/application/address"
	appcart "github.com/cartella-shop/fulfillment/internal/application/cart"
	appcheckout "github.com/cartella-shop/fulfillment/internal/application/checkout"
	appnotification "github.com/cartella-shop/fulfillment/internal/application/notification"
	apppayment "github.com/cartella-shop/fulfillment/internal/application/payment"
	domaddress "github.com/cartella-shop/fulfillment/internal/domain/address"
	domcart "github.com/cartella-shop/fulfillment/internal/domain/cart"
	domnotification "github.com/cartella-shop/fulfillment/internal/domain/notification"
	domorder "github.com/cartella-shop/fulfillment/internal/domain/order"
	dompayment "github.com/cartella-shop/fulfillment/internal/domain/payment"
	domproduct "github.com/cartella-shop/fulfillment/internal/domain/product"
	"github.com/cartella-shop/fulfillment/internal/infrastructure/id"
	"github.com/cartella-shop/fulfillment/internal/infrastructure/memory"
	"github.com/cartella-shop/fulfillment/internal/infrastructure/outbox"
	"github.com/cartella-shop/fulfillment/internal/infrastructure/postgres"
	"github.com/cartella-shop/fulfillment/internal/infrastructure/stripe"
	"github.com/cartella-shop/fulfillment/internal/pkg/cache"
	"github.com/cartella-shop/fulfillment/internal/pkg/logging"
	httppresentation "github.com/cartella-shop/fulfillment/internal/presentation/http"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type repositories struct {
	tx            appcheckout.TxManager
	products      domproduct.Repository
	addresses     domaddress.Repository
	carts         domcart.Repository
	orders        domorder.Repository
	payments      dompayment.Repository
	notifications domnotification.Repository
}

func main() {
	_ = godotenv.Load()

	serviceName := getenvDefault("SERVICE_NAME", "fulfillment")
	env := getenvDefault("ENV", "dev")
	logger := logging.MustNewLogger(serviceName, env)
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, pool := buildRepositories(ctx, logger)
	if pool != nil {
		defer pool.Close()
	}

	var vendorCache cache.Cache = cache.NewNopCache()
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		vendorCache = cache.NewRedisCache(addr, serviceName)
		logger.Info("cache_enabled", zap.String("addr", addr))
	}

	provider := stripe.NewClient(
		getenvDefault("STRIPE_BASE_URL", "https://api.stripe.com"),
		os.Getenv("STRIPE_API_KEY"),
	)

	bus := outbox.NewBus(logger)
	bus.Start(ctx)
	defer bus.Stop(context.Background())

	idGenerator := id.NewUUIDGenerator()

	cartService := appcart.NewService(repos.carts, repos.products, idGenerator)
	addressService := appaddress.NewService(repos.addresses, idGenerator)
	paymentService := apppayment.NewService(repos.payments, provider, idGenerator)
	notificationService := appnotification.NewService(repos.notifications, idGenerator)
	checkoutService := appcheckout.NewService(
		repos.tx,
		repos.carts,
		repos.products,
		repos.addresses,
		repos.orders,
		repos.payments,
		bus,
		idGenerator,
		vendorCache,
	)

	notificationWorker := appnotification.NewWorker(bus, notificationService)
	notificationWorker.Start()

	handler := httppresentation.NewHandler(
		cartService,
		addressService,
		checkoutService,
		paymentService,
		notificationService,
		logger,
	)

	server := &http.Server{
		Addr:    ":" + getenvDefault("PORT", "8080"),
		Handler: handler.Router(),
	}

	go func() {
		logger.Info("http_server_start", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http_server_error", zap.Error(err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("http_server_shutdown_error", zap.Error(err))
	} else {
		logger.Info("http_server_stopped")
	}
}

// buildRepositories selects the persistence backend: postgres when
// DATABASE_URL is set, in-memory stores otherwise. The in-memory variant is
// for local development and serializes writes instead of using transactions.
func buildRepositories(ctx context.Context, logger *zap.Logger) (repositories, *pgxpool.Pool) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		logger.Info("storage_backend", zap.String("backend", "memory"))
		products := memory.NewProductRepository()
		return repositories{
			tx:            memory.NewTxManager(),
			products:      products,
			addresses:     memory.NewAddressRepository(),
			carts:         memory.NewCartRepository(),
			orders:        memory.NewOrderRepository(products),
			payments:      memory.NewPaymentRepository(),
			notifications: memory.NewNotificationRepository(),
		}, nil
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		logger.Fatal("postgres_connect_failed", zap.Error(err))
	}
	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("postgres_ping_failed", zap.Error(err))
	}
	logger.Info("storage_backend", zap.String("backend", "postgres"))

	return repositories{
		tx:            postgres.NewTxManager(pool),
		products:      postgres.NewProductRepository(pool),
		addresses:     postgres.NewAddressRepository(pool),
		carts:         postgres.NewCartRepository(pool),
		orders:        postgres.NewOrderRepository(pool),
		payments:      postgres.NewPaymentRepository(pool),
		notifications: postgres.NewNotificationRepository(pool),
	}, pool
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
