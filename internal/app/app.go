package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/DRSN-tech/storefront/internal/cfg"
	v1Http "github.com/DRSN-tech/storefront/internal/delivery/v1/http"
	"github.com/DRSN-tech/storefront/internal/infrastructure/catalog"
	"github.com/DRSN-tech/storefront/internal/infrastructure/kafka"
	"github.com/DRSN-tech/storefront/internal/repository/memory"
	"github.com/DRSN-tech/storefront/internal/repository/pgdb"
	"github.com/DRSN-tech/storefront/internal/repository/redis"
	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/pkg/clients"
	"github.com/DRSN-tech/storefront/pkg/closer"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/DRSN-tech/storefront/pkg/postgres"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

const (
	startupTimeout     = 10 * time.Second
	topicEnsureTimeout = 10 * time.Second
)

// App - собранное приложение магазина: HTTP-сервер и его зависимости.
type App struct {
	cfg      *config.Config
	logger   logger.Logger
	server   *v1Http.Server
	checkout *usecase.CheckoutUseCase
	closer   *closer.Closer
}

// NewApp поднимает хранилище посетителей, необязательные журнал заказов и публикацию событий,
// и собирает HTTP-слой. При ошибке уже открытые ресурсы закрываются.
func NewApp(cfg *config.Config, log logger.Logger) (app *App, err error) {
	cl := closer.NewCloser(0)
	defer func() {
		if err != nil {
			ctx, cancel := context.WithTimeout(context.Background(), cfg.Http.ShutdownTimeout)
			defer cancel()
			if closeErr := cl.Close(ctx); closeErr != nil {
				log.Warnf("Failed to release resources after init error: %v", closeErr)
			}
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	storage, err := initLocalStorage(ctx, cfg, log, cl)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	orderRepo, err := initOrderJournal(ctx, cfg, log, cl)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	producer, err := initOrderEvents(cfg, log, cl)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	catalogClient := catalog.NewClient(nil, cfg.Catalog, log)
	catalogUC := usecase.NewCatalogUC(catalogClient, log)
	cartStore := usecase.NewCartStore(storage, log)
	checkoutUC := usecase.NewCheckoutUC(cartStore, orderRepo, producer, log)

	r := chi.NewRouter()
	router := v1Http.NewRouter(r, log, cfg.Http)
	if err := router.Init(catalogUC, cartStore, checkoutUC); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &App{
		cfg:      cfg,
		logger:   log,
		server:   v1Http.NewServer(r, cfg.Http),
		checkout: checkoutUC,
		closer:   cl,
	}, nil
}

// Run запускает HTTP-сервер и блокируется до сигнала завершения или фатальной ошибки сервера.
func (a *App) Run() error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Infof("HTTP server started on port %s", a.cfg.Http.Port)
		if err := a.server.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// === Ожидание сигнала или ошибки ===
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	var appErr error
	select {
	case appErr = <-errCh:
		a.logger.Errorf(appErr, "HTTP server fatal error")
	case <-shutdown:
		a.logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	// === Graceful shutdown ===
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Http.ShutdownTimeout)
	defer cancel()

	if err := a.server.Stop(shutdownCtx); err != nil {
		a.logger.Errorf(err, "HTTP server shutdown error")
	} else {
		a.logger.Infof("HTTP server stopped")
	}

	// события уже оформленных заказов дописываются до закрытия продюсера
	if err := a.checkout.WaitForPublishing(shutdownCtx); err != nil {
		a.logger.Warnf("Order events were not fully published: %v", err)
	}

	if err := a.closer.Close(shutdownCtx); err != nil {
		a.logger.Warnf("%v", err)
	}

	a.logger.Infof("Application shutdown complete")
	return appErr
}

// initLocalStorage выбирает хранилище посетителей по STORAGE_DRIVER.
func initLocalStorage(ctx context.Context, cfg *config.Config, log logger.Logger, cl *closer.Closer) (usecase.LocalStorage, error) {
	if cfg.Storage.Driver == config.StorageDriverMemory {
		log.Warnf("Using in-memory visitor storage, carts are lost on restart")
		return memory.NewLocalStorageRepo(), nil
	}

	redisClient := clients.NewRedisClient(cfg.Redis)
	cl.Add("redis", redisClient.Close)

	if err := redisClient.Ping(ctx); err != nil {
		log.Errorf(err, "failed to connect to redis")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return redis.NewLocalStorageRepo(redisClient, cfg.Storage, log), nil
}

// initOrderJournal подключает журнал заказов, если он включён.
// Для выключенного журнала возвращается nil-интерфейс.
func initOrderJournal(ctx context.Context, cfg *config.Config, log logger.Logger, cl *closer.Closer) (usecase.OrderRepository, error) {
	if !cfg.Db.Enabled {
		log.Infof("Order journal disabled: POSTGRES_DB is not set")
		return nil, nil
	}

	db, err := postgres.Connect(ctx, cfg.Db)
	if err != nil {
		log.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	cl.Add("postgres", db.Close)

	if err := db.RunMigrations(log); err != nil {
		log.Errorf(err, "failed to run migrations")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return pgdb.NewOrderRepo(db.Pool), nil
}

// initOrderEvents подключает публикацию событий о заказах, если заданы брокеры.
func initOrderEvents(cfg *config.Config, log logger.Logger, cl *closer.Closer) (usecase.OrderEventProducer, error) {
	if !cfg.Kafka.Enabled {
		log.Infof("Order events disabled: KAFKA_BROKERS is not set")
		return nil, nil
	}

	producer, err := kafka.NewProducer(log, cfg.Kafka)
	if err != nil {
		log.Errorf(err, "failed to initialize kafka producer")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	cl.Add("kafka", producer.Close)

	if err := producer.EnsureTopic(topicEnsureTimeout); err != nil {
		// брокер может подняться позже, запись повторяется при публикации
		log.Warnf("Failed to ensure topic %s: %v", cfg.Kafka.Topic, err)
	}

	return producer, nil
}
