package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/DRSN-tech/order-backoffice/internal/cfg"
	v1Grpc "github.com/DRSN-tech/order-backoffice/internal/delivery/v1/grpc"
	v1Http "github.com/DRSN-tech/order-backoffice/internal/delivery/v1/http"
	"github.com/DRSN-tech/order-backoffice/internal/infrastructure/kafka"
	"github.com/DRSN-tech/order-backoffice/internal/repository/pgdb"
	pgdbConv "github.com/DRSN-tech/order-backoffice/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/order-backoffice/internal/repository/redis"
	redisConv "github.com/DRSN-tech/order-backoffice/internal/repository/redis/converter"
	"github.com/DRSN-tech/order-backoffice/internal/usecase"
	"github.com/DRSN-tech/order-backoffice/pkg/clients"
	"github.com/DRSN-tech/order-backoffice/pkg/closer"
	"github.com/DRSN-tech/order-backoffice/pkg/e"
	"github.com/DRSN-tech/order-backoffice/pkg/logger"
	"github.com/DRSN-tech/order-backoffice/pkg/postgres"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jimlawless/whereami"
)

// App собирает зависимости сервиса и управляет его жизненным циклом.
type App struct {
	cfg    *config.Config
	logger logger.Logger
	closer *closer.Closer

	httpSrv      *v1Http.Server
	grpcSrv      *v1Grpc.GRPCServer
	outboxWorker *kafka.OutboxWorker
}

func NewApp(cfg *config.Config, log logger.Logger) (*App, error) {
	a := &App{
		cfg:    cfg,
		logger: log,
		closer: closer.NewCloser(0),
	}

	if err := a.init(); err != nil {
		// закрываем то, что успели поднять
		ctx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
		defer cancel()
		if cErr := a.closer.Close(ctx); cErr != nil {
			log.Errorf(cErr, "failed to release resources after init error")
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return a, nil
}

func (a *App) init() error {
	db, err := initPGDB(a.logger, a.cfg)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	a.closer.AddSimple("postgres", db.Close)

	redisClient := clients.NewRedisClient(a.cfg.Redis)
	a.closer.Add("redis", redisClient.Close)

	redisCtx, redisCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer redisCancel()
	if err := redisClient.Ping(redisCtx); err != nil {
		a.logger.Errorf(err, "failed to connect to redis")
		return e.Wrap(whereami.WhereAmI(), err)
	}

	productRepo := pgdb.NewProductRepo(db.Pool, pgdbConv.ProductConverter{}, a.cfg.Order.OptionsMinStock)
	orderRepo := pgdb.NewOrderRepo(db.Pool, pgdbConv.OrderConverter{})
	paymentMethodRepo := pgdb.NewPaymentMethodRepo(db.Pool, pgdbConv.PaymentMethodConverter{})
	outboxRepo := pgdb.NewOutboxEventRepo(db.Pool, pgdbConv.OutboxEventConverter{})
	txManager := pgdb.NewTxManager(db.Pool)
	draftRepo := redis.NewDraftRepo(redisClient, redisConv.DraftConverter{}, a.cfg.Redis, a.logger)

	producer, err := kafka.NewProducer(a.logger, a.cfg.Kafka)
	if err != nil {
		a.logger.Errorf(err, "failed to initialize kafka producer")
		return e.Wrap(whereami.WhereAmI(), err)
	}
	a.closer.Add("kafka producer", producer.Close)

	if err := producer.EnsureTopic(10 * time.Second); err != nil {
		// топик мог быть создан заранее, продюсер всё равно попробует писать
		a.logger.Warnf("failed to ensure kafka topic %s: %v", a.cfg.Kafka.Topic, err)
	}

	a.outboxWorker = kafka.NewOutboxWorker(outboxRepo, a.logger, producer, db.ConnString(), a.cfg.Kafka.OutboxBatchSize)

	orderUC := usecase.NewOrderUC(
		draftRepo,
		orderRepo,
		paymentMethodRepo,
		outboxRepo,
		productRepo,
		txManager,
		a.cfg.Order,
		a.logger,
	)

	a.grpcSrv = v1Grpc.NewGRPCServer(a.cfg.Grpc, a.logger)
	a.grpcSrv.RegisterServices()

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recoverer)
	router := v1Http.NewRouter(r, a.logger)
	router.Init(orderUC, a.cfg.Http.SwaggerURL)

	a.httpSrv = v1Http.NewServer(r, a.cfg.Http)

	return nil
}

// Run запускает серверы и воркер outbox и блокируется до сигнала остановки или фатальной ошибки.
func (a *App) Run() error {
	a.outboxWorker.Start(context.Background())
	a.closer.Add("outbox worker", a.outboxWorker.Stop)

	grpcErrCh := make(chan error, 1)
	go func() {
		a.logger.Infof("gRPC server starting on %s:%s", a.cfg.Grpc.NetworkMode, a.cfg.Grpc.Port)
		if err := a.grpcSrv.Start(); err != nil {
			grpcErrCh <- err
		}
	}()
	a.closer.Add("grpc server", a.grpcSrv.Stop)

	httpErrCh := make(chan error, 1)
	go func() {
		a.logger.Infof("HTTP server started on port %s", a.cfg.Http.Port)
		if err := a.httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			httpErrCh <- err
		}
	}()
	a.closer.Add("http server", a.httpSrv.Stop)

	// === Ожидание сигнала или ошибки ===
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	var appErr error
	select {
	case appErr = <-httpErrCh:
		a.logger.Errorf(appErr, "HTTP server fatal error")
	case appErr = <-grpcErrCh:
		a.logger.Errorf(appErr, "gRPC server fatal error")
	case <-shutdown:
		a.logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	// === Graceful shutdown ===
	// HTTP и gRPC закрываются первыми, затем воркер, продюсер, Redis и PostgreSQL
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.App.ShutdownTimeout)
	defer cancel()

	if err := a.closer.Close(shutdownCtx); err != nil {
		a.logger.Errorf(err, "shutdown completed with errors")
		if appErr == nil {
			appErr = err
		}
	}

	a.logger.Infof("Application shutdown complete")
	return appErr
}

func initPGDB(logger logger.Logger, cfg *config.Config) (*postgres.PgDatabase, error) {
	db, err := postgres.Connect(cfg.Db)
	if err != nil {
		logger.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if _, err := db.RunMigrations(logger, cfg.App.MigrationsURL); err != nil {
		logger.Errorf(err, "failed to run migrations")
		db.Close()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.Ping(); err != nil {
		logger.Errorf(err, "failed to ping database")
		db.Close()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}
