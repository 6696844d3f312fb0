package app

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ngocdai99/furniture-backend/internal/dal/postgres"
	"github.com/ngocdai99/furniture-backend/internal/dal/rabbitmq"
	outboxrepo "github.com/ngocdai99/furniture-backend/internal/dal/repositories/outbox/postgres"
	"github.com/ngocdai99/furniture-backend/internal/service/models/events"
	"github.com/ngocdai99/furniture-backend/internal/service/services/catalogsvc"
	"github.com/ngocdai99/furniture-backend/internal/service/services/ordersvc"
	"github.com/ngocdai99/furniture-backend/internal/service/services/usersvc"
	"github.com/ngocdai99/furniture-backend/internal/tracing"
	httptransport "github.com/ngocdai99/furniture-backend/internal/transport/http"
	outboxworker "github.com/ngocdai99/furniture-backend/internal/worker/outbox"
	"github.com/ngocdai99/furniture-backend/pkg/mailer"
)

// App represents the application.
type App struct {
	orderSvc        *ordersvc.OrderService
	catalogSvc      *catalogsvc.CatalogService
	userSvc         *usersvc.UserService
	transport       *httptransport.HTTPTransport
	outboxWorker    *outboxworker.Worker
	postgresClient  *postgres.Client
	rabbitClient    *rabbitmq.Client
	tracingShutdown func(ctx context.Context) error
}

// MustNewApp creates a new application.
func MustNewApp() *App {
	tracingShutdown := tracing.MustSetup()

	postgresClient := postgres.MustNewClient()
	rabbitClient := rabbitmq.MustNewClient()

	if _, err := rabbitClient.DeclareQueue(rabbitmq.DeclareQueueConfig{
		Name:    events.QueueOrderCreated,
		Durable: true,
	}); err != nil {
		panic(err)
	}

	orderSvc := ordersvc.MustNewOrderService(
		ordersvc.WithPostgresClient(postgresClient),
	)
	catalogSvc := catalogsvc.MustNewCatalogService(
		catalogsvc.WithPostgresClient(postgresClient),
	)
	userSvc := usersvc.MustNewUserService(
		usersvc.WithPostgresClient(postgresClient),
		usersvc.WithMailer(mailer.MustNewMailer()),
	)

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		panic("JWT_SECRET is required")
	}

	transport := httptransport.NewHTTPTransport(orderSvc, catalogSvc, userSvc, []byte(secret))
	transport.RegisterRoutes()

	worker := outboxworker.NewWorker(
		outboxrepo.NewPostgresOutboxRepository(postgresClient.Pool()),
		rabbitClient,
	)

	return &App{
		orderSvc:        orderSvc,
		catalogSvc:      catalogSvc,
		userSvc:         userSvc,
		transport:       transport,
		outboxWorker:    worker,
		postgresClient:  postgresClient,
		rabbitClient:    rabbitClient,
		tracingShutdown: tracingShutdown,
	}
}

// Run starts the application.
// Tracks interrupt signal to gracefully shut down the application.
func (a *App) Run() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	workerCtx, cancelWorker := context.WithCancel(context.Background())
	go a.outboxWorker.Start(workerCtx)

	go func() {
		slog.Info("Starting HTTP server")
		if err := a.transport.Run(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	<-stop
	slog.Info("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.transport.Shutdown(ctx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped gracefully")
	}

	cancelWorker()
	a.outboxWorker.Stop()

	if err := a.rabbitClient.Close(); err != nil {
		slog.Error("RabbitMQ connection close error", "error", err)
	} else {
		slog.Info("RabbitMQ connection closed gracefully")
	}

	a.postgresClient.Close()
	slog.Info("Database connection closed gracefully")

	if err := a.tracingShutdown(ctx); err != nil {
		slog.Error("Tracer provider shutdown error", "error", err)
	}

	slog.Info("Application shutdown complete")
}
