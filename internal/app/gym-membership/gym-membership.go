package gymmembership

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/streadway/amqp"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/gym-membership/internal/config"
	"github.com/magabrotheeeer/gym-membership/internal/lib/sl"
	"github.com/magabrotheeeer/gym-membership/internal/metrics"
	"github.com/magabrotheeeer/gym-membership/internal/models"
	"github.com/magabrotheeeer/gym-membership/internal/notifier"
	"github.com/magabrotheeeer/gym-membership/internal/rabbitmq"
	memberservice "github.com/magabrotheeeer/gym-membership/internal/services/member"
	"github.com/magabrotheeeer/gym-membership/internal/storage/memory"
)

const shutdownTimeout = 15 * time.Second

// App связывает хранилище, сервис, подписчиков и HTTP-сервер.
type App struct {
	server      *http.Server
	logger      *slog.Logger
	amqpConn    *amqp.Connection
	unsubscribe []func()
}

// New собирает приложение по конфигу. Если notifier включён, подключается к RabbitMQ.
func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "app.gymmembership.New"

	var initial []models.Member
	if cfg.SeedSampleMembers {
		initial = models.SampleMembers()
		logger.Info("seeding sample members", slog.Int("count", len(initial)))
	}
	store := memory.New(initial...)

	collector, err := metrics.New(prometheus.NewRegistry())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	memberService := memberservice.NewMemberService(store, logger, memberservice.WithRecorder(collector))

	app := &App{logger: logger}
	app.unsubscribe = append(app.unsubscribe, memberService.Subscribe(collector))

	if cfg.Notifier.Enabled {
		if err := app.connectNotifier(cfg.Notifier, memberService); err != nil {
			app.close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	router := chi.NewRouter()
	limiter := rate.NewLimiter(rate.Limit(cfg.RPS), cfg.Burst)
	RegisterRoutes(router, logger, memberService, limiter, collector.Handler())

	app.server = &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return app, nil
}

func (a *App) connectNotifier(cfg config.Notifier, memberService *memberservice.MemberService) error {
	conn, err := rabbitmq.Connect(cfg.URL, cfg.Retries, cfg.RetryDelay)
	if err != nil {
		return err
	}
	a.amqpConn = conn
	a.logger.Info("connected to RabbitMQ", slog.String("exchange", cfg.Exchange))

	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	if err := rabbitmq.SetupExchange(ch, cfg.Exchange, rabbitmq.SnapshotQueues(cfg.RoutingKey)); err != nil {
		return err
	}

	n := notifier.New(ch, cfg.Exchange, cfg.RoutingKey, a.logger)
	a.unsubscribe = append(a.unsubscribe, memberService.Subscribe(n))
	return nil
}

// Run запускает HTTP-сервер и останавливает его при отмене ctx.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.close()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.close()
		return err
	}
}

// Handler возвращает корневой HTTP-обработчик приложения.
func (a *App) Handler() http.Handler {
	return a.server.Handler
}

func (a *App) close() {
	for _, unsubscribe := range a.unsubscribe {
		unsubscribe()
	}
	a.unsubscribe = nil
	if a.amqpConn != nil {
		if err := a.amqpConn.Close(); err != nil {
			a.logger.Error("failed to close RabbitMQ connection", sl.Err(err))
		}
		a.amqpConn = nil
	}
}
