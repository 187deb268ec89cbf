// Package app wires the storefront together and runs the HTTP server.
package app

import (
	"context"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/app"
	"github.com/go-faster/sdk/zctx"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Ashrafbing/crystalloom/internal/analytics"
	"github.com/Ashrafbing/crystalloom/internal/domain/order"
	"github.com/Ashrafbing/crystalloom/internal/domain/otp"
	"github.com/Ashrafbing/crystalloom/internal/domain/payment"
	"github.com/Ashrafbing/crystalloom/internal/domain/pricing"
	"github.com/Ashrafbing/crystalloom/internal/domain/user"
	"github.com/Ashrafbing/crystalloom/internal/handler"
	"github.com/Ashrafbing/crystalloom/internal/mail"
	"github.com/Ashrafbing/crystalloom/internal/notify"
	"github.com/Ashrafbing/crystalloom/internal/razorpay"
	"github.com/Ashrafbing/crystalloom/internal/repository"
	"github.com/Ashrafbing/crystalloom/pkg/health"
	"github.com/Ashrafbing/crystalloom/pkg/httpmiddleware"
)

// Run creates all dependencies, starts the HTTP server and the notification
// worker, and handles graceful shutdown. It is the single wiring point for
// the application.
func Run(ctx context.Context, lg *zap.Logger, m *app.Telemetry, cfg *Config) error {
	lg.Info("Initializing", zap.String("addr", cfg.Addr))

	// PostgreSQL pool + migrations.
	pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return errors.Wrap(err, "create db pool")
	}
	defer pool.Close()

	if err := repository.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	// Health check service.
	healthSvc := health.New()
	healthSvc.AddReadinessCheck("postgres", 5*time.Second, func(ctx context.Context) error {
		return pool.Ping(ctx)
	})
	healthSvc.AddLivenessCheck("goroutines", time.Second, health.GoroutineCountCheck(10000))
	healthSvc.AddLivenessCheck("gc-pause", time.Second, health.GCMaxPauseCheck(time.Second))
	healthSvc.Start(ctx, 10*time.Second)
	healthSvc.SetReady(true)

	// Repositories.
	userRepo := repository.NewUserRepository(pool)
	productRepo := repository.NewProductRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)

	// Outbound integrations.
	sender := mail.NewSender(mail.Config{
		Host:       cfg.SMTP.Host,
		Port:       cfg.SMTP.Port,
		Username:   cfg.SMTP.Username,
		Password:   cfg.SMTP.Password,
		SenderName: cfg.SMTP.SenderName,
		From:       cfg.SMTP.From,
	})

	var sink interface {
		user.AnalyticsSink
		order.AnalyticsSink
	} = analytics.Nop{}
	if cfg.AnalyticsURL != "" {
		sink = analytics.NewSheetsClient(cfg.AnalyticsURL)
	}

	var gateway payment.Gateway
	if cfg.Razorpay.KeyID != "" && cfg.Razorpay.KeySecret != "" {
		gateway = razorpay.NewClient(cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret, razorpay.DefaultBaseURL)
	} else {
		lg.Warn("Razorpay keys not set, payment order creation disabled")
	}

	dispatcher := notify.NewDispatcher(sender, lg.Named("notify"), cfg.NotifyQueue)

	// Domain services.
	maxDiscount, err := decimal.NewFromString(cfg.MaxDiscount)
	if err != nil {
		return errors.Wrap(err, "parse max discount")
	}
	userService := user.NewService(userRepo, sink)
	orderService := order.NewService(userRepo, orderRepo, sink, dispatcher, cfg.OperatorEmail)
	otpService := otp.NewService(userRepo, otp.NewStore(), sender)
	paymentService := payment.NewService(gateway)
	calc := pricing.NewCalculator(maxDiscount)

	// HTTP surface: health endpoints + API routes on one server.
	h := handler.NewHandler(userService, orderService, otpService, paymentService, productRepo, calc)
	mux := http.NewServeMux()
	mux.HandleFunc("/livez", healthSvc.LiveEndpoint)
	mux.HandleFunc("/readyz", healthSvc.ReadyEndpoint)
	mux.Handle("/api/", http.StripPrefix("/api", h.Routes()))

	server := &http.Server{
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
		Addr:              cfg.Addr,
		Handler: httpmiddleware.Wrap(mux,
			httpmiddleware.Recovery(),
			httpmiddleware.CORS(httpmiddleware.CORSConfig{
				AllowOrigins:     cfg.CORS.Origins,
				AllowHeaders:     []string{"Content-Type", "Authorization"},
				AllowCredentials: cfg.CORS.AllowCredentials,
				MaxAge:           86400,
			}),
			httpmiddleware.RateLimitWithCleanup(ctx, httpmiddleware.RateLimitConfig{
				Max:    cfg.RateLimit.Max,
				Window: cfg.RateLimit.Window,
			}),
			httpmiddleware.RequestID(),
			httpmiddleware.InjectLogger(zctx.From(ctx)),
			httpmiddleware.Instrument("crystalloom-api", m),
			httpmiddleware.LogRequests(),
		),
	}

	g, gctx := errgroup.WithContext(ctx)

	// Notification worker: drains the confirmation queue until shutdown.
	g.Go(func() error {
		return dispatcher.Run(gctx)
	})

	// Graceful shutdown: wait for context cancellation, drain, then stop.
	shutdownDone := make(chan struct{})
	go func() {
		<-gctx.Done()
		healthSvc.SetReady(false)
		lg.Info("Readiness set to false, draining", zap.Duration("delay", cfg.Graceful.ReadinessDelay))
		time.Sleep(cfg.Graceful.ReadinessDelay)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Graceful.ShutdownTimeout)
		defer cancel()

		lg.Info("Shutting down server", zap.Duration("timeout", cfg.Graceful.ShutdownTimeout))
		if err := server.Shutdown(shutdownCtx); err != nil {
			lg.Error("Server shutdown error", zap.Error(err))
		}
		healthSvc.Stop()
		close(shutdownDone)
	}()

	g.Go(func() error {
		lg.Info("Server listening", zap.String("addr", cfg.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "server")
		}
		<-shutdownDone
		return nil
	})

	return g.Wait()
}
