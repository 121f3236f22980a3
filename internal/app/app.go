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

	"github.com/rachelperfumes/storefront/internal/domain/auth"
	"github.com/rachelperfumes/storefront/internal/domain/order"
	"github.com/rachelperfumes/storefront/internal/geocode"
	"github.com/rachelperfumes/storefront/internal/handler"
	"github.com/rachelperfumes/storefront/internal/notify"
	"github.com/rachelperfumes/storefront/internal/payment"
	"github.com/rachelperfumes/storefront/internal/repository"
	"github.com/rachelperfumes/storefront/pkg/health"
	"github.com/rachelperfumes/storefront/pkg/httpmiddleware"
	"github.com/rachelperfumes/storefront/web"
)

// Run creates all dependencies, starts the HTTP server, and handles graceful
// shutdown. It is the single wiring point for the application.
func Run(ctx context.Context, lg *zap.Logger, m *app.Telemetry, cfg *Config) error {
	lg.Info("Initializing", zap.String("addr", cfg.Addr))

	unitPrice, err := decimal.NewFromString(cfg.UnitPrice)
	if err != nil {
		return errors.Wrap(err, "parse unit price")
	}

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
	healthSvc.Start(ctx, 10*time.Second)
	healthSvc.SetReady(true)

	// Optional side effects: notification mail and hosted payments.
	var notifier order.Notifier = notify.Nop{}
	if cfg.mailEnabled() {
		mailer, err := notify.NewMailer(notify.MailerConfig{
			Host:        cfg.SMTP.Host,
			Port:        cfg.SMTP.Port,
			Username:    cfg.SMTP.Username,
			Password:    cfg.SMTP.Password,
			NotifyEmail: cfg.SMTP.NotifyEmail,
		})
		if err != nil {
			return errors.Wrap(err, "create mailer")
		}
		notifier = mailer
		lg.Info("Order notifications enabled", zap.String("notify_email", cfg.SMTP.NotifyEmail))
	} else {
		lg.Info("Order notifications disabled: SMTP settings incomplete")
	}

	var payments order.PaymentInitiator = payment.Disabled{}
	if cfg.Stripe.SecretKey != "" {
		payments = payment.NewStripeInitiator(payment.StripeConfig{
			SecretKey:     cfg.Stripe.SecretKey,
			Currency:      cfg.Currency,
			PublicBaseURL: cfg.PublicBaseURL,
		})
		lg.Info("Payments enabled", zap.String("currency", cfg.Currency))
	} else {
		lg.Info("Payments disabled: no Stripe secret key")
	}

	// Domain services.
	orderRepo := repository.NewOrderRepository(pool)
	orderService := order.NewService(orderRepo, notifier, payments, order.ServiceConfig{
		UnitPrice:      unitPrice,
		PaymentTimeout: cfg.Stripe.SessionTimeout,
	})
	authz := auth.NewStaticAuthorizer(cfg.Admin.User, cfg.Admin.Pass)
	sessions := auth.NewSessions([]byte(cfg.Session.Secret), cfg.Session.TTL)
	geo := geocode.NewClient(geocode.Config{
		BaseURL:   cfg.Geocode.BaseURL,
		UserAgent: cfg.Geocode.UserAgent,
		Timeout:   cfg.Geocode.Timeout,
	})

	// HTTP handlers: embedded storefront at the root, API and admin routes,
	// health endpoints.
	h := handler.NewHandler(
		handler.HandlerConfig{ListLimit: cfg.ListLimit, SecureCookies: cfg.Session.Secure},
		orderService,
		authz,
		sessions,
		geo,
	)
	mux := http.NewServeMux()
	mux.Handle("/", web.Handler())
	mux.HandleFunc("/livez", healthSvc.LiveEndpoint)
	mux.HandleFunc("/readyz", healthSvc.ReadyEndpoint)
	h.Register(mux)

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
				AllowHeaders:     []string{"Content-Type"},
				AllowCredentials: cfg.CORS.AllowCredentials,
				MaxAge:           86400,
			}),
			httpmiddleware.RateLimitWithCleanup(ctx, httpmiddleware.RateLimitConfig{
				Max:    cfg.RateLimit.Max,
				Window: cfg.RateLimit.Window,
			}),
			httpmiddleware.RequestID(),
			httpmiddleware.InjectLogger(zctx.From(ctx)),
			httpmiddleware.Instrument("perfume-storefront", m),
			httpmiddleware.LogRequests(),
		),
	}

	// Graceful shutdown: on context cancellation flip readiness, drain, stop
	// the server, and wait for in-flight notification deliveries.
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		lg.Info("Server listening", zap.String("addr", cfg.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "server")
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
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
		orderService.Wait()
		return nil
	})
	return g.Wait()
}
