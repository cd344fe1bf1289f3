package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"aether-be/internal/auth"
	"aether-be/internal/config"
	"aether-be/internal/db"
	"aether-be/internal/handler"
	"aether-be/internal/logger"
	"aether-be/internal/middleware"
	"aether-be/internal/order"
	"aether-be/internal/payment"
	"aether-be/internal/product"
	"aether-be/internal/shipment"
	"aether-be/internal/user"

	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var (
	initDBFunc      = db.InitDB
	startServerFunc = startServer
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := initDBFunc(cfg)
	defer database.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           newServer(ctx, cfg, database),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	logger.L().Info("server starting",
		zap.String("addr", srv.Addr),
		zap.String("env", cfg.AppEnv),
	)
	return startServerFunc(ctx, srv)
}

func newServer(ctx context.Context, cfg *config.Config, database *sql.DB) http.Handler {
	tokens := auth.NewTokenManager(cfg.JWTSecret)
	if cfg.JWTSecret == "" {
		logger.L().Warn("JWT_SECRET is empty, login and register will fail")
	}

	productSvc := product.NewService(product.NewRepository(database))
	userSvc := user.NewService(user.NewRepository(database), tokens)
	shipmentSvc := shipment.NewService(shipment.NewRepository(database))

	gateway := payment.NewPayPalGateway(cfg.PayPalBaseURL, cfg.PayPalClientID, cfg.PayPalClientSecret)
	orderSvc := order.NewService(
		order.NewRepository(database),
		userSvc,
		productSvc,
		gateway,
		cfg.AllowPlaceholderUsers,
	)
	if cfg.AllowPlaceholderUsers {
		logger.L().Warn("placeholder users enabled, unknown buyers will be created on checkout")
	}

	router := handler.NewRouter(handler.Services{
		Products:  productSvc,
		Orders:    orderSvc,
		Shipments: shipmentSvc,
		Users:     userSvc,
	}, cfg.IsProduction())

	return setupMiddleware(router, cfg, tokens, middleware.NewRateLimiter(ctx))
}

// setupMiddleware wraps h so requests pass request id, access log, CORS,
// auth and rate limiting before reaching the router.
func setupMiddleware(h http.Handler, cfg *config.Config, tokens *auth.TokenManager, limiter *middleware.RateLimiter) http.Handler {
	h = limiter.Middleware(h)
	h = middleware.AuthMiddleware(tokens)(h)
	h = middleware.CORS(cfg.CORSAllowOrigin)(h)
	h = logger.LoggingMiddleware(h)
	h = logger.RequestIDMiddleware(h)
	return h
}

// startServer serves until ctx is cancelled, then drains in-flight requests.
func startServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.L().Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
