package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	_ "github.com/MikeMC777/storefront/docs"
	"github.com/MikeMC777/storefront/internal/auth"
	"github.com/MikeMC777/storefront/internal/cart"
	"github.com/MikeMC777/storefront/internal/config"
	"github.com/MikeMC777/storefront/internal/database"
	"github.com/MikeMC777/storefront/internal/events"
	"github.com/MikeMC777/storefront/internal/grpcx"
	"github.com/MikeMC777/storefront/internal/httpx"
	"github.com/MikeMC777/storefront/internal/metrics"
	"github.com/MikeMC777/storefront/internal/migrate"
	"github.com/MikeMC777/storefront/internal/order"
	"github.com/MikeMC777/storefront/internal/product"
	"github.com/MikeMC777/storefront/internal/report"
	"github.com/MikeMC777/storefront/internal/user"
)

func init() {
	// money goes over the wire as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true
}

// @title           Storefront API
// @version         1.0
// @description     Online store backend: accounts, catalog, carts, orders and admin reporting.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()
	log := newLogger(cfg)
	cfg.Log(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.WithError(err).Fatal("[main] exiting")
	}
}

func newLogger(cfg config.Config) *logrus.Logger {
	log := logrus.New()
	if lvl, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(lvl)
	}
	if cfg.LogFormat == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return log
}

func run(ctx context.Context, cfg config.Config, log *logrus.Logger) error {
	gin.SetMode(cfg.GinMode)

	if cfg.AutoMigrate {
		if err := migrate.UpDSN(ctx, cfg.PostgresDSN, log); err != nil {
			return err
		}
	}

	pool, err := database.Open(ctx, cfg.PostgresDSN)
	if err != nil {
		return err
	}
	defer pool.Close()

	var pub events.Publisher = events.Nop{}
	if len(cfg.KafkaBrokers) > 0 {
		k, err := events.NewKafka(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			return err
		}
		pub = k
		log.Infof("[kafka] publishing order events to %s", cfg.KafkaTopic)
	}
	defer pub.Close()

	issuer := auth.NewIssuer([]byte(cfg.JWTSecret), cfg.TokenTTL)
	limiter := httpx.NewRateLimiter(cfg.AuthRatePerSec, cfg.AuthRateBurst)
	go sweepLimiter(ctx, limiter)

	r := newRouter(deps{
		users:          user.NewService(user.NewPGRepo(pool), issuer, cfg.BcryptCost),
		tokens:         issuer,
		products:       product.NewPGRepo(pool),
		carts:          cart.NewPGRepo(pool),
		orders:         order.NewPGRepo(pool),
		stats:          report.NewPGRepo(pool),
		events:         pub,
		metrics:        metrics.New(),
		limiter:        limiter,
		corsOrigins:    cfg.CORSOrigins,
		trustedProxies: cfg.TrustedProxies,
		log:            log,
	})

	// gRPC health
	hs := grpcx.NewHealthServer(pool, 10*time.Second, log)
	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		return err
	}
	go hs.Watch(ctx)
	go func() {
		log.Infof("[grpc] health listening on %s", cfg.GRPCAddr)
		if err := hs.Serve(lis); err != nil {
			log.WithError(err).Error("[grpc] serve")
		}
	}()

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Infof("[http] listening on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		hs.Stop()
		return err
	}

	log.Info("[main] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	hs.Stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

func sweepLimiter(ctx context.Context, rl *httpx.RateLimiter) {
	t := time.NewTicker(time.Minute)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			rl.Cleanup(10 * time.Minute)
		}
	}
}
