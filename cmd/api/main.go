package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	logging "github.com/ipfs/go-log/v2"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	httpadp "crowdlending/internal/adapter/http"
	appmw "crowdlending/internal/adapter/middleware"
	"crowdlending/internal/adapter/repository/mysql"
	"crowdlending/internal/config"
	domainRep "crowdlending/internal/domain/reputation"
	"crowdlending/internal/infrastructure/cache"
	"crowdlending/internal/infrastructure/db"
	"crowdlending/internal/metrics"
	"crowdlending/internal/usecase/lending"
	"crowdlending/internal/usecase/registry"
	"crowdlending/internal/usecase/reputation"
)

var log = logging.Logger("api")

func main() {
	if err := run(); err != nil {
		log.Errorw("exiting", "err", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}
	if lvl, err := logging.LevelFromString(cfg.LogLevel); err == nil {
		logging.SetAllLoggers(lvl)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		return err
	}
	if cfg.AutoMigrate {
		if err := db.AutoMigrate(gdb, mysql.Models()...); err != nil {
			return err
		}
	}
	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		return err
	}
	defer rdb.Close()

	policy, err := domainRep.ParseBoundaryPolicy(cfg.ReputationPolicy)
	if err != nil {
		return err
	}
	m := metrics.New(prometheus.DefaultRegisterer)
	tx := mysql.NewGormUoW(gdb)
	engine := reputation.NewEngine(mysql.NewReputationRepository(gdb),
		reputation.WithBoundaryPolicy(policy), reputation.WithMetrics(m))
	lendingUC := lending.NewUsecase(tx, engine,
		lending.WithMetrics(m),
		lending.WithDefaultFees(lending.Fees{
			LocalNodeHundredths: cfg.LocalNodeFeeHundredths,
			TeamHundredths:      cfg.TeamFeeHundredths,
		}))

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(middleware.Logger(), middleware.Recover())

	// routes
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	httpadp.Routes(e, httpadp.Handlers{
		Health:     httpadp.NewHandler(nil),
		Agreements: httpadp.NewAgreementHandler(lendingUC),
		Registry:   httpadp.NewRegistryHandler(registry.NewUsecase(tx, cfg.RegistryAdminID)),
		Reputation: httpadp.NewReputationHandler(engine),
	}, appmw.Idempotency(rdb, appmw.Options{TTL: cfg.IdempotencyTTL()}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		addr := ":" + cfg.AppPort
		log.Infow("listening", "addr", addr, "reputation_policy", policy)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		log.Infow("shutting down")
		return e.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
