package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	authcontracts "github.com/murkotick/invoice-dashboard-service/internal/app/auth/contracts"
	"github.com/murkotick/invoice-dashboard-service/internal/app/auth/credentials"
	authrepo "github.com/murkotick/invoice-dashboard-service/internal/app/auth/repo"
	"github.com/murkotick/invoice-dashboard-service/internal/app/auth/usecases/authenticate"
	"github.com/murkotick/invoice-dashboard-service/internal/app/invoice/contracts"
	"github.com/murkotick/invoice-dashboard-service/internal/app/invoice/queries"
	"github.com/murkotick/invoice-dashboard-service/internal/app/invoice/queries/get_invoice"
	"github.com/murkotick/invoice-dashboard-service/internal/app/invoice/queries/list_customers"
	"github.com/murkotick/invoice-dashboard-service/internal/app/invoice/repo"
	"github.com/murkotick/invoice-dashboard-service/internal/app/invoice/usecases/create_invoice"
	"github.com/murkotick/invoice-dashboard-service/internal/app/invoice/usecases/delete_invoice"
	"github.com/murkotick/invoice-dashboard-service/internal/app/invoice/usecases/update_invoice"
	"github.com/murkotick/invoice-dashboard-service/internal/cache"
	"github.com/murkotick/invoice-dashboard-service/internal/observability"
	"github.com/murkotick/invoice-dashboard-service/internal/pkg/clock"
	committer "github.com/murkotick/invoice-dashboard-service/internal/pkg/committer"
	"github.com/murkotick/invoice-dashboard-service/internal/pkg/config"
	"github.com/murkotick/invoice-dashboard-service/internal/pkg/database"
	"github.com/murkotick/invoice-dashboard-service/internal/pkg/logger"
	grpcinvoice "github.com/murkotick/invoice-dashboard-service/internal/transport/grpc/invoice"
	"github.com/murkotick/invoice-dashboard-service/internal/transport/web"
	"github.com/murkotick/invoice-dashboard-service/migrations"
)

// backend is the store-specific half of the wiring.
type backend struct {
	store     contracts.InvoiceStore
	readModel contracts.ReadModel
	users     authcontracts.UserRepo
	closer    io.Closer
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server exited", "error", err)
		log.Sync()
		os.Exit(1)
	}
	log.Info("server stopped")
}

func run(ctx context.Context, cfg config.Config, log *logger.Logger) error {
	be, err := openBackend(ctx, cfg.Store, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := be.closer.Close(); err != nil {
			log.Warn("close store", "error", err)
		}
	}()

	viewCache, closeCache, err := openCache(ctx, cfg.Cache, log)
	if err != nil {
		return err
	}
	defer closeCache()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := observability.New(reg)

	clk := clock.RealClock{}
	provider := credentials.NewProvider(be.users, cfg.Auth.Secret, cfg.Auth.TTL(), clk)
	authInteractor := authenticate.NewInteractor(provider, log)

	create := create_invoice.NewInteractor(be.store, viewCache, clk, log, metrics)
	update := update_invoice.NewInteractor(be.store, viewCache, log, metrics)
	del := delete_invoice.NewInteractor(be.store, viewCache, log, metrics)

	// HTTP
	prod := cfg.LogMode == "prod" || cfg.LogMode == "production"
	if prod {
		gin.SetMode(gin.ReleaseMode)
	}
	router := web.NewRouter(web.RouterConfig{
		Log:         log,
		Metrics:     metrics,
		CORSOrigins: cfg.CORSOrigins,
		InvoiceHandler: web.NewInvoiceHandler(log,
			web.Commands{Create: create, Update: update, Delete: del},
			web.Queries{Get: get_invoice.NewHandler(be.readModel), Customers: list_customers.NewHandler(be.readModel)},
		),
		AuthHandler:    web.NewAuthHandler(log, authInteractor, clk, prod),
		AuthMiddleware: web.NewAuthMiddleware(log, provider),
	})
	httpSrv := web.NewServer(cfg.HTTPAddr, router, log)

	// gRPC
	grpcSrv := grpc.NewServer(grpc.UnaryInterceptor(grpcinvoice.SessionInterceptor(provider)))
	grpcinvoice.RegisterInvoiceMutationsServer(grpcSrv, grpcinvoice.NewHandler(log, grpcinvoice.Commands{
		Create:       create,
		Update:       update,
		Delete:       del,
		Authenticate: authInteractor,
	}))
	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.GRPCAddr, err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return httpSrv.Run(gctx) })
	g.Go(func() error {
		log.Info("gRPC server listening", "addr", cfg.GRPCAddr)
		if err := grpcSrv.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return fmt.Errorf("grpc serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		stopped := make(chan struct{})
		go func() {
			grpcSrv.GracefulStop()
			close(stopped)
		}()
		select {
		case <-stopped:
		case <-time.After(5 * time.Second):
			grpcSrv.Stop()
		}
		return nil
	})
	return g.Wait()
}

func openBackend(ctx context.Context, cfg config.StoreConfig, log *logger.Logger) (*backend, error) {
	if cfg.Driver == config.DriverSpanner {
		client, err := spanner.NewClient(ctx, cfg.SpannerDatabase)
		if err != nil {
			return nil, fmt.Errorf("spanner.NewClient: %w", err)
		}
		log.Info("store opened", "driver", cfg.Driver)
		return &backend{
			store:     repo.NewSpannerStore(committer.NewAdapter(client)),
			readModel: queries.NewSpannerReadModel(client),
			users:     authrepo.NewSpannerUserRepo(client),
			closer:    closerFunc(func() error { client.Close(); return nil }),
		}, nil
	}

	db, err := database.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if cfg.Driver == config.DriverSQLite {
		// Local dev databases are created on first start.
		if _, err := migrations.Apply(ctx, db, migrations.SQLite); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	log.Info("store opened", "driver", cfg.Driver)
	return &backend{
		store:     repo.NewSQLStore(db),
		readModel: queries.NewSQLReadModel(db),
		users:     authrepo.NewSQLUserRepo(db),
		closer:    db,
	}, nil
}

func openCache(ctx context.Context, cfg config.CacheConfig, log *logger.Logger) (cache.ViewCache, func(), error) {
	if cfg.RedisAddr == "" {
		log.Info("using in-memory view cache")
		return cache.NewMemoryCache(), func() {}, nil
	}
	rc, err := cache.NewRedisCache(ctx, cfg.RedisAddr, cfg.Prefix, log)
	if err != nil {
		return nil, nil, err
	}
	return rc, func() { _ = rc.Close() }, nil
}
