package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/greenstamp/greenstamp/internal/config"
	"github.com/greenstamp/greenstamp/internal/infra/database"
	"github.com/greenstamp/greenstamp/internal/infra/gateway"
	"github.com/greenstamp/greenstamp/internal/infra/repository"
	"github.com/greenstamp/greenstamp/internal/present/rest"
	"github.com/greenstamp/greenstamp/internal/service"
	"github.com/greenstamp/greenstamp/internal/usecase"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	conf, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	if conf.Server.EnableTrace {
		cleanup, err := setupTracer(ctx, conf.Server.TraceEndpoint)
		if err != nil {
			slog.Error("failed to set up tracing", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer cleanup()
	}

	db, err := database.NewPostgres(conf.Server.PostgresDsn)
	if err != nil {
		slog.Error("failed to connect database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := database.MigratePostgres(db); err != nil {
		slog.Error("failed to migrate database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	rdb := database.NewRedis(conf.Server.RedisAddr, conf.Server.RedisPassword, conf.Server.RedisDB)
	mc := database.NewMemcached(conf.Server.MemcachedAddr)

	proofRepo := repository.NewProofRepository(db)
	ngoRepo := repository.NewNGORepository(db)
	userRepo := repository.NewUserRepository(db)
	badgeRepo := repository.NewBadgeRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)

	pinning := gateway.NewPinningClient(conf.Pinning, conf.Server.MediaDir)
	drift := service.NewDriftService(rdb)

	var notary usecase.Notary
	if conf.Ledger.Configured() {
		ledger, err := gateway.NewLedgerClient(conf.Ledger, rdb)
		if err != nil {
			slog.Error("failed to set up ledger client", slog.String("error", err.Error()))
			os.Exit(1)
		}
		notary = ledger
	} else {
		slog.Info("ledger credentials absent, notarization disabled", slog.String("module", "main"))
	}

	var classifier usecase.Classifier
	if conf.Vision.Configured() {
		vision, err := gateway.NewVisionClassifier(ctx, conf.Vision)
		if err != nil {
			slog.Error("failed to set up vision client", slog.String("error", err.Error()))
			os.Exit(1)
		}
		classifier = vision
	} else {
		slog.Info("vision credentials absent, classification disabled", slog.String("module", "main"))
	}

	ingest := usecase.NewIngestUsecase(proofRepo, pinning, notary, classifier, drift)
	proofs := usecase.NewProofUsecase(proofRepo)
	ngos := usecase.NewNGOUsecase(ngoRepo)
	badges := usecase.NewBadgeUsecase(badgeRepo, userRepo)
	categories := usecase.NewCategoryUsecase(categoryRepo)
	actors := usecase.NewActorUsecase(userRepo, badgeRepo, mc)
	reconcile := usecase.NewReconcileUsecase(proofRepo, drift)
	status := service.NewStatusService(db, rdb, mc,
		conf.Pinning.JWTToken != "",
		conf.Ledger.Configured(),
		conf.Vision.Configured(),
	)

	handler := rest.NewHandler(ingest, proofs, ngos, badges, categories, actors, reconcile, status)

	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	if conf.Server.EnableTrace {
		e.Use(otelecho.Middleware("greenstamp"))
	}

	handler.RegisterRoutes(e)
	e.Static("/media", conf.Server.MediaDir)

	e.Logger.Fatal(e.Start(conf.Server.Listen))
}

func setupTracer(ctx context.Context, endpoint string) (func(), error) {
	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName("greenstamp"),
		)),
	)
	otel.SetTracerProvider(provider)

	return func() {
		if err := provider.Shutdown(ctx); err != nil {
			slog.Error("failed to shut down tracer", slog.String("error", err.Error()))
		}
	}, nil
}
