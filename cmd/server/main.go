package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/ogurasousui/employee-registry/internal/adapters/http/handler"
	"github.com/ogurasousui/employee-registry/internal/adapters/reportstore/local"
	s3archive "github.com/ogurasousui/employee-registry/internal/adapters/reportstore/s3"
	dynamostorage "github.com/ogurasousui/employee-registry/internal/adapters/storage/dynamodb"
	"github.com/ogurasousui/employee-registry/internal/adapters/storage/file"
	"github.com/ogurasousui/employee-registry/internal/adapters/storage/memory"
	pgstorage "github.com/ogurasousui/employee-registry/internal/adapters/storage/postgres"
	"github.com/ogurasousui/employee-registry/internal/core/employee"
	"github.com/ogurasousui/employee-registry/internal/core/report"
	"github.com/ogurasousui/employee-registry/internal/platform/awsconfig"
	"github.com/ogurasousui/employee-registry/internal/platform/config"
	pg "github.com/ogurasousui/employee-registry/internal/platform/db/postgres"
	"github.com/ogurasousui/employee-registry/internal/platform/logger"
	"github.com/ogurasousui/employee-registry/internal/platform/server"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "employee-registry: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "assets/local.yaml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.Log, os.Stdout)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	storage, tx, cleanup, err := buildStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	archive, err := buildArchive(ctx, cfg.Report)
	if err != nil {
		return err
	}

	svc := employee.NewService(employee.NewStore(storage, cfg.Registry.StorageKey), tx, log)
	if _, err := svc.Refresh(ctx); err != nil {
		return fmt.Errorf("initial load: %w", err)
	}

	opts := []handler.Option{handler.WithSalaryThreshold(cfg.Registry.SalaryThreshold)}
	if archive != nil {
		opts = append(opts, handler.WithArchive(archive))
	}
	h := handler.New(svc, log, opts...)

	log.Info().
		Str("storage", cfg.Storage.Driver).
		Str("report", cfg.Report.Driver).
		Msg("employee registry starting")

	return server.New(cfg.Server, h.Routes(), log).Run(ctx)
}

func buildStorage(ctx context.Context, cfg *config.Config) (employee.Storage, employee.TransactionManager, func(), error) {
	noop := func() {}

	switch cfg.Storage.Driver {
	case config.StorageMemory:
		return memory.NewStorage(), nil, noop, nil
	case config.StorageFile:
		s, err := file.NewStorage(cfg.Storage.File.Dir)
		if err != nil {
			return nil, nil, nil, err
		}
		return s, nil, noop, nil
	case config.StoragePostgres:
		pool, err := pg.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("init database pool: %w", err)
		}
		return pgstorage.NewStorage(pool), pg.NewTransactionManager(pool), pool.Close, nil
	case config.StorageDynamoDB:
		awsCfg, err := awsconfig.Load(ctx, cfg.Storage.DynamoDB.AWS)
		if err != nil {
			return nil, nil, nil, err
		}
		return dynamostorage.NewStorageFromConfig(awsCfg, cfg.Storage.DynamoDB.Table), nil, noop, nil
	default:
		return nil, nil, nil, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
	}
}

func buildArchive(ctx context.Context, cfg config.ReportConfig) (report.Archive, error) {
	switch cfg.Driver {
	case config.ReportNone:
		return nil, nil
	case config.ReportLocal:
		a, err := local.NewArchive(cfg.Local.Dir)
		if err != nil {
			return nil, err
		}
		return a, nil
	case config.ReportS3:
		awsCfg, err := awsconfig.Load(ctx, cfg.S3.AWS)
		if err != nil {
			return nil, err
		}
		return s3archive.NewArchiveFromConfig(awsCfg, cfg.S3.Bucket, cfg.S3.Prefix, cfg.S3.UsePathStyle), nil
	default:
		return nil, fmt.Errorf("unsupported report driver %q", cfg.Driver)
	}
}
