package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"marketplace/cmd"
	"marketplace/internal/adapters/out/postgres"
	"marketplace/internal/adapters/out/postgres/migrations"
	"marketplace/internal/pkg/logger"

	"github.com/labstack/gommon/log"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	app := &cli.App{
		Name:  "marketplace",
		Usage: "marketplace order lifecycle and vendor payout service",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "env-file",
				Value: ".env",
				Usage: "optional dotenv file read before the environment",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP API and scheduled jobs",
				Action: serve,
			},
			{
				Name:  "migrate",
				Usage: "apply or revert the database schema",
				Subcommands: []*cli.Command{
					{Name: "up", Usage: "apply all pending migrations", Action: migrateUp},
					{Name: "down", Usage: "revert all migrations", Action: migrateDown},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setup(c *cli.Context) (cmd.Config, *zap.Logger, error) {
	configs, err := cmd.LoadConfig(c.String("env-file"))
	if err != nil {
		return cmd.Config{}, nil, err
	}
	l, err := logger.New(configs.LogLevel)
	if err != nil {
		return cmd.Config{}, nil, fmt.Errorf("build logger: %w", err)
	}
	return configs, l, nil
}

func serve(c *cli.Context) error {
	configs, l, err := setup(c)
	if err != nil {
		return err
	}
	defer func() { _ = l.Sync() }()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB, err := postgres.Open(ctx, configs.DSN(), postgres.PoolConfig{
		MaxOpenConns:    configs.DBMaxOpenConns,
		MaxIdleConns:    configs.DBMaxIdleConns,
		ConnMaxLifetime: configs.DBConnMaxLifetime,
	}, l)
	if err != nil {
		return err
	}
	if sqlDB, dbErr := gormDB.DB(); dbErr == nil {
		defer func() { _ = sqlDB.Close() }()
	}

	root, err := cmd.NewCompositionRoot(configs, gormDB, l)
	if err != nil {
		return err
	}
	defer func() {
		if err := root.Close(); err != nil {
			l.Warn("close broker connection", zap.Error(err))
		}
	}()

	e, err := root.CreateRouter()
	if err != nil {
		return err
	}
	e.Logger.SetLevel(log.OFF)

	jobManager := root.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		l.Info("http server listening", zap.String("addr", configs.HTTPAddr()))
		if err := e.Start(configs.HTTPAddr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		l.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func migrator(c *cli.Context) (*migrations.Migrator, *zap.Logger, error) {
	configs, l, err := setup(c)
	if err != nil {
		return nil, nil, err
	}
	m, err := migrations.New(configs.DSN(), l)
	if err != nil {
		return nil, nil, err
	}
	return m, l, nil
}

func migrateUp(c *cli.Context) error {
	m, l, err := migrator(c)
	if err != nil {
		return err
	}
	defer func() { _ = m.Close() }()

	if err = m.Up(); err != nil {
		return err
	}
	version, _, err := m.Version()
	if err != nil {
		return err
	}
	l.Info("schema migrated", zap.Uint("version", version))
	return nil
}

func migrateDown(c *cli.Context) error {
	m, l, err := migrator(c)
	if err != nil {
		return err
	}
	defer func() { _ = m.Close() }()

	if err = m.Down(); err != nil {
		return err
	}
	l.Info("schema reverted")
	return nil
}
