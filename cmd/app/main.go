package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"kds/cmd"
	kdshttp "kds/internal/adapters/in/http"
	"kds/internal/adapters/in/simulator"
	"kds/internal/adapters/out/postgres/migrations"
	"kds/internal/core/application/usecases/commands"
	"kds/internal/core/domain/model/order"
	"kds/internal/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "kds",
		Short:         "Kitchen display service for delivery orders",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCmd(), newMigrateCmd(), newSweepCmd(), newSimulateCmd())
	return root
}

// env is the configuration and logger shared by all subcommands.
type env struct {
	cfg    cmd.Config
	logger *zap.Logger
}

func loadEnv() (env, error) {
	cfg, err := cmd.LoadConfig()
	if err != nil {
		return env{}, err
	}

	log, err := logger.New(logger.Config{Level: cfg.LogLevel, Encoding: cfg.LogEncoding, ServiceName: "kds"})
	if err != nil {
		return env{}, err
	}
	return env{cfg: cfg, logger: log}, nil
}

// withApp runs fn against a fully wired composition root and tears it down afterwards.
func withApp(fn func(e env, app *cmd.CompositionRoot) error) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	defer func() { _ = e.logger.Sync() }()

	db, err := cmd.OpenDatabase(e.cfg)
	if err != nil {
		return err
	}

	app, err := cmd.NewCompositionRoot(e.cfg, db, e.logger)
	if err != nil {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			_ = sqlDB.Close()
		}
		return err
	}
	defer func() {
		if closeErr := app.Close(); closeErr != nil {
			e.logger.Warn("shutdown incomplete", zap.Error(closeErr))
		}
	}()

	return fn(e, app)
}

func migrateUp(e env) error {
	m, err := migrations.New(e.cfg.DSN(), e.logger)
	if err != nil {
		return err
	}
	defer func() { _ = m.Close() }()

	return m.Up()
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Apply migrations, then run the HTTP API and scheduled jobs",
		RunE: func(c *cobra.Command, _ []string) error {
			return withApp(func(e env, app *cmd.CompositionRoot) error {
				if err := migrateUp(e); err != nil {
					return err
				}

				router, err := app.CreateRouter()
				if err != nil {
					return err
				}

				jobManager := app.CreateJobManager()
				if err = jobManager.StartAll(); err != nil {
					return err
				}
				defer jobManager.StopAll()

				g, ctx := errgroup.WithContext(c.Context())
				g.Go(func() error {
					e.logger.Info("http server listening", zap.String("addr", e.cfg.HTTPAddr()))
					if err := router.Start(e.cfg.HTTPAddr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
						return err
					}
					return nil
				})
				g.Go(func() error {
					<-ctx.Done()
					shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), kdshttp.ShutdownTimeout)
					defer cancel()
					e.logger.Info("shutting down")
					return router.Shutdown(shutdownCtx)
				})
				return g.Wait()
			})
		},
	}
}

func newMigrateCmd() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(c *cobra.Command, _ []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			if err = migrateUp(e); err != nil {
				return err
			}
			fmt.Fprintln(c.OutOrStdout(), "migrations applied")
			return nil
		},
	}

	downCmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back all migrations",
		RunE: func(c *cobra.Command, _ []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			m, err := migrations.New(e.cfg.DSN(), e.logger)
			if err != nil {
				return err
			}
			defer func() { _ = m.Close() }()

			if err = m.Down(); err != nil {
				return err
			}
			fmt.Fprintln(c.OutOrStdout(), "migrations rolled back")
			return nil
		},
	}

	migrateCmd.AddCommand(upCmd, downCmd)
	return migrateCmd
}

func newSweepCmd() *cobra.Command {
	var retentionHours int

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "Delete finished orders older than the retention period",
		RunE: func(c *cobra.Command, _ []string) error {
			return withApp(func(e env, app *cmd.CompositionRoot) error {
				hours := e.cfg.RetentionHours
				if c.Flags().Changed("retention-hours") {
					hours = retentionHours
				}

				command, err := commands.NewSweepOrdersCommand(hours)
				if err != nil {
					return err
				}
				removed, err := app.CreateSweepOrdersCommandHandler().Handle(c.Context(), command)
				if err != nil {
					return err
				}
				fmt.Fprintf(c.OutOrStdout(), "removed %d finished orders\n", removed)
				return nil
			})
		},
	}
	sweepCmd.Flags().IntVar(&retentionHours, "retention-hours", 24, "Keep finished orders changed within this many hours (default RETENTION_HOURS)")
	return sweepCmd
}

func newSimulateCmd() *cobra.Command {
	var (
		channel string
		count   int
	)

	simulateCmd := &cobra.Command{
		Use:   "simulate",
		Short: "Create sample orders as if they came from a delivery channel",
		RunE: func(c *cobra.Command, _ []string) error {
			source, err := order.ParseSource(channel)
			if err != nil {
				return err
			}
			if count < 1 || count > simulator.MaxCount {
				return fmt.Errorf("--count must be between 1 and %d, got %d", simulator.MaxCount, count)
			}

			return withApp(func(_ env, app *cmd.CompositionRoot) error {
				ids, err := app.CreateSimulator().Simulate(c.Context(), source, count)
				for _, id := range ids {
					fmt.Fprintf(c.OutOrStdout(), "created order %d from %s\n", id, source)
				}
				return err
			})
		},
	}
	simulateCmd.Flags().StringVar(&channel, "channel", order.SourceIFood.String(), "ifood, 99food or whatsapp")
	simulateCmd.Flags().IntVar(&count, "count", 1, fmt.Sprintf("Number of orders to create (at most %d)", simulator.MaxCount))
	return simulateCmd
}
