package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cardboard/core/internal/adapters/cache"
	"github.com/cardboard/core/internal/adapters/repository"
	"github.com/cardboard/core/internal/application/services"
	"github.com/cardboard/core/internal/domain/entities"
	"github.com/cardboard/core/internal/infrastructure/config"
	"github.com/cardboard/core/internal/infrastructure/database"
	"github.com/cardboard/core/internal/infrastructure/logger"
	"github.com/cardboard/core/internal/infrastructure/server"
	"github.com/cardboard/core/internal/ports"
)

// Version is overridden at build time with -ldflags.
var Version = "dev"

const cacheKeyPrefix = "cardboard:"

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	var migrateFirst bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the Cardboard API server",
		Long:  "Start the Cardboard API server with all configured routes and middleware",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), migrateFirst)
		},
	}

	cmd.Flags().BoolVar(&migrateFirst, "migrate", false, "Apply pending migrations before serving")
	return cmd
}

// NewMigrateCommand creates the migrate command with subcommands
func NewMigrateCommand() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration commands",
		Long:  "Manage database migrations (up, down, version)",
	}

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Run all up migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigration(cmd.OutOrStdout(), (*database.Migrator).Up, "up")
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Run all down migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigration(cmd.OutOrStdout(), (*database.Migrator).Down, "down")
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print current migration version",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showMigrationVersion(cmd.OutOrStdout())
		},
	})

	return migrateCmd
}

// NewTemplatesCommand creates the template management command
func NewTemplatesCommand() *cobra.Command {
	templatesCmd := &cobra.Command{
		Use:   "templates",
		Short: "Card template commands",
		Long:  "Seed and inspect the card template catalogue",
	}

	templatesCmd.AddCommand(&cobra.Command{
		Use:   "seed",
		Short: "Create or refresh one built-in template per card type",
		RunE: func(cmd *cobra.Command, args []string) error {
			return seedTemplates(cmd.Context(), cmd.OutOrStdout())
		},
	})

	templatesCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List card templates, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listTemplates(cmd.Context(), cmd.OutOrStdout())
		},
	})

	return templatesCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print Cardboard version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "Cardboard %s\n", Version)
		},
	}
}

func runServer(ctx context.Context, migrateFirst bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer appLogger.Close()

	if migrateFirst {
		if err := database.Migrate(cfg.Database); err != nil {
			return err
		}
		appLogger.Infow("Migrations applied")
	}

	db, err := database.New(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	appCache, closeCache := newCache(ctx, cfg.Redis, appLogger)
	defer closeCache()

	srv, err := server.New(cfg, db, appCache, appLogger)
	if err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	appLogger.Infow("Starting Cardboard API server",
		"port", cfg.Server.Port,
		"environment", cfg.App.Environment,
		"database", cfg.Database.Driver,
	)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port))
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

// newCache connects to Redis when enabled. A failed connection is logged and
// the server runs without a cache.
func newCache(ctx context.Context, cfg config.RedisConfig, log *logger.Logger) (ports.CacheRepository, func()) {
	if !cfg.Enabled {
		return cache.Noop{}, func() {}
	}

	client, err := cache.NewRedisClient(ctx, cfg)
	if err != nil {
		log.WithError(err).Warnw("Redis unavailable, default configs will not be cached")
		return cache.Noop{}, func() {}
	}

	return cache.NewRedisCache(client, cacheKeyPrefix), func() { client.Close() }
}

func runMigration(out io.Writer, step func(*database.Migrator) (bool, error), direction string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	db, err := database.New(cfg.Database)
	if err != nil {
		return err
	}

	m, err := database.NewMigrator(db)
	if err != nil {
		db.Close()
		return err
	}
	defer m.Close()

	changed, err := step(m)
	if err != nil {
		return fmt.Errorf("migration %s failed: %w", direction, err)
	}

	if !changed {
		fmt.Fprintln(out, "No migrations to run")
	} else {
		fmt.Fprintf(out, "Migration %s completed successfully\n", direction)
	}
	return nil
}

func showMigrationVersion(out io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	db, err := database.New(cfg.Database)
	if err != nil {
		return err
	}

	m, err := database.NewMigrator(db)
	if err != nil {
		db.Close()
		return err
	}
	defer m.Close()

	version, dirty, err := m.Version()
	if err != nil {
		return fmt.Errorf("failed to get migration version: %w", err)
	}

	fmt.Fprintf(out, "Current migration version: %d\n", version)
	fmt.Fprintf(out, "Dirty: %t\n", dirty)
	return nil
}

func seedTemplates(ctx context.Context, out io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer appLogger.Close()

	db, err := database.New(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	appCache, closeCache := newCache(ctx, cfg.Redis, appLogger)
	defer closeCache()

	templateRepo := repository.NewTemplateRepository(db)
	resolver := services.NewDefaultResolver(templateRepo, appCache, cfg.Redis.TemplateTTL, appLogger)
	templateService := services.NewTemplateService(templateRepo, resolver, services.NewValidator(), appLogger)

	seeded, err := templateService.SeedBuiltinTemplates(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Seeded %d templates\n", len(seeded))
	return printTemplates(out, seeded)
}

func listTemplates(ctx context.Context, out io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	db, err := database.New(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	templates, err := repository.NewTemplateRepository(db).List(ctx)
	if err != nil {
		return err
	}
	return printTemplates(out, templates)
}

func printTemplates(out io.Writer, templates []*entities.CardTemplate) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTYPE\tUPDATED")
	for _, t := range templates {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", t.ID, t.Name, t.Type, t.UpdatedAt.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}
