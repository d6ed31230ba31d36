package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	logger_adapter "discovery-service/internal/adapters/logger"
	postgres_adapter "discovery-service/internal/adapters/postgres"
	"discovery-service/internal/contextkeys"
	"discovery-service/internal/core/port"
	"discovery-service/pkg/postgres"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// RootOptions - общие флаги всех команд
type RootOptions struct {
	DatabaseURL string
	EnvFile     string
	Timeout     time.Duration
	Verbose     bool
}

// NewRootCommand собирает CLI обслуживания базы каталога
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Discovery catalog maintenance",
		Long:  "Applies the catalog schema and loads deterministic demo data for local development.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.EnvFile != "" {
				if err := godotenv.Load(opts.EnvFile); err != nil {
					return fmt.Errorf("could not load env file %s: %w", opts.EnvFile, err)
				}
			}
			if opts.DatabaseURL == "" {
				opts.DatabaseURL = os.Getenv("DATABASE_URL")
			}
			if opts.DatabaseURL == "" {
				return fmt.Errorf("database url is required: pass --database-url or set DATABASE_URL")
			}
			if opts.Timeout <= 0 {
				return fmt.Errorf("timeout must be positive, got %s", opts.Timeout)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.DatabaseURL, "database-url", "", "PostgreSQL connection string (default $DATABASE_URL)")
	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", "", "load environment from this .env file first")
	cmd.PersistentFlags().DurationVar(&opts.Timeout, "timeout", 2*time.Minute, "overall timeout for the command")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging")

	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewDemoCommand(opts))

	return cmd
}

// NewMigrateCommand применяет встроенную схему
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "migrate",
		Short:        "Apply the embedded catalog schema",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSeeder(cmd, rootOpts, func(ctx context.Context, seeder *postgres_adapter.Seeder) error {
				if err := seeder.Migrate(ctx); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "schema applied")
				return nil
			})
		},
	}
}

// NewDemoCommand загружает демо-данные, с --migrate сначала применяет схему
func NewDemoCommand(rootOpts *RootOptions) *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:          "demo",
		Short:        "Upsert deterministic demo cities, dictionaries, artists and venues",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSeeder(cmd, rootOpts, func(ctx context.Context, seeder *postgres_adapter.Seeder) error {
				if migrate {
					if err := seeder.Migrate(ctx); err != nil {
						return err
					}
				}
				report, err := seeder.SeedDemo(ctx)
				if err != nil {
					return err
				}
				printReport(cmd, report)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply the schema before seeding")
	return cmd
}

func printReport(cmd *cobra.Command, report *postgres_adapter.SeedReport) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "cities:    %d\n", report.Cities)
	fmt.Fprintf(out, "genres:    %d\n", report.Genres)
	fmt.Fprintf(out, "amenities: %d\n", report.Amenities)
	fmt.Fprintf(out, "artists:   %d\n", report.Artists)
	fmt.Fprintf(out, "venues:    %d\n", report.Venues)
}

// withSeeder открывает пул на время команды и кладет логгер в контекст
func withSeeder(cmd *cobra.Command, opts *RootOptions, run func(ctx context.Context, seeder *postgres_adapter.Seeder) error) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), opts.Timeout)
	defer cancel()

	logger := newLogger(cmd, opts.Verbose)
	ctx = contextkeys.ContextWithLogger(ctx, logger)

	pool, err := postgres.NewClient(ctx, postgres.Config{DatabaseURL: opts.DatabaseURL, MaxConns: 2})
	if err != nil {
		logger.Error("Failed to connect to PostgreSQL", err, nil)
		return err
	}
	defer pool.Close()

	seeder, err := postgres_adapter.NewSeeder(pool)
	if err != nil {
		return err
	}
	return run(ctx, seeder)
}

func newLogger(cmd *cobra.Command, verbose bool) port.LoggerPort {
	cfg := logger_adapter.SlogConfig{Writer: cmd.ErrOrStderr(), UseColor: true}
	if verbose {
		cfg.Level = slog.LevelDebug
	}
	return logger_adapter.NewSlogAdapter(cfg).WithFields(port.Fields{"command": cmd.Name()})
}
