// Package commands holds the nexusctl subcommands.
package commands

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/spf13/cobra"

	"github.com/pranav-2399/nexus-website/internal/adapters/repository"
	"github.com/pranav-2399/nexus-website/internal/config"
	"github.com/pranav-2399/nexus-website/pkg/logger"
)

// InitMigrateCommands registers "migrate up|down|version".
func InitMigrateCommands(root *cobra.Command) {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE:  migrateUp,
	}

	downCmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations (postgres only)",
		Args:  cobra.NoArgs,
		RunE:  migrateDown,
	}
	downCmd.Flags().Int("steps", 1, "Number of migrations to roll back")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the current schema version (postgres only)",
		Args:  cobra.NoArgs,
		RunE:  migrateVersion,
	}

	migrateCmd.AddCommand(upCmd, downCmd, versionCmd)
	root.AddCommand(migrateCmd)
}

func loadDatabase(cmd *cobra.Command) (repository.Settings, error) {
	cfg, err := config.Load(cmd.Context())
	if err != nil {
		return repository.Settings{}, err
	}
	return repository.Settings{
		Driver:       cfg.Database.Driver,
		DSN:          cfg.Database.DSN,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
	}, nil
}

func postgresMigrator(cmd *cobra.Command) (*migrate.Migrate, error) {
	settings, err := loadDatabase(cmd)
	if err != nil {
		return nil, err
	}
	if settings.Driver != repository.DriverPostgres {
		return nil, fmt.Errorf("%w: configured driver is %q", ErrUnsupportedDriver, settings.Driver)
	}
	return repository.NewMigrator(settings.DSN)
}

func migrateUp(cmd *cobra.Command, _ []string) error {
	settings, err := loadDatabase(cmd)
	if err != nil {
		return err
	}
	db, err := repository.NewDBConnection(settings)
	if err != nil {
		return err
	}
	defer func() { _ = repository.CloseDB(db) }()

	if err := repository.Migrate(cmd.Context(), db, settings); err != nil {
		return err
	}
	logger.Get().Named("migrate").Info(cmd.Context(), "schema is up to date", logger.String("driver", settings.Driver))
	fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")
	return nil
}

func migrateDown(cmd *cobra.Command, _ []string) error {
	steps, err := cmd.Flags().GetInt("steps")
	if err != nil {
		return err
	}
	if steps <= 0 {
		return ErrInvalidSteps
	}
	m, err := postgresMigrator(cmd)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("%w: down: %v", repository.ErrMigrate, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "rolled back %d migration(s)\n", steps)
	return nil
}

func migrateVersion(cmd *cobra.Command, _ []string) error {
	m, err := postgresMigrator(cmd)
	if err != nil {
		return err
	}
	defer m.Close()

	version, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		fmt.Fprintln(cmd.OutOrStdout(), "no migrations applied")
		return nil
	case err != nil:
		return fmt.Errorf("%w: version: %v", repository.ErrMigrate, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "version %d (dirty=%t)\n", version, dirty)
	return nil
}
