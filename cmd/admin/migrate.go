package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/osse101/StudyGarden_Go/internal/config"
	"github.com/osse101/StudyGarden_Go/internal/database"
)

func newMigrateCmd(cc *cliContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database schema migrations",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return cc.withMigrator(cmd, func(m *database.Migrator) error {
					applied, err := m.Up(cmd.Context())
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "applied %d migration(s)\n", applied)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return cc.withMigrator(cmd, func(m *database.Migrator) error {
					return m.Down(cmd.Context())
				})
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "List migrations and whether they are applied",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return cc.withMigrator(cmd, func(m *database.Migrator) error {
					statuses, err := m.Status(cmd.Context())
					if err != nil {
						return err
					}
					out := cmd.OutOrStdout()
					for _, s := range statuses {
						state := "pending"
						if s.Applied {
							state = "applied"
						}
						fmt.Fprintf(out, "%-6d %-8s %s\n", s.Version, state, s.Path)
					}
					return nil
				})
			},
		},
	)
	return cmd
}

func (cc *cliContext) withMigrator(cmd *cobra.Command, fn func(*database.Migrator) error) error {
	if cc.cfg.StorageBackend != config.StorageBackendPostgres {
		return fmt.Errorf("migrations require STORAGE_BACKEND=%s", config.StorageBackendPostgres)
	}

	pool, err := database.NewPool(cc.cfg.GetDBConnString(), cc.cfg.DBMaxConns, cc.cfg.DBMaxConnIdle, cc.cfg.DBMaxConnLifetime)
	if err != nil {
		return err
	}
	defer pool.Close()

	migrator, err := database.NewMigrator(pool)
	if err != nil {
		return err
	}
	defer migrator.Close()

	return fn(migrator)
}
