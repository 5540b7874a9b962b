package main

import (
	"github.com/spf13/cobra"

	"github.com/osse101/StudyGarden_Go/internal/bootstrap"
	"github.com/osse101/StudyGarden_Go/internal/config"
)

// cliContext carries the loaded configuration to subcommands
type cliContext struct {
	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	cc := &cliContext{}

	root := &cobra.Command{
		Use:           "admin",
		Short:         "Operational tasks for the StudyGarden backend",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			bootstrap.SetupLogger(cfg)
			cc.cfg = cfg
			return nil
		},
	}

	root.AddCommand(
		newMigrateCmd(cc),
		newCatalogCmd(cc),
		newReconcileCmd(cc),
		newEventsCmd(cc),
	)
	return root
}

// openStorage opens the configured backend without running migrations
func (cc *cliContext) openStorage(cmd *cobra.Command) (*bootstrap.Storage, error) {
	cfg := *cc.cfg
	cfg.RunMigrations = false
	return bootstrap.InitializeStorage(cmd.Context(), &cfg)
}
