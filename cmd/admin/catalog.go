package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/osse101/StudyGarden_Go/internal/bootstrap"
)

func newCatalogCmd(cc *cliContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the item catalog",
	}

	var file string
	sync := &cobra.Command{
		Use:   "sync",
		Short: "Validate a catalog file and upsert its items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := file
			if path == "" {
				path = cc.cfg.CatalogPath
			}

			st, err := cc.openStorage(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			res, err := bootstrap.SyncCatalog(cmd.Context(), path, st.Items)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "inserted=%d updated=%d skipped=%d\n",
				res.ItemsInserted, res.ItemsUpdated, res.ItemsSkipped)
			return nil
		},
	}
	sync.Flags().StringVarP(&file, "file", "f", "", "catalog JSON file (defaults to CATALOG_PATH)")

	cmd.AddCommand(sync)
	return cmd
}
