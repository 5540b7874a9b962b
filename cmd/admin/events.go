package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/osse101/StudyGarden_Go/internal/eventlog"
)

func newEventsCmd(cc *cliContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Maintain the persisted event log",
	}

	var days int
	prune := &cobra.Command{
		Use:   "prune",
		Short: "Delete events older than the retention period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if days == 0 {
				days = cc.cfg.EventRetentionDays
			}
			if days < 1 {
				return fmt.Errorf("--days must be at least 1")
			}

			st, err := cc.openStorage(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			deleted, err := eventlog.NewCleanupJob(eventlog.NewService(st.EventLog), days).Process(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %d event(s) older than %d day(s)\n", deleted, days)
			return nil
		},
	}
	prune.Flags().IntVar(&days, "days", 0, "retention in days (defaults to EVENT_RETENTION_DAYS)")

	cmd.AddCommand(prune)
	return cmd
}
