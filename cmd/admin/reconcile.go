package main

import (
	"encoding/json"
	"errors"

	"github.com/spf13/cobra"

	"github.com/osse101/StudyGarden_Go/internal/clock"
	"github.com/osse101/StudyGarden_Go/internal/wallet"
)

// errLedgerMismatch makes the command exit non-zero on drift
var errLedgerMismatch = errors.New("wallet balance does not match ledger")

func newReconcileCmd(cc *cliContext) *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile <userID>",
		Short: "Compare a wallet balance with the sum of its ledger",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := cc.openStorage(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			res, err := wallet.NewService(st.Wallets, clock.NewRealClock()).Reconcile(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(res); err != nil {
				return err
			}
			if !res.Consistent {
				return errLedgerMismatch
			}
			return nil
		},
	}
}
