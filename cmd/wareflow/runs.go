package main

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/wareflow/persistence"
)

// NewRunsCommand creates the runs command
func NewRunsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "runs",
		Short: "List runs saved in the snapshot store",
		Long: `List the runs saved in the store configured by store.path, newest first.

Examples:
  wareflow runs
  WAREFLOW_STORE_PATH=runs.db wareflow runs`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Store.Path == "" {
				return errors.New("store.path is not configured")
			}
			store, err := persistence.Open(cfg.Store.Path)
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.Runs()
			if err != nil {
				return err
			}
			last, err := store.GetMeta("last_run")
			if err != nil && !errors.Is(err, sql.ErrNoRows) {
				return err
			}

			w := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(w, "No runs saved")
				return nil
			}
			for _, r := range runs {
				mark := " "
				if r.ID.String() == last {
					mark = "*"
				}
				fmt.Fprintf(w, "%s %s  saved at %-8d  %d economies\n", mark, r.ID, r.SavedAt, r.Economies)
			}

			return nil
		},
	}
}
