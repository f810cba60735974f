package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/wareflow/economy"
	"github.com/katalvlaran/wareflow/metrics"
	"github.com/katalvlaran/wareflow/persistence"
	"github.com/katalvlaran/wareflow/scenario"
	"github.com/katalvlaran/wareflow/syncstream"
)

// NewRunCommand creates the run command
func NewRunCommand() *cobra.Command {
	var (
		until      int64
		metricsOut string
		resume     string
	)

	cmd := &cobra.Command{
		Use:   "run <scenario.yaml>",
		Short: "Run a scenario and report transfers and deliveries",
		Long: `Run a scenario file until its end time (or --until) and print the
transfers in flight and the state of every named request.

The sync stream digest is always printed. With sync.path configured the
stream is also written to a zstd file; with store.path configured the final
economy snapshots are saved under the run id. --resume applies the target
quantities and timers of a saved run to the freshly built scenario before
playing it.

Examples:
  wareflow run scenario.yaml
  wareflow run scenario.yaml --until 5000
  wareflow run scenario.yaml --resume 5f0c8e1a-3b7d-4c2e-9a41-0d6b2f8e7c13
  WAREFLOW_ECONOMY_AUTO_DELIVER=true wareflow run scenario.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := scenario.Load(args[0])
			if err != nil {
				return err
			}
			end := doc.Until
			if cmd.Flags().Changed("until") {
				end = economy.Time(until)
			}

			var from uuid.UUID
			if resume != "" {
				if cfg.Store.Path == "" {
					return errors.New("--resume needs store.path")
				}
				if from, err = uuid.Parse(resume); err != nil {
					return fmt.Errorf("--resume: %w", err)
				}
			}

			runID := uuid.New()
			log := cfg.Logger(os.Stderr)

			// 1) Sync stream: always hashed, optionally written to disk.
			digest := syncstream.NewDigest()
			stream := syncstream.Stream(digest)
			var sink *syncstream.FileSink
			if cfg.Sync.Path != "" {
				sink, err = syncstream.NewFileSink(cfg.Sync.Path, runID)
				if err != nil {
					return err
				}
				defer sink.Close()
				stream = syncstream.Tee(digest, sink)
			}

			// 2) Session options.
			opts := append(cfg.EconomyOptions(), economy.WithLogger(log), economy.WithStream(stream))
			var reg *prometheus.Registry
			if cfg.Metrics.Enabled {
				reg = prometheus.NewRegistry()
				col := metrics.NewCollector(cfg.Metrics.Namespace)
				if err := col.Register(reg); err != nil {
					return err
				}
				opts = append(opts, economy.WithRecorder(col))
			}

			// 3) Build and play.
			world, err := scenario.Build(doc, opts...)
			if err != nil {
				return err
			}
			if resume != "" {
				savedAt, err := restoreRun(world.Session, from)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Restored run %s (saved at %d)\n", from, savedAt)
			}
			log.Info("scenario loaded", "name", doc.Name, "run", runID, "until", end)
			if err := world.Run(end); err != nil {
				return fmt.Errorf("run failed: %w", err)
			}
			if sink != nil {
				if err := sink.Close(); err != nil {
					return fmt.Errorf("sync stream: %w", err)
				}
			}

			printReport(cmd.OutOrStdout(), world, runID, digest.Sum())

			// 4) Optional artifacts.
			if cfg.Store.Path != "" {
				if err := saveRun(world.Session, runID); err != nil {
					return err
				}
			}
			if metricsOut != "" && reg != nil {
				if err := writeMetrics(metricsOut, reg); err != nil {
					return err
				}
			}

			return world.Session.Validate()
		},
	}

	cmd.Flags().Int64Var(&until, "until", 0, "Game time to run to (default: the scenario's until)")
	cmd.Flags().StringVar(&resume, "resume", "", "Restore targets and timers of a saved run id first")
	cmd.Flags().StringVar(&metricsOut, "metrics-out", "", "Write Prometheus metrics to this file (needs metrics.enabled)")

	return cmd
}

func printReport(w io.Writer, world *scenario.World, runID uuid.UUID, digest string) {
	s := world.Session
	cat := s.Catalog()

	fmt.Fprintln(w, "✓ Scenario finished")
	fmt.Fprintf(w, "  Run ID:     %s\n", runID)
	fmt.Fprintf(w, "  Game time:  %d\n", s.Now())
	fmt.Fprintf(w, "  Economies:  %d\n", len(s.Economies()))
	fmt.Fprintf(w, "  Digest:     %s\n", digest)

	transfers := s.Transfers()
	fmt.Fprintf(w, "\nTransfers in flight (%d):\n", len(transfers))
	for _, t := range transfers {
		dest := "storage"
		if r := t.Request(); r != nil {
			dest = fmt.Sprintf("request %d", r.Serial())
		}
		fmt.Fprintf(w, "  #%-5d %-6s %-12s from %-5d to %-12s cost %-6d imported=%t\n",
			t.Serial(), t.Kind(), cat.TypeName(t.Kind(), t.Type()),
			t.Supply().Serial(), dest, t.Cost(), t.Imported())
	}

	names := world.RequestNames()
	fmt.Fprintf(w, "\nRequests (%d):\n", len(names))
	for _, name := range names {
		r := world.Request(name)
		state := "open"
		if !r.Registered() {
			state = "done"
			if r.Delivered() < r.Count() {
				state = "cancelled"
			}
		}
		fmt.Fprintf(w, "  %-16s %-12s %d/%d  %s\n",
			name, cat.TypeName(r.Kind(), r.Type()), r.Delivered(), r.Count(), state)
	}
}

func saveRun(s *economy.Session, runID uuid.UUID) error {
	store, err := persistence.Open(cfg.Store.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.SaveSession(runID, s.Now(), s.Snapshot()); err != nil {
		return err
	}

	return store.SaveMeta("last_run", runID.String())
}

func restoreRun(s *economy.Session, id uuid.UUID) (economy.Time, error) {
	store, err := persistence.Open(cfg.Store.Path)
	if err != nil {
		return 0, err
	}
	defer store.Close()

	snaps, savedAt, err := store.LoadSession(id)
	if err != nil {
		return 0, err
	}
	if err := s.Restore(snaps); err != nil {
		return 0, fmt.Errorf("restore %s: %w", id, err)
	}

	return savedAt, nil
}

func writeMetrics(path string, reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := expfmt.NewEncoder(f, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}

	return nil
}
