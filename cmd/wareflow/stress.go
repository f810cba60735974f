package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/wareflow/builder"
	"github.com/katalvlaran/wareflow/core"
	"github.com/katalvlaran/wareflow/depot"
	"github.com/katalvlaran/wareflow/economy"
)

// NewStressCommand creates the stress command
func NewStressCommand() *cobra.Command {
	var (
		rows, cols int
		requests   int
		depots     int
		stock      int
		seed       int64
		until      int64
	)

	cmd := &cobra.Command{
		Use:   "stress",
		Short: "Balance a generated grid network and report throughput",
		Long: `Build a rows×cols grid of flags, place depots evenly along it, register
random log requests and run the balancer with auto delivery.

Examples:
  wareflow stress
  wareflow stress --rows 40 --cols 40 --requests 1000 --depots 8 --seed 7`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if depots < 1 {
				return fmt.Errorf("--depots must be at least 1")
			}
			cat := &economy.Table{Wares: []economy.TypeSpec{{Name: "log"}}}
			opts := append(cfg.EconomyOptions(),
				economy.WithLogger(cfg.Logger(os.Stderr)),
				economy.WithAutoDelivery())
			s := economy.NewSession(cat, opts...)
			rng := rand.New(rand.NewSource(seed))

			layout, err := builder.BuildNetwork(s,
				[]builder.BuilderOption{builder.WithRand(rng), builder.WithUniformSlack(0, 4)},
				builder.Grid(rows, cols))
			if err != nil {
				return err
			}

			flags := layout.Flags
			step := len(flags) / depots
			if step < 1 {
				step = 1
			}
			for i := 0; i < depots && i*step < len(flags); i++ {
				if _, err := depot.New(s, flags[i*step], depot.WithStock(core.KindWare, 0, stock)); err != nil {
					return err
				}
			}
			var reqs []*economy.Request
			for i := 0; i < requests; i++ {
				f := flags[rng.Intn(len(flags))]
				r := economy.NewRequest(f, core.KindWare, 0, 1+rng.Intn(3), economy.WithPriority(rng.Intn(4)))
				if err := s.AddRequest(r); err != nil {
					return err
				}
				reqs = append(reqs, r)
			}

			started := time.Now()
			if err := s.Advance(economy.Time(until)); err != nil {
				return err
			}
			elapsed := time.Since(started)

			var want, got int
			for _, r := range reqs {
				want += r.Count()
				got += r.Delivered()
			}
			e := s.EconomyOf(flags[0], core.KindWare)

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, "✓ Stress run finished")
			fmt.Fprintf(w, "  Flags/Roads:  %d/%d\n", len(flags), len(layout.Roads))
			fmt.Fprintf(w, "  Districts:    %d\n", e.Districts())
			fmt.Fprintf(w, "  Delivered:    %d/%d\n", got, want)
			fmt.Fprintf(w, "  In flight:    %d\n", len(s.Transfers()))
			fmt.Fprintf(w, "  Wall time:    %s\n", elapsed.Round(time.Millisecond))

			return s.Validate()
		},
	}

	cmd.Flags().IntVar(&rows, "rows", 10, "Grid rows")
	cmd.Flags().IntVar(&cols, "cols", 10, "Grid columns")
	cmd.Flags().IntVar(&requests, "requests", 50, "Number of random requests")
	cmd.Flags().IntVar(&depots, "depots", 2, "Number of depots")
	cmd.Flags().IntVar(&stock, "stock", 100, "Logs per depot")
	cmd.Flags().Int64Var(&seed, "seed", 1, "Random seed")
	cmd.Flags().Int64Var(&until, "until", 20000, "Game time to run to")

	return cmd
}
