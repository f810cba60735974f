package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/wareflow/syncstream"
)

// NewDigestCommand creates the digest command
func NewDigestCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "digest <sync.zst>",
		Short: "Print the run id and digest of a sync stream file",
		Long: `Decompress a sync stream file and print its run id and SHA-256 digest.
Two instances of one session agree iff their digests match.

Examples:
  wareflow digest sync.zst`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			run, payload, err := syncstream.ReadFile(args[0])
			if err != nil {
				return err
			}
			d := syncstream.NewDigest()
			if _, err := d.Write(payload); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Run ID:  %s\n", run)
			fmt.Fprintf(w, "Bytes:   %d\n", len(payload))
			fmt.Fprintf(w, "Digest:  %s\n", d.Sum())

			return nil
		},
	}
}
