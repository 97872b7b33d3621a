package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/okian/talentmatch/internal/seed"
)

func newGenerateCmd() *cobra.Command {
	var (
		requests int
		talents  int
		seedVal  uint64
		output   string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a synthetic dataset as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if requests < 0 || talents < 0 {
				return fmt.Errorf("counts must not be negative: requests=%d talents=%d", requests, talents)
			}
			ds := seed.NewGenerator(seedVal).Dataset(requests, talents)

			var w io.Writer = cmd.OutOrStdout()
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create %s: %w", output, err)
				}
				defer f.Close()
				w = f
			}

			if err := seed.Encode(w, ds); err != nil {
				return fmt.Errorf("encode dataset: %w", err)
			}
			if output != "" && output != "-" {
				fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d requests and %d talents to %s\n", requests, talents, output)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&requests, "requests", "r", 10, "number of client requests")
	cmd.Flags().IntVarP(&talents, "talents", "t", 1000, "number of talents")
	cmd.Flags().Uint64Var(&seedVal, "seed", 1, "generator seed; the same seed yields the same dataset")
	cmd.Flags().StringVarP(&output, "output", "o", "-", "output file, - for stdout")
	return cmd
}
