package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/okian/talentmatch/internal/client"
	"github.com/okian/talentmatch/internal/seed"
)

func newLoadCmd(root *rootOptions) *cobra.Command {
	var workers int

	cmd := &cobra.Command{
		Use:   "load <dataset.yaml>",
		Short: "Post every record of a dataset file to the server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := seed.LoadFile(args[0])
			if err != nil {
				return err
			}

			c := root.newClient(client.WithWorkers(workers))
			if err := c.Health(cmd.Context()); err != nil {
				return fmt.Errorf("server at %s is not healthy: %w", root.baseURL, err)
			}

			res, err := c.Load(cmd.Context(), ds)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "requests: %d\ntalents: %d\nduplicate: %d\nfailed: %d\n",
				res.Requests, res.Talents, res.Duplicate, res.Failed)
			if res.Failed > 0 {
				return fmt.Errorf("%d records failed", res.Failed)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&workers, "workers", "w", client.DefaultWorkers, "concurrent submissions; 1 keeps file order")
	return cmd
}
