package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/okian/talentmatch/internal/domain/matching"
)

func newMatchesCmd(root *rootOptions) *cobra.Command {
	var (
		limit  int
		top    bool
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "matches <request-id>",
		Short: "Print the ranked talents of a client request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := root.newClient()

			var matches []matching.Match
			if top {
				m, err := c.FindTopMatches(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				matches = m
			} else {
				res, err := c.FindMatches(cmd.Context(), args[0], limit)
				if err != nil {
					return err
				}
				matches = res.Matches
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(matches)
			}
			return printMatches(cmd.OutOrStdout(), matches)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "maximum matches; 0 uses the server default")
	cmd.Flags().BoolVar(&top, "top", false, "fetch the top matches only")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print raw match JSON")
	return cmd
}

func printMatches(w io.Writer, matches []matching.Match) error {
	if len(matches) == 0 {
		_, err := fmt.Fprintln(w, "no matches")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tSCORE\tID\tNAME\tCITY\tEXPLANATION")
	for _, m := range matches {
		fmt.Fprintf(tw, "%d\t%.2f\t%s\t%s\t%s\t%s\n",
			m.Rank, m.TotalScore, m.Talent.ID, m.Talent.Name, m.Talent.City, m.Explanation)
	}
	return tw.Flush()
}
