package main

import (
	"github.com/spf13/cobra"

	"github.com/wippyai/glinspect/report"
)

func newCountsCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "counts",
		Short: "Print the live active resource count of every interface",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opts.cfg, opts.logger)
			if err != nil {
				return err
			}
			defer s.close()
			return report.RenderCounts(cmd.OutOrStdout(), s.insp)
		},
	}
}
