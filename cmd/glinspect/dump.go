package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wippyai/glinspect/snapshot"
)

func newDumpCommand(opts *rootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Capture the program into a TOML snapshot",
		Long: `Capture every interface of the program into a snapshot fixture. The
fixture can be served later with --fixture, without a GL context.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opts.cfg, opts.logger)
			if err != nil {
				return err
			}
			defer s.close()

			p, err := snapshot.Capture(s.native, s.insp.Program(), s.insp.Name())
			if err != nil {
				return err
			}
			snap := &snapshot.Snapshot{Programs: []snapshot.Program{*p}}
			if output == "" {
				return snapshot.Encode(cmd.OutOrStdout(), snap)
			}
			if err := snapshot.Save(output, snap); err != nil {
				return err
			}
			opts.logger.Info("snapshot written", zap.String("path", output), zap.Int("interfaces", len(p.Interfaces)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to file instead of stdout")
	return cmd
}
