package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wippyai/glinspect/report"
	"github.com/wippyai/glinspect/watch"
)

func newShowCommand(opts *rootOptions) *cobra.Command {
	var watchFlag bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print every active resource of the program",
		Long: `Print the collected resources of every program interface.

With --watch the program is relinked whenever one of its sources (or the
fixture file) changes, and the report is printed again.

Examples:
  glinspect show --fixture phong.toml --program-id 1
  glinspect show -c glinspect.toml --watch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opts.cfg, opts.logger)
			if err != nil {
				return err
			}
			defer s.close()

			if err := s.initialize(opts.logger); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			ropts := report.Options{
				Interfaces: s.insp.Interfaces(),
				HideEmpty:  opts.cfg.Display.HideEmpty,
			}
			if err := report.Render(out, s.insp, ropts); err != nil {
				return err
			}

			if !watchFlag && !opts.cfg.Watch.Enabled {
				return nil
			}
			return watchAndRender(out, s, ropts, opts)
		},
	}

	cmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Relink and print again when sources change")
	return cmd
}

// watchAndRender relinks on the calling thread, which owns the GL context;
// the watcher only signals it.
func watchAndRender(out io.Writer, s *session, ropts report.Options, opts *rootOptions) error {
	changes := make(chan []string, 1)
	fw, err := watch.New(s.paths, opts.cfg.Watch.Debounce, func(files []string) {
		select {
		case changes <- files:
		default:
		}
	})
	if err != nil {
		return err
	}
	if err := fw.Start(); err != nil {
		return err
	}
	defer func() { _ = fw.Stop() }()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	info := color.New(color.FgYellow)
	info.Fprintf(out, "\nWatching %d file(s), press Ctrl+C to stop\n", len(s.paths))

	for {
		select {
		case files := <-changes:
			opts.logger.Info("sources changed", zap.Strings("files", files))
			if !s.relink(opts.logger) {
				color.New(color.FgRed).Fprintln(out, "relink failed, keeping the previous program")
				continue
			}
			fmt.Fprintln(out)
			if err := report.Render(out, s.insp, ropts); err != nil {
				return err
			}
		case <-sigChan:
			return nil
		}
	}
}
