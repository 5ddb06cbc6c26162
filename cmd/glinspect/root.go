package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wippyai/glinspect/config"
	"github.com/wippyai/glinspect/handler"
	"github.com/wippyai/glinspect/inspector"
	"github.com/wippyai/glinspect/introspect"
	"github.com/wippyai/glinspect/opengl"
	"github.com/wippyai/glinspect/watch"
)

// Version is set at build time.
var Version = "dev"

type rootOptions struct {
	cfg        *config.Config
	logger     *zap.Logger
	configPath string
	fixture    string
	logLevel   string
	interfaces []string
	programID  uint32
}

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "glinspect",
		Short: "Inspect the active resources of linked GL programs",
		Long: `glinspect queries the program interfaces of a linked OpenGL program
(uniforms, blocks, inputs, outputs, buffer variables, transform feedback
and subroutines) and shows every active resource with its properties.

Programs come from GLSL sources compiled in a hidden GL 4.3 context, or
from a TOML snapshot fixture captured earlier with "glinspect dump".`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Config file (default ./glinspect.{toml,yaml})")
	flags.StringVar(&opts.fixture, "fixture", "", "Snapshot fixture to serve instead of a GL context")
	flags.Uint32Var(&opts.programID, "program-id", 1, "Program id within the fixture")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flags.StringSliceVar(&opts.interfaces, "interfaces", nil, "Interfaces to show (default all)")

	rootCmd.AddCommand(newShowCommand(opts))
	rootCmd.AddCommand(newCountsCommand(opts))
	rootCmd.AddCommand(newDumpCommand(opts))
	rootCmd.AddCommand(newTUICommand(opts))

	return rootCmd
}

// load reads the configuration, applies flag overrides and installs the
// configured logger in every package.
func (o *rootOptions) load(cmd *cobra.Command) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("fixture") {
		cfg.Program.Fixture = o.fixture
	}
	if flags.Changed("program-id") {
		cfg.Program.FixtureID = o.programID
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = o.logLevel
	}
	if flags.Changed("interfaces") {
		cfg.Display.Interfaces = o.interfaces
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	logger, err := cfg.Log.NewLogger()
	if err != nil {
		return err
	}
	introspect.SetLogger(logger.Named("introspect"))
	inspector.SetLogger(logger.Named("inspector"))
	handler.SetLogger(logger.Named("handler"))
	opengl.SetLogger(logger.Named("opengl"))
	watch.SetLogger(logger.Named("watch"))

	o.cfg = cfg
	o.logger = logger
	return nil
}

// Execute runs the root command
func Execute() error {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		errorColor := color.New(color.FgRed, color.Bold)
		errorColor.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		return err
	}
	return nil
}
