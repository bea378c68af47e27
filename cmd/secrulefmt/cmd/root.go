// Package cmd implements the secrulefmt command line.
package cmd

import (
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"secrulelang/config"
	"secrulelang/logging"
	"secrulelang/ruleset"
)

// app is the state shared by all subcommands, set up before any of them runs.
type app struct {
	configFile string
	logLevel   string
	logFormat  string
	logFile    string

	cfg    *config.Main
	logger zerolog.Logger
	logOut io.Closer
}

// NewRootCmd creates the secrulefmt command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:                "secrulefmt",
		Short:              "Format and check SecRule files",
		Long:               `secrulefmt parses ModSecurity SecRule files into a typed model, renders them in canonical form and checks them for mistakes.`,
		SilenceUsage:       true,
		PersistentPreRunE:  a.setup,
		PersistentPostRunE: a.teardown,
	}

	root.PersistentFlags().StringVar(&a.configFile, "config", "", "config file path")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "log format (console, json)")
	root.PersistentFlags().StringVar(&a.logFile, "log-file", "", "write logs to this file instead of stderr")

	root.AddCommand(newFmtCmd(a), newCheckCmd(a), newDumpCmd(a), newVarsCmd(a))
	return root
}

// Execute runs the command line.
func Execute() error {
	return NewRootCmd().Execute()
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.configFile)
	if err != nil {
		return err
	}

	// Flags win over config.
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if cmd.Flags().Changed("log-format") {
		cfg.Log.Format = a.logFormat
	}
	if cmd.Flags().Changed("log-file") {
		cfg.Log.File = a.logFile
	}

	out := cmd.ErrOrStderr()
	if cfg.Log.File != "" {
		f, err := logging.OpenLogFile(logging.NewLogFileSystem(), cfg.Log.File)
		if err != nil {
			return err
		}
		a.logOut = f
		out = f
	}

	a.logger, err = logging.NewLogger(cfg.Log.Level, cfg.Log.Format, out)
	if err != nil {
		return err
	}
	a.cfg = cfg
	return nil
}

func (a *app) teardown(cmd *cobra.Command, args []string) error {
	if a.logOut != nil {
		return a.logOut.Close()
	}
	return nil
}

func (a *app) loader(opts ruleset.Options) ruleset.Loader {
	if opts.Workers == 0 {
		opts.Workers = a.cfg.Parse.Workers
	}
	return ruleset.NewLoader(a.logger, ruleset.NewFileSystem(), opts)
}
