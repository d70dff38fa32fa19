// SPDX-License-Identifier: MIT

// Command scent scores single-cell expression profiles by signaling entropy
// over a protein interaction network.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/scent/internal/config"
	"github.com/katalvlaran/scent/internal/logging"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// SIGINT/SIGTERM cancel ctx; score stops at the next batch boundary.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(exitCode(err))
	}
}

// app is the state shared by every subcommand of one invocation.
type app struct {
	stdout io.Writer
	stderr io.Writer

	configPath string
	logLevel   string
	logFormat  string
	human      bool

	cfg config.Config
	log *slog.Logger
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}
	root := &cobra.Command{
		Use:   "scent",
		Short: "Signaling entropy scoring for single-cell expression",
		Long: `scent computes one signaling-entropy rate per cell from an expression matrix
and a gene interaction network. Higher scores indicate a more promiscuous,
less committed signaling state (differentiation potency).

Configuration comes from --config (YAML), then SCENT_* environment variables
(a .env file is honored), then command-line flags.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		Version:           Version,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "YAML configuration file")
	pf.StringVar(&a.logLevel, "log-level", "", "debug|info|warn|error (overrides config)")
	pf.StringVar(&a.logFormat, "log-format", "", "text|json (overrides config)")
	pf.BoolVar(&a.human, "human", false, "Use human-readable output instead of JSON")

	root.AddCommand(
		a.scoreCmd(),
		a.networkCmd(),
		a.synthCmd(),
		a.runsCmd(),
		a.explainCmd(),
	)

	return root
}

// setup loads configuration and builds the logger before any subcommand runs.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return &exitError{code: ExitConfigError, err: err}
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
	if a.logFormat != "" {
		cfg.Logging.Format = a.logFormat
	}
	a.cfg = cfg
	a.log = logging.New(cfg.Logging, a.stderr).With("cmd", cmd.Name())

	return nil
}
