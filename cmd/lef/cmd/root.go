package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceLEF/pkg/lef/reader"
)

var (
	// Global flags
	verbose    bool
	configPath string
	noColor    bool

	// parser configuration, set by the root pre-run hook
	parserConfig *reader.Config
)

var (
	headingColor = color.New(color.FgCyan, color.Bold)
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed, color.Bold)
	okColor      = color.New(color.FgGreen)
)

var rootCmd = &cobra.Command{
	Use:   "lef",
	Short: "LEF library reader and inspector",
	Long: `Read LEF (Library Exchange Format) technology and cell libraries,
summarize their contents and export them for other tools.

Examples:
  lef parse tech.lef                         # Summarize one library
  lef parse --dump cells.lef                 # Print the full object model
  lef info tech.lef cells/                   # Summarize many files concurrently
  lef macro INV_X1 tech.lef cells/           # Look a macro up across libraries
  lef export cells.lef -o cells.msgpack      # Write a msgpack summary`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if noColor {
			color.NoColor = true
		}
		cfg := reader.DefaultConfig()
		if configPath != "" {
			var err error
			if cfg, err = reader.LoadConfig(configPath); err != nil {
				return err
			}
		}
		if verbose {
			cfg.Verbose = true
		}
		parserConfig = cfg
		return nil
	},
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		errorColor.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "reader configuration file (TOML)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

// logf prints progress messages in verbose mode.
func logf(cmd *cobra.Command, format string, args ...any) {
	if parserConfig != nil && parserConfig.Verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), format+"\n", args...)
	}
}

func heading(w io.Writer, format string, args ...any) {
	headingColor.Fprintf(w, format+"\n", args...)
}

func printWarnings(w io.Writer, warnings []string, all bool) {
	if len(warnings) == 0 {
		return
	}
	warnColor.Fprintf(w, "Warnings: %d\n", len(warnings))
	limit := len(warnings)
	if !all && limit > 5 {
		limit = 5
	}
	for _, msg := range warnings[:limit] {
		warnColor.Fprintf(w, "  %s\n", msg)
	}
	if limit < len(warnings) {
		fmt.Fprintf(w, "  ... and %d more (use -v to show all)\n", len(warnings)-limit)
	}
}
