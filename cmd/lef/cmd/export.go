package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceLEF/pkg/lef/export"
	"github.com/OpenTraceLab/OpenTraceLEF/pkg/lef/reader"
)

var outputPath string

var exportCmd = &cobra.Command{
	Use:   "export <lef-file>",
	Short: "Write a msgpack summary of a LEF file",
	Long: `Parse a LEF file and write a compact msgpack summary (units, layers,
vias, sites and macros with their pins) for placement and lookup tools.

Examples:
  lef export cells.lef                      # writes cells.msgpack
  lef export cells.lef -o /tmp/cells.mp`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&outputPath, "output", "o", "",
		"output file (default: input name with .msgpack extension)")
}

func runExport(cmd *cobra.Command, args []string) error {
	filename := args[0]
	dest := outputPath
	if dest == "" {
		dest = strings.TrimSuffix(filename, filepath.Ext(filename)) + ".msgpack"
	}

	parser, err := reader.NewParser(parserConfig)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}
	lib, err := parser.ParseFile(filename)
	if err != nil {
		return fmt.Errorf("failed to parse file: %w", err)
	}

	f, err := os.Create(dest)
	if err != nil {
		return err
	}
	if err := export.Encode(f, lib, filepath.Base(filename)); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	logf(cmd, "wrote %s", dest)
	okColor.Fprintf(cmd.OutOrStdout(), "Exported %d layers, %d macros to %s\n",
		lib.NumLayers(), lib.NumMacros(), dest)
	return nil
}
