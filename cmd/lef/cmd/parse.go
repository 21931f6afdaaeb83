package cmd

import (
	"bytes"
	"fmt"
	"io"

	"github.com/chewxy/sexp"
	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceLEF/pkg/lef"
	"github.com/OpenTraceLab/OpenTraceLEF/pkg/lef/reader"
)

var (
	dumpModel  bool
	checkDump  bool
	showMacros bool
)

var parseCmd = &cobra.Command{
	Use:   "parse <lef-file>",
	Short: "Parse and summarize a LEF file",
	Long: `Parse a LEF file and display a summary of its units, layers, vias,
sites and macros. With --dump the whole object model is printed as an
s-expression.

Examples:
  lef parse tech.lef
  lef parse --macros cells.lef
  lef parse --dump --check cells.lef`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().BoolVarP(&dumpModel, "dump", "d", false,
		"print the parsed library as an s-expression")
	parseCmd.Flags().BoolVar(&checkDump, "check", false,
		"verify that the dump is a well-formed s-expression")
	parseCmd.Flags().BoolVarP(&showMacros, "macros", "m", false,
		"list every macro with its pins")
}

func runParse(cmd *cobra.Command, args []string) error {
	filename := args[0]
	out := cmd.OutOrStdout()

	logf(cmd, "Parsing LEF file: %s", filename)

	parser, err := reader.NewParser(parserConfig)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}
	lib, err := parser.ParseFile(filename)
	if err != nil {
		return fmt.Errorf("failed to parse file: %w", err)
	}

	if dumpModel || checkDump {
		var buf bytes.Buffer
		if err := lib.Print(&buf); err != nil {
			return fmt.Errorf("failed to print library: %w", err)
		}
		if checkDump {
			if err := checkSexp(buf.String()); err != nil {
				return err
			}
			logf(cmd, "dump is well-formed (%d bytes)", buf.Len())
		}
		if dumpModel {
			_, err := out.Write(buf.Bytes())
			return err
		}
	}

	printSummary(out, filename, lib)
	printWarnings(out, lib.Warnings, parserConfig.Verbose)
	okColor.Fprintln(out, "Parsing completed successfully!")
	return nil
}

// checkSexp parses a dump back and expects exactly one list.
func checkSexp(dump string) error {
	exprs, err := sexp.ParseString(dump)
	if err != nil {
		return fmt.Errorf("dump is not a valid s-expression: %w", err)
	}
	if len(exprs) != 1 || exprs[0].IsLeaf() {
		return fmt.Errorf("dump should hold one list, got %d expressions", len(exprs))
	}
	return nil
}

func printSummary(w io.Writer, filename string, lib *lef.Library) {
	heading(w, "LEF Library: %s", filename)
	if lib.Version != "" {
		fmt.Fprintf(w, "  Version:        %s\n", lib.Version)
	}
	if u, ok := lib.Units.Get(); ok {
		if db, ok := u.Database.Get(); ok {
			fmt.Fprintf(w, "  Database units: %g per %s\n", db, u.DatabaseName)
		}
	}
	if grid, ok := lib.ManufacturingGrid.Get(); ok {
		fmt.Fprintf(w, "  Grid:           %g\n", grid)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Layers: %d\n", lib.NumLayers())
	for _, l := range lib.Layers() {
		fmt.Fprintf(w, "  %-16s %-12s", l.Name(), l.Type())
		if l.Direction() != "" {
			fmt.Fprintf(w, " %-10s", l.Direction())
		}
		if width, ok := l.Width(); ok {
			fmt.Fprintf(w, " width=%g", width)
		}
		if pitch, ok := l.Pitch(); ok {
			fmt.Fprintf(w, " pitch=%g", pitch)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Vias: %d  Via rules: %d  Non-default rules: %d\n",
		lib.NumVias(), lib.NumViaRules(), lib.NumNonDefaultRules())
	fmt.Fprintf(w, "Sites: %d  Arrays: %d\n", lib.NumSites(), lib.NumArrays())
	fmt.Fprintf(w, "Macros: %d\n", lib.NumMacros())

	if showMacros {
		for _, m := range lib.Macros() {
			fmt.Fprintf(w, "  %-20s %-14s", m.Name(), m.Class())
			if size, ok := m.Size(); ok {
				fmt.Fprintf(w, " %gx%g", size.X, size.Y)
			}
			fmt.Fprintln(w)
			for _, p := range m.Pins() {
				fmt.Fprintf(w, "    %-18s %-16s %s\n", p.Name(), p.Direction(), p.Use())
			}
		}
	}
	fmt.Fprintln(w)
}
