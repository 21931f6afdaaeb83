package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceLEF/pkg/lef/export"
	"github.com/OpenTraceLab/OpenTraceLEF/pkg/techlib"
)

var (
	outputJSON bool
	jobs       int
)

var infoCmd = &cobra.Command{
	Use:   "info <lef-file|dir>...",
	Short: "Summarize several LEF files",
	Long: `Parse LEF files concurrently and print one summary per file, followed by
cross-library checks: macros defined more than once and macros whose SITE
no loaded library defines. Directories are searched for *.lef and *.tlef.

Supports JSON output format for integration with other tools.

Examples:
  lef info tech.lef cells/
  lef info --json --jobs 4 libs/`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)

	infoCmd.Flags().BoolVar(&outputJSON, "json", false, "output summaries as JSON")
	infoCmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "concurrent parses (0 = number of CPUs)")
}

// loadRepository parses every file named by args, expanding directories.
func loadRepository(cmd *cobra.Command, args []string) (*techlib.Repository, error) {
	var paths []string
	for _, arg := range args {
		st, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !st.IsDir() {
			paths = append(paths, arg)
			continue
		}
		found, err := techlib.FindFiles(arg)
		if err != nil {
			return nil, err
		}
		paths = append(paths, found...)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no LEF files found in %v", args)
	}

	repo, err := techlib.New(parserConfig, jobs)
	if err != nil {
		return nil, err
	}
	logf(cmd, "Loading %d LEF file(s)", len(paths))
	if err := repo.LoadFiles(cmd.Context(), paths...); err != nil {
		return nil, err
	}
	return repo, nil
}

func runInfo(cmd *cobra.Command, args []string) error {
	repo, err := loadRepository(cmd, args)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if outputJSON {
		var summaries []*export.Summary
		for _, e := range repo.Entries() {
			s, err := export.Summarize(e.Library, e.Path)
			if err != nil {
				return err
			}
			summaries = append(summaries, s)
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(summaries)
	}

	for _, e := range repo.Entries() {
		lib := e.Library
		heading(out, "%s", e.Path)
		fmt.Fprintf(out, "  layers=%d vias=%d viarules=%d sites=%d macros=%d\n",
			lib.NumLayers(), lib.NumVias(), lib.NumViaRules(), lib.NumSites(), lib.NumMacros())
		printWarnings(out, lib.Warnings, parserConfig.Verbose)
	}
	fmt.Fprintln(out)

	dups := repo.Duplicates()
	missing := repo.MissingSites()
	if len(dups) == 0 && len(missing) == 0 {
		okColor.Fprintf(out, "%d file(s), no cross-library problems\n", repo.Len())
		return nil
	}
	for _, name := range sortedKeys(dups) {
		warnColor.Fprintf(out, "macro %s defined in %v\n", name, dups[name])
	}
	for _, name := range sortedKeys(missing) {
		warnColor.Fprintf(out, "macro %s uses undefined site %s\n", name, missing[name])
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
