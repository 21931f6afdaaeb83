package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var macroCmd = &cobra.Command{
	Use:   "macro <name> <lef-file|dir>...",
	Short: "Find a macro across LEF libraries",
	Long: `Load the given libraries and print the first definition of a macro as an
s-expression, together with the file that defines it.

Examples:
  lef macro INV_X1 tech.lef cells/`,
	Args: cobra.MinimumNArgs(2),
	RunE: runMacro,
}

func init() {
	rootCmd.AddCommand(macroCmd)
}

func runMacro(cmd *cobra.Command, args []string) error {
	repo, err := loadRepository(cmd, args[1:])
	if err != nil {
		return err
	}
	ref, err := repo.Macro(args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	heading(out, "%s (%s)", ref.Macro.Name(), ref.Path)
	if err := ref.Macro.Print(out); err != nil {
		return err
	}
	fmt.Fprintln(out)
	return nil
}
