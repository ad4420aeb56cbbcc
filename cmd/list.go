package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/dotenvage/internal/ui"
	"github.com/PolarWolf314/dotenvage/internal/workflows"
)

var (
	listFile   string
	listReveal bool
)

func init() {
	listCmd.Flags().StringVarP(&listFile, "file", "f", "", "list this env file only")
	listCmd.Flags().BoolVar(&listReveal, "reveal", false, "decrypt and show values in full")
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List variables with masked values",
	Long: `Lists the variables of the layered environment, or of one file with
--file. Plaintext values are masked and encrypted values are only marked,
so no key is needed. --reveal decrypts and prints every value.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := workflows.List(context.Background(), workflows.ListOptions{
			Scope:  scope(listFile),
			Reveal: listReveal,
		})
		if err != nil {
			return fail(cmd.ErrOrStderr(), err)
		}

		out := cmd.OutOrStdout()
		if len(result.Vars) == 0 {
			fmt.Fprintln(out, "No variables found.")
			return nil
		}

		width := 0
		for _, v := range result.Vars {
			width = max(width, len(v.Name))
		}

		for _, v := range result.Vars {
			padding := strings.Repeat(" ", width-len(v.Name))
			value := ui.Value.Sprint(v.Value)
			if v.Encrypted && !listReveal {
				value = ui.Muted.Sprint("encrypted")
			}
			line := ui.Name.Sprint(v.Name) + padding + "  " + value
			if verbose || debug {
				line += "  " + ui.Path.Sprint(v.Source)
			}
			fmt.Fprintln(out, line)
		}
		return nil
	},
}
