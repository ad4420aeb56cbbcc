package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/dotenvage/internal/layers"
	"github.com/PolarWolf314/dotenvage/internal/ui"
	"github.com/PolarWolf314/dotenvage/internal/workflows"
)

var pathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "Show resolved dimensions and the env files they select",
	Long: `Runs layered discovery without decrypting anything and shows where each
dimension came from, every candidate file in precedence order (lowest
first) and which of them were loaded.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := workflows.Paths(context.Background(), workflows.PathsOptions{Dir: workDir, Logger: Logger})
		if err != nil {
			return fail(cmd.ErrOrStderr(), err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Dimensions:")
		for _, d := range layers.Dimensions {
			v := result.Dimensions[d]
			if v.Token == "" {
				fmt.Fprintf(out, "    %-12s %s\n", d, ui.Muted.Sprint("unset"))
				continue
			}
			origin := v.Source.String()
			if v.Origin != "" {
				origin += " " + v.Origin
			}
			fmt.Fprintf(out, "    %-12s %s %s\n", d, ui.Dimension.Sprint(v.Token), ui.Muted.Sprint(origin))
		}
		if result.PR != "" {
			fmt.Fprintf(out, "    %-12s %s\n", "pr", ui.Dimension.Sprint(result.PR))
		}

		loaded := make(map[string]bool, len(result.Files))
		for _, f := range result.Files {
			loaded[f] = true
		}

		fmt.Fprintln(out, "Candidates:")
		for _, name := range result.Candidates {
			mark := ui.Muted.Sprint("-")
			for f := range loaded {
				if strings.EqualFold(filepath.Base(f), name) {
					mark = ui.Success.Sprint("✓")
					break
				}
			}
			fmt.Fprintf(out, "    %s %s\n", mark, name)
		}

		fmt.Fprintf(out, "Loaded %d file(s) in %d round(s)\n", len(result.Files), result.Rounds)
		for _, w := range result.Warnings {
			Logger.WarnfAlways("%s", w)
		}
		return nil
	},
}
