package cmd

import (
	"fmt"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"

	logger "github.com/PolarWolf314/dotenvage/internal/logging"
	"github.com/PolarWolf314/dotenvage/internal/ui"
)

var (
	verbose bool
	debug   bool
	workDir string
	Logger  logger.Logger

	RootCmd = &cobra.Command{
		Use:   "dotenvage",
		Short: "Encrypted, layered .env files",
		Long: `dotenvage keeps secrets in .env files encrypted with age, so the files
can be committed. Sensitive values are stored as ENC[AGE:b64:...] and
decrypted on load.

Files are layered: .env, then files named after the environment, OS,
architecture, user and variant (e.g. .env.production, .env.production.arm64),
then .env.pr-<number> in pull request builds. Later files win.

Run 'dotenvage help <command>' for more details on a specific command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
				Out:     cmd.ErrOrStderr(),
			}
			Logger.Debugf("Initializing %s command with verbose=%t, debug=%t", cmd.Name(), verbose, debug)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			banner := figure.NewColorFigure("dotenvage", "", "green", true)
			if ui.ColorEnabled() {
				fmt.Fprintln(cmd.OutOrStdout(), banner.ColorString())
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), banner.String())
			}
			return cmd.Help()
		},
	}
)

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	RootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")
	RootCmd.PersistentFlags().StringVarP(&workDir, "dir", "C", "", "directory holding the env files (default \".\")")

	RootCmd.AddCommand(keygenCmd)
	RootCmd.AddCommand(pubkeyCmd)
	RootCmd.AddCommand(encryptCmd)
	RootCmd.AddCommand(setCmd)
	RootCmd.AddCommand(getCmd)
	RootCmd.AddCommand(listCmd)
	RootCmd.AddCommand(dumpCmd)
	RootCmd.AddCommand(namesCmd)
	RootCmd.AddCommand(pathsCmd)
	RootCmd.AddCommand(logCmd)
}

// Execute runs the root command.
func Execute() error {
	return RootCmd.Execute()
}
