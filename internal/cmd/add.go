package cmd

import (
	"github.com/spf13/cobra"

	"github.com/justrnr500/repolist/internal/shell"
)

var addCmd = &cobra.Command{
	Use:   "add <alias> <link>",
	Short: "Save a repository link",
	Long: `Save a repository link under a short alias.

Aliases are case-sensitive and are not required to be unique; show and
delete act on the oldest entry with a given alias.

Examples:
  repolist add GitHub https://github.com
  repolist add cli https://github.com/cli/cli`,
	Args: cobra.ExactArgs(2),
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	return runCommand(cmd, shell.CmdAdd, args)
}
