package cmd

import (
	"github.com/spf13/cobra"

	"github.com/justrnr500/repolist/internal/shell"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <alias>",
	Short: "Delete a repository link",
	Long: `Delete the oldest entry saved under an alias.

Examples:
  repolist delete GitHub`,
	Aliases: []string{"rm"},
	Args:    cobra.ExactArgs(1),
	RunE:    runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	return runCommand(cmd, shell.CmdDelete, args)
}
