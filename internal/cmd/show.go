package cmd

import (
	"github.com/spf13/cobra"

	"github.com/justrnr500/repolist/internal/shell"
)

var showCmd = &cobra.Command{
	Use:   "show <alias>|all",
	Short: "Show a repository link",
	Long: `Display the link saved under an alias, or every entry with "all".

Examples:
  repolist show GitHub
  repolist show all`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	return runCommand(cmd, shell.CmdShow, args)
}
