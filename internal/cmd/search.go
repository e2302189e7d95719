package cmd

import (
	"github.com/spf13/cobra"

	"github.com/justrnr500/repolist/internal/shell"
)

var searchCmd = &cobra.Command{
	Use:   "search <pattern>",
	Short: "Search aliases",
	Long: `Show every repository whose alias matches a glob pattern.

Patterns use doublestar syntax: * and ? stay within one path segment,
** crosses "/" separators.

Examples:
  repolist search 'gh-*'
  repolist search 'work/**'`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	return runCommand(cmd, shell.CmdSearch, args)
}
