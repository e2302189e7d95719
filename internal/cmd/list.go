package cmd

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/justrnr500/repolist/internal/shell"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved aliases",
	Long: `List every saved alias in the order it was added.

Examples:
  repolist list
  repolist list --links
  repolist list --json`,
	Aliases: []string{"ls"},
	Args:    cobra.NoArgs,
	RunE:    runList,
}

var (
	listJSON  bool
	listLinks bool
)

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")
	listCmd.Flags().BoolVarP(&listLinks, "links", "l", false, "Show links next to aliases")
}

func runList(cmd *cobra.Command, args []string) error {
	if !listJSON && !listLinks {
		return runCommand(cmd, shell.CmdList, args)
	}

	a, err := openStore(cmd, openOptions{create: true})
	if err != nil {
		return err
	}

	entries := a.store.Entries()
	out := cmd.OutOrStdout()

	if listJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(map[string]interface{}{
			"repositories": entries,
			"count":        len(entries),
		})
	}

	if len(entries) == 0 {
		fmt.Fprintln(out, "No repositories saved.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ALIAS\tLINK")
	fmt.Fprintln(w, "─────\t────")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\n", e.Alias, truncate(e.Link, 80))
	}
	w.Flush()

	fmt.Fprintf(out, "\n%d repository(s)\n", len(entries))
	return nil
}

// truncate shortens s to at most max runes, ending in an ellipsis.
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	r := []rune(s)
	return string(r[:max-3]) + "..."
}
