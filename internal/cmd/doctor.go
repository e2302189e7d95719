package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/justrnr500/repolist/internal/config"
	"github.com/justrnr500/repolist/internal/repo"
	"github.com/justrnr500/repolist/internal/storage"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check store health",
	Long: `Run health checks on the store file to diagnose common issues.

Checks:
  - Store file exists and can be read
  - Header line present (a missing header is rewritten on the next save)
  - No malformed lines (they are dropped on the next save)
  - No duplicate aliases (show and delete only reach the oldest one)
  - No entry named "all" (show all lists everything instead)
  - Config valid (.repolist.yaml parses without errors)`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

var doctorJSON bool

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false, "Output as JSON")
}

// CheckResult represents the result of a single health check.
type CheckResult struct {
	Name   string   `json:"name"`
	Passed bool     `json:"passed"`
	Issues []string `json:"issues,omitempty"`
}

func runDoctor(cmd *cobra.Command, args []string) error {
	// A broken config is reported as a failed check rather than aborting.
	cfg, path, cfgErr := getConfig()
	checks := []CheckResult{checkConfigValidity(cfg, cfgErr)}

	if cfgErr != nil {
		checks = append(checks, CheckResult{Name: "Store file readable", Passed: false, Issues: []string{"skipped: config could not be loaded"}})
	} else {
		a, openErr := openStoreAt(cmd, cfg, path, openOptions{})
		checks = append(checks, checkStoreReadable(a, openErr))
		if a != nil {
			checks = append(checks,
				checkHeader(a.load, a.store.Codec().Dialect().Header),
				checkMalformedLines(a.load),
				checkDuplicateAliases(a.store),
				checkReservedAlias(a.store),
			)
		}
	}

	out := cmd.OutOrStdout()
	if doctorJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(checks)
	}

	allPassed := true
	for _, c := range checks {
		if c.Passed {
			fmt.Fprintf(out, "✓ %s\n", c.Name)
		} else {
			allPassed = false
			fmt.Fprintf(out, "✗ %s\n", c.Name)
			for _, issue := range c.Issues {
				fmt.Fprintf(out, "    %s\n", issue)
			}
		}
	}

	if !allPassed {
		return fmt.Errorf("some checks failed")
	}

	return nil
}

func checkStoreReadable(a *app, err error) CheckResult {
	name := "Store file readable"

	if err != nil {
		var fe *storage.FileError
		if errors.As(err, &fe) {
			return CheckResult{Name: name, Passed: false, Issues: []string{fmt.Sprintf("%s: %v", fe.Path, fe.Err)}}
		}
		return CheckResult{Name: name, Passed: false, Issues: []string{err.Error()}}
	}

	return CheckResult{Name: fmt.Sprintf("Store file readable (%d repositories)", a.store.Len()), Passed: true}
}

func checkHeader(load storage.LoadResult, header string) CheckResult {
	name := "Header line present"

	if !load.HeaderOK {
		return CheckResult{Name: name, Passed: false, Issues: []string{
			fmt.Sprintf("first line is not %q; it was read as data and the header will be written on the next save", header),
		}}
	}

	return CheckResult{Name: name, Passed: true}
}

func checkMalformedLines(load storage.LoadResult) CheckResult {
	name := "No malformed lines"

	if len(load.Skipped) > 0 {
		var issues []string
		for _, ml := range load.Skipped {
			issues = append(issues, fmt.Sprintf("line %d: %s: %q", ml.Line, ml.Reason, ml.Text))
		}
		return CheckResult{Name: name, Passed: false, Issues: issues}
	}

	return CheckResult{Name: name, Passed: true}
}

func checkDuplicateAliases(store *storage.Store) CheckResult {
	name := "No duplicate aliases"

	counts := make(map[string]int)
	var order []string
	for alias := range store.Aliases() {
		if counts[alias] == 0 {
			order = append(order, alias)
		}
		counts[alias]++
	}

	var dups []string
	for _, alias := range order {
		if counts[alias] > 1 {
			dups = append(dups, fmt.Sprintf("%s (%d entries)", alias, counts[alias]))
		}
	}

	if len(dups) > 0 {
		return CheckResult{Name: name, Passed: false, Issues: dups}
	}

	return CheckResult{Name: name, Passed: true}
}

func checkReservedAlias(store *storage.Store) CheckResult {
	name := fmt.Sprintf("No entry named %q", repo.AllKeyword)

	if _, ok := store.Find(repo.AllKeyword); ok {
		return CheckResult{Name: name, Passed: false, Issues: []string{fmt.Sprintf("'show %s' lists every entry, so this one cannot be shown on its own", repo.AllKeyword)}}
	}

	return CheckResult{Name: name, Passed: true}
}

func checkConfigValidity(cfg *config.Resolved, err error) CheckResult {
	name := "Config valid"

	if err != nil {
		return CheckResult{Name: name, Passed: false, Issues: []string{err.Error()}}
	}
	if cfg.Path == "" {
		return CheckResult{Name: name + " (defaults)", Passed: true}
	}

	return CheckResult{Name: name, Passed: true}
}
