// Package cmd provides the CLI commands for repolist.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/justrnr500/repolist/internal/storage"
)

// Version information set via ldflags
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// Exit codes.
const (
	exitError           = 1
	exitFileUnavailable = 3
)

// errReported marks a failure whose message was already printed.
var errReported = errors.New("command failed")

var rootCmd = &cobra.Command{
	Use:   "repolist",
	Short: "Bookmark repositories under short aliases",
	Long: `Repolist keeps a personal list of repository links, each saved under a
short alias, in a plain text file (repositories.csv by default).

Run without arguments for an interactive prompt:
  add <alias> <link>   show <alias>|all   list
  delete <alias>       search <pattern>   help   quit

Changes are written back to the file on quit or end of input.`,
	Args:          cobra.NoArgs,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runRepl,
}

var (
	flagFile      string
	flagConfig    string
	flagLogLevel  string
	flagLogFormat string
)

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	if errors.Is(err, storage.ErrFileUnavailable) {
		return exitFileUnavailable
	}
	return exitError
}

func init() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate(`{{printf "repolist %s\ncommit: %s\nbuilt: %s\n" .Version "` + Commit + `" "` + BuildDate + `"}}`)

	rootCmd.PersistentFlags().StringVarP(&flagFile, "file", "f", "", "Store file (default: repositories.csv, or $REPOLIST_FILE)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default: nearest .repolist.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Diagnostic log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "Diagnostic log format (text, json)")
}

func runRepl(cmd *cobra.Command, args []string) error {
	a, err := openStore(cmd, openOptions{create: true, announce: true})
	if err != nil {
		return err
	}

	sess := a.session(cmd, a.cfg.Shell.Prompt)
	return sess.Run(cmd.InOrStdin())
}
