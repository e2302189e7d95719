package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/justrnr500/repolist/internal/config"
	"github.com/justrnr500/repolist/internal/storage"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize repolist in the current directory",
	Long: `Initialize repolist in the current directory.

This creates:
  - .repolist.yaml     Configuration file
  - repositories.csv   Store file holding only the header line
and adds .env to .gitignore, since .env may set REPOLIST_FILE.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

var (
	initQuiet bool
	initStore string
)

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVarP(&initQuiet, "quiet", "q", false, "Suppress output")
	initCmd.Flags().StringVar(&initStore, "store", "", "Store file name recorded in the config")
}

func runInit(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}
	out := cmd.OutOrStdout()

	// Check if already initialized
	if config.Exists(cwd) {
		if !initQuiet {
			fmt.Fprintln(out, "Already initialized in", filepath.Join(cwd, config.ConfigFile))
		}
		return nil
	}

	cfg := config.Default()
	if initStore != "" {
		cfg.Store.File = initStore
	}

	if err := cfg.Save(filepath.Join(cwd, config.ConfigFile)); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	if !initQuiet {
		fmt.Fprintln(out, "✓ Created", config.ConfigFile)
	}

	storePath := cfg.StorePath(cwd)
	if storage.Exists(storePath) {
		if !initQuiet {
			fmt.Fprintln(out, "✓ Using existing", cfg.Store.File)
		}
	} else {
		codec, err := storage.NewCodec(cfg.Store.Dialect, cfg.Limits)
		if err != nil {
			return fmt.Errorf("store dialect: %w", err)
		}
		if err := codec.Create(storePath); err != nil {
			return err
		}
		if !initQuiet {
			fmt.Fprintln(out, "✓ Created", cfg.Store.File)
		}
	}

	// Ensure .env is in repo root .gitignore
	ensureGitignoreEntry(filepath.Join(cwd, config.GitIgnoreFile), config.EnvFile)

	if !initQuiet {
		fmt.Fprintln(out, "\nReady. Try:")
		fmt.Fprintln(out, "  repolist add GitHub https://github.com")
	}

	return nil
}

// ensureGitignoreEntry ensures that the given entry exists in the gitignore file
// at path. If the file does not exist, it is created. If the entry already
// exists (compared after trimming whitespace), no changes are made.
func ensureGitignoreEntry(path, entry string) {
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return
	}

	lines := strings.Split(string(data), "\n")
	for _, line := range lines {
		if strings.TrimSpace(line) == entry {
			return
		}
	}

	// Append entry on a new line
	content := string(data)
	if len(content) > 0 && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	content += entry + "\n"

	os.WriteFile(path, []byte(content), 0644)
}
