package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/justrnr500/repolist/internal/config"
	"github.com/justrnr500/repolist/internal/shell"
	"github.com/justrnr500/repolist/internal/storage"
)

// app bundles what a command needs once the store file is loaded.
type app struct {
	cfg    *config.Resolved
	path   string
	store  *storage.Store
	logger *slog.Logger
	load   storage.LoadResult
}

type openOptions struct {
	// create makes a header-only store file when none exists.
	create bool
	// announce prints the file probe messages of the interactive prompt.
	announce bool
}

// getConfig resolves the configuration for the current directory and
// applies command-line overrides.
func getConfig() (*config.Resolved, string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("get working directory: %w", err)
	}

	res, err := config.Resolve(cwd, flagConfig)
	if err != nil {
		return nil, "", fmt.Errorf("load config: %w", err)
	}

	path := res.StorePath(res.BaseDir)
	if flagFile != "" {
		path, err = filepath.Abs(flagFile)
		if err != nil {
			return nil, "", fmt.Errorf("resolve path: %w", err)
		}
	}

	if flagLogLevel != "" {
		res.Log.Level = flagLogLevel
	}
	if flagLogFormat != "" {
		res.Log.Format = flagLogFormat
	}
	if err := res.Validate(); err != nil {
		return nil, "", err
	}

	return res, path, nil
}

// openStore resolves the store file, creating it when allowed, and loads it.
func openStore(cmd *cobra.Command, opts openOptions) (*app, error) {
	cfg, path, err := getConfig()
	if err != nil {
		return nil, err
	}
	return openStoreAt(cmd, cfg, path, opts)
}

// openStoreAt loads the store file at path with an already resolved config.
func openStoreAt(cmd *cobra.Command, cfg *config.Resolved, path string, opts openOptions) (*app, error) {
	logger := newLogger(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())

	codec, err := storage.NewCodec(cfg.Store.Dialect, cfg.Limits)
	if err != nil {
		return nil, fmt.Errorf("store dialect: %w", err)
	}

	out := cmd.OutOrStdout()
	switch {
	case storage.Exists(path):
		if opts.announce {
			fmt.Fprintf(out, "File %s found.\n", path)
		}
	case opts.create:
		if opts.announce {
			fmt.Fprintf(out, "File %s doesn't seem to exist. Attempting to create it..\n", path)
		}
		if err := codec.Create(path); err != nil {
			if opts.announce {
				fmt.Fprintf(out, "Failed to create file %s. Can not continue. Exiting..\n", path)
			}
			return nil, err
		}
		if opts.announce {
			fmt.Fprintf(out, "Successfully created file %s\n", path)
		}
	}

	store := storage.NewStore(codec, logger)
	load, err := store.Load(path)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:    cfg,
		path:   path,
		store:  store,
		logger: logger,
		load:   load,
	}, nil
}

// session returns a dispatcher over the loaded store. A store whose file
// had no header starts dirty so the next save rewrites it.
func (a *app) session(cmd *cobra.Command, prompt string) *shell.Session {
	return shell.NewSession(a.store, shell.Options{
		Path:   a.path,
		Out:    cmd.OutOrStdout(),
		Logger: a.logger,
		Prompt: prompt,
		Dirty:  !a.load.HeaderOK,
	})
}

// runCommand executes one interactive command from command-line arguments
// and saves the store if it changed.
func runCommand(cmd *cobra.Command, name shell.Command, args []string) error {
	a, err := openStore(cmd, openOptions{create: true})
	if err != nil {
		return err
	}

	// Split arguments the way the prompt does; "my repo" is two tokens.
	tokens := strings.Fields(strings.Join(args, " "))
	in := shell.Input{Command: string(name), ArgCount: len(tokens)}
	limits := a.store.Codec().Limits()
	for i, arg := range tokens {
		pos := shell.Position(i)
		if err := shell.ValidateLength(arg, pos, limits); err != nil {
			return err
		}
		switch pos {
		case shell.PosAlias:
			in.Alias = arg
		case shell.PosLink:
			in.Link = arg
		}
	}

	sess := a.session(cmd, "")
	sess.Execute(in)
	failed := sess.Failed()

	if _, err := sess.Flush(); err != nil {
		return errReported
	}
	if failed {
		return errReported
	}
	return nil
}
