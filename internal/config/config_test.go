package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() error = %v", err)
	}
	if cfg.Store.File != StoreFile {
		t.Errorf("Store.File = %q, want %q", cfg.Store.File, StoreFile)
	}
	if cfg.Store.Dialect.Header != "Alias,Link" {
		t.Errorf("Dialect.Header = %q", cfg.Store.Dialect.Header)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFile)

	cfg := Default()
	cfg.Store.File = "bookmarks.csv"
	cfg.Limits.Alias = 32
	cfg.Shell.Prompt = "> "

	if err := cfg.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Store.File != "bookmarks.csv" {
		t.Errorf("Store.File = %q", got.Store.File)
	}
	if got.Limits.Alias != 32 {
		t.Errorf("Limits.Alias = %d", got.Limits.Alias)
	}
	if got.Shell.Prompt != "> " {
		t.Errorf("Shell.Prompt = %q", got.Shell.Prompt)
	}
	if len(got.Store.Dialect.Fields) != 2 {
		t.Errorf("Dialect.Fields = %v", got.Store.Dialect.Fields)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFile)
	os.WriteFile(path, []byte("store:\n  file: mine.csv\n"), 0644)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Store.File != "mine.csv" {
		t.Errorf("Store.File = %q", cfg.Store.File)
	}
	if cfg.Store.Dialect.Delimiter != "," {
		t.Errorf("Dialect.Delimiter = %q, want default", cfg.Store.Dialect.Delimiter)
	}
	if cfg.Limits.Link != 255 {
		t.Errorf("Limits.Link = %d, want default", cfg.Limits.Link)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad yaml", "store: [unclosed"},
		{"bad field order", "store:\n  dialect:\n    fields: [alias, alias]\n"},
		{"negative limit", "limits:\n  alias: -1\n"},
		{"bad log format", "log:\n  format: xml\n"},
		{"bad log level", "log:\n  level: loud\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ConfigFile)
			os.WriteFile(path, []byte(tt.content), 0644)

			if _, err := Load(path); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestStorePath(t *testing.T) {
	cfg := Default()
	if got := cfg.StorePath("/work"); got != filepath.Join("/work", StoreFile) {
		t.Errorf("StorePath() = %q", got)
	}

	cfg.Store.File = "/abs/list.csv"
	if got := cfg.StorePath("/work"); got != "/abs/list.csv" {
		t.Errorf("StorePath() = %q", got)
	}
}

func TestResolveDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvStoreFile, "")

	res, err := Resolve(dir, "")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if res.Path != "" {
		t.Errorf("Path = %q, want empty", res.Path)
	}
	if got := res.StorePath(res.BaseDir); got != filepath.Join(dir, StoreFile) {
		t.Errorf("StorePath = %q", got)
	}
}

func TestResolveFindsConfigInParent(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "a", "b")
	os.MkdirAll(sub, 0755)
	t.Setenv(EnvStoreFile, "")

	cfg := Default()
	cfg.Store.File = "shared.csv"
	cfg.Save(filepath.Join(root, ConfigFile))

	res, err := Resolve(sub, "")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got := res.StorePath(res.BaseDir); got != filepath.Join(root, "shared.csv") {
		t.Errorf("StorePath = %q", got)
	}
}

func TestResolveExplicitMissing(t *testing.T) {
	if _, err := Resolve(t.TempDir(), "/does/not/exist.yaml"); err == nil {
		t.Error("expected error for missing explicit config")
	}
}

func TestResolveDotEnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvStoreFile, "")
	os.Unsetenv(EnvStoreFile)

	os.WriteFile(filepath.Join(dir, EnvFile), []byte(EnvStoreFile+"=from-env.csv\n"), 0644)

	res, err := Resolve(dir, "")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if res.Store.File != "from-env.csv" {
		t.Errorf("Store.File = %q, want from-env.csv", res.Store.File)
	}
}

func TestResolveEnvironmentWinsOverDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvStoreFile, "from-process.csv")
	os.WriteFile(filepath.Join(dir, EnvFile), []byte(EnvStoreFile+"=from-dotenv.csv\n"), 0644)

	res, err := Resolve(dir, "")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if res.Store.File != "from-process.csv" {
		t.Errorf("Store.File = %q, want from-process.csv", res.Store.File)
	}
}

func TestExistsEmptyDir(t *testing.T) {
	if Exists(t.TempDir()) {
		t.Error("Exists() = true for empty dir")
	}
}
