package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadOrCreateWritesDefault(t *testing.T) {
	t.Setenv("HAMMY_API_KEY", "")
	t.Setenv("HAMMY_TXT_PATH", "")

	path := filepath.Join(t.TempDir(), "hammy_config.toml")

	cfg, resolved, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("LoadOrCreate returned error: %v", err)
	}
	if resolved != path {
		t.Fatalf("resolved path %q, want %q", resolved, path)
	}
	if cfg.APIKey != "" {
		t.Fatalf("fresh config should have no api key, got %q", cfg.APIKey)
	}
	if want := filepath.Join(filepath.Dir(path), "txt"); cfg.TxtPath != want {
		t.Fatalf("txt path %q, want %q", cfg.TxtPath, want)
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("default config file was not written: %v", err)
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "hammy_config.toml")
	want := Config{APIKey: "secret", TxtPath: "/tmp/txt"}

	if err := Save(want, path); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if got != want {
		t.Fatalf("roundtrip mismatch: got %+v, want %+v", got, want)
	}
}

func TestEnvOverridesFileValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hammy_config.toml")
	if err := Save(Config{APIKey: "from-file", TxtPath: "/file/txt"}, path); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	t.Setenv("HAMMY_API_KEY", "from-env")
	t.Setenv("HAMMY_TXT_PATH", "")

	cfg, _, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("LoadOrCreate returned error: %v", err)
	}
	if cfg.APIKey != "from-env" {
		t.Fatalf("api key %q, want env override", cfg.APIKey)
	}
	if cfg.TxtPath != "/file/txt" {
		t.Fatalf("txt path %q, want file value", cfg.TxtPath)
	}
}

func TestEnsureDirs(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out", "txt")
	cfg := Config{TxtPath: dir}

	if err := cfg.EnsureDirs(); err != nil {
		t.Fatalf("EnsureDirs returned error: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("txt dir was not created: %v", err)
	}

	if err := (Config{}).EnsureDirs(); err != nil {
		t.Fatalf("empty txt path should be a no-op: %v", err)
	}
}
