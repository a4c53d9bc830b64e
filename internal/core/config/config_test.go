package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeDataset creates an empty dataset file so CheckDataset passes.
func writeDataset(t *testing.T, root string) string {
	t.Helper()
	path := filepath.Join(root, "salaries.csv")
	requireNoError(t, os.WriteFile(path, []byte("rank,discipline,yrs.since.phd,yrs.service,sex,salary\n"), 0o644))
	return path
}

func TestLoad_ValidConfigAndPanels(t *testing.T) {
	root := t.TempDir()
	panelsDir := filepath.Join(root, "panels")
	requireNoError(t, os.MkdirAll(panelsDir, 0o755))
	requireNoError(t, os.WriteFile(filepath.Join(panelsDir, "gender.yaml"), []byte(`
name: "gender_balance"
kind: "count"
dimension: "sex"
`), 0o644))

	cfgPath := filepath.Join(root, "salaryd.yaml")
	requireNoError(t, os.WriteFile(cfgPath, []byte(fmt.Sprintf(`
server:
  port: 8080
  host: "127.0.0.1"
  mode: "release"
dataset:
  source: "csv"
  csv_path: "%s"
panels:
  config_dir: "%s"
sessions:
  capacity: 16
log:
  level: "debug"
`, writeDataset(t, root), panelsDir)), 0o644))

	cfg, err := Load(cfgPath)
	requireNoError(t, err)
	if len(cfg.PanelLoading.Panels) != 1 {
		t.Fatalf("expected 1 loaded panel, got %d", len(cfg.PanelLoading.Panels))
	}
	if cfg.Sessions.Capacity != 16 {
		t.Fatalf("sessions.capacity = %d, want 16", cfg.Sessions.Capacity)
	}
	if cfg.Log.SlogLevel() != slog.LevelDebug {
		t.Fatalf("log level = %v, want debug", cfg.Log.SlogLevel())
	}
	if cfg.UsesDatabase() {
		t.Fatal("csv source should not need a database")
	}
}

func TestLoad_MissingPanelDirUsesBuiltins(t *testing.T) {
	root := t.TempDir()
	cfgPath := filepath.Join(root, "salaryd.yaml")
	requireNoError(t, os.WriteFile(cfgPath, []byte(fmt.Sprintf(`
dataset:
  csv_path: "%s"
panels:
  config_dir: "%s"
`, writeDataset(t, root), filepath.Join(root, "missing"))), 0o644))

	cfg, err := Load(cfgPath)
	requireNoError(t, err)
	if cfg.PanelLoading.Source != "embedded defaults" {
		t.Fatalf("panel source = %q", cfg.PanelLoading.Source)
	}
	if len(cfg.PanelLoading.Panels) != 8 {
		t.Fatalf("expected 8 built-in panels, got %d", len(cfg.PanelLoading.Panels))
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	root := t.TempDir()
	t.Setenv("SALARYD_DATASET__CSV_PATH", writeDataset(t, root))
	t.Setenv("SALARYD_SESSIONS__CAPACITY", "3")

	cfg, err := Load("")
	requireNoError(t, err)
	if cfg.Sessions.Capacity != 3 {
		t.Fatalf("sessions.capacity = %d, want 3", cfg.Sessions.Capacity)
	}
}

func TestLoad_InvalidConfigFailsStartup(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name:    "server port",
			body:    "server:\n  port: -1\n",
			wantErr: "invalid server.port",
		},
		{
			name:    "body size",
			body:    "server:\n  max_body_size_kb: 0\n",
			wantErr: "server.max_body_size_kb must be > 0",
		},
		{
			name:    "server mode",
			body:    "server:\n  mode: \"verbose\"\n",
			wantErr: "invalid server.mode",
		},
		{
			name:    "dataset source",
			body:    "dataset:\n  source: \"s3\"\n",
			wantErr: "unsupported dataset.source",
		},
		{
			name:    "postgres without dsn",
			body:    "dataset:\n  source: \"postgres\"\n",
			wantErr: "database.dsn is required",
		},
		{
			name:    "session capacity",
			body:    "sessions:\n  capacity: 0\n",
			wantErr: "sessions.capacity must be > 0",
		},
		{
			name:    "log level",
			body:    "log:\n  level: \"loud\"\n",
			wantErr: "invalid log.level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			t.Setenv("SALARYD_DATASET__CSV_PATH", writeDataset(t, root))

			cfgPath := filepath.Join(root, "salaryd.yaml")
			requireNoError(t, os.WriteFile(cfgPath, []byte(tt.body), 0o644))

			_, err := Load(cfgPath)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected %q error, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoad_InvalidPanelFileFailsStartup(t *testing.T) {
	root := t.TempDir()
	panelsDir := filepath.Join(root, "panels")
	requireNoError(t, os.MkdirAll(panelsDir, 0o755))
	requireNoError(t, os.WriteFile(filepath.Join(panelsDir, "bad.yaml"), []byte(`
name: "bad_panel"
kind: "median"
dimension: "sex"
`), 0o644))

	cfgPath := filepath.Join(root, "salaryd.yaml")
	requireNoError(t, os.WriteFile(cfgPath, []byte(fmt.Sprintf(`
dataset:
  csv_path: "%s"
panels:
  config_dir: "%s"
`, writeDataset(t, root), panelsDir)), 0o644))

	_, err := Load(cfgPath)
	if err == nil || !strings.Contains(err.Error(), "failed to load panel definitions") {
		t.Fatalf("expected panel load error, got %v", err)
	}
}

func TestLoad_EmptyPanelDirFailsStartup(t *testing.T) {
	root := t.TempDir()
	panelsDir := filepath.Join(root, "panels")
	requireNoError(t, os.MkdirAll(panelsDir, 0o755))

	cfgPath := filepath.Join(root, "salaryd.yaml")
	requireNoError(t, os.WriteFile(cfgPath, []byte(fmt.Sprintf(`
dataset:
  csv_path: "%s"
panels:
  config_dir: "%s"
`, writeDataset(t, root), panelsDir)), 0o644))

	_, err := Load(cfgPath)
	if err == nil || !strings.Contains(err.Error(), "no panel definitions found") {
		t.Fatalf("expected no panels error, got %v", err)
	}
}

func TestCheckDataset(t *testing.T) {
	root := t.TempDir()
	missing := filepath.Join(root, "missing.csv")

	t.Run("seeding loads without the csv dataset", func(t *testing.T) {
		t.Setenv("SALARYD_DATASET__CSV_PATH", missing)
		t.Setenv("SALARYD_DATABASE__DSN", "postgres://localhost/salaries")

		cfg, err := Load("")
		requireNoError(t, err)

		err = cfg.CheckDataset()
		if err == nil || !strings.Contains(err.Error(), "is not accessible") {
			t.Fatalf("expected missing dataset error, got %v", err)
		}
	})

	t.Run("existing csv dataset", func(t *testing.T) {
		t.Setenv("SALARYD_DATASET__CSV_PATH", writeDataset(t, root))

		cfg, err := Load("")
		requireNoError(t, err)
		requireNoError(t, cfg.CheckDataset())
	})

	t.Run("postgres source skips the csv check", func(t *testing.T) {
		t.Setenv("SALARYD_DATASET__SOURCE", SourcePostgres)
		t.Setenv("SALARYD_DATASET__CSV_PATH", missing)
		t.Setenv("SALARYD_DATABASE__DSN", "postgres://localhost/salaries")

		cfg, err := Load("")
		requireNoError(t, err)
		if !cfg.UsesDatabase() {
			t.Fatal("postgres source must use the database")
		}
		requireNoError(t, cfg.CheckDataset())
	})
}

func requireNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}
