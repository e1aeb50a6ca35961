package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/orhun/kmon/internal/app"
	"github.com/orhun/kmon/internal/kernel"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadArgsDefaults(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent", "config.toml")
	t.Setenv("XDG_CONFIG_HOME", filepath.Dir(filepath.Dir(missing)))
	cfg, err := LoadArgs(nil, nil)
	if err != nil {
		t.Fatalf("expected defaults, got %v", err)
	}
	want := app.Config{
		AccentColor: "white",
		MainColor:   "darkgray",
		Tickrate:    250 * time.Millisecond,
	}
	if diff := cmp.Diff(want, cfg.App); diff != "" {
		t.Fatalf("unexpected defaults (-want +got):\n%s", diff)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
}

func TestLoadArgsLayers(t *testing.T) {
	path := writeConfig(t, `
accent_color = "#ff0000"
color = "blue"
tickrate = 500
sort = "size"
reverse = true
`)
	cases := []struct {
		name    string
		args    []string
		environ []string
		want    app.Config
	}{
		{
			name: "file",
			args: []string{"--config", path},
			want: app.Config{AccentColor: "#ff0000", MainColor: "blue", Tickrate: 500 * time.Millisecond, Reverse: true, Sort: kernel.SortSize},
		},
		{
			name:    "env over file",
			args:    []string{"--config", path},
			environ: []string{"KMON_COLOR=green", "KMON_TICKRATE=100", "KMON_REVERSE=false"},
			want:    app.Config{AccentColor: "#ff0000", MainColor: "green", Tickrate: 100 * time.Millisecond, Sort: kernel.SortSize},
		},
		{
			name:    "flags over env",
			args:    []string{"-c", "red", "-t", "50", "-u"},
			environ: []string{"KMON_CONFIG=" + path, "KMON_COLOR=green"},
			want:    app.Config{AccentColor: "#ff0000", MainColor: "red", Tickrate: 50 * time.Millisecond, Reverse: true, Unicode: true, Sort: kernel.SortSize},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := LoadArgs(tc.args, tc.environ)
			if err != nil {
				t.Fatalf("expected config, got %v", err)
			}
			if diff := cmp.Diff(tc.want, cfg.App); diff != "" {
				t.Fatalf("unexpected config (-want +got):\n%s", diff)
			}
			if cfg.File != path {
				t.Fatalf("expected file %q, got %q", path, cfg.File)
			}
		})
	}
}

func TestLoadArgsLogging(t *testing.T) {
	cfg, err := LoadArgs([]string{"--trace", "--log-file", "/tmp/kmon-test.log", "--config", writeConfig(t, "")}, nil)
	if err != nil {
		t.Fatalf("expected config, got %v", err)
	}
	if !cfg.Logging.Trace || cfg.Logging.FilePath != "/tmp/kmon-test.log" {
		t.Fatalf("unexpected logging config %+v", cfg.Logging)
	}
	if cfg.Flags["trace"] != "true" || cfg.Flags["logFile"] != "/tmp/kmon-test.log" {
		t.Fatalf("unexpected flag summary %v", cfg.Flags)
	}
}

func TestLoadArgsErrors(t *testing.T) {
	cases := []struct {
		name    string
		args    []string
		environ []string
	}{
		{name: "unknown flag", args: []string{"--nope"}},
		{name: "missing explicit file", args: []string{"--config", filepath.Join(t.TempDir(), "none.toml")}},
		{name: "bad toml", args: []string{"--config", writeConfig(t, "tickrate = [")}},
		{name: "bad env int", args: []string{"--config", writeConfig(t, "")}, environ: []string{"KMON_TICKRATE=fast"}},
		{name: "bad sort", args: []string{"--config", writeConfig(t, `sort = "age"`)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := LoadArgs(tc.args, tc.environ); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestValidate(t *testing.T) {
	base := Config{App: app.Config{AccentColor: "white", MainColor: "#112233", Tickrate: time.Second}}
	if err := Validate(base); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
	zero := base
	zero.App.Tickrate = 0
	if err := Validate(zero); err == nil {
		t.Fatalf("expected tickrate error")
	}
	color := base
	color.App.MainColor = "not-a-color"
	if err := Validate(color); err == nil {
		t.Fatalf("expected color error")
	}
}
