package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/orhun/kmon/internal/app"
	"github.com/orhun/kmon/internal/config"
	"github.com/orhun/kmon/internal/kernel"
)

func TestTerminalFieldsCoverEachDescriptor(t *testing.T) {
	fields := terminalFields(os.Stdin, os.Stdout, os.Stderr)
	for _, key := range []string{"tty.stdin", "tty.stdout", "tty.stderr"} {
		if _, ok := fields[key].(string); !ok {
			t.Fatalf("expected %s in %#v", key, fields)
		}
	}
}

func TestTerminalFieldsReportsNonTerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "tty")
	if err != nil {
		t.Fatalf("create temp: %v", err)
	}
	defer f.Close()
	fields := terminalFields(f)
	key := "tty." + filepath.Base(f.Name())
	if fields[key] != "not a terminal" {
		t.Fatalf("expected non-terminal for %s, got %#v", key, fields)
	}
	if _, ok := fields["tty.size"]; ok {
		t.Fatalf("expected no detected size, got %v", fields["tty.size"])
	}
}

func TestStartupFieldsIncludeFlags(t *testing.T) {
	cfg := config.Config{
		App: app.Config{
			AccentColor: "white",
			MainColor:   "darkgray",
			Tickrate:    250 * time.Millisecond,
			Sort:        kernel.SortName,
		},
		Logging: config.Logging{
			FilePath: "trace.log",
			Trace:    true,
		},
		File: "/etc/kmon.toml",
		Flags: map[string]string{
			"color":    "darkgray",
			"tickrate": "250",
			"sort":     "name",
		},
		Args: []string{"sort", "--name"},
	}

	payload := startupFields(cfg)

	flagsValue, ok := payload["flags"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected flags map in payload")
	}
	if flagsValue["tickrate"] != "250" {
		t.Fatalf("expected tickrate 250, got %v", flagsValue["tickrate"])
	}
	if flagsValue["sort"] != "name" {
		t.Fatalf("expected sort name, got %v", flagsValue["sort"])
	}
	if flagsValue["trace"] != true {
		t.Fatalf("expected trace flag true, got %v", flagsValue["trace"])
	}
	if flagsValue["logFile"] != "trace.log" {
		t.Fatalf("expected log file trace.log, got %v", flagsValue["logFile"])
	}
	if payload["configFile"] != "/etc/kmon.toml" {
		t.Fatalf("expected config file, got %v", payload["configFile"])
	}
	if _, ok := payload["tty.stdout"]; !ok {
		t.Fatalf("expected terminal fields in payload")
	}
	if cfgValue, ok := payload["config"].(config.Config); !ok {
		t.Fatalf("expected config in payload")
	} else if cfgValue.App != cfg.App {
		t.Fatalf("expected app config %#v, got %#v", cfg.App, cfgValue.App)
	}
}

// isolate keeps the user's configuration file and KMON_* variables out of
// the command tests.
func isolate(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	for _, key := range []string{"KMON_ACCENT_COLOR", "KMON_COLOR", "KMON_TICKRATE", "KMON_REVERSE", "KMON_UNICODE", "KMON_SORT", "KMON_CONFIG", "KMON_TRACE"} {
		t.Setenv(key, "")
	}
	t.Setenv("KMON_LOG_FILE", filepath.Join(dir, "kmon.log"))
}

func TestExecutePassesResolvedConfig(t *testing.T) {
	isolate(t)
	var got app.Config
	run := func(cfg app.Config) error {
		got = cfg
		return nil
	}
	var stderr bytes.Buffer
	if code := execute([]string{"sort", "--dependent", "-r", "-t", "100"}, &stderr, run); code != 0 {
		t.Fatalf("expected exit 0, got %d (%s)", code, stderr.String())
	}
	want := app.Config{
		AccentColor: "white",
		MainColor:   "darkgray",
		Tickrate:    100 * time.Millisecond,
		Reverse:     true,
		Sort:        kernel.SortDependent,
	}
	if got != want {
		t.Fatalf("expected %#v, got %#v", want, got)
	}
}

func TestSortWithoutFlagSortsByName(t *testing.T) {
	isolate(t)
	var got app.Config
	run := func(cfg app.Config) error {
		got = cfg
		return nil
	}
	var stderr bytes.Buffer
	if code := execute([]string{"sort"}, &stderr, run); code != 0 {
		t.Fatalf("expected exit 0, got %d (%s)", code, stderr.String())
	}
	if got.Sort != kernel.SortName {
		t.Fatalf("expected name sort, got %v", got.Sort)
	}
}

func TestExecuteExitCodes(t *testing.T) {
	isolate(t)
	ok := func(app.Config) error { return nil }
	cases := []struct {
		name string
		args []string
		run  runFunc
		code int
		msg  string
	}{
		{name: "bad tickrate", args: []string{"-t", "0"}, run: ok, code: 2, msg: "Configuration error"},
		{name: "bad color", args: []string{"--color", "nope"}, run: ok, code: 2, msg: "Configuration error"},
		{name: "unknown flag", args: []string{"--bogus"}, run: ok, code: 2, msg: "Configuration error"},
		{name: "runtime failure", run: func(app.Config) error { return errors.New("no terminal") }, code: 1, msg: "Error: no terminal"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var stderr bytes.Buffer
			if code := execute(tc.args, &stderr, tc.run); code != tc.code {
				t.Fatalf("expected exit %d, got %d (%s)", tc.code, code, stderr.String())
			}
			if !strings.Contains(stderr.String(), tc.msg) {
				t.Fatalf("expected %q in stderr, got %q", tc.msg, stderr.String())
			}
		})
	}
}

func TestVersionCommand(t *testing.T) {
	cmd := newRootCmd(func(app.Config) error {
		t.Fatalf("version must not start the UI")
		return nil
	})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("expected version to succeed, got %v", err)
	}
	if out.String() != "kmon "+version+"\n" {
		t.Fatalf("unexpected version output %q", out.String())
	}
}
