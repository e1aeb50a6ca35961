package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"github.com/orhun/kmon/internal/app"
	"github.com/orhun/kmon/internal/config"
	"github.com/orhun/kmon/internal/logging/events"
)

func main() {
	os.Exit(execute(os.Args[1:], os.Stderr, app.Run))
}

// execute runs the root command and maps failures to exit codes: 2 for
// configuration errors, 1 for everything else.
func execute(args []string, stderr io.Writer, run runFunc) int {
	cmd := newRootCmd(run)
	cmd.SetArgs(args)
	err := cmd.Execute()
	if err == nil {
		return 0
	}
	var cfgErr *configError
	if errors.As(err, &cfgErr) {
		fmt.Fprintf(stderr, "Configuration error: %v\n", cfgErr.err)
		return 2
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return 1
}

func traceStartup(cfg config.Config) {
	events.App.Start(startupFields(cfg))
}

// startupFields bundles runtime context for the startup trace entry.
func startupFields(cfg config.Config) logrus.Fields {
	flags := make(map[string]interface{}, len(cfg.Flags))
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath
	fields := logrus.Fields{
		"argv":       cfg.Args,
		"flags":      flags,
		"config":     cfg,
		"configFile": cfg.File,
		"version":    version,
	}
	if exe, err := os.Executable(); err == nil {
		fields["executable"] = exe
	} else {
		fields["executableError"] = err.Error()
	}
	if cwd, err := os.Getwd(); err == nil {
		fields["cwd"] = cwd
	} else {
		fields["cwdError"] = err.Error()
	}
	for k, v := range terminalFields(os.Stdin, os.Stdout, os.Stderr) {
		fields[k] = v
	}
	return fields
}

// terminalFields reports, per descriptor, whether it is a terminal and its
// size. The first sized terminal is recorded under tty.size.
func terminalFields(files ...*os.File) logrus.Fields {
	fields := logrus.Fields{}
	for _, f := range files {
		key := "tty." + filepath.Base(f.Name())
		fd := int(f.Fd())
		if fd < 0 || !term.IsTerminal(fd) {
			fields[key] = "not a terminal"
			continue
		}
		width, height, err := term.GetSize(fd)
		if err != nil {
			fields[key] = "terminal: " + err.Error()
			continue
		}
		size := fmt.Sprintf("%dx%d", width, height)
		fields[key] = size
		if _, ok := fields["tty.size"]; !ok {
			fields["tty.size"] = size
		}
	}
	return fields
}
