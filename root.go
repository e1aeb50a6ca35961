package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/orhun/kmon/internal/app"
	"github.com/orhun/kmon/internal/config"
	"github.com/orhun/kmon/internal/kernel"
	"github.com/orhun/kmon/internal/logging"
)

// version is overridden at build time with -ldflags.
var version = "1.7.1"

type runFunc func(app.Config) error

// configError marks failures that happen before the UI starts.
type configError struct {
	err error
}

func (e *configError) Error() string { return e.err.Error() }

func (e *configError) Unwrap() error { return e.err }

func newRootCmd(run runFunc) *cobra.Command {
	root := &cobra.Command{
		Use:           "kmon",
		Short:         "Linux kernel manager and activity monitor",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return start(cmd, run, nil)
		},
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &configError{err: err}
	})
	config.RegisterFlags(root.PersistentFlags())
	root.AddCommand(newSortCmd(run), newVersionCmd())
	return root
}

func newSortCmd(run runFunc) *cobra.Command {
	var size, name, dependent bool
	cmd := &cobra.Command{
		Use:   "sort",
		Short: "Sort kernel modules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key := kernel.SortName
			switch {
			case size:
				key = kernel.SortSize
			case dependent:
				key = kernel.SortDependent
			}
			return start(cmd, run, &key)
		},
	}
	cmd.Flags().BoolVarP(&size, "size", "s", false, "sort modules by their sizes")
	cmd.Flags().BoolVarP(&name, "name", "n", false, "sort modules by their names")
	cmd.Flags().BoolVarP(&dependent, "dependent", "d", false, "sort modules by their dependent modules")
	cmd.MarkFlagsMutuallyExclusive("size", "name", "dependent")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "kmon %s\n", version)
		},
	}
}

// start resolves the configuration layers, configures logging and runs the UI.
func start(cmd *cobra.Command, run runFunc, sortKey *kernel.SortKey) error {
	cfg, err := config.Resolve(cmd.Flags(), os.Environ())
	if err != nil {
		return &configError{err: err}
	}
	if sortKey != nil && *sortKey != kernel.SortNone {
		cfg.App.Sort = *sortKey
		cfg.Flags["sort"] = sortKey.String()
	}
	cfg.Args = append([]string(nil), os.Args[1:]...)
	if err := config.Validate(cfg); err != nil {
		return &configError{err: err}
	}
	logging.Configure(cfg.Logging.FilePath)
	logging.SetTraceEnabled(cfg.Logging.Trace)

	traceStartup(cfg)

	if err := run(cfg.App); err != nil {
		logging.Error(err)
		return err
	}
	return nil
}
