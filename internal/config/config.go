package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/pflag"

	"github.com/orhun/kmon/internal/app"
	"github.com/orhun/kmon/internal/kernel"
	"github.com/orhun/kmon/internal/theme"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	// File is the configuration file that was read, if any.
	File  string
	Flags map[string]string
	Args  []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envAccentColor = "KMON_ACCENT_COLOR"
	envColor       = "KMON_COLOR"
	envTickrate    = "KMON_TICKRATE"
	envReverse     = "KMON_REVERSE"
	envUnicode     = "KMON_UNICODE"
	envSort        = "KMON_SORT"
	envConfig      = "KMON_CONFIG"
	envLogFile     = "KMON_LOG_FILE"
	envTrace       = "KMON_TRACE"

	// DefaultTickrateMS is the default refresh rate in milliseconds.
	DefaultTickrateMS = 250
)

// fileConfig mirrors config.toml. Unset keys keep the lower layer's value.
type fileConfig struct {
	AccentColor *string `toml:"accent_color"`
	Color       *string `toml:"color"`
	Tickrate    *int    `toml:"tickrate"`
	Reverse     *bool   `toml:"reverse"`
	Unicode     *bool   `toml:"unicode"`
	Sort        *string `toml:"sort"`
	LogFile     *string `toml:"log_file"`
	Trace       *bool   `toml:"trace"`
}

// settings is the flat value set every layer writes into.
type settings struct {
	accent   string
	color    string
	tickrate int
	reverse  bool
	unicode  bool
	sort     string
	logFile  string
	trace    bool
}

// RegisterFlags adds the kmon flags to flags.
func RegisterFlags(flags *pflag.FlagSet) {
	flags.StringP("accent-color", "a", theme.DefaultAccentColor, "set the accent color using hex or color name")
	flags.StringP("color", "c", theme.DefaultMainColor, "set the main color using hex or color name")
	flags.IntP("tickrate", "t", DefaultTickrateMS, "set the refresh rate of the terminal in milliseconds")
	flags.BoolP("reverse", "r", false, "reverse the kernel module list")
	flags.BoolP("unicode", "u", false, "show Unicode symbols for the block titles")
	flags.String("config", "", "path to the TOML configuration file")
	flags.String("log-file", "", "path to the log file")
	flags.Bool("trace", false, "enable verbose JSON trace logging")
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	flags := pflag.NewFlagSet("kmon", pflag.ContinueOnError)
	flags.SetOutput(new(strings.Builder))
	RegisterFlags(flags)
	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}
	cfg, err := Resolve(flags, environ)
	if err != nil {
		return Config{}, err
	}
	cfg.Args = append([]string(nil), args...)
	return cfg, nil
}

// Resolve layers defaults, the TOML file, KMON_* variables and the flags that
// were set explicitly, in that order.
func Resolve(flags *pflag.FlagSet, environ []string) (Config, error) {
	env := parseEnv(environ)
	s := settings{
		accent:   theme.DefaultAccentColor,
		color:    theme.DefaultMainColor,
		tickrate: DefaultTickrateMS,
	}

	path, explicit := flagOr(flags, "config", envOrDefault(env, envConfig, ""))
	if path == "" {
		path = DefaultPath()
	} else {
		explicit = true
	}
	file, err := readFile(path, explicit)
	if err != nil {
		return Config{}, err
	}
	if file != nil {
		applyFile(&s, file)
	} else {
		path = ""
	}
	if err := applyEnv(&s, env); err != nil {
		return Config{}, err
	}
	if err := applyFlags(&s, flags); err != nil {
		return Config{}, err
	}

	sortKey, err := kernel.ParseSortKey(s.sort)
	if err != nil {
		return Config{}, err
	}
	cfg := Config{
		App: app.Config{
			AccentColor: s.accent,
			MainColor:   s.color,
			Tickrate:    time.Duration(s.tickrate) * time.Millisecond,
			Reverse:     s.reverse,
			Unicode:     s.unicode,
			Sort:        sortKey,
		},
		Logging: Logging{
			FilePath: s.logFile,
			Trace:    s.trace,
		},
		File: path,
		Flags: map[string]string{
			"accentColor": s.accent,
			"color":       s.color,
			"tickrate":    strconv.Itoa(s.tickrate),
			"reverse":     strconv.FormatBool(s.reverse),
			"unicode":     strconv.FormatBool(s.unicode),
			"sort":        sortKey.String(),
			"trace":       strconv.FormatBool(s.trace),
			"logFile":     s.logFile,
		},
	}
	return cfg, nil
}

// DefaultPath returns ~/.config/kmon/config.toml, or "" when the user
// configuration directory is unknown.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "kmon", "config.toml")
}

// readFile decodes the TOML file at path. A missing file is only an error
// when the path was given explicitly.
func readFile(path string, explicit bool) (*fileConfig, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return nil, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	var file fileConfig
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &file, nil
}

func applyFile(s *settings, f *fileConfig) {
	if f.AccentColor != nil {
		s.accent = *f.AccentColor
	}
	if f.Color != nil {
		s.color = *f.Color
	}
	if f.Tickrate != nil {
		s.tickrate = *f.Tickrate
	}
	if f.Reverse != nil {
		s.reverse = *f.Reverse
	}
	if f.Unicode != nil {
		s.unicode = *f.Unicode
	}
	if f.Sort != nil {
		s.sort = *f.Sort
	}
	if f.LogFile != nil {
		s.logFile = *f.LogFile
	}
	if f.Trace != nil {
		s.trace = *f.Trace
	}
}

func applyEnv(s *settings, env map[string]string) error {
	s.accent = envOrDefault(env, envAccentColor, s.accent)
	s.color = envOrDefault(env, envColor, s.color)
	s.sort = envOrDefault(env, envSort, s.sort)
	s.logFile = envOrDefault(env, envLogFile, s.logFile)
	var err error
	if s.tickrate, err = envOrInt(env, envTickrate, s.tickrate); err != nil {
		return err
	}
	if s.reverse, err = envOrBool(env, envReverse, s.reverse); err != nil {
		return err
	}
	if s.unicode, err = envOrBool(env, envUnicode, s.unicode); err != nil {
		return err
	}
	if s.trace, err = envOrBool(env, envTrace, s.trace); err != nil {
		return err
	}
	return nil
}

// applyFlags copies only the flags the user set.
func applyFlags(s *settings, flags *pflag.FlagSet) error {
	if flags == nil {
		return nil
	}
	var err error
	flags.Visit(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		switch f.Name {
		case "accent-color":
			s.accent = f.Value.String()
		case "color":
			s.color = f.Value.String()
		case "tickrate":
			s.tickrate, err = flags.GetInt("tickrate")
		case "reverse":
			s.reverse, err = flags.GetBool("reverse")
		case "unicode":
			s.unicode, err = flags.GetBool("unicode")
		case "log-file":
			s.logFile = f.Value.String()
		case "trace":
			s.trace, err = flags.GetBool("trace")
		}
	})
	return err
}

// flagOr returns the flag value when it was set, else fallback.
func flagOr(flags *pflag.FlagSet, name, fallback string) (string, bool) {
	if flags == nil {
		return fallback, false
	}
	f := flags.Lookup(name)
	if f == nil || !f.Changed {
		return fallback, false
	}
	return f.Value.String(), true
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok && strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) (int, error) {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fallback, fmt.Errorf("%s: %w", key, err)
	}
	return parsed, nil
}

func envOrBool(env map[string]string, key string, fallback bool) (bool, error) {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return fallback, fmt.Errorf("%s: %w", key, err)
	}
	return parsed, nil
}

// Validate rejects a non-positive tick rate and unknown colors.
func Validate(cfg Config) error {
	if cfg.App.Tickrate <= 0 {
		return fmt.Errorf("tickrate must be > 0 (got %s)", cfg.App.Tickrate)
	}
	if _, err := theme.ParseColor(cfg.App.AccentColor); err != nil {
		return fmt.Errorf("accent color: %w", err)
	}
	if _, err := theme.ParseColor(cfg.App.MainColor); err != nil {
		return fmt.Errorf("color: %w", err)
	}
	return nil
}
