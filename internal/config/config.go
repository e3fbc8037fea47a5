package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/chestsync/internal/container"
)

// Config captures runtime configuration for the application.
type Config struct {
	App      App
	Logging  Logging
	Features Features
	Storage  Storage
	Controls Controls
	// File is the config file path, empty when none was given.
	File  string
	Flags map[string]string
	Args  []string

	overrides func(*Config)
}

// App describes the terminal host options.
type App struct {
	Width            int           `mapstructure:"width"`
	Height           int           `mapstructure:"height"`
	World            string        `mapstructure:"world"`
	Viewports        int           `mapstructure:"viewports"`
	ClearBackgrounds bool          `mapstructure:"clear_backgrounds"`
	Tick             time.Duration `mapstructure:"tick"`
	Churn            time.Duration `mapstructure:"churn"`
}

type Logging struct {
	FilePath string `mapstructure:"file"`
	Trace    bool   `mapstructure:"trace"`
}

// Features toggles the optional inventory features.
type Features struct {
	Verbose    bool   `mapstructure:"verbose"`
	Search     bool   `mapstructure:"search"`
	Categorize bool   `mapstructure:"categorize"`
	Sort       bool   `mapstructure:"sort"`
	SortKey    string `mapstructure:"sort_key"`
	// SearchMode is "gray" to fade non-matching items or "hide" to drop them.
	SearchMode string `mapstructure:"search_mode"`
}

// StorageOptions is the file form of container.Options.
type StorageOptions struct {
	Resize  string   `mapstructure:"resize"`
	Rows    int      `mapstructure:"rows"`
	Filters []string `mapstructure:"filters"`
	Sorts   []string `mapstructure:"sorts"`
}

// Options converts s, rejecting unknown tiers.
func (s StorageOptions) Options() (container.Options, error) {
	tier, err := container.ParseTier(s.Resize)
	if err != nil {
		return container.Options{}, err
	}
	if s.Rows < 0 {
		return container.Options{}, fmt.Errorf("rows must be >= 0 (got %d)", s.Rows)
	}
	return container.Options{
		Resize:  tier,
		Rows:    s.Rows,
		Filters: append([]string(nil), s.Filters...),
		Sorts:   append([]string(nil), s.Sorts...),
	}, nil
}

// Storage holds the default options and per kind overrides.
type Storage struct {
	Default StorageOptions            `mapstructure:"default"`
	Kinds   map[string]StorageOptions `mapstructure:"kinds"`
}

// Resolve converts every layer of s.
func (s Storage) Resolve() (container.Options, map[string]container.Options, error) {
	defaults, err := s.Default.Options()
	if err != nil {
		return container.Options{}, nil, fmt.Errorf("storage default: %w", err)
	}
	kinds := make(map[string]container.Options, len(s.Kinds))
	for kind, raw := range s.Kinds {
		opts, err := raw.Options()
		if err != nil {
			return container.Options{}, nil, fmt.Errorf("storage kind %q: %w", kind, err)
		}
		kinds[strings.ToLower(kind)] = opts
	}
	return defaults, kinds, nil
}

// Controls lists the keys bound to pane scrolling.
type Controls struct {
	ScrollUp   []string `mapstructure:"scroll_up"`
	ScrollDown []string `mapstructure:"scroll_down"`
	// ScrollPage keys multiply a scroll step by the pane's rows while held.
	ScrollPage []string `mapstructure:"scroll_page"`
}

const (
	envConfig     = "CHESTSYNC_CONFIG"
	envWorld      = "CHESTSYNC_WORLD"
	envWidth      = "CHESTSYNC_WIDTH"
	envHeight     = "CHESTSYNC_HEIGHT"
	envViewports  = "CHESTSYNC_VIEWPORTS"
	envClear      = "CHESTSYNC_CLEAR_BACKGROUNDS"
	envTick       = "CHESTSYNC_TICK"
	envChurn      = "CHESTSYNC_CHURN"
	envVerbose    = "CHESTSYNC_VERBOSE"
	envTrace      = "CHESTSYNC_TRACE"
	envLogFile    = "CHESTSYNC_LOG_FILE"
	maxViewports  = 4
	minTick       = 10 * time.Millisecond
	defaultTick   = 100 * time.Millisecond
	defaultChurn  = 3 * time.Second
	defaultSortBy = "name"
)

const (
	SearchGray = "gray"
	SearchHide = "hide"
)

// Default returns the built in configuration.
func Default() Config {
	return Config{
		App: App{
			Viewports: 1,
			Tick:      defaultTick,
			Churn:     defaultChurn,
		},
		Features: Features{
			Search:     true,
			Categorize: true,
			Sort:       true,
			SortKey:    defaultSortBy,
			SearchMode: SearchGray,
		},
		Storage: Storage{
			Default: StorageOptions{Resize: container.TierDefault.String()},
			Kinds: map[string]StorageOptions{
				"chest":  {},
				"fridge": {},
				"player": {},
			},
		},
		Controls: Controls{
			ScrollUp:   []string{"up", "k"},
			ScrollDown: []string{"down", "j"},
			ScrollPage: []string{"shift"},
		},
	}
}

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment. Values are
// layered as defaults, then the config file, then environment, then flags.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)
	base := Default()

	fs := flag.NewFlagSet("chestsync", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	file := fs.String("config", envOrDefault(env, envConfig, ""), "path to a YAML/TOML/JSON config file (watched for changes)")
	world := fs.String("world", envOrDefault(env, envWorld, ""), "path to a world fixture (empty uses the built in world)")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	viewports := fs.Int("viewports", envOrInt(env, envViewports, base.App.Viewports), "number of split-screen viewports")
	clearBg := fs.Bool("clear-backgrounds", envOrBool(env, envClear, false), "do not dim the screen behind open menus")
	tick := fs.Duration("tick", envOrDuration(env, envTick, base.App.Tick), "host update interval")
	churn := fs.Duration("churn", envOrDuration(env, envChurn, base.App.Churn), "interval of background inventory changes (0 disables)")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	verbose := fs.Bool("verbose", envOrBool(env, envVerbose, false), "report container resolution in the status line")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	explicit := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { explicit[f.Name] = true })
	set := func(name, envKey string) bool {
		if explicit[name] {
			return true
		}
		v, ok := env[envKey]
		return ok && strings.TrimSpace(v) != ""
	}

	overrides := func(cfg *Config) {
		if set("world", envWorld) {
			cfg.App.World = *world
		}
		if set("width", envWidth) {
			cfg.App.Width = *width
		}
		if set("height", envHeight) {
			cfg.App.Height = *height
		}
		if set("viewports", envViewports) {
			cfg.App.Viewports = *viewports
		}
		if set("clear-backgrounds", envClear) {
			cfg.App.ClearBackgrounds = *clearBg
		}
		if set("tick", envTick) {
			cfg.App.Tick = *tick
		}
		if set("churn", envChurn) {
			cfg.App.Churn = *churn
		}
		if set("trace", envTrace) {
			cfg.Logging.Trace = *trace
		}
		if set("verbose", envVerbose) {
			cfg.Features.Verbose = *verbose
		}
		if set("log-file", envLogFile) {
			cfg.Logging.FilePath = *logFile
		}
	}

	cfg := base
	if *file != "" {
		fromFile, err := ReadFile(*file)
		if err != nil {
			return Config{}, err
		}
		cfg = fromFile
	}
	overrides(&cfg)
	cfg.File = *file
	cfg.overrides = overrides
	cfg.Args = append([]string(nil), args...)
	cfg.Flags = map[string]string{
		"config":            *file,
		"world":             *world,
		"width":             strconv.Itoa(*width),
		"height":            strconv.Itoa(*height),
		"viewports":         strconv.Itoa(*viewports),
		"clear-backgrounds": strconv.FormatBool(*clearBg),
		"tick":              tick.String(),
		"churn":             churn.String(),
		"trace":             strconv.FormatBool(*trace),
		"verbose":           strconv.FormatBool(*verbose),
		"logFile":           *logFile,
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Reload re-reads cfg's file and reapplies the environment and flag values
// that were in effect when cfg was loaded.
func Reload(cfg Config) (Config, error) {
	if cfg.File == "" {
		return cfg, nil
	}
	next, err := ReadFile(cfg.File)
	if err != nil {
		return cfg, err
	}
	if cfg.overrides != nil {
		cfg.overrides(&next)
	}
	next.File = cfg.File
	next.overrides = cfg.overrides
	next.Flags = cfg.Flags
	next.Args = cfg.Args
	if err := Validate(next); err != nil {
		return cfg, err
	}
	return next, nil
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
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures the configuration is usable.
func Validate(cfg Config) error {
	if cfg.App.Width < 0 {
		return fmt.Errorf("width must be >= 0 (got %d)", cfg.App.Width)
	}
	if cfg.App.Height < 0 {
		return fmt.Errorf("height must be >= 0 (got %d)", cfg.App.Height)
	}
	if cfg.App.Viewports < 1 || cfg.App.Viewports > maxViewports {
		return fmt.Errorf("viewports must be between 1 and %d (got %d)", maxViewports, cfg.App.Viewports)
	}
	if cfg.App.Tick < minTick {
		return fmt.Errorf("tick must be >= %s (got %s)", minTick, cfg.App.Tick)
	}
	if cfg.App.Churn < 0 {
		return fmt.Errorf("churn must be >= 0 (got %s)", cfg.App.Churn)
	}
	if m := cfg.Features.SearchMode; m != SearchGray && m != SearchHide {
		return fmt.Errorf("search mode must be %q or %q (got %q)", SearchGray, SearchHide, m)
	}
	if _, _, err := cfg.Storage.Resolve(); err != nil {
		return err
	}
	return nil
}
