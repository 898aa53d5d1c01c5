// Package config resolves runtime settings from, in rising priority:
// built-in defaults, a TOML file, CHECKLIST_* environment variables and
// command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"
)

const (
	BackendSQLite = "sqlite"
	BackendMemory = "memory"

	ThemeAuto  = "auto"
	ThemeDark  = "dark"
	ThemeLight = "light"

	EnvPrefix = "CHECKLIST_"
)

var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	DBPath        string        `toml:"db_path"`
	Backend       string        `toml:"backend"`
	WatchInterval time.Duration `toml:"watch_interval"`
	WatchBuffer   int           `toml:"watch_buffer"`
	LogFile       string        `toml:"log_file"`
	LogLevel      string        `toml:"log_level"`
	Theme         string        `toml:"theme"`

	// ConfigFile is the file that was read, empty when none was found.
	ConfigFile string `toml:"-"`
}

func Default() Config {
	dir := dataDir()
	return Config{
		DBPath:        filepath.Join(dir, "checklist.db"),
		Backend:       BackendSQLite,
		WatchInterval: 500 * time.Millisecond,
		WatchBuffer:   64,
		LogFile:       filepath.Join(dir, "checklist.log"),
		LogLevel:      "info",
		Theme:         ThemeAuto,
	}
}

func dataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "checklist")
	}
	return ".checklist"
}

// DefaultFile is where the TOML file is looked up when neither --config
// nor CHECKLIST_CONFIG names one.
func DefaultFile() string {
	return filepath.Join(dataDir(), "config.toml")
}

type flagValues struct {
	configFile    string
	dbPath        string
	backend       string
	watchInterval time.Duration
	watchBuffer   int
	logFile       string
	logLevel      string
	theme         string
}

// RegisterFlags adds the config flags to fs. Call Load after fs.Parse.
func RegisterFlags(fs *pflag.FlagSet) *Flags {
	def := Default()
	v := &flagValues{}
	fs.StringVarP(&v.configFile, "config", "c", "", "TOML config file (default "+DefaultFile()+")")
	fs.StringVar(&v.dbPath, "db", def.DBPath, "SQLite database path")
	fs.StringVar(&v.backend, "backend", def.Backend, "storage backend: sqlite or memory")
	fs.DurationVar(&v.watchInterval, "watch-interval", def.WatchInterval, "poll interval for changes made by other processes")
	fs.IntVar(&v.watchBuffer, "watch-buffer", def.WatchBuffer, "buffered change events before dropping")
	fs.StringVar(&v.logFile, "log-file", def.LogFile, "log file path, empty disables logging")
	fs.StringVar(&v.logLevel, "log-level", def.LogLevel, "debug, info, warn or error")
	fs.StringVar(&v.theme, "theme", def.Theme, "auto, dark or light")
	return &Flags{fs: fs, values: v}
}

// Flags ties parsed flag values to the set they were registered on so
// only flags given on the command line override lower layers.
type Flags struct {
	fs     *pflag.FlagSet
	values *flagValues
}

// Load layers defaults, file, environment and flags. flags may be nil.
func Load(flags *Flags) (Config, error) {
	cfg := Default()

	path, explicit := configPath(flags)
	if path != "" {
		if err := loadFile(&cfg, path); err != nil {
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return Config{}, fmt.Errorf("config: load %s: %w", path, err)
			}
		} else {
			cfg.ConfigFile = path
		}
	}

	cfg = FromEnv(cfg)
	if flags != nil {
		flags.apply(&cfg)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func configPath(flags *Flags) (string, bool) {
	if flags != nil && flags.fs.Changed("config") {
		return flags.values.configFile, true
	}
	if v := strings.TrimSpace(os.Getenv(EnvPrefix + "CONFIG")); v != "" {
		return v, true
	}
	return DefaultFile(), false
}

func loadFile(cfg *Config, path string) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("%w: unknown key %s", ErrInvalid, undecoded[0])
	}
	return nil
}

// FromEnv overrides cfg with any CHECKLIST_* variables that parse.
func FromEnv(base Config) Config {
	cfg := base
	if v, ok := getEnvString("DB_PATH"); ok {
		cfg.DBPath = v
	}
	if v, ok := getEnvString("BACKEND"); ok {
		cfg.Backend = strings.ToLower(v)
	}
	if v, ok := getEnvDuration("WATCH_INTERVAL"); ok && v > 0 {
		cfg.WatchInterval = v
	}
	if v, ok := getEnvInt("WATCH_BUFFER"); ok && v > 0 {
		cfg.WatchBuffer = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "LOG_FILE"); ok {
		cfg.LogFile = strings.TrimSpace(v)
	}
	if v, ok := getEnvString("LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := getEnvString("THEME"); ok {
		cfg.Theme = strings.ToLower(v)
	}
	return cfg
}

func (f *Flags) apply(cfg *Config) {
	if f.fs.Changed("db") {
		cfg.DBPath = f.values.dbPath
	}
	if f.fs.Changed("backend") {
		cfg.Backend = strings.ToLower(f.values.backend)
	}
	if f.fs.Changed("watch-interval") {
		cfg.WatchInterval = f.values.watchInterval
	}
	if f.fs.Changed("watch-buffer") {
		cfg.WatchBuffer = f.values.watchBuffer
	}
	if f.fs.Changed("log-file") {
		cfg.LogFile = f.values.logFile
	}
	if f.fs.Changed("log-level") {
		cfg.LogLevel = f.values.logLevel
	}
	if f.fs.Changed("theme") {
		cfg.Theme = strings.ToLower(f.values.theme)
	}
}

func (c Config) Validate() error {
	switch c.Backend {
	case BackendSQLite:
		if strings.TrimSpace(c.DBPath) == "" {
			return fmt.Errorf("%w: db_path is required for the sqlite backend", ErrInvalid)
		}
	case BackendMemory:
	default:
		return fmt.Errorf("%w: backend %q", ErrInvalid, c.Backend)
	}
	switch c.Theme {
	case ThemeAuto, ThemeDark, ThemeLight:
	default:
		return fmt.Errorf("%w: theme %q", ErrInvalid, c.Theme)
	}
	if c.WatchInterval <= 0 {
		return fmt.Errorf("%w: watch_interval must be positive", ErrInvalid)
	}
	if c.WatchBuffer <= 0 {
		return fmt.Errorf("%w: watch_buffer must be positive", ErrInvalid)
	}
	return nil
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(EnvPrefix + name))
	return raw, raw != ""
}

func getEnvInt(name string) (int, bool) {
	raw, ok := getEnvString(name)
	if !ok {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvDuration(name string) (time.Duration, bool) {
	raw, ok := getEnvString(name)
	if !ok {
		return 0, false
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}
