package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/discstack/discstack/internal/app"
	"github.com/discstack/discstack/internal/mpd"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envAddress  = "DISCSTACK_ADDRESS"
	envPassword = "DISCSTACK_PASSWORD"
	envNetwork  = "DISCSTACK_NETWORK"
	envSort     = "DISCSTACK_SORT"
	envWidth    = "DISCSTACK_WIDTH"
	envHeight   = "DISCSTACK_HEIGHT"
	envFooter   = "DISCSTACK_FOOTER"
	envVerbose  = "DISCSTACK_VERBOSE"
	envTrace    = "DISCSTACK_TRACE"
	envLogFile  = "DISCSTACK_LOG_FILE"
	envConfig   = "DISCSTACK_CONFIG"
)

const (
	defaultAddress = "127.0.0.1:6600"
	defaultNetwork = "tcp"
)

// fileConfig mirrors the optional TOML config file. Flags and environment
// variables take precedence over file values.
type fileConfig struct {
	Address  string `toml:"address"`
	Password string `toml:"password"`
	Network  string `toml:"network"`
	Sort     string `toml:"sort"`
	Footer   *bool  `toml:"footer"`
	Verbose  *bool  `toml:"verbose"`
	Trace    *bool  `toml:"trace"`
	LogFile  string `toml:"log_file"`
}

// Load parses configuration from CLI arguments, environment variables, and
// the optional config file.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	configPath := envOrDefault(env, envConfig, defaultConfigPath())
	// A leading --config flag needs to win over the environment, so parse
	// twice: once to discover the path, once with file values as defaults.
	if fromArgs := configPathFromArgs(args); fromArgs != "" {
		configPath = fromArgs
	}
	file, err := loadFile(configPath)
	if err != nil {
		return Config{}, err
	}

	fs := flag.NewFlagSet("discstack", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	_ = fs.String("config", configPath, "path to the config file")
	address := fs.String("address", envOrDefault(env, envAddress, stringOr(file.Address, defaultAddress)), "MPD server address (host:port or socket path)")
	password := fs.String("password", envOrDefault(env, envPassword, file.Password), "MPD server password")
	network := fs.String("network", envOrDefault(env, envNetwork, stringOr(file.Network, defaultNetwork)), "network to dial MPD over (tcp or unix)")
	sortMode := fs.String("sort", envOrDefault(env, envSort, file.Sort), "song sort order: track, title, or file")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envFooter, boolOr(file.Footer, false)), "enable footer hint row (disabled by default)")
	verbose := fs.Bool("verbose", envOrBool(env, envVerbose, boolOr(file.Verbose, false)), "show status messages for catalog reloads and reconnects")
	trace := fs.Bool("trace", envOrBool(env, envTrace, boolOr(file.Trace, false)), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, file.LogFile), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}
	sort, err := mpd.ParseSortMode(*sortMode)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		App: app.Config{
			Network:    *network,
			Address:    *address,
			Password:   *password,
			Sort:       sort,
			Width:      *width,
			Height:     *height,
			ShowFooter: *footer,
			Verbose:    *verbose,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Flags: map[string]string{
			"address": *address,
			"network": *network,
			"sort":    sort.String(),
			"width":   strconv.Itoa(*width),
			"height":  strconv.Itoa(*height),
			"footer":  strconv.FormatBool(*footer),
			"verbose": strconv.FormatBool(*verbose),
			"trace":   strconv.FormatBool(*trace),
			"logFile": *logFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
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

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.App.Address) == "" {
		return fmt.Errorf("server address must not be empty")
	}
	switch cfg.App.Network {
	case "tcp", "unix":
	default:
		return fmt.Errorf("unsupported network %q (want tcp or unix)", cfg.App.Network)
	}
	return nil
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "discstack", "config.toml")
}

func configPathFromArgs(args []string) string {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "-config" || arg == "--config":
			if i+1 < len(args) {
				return args[i+1]
			}
		case strings.HasPrefix(arg, "-config="):
			return strings.TrimPrefix(arg, "-config=")
		case strings.HasPrefix(arg, "--config="):
			return strings.TrimPrefix(arg, "--config=")
		}
	}
	return ""
}

func loadFile(path string) (fileConfig, error) {
	var file fileConfig
	if strings.TrimSpace(path) == "" {
		return file, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return file, nil
		}
		return file, fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &file); err != nil {
		return file, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return file, nil
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

func stringOr(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func boolOr(value *bool, fallback bool) bool {
	if value == nil {
		return fallback
	}
	return *value
}
