package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	dirName        = ".ganttkit"
	configFileName = "config.toml"
	dbFileName     = "ganttkit.db"

	configPathEnvKey   = "GANTTKIT_CONFIG"
	dbPathEnvKey       = "GANTTKIT_DB"
	logUseCasesEnvKey  = "GANTTKIT_LOG_USE_CASES"
	exportFormatEnvKey = "GANTTKIT_EXPORT_FORMAT"
)

// ExportFormat selects the encoding used when writing bars out.
type ExportFormat string

const (
	FormatJSON ExportFormat = "json"
	FormatYAML ExportFormat = "yaml"
)

// ParseExportFormat accepts "json", "yaml" or "yml", case-insensitively.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported export format %q (expected json or yaml)", s)
	}
}

// Config holds process-wide settings.
type Config struct {
	DBPath       string       `toml:"db_path"`
	LogUseCases  bool         `toml:"log_use_cases"`
	ExportFormat ExportFormat `toml:"export_format"`
}

// Default returns a Config with the database under ~/.ganttkit.
func Default() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("finding home directory: %w", err)
	}
	return defaultsFor(home), nil
}

func defaultsFor(home string) Config {
	return Config{
		DBPath:       filepath.Join(home, dirName, dbFileName),
		ExportFormat: FormatJSON,
	}
}

// Load builds the configuration in three layers: defaults, then the TOML file
// (GANTTKIT_CONFIG or ~/.ganttkit/config.toml), then environment variables.
// Malformed values are errors.
func Load() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("finding home directory: %w", err)
	}
	return load(os.Getenv, home)
}

func load(getenv func(string) string, home string) (Config, error) {
	cfg := defaultsFor(home)

	path, explicit := filePath(getenv, home)
	if err := loadFile(path, explicit, &cfg); err != nil {
		return Config{}, err
	}

	if v := getenv(dbPathEnvKey); v != "" {
		cfg.DBPath = v
	}
	if v := getenv(logUseCasesEnvKey); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", logUseCasesEnvKey, err)
		}
		cfg.LogUseCases = b
	}
	if v := getenv(exportFormatEnvKey); v != "" {
		f, err := ParseExportFormat(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", exportFormatEnvKey, err)
		}
		cfg.ExportFormat = f
	}
	return cfg, nil
}

// filePath reports the config file location and whether the user named it.
func filePath(getenv func(string) string, home string) (string, bool) {
	if p := strings.TrimSpace(getenv(configPathEnvKey)); p != "" {
		return p, true
	}
	return filepath.Join(home, dirName, configFileName), false
}

// loadFile decodes path over cfg. A missing default file is not an error; a
// missing file named through GANTTKIT_CONFIG is.
func loadFile(path string, explicit bool, cfg *Config) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return nil
		}
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("config %s is a directory", path)
	}

	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}

	if cfg.ExportFormat != "" {
		f, err := ParseExportFormat(string(cfg.ExportFormat))
		if err != nil {
			return fmt.Errorf("config %s: %w", path, err)
		}
		cfg.ExportFormat = f
	} else {
		cfg.ExportFormat = FormatJSON
	}
	return nil
}
