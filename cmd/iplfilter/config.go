package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// defaultConfigPath is consulted when -config is not given; a missing
// file there is not an error.
const defaultConfigPath = "iplfilter.yaml"

// Config is the resolved tool configuration. Precedence, lowest to
// highest: built-in defaults, YAML config file, IPL_* environment
// variables (after an optional .env overlay), command line flags.
type Config struct {
	// Workers sets both the batch pool size and the per-filter
	// channel workers. Zero or negative means GOMAXPROCS.
	Workers int `yaml:"workers"`

	// LogFile receives the structured log (JSON, rotated).
	LogFile string `yaml:"log_file"`

	// DevMode enables debug level and console echo.
	DevMode bool `yaml:"dev_mode"`

	// Sigma is the default Gaussian blur strength.
	Sigma float64 `yaml:"sigma"`

	// Radius is the default median window radius.
	Radius int `yaml:"radius"`

	// OutDir, when set, receives all output files.
	OutDir string `yaml:"outdir"`
}

func defaultConfig() Config {
	return Config{
		Workers: runtime.GOMAXPROCS(0),
		LogFile: "iplfilter.log",
		DevMode: false,
		Sigma:   5, // the classic default blur strength
		Radius:  2,
		OutDir:  "",
	}
}

// resolveConfig builds the effective configuration from defaults, the
// YAML file and the environment. Flag overrides happen at the call site,
// where flag presence is known.
func resolveConfig(configPath string) (Config, error) {
	cfg := defaultConfig()

	explicit := configPath != ""
	if !explicit {
		configPath = defaultConfigPath
	}
	if err := loadConfigFile(configPath, &cfg); err != nil {
		// A missing default config is fine; a missing explicit one is not.
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return Config{}, err
		}
	}

	// .env is an optional overlay; only a malformed file is worth noting.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "iplfilter: .env: %v\n", err)
	}
	applyEnv(&cfg)

	return cfg, nil
}

// loadConfigFile overlays the YAML file at path onto cfg.
func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path) //nolint:gosec // config path is user-provided intentionally
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// applyEnv overlays IPL_* environment variables onto cfg. Unset
// variables leave the current value; unparseable ones are skipped.
func applyEnv(cfg *Config) {
	envInt("IPL_WORKERS", &cfg.Workers)
	envString("IPL_LOG_FILE", &cfg.LogFile)
	envBool("IPL_DEV_MODE", &cfg.DevMode)
	envFloat("IPL_SIGMA", &cfg.Sigma)
	envInt("IPL_RADIUS", &cfg.Radius)
	envString("IPL_OUTDIR", &cfg.OutDir)
}

func envString(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envInt(key string, dst *int) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func envFloat(key string, dst *float64) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

func envBool(key string, dst *bool) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}
