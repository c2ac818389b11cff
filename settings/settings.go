package settings

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	DefaultFile = "effcharts.yaml"
	envPrefix   = "EFFCHARTS_"
)

var ErrInvalid = errors.New("invalid settings")

// Settings are shared by the binaries. Values come from an optional
// YAML file, then from EFFCHARTS_* variables.
type Settings struct {
	Listen    string        `yaml:"listen" env:"EFFCHARTS_LISTEN" env-default:":8080"`
	Precision int           `yaml:"precision" env:"EFFCHARTS_PRECISION" env-default:"4"`
	Width     int           `yaml:"width" env:"EFFCHARTS_WIDTH" env-default:"800"`
	Height    int           `yaml:"height" env:"EFFCHARTS_HEIGHT" env-default:"450"`
	Workers   int           `yaml:"workers" env:"EFFCHARTS_WORKERS" env-default:"4"`
	Output    string        `yaml:"output" env:"EFFCHARTS_OUTPUT"`
	Strict    bool          `yaml:"strict" env:"EFFCHARTS_STRICT"`
	Timeout   time.Duration `yaml:"timeout" env:"EFFCHARTS_TIMEOUT" env-default:"10s"`
	LogLevel  string        `yaml:"log_level" env:"EFFCHARTS_LOG_LEVEL" env-default:"info"`
}

// Load reads file when it exists. An empty file name falls back to
// EFFCHARTS_CONFIG, then to DefaultFile.
func Load(file string) (*Settings, error) {
	var (
		cfg  = &Settings{}
		path = resolvePath(file)
	)
	if st, err := os.Stat(path); err == nil && !st.IsDir() {
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	} else if file != "" {
		return nil, fmt.Errorf("%s: %w", file, os.ErrNotExist)
	}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, err
	}
	normalize(cfg)
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func resolvePath(file string) string {
	if file = strings.TrimSpace(file); file != "" {
		return file
	}
	if v := strings.TrimSpace(os.Getenv(envPrefix + "CONFIG")); v != "" {
		return v
	}
	return DefaultFile
}

func normalize(cfg *Settings) {
	cfg.Listen = strings.TrimSpace(cfg.Listen)
	cfg.Output = strings.TrimSpace(cfg.Output)
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
}

func Validate(cfg *Settings) error {
	if cfg.Listen == "" {
		return fmt.Errorf("%w: listen address required", ErrInvalid)
	}
	if cfg.Precision < 0 {
		return fmt.Errorf("%w: precision must not be negative", ErrInvalid)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("%w: width and height must be positive", ErrInvalid)
	}
	if cfg.Workers <= 0 {
		return fmt.Errorf("%w: workers must be positive", ErrInvalid)
	}
	if cfg.Timeout < 0 {
		return fmt.Errorf("%w: timeout must not be negative", ErrInvalid)
	}
	if _, err := ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalid, err)
	}
	return nil
}

func ParseLevel(str string) (slog.Level, error) {
	var lvl slog.Level
	if str == "" {
		return slog.LevelInfo, nil
	}
	err := lvl.UnmarshalText([]byte(str))
	return lvl, err
}
