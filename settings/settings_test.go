package settings

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("EFFCHARTS_CONFIG", filepath.Join(t.TempDir(), "none.yaml"))

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Listen != ":8080" || cfg.Width != 800 || cfg.Height != 450 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Workers != 4 || cfg.Precision != 4 || cfg.Timeout != 10*time.Second {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.LogLevel != "info" || cfg.Strict {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	file := filepath.Join(t.TempDir(), "effcharts.yaml")
	content := "listen: \":9000\"\nwidth: 1024\nlog_level: DEBUG\nstrict: true\n"
	if err := os.WriteFile(file, []byte(content), 0o644); err != nil {
		t.Fatalf("write settings: %v", err)
	}
	t.Setenv("EFFCHARTS_WORKERS", "8")
	t.Setenv("EFFCHARTS_LISTEN", "127.0.0.1:9090")

	cfg, err := Load(file)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Listen != "127.0.0.1:9090" {
		t.Fatalf("env should override file: %s", cfg.Listen)
	}
	if cfg.Width != 1024 || cfg.Height != 450 || cfg.Workers != 8 {
		t.Fatalf("unexpected sizes: %+v", cfg)
	}
	if cfg.LogLevel != "debug" || !cfg.Strict {
		t.Fatalf("unexpected settings: %+v", cfg)
	}
}

func TestLoadInvalid(t *testing.T) {
	t.Setenv("EFFCHARTS_CONFIG", filepath.Join(t.TempDir(), "none.yaml"))
	tests := map[string]string{
		"EFFCHARTS_WORKERS":   "0",
		"EFFCHARTS_WIDTH":     "-1",
		"EFFCHARTS_PRECISION": "-2",
		"EFFCHARTS_LOG_LEVEL": "loud",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := Load("")
			if !errors.Is(err, ErrInvalid) {
				t.Fatalf("want ErrInvalid, got %v", err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("want ErrNotExist, got %v", err)
	}
}

func TestLogger(t *testing.T) {
	var (
		buf bytes.Buffer
		cfg = Settings{LogLevel: "warn"}
		log = cfg.Logger(&buf)
	)
	log.Info("hidden")
	log.Warn("shown", "chart", "bars")
	str := buf.String()
	if strings.Contains(str, "hidden") {
		t.Errorf("info message should be filtered: %s", str)
	}
	if !strings.Contains(str, "msg=shown") || !strings.Contains(str, "chart=bars") {
		t.Errorf("warn message missing: %s", str)
	}
}
