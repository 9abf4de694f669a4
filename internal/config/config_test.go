package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"OUTPUT", "LOG_LEVEL", "HOME", "HOME_FALLBACK"} {
		t.Setenv(envPrefix+key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd returned error: %v", err)
	}
	if cfg.StartDir != wd {
		t.Fatalf("expected start dir %s, got %s", wd, cfg.StartDir)
	}
	if cfg.Output != defaultOutput {
		t.Fatalf("expected default output %s, got %s", defaultOutput, cfg.Output)
	}
	if cfg.LogLevel != defaultLogLevel {
		t.Fatalf("expected default log level %s, got %s", defaultLogLevel, cfg.LogLevel)
	}
	if cfg.HomeFallback {
		t.Fatalf("expected home fallback to be disabled by default")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	t.Setenv(envPrefix+"OUTPUT", "YAML")
	t.Setenv(envPrefix+"LOG_LEVEL", "debug")
	t.Setenv(envPrefix+"HOME", home)
	t.Setenv(envPrefix+"HOME_FALLBACK", "true")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Output != OutputYAML {
		t.Fatalf("expected yaml output, got %s", cfg.Output)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("expected debug log level, got %s", cfg.LogLevel)
	}
	if cfg.HomeDir != home || !cfg.HomeFallback {
		t.Fatalf("unexpected home settings: %+v", cfg)
	}
}

func TestLoadPrecedence(t *testing.T) {
	clearEnv(t)
	t.Setenv(envPrefix+"OUTPUT", "json")
	t.Setenv(envPrefix+"LOG_LEVEL", "error")

	settings := filepath.Join(t.TempDir(), "settings.yaml")
	content := "output: yaml\nlog_level: warn\nstart_dir: /srv/node\nhome_fallback: true\nhome_dir: /srv/home\n"
	if err := os.WriteFile(settings, []byte(content), 0o644); err != nil {
		t.Fatalf("write settings: %v", err)
	}

	level := "debug"
	start := t.TempDir()
	cfg, err := Load(&CLIOverrides{
		SettingsFile: settings,
		LogLevel:     &level,
		StartDir:     &start,
	})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Output != OutputYAML {
		t.Fatalf("expected YAML settings to override env output, got %s", cfg.Output)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("expected CLI log level to win, got %s", cfg.LogLevel)
	}
	if cfg.StartDir != start {
		t.Fatalf("expected CLI start dir %s, got %s", start, cfg.StartDir)
	}
	if !cfg.HomeFallback || cfg.HomeDir != "/srv/home" {
		t.Fatalf("expected home settings from YAML, got %+v", cfg)
	}
}

func TestLoadMakesStartDirAbsolute(t *testing.T) {
	clearEnv(t)

	rel := "."
	cfg, err := Load(&CLIOverrides{StartDir: &rel})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !filepath.IsAbs(cfg.StartDir) {
		t.Fatalf("expected absolute start dir, got %s", cfg.StartDir)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Run("invalid output", func(t *testing.T) {
		clearEnv(t)
		output := "toml"
		if _, err := Load(&CLIOverrides{Output: &output}); err == nil {
			t.Fatalf("expected error for unsupported output")
		}
	})

	t.Run("invalid log level", func(t *testing.T) {
		clearEnv(t)
		level := "verbose"
		if _, err := Load(&CLIOverrides{LogLevel: &level}); err == nil {
			t.Fatalf("expected error for invalid log level")
		}
	})

	t.Run("missing settings file", func(t *testing.T) {
		clearEnv(t)
		missing := filepath.Join(t.TempDir(), "missing.yaml")
		if _, err := Load(&CLIOverrides{SettingsFile: missing}); err == nil {
			t.Fatalf("expected error for missing settings file")
		}
	})

	t.Run("malformed settings file", func(t *testing.T) {
		clearEnv(t)
		settings := filepath.Join(t.TempDir(), "settings.yaml")
		if err := os.WriteFile(settings, []byte("output: [json\n"), 0o644); err != nil {
			t.Fatalf("write settings: %v", err)
		}
		if _, err := Load(&CLIOverrides{SettingsFile: settings}); err == nil {
			t.Fatalf("expected error for malformed settings file")
		}
	})
}

func TestApplyEnvConfigIgnoresInvalidBool(t *testing.T) {
	t.Setenv(envPrefix+"HOME_FALLBACK", "sometimes")

	cfg := Config{HomeFallback: true}
	applyEnvConfig(&cfg)
	if !cfg.HomeFallback {
		t.Fatalf("expected invalid boolean to be ignored")
	}
}
