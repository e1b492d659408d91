package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.URL != DefaultServerURL {
		t.Errorf("URL = %q, want %q", cfg.Server.URL, DefaultServerURL)
	}
	if cfg.Server.RequestTimeout != "" {
		t.Errorf("RequestTimeout = %q, want empty", cfg.Server.RequestTimeout)
	}
	if cfg.Output.Color != nil {
		t.Errorf("Color = %v, want nil", *cfg.Output.Color)
	}
}

func TestLoadProjectOverridesGlobal(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	writeConfig(t, filepath.Join(home, ".config", "taskman", "config.toml"), `
[server]
url = "https://global.example.com/api/v1"
request-timeout = "30s"

[output]
color = true
`)

	dir := t.TempDir()
	writeConfig(t, filepath.Join(dir, "taskman.toml"), `
[server]
url = "https://project.example.com/api/v1"
`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.URL != "https://project.example.com/api/v1" {
		t.Errorf("URL = %q, want project value", cfg.Server.URL)
	}
	if cfg.Server.RequestTimeout != "30s" {
		t.Errorf("RequestTimeout = %q, want global value 30s", cfg.Server.RequestTimeout)
	}
	if cfg.Output.Color == nil || !*cfg.Output.Color {
		t.Errorf("Color = %v, want true from global", cfg.Output.Color)
	}
}

func TestLoadProjectDisablesColor(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	writeConfig(t, filepath.Join(home, ".config", "taskman", "config.toml"), `
[output]
color = true
`)

	dir := t.TempDir()
	writeConfig(t, filepath.Join(dir, "taskman.toml"), `
[output]
color = false
`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Output.Color == nil || *cfg.Output.Color {
		t.Errorf("Color = %v, want false from project", cfg.Output.Color)
	}
}

func TestLoadInvalidTOML(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	writeConfig(t, filepath.Join(dir, "taskman.toml"), `server = not valid`)

	if _, err := Load(dir); err == nil {
		t.Fatal("expected error for invalid TOML")
	}
}

func TestTimeout(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    time.Duration
		wantErr bool
	}{
		{"unset", "", 0, false},
		{"seconds", "15s", 15 * time.Second, false},
		{"minutes", "2m", 2 * time.Minute, false},
		{"garbage", "soon", 0, true},
		{"negative", "-5s", 0, true},
		{"zero", "0s", 0, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := &Config{}
			cfg.Server.RequestTimeout = test.value
			got, err := cfg.Timeout()
			if test.wantErr {
				if err == nil {
					t.Fatalf("Timeout(%q): expected error", test.value)
				}
				return
			}
			if err != nil {
				t.Fatalf("Timeout(%q): %v", test.value, err)
			}
			if got != test.want {
				t.Errorf("Timeout(%q) = %v, want %v", test.value, got, test.want)
			}
		})
	}
}
