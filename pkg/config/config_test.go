package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if !reflect.DeepEqual(cfg, GetDefaultConfig()) {
		t.Errorf("expected defaults, got %+v", cfg)
	}
	if cfg.HTTP.Timeout.Std() != 30*time.Second {
		t.Errorf("expected 30s timeout, got %s", cfg.HTTP.Timeout)
	}
}

func TestLoadConfigTOMLKeepsUnsetDefaults(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.toml", `
[search]
api_key = "env:MY_KEY"
search_engine_id = "cx-123"
page_size = 25
labels = false

[http]
timeout = "5s"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Search.APIKey != "env:MY_KEY" || cfg.Search.SearchEngineID != "cx-123" {
		t.Errorf("unexpected credentials %+v", cfg.Search)
	}
	if cfg.Search.PageSize != 25 || cfg.Search.Labels {
		t.Errorf("expected page size 25 and labels off, got %+v", cfg.Search)
	}
	if cfg.Search.PagerSize != 9 {
		t.Errorf("expected default pager size, got %d", cfg.Search.PagerSize)
	}
	if cfg.HTTP.Timeout.Std() != 5*time.Second {
		t.Errorf("expected 5s timeout, got %s", cfg.HTTP.Timeout)
	}
	if cfg.Web.Port != 8080 {
		t.Errorf("expected default port, got %d", cfg.Web.Port)
	}
}

func TestLoadConfigYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yaml", `
search:
  search_engine_id: cx-yaml
  pager_size: 5
locale:
  default: pt-BR
  supported: [pt-BR, en]
http:
  timeout: 1m
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Search.SearchEngineID != "cx-yaml" || cfg.Search.PagerSize != 5 {
		t.Errorf("unexpected search config %+v", cfg.Search)
	}
	if cfg.Locale.Default != "pt-BR" || len(cfg.Locale.Supported) != 2 {
		t.Errorf("unexpected locale config %+v", cfg.Locale)
	}
	if cfg.HTTP.Timeout.Std() != time.Minute {
		t.Errorf("expected 1m timeout, got %s", cfg.HTTP.Timeout)
	}
	if !cfg.Search.Labels {
		t.Errorf("expected labels to stay enabled")
	}
}

func TestLoadConfigEnvironmentOverrides(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.toml", `
[search]
page_size = 25
labels = true
`)
	t.Setenv("GSS_PAGE_SIZE", "30")
	t.Setenv("GSS_LABELS", "false")
	t.Setenv("GSS_HTTP_TIMEOUT", "2s")
	t.Setenv("GSS_BASE_URL", "http://proxy.local/cse")
	t.Setenv("GSS_WEB_PORT", "9090")
	t.Setenv("GSS_MAX_RESULTS", "300")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Search.PageSize != 30 || cfg.Search.Labels {
		t.Errorf("expected environment to win, got %+v", cfg.Search)
	}
	if cfg.Search.BaseURL != "http://proxy.local/cse" {
		t.Errorf("unexpected base url %q", cfg.Search.BaseURL)
	}
	if cfg.HTTP.Timeout.Std() != 2*time.Second {
		t.Errorf("expected 2s timeout, got %s", cfg.HTTP.Timeout)
	}
	if cfg.Web.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Web.Port)
	}
	if cfg.Search.MaxResults != 300 {
		t.Errorf("expected max results 300, got %d", cfg.Search.MaxResults)
	}
}

func TestLoadConfigDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.toml", "[search]\npage_size = 20\n")
	writeFile(t, dir, ".env", "GSS_SEARCH_ENGINE_ID=cx-dotenv\n")
	t.Cleanup(func() { os.Unsetenv("GSS_SEARCH_ENGINE_ID") })

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Search.SearchEngineID != "cx-dotenv" {
		t.Errorf("expected engine id from .env, got %q", cfg.Search.SearchEngineID)
	}
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"zero page size", "[search]\npage_size = 0\n"},
		{"negative pager size", "[search]\npager_size = -3\n"},
		{"bad base url", "[search]\nbase_url = \"ftp://example.com\"\n"},
		{"bad language", "[locale]\ndefault = \"not a tag!\"\n"},
		{"bad port", "[web]\nport = 70000\n"},
		{"zero max results", "[search]\nmax_results = 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "config.toml", tt.content)
			if _, err := LoadConfig(path); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.toml", "[search\n")
	if _, err := LoadConfig(path); err == nil {
		t.Errorf("expected a decode error")
	}
}

func TestTemplateConfigLoads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gss", "config.toml")
	cfg := GetDefaultConfig()
	cfg.Search.SearchEngineID = "cx-init"

	if err := cfg.SaveTemplateConfig(path); err != nil {
		t.Fatalf("SaveTemplateConfig: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading template: %v", err)
	}
	if !strings.Contains(string(data), "# GSS_API_KEY") {
		t.Errorf("expected the commented template, got:\n%s", data)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if loaded.Search.SearchEngineID != "cx-init" {
		t.Errorf("expected engine id to be filled in, got %q", loaded.Search.SearchEngineID)
	}
	if loaded.Search.APIKey != "env:GOOGLE_API_KEY" {
		t.Errorf("unexpected api key reference %q", loaded.Search.APIKey)
	}
	if loaded.Search.PageSize != 10 || loaded.Search.PagerSize != 9 || !loaded.Search.Labels || loaded.Search.MaxResults != 100 {
		t.Errorf("template does not match defaults: %+v", loaded.Search)
	}
}

func TestSaveConfigRoundTrip(t *testing.T) {
	for _, name := range []string{"config.toml", "config.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			cfg := GetDefaultConfig()
			cfg.Search.PageSize = 15
			cfg.HTTP.Timeout = Duration(45 * time.Second)

			if err := cfg.SaveConfig(path); err != nil {
				t.Fatalf("SaveConfig: %v", err)
			}
			loaded, err := LoadConfig(path)
			if err != nil {
				t.Fatalf("LoadConfig: %v", err)
			}
			if !reflect.DeepEqual(cfg, loaded) {
				t.Errorf("round trip differs:\n%+v\n%+v", cfg, loaded)
			}
		})
	}
}

func TestToSettings(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Search.APIKey = "file:/run/key"
	cfg.Search.SearchEngineID = "cx"

	s := cfg.ToSettings()
	if s.APIKey != "file:/run/key" || s.EngineID != "cx" || s.PageSize != 10 || s.PagerSize != 9 || !s.Labels || s.MaxResults != 100 {
		t.Errorf("unexpected settings %+v", s)
	}
}

func TestGetConfigDir(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	path, err := GetDefaultConfigPath()
	if err != nil {
		t.Fatalf("GetDefaultConfigPath: %v", err)
	}
	if want := filepath.Join(xdg, "gss", "config.toml"); path != want {
		t.Errorf("expected %s, got %s", want, path)
	}
	if _, err := os.Stat(filepath.Dir(path)); err != nil {
		t.Errorf("expected config dir to exist: %v", err)
	}
}
