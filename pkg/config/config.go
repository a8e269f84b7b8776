package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/rubiojr/gss/pkg/customsearch"
	"github.com/rubiojr/gss/pkg/locale"
	"github.com/rubiojr/gss/pkg/search"
)

//go:embed config.toml.sample
var configTemplate string

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	Search SearchConfig `toml:"search" yaml:"search"`
	Locale LocaleConfig `toml:"locale" yaml:"locale"`
	HTTP   HTTPConfig   `toml:"http" yaml:"http"`
	Web    WebConfig    `toml:"web" yaml:"web"`
}

type SearchConfig struct {
	// APIKey is a key reference: env:NAME, file:/path or the key itself.
	APIKey         string `toml:"api_key" yaml:"api_key" env:"GSS_API_KEY"`
	SearchEngineID string `toml:"search_engine_id" yaml:"search_engine_id" env:"GSS_SEARCH_ENGINE_ID"`
	BaseURL        string `toml:"base_url" yaml:"base_url" env:"GSS_BASE_URL"`
	PageSize       int    `toml:"page_size" yaml:"page_size" env:"GSS_PAGE_SIZE"`
	PagerSize      int    `toml:"pager_size" yaml:"pager_size" env:"GSS_PAGER_SIZE"`
	Labels         bool   `toml:"labels" yaml:"labels" env:"GSS_LABELS"`
	MaxResults     int    `toml:"max_results" yaml:"max_results" env:"GSS_MAX_RESULTS"`
}

type LocaleConfig struct {
	Default   string   `toml:"default" yaml:"default" env:"GSS_LANGUAGE"`
	Supported []string `toml:"supported" yaml:"supported"`
}

type HTTPConfig struct {
	Timeout Duration `toml:"timeout" yaml:"timeout" env:"GSS_HTTP_TIMEOUT"`
}

type WebConfig struct {
	Host string `toml:"host" yaml:"host" env:"GSS_WEB_HOST"`
	Port int    `toml:"port" yaml:"port" env:"GSS_WEB_PORT"`
}

// Duration is a time.Duration written as "30s" in every config format.
type Duration time.Duration

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

func (d Duration) String() string {
	return time.Duration(d).String()
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// SetValue lets cleanenv parse the environment value.
func (d *Duration) SetValue(s string) error {
	return d.UnmarshalText([]byte(s))
}

func GetDefaultConfig() *Config {
	return &Config{
		Search: SearchConfig{
			BaseURL:    customsearch.DefaultBaseURL,
			PageSize:   search.DefaultPageSize,
			PagerSize:  search.DefaultPagerSize,
			Labels:     true,
			MaxResults: customsearch.MaxResults,
		},
		Locale: LocaleConfig{
			Default:   "en",
			Supported: []string{"en"},
		},
		HTTP: HTTPConfig{Timeout: Duration(30 * time.Second)},
		Web:  WebConfig{Host: "localhost", Port: 8080},
	}
}

// LoadConfig reads configPath on top of the defaults, then applies a .env
// file next to it and the process environment. A missing file is not an
// error.
func LoadConfig(configPath string) (*Config, error) {
	config := GetDefaultConfig()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("reading config file: %w", err)
		default:
			if err := decode(configPath, data, config); err != nil {
				return nil, err
			}
		}

		dotenv := filepath.Join(filepath.Dir(configPath), ".env")
		if _, err := os.Stat(dotenv); err == nil {
			if err := godotenv.Load(dotenv); err != nil {
				return nil, fmt.Errorf("loading %s: %w", dotenv, err)
			}
		}
	}

	if err := cleanenv.ReadEnv(config); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func decode(path string, data []byte, config *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, config); err != nil {
			return fmt.Errorf("unmarshaling yaml config: %w", err)
		}
	default:
		if err := toml.Unmarshal(data, config); err != nil {
			return fmt.Errorf("unmarshaling config: %w", err)
		}
	}
	return nil
}

// Validate rejects structurally broken configurations. Missing
// credentials are left to the caller.
func (c *Config) Validate() error {
	if err := c.ToSettings().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := locale.Normalize(c.Locale.Default); err != nil {
		return fmt.Errorf("%w: locale.default: %w", ErrInvalidConfig, err)
	}
	for _, tag := range c.Locale.Supported {
		if _, err := locale.Normalize(tag); err != nil {
			return fmt.Errorf("%w: locale.supported: %w", ErrInvalidConfig, err)
		}
	}
	if c.HTTP.Timeout < 0 {
		return fmt.Errorf("%w: http.timeout must not be negative", ErrInvalidConfig)
	}
	if c.Web.Port < 0 || c.Web.Port > 65535 {
		return fmt.Errorf("%w: web.port %d out of range", ErrInvalidConfig, c.Web.Port)
	}
	return nil
}

// ToSettings returns the search settings the configuration describes.
func (c *Config) ToSettings() search.Settings {
	return search.Settings{
		APIKey:     c.Search.APIKey,
		EngineID:   c.Search.SearchEngineID,
		BaseURL:    c.Search.BaseURL,
		PageSize:   c.Search.PageSize,
		PagerSize:  c.Search.PagerSize,
		Labels:     c.Search.Labels,
		MaxResults: c.Search.MaxResults,
	}
}

// NewLocaleMatcher builds the request language matcher.
func (c *Config) NewLocaleMatcher() (*locale.Matcher, error) {
	return locale.NewMatcher(c.Locale.Default, c.Locale.Supported)
}

func (c *Config) SaveConfig(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(configPath)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = toml.Marshal(c)
	}
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	return os.WriteFile(configPath, data, 0600)
}

// SaveTemplateConfig writes the commented sample configuration. The file
// may hold a literal api key, so it is only readable by its owner.
func (c *Config) SaveTemplateConfig(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return os.WriteFile(configPath, []byte(c.generateConfigTemplate()), 0600)
}

func (c *Config) generateConfigTemplate() string {
	template := configTemplate
	if c.Search.SearchEngineID != "" {
		template = strings.Replace(template, `search_engine_id = ""`, fmt.Sprintf("search_engine_id = %q", c.Search.SearchEngineID), 1)
	}
	if c.Search.APIKey != "" {
		template = strings.Replace(template, `api_key = "env:GOOGLE_API_KEY"`, fmt.Sprintf("api_key = %q", c.Search.APIKey), 1)
	}
	return template
}

// GetConfigDir returns the configuration directory for gss
func GetConfigDir() (string, error) {
	// Use XDG_CONFIG_HOME if set, otherwise use ~/.config
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting user home directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	gssConfigDir := filepath.Join(configDir, "gss")

	// Create the directory if it doesn't exist
	if err := os.MkdirAll(gssConfigDir, 0755); err != nil {
		return "", fmt.Errorf("creating config directory %s: %w", gssConfigDir, err)
	}

	return gssConfigDir, nil
}

// GetDefaultConfigPath returns the default configuration file path
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}
