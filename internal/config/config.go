package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"sportseek/internal/domain"
	"sportseek/internal/eventbus"
	"sportseek/internal/request"
)

// Environments select which backend URL is used when base_url is unset
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

const (
	AppName  = "sportseek"
	FileName = "config.toml"

	// EnvPrefix is prepended to every environment override, e.g.
	// SPORTSEEK_API_BASE_URL overrides api.base_url
	EnvPrefix = "SPORTSEEK"

	DefaultDevelopmentURL = "http://localhost:3000"
	DefaultProductionURL  = "https://annot-a-ix.vercel.app"
)

// Config represents the application configuration
type Config struct {
	Environment string       `mapstructure:"environment" toml:"environment" validate:"oneof=development production"`
	API         APIConfig    `mapstructure:"api" toml:"api"`
	Search      SearchConfig `mapstructure:"search" toml:"search"`
	Log         LogConfig    `mapstructure:"log" toml:"log"`
	UI          UISettings   `mapstructure:"ui" toml:"ui"`
}

// APIConfig locates the search backend
type APIConfig struct {
	BaseURL           string  `mapstructure:"base_url" toml:"base_url,omitempty" validate:"omitempty,http_url"`
	DevelopmentURL    string  `mapstructure:"development_url" toml:"development_url" validate:"required,http_url"`
	ProductionURL     string  `mapstructure:"production_url" toml:"production_url" validate:"required,http_url"`
	TimeoutSeconds    int     `mapstructure:"timeout_seconds" toml:"timeout_seconds" validate:"gt=0"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second" toml:"requests_per_second" validate:"gte=0"`
}

// SearchConfig holds the option values new searches start from
type SearchConfig struct {
	Count           int     `mapstructure:"count" toml:"count" validate:"gte=1"`
	SortMethod      string  `mapstructure:"sort_method" toml:"sort_method" validate:"oneof=relevance score time"`
	WeightRelevance float64 `mapstructure:"weight_relevance" toml:"weight_relevance" validate:"gte=0"`
	WeightScore     float64 `mapstructure:"weight_score" toml:"weight_score" validate:"gte=0"`
	WeightTime      float64 `mapstructure:"weight_time" toml:"weight_time" validate:"gte=0"`
	UsePageRank     bool    `mapstructure:"use_pagerank" toml:"use_pagerank"`
}

// LogConfig controls the application log
type LogConfig struct {
	Level string `mapstructure:"level" toml:"level"`
	File  string `mapstructure:"file" toml:"file,omitempty"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	ToastSeconds    int  `mapstructure:"toast_seconds" toml:"toast_seconds" validate:"gt=0"`
	AutosaveOptions bool `mapstructure:"autosave_options" toml:"autosave_options"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	s := request.DefaultSettings()
	return &Config{
		Environment: EnvDevelopment,
		API: APIConfig{
			DevelopmentURL: DefaultDevelopmentURL,
			ProductionURL:  DefaultProductionURL,
			TimeoutSeconds: 15,
		},
		Search: SearchConfig{
			Count:           s.Count,
			SortMethod:      s.SortMethod.String(),
			WeightRelevance: s.WeightRelevance,
			WeightScore:     s.WeightScore,
			WeightTime:      s.WeightTime,
			UsePageRank:     s.UsePageRank,
		},
		Log: LogConfig{
			Level: "info",
		},
		UI: UISettings{
			ToastSeconds:    4,
			AutosaveOptions: true,
		},
	}
}

// BaseURL resolves the backend address: an explicit base_url wins, otherwise
// the URL for the configured environment
func (c *Config) BaseURL() string {
	if c.API.BaseURL != "" {
		return c.API.BaseURL
	}
	if c.Environment == EnvProduction {
		return c.API.ProductionURL
	}
	return c.API.DevelopmentURL
}

// Timeout is the per-call transport timeout
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

// ToastDuration is how long a notification stays on screen
func (c *Config) ToastDuration() time.Duration {
	return time.Duration(c.UI.ToastSeconds) * time.Second
}

// SearchSettings converts the [search] section into builder settings
func (c *Config) SearchSettings() request.Settings {
	sm, err := domain.ParseSortMethod(c.Search.SortMethod)
	if err != nil {
		sm = request.DefaultSortMethod
	}
	return request.Settings{
		Count:           c.Search.Count,
		SortMethod:      sm,
		WeightRelevance: c.Search.WeightRelevance,
		WeightScore:     c.Search.WeightScore,
		WeightTime:      c.Search.WeightTime,
		UsePageRank:     c.Search.UsePageRank,
	}
}

// SetSearchSettings stores s as the new [search] section
func (c *Config) SetSearchSettings(s request.Settings) {
	c.Search = SearchConfig{
		Count:           s.Count,
		SortMethod:      s.SortMethod.String(),
		WeightRelevance: s.WeightRelevance,
		WeightScore:     s.WeightScore,
		WeightTime:      s.WeightTime,
		UsePageRank:     s.UsePageRank,
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the configuration for values the application cannot use
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid config: %s: failed %q check (value %v)", fe.Namespace(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// DefaultPath returns $XDG_CONFIG_HOME/sportseek/config.toml, falling back to
// ~/.config when the platform has no config dir
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, AppName, FileName)
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	SaveSearchSettings(s request.Settings) error
	Path() string
}

// Option customises a ConfigService
type Option func(*configService)

// WithEventBus publishes a ConfigSaved event on bus after every Save
func WithEventBus(bus eventbus.EventBus) Option {
	return func(cs *configService) { cs.bus = bus }
}

// WithDotEnv sets the .env files read before environment overrides are
// applied. By default ".env" in the working directory is tried.
func WithDotEnv(files ...string) Option {
	return func(cs *configService) { cs.envFiles = files }
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
	envFiles []string
}

// NewConfigService creates a config service for path, or DefaultPath() when
// path is empty
func NewConfigService(path string, opts ...Option) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	cs := &configService{
		filePath: path,
		envFiles: []string{".env"},
	}
	for _, opt := range opts {
		opt(cs)
	}
	return cs
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from the service's file. A missing file
// yields the defaults plus any environment overrides.
func (cs *configService) Load() (*Config, error) {
	return cs.load(cs.filePath, false)
}

// Save saves the configuration to the service's file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}
	return nil
}

// SaveSearchSettings rewrites the [search] section of the file. Every other
// value is taken from the file as it is on disk, so flag and environment
// overrides of the running process are not written back.
func (cs *configService) SaveSearchSettings(s request.Settings) error {
	cfg, err := cs.readFile()
	if err != nil {
		return err
	}
	cfg.SetSearchSettings(s)
	return cs.Save(cfg)
}

// readFile decodes the file over the defaults, without env overrides
func (cs *configService) readFile() (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(cs.filePath)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.Environment = strings.ToLower(strings.TrimSpace(cfg.Environment))
	return cfg, nil
}

// LoadFromPath loads configuration from a specific path, which must exist
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	return cs.load(path, true)
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	if err := config.Validate(); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// write-then-rename
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func (cs *configService) load(path string, mustExist bool) (*Config, error) {
	cs.loadDotEnv()

	v := viper.New()
	v.SetConfigType("toml")
	setDefaults(v, DefaultConfig())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if _, err := os.Stat(path); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if mustExist {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
	} else {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.Environment = strings.ToLower(strings.TrimSpace(cfg.Environment))
	cfg.Search.SortMethod = strings.ToLower(strings.TrimSpace(cfg.Search.SortMethod))

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

func (cs *configService) loadDotEnv() {
	for _, f := range cs.envFiles {
		// godotenv never overrides variables that are already set
		_ = godotenv.Load(f)
	}
}

// setDefaults registers every key so that AutomaticEnv overrides apply to
// Unmarshal even when the key is absent from the file
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("environment", d.Environment)

	v.SetDefault("api.base_url", d.API.BaseURL)
	v.SetDefault("api.development_url", d.API.DevelopmentURL)
	v.SetDefault("api.production_url", d.API.ProductionURL)
	v.SetDefault("api.timeout_seconds", d.API.TimeoutSeconds)
	v.SetDefault("api.requests_per_second", d.API.RequestsPerSecond)

	v.SetDefault("search.count", d.Search.Count)
	v.SetDefault("search.sort_method", d.Search.SortMethod)
	v.SetDefault("search.weight_relevance", d.Search.WeightRelevance)
	v.SetDefault("search.weight_score", d.Search.WeightScore)
	v.SetDefault("search.weight_time", d.Search.WeightTime)
	v.SetDefault("search.use_pagerank", d.Search.UsePageRank)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)

	v.SetDefault("ui.toast_seconds", d.UI.ToastSeconds)
	v.SetDefault("ui.autosave_options", d.UI.AutosaveOptions)
}
