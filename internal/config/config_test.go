package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sportseek/internal/domain"
	"sportseek/internal/eventbus"
	"sportseek/internal/request"
)

func newTestService(t *testing.T, opts ...Option) (ConfigService, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", FileName)
	opts = append([]Option{WithDotEnv()}, opts...)
	return NewConfigService(path, opts...), path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	svc, _ := newTestService(t)

	cfg, err := svc.Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, DefaultDevelopmentURL, cfg.BaseURL())
	assert.Equal(t, 15*time.Second, cfg.Timeout())
	assert.Equal(t, 4*time.Second, cfg.ToastDuration())
	assert.Equal(t, request.DefaultSettings(), cfg.SearchSettings())
}

func TestLoadFromPathRequiresFile(t *testing.T) {
	svc, path := newTestService(t)
	_, err := svc.LoadFromPath(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	svc, path := newTestService(t)

	cfg := DefaultConfig()
	cfg.Environment = EnvProduction
	cfg.API.RequestsPerSecond = 2.5
	cfg.SetSearchSettings(request.Settings{
		Count:           25,
		SortMethod:      domain.SortTime,
		WeightRelevance: 0.5,
		WeightScore:     2,
		WeightTime:      0,
		UsePageRank:     false,
	})
	cfg.Log.File = "/tmp/sportseek.log"
	cfg.UI.AutosaveOptions = false

	require.NoError(t, svc.Save(cfg))
	_, err := os.Stat(path)
	require.NoError(t, err, "save creates missing directories")

	loaded, err := svc.Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
	assert.Equal(t, DefaultProductionURL, loaded.BaseURL())
}

func TestSavedFileIsTOML(t *testing.T) {
	svc, path := newTestService(t)
	require.NoError(t, svc.Save(DefaultConfig()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "environment = 'development'")
	assert.Contains(t, text, "[api]")
	assert.Contains(t, text, "[search]")
	assert.Contains(t, text, "sort_method = 'relevance'")
	assert.NotContains(t, text, "base_url =", "empty override is omitted")
}

func TestPartialFileKeepsDefaults(t *testing.T) {
	svc, path := newTestService(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(`
[api]
base_url = "http://search.internal:8080"

[search]
count = 3
sort_method = "Score"
`), 0644))

	cfg, err := svc.Load()
	require.NoError(t, err)
	assert.Equal(t, "http://search.internal:8080", cfg.BaseURL())
	assert.Equal(t, 3, cfg.Search.Count)
	assert.Equal(t, "score", cfg.Search.SortMethod)
	assert.Equal(t, 1.0, cfg.Search.WeightTime)
	assert.True(t, cfg.Search.UsePageRank)
	assert.Equal(t, 15, cfg.API.TimeoutSeconds)
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("SPORTSEEK_ENVIRONMENT", "production")
	t.Setenv("SPORTSEEK_API_TIMEOUT_SECONDS", "30")
	t.Setenv("SPORTSEEK_SEARCH_USE_PAGERANK", "false")

	svc, _ := newTestService(t)
	cfg, err := svc.Load()
	require.NoError(t, err)
	assert.Equal(t, EnvProduction, cfg.Environment)
	assert.Equal(t, 30*time.Second, cfg.Timeout())
	assert.False(t, cfg.Search.UsePageRank)
}

func TestSaveSearchSettingsKeepsFileValues(t *testing.T) {
	t.Setenv("SPORTSEEK_API_TIMEOUT_SECONDS", "30")
	t.Setenv("SPORTSEEK_LOG_LEVEL", "trace")

	svc, path := newTestService(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(`
environment = "Production"

[api]
base_url = "http://search.internal:8080"
`), 0644))

	cfg, err := svc.Load()
	require.NoError(t, err)
	cfg.API.BaseURL = "http://127.0.0.1:9"

	require.NoError(t, svc.SaveSearchSettings(request.Settings{
		Count:           12,
		SortMethod:      domain.SortScore,
		WeightRelevance: 0.5,
		WeightScore:     1.5,
		WeightTime:      0,
		UsePageRank:     false,
	}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var saved Config
	require.NoError(t, toml.Unmarshal(data, &saved))

	assert.Equal(t, EnvProduction, saved.Environment)
	assert.Equal(t, "http://search.internal:8080", saved.API.BaseURL)
	assert.Equal(t, 15, saved.API.TimeoutSeconds, "environment overrides are not written")
	assert.Equal(t, "info", saved.Log.Level)
	assert.Equal(t, SearchConfig{
		Count:           12,
		SortMethod:      "score",
		WeightRelevance: 0.5,
		WeightScore:     1.5,
		WeightTime:      0,
		UsePageRank:     false,
	}, saved.Search)
}

func TestSaveSearchSettingsWithoutFile(t *testing.T) {
	svc, path := newTestService(t)

	s := request.DefaultSettings()
	s.Count = 4
	require.NoError(t, svc.SaveSearchSettings(s))

	cfg, err := svc.LoadFromPath(path)
	require.NoError(t, err)
	want := DefaultConfig()
	want.Search.Count = 4
	assert.Equal(t, want, cfg)
}

func TestDotEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("SPORTSEEK_API_BASE_URL=http://from-dotenv:9000\n"), 0644))
	t.Cleanup(func() { os.Unsetenv("SPORTSEEK_API_BASE_URL") })

	svc := NewConfigService(filepath.Join(dir, FileName), WithDotEnv(envFile))
	cfg, err := svc.Load()
	require.NoError(t, err)
	assert.Equal(t, "http://from-dotenv:9000", cfg.BaseURL())
}

func TestDotEnvDoesNotOverrideEnvironment(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("SPORTSEEK_SEARCH_COUNT=99\n"), 0644))
	t.Setenv("SPORTSEEK_SEARCH_COUNT", "7")

	svc := NewConfigService(filepath.Join(dir, FileName), WithDotEnv(envFile))
	cfg, err := svc.Load()
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Search.Count)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"unknown environment", func(c *Config) { c.Environment = "staging" }, "Environment"},
		{"unknown sort", func(c *Config) { c.Search.SortMethod = "popularity" }, "SortMethod"},
		{"zero timeout", func(c *Config) { c.API.TimeoutSeconds = 0 }, "TimeoutSeconds"},
		{"negative rate", func(c *Config) { c.API.RequestsPerSecond = -1 }, "RequestsPerSecond"},
		{"zero count", func(c *Config) { c.Search.Count = 0 }, "Count"},
		{"negative weight", func(c *Config) { c.Search.WeightScore = -0.1 }, "WeightScore"},
		{"bad base url", func(c *Config) { c.API.BaseURL = "not a url" }, "BaseURL"},
		{"zero toast", func(c *Config) { c.UI.ToastSeconds = 0 }, "ToastSeconds"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	svc, path := newTestService(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("environment = \"staging\"\n"), 0644))

	_, err := svc.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	svc, path := newTestService(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("[api\nbase_url = "), 0644))

	_, err := svc.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestSaveRejectsInvalidConfig(t *testing.T) {
	svc, path := newTestService(t)
	cfg := DefaultConfig()
	cfg.Search.Count = 0

	require.Error(t, svc.Save(cfg))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestSearchSettingsFallsBackOnUnknownSort(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Search.SortMethod = "bogus"
	assert.Equal(t, domain.SortRelevance, cfg.SearchSettings().SortMethod)
}

func TestServicePublishesEvents(t *testing.T) {
	bus := eventbus.New()
	var got []eventbus.DomainEvent
	bus.Subscribe(eventbus.EventConfigSaved, func(e eventbus.DomainEvent) { got = append(got, e) })

	svc, path := newTestService(t, WithEventBus(bus))
	cfg, err := svc.Load()
	require.NoError(t, err)
	require.NoError(t, svc.Save(cfg))
	require.NoError(t, svc.SaveToPath(cfg, path+".copy"))
	bus.Close()

	require.Len(t, got, 1, "SaveToPath does not publish")
	assert.Equal(t, eventbus.ConfigSavedEvent{Path: path}, got[0])
}

func TestDefaultPath(t *testing.T) {
	p := DefaultPath()
	assert.Equal(t, FileName, filepath.Base(p))
	assert.Equal(t, AppName, filepath.Base(filepath.Dir(p)))
}
