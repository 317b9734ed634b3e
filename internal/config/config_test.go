package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	content := `{
		"port": 9090,
		"database_url": "postgres://localhost/equilibria",
		"log_level": "debug",
		"pulse_ttl": "15m",
		"batch_workers": 8
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "postgres://localhost/equilibria", cfg.DatabaseURL)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 15*time.Minute, cfg.PulseTTLDuration())
	assert.Equal(t, 8, cfg.BatchWorkers)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(tmpFile, []byte(`{ invalid json }`), 0644))

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://env/db")
	t.Setenv("GEMINI_API_KEY", "key")
	t.Setenv("GEMINI_MODEL", "gemini-2.5-pro")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("PULSE_TTL", "5m")
	t.Setenv("PULSE_PRUNE_SCHEDULE", "@hourly")
	t.Setenv("PORT", "7000")

	cfg := FromEnv()
	assert.Equal(t, "postgres://env/db", cfg.DatabaseURL)
	assert.Equal(t, "key", cfg.APIKey)
	assert.Equal(t, "gemini-2.5-pro", cfg.GeminiModel)
	assert.Equal(t, logrus.WarnLevel, cfg.Level())
	assert.Equal(t, 5*time.Minute, cfg.PulseTTLDuration())
	assert.Equal(t, "@hourly", cfg.PruneSchedule)
	assert.Equal(t, 7000, cfg.Port)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "empty is valid", cfg: Config{}},
		{name: "full", cfg: Config{Port: 8080, LogLevel: "debug", PulseTTL: "2m", PruneSchedule: "*/5 * * * *", BatchWorkers: 2}},
		{name: "bad port", cfg: Config{Port: 70000}, wantErr: "'port'"},
		{name: "negative workers", cfg: Config{BatchWorkers: -1}, wantErr: "'batch_workers'"},
		{name: "bad level", cfg: Config{LogLevel: "loud"}, wantErr: "'log_level'"},
		{name: "bad ttl", cfg: Config{PulseTTL: "ten minutes"}, wantErr: "'pulse_ttl'"},
		{name: "negative ttl", cfg: Config{PulseTTL: "-1m"}, wantErr: "'pulse_ttl'"},
		{name: "bad schedule", cfg: Config{PruneSchedule: "every now and then"}, wantErr: "'prune_schedule'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{Port: 9000, APIKey: "file-key"}
	defaults := Config{
		Port:        8080,
		APIKey:      "env-key",
		DatabaseURL: "postgres://env/db",
		LogLevel:    "debug",
	}

	merged := cfg.MergeWithDefaults(defaults)

	assert.Equal(t, 9000, merged.Port)
	assert.Equal(t, "file-key", merged.APIKey)
	assert.Equal(t, "postgres://env/db", merged.DatabaseURL)
	assert.Equal(t, "debug", merged.LogLevel)
	assert.Equal(t, DefaultPulseTTL, merged.PulseTTL)
	assert.Equal(t, DefaultPruneSchedule, merged.PruneSchedule)
	assert.Equal(t, DefaultBatchWorkers, merged.BatchWorkers)
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := Config{}
	merged := cfg.MergeWithDefaults(Config{})

	assert.Equal(t, DefaultPort, merged.Port)
	assert.Equal(t, DefaultLogLevel, merged.LogLevel)
	assert.Equal(t, logrus.InfoLevel, merged.Level())
	assert.Equal(t, 10*time.Minute, merged.PulseTTLDuration())
	assert.Empty(t, merged.APIKey)
}
