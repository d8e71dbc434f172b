package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.Database.Driver)
	assert.Equal(t, "127.0.0.1", cfg.Database.Host)
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.Equal(t, "root", cfg.Database.User)
	assert.Equal(t, "test_db", cfg.Database.Name)

	assert.Equal(t, "ollama", cfg.LLM.Provider)
	assert.Equal(t, "llama2", cfg.LLM.Model)
	assert.Equal(t, 1024, cfg.LLM.MaxTokens)
	assert.InDelta(t, 0.1, cfg.LLM.Temperature, 0.0001)

	assert.Equal(t, 10, cfg.Pagination.PageSize)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)

	assert.True(t, cfg.Policy.BlockSensitive)
	assert.Contains(t, cfg.Policy.BlockedColumns, "password")
	assert.Contains(t, cfg.Policy.BlockedColumns, "salary")
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("DB_SCOUT_DB_DRIVER", "mysql")
	t.Setenv("DB_SCOUT_DB_HOST", "db.internal")
	t.Setenv("DB_SCOUT_DB_PORT", "3307")
	t.Setenv("DB_SCOUT_LLM_PROVIDER", "openai")
	t.Setenv("DB_SCOUT_LLM_MODEL", "gpt-4o-mini")
	t.Setenv("DB_SCOUT_LLM_API_KEY", "sk-test")
	t.Setenv("DB_SCOUT_PAGE_SIZE", "25")
	t.Setenv("DB_SCOUT_POLICY_BLOCKED_COLUMNS", "ssn,dob")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 3307, cfg.Database.Port)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	assert.Equal(t, 25, cfg.Pagination.PageSize)
	assert.Equal(t, []string{"ssn", "dob"}, cfg.Policy.BlockedColumns)
}

func TestLoadConfigMissingAPIKey(t *testing.T) {
	for _, provider := range []string{"openai", "anthropic"} {
		t.Run(provider, func(t *testing.T) {
			t.Setenv("DB_SCOUT_LLM_PROVIDER", provider)
			t.Setenv("DB_SCOUT_LLM_API_KEY", "")

			_, err := LoadConfig()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "API key is required")
		})
	}
}

func TestLoadConfigOllamaNeedsNoKey(t *testing.T) {
	t.Setenv("DB_SCOUT_LLM_PROVIDER", "ollama")
	t.Setenv("DB_SCOUT_LLM_API_KEY", "")

	_, err := LoadConfig()
	assert.NoError(t, err)
}

func TestLoadConfigInvalidDriver(t *testing.T) {
	t.Setenv("DB_SCOUT_DB_DRIVER", "postgres")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}

func TestLoadConfigInvalidProvider(t *testing.T) {
	t.Setenv("DB_SCOUT_LLM_PROVIDER", "bard")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported LLM provider")
}

func TestLoadConfigInvalidPageSize(t *testing.T) {
	t.Setenv("DB_SCOUT_PAGE_SIZE", "0")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "page size must be positive")
}
