package config_test

import (
	"testing"

	"github.com/curio-chat/curio/config"
	"github.com/stretchr/testify/assert"
)

func TestRuntimeConfig_ApplyEnvOverrides(t *testing.T) {
	t.Setenv("CURIO_DATABASE_PATH", "/tmp/override.db")
	t.Setenv("CURIO_VECTOR_ENABLED", "false")
	t.Setenv("CURIO_EMBEDDING_DIMENSION", "3072")
	t.Setenv("CURIO_SHORT_TERM_WINDOW", "8")

	conf := config.NewRuntimeConfig()
	conf.ApplyEnv()

	assert.Equal(t, "/tmp/override.db", conf.DatabasePath)
	assert.False(t, conf.VectorEnabled)
	assert.Equal(t, 3072, conf.EmbeddingDimension)
	assert.Equal(t, 8, conf.ShortTermWindow)
}

func TestRuntimeConfig_ApplyEnvIgnoresInvalidNumbers(t *testing.T) {
	t.Setenv("CURIO_EMBEDDING_DIMENSION", "not-a-number")
	t.Setenv("CURIO_SHORT_TERM_WINDOW", "-2")

	conf := config.NewRuntimeConfig()
	conf.ApplyEnv()

	assert.Equal(t, 1536, conf.EmbeddingDimension)
	assert.Equal(t, 20, conf.ShortTermWindow)
}

func TestModelConfig_ApplyEnvOverrides(t *testing.T) {
	t.Setenv("CURIO_MODEL_PROVIDER", "openai")
	t.Setenv("CURIO_EMBEDDING_MODEL", "text-embedding-3-large")
	t.Setenv("CURIO_REQUEST_TIMEOUT", "30s")

	conf := config.NewModelConfig()
	conf.ApplyEnv()

	assert.Equal(t, "openai", conf.Provider)
	assert.Equal(t, "text-embedding-3-large", conf.EmbeddingModel)
	assert.Equal(t, "30s", conf.RequestTimeout.String())
}
