package main

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/openaipro/openaipro/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateOptionalPositiveInt(t *testing.T) {
	assert.NoError(t, validateOptionalPositiveInt(""))
	assert.NoError(t, validateOptionalPositiveInt("2000"))
	assert.Error(t, validateOptionalPositiveInt("0"))
	assert.Error(t, validateOptionalPositiveInt("-5"))
	assert.Error(t, validateOptionalPositiveInt("many"))
}

func TestValidateOptionalTemperature(t *testing.T) {
	assert.NoError(t, validateOptionalTemperature(""))
	assert.NoError(t, validateOptionalTemperature("0.7"))
	assert.NoError(t, validateOptionalTemperature("2"))
	assert.Error(t, validateOptionalTemperature("2.1"))
	assert.Error(t, validateOptionalTemperature("-1"))
	assert.Error(t, validateOptionalTemperature("warm"))
}

// The wizard's output must round-trip through the config loader.
func TestWizardConfig_RoundTrip(t *testing.T) {
	temp := 0.7
	wc := wizardConfig{
		APIKey:          "sk-literal",
		Model:           "o3-mini",
		ReasoningEffort: "medium",
		MaxTokens:       2000,
		Temperature:     &temp,
		Instructions:    "Answer tersely.",
	}

	data, err := yaml.Marshal(wc)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "sk-literal", cfg.APIKey)
	assert.Equal(t, "o3-mini", cfg.Model)
	assert.Equal(t, "medium", cfg.ReasoningEffort)
	assert.Equal(t, 2000, cfg.MaxTokens)
	require.NotNil(t, cfg.Temperature)
	assert.InDelta(t, 0.7, *cfg.Temperature, 1e-9)
	assert.Equal(t, "Answer tersely.", cfg.Instructions)
}

// Omitted options must not appear in the written file at all, so the loader
// keeps them unset.
func TestWizardConfig_OmitsUnset(t *testing.T) {
	data, err := yaml.Marshal(wizardConfig{Model: "o3-pro"})
	require.NoError(t, err)

	assert.Equal(t, "model: o3-pro\n", string(data))
}

func TestRunInit_RefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".openaipro.yaml")
	require.NoError(t, os.WriteFile(path, []byte("model: o3-pro\n"), 0o644))

	err := runInit(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}
