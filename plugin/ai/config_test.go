package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idiombridge/idiombridge/internal/profile"
)

func TestNewConfigFromProfile(t *testing.T) {
	p := &profile.Profile{
		AIEnabled:         true,
		AILLMProvider:     "deepseek",
		AILLMModel:        "deepseek-chat",
		AIDeepSeekAPIKey:  "sk-test",
		AIDeepSeekBaseURL: "https://api.deepseek.com",
	}

	cfg := NewConfigFromProfile(p)
	require.True(t, cfg.Enabled)
	assert.Equal(t, "deepseek", cfg.LLM.Provider)
	assert.Equal(t, "sk-test", cfg.LLM.APIKey)
	assert.Equal(t, "https://api.deepseek.com", cfg.LLM.BaseURL)
	assert.NoError(t, cfg.Validate())
}

func TestNewConfigFromProfileDisabled(t *testing.T) {
	cfg := NewConfigFromProfile(&profile.Profile{AIEnabled: false})
	assert.False(t, cfg.Enabled)
	assert.NoError(t, cfg.Validate())
}

func TestNewConfigFromProfileWithoutCredentials(t *testing.T) {
	// Enabled flag without any key or base URL stays disabled.
	cfg := NewConfigFromProfile(&profile.Profile{AIEnabled: true, AILLMProvider: "deepseek"})
	assert.False(t, cfg.Enabled)
}

func TestConfigValidate(t *testing.T) {
	testCases := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name:    "missing_provider",
			cfg:     Config{Enabled: true, LLM: LLMConfig{Model: "m", APIKey: "k"}},
			wantErr: true,
		},
		{
			name:    "missing_key",
			cfg:     Config{Enabled: true, LLM: LLMConfig{Provider: "openai", Model: "m"}},
			wantErr: true,
		},
		{
			name:    "missing_model",
			cfg:     Config{Enabled: true, LLM: LLMConfig{Provider: "openai", APIKey: "k"}},
			wantErr: true,
		},
		{
			name:    "ollama_without_key",
			cfg:     Config{Enabled: true, LLM: LLMConfig{Provider: "ollama", Model: "qwen2.5"}},
			wantErr: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewClientRejectsUnknownProvider(t *testing.T) {
	_, err := newClient(&LLMConfig{Provider: "bedrock"})
	assert.Error(t, err)
}
