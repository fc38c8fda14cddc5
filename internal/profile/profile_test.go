package profile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	p := &Profile{}
	p.FromEnv()

	assert.False(t, p.AIEnabled)
	assert.Equal(t, "deepseek", p.AILLMProvider)
	assert.Equal(t, "deepseek-chat", p.AILLMModel)
	assert.Equal(t, "google", p.DetectorProvider)
	assert.Equal(t, 3*time.Second, p.DetectorTimeout)
	assert.True(t, p.TTSEnabled)
	assert.Equal(t, "https://translate.google.com", p.TTSBaseURL)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("IDIOMBRIDGE_AI_ENABLED", "true")
	t.Setenv("IDIOMBRIDGE_AI_DEEPSEEK_API_KEY", "sk-test")
	t.Setenv("IDIOMBRIDGE_DETECTOR_PROVIDER", "lingua")
	t.Setenv("IDIOMBRIDGE_DETECTOR_TIMEOUT", "500ms")
	t.Setenv("IDIOMBRIDGE_TTS_ENABLED", "false")

	p := &Profile{}
	p.FromEnv()

	assert.True(t, p.AIEnabled)
	assert.True(t, p.IsAIEnabled())
	assert.Equal(t, "lingua", p.DetectorProvider)
	assert.Equal(t, 500*time.Millisecond, p.DetectorTimeout)
	assert.False(t, p.TTSEnabled)
}

func TestIsAIEnabledNeedsCredentials(t *testing.T) {
	p := &Profile{AIEnabled: true}
	assert.False(t, p.IsAIEnabled())

	p.AIOllamaBaseURL = "http://localhost:11434"
	assert.True(t, p.IsAIEnabled())
}

func TestValidate(t *testing.T) {
	p := &Profile{
		Mode: "dev",
		Data: t.TempDir(),
	}
	p.FromEnv()
	require.NoError(t, p.Validate())

	assert.Equal(t, "sqlite", p.Driver)
	assert.Contains(t, p.DSN, "idiombridge_dev.db")
}

func TestValidateRejectsUnknownDriver(t *testing.T) {
	p := &Profile{Mode: "dev", Data: t.TempDir(), Driver: "postgres"}
	assert.Error(t, p.Validate())
}

func TestValidateRejectsUnknownDetector(t *testing.T) {
	p := &Profile{Mode: "dev", Data: t.TempDir(), DetectorProvider: "azure"}
	assert.Error(t, p.Validate())
}

func TestValidateNormalizesMode(t *testing.T) {
	p := &Profile{Mode: "staging", Data: t.TempDir()}
	require.NoError(t, p.Validate())
	assert.Equal(t, "demo", p.Mode)
}
