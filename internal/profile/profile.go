// Package profile holds the runtime configuration of the server.
package profile

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Profile is the configuration to start the main server.
type Profile struct {
	// Mode can be "prod", "dev" or "demo"
	Mode string
	// Addr is the binding address for the server
	Addr string
	// Port is the binding port for the server
	Port int
	// Data is the data directory
	Data string
	// DSN points to where idiombridge stores its own data
	DSN string
	// Driver is the database driver (sqlite only for now)
	Driver string
	// Version is the current version of the server
	Version string
	// InstanceURL is the public URL of this instance
	InstanceURL string

	// AI configuration
	AIEnabled         bool   // IDIOMBRIDGE_AI_ENABLED
	AILLMProvider     string // IDIOMBRIDGE_AI_LLM_PROVIDER (default: deepseek)
	AILLMModel        string // IDIOMBRIDGE_AI_LLM_MODEL (default: deepseek-chat)
	AIDeepSeekAPIKey  string // IDIOMBRIDGE_AI_DEEPSEEK_API_KEY
	AIDeepSeekBaseURL string // IDIOMBRIDGE_AI_DEEPSEEK_BASE_URL (default: https://api.deepseek.com)
	AIOpenAIAPIKey    string // IDIOMBRIDGE_AI_OPENAI_API_KEY
	AIOpenAIBaseURL   string // IDIOMBRIDGE_AI_OPENAI_BASE_URL (default: https://api.openai.com/v1)
	AIOllamaBaseURL   string // IDIOMBRIDGE_AI_OLLAMA_BASE_URL

	// Language detection configuration
	DetectorProvider string        // IDIOMBRIDGE_DETECTOR_PROVIDER (default: google; "lingua" runs in-process)
	DetectorBaseURL  string        // IDIOMBRIDGE_DETECTOR_BASE_URL (default: provider endpoint)
	DetectorTimeout  time.Duration // IDIOMBRIDGE_DETECTOR_TIMEOUT (default: 3s)

	// Pronunciation audio configuration
	TTSEnabled bool   // IDIOMBRIDGE_TTS_ENABLED (default: true)
	TTSBaseURL string // IDIOMBRIDGE_TTS_BASE_URL (default: https://translate.google.com)
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// IsAIEnabled returns true if AI is enabled and at least one provider is
// actually reachable via key or base URL.
func (p *Profile) IsAIEnabled() bool {
	return p.AIEnabled && (p.AIDeepSeekAPIKey != "" || p.AIOpenAIAPIKey != "" || p.AIOllamaBaseURL != "")
}

// getEnvOrDefault returns the environment variable value or the default.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	switch os.Getenv(key) {
	case "true", "1":
		return true
	case "false", "0":
		return false
	default:
		return defaultValue
	}
}

// FromEnv loads configuration from IDIOMBRIDGE_* environment variables.
func (p *Profile) FromEnv() {
	p.AIEnabled = getBoolEnv("IDIOMBRIDGE_AI_ENABLED", false)
	p.AILLMProvider = getEnvOrDefault("IDIOMBRIDGE_AI_LLM_PROVIDER", "deepseek")
	p.AILLMModel = getEnvOrDefault("IDIOMBRIDGE_AI_LLM_MODEL", "deepseek-chat")
	p.AIDeepSeekAPIKey = os.Getenv("IDIOMBRIDGE_AI_DEEPSEEK_API_KEY")
	p.AIDeepSeekBaseURL = getEnvOrDefault("IDIOMBRIDGE_AI_DEEPSEEK_BASE_URL", "https://api.deepseek.com")
	p.AIOpenAIAPIKey = os.Getenv("IDIOMBRIDGE_AI_OPENAI_API_KEY")
	p.AIOpenAIBaseURL = getEnvOrDefault("IDIOMBRIDGE_AI_OPENAI_BASE_URL", "https://api.openai.com/v1")
	p.AIOllamaBaseURL = os.Getenv("IDIOMBRIDGE_AI_OLLAMA_BASE_URL")

	p.DetectorProvider = getEnvOrDefault("IDIOMBRIDGE_DETECTOR_PROVIDER", "google")
	p.DetectorBaseURL = os.Getenv("IDIOMBRIDGE_DETECTOR_BASE_URL")
	p.DetectorTimeout = 3 * time.Second
	if raw := os.Getenv("IDIOMBRIDGE_DETECTOR_TIMEOUT"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			p.DetectorTimeout = d
		}
	}

	p.TTSEnabled = getBoolEnv("IDIOMBRIDGE_TTS_ENABLED", true)
	p.TTSBaseURL = getEnvOrDefault("IDIOMBRIDGE_TTS_BASE_URL", "https://translate.google.com")
}

func checkDataDir(dataDir string) (string, error) {
	// Convert to absolute path if a relative path is supplied.
	if !filepath.IsAbs(dataDir) {
		relativeDir := filepath.Join(filepath.Dir(os.Args[0]), dataDir)
		absDir, err := filepath.Abs(relativeDir)
		if err != nil {
			return "", err
		}
		dataDir = absDir
	}

	dataDir = strings.TrimRight(dataDir, "\\/")
	if _, err := os.Stat(dataDir); err != nil {
		return "", errors.Wrapf(err, "unable to access data folder %s", dataDir)
	}
	return dataDir, nil
}

func (p *Profile) Validate() error {
	if p.Mode != "demo" && p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "demo"
	}

	if p.Mode == "prod" && p.Data == "" {
		if runtime.GOOS == "windows" {
			p.Data = filepath.Join(os.Getenv("ProgramData"), "idiombridge")
			if _, err := os.Stat(p.Data); os.IsNotExist(err) {
				if err := os.MkdirAll(p.Data, 0770); err != nil {
					slog.Error("failed to create data directory", slog.String("data", p.Data), slog.String("error", err.Error()))
					return err
				}
			}
		} else {
			p.Data = "/var/opt/idiombridge"
		}
	}

	dataDir, err := checkDataDir(p.Data)
	if err != nil {
		slog.Error("failed to check data dir", slog.String("data", p.Data), slog.String("error", err.Error()))
		return err
	}
	p.Data = dataDir

	if p.Driver == "" {
		p.Driver = "sqlite"
	}
	if p.Driver != "sqlite" {
		return errors.Errorf("unsupported database driver %q", p.Driver)
	}
	if p.DSN == "" {
		p.DSN = filepath.Join(dataDir, fmt.Sprintf("idiombridge_%s.db", p.Mode))
	}

	if p.DetectorProvider != "" && p.DetectorProvider != "google" && p.DetectorProvider != "lingua" {
		return errors.Errorf("unsupported detector provider %q", p.DetectorProvider)
	}
	if p.DetectorTimeout <= 0 {
		p.DetectorTimeout = 3 * time.Second
	}

	return nil
}
