// Package ai provides the LLM-backed idiom equivalents service.
package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// newClient builds an OpenAI-compatible client for the configured provider.
// DeepSeek and Ollama both speak the OpenAI chat-completions dialect.
func newClient(cfg *LLMConfig) (*openai.Client, error) {
	apiKey := cfg.APIKey
	if cfg.Provider == "ollama" && apiKey == "" {
		// Ollama ignores the token but the client requires one.
		apiKey = "ollama"
	}
	clientConfig := openai.DefaultConfig(apiKey)

	switch cfg.Provider {
	case "deepseek", "openai":
		if cfg.BaseURL != "" {
			clientConfig.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
		}
	case "ollama":
		base := cfg.BaseURL
		if base == "" {
			base = "http://localhost:11434"
		}
		clientConfig.BaseURL = strings.TrimRight(base, "/") + "/v1"
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}

	return openai.NewClientWithConfig(clientConfig), nil
}

// jsonSchema implements json.Marshaler for the OpenAI JSON Schema format.
type jsonSchema struct {
	Type                 string                 `json:"type"`
	Properties           map[string]*jsonSchema `json:"properties,omitempty"`
	Items                *jsonSchema            `json:"items,omitempty"`
	Required             []string               `json:"required,omitempty"`
	Enum                 []string               `json:"enum,omitempty"`
	Description          string                 `json:"description,omitempty"`
	AdditionalProperties bool                   `json:"additionalProperties"`
}

func (s *jsonSchema) MarshalJSON() ([]byte, error) {
	type alias jsonSchema
	return json.Marshal((*alias)(s))
}
