package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/idiombridge/idiombridge/plugin/cache"
	"github.com/idiombridge/idiombridge/plugin/langid"
)

const (
	// equivalentsTimeout bounds a single equivalents request.
	equivalentsTimeout = 30 * time.Second

	// Idioms don't change; completed answers are cached aggressively.
	equivalentsCacheCapacity = 256
	equivalentsCacheTTL      = 24 * time.Hour
)

// Equivalent is one cross-cultural counterpart of an idiom.
type Equivalent struct {
	Language langid.Language `json:"language"`
	Idiom    string          `json:"idiom"`
	Literal  string          `json:"literal"`
	Meaning  string          `json:"meaning"`
}

// EquivalentFinder asks a model for idiom equivalents across languages.
type EquivalentFinder interface {
	Find(ctx context.Context, idiom string, source langid.Language, targets []langid.Language) ([]Equivalent, error)
}

// EquivalentService implements EquivalentFinder on an OpenAI-compatible
// chat-completions endpoint with a strict JSON response schema.
type EquivalentService struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float32
	results     *cache.LRU
}

// NewEquivalentService creates the service for the configured provider.
func NewEquivalentService(cfg *LLMConfig) (*EquivalentService, error) {
	client, err := newClient(cfg)
	if err != nil {
		return nil, err
	}

	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1024
	}

	return &EquivalentService{
		client:      client,
		model:       cfg.Model,
		maxTokens:   maxTokens,
		temperature: cfg.Temperature,
		results:     cache.NewLRU(equivalentsCacheCapacity, equivalentsCacheTTL),
	}, nil
}

// Find requests one equivalent per target language. Entries the model
// returns for languages outside the requested set are dropped.
func (s *EquivalentService) Find(ctx context.Context, idiom string, source langid.Language, targets []langid.Language) ([]Equivalent, error) {
	if strings.TrimSpace(idiom) == "" {
		return nil, fmt.Errorf("empty idiom")
	}
	if len(targets) == 0 {
		return nil, fmt.Errorf("no target languages")
	}

	cacheKey := equivalentsCacheKey(idiom, source, targets)
	if cached, ok := s.results.Get(cacheKey); ok {
		var equivalents []Equivalent
		if err := json.Unmarshal(cached, &equivalents); err == nil {
			return equivalents, nil
		}
	}

	ctx, cancel := context.WithTimeout(ctx, equivalentsTimeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model:       s.model,
		MaxTokens:   s.maxTokens,
		Temperature: s.temperature,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: equivalentsSystemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildEquivalentsPrompt(idiom, source, targets),
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   "idiom_equivalents",
				Strict: true,
				Schema: equivalentsJSONSchema,
			},
		},
	}

	start := time.Now()
	resp, err := s.client.CreateChatCompletion(ctx, req)
	latency := time.Since(start)

	if err != nil {
		slog.Error("equivalents request failed",
			"error", err,
			"latency_ms", latency.Milliseconds())
		return nil, fmt.Errorf("LLM request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("empty response from LLM")
	}

	equivalents, err := parseEquivalents(resp.Choices[0].Message.Content, targets)
	if err != nil {
		return nil, err
	}
	if encoded, err := json.Marshal(equivalents); err == nil {
		s.results.Set(cacheKey, encoded, equivalentsCacheTTL)
	}

	slog.Debug("equivalents request completed",
		"idiom", truncateForLog(idiom, 40),
		"source", source,
		"count", len(equivalents),
		"latency_ms", latency.Milliseconds(),
		"tokens", resp.Usage.TotalTokens)

	return equivalents, nil
}

// parseEquivalents decodes the model payload and keeps only requested
// target languages.
func parseEquivalents(content string, targets []langid.Language) ([]Equivalent, error) {
	var raw struct {
		Equivalents []struct {
			Language string `json:"language"`
			Idiom    string `json:"idiom"`
			Literal  string `json:"literal"`
			Meaning  string `json:"meaning"`
		} `json:"equivalents"`
	}
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return nil, fmt.Errorf("JSON unmarshal failed: %w", err)
	}

	wanted := make(map[langid.Language]bool, len(targets))
	for _, t := range targets {
		wanted[t] = true
	}

	equivalents := make([]Equivalent, 0, len(raw.Equivalents))
	for _, e := range raw.Equivalents {
		lang := langid.FromCode(e.Language)
		if lang == langid.None || !wanted[lang] {
			slog.Debug("dropping equivalent for unrequested language", "code", e.Language)
			continue
		}
		equivalents = append(equivalents, Equivalent{
			Language: lang,
			Idiom:    e.Idiom,
			Literal:  e.Literal,
			Meaning:  e.Meaning,
		})
	}
	return equivalents, nil
}

// equivalentsCacheKey canonicalizes the target set so request order does not
// fragment the cache.
func equivalentsCacheKey(idiom string, source langid.Language, targets []langid.Language) string {
	codes := make([]string, len(targets))
	for i, t := range targets {
		codes[i] = t.Code()
	}
	sort.Strings(codes)
	return strings.ToLower(strings.TrimSpace(idiom)) + "|" + source.Code() + "|" + strings.Join(codes, ",")
}

func buildEquivalentsPrompt(idiom string, source langid.Language, targets []langid.Language) string {
	codes := make([]string, len(targets))
	for i, t := range targets {
		codes[i] = t.Code()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Idiom: %q\n", idiom)
	if source != langid.None {
		fmt.Fprintf(&b, "Source language: %s\n", source.Code())
	}
	fmt.Fprintf(&b, "Target languages: %s\n", strings.Join(codes, ", "))
	return b.String()
}

const equivalentsSystemPrompt = `You find cross-cultural equivalents of idioms.
For each target language return the closest native idiom (not a word-for-word
translation), its literal English rendering, and its figurative meaning.
Use ISO 639-1 codes in the language field. Skip a language rather than invent
an idiom for it.`

var equivalentsJSONSchema = &jsonSchema{
	Type: "object",
	Properties: map[string]*jsonSchema{
		"equivalents": {
			Type: "array",
			Items: &jsonSchema{
				Type: "object",
				Properties: map[string]*jsonSchema{
					"language": {Type: "string", Description: "ISO 639-1 code of the target language"},
					"idiom":    {Type: "string", Description: "The equivalent idiom in the target language"},
					"literal":  {Type: "string", Description: "Literal English rendering"},
					"meaning":  {Type: "string", Description: "Figurative meaning"},
				},
				Required:             []string{"language", "idiom", "literal", "meaning"},
				AdditionalProperties: false,
			},
		},
	},
	Required:             []string{"equivalents"},
	AdditionalProperties: false,
}

// truncateForLog shortens a string for log fields.
func truncateForLog(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
