// Package tts fetches pronunciation audio from a public translate TTS
// endpoint. Responses are MP3 bytes, cached in memory, with upstream
// fetches capped by a semaphore so a burst of playback requests cannot
// hammer the endpoint.
package tts

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pkg/errors"
	"golang.org/x/sync/semaphore"

	"github.com/idiombridge/idiombridge/plugin/cache"
	"github.com/idiombridge/idiombridge/plugin/langid"
)

const (
	defaultBaseURL = "https://translate.google.com"
	defaultTimeout = 10 * time.Second

	// maxTextRunes mirrors the endpoint's own input limit.
	maxTextRunes = 200

	// maxAudioBytes bounds how much audio is read per response.
	maxAudioBytes = 1 << 20

	maxConcurrentFetches = 3
	audioCacheCapacity   = 128
	audioCacheTTL        = time.Hour
)

// Config holds the TTS client configuration.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client proxies pronunciation audio. Safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	audioCache *cache.LRU
	fetchSem   *semaphore.Weighted
}

// NewClient creates a TTS client. Zero-valued config fields fall back to
// the public endpoint and default timeout.
func NewClient(cfg *Config) *Client {
	if cfg == nil {
		cfg = &Config{}
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		audioCache: cache.NewLRU(audioCacheCapacity, audioCacheTTL),
		fetchSem:   semaphore.NewWeighted(maxConcurrentFetches),
	}
}

// Fetch returns MP3 audio for text spoken in lang, serving repeated
// requests from cache.
func (c *Client) Fetch(ctx context.Context, text string, lang langid.Language) ([]byte, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.New("empty text")
	}
	if utf8.RuneCountInString(text) > maxTextRunes {
		return nil, errors.Errorf("text exceeds %d characters", maxTextRunes)
	}
	if lang == langid.None {
		return nil, errors.New("language is required")
	}

	key := cacheKey(text, lang)
	if audio, ok := c.audioCache.Get(key); ok {
		return audio, nil
	}

	if err := c.fetchSem.Acquire(ctx, 1); err != nil {
		return nil, errors.Wrap(err, "waiting for fetch slot")
	}
	defer c.fetchSem.Release(1)

	// Another request may have filled the cache while we waited.
	if audio, ok := c.audioCache.Get(key); ok {
		return audio, nil
	}

	audio, err := c.fetchUpstream(ctx, text, lang)
	if err != nil {
		return nil, err
	}
	c.audioCache.Set(key, audio, audioCacheTTL)
	return audio, nil
}

func (c *Client) fetchUpstream(ctx context.Context, text string, lang langid.Language) ([]byte, error) {
	params := url.Values{}
	params.Set("ie", "UTF-8")
	params.Set("client", "tw-ob")
	params.Set("tl", lang.Code())
	params.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/translate_tts?"+params.Encode(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "building TTS request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "fetching TTS audio")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("TTS endpoint returned %d", resp.StatusCode)
	}

	audio, err := io.ReadAll(io.LimitReader(resp.Body, maxAudioBytes))
	if err != nil {
		return nil, errors.Wrap(err, "reading TTS audio")
	}
	if len(audio) == 0 {
		return nil, errors.New("TTS endpoint returned no audio")
	}
	return audio, nil
}

func cacheKey(text string, lang langid.Language) string {
	sum := sha256.Sum256([]byte(lang.Code() + "\x00" + text))
	return hex.EncodeToString(sum[:])
}
