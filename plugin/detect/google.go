package detect

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/idiombridge/idiombridge/plugin/langid"
)

const (
	defaultGoogleBaseURL = "https://translate.googleapis.com"
	defaultHTTPTimeout   = 10 * time.Second

	// maxDetectResponseBytes bounds how much of the response body is read.
	maxDetectResponseBytes = 64 << 10
)

// GoogleDetector asks the public translate endpoint for its best-guess
// source language. No API key is required for the gtx client.
type GoogleDetector struct {
	baseURL    string
	httpClient *http.Client
}

// NewGoogleDetector creates a detector against cfg.BaseURL, defaulting to
// the public translate host.
func NewGoogleDetector(cfg *Config) *GoogleDetector {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultGoogleBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	return &GoogleDetector{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Detect performs a single detection request. Transport errors, non-2xx
// statuses, malformed bodies, and unsupported codes all come back as
// langid.ErrUnavailable.
func (d *GoogleDetector) Detect(ctx context.Context, text string) (langid.Language, error) {
	params := url.Values{}
	params.Set("client", "gtx")
	params.Set("sl", "auto")
	params.Set("tl", "en")
	params.Set("dt", "t")
	params.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		d.baseURL+"/translate_a/single?"+params.Encode(), nil)
	if err != nil {
		return langid.None, errors.Wrap(langid.ErrUnavailable, err.Error())
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return langid.None, errors.Wrap(langid.ErrUnavailable, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return langid.None, errors.Wrapf(langid.ErrUnavailable, "detect endpoint returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDetectResponseBytes))
	if err != nil {
		return langid.None, errors.Wrap(langid.ErrUnavailable, err.Error())
	}

	code, err := parseDetectedCode(body)
	if err != nil {
		return langid.None, err
	}

	lang := langid.FromCode(code)
	if lang == langid.None {
		return langid.None, errors.Wrapf(langid.ErrUnavailable, "unsupported language code %q", code)
	}
	return lang, nil
}

// parseDetectedCode extracts the source-language code from the positional
// JSON array the translate endpoint answers with; the code sits at index 2.
func parseDetectedCode(body []byte) (string, error) {
	var fields []json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return "", errors.Wrap(langid.ErrUnavailable, "malformed detect response")
	}
	if len(fields) < 3 {
		return "", errors.Wrap(langid.ErrUnavailable, "detect response missing language field")
	}
	var code string
	if err := json.Unmarshal(fields[2], &code); err != nil {
		return "", errors.Wrap(langid.ErrUnavailable, "detect response language field not a string")
	}
	return code, nil
}
