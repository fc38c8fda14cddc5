// Package detect provides external language-detection backends for the
// langid resolver. Backends implement langid.Detector and report every
// non-success outcome as langid.ErrUnavailable so the resolver can absorb
// them uniformly.
package detect

import (
	"fmt"
	"time"

	"github.com/idiombridge/idiombridge/plugin/langid"
)

// Config selects and configures a detector backend.
type Config struct {
	Provider string // google, lingua
	BaseURL  string // override for the HTTP endpoint, mainly for tests
	Timeout  time.Duration
}

// New creates a detector for the configured provider.
func New(cfg *Config) (langid.Detector, error) {
	switch cfg.Provider {
	case "google":
		return NewGoogleDetector(cfg), nil
	case "lingua":
		return NewLinguaDetector(), nil
	default:
		return nil, fmt.Errorf("unsupported detector provider: %s", cfg.Provider)
	}
}
