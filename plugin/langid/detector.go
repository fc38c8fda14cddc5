package langid

import (
	"context"
	"errors"
)

// ErrUnavailable signals that an external detector produced no usable
// answer. Timeouts, transport failures, non-success statuses, and
// unrecognized language codes are all reported as unavailable; the resolver
// treats every one of them identically.
var ErrUnavailable = errors.New("language detector unavailable")

// Detector is an external language-detection collaborator. Implementations
// must honor ctx cancellation and should return ErrUnavailable (possibly
// wrapped) when no usable answer exists.
type Detector interface {
	Detect(ctx context.Context, text string) (Language, error)
}
