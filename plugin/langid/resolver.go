package langid

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// Method records how a Resolution was derived.
type Method string

const (
	// MethodAgreement: heuristic and external detector concur.
	MethodAgreement Method = "agreement"

	// MethodExternalOnly: only the external detector produced a language.
	MethodExternalOnly Method = "external-only"

	// MethodHeuristicOnly: the external detector was unavailable or empty.
	MethodHeuristicOnly Method = "heuristic-only"

	// MethodExternalPreferred: both produced a language, they disagree, and
	// the external result was honored.
	MethodExternalPreferred Method = "external-preferred"

	// MethodHeuristicPreferred: both produced a language, they disagree on
	// a known confusable pair, and a distinctive marker tipped the decision
	// back to the heuristic candidate.
	MethodHeuristicPreferred Method = "heuristic-preferred"

	// MethodEmergencyFallback: the detector faulted outright after the
	// heuristic had already run.
	MethodEmergencyFallback Method = "emergency-fallback"

	// MethodAllFailed: external unavailable and the heuristic had nothing.
	MethodAllFailed Method = "all-methods-failed"

	// MethodTextTooShort: trimmed input under the minimum length; no
	// external call was attempted.
	MethodTextTooShort Method = "text-too-short"

	// MethodInvalidInput: input is not valid UTF-8 text.
	MethodInvalidInput Method = "invalid-input"
)

// Resolution is the single externally visible artifact of language
// resolution. It has no lifecycle beyond the call that produced it.
type Resolution struct {
	Language   Language `json:"language"`
	Confidence float64  `json:"confidence"`
	Method     Method   `json:"method"`
}

const (
	// DefaultDetectTimeout bounds the single external detection attempt.
	DefaultDetectTimeout = 3 * time.Second

	// minResolveRunes is the minimum trimmed input length worth resolving.
	// Matches the classifier's own minimum; anything shorter skips the
	// external detector entirely.
	minResolveRunes = 3

	externalOnlyConfidence       = 0.8
	externalPreferredConfidence  = 0.6
	heuristicPreferredConfidence = 0.7

	// heuristicOnlyScale penalizes a heuristic result that the external
	// detector could not corroborate.
	heuristicOnlyScale = 0.8

	// agreementPull moves confidence this fraction of the way toward 1.0
	// when both detectors agree.
	agreementPull = 0.5
)

// confusableOverride re-checks a disagreement between two languages that
// share many cognates: when the marker matches the input, the heuristic
// candidate is honored over the external one.
type confusableOverride struct {
	external  Language
	heuristic Language
	marker    *regexp.Regexp
}

// confusableOverrides is the table of confusable-pair refinements. Spanish
// and Portuguese share most of their short function words; nasal vowels and
// -ção are Portuguese-only, ñ and inverted punctuation Spanish-only.
var confusableOverrides = []confusableOverride{
	{external: Spanish, heuristic: Portuguese, marker: regexp.MustCompile(`[ãõ]|ção\b`)},
	{external: Portuguese, heuristic: Spanish, marker: regexp.MustCompile(`[ñ¿¡]`)},
}

// Resolver reconciles the heuristic classifier with an external detector.
// A nil detector degrades to heuristic-only operation. Resolvers hold no
// per-call state and are safe for concurrent use.
type Resolver struct {
	detector Detector
	timeout  time.Duration
}

// NewResolver creates a resolver around detector. A non-positive timeout
// falls back to DefaultDetectTimeout.
func NewResolver(detector Detector, timeout time.Duration) *Resolver {
	if timeout <= 0 {
		timeout = DefaultDetectTimeout
	}
	return &Resolver{detector: detector, timeout: timeout}
}

// Resolve classifies text locally, attempts one bounded external detection,
// and reconciles the two outcomes. It never returns an error and never
// panics: detector failures, timeouts, and faults are absorbed and reported
// through Method and Confidence. Retrying is the caller's business.
func (r *Resolver) Resolve(ctx context.Context, text string) Resolution {
	if !utf8.ValidString(text) {
		return Resolution{Language: None, Method: MethodInvalidInput}
	}
	trimmed := strings.TrimSpace(text)
	if utf8.RuneCountInString(trimmed) < minResolveRunes {
		return Resolution{Language: None, Method: MethodTextTooShort}
	}

	heur := Classify(trimmed)

	external, ok, panicked := r.detect(ctx, trimmed)

	switch {
	case panicked:
		// A detector fault must not fail the call; fall back to whatever
		// the heuristic produced.
		if heur.Language != None {
			return Resolution{heur.Language, heur.Confidence * heuristicOnlyScale, MethodEmergencyFallback}
		}
		return Resolution{None, 0, MethodEmergencyFallback}

	case ok && heur.Language == external:
		return Resolution{external, boostAgreement(heur.Confidence), MethodAgreement}

	case ok && heur.Language == None:
		return Resolution{external, externalOnlyConfidence, MethodExternalOnly}

	case !ok && heur.Language != None:
		return Resolution{heur.Language, heur.Confidence * heuristicOnlyScale, MethodHeuristicOnly}

	case ok:
		// Both succeeded but disagree. The external detector is generally
		// more reliable on full sentences, unless a distinctive marker of
		// the heuristic candidate says otherwise.
		if lang, matched := overrideDisagreement(trimmed, external, heur.Language); matched {
			return Resolution{lang, heuristicPreferredConfidence, MethodHeuristicPreferred}
		}
		return Resolution{external, externalPreferredConfidence, MethodExternalPreferred}

	default:
		return Resolution{None, 0, MethodAllFailed}
	}
}

// detect runs the single bounded external attempt. ok is false for every
// non-success outcome: nil detector, timeout, transport error, or a code
// outside the supported set. panicked reports a recovered detector fault.
func (r *Resolver) detect(ctx context.Context, text string) (lang Language, ok bool, panicked bool) {
	if r.detector == nil {
		return None, false, false
	}

	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("language detector panicked", "panic", rec)
			lang, ok, panicked = None, false, true
		}
	}()

	dctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	detected, err := r.detector.Detect(dctx, text)
	if err != nil {
		slog.Debug("external language detection unavailable", "error", err)
		return None, false, false
	}
	if detected == None {
		return None, false, false
	}
	return detected, true, false
}

// boostAgreement rewards external corroboration by moving the heuristic
// confidence partway toward certainty. Strictly increasing below 1.0.
func boostAgreement(c float64) float64 {
	boosted := c + (1-c)*agreementPull
	if boosted > 1 {
		return 1
	}
	return boosted
}

// overrideDisagreement consults the confusable-pair table.
func overrideDisagreement(text string, external, heuristic Language) (Language, bool) {
	lower := strings.ToLower(text)
	for _, o := range confusableOverrides {
		if o.external == external && o.heuristic == heuristic && o.marker.MatchString(lower) {
			return heuristic, true
		}
	}
	return None, false
}
