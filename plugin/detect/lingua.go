package detect

import (
	"context"

	"github.com/pemistahl/lingua-go"
	"github.com/pkg/errors"

	"github.com/idiombridge/idiombridge/plugin/langid"
)

// linguaLanguages maps lingua's enumeration onto ours; detection is
// restricted to this set so lingua never answers with a language the
// resolver cannot represent.
var linguaLanguages = map[lingua.Language]langid.Language{
	lingua.English:    langid.English,
	lingua.Spanish:    langid.Spanish,
	lingua.French:     langid.French,
	lingua.German:     langid.German,
	lingua.Portuguese: langid.Portuguese,
	lingua.Dutch:      langid.Dutch,
	lingua.Vietnamese: langid.Vietnamese,
	lingua.Japanese:   langid.Japanese,
}

// LinguaDetector runs the lingua statistical models in-process. Useful when
// no external endpoint is reachable; it still sits behind the same Detector
// interface and timeout as the HTTP backends.
type LinguaDetector struct {
	detector lingua.LanguageDetector
}

// NewLinguaDetector builds the detector once; the underlying models are
// immutable and safe for concurrent use.
func NewLinguaDetector() *LinguaDetector {
	langs := make([]lingua.Language, 0, len(linguaLanguages))
	for l := range linguaLanguages {
		langs = append(langs, l)
	}
	return &LinguaDetector{
		detector: lingua.NewLanguageDetectorBuilder().FromLanguages(langs...).Build(),
	}
}

// Detect classifies text with the statistical models. lingua has no
// cancellation points, so ctx is only checked up front.
func (d *LinguaDetector) Detect(ctx context.Context, text string) (langid.Language, error) {
	if err := ctx.Err(); err != nil {
		return langid.None, errors.Wrap(langid.ErrUnavailable, err.Error())
	}

	detected, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return langid.None, langid.ErrUnavailable
	}
	lang, ok := linguaLanguages[detected]
	if !ok {
		return langid.None, langid.ErrUnavailable
	}
	return lang, nil
}
