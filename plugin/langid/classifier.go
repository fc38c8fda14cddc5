package langid

import (
	"strings"
	"unicode/utf8"
)

// Classification is the outcome of the heuristic classifier.
type Classification struct {
	Language   Language `json:"language"`
	Confidence float64  `json:"confidence"`
}

// Scoring and confidence parameters. The constants are empirically tuned;
// only their direction is normative (see confidence).
const (
	// minClassifyRunes is the minimum trimmed input length worth scoring.
	minClassifyRunes = 3

	// minScore is the minimum winning score; anything below is treated as
	// insufficient evidence.
	minScore = 2

	// shortTextRunes marks input short enough to halve confidence.
	shortTextRunes = 10

	// highScore marks absolute evidence strong enough to boost confidence.
	highScore = 12

	// lengthNorm scales raw scores against input length so long inputs do
	// not reach full confidence on sparse evidence.
	lengthNorm = 4.0

	highScoreBoost   = 1.25
	shortTextPenalty = 0.5
)

// Classify guesses the language of text from the per-language pattern
// tables alone. It is a total, deterministic function: empty, too-short,
// or unrecognizable input yields {None, 0}, and a tie for the top score is
// treated as ambiguous rather than guessed at. It performs no I/O.
func Classify(text string) Classification {
	trimmed := strings.TrimSpace(text)
	runes := utf8.RuneCountInString(trimmed)
	if runes < minClassifyRunes {
		return Classification{Language: None}
	}

	// ToLower only affects cased scripts, so kana, kanji, and precomposed
	// Vietnamese vowels pass through unchanged.
	normalized := strings.ToLower(trimmed)

	var (
		best     int
		second   int
		bestLang Language
	)
	for _, lang := range supported {
		score := scoreLanguage(normalized, lang)
		switch {
		case score > best:
			second = best
			best = score
			bestLang = lang
		case score > second:
			second = score
		}
	}

	// Insufficient or ambiguous evidence: never guess among ties.
	if best < minScore || best == second {
		return Classification{Language: None}
	}

	return Classification{
		Language:   bestLang,
		Confidence: confidence(best, runes),
	}
}

// scoreLanguage accumulates weight × occurrence count over the language's
// pattern table.
func scoreLanguage(text string, lang Language) int {
	score := 0
	for _, p := range patternSets[lang] {
		if matches := p.re.FindAllStringIndex(text, -1); matches != nil {
			score += len(matches) * p.weight
		}
	}
	return score
}

// confidence turns a winning score into a [0,1] estimate: normalize by
// input length, reward strong absolute evidence, penalize very short input,
// clamp. Monotone in score, not a calibrated probability.
func confidence(score, runes int) float64 {
	c := float64(score) * lengthNorm / float64(runes)
	if score >= highScore {
		c *= highScoreBoost
	}
	if runes < shortTextRunes {
		c *= shortTextPenalty
	}
	if c > 1 {
		c = 1
	}
	return c
}
