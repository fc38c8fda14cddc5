package langid

import "regexp"

// Pattern category weights. Only the relative ordering is load-bearing:
// script and diacritic evidence is near-proof inside the supported set,
// idiomatic constructions and contractions are strongly discriminating,
// shared function words need corroboration from several matches, and
// morphological endings are the weakest signal.
const (
	weightScript       = 8
	weightConstruction = 3
	weightFunctionWord = 2
	weightEnding       = 1
)

// pattern is a single weighted lexical or orthographic matcher. Every
// occurrence in the input contributes the pattern's weight to the
// language's score, so repeated function words accumulate evidence.
type pattern struct {
	re     *regexp.Regexp
	weight int
}

// wordsPattern matches any of the |-separated alternatives as whole words.
// RE2 word boundaries are ASCII-only, so every alternative must begin and
// end with an ASCII letter; diacritics are fine in the interior. Words
// edged by non-ASCII letters belong in a rawPattern instead.
func wordsPattern(weight int, alternatives string) pattern {
	return pattern{re: regexp.MustCompile(`\b(?:` + alternatives + `)\b`), weight: weight}
}

// rawPattern matches the expression anywhere in the input.
func rawPattern(weight int, expr string) pattern {
	return pattern{re: regexp.MustCompile(expr), weight: weight}
}

// endingsPattern matches any of the alternatives at a word end.
func endingsPattern(alternatives string) pattern {
	return pattern{re: regexp.MustCompile(`(?:` + alternatives + `)\b`), weight: weightEnding}
}

// patternSets holds the per-language scoring tables. Compiled once at init,
// read-only afterwards; safe for concurrent scoring.
//
// Diacritic classes deliberately exclude characters shared between supported
// languages: é is common to Spanish, Portuguese, and French; â/ê/ô to French
// and Vietnamese; à to French and Vietnamese. ã/õ belong to Portuguese
// alone, ñ/¿/¡ to Spanish, umlauts and ß to German, the horn and breve
// vowels plus đ and the tone-marked vowels to Vietnamese.
var patternSets = map[Language][]pattern{
	English: {
		wordsPattern(weightConstruction, `don't|doesn't|didn't|can't|won't|isn't|aren't|wasn't|i'm|you're|it's|that's|there's|let's`),
		wordsPattern(weightFunctionWord, `the|an|of|to|in|and|is|are|it|that|with|for|on|at|this|was|have|has|not|but|they|you`),
		endingsPattern(`ing|tion|ness|ship|ght|ould`),
	},
	Spanish: {
		rawPattern(weightScript, `[ñ¿¡]`),
		wordsPattern(weightConstruction, `del|al|hay que|lo que|es que`),
		rawPattern(weightConstruction, `está|así`),
		wordsPattern(weightFunctionWord, `el|la|los|las|un|una|que|de|en|y|es|por|para|con|su|más|pero|como|vale`),
		endingsPattern(`ción|ciones|dad|ando|iendo`),
	},
	French: {
		rawPattern(weightScript, `[œ«»]`),
		rawPattern(weightConstruction, `\b(?:c|d|j|l|m|n|s|t|qu)'`),
		rawPattern(weightConstruction, `[âêîôûè]`),
		wordsPattern(weightConstruction, `il y a|c'est|n'est`),
		wordsPattern(weightFunctionWord, `le|la|les|de|des|du|et|est|une|un|que|qui|dans|pour|pas|ne|sur|avec|faut|plus`),
		endingsPattern(`tion|ment|eux|eaux|eau|oir|ais|ait`),
	},
	German: {
		rawPattern(weightScript, `[äöüß]`),
		wordsPattern(weightConstruction, `ich bin|es gibt|gibt es|zum|zur|beim|im|vom|nichts`),
		wordsPattern(weightFunctionWord, `der|die|das|den|dem|des|und|ist|nicht|ein|eine|mit|von|zu|auf|sich|man|wer|wenn|macht`),
		rawPattern(weightFunctionWord, `\bfür\b`),
		endingsPattern(`ung|keit|heit|lich|chen|isch`),
	},
	Portuguese: {
		rawPattern(weightScript, `[ãõ]`),
		wordsPattern(weightConstruction, `não|são|isso|muito`),
		rawPattern(weightConstruction, `você`),
		wordsPattern(weightFunctionWord, `o|a|os|as|um|uma|que|de|em|e|se|mais|da|do|das|dos|no|na|quem|para|com|por`),
		endingsPattern(`ção|ções|dade|inho|inha`),
	},
	Dutch: {
		rawPattern(weightConstruction, `ij`),
		wordsPattern(weightConstruction, `het is|er is|dat is|zo'n|geen`),
		wordsPattern(weightFunctionWord, `de|het|een|en|is|van|niet|ik|je|dat|op|met|voor|naar|maar|ook|wie|laatst`),
		endingsPattern(`heid|lijk|tje|cht`),
	},
	Vietnamese: {
		// Horn and breve vowels, đ, and the tone-marked vowel set are
		// unique to Vietnamese within the supported languages.
		rawPattern(weightScript, `[ăđơưạảấầẩẫậắằẳẵặẹẻẽếềểễệịỉĩọỏốồổỗộớờởỡợụủứừửữựỳỵỷỹ]`),
		rawPattern(weightConstruction, `được`),
		wordsPattern(weightConstruction, `của mình|người`),
		wordsPattern(weightFunctionWord, `không|một|này|cho|con|anh|em|của|tôi|bạn|cái|làm`),
	},
	Japanese: {
		rawPattern(weightScript, `[\x{3040}-\x{309f}]`), // hiragana
		rawPattern(weightScript, `[\x{30a0}-\x{30ff}]`), // katakana
		rawPattern(weightScript, `[\x{4e00}-\x{9fff}]`), // CJK ideographs
		rawPattern(weightConstruction, `[。、「」・]`),
	},
}
