package search

import (
	"regexp"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	// wordRegex matches runs of letters, digits and underscores in any script.
	wordRegex = regexp.MustCompile(`[\p{L}\p{N}_]+`)

	// scriptRegex matches runs of hiragana, katakana and CJK ideographs,
	// which are written without spaces between words.
	scriptRegex = regexp.MustCompile(`[ぁ-んァ-ン一-龥]+`)
)

// Tokenize converts text into de-duplicated, lower-cased search tokens.
//
// Two passes run over the lower-cased text. The word pass emits every run of
// letters, digits and underscores. The script pass emits every run of kana or
// ideographs plus each 2-character window inside it, which approximates
// sub-word matching for text without word boundaries.
// The whole run is kept as a token alongside its bigrams, so a query that
// equals a run scores on both the run and its windows.
//
// Tokens are returned in first-occurrence order; callers should treat the
// result as a set.
func Tokenize(text string) []string {
	if text == "" {
		return nil
	}

	// cases.Caser is stateful, so a new one is created per call.
	lower := cases.Lower(language.Und).String(text)

	var tokens []string
	seen := make(map[string]struct{})
	add := func(tok string) {
		if _, ok := seen[tok]; ok {
			return
		}
		seen[tok] = struct{}{}
		tokens = append(tokens, tok)
	}

	for _, word := range wordRegex.FindAllString(lower, -1) {
		add(word)
	}

	for _, run := range scriptRegex.FindAllString(lower, -1) {
		add(run)
		runes := []rune(run)
		for i := 0; i+1 < len(runes); i++ {
			add(string(runes[i : i+2]))
		}
	}

	return tokens
}
