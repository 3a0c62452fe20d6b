package nlp

import (
	"regexp"
	"strings"
	"unicode"
)

var reSentenceSplit = regexp.MustCompile(`([.!?])\s+`)

// Minimum size for a fragment to count as a usable sentence.
const (
	minSentenceChars = 20
	minSentenceWords = 4
)

// Segment splits cleaned text into usable sentences. All sentences are
// decided eagerly; garbage fragments (too short, too few words, navigation
// leftovers) are discarded. Surviving sentences are normalized: first letter
// capitalized, terminal punctuation ensured.
func Segment(text string) []string {
	raw := splitAfterTerminators(text)

	var out []string
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if len(s) < minSentenceChars {
			continue
		}
		if strings.Count(s, " ") < minSentenceWords-1 {
			continue
		}
		if reNavigation.MatchString(s) {
			continue
		}
		out = append(out, normalizeSentence(s))
	}
	return out
}

// splitAfterTerminators splits on punctuation-followed-by-whitespace
// boundaries, keeping the terminator with the preceding fragment.
func splitAfterTerminators(text string) []string {
	matches := reSentenceSplit.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		if text == "" {
			return nil
		}
		return []string{text}
	}

	var parts []string
	start := 0
	for _, m := range matches {
		// m[0]+1 is just past the terminator character
		parts = append(parts, text[start:m[0]+1])
		start = m[1]
	}
	if start < len(text) {
		parts = append(parts, text[start:])
	}
	return parts
}

// normalizeSentence capitalizes a lowercase first letter and appends a
// period when terminal punctuation is missing.
func normalizeSentence(s string) string {
	runes := []rune(s)
	if unicode.IsLower(runes[0]) {
		runes[0] = unicode.ToUpper(runes[0])
		s = string(runes)
	}
	last := runes[len(runes)-1]
	if last != '.' && last != '!' && last != '?' {
		s += "."
	}
	return s
}
