package nlp

import (
	"regexp"
	"strings"
)

// Patterns compiled once at package init, never per call.
var (
	reURL          = regexp.MustCompile(`https?://\S+|www\.\S+`)
	reRefMarker    = regexp.MustCompile(`\[\d+\]`)
	reEmptyParens  = regexp.MustCompile(`\(\s*\)`)
	reBullets      = regexp.MustCompile(`[·•|►▸▹▶‣⁃–—]+`)
	reCamel        = regexp.MustCompile(`([a-z])([A-Z])`)
	reWordNum      = regexp.MustCompile(`([A-Za-z])(\d)`)
	reNumWord      = regexp.MustCompile(`(\d)([A-Za-z])`)
	reGluedWord    = regexp.MustCompile(`(?i)([a-zçğıöşü]{3,})(non|the|and|for|with|from|into|that|this|are|was|has|had|can|will|not)\b`)
	reMultiSpace   = regexp.MustCompile(`[ \t]+`)
	reMultiNewline = regexp.MustCompile(`\n{3,}`)
	rePunctSpace   = regexp.MustCompile(`\s*([,;:!?.])\s*`)
	reSpaceDot     = regexp.MustCompile(`\s+\.`)
	reMultiDot     = regexp.MustCompile(`\.{2,}`)
	reDotSpaceDot  = regexp.MustCompile(`\.\s*\.`)

	reNavigation = regexp.MustCompile(`(?i)\b(menu|breadcrumb|sidebar|skip to|cookie|accept|privacy policy|` +
		`sign in|log in|sign up|subscribe|newsletter|advertisement|` +
		`copyright ©|all rights reserved|terms of (use|service)|` +
		`toggle navigation|search\.\.\.|loading|read more|show more|` +
		`click here|tap to|swipe|download app|install|upgrade)\b`)
)

// Web boilerplate markers: a line containing any of these is dropped outright.
var boilerplateMarkers = []string{
	"cookie", "privacy", "subscribe", "newsletter", "advertisement",
	"copyright", "terms of use", "accept all", "sign in", "sign up",
	"toggle navigation", "skip to content", "loading", "read more",
	"show more", "click here", "download app", "install now",
	"close this", "dismiss",
}

// Clean aggressively normalizes web-scraped text into readable prose.
// Idempotent: cleaning already-clean text is a no-op.
// Empty input yields empty output; Clean never fails.
func Clean(text string) string {
	if text == "" {
		return ""
	}

	text = reURL.ReplaceAllString(text, "")
	text = reRefMarker.ReplaceAllString(text, "")
	text = reEmptyParens.ReplaceAllString(text, "")

	// Layout bullets and separators usually delimit items; turn them into
	// sentence boundaries.
	text = reBullets.ReplaceAllString(text, ". ")

	// Repair concatenation artifacts from HTML-to-text conversion:
	// camelCase joins, letter-digit joins, and lowercase words glued to a
	// common function word ("Researchingnon" -> "Researching non").
	text = reCamel.ReplaceAllString(text, "$1 $2")
	text = reWordNum.ReplaceAllString(text, "$1 $2")
	text = reNumWord.ReplaceAllString(text, "$1 $2")
	text = reGluedWord.ReplaceAllString(text, "$1 $2")

	text = reMultiNewline.ReplaceAllString(text, "\n\n")
	text = reMultiSpace.ReplaceAllString(text, " ")

	// Punctuation spacing: "word ." -> "word.", "..." clusters -> "."
	text = rePunctSpace.ReplaceAllString(text, "$1 ")
	text = reSpaceDot.ReplaceAllString(text, ".")
	text = reMultiDot.ReplaceAllString(text, ".")
	text = reDotSpaceDot.ReplaceAllString(text, ".")

	// Line-by-line filter for navigation and boilerplate leftovers.
	var kept []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if len(line) < 15 && !strings.HasSuffix(line, ".") {
			continue // menu items, breadcrumbs
		}
		lower := strings.ToLower(line)
		if containsBoilerplate(lower) {
			continue
		}
		if reNavigation.MatchString(line) {
			continue
		}
		kept = append(kept, line)
	}

	text = strings.Join(kept, " ")
	text = reMultiSpace.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

func containsBoilerplate(lower string) bool {
	for _, m := range boilerplateMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}
