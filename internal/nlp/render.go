package nlp

import (
	"fmt"
	"strings"

	"github.com/velocityai/velocity/internal/model"
)

const maxRenderedSources = 4

// Render formats a structured answer into presentable terminal text:
// summary paragraph, key facts block, optional entities block (verbose),
// deduplicated source labels, and a confidence line that is always present.
func Render(answer model.StructuredAnswer, verbose bool) string {
	var parts []string

	if answer.Summary != "" {
		parts = append(parts, answer.Summary)
	}

	if len(answer.KeyFacts) > 0 {
		parts = append(parts, "", "Key Facts:")
		for _, fact := range answer.KeyFacts {
			fact = strings.TrimSpace(fact)
			if fact == "" {
				continue
			}
			parts = append(parts, "  • "+fact)
		}
	}

	if verbose && len(answer.Entities) > 0 {
		parts = append(parts, "", "Entities:")
		for _, ent := range answer.Entities {
			parts = append(parts, fmt.Sprintf("  [%s] %s", ent.Category, ent.Name))
		}
	}

	if labels := sourceLabels(answer.Sources); len(labels) > 0 {
		parts = append(parts, "", "Sources: "+strings.Join(labels, ", "))
	}

	parts = append(parts, fmt.Sprintf("Confidence: %s (%.2f)", answer.ConfidenceLabel, answer.Confidence))

	return strings.Join(parts, "\n")
}

// sourceLabels derives up to maxRenderedSources human-readable labels:
// the host for URL-like sources (www. stripped), the prefix before ":" for
// tagged sources such as "wikipedia:Python".
func sourceLabels(sources []string) []string {
	var labels []string
	seen := make(map[string]bool)
	for _, s := range sources {
		label := s
		if idx := strings.Index(s, "://"); idx >= 0 {
			rest := s[idx+3:]
			if slash := strings.Index(rest, "/"); slash >= 0 {
				rest = rest[:slash]
			}
			label = strings.TrimPrefix(rest, "www.")
		} else if idx := strings.Index(s, ":"); idx >= 0 {
			label = s[:idx]
		}
		label = strings.TrimSpace(label)
		if label == "" || seen[label] {
			continue
		}
		seen[label] = true
		labels = append(labels, label)
		if len(labels) >= maxRenderedSources {
			break
		}
	}
	return labels
}
