package interrogate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/velocityai/velocity/internal/model"
)

// localKnowledge is the deterministic last link of the fallback chain:
// a small built-in topic table matched by substring. It never fails, which
// guarantees the pipeline always produces some evidence.
type localKnowledge struct {
	topics map[string]string
	keys   []string // topics iterated in fixed order for determinism
}

func newLocalKnowledge() *localKnowledge {
	topics := map[string]string{
		"python": "Python is a high-level, interpreted programming language created by " +
			"Guido van Rossum and first released in 1991. It emphasizes code readability " +
			"with significant whitespace. Python supports multiple programming paradigms " +
			"including procedural, object-oriented, and functional programming.",
		"quantum computing": "Quantum computing is a type of computation that uses quantum " +
			"mechanical phenomena like superposition and entanglement. Unlike classical " +
			"computers that use bits (0 or 1), quantum computers use quantum bits or qubits " +
			"that can exist in multiple states simultaneously.",
		"artificial intelligence": "Artificial Intelligence (AI) is the simulation of human " +
			"intelligence processes by machines, especially computer systems. These processes " +
			"include learning, reasoning, and self-correction. AI applications include expert " +
			"systems, natural language processing, speech recognition and machine vision.",
		"machine learning": "Machine learning is a subset of artificial intelligence that " +
			"provides systems the ability to automatically learn and improve from experience " +
			"without being explicitly programmed. It focuses on developing computer programs " +
			"that can access data and use it to learn for themselves.",
	}
	keys := make([]string, 0, len(topics))
	for k := range topics {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return &localKnowledge{topics: topics, keys: keys}
}

// Query matches the query against the topic table by substring in either
// direction. Unmatched queries get a generic templated notice.
func (l *localKnowledge) Query(query string) model.EvidenceRecord {
	clean := cleanQuery(query)
	lower := strings.ToLower(clean)

	for _, key := range l.keys {
		if strings.Contains(lower, key) || strings.Contains(key, lower) {
			return model.EvidenceRecord{
				Success: true,
				Query:   query,
				Source:  "knowledge_base:" + key,
				Content: l.topics[key],
				Metadata: map[string]string{
					"local":       "true",
					"matched_key": key,
				},
			}
		}
	}

	content := fmt.Sprintf("Information about %s:\n\n"+
		"No live knowledge source could be reached for this topic. "+
		"This notice stands in for network-sourced evidence so downstream "+
		"synthesis always has input to work with.", clean)

	return model.EvidenceRecord{
		Success: true,
		Query:   query,
		Source:  "knowledge_base:" + clean,
		Content: content,
		Metadata: map[string]string{
			"local":       "true",
			"matched_key": clean,
		},
	}
}
