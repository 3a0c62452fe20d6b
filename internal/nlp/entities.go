package nlp

import (
	"regexp"
	"strings"

	"github.com/velocityai/velocity/internal/model"
)

// Fixed bilingual dictionaries for role / organization / topic extraction
// (English + Turkish). Matched case-insensitively except organizations,
// which are proper nouns.
var (
	reRoles = regexp.MustCompile(`(?i)\b(researcher|engineer|developer|scientist|professor|architect|` +
		`founder|co-founder|CEO|CTO|author|designer|director|manager|` +
		`specialist|analyst|consultant|expert|lead|principal|senior|` +
		`araştırmacı|mühendis|geliştirici|bilim insanı|yazılımcı|kurucu|yazar|` +
		`uzman|danışman|lider|kıdemli|baş|müdür)\b`)

	reOrgs = regexp.MustCompile(`\b(Google|Meta|Microsoft|Apple|Amazon|OpenAI|DeepMind|Anthropic|` +
		`MIT|Stanford|Harvard|Berkeley|Oxford|Cambridge|` +
		`Mozilla|GitHub|IBM|NVIDIA|Tesla|SpaceX|` +
		`Hugging\s*Face|PyTorch|TensorFlow|Keras|` +
		`Twitter|LinkedIn|Facebook|YouTube|Reddit)\b`)

	reTopics = regexp.MustCompile(`(?i)\b(machine learning|deep learning|artificial intelligence|` +
		`natural language processing|NLP|computer vision|` +
		`non-transformer|transformer|neural network|` +
		`blockchain|quantum computing|robotics|` +
		`reinforcement learning|generative AI|` +
		`large language model|diffusion model|` +
		`systematic learning|architecture research|` +
		`ML|AI|CV|LLM|AGI|GPT|BERT)\b`)

	// Two or three consecutive capitalized words. Covers Turkish capitals;
	// behavior on other scripts is a locale concern.
	rePersonName = regexp.MustCompile(`\b([A-ZÇĞİÖŞÜ][a-zçğıöşü]+(?:\s+[A-ZÇĞİÖŞÜ][a-zçğıöşü]+){1,2})\b`)
)

const minPersonNameLen = 4

// ExtractEntities extracts entities using compiled pattern sets, in
// first-occurrence order per category pass: ROLE, ORG, TOPIC, then PERSON.
// Names are deduplicated by lowercase form across all categories.
func ExtractEntities(text string) []model.Entity {
	var entities []model.Entity
	seen := make(map[string]bool)

	appendMatches := func(re *regexp.Regexp, category model.EntityCategory) {
		for _, m := range re.FindAllString(text, -1) {
			key := strings.ToLower(m)
			if seen[key] {
				continue
			}
			seen[key] = true
			entities = append(entities, model.Entity{Name: m, Category: category})
		}
	}

	appendMatches(reRoles, model.CategoryRole)
	appendMatches(reOrgs, model.CategoryOrg)
	appendMatches(reTopics, model.CategoryTopic)

	// Person names: capitalization heuristic. Reject candidates right after
	// a sentence boundary, which are usually sentence-initial common words.
	for _, loc := range rePersonName.FindAllStringSubmatchIndex(text, -1) {
		name := text[loc[2]:loc[3]]
		key := strings.ToLower(name)
		if seen[key] || len(name) <= minPersonNameLen {
			continue
		}
		if start := loc[2]; start > 0 {
			switch text[start-1] {
			case '.', '!', '?', '\n':
				continue
			}
		}
		seen[key] = true
		entities = append(entities, model.Entity{Name: name, Category: model.CategoryPerson})
	}

	return entities
}
