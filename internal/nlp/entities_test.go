package nlp

import (
	"testing"

	"github.com/velocityai/velocity/internal/model"
)

func findEntity(entities []model.Entity, name string) *model.Entity {
	for i := range entities {
		if entities[i].Name == name {
			return &entities[i]
		}
	}
	return nil
}

func TestExtractEntitiesCategories(t *testing.T) {
	text := "Kael Valen is a researcher at Google working on machine learning systems."
	entities := ExtractEntities(text)

	tests := []struct {
		name     string
		category model.EntityCategory
	}{
		{"researcher", model.CategoryRole},
		{"Google", model.CategoryOrg},
		{"machine learning", model.CategoryTopic},
		{"Kael Valen", model.CategoryPerson},
	}

	for _, tt := range tests {
		ent := findEntity(entities, tt.name)
		if ent == nil {
			t.Errorf("entity %q not extracted from %v", tt.name, entities)
			continue
		}
		if ent.Category != tt.category {
			t.Errorf("entity %q category = %s, want %s", tt.name, ent.Category, tt.category)
		}
	}
}

func TestExtractEntitiesDedupeAcrossCategories(t *testing.T) {
	text := "machine learning is popular. Machine Learning has many applications today."
	entities := ExtractEntities(text)

	count := 0
	for _, e := range entities {
		if e.Category == model.CategoryTopic || e.Category == model.CategoryPerson {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected one entity after lowercase dedupe, got %d: %v", count, entities)
	}
}

func TestExtractEntitiesRejectsSentenceStarters(t *testing.T) {
	text := "something important happened\nNew Developments were announced shortly after"
	entities := ExtractEntities(text)

	if ent := findEntity(entities, "New Developments"); ent != nil {
		t.Errorf("expected name after line boundary rejected, got %v", ent)
	}
}

func TestExtractEntitiesEmptyText(t *testing.T) {
	if entities := ExtractEntities(""); len(entities) != 0 {
		t.Errorf("expected no entities, got %v", entities)
	}
}
