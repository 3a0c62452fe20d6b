package conversation

import (
	"fmt"
	"strings"
	"testing"
)

func newTestBuffer(t *testing.T, maxSessions, maxTurns, window int) *Buffer {
	t.Helper()
	b, err := NewBuffer(maxSessions, maxTurns, window)
	if err != nil {
		t.Fatalf("NewBuffer() error = %v", err)
	}
	return b
}

func TestEnrichQueryFirstTurnUnchanged(t *testing.T) {
	b := newTestBuffer(t, 10, 10, 6)

	query := "What is Python?"
	if got := b.EnrichQuery("s1", query); got != query {
		t.Errorf("EnrichQuery() = %q, want unchanged %q", got, query)
	}
}

func TestEnrichQueryPrependsHistory(t *testing.T) {
	b := newTestBuffer(t, 10, 10, 6)
	b.AddUserTurn("s1", "What is Python?")
	b.AddAssistantTurn("s1", "Python is a programming language.", 0.9)

	got := b.EnrichQuery("s1", "Who created it?")

	if !strings.HasPrefix(got, "[Previous conversation]\n") {
		t.Errorf("missing context header: %q", got)
	}
	if !strings.Contains(got, "User: What is Python?") {
		t.Errorf("missing user turn: %q", got)
	}
	if !strings.Contains(got, "Assistant: Python is a programming language.") {
		t.Errorf("missing assistant turn: %q", got)
	}
	if !strings.HasSuffix(got, "Current question: Who created it?") {
		t.Errorf("missing current question: %q", got)
	}
}

func TestEnrichQueryContextWindow(t *testing.T) {
	b := newTestBuffer(t, 10, 50, 2)
	for i := 0; i < 5; i++ {
		b.AddUserTurn("s1", fmt.Sprintf("question %d", i))
	}

	got := b.EnrichQuery("s1", "latest")

	if strings.Contains(got, "question 0") {
		t.Errorf("turn outside window leaked: %q", got)
	}
	if !strings.Contains(got, "question 4") {
		t.Errorf("most recent turn missing: %q", got)
	}
}

func TestTurnCapKeepsRecentHalf(t *testing.T) {
	b := newTestBuffer(t, 10, 10, 6)
	for i := 0; i < 11; i++ {
		b.AddUserTurn("s1", fmt.Sprintf("question %d", i))
	}

	session, ok := b.sessions.Get("s1")
	if !ok {
		t.Fatal("session missing")
	}
	if len(session.Turns) != 5 {
		t.Fatalf("turns = %d, want 5 (most recent half)", len(session.Turns))
	}
	if session.Turns[len(session.Turns)-1].Content != "question 10" {
		t.Errorf("most recent turn lost: %v", session.Turns)
	}
}

func TestSessionEviction(t *testing.T) {
	b := newTestBuffer(t, 2, 10, 6)
	b.AddUserTurn("s1", "first")
	b.AddUserTurn("s2", "second")
	b.AddUserTurn("s3", "third")

	if got := b.ActiveSessions(); got != 2 {
		t.Errorf("ActiveSessions() = %d, want 2", got)
	}
	// Oldest session aged out; its history no longer enriches queries.
	if got := b.EnrichQuery("s1", "follow-up"); got != "follow-up" {
		t.Errorf("evicted session still has context: %q", got)
	}
}

func TestDeleteSession(t *testing.T) {
	b := newTestBuffer(t, 10, 10, 6)
	b.AddUserTurn("s1", "hello there")

	if !b.DeleteSession("s1") {
		t.Error("expected delete to report existing session")
	}
	if b.DeleteSession("s1") {
		t.Error("expected second delete to report missing session")
	}
	if got := b.ActiveSessions(); got != 0 {
		t.Errorf("ActiveSessions() = %d, want 0", got)
	}
}
