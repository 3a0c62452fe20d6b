package conversation

import (
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Turn is a single conversation turn.
type Turn struct {
	Role       string // "user" | "assistant"
	Content    string
	Timestamp  time.Time
	Confidence float64 // only meaningful for assistant turns
}

// Session is one conversation history identified by session ID.
type Session struct {
	ID        string
	Turns     []Turn
	CreatedAt time.Time
}

// Buffer turns the single-shot query pipeline into a multi-turn
// conversation: EnrichQuery prepends recent history so follow-up questions
// carry their context. Sessions live in an LRU so abandoned conversations
// age out.
type Buffer struct {
	mu            sync.Mutex
	sessions      *lru.Cache[string, *Session]
	maxTurns      int
	contextWindow int
}

// NewBuffer creates a conversation buffer.
func NewBuffer(maxSessions, maxTurnsPerSession, contextWindow int) (*Buffer, error) {
	if maxSessions <= 0 {
		maxSessions = 100
	}
	if maxTurnsPerSession <= 0 {
		maxTurnsPerSession = 50
	}
	if contextWindow <= 0 {
		contextWindow = 6
	}
	sessions, err := lru.New[string, *Session](maxSessions)
	if err != nil {
		return nil, err
	}
	return &Buffer{
		sessions:      sessions,
		maxTurns:      maxTurnsPerSession,
		contextWindow: contextWindow,
	}, nil
}

// AddUserTurn records a user message.
func (b *Buffer) AddUserTurn(sessionID, content string) {
	b.addTurn(sessionID, Turn{Role: "user", Content: content, Timestamp: time.Now()})
}

// AddAssistantTurn records an assistant answer with its confidence.
func (b *Buffer) AddAssistantTurn(sessionID, content string, confidence float64) {
	b.addTurn(sessionID, Turn{Role: "assistant", Content: content, Timestamp: time.Now(), Confidence: confidence})
}

func (b *Buffer) addTurn(sessionID string, turn Turn) {
	b.mu.Lock()
	defer b.mu.Unlock()

	session, ok := b.sessions.Get(sessionID)
	if !ok {
		session = &Session{ID: sessionID, CreatedAt: time.Now()}
		b.sessions.Add(sessionID, session)
	}
	session.Turns = append(session.Turns, turn)

	// Keep the most recent half when the turn cap is exceeded.
	if len(session.Turns) > b.maxTurns {
		keep := b.maxTurns / 2
		session.Turns = append([]Turn(nil), session.Turns[len(session.Turns)-keep:]...)
	}
}

// EnrichQuery prepends recent conversation context to the current query.
// On the first turn of a session the query is returned unchanged.
func (b *Buffer) EnrichQuery(sessionID, query string) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	session, ok := b.sessions.Get(sessionID)
	if !ok || len(session.Turns) == 0 {
		return query
	}

	recent := session.Turns
	if len(recent) > b.contextWindow {
		recent = recent[len(recent)-b.contextWindow:]
	}

	var sb strings.Builder
	sb.WriteString("[Previous conversation]\n")
	for _, turn := range recent {
		label := "Assistant"
		if turn.Role == "user" {
			label = "User"
		}
		sb.WriteString(label)
		sb.WriteString(": ")
		sb.WriteString(turn.Content)
		sb.WriteString("\n")
	}
	sb.WriteString("Current question: ")
	sb.WriteString(query)
	return sb.String()
}

// DeleteSession removes a session. Returns true if it existed.
func (b *Buffer) DeleteSession(sessionID string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sessions.Remove(sessionID)
}

// ActiveSessions returns the number of live sessions.
func (b *Buffer) ActiveSessions() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sessions.Len()
}
