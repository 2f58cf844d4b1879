// Package session implements the client-side conversation state: the
// per-section message threads, their durable storage and the controller
// orchestrating user actions against the remote API.
package session

import "github.com/spinfactor/spinbot/internal/domain"

// Threads maps a thread key (section id or domain.GeneralThread) to its
// ordered message history.
type Threads map[string][]domain.Message

// Session holds the in-memory conversation state for one browsing
// profile.
type Session struct {
	Threads       Threads
	ActiveSection string
	PendingInput  string
	Busy          bool
}

// NewSession creates a session over previously stored threads. A nil
// mapping starts empty.
func NewSession(threads Threads) *Session {
	if threads == nil {
		threads = make(Threads)
	}
	return &Session{Threads: threads}
}

// Append adds a message to the thread identified by key.
func (s *Session) Append(key string, msg domain.Message) {
	s.Threads[key] = append(s.Threads[key], msg)
}

// EnsureStarter seeds the thread with its starter message if and only
// if the thread has no content yet. Returns true when the starter was
// appended. Revisiting a section never re-seeds its thread.
func (s *Session) EnsureStarter(key, text string) bool {
	if len(s.Threads[key]) > 0 {
		return false
	}
	s.Append(key, domain.Message{Role: domain.RoleAssistant, Text: text})
	return true
}

// Thread returns the messages under key, in insertion order.
func (s *Session) Thread(key string) []domain.Message {
	return s.Threads[key]
}

// ActiveThreadKey returns the key messages are currently routed to.
func (s *Session) ActiveThreadKey() string {
	if s.ActiveSection == "" {
		return domain.GeneralThread
	}
	return s.ActiveSection
}
