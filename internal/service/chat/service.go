package chat

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/asantekofi/ricedoctor/internal/model/chat"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrEmptyMessage    = errors.New("message content is empty")
)

// Greeting opens every session and is restored whenever history is cleared.
const Greeting = "Hello! You can type or record your question about rice diseases, e.g. 'What causes rice blast?'."

// Service owns the in-memory session and history state. History is
// append-only until ClearHistory replaces it with the greeting again.
type Service struct {
	mu       sync.RWMutex
	sessions map[string]chat.Session
	messages map[string][]chat.Message
}

// NewService bootstraps the in-memory chat service.
func NewService() *Service {
	return &Service{
		sessions: make(map[string]chat.Session),
		messages: make(map[string][]chat.Message),
	}
}

// CreateSession provisions an anonymous session whose history starts with
// exactly one greeting message.
func (s *Service) CreateSession(_ context.Context, voiceReply bool) (chat.Session, error) {
	session := chat.Session{
		ID:         uuid.NewString(),
		VoiceReply: voiceReply,
		CreatedAt:  time.Now().UTC(),
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.messages[session.ID] = []chat.Message{greeting(session.ID)}
	s.mu.Unlock()

	return session, nil
}

// GetSession retrieves a session by identifier.
func (s *Service) GetSession(_ context.Context, sessionID string) (chat.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return chat.Session{}, ErrSessionNotFound
	}
	return session, nil
}

// SetResponseMode flips the session's voice-reply flag.
func (s *Service) SetResponseMode(_ context.Context, sessionID string, voiceReply bool) (chat.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return chat.Session{}, ErrSessionNotFound
	}

	session.VoiceReply = voiceReply
	s.sessions[sessionID] = session
	return session, nil
}

// SaveMessage appends a message to the session history.
func (s *Service) SaveMessage(_ context.Context, message chat.Message) error {
	if message.SessionID == "" {
		return ErrSessionNotFound
	}
	if message.Content == "" {
		return ErrEmptyMessage
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[message.SessionID]; !ok {
		return ErrSessionNotFound
	}

	message.ID = uuid.NewString()
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now().UTC()
	}

	s.messages[message.SessionID] = append(s.messages[message.SessionID], message)
	return nil
}

// LoadTranscript returns a copy of the stored messages for the session.
func (s *Service) LoadTranscript(_ context.Context, sessionID string) ([]chat.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	messages, ok := s.messages[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}

	copied := make([]chat.Message, len(messages))
	copy(copied, messages)
	return copied, nil
}

// ClearHistory discards the session's history and reseeds it with the
// greeting message.
func (s *Service) ClearHistory(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sessionID]; !ok {
		return ErrSessionNotFound
	}

	s.messages[sessionID] = []chat.Message{greeting(sessionID)}
	return nil
}

func greeting(sessionID string) chat.Message {
	return chat.Message{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Role:      chat.RoleBot,
		Content:   Greeting,
		CreatedAt: time.Now().UTC(),
	}
}
