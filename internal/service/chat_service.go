package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lennoxmeldrum/mongol-atlas/internal/domain"
	"github.com/lennoxmeldrum/mongol-atlas/internal/genai"
	"github.com/lennoxmeldrum/mongol-atlas/internal/history"
	"github.com/lennoxmeldrum/mongol-atlas/internal/storage/memory"
)

// ChatService manages the persona chat lifecycle: one active session
// at a time, transcript reset on persona switch, strict send/receive
// ordering, and discarding of replies that outlive their session.
type ChatService struct {
	client      genai.ChatClient
	store       *memory.SessionStore
	logger      *zap.Logger
	temperature float32
}

// NewChatService creates a new chat service
func NewChatService(client genai.ChatClient, store *memory.SessionStore, temperature float32, logger *zap.Logger) *ChatService {
	return &ChatService{
		client:      client,
		store:       store,
		logger:      logger,
		temperature: temperature,
	}
}

// SelectPersona starts a fresh session for the persona, replacing any
// previous session. The transcript starts with a single greeting from
// the persona. Session creation failure is surfaced so the UI can
// offer a retry.
func (s *ChatService) SelectPersona(ctx context.Context, personaID string) (*domain.SessionView, error) {
	persona, ok := history.PersonaByID(personaID)
	if !ok {
		return nil, domain.ErrNotFound
	}

	chat, err := s.client.CreateSession(ctx, persona.SystemPrompt, s.temperature)
	if err != nil {
		s.logger.Error("chat session creation failed",
			zap.String("persona", personaID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrSessionUnavailable, err)
	}

	sess := &memory.Session{
		ID:        uuid.New().String(),
		PersonaID: persona.ID,
		Chat:      chat,
	}
	greeting := domain.Message{
		ID:        uuid.New().String(),
		Role:      domain.RoleModel,
		Text:      fmt.Sprintf("I am %s, %s. Ask me anything about our times.", persona.Name, persona.Role),
		Timestamp: time.Now(),
	}
	s.store.Replace(sess, greeting)

	s.logger.Info("chat session created", zap.String("persona", personaID), zap.String("session", sess.ID))
	return s.view(sess.ID)
}

// SendMessage forwards a user message to the bound session. Blank
// input, unknown/stale sessions and overlapping sends are rejected
// before anything is appended. A model failure leaves the transcript
// ending with the user's message; no error entry is appended.
func (s *ChatService) SendMessage(ctx context.Context, sessionID, text string) (*domain.SendResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.ErrBlankInput
	}

	sess, ok := s.store.Get(sessionID)
	if !ok {
		return nil, domain.ErrStaleSession
	}
	if err := s.store.BeginSend(sessionID); err != nil {
		return nil, err
	}
	defer s.store.EndSend(sessionID)

	userMsg := domain.Message{
		ID:        uuid.New().String(),
		Role:      domain.RoleUser,
		Text:      text,
		Timestamp: time.Now(),
	}
	if !s.store.Append(sessionID, userMsg) {
		return nil, domain.ErrStaleSession
	}

	reply, err := sess.Chat.Send(ctx, text)
	if err != nil {
		// Logged only; the transcript stays free of error noise.
		s.logger.Warn("chat send failed",
			zap.String("session", sessionID), zap.Error(err))
		return s.result(sessionID, false)
	}

	modelMsg := domain.Message{
		ID:        uuid.New().String(),
		Role:      domain.RoleModel,
		Text:      reply,
		Timestamp: time.Now(),
	}
	// The session may have been replaced while the request was in
	// flight; a stale reply is dropped, not appended.
	if !s.store.Append(sessionID, modelMsg) {
		s.logger.Info("discarding reply for abandoned session", zap.String("session", sessionID))
		return nil, domain.ErrStaleSession
	}

	return s.result(sessionID, true)
}

// Transcript returns the session's current transcript.
func (s *ChatService) Transcript(sessionID string) (*domain.SessionView, error) {
	return s.view(sessionID)
}

func (s *ChatService) view(sessionID string) (*domain.SessionView, error) {
	sess, ok := s.store.Get(sessionID)
	if !ok {
		return nil, domain.ErrStaleSession
	}
	msgs, _ := s.store.Messages(sessionID)
	return &domain.SessionView{
		SessionID: sess.ID,
		PersonaID: sess.PersonaID,
		Messages:  msgs,
	}, nil
}

func (s *ChatService) result(sessionID string, answered bool) (*domain.SendResult, error) {
	view, err := s.view(sessionID)
	if err != nil {
		return nil, err
	}
	return &domain.SendResult{SessionView: *view, Answered: answered}, nil
}
