package chat

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/chaman2003/epsilora-api/internal/llm"
)

const systemPrompt = `You are a study assistant for an online learning platform.
The student asks about their quiz performance. Be concise, encouraging and
concrete: point at the topics behind their wrong answers and suggest what to
review next. Use the performance summary provided; do not invent scores.`

// PerformanceSource supplies a compact text digest of a user's quiz
// performance for the assistant's context.
type PerformanceSource interface {
	Digest(ctx context.Context, userID string) (string, error)
}

type Service struct {
	store    Store
	provider llm.Provider
	perf     PerformanceSource
	cache    *SessionCache

	maxTokens int
	now       func() time.Time
}

func NewService(store Store, provider llm.Provider, perf PerformanceSource, cache *SessionCache) *Service {
	return &Service{
		store:     store,
		provider:  provider,
		perf:      perf,
		cache:     cache,
		maxTokens: 1024,
		now:       time.Now,
	}
}

// StartSession returns the user's active session, or opens a new one when
// none is cached (first call after login, or after Reset).
func (s *Service) StartSession(ctx context.Context, userID, quizID string) (Session, error) {
	if id := s.cache.Active(userID); id != "" {
		if sess, err := s.ownedSession(ctx, userID, id); err == nil {
			return sess, nil
		}
	}
	sess := Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		QuizID:    quizID,
		CreatedAt: s.now().Unix(),
	}
	if err := s.store.PutSession(ctx, sess); err != nil {
		return Session{}, err
	}
	s.cache.SetActive(userID, sess.ID)
	return sess, nil
}

// Send appends the user's message, asks the assistant with the session
// history plus a performance digest as context, and persists the reply.
func (s *Service) Send(ctx context.Context, userID, sessionID, text string) (Message, error) {
	sess, err := s.ownedSession(ctx, userID, sessionID)
	if err != nil {
		return Message{}, err
	}

	history, err := s.store.ListMessages(ctx, sess.ID)
	if err != nil {
		return Message{}, err
	}

	userMsg := Message{
		ID:        uuid.NewString(),
		SessionID: sess.ID,
		Role:      RoleUser,
		Content:   text,
		CreatedAt: s.now().Unix(),
	}
	if err := s.store.AppendMessage(ctx, userMsg); err != nil {
		return Message{}, err
	}

	req := llm.Request{
		System:    s.buildSystem(ctx, userID),
		Messages:  toLLMMessages(append(history, userMsg)),
		MaxTokens: s.maxTokens,
	}
	resp, err := s.provider.Generate(llm.WithPurpose(ctx, "chat"), req)
	if err != nil {
		return Message{}, fmt.Errorf("assistant reply: %w", err)
	}

	reply := Message{
		ID:        uuid.NewString(),
		SessionID: sess.ID,
		Role:      RoleAssistant,
		Content:   string(resp.Content),
		CreatedAt: s.now().Unix(),
	}
	if err := s.store.AppendMessage(ctx, reply); err != nil {
		return Message{}, err
	}
	s.cache.SetActive(userID, sess.ID)
	return reply, nil
}

// History returns the session's messages, oldest first.
func (s *Service) History(ctx context.Context, userID, sessionID string) ([]Message, error) {
	sess, err := s.ownedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	return s.store.ListMessages(ctx, sess.ID)
}

func (s *Service) Sessions(ctx context.Context, userID string) ([]Session, error) {
	return s.store.ListSessions(ctx, userID)
}

// Reset drops the user's cached session state. Called on every
// authentication change.
func (s *Service) Reset(userID string) { s.cache.Reset(userID) }

func (s *Service) ownedSession(ctx context.Context, userID, sessionID string) (Session, error) {
	sess, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return Session{}, err
	}
	if sess.UserID != userID {
		return Session{}, ErrNotSessionOwner
	}
	return sess, nil
}

func (s *Service) buildSystem(ctx context.Context, userID string) string {
	if s.perf == nil {
		return systemPrompt
	}
	digest, err := s.perf.Digest(ctx, userID)
	if err != nil || digest == "" {
		// The assistant still works without performance context.
		return systemPrompt
	}
	return systemPrompt + "\n\nPerformance summary:\n" + digest
}

func toLLMMessages(msgs []Message) []llm.Message {
	out := make([]llm.Message, len(msgs))
	for i, m := range msgs {
		role := llm.RoleUser
		if m.Role == RoleAssistant {
			role = llm.RoleAssistant
		}
		out[i] = llm.Message{Role: role, Content: m.Content}
	}
	return out
}
