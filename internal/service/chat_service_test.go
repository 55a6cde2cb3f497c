package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lennoxmeldrum/mongol-atlas/internal/domain"
	"github.com/lennoxmeldrum/mongol-atlas/internal/genai"
	"github.com/lennoxmeldrum/mongol-atlas/internal/storage/memory"
)

type fakeSession struct {
	mu      sync.Mutex
	replies []string
	err     error
	// onSend fires inside Send before returning, letting tests race a
	// persona switch against an in-flight reply.
	onSend func()
	sent   []string
}

func (f *fakeSession) Send(ctx context.Context, text string) (string, error) {
	f.mu.Lock()
	f.sent = append(f.sent, text)
	f.mu.Unlock()
	if f.onSend != nil {
		f.onSend()
	}
	if f.err != nil {
		return "", f.err
	}
	if len(f.replies) == 0 {
		return "I remain silent.", nil
	}
	reply := f.replies[0]
	f.replies = f.replies[1:]
	return reply, nil
}

type fakeChatClient struct {
	session *fakeSession
	err     error
	created []string
}

func (f *fakeChatClient) CreateSession(ctx context.Context, systemInstruction string, temperature float32) (genai.ChatSession, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, systemInstruction)
	return f.session, nil
}

func newChatService(client genai.ChatClient) *ChatService {
	return NewChatService(client, memory.NewSessionStore(), 0.7, zap.NewNop())
}

func TestSelectPersonaSeedsGreeting(t *testing.T) {
	client := &fakeChatClient{session: &fakeSession{}}
	svc := newChatService(client)

	view, err := svc.SelectPersona(context.Background(), "genghis")
	require.NoError(t, err)

	assert.Equal(t, "genghis", view.PersonaID)
	require.Len(t, view.Messages, 1)
	assert.Equal(t, domain.RoleModel, view.Messages[0].Role)
	assert.Equal(t, "I am Genghis Khan, Supreme Khan. Ask me anything about our times.", view.Messages[0].Text)

	// The session is bound to the persona's system instruction.
	require.Len(t, client.created, 1)
	assert.Contains(t, client.created[0], "Genghis Khan")
}

func TestSelectPersonaResetsTranscript(t *testing.T) {
	client := &fakeChatClient{session: &fakeSession{replies: []string{"The steppe provides."}}}
	svc := newChatService(client)

	first, err := svc.SelectPersona(context.Background(), "genghis")
	require.NoError(t, err)
	_, err = svc.SendMessage(context.Background(), first.SessionID, "Hello")
	require.NoError(t, err)

	second, err := svc.SelectPersona(context.Background(), "merchant")
	require.NoError(t, err)
	require.Len(t, second.Messages, 1)
	assert.Equal(t, "I am Silk Road Merchant, Trader. Ask me anything about our times.", second.Messages[0].Text)
}

func TestSelectPersonaUnknown(t *testing.T) {
	svc := newChatService(&fakeChatClient{session: &fakeSession{}})
	_, err := svc.SelectPersona(context.Background(), "napoleon")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSelectPersonaCreationFailureSurfaced(t *testing.T) {
	svc := newChatService(&fakeChatClient{err: errors.New("backend down")})
	_, err := svc.SelectPersona(context.Background(), "genghis")
	assert.ErrorIs(t, err, domain.ErrSessionUnavailable)
}

func TestSendMessageAppendsInOrder(t *testing.T) {
	client := &fakeChatClient{session: &fakeSession{replies: []string{"I hear you."}}}
	svc := newChatService(client)

	view, err := svc.SelectPersona(context.Background(), "genghis")
	require.NoError(t, err)

	res, err := svc.SendMessage(context.Background(), view.SessionID, "Hello")
	require.NoError(t, err)
	assert.True(t, res.Answered)

	require.Len(t, res.Messages, 3)
	assert.Equal(t, domain.RoleModel, res.Messages[0].Role) // greeting
	assert.Equal(t, domain.RoleUser, res.Messages[1].Role)
	assert.Equal(t, "Hello", res.Messages[1].Text)
	assert.Equal(t, domain.RoleModel, res.Messages[2].Role)
	assert.Equal(t, "I hear you.", res.Messages[2].Text)
}

func TestSendMessageBlankIsNoop(t *testing.T) {
	client := &fakeChatClient{session: &fakeSession{}}
	svc := newChatService(client)
	view, err := svc.SelectPersona(context.Background(), "genghis")
	require.NoError(t, err)

	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := svc.SendMessage(context.Background(), view.SessionID, text)
		assert.ErrorIs(t, err, domain.ErrBlankInput)
	}

	after, err := svc.Transcript(view.SessionID)
	require.NoError(t, err)
	assert.Len(t, after.Messages, 1, "transcript unchanged")
	assert.Empty(t, client.session.sent, "no request issued")
}

func TestSendMessageFailureKeepsUserMessageOnly(t *testing.T) {
	client := &fakeChatClient{session: &fakeSession{err: errors.New("model unavailable")}}
	svc := newChatService(client)
	view, err := svc.SelectPersona(context.Background(), "genghis")
	require.NoError(t, err)

	res, err := svc.SendMessage(context.Background(), view.SessionID, "Hello")
	require.NoError(t, err)
	assert.False(t, res.Answered)

	require.Len(t, res.Messages, 2)
	assert.Equal(t, domain.RoleUser, res.Messages[1].Role)
	assert.Equal(t, "Hello", res.Messages[1].Text)
}

func TestSendMessageUnknownSession(t *testing.T) {
	svc := newChatService(&fakeChatClient{session: &fakeSession{}})
	_, err := svc.SendMessage(context.Background(), "no-such-session", "Hello")
	assert.ErrorIs(t, err, domain.ErrStaleSession)
}

func TestSendMessageRejectsOverlappingSend(t *testing.T) {
	session := &fakeSession{replies: []string{"first reply"}}
	svc := newChatService(&fakeChatClient{session: session})

	view, err := svc.SelectPersona(context.Background(), "genghis")
	require.NoError(t, err)

	var overlapErr error
	session.onSend = func() {
		session.onSend = nil
		_, overlapErr = svc.SendMessage(context.Background(), view.SessionID, "second")
	}

	res, err := svc.SendMessage(context.Background(), view.SessionID, "first")
	require.NoError(t, err)
	assert.True(t, res.Answered)
	assert.ErrorIs(t, overlapErr, domain.ErrSendInFlight)
}

func TestPersonaSwitchMidSendDiscardsReply(t *testing.T) {
	session := &fakeSession{replies: []string{"late reply"}}
	client := &fakeChatClient{session: session}
	svc := newChatService(client)

	view, err := svc.SelectPersona(context.Background(), "genghis")
	require.NoError(t, err)

	// Switch personas while the send is in flight.
	session.onSend = func() {
		session.onSend = nil
		_, serr := svc.SelectPersona(context.Background(), "citizen")
		require.NoError(t, serr)
	}

	_, err = svc.SendMessage(context.Background(), view.SessionID, "Hello")
	assert.ErrorIs(t, err, domain.ErrStaleSession)

	// The new session's transcript holds only its greeting.
	current, err := svc.SelectPersona(context.Background(), "citizen")
	require.NoError(t, err)
	require.Len(t, current.Messages, 1)
	assert.NotEqual(t, "late reply", current.Messages[0].Text)
}
