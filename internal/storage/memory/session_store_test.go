package memory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lennoxmeldrum/mongol-atlas/internal/domain"
)

func msg(role domain.MessageRole, text string) domain.Message {
	return domain.Message{ID: text, Role: role, Text: text, Timestamp: time.Now()}
}

func TestReplaceAbandonsPrevious(t *testing.T) {
	s := NewSessionStore()

	s.Replace(&Session{ID: "a", PersonaID: "genghis"}, msg(domain.RoleModel, "greeting-a"))
	require.True(t, s.IsActive("a"))

	s.Replace(&Session{ID: "b", PersonaID: "merchant"}, msg(domain.RoleModel, "greeting-b"))
	assert.False(t, s.IsActive("a"))
	assert.True(t, s.IsActive("b"))

	_, ok := s.Get("a")
	assert.False(t, ok)
	assert.False(t, s.Append("a", msg(domain.RoleModel, "stale reply")))

	msgs, ok := s.Messages("b")
	require.True(t, ok)
	require.Len(t, msgs, 1)
	assert.Equal(t, "greeting-b", msgs[0].Text)
}

func TestAppendAndMessagesOrder(t *testing.T) {
	s := NewSessionStore()
	s.Replace(&Session{ID: "a"}, msg(domain.RoleModel, "greeting"))

	assert.True(t, s.Append("a", msg(domain.RoleUser, "hello")))
	assert.True(t, s.Append("a", msg(domain.RoleModel, "reply")))

	msgs, ok := s.Messages("a")
	require.True(t, ok)
	require.Len(t, msgs, 3)
	assert.Equal(t, "greeting", msgs[0].Text)
	assert.Equal(t, "hello", msgs[1].Text)
	assert.Equal(t, "reply", msgs[2].Text)
}

func TestMessagesReturnsCopy(t *testing.T) {
	s := NewSessionStore()
	s.Replace(&Session{ID: "a"}, msg(domain.RoleModel, "greeting"))

	msgs, _ := s.Messages("a")
	msgs[0].Text = "mutated"

	again, _ := s.Messages("a")
	assert.Equal(t, "greeting", again[0].Text)
}

func TestSingleSendInFlight(t *testing.T) {
	s := NewSessionStore()
	s.Replace(&Session{ID: "a"})

	require.NoError(t, s.BeginSend("a"))
	assert.ErrorIs(t, s.BeginSend("a"), domain.ErrSendInFlight)

	s.EndSend("a")
	assert.NoError(t, s.BeginSend("a"))
}

func TestBeginSendStaleSession(t *testing.T) {
	s := NewSessionStore()
	s.Replace(&Session{ID: "a"})
	s.Replace(&Session{ID: "b"})

	assert.ErrorIs(t, s.BeginSend("a"), domain.ErrStaleSession)
	assert.NoError(t, s.BeginSend("b"))
}

func TestEndSendOnAbandonedSessionIsNoop(t *testing.T) {
	s := NewSessionStore()
	s.Replace(&Session{ID: "a"})
	require.NoError(t, s.BeginSend("a"))

	s.Replace(&Session{ID: "b"})
	s.EndSend("a") // must not clear b's state or panic

	assert.NoError(t, s.BeginSend("b"))
}
