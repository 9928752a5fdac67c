package service

import (
	"context"
	"testing"

	"alcyxob/coach-platform/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatService_Conversation(t *testing.T) {
	store := newTestStore()
	chat := NewChatService(store.Chat, store.Users)
	ctx := context.Background()
	coach := createUser(t, store, domain.RoleCoach)
	athlete := createUser(t, store, domain.RoleAthlete)

	conv, err := chat.OpenConversation(ctx, coach.ID, domain.RoleCoach, athlete.ID)
	require.NoError(t, err)

	// the athlete opening from their side reuses it
	same, err := chat.OpenConversation(ctx, athlete.ID, domain.RoleAthlete, coach.ID)
	require.NoError(t, err)
	assert.Equal(t, conv.ID, same.ID)

	_, err = chat.OpenConversation(ctx, coach.ID, domain.RoleCoach, createUser(t, store, domain.RoleCoach).ID)
	assert.ErrorIs(t, err, ErrValidationFailed)

	texts := []string{"Welcome aboard", "Thanks coach", "First session tomorrow"}
	senders := []*domain.User{coach, athlete, coach}
	for i, text := range texts {
		_, err := chat.SendMessage(ctx, senders[i].ID, conv.ID, text)
		require.NoError(t, err)
	}

	msgs, err := chat.ListMessages(ctx, athlete.ID, conv.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	for i, m := range msgs {
		assert.Equal(t, texts[i], m.Text)
	}

	// once both sides have read, every message is read
	msgs, err = chat.ListMessages(ctx, coach.ID, conv.ID)
	require.NoError(t, err)
	assert.True(t, msgs[0].Read)
	assert.True(t, msgs[1].Read)
	assert.True(t, msgs[2].Read)

	convs, err := chat.ListConversations(ctx, athlete.ID)
	require.NoError(t, err)
	require.Len(t, convs, 1)
	assert.Equal(t, "First session tomorrow", convs[0].LastMessage)
}

func TestChatService_Guards(t *testing.T) {
	store := newTestStore()
	chat := NewChatService(store.Chat, store.Users)
	ctx := context.Background()
	coach := createUser(t, store, domain.RoleCoach)
	athlete := createUser(t, store, domain.RoleAthlete)
	outsider := createUser(t, store, domain.RoleAthlete)

	conv, err := chat.OpenConversation(ctx, coach.ID, domain.RoleCoach, athlete.ID)
	require.NoError(t, err)

	_, err = chat.SendMessage(ctx, outsider.ID, conv.ID, "hi")
	assert.ErrorIs(t, err, ErrNotParticipant)

	_, err = chat.ListMessages(ctx, outsider.ID, conv.ID)
	assert.ErrorIs(t, err, ErrNotParticipant)

	_, err = chat.SendMessage(ctx, coach.ID, conv.ID, "   ")
	assert.ErrorIs(t, err, ErrValidationFailed)
}
