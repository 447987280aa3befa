package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/toomanyjoshes/terminalchat/internal/models"
)

func TestSummariesNewestFirst(t *testing.T) {
	s := newTestStores(t)

	now := time.Now()

	old := &models.Message{Sender: "bob", Recipient: "alice", Content: "old", CreatedAt: now.Add(-2 * time.Hour)}
	assert.NoError(t, s.Conversations.Append(old))
	recent := &models.Message{Sender: "alice", Recipient: "carol", Content: "recent", CreatedAt: now.Add(-time.Minute)}
	assert.NoError(t, s.Conversations.Append(recent))

	summaries, err := s.Chats.SummariesFor("alice")
	assert.NoError(t, err)
	assert.Len(t, summaries, 2)

	assert.Equal(t, "carol", summaries[0].Username)
	assert.Equal(t, "recent", summaries[0].LastMessage)
	assert.Equal(t, "bob", summaries[1].Username)
	assert.Equal(t, "old", summaries[1].LastMessage)
}

func TestSummariesTieBreakByPeer(t *testing.T) {
	s := newTestStores(t)

	ts := time.Now().Truncate(time.Second)

	assert.NoError(t, s.Conversations.Append(&models.Message{Sender: "zoe", Recipient: "alice", Content: "z", CreatedAt: ts}))
	assert.NoError(t, s.Conversations.Append(&models.Message{Sender: "bob", Recipient: "alice", Content: "b", CreatedAt: ts}))

	summaries, err := s.Chats.SummariesFor("alice")
	assert.NoError(t, err)
	assert.Len(t, summaries, 2)

	// Equal timestamps: deterministic order by peer handle ascending.
	assert.Equal(t, "bob", summaries[0].Username)
	assert.Equal(t, "zoe", summaries[1].Username)
}

func TestSummariesUnreadCount(t *testing.T) {
	s := newTestStores(t)

	appendText(t, s, "bob", "alice", "one")
	appendText(t, s, "bob", "alice", "two")
	appendText(t, s, "alice", "bob", "reply")

	// Alice has two unread from bob; her own message does not count.
	summaries, _ := s.Chats.SummariesFor("alice")
	assert.Len(t, summaries, 1)
	assert.Equal(t, int64(2), summaries[0].Unread)

	// Bob has one unread (alice's reply).
	summaries, _ = s.Chats.SummariesFor("bob")
	assert.Len(t, summaries, 1)
	assert.Equal(t, int64(1), summaries[0].Unread)

	// Fetch flips alice's unread to zero; bob's view is unchanged.
	s.Conversations.MarkRead(models.ConversationKeyFor("alice", "bob"), "alice")

	summaries, _ = s.Chats.SummariesFor("alice")
	assert.Equal(t, int64(0), summaries[0].Unread)
	summaries, _ = s.Chats.SummariesFor("bob")
	assert.Equal(t, int64(1), summaries[0].Unread)
}

func TestSummariesLastMessageUsesInsertionOrder(t *testing.T) {
	s := newTestStores(t)

	ts := time.Now().Truncate(time.Second)

	// Identical timestamps: the later insert is the last message.
	assert.NoError(t, s.Conversations.Append(&models.Message{Sender: "bob", Recipient: "alice", Content: "first", CreatedAt: ts}))
	assert.NoError(t, s.Conversations.Append(&models.Message{Sender: "bob", Recipient: "alice", Content: "second", CreatedAt: ts}))

	summaries, _ := s.Chats.SummariesFor("alice")
	assert.Len(t, summaries, 1)
	assert.Equal(t, "second", summaries[0].LastMessage)
}

func TestSummariesFileFlag(t *testing.T) {
	s := newTestStores(t)

	fileID := "some-attachment-id"
	assert.NoError(t, s.Conversations.Append(&models.Message{
		Sender:    "bob",
		Recipient: "alice",
		Content:   "notes.txt",
		FileID:    &fileID,
		IsFile:    true,
	}))

	summaries, _ := s.Chats.SummariesFor("alice")
	assert.Len(t, summaries, 1)
	assert.True(t, summaries[0].IsFile)
	assert.Equal(t, "notes.txt", summaries[0].LastMessage)
}

func TestSummariesExcludeDeletedConversations(t *testing.T) {
	s := newTestStores(t)

	appendText(t, s, "alice", "bob", "soon gone")
	appendText(t, s, "alice", "carol", "kept")

	assert.NoError(t, s.Conversations.Delete(models.ConversationKeyFor("alice", "bob")))

	summaries, _ := s.Chats.SummariesFor("alice")
	assert.Len(t, summaries, 1)
	assert.Equal(t, "carol", summaries[0].Username)

	summaries, _ = s.Chats.SummariesFor("bob")
	assert.Empty(t, summaries)
}

func TestSummariesAfterAccountDeletion(t *testing.T) {
	s := newTestStores(t)

	appendText(t, s, "alice", "bob", "hi")
	appendText(t, s, "carol", "alice", "hello")

	assert.NoError(t, s.Conversations.DeleteAllInvolving("alice"))

	for _, user := range []string{"alice", "bob", "carol"} {
		summaries, err := s.Chats.SummariesFor(user)
		assert.NoError(t, err)
		assert.Empty(t, summaries, "user %s still sees a deleted conversation", user)
	}
}
