package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/toomanyjoshes/terminalchat/internal/models"
)

type messageResp struct {
	ID        string `json:"id"`
	Sender    string `json:"sender"`
	Recipient string `json:"recipient"`
	Content   string `json:"content"`
	Read      bool   `json:"read"`
	IsFile    bool   `json:"is_file"`
	FileID    string `json:"file_id"`
}

type summaryResp struct {
	Username    string `json:"username"`
	LastMessage string `json:"last_message"`
	IsFile      bool   `json:"is_file"`
	Unread      int64  `json:"unread"`
}

// The canonical signup/send/fetch flow: alice messages bob, bob's fetch
// flips the read flag, and both chat lists agree afterwards.
func TestSendAndFetchScenario(t *testing.T) {
	r, s := setupRouter(t)
	alice := signupAndLogin(t, r, "alice")
	bob := signupAndLogin(t, r, "bob")

	w := doJSON(r, http.MethodPost, "/messages/bob", alice, gin.H{"content": "hi"})
	assert.Equal(t, http.StatusCreated, w.Code)

	// One message in the canonical log, unread.
	log, err := s.Conversations.List(models.ConversationKeyFor("alice", "bob"))
	assert.NoError(t, err)
	assert.Len(t, log, 1)
	assert.False(t, log[0].Read)

	// Alice is the sender, so her chat list shows no unread.
	w = doJSON(r, http.MethodGet, "/chats", alice, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var aliceChats []summaryResp
	json.Unmarshal(w.Body.Bytes(), &aliceChats)
	assert.Len(t, aliceChats, 1)
	assert.Equal(t, "bob", aliceChats[0].Username)
	assert.Equal(t, int64(0), aliceChats[0].Unread)

	// Bob sees one unread before fetching.
	w = doJSON(r, http.MethodGet, "/chats", bob, nil)
	var bobChats []summaryResp
	json.Unmarshal(w.Body.Bytes(), &bobChats)
	assert.Equal(t, int64(1), bobChats[0].Unread)

	// Fetching returns the message and flips the flag.
	w = doJSON(r, http.MethodGet, "/messages/alice", bob, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var fetched []messageResp
	json.Unmarshal(w.Body.Bytes(), &fetched)
	assert.Len(t, fetched, 1)
	assert.Equal(t, "hi", fetched[0].Content)
	assert.Equal(t, "alice", fetched[0].Sender)
	assert.True(t, fetched[0].Read)

	w = doJSON(r, http.MethodGet, "/chats", bob, nil)
	json.Unmarshal(w.Body.Bytes(), &bobChats)
	assert.Equal(t, int64(0), bobChats[0].Unread)
}

func TestFetchDoesNotMarkSenderSide(t *testing.T) {
	r, s := setupRouter(t)
	alice := signupAndLogin(t, r, "alice")
	signupAndLogin(t, r, "bob")

	doJSON(r, http.MethodPost, "/messages/bob", alice, gin.H{"content": "hi"})

	// Alice fetching her own outgoing message leaves it unread for bob.
	w := doJSON(r, http.MethodGet, "/messages/bob", alice, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	log, _ := s.Conversations.List(models.ConversationKeyFor("alice", "bob"))
	assert.False(t, log[0].Read)
}

func TestSendRejectsEmptyContent(t *testing.T) {
	r, _ := setupRouter(t)
	alice := signupAndLogin(t, r, "alice")
	signupAndLogin(t, r, "bob")

	w := doJSON(r, http.MethodPost, "/messages/bob", alice, gin.H{"content": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Message content is required")

	w = doJSON(r, http.MethodPost, "/messages/bob", alice, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSendToUnknownPeer(t *testing.T) {
	r, _ := setupRouter(t)
	alice := signupAndLogin(t, r, "alice")

	w := doJSON(r, http.MethodPost, "/messages/ghost", alice, gin.H{"content": "anyone there?"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "User not found")
}

func TestBlockedSendFailsAndWritesNothing(t *testing.T) {
	r, s := setupRouter(t)
	alice := signupAndLogin(t, r, "alice")
	bob := signupAndLogin(t, r, "bob")

	w := doJSON(r, http.MethodPost, "/blocked/bob", alice, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodPost, "/messages/alice", bob, gin.H{"content": "let me in"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	log, _ := s.Conversations.List(models.ConversationKeyFor("alice", "bob"))
	assert.Empty(t, log)

	// Unblock restores the pair.
	w = doJSON(r, http.MethodDelete, "/blocked/bob", alice, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodPost, "/messages/alice", bob, gin.H{"content": "thanks"})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestBlockedQueryIsSymmetric(t *testing.T) {
	r, _ := setupRouter(t)
	alice := signupAndLogin(t, r, "alice")
	bob := signupAndLogin(t, r, "bob")

	doJSON(r, http.MethodPost, "/blocked/bob", alice, nil)

	var resp struct {
		Blocked bool `json:"blocked"`
	}
	w := doJSON(r, http.MethodGet, "/blocked/bob", alice, nil)
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.True(t, resp.Blocked)

	w = doJSON(r, http.MethodGet, "/blocked/alice", bob, nil)
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.True(t, resp.Blocked)
}

func TestSelfBlockRejected(t *testing.T) {
	r, _ := setupRouter(t)
	alice := signupAndLogin(t, r, "alice")

	w := doJSON(r, http.MethodPost, "/blocked/alice", alice, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteChatRemovesSummaries(t *testing.T) {
	r, _ := setupRouter(t)
	alice := signupAndLogin(t, r, "alice")
	bob := signupAndLogin(t, r, "bob")

	doJSON(r, http.MethodPost, "/messages/bob", alice, gin.H{"content": "hi"})

	w := doJSON(r, http.MethodDelete, "/chats/bob", alice, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var chats []summaryResp
	w = doJSON(r, http.MethodGet, "/chats", alice, nil)
	json.Unmarshal(w.Body.Bytes(), &chats)
	assert.Empty(t, chats)

	// The wipe is for the conversation, not one side: bob's list is empty too.
	w = doJSON(r, http.MethodGet, "/chats", bob, nil)
	json.Unmarshal(w.Body.Bytes(), &chats)
	assert.Empty(t, chats)
}

func TestListUsersExcludesSelf(t *testing.T) {
	r, _ := setupRouter(t)
	alice := signupAndLogin(t, r, "alice")
	signupAndLogin(t, r, "bob")
	signupAndLogin(t, r, "carol")

	w := doJSON(r, http.MethodGet, "/users", alice, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var users []struct {
		Username string `json:"username"`
	}
	json.Unmarshal(w.Body.Bytes(), &users)
	assert.Len(t, users, 2)
	for _, u := range users {
		assert.NotEqual(t, "alice", u.Username)
	}
}

func TestCheckUser(t *testing.T) {
	r, _ := setupRouter(t)
	alice := signupAndLogin(t, r, "alice")

	var resp struct {
		Exists bool `json:"exists"`
	}
	w := doJSON(r, http.MethodGet, "/user/alice", alice, nil)
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.True(t, resp.Exists)

	w = doJSON(r, http.MethodGet, "/user/ghost", alice, nil)
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.False(t, resp.Exists)
}
