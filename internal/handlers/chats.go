package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/toomanyjoshes/terminalchat/internal/models"
)

// GetChats returns one summary per ongoing conversation, newest first.
// GET /chats
func GetChats(c *gin.Context) {
	username := c.MustGet("username").(string)

	summaries, err := Stores.Chats.SummariesFor(username)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summaries)
}

// DeleteChat wipes the conversation log with peer. Idempotent: deleting a
// chat that does not exist still succeeds. DELETE /chats/:peer
func DeleteChat(c *gin.Context) {
	username := c.MustGet("username").(string)
	peer := c.Param("peer")

	key := models.ConversationKeyFor(username, peer)
	if err := Stores.Conversations.Delete(key); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Chat deleted successfully"})
}
