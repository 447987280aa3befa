package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/toomanyjoshes/terminalchat/internal/database"
	"github.com/toomanyjoshes/terminalchat/internal/models"
	"github.com/toomanyjoshes/terminalchat/pkg/logger"
)

// GetMessages returns the full conversation with peer in append order and,
// as a legacy side effect the client depends on, marks every message
// addressed to the caller as read. GET /messages/:peer
func GetMessages(c *gin.Context) {
	username := c.MustGet("username").(string)
	peer := c.Param("peer")

	key := models.ConversationKeyFor(username, peer)

	// Flip before listing so the response reflects the post-fetch state,
	// matching the original server's "you saw it, it's read" contract.
	if _, err := Stores.Conversations.MarkRead(key, username); err != nil {
		respondError(c, err)
		return
	}

	messages, err := Stores.Conversations.List(key)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, messages)
}

type SendMessageInput struct {
	Content string `json:"content"`
}

// SendMessage appends a text message to the conversation with peer.
// POST /messages/:peer
func SendMessage(c *gin.Context) {
	username := c.MustGet("username").(string)
	peer := c.Param("peer")

	var input SendMessageInput
	if err := c.ShouldBindJSON(&input); err != nil || input.Content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message content is required"})
		return
	}

	exists, err := userExists(peer)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if ok, _ := database.CheckRateLimit(username, 60, time.Minute); !ok {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded. Please slow down."})
		return
	}

	// Service-level block check; nothing is written when it fails. The
	// store re-checks under the conversation lock as a second line.
	blocked, err := Stores.Blocks.IsBlockedPair(username, peer)
	if err != nil {
		respondError(c, err)
		return
	}
	if blocked {
		c.JSON(http.StatusForbidden, gin.H{"error": "You cannot exchange messages with this user"})
		return
	}

	msg := models.Message{
		Sender:    username,
		Recipient: peer,
		Content:   input.Content,
	}
	if err := Stores.Conversations.Append(&msg); err != nil {
		respondError(c, err)
		return
	}

	logger.Debug().Str("sender", username).Str("recipient", peer).Msg("Message stored")

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Message sent successfully",
	})
}
