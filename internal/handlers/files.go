package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/toomanyjoshes/terminalchat/internal/models"
	"github.com/toomanyjoshes/terminalchat/pkg/logger"
	"github.com/toomanyjoshes/terminalchat/pkg/utils"
)

// SendFile uploads an attachment and appends a file message to the
// conversation with peer. The block check runs before any byte is stored,
// so a blocked send leaves no trace. POST /files/:peer
func SendFile(c *gin.Context) {
	username := c.MustGet("username").(string)
	peer := c.Param("peer")

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file part"})
		return
	}
	defer file.Close()

	if header.Filename == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No selected file"})
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

	blocked, err := Stores.Blocks.IsBlockedPair(username, peer)
	if err != nil {
		respondError(c, err)
		return
	}
	if blocked {
		c.JSON(http.StatusForbidden, gin.H{"error": "You cannot exchange messages with this user"})
		return
	}

	filename := utils.SanitizeFilename(header.Filename)
	key := models.ConversationKeyFor(username, peer)

	att, err := Stores.Attachments.Register(key, username, filename, header.Header.Get("Content-Type"), header.Size)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := Blobs.Save(c.Request.Context(), att.ID, file, header.Size, att.ContentType); err != nil {
		if remErr := Stores.Attachments.Remove(att.ID); remErr != nil {
			logger.Warn().Err(remErr).Str("attachment_id", att.ID).Msg("Failed to roll back attachment reference")
		}
		respondError(c, err)
		return
	}

	msg := models.Message{
		Sender:    username,
		Recipient: peer,
		Content:   filename,
		FileID:    &att.ID,
		IsFile:    true,
	}
	if err := Stores.Conversations.Append(&msg); err != nil {
		// Roll back the orphaned reference and blob.
		if delErr := Blobs.Delete(c.Request.Context(), att.ID); delErr != nil {
			logger.Warn().Err(delErr).Str("attachment_id", att.ID).Msg("Failed to delete orphaned blob")
		}
		if remErr := Stores.Attachments.Remove(att.ID); remErr != nil {
			logger.Warn().Err(remErr).Str("attachment_id", att.ID).Msg("Failed to roll back attachment reference")
		}
		respondError(c, err)
		return
	}

	logger.Debug().Str("sender", username).Str("recipient", peer).Str("attachment_id", att.ID).Msg("File stored")

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "File sent successfully",
		"file_id": att.ID,
	})
}

// DownloadFile streams an attachment's bytes with its original filename.
// GET /files/:id
func DownloadFile(c *gin.Context) {
	id := c.Param("id")

	att, err := Stores.Attachments.Resolve(id)
	if err != nil {
		respondError(c, err)
		return
	}

	body, err := Blobs.Open(c.Request.Context(), att.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	defer body.Close()

	contentType := att.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	c.DataFromReader(http.StatusOK, att.Size, contentType, body, map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", att.OriginalFilename),
	})
}
