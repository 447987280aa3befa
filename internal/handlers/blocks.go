package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CheckBlocked reports the symmetric block state between the caller and
// peer. GET /blocked/:peer
func CheckBlocked(c *gin.Context) {
	username := c.MustGet("username").(string)
	peer := c.Param("peer")

	blocked, err := Stores.Blocks.IsBlockedPair(username, peer)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"blocked": blocked})
}

// BlockUser adds a block edge from the caller to peer. Idempotent.
// POST /blocked/:peer
func BlockUser(c *gin.Context) {
	username := c.MustGet("username").(string)
	peer := c.Param("peer")

	if err := Stores.Blocks.Block(username, peer); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User blocked"})
}

// UnblockUser removes the caller's block edge to peer. DELETE /blocked/:peer
func UnblockUser(c *gin.Context) {
	username := c.MustGet("username").(string)
	peer := c.Param("peer")

	if err := Stores.Blocks.Unblock(username, peer); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User unblocked"})
}
