package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/toomanyjoshes/terminalchat/internal/storage"
	"github.com/toomanyjoshes/terminalchat/internal/store"
	apperrors "github.com/toomanyjoshes/terminalchat/pkg/errors"
	"github.com/toomanyjoshes/terminalchat/pkg/logger"
)

// Package-level collaborators, set once from main before routes are
// registered.
var (
	Stores *store.Stores
	Blobs  storage.BlobStore
)

func Init(s *store.Stores, b storage.BlobStore) {
	Stores = s
	Blobs = b
}

// respondError maps an AppError to its status and message; anything else
// becomes an opaque 500.
func respondError(c *gin.Context, err error) {
	if appErr, ok := err.(*apperrors.AppError); ok {
		c.JSON(appErr.Code, gin.H{"error": appErr.Message})
		return
	}
	logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled handler error")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
}
