package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/toomanyjoshes/terminalchat/internal/database"
	"github.com/toomanyjoshes/terminalchat/internal/models"
	"github.com/toomanyjoshes/terminalchat/pkg/logger"
	"github.com/toomanyjoshes/terminalchat/pkg/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type CredentialsInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Signup creates a new account. POST /signup
func Signup(c *gin.Context) {
	var input CredentialsInput
	if err := c.ShouldBindJSON(&input); err != nil || input.Username == "" || input.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password are required"})
		return
	}

	if !utils.ValidateUsername(input.Username) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username must be 3-30 characters and contain only letters, numbers, underscores, or hyphens"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to hash password")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	user := models.User{
		Username: input.Username,
		Password: string(hashedPassword),
	}
	if err := database.DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username already exists"})
			return
		}
		logger.Error().Err(err).Msg("Failed to create user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	logger.Info().Str("username", user.Username).Msg("User registered")

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User created successfully",
	})
}

// Login authenticates a user and issues a session token. POST /login
func Login(c *gin.Context) {
	var input CredentialsInput
	if err := c.ShouldBindJSON(&input); err != nil || input.Username == "" || input.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password are required"})
		return
	}

	var user models.User
	if err := database.DB.First(&user, "username = ?", input.Username).Error; err != nil {
		logger.Warn().Str("username", input.Username).Msg("Login failed: user not found")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		logger.Warn().Str("username", input.Username).Msg("Login failed: invalid password")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}

	token, err := Stores.Sessions.Create(user.Username)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info().Str("username", user.Username).Msg("User logged in")

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
	})
}

// Logout revokes the presented token. Always succeeds: logging out without
// a valid token is a no-op, not an error. POST /logout
func Logout(c *gin.Context) {
	token, exists := c.Get("token")
	if !exists {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Already logged out"})
		return
	}

	if err := Stores.Sessions.Revoke(token.(string)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out successfully"})
}

// DeleteAccount removes the calling user and everything attached to them:
// every conversation log containing the user, every attachment reference
// they sent (with the underlying blobs), every block edge, and every
// active session. DELETE /account
func DeleteAccount(c *gin.Context) {
	username := c.MustGet("username").(string)

	var user models.User
	if err := database.DB.First(&user, "username = ?", username).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if err := database.DB.Delete(&models.User{}, "username = ?", username).Error; err != nil {
		logger.Error().Err(err).Str("username", username).Msg("Failed to delete user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	if err := Stores.Conversations.DeleteAllInvolving(username); err != nil {
		respondError(c, err)
		return
	}

	err := Stores.Attachments.PurgeFor(username, func(id string) {
		if err := Blobs.Delete(c.Request.Context(), id); err != nil {
			logger.Warn().Err(err).Str("attachment_id", id).Msg("Failed to delete blob")
		}
	})
	if err != nil {
		respondError(c, err)
		return
	}

	if err := Stores.Blocks.PurgeFor(username); err != nil {
		respondError(c, err)
		return
	}

	if err := Stores.Sessions.RevokeAllFor(username); err != nil {
		respondError(c, err)
		return
	}

	logger.Info().Str("username", username).Msg("Account deleted")

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Account deleted successfully"})
}
