package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/toomanyjoshes/terminalchat/internal/database"
	"github.com/toomanyjoshes/terminalchat/internal/models"
)

// ListUsers returns every registered handle except the caller's own.
// GET /users
func ListUsers(c *gin.Context) {
	username := c.MustGet("username").(string)

	var users []models.User
	if err := database.DB.Where("username <> ?", username).Order("username asc").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	list := make([]gin.H, 0, len(users))
	for _, u := range users {
		list = append(list, gin.H{"username": u.Username})
	}

	c.JSON(http.StatusOK, list)
}

// CheckUser reports whether a handle exists. GET /user/:username
func CheckUser(c *gin.Context) {
	target := c.Param("username")

	var count int64
	if err := database.DB.Model(&models.User{}).Where("username = ?", target).Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"exists": count > 0})
}

// userExists is the shared recipient-existence check for send paths.
func userExists(username string) (bool, error) {
	var count int64
	err := database.DB.Model(&models.User{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}
