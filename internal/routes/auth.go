package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/toomanyjoshes/terminalchat/internal/handlers"
	"github.com/toomanyjoshes/terminalchat/internal/middleware"
	"github.com/toomanyjoshes/terminalchat/internal/store"
)

func RegisterAuthRoutes(r gin.IRouter, sessions *store.SessionStore) {
	r.POST("/signup", handlers.Signup)
	r.POST("/login", handlers.Login)
	// Token optional: logging out while already logged out succeeds.
	r.POST("/logout", middleware.OptionalAuthMiddleware(sessions), handlers.Logout)
	r.DELETE("/account", middleware.AuthMiddleware(sessions), handlers.DeleteAccount)
}
