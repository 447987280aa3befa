package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/toomanyjoshes/terminalchat/internal/handlers"
	"github.com/toomanyjoshes/terminalchat/internal/middleware"
	"github.com/toomanyjoshes/terminalchat/internal/store"
)

func RegisterUserRoutes(r gin.IRouter, sessions *store.SessionStore) {
	auth := middleware.AuthMiddleware(sessions)

	r.GET("/users", auth, handlers.ListUsers)
	r.GET("/user/:username", auth, handlers.CheckUser)
	r.GET("/status", handlers.Status)
}
