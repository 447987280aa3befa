package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/toomanyjoshes/terminalchat/internal/handlers"
	"github.com/toomanyjoshes/terminalchat/internal/middleware"
	"github.com/toomanyjoshes/terminalchat/internal/store"
)

func RegisterChatRoutes(r gin.IRouter, sessions *store.SessionStore) {
	auth := middleware.AuthMiddleware(sessions)

	messages := r.Group("/messages")
	messages.Use(auth)
	{
		messages.GET("/:peer", handlers.GetMessages)
		messages.POST("/:peer", handlers.SendMessage)
	}

	files := r.Group("/files")
	files.Use(auth)
	{
		files.POST("/:peer", handlers.SendFile)
		files.GET("/:id", handlers.DownloadFile)
	}

	chats := r.Group("/chats")
	chats.Use(auth)
	{
		chats.GET("", handlers.GetChats)
		chats.DELETE("/:peer", handlers.DeleteChat)
	}

	blocked := r.Group("/blocked")
	blocked.Use(auth)
	{
		blocked.GET("/:peer", handlers.CheckBlocked)
		blocked.POST("/:peer", handlers.BlockUser)
		blocked.DELETE("/:peer", handlers.UnblockUser)
	}
}
