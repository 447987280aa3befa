package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/toomanyjoshes/terminalchat/internal/config"
)

func CORSMiddleware() gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if config.AppConfig != nil && config.AppConfig.FrontendURL != "" {
		cfg.AllowOrigins = []string{config.AppConfig.FrontendURL}
	} else {
		cfg.AllowAllOrigins = true
	}
	return cors.New(cfg)
}
