package handlers

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Omkar2k5/Dynamic-Traffic-Route-Optimization-sub000/internal/config"
)

// NewRouter wires the HTTP routes.
func NewRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if len(cfg.Server.CorsOrigins) == 1 && cfg.Server.CorsOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.Server.CorsOrigins
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", handler.Health)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/cameras", handler.ListCameras)
		v1.GET("/cameras/:id", handler.GetCamera)
		v1.POST("/routes/suggest", handler.SuggestRoutes)
		v1.GET("/routes/bypasses", handler.Bypasses)
		v1.GET("/time-status", handler.TimeStatus)
	}

	return router
}
