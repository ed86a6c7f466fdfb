package api

import (
	"net/http"

	_ "vulcan-monitor-go/docs"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (s *Server) setupSwagger() {
	s.router.GET("/api/info", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"title":       "Vulcan Monitor API",
			"version":     "1.0.0",
			"description": "Multi-camera charging-station anomaly monitoring: capture, detection, alert routing and history queries",
			"swagger_ui":  "/docs/index.html",
			"endpoints": gin.H{
				"health":  "/health",
				"system":  "/system",
				"cameras": "/cameras",
				"alerts":  "/alerts",
			},
			"monitor_id": s.config.MonitorID,
			"port":       s.config.Port,
		})
	})

	s.router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	s.router.GET("/docs", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/docs/index.html")
	})
}
