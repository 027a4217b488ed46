package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/citypulse/crimes-backend-go/internal/config"
	"github.com/citypulse/crimes-backend-go/internal/handler"
	"github.com/citypulse/crimes-backend-go/internal/middleware"
	"github.com/citypulse/crimes-backend-go/internal/service"
)

// SetupRouter builds the HTTP router for the dashboard query API.
func SetupRouter(cfg *config.Config, logger zerolog.Logger, crimeService *service.CrimeService) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestLogger(logger))
	r.Use(gin.Recovery())

	// CORS: the dashboard front-end is served from a different origin
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Crimes Backend API is running",
		})
	})

	crimeHandler := handler.NewCrimeHandler(crimeService)

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimit(120, time.Minute))
	if cfg.JWTSecret != "" {
		api.Use(middleware.Auth(cfg.JWTSecret))
	}
	{
		crimes := api.Group("/crimes")
		{
			crimes.GET("/options", crimeHandler.GetOptions)
			crimes.GET("/summary", crimeHandler.GetSummary)
			crimes.GET("/by-type", crimeHandler.GetCountByType)
			crimes.GET("/by-district", crimeHandler.GetCountByDistrict)
			crimes.GET("/count-by/:dimension", crimeHandler.GetCountBy)
			crimes.GET("/cross-by/:dimension/:subdimension", crimeHandler.GetCrossBy)
			crimes.GET("/trend", crimeHandler.GetTrend)
			crimes.GET("/by-hour", crimeHandler.GetByHour)
			crimes.GET("/by-weekday", crimeHandler.GetByWeekday)
			crimes.GET("/type-location", crimeHandler.GetTypeLocation)
			crimes.GET("/arrest-rate", crimeHandler.GetArrestRate)
			crimes.GET("/spatial/points", crimeHandler.GetSpatialPoints)
			crimes.GET("/spatial/heatmap", crimeHandler.GetHeatmap)
			crimes.GET("/preview", crimeHandler.GetPreview)
		}
	}

	return r
}
