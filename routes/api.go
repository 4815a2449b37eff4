package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/housing-pricer/app/controllers"
)

// SetupAPIRoutes thiết lập tất cả API routes
func SetupAPIRoutes(router *gin.Engine, predictController *controllers.PredictController, adminController *controllers.AdminController) {
	// API v1 group
	v1 := router.Group("/v1")
	{
		// Model routes
		v1.GET("/models", predictController.ListModels)
		v1.GET("/models/:name", predictController.GetModel)

		// Prediction routes
		v1.POST("/predict", predictController.Predict)
		v1.POST("/parse", predictController.ParseText)
		v1.POST("/parse-and-predict", predictController.ParseAndPredict)

		// Admin routes
		admin := v1.Group("/admin")
		{
			admin.GET("/stats", adminController.GetStats)
			admin.POST("/cache/invalidate", adminController.InvalidateCache)
			admin.GET("/history", adminController.GetHistory)
		}

		// Health check route
		v1.GET("/health", predictController.HealthCheck)
	}
}

// SetupHealthRoutes thiết lập health check routes
func SetupHealthRoutes(router *gin.Engine, predictController *controllers.PredictController) {
	// Root health check
	router.GET("/health", predictController.HealthCheck)

	// Readiness check
	router.GET("/ready", predictController.HealthCheck)

	// Liveness check
	router.GET("/live", predictController.HealthCheck)
}
