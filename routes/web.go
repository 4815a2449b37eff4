package routes

import (
	"github.com/gin-gonic/gin"
)

// SetupWebRoutes thiết lập web routes
func SetupWebRoutes(router *gin.Engine) {
	web := router.Group("/")
	{
		// Home page
		web.GET("/", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"message": "Housing Pricer Service",
				"version": "1.0.0",
				"docs":    "/docs",
			})
		})

		// API documentation
		web.GET("/docs", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"api": "Housing Pricer API v1",
				"endpoints": map[string]string{
					"models":            "GET /v1/models",
					"model_info":        "GET /v1/models/:name",
					"predict":           "POST /v1/predict",
					"parse":             "POST /v1/parse",
					"parse_and_predict": "POST /v1/parse-and-predict",
					"health":            "GET /v1/health",
				},
			})
		})
	}
}
