package restapi

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRouter builds the gin engine with the command, portfolio and ops endpoints.
func SetupRouter(commandHandler *CommandHandler, portfolioHandler *PortfolioHandler, allowedOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	corsCfg := cors.DefaultConfig()
	if len(allowedOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = allowedOrigins
	}
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.POST("/commands", commandHandler.PostCommandHandler)
		v1.GET("/portfolio/:identifier", portfolioHandler.GetPortfolioHandler)
		v1.GET("/portfolio/:identifier/chart", portfolioHandler.GetPortfolioChartHandler)
	}

	return router
}
