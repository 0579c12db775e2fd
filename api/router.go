package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ananyarao/notescout/api/handlers"
	"github.com/ananyarao/notescout/logger"
	"github.com/ananyarao/notescout/services/history"
	"github.com/ananyarao/notescout/services/search"
	"github.com/ananyarao/notescout/validation"
)

func setupRoutes(router *gin.Engine, logger logger.Logger, engine *search.Service, historyService *history.Service, validator *validation.Validator) {
	router.GET("/health", health())

	handlers.SetupSearch(router, logger, engine, historyService, validator)
	handlers.SetupHistory(router, logger, historyService, validator)

}

func health() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	}
}

func newRouter() *gin.Engine {
	router := gin.Default()
	router.UseRawPath = true
	router.Use(_CORSMiddleware())
	router.Use(gin.Recovery())

	return router
}
