package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ananyarao/notescout/db/historydb"
	"github.com/ananyarao/notescout/logger"
	"github.com/ananyarao/notescout/services/history"
	"github.com/ananyarao/notescout/validation"
)

const defaultHistoryResults = 50

type HistoryRequest struct {
	Limit int `form:"limit" validate:"min=0,max=500"`
}

type HistoryResponse struct {
	Entries []historydb.Entry `json:"entries"`
}

func SetupHistory(router *gin.Engine, logger logger.Logger, historyService *history.Service, validator *validation.Validator) {
	router.GET("/history", handleGetHistory(historyService, logger, validator))
	router.DELETE("/history", handleClearHistory(historyService, logger))

}

func handleGetHistory(historyService *history.Service, logger logger.Logger, validator *validation.Validator) gin.HandlerFunc {
	return func(c *gin.Context) {
		request := HistoryRequest{}
		if err := c.ShouldBindQuery(&request); err != nil {
			logger.Warn("could not extract expected params from history request", "err", err.Error())
			c.Abort()
			writeResponse(c, nil, http.StatusUnprocessableEntity, []string{"failed to extract request parameters"})
			return
		}
		if request.Limit == 0 {
			request.Limit = defaultHistoryResults
		}

		if err := validator.Validate(request); err != nil {
			logger.Warn("could not validate history request", "err", err.Error())
			c.Abort()
			writeResponse(c, nil, http.StatusNotAcceptable, []string{err.Error()})
			return
		}

		entries, err := historyService.Recent(request.Limit)
		if err != nil {
			logger.Error("failed to fetch search history", "err", err.Error())
			c.Abort()
			writeResponse(c, nil, http.StatusInternalServerError, []string{err.Error()})
			return
		}

		if entries == nil {
			entries = []historydb.Entry{}
		}

		writeResponse(c, HistoryResponse{Entries: entries}, http.StatusOK, nil)
	}
}

func handleClearHistory(historyService *history.Service, logger logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := historyService.Clear(); err != nil {
			logger.Error("failed to clear search history", "err", err.Error())
			c.Abort()
			writeResponse(c, nil, http.StatusInternalServerError, []string{err.Error()})
			return
		}

		writeResponse(c, nil, http.StatusNoContent, nil)
	}
}
