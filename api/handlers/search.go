package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ananyarao/notescout/logger"
	"github.com/ananyarao/notescout/services/history"
	"github.com/ananyarao/notescout/services/search"
	"github.com/ananyarao/notescout/validation"
)

const defaultResultsPerPage = 20

type SearchRequest struct {
	Path         string   `form:"path" validate:"required,valid_path"`
	Query        string   `form:"query" validate:"required,valid_query,min=1,max=1000"`
	Type         string   `form:"type" validate:"omitempty,oneof=literal wildcard advanced"`
	Mode         string   `form:"mode" validate:"omitempty,oneof=content filenames"`
	Block        string   `form:"block" validate:"omitempty,oneof=entire-file file-lines"`
	IgnoredPaths []string `form:"ignored_paths" validate:"valid_patterns,max=100"`
	PerPage      int      `form:"per_page" validate:"min=0,max=100"`
	Page         int      `form:"page" validate:"min=0"`
}

func (r *SearchRequest) setDefaults() {
	if r.PerPage == 0 {
		r.PerPage = defaultResultsPerPage
	}

	if r.Page == 0 {
		r.Page = 1
	}
}

func (r *SearchRequest) toEngineRequest() search.Request {
	return search.Request{
		Path:         r.Path,
		Query:        r.Query,
		Type:         search.Type(r.Type),
		Mode:         search.Mode(r.Mode),
		Block:        search.Block(r.Block),
		IgnoredPaths: r.IgnoredPaths,
	}
}

type SearchResponse struct {
	Results     []search.Result `json:"results"`
	PageDetails Pagination      `json:"page_details"`
}

func SetupSearch(router *gin.Engine, logger logger.Logger, engine *search.Service, historyService *history.Service, validator *validation.Validator) {
	router.GET("/search", handleSearch(engine, historyService, logger, validator))

}

func handleSearch(engine *search.Service, historyService *history.Service, logger logger.Logger, validator *validation.Validator) gin.HandlerFunc {
	return func(c *gin.Context) {
		request := SearchRequest{}
		if err := c.ShouldBindQuery(&request); err != nil {
			logger.Warn("could not extract expected params from search request", "err", err.Error())
			c.Abort()
			writeResponse(c, nil, http.StatusUnprocessableEntity, []string{"failed to extract request parameters"})
			return
		}
		request.setDefaults()

		if err := validator.Validate(request); err != nil {
			logger.Warn("could not validate search request", "err", err.Error())
			c.Abort()
			writeResponse(c, nil, http.StatusNotAcceptable, []string{err.Error()})
			return
		}

		engineRequest := request.toEngineRequest()
		started := time.Now()
		results, err := engine.Search(c.Request.Context(), engineRequest)
		if err != nil {
			logger.Error("search failed", "err", err.Error())
			c.Abort()
			writeResponse(c, nil, http.StatusInternalServerError, []string{err.Error()})
			return
		}

		historyService.Record(engineRequest, len(results), time.Since(started))

		limit := request.PerPage
		offset := (request.Page - 1) * request.PerPage

		searchResponse := SearchResponse{
			Results:     pageSlice(results, limit, offset),
			PageDetails: calculatePagination(len(results), limit, offset),
		}

		writeResponse(c, searchResponse, http.StatusOK, nil)
	}
}
