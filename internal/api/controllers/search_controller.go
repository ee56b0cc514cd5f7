package controllers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"nearbite/internal/models/request_models"
	"nearbite/internal/services"
	"nearbite/pkg/utils"
)

type SearchController struct {
	searchService  services.SearchServiceInterface
	resolveService services.ResolveServiceInterface
	logger         *slog.Logger
}

func NewSearchController(
	searchService services.SearchServiceInterface,
	resolveService services.ResolveServiceInterface,
	logger *slog.Logger) *SearchController {
	return &SearchController{
		searchService:  searchService,
		resolveService: resolveService,
		logger:         logger,
	}
}

// Search godoc
// @Summary Search nearby dining places
// @Description Collects nearby places, attaches travel time from the origin, then sorts, filters and paginates
// @Tags Search
// @Accept json
// @Produce json
// @Param request body request_models.SearchRequest true "Search request"
// @Success 200 {object} response_models.SearchResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 502 {object} utils.APIResponse
// @Router /api/search [post]
func (s *SearchController) Search(c *gin.Context) {
	var req request_models.SearchRequest
	if verr := utils.BindJSON(c, &req); verr != nil {
		utils.RespondValidationError(c, verr)
		return
	}

	resp, err := s.searchService.Search(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, s.logger, "search", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Resolve godoc
// @Summary Resolve a place name to a coordinate
// @Tags Search
// @Produce json
// @Param q query string true "Place name" minlength(2) maxlength(100)
// @Success 200 {object} response_models.ResolveResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 502 {object} utils.APIResponse
// @Router /api/resolve [get]
func (s *SearchController) Resolve(c *gin.Context) {
	var req request_models.ResolveRequest
	if verr := utils.BindQuery(c, &req); verr != nil {
		utils.RespondValidationError(c, verr)
		return
	}

	resp, err := s.resolveService.Resolve(c.Request.Context(), req.Query)
	if err != nil {
		utils.HandleServiceError(c, s.logger, "resolve", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *SearchController) Health(c *gin.Context) {
	utils.RespondSuccess(c, gin.H{"ok": true}, "healthy")
}
