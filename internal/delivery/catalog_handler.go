package delivery

import (
	"net/http"
	"strconv"

	"storefront_service/internal/domain"
	"storefront_service/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type CatalogHandler struct {
	useCase usecase.CatalogUseCase
	log     *logrus.Logger
}

func NewCatalogHandler(uc usecase.CatalogUseCase, logger *logrus.Logger) *CatalogHandler {
	return &CatalogHandler{
		useCase: uc,
		log:     logger,
	}
}

func (h *CatalogHandler) RegisterRoutes(router gin.IRouter) {
	catalog := router.Group("/catalog")
	{
		catalog.GET("", h.GetWindow)
		catalog.POST("/retry", h.Retry)
		catalog.GET("/filters", h.GetFilters)
		catalog.PATCH("/filters", h.UpdateFilters)
		catalog.POST("/filters/reset", h.ResetFilters)
		catalog.GET("/suggest", h.Suggest)
	}
}

// GetWindow returns the catalog rows visible at the requested scroll offset,
// pulling in another page from the gateway when the window reaches the end of
// loaded data.
func (h *CatalogHandler) GetWindow(c *gin.Context) {
	scrollTop, ok := h.scrollTop(c)
	if !ok {
		return
	}
	window := h.useCase.Window(c.Request.Context(), scrollTop)
	SuccessResponse(c, http.StatusOK, "Catalog window computed", window)
}

func (h *CatalogHandler) scrollTop(c *gin.Context) (int, bool) {
	raw := c.Query("scroll_top")
	if raw == "" {
		return 0, true
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed < 0 {
		h.log.Warnf("Invalid scroll_top parameter: %s", raw)
		ErrorResponse(c, http.StatusBadRequest, "Invalid scroll_top parameter")
		return 0, false
	}
	return parsed, true
}

// Retry forces another page load after a failed fetch and returns the
// recomputed window.
func (h *CatalogHandler) Retry(c *gin.Context) {
	scrollTop, ok := h.scrollTop(c)
	if !ok {
		return
	}
	window := h.useCase.Retry(c.Request.Context(), scrollTop)
	SuccessResponse(c, http.StatusOK, "Catalog reload attempted", window)
}

func (h *CatalogHandler) GetFilters(c *gin.Context) {
	SuccessResponse(c, http.StatusOK, "Current filters", h.useCase.Filters())
}

func (h *CatalogHandler) UpdateFilters(c *gin.Context) {
	var patch domain.FilterPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		h.log.Errorf("Failed to bind JSON for filter update: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	updated := h.useCase.UpdateFilters(patch)
	SuccessResponse(c, http.StatusOK, "Filters updated", updated)
}

func (h *CatalogHandler) ResetFilters(c *gin.Context) {
	SuccessResponse(c, http.StatusOK, "Filters reset", h.useCase.ResetFilters())
}

func (h *CatalogHandler) Suggest(c *gin.Context) {
	query := c.Query("q")

	suggestions, err := h.useCase.Suggest(c.Request.Context(), query)
	if err != nil {
		h.log.Warnf("Failed to fetch suggestions for %q: %v", query, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to fetch suggestions")
		return
	}

	SuccessResponse(c, http.StatusOK, "Suggestions retrieved", suggestions)
}
