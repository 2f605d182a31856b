package delivery

import (
	"io"
	"net/http"
	"strconv"

	"storefront_service/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type ProductHandler struct {
	useCase usecase.ProductUseCase
	log     *logrus.Logger
}

func NewProductHandler(uc usecase.ProductUseCase, logger *logrus.Logger) *ProductHandler {
	return &ProductHandler{
		useCase: uc,
		log:     logger,
	}
}

func (h *ProductHandler) RegisterRoutes(router gin.IRouter) {
	products := router.Group("/products")
	{
		products.GET("/:id", h.GetDetail)
		products.POST("/:id/rate", h.Rate)
		products.GET("/:id/availability", h.GetAvailability)
		products.GET("/:id/availability/stream", h.StreamAvailability)
	}
}

type rateRequest struct {
	Rating *float64 `json:"rating" binding:"required,gte=0,lte=5"`
}

func (h *ProductHandler) GetDetail(c *gin.Context) {
	id, ok := h.productID(c)
	if !ok {
		return
	}

	detail, err := h.useCase.Detail(c.Request.Context(), id)
	if err != nil {
		h.log.Warnf("Failed to get product detail for ID %d: %v", id, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to retrieve product: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Product retrieved successfully", detail)
}

func (h *ProductHandler) Rate(c *gin.Context) {
	id, ok := h.productID(c)
	if !ok {
		return
	}

	var req rateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Errorf("Failed to bind JSON for rating product ID %d: %v", id, err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	product, err := h.useCase.Rate(c.Request.Context(), id, *req.Rating)
	if err != nil {
		h.log.Warnf("Failed to rate product ID %d: %v", id, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to rate product: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Product rated successfully", product)
}

func (h *ProductHandler) GetAvailability(c *gin.Context) {
	id, ok := h.productID(c)
	if !ok {
		return
	}

	available := h.useCase.CheckAvailability(c.Request.Context(), id)
	SuccessResponse(c, http.StatusOK, "Availability checked", gin.H{
		"product_id": id,
		"available":  available,
	})
}

// StreamAvailability sends availability updates as server-sent events for as
// long as the client keeps the connection open. Closing the connection
// cancels the request context, which stops the poll loop.
func (h *ProductHandler) StreamAvailability(c *gin.Context) {
	id, ok := h.productID(c)
	if !ok {
		return
	}

	updates := h.useCase.WatchAvailability(c.Request.Context(), id)

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	h.log.Infof("Availability stream opened for product ID %d", id)
	c.Stream(func(w io.Writer) bool {
		available, open := <-updates
		if !open {
			h.log.Infof("Availability stream closed for product ID %d", id)
			return false
		}
		c.SSEvent("availability", gin.H{
			"product_id": id,
			"available":  available,
		})
		return true
	})
}

func (h *ProductHandler) productID(c *gin.Context) (int, bool) {
	idStr := c.Param("id")
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		h.log.Warnf("Invalid product ID parameter: %s", idStr)
		ErrorResponse(c, http.StatusBadRequest, "Invalid product ID format")
		return 0, false
	}
	return id, true
}
