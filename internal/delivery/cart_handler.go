package delivery

import (
	"net/http"
	"strconv"

	"storefront_service/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type CartHandler struct {
	useCase usecase.CartUseCase
	log     *logrus.Logger
}

func NewCartHandler(uc usecase.CartUseCase, logger *logrus.Logger) *CartHandler {
	return &CartHandler{
		useCase: uc,
		log:     logger,
	}
}

func (h *CartHandler) RegisterRoutes(router gin.IRouter) {
	cart := router.Group("/cart")
	{
		cart.GET("", h.GetCart)
		cart.POST("/items", h.AddItem)
		cart.PATCH("/items/:id", h.UpdateItem)
		cart.DELETE("/items/:id", h.RemoveItem)
	}
}

type addItemRequest struct {
	ProductID int `json:"product_id" binding:"required,gt=0"`
}

type updateItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

func (h *CartHandler) GetCart(c *gin.Context) {
	SuccessResponse(c, http.StatusOK, "Cart retrieved successfully", h.useCase.Cart())
}

func (h *CartHandler) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Errorf("Failed to bind JSON for add to cart: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	cart, err := h.useCase.Add(c.Request.Context(), req.ProductID)
	if err != nil {
		h.log.Warnf("Failed to add product %d to cart: %v", req.ProductID, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to add product to cart: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Product added to cart", cart)
}

func (h *CartHandler) UpdateItem(c *gin.Context) {
	id, ok := h.lineProductID(c)
	if !ok {
		return
	}

	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Errorf("Failed to bind JSON for cart update of product %d: %v", id, err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	cart, err := h.useCase.UpdateQuantity(c.Request.Context(), id, *req.Quantity)
	if err != nil {
		h.log.Warnf("Failed to update quantity for product %d: %v", id, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to update cart: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Cart updated successfully", cart)
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	id, ok := h.lineProductID(c)
	if !ok {
		return
	}

	cart, err := h.useCase.Remove(c.Request.Context(), id)
	if err != nil {
		h.log.Warnf("Failed to remove product %d from cart: %v", id, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to remove product from cart: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Product removed from cart", cart)
}

func (h *CartHandler) lineProductID(c *gin.Context) (int, bool) {
	idStr := c.Param("id")
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		h.log.Warnf("Invalid cart product ID parameter: %s", idStr)
		ErrorResponse(c, http.StatusBadRequest, "Invalid product ID format")
		return 0, false
	}
	return id, true
}
