package delivery

import (
	"net/http"

	"storefront_service/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type ThemeHandler struct {
	repo repository.ThemeRepository
	log  *logrus.Logger
}

func NewThemeHandler(repo repository.ThemeRepository, logger *logrus.Logger) *ThemeHandler {
	return &ThemeHandler{
		repo: repo,
		log:  logger,
	}
}

func (h *ThemeHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/theme", h.GetTheme)
	router.PUT("/theme", h.SetTheme)
}

type themeRequest struct {
	DarkMode *bool `json:"dark_mode" binding:"required"`
}

func (h *ThemeHandler) GetTheme(c *gin.Context) {
	pref, err := h.repo.Get()
	if err != nil {
		h.log.Errorf("Failed to read theme preference: %v", err)
		ErrorResponse(c, http.StatusInternalServerError, "Failed to read theme preference")
		return
	}
	SuccessResponse(c, http.StatusOK, "Theme preference retrieved", pref)
}

func (h *ThemeHandler) SetTheme(c *gin.Context) {
	var req themeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Errorf("Failed to bind JSON for theme update: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	pref := repository.ThemePreference{DarkMode: *req.DarkMode}
	if err := h.repo.Set(pref); err != nil {
		h.log.Errorf("Failed to store theme preference: %v", err)
		ErrorResponse(c, http.StatusInternalServerError, "Failed to store theme preference")
		return
	}

	SuccessResponse(c, http.StatusOK, "Theme preference updated", pref)
}
