package profile

import (
	"errors"
	"net/http"

	"apibasics/internal/middleware"
	"apibasics/internal/pkg/render"
	"apibasics/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/profile", h.Get)
	rg.PUT("/profile", h.Update)
}

func (h *Handler) Get(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	profile, err := h.service.Get(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Profile not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load profile")
		return
	}

	render.Negotiated(c, http.StatusOK, profile)
}

func (h *Handler) Update(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	profile, err := h.service.Update(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Profile not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update profile")
		return
	}

	c.JSON(http.StatusOK, profile)
}
