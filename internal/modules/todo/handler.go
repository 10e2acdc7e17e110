package todo

import (
	"errors"
	"net/http"

	"apibasics/internal/middleware"
	"apibasics/internal/pkg/render"
	"apibasics/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/todos", h.Create)
	rg.GET("/todos", h.List)
	rg.GET("/todos/:id", h.Get)
	rg.PUT("/todos/:id", h.Update)
	rg.DELETE("/todos/:id", h.Delete)
}

func (h *Handler) Create(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "title is required")
		return
	}

	t, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "title is required")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create todo")
		return
	}

	c.JSON(http.StatusCreated, t)
}

func (h *Handler) List(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	todos, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list todos")
		return
	}

	render.Negotiated(c, http.StatusOK, todos)
}

func (h *Handler) Get(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	id, ok := todoID(c)
	if !ok {
		return
	}

	t, err := h.service.Get(c.Request.Context(), id, userID)
	if err != nil {
		if errors.Is(err, ErrTodoNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Todo not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load todo")
		return
	}

	render.Negotiated(c, http.StatusOK, t)
}

func (h *Handler) Update(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	id, ok := todoID(c)
	if !ok {
		return
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	t, err := h.service.Update(c.Request.Context(), id, userID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "title must not be empty")
		case errors.Is(err, ErrTodoNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Todo not found")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update todo")
		}
		return
	}

	c.JSON(http.StatusOK, t)
}

func (h *Handler) Delete(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	id, ok := todoID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, userID); err != nil {
		if errors.Is(err, ErrTodoNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Todo not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete todo")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Todo deleted",
	})
}

// todoID validates the path parameter before any lookup happens. A
// malformed id is a 400, not a 404.
func todoID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Todo id must be a UUID")
		return "", false
	}
	return id, true
}
