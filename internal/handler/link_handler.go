package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Zfocc31/mern-url-shortener/internal/domain"
	"github.com/Zfocc31/mern-url-shortener/internal/service"
	"github.com/Zfocc31/mern-url-shortener/pkg/logger"
)

// LinkHandler handles HTTP requests for link operations
type LinkHandler struct {
	service service.LinkService
	logger  *logger.Logger
}

// NewLinkHandler creates a new link handler with dependencies
func NewLinkHandler(service service.LinkService, logger *logger.Logger) *LinkHandler {
	return &LinkHandler{
		service: service,
		logger:  logger,
	}
}

// Shorten handles POST /shorten
// Returns the full link record; 201 when a record was created,
// 200 when the URL was already shortened (dedup path)
func (h *LinkHandler) Shorten(c *gin.Context) {
	var req domain.ShortenRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid shorten request", "error", err)
		c.JSON(http.StatusBadRequest, domain.ErrorResponse{
			Error:   "invalid_request",
			Message: "originalUrl is required",
			Code:    http.StatusBadRequest,
		})
		return
	}

	link, created, err := h.service.Shorten(c.Request.Context(), req.OriginalURL)
	if err != nil {
		h.handleError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, link)
}

// Redirect handles GET /:shortCode
// Issues a 302 so every resolution reaches the server and is counted
func (h *LinkHandler) Redirect(c *gin.Context) {
	shortCode := c.Param("shortCode")

	originalURL, err := h.service.Resolve(c.Request.Context(), shortCode)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Redirect(http.StatusFound, originalURL)
}

// List handles GET /api/urls
// Returns all link records, newest first
func (h *LinkHandler) List(c *gin.Context) {
	links, err := h.service.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, links)
}

// handleError processes domain errors and returns appropriate HTTP responses
func (h *LinkHandler) handleError(c *gin.Context, err error) {
	var appErr *domain.AppError

	switch {
	case errors.As(err, &appErr):
		// Log internal errors but don't expose details to clients
		if appErr.Internal {
			h.logger.Error("Internal server error", "error", appErr.Err)
			c.JSON(appErr.StatusCode, domain.ErrorResponse{
				Error:   "internal_error",
				Message: "An internal error occurred",
				Code:    appErr.StatusCode,
			})
		} else {
			c.JSON(appErr.StatusCode, domain.ErrorResponse{
				Error:   "client_error",
				Message: appErr.Message,
				Code:    appErr.StatusCode,
			})
		}

	case errors.Is(err, domain.ErrLinkNotFound):
		c.JSON(http.StatusNotFound, domain.ErrorResponse{
			Error:   "URL not found",
			Message: "No link exists for this short code",
			Code:    http.StatusNotFound,
		})

	case errors.Is(err, domain.ErrStoreUnavailable):
		c.JSON(http.StatusServiceUnavailable, domain.ErrorResponse{
			Error:   "store_unavailable",
			Message: "The link store is temporarily unavailable",
			Code:    http.StatusServiceUnavailable,
		})

	default:
		h.logger.Error("Unexpected error", "error", err)
		c.JSON(http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "internal_error",
			Message: "An unexpected error occurred",
			Code:    http.StatusInternalServerError,
		})
	}
}
