package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/acacia-hms/service-frontdesk/internal/application"
	"github.com/acacia-hms/service-frontdesk/internal/platform/auth"
	"github.com/acacia-hms/service-frontdesk/internal/platform/middleware"
	"github.com/acacia-hms/service-frontdesk/internal/platform/response"
)

// GuestHandler handles HTTP requests for guest registry operations.
type GuestHandler struct {
	service *application.GuestService
}

// NewGuestHandler creates a new GuestHandler.
func NewGuestHandler(service *application.GuestService) *GuestHandler {
	return &GuestHandler{service: service}
}

// RegisterRoutes registers all guest routes on the given router group.
func (h *GuestHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)
	frontDesk := middleware.RequireRole(auth.RoleAdmin, auth.RoleReceptionist)
	adminOnly := middleware.RequireRole(auth.RoleAdmin)

	guests := r.Group("/api/v1/guests")
	guests.Use(authMW)
	{
		guests.POST("", frontDesk, h.RegisterGuest)
		guests.GET("", frontDesk, h.SearchGuests)
		guests.GET("/:id", h.GetGuest)
		guests.PUT("/:id", frontDesk, h.UpdateGuest)
		guests.DELETE("/:id", adminOnly, h.DeleteGuest)
	}
}

// RegisterGuest handles POST /api/v1/guests.
func (h *GuestHandler) RegisterGuest(c *gin.Context) {
	var req application.RegisterGuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.RegisterGuest(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// SearchGuests handles GET /api/v1/guests.
func (h *GuestHandler) SearchGuests(c *gin.Context) {
	page, limit := parsePagination(c)

	result, err := h.service.SearchGuests(c.Request.Context(), c.Query("search"), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// GetGuest handles GET /api/v1/guests/:id.
func (h *GuestHandler) GetGuest(c *gin.Context) {
	guestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid guest ID")
		return
	}

	result, err := h.service.GetGuest(c.Request.Context(), guestID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// UpdateGuest handles PUT /api/v1/guests/:id.
func (h *GuestHandler) UpdateGuest(c *gin.Context) {
	guestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid guest ID")
		return
	}

	var req application.UpdateGuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.UpdateGuest(c.Request.Context(), guestID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// DeleteGuest handles DELETE /api/v1/guests/:id.
func (h *GuestHandler) DeleteGuest(c *gin.Context) {
	guestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid guest ID")
		return
	}

	if err := h.service.DeleteGuest(c.Request.Context(), guestID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
