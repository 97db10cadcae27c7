package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/acacia-hms/service-frontdesk/internal/application"
	"github.com/acacia-hms/service-frontdesk/internal/platform/auth"
	"github.com/acacia-hms/service-frontdesk/internal/platform/middleware"
	"github.com/acacia-hms/service-frontdesk/internal/platform/response"
)

// AdminHandler handles administrative HTTP endpoints: dashboard statistics,
// the full booking list, and hard deletes.
type AdminHandler struct {
	bookings *application.BookingService
	rooms    *application.RoomService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(bookings *application.BookingService, rooms *application.RoomService) *AdminHandler {
	return &AdminHandler{bookings: bookings, rooms: rooms}
}

// RegisterRoutes registers all admin routes on the given router group.
func (h *AdminHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	admin := r.Group("/api/v1/admin")
	admin.Use(middleware.AuthMiddleware(jwtManager), middleware.RequireRole(auth.RoleAdmin))
	{
		admin.GET("/bookings", h.ListBookings)
		admin.DELETE("/bookings/:id", h.DeleteBooking)
		admin.GET("/stats/bookings", h.GetBookingStats)
		admin.GET("/stats/rooms", h.GetRoomStats)
	}
}

// ListBookings handles GET /api/v1/admin/bookings.
func (h *AdminHandler) ListBookings(c *gin.Context) {
	page, limit := parsePagination(c)

	items, total, err := h.bookings.ListAllBookings(c.Request.Context(), c.Query("status"), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, items, total, page, limit)
}

// DeleteBooking handles DELETE /api/v1/admin/bookings/:id.
func (h *AdminHandler) DeleteBooking(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking ID")
		return
	}

	if err := h.bookings.DeleteBooking(c.Request.Context(), bookingID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// GetBookingStats handles GET /api/v1/admin/stats/bookings.
func (h *AdminHandler) GetBookingStats(c *gin.Context) {
	result, err := h.bookings.GetBookingStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetRoomStats handles GET /api/v1/admin/stats/rooms.
func (h *AdminHandler) GetRoomStats(c *gin.Context) {
	result, err := h.rooms.GetRoomStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
