package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/acacia-hms/service-frontdesk/internal/application"
	"github.com/acacia-hms/service-frontdesk/internal/platform/auth"
	"github.com/acacia-hms/service-frontdesk/internal/platform/middleware"
	"github.com/acacia-hms/service-frontdesk/internal/platform/response"
)

// BillingHandler handles HTTP requests for invoices and revenue reports.
type BillingHandler struct {
	service *application.BillingService
}

// NewBillingHandler creates a new BillingHandler.
func NewBillingHandler(service *application.BillingService) *BillingHandler {
	return &BillingHandler{service: service}
}

// RegisterRoutes registers all billing routes on the given router group.
func (h *BillingHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)
	frontDesk := middleware.RequireRole(auth.RoleAdmin, auth.RoleReceptionist)

	billing := r.Group("/api/v1/bookings/:id")
	billing.Use(authMW)
	{
		billing.GET("/invoice", h.GetInvoice)
		billing.GET("/payments", frontDesk, h.ListPayments)
	}

	reports := r.Group("/api/v1/reports")
	reports.Use(authMW, middleware.RequireRole(auth.RoleAdmin))
	{
		reports.GET("/revenue", h.GetRevenueReport)
	}
}

// GetInvoice handles GET /api/v1/bookings/:id/invoice.
func (h *BillingHandler) GetInvoice(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking ID")
		return
	}

	result, err := h.service.GetInvoice(c.Request.Context(), bookingID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ListPayments handles GET /api/v1/bookings/:id/payments.
func (h *BillingHandler) ListPayments(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking ID")
		return
	}

	result, err := h.service.ListPayments(c.Request.Context(), bookingID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetRevenueReport handles GET /api/v1/reports/revenue. Defaults to the last
// 30 days when no period is given.
func (h *BillingHandler) GetRevenueReport(c *gin.Context) {
	to := time.Now().UTC()
	from := to.AddDate(0, 0, -30)

	if v := c.Query("from"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			response.BadRequest(c, "invalid from timestamp, expected RFC3339")
			return
		}
		from = parsed
	}
	if v := c.Query("to"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			response.BadRequest(c, "invalid to timestamp, expected RFC3339")
			return
		}
		to = parsed
	}

	result, err := h.service.GetRevenueReport(c.Request.Context(), from, to)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
