package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/acacia-hms/service-frontdesk/internal/application"
	"github.com/acacia-hms/service-frontdesk/internal/platform/auth"
	"github.com/acacia-hms/service-frontdesk/internal/platform/middleware"
	"github.com/acacia-hms/service-frontdesk/internal/platform/response"
)

// HousekeepingHandler handles HTTP requests for housekeeping task operations.
type HousekeepingHandler struct {
	service *application.HousekeepingService
}

// NewHousekeepingHandler creates a new HousekeepingHandler.
func NewHousekeepingHandler(service *application.HousekeepingService) *HousekeepingHandler {
	return &HousekeepingHandler{service: service}
}

// RegisterRoutes registers all housekeeping routes on the given router group.
func (h *HousekeepingHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)
	staff := middleware.RequireRole(auth.RoleAdmin, auth.RoleReceptionist, auth.RoleHousekeeping)
	supervisors := middleware.RequireRole(auth.RoleAdmin, auth.RoleReceptionist)

	tasks := r.Group("/api/v1/housekeeping/tasks")
	tasks.Use(authMW)
	{
		tasks.POST("", supervisors, h.CreateTask)
		tasks.GET("", staff, h.ListTasks)
		tasks.GET("/mine", middleware.RequireRole(auth.RoleHousekeeping), h.ListMyTasks)
		tasks.GET("/:id", staff, h.GetTask)
		tasks.POST("/:id/start", staff, h.StartTask)
		tasks.POST("/:id/complete", staff, h.CompleteTask)
		tasks.POST("/:id/cancel", supervisors, h.CancelTask)
		tasks.PUT("/:id/assignee", supervisors, h.ReassignTask)
	}
}

// taskActor builds the actor for a task transition from the authenticated
// caller. Housekeeping staff are restricted to their own or unassigned
// tasks; admins and receptionists act on any task.
func taskActor(c *gin.Context) application.TaskActor {
	role, _ := middleware.GetUserRole(c)
	userID, _ := middleware.GetUserID(c)
	return application.TaskActor{
		Staff:      userID.String(),
		Restricted: role == auth.RoleHousekeeping,
	}
}

// CreateTask handles POST /api/v1/housekeeping/tasks.
func (h *HousekeepingHandler) CreateTask(c *gin.Context) {
	var req application.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateTask(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// ListTasks handles GET /api/v1/housekeeping/tasks.
func (h *HousekeepingHandler) ListTasks(c *gin.Context) {
	page, limit := parsePagination(c)

	result, err := h.service.ListTasks(c.Request.Context(), c.Query("status"), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// ListMyTasks handles GET /api/v1/housekeeping/tasks/mine.
func (h *HousekeepingHandler) ListMyTasks(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	page, limit := parsePagination(c)

	result, err := h.service.ListTasksByAssignee(c.Request.Context(), userID.String(), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// GetTask handles GET /api/v1/housekeeping/tasks/:id.
func (h *HousekeepingHandler) GetTask(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid task ID")
		return
	}

	result, err := h.service.GetTask(c.Request.Context(), taskID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// StartTask handles POST /api/v1/housekeeping/tasks/:id/start.
func (h *HousekeepingHandler) StartTask(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid task ID")
		return
	}

	result, err := h.service.StartTask(c.Request.Context(), taskID, taskActor(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// CompleteTask handles POST /api/v1/housekeeping/tasks/:id/complete.
func (h *HousekeepingHandler) CompleteTask(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid task ID")
		return
	}

	result, err := h.service.CompleteTask(c.Request.Context(), taskID, taskActor(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// CancelTask handles POST /api/v1/housekeeping/tasks/:id/cancel.
func (h *HousekeepingHandler) CancelTask(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid task ID")
		return
	}

	result, err := h.service.CancelTask(c.Request.Context(), taskID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ReassignTask handles PUT /api/v1/housekeeping/tasks/:id/assignee.
func (h *HousekeepingHandler) ReassignTask(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid task ID")
		return
	}

	var body struct {
		AssignedTo string `json:"assigned_to" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.ReassignTask(c.Request.Context(), taskID, body.AssignedTo)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
