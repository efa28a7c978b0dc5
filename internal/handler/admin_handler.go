package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/roomfinder/service-rooms/internal/application"
	"github.com/roomfinder/service-rooms/internal/platform/middleware"
	"github.com/roomfinder/service-rooms/internal/platform/response"
)

// AdminHandler handles staff-only HTTP requests: booking decisions, the dashboard
// and account administration.
type AdminHandler struct {
	bookings  *application.BookingService
	accounts  *application.AccountService
	dashboard *application.DashboardService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(
	bookings *application.BookingService,
	accounts *application.AccountService,
	dashboard *application.DashboardService,
) *AdminHandler {
	return &AdminHandler{bookings: bookings, accounts: accounts, dashboard: dashboard}
}

// RegisterRoutes registers admin routes.
func (h *AdminHandler) RegisterRoutes(r *gin.RouterGroup, authMW gin.HandlerFunc) {
	staffOnly := middleware.RequirePrivileged()

	admin := r.Group("/api/v1/admin")
	admin.Use(authMW, staffOnly)
	{
		admin.GET("/bookings", h.ListBookings)
		admin.POST("/bookings/:id/approve", h.ApproveBooking)
		admin.POST("/bookings/:id/reject", h.RejectBooking)
		admin.GET("/dashboard", h.Dashboard)
		admin.DELETE("/users/:id", h.RemoveUser)
		admin.PUT("/users/:id/privileges", h.SetPrivileges)
	}
}

// ListBookings handles GET /api/v1/admin/bookings.
func (h *AdminHandler) ListBookings(c *gin.Context) {
	status, err := parseStatus(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	page, limit := parsePagination(c)
	result, err := h.bookings.ListAllBookings(c.Request.Context(), status, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// ApproveBooking handles POST /api/v1/admin/bookings/:id/approve.
func (h *AdminHandler) ApproveBooking(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking ID")
		return
	}

	actor, _ := middleware.GetActor(c)
	result, err := h.bookings.ApproveBooking(c.Request.Context(), actor, bookingID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// RejectBooking handles POST /api/v1/admin/bookings/:id/reject.
func (h *AdminHandler) RejectBooking(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking ID")
		return
	}

	actor, _ := middleware.GetActor(c)
	result, err := h.bookings.RejectBooking(c.Request.Context(), actor, bookingID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Dashboard handles GET /api/v1/admin/dashboard.
func (h *AdminHandler) Dashboard(c *gin.Context) {
	summary, err := h.dashboard.Summary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, summary)
}

// RemoveUser handles DELETE /api/v1/admin/users/:id.
func (h *AdminHandler) RemoveUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid user ID")
		return
	}

	actor, _ := middleware.GetActor(c)
	if err := h.accounts.RemoveUser(c.Request.Context(), actor, userID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// SetPrivileges handles PUT /api/v1/admin/users/:id/privileges.
func (h *AdminHandler) SetPrivileges(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid user ID")
		return
	}

	var req application.SetPrivilegesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	actor, _ := middleware.GetActor(c)
	result, err := h.accounts.SetPrivileges(c.Request.Context(), actor, userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
