package handler

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/roomfinder/service-rooms/internal/application"
	"github.com/roomfinder/service-rooms/internal/platform/middleware"
	"github.com/roomfinder/service-rooms/internal/platform/response"
)

// AccountHandler handles registration, login and the current-user endpoint.
type AccountHandler struct {
	service *application.AccountService
	limiter *rate.Limiter
}

// NewAccountHandler creates a new AccountHandler. limiter throttles the
// credential endpoints; nil disables throttling.
func NewAccountHandler(service *application.AccountService, limiter *rate.Limiter) *AccountHandler {
	return &AccountHandler{service: service, limiter: limiter}
}

// RegisterRoutes registers all account routes.
func (h *AccountHandler) RegisterRoutes(r *gin.RouterGroup, authMW gin.HandlerFunc) {
	credentials := r.Group("/api/v1/auth")
	if h.limiter != nil {
		credentials.Use(middleware.RateLimitMiddleware(h.limiter))
	}
	{
		credentials.POST("/register", h.Register)
		credentials.POST("/login", h.Login)
	}

	r.GET("/api/v1/auth/me", authMW, h.Me)
}

// Register handles POST /api/v1/auth/register.
func (h *AccountHandler) Register(c *gin.Context) {
	var req application.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// Login handles POST /api/v1/auth/login.
func (h *AccountHandler) Login(c *gin.Context) {
	var req application.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Me handles GET /api/v1/auth/me.
func (h *AccountHandler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	result, err := h.service.Me(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
