// Package handler exposes the authentication endpoints over HTTP.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"kurscrm_backend/internal/auth/service"
	"kurscrm_backend/internal/auth/transport"
	"kurscrm_backend/platform/apperr"
	"kurscrm_backend/platform/httpkit"
)

type Handler struct {
	service *service.Service
}

func New(service *service.Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes mounts login and refresh with the stricter auth rate
// limiter in front.
func (h *Handler) RegisterPublicRoutes(group *gin.RouterGroup, rateLimiter gin.HandlerFunc) {
	auth := group.Group("/auth")
	auth.Use(rateLimiter)
	auth.POST("/login", h.login)
	auth.POST("/refresh", h.refresh)
}

func (h *Handler) RegisterProtectedRoutes(group *gin.RouterGroup) {
	auth := group.Group("/auth")
	auth.GET("/me", h.me)
	auth.POST("/logout", h.logout)
	auth.POST("/change-password", h.changePassword)
}

func (h *Handler) RegisterAdminRoutes(group *gin.RouterGroup) {
	users := group.Group("/users")
	users.POST("", h.createUser)
	users.GET("", h.listUsers)
	users.PATCH("/:id", h.updateUser)
}

func (h *Handler) login(c *gin.Context) {
	var req transport.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.HandleError(c, apperr.BadRequest("invalid request body"))
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

func (h *Handler) refresh(c *gin.Context) {
	var req transport.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.HandleError(c, apperr.BadRequest("invalid request body"))
		return
	}

	tokens, err := h.service.Refresh(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, tokens)
}

func (h *Handler) me(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	user, err := h.service.Me(c.Request.Context(), identity.UserID())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, user)
}

func (h *Handler) logout(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	if httpkit.HandleError(c, h.service.Logout(c.Request.Context(), identity.UserID())) {
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) changePassword(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	var req transport.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.HandleError(c, apperr.BadRequest("invalid request body"))
		return
	}

	if httpkit.HandleError(c, h.service.ChangePassword(c.Request.Context(), identity.UserID(), req)) {
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) createUser(c *gin.Context) {
	var req transport.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.HandleError(c, apperr.BadRequest("invalid request body"))
		return
	}

	user, err := h.service.CreateUser(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, user)
}

func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.service.ListUsers(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, users)
}

func (h *Handler) updateUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.HandleError(c, apperr.BadRequest("invalid id"))
		return
	}

	var req transport.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.HandleError(c, apperr.BadRequest("invalid request body"))
		return
	}

	user, err := h.service.UpdateUser(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, user)
}
