// Package handler exposes the student endpoints over HTTP.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"kurscrm_backend/internal/students/service"
	"kurscrm_backend/internal/students/transport"
	"kurscrm_backend/platform/apperr"
	"kurscrm_backend/platform/httpkit"
)

type Handler struct {
	service *service.Service
}

func New(service *service.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(group *gin.RouterGroup) {
	students := group.Group("/students")
	students.POST("", h.create)
	students.GET("", h.list)
	students.GET("/:id", h.get)
	students.PATCH("/:id", h.update)
	students.DELETE("/:id", h.deactivate)

	if h.service.PhotosEnabled() {
		students.PUT("/:id/photo", h.uploadPhoto)
		students.DELETE("/:id/photo", h.deletePhoto)
	}
}

func (h *Handler) uploadPhoto(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req transport.UploadPhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.HandleError(c, apperr.BadRequest("invalid request body"))
		return
	}

	resp, err := h.service.UploadPhoto(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

func (h *Handler) deletePhoto(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if httpkit.HandleError(c, h.service.DeletePhoto(c.Request.Context(), id)) {
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) create(c *gin.Context) {
	var req transport.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.HandleError(c, apperr.BadRequest("invalid request body"))
		return
	}

	student, err := h.service.Create(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, student)
}

func (h *Handler) list(c *gin.Context) {
	var req transport.ListStudentsRequest
	_ = c.ShouldBindQuery(&req)

	resp, err := h.service.List(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

func (h *Handler) get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	detail, err := h.service.GetDetail(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, detail)
}

func (h *Handler) update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req transport.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.HandleError(c, apperr.BadRequest("invalid request body"))
		return
	}

	student, err := h.service.Update(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, student)
}

func (h *Handler) deactivate(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if httpkit.HandleError(c, h.service.Deactivate(c.Request.Context(), id)) {
		return
	}
	c.Status(http.StatusNoContent)
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.HandleError(c, apperr.BadRequest("invalid id"))
		return uuid.Nil, false
	}
	return id, true
}
