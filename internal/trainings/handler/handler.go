// Package handler exposes the training catalog endpoints over HTTP.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"kurscrm_backend/internal/trainings/service"
	"kurscrm_backend/internal/trainings/transport"
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
	trainings := group.Group("/trainings")
	trainings.POST("", h.createTraining)
	trainings.GET("", h.listTrainings)
	trainings.GET("/:id", h.getTraining)
	trainings.PATCH("/:id", h.updateTraining)
	trainings.POST("/:id/sessions", h.createSession)

	sessions := group.Group("/sessions")
	sessions.PATCH("/:id", h.updateSession)
	sessions.POST("/:id/enrollments", h.enroll)
	sessions.GET("/:id/enrollments", h.listEnrollments)

	enrollments := group.Group("/enrollments")
	enrollments.PATCH("/:id", h.updateEnrollment)
	enrollments.DELETE("/:id", h.deleteEnrollment)
}

func (h *Handler) createTraining(c *gin.Context) {
	var req transport.CreateTrainingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.HandleError(c, apperr.BadRequest("invalid request body"))
		return
	}

	training, err := h.service.CreateTraining(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, training)
}

func (h *Handler) listTrainings(c *gin.Context) {
	includeInactive := c.Query("include_inactive") == "true"

	trainings, err := h.service.ListTrainings(c.Request.Context(), c.Query("q"), includeInactive)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, trainings)
}

func (h *Handler) getTraining(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	detail, err := h.service.GetTrainingDetail(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, detail)
}

func (h *Handler) updateTraining(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req transport.UpdateTrainingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.HandleError(c, apperr.BadRequest("invalid request body"))
		return
	}

	training, err := h.service.UpdateTraining(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, training)
}

func (h *Handler) createSession(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req transport.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.HandleError(c, apperr.BadRequest("invalid request body"))
		return
	}

	session, err := h.service.CreateSession(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, session)
}

func (h *Handler) updateSession(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req transport.UpdateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.HandleError(c, apperr.BadRequest("invalid request body"))
		return
	}

	session, err := h.service.UpdateSession(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, session)
}

func (h *Handler) enroll(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req transport.CreateEnrollmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.HandleError(c, apperr.BadRequest("invalid request body"))
		return
	}

	enrollment, err := h.service.Enroll(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, enrollment)
}

func (h *Handler) listEnrollments(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	enrollments, err := h.service.ListEnrollments(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, enrollments)
}

func (h *Handler) updateEnrollment(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req transport.UpdateEnrollmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.HandleError(c, apperr.BadRequest("invalid request body"))
		return
	}

	enrollment, err := h.service.UpdateEnrollment(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, enrollment)
}

func (h *Handler) deleteEnrollment(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if httpkit.HandleError(c, h.service.DeleteEnrollment(c.Request.Context(), id)) {
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
