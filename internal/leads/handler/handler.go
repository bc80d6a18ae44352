// Package handler exposes the lead endpoints over HTTP.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"kurscrm_backend/internal/leads/service"
	"kurscrm_backend/internal/leads/transport"
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
	leads := group.Group("/leads")
	leads.POST("", h.create)
	leads.GET("", h.list)
	leads.GET("/:id", h.get)
	leads.PATCH("/:id", h.update)
	leads.DELETE("/:id", h.delete)
	leads.POST("/:id/convert", h.convert)

	leads.POST("/:id/meetings", h.recordMeeting)
	leads.GET("/:id/meetings", h.listMeetings)

	meetings := group.Group("/meetings")
	meetings.PATCH("/:id", h.updateMeeting)
	meetings.DELETE("/:id", h.deleteMeeting)
}

func (h *Handler) create(c *gin.Context) {
	var req transport.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.HandleError(c, apperr.BadRequest("invalid request body"))
		return
	}

	lead, err := h.service.Create(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, lead)
}

func (h *Handler) list(c *gin.Context) {
	var req transport.ListLeadsRequest
	// Query binding on plain strings cannot fail; criteria parsing is
	// permissive on the values themselves.
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

	var req transport.UpdateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.HandleError(c, apperr.BadRequest("invalid request body"))
		return
	}

	lead, err := h.service.Update(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, lead)
}

func (h *Handler) delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if httpkit.HandleError(c, h.service.Delete(c.Request.Context(), id)) {
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) convert(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	person, err := h.service.Convert(c.Request.Context(), id, identity.UserID())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, person)
}

func (h *Handler) recordMeeting(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	var req transport.CreateMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.HandleError(c, apperr.BadRequest("invalid request body"))
		return
	}

	meeting, err := h.service.RecordMeeting(c.Request.Context(), id, identity.UserID(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, meeting)
}

func (h *Handler) listMeetings(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	meetings, err := h.service.ListMeetings(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, meetings)
}

func (h *Handler) updateMeeting(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req transport.UpdateMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.HandleError(c, apperr.BadRequest("invalid request body"))
		return
	}

	meeting, err := h.service.UpdateMeeting(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, meeting)
}

func (h *Handler) deleteMeeting(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if httpkit.HandleError(c, h.service.DeleteMeeting(c.Request.Context(), id)) {
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
