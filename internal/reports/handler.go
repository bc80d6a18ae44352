package reports

import (
	"time"

	"github.com/gin-gonic/gin"

	"kurscrm_backend/platform/apperr"
	"kurscrm_backend/platform/httpkit"
)

type Handler struct {
	repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) RegisterRoutes(protected, admin *gin.RouterGroup) {
	reports := admin.Group("/reports")
	reports.GET("/revenue", h.revenue)
	reports.GET("/overview", h.overview)
	reports.GET("/enrollment-by-training", h.enrollmentByTraining)

	// Instructors see their own dashboard without admin rights.
	protected.GET("/reports/my-sessions", h.instructorDashboard)
}

func (h *Handler) revenue(c *gin.Context) {
	from, ok := parseDate(c, "from")
	if !ok {
		return
	}
	to, ok := parseDate(c, "to")
	if !ok {
		return
	}

	report, err := h.repo.Revenue(c.Request.Context(), from, to)
	if err != nil {
		httpkit.HandleError(c, apperr.Wrap(apperr.KindInternal, "report query failed", err))
		return
	}
	httpkit.OK(c, report)
}

func (h *Handler) overview(c *gin.Context) {
	report, err := h.repo.Overview(c.Request.Context())
	if err != nil {
		httpkit.HandleError(c, apperr.Wrap(apperr.KindInternal, "report query failed", err))
		return
	}
	httpkit.OK(c, report)
}

func (h *Handler) enrollmentByTraining(c *gin.Context) {
	report, err := h.repo.EnrollmentByTraining(c.Request.Context())
	if err != nil {
		httpkit.HandleError(c, apperr.Wrap(apperr.KindInternal, "report query failed", err))
		return
	}
	httpkit.OK(c, report)
}

func (h *Handler) instructorDashboard(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	report, err := h.repo.InstructorDashboard(c.Request.Context(), identity.UserID())
	if err != nil {
		httpkit.HandleError(c, apperr.Wrap(apperr.KindInternal, "report query failed", err))
		return
	}
	httpkit.OK(c, report)
}

func parseDate(c *gin.Context, name string) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return time.Time{}, true
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		httpkit.HandleError(c, apperr.BadRequest(name+" must be YYYY-MM-DD"))
		return time.Time{}, false
	}
	return t, true
}
