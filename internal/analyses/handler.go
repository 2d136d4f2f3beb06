package analyses

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Shiki0138/ai-subsidy-system-sub004/internal/companies"
	"github.com/Shiki0138/ai-subsidy-system-sub004/internal/programs"
	"github.com/Shiki0138/ai-subsidy-system-sub004/internal/shared/server/middleware"
	"github.com/Shiki0138/ai-subsidy-system-sub004/internal/shared/server/respond"
	"github.com/Shiki0138/ai-subsidy-system-sub004/internal/usage"
)

// Handler wires HTTP handlers to the analyses service.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/programs/:id/analyze", h.startAnalysis)
	rg.GET("/analyses", h.listAnalyses)
	rg.GET("/analyses/:id", h.getAnalysis)
}

func (h *Handler) startAnalysis(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing user identity", nil)
		return
	}
	programID := c.Param("id")
	c.Set("programId", programID)

	var in CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid request body", nil)
		return
	}

	a, err := h.Svc.Create(
		c.Request.Context(),
		userID,
		middleware.UserPlanFromContext(c),
		programID,
		middleware.RequestIDFromContext(c),
		in,
	)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalid):
			respond.Error(c, http.StatusBadRequest, "invalid_request", err.Error(), nil)
		case errors.Is(err, programs.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "program not found", nil)
		case errors.Is(err, companies.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "company not found", nil)
		case errors.Is(err, usage.ErrLimitReached):
			respond.Error(c, http.StatusTooManyRequests, "limit_reached", "monthly analysis limit reached", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to start analysis", nil)
		}
		return
	}
	c.Set("analysisId", a.ID)
	respond.Created(c, gin.H{"id": a.ID, "status": a.Status})
}

func (h *Handler) listAnalyses(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing user identity", nil)
		return
	}
	limit := 20
	offset := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			limit = parsed
		}
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			offset = parsed
		}
	}
	items, err := h.Svc.List(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list analyses", nil)
		return
	}
	respond.OK(c, gin.H{"analyses": items})
}

func (h *Handler) getAnalysis(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing user identity", nil)
		return
	}
	analysisID := c.Param("id")
	c.Set("analysisId", analysisID)

	a, err := h.Svc.Get(c.Request.Context(), userID, analysisID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "analysis not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch analysis", nil)
		}
		return
	}
	respond.OK(c, a)
}
