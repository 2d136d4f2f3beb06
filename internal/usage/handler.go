package usage

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Shiki0138/ai-subsidy-system-sub004/internal/shared/server/middleware"
	"github.com/Shiki0138/ai-subsidy-system-sub004/internal/shared/server/respond"
)

// Handler exposes the current quota window.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/usage", h.getUsage)
}

func (h *Handler) getUsage(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing user identity", nil)
		return
	}
	plan := middleware.UserPlanFromContext(c)
	rec, err := h.Svc.Current(c.Request.Context(), userID, plan)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load usage", nil)
		return
	}
	respond.OK(c, gin.H{
		"plan":      rec.Plan,
		"limit":     rec.Limit,
		"used":      rec.Used,
		"remaining": rec.Remaining(),
		"resetsAt":  rec.ResetsAt,
	})
}
