package programs

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Shiki0138/ai-subsidy-system-sub004/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the programs service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches program routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/programs", h.listPrograms)
	rg.GET("/programs/:id", h.getProgram)
	rg.GET("/programs/:id/success-cases", h.listSuccessCases)
}

func (h *Handler) listPrograms(c *gin.Context) {
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

	items, err := h.Svc.List(c.Request.Context(), limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list programs", nil)
		return
	}
	respond.OK(c, gin.H{"programs": items})
}

func (h *Handler) getProgram(c *gin.Context) {
	programID := c.Param("id")
	c.Set("programId", programID)

	program, err := h.Svc.Get(c.Request.Context(), programID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "program not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch program", nil)
		}
		return
	}
	respond.OK(c, program)
}

func (h *Handler) listSuccessCases(c *gin.Context) {
	programID := c.Param("id")
	c.Set("programId", programID)

	cases, err := h.Svc.SuccessCases(c.Request.Context(), programID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "program not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch success cases", nil)
		}
		return
	}
	respond.OK(c, gin.H{"successCases": cases})
}
