package companies

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Shiki0138/ai-subsidy-system-sub004/internal/shared/server/middleware"
	"github.com/Shiki0138/ai-subsidy-system-sub004/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the companies service.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches company routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/companies", h.createCompany)
	rg.GET("/companies", h.listCompanies)
	rg.GET("/companies/:id", h.getCompany)
	rg.PUT("/companies/:id", h.updateCompany)
	rg.DELETE("/companies/:id", h.deleteCompany)
}

func (h *Handler) createCompany(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing user identity", nil)
		return
	}
	var in CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid request body", nil)
		return
	}
	company, err := h.Svc.Create(c.Request.Context(), userID, in)
	if err != nil {
		h.writeError(c, err, "failed to create company")
		return
	}
	respond.Created(c, company)
}

func (h *Handler) listCompanies(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing user identity", nil)
		return
	}
	items, err := h.Svc.List(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list companies", nil)
		return
	}
	respond.OK(c, gin.H{"companies": items})
}

func (h *Handler) getCompany(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing user identity", nil)
		return
	}
	company, err := h.Svc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.writeError(c, err, "failed to fetch company")
		return
	}
	respond.OK(c, company)
}

func (h *Handler) updateCompany(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing user identity", nil)
		return
	}
	var in CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid request body", nil)
		return
	}
	company, err := h.Svc.Update(c.Request.Context(), userID, c.Param("id"), in)
	if err != nil {
		h.writeError(c, err, "failed to update company")
		return
	}
	respond.OK(c, company)
}

func (h *Handler) deleteCompany(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing user identity", nil)
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.writeError(c, err, "failed to delete company")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "company not found", nil)
	case errors.Is(err, ErrInvalid):
		respond.Error(c, http.StatusBadRequest, "invalid_request", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
