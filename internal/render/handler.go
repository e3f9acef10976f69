package render

import (
	"bytes"
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/resume"
	"resume-builder/internal/shared/server/respond"
)

// RecordSource loads the record to render.
type RecordSource interface {
	Get(ctx context.Context, userID string) (resume.Record, error)
}

type Handler struct {
	Catalog      *Catalog
	Records      RecordSource
	ImageBaseURL string
}

func NewHandler(catalog *Catalog, records RecordSource, imageBaseURL string) *Handler {
	return &Handler{Catalog: catalog, Records: records, ImageBaseURL: imageBaseURL}
}

// RegisterRoutes attaches template routes under a /users group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, guard gin.HandlerFunc) {
	g := rg.Group("/:id/resume/templates", guard)
	g.GET("", h.list)
	g.GET("/:key", h.render)
}

type templateSummary struct {
	Template
	MissingFields []string `json:"missingFields"`
	Ready         bool     `json:"ready"`
}

func (h *Handler) list(c *gin.Context) {
	rec, ok := h.load(c)
	if !ok {
		return
	}
	out := make([]templateSummary, 0)
	for _, t := range h.Catalog.List() {
		missing := t.MissingFields(rec)
		out = append(out, templateSummary{Template: t, MissingFields: missing, Ready: len(missing) == 0})
	}
	respond.OK(c, gin.H{"templates": out})
}

func (h *Handler) render(c *gin.Context) {
	t, err := h.Catalog.Get(c.Param("key"))
	if err != nil {
		respond.Error(c, http.StatusNotFound, "not_found", "Template not found", nil)
		return
	}
	rec, ok := h.load(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := t.Render(&buf, rec, h.ImageBaseURL); err != nil {
		var missing *MissingFieldsError
		if errors.As(err, &missing) {
			respond.Error(c, http.StatusUnprocessableEntity, "missing_fields", missing.Error(), gin.H{"missingFields": missing.Fields})
			return
		}
		respond.InternalError(c, "Failed to render template", err)
		return
	}
	if c.Query("download") == "1" {
		c.Header("Content-Disposition", `attachment; filename="`+t.FileName()+`"`)
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func (h *Handler) load(c *gin.Context) (resume.Record, bool) {
	rec, err := h.Records.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, resume.ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "User not found", nil)
			return resume.Record{}, false
		}
		respond.InternalError(c, "An error occurred while fetching user data", err)
		return resume.Record{}, false
	}
	return rec, true
}
