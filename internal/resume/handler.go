package resume

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/server/respond"
)

const (
	defaultMaxUploadBytes = 5 << 20
	multipartMemory       = 1 << 20
	imageField            = "image"
)

// Handler wires resume routes to the service.
type Handler struct {
	Svc            *Service
	MaxUploadBytes int64
}

func NewHandler(svc *Service, maxUploadBytes int64) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultMaxUploadBytes
	}
	return &Handler{Svc: svc, MaxUploadBytes: maxUploadBytes}
}

// RegisterRoutes attaches resume routes under a /users group. guard runs
// before every handler.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, guard gin.HandlerFunc) {
	g := rg.Group("/:id/resume", guard)
	g.GET("", h.get)
	g.PUT("", h.save)
	g.DELETE("", h.reset)
	g.POST("/submit", h.submit)
	g.PUT("/education", h.addEducation)
	g.DELETE("/experience/:index", h.deleteEntry(CollectionExperience, "Experience removed successfully"))
	g.DELETE("/education/:index", h.deleteEntry(CollectionEducation, "Education removed successfully"))
}

// RegisterAssetRoutes serves stored images at their record paths.
func (h *Handler) RegisterAssetRoutes(r gin.IRoutes) {
	r.GET("/uploads/*path", h.asset)
}

func (h *Handler) get(c *gin.Context) {
	rec, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err, "An error occurred while fetching user data")
		return
	}
	respond.OK(c, rec)
}

func (h *Handler) save(c *gin.Context) {
	h.merge(c, h.Svc.Save, "Resume saved successfully", "Failed to save resume")
}

func (h *Handler) submit(c *gin.Context) {
	h.merge(c, h.Svc.Submit, "Resume submitted successfully", "Failed to submit resume")
}

type applyFunc func(ctx context.Context, userID string, in Submission, image *Upload) (Record, error)

func (h *Handler) merge(c *gin.Context, apply applyFunc, okMsg, failMsg string) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes)

	in, image, err := readSubmission(c)
	if image != nil {
		if closer, ok := image.Body.(io.Closer); ok {
			defer closer.Close()
		}
	}
	if c.Request.MultipartForm != nil {
		defer c.Request.MultipartForm.RemoveAll()
	}
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(c, http.StatusRequestEntityTooLarge, "payload_too_large", "Request body too large", gin.H{"limitBytes": tooLarge.Limit})
			return
		}
		respond.Error(c, http.StatusBadRequest, "validation_error", "Invalid request body", nil)
		return
	}

	rec, err := apply(c.Request.Context(), c.Param("id"), in, image)
	if err != nil {
		h.fail(c, err, failMsg)
		return
	}
	respond.OK(c, respond.Message{Message: okMsg, Record: rec})
}

func (h *Handler) addEducation(c *gin.Context) {
	var req Education
	if err := c.ShouldBind(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "All fields are required", nil)
		return
	}
	rec, err := h.Svc.AddEducation(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.fail(c, err, "An error occurred while adding education")
		return
	}
	respond.OK(c, respond.Message{Message: "Education added successfully", Record: rec})
}

func (h *Handler) deleteEntry(collection Collection, okMsg string) gin.HandlerFunc {
	return func(c *gin.Context) {
		index, err := strconv.Atoi(c.Param("index"))
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "Invalid index", nil)
			return
		}
		rec, err := h.Svc.DeleteEntry(c.Request.Context(), c.Param("id"), collection, index)
		if err != nil {
			h.fail(c, err, "An error occurred while removing "+string(collection))
			return
		}
		respond.OK(c, respond.Message{Message: okMsg, Record: rec})
	}
}

func (h *Handler) reset(c *gin.Context) {
	if _, err := h.Svc.Reset(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err, "Failed to delete resume")
		return
	}
	respond.OK(c, respond.Message{Message: "Resume deleted successfully"})
}

func (h *Handler) asset(c *gin.Context) {
	path := AssetPathPrefix + strings.TrimPrefix(c.Param("path"), "/")
	rc, err := h.Svc.OpenAsset(c.Request.Context(), path)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "File not found", nil)
			return
		}
		respond.InternalError(c, "Failed to read file", err)
		return
	}
	defer rc.Close()

	var sniff [512]byte
	n, err := io.ReadFull(rc, sniff[:])
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		respond.InternalError(c, "Failed to read file", err)
		return
	}
	body := io.MultiReader(bytes.NewReader(sniff[:n]), rc)
	c.DataFromReader(http.StatusOK, -1, http.DetectContentType(sniff[:n]), body, map[string]string{
		"Cache-Control": "private, max-age=300",
	})
}

func (h *Handler) fail(c *gin.Context, err error, fallback string) {
	var verr *ValidationError
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "User not found", nil)
	case errors.As(err, &verr):
		respond.Error(c, http.StatusBadRequest, "validation_error", verr.Message, nil)
	case errors.Is(err, ErrIndexOutOfRange):
		respond.Error(c, http.StatusBadRequest, "validation_error", "Invalid index", nil)
	default:
		respond.InternalError(c, fallback, err)
	}
}

// readSubmission decodes a save/submit body from multipart, urlencoded or
// JSON input.
func readSubmission(c *gin.Context) (Submission, *Upload, error) {
	switch c.ContentType() {
	case gin.MIMEMultipartPOSTForm:
		if err := c.Request.ParseMultipartForm(multipartMemory); err != nil {
			return Submission{}, nil, err
		}
		form := c.Request.MultipartForm
		in := submissionFromForm(url.Values(form.Value))
		image, err := openImage(form.File[imageField])
		return in, image, err
	case gin.MIMEPOSTForm:
		if err := c.Request.ParseForm(); err != nil {
			return Submission{}, nil, err
		}
		return submissionFromForm(c.Request.PostForm), nil, nil
	case gin.MIMEJSON, "":
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			return Submission{}, nil, err
		}
		in, err := submissionFromJSON(body)
		return in, nil, err
	default:
		return Submission{}, nil, errors.New("unsupported content type")
	}
}

func openImage(files []*multipart.FileHeader) (*Upload, error) {
	if len(files) == 0 {
		return nil, nil
	}
	f, err := files[0].Open()
	if err != nil {
		return nil, err
	}
	return &Upload{FileName: files[0].Filename, Body: f}, nil
}

func submissionFromForm(values url.Values) Submission {
	return Submission{
		ProfessionalExperience: values.Get("professionalExperience"),
		Education:              values.Get("education"),
		Skills:                 formField(values, "skills"),
		Languages:              formField(values, "languages"),
		LinkedIn:               values.Get("linkedin"),
		GitHub:                 values.Get("github"),
	}
}

// formField treats bracketed keys (skills[]) as an explicit list.
func formField(values url.Values, key string) FieldValue {
	if items, ok := values[key+"[]"]; ok {
		return Sequence(items)
	}
	return FromForm(values[key])
}

func submissionFromJSON(body []byte) (Submission, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return Submission{}, nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return Submission{}, err
	}
	return Submission{
		ProfessionalExperience: structuredText(fields["professionalExperience"]),
		Education:              structuredText(fields["education"]),
		Skills:                 FromJSON(fields["skills"]),
		Languages:              FromJSON(fields["languages"]),
		LinkedIn:               jsonString(fields["linkedin"]),
		GitHub:                 jsonString(fields["github"]),
	}, nil
}

// structuredText returns the JSON text of a structured list member. A string
// member holds the text itself; null and empty strings are absent.
func structuredText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	if raw[0] == '"' {
		return jsonString(raw)
	}
	return string(raw)
}

func jsonString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}
