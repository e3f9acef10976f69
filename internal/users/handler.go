package users

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches signup and login under rg; limit guards both.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, limit gin.HandlerFunc) {
	rg.POST("/signup", limit, h.signup)
	rg.POST("/login", limit, h.login)
}

// RegisterMeRoutes attaches the token-introspection endpoint.
func (h *Handler) RegisterMeRoutes(rg *gin.RouterGroup) {
	rg.GET("/me", h.me)
}

type sessionResponse struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
	Token   string `json:"token,omitempty"`
}

func (h *Handler) signup(c *gin.Context) {
	var in SignupInput
	if err := c.ShouldBind(&in); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "All fields are required", nil)
		return
	}
	session, err := h.Svc.Signup(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err, "An error occurred during signup")
		return
	}
	respond.JSON(c, http.StatusCreated, sessionResponse{
		Message: "User registered successfully",
		UserID:  session.Account.ID,
		Token:   session.Token,
	})
}

func (h *Handler) login(c *gin.Context) {
	var in LoginInput
	if err := c.ShouldBind(&in); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Email and password are required", nil)
		return
	}
	session, err := h.Svc.Login(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err, "An error occurred during login")
		return
	}
	respond.OK(c, sessionResponse{
		Message: "Login successful",
		UserID:  session.Account.ID,
		Token:   session.Token,
	})
}

func (h *Handler) me(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
		return
	}
	account, err := h.Svc.GetByID(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err, "failed to load user")
		return
	}
	respond.OK(c, account)
}

func (h *Handler) fail(c *gin.Context, err error, fallback string) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		respond.Error(c, http.StatusBadRequest, "validation_error", verr.Message, nil)
	case errors.Is(err, ErrEmailTaken):
		respond.Error(c, http.StatusBadRequest, "validation_error", "User already exists", nil)
	case errors.Is(err, ErrInvalidCredentials):
		respond.Error(c, http.StatusUnauthorized, "invalid_credentials", "Invalid email or password", nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "User not found", nil)
	default:
		respond.InternalError(c, fallback, err)
	}
}
