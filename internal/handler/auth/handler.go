package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/hospital-api/internal/handler"
	"github.com/jwalitptl/hospital-api/internal/middleware"
	"github.com/jwalitptl/hospital-api/internal/model"
	authService "github.com/jwalitptl/hospital-api/internal/service/auth"
	"github.com/jwalitptl/hospital-api/pkg/httputil"
)

type Handler struct {
	svc *authService.Service
}

func NewHandler(svc *authService.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	g := r.Group("/auth")
	{
		g.POST("/token/", h.Login)
		g.POST("/token/refresh/", h.RefreshToken)
		g.POST("/logout/", h.Logout)

		g.POST("/register/", h.Register)
		g.POST("/register/doctor/", h.RegisterDoctor)
		g.POST("/register/patient/", h.RegisterPatient)

		g.GET("/me/", auth.Authenticate(), h.Me)
		g.POST("/me/change-password/", auth.Authenticate(), h.ChangePassword)
	}
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	tokens, err := h.svc.Login(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, tokens)
}

func (h *Handler) RefreshToken(c *gin.Context) {
	var req model.RefreshTokenRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	tokens, err := h.svc.Refresh(c.Request.Context(), req.Refresh)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, tokens)
}

func (h *Handler) Logout(c *gin.Context) {
	var req model.RefreshTokenRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	if err := h.svc.Logout(c.Request.Context(), req.Refresh); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithNoContent(c)
}

func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if !handler.Bind(c, &req) {
		return
	}

	user, err := h.svc.Register(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, user)
}

func (h *Handler) RegisterDoctor(c *gin.Context) {
	var req model.DoctorRegistrationRequest
	if !handler.Bind(c, &req) {
		return
	}
	picture, ok := handler.Upload(c, handler.ProfilePictureField)
	if !ok {
		return
	}
	if picture != nil {
		defer picture.Close()
	}

	result, err := h.svc.RegisterDoctor(c.Request.Context(), &req, handler.Reader(picture))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, result)
}

func (h *Handler) RegisterPatient(c *gin.Context) {
	var req model.PatientRegistrationRequest
	if !handler.Bind(c, &req) {
		return
	}
	picture, ok := handler.Upload(c, handler.ProfilePictureField)
	if !ok {
		return
	}
	if picture != nil {
		defer picture.Close()
	}

	result, err := h.svc.RegisterPatient(c.Request.Context(), &req, handler.Reader(picture))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, result)
}

func (h *Handler) Me(c *gin.Context) {
	httputil.RespondWithSuccess(c, handler.Actor(c))
}

func (h *Handler) ChangePassword(c *gin.Context) {
	var req model.ChangePasswordRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	if err := h.svc.ChangePassword(c.Request.Context(), handler.Actor(c), &req); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"detail": "Password updated successfully"})
}
