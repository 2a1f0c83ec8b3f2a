package user

import (
	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/hospital-api/internal/handler"
	"github.com/jwalitptl/hospital-api/internal/middleware"
	"github.com/jwalitptl/hospital-api/internal/model"
	userService "github.com/jwalitptl/hospital-api/internal/service/user"
	"github.com/jwalitptl/hospital-api/pkg/httputil"
)

type Handler struct {
	svc *userService.Service
}

func NewHandler(svc *userService.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the profile endpoints under /auth, next to login.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	g := r.Group("/auth", auth.Authenticate())
	{
		g.PUT("/me/update/", h.UpdateMe)
		g.PATCH("/me/update/", h.UpdateMe)
		g.PUT("/users/:id/update/", h.UpdateUser)
		g.PATCH("/users/:id/update/", h.UpdateUser)
	}
}

func (h *Handler) UpdateMe(c *gin.Context) {
	var req model.UpdateProfileRequest
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

	user, err := h.svc.UpdateProfile(c.Request.Context(), handler.Actor(c), &req, handler.Reader(picture))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, user)
}

func (h *Handler) UpdateUser(c *gin.Context) {
	id, ok := handler.ParamID(c, "id")
	if !ok {
		return
	}
	var req model.AdminUpdateUserRequest
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

	user, err := h.svc.AdminUpdate(c.Request.Context(), handler.Actor(c), id, &req, handler.Reader(picture))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, user)
}
