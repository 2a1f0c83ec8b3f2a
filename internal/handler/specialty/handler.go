package specialty

import (
	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/hospital-api/internal/handler"
	"github.com/jwalitptl/hospital-api/internal/middleware"
	"github.com/jwalitptl/hospital-api/internal/model"
	specialtyService "github.com/jwalitptl/hospital-api/internal/service/specialty"
	"github.com/jwalitptl/hospital-api/pkg/httputil"
)

type Handler struct {
	svc *specialtyService.Service
}

func NewHandler(svc *specialtyService.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	g := r.Group("/specialties")
	{
		g.GET("/", h.ListSpecialties)
		g.GET("/:id/", h.GetSpecialty)
		g.POST("/", auth.Authenticate(), h.CreateSpecialty)
		g.PUT("/:id/", auth.Authenticate(), h.UpdateSpecialty)
		g.PATCH("/:id/", auth.Authenticate(), h.UpdateSpecialty)
		g.DELETE("/:id/", auth.Authenticate(), h.DeleteSpecialty)
	}
}

func (h *Handler) ListSpecialties(c *gin.Context) {
	specialties, err := h.svc.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, specialties)
}

func (h *Handler) GetSpecialty(c *gin.Context) {
	id, ok := handler.ParamID(c, "id")
	if !ok {
		return
	}

	specialty, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, specialty)
}

func (h *Handler) CreateSpecialty(c *gin.Context) {
	var req model.SpecialtyRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	specialty, err := h.svc.Create(c.Request.Context(), handler.Actor(c), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, specialty)
}

func (h *Handler) UpdateSpecialty(c *gin.Context) {
	id, ok := handler.ParamID(c, "id")
	if !ok {
		return
	}
	var req model.SpecialtyRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	specialty, err := h.svc.Update(c.Request.Context(), handler.Actor(c), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, specialty)
}

func (h *Handler) DeleteSpecialty(c *gin.Context) {
	id, ok := handler.ParamID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), handler.Actor(c), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithNoContent(c)
}
