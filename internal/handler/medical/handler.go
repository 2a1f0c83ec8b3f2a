package medical

import (
	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/hospital-api/internal/handler"
	"github.com/jwalitptl/hospital-api/internal/middleware"
	"github.com/jwalitptl/hospital-api/internal/model"
	medicalService "github.com/jwalitptl/hospital-api/internal/service/medical"
	"github.com/jwalitptl/hospital-api/pkg/httputil"
)

type Handler struct {
	svc *medicalService.Service
}

func NewHandler(svc *medicalService.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	g := r.Group("/medical-records", auth.Authenticate())
	{
		g.GET("/", h.ListRecords)
		g.POST("/", h.CreateRecord)
		g.GET("/:id/", h.GetRecord)
		g.PUT("/:id/", h.UpdateRecord)
		g.PATCH("/:id/", h.UpdateRecord)
		g.DELETE("/:id/", h.DeleteRecord)
	}
}

func (h *Handler) ListRecords(c *gin.Context) {
	records, err := h.svc.List(c.Request.Context(), handler.Actor(c))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, records)
}

func (h *Handler) GetRecord(c *gin.Context) {
	id, ok := handler.ParamID(c, "id")
	if !ok {
		return
	}

	record, err := h.svc.Get(c.Request.Context(), handler.Actor(c), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, record)
}

func (h *Handler) CreateRecord(c *gin.Context) {
	var req model.CreateMedicalRecordRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	record, err := h.svc.Create(c.Request.Context(), handler.Actor(c), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, record)
}

func (h *Handler) UpdateRecord(c *gin.Context) {
	id, ok := handler.ParamID(c, "id")
	if !ok {
		return
	}
	var req model.UpdateMedicalRecordRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	record, err := h.svc.Update(c.Request.Context(), handler.Actor(c), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, record)
}

func (h *Handler) DeleteRecord(c *gin.Context) {
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
