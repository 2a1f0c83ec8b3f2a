package timeslot

import (
	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/hospital-api/internal/handler"
	"github.com/jwalitptl/hospital-api/internal/middleware"
	"github.com/jwalitptl/hospital-api/internal/model"
	timeslotService "github.com/jwalitptl/hospital-api/internal/service/timeslot"
	apperrors "github.com/jwalitptl/hospital-api/pkg/errors"
	"github.com/jwalitptl/hospital-api/pkg/httputil"
)

type Handler struct {
	svc *timeslotService.Service
}

func NewHandler(svc *timeslotService.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	g := r.Group("/time-slots", auth.Authenticate())
	{
		g.GET("/", h.ListTimeSlots)
		g.POST("/", h.CreateTimeSlot)
		g.GET("/:id/", h.GetTimeSlot)
		g.PUT("/:id/", h.UpdateTimeSlot)
		g.PATCH("/:id/", h.UpdateTimeSlot)
		g.DELETE("/:id/", h.DeleteTimeSlot)
	}
}

func (h *Handler) ListTimeSlots(c *gin.Context) {
	var filter model.TimeSlotFilter
	var ok bool
	if filter.DoctorID, ok = handler.QueryUUID(c, "doctor"); !ok {
		return
	}
	if raw := c.Query("day"); raw != "" {
		day := model.Weekday(raw)
		if !day.Valid() {
			httputil.RespondWithError(c, apperrors.FieldError("day", "\""+raw+"\" is not a valid choice."))
			return
		}
		filter.DayOfWeek = &day
	}

	slots, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, slots)
}

func (h *Handler) GetTimeSlot(c *gin.Context) {
	id, ok := handler.ParamID(c, "id")
	if !ok {
		return
	}

	slot, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, slot)
}

func (h *Handler) CreateTimeSlot(c *gin.Context) {
	var req model.CreateTimeSlotRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	slot, err := h.svc.Create(c.Request.Context(), handler.Actor(c), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, slot)
}

func (h *Handler) UpdateTimeSlot(c *gin.Context) {
	id, ok := handler.ParamID(c, "id")
	if !ok {
		return
	}
	var req model.UpdateTimeSlotRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	slot, err := h.svc.Update(c.Request.Context(), handler.Actor(c), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, slot)
}

func (h *Handler) DeleteTimeSlot(c *gin.Context) {
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
