package doctor

import (
	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/hospital-api/internal/handler"
	"github.com/jwalitptl/hospital-api/internal/middleware"
	"github.com/jwalitptl/hospital-api/internal/model"
	doctorService "github.com/jwalitptl/hospital-api/internal/service/doctor"
	"github.com/jwalitptl/hospital-api/pkg/httputil"
)

type Handler struct {
	svc *doctorService.Service
}

func NewHandler(svc *doctorService.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the doctor directory. Reads are public, writes
// need a token.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	g := r.Group("/doctors")
	{
		g.GET("/", h.ListDoctors)
		g.GET("/:id/", h.GetDoctor)
		g.GET("/:id/time_slots/", h.ListTimeSlots)
		g.GET("/:id/reviews/", h.ListReviews)

		g.GET("/:id/appointments/", auth.Authenticate(), h.ListAppointments)
		g.POST("/", auth.Authenticate(), h.CreateDoctor)
		g.PUT("/:id/", auth.Authenticate(), h.UpdateDoctor)
		g.PATCH("/:id/", auth.Authenticate(), h.UpdateDoctor)
		g.DELETE("/:id/", auth.Authenticate(), h.DeleteDoctor)
	}
}

func (h *Handler) ListDoctors(c *gin.Context) {
	filter := model.DoctorFilter{Search: c.Query("search")}
	var ok bool
	if filter.SpecialtyID, ok = handler.QueryUUID(c, "specialty"); !ok {
		return
	}
	if filter.IsFeatured, ok = handler.QueryBool(c, "is_featured"); !ok {
		return
	}
	if filter.IsAvailable, ok = handler.QueryBool(c, "is_available"); !ok {
		return
	}

	doctors, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, doctors)
}

func (h *Handler) GetDoctor(c *gin.Context) {
	id, ok := handler.ParamID(c, "id")
	if !ok {
		return
	}

	doctor, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, doctor)
}

func (h *Handler) CreateDoctor(c *gin.Context) {
	var req model.CreateDoctorRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	doctor, err := h.svc.Create(c.Request.Context(), handler.Actor(c), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, doctor)
}

func (h *Handler) UpdateDoctor(c *gin.Context) {
	id, ok := handler.ParamID(c, "id")
	if !ok {
		return
	}
	var req model.UpdateDoctorRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	doctor, err := h.svc.Update(c.Request.Context(), handler.Actor(c), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, doctor)
}

func (h *Handler) DeleteDoctor(c *gin.Context) {
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

func (h *Handler) ListTimeSlots(c *gin.Context) {
	id, ok := handler.ParamID(c, "id")
	if !ok {
		return
	}

	slots, err := h.svc.TimeSlots(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, slots)
}

func (h *Handler) ListReviews(c *gin.Context) {
	id, ok := handler.ParamID(c, "id")
	if !ok {
		return
	}

	reviews, err := h.svc.Reviews(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, reviews)
}

func (h *Handler) ListAppointments(c *gin.Context) {
	id, ok := handler.ParamID(c, "id")
	if !ok {
		return
	}

	appointments, err := h.svc.Appointments(c.Request.Context(), handler.Actor(c), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, appointments)
}
