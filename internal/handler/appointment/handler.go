package appointment

import (
	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/hospital-api/internal/handler"
	"github.com/jwalitptl/hospital-api/internal/middleware"
	"github.com/jwalitptl/hospital-api/internal/model"
	appointmentService "github.com/jwalitptl/hospital-api/internal/service/appointment"
	apperrors "github.com/jwalitptl/hospital-api/pkg/errors"
	"github.com/jwalitptl/hospital-api/pkg/httputil"
)

type Handler struct {
	svc *appointmentService.Service
}

func NewHandler(svc *appointmentService.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	g := r.Group("/appointments")

	// The feed stays reachable anonymously only when the feature is on.
	if h.svc.PublicFeed() {
		g.GET("/all_appointments/", auth.Optional(), h.AllAppointments)
	} else {
		g.GET("/all_appointments/", auth.Authenticate(), h.AllAppointments)
	}

	g.Use(auth.Authenticate())
	{
		g.GET("/", h.ListAppointments)
		g.POST("/", h.CreateAppointment)
		g.GET("/my_appointments/", h.MyAppointments)
		g.GET("/:id/", h.GetAppointment)
		g.PUT("/:id/", h.UpdateAppointment)
		g.PATCH("/:id/", h.UpdateAppointment)
		g.DELETE("/:id/", h.DeleteAppointment)
	}
}

func (h *Handler) ListAppointments(c *gin.Context) {
	filter := model.AppointmentFilter{Search: c.Query("search")}
	if raw := c.Query("status"); raw != "" {
		status := model.AppointmentStatus(raw)
		if !status.Valid() {
			httputil.RespondWithError(c, apperrors.FieldError("status", "\""+raw+"\" is not a valid choice."))
			return
		}
		filter.Status = &status
	}
	if raw := c.Query("date"); raw != "" {
		date, err := model.ParseDate(raw)
		if err != nil {
			httputil.RespondWithError(c, apperrors.FieldError("date", "Date has wrong format. Use YYYY-MM-DD."))
			return
		}
		filter.Date = &date
	}

	appointments, err := h.svc.List(c.Request.Context(), handler.Actor(c), filter)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, appointments)
}

func (h *Handler) MyAppointments(c *gin.Context) {
	appointments, err := h.svc.MyAppointments(c.Request.Context(), handler.Actor(c))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, appointments)
}

func (h *Handler) AllAppointments(c *gin.Context) {
	appointments, err := h.svc.AllAppointments(c.Request.Context(), handler.Actor(c))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, appointments)
}

func (h *Handler) GetAppointment(c *gin.Context) {
	id, ok := handler.ParamID(c, "id")
	if !ok {
		return
	}

	appointment, err := h.svc.Get(c.Request.Context(), handler.Actor(c), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, appointment)
}

func (h *Handler) CreateAppointment(c *gin.Context) {
	var req model.CreateAppointmentRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	appointment, err := h.svc.Create(c.Request.Context(), handler.Actor(c), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, appointment)
}

func (h *Handler) UpdateAppointment(c *gin.Context) {
	id, ok := handler.ParamID(c, "id")
	if !ok {
		return
	}
	var req model.UpdateAppointmentRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	appointment, err := h.svc.Update(c.Request.Context(), handler.Actor(c), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, appointment)
}

func (h *Handler) DeleteAppointment(c *gin.Context) {
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
