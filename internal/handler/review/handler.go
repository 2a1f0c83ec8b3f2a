package review

import (
	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/hospital-api/internal/handler"
	"github.com/jwalitptl/hospital-api/internal/middleware"
	"github.com/jwalitptl/hospital-api/internal/model"
	reviewService "github.com/jwalitptl/hospital-api/internal/service/review"
	"github.com/jwalitptl/hospital-api/pkg/httputil"
)

type Handler struct {
	svc *reviewService.Service
}

func NewHandler(svc *reviewService.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	g := r.Group("/reviews")
	{
		g.GET("/", h.ListReviews)
		g.POST("/", auth.Authenticate(), h.CreateReview)
		g.GET("/:id/", auth.Authenticate(), h.GetReview)
		g.PUT("/:id/", auth.Authenticate(), h.UpdateReview)
		g.PATCH("/:id/", auth.Authenticate(), h.UpdateReview)
		g.DELETE("/:id/", auth.Authenticate(), h.DeleteReview)
	}
}

func (h *Handler) ListReviews(c *gin.Context) {
	var filter model.ReviewFilter
	var ok bool
	if filter.DoctorID, ok = handler.QueryUUID(c, "doctor"); !ok {
		return
	}

	reviews, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, reviews)
}

func (h *Handler) GetReview(c *gin.Context) {
	id, ok := handler.ParamID(c, "id")
	if !ok {
		return
	}

	review, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, review)
}

// CreateReview stores the review and recomputes the doctor's rating in the
// same transaction.
func (h *Handler) CreateReview(c *gin.Context) {
	var req model.CreateReviewRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	review, err := h.svc.Create(c.Request.Context(), handler.Actor(c), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, review)
}

func (h *Handler) UpdateReview(c *gin.Context) {
	id, ok := handler.ParamID(c, "id")
	if !ok {
		return
	}
	var req model.UpdateReviewRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	review, err := h.svc.Update(c.Request.Context(), handler.Actor(c), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, review)
}

func (h *Handler) DeleteReview(c *gin.Context) {
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
