package review

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/hospital-api/internal/handler/handlertest"
	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/internal/repository/mocks"
	"github.com/jwalitptl/hospital-api/internal/service/rbac"
	"github.com/jwalitptl/hospital-api/internal/service/review"
	"github.com/jwalitptl/hospital-api/pkg/logger"
)

var (
	authorUser = &model.User{ID: uuid.New(), UserType: model.UserTypePatient, IsActive: true}
	otherUser  = &model.User{ID: uuid.New(), UserType: model.UserTypePatient, IsActive: true}
)

type testEnv struct {
	router  http.Handler
	reviews *mocks.ReviewRepository
}

func setup(t *testing.T) *testEnv {
	reviews := &mocks.ReviewRepository{}
	access := rbac.NewService(&mocks.DoctorRepository{}, &mocks.PatientRepository{}, logger.Nop())
	svc := review.NewService(reviews, &mocks.AppointmentRepository{}, access, nil, logger.Nop())

	tokens := handlertest.Tokens{"author": authorUser, "other": otherUser}
	return &testEnv{
		router:  handlertest.NewRouter(t, tokens, NewHandler(svc)),
		reviews: reviews,
	}
}

func TestListReviews_PublicWithDoctorFilter(t *testing.T) {
	env := setup(t)
	doctorID := uuid.New()
	env.reviews.On("List", mock.Anything, model.ReviewFilter{DoctorID: &doctorID}).
		Return([]*model.Review{{ID: uuid.New(), DoctorID: doctorID, Rating: 4}}, nil)

	w := handlertest.Do(env.router, http.MethodGet, "/api/reviews/?doctor="+doctorID.String(), "", nil)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var got []model.Review
	require.NoError(t, json.Unmarshal(handlertest.Decode(t, w).Data, &got))
	require.Len(t, got, 1)
	assert.Equal(t, 4, got[0].Rating)
	env.reviews.AssertExpectations(t)
}

func TestListReviews_BadDoctorFilter(t *testing.T) {
	env := setup(t)

	w := handlertest.Do(env.router, http.MethodGet, "/api/reviews/?doctor=nope", "", nil)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []string{"Must be a valid UUID."}, handlertest.Decode(t, w).Errors["doctor"])
}

func TestReviewWritesRequireToken(t *testing.T) {
	env := setup(t)
	id := uuid.New().String()

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/reviews/" + id + "/"},
		{http.MethodPost, "/api/reviews/"},
		{http.MethodPatch, "/api/reviews/" + id + "/"},
		{http.MethodDelete, "/api/reviews/" + id + "/"},
	}
	for _, tt := range tests {
		w := handlertest.Do(env.router, tt.method, tt.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, tt.method+" "+tt.path)
	}
	env.reviews.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestUpdateReview(t *testing.T) {
	tests := []struct {
		name   string
		token  string
		status int
	}{
		{name: "author", token: "author", status: http.StatusOK},
		{name: "another patient", token: "other", status: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setup(t)
			existing := &model.Review{ID: uuid.New(), Rating: 2, Patient: model.Party{UserID: authorUser.ID}}
			env.reviews.On("Get", mock.Anything, existing.ID).Return(existing, nil)
			env.reviews.On("Update", mock.Anything, existing).Return(&model.RatingSummary{}, nil)

			w := handlertest.Do(env.router, http.MethodPatch, "/api/reviews/"+existing.ID.String()+"/",
				tt.token, map[string]interface{}{"rating": 5})

			require.Equal(t, tt.status, w.Code, w.Body.String())
			if tt.status == http.StatusForbidden {
				env.reviews.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
				return
			}
			var got model.Review
			require.NoError(t, json.Unmarshal(handlertest.Decode(t, w).Data, &got))
			assert.Equal(t, 5, got.Rating)
		})
	}
}
