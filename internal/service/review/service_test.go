package review

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/internal/repository/mocks"
	"github.com/jwalitptl/hospital-api/internal/service/rbac"
	apperrors "github.com/jwalitptl/hospital-api/pkg/errors"
	"github.com/jwalitptl/hospital-api/pkg/logger"
	"github.com/jwalitptl/hospital-api/pkg/metrics"
)

type testEnv struct {
	svc          *Service
	reviews      *mocks.ReviewRepository
	appointments *mocks.AppointmentRepository
	patients     *mocks.PatientRepository
	metrics      *metrics.APIMetrics
}

func setupService() *testEnv {
	reviews := &mocks.ReviewRepository{}
	appointments := &mocks.AppointmentRepository{}
	patients := &mocks.PatientRepository{}
	m := metrics.NewAPIMetrics("test", prometheus.NewRegistry())
	access := rbac.NewService(&mocks.DoctorRepository{}, patients, logger.Nop())
	return &testEnv{
		svc:          NewService(reviews, appointments, access, m, logger.Nop()),
		reviews:      reviews,
		appointments: appointments,
		patients:     patients,
		metrics:      m,
	}
}

func TestCreate_PatientReviewRecomputes(t *testing.T) {
	env := setupService()
	actor := &model.User{ID: uuid.New(), UserType: model.UserTypePatient}
	patient := &model.Patient{Base: model.Base{ID: uuid.New()}, UserID: actor.ID}
	doctorID := uuid.New()
	env.patients.On("GetByUserID", mock.Anything, actor.ID).Return(patient, nil)

	env.reviews.On("Create", mock.Anything, mock.MatchedBy(func(r *model.Review) bool {
		return r.PatientID == patient.ID && r.DoctorID == doctorID && r.Rating == 5
	})).
		Run(func(args mock.Arguments) { args.Get(1).(*model.Review).ID = uuid.New() }).
		Return(&model.RatingSummary{DoctorID: doctorID, Rating: 4.33, TotalReviews: 3}, nil)
	env.reviews.On("Get", mock.Anything, mock.AnythingOfType("uuid.UUID")).
		Return(&model.Review{DoctorID: doctorID, PatientID: patient.ID, Rating: 5}, nil)

	review, err := env.svc.Create(context.Background(), actor, &model.CreateReviewRequest{DoctorID: doctorID, Rating: 5})
	require.NoError(t, err)
	assert.Equal(t, patient.ID, review.PatientID)
	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.RatingRecomputes.WithLabelValues("create")))
}

func TestCreate_DoctorsCannotReview(t *testing.T) {
	env := setupService()
	doctors := &mocks.DoctorRepository{}
	actor := &model.User{ID: uuid.New(), UserType: model.UserTypeDoctor}
	doctors.On("GetByUserID", mock.Anything, actor.ID).Return(&model.Doctor{UserID: actor.ID}, nil)
	env.svc.access = rbac.NewService(doctors, env.patients, logger.Nop())

	_, err := env.svc.Create(context.Background(), actor, &model.CreateReviewRequest{DoctorID: uuid.New(), Rating: 4})
	assert.True(t, apperrors.Is(err, apperrors.ErrForbidden))
	env.reviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreate_AppointmentMustMatchLegs(t *testing.T) {
	env := setupService()
	actor := &model.User{ID: uuid.New(), UserType: model.UserTypePatient}
	patient := &model.Patient{Base: model.Base{ID: uuid.New()}, UserID: actor.ID}
	apptID := uuid.New()
	env.patients.On("GetByUserID", mock.Anything, actor.ID).Return(patient, nil)
	env.appointments.On("Get", mock.Anything, apptID).
		Return(&model.Appointment{DoctorID: uuid.New(), PatientID: patient.ID}, nil)

	_, err := env.svc.Create(context.Background(), actor, &model.CreateReviewRequest{
		DoctorID: uuid.New(), AppointmentID: &apptID, Rating: 4,
	})
	require.Error(t, err)
	appErr, _ := apperrors.As(err)
	assert.NotEmpty(t, appErr.Fields["appointment_id"])
}

func TestUpdateAndDelete_OwnerOrAdmin(t *testing.T) {
	env := setupService()
	author := uuid.New()
	review := &model.Review{ID: uuid.New(), Rating: 2, Patient: model.Party{UserID: author}}
	env.reviews.On("Get", mock.Anything, review.ID).Return(review, nil)
	env.reviews.On("Update", mock.Anything, review).Return(&model.RatingSummary{}, nil)
	env.reviews.On("Delete", mock.Anything, review.ID).Return(&model.RatingSummary{}, nil)

	rating := 4
	_, err := env.svc.Update(context.Background(), &model.User{ID: uuid.New(), UserType: model.UserTypePatient},
		review.ID, &model.UpdateReviewRequest{Rating: &rating})
	assert.True(t, apperrors.Is(err, apperrors.ErrForbidden))

	updated, err := env.svc.Update(context.Background(), &model.User{ID: author, UserType: model.UserTypePatient},
		review.ID, &model.UpdateReviewRequest{Rating: &rating})
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Rating)

	require.NoError(t, env.svc.Delete(context.Background(), &model.User{ID: uuid.New(), UserType: model.UserTypeAdmin}, review.ID))
	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.RatingRecomputes.WithLabelValues("update")))
	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.RatingRecomputes.WithLabelValues("delete")))
}
