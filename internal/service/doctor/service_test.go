package doctor

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/internal/repository/mocks"
	"github.com/jwalitptl/hospital-api/internal/service/rbac"
	apperrors "github.com/jwalitptl/hospital-api/pkg/errors"
	"github.com/jwalitptl/hospital-api/pkg/logger"
)

type testEnv struct {
	svc          *Service
	doctors      *mocks.DoctorRepository
	appointments *mocks.AppointmentRepository
}

func setupService() *testEnv {
	doctors := &mocks.DoctorRepository{}
	appointments := &mocks.AppointmentRepository{}
	access := rbac.NewService(doctors, &mocks.PatientRepository{}, logger.Nop())
	return &testEnv{
		svc:          NewService(doctors, &mocks.TimeSlotRepository{}, &mocks.ReviewRepository{}, appointments, access, logger.Nop()),
		doctors:      doctors,
		appointments: appointments,
	}
}

func ptr[T any](v T) *T { return &v }

func TestUpdate_NonAdminForbidden(t *testing.T) {
	env := setupService()
	doctorUser := &model.User{ID: uuid.New(), UserType: model.UserTypeDoctor}

	_, err := env.svc.Update(context.Background(), doctorUser, uuid.New(), &model.UpdateDoctorRequest{Bio: ptr("x")})
	require.Error(t, err)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrForbidden, appErr.Code)
	assert.Equal(t, "You do not have permission to update doctors. Admin access required.", appErr.Message)
	env.doctors.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdate_AdminAndStaffAllowed(t *testing.T) {
	for _, actor := range []*model.User{
		{ID: uuid.New(), UserType: model.UserTypeAdmin},
		{ID: uuid.New(), UserType: model.UserTypePatient, IsStaff: true},
	} {
		env := setupService()
		doctor := &model.Doctor{Base: model.Base{ID: uuid.New()}, Rating: 4.5, TotalReviews: 2}
		env.doctors.On("Get", mock.Anything, doctor.ID).Return(doctor, nil)
		env.doctors.On("Update", mock.Anything, doctor).Return(nil)

		updated, err := env.svc.Update(context.Background(), actor, doctor.ID, &model.UpdateDoctorRequest{
			Bio:        ptr("Interventional cardiology"),
			IsFeatured: ptr(true),
			StartTime:  ptr("08:00"),
			EndTime:    ptr("16:30"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Interventional cardiology", updated.Bio)
		assert.True(t, updated.IsFeatured)
		assert.Equal(t, model.TimeOfDay{Hour: 16, Minute: 30}, *updated.EndTime)
		assert.Equal(t, 4.5, updated.Rating)
	}
}

func TestUpdate_RejectsInvertedHours(t *testing.T) {
	env := setupService()
	start := model.TimeOfDay{Hour: 9}
	doctor := &model.Doctor{Base: model.Base{ID: uuid.New()}, StartTime: &start}
	env.doctors.On("Get", mock.Anything, doctor.ID).Return(doctor, nil)

	_, err := env.svc.Update(context.Background(), &model.User{UserType: model.UserTypeAdmin}, doctor.ID,
		&model.UpdateDoctorRequest{EndTime: ptr("08:00")})
	require.Error(t, err)
	appErr, _ := apperrors.As(err)
	assert.NotEmpty(t, appErr.Fields["end_time"])
}

func TestAppointments_OnlyAdminOrThatDoctor(t *testing.T) {
	env := setupService()
	owner := &model.User{ID: uuid.New(), UserType: model.UserTypeDoctor}
	doctor := &model.Doctor{Base: model.Base{ID: uuid.New()}, UserID: owner.ID}
	env.doctors.On("Get", mock.Anything, doctor.ID).Return(doctor, nil)
	env.appointments.On("List", mock.Anything, model.AppointmentFilter{DoctorID: &doctor.ID}).
		Return([]*model.Appointment{{DoctorID: doctor.ID}}, nil)

	list, err := env.svc.Appointments(context.Background(), owner, doctor.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = env.svc.Appointments(context.Background(), &model.User{ID: uuid.New(), UserType: model.UserTypeDoctor}, doctor.ID)
	assert.True(t, apperrors.Is(err, apperrors.ErrForbidden))
	assert.Contains(t, err.Error(), "view these appointments")
}
