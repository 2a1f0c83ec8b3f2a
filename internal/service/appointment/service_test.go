package appointment

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
	svc      *Service
	repo     *mocks.AppointmentRepository
	doctors  *mocks.DoctorRepository
	patients *mocks.PatientRepository
}

func setupService(cfg Config) *testEnv {
	repo := &mocks.AppointmentRepository{}
	doctors := &mocks.DoctorRepository{}
	patients := &mocks.PatientRepository{}
	access := rbac.NewService(doctors, patients, logger.Nop())
	return &testEnv{
		svc:      NewService(repo, doctors, patients, access, cfg, logger.Nop()),
		repo:     repo,
		doctors:  doctors,
		patients: patients,
	}
}

func TestMyAppointments_ScopedByRole(t *testing.T) {
	doctorUser := &model.User{ID: uuid.New(), UserType: model.UserTypeDoctor}
	doctor := &model.Doctor{Base: model.Base{ID: uuid.New()}, UserID: doctorUser.ID}
	patientUser := &model.User{ID: uuid.New(), UserType: model.UserTypePatient}
	patient := &model.Patient{Base: model.Base{ID: uuid.New()}, UserID: patientUser.ID}
	admin := &model.User{ID: uuid.New(), UserType: model.UserTypeAdmin}

	tests := []struct {
		name   string
		actor  *model.User
		filter model.AppointmentFilter
	}{
		{"doctor", doctorUser, model.AppointmentFilter{DoctorID: &doctor.ID}},
		{"patient", patientUser, model.AppointmentFilter{PatientID: &patient.ID}},
		{"admin", admin, model.AppointmentFilter{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupService(Config{})
			env.doctors.On("GetByUserID", mock.Anything, doctorUser.ID).Return(doctor, nil)
			env.patients.On("GetByUserID", mock.Anything, patientUser.ID).Return(patient, nil)
			env.repo.On("List", mock.Anything, tt.filter).Return([]*model.Appointment{{}}, nil)

			list, err := env.svc.MyAppointments(context.Background(), tt.actor)
			require.NoError(t, err)
			assert.Len(t, list, 1)
			env.repo.AssertExpectations(t)
		})
	}
}

func TestMyAppointments_UnknownRole(t *testing.T) {
	env := setupService(Config{})

	_, err := env.svc.MyAppointments(context.Background(), &model.User{ID: uuid.New(), UserType: "nurse"})
	require.Error(t, err)
	assert.Equal(t, "Invalid user type. Please contact admin.", err.Error())
	env.repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestList_ScopeOverridesClientFilter(t *testing.T) {
	env := setupService(Config{})
	patientUser := &model.User{ID: uuid.New(), UserType: model.UserTypePatient}
	patient := &model.Patient{Base: model.Base{ID: uuid.New()}, UserID: patientUser.ID}
	someoneElse := uuid.New()
	env.patients.On("GetByUserID", mock.Anything, patientUser.ID).Return(patient, nil)
	env.repo.On("List", mock.Anything, model.AppointmentFilter{PatientID: &patient.ID}).Return([]*model.Appointment{}, nil)

	_, err := env.svc.List(context.Background(), patientUser, model.AppointmentFilter{PatientID: &someoneElse})
	require.NoError(t, err)
	env.repo.AssertExpectations(t)
}

func TestCreate_DoubleBookingAccepted(t *testing.T) {
	env := setupService(Config{})
	patientUser := &model.User{ID: uuid.New(), UserType: model.UserTypePatient}
	patient := &model.Patient{Base: model.Base{ID: uuid.New()}, UserID: patientUser.ID}
	doctorID := uuid.New()

	env.patients.On("GetByUserID", mock.Anything, patientUser.ID).Return(patient, nil)
	env.patients.On("Get", mock.Anything, patient.ID).Return(patient, nil)
	env.doctors.On("Get", mock.Anything, doctorID).Return(&model.Doctor{Base: model.Base{ID: doctorID}}, nil)
	env.repo.On("Create", mock.Anything, mock.AnythingOfType("*model.Appointment")).
		Run(func(args mock.Arguments) { args.Get(1).(*model.Appointment).ID = uuid.New() }).
		Return(nil)

	req := &model.CreateAppointmentRequest{
		DoctorID:        doctorID,
		AppointmentDate: "2026-11-02",
		AppointmentTime: "09:30",
		Reason:          "checkup",
	}
	first, err := env.svc.Create(context.Background(), patientUser, req)
	require.NoError(t, err)
	second, err := env.svc.Create(context.Background(), patientUser, req)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, first.AppointmentTime, second.AppointmentTime)
	assert.Equal(t, patient.ID, second.PatientID)
	env.repo.AssertNumberOfCalls(t, "Create", 2)
}

func TestCreate_PatientCannotBookForOthers(t *testing.T) {
	env := setupService(Config{})
	patientUser := &model.User{ID: uuid.New(), UserType: model.UserTypePatient}
	env.patients.On("GetByUserID", mock.Anything, patientUser.ID).
		Return(&model.Patient{Base: model.Base{ID: uuid.New()}, UserID: patientUser.ID}, nil)

	other := uuid.New()
	_, err := env.svc.Create(context.Background(), patientUser, &model.CreateAppointmentRequest{
		DoctorID:        uuid.New(),
		PatientID:       &other,
		AppointmentDate: "2026-11-02",
		AppointmentTime: "09:30",
		Reason:          "checkup",
	})
	assert.True(t, apperrors.Is(err, apperrors.ErrForbidden))
	env.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUpdate_AnyTransitionByEitherLeg(t *testing.T) {
	env := setupService(Config{})
	doctorUser := uuid.New()
	appt := &model.Appointment{
		Base:          model.Base{ID: uuid.New()},
		Status:        model.AppointmentStatusCompleted,
		PaymentStatus: model.PaymentStatusPaid,
		Doctor:        model.Party{UserID: doctorUser},
		Patient:       model.Party{UserID: uuid.New()},
	}
	env.repo.On("Get", mock.Anything, appt.ID).Return(appt, nil)
	env.repo.On("Update", mock.Anything, appt).Return(nil)

	pending := model.AppointmentStatusPending
	updated, err := env.svc.Update(context.Background(), &model.User{ID: doctorUser, UserType: model.UserTypeDoctor},
		appt.ID, &model.UpdateAppointmentRequest{Status: &pending})
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusPending, updated.Status)
	assert.Equal(t, model.PaymentStatusPaid, updated.PaymentStatus)

	_, err = env.svc.Update(context.Background(), &model.User{ID: uuid.New(), UserType: model.UserTypePatient},
		appt.ID, &model.UpdateAppointmentRequest{Status: &pending})
	assert.True(t, apperrors.Is(err, apperrors.ErrForbidden))
}

func TestAllAppointments_FeatureFlag(t *testing.T) {
	closed := setupService(Config{})
	_, err := closed.svc.AllAppointments(context.Background(), nil)
	assert.True(t, apperrors.Is(err, apperrors.ErrForbidden))

	closed.repo.On("List", mock.Anything, model.AppointmentFilter{}).Return([]*model.Appointment{}, nil)
	_, err = closed.svc.AllAppointments(context.Background(), &model.User{IsStaff: true})
	assert.NoError(t, err)

	open := setupService(Config{PublicFeed: true})
	open.repo.On("List", mock.Anything, model.AppointmentFilter{}).Return([]*model.Appointment{{}}, nil)
	list, err := open.svc.AllAppointments(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
