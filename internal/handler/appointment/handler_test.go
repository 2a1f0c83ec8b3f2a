package appointment

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
	"github.com/jwalitptl/hospital-api/internal/service/appointment"
	"github.com/jwalitptl/hospital-api/internal/service/rbac"
	"github.com/jwalitptl/hospital-api/pkg/logger"
)

var (
	adminUser   = &model.User{ID: uuid.New(), UserType: model.UserTypeAdmin, IsActive: true}
	doctorUser  = &model.User{ID: uuid.New(), UserType: model.UserTypeDoctor, IsActive: true}
	patientUser = &model.User{ID: uuid.New(), UserType: model.UserTypePatient, IsActive: true}

	doctorProfile  = &model.Doctor{Base: model.Base{ID: uuid.New()}, UserID: doctorUser.ID}
	patientProfile = &model.Patient{Base: model.Base{ID: uuid.New()}, UserID: patientUser.ID}
)

type testEnv struct {
	router   http.Handler
	repo     *mocks.AppointmentRepository
	doctors  *mocks.DoctorRepository
	patients *mocks.PatientRepository
}

func setup(t *testing.T, cfg appointment.Config) *testEnv {
	repo := &mocks.AppointmentRepository{}
	doctors := &mocks.DoctorRepository{}
	patients := &mocks.PatientRepository{}
	doctors.On("GetByUserID", mock.Anything, doctorUser.ID).Return(doctorProfile, nil)
	patients.On("GetByUserID", mock.Anything, patientUser.ID).Return(patientProfile, nil)

	access := rbac.NewService(doctors, patients, logger.Nop())
	svc := appointment.NewService(repo, doctors, patients, access, cfg, logger.Nop())

	tokens := handlertest.Tokens{"admin": adminUser, "doctor": doctorUser, "patient": patientUser}
	return &testEnv{
		router:   handlertest.NewRouter(t, tokens, NewHandler(svc)),
		repo:     repo,
		doctors:  doctors,
		patients: patients,
	}
}

func TestMyAppointments(t *testing.T) {
	tests := []struct {
		name   string
		token  string
		filter model.AppointmentFilter
	}{
		{name: "doctor sees own", token: "doctor", filter: model.AppointmentFilter{DoctorID: &doctorProfile.ID}},
		{name: "patient sees own", token: "patient", filter: model.AppointmentFilter{PatientID: &patientProfile.ID}},
		{name: "admin sees all", token: "admin", filter: model.AppointmentFilter{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setup(t, appointment.Config{})
			id := uuid.New()
			env.repo.On("List", mock.Anything, tt.filter).Return([]*model.Appointment{{Base: model.Base{ID: id}}}, nil)

			w := handlertest.Do(env.router, http.MethodGet, "/api/appointments/my_appointments/", tt.token, nil)

			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			var got []model.Appointment
			require.NoError(t, json.Unmarshal(handlertest.Decode(t, w).Data, &got))
			require.Len(t, got, 1)
			assert.Equal(t, id, got[0].ID)
			env.repo.AssertExpectations(t)
		})
	}
}

func TestMyAppointmentsRequiresToken(t *testing.T) {
	env := setup(t, appointment.Config{})

	w := handlertest.Do(env.router, http.MethodGet, "/api/appointments/my_appointments/", "", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAllAppointmentsFeed(t *testing.T) {
	tests := []struct {
		name   string
		public bool
		token  string
		status int
	}{
		{name: "closed feed anonymous", public: false, token: "", status: http.StatusUnauthorized},
		{name: "closed feed patient", public: false, token: "patient", status: http.StatusForbidden},
		{name: "closed feed admin", public: false, token: "admin", status: http.StatusOK},
		{name: "public feed anonymous", public: true, token: "", status: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setup(t, appointment.Config{PublicFeed: tt.public})
			env.repo.On("List", mock.Anything, model.AppointmentFilter{}).Return([]*model.Appointment{}, nil)

			w := handlertest.Do(env.router, http.MethodGet, "/api/appointments/all_appointments/", tt.token, nil)

			assert.Equal(t, tt.status, w.Code, w.Body.String())
		})
	}
}

func TestListAppointmentsFilters(t *testing.T) {
	env := setup(t, appointment.Config{})
	status := model.AppointmentStatus("confirmed")
	date := model.NewDate(2025, 3, 14)
	env.repo.On("List", mock.Anything, model.AppointmentFilter{
		PatientID: &patientProfile.ID,
		Status:    &status,
		Date:      &date,
	}).Return([]*model.Appointment{}, nil)

	w := handlertest.Do(env.router, http.MethodGet, "/api/appointments/?status=confirmed&date=2025-03-14", "patient", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	env.repo.AssertExpectations(t)

	w = handlertest.Do(env.router, http.MethodGet, "/api/appointments/?status=rescheduled", "patient", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []string{`"rescheduled" is not a valid choice.`}, handlertest.Decode(t, w).Errors["status"])
}

func TestCreateAppointment_ReasonOptional(t *testing.T) {
	env := setup(t, appointment.Config{})
	env.doctors.On("Get", mock.Anything, doctorProfile.ID).Return(doctorProfile, nil)
	env.patients.On("Get", mock.Anything, patientProfile.ID).Return(patientProfile, nil)
	env.repo.On("Create", mock.Anything, mock.MatchedBy(func(a *model.Appointment) bool {
		return a.PatientID == patientProfile.ID && a.Reason == ""
	})).Return(nil)

	w := handlertest.Do(env.router, http.MethodPost, "/api/appointments/", "patient", map[string]string{
		"doctor_id":        doctorProfile.ID.String(),
		"appointment_date": "2025-03-14",
		"appointment_time": "10:30",
	})

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Empty(t, handlertest.Decode(t, w).Errors)
	env.repo.AssertExpectations(t)
}

func TestListAppointmentsSearch(t *testing.T) {
	env := setup(t, appointment.Config{})
	env.repo.On("List", mock.Anything, model.AppointmentFilter{Search: "smith"}).Return([]*model.Appointment{}, nil)

	w := handlertest.Do(env.router, http.MethodGet, "/api/appointments/?search=smith", "admin", nil)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	env.repo.AssertExpectations(t)
}
