package specialty

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
	"github.com/jwalitptl/hospital-api/internal/service/specialty"
	"github.com/jwalitptl/hospital-api/pkg/logger"
)

func setup(t *testing.T) (http.Handler, *mocks.SpecialtyRepository) {
	repo := &mocks.SpecialtyRepository{}
	access := rbac.NewService(&mocks.DoctorRepository{}, &mocks.PatientRepository{}, logger.Nop())
	svc := specialty.NewService(repo, access, logger.Nop())

	tokens := handlertest.Tokens{
		"admin":   {ID: uuid.New(), UserType: model.UserTypeAdmin, IsActive: true},
		"patient": {ID: uuid.New(), UserType: model.UserTypePatient, IsActive: true},
	}
	return handlertest.NewRouter(t, tokens, NewHandler(svc)), repo
}

func TestListSpecialties_Public(t *testing.T) {
	router, repo := setup(t)
	repo.On("List", mock.Anything, "cardio").
		Return([]*model.Specialty{{Base: model.Base{ID: uuid.New()}, Name: "Cardiologist"}}, nil)

	w := handlertest.Do(router, http.MethodGet, "/api/specialties/?search=cardio", "", nil)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var got []model.Specialty
	require.NoError(t, json.Unmarshal(handlertest.Decode(t, w).Data, &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Cardiologist", got[0].Name)
}

func TestCreateSpecialty(t *testing.T) {
	tests := []struct {
		name   string
		token  string
		body   map[string]string
		status int
	}{
		{name: "anonymous", token: "", body: map[string]string{"name": "Urologist"}, status: http.StatusUnauthorized},
		{name: "patient", token: "patient", body: map[string]string{"name": "Urologist"}, status: http.StatusForbidden},
		{name: "missing name", token: "admin", body: map[string]string{}, status: http.StatusBadRequest},
		{name: "admin", token: "admin", body: map[string]string{"name": " Urologist "}, status: http.StatusCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, repo := setup(t)
			repo.On("Create", mock.Anything, mock.AnythingOfType("*model.Specialty")).Return(nil)

			w := handlertest.Do(router, http.MethodPost, "/api/specialties/", tt.token, tt.body)

			require.Equal(t, tt.status, w.Code, w.Body.String())
			if tt.status != http.StatusCreated {
				repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
				return
			}
			var got model.Specialty
			require.NoError(t, json.Unmarshal(handlertest.Decode(t, w).Data, &got))
			assert.Equal(t, "Urologist", got.Name)
		})
	}
}
