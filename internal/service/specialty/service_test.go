package specialty

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

var admin = &model.User{ID: uuid.New(), UserType: model.UserTypeAdmin}

func setupService() (*Service, *mocks.SpecialtyRepository) {
	repo := &mocks.SpecialtyRepository{}
	access := rbac.NewService(&mocks.DoctorRepository{}, &mocks.PatientRepository{}, logger.Nop())
	return NewService(repo, access, logger.Nop()), repo
}

func TestList_CachesUnfilteredDirectory(t *testing.T) {
	svc, repo := setupService()
	all := []*model.Specialty{{Name: "Cardiologist"}, {Name: "Dentist"}}
	repo.On("List", mock.Anything, "").Return(all, nil).Once()
	repo.On("List", mock.Anything, "card").Return(all[:1], nil).Twice()

	for i := 0; i < 3; i++ {
		got, err := svc.List(context.Background(), "")
		require.NoError(t, err)
		assert.Len(t, got, 2)
	}
	for i := 0; i < 2; i++ {
		got, err := svc.List(context.Background(), " card ")
		require.NoError(t, err)
		assert.Len(t, got, 1)
	}
	repo.AssertExpectations(t)
}

func TestCreate_InvalidatesCache(t *testing.T) {
	svc, repo := setupService()
	repo.On("List", mock.Anything, "").Return([]*model.Specialty{}, nil).Twice()
	repo.On("Create", mock.Anything, mock.AnythingOfType("*model.Specialty")).Return(nil)

	_, err := svc.List(context.Background(), "")
	require.NoError(t, err)

	created, err := svc.Create(context.Background(), admin, &model.SpecialtyRequest{Name: " Oncologist "})
	require.NoError(t, err)
	assert.Equal(t, "Oncologist", created.Name)

	_, err = svc.List(context.Background(), "")
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestCreate_AdminOnly(t *testing.T) {
	svc, repo := setupService()

	_, err := svc.Create(context.Background(), &model.User{UserType: model.UserTypeDoctor}, &model.SpecialtyRequest{Name: "X"})
	assert.True(t, apperrors.Is(err, apperrors.ErrForbidden))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreate_DuplicateName(t *testing.T) {
	svc, repo := setupService()
	repo.On("Create", mock.Anything, mock.Anything).Return(apperrors.Conflict("specialty already exists", nil))

	_, err := svc.Create(context.Background(), admin, &model.SpecialtyRequest{Name: "Dentist"})
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrBadRequest, appErr.Code)
	assert.NotEmpty(t, appErr.Fields["name"])
}

func TestSeed_SkipsExisting(t *testing.T) {
	svc, repo := setupService()
	for i, def := range model.DefaultSpecialties {
		if i < 3 {
			repo.On("GetByName", mock.Anything, def.Name).Return(&model.Specialty{Name: def.Name}, nil)
			continue
		}
		repo.On("GetByName", mock.Anything, def.Name).Return(nil, apperrors.NotFound("specialty", nil))
	}
	repo.On("Create", mock.Anything, mock.AnythingOfType("*model.Specialty")).Return(nil)

	created, err := svc.Seed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, len(model.DefaultSpecialties)-3, created)
	repo.AssertNumberOfCalls(t, "Create", len(model.DefaultSpecialties)-3)
}
