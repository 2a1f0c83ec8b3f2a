package specialty

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/internal/repository"
	"github.com/jwalitptl/hospital-api/internal/service/rbac"
	apperrors "github.com/jwalitptl/hospital-api/pkg/errors"
	"github.com/jwalitptl/hospital-api/pkg/logger"
)

const (
	directoryKey = "specialties:all"
	directoryTTL = 5 * time.Minute
)

// Service serves the specialty directory. The unfiltered list is read far
// more often than it changes, so it is cached in process and dropped on
// every write.
type Service struct {
	repo   repository.SpecialtyRepository
	access *rbac.Service
	cache  *cache.Cache
	logger *logger.Logger
}

func NewService(repo repository.SpecialtyRepository, access *rbac.Service, logger *logger.Logger) *Service {
	return &Service{
		repo:   repo,
		access: access,
		cache:  cache.New(directoryTTL, 2*directoryTTL),
		logger: logger,
	}
}

func (s *Service) List(ctx context.Context, search string) ([]*model.Specialty, error) {
	search = strings.TrimSpace(search)
	if search == "" {
		if cached, ok := s.cache.Get(directoryKey); ok {
			return cached.([]*model.Specialty), nil
		}
	}

	specialties, err := s.repo.List(ctx, search)
	if err != nil {
		return nil, err
	}
	if search == "" {
		s.cache.SetDefault(directoryKey, specialties)
	}
	return specialties, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Specialty, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, actor *model.User, req *model.SpecialtyRequest) (*model.Specialty, error) {
	if err := s.access.RequireAdmin(actor, "create_specialty", ""); err != nil {
		return nil, err
	}

	specialty := &model.Specialty{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Icon:        req.Icon,
	}
	if err := s.repo.Create(ctx, specialty); err != nil {
		return nil, nameTaken(err)
	}
	s.Invalidate()
	return specialty, nil
}

func (s *Service) Update(ctx context.Context, actor *model.User, id uuid.UUID, req *model.SpecialtyRequest) (*model.Specialty, error) {
	if err := s.access.RequireAdmin(actor, "update_specialty", ""); err != nil {
		return nil, err
	}

	specialty, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	specialty.Name = strings.TrimSpace(req.Name)
	specialty.Description = req.Description
	specialty.Icon = req.Icon

	if err := s.repo.Update(ctx, specialty); err != nil {
		return nil, nameTaken(err)
	}
	s.Invalidate()
	return specialty, nil
}

func (s *Service) Delete(ctx context.Context, actor *model.User, id uuid.UUID) error {
	if err := s.access.RequireAdmin(actor, "delete_specialty", ""); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.Invalidate()
	return nil
}

// Seed creates any of the default specialties that are missing and returns
// how many were added.
func (s *Service) Seed(ctx context.Context) (int, error) {
	created := 0
	for _, def := range model.DefaultSpecialties {
		_, err := s.repo.GetByName(ctx, def.Name)
		if err == nil {
			continue
		}
		if !apperrors.Is(err, apperrors.ErrNotFound) {
			return created, err
		}

		specialty := &model.Specialty{Name: def.Name, Description: def.Description, Icon: def.Icon}
		if err := s.repo.Create(ctx, specialty); err != nil {
			return created, err
		}
		created++
	}

	if created > 0 {
		s.Invalidate()
	}
	s.logger.Info("specialties seeded", "created", created)
	return created, nil
}

// Invalidate drops the cached directory. The auth service calls it after
// doctor registration, which may create a specialty.
func (s *Service) Invalidate() {
	s.cache.Delete(directoryKey)
}

func nameTaken(err error) error {
	if apperrors.Is(err, apperrors.ErrConflict) {
		return apperrors.FieldError("name", "specialty with this name already exists.")
	}
	return err
}
