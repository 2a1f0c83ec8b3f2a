package user

import (
	"context"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/internal/repository"
	"github.com/jwalitptl/hospital-api/internal/service/rbac"
	apperrors "github.com/jwalitptl/hospital-api/pkg/errors"
	"github.com/jwalitptl/hospital-api/pkg/logger"
	"github.com/jwalitptl/hospital-api/pkg/security"
	"github.com/jwalitptl/hospital-api/pkg/storage"
)

type Service struct {
	users  repository.UserRepository
	access *rbac.Service
	hasher security.PasswordHasher
	media  storage.Store
	logger *logger.Logger
}

func NewService(users repository.UserRepository, access *rbac.Service, hasher security.PasswordHasher,
	media storage.Store, logger *logger.Logger) *Service {
	return &Service{
		users:  users,
		access: access,
		hasher: hasher,
		media:  media,
		logger: logger,
	}
}

// UpdateProfile applies the caller's own profile changes. picture may be nil.
func (s *Service) UpdateProfile(ctx context.Context, actor *model.User, req *model.UpdateProfileRequest, picture io.Reader) (*model.User, error) {
	user, err := s.users.Get(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if err := applyProfile(user, req); err != nil {
		return nil, err
	}
	if err := s.save(ctx, user, picture); err != nil {
		return nil, err
	}
	return user, nil
}

// AdminUpdate lets an admin edit any account including its role flags.
func (s *Service) AdminUpdate(ctx context.Context, actor *model.User, id uuid.UUID, req *model.AdminUpdateUserRequest, picture io.Reader) (*model.User, error) {
	if err := s.access.RequireAdmin(actor, "update_user", "Only admins can update other users."); err != nil {
		return nil, err
	}

	user, err := s.users.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyProfile(user, &req.UpdateProfileRequest); err != nil {
		return nil, err
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.UserType != nil {
		user.UserType = model.UserType(*req.UserType)
	}
	if req.IsStaff != nil {
		user.IsStaff = *req.IsStaff
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := s.save(ctx, user, picture); err != nil {
		return nil, err
	}

	s.logger.Info("user updated by admin",
		"user_id", user.ID.String(),
		"admin_id", actor.ID.String(),
	)
	return user, nil
}

// CreateAdmin provisions an administrator at deploy time. An existing
// account with the email is promoted instead and keeps its password.
func (s *Service) CreateAdmin(ctx context.Context, email, password, firstName, lastName string) (*model.User, bool, error) {
	existing, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		existing.IsStaff = true
		existing.IsActive = true
		if err := s.users.Update(ctx, existing); err != nil {
			return nil, false, err
		}
		s.logger.Info("existing user promoted to admin", "user_id", existing.ID.String())
		return existing, false, nil
	case !apperrors.Is(err, apperrors.ErrNotFound):
		return nil, false, err
	}

	if problems := security.ValidatePassword(password, email, firstName, lastName); len(problems) > 0 {
		return nil, false, apperrors.Validation(map[string][]string{"password": problems})
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, false, apperrors.Internal(err)
	}

	admin := &model.User{
		Email:        email,
		PasswordHash: hash,
		FirstName:    firstName,
		LastName:     lastName,
		UserType:     model.UserTypeAdmin,
		Gender:       model.GenderOther,
		IsStaff:      true,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, admin); err != nil {
		return nil, false, err
	}

	s.logger.Info("admin created", "user_id", admin.ID.String())
	return admin, true, nil
}

// save stores picture, persists user and only then removes the replaced file.
func (s *Service) save(ctx context.Context, user *model.User, picture io.Reader) error {
	var previous *string
	if picture != nil {
		url, err := storage.SaveProfilePicture(ctx, s.media, picture)
		if err != nil {
			return err
		}
		previous = user.ProfilePicture
		user.ProfilePicture = &url
	}

	if err := s.users.Update(ctx, user); err != nil {
		if picture != nil {
			s.remove(ctx, *user.ProfilePicture)
		}
		return err
	}

	if previous != nil {
		s.remove(ctx, *previous)
	}
	return nil
}

func (s *Service) remove(ctx context.Context, url string) {
	if err := s.media.Delete(ctx, url); err != nil {
		s.logger.Error(err, "failed to remove profile picture", "url", url)
	}
}

func applyProfile(user *model.User, req *model.UpdateProfileRequest) error {
	if req.FirstName != nil {
		user.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		user.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.PhoneNumber != nil {
		user.PhoneNumber = *req.PhoneNumber
	}
	if req.Address != nil {
		user.Address = *req.Address
	}
	if req.Gender != nil {
		user.Gender = model.Gender(*req.Gender)
	}
	if req.BloodGroup != nil {
		user.BloodGroup = *req.BloodGroup
	}
	if req.DateOfBirth != nil {
		if *req.DateOfBirth == "" {
			user.DateOfBirth = nil
		} else {
			dob, err := model.ParseDate(*req.DateOfBirth)
			if err != nil {
				return apperrors.FieldError("date_of_birth", "Date has wrong format. Use YYYY-MM-DD.")
			}
			user.DateOfBirth = &dob
		}
	}
	return nil
}
