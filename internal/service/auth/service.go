package auth

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/internal/repository"
	"github.com/jwalitptl/hospital-api/pkg/auth"
	apperrors "github.com/jwalitptl/hospital-api/pkg/errors"
	"github.com/jwalitptl/hospital-api/pkg/logger"
	"github.com/jwalitptl/hospital-api/pkg/security"
	"github.com/jwalitptl/hospital-api/pkg/storage"
)

const (
	msgInvalidCredentials = "No active account found with the given credentials"
	msgInvalidToken       = "Token is invalid or expired"
	msgPasswordMismatch   = "Password fields didn't match."
	msgEmailTaken         = "A user with that email already exists."
)

// SpecialtyDirectory is told when doctor registration may have created a
// specialty, so cached listings pick it up.
type SpecialtyDirectory interface {
	Invalidate()
}

type Service struct {
	users     repository.UserRepository
	jwt       auth.JWTService
	revoked   auth.RevocationStore
	hasher    security.PasswordHasher
	media     storage.Store
	directory SpecialtyDirectory
	logger    *logger.Logger
}

// NewService wires the auth service. directory may be nil.
func NewService(users repository.UserRepository, jwt auth.JWTService, revoked auth.RevocationStore,
	hasher security.PasswordHasher, media storage.Store, directory SpecialtyDirectory, logger *logger.Logger) *Service {
	return &Service{
		users:     users,
		jwt:       jwt,
		revoked:   revoked,
		hasher:    hasher,
		media:     media,
		directory: directory,
		logger:    logger,
	}
}

func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.TokenResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Unauthorized(msgInvalidCredentials)
		}
		return nil, err
	}
	if !user.IsActive || s.hasher.Compare(user.PasswordHash, req.Password) != nil {
		s.logger.Warn("login failed", "user_id", user.ID.String())
		return nil, apperrors.Unauthorized(msgInvalidCredentials)
	}

	return s.issueTokens(user)
}

// Refresh rotates the pair: the presented refresh token is revoked so it
// cannot be replayed.
func (s *Service) Refresh(ctx context.Context, refresh string) (*model.TokenResponse, error) {
	claims, err := s.validateRefresh(ctx, refresh)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Get(ctx, claims.UserID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Unauthorized(msgInvalidToken)
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.Unauthorized(msgInvalidToken)
	}

	if err := s.revoke(ctx, claims); err != nil {
		return nil, err
	}
	return s.issueTokens(user)
}

func (s *Service) Logout(ctx context.Context, refresh string) error {
	claims, err := s.validateRefresh(ctx, refresh)
	if err != nil {
		return err
	}
	return s.revoke(ctx, claims)
}

// Authenticate resolves an access token to its active user.
func (s *Service) Authenticate(ctx context.Context, token string) (*model.User, error) {
	claims, err := s.jwt.ValidateAccessToken(token)
	if err != nil {
		return nil, apperrors.Unauthorized("Given token not valid for any token type")
	}

	user, err := s.users.Get(ctx, claims.UserID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Unauthorized("User not found")
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.Unauthorized("User is inactive")
	}
	return user, nil
}

// Register creates a bare account. Role profiles come from RegisterDoctor
// and RegisterPatient.
func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	if err := s.checkPasswords(req.Password, req.Password2, req.Email, req.FirstName, req.LastName); err != nil {
		return nil, err
	}
	if err := s.checkEmailFree(ctx, req.Email); err != nil {
		return nil, err
	}

	user := &model.User{
		Email:       req.Email,
		FirstName:   strings.TrimSpace(req.FirstName),
		LastName:    strings.TrimSpace(req.LastName),
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
		UserType:    model.UserType(req.UserType),
		Gender:      genderOrDefault(req.Gender),
		BloodGroup:  req.BloodGroup,
		IsActive:    true,
	}
	if user.UserType == "" {
		user.UserType = model.UserTypePatient
	}
	if req.DateOfBirth != "" {
		dob, err := model.ParseDate(req.DateOfBirth)
		if err != nil {
			return nil, apperrors.FieldError("date_of_birth", "Date has wrong format. Use YYYY-MM-DD.")
		}
		user.DateOfBirth = &dob
	}

	if err := s.setPassword(user, req.Password); err != nil {
		return nil, err
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", "user_id", user.ID.String(), "user_type", string(user.UserType))
	return user, nil
}

// RegisterDoctor creates the user, the specialty if it is new, and the
// doctor profile together. picture may be nil.
func (s *Service) RegisterDoctor(ctx context.Context, req *model.DoctorRegistrationRequest, picture io.Reader) (*model.RegistrationResult, error) {
	if err := s.checkPasswords(req.Password, req.Password2, req.Email, req.FirstName, req.LastName); err != nil {
		return nil, err
	}

	doctor := &model.Doctor{
		Bio:             req.Bio,
		Education:       req.Education,
		ExperienceYears: req.ExperienceYears,
		ConsultationFee: req.ConsultationFee,
		AvailableDays:   strings.TrimSpace(req.AvailableDays),
		IsAvailable:     true,
		IsFeatured:      req.IsFeatured,
	}
	start, end, err := model.ParseWorkingHours(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}
	doctor.StartTime, doctor.EndTime = start, end

	if err := s.checkEmailFree(ctx, req.Email); err != nil {
		return nil, err
	}

	user := &model.User{
		Email:       req.Email,
		FirstName:   strings.TrimSpace(req.FirstName),
		LastName:    strings.TrimSpace(req.LastName),
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
		UserType:    model.UserTypeDoctor,
		Gender:      model.Gender(req.Gender),
		IsActive:    true,
	}
	if err := s.setPassword(user, req.Password); err != nil {
		return nil, err
	}
	if err := s.attachPicture(ctx, user, picture); err != nil {
		return nil, err
	}

	if err := s.users.CreateDoctorAccount(ctx, user, doctor, strings.TrimSpace(req.Specialization)); err != nil {
		s.discardPicture(ctx, user)
		return nil, err
	}
	if s.directory != nil {
		s.directory.Invalidate()
	}
	doctor.User = summarize(user)

	s.logger.Info("doctor registered", "user_id", user.ID.String(), "doctor_id", doctor.ID.String())
	return &model.RegistrationResult{
		User:    user,
		Doctor:  doctor,
		Message: "Doctor registered successfully",
	}, nil
}

func (s *Service) RegisterPatient(ctx context.Context, req *model.PatientRegistrationRequest, picture io.Reader) (*model.RegistrationResult, error) {
	if err := s.checkPasswords(req.Password, req.Password2, req.Email, req.FirstName, req.LastName); err != nil {
		return nil, err
	}

	dob, err := model.ParseDate(req.DateOfBirth)
	if err != nil {
		return nil, apperrors.FieldError("date_of_birth", "Date has wrong format. Use YYYY-MM-DD.")
	}

	if err := s.checkEmailFree(ctx, req.Email); err != nil {
		return nil, err
	}

	user := &model.User{
		Email:       req.Email,
		FirstName:   strings.TrimSpace(req.FirstName),
		LastName:    strings.TrimSpace(req.LastName),
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
		UserType:    model.UserTypePatient,
		Gender:      genderOrDefault(req.Gender),
		DateOfBirth: &dob,
		BloodGroup:  req.BloodGroup,
		IsActive:    true,
	}
	patient := &model.Patient{
		EmergencyContact: req.EmergencyContact,
		MedicalHistory:   req.MedicalHistory,
		Allergies:        req.Allergies,
		DateOfBirth:      &dob,
		BloodGroup:       req.BloodGroup,
	}

	if err := s.setPassword(user, req.Password); err != nil {
		return nil, err
	}
	if err := s.attachPicture(ctx, user, picture); err != nil {
		return nil, err
	}

	if err := s.users.CreatePatientAccount(ctx, user, patient); err != nil {
		s.discardPicture(ctx, user)
		return nil, err
	}
	patient.User = summarize(user)

	s.logger.Info("patient registered", "user_id", user.ID.String(), "patient_id", patient.ID.String())
	return &model.RegistrationResult{
		User:    user,
		Patient: patient,
		Message: "Patient registered successfully",
	}, nil
}

func (s *Service) ChangePassword(ctx context.Context, actor *model.User, req *model.ChangePasswordRequest) error {
	if s.hasher.Compare(actor.PasswordHash, req.OldPassword) != nil {
		return apperrors.FieldError("old_password", "Wrong password.")
	}
	if err := s.checkPasswords(req.NewPassword, req.ConfirmPassword, actor.Email, actor.FirstName, actor.LastName); err != nil {
		return err
	}

	hash, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		return apperrors.Internal(err)
	}
	if err := s.users.UpdatePassword(ctx, actor.ID, hash); err != nil {
		return err
	}

	s.logger.Info("password changed", "user_id", actor.ID.String())
	return nil
}

func (s *Service) issueTokens(user *model.User) (*model.TokenResponse, error) {
	sub := auth.Subject{
		UserID:   user.ID,
		Email:    user.Email,
		UserType: string(user.UserType),
	}

	access, err := s.jwt.GenerateAccessToken(sub)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	refresh, err := s.jwt.GenerateRefreshToken(sub)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	return &model.TokenResponse{
		Access:  access,
		Refresh: refresh,
		User:    user,
	}, nil
}

func (s *Service) validateRefresh(ctx context.Context, refresh string) (*auth.Claims, error) {
	claims, err := s.jwt.ValidateRefreshToken(refresh)
	if err != nil {
		return nil, apperrors.Unauthorized(msgInvalidToken)
	}

	revoked, err := s.revoked.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if revoked {
		return nil, apperrors.Unauthorized("Token is blacklisted")
	}
	return claims, nil
}

// revoke keeps the jti blacklisted until the token would have expired anyway.
func (s *Service) revoke(ctx context.Context, claims *auth.Claims) error {
	ttl := s.jwt.RefreshTTL()
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	if ttl <= 0 {
		return nil
	}
	if err := s.revoked.Revoke(ctx, claims.ID, ttl); err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

func (s *Service) checkPasswords(password, confirm string, personal ...string) error {
	if password != confirm {
		return apperrors.FieldError("password", msgPasswordMismatch)
	}
	if problems := security.ValidatePassword(password, personal...); len(problems) > 0 {
		return apperrors.Validation(map[string][]string{"password": problems})
	}
	return nil
}

func (s *Service) checkEmailFree(ctx context.Context, email string) error {
	exists, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		return apperrors.FieldError("email", msgEmailTaken)
	}
	return nil
}

func (s *Service) setPassword(user *model.User, password string) error {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return apperrors.Internal(err)
	}
	user.PasswordHash = hash
	return nil
}

func (s *Service) attachPicture(ctx context.Context, user *model.User, picture io.Reader) error {
	if picture == nil {
		return nil
	}
	url, err := storage.SaveProfilePicture(ctx, s.media, picture)
	if err != nil {
		return err
	}
	user.ProfilePicture = &url
	return nil
}

func (s *Service) discardPicture(ctx context.Context, user *model.User) {
	if user.ProfilePicture == nil {
		return
	}
	if err := s.media.Delete(ctx, *user.ProfilePicture); err != nil {
		s.logger.Error(err, "failed to remove orphaned upload", "url", *user.ProfilePicture)
	}
}

func genderOrDefault(g string) model.Gender {
	if g == "" {
		return model.GenderOther
	}
	return model.Gender(g)
}

func summarize(u *model.User) model.UserSummary {
	return model.UserSummary{
		ID:             u.ID,
		Email:          u.Email,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		PhoneNumber:    u.PhoneNumber,
		ProfilePicture: u.ProfilePicture,
		Gender:         u.Gender,
	}
}
