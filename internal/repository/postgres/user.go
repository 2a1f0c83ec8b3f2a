package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/internal/repository"
)

const userColumns = `
	id, email, password_hash, first_name, last_name, phone_number, address,
	profile_picture, user_type, gender, date_of_birth, blood_group,
	is_staff, is_active, date_joined, updated_at
`

type userRepository struct {
	BaseRepository
}

func NewUserRepository(base BaseRepository) repository.UserRepository {
	return &userRepository{base}
}

func insertUser(ctx context.Context, q sqlx.ExecerContext, user *model.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now().UTC()
	user.DateJoined = now
	user.UpdatedAt = now
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))

	_, err := q.ExecContext(ctx, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.FirstName,
		user.LastName,
		user.PhoneNumber,
		user.Address,
		user.ProfilePicture,
		user.UserType,
		user.Gender,
		user.DateOfBirth,
		user.BloodGroup,
		user.IsStaff,
		user.IsActive,
		user.DateJoined,
		user.UpdatedAt,
	)
	return translateError(err, "user", "create user")
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return insertUser(ctx, r.db, user)
}

func (r *userRepository) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var user model.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		return nil, translateError(err, "user", "get user")
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	var user model.User
	if err := r.db.GetContext(ctx, &user, query, strings.ToLower(strings.TrimSpace(email))); err != nil {
		return nil, translateError(err, "user", "get user by email")
	}
	return &user, nil
}

func (r *userRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`,
		strings.ToLower(strings.TrimSpace(email)),
	)
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return exists, nil
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	query := `
		UPDATE users
		SET email = $1, first_name = $2, last_name = $3, phone_number = $4,
			address = $5, profile_picture = $6, user_type = $7, gender = $8,
			date_of_birth = $9, blood_group = $10, is_staff = $11, is_active = $12,
			updated_at = $13
		WHERE id = $14
	`
	user.UpdatedAt = time.Now().UTC()

	result, err := r.db.ExecContext(ctx, query,
		strings.ToLower(strings.TrimSpace(user.Email)),
		user.FirstName,
		user.LastName,
		user.PhoneNumber,
		user.Address,
		user.ProfilePicture,
		user.UserType,
		user.Gender,
		user.DateOfBirth,
		user.BloodGroup,
		user.IsStaff,
		user.IsActive,
		user.UpdatedAt,
		user.ID,
	)
	if err != nil {
		return translateError(err, "user", "update user")
	}
	return checkAffected(result, "user")
}

func (r *userRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2`,
		passwordHash, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return checkAffected(result, "user")
}

func (r *userRepository) CreateDoctorAccount(ctx context.Context, user *model.User, doctor *model.Doctor, specialtyName string) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := insertUser(ctx, tx, user); err != nil {
			return err
		}

		specialty, err := getOrCreateSpecialty(ctx, tx, specialtyName)
		if err != nil {
			return err
		}

		doctor.UserID = user.ID
		doctor.SpecialtyID = &specialty.ID
		doctor.SpecialtyName = &specialty.Name
		return insertDoctor(ctx, tx, doctor)
	})
}

func (r *userRepository) CreatePatientAccount(ctx context.Context, user *model.User, patient *model.Patient) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := insertUser(ctx, tx, user); err != nil {
			return err
		}
		patient.UserID = user.ID
		return insertPatient(ctx, tx, patient)
	})
}
