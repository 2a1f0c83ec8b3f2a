package postgres

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/internal/repository"
)

const specialtyColumns = `id, name, description, icon, created_at, updated_at`

type specialtyRepository struct {
	BaseRepository
}

func NewSpecialtyRepository(base BaseRepository) repository.SpecialtyRepository {
	return &specialtyRepository{base}
}

func (r *specialtyRepository) Create(ctx context.Context, specialty *model.Specialty) error {
	query := `
		INSERT INTO specialties (` + specialtyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	specialty.ID = uuid.New()
	specialty.CreatedAt = time.Now().UTC()
	specialty.UpdatedAt = specialty.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		specialty.ID,
		specialty.Name,
		specialty.Description,
		specialty.Icon,
		specialty.CreatedAt,
		specialty.UpdatedAt,
	)
	return translateError(err, "specialty", "create specialty")
}

func (r *specialtyRepository) Get(ctx context.Context, id uuid.UUID) (*model.Specialty, error) {
	var s model.Specialty
	err := r.db.GetContext(ctx, &s, `SELECT `+specialtyColumns+` FROM specialties WHERE id = $1`, id)
	if err != nil {
		return nil, translateError(err, "specialty", "get specialty")
	}
	return &s, nil
}

func (r *specialtyRepository) GetByName(ctx context.Context, name string) (*model.Specialty, error) {
	var s model.Specialty
	err := r.db.GetContext(ctx, &s, `SELECT `+specialtyColumns+` FROM specialties WHERE name = $1`, name)
	if err != nil {
		return nil, translateError(err, "specialty", "get specialty by name")
	}
	return &s, nil
}

func (r *specialtyRepository) Update(ctx context.Context, specialty *model.Specialty) error {
	query := `
		UPDATE specialties
		SET name = $1, description = $2, icon = $3, updated_at = $4
		WHERE id = $5
	`
	specialty.UpdatedAt = time.Now().UTC()

	result, err := r.db.ExecContext(ctx, query,
		specialty.Name,
		specialty.Description,
		specialty.Icon,
		specialty.UpdatedAt,
		specialty.ID,
	)
	if err != nil {
		return translateError(err, "specialty", "update specialty")
	}
	return checkAffected(result, "specialty")
}

func (r *specialtyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM specialties WHERE id = $1`, id)
	if err != nil {
		return translateError(err, "specialty", "delete specialty")
	}
	return checkAffected(result, "specialty")
}

func (r *specialtyRepository) List(ctx context.Context, search string) ([]*model.Specialty, error) {
	query := `SELECT ` + specialtyColumns + ` FROM specialties WHERE 1=1`
	var args []interface{}

	if search = strings.TrimSpace(search); search != "" {
		query += ` AND (name ILIKE $1 ESCAPE '\' OR description ILIKE $1 ESCAPE '\')`
		args = append(args, containsPattern(search))
	}
	query += ` ORDER BY name ASC`

	specialties := []*model.Specialty{}
	if err := r.db.SelectContext(ctx, &specialties, query, args...); err != nil {
		return nil, translateError(err, "specialty", "list specialties")
	}
	return specialties, nil
}

// getOrCreateSpecialty resolves a specialty by exact name inside tx, creating it when missing.
func getOrCreateSpecialty(ctx context.Context, tx *sqlx.Tx, name string) (*model.Specialty, error) {
	now := time.Now().UTC()
	_, err := tx.ExecContext(ctx, `
		INSERT INTO specialties (id, name, description, created_at, updated_at)
		VALUES ($1, $2, '', $3, $3)
		ON CONFLICT (name) DO NOTHING
	`, uuid.New(), name, now)
	if err != nil {
		return nil, translateError(err, "specialty", "create specialty")
	}

	var s model.Specialty
	if err := tx.GetContext(ctx, &s, `SELECT `+specialtyColumns+` FROM specialties WHERE name = $1`, name); err != nil {
		return nil, translateError(err, "specialty", "get specialty by name")
	}
	return &s, nil
}
