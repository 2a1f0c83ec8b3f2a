package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/internal/repository"
)

const reviewSelect = `
	SELECT r.id, r.doctor_id, r.patient_id, r.appointment_id, r.rating, r.comment, r.created_at,
		pu.id AS "patient.user_id", pu.first_name AS "patient.first_name",
		pu.last_name AS "patient.last_name", pu.email AS "patient.email"
	FROM reviews r
	JOIN patients p ON p.id = r.patient_id
	JOIN users pu ON pu.id = p.user_id
	WHERE 1=1`

// reviewEvent is the outbox payload for review writes.
type reviewEvent struct {
	Review *model.Review        `json:"review,omitempty"`
	ID     uuid.UUID            `json:"id"`
	Rating *model.RatingSummary `json:"rating"`
}

type reviewRepository struct {
	BaseRepository
}

func NewReviewRepository(base BaseRepository) repository.ReviewRepository {
	return &reviewRepository{base}
}

// lockDoctor serialises review writers for one doctor until the tx ends.
func lockDoctor(ctx context.Context, tx *sqlx.Tx, doctorID uuid.UUID) error {
	var id uuid.UUID
	if err := tx.GetContext(ctx, &id, `SELECT id FROM doctors WHERE id = $1 FOR UPDATE`, doctorID); err != nil {
		return translateError(err, "doctor", "lock doctor")
	}
	return nil
}

// recomputeRating rewrites the doctor's aggregate from the reviews table.
func recomputeRating(ctx context.Context, tx *sqlx.Tx, doctorID uuid.UUID) (*model.RatingSummary, error) {
	var agg struct {
		Count int `db:"count"`
		Sum   int `db:"sum"`
	}
	err := tx.GetContext(ctx, &agg,
		`SELECT COUNT(*) AS count, COALESCE(SUM(rating), 0) AS sum FROM reviews WHERE doctor_id = $1`,
		doctorID,
	)
	if err != nil {
		return nil, translateError(err, "review", "aggregate reviews")
	}

	rating, total := model.AggregateRating(agg.Count, agg.Sum)
	if _, err := tx.ExecContext(ctx,
		`UPDATE doctors SET rating = $1, total_reviews = $2, updated_at = $3 WHERE id = $4`,
		rating, total, time.Now().UTC(), doctorID,
	); err != nil {
		return nil, translateError(err, "doctor", "update doctor rating")
	}

	return &model.RatingSummary{DoctorID: doctorID, Rating: rating, TotalReviews: total}, nil
}

func (r *reviewRepository) Create(ctx context.Context, review *model.Review) (*model.RatingSummary, error) {
	query := `
		INSERT INTO reviews (id, doctor_id, patient_id, appointment_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	review.ID = uuid.New()
	review.CreatedAt = time.Now().UTC()

	var summary *model.RatingSummary
	err := r.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := lockDoctor(ctx, tx, review.DoctorID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, query,
			review.ID,
			review.DoctorID,
			review.PatientID,
			review.AppointmentID,
			review.Rating,
			review.Comment,
			review.CreatedAt,
		); err != nil {
			return translateError(err, "review", "create review")
		}

		var err error
		if summary, err = recomputeRating(ctx, tx, review.DoctorID); err != nil {
			return err
		}
		return insertOutboxEvent(ctx, tx, model.EventReviewCreated, reviewEvent{Review: review, ID: review.ID, Rating: summary})
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

func (r *reviewRepository) Get(ctx context.Context, id uuid.UUID) (*model.Review, error) {
	var review model.Review
	if err := r.db.GetContext(ctx, &review, reviewSelect+` AND r.id = $1`, id); err != nil {
		return nil, translateError(err, "review", "get review")
	}
	return &review, nil
}

// Update persists rating and comment; doctor and patient never move.
func (r *reviewRepository) Update(ctx context.Context, review *model.Review) (*model.RatingSummary, error) {
	var summary *model.RatingSummary
	err := r.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := lockDoctor(ctx, tx, review.DoctorID); err != nil {
			return err
		}
		result, err := tx.ExecContext(ctx,
			`UPDATE reviews SET rating = $1, comment = $2 WHERE id = $3`,
			review.Rating, review.Comment, review.ID,
		)
		if err != nil {
			return translateError(err, "review", "update review")
		}
		if err := checkAffected(result, "review"); err != nil {
			return err
		}

		if summary, err = recomputeRating(ctx, tx, review.DoctorID); err != nil {
			return err
		}
		return insertOutboxEvent(ctx, tx, model.EventReviewUpdated, reviewEvent{Review: review, ID: review.ID, Rating: summary})
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

func (r *reviewRepository) Delete(ctx context.Context, id uuid.UUID) (*model.RatingSummary, error) {
	var summary *model.RatingSummary
	err := r.WithTx(ctx, func(tx *sqlx.Tx) error {
		var doctorID uuid.UUID
		if err := tx.GetContext(ctx, &doctorID, `SELECT doctor_id FROM reviews WHERE id = $1`, id); err != nil {
			return translateError(err, "review", "get review")
		}
		if err := lockDoctor(ctx, tx, doctorID); err != nil {
			return err
		}
		result, err := tx.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1`, id)
		if err != nil {
			return translateError(err, "review", "delete review")
		}
		if err := checkAffected(result, "review"); err != nil {
			return err
		}

		if summary, err = recomputeRating(ctx, tx, doctorID); err != nil {
			return err
		}
		return insertOutboxEvent(ctx, tx, model.EventReviewDeleted, reviewEvent{ID: id, Rating: summary})
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

func (r *reviewRepository) List(ctx context.Context, filter model.ReviewFilter) ([]*model.Review, error) {
	var w whereBuilder
	if filter.DoctorID != nil {
		w.add("r.doctor_id = $%d", *filter.DoctorID)
	}
	if filter.PatientID != nil {
		w.add("r.patient_id = $%d", *filter.PatientID)
	}

	reviews := []*model.Review{}
	query := reviewSelect + w.sql() + ` ORDER BY r.created_at DESC`
	if err := r.db.SelectContext(ctx, &reviews, query, w.args...); err != nil {
		return nil, translateError(err, "review", "list reviews")
	}
	return reviews, nil
}
