package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/internal/repository"
)

const timeSlotSelect = `
	SELECT t.id, t.doctor_id, t.day_of_week, t.start_time, t.end_time,
		t.is_available, t.created_at, d.user_id AS doctor_user_id
	FROM time_slots t
	JOIN doctors d ON d.id = t.doctor_id
	WHERE 1=1`

type timeSlotRepository struct {
	BaseRepository
}

func NewTimeSlotRepository(base BaseRepository) repository.TimeSlotRepository {
	return &timeSlotRepository{base}
}

func (r *timeSlotRepository) Create(ctx context.Context, slot *model.TimeSlot) error {
	query := `
		INSERT INTO time_slots (id, doctor_id, day_of_week, start_time, end_time, is_available, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	slot.ID = uuid.New()
	slot.CreatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx, query,
		slot.ID,
		slot.DoctorID,
		slot.DayOfWeek,
		slot.StartTime,
		slot.EndTime,
		slot.IsAvailable,
		slot.CreatedAt,
	)
	return translateError(err, "time slot", "create time slot")
}

func (r *timeSlotRepository) Get(ctx context.Context, id uuid.UUID) (*model.TimeSlot, error) {
	var slot model.TimeSlot
	if err := r.db.GetContext(ctx, &slot, timeSlotSelect+` AND t.id = $1`, id); err != nil {
		return nil, translateError(err, "time slot", "get time slot")
	}
	return &slot, nil
}

func (r *timeSlotRepository) Update(ctx context.Context, slot *model.TimeSlot) error {
	query := `
		UPDATE time_slots
		SET day_of_week = $1, start_time = $2, end_time = $3, is_available = $4
		WHERE id = $5
	`
	result, err := r.db.ExecContext(ctx, query,
		slot.DayOfWeek,
		slot.StartTime,
		slot.EndTime,
		slot.IsAvailable,
		slot.ID,
	)
	if err != nil {
		return translateError(err, "time slot", "update time slot")
	}
	return checkAffected(result, "time slot")
}

func (r *timeSlotRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM time_slots WHERE id = $1`, id)
	if err != nil {
		return translateError(err, "time slot", "delete time slot")
	}
	return checkAffected(result, "time slot")
}

func (r *timeSlotRepository) List(ctx context.Context, filter model.TimeSlotFilter) ([]*model.TimeSlot, error) {
	var w whereBuilder
	if filter.DoctorID != nil {
		w.add("t.doctor_id = $%d", *filter.DoctorID)
	}
	if filter.DayOfWeek != nil {
		w.add("t.day_of_week = $%d", *filter.DayOfWeek)
	}

	slots := []*model.TimeSlot{}
	query := timeSlotSelect + w.sql() + ` ORDER BY t.doctor_id, t.day_of_week, t.start_time`
	if err := r.db.SelectContext(ctx, &slots, query, w.args...); err != nil {
		return nil, translateError(err, "time slot", "list time slots")
	}
	return slots, nil
}
