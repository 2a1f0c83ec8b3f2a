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

const appointmentSelect = `
	SELECT a.id, a.doctor_id, a.patient_id, a.appointment_date, a.appointment_time,
		a.reason, a.status, a.payment_status, a.created_at, a.updated_at,
		du.id AS "doctor.user_id", du.first_name AS "doctor.first_name",
		du.last_name AS "doctor.last_name", du.email AS "doctor.email",
		pu.id AS "patient.user_id", pu.first_name AS "patient.first_name",
		pu.last_name AS "patient.last_name", pu.email AS "patient.email"
	FROM appointments a
	JOIN doctors d ON d.id = a.doctor_id
	JOIN users du ON du.id = d.user_id
	JOIN patients p ON p.id = a.patient_id
	JOIN users pu ON pu.id = p.user_id
	WHERE 1=1`

type appointmentRepository struct {
	BaseRepository
}

func NewAppointmentRepository(base BaseRepository) repository.AppointmentRepository {
	return &appointmentRepository{base}
}

// Create never checks for an existing booking in the same slot.
func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	query := `
		INSERT INTO appointments (
			id, doctor_id, patient_id, appointment_date, appointment_time,
			reason, status, payment_status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	appointment.ID = uuid.New()
	appointment.CreatedAt = time.Now().UTC()
	appointment.UpdatedAt = appointment.CreatedAt
	if appointment.Status == "" {
		appointment.Status = model.AppointmentStatusPending
	}
	if appointment.PaymentStatus == "" {
		appointment.PaymentStatus = model.PaymentStatusUnpaid
	}

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, query,
			appointment.ID,
			appointment.DoctorID,
			appointment.PatientID,
			appointment.AppointmentDate,
			appointment.AppointmentTime,
			appointment.Reason,
			appointment.Status,
			appointment.PaymentStatus,
			appointment.CreatedAt,
			appointment.UpdatedAt,
		); err != nil {
			return translateError(err, "appointment", "create appointment")
		}

		if err := tx.GetContext(ctx, appointment, appointmentSelect+` AND a.id = $1`, appointment.ID); err != nil {
			return translateError(err, "appointment", "reload appointment")
		}
		return insertOutboxEvent(ctx, tx, model.EventAppointmentCreated, appointment)
	})
}

func (r *appointmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	var appointment model.Appointment
	if err := r.db.GetContext(ctx, &appointment, appointmentSelect+` AND a.id = $1`, id); err != nil {
		return nil, translateError(err, "appointment", "get appointment")
	}
	return &appointment, nil
}

// Update persists status and payment_status only.
func (r *appointmentRepository) Update(ctx context.Context, appointment *model.Appointment) error {
	query := `
		UPDATE appointments
		SET status = $1, payment_status = $2, updated_at = $3
		WHERE id = $4
	`
	appointment.UpdatedAt = time.Now().UTC()

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx, query,
			appointment.Status,
			appointment.PaymentStatus,
			appointment.UpdatedAt,
			appointment.ID,
		)
		if err != nil {
			return translateError(err, "appointment", "update appointment")
		}
		if err := checkAffected(result, "appointment"); err != nil {
			return err
		}
		return insertOutboxEvent(ctx, tx, model.EventAppointmentUpdated, appointment)
	})
}

func (r *appointmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx, `DELETE FROM appointments WHERE id = $1`, id)
		if err != nil {
			return translateError(err, "appointment", "delete appointment")
		}
		if err := checkAffected(result, "appointment"); err != nil {
			return err
		}
		return insertOutboxEvent(ctx, tx, model.EventAppointmentDeleted, map[string]uuid.UUID{"id": id})
	})
}

func (r *appointmentRepository) List(ctx context.Context, filter model.AppointmentFilter) ([]*model.Appointment, error) {
	var w whereBuilder
	if filter.DoctorID != nil {
		w.add("a.doctor_id = $%d", *filter.DoctorID)
	}
	if filter.PatientID != nil {
		w.add("a.patient_id = $%d", *filter.PatientID)
	}
	if filter.Status != nil {
		w.add("a.status = $%d", *filter.Status)
	}
	if filter.Date != nil {
		w.add("a.appointment_date = $%d", *filter.Date)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		w.add(`(du.first_name ILIKE $%[1]d ESCAPE '\' OR du.last_name ILIKE $%[1]d ESCAPE '\'`+
			` OR pu.first_name ILIKE $%[1]d ESCAPE '\' OR pu.last_name ILIKE $%[1]d ESCAPE '\')`,
			containsPattern(search))
	}

	appointments := []*model.Appointment{}
	query := appointmentSelect + w.sql() + ` ORDER BY a.created_at DESC`
	if err := r.db.SelectContext(ctx, &appointments, query, w.args...); err != nil {
		return nil, translateError(err, "appointment", "list appointments")
	}
	return appointments, nil
}
