package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/internal/repository"
)

const medicalRecordSelect = `
	SELECT m.id, m.patient_id, m.doctor_id, m.appointment_id, m.diagnosis,
		m.prescription, m.notes, m.created_at, m.updated_at,
		du.id AS "doctor.user_id", du.first_name AS "doctor.first_name",
		du.last_name AS "doctor.last_name", du.email AS "doctor.email",
		pu.id AS "patient.user_id", pu.first_name AS "patient.first_name",
		pu.last_name AS "patient.last_name", pu.email AS "patient.email"
	FROM medical_records m
	JOIN doctors d ON d.id = m.doctor_id
	JOIN users du ON du.id = d.user_id
	JOIN patients p ON p.id = m.patient_id
	JOIN users pu ON pu.id = p.user_id
	WHERE 1=1`

type medicalRecordRepository struct {
	BaseRepository
}

func NewMedicalRecordRepository(base BaseRepository) repository.MedicalRecordRepository {
	return &medicalRecordRepository{base}
}

func (r *medicalRecordRepository) Create(ctx context.Context, record *model.MedicalRecord) error {
	query := `
		INSERT INTO medical_records (
			id, patient_id, doctor_id, appointment_id, diagnosis,
			prescription, notes, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	record.ID = uuid.New()
	record.CreatedAt = time.Now().UTC()
	record.UpdatedAt = record.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		record.ID,
		record.PatientID,
		record.DoctorID,
		record.AppointmentID,
		record.Diagnosis,
		record.Prescription,
		record.Notes,
		record.CreatedAt,
		record.UpdatedAt,
	)
	return translateError(err, "medical record", "create medical record")
}

func (r *medicalRecordRepository) Get(ctx context.Context, id uuid.UUID) (*model.MedicalRecord, error) {
	var record model.MedicalRecord
	if err := r.db.GetContext(ctx, &record, medicalRecordSelect+` AND m.id = $1`, id); err != nil {
		return nil, translateError(err, "medical record", "get medical record")
	}
	return &record, nil
}

func (r *medicalRecordRepository) Update(ctx context.Context, record *model.MedicalRecord) error {
	query := `
		UPDATE medical_records
		SET diagnosis = $1, prescription = $2, notes = $3, updated_at = $4
		WHERE id = $5
	`
	record.UpdatedAt = time.Now().UTC()

	result, err := r.db.ExecContext(ctx, query,
		record.Diagnosis,
		record.Prescription,
		record.Notes,
		record.UpdatedAt,
		record.ID,
	)
	if err != nil {
		return translateError(err, "medical record", "update medical record")
	}
	return checkAffected(result, "medical record")
}

func (r *medicalRecordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM medical_records WHERE id = $1`, id)
	if err != nil {
		return translateError(err, "medical record", "delete medical record")
	}
	return checkAffected(result, "medical record")
}

func (r *medicalRecordRepository) List(ctx context.Context, filter model.MedicalRecordFilter) ([]*model.MedicalRecord, error) {
	var w whereBuilder
	if filter.DoctorID != nil {
		w.add("m.doctor_id = $%d", *filter.DoctorID)
	}
	if filter.PatientID != nil {
		w.add("m.patient_id = $%d", *filter.PatientID)
	}

	records := []*model.MedicalRecord{}
	query := medicalRecordSelect + w.sql() + ` ORDER BY m.created_at DESC`
	if err := r.db.SelectContext(ctx, &records, query, w.args...); err != nil {
		return nil, translateError(err, "medical record", "list medical records")
	}
	return records, nil
}

func (r *medicalRecordRepository) ExistsForDoctorAndPatient(ctx context.Context, doctorID, patientID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM medical_records WHERE doctor_id = $1 AND patient_id = $2)`,
		doctorID, patientID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to check medical records: %w", err)
	}
	return exists, nil
}
