// Package mocks holds testify mocks of the repository interfaces for service and handler tests.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/internal/repository"
)

var (
	_ repository.UserRepository          = (*UserRepository)(nil)
	_ repository.SpecialtyRepository     = (*SpecialtyRepository)(nil)
	_ repository.DoctorRepository        = (*DoctorRepository)(nil)
	_ repository.PatientRepository       = (*PatientRepository)(nil)
	_ repository.AppointmentRepository   = (*AppointmentRepository)(nil)
	_ repository.ReviewRepository        = (*ReviewRepository)(nil)
	_ repository.TimeSlotRepository      = (*TimeSlotRepository)(nil)
	_ repository.MedicalRecordRepository = (*MedicalRecordRepository)(nil)
)

// get returns args.Get(i) as T, or the zero T when the mock returned nil.
func get[T any](args mock.Arguments, i int) T {
	var zero T
	if v := args.Get(i); v != nil {
		return v.(T)
	}
	return zero
}

type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Create(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *UserRepository) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	return get[*model.User](args, 0), args.Error(1)
}

func (m *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	return get[*model.User](args, 0), args.Error(1)
}

func (m *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *UserRepository) Update(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *UserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return m.Called(ctx, id, passwordHash).Error(0)
}

func (m *UserRepository) CreateDoctorAccount(ctx context.Context, user *model.User, doctor *model.Doctor, specialtyName string) error {
	return m.Called(ctx, user, doctor, specialtyName).Error(0)
}

func (m *UserRepository) CreatePatientAccount(ctx context.Context, user *model.User, patient *model.Patient) error {
	return m.Called(ctx, user, patient).Error(0)
}

type SpecialtyRepository struct {
	mock.Mock
}

func (m *SpecialtyRepository) Create(ctx context.Context, specialty *model.Specialty) error {
	return m.Called(ctx, specialty).Error(0)
}

func (m *SpecialtyRepository) Get(ctx context.Context, id uuid.UUID) (*model.Specialty, error) {
	args := m.Called(ctx, id)
	return get[*model.Specialty](args, 0), args.Error(1)
}

func (m *SpecialtyRepository) GetByName(ctx context.Context, name string) (*model.Specialty, error) {
	args := m.Called(ctx, name)
	return get[*model.Specialty](args, 0), args.Error(1)
}

func (m *SpecialtyRepository) Update(ctx context.Context, specialty *model.Specialty) error {
	return m.Called(ctx, specialty).Error(0)
}

func (m *SpecialtyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *SpecialtyRepository) List(ctx context.Context, search string) ([]*model.Specialty, error) {
	args := m.Called(ctx, search)
	return get[[]*model.Specialty](args, 0), args.Error(1)
}

type DoctorRepository struct {
	mock.Mock
}

func (m *DoctorRepository) Create(ctx context.Context, doctor *model.Doctor) error {
	return m.Called(ctx, doctor).Error(0)
}

func (m *DoctorRepository) Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error) {
	args := m.Called(ctx, id)
	return get[*model.Doctor](args, 0), args.Error(1)
}

func (m *DoctorRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Doctor, error) {
	args := m.Called(ctx, userID)
	return get[*model.Doctor](args, 0), args.Error(1)
}

func (m *DoctorRepository) Update(ctx context.Context, doctor *model.Doctor) error {
	return m.Called(ctx, doctor).Error(0)
}

func (m *DoctorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *DoctorRepository) List(ctx context.Context, filter model.DoctorFilter) ([]*model.Doctor, error) {
	args := m.Called(ctx, filter)
	return get[[]*model.Doctor](args, 0), args.Error(1)
}

type PatientRepository struct {
	mock.Mock
}

func (m *PatientRepository) Create(ctx context.Context, patient *model.Patient) error {
	return m.Called(ctx, patient).Error(0)
}

func (m *PatientRepository) Get(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	args := m.Called(ctx, id)
	return get[*model.Patient](args, 0), args.Error(1)
}

func (m *PatientRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Patient, error) {
	args := m.Called(ctx, userID)
	return get[*model.Patient](args, 0), args.Error(1)
}

func (m *PatientRepository) Update(ctx context.Context, patient *model.Patient) error {
	return m.Called(ctx, patient).Error(0)
}

func (m *PatientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *PatientRepository) List(ctx context.Context, filter model.PatientFilter) ([]*model.Patient, error) {
	args := m.Called(ctx, filter)
	return get[[]*model.Patient](args, 0), args.Error(1)
}

type AppointmentRepository struct {
	mock.Mock
}

func (m *AppointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	return m.Called(ctx, appointment).Error(0)
}

func (m *AppointmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	args := m.Called(ctx, id)
	return get[*model.Appointment](args, 0), args.Error(1)
}

func (m *AppointmentRepository) Update(ctx context.Context, appointment *model.Appointment) error {
	return m.Called(ctx, appointment).Error(0)
}

func (m *AppointmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *AppointmentRepository) List(ctx context.Context, filter model.AppointmentFilter) ([]*model.Appointment, error) {
	args := m.Called(ctx, filter)
	return get[[]*model.Appointment](args, 0), args.Error(1)
}

type ReviewRepository struct {
	mock.Mock
}

func (m *ReviewRepository) Create(ctx context.Context, review *model.Review) (*model.RatingSummary, error) {
	args := m.Called(ctx, review)
	return get[*model.RatingSummary](args, 0), args.Error(1)
}

func (m *ReviewRepository) Get(ctx context.Context, id uuid.UUID) (*model.Review, error) {
	args := m.Called(ctx, id)
	return get[*model.Review](args, 0), args.Error(1)
}

func (m *ReviewRepository) Update(ctx context.Context, review *model.Review) (*model.RatingSummary, error) {
	args := m.Called(ctx, review)
	return get[*model.RatingSummary](args, 0), args.Error(1)
}

func (m *ReviewRepository) Delete(ctx context.Context, id uuid.UUID) (*model.RatingSummary, error) {
	args := m.Called(ctx, id)
	return get[*model.RatingSummary](args, 0), args.Error(1)
}

func (m *ReviewRepository) List(ctx context.Context, filter model.ReviewFilter) ([]*model.Review, error) {
	args := m.Called(ctx, filter)
	return get[[]*model.Review](args, 0), args.Error(1)
}

type TimeSlotRepository struct {
	mock.Mock
}

func (m *TimeSlotRepository) Create(ctx context.Context, slot *model.TimeSlot) error {
	return m.Called(ctx, slot).Error(0)
}

func (m *TimeSlotRepository) Get(ctx context.Context, id uuid.UUID) (*model.TimeSlot, error) {
	args := m.Called(ctx, id)
	return get[*model.TimeSlot](args, 0), args.Error(1)
}

func (m *TimeSlotRepository) Update(ctx context.Context, slot *model.TimeSlot) error {
	return m.Called(ctx, slot).Error(0)
}

func (m *TimeSlotRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *TimeSlotRepository) List(ctx context.Context, filter model.TimeSlotFilter) ([]*model.TimeSlot, error) {
	args := m.Called(ctx, filter)
	return get[[]*model.TimeSlot](args, 0), args.Error(1)
}

type MedicalRecordRepository struct {
	mock.Mock
}

func (m *MedicalRecordRepository) Create(ctx context.Context, record *model.MedicalRecord) error {
	return m.Called(ctx, record).Error(0)
}

func (m *MedicalRecordRepository) Get(ctx context.Context, id uuid.UUID) (*model.MedicalRecord, error) {
	args := m.Called(ctx, id)
	return get[*model.MedicalRecord](args, 0), args.Error(1)
}

func (m *MedicalRecordRepository) Update(ctx context.Context, record *model.MedicalRecord) error {
	return m.Called(ctx, record).Error(0)
}

func (m *MedicalRecordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MedicalRecordRepository) List(ctx context.Context, filter model.MedicalRecordFilter) ([]*model.MedicalRecord, error) {
	args := m.Called(ctx, filter)
	return get[[]*model.MedicalRecord](args, 0), args.Error(1)
}

func (m *MedicalRecordRepository) ExistsForDoctorAndPatient(ctx context.Context, doctorID, patientID uuid.UUID) (bool, error) {
	args := m.Called(ctx, doctorID, patientID)
	return args.Bool(0), args.Error(1)
}

// OutboxRepository is used by worker tests that want call assertions.
type OutboxRepository struct {
	mock.Mock
}

func (m *OutboxRepository) ProcessPending(ctx context.Context, limit, maxAttempts int, handle func(context.Context, *model.OutboxEvent) error) (int, error) {
	args := m.Called(ctx, limit, maxAttempts, handle)
	return args.Int(0), args.Error(1)
}

func (m *OutboxRepository) DeleteProcessedBefore(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return get[int64](args, 0), args.Error(1)
}

var _ repository.OutboxRepository = (*OutboxRepository)(nil)
