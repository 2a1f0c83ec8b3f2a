package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type UserType string

const (
	UserTypePatient UserType = "patient"
	UserTypeDoctor  UserType = "doctor"
	UserTypeAdmin   UserType = "admin"
)

func (t UserType) Valid() bool {
	switch t {
	case UserTypePatient, UserTypeDoctor, UserTypeAdmin:
		return true
	}
	return false
}

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

type User struct {
	ID             uuid.UUID `json:"id" db:"id"`
	Email          string    `json:"email" db:"email"`
	PasswordHash   string    `json:"-" db:"password_hash"`
	FirstName      string    `json:"first_name" db:"first_name"`
	LastName       string    `json:"last_name" db:"last_name"`
	PhoneNumber    string    `json:"phone_number" db:"phone_number"`
	Address        string    `json:"address" db:"address"`
	ProfilePicture *string   `json:"profile_picture" db:"profile_picture"`
	UserType       UserType  `json:"user_type" db:"user_type"`
	Gender         Gender    `json:"gender" db:"gender"`
	DateOfBirth    *Date     `json:"date_of_birth" db:"date_of_birth"`
	BloodGroup     string    `json:"blood_group" db:"blood_group"`
	IsStaff        bool      `json:"is_staff" db:"is_staff"`
	IsActive       bool      `json:"is_active" db:"is_active"`
	DateJoined     time.Time `json:"date_joined" db:"date_joined"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// IsAdmin reports whether the user bypasses ownership checks.
func (u *User) IsAdmin() bool {
	return u != nil && (u.IsStaff || u.UserType == UserTypeAdmin)
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// UserSummary is the user slice embedded in doctor and patient listings.
type UserSummary struct {
	ID             uuid.UUID `json:"id" db:"id"`
	Email          string    `json:"email" db:"email"`
	FirstName      string    `json:"first_name" db:"first_name"`
	LastName       string    `json:"last_name" db:"last_name"`
	PhoneNumber    string    `json:"phone_number" db:"phone_number"`
	ProfilePicture *string   `json:"profile_picture" db:"profile_picture"`
	Gender         Gender    `json:"gender" db:"gender"`
}

// UpdateProfileRequest is bound from JSON or multipart; nil means unchanged.
type UpdateProfileRequest struct {
	FirstName   *string `json:"first_name" form:"first_name" binding:"omitempty,max=150"`
	LastName    *string `json:"last_name" form:"last_name" binding:"omitempty,max=150"`
	PhoneNumber *string `json:"phone_number" form:"phone_number" binding:"omitempty,max=15"`
	Address     *string `json:"address" form:"address"`
	Gender      *string `json:"gender" form:"gender" binding:"omitempty,oneof=male female other"`
	DateOfBirth *string `json:"date_of_birth" form:"date_of_birth" binding:"omitempty,datetime=2006-01-02"`
	BloodGroup  *string `json:"blood_group" form:"blood_group" binding:"omitempty,blood_group"`
}

// AdminUpdateUserRequest extends the profile fields with role management.
type AdminUpdateUserRequest struct {
	UpdateProfileRequest
	Email    *string `json:"email" form:"email" binding:"omitempty,email"`
	UserType *string `json:"user_type" form:"user_type" binding:"omitempty,oneof=patient doctor admin"`
	IsStaff  *bool   `json:"is_staff" form:"is_staff"`
	IsActive *bool   `json:"is_active" form:"is_active"`
}

type ChangePasswordRequest struct {
	OldPassword     string `json:"old_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}
