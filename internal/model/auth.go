package model

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshTokenRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

type TokenResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
	User    *User  `json:"user,omitempty"`
}

// RegisterRequest is the generic account registration.
type RegisterRequest struct {
	Email       string `json:"email" form:"email" binding:"required,email"`
	Password    string `json:"password" form:"password" binding:"required"`
	Password2   string `json:"password2" form:"password2" binding:"required"`
	FirstName   string `json:"first_name" form:"first_name" binding:"required,max=150"`
	LastName    string `json:"last_name" form:"last_name" binding:"required,max=150"`
	PhoneNumber string `json:"phone_number" form:"phone_number" binding:"omitempty,max=15"`
	Address     string `json:"address" form:"address"`
	UserType    string `json:"user_type" form:"user_type" binding:"omitempty,oneof=patient doctor"`
	Gender      string `json:"gender" form:"gender" binding:"omitempty,oneof=male female other"`
	DateOfBirth string `json:"date_of_birth" form:"date_of_birth" binding:"omitempty,datetime=2006-01-02"`
	BloodGroup  string `json:"blood_group" form:"blood_group" binding:"omitempty,blood_group"`
}

// DoctorRegistrationRequest arrives as multipart form data.
type DoctorRegistrationRequest struct {
	Email           string  `form:"email" json:"email" binding:"required,email"`
	Password        string  `form:"password" json:"password" binding:"required"`
	Password2       string  `form:"password2" json:"password2" binding:"required"`
	FirstName       string  `form:"first_name" json:"first_name" binding:"required,max=150"`
	LastName        string  `form:"last_name" json:"last_name" binding:"required,max=150"`
	PhoneNumber     string  `form:"phone_number" json:"phone_number" binding:"omitempty,max=15"`
	Address         string  `form:"address" json:"address"`
	Gender          string  `form:"gender" json:"gender" binding:"required,oneof=male female other"`
	Specialization  string  `form:"specialization" json:"specialization" binding:"required,max=100"`
	Education       string  `form:"education" json:"education" binding:"required"`
	ExperienceYears int     `form:"experience_years" json:"experience_years" binding:"gte=0"`
	Bio             string  `form:"bio" json:"bio" binding:"required"`
	ConsultationFee float64 `form:"consultation_fee" json:"consultation_fee" binding:"gte=0"`
	AvailableDays   string  `form:"available_days" json:"available_days" binding:"omitempty,weekdays"`
	StartTime       string  `form:"start_time" json:"start_time" binding:"omitempty,hhmm"`
	EndTime         string  `form:"end_time" json:"end_time" binding:"omitempty,hhmm"`
	IsFeatured      bool    `form:"is_featured" json:"is_featured"`
}

type PatientRegistrationRequest struct {
	Email            string `form:"email" json:"email" binding:"required,email"`
	Password         string `form:"password" json:"password" binding:"required"`
	Password2        string `form:"password2" json:"password2" binding:"required"`
	FirstName        string `form:"first_name" json:"first_name" binding:"required,max=150"`
	LastName         string `form:"last_name" json:"last_name" binding:"required,max=150"`
	PhoneNumber      string `form:"phone_number" json:"phone_number" binding:"omitempty,max=15"`
	Address          string `form:"address" json:"address"`
	Gender           string `form:"gender" json:"gender" binding:"omitempty,oneof=male female other"`
	DateOfBirth      string `form:"date_of_birth" json:"date_of_birth" binding:"required,datetime=2006-01-02"`
	BloodGroup       string `form:"blood_group" json:"blood_group" binding:"required,blood_group"`
	EmergencyContact string `form:"emergency_contact" json:"emergency_contact" binding:"omitempty,max=15"`
	MedicalHistory   string `form:"medical_history" json:"medical_history"`
	Allergies        string `form:"allergies" json:"allergies"`
}

// RegistrationResult is returned by the doctor and patient registration endpoints.
type RegistrationResult struct {
	User    *User    `json:"user"`
	Doctor  *Doctor  `json:"doctor,omitempty"`
	Patient *Patient `json:"patient,omitempty"`
	Message string   `json:"message"`
}
