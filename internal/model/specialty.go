package model

// Specialty is a medical discipline doctors are listed under.
type Specialty struct {
	Base
	Name        string  `json:"name" db:"name"`
	Description string  `json:"description" db:"description"`
	Icon        *string `json:"icon" db:"icon"`
}

type SpecialtyRequest struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Description string  `json:"description"`
	Icon        *string `json:"icon" binding:"omitempty,max=255"`
}

// DefaultSpecialties are created by the seed command.
var DefaultSpecialties = []SpecialtyRequest{
	{Name: "General physician", Description: "Primary care and general health consultations"},
	{Name: "Cardiologist", Description: "Heart and cardiovascular system"},
	{Name: "Dermatologist", Description: "Skin, hair and nail conditions"},
	{Name: "Neurologist", Description: "Brain and nervous system disorders"},
	{Name: "Orthopedic", Description: "Bones, joints and musculoskeletal system"},
	{Name: "Pediatrician", Description: "Medical care for infants, children and adolescents"},
	{Name: "Psychiatrist", Description: "Mental health and behavioral disorders"},
	{Name: "Gynecologist", Description: "Female reproductive health"},
	{Name: "Ophthalmologist", Description: "Eye care and vision"},
	{Name: "Dentist", Description: "Oral health and dental care"},
}
