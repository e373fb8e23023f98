package models

import (
	"errors"
	"time"
)

// Role values stored on User.Role. Role is fixed at registration.
const (
	RoleAdmin   = "admin"
	RoleDoctor  = "doctor"
	RolePatient = "patient"
)

// User covers all three roles in one table. Doctor and patient specific
// columns stay empty for the other roles.
type User struct {
	ID           uint64 `gorm:"primaryKey" json:"id"`
	Email        string `gorm:"uniqueIndex;size:100;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"` // never serialized back to the client
	FullName     string `gorm:"size:100;not null" json:"full_name"`
	Role         string `gorm:"size:20;not null;index" json:"role"`
	Phone        string `gorm:"size:20" json:"phone,omitempty"`
	Address      string `gorm:"type:text" json:"address,omitempty"`

	// Doctor fields
	Specialization    string `gorm:"size:100" json:"specialization,omitempty"`
	LicenseNumber     string `gorm:"size:100" json:"license_number,omitempty"`
	YearsOfExperience int    `json:"years_of_experience,omitempty"`
	Bio               string `gorm:"type:text" json:"bio,omitempty"`

	// Patient fields
	DateOfBirth      string  `gorm:"type:date" json:"date_of_birth,omitempty"` // YYYY-MM-DD
	Gender           string  `gorm:"size:10" json:"gender,omitempty"`
	EmergencyContact string  `gorm:"size:100" json:"emergency_contact,omitempty"`
	AssignedDoctorID *uint64 `gorm:"index" json:"assigned_doctor_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RegisterInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"full_name" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=admin doctor patient"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`

	Specialization    string `json:"specialization"`
	LicenseNumber     string `json:"license_number"`
	YearsOfExperience int    `json:"years_of_experience"`
	Bio               string `json:"bio"`

	DateOfBirth      string `json:"date_of_birth"`
	Gender           string `json:"gender" binding:"omitempty,oneof=male female other"`
	EmergencyContact string `json:"emergency_contact"`
}

// Validate enforces the per-role required fields that binding tags cannot
// express. Doctors must carry their credentials from day one.
func (in *RegisterInput) Validate() error {
	if in.Role == RoleDoctor {
		if in.Specialization == "" {
			return errors.New("specialization is required for doctors")
		}
		if in.LicenseNumber == "" {
			return errors.New("license number is required for doctors")
		}
	}
	return nil
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateUserInput deliberately has no email, password or role field: those
// are fixed after registration and silently ignored if a client sends them.
type UpdateUserInput struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`

	Specialization    string `json:"specialization"`
	YearsOfExperience int    `json:"years_of_experience"`
	Bio               string `json:"bio"`

	DateOfBirth      string `json:"date_of_birth"`
	Gender           string `json:"gender" binding:"omitempty,oneof=male female other"`
	EmergencyContact string `json:"emergency_contact"`
}

type AssignDoctorInput struct {
	DoctorID uint64 `json:"doctor_id" binding:"required"`
}
