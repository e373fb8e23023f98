package models

import "time"

// Prescription shares the ownership rule of MedicalRecord: only the
// prescribing doctor (or an admin) may change or remove it.
type Prescription struct {
	ID             uint64    `gorm:"primaryKey" json:"id"`
	PatientID      uint64    `gorm:"not null;index" json:"patient_id"`
	DoctorID       uint64    `gorm:"not null;index" json:"doctor_id"`
	MedicationName string    `gorm:"size:200;not null" json:"medication_name"`
	Dosage         string    `gorm:"size:100;not null" json:"dosage"`
	Frequency      string    `gorm:"size:100;not null" json:"frequency"`
	Duration       string    `gorm:"size:100;not null" json:"duration"`
	Instructions   string    `gorm:"type:text" json:"instructions,omitempty"`
	DatePrescribed time.Time `gorm:"autoCreateTime" json:"date_prescribed"`
	IsActive       bool      `gorm:"default:true" json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	Patient *User `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  *User `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

type CreatePrescriptionInput struct {
	PatientID      uint64 `json:"patient_id" binding:"required"`
	MedicationName string `json:"medication_name" binding:"required"`
	Dosage         string `json:"dosage" binding:"required"`
	Frequency      string `json:"frequency" binding:"required"`
	Duration       string `json:"duration" binding:"required"`
	Instructions   string `json:"instructions"`
}

type UpdatePrescriptionInput struct {
	MedicationName string `json:"medication_name"`
	Dosage         string `json:"dosage"`
	Frequency      string `json:"frequency"`
	Duration       string `json:"duration"`
	Instructions   string `json:"instructions"`
	IsActive       *bool  `json:"is_active"` // pointer so "set inactive" survives the partial-update rule
}
