package models

import "time"

// VitalSigns is a structured subset of the measurements a doctor notes down
// during a visit. All free text, stored as prefixed columns on the record row.
type VitalSigns struct {
	BloodPressure string `gorm:"size:20" json:"blood_pressure,omitempty"`
	Temperature   string `gorm:"size:20" json:"temperature,omitempty"`
	HeartRate     string `gorm:"size:20" json:"heart_rate,omitempty"`
	Weight        string `gorm:"size:20" json:"weight,omitempty"`
}

// MedicalRecord is authored by exactly one doctor for one patient. Ownership
// is fixed at creation and drives the mutation policy.
type MedicalRecord struct {
	ID         uint64     `gorm:"primaryKey" json:"id"`
	PatientID  uint64     `gorm:"not null;index" json:"patient_id"`
	DoctorID   uint64     `gorm:"not null;index" json:"doctor_id"`
	Diagnosis  string     `gorm:"type:text;not null" json:"diagnosis"`
	Treatment  string     `gorm:"type:text;not null" json:"treatment"`
	Notes      string     `gorm:"type:text" json:"notes,omitempty"`
	Symptoms   string     `gorm:"type:text" json:"symptoms,omitempty"`
	VisitDate  time.Time  `gorm:"type:date;not null" json:"visit_date"`
	VitalSigns VitalSigns `gorm:"embedded;embeddedPrefix:vital_" json:"vital_signs"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	Patient *User `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  *User `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

type CreateMedicalRecordInput struct {
	PatientID  uint64     `json:"patient_id" binding:"required"`
	Diagnosis  string     `json:"diagnosis" binding:"required"`
	Treatment  string     `json:"treatment" binding:"required"`
	Notes      string     `json:"notes"`
	Symptoms   string     `json:"symptoms"`
	VisitDate  time.Time  `json:"visit_date" binding:"required"`
	VitalSigns VitalSigns `json:"vital_signs"`
}

type UpdateMedicalRecordInput struct {
	Diagnosis  string      `json:"diagnosis"`
	Treatment  string      `json:"treatment"`
	Notes      string      `json:"notes"`
	Symptoms   string      `json:"symptoms"`
	VitalSigns *VitalSigns `json:"vital_signs"`
}
