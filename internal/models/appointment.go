package models

import "time"

// Appointment status lifecycle: pending -> scheduled -> completed, with
// cancelled reachable from anywhere and terminal. Only scheduled is ever
// advanced automatically (see internal/scheduler).
const (
	AppointmentPending   = "pending"
	AppointmentScheduled = "scheduled"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
)

type Appointment struct {
	ID              uint64    `gorm:"primaryKey" json:"id"`
	PatientID       uint64    `gorm:"not null;index" json:"patient_id"`
	DoctorID        uint64    `gorm:"not null;index" json:"doctor_id"`
	AppointmentDate time.Time `gorm:"type:date;not null" json:"appointment_date"`
	AppointmentTime string    `gorm:"size:20;not null" json:"appointment_time"` // free text, e.g. "14:30"
	Status          string    `gorm:"size:20;default:'pending'" json:"status"`
	Reason          string    `gorm:"type:text" json:"reason,omitempty"`
	Notes           string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	// Preloaded on reads so responses carry names instead of bare ids
	Patient *User `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  *User `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

type CreateAppointmentInput struct {
	// PatientID is ignored for patients (they always book for themselves)
	// and required from admins and doctors.
	PatientID       uint64    `json:"patient_id"`
	DoctorID        uint64    `json:"doctor_id" binding:"required"`
	AppointmentDate time.Time `json:"appointment_date" binding:"required"` // e.g. 2025-11-20T00:00:00Z
	AppointmentTime string    `json:"appointment_time" binding:"required"`
	Reason          string    `json:"reason"`
}

// UpdateAppointmentInput is partial: zero-valued fields are left untouched.
// patient_id and doctor_id are immutable and have no field here on purpose.
type UpdateAppointmentInput struct {
	AppointmentDate *time.Time `json:"appointment_date"`
	AppointmentTime string     `json:"appointment_time"`
	Status          string     `json:"status" binding:"omitempty,oneof=pending scheduled completed cancelled"`
	Reason          string     `json:"reason"`
	Notes           string     `json:"notes"`
}
