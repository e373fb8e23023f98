package handlers

import (
	"net/http"
	"time"

	"healthcard-backend/internal/config"
	"healthcard-backend/internal/models"
	"healthcard-backend/internal/policy"
	"healthcard-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// CreateAppointment books an appointment. Patients book for themselves;
// admins and doctors must name the patient in the body.
func CreateAppointment(c *gin.Context) {
	actor := currentActor(c)

	var input models.CreateAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Invalid appointment input", err.Error())
		return
	}

	var doctor models.User
	if err := config.DB.First(&doctor, input.DoctorID).Error; err != nil || doctor.Role != models.RoleDoctor {
		utils.APIResponse(c, http.StatusNotFound, false, "Doctor not found", nil)
		return
	}

	patientID := input.PatientID
	if actor.Role == models.RolePatient {
		patientID = actor.ID
	} else {
		var patient models.User
		if err := config.DB.First(&patient, patientID).Error; err != nil || patient.Role != models.RolePatient {
			utils.APIResponse(c, http.StatusNotFound, false, "Patient not found", nil)
			return
		}
	}

	appointment := models.Appointment{
		PatientID:       patientID,
		DoctorID:        input.DoctorID,
		AppointmentDate: input.AppointmentDate,
		AppointmentTime: input.AppointmentTime,
		Status:          models.AppointmentPending,
		Reason:          input.Reason,
	}

	if err := config.DB.Create(&appointment).Error; err != nil {
		utils.APIResponse(c, http.StatusInternalServerError, false, "Failed to create appointment", nil)
		return
	}

	config.DB.Preload("Patient").Preload("Doctor").First(&appointment, appointment.ID)

	utils.APIResponse(c, http.StatusCreated, true, "Appointment created successfully", appointment)
}

// GetAppointments lists appointments scoped to the actor, with optional
// status and exact-date filters, newest first.
func GetAppointments(c *gin.Context) {
	actor := currentActor(c)
	p := utils.ParsePagination(c)

	query := config.DB.Model(&models.Appointment{})

	scope := policy.ScopeList(actor)
	if scope.PatientID != 0 {
		query = query.Where("patient_id = ?", scope.PatientID)
	}
	if scope.DoctorID != 0 {
		query = query.Where("doctor_id = ?", scope.DoctorID)
	}

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if date := c.Query("date"); date != "" {
		if d, err := time.Parse("2006-01-02", date); err == nil {
			query = query.Where("appointment_date = ?", d)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.APIResponse(c, http.StatusInternalServerError, false, "Server error", nil)
		return
	}

	var appointments []models.Appointment
	if err := query.
		Preload("Patient").
		Preload("Doctor").
		Order("appointment_date desc, appointment_time desc").
		Limit(p.Limit).
		Offset(p.Offset()).
		Find(&appointments).Error; err != nil {
		utils.APIResponse(c, http.StatusInternalServerError, false, "Server error", nil)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "Appointments retrieved", gin.H{
		"appointments": appointments,
		"total":        total,
		"total_pages":  p.TotalPages(total),
		"current_page": p.Page,
	})
}

// GetAppointment returns one appointment if the actor is a party to it.
func GetAppointment(c *gin.Context) {
	actor := currentActor(c)

	var appointment models.Appointment
	if err := config.DB.
		Preload("Patient").
		Preload("Doctor").
		First(&appointment, parseID(c, "id")).Error; err != nil {
		utils.APIResponse(c, http.StatusNotFound, false, "Appointment not found", nil)
		return
	}

	own := policy.Ownership{PatientID: appointment.PatientID, DoctorID: appointment.DoctorID}
	if d := policy.CanRead(actor, own); !d.Allowed {
		utils.APIResponse(c, http.StatusForbidden, false, d.Reason, nil)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "Appointment retrieved", appointment)
}

// UpdateAppointment partially updates date, time, status, reason or notes.
// Either party or an admin; the two reference ids never change.
func UpdateAppointment(c *gin.Context) {
	actor := currentActor(c)

	var appointment models.Appointment
	if err := config.DB.First(&appointment, parseID(c, "id")).Error; err != nil {
		utils.APIResponse(c, http.StatusNotFound, false, "Appointment not found", nil)
		return
	}

	own := policy.Ownership{PatientID: appointment.PatientID, DoctorID: appointment.DoctorID}
	if d := policy.CanMutate(actor, policy.KindAppointment, own); !d.Allowed {
		utils.APIResponse(c, http.StatusForbidden, false, d.Reason, nil)
		return
	}

	var input models.UpdateAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Invalid input", err.Error())
		return
	}

	if input.AppointmentDate != nil {
		appointment.AppointmentDate = *input.AppointmentDate
	}
	if input.AppointmentTime != "" {
		appointment.AppointmentTime = input.AppointmentTime
	}
	if input.Status != "" {
		appointment.Status = input.Status
	}
	if input.Reason != "" {
		appointment.Reason = input.Reason
	}
	if input.Notes != "" {
		appointment.Notes = input.Notes
	}

	if err := config.DB.Save(&appointment).Error; err != nil {
		utils.APIResponse(c, http.StatusInternalServerError, false, "Failed to update appointment", nil)
		return
	}

	config.DB.Preload("Patient").Preload("Doctor").First(&appointment, appointment.ID)

	utils.APIResponse(c, http.StatusOK, true, "Appointment updated successfully", appointment)
}

// CancelAppointment is the delete operation for appointments: a state
// transition to cancelled, never a row deletion. Cancelled is terminal.
func CancelAppointment(c *gin.Context) {
	actor := currentActor(c)

	var appointment models.Appointment
	if err := config.DB.First(&appointment, parseID(c, "id")).Error; err != nil {
		utils.APIResponse(c, http.StatusNotFound, false, "Appointment not found", nil)
		return
	}

	own := policy.Ownership{PatientID: appointment.PatientID, DoctorID: appointment.DoctorID}
	if d := policy.CanMutate(actor, policy.KindAppointment, own); !d.Allowed {
		utils.APIResponse(c, http.StatusForbidden, false, d.Reason, nil)
		return
	}

	appointment.Status = models.AppointmentCancelled
	if err := config.DB.Save(&appointment).Error; err != nil {
		utils.APIResponse(c, http.StatusInternalServerError, false, "Failed to cancel appointment", nil)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "Appointment cancelled successfully", nil)
}
