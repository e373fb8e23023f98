package handlers

import (
	"net/http"

	"healthcard-backend/internal/config"
	"healthcard-backend/internal/models"
	"healthcard-backend/internal/policy"
	"healthcard-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// CreatePrescription writes a prescription. Doctor only (enforced at the
// route), always attributed to the acting doctor.
func CreatePrescription(c *gin.Context) {
	actor := currentActor(c)

	var input models.CreatePrescriptionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Invalid prescription input", err.Error())
		return
	}

	var patient models.User
	if err := config.DB.First(&patient, input.PatientID).Error; err != nil || patient.Role != models.RolePatient {
		utils.APIResponse(c, http.StatusNotFound, false, "Patient not found", nil)
		return
	}

	prescription := models.Prescription{
		PatientID:      input.PatientID,
		DoctorID:       actor.ID,
		MedicationName: input.MedicationName,
		Dosage:         input.Dosage,
		Frequency:      input.Frequency,
		Duration:       input.Duration,
		Instructions:   input.Instructions,
		IsActive:       true,
	}

	if err := config.DB.Create(&prescription).Error; err != nil {
		utils.APIResponse(c, http.StatusInternalServerError, false, "Failed to create prescription", nil)
		return
	}

	config.DB.Preload("Patient").Preload("Doctor").First(&prescription, prescription.ID)

	utils.APIResponse(c, http.StatusCreated, true, "Prescription created successfully", prescription)
}

// GetPrescriptions lists prescriptions scoped to the actor. patient_id and
// is_active filters are honored for admins and doctors only.
func GetPrescriptions(c *gin.Context) {
	actor := currentActor(c)
	p := utils.ParsePagination(c)

	query := config.DB.Model(&models.Prescription{})

	scope := policy.ScopeList(actor)
	if scope.PatientID != 0 {
		query = query.Where("patient_id = ?", scope.PatientID)
	}
	if scope.DoctorID != 0 {
		query = query.Where("doctor_id = ?", scope.DoctorID)
	}

	if policy.CanFilterByPatient(actor) {
		if patientID := c.Query("patient_id"); patientID != "" {
			query = query.Where("patient_id = ?", patientID)
		}
		if isActive := c.Query("is_active"); isActive != "" {
			query = query.Where("is_active = ?", isActive == "true")
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.APIResponse(c, http.StatusInternalServerError, false, "Server error", nil)
		return
	}

	var prescriptions []models.Prescription
	if err := query.
		Preload("Patient").
		Preload("Doctor").
		Order("date_prescribed desc").
		Limit(p.Limit).
		Offset(p.Offset()).
		Find(&prescriptions).Error; err != nil {
		utils.APIResponse(c, http.StatusInternalServerError, false, "Server error", nil)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "Prescriptions retrieved", gin.H{
		"prescriptions": prescriptions,
		"total":         total,
		"total_pages":   p.TotalPages(total),
		"current_page":  p.Page,
	})
}

// GetPrescription returns one prescription if the actor is a party to it.
func GetPrescription(c *gin.Context) {
	actor := currentActor(c)

	var prescription models.Prescription
	if err := config.DB.
		Preload("Patient").
		Preload("Doctor").
		First(&prescription, parseID(c, "id")).Error; err != nil {
		utils.APIResponse(c, http.StatusNotFound, false, "Prescription not found", nil)
		return
	}

	own := policy.Ownership{PatientID: prescription.PatientID, DoctorID: prescription.DoctorID}
	if d := policy.CanRead(actor, own); !d.Allowed {
		utils.APIResponse(c, http.StatusForbidden, false, d.Reason, nil)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "Prescription retrieved", prescription)
}

// UpdatePrescription partially updates a prescription. Only the prescribing
// doctor or an admin.
func UpdatePrescription(c *gin.Context) {
	actor := currentActor(c)

	var prescription models.Prescription
	if err := config.DB.First(&prescription, parseID(c, "id")).Error; err != nil {
		utils.APIResponse(c, http.StatusNotFound, false, "Prescription not found", nil)
		return
	}

	own := policy.Ownership{PatientID: prescription.PatientID, DoctorID: prescription.DoctorID}
	if d := policy.CanMutate(actor, policy.KindPrescription, own); !d.Allowed {
		utils.APIResponse(c, http.StatusForbidden, false, d.Reason, nil)
		return
	}

	var input models.UpdatePrescriptionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Invalid input", err.Error())
		return
	}

	if input.MedicationName != "" {
		prescription.MedicationName = input.MedicationName
	}
	if input.Dosage != "" {
		prescription.Dosage = input.Dosage
	}
	if input.Frequency != "" {
		prescription.Frequency = input.Frequency
	}
	if input.Duration != "" {
		prescription.Duration = input.Duration
	}
	if input.Instructions != "" {
		prescription.Instructions = input.Instructions
	}
	if input.IsActive != nil {
		prescription.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&prescription).Error; err != nil {
		utils.APIResponse(c, http.StatusInternalServerError, false, "Failed to update prescription", nil)
		return
	}

	config.DB.Preload("Patient").Preload("Doctor").First(&prescription, prescription.ID)

	utils.APIResponse(c, http.StatusOK, true, "Prescription updated successfully", prescription)
}

// DeletePrescription removes a prescription for good. Same parties as update.
func DeletePrescription(c *gin.Context) {
	actor := currentActor(c)

	var prescription models.Prescription
	if err := config.DB.First(&prescription, parseID(c, "id")).Error; err != nil {
		utils.APIResponse(c, http.StatusNotFound, false, "Prescription not found", nil)
		return
	}

	own := policy.Ownership{PatientID: prescription.PatientID, DoctorID: prescription.DoctorID}
	if d := policy.CanMutate(actor, policy.KindPrescription, own); !d.Allowed {
		utils.APIResponse(c, http.StatusForbidden, false, d.Reason, nil)
		return
	}

	if err := config.DB.Delete(&prescription).Error; err != nil {
		utils.APIResponse(c, http.StatusInternalServerError, false, "Failed to delete prescription", nil)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "Prescription deleted successfully", nil)
}
