package handlers

import (
	"net/http"

	"healthcard-backend/internal/config"
	"healthcard-backend/internal/models"
	"healthcard-backend/internal/policy"
	"healthcard-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// CreateMedicalRecord writes a clinical note. Doctor only (enforced at the
// route); the record is always attributed to the acting doctor.
func CreateMedicalRecord(c *gin.Context) {
	actor := currentActor(c)

	var input models.CreateMedicalRecordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Invalid medical record input", err.Error())
		return
	}

	var patient models.User
	if err := config.DB.First(&patient, input.PatientID).Error; err != nil || patient.Role != models.RolePatient {
		utils.APIResponse(c, http.StatusNotFound, false, "Patient not found", nil)
		return
	}

	record := models.MedicalRecord{
		PatientID:  input.PatientID,
		DoctorID:   actor.ID,
		Diagnosis:  input.Diagnosis,
		Treatment:  input.Treatment,
		Notes:      input.Notes,
		Symptoms:   input.Symptoms,
		VisitDate:  input.VisitDate,
		VitalSigns: input.VitalSigns,
	}

	if err := config.DB.Create(&record).Error; err != nil {
		utils.APIResponse(c, http.StatusInternalServerError, false, "Failed to create medical record", nil)
		return
	}

	config.DB.Preload("Patient").Preload("Doctor").First(&record, record.ID)

	utils.APIResponse(c, http.StatusCreated, true, "Medical record created successfully", record)
}

// GetMedicalRecords lists records scoped to the actor. Admins and doctors
// may narrow by patient_id; for patients that param is silently dropped.
func GetMedicalRecords(c *gin.Context) {
	actor := currentActor(c)
	p := utils.ParsePagination(c)

	query := config.DB.Model(&models.MedicalRecord{})

	scope := policy.ScopeList(actor)
	if scope.PatientID != 0 {
		query = query.Where("patient_id = ?", scope.PatientID)
	}
	if scope.DoctorID != 0 {
		query = query.Where("doctor_id = ?", scope.DoctorID)
	}

	if patientID := c.Query("patient_id"); patientID != "" && policy.CanFilterByPatient(actor) {
		query = query.Where("patient_id = ?", patientID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.APIResponse(c, http.StatusInternalServerError, false, "Server error", nil)
		return
	}

	var records []models.MedicalRecord
	if err := query.
		Preload("Patient").
		Preload("Doctor").
		Order("visit_date desc").
		Limit(p.Limit).
		Offset(p.Offset()).
		Find(&records).Error; err != nil {
		utils.APIResponse(c, http.StatusInternalServerError, false, "Server error", nil)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "Medical records retrieved", gin.H{
		"records":      records,
		"total":        total,
		"total_pages":  p.TotalPages(total),
		"current_page": p.Page,
	})
}

// GetMedicalRecord returns one record if the actor is a party to it.
func GetMedicalRecord(c *gin.Context) {
	actor := currentActor(c)

	var record models.MedicalRecord
	if err := config.DB.
		Preload("Patient").
		Preload("Doctor").
		First(&record, parseID(c, "id")).Error; err != nil {
		utils.APIResponse(c, http.StatusNotFound, false, "Medical record not found", nil)
		return
	}

	own := policy.Ownership{PatientID: record.PatientID, DoctorID: record.DoctorID}
	if d := policy.CanRead(actor, own); !d.Allowed {
		utils.APIResponse(c, http.StatusForbidden, false, d.Reason, nil)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "Medical record retrieved", record)
}

// UpdateMedicalRecord partially updates the clinical fields. Only the
// authoring doctor or an admin; the patient never gets write access.
func UpdateMedicalRecord(c *gin.Context) {
	actor := currentActor(c)

	var record models.MedicalRecord
	if err := config.DB.First(&record, parseID(c, "id")).Error; err != nil {
		utils.APIResponse(c, http.StatusNotFound, false, "Medical record not found", nil)
		return
	}

	own := policy.Ownership{PatientID: record.PatientID, DoctorID: record.DoctorID}
	if d := policy.CanMutate(actor, policy.KindMedicalRecord, own); !d.Allowed {
		utils.APIResponse(c, http.StatusForbidden, false, d.Reason, nil)
		return
	}

	var input models.UpdateMedicalRecordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Invalid input", err.Error())
		return
	}

	if input.Diagnosis != "" {
		record.Diagnosis = input.Diagnosis
	}
	if input.Treatment != "" {
		record.Treatment = input.Treatment
	}
	if input.Notes != "" {
		record.Notes = input.Notes
	}
	if input.Symptoms != "" {
		record.Symptoms = input.Symptoms
	}
	if input.VitalSigns != nil {
		record.VitalSigns = *input.VitalSigns
	}

	if err := config.DB.Save(&record).Error; err != nil {
		utils.APIResponse(c, http.StatusInternalServerError, false, "Failed to update medical record", nil)
		return
	}

	config.DB.Preload("Patient").Preload("Doctor").First(&record, record.ID)

	utils.APIResponse(c, http.StatusOK, true, "Medical record updated successfully", record)
}

// DeleteMedicalRecord removes a record for good. Same parties as update.
func DeleteMedicalRecord(c *gin.Context) {
	actor := currentActor(c)

	var record models.MedicalRecord
	if err := config.DB.First(&record, parseID(c, "id")).Error; err != nil {
		utils.APIResponse(c, http.StatusNotFound, false, "Medical record not found", nil)
		return
	}

	own := policy.Ownership{PatientID: record.PatientID, DoctorID: record.DoctorID}
	if d := policy.CanMutate(actor, policy.KindMedicalRecord, own); !d.Allowed {
		utils.APIResponse(c, http.StatusForbidden, false, d.Reason, nil)
		return
	}

	if err := config.DB.Delete(&record).Error; err != nil {
		utils.APIResponse(c, http.StatusInternalServerError, false, "Failed to delete medical record", nil)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "Medical record deleted successfully", nil)
}
