package handlers

import (
	"net/http"

	"healthcard-backend/internal/config"
	"healthcard-backend/internal/models"
	"healthcard-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// GetUsers lists users, optionally filtered by role (?role=doctor), newest
// first. Any authenticated user may browse, e.g. patients picking a doctor.
func GetUsers(c *gin.Context) {
	p := utils.ParsePagination(c)

	query := config.DB.Model(&models.User{})
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.APIResponse(c, http.StatusInternalServerError, false, "Server error", nil)
		return
	}

	var users []models.User
	if err := query.
		Order("created_at desc").
		Limit(p.Limit).
		Offset(p.Offset()).
		Find(&users).Error; err != nil {
		utils.APIResponse(c, http.StatusInternalServerError, false, "Server error", nil)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "Users retrieved", gin.H{
		"users":        users,
		"total":        total,
		"total_pages":  p.TotalPages(total),
		"current_page": p.Page,
	})
}

// GetUser returns a single profile. Only the user themselves or an admin.
func GetUser(c *gin.Context) {
	actor := currentActor(c)
	id := parseID(c, "id")

	var user models.User
	if err := config.DB.First(&user, id).Error; err != nil {
		utils.APIResponse(c, http.StatusNotFound, false, "User not found", nil)
		return
	}

	if actor.Role != models.RoleAdmin && actor.ID != user.ID {
		utils.APIResponse(c, http.StatusForbidden, false, "Access denied", nil)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "User retrieved", user)
}

// UpdateUser applies a partial profile update. Self or admin. Email, password
// and role are immutable here; role-specific fields only apply when the
// target actually has that role.
func UpdateUser(c *gin.Context) {
	actor := currentActor(c)
	id := parseID(c, "id")

	if actor.Role != models.RoleAdmin && actor.ID != id {
		utils.APIResponse(c, http.StatusForbidden, false, "Access denied", nil)
		return
	}

	var user models.User
	if err := config.DB.First(&user, id).Error; err != nil {
		utils.APIResponse(c, http.StatusNotFound, false, "User not found", nil)
		return
	}

	var input models.UpdateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Invalid input", err.Error())
		return
	}

	if input.FullName != "" {
		user.FullName = input.FullName
	}
	if input.Phone != "" {
		user.Phone = input.Phone
	}
	if input.Address != "" {
		user.Address = input.Address
	}

	switch user.Role {
	case models.RoleDoctor:
		if input.Specialization != "" {
			user.Specialization = input.Specialization
		}
		if input.YearsOfExperience != 0 {
			user.YearsOfExperience = input.YearsOfExperience
		}
		if input.Bio != "" {
			user.Bio = input.Bio
		}
	case models.RolePatient:
		if input.DateOfBirth != "" {
			user.DateOfBirth = input.DateOfBirth
		}
		if input.Gender != "" {
			user.Gender = input.Gender
		}
		if input.EmergencyContact != "" {
			user.EmergencyContact = input.EmergencyContact
		}
	}

	if err := config.DB.Save(&user).Error; err != nil {
		utils.APIResponse(c, http.StatusInternalServerError, false, "Failed to update user", nil)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "User updated successfully", user)
}

// DeleteUser removes a user. Admin only (enforced at the route).
func DeleteUser(c *gin.Context) {
	id := parseID(c, "id")

	var user models.User
	if err := config.DB.First(&user, id).Error; err != nil {
		utils.APIResponse(c, http.StatusNotFound, false, "User not found", nil)
		return
	}

	if err := config.DB.Delete(&user).Error; err != nil {
		utils.APIResponse(c, http.StatusInternalServerError, false, "Failed to delete user", nil)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "User deleted successfully", nil)
}

// AssignDoctor links a patient to a doctor. Admin only (enforced at the
// route). Both sides are validated for the right role before the write.
func AssignDoctor(c *gin.Context) {
	patientID := parseID(c, "id")

	var input models.AssignDoctorInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Invalid input", err.Error())
		return
	}

	var patient models.User
	if err := config.DB.First(&patient, patientID).Error; err != nil || patient.Role != models.RolePatient {
		utils.APIResponse(c, http.StatusNotFound, false, "Patient not found", nil)
		return
	}

	var doctor models.User
	if err := config.DB.First(&doctor, input.DoctorID).Error; err != nil || doctor.Role != models.RoleDoctor {
		utils.APIResponse(c, http.StatusNotFound, false, "Doctor not found", nil)
		return
	}

	patient.AssignedDoctorID = &doctor.ID
	if err := config.DB.Save(&patient).Error; err != nil {
		utils.APIResponse(c, http.StatusInternalServerError, false, "Failed to assign doctor", nil)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "Patient assigned to doctor successfully", nil)
}

// GetDoctorPatients lists the patients assigned to a doctor. Only that
// doctor or an admin may look.
func GetDoctorPatients(c *gin.Context) {
	actor := currentActor(c)
	doctorID := parseID(c, "id")

	if actor.Role != models.RoleAdmin && actor.ID != doctorID {
		utils.APIResponse(c, http.StatusForbidden, false, "Access denied", nil)
		return
	}

	var patients []models.User
	if err := config.DB.
		Where("role = ? AND assigned_doctor_id = ?", models.RolePatient, doctorID).
		Find(&patients).Error; err != nil {
		utils.APIResponse(c, http.StatusInternalServerError, false, "Server error", nil)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "Patients retrieved", gin.H{"patients": patients})
}
