package handlers

import (
	"errors"
	"net/http"
	"strings"

	"healthcard-backend/internal/config"
	"healthcard-backend/internal/models"
	"healthcard-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Register creates a user of any role. Doctors must supply their
// specialization and license number up front; the role is fixed afterwards.
func Register(c *gin.Context) {
	var input models.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Invalid registration input", err.Error())
		return
	}

	if err := input.Validate(); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, err.Error(), nil)
		return
	}

	email := strings.ToLower(input.Email)

	// Check up front for a clean 409; the unique index still backstops races.
	var existing models.User
	if err := config.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		utils.APIResponse(c, http.StatusConflict, false, "Email already registered", nil)
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.APIResponse(c, http.StatusInternalServerError, false, "Server error", nil)
		return
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		utils.APIResponse(c, http.StatusInternalServerError, false, "Failed to process password", nil)
		return
	}

	user := models.User{
		Email:        email,
		PasswordHash: hashedPassword,
		FullName:     input.FullName,
		Role:         input.Role,
		Phone:        input.Phone,
		Address:      input.Address,
	}

	switch input.Role {
	case models.RoleDoctor:
		user.Specialization = input.Specialization
		user.LicenseNumber = input.LicenseNumber
		user.YearsOfExperience = input.YearsOfExperience
		user.Bio = input.Bio
	case models.RolePatient:
		user.DateOfBirth = input.DateOfBirth
		user.Gender = input.Gender
		user.EmergencyContact = input.EmergencyContact
	}

	if err := config.DB.Create(&user).Error; err != nil {
		utils.APIResponse(c, http.StatusConflict, false, "Email already registered", nil)
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Role)
	if err != nil {
		utils.APIResponse(c, http.StatusInternalServerError, false, "Failed to generate token", nil)
		return
	}

	utils.APIResponse(c, http.StatusCreated, true, "Registration successful", gin.H{
		"token": token,
		"user":  user,
	})
}

// Login verifies the credential and issues a token. Same message for unknown
// email and wrong password, no hints.
func Login(c *gin.Context) {
	var input models.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Invalid login input", nil)
		return
	}

	var user models.User
	if err := config.DB.Where("email = ?", strings.ToLower(input.Email)).First(&user).Error; err != nil {
		utils.APIResponse(c, http.StatusUnauthorized, false, "Invalid email or password", nil)
		return
	}

	if !utils.CheckPassword(input.Password, user.PasswordHash) {
		utils.APIResponse(c, http.StatusUnauthorized, false, "Invalid email or password", nil)
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Role)
	if err != nil {
		utils.APIResponse(c, http.StatusInternalServerError, false, "Failed to generate token", nil)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "Login successful", gin.H{
		"token": token,
		"user": gin.H{
			"id":        user.ID,
			"full_name": user.FullName,
			"email":     user.Email,
			"role":      user.Role,
		},
	})
}
