package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"healthcard-backend/internal/config"
	"healthcard-backend/internal/models"

	"github.com/stretchr/testify/require"
)

func TestGetUsersRoleFilter(t *testing.T) {
	r := setupRouter(t)
	seedUser(t, models.RoleDoctor, "doc@example.com")
	seedUser(t, models.RoleDoctor, "doc2@example.com")
	patient := seedUser(t, models.RolePatient, "pat@example.com")

	w := doRequest(t, r, http.MethodGet, "/api/v1/users?role=doctor", tokenFor(t, patient), nil)
	requireStatus(t, w, http.StatusOK)
	data := decodeData(t, w)
	require.EqualValues(t, 2, data["total"])
	for _, item := range data["users"].([]interface{}) {
		require.Equal(t, models.RoleDoctor, item.(map[string]interface{})["role"])
	}
}

func TestGetUserSelfOrAdmin(t *testing.T) {
	r := setupRouter(t)
	patient := seedUser(t, models.RolePatient, "pat@example.com")
	other := seedUser(t, models.RolePatient, "other@example.com")
	admin := seedUser(t, models.RoleAdmin, "admin@example.com")

	path := fmt.Sprintf("/api/v1/users/%d", patient.ID)
	requireStatus(t, doRequest(t, r, http.MethodGet, path, tokenFor(t, patient), nil), http.StatusOK)
	requireStatus(t, doRequest(t, r, http.MethodGet, path, tokenFor(t, admin), nil), http.StatusOK)
	requireStatus(t, doRequest(t, r, http.MethodGet, path, tokenFor(t, other), nil), http.StatusForbidden)

	requireStatus(t, doRequest(t, r, http.MethodGet, "/api/v1/users/99999", tokenFor(t, admin), nil), http.StatusNotFound)
}

func TestUpdateUserRoleFieldsGated(t *testing.T) {
	r := setupRouter(t)
	patient := seedUser(t, models.RolePatient, "pat@example.com")

	path := fmt.Sprintf("/api/v1/users/%d", patient.ID)
	w := doRequest(t, r, http.MethodPut, path, tokenFor(t, patient), map[string]interface{}{
		"full_name":      "Renamed Patient",
		"gender":         "female",
		"specialization": "Neurology", // doctor field on a patient: ignored
	})
	requireStatus(t, w, http.StatusOK)

	var got models.User
	require.NoError(t, config.DB.First(&got, patient.ID).Error)
	require.Equal(t, "Renamed Patient", got.FullName)
	require.Equal(t, "female", got.Gender)
	require.Empty(t, got.Specialization)
	require.Equal(t, models.RolePatient, got.Role)
}

func TestDeleteUserAdminOnly(t *testing.T) {
	r := setupRouter(t)
	patient := seedUser(t, models.RolePatient, "pat@example.com")
	victim := seedUser(t, models.RolePatient, "victim@example.com")
	admin := seedUser(t, models.RoleAdmin, "admin@example.com")

	path := fmt.Sprintf("/api/v1/users/%d", victim.ID)
	requireStatus(t, doRequest(t, r, http.MethodDelete, path, tokenFor(t, patient), nil), http.StatusForbidden)
	requireStatus(t, doRequest(t, r, http.MethodDelete, path, tokenFor(t, admin), nil), http.StatusOK)

	var count int64
	config.DB.Model(&models.User{}).Where("id = ?", victim.ID).Count(&count)
	require.EqualValues(t, 0, count)
}

func TestAssignDoctor(t *testing.T) {
	r := setupRouter(t)
	doctor := seedUser(t, models.RoleDoctor, "doc@example.com")
	patient := seedUser(t, models.RolePatient, "pat@example.com")
	admin := seedUser(t, models.RoleAdmin, "admin@example.com")

	path := fmt.Sprintf("/api/v1/users/%d/assign-doctor", patient.ID)
	body := map[string]interface{}{"doctor_id": doctor.ID}

	// Admin only.
	requireStatus(t, doRequest(t, r, http.MethodPut, path, tokenFor(t, doctor), body), http.StatusForbidden)

	// Both referenced identities must carry the right role.
	requireStatus(t, doRequest(t, r, http.MethodPut, path, tokenFor(t, admin),
		map[string]interface{}{"doctor_id": patient.ID}), http.StatusNotFound)
	wrongTarget := fmt.Sprintf("/api/v1/users/%d/assign-doctor", doctor.ID)
	requireStatus(t, doRequest(t, r, http.MethodPut, wrongTarget, tokenFor(t, admin), body), http.StatusNotFound)

	requireStatus(t, doRequest(t, r, http.MethodPut, path, tokenFor(t, admin), body), http.StatusOK)

	var got models.User
	require.NoError(t, config.DB.First(&got, patient.ID).Error)
	require.NotNil(t, got.AssignedDoctorID)
	require.Equal(t, doctor.ID, *got.AssignedDoctorID)
}

func TestGetDoctorPatients(t *testing.T) {
	r := setupRouter(t)
	doctor := seedUser(t, models.RoleDoctor, "doc@example.com")
	doctor2 := seedUser(t, models.RoleDoctor, "doc2@example.com")
	patient := seedUser(t, models.RolePatient, "pat@example.com")
	admin := seedUser(t, models.RoleAdmin, "admin@example.com")

	patient.AssignedDoctorID = &doctor.ID
	require.NoError(t, config.DB.Save(&patient).Error)

	path := fmt.Sprintf("/api/v1/doctors/%d/patients", doctor.ID)

	// Only the doctor themselves or an admin.
	requireStatus(t, doRequest(t, r, http.MethodGet, path, tokenFor(t, doctor2), nil), http.StatusForbidden)
	requireStatus(t, doRequest(t, r, http.MethodGet, path, tokenFor(t, patient), nil), http.StatusForbidden)

	w := doRequest(t, r, http.MethodGet, path, tokenFor(t, admin), nil)
	requireStatus(t, w, http.StatusOK)
	data := decodeData(t, w)
	patients := data["patients"].([]interface{})
	require.Len(t, patients, 1)
	require.EqualValues(t, patient.ID, patients[0].(map[string]interface{})["id"])

	w = doRequest(t, r, http.MethodGet, path, tokenFor(t, doctor), nil)
	requireStatus(t, w, http.StatusOK)
}
