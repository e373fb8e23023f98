package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"healthcard-backend/internal/config"
	"healthcard-backend/internal/models"
	"healthcard-backend/internal/routes"
	"healthcard-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// testPassword is shared by all seeded users; hashed once because bcrypt is
// deliberately slow.
const testPassword = "secret123"

var testPasswordHash string

func init() {
	gin.SetMode(gin.TestMode)
	var err error
	testPasswordHash, err = utils.HashPassword(testPassword)
	if err != nil {
		panic(err)
	}
}

// setupRouter points the global config.DB at a fresh in-memory store and
// builds the real route table around it.
func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.Migrate(db))
	config.DB = db

	r := gin.New()
	routes.SetupRoutes(r)
	return r
}

func seedUser(t *testing.T, role, email string) models.User {
	t.Helper()

	user := models.User{
		Email:        email,
		PasswordHash: testPasswordHash,
		FullName:     "Test " + role,
		Role:         role,
	}
	if role == models.RoleDoctor {
		user.Specialization = "General Medicine"
		user.LicenseNumber = "LIC-1234"
	}
	require.NoError(t, config.DB.Create(&user).Error)
	return user
}

func tokenFor(t *testing.T, user models.User) string {
	t.Helper()

	token, err := utils.GenerateToken(user.ID, user.Role)
	require.NoError(t, err)
	return token
}

// doRequest fires a JSON request through the router and returns the recorder.
// An empty token leaves the request unauthenticated.
func doRequest(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// decodeData unmarshals the envelope and returns its data payload.
func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var resp struct {
		Success bool            `json:"success"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	if len(resp.Data) == 0 {
		return nil
	}
	var data map[string]interface{}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	return data
}

func requireStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, w.Code, "unexpected status, body: %s", w.Body.String())
}
