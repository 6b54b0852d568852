package authController_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"ocms/config"
	"ocms/database"
	"ocms/models"
	authRoutes "ocms/routers/authRoutes"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var testDBCounter int

func setupAuthApp(t *testing.T) *fiber.App {
	t.Helper()

	config.AppConfig = &config.Config{
		JWTKey:        "test-secret",
		SaltRound:     bcrypt.MinCost,
		TokenTTLHours: 1,
	}

	testDBCounter++
	dsn := fmt.Sprintf("file:authtest%d?mode=memory&cache=shared", testDBCounter)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	authRoutes.SetupAuthRoutes(app)
	return app
}

func sendJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	encoded, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(method, path, bytes.NewBuffer(encoded))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	envelope := map[string]interface{}{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return resp, envelope
}

func signupBody(email, role string) map[string]interface{} {
	return map[string]interface{}{
		"email":      email,
		"password":   "password123",
		"first_name": "Ada",
		"last_name":  "Lovelace",
		"role":       role,
	}
}

func TestSignupCreatesStudentProfile(t *testing.T) {
	app := setupAuthApp(t)

	resp, envelope := sendJSON(t, app, "POST", "/api/auth/signup", "", signupBody("ada@example.com", ""))
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	data := envelope["data"].(map[string]interface{})
	assert.NotEmpty(t, data["token"])
	user := data["user"].(map[string]interface{})
	assert.Equal(t, models.RoleStudent, user["role"])
	assert.NotContains(t, user, "password")

	var profile models.StudentProfile
	require.NoError(t, database.Database.Db.
		Where("user_id = ?", uint(user["ID"].(float64))).First(&profile).Error)
}

func TestSignupInstructorStartsPending(t *testing.T) {
	app := setupAuthApp(t)

	resp, envelope := sendJSON(t, app, "POST", "/api/auth/signup", "", signupBody("grace@example.com", "INSTRUCTOR"))
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	user := envelope["data"].(map[string]interface{})["user"].(map[string]interface{})
	var profile models.InstructorProfile
	require.NoError(t, database.Database.Db.
		Where("user_id = ?", uint(user["ID"].(float64))).First(&profile).Error)
	assert.False(t, profile.IsVerified)
	assert.True(t, profile.IsPendingApproval)
}

func TestSignupDuplicateEmailConflicts(t *testing.T) {
	app := setupAuthApp(t)

	resp, _ := sendJSON(t, app, "POST", "/api/auth/signup", "", signupBody("dup@example.com", ""))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = sendJSON(t, app, "POST", "/api/auth/signup", "", signupBody("dup@example.com", ""))
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestSignupValidation(t *testing.T) {
	app := setupAuthApp(t)

	body := map[string]interface{}{"email": "not-an-email", "password": "short"}
	resp, envelope := sendJSON(t, app, "POST", "/api/auth/signup", "", body)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	fields := envelope["data"].(map[string]interface{})
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "password")
}

func TestSignupRejectsAdminRole(t *testing.T) {
	app := setupAuthApp(t)

	resp, _ := sendJSON(t, app, "POST", "/api/auth/signup", "", signupBody("boss@example.com", "ADMIN"))
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestLogin(t *testing.T) {
	app := setupAuthApp(t)

	resp, _ := sendJSON(t, app, "POST", "/api/auth/signup", "", signupBody("ada@example.com", ""))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, envelope := sendJSON(t, app, "POST", "/api/auth/login", "", map[string]interface{}{
		"email": "ada@example.com", "password": "password123",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, envelope["data"].(map[string]interface{})["token"])

	// A login leaves a tracking row behind.
	var count int64
	database.Database.Db.Model(&models.LoginTracking{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestLoginWrongPassword(t *testing.T) {
	app := setupAuthApp(t)

	resp, _ := sendJSON(t, app, "POST", "/api/auth/signup", "", signupBody("ada@example.com", ""))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = sendJSON(t, app, "POST", "/api/auth/login", "", map[string]interface{}{
		"email": "ada@example.com", "password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLoginDeactivatedAccount(t *testing.T) {
	app := setupAuthApp(t)

	resp, _ := sendJSON(t, app, "POST", "/api/auth/signup", "", signupBody("ada@example.com", ""))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	require.NoError(t, database.Database.Db.Model(&models.User{}).
		Where("email = ?", "ada@example.com").Update("is_active", false).Error)

	resp, _ = sendJSON(t, app, "POST", "/api/auth/login", "", map[string]interface{}{
		"email": "ada@example.com", "password": "password123",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMeReturnsRoleProfile(t *testing.T) {
	app := setupAuthApp(t)

	resp, envelope := sendJSON(t, app, "POST", "/api/auth/signup", "", signupBody("ada@example.com", ""))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	token := envelope["data"].(map[string]interface{})["token"].(string)

	req := httptest.NewRequest("GET", "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	meResp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, meResp.StatusCode)

	me := map[string]interface{}{}
	require.NoError(t, json.NewDecoder(meResp.Body).Decode(&me))
	data := me["data"].(map[string]interface{})
	assert.Contains(t, data, "user")
	assert.Contains(t, data, "student_profile")
}

func TestChangePassword(t *testing.T) {
	app := setupAuthApp(t)

	resp, envelope := sendJSON(t, app, "POST", "/api/auth/signup", "", signupBody("ada@example.com", ""))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	token := envelope["data"].(map[string]interface{})["token"].(string)

	// Wrong old password is rejected.
	resp, _ = sendJSON(t, app, "PUT", "/api/auth/change-password", token, map[string]interface{}{
		"old_password": "nope", "new_password": "anotherpass1",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = sendJSON(t, app, "PUT", "/api/auth/change-password", token, map[string]interface{}{
		"old_password": "password123", "new_password": "anotherpass1",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Old password no longer works.
	resp, _ = sendJSON(t, app, "POST", "/api/auth/login", "", map[string]interface{}{
		"email": "ada@example.com", "password": "password123",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = sendJSON(t, app, "POST", "/api/auth/login", "", map[string]interface{}{
		"email": "ada@example.com", "password": "anotherpass1",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
