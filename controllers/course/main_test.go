package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"ocms/config"
	"ocms/database"
	"ocms/middleware"
	"ocms/models"
	courseModels "ocms/models/course"
	courseRoutes "ocms/routers/courseRoutes"
	userRoutes "ocms/routers/userRoutes"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var testDBCounter int

// setupTestApp wires a fresh in-memory database and the full course route
// surface for one test.
func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	config.AppConfig = &config.Config{
		Port:           "0",
		JWTKey:         "test-secret",
		SaltRound:      bcrypt.MinCost,
		TokenTTLHours:  1,
		UploadDir:      t.TempDir(),
		MaxUploadBytes: 1 << 20,
	}

	testDBCounter++
	dsn := fmt.Sprintf("file:coursetest%d?mode=memory&cache=shared", testDBCounter)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	courseRoutes.SetupCourseRoutes(app)
	courseRoutes.SetupInstructorRoutes(app)
	userRoutes.SetupUserRoutes(app)
	return app
}

// createStudent inserts a student user with profile and returns the
// profile and a bearer token.
func createStudent(t *testing.T, email string) (models.StudentProfile, string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{Email: email, Password: string(hash), FirstName: "Test", LastName: "Student", Role: models.RoleStudent, IsActive: true}
	require.NoError(t, database.Database.Db.Create(&user).Error)

	profile := models.StudentProfile{UserID: user.ID}
	require.NoError(t, database.Database.Db.Create(&profile).Error)

	token, err := middleware.GenerateJWT(user.ID, user.Role, user.Email)
	require.NoError(t, err)
	return profile, token
}

// createInstructor inserts an instructor user with profile and returns the
// profile and a bearer token.
func createInstructor(t *testing.T, email string, verified bool) (models.InstructorProfile, string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{Email: email, Password: string(hash), FirstName: "Test", LastName: "Instructor", Role: models.RoleInstructor, IsActive: true}
	require.NoError(t, database.Database.Db.Create(&user).Error)

	profile := models.InstructorProfile{UserID: user.ID, IsVerified: verified, IsPendingApproval: !verified}
	require.NoError(t, database.Database.Db.Create(&profile).Error)

	token, err := middleware.GenerateJWT(user.ID, user.Role, user.Email)
	require.NoError(t, err)
	return profile, token
}

// createCourse inserts a course owned by the given instructor profile.
func createCourse(t *testing.T, instructorProfileID uint, price float64, published bool) courseModels.Course {
	t.Helper()

	course := courseModels.Course{
		Title:        "Intro to Testing",
		Description:  "A course used by the test suite",
		Category:     "engineering",
		Level:        "BEGINNER",
		Price:        price,
		InstructorID: instructorProfileID,
		IsPublished:  published,
	}
	require.NoError(t, database.Database.Db.Create(&course).Error)
	return course
}

// createLesson inserts a published lesson on a course.
func createLesson(t *testing.T, courseID uint, order int) courseModels.Lesson {
	t.Helper()

	lesson := courseModels.Lesson{
		CourseID:    courseID,
		Title:       fmt.Sprintf("Lesson %d", order),
		ContentType: "TEXT",
		TextContent: "lesson body",
		OrderIndex:  order,
		IsPublished: true,
	}
	require.NoError(t, database.Database.Db.Create(&lesson).Error)
	return lesson
}

// doRequest performs a JSON request against the test app and decodes the
// response envelope.
func doRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewBuffer(encoded)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
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
