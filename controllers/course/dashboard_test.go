package controllers_test

import (
	"net/http"
	"ocms/database"
	courseModels "ocms/models/course"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStudentDashboard(t *testing.T) {
	app := setupTestApp(t)
	instructor, _ := createInstructor(t, "teach@example.com", true)
	courseA := createCourse(t, instructor.ID, 0, true)
	courseB := createCourse(t, instructor.ID, 0, true)
	student, token := createStudent(t, "learner@example.com")

	enrollStudent(t, student.ID, courseA.ID)
	dropped := enrollStudent(t, student.ID, courseB.ID)
	dropped.CompletionStatus = courseModels.EnrollmentDropped
	require.NoError(t, database.Database.Db.Save(&dropped).Error)

	resp, envelope := doRequest(t, app, "GET", "/api/dashboard/student", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	data := envelope["data"].(map[string]interface{})
	enrollments := data["enrollments"].(map[string]interface{})
	assert.Equal(t, float64(1), enrollments["active"])
	assert.Equal(t, float64(0), enrollments["completed"])
	assert.Equal(t, float64(1), enrollments["dropped"])
	assert.Equal(t, float64(0), data["certificates"])
}

func TestInstructorDashboard(t *testing.T) {
	app := setupTestApp(t)
	instructor, token := createInstructor(t, "teach@example.com", true)
	course := createCourse(t, instructor.ID, 50, true)
	student, _ := createStudent(t, "learner@example.com")
	enrollStudent(t, student.ID, course.ID)

	require.NoError(t, database.Database.Db.Create(&courseModels.Payment{
		StudentProfileID: student.ID,
		CourseID:         course.ID,
		Amount:           50,
		Method:           "CARD",
		TransactionID:    "TXN-DASH000001",
		Status:           courseModels.PaymentCompleted,
	}).Error)

	resp, envelope := doRequest(t, app, "GET", "/api/instructor/dashboard", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	data := envelope["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["course_count"])
	assert.Equal(t, float64(1), data["total_enrollments"])
	assert.Equal(t, float64(50), data["total_revenue"])

	stats := data["courses"].([]interface{})
	require.Len(t, stats, 1)
	entry := stats[0].(map[string]interface{})
	assert.Equal(t, float64(50), entry["revenue"])
	assert.Equal(t, float64(0), entry["completion_rate"])
}
