package controllers_test

import (
	"net/http"
	controllers "ocms/controllers/course"
	"ocms/database"
	courseModels "ocms/models/course"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyCertificate(t *testing.T) {
	app := setupTestApp(t)
	instructor, _ := createInstructor(t, "teach@example.com", true)
	course := createCourse(t, instructor.ID, 0, true)
	student, _ := createStudent(t, "learner@example.com")

	controllers.IssueCertificate(student.ID, course.ID)

	var cert courseModels.Certificate
	require.NoError(t, database.Database.Db.
		Where("course_id = ?", course.ID).First(&cert).Error)
	require.NotEmpty(t, cert.VerificationCode)

	// Verification is public, no token needed.
	resp, envelope := doRequest(t, app, "GET", "/api/certificates/verify/"+cert.VerificationCode, "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	data := envelope["data"].(map[string]interface{})
	assert.Equal(t, course.Title, data["course_title"])
	assert.Equal(t, "Test Student", data["holder_name"])

	resp, _ = doRequest(t, app, "GET", "/api/certificates/verify/not-a-real-code", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetUserCertificates(t *testing.T) {
	app := setupTestApp(t)
	instructor, _ := createInstructor(t, "teach@example.com", true)
	course := createCourse(t, instructor.ID, 0, true)
	student, token := createStudent(t, "learner@example.com")

	controllers.IssueCertificate(student.ID, course.ID)

	resp, envelope := doRequest(t, app, "GET", "/api/certificates", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	data := envelope["data"].(map[string]interface{})
	certs := data["certificates"].([]interface{})
	require.Len(t, certs, 1)
	assert.Equal(t, course.Title, certs[0].(map[string]interface{})["course_title"])
}
