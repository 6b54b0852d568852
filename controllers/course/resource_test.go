package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"ocms/config"
	"ocms/database"
	courseModels "ocms/models/course"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploadFile(t *testing.T, app *fiber.App, path, token, filename string, content []byte) (*http.Response, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	envelope := map[string]interface{}{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return resp, envelope
}

func TestUploadCourseResource(t *testing.T) {
	app := setupTestApp(t)
	instructor, token := createInstructor(t, "teach@example.com", true)
	course := createCourse(t, instructor.ID, 0, true)

	path := fmt.Sprintf("/api/instructor/courses/%d/resources", course.ID)
	resp, envelope := uploadFile(t, app, path, token, "syllabus.pdf", []byte("pdf bytes"))
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	data := envelope["data"].(map[string]interface{})
	assert.Equal(t, "syllabus.pdf", data["title"])
	assert.Contains(t, data["file_url"], "/uploads/")

	var resource courseModels.CourseResource
	require.NoError(t, database.Database.Db.
		Where("course_id = ?", course.ID).First(&resource).Error)
	assert.Equal(t, int64(len("pdf bytes")), resource.FileSize)
}

func TestUploadCourseResourceSizeLimit(t *testing.T) {
	app := setupTestApp(t)
	instructor, token := createInstructor(t, "teach@example.com", true)
	course := createCourse(t, instructor.ID, 0, true)

	config.AppConfig.MaxUploadBytes = 8

	path := fmt.Sprintf("/api/instructor/courses/%d/resources", course.ID)
	resp, _ := uploadFile(t, app, path, token, "big.bin", bytes.Repeat([]byte("a"), 64))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCourseResourcesGatedForStudents(t *testing.T) {
	app := setupTestApp(t)
	instructor, instructorToken := createInstructor(t, "teach@example.com", true)
	course := createCourse(t, instructor.ID, 0, true)

	path := fmt.Sprintf("/api/instructor/courses/%d/resources", course.ID)
	resp, _ := uploadFile(t, app, path, instructorToken, "notes.txt", []byte("notes"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	student, studentToken := createStudent(t, "learner@example.com")
	readPath := fmt.Sprintf("/api/course-resources/course/%d", course.ID)

	// Not enrolled: blocked.
	resp, _ = doRequest(t, app, "GET", readPath, studentToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	enrollStudent(t, student.ID, course.ID)
	resp, envelope := doRequest(t, app, "GET", readPath, studentToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resources := envelope["data"].(map[string]interface{})["resources"].([]interface{})
	assert.Len(t, resources, 1)
}

func TestDeleteCourseResourceOwnershipEnforced(t *testing.T) {
	app := setupTestApp(t)
	owner, ownerToken := createInstructor(t, "owner@example.com", true)
	course := createCourse(t, owner.ID, 0, true)

	uploadPath := fmt.Sprintf("/api/instructor/courses/%d/resources", course.ID)
	resp, _ := uploadFile(t, app, uploadPath, ownerToken, "notes.txt", []byte("notes"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var resource courseModels.CourseResource
	require.NoError(t, database.Database.Db.
		Where("course_id = ?", course.ID).First(&resource).Error)

	_, intruderToken := createInstructor(t, "intruder@example.com", true)
	deletePath := fmt.Sprintf("/api/instructor/course-resources/%d", resource.ID)

	resp, _ = doRequest(t, app, "DELETE", deletePath, intruderToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = doRequest(t, app, "DELETE", deletePath, ownerToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
