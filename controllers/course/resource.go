package controllers

import (
	"log"
	"ocms/config"
	"ocms/database"
	"ocms/middleware"
	courseModels "ocms/models/course"
	"ocms/utils"

	"github.com/gofiber/fiber/v2"
)

// UploadCourseResource attaches an uploaded file to an instructor's own
// course.
func UploadCourseResource(c *fiber.Ctx) error {
	profile, ok := currentInstructorProfile(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Instructor profile not found!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	if _, err := findOwnedCourse(courseID, profile.ID); err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	file, err := c.FormFile("file")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "No file provided!", nil)
	}

	filePath, err := utils.SaveUploadedFile(file, config.AppConfig.UploadDir)
	if err != nil {
		log.Printf("Error saving course resource: %v", err)
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to save file: "+err.Error(), nil)
	}

	title := c.FormValue("title")
	if title == "" {
		title = file.Filename
	}

	resource := courseModels.CourseResource{
		CourseID: courseID,
		Title:    title,
		FileURL:  utils.GetFileURL(filePath),
		FileSize: file.Size,
	}

	if err := database.Database.Db.Create(&resource).Error; err != nil {
		log.Printf("Error creating course resource: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save resource!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Resource uploaded successfully!", resource)
}

// GetCourseResources lists resources for a course a student can access.
func GetCourseResources(c *fiber.Ctx) error {
	profile, ok := currentStudentProfile(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Student profile not found!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	course, err := findPublishedCourse(courseID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if allowed, reason := canAccessContent(profile.ID, course); !allowed {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, reason, nil)
	}

	var resources []courseModels.CourseResource
	if err := database.Database.Db.
		Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("created_at desc").
		Find(&resources).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch resources!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Resources fetched successfully!", fiber.Map{
		"resources": resources,
		"total":     len(resources),
	})
}

// DeleteCourseResource removes a resource from an instructor's own course.
func DeleteCourseResource(c *fiber.Ctx) error {
	profile, ok := currentInstructorProfile(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Instructor profile not found!", nil)
	}

	resourceID := c.Locals("resourceID").(uint)

	var resource courseModels.CourseResource
	if err := database.Database.Db.
		Where("id = ? AND is_deleted = ?", resourceID, false).
		First(&resource).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Resource not found!", nil)
	}

	if _, err := findOwnedCourse(resource.CourseID, profile.ID); err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "This resource is not on one of your courses!", nil)
	}

	if err := database.Database.Db.Model(&resource).Update("is_deleted", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete resource!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Resource deleted successfully!", nil)
}

// UploadLessonResource attaches an uploaded file to a lesson on an
// instructor's own course.
func UploadLessonResource(c *fiber.Ctx) error {
	profile, ok := currentInstructorProfile(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Instructor profile not found!", nil)
	}

	lessonID := c.Locals("lessonID").(uint)

	var lesson courseModels.Lesson
	if err := database.Database.Db.
		Where("id = ? AND is_deleted = ?", lessonID, false).
		First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	if _, err := findOwnedCourse(lesson.CourseID, profile.ID); err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "This lesson is not on one of your courses!", nil)
	}

	file, err := c.FormFile("file")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "No file provided!", nil)
	}

	filePath, err := utils.SaveUploadedFile(file, config.AppConfig.UploadDir)
	if err != nil {
		log.Printf("Error saving lesson resource: %v", err)
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to save file: "+err.Error(), nil)
	}

	title := c.FormValue("title")
	if title == "" {
		title = file.Filename
	}

	resource := courseModels.LessonResource{
		LessonID: lessonID,
		Title:    title,
		FileURL:  utils.GetFileURL(filePath),
		FileSize: file.Size,
	}

	if err := database.Database.Db.Create(&resource).Error; err != nil {
		log.Printf("Error creating lesson resource: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save resource!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Resource uploaded successfully!", resource)
}

// DeleteLessonResource removes a lesson resource, ownership-checked
// through the lesson's course.
func DeleteLessonResource(c *fiber.Ctx) error {
	profile, ok := currentInstructorProfile(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Instructor profile not found!", nil)
	}

	resourceID := c.Locals("resourceID").(uint)

	var resource courseModels.LessonResource
	if err := database.Database.Db.
		Where("id = ? AND is_deleted = ?", resourceID, false).
		First(&resource).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Resource not found!", nil)
	}

	var lesson courseModels.Lesson
	if err := database.Database.Db.
		Where("id = ? AND is_deleted = ?", resource.LessonID, false).
		First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	if _, err := findOwnedCourse(lesson.CourseID, profile.ID); err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "This resource is not on one of your courses!", nil)
	}

	if err := database.Database.Db.Model(&resource).Update("is_deleted", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete resource!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Resource deleted successfully!", nil)
}
