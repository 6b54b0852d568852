package controllers

import (
	"log"
	"ocms/database"
	"ocms/middleware"
	courseModels "ocms/models/course"

	"github.com/gofiber/fiber/v2"
)

// CreateLesson adds a lesson to an instructor's own course.
func CreateLesson(c *fiber.Ctx) error {
	profile, ok := currentInstructorProfile(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Instructor profile not found!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	if _, err := findOwnedCourse(courseID, profile.ID); err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	reqData, ok := c.Locals("validatedLesson").(*struct {
		Title       string `json:"title"`
		ContentType string `json:"content_type"`
		ContentURL  string `json:"content_url"`
		TextContent string `json:"text_content"`
		OrderIndex  int    `json:"order_index"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	lesson := courseModels.Lesson{
		CourseID:    courseID,
		Title:       reqData.Title,
		ContentType: reqData.ContentType,
		ContentURL:  reqData.ContentURL,
		TextContent: reqData.TextContent,
		OrderIndex:  reqData.OrderIndex,
	}

	if err := database.Database.Db.Create(&lesson).Error; err != nil {
		log.Printf("Error creating lesson: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Lesson created successfully!", lesson)
}

// UpdateLesson updates a lesson on an instructor's own course.
func UpdateLesson(c *fiber.Ctx) error {
	profile, ok := currentInstructorProfile(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Instructor profile not found!", nil)
	}

	courseID := c.Locals("courseID").(uint)
	lessonID := c.Locals("lessonID").(uint)

	if _, err := findOwnedCourse(courseID, profile.ID); err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var lesson courseModels.Lesson
	if err := database.Database.Db.
		Where("id = ? AND course_id = ? AND is_deleted = ?", lessonID, courseID, false).
		First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	reqData := new(struct {
		Title       *string `json:"title"`
		ContentType *string `json:"content_type"`
		ContentURL  *string `json:"content_url"`
		TextContent *string `json:"text_content"`
		OrderIndex  *int    `json:"order_index"`
		IsPublished *bool   `json:"is_published"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if reqData.Title != nil {
		lesson.Title = *reqData.Title
	}
	if reqData.ContentType != nil {
		lesson.ContentType = *reqData.ContentType
	}
	if reqData.ContentURL != nil {
		lesson.ContentURL = *reqData.ContentURL
	}
	if reqData.TextContent != nil {
		lesson.TextContent = *reqData.TextContent
	}
	if reqData.OrderIndex != nil {
		lesson.OrderIndex = *reqData.OrderIndex
	}
	if reqData.IsPublished != nil {
		lesson.IsPublished = *reqData.IsPublished
	}

	if err := database.Database.Db.Save(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson updated successfully!", lesson)
}

// DeleteLesson soft-deletes a lesson on an instructor's own course.
func DeleteLesson(c *fiber.Ctx) error {
	profile, ok := currentInstructorProfile(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Instructor profile not found!", nil)
	}

	courseID := c.Locals("courseID").(uint)
	lessonID := c.Locals("lessonID").(uint)

	if _, err := findOwnedCourse(courseID, profile.ID); err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	result := database.Database.Db.Model(&courseModels.Lesson{}).
		Where("id = ? AND course_id = ? AND is_deleted = ?", lessonID, courseID, false).
		Updates(map[string]interface{}{"is_deleted": true, "is_published": false})
	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete lesson!", nil)
	}
	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson deleted successfully!", nil)
}

// GetLessonContent serves full lesson content to a student. This is the
// gated path: enrollment required, and a completed payment for priced
// courses.
func GetLessonContent(c *fiber.Ctx) error {
	profile, ok := currentStudentProfile(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Student profile not found!", nil)
	}

	courseID := c.Locals("courseID").(uint)
	lessonID := c.Locals("lessonID").(uint)

	course, err := findPublishedCourse(courseID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if allowed, reason := canAccessContent(profile.ID, course); !allowed {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, reason, nil)
	}

	var lesson courseModels.Lesson
	if err := database.Database.Db.
		Where("id = ? AND course_id = ? AND is_deleted = ? AND is_published = ?", lessonID, courseID, false, true).
		First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	var resources []courseModels.LessonResource
	database.Database.Db.
		Where("lesson_id = ? AND is_deleted = ?", lesson.ID, false).
		Find(&resources)

	enrollment, _ := activeEnrollment(profile.ID, courseID)
	var completed courseModels.Progress
	isCompleted := database.Database.Db.
		Where("enrollment_id = ? AND lesson_id = ? AND is_deleted = ?", enrollment.ID, lesson.ID, false).
		First(&completed).Error == nil

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson fetched successfully!", fiber.Map{
		"lesson":       lesson,
		"resources":    resources,
		"is_completed": isCompleted,
	})
}
