package controllers

import (
	"log"
	"ocms/database"
	"ocms/middleware"
	"ocms/models"
	courseModels "ocms/models/course"
	"ocms/utils"
	"time"

	"github.com/gofiber/fiber/v2"
)

// MarkLessonComplete records a completion mark for one lesson of the
// student's own enrollment. The unique (enrollment, lesson) index rejects
// the second mark with a 409.
func MarkLessonComplete(c *fiber.Ctx) error {
	profile, ok := currentStudentProfile(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Student profile not found!", nil)
	}

	reqData, ok := c.Locals("validatedProgress").(*struct {
		EnrollmentID uint `json:"enrollment_id"`
		LessonID     uint `json:"lesson_id"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.
		Where("id = ? AND is_deleted = ?", reqData.EnrollmentID, false).
		First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
	}

	// Ownership, not role: another student's enrollment id is forbidden
	// even for a valid student token.
	if enrollment.StudentProfileID != profile.ID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "This enrollment does not belong to you!", nil)
	}

	if enrollment.CompletionStatus == courseModels.EnrollmentDropped {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Enrollment has been dropped!", nil)
	}

	var course courseModels.Course
	if err := database.Database.Db.
		Where("id = ? AND is_deleted = ?", enrollment.CourseID, false).
		First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if !course.IsFree() && !hasCompletedPayment(profile.ID, course.ID) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Please complete the payment to access this course!", nil)
	}

	var lesson courseModels.Lesson
	if err := database.Database.Db.
		Where("id = ? AND is_deleted = ? AND is_published = ?", reqData.LessonID, false, true).
		First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	if lesson.CourseID != enrollment.CourseID {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Lesson does not belong to the enrolled course!", nil)
	}

	now := time.Now()
	progress := courseModels.Progress{
		EnrollmentID: enrollment.ID,
		LessonID:     lesson.ID,
		IsCompleted:  true,
		CompletedAt:  &now,
	}

	if err := database.Database.Db.Create(&progress).Error; err != nil {
		if isDuplicateKey(err) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Lesson is already marked complete!", nil)
		}
		log.Printf("Error creating progress: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to mark lesson complete!", nil)
	}

	database.Database.Db.Create(&models.Activity{
		UserID: profile.UserID, Action: "LESSON_COMPLETE", Description: "Completed lesson " + lesson.Title,
	})

	completed := refreshEnrollmentStatus(&enrollment)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Lesson marked complete!", fiber.Map{
		"progress":         progress,
		"course_completed": completed,
	})
}

// refreshEnrollmentStatus re-counts progress for the enrollment and, when
// every published lesson is done, flips it to COMPLETED and fires
// certificate issuance. Issuance is fire-and-forget: the completion mark
// stands even if the certificate write fails.
func refreshEnrollmentStatus(enrollment *courseModels.Enrollment) bool {
	var totalLessons, completedLessons int64
	database.Database.Db.Model(&courseModels.Lesson{}).
		Where("course_id = ? AND is_deleted = ? AND is_published = ?", enrollment.CourseID, false, true).
		Count(&totalLessons)
	database.Database.Db.Model(&courseModels.Progress{}).
		Where("enrollment_id = ? AND is_completed = ? AND is_deleted = ?", enrollment.ID, true, false).
		Count(&completedLessons)

	if totalLessons == 0 || completedLessons < totalLessons {
		return false
	}
	if enrollment.CompletionStatus == courseModels.EnrollmentCompleted {
		return true
	}

	enrollment.CompletionStatus = courseModels.EnrollmentCompleted
	touchCompletedAt(enrollment)
	if err := database.Database.Db.Save(enrollment).Error; err != nil {
		log.Printf("Error completing enrollment %d: %v", enrollment.ID, err)
		return false
	}

	go IssueCertificate(enrollment.StudentProfileID, enrollment.CourseID)
	return true
}

// GetCourseProgress returns per-lesson completion for the student's
// enrollment in a course plus the rounded percentage.
func GetCourseProgress(c *fiber.Ctx) error {
	profile, ok := currentStudentProfile(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Student profile not found!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	enrollment, err := activeEnrollment(profile.ID, courseID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not enrolled in this course!", nil)
	}

	var lessons []courseModels.Lesson
	database.Database.Db.
		Where("course_id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).
		Order("order_index asc").
		Find(&lessons)

	var progressRows []courseModels.Progress
	database.Database.Db.
		Where("enrollment_id = ? AND is_completed = ? AND is_deleted = ?", enrollment.ID, true, false).
		Find(&progressRows)

	completedByLesson := make(map[uint]bool, len(progressRows))
	for _, p := range progressRows {
		completedByLesson[p.LessonID] = true
	}

	type LessonProgress struct {
		LessonID    uint   `json:"lesson_id"`
		Title       string `json:"title"`
		OrderIndex  int    `json:"order_index"`
		IsCompleted bool   `json:"is_completed"`
	}

	result := make([]LessonProgress, len(lessons))
	completedCount := int64(0)
	for i, l := range lessons {
		done := completedByLesson[l.ID]
		if done {
			completedCount++
		}
		result[i] = LessonProgress{LessonID: l.ID, Title: l.Title, OrderIndex: l.OrderIndex, IsCompleted: done}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"enrollment":       enrollment,
		"lessons":          result,
		"completed":        completedCount,
		"total":            len(lessons),
		"progress_percent": utils.RoundPercent(completedCount, int64(len(lessons))),
	})
}
