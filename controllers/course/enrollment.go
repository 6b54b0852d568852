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

// EnrollInCourse enrolls the student in a published course. The unique
// (student, course) index decides races: the insert either lands or comes
// back as a duplicate-key error mapped to 409.
func EnrollInCourse(c *fiber.Ctx) error {
	profile, ok := currentStudentProfile(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Student profile not found!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	course, err := findPublishedCourse(courseID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or not published!", nil)
	}

	enrollment := courseModels.Enrollment{
		StudentProfileID: profile.ID,
		CourseID:         course.ID,
		EnrollmentCode:   utils.GenerateEnrollmentCode(profile.ID, course.ID),
		CompletionStatus: courseModels.EnrollmentActive,
	}

	if err := database.Database.Db.Create(&enrollment).Error; err != nil {
		if isDuplicateKey(err) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "You are already enrolled in this course!", nil)
		}
		log.Printf("Error creating enrollment: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in course!", nil)
	}

	db := database.Database.Db
	db.Create(&models.Activity{UserID: profile.UserID, Action: "ENROLL", Description: "Enrolled in " + course.Title})
	db.Create(&models.Notification{
		UserID:  profile.UserID,
		Title:   "Enrollment confirmed",
		Message: "You are enrolled in " + course.Title + ".",
		Type:    "ENROLLMENT",
	})

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Enrolled in course successfully!", enrollment)
}

// GetEnrollments lists the student's enrollments with course info and a
// progress percentage.
func GetEnrollments(c *fiber.Ctx) error {
	profile, ok := currentStudentProfile(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Student profile not found!", nil)
	}

	var enrollments []courseModels.Enrollment
	if err := database.Database.Db.
		Where("student_profile_id = ? AND is_deleted = ?", profile.ID, false).
		Order("created_at desc").
		Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	type EnrollmentWithCourse struct {
		courseModels.Enrollment
		CourseTitle     string  `json:"course_title"`
		CoursePrice     float64 `json:"course_price"`
		ProgressPercent int     `json:"progress_percent"`
		IsPaid          bool    `json:"is_paid"`
	}

	result := make([]EnrollmentWithCourse, len(enrollments))
	for i, e := range enrollments {
		var course courseModels.Course
		database.Database.Db.Where("id = ?", e.CourseID).First(&course)

		var totalLessons, completedLessons int64
		database.Database.Db.Model(&courseModels.Lesson{}).
			Where("course_id = ? AND is_deleted = ? AND is_published = ?", e.CourseID, false, true).
			Count(&totalLessons)
		database.Database.Db.Model(&courseModels.Progress{}).
			Where("enrollment_id = ? AND is_completed = ? AND is_deleted = ?", e.ID, true, false).
			Count(&completedLessons)

		result[i] = EnrollmentWithCourse{
			Enrollment:      e,
			CourseTitle:     course.Title,
			CoursePrice:     course.Price,
			ProgressPercent: utils.RoundPercent(completedLessons, totalLessons),
			IsPaid:          course.IsFree() || hasCompletedPayment(profile.ID, e.CourseID),
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"enrollments": result,
		"total":       len(result),
	})
}

// DropEnrollment moves an enrollment to DROPPED. Ownership-checked; a
// completed enrollment cannot be dropped.
func DropEnrollment(c *fiber.Ctx) error {
	profile, ok := currentStudentProfile(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Student profile not found!", nil)
	}

	enrollmentID := c.Locals("enrollmentID").(uint)

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.
		Where("id = ? AND is_deleted = ?", enrollmentID, false).
		First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
	}

	if enrollment.StudentProfileID != profile.ID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "This enrollment does not belong to you!", nil)
	}

	if enrollment.CompletionStatus == courseModels.EnrollmentCompleted {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "A completed course cannot be dropped!", nil)
	}
	if enrollment.CompletionStatus == courseModels.EnrollmentDropped {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Enrollment is already dropped!", nil)
	}

	enrollment.CompletionStatus = courseModels.EnrollmentDropped
	if err := database.Database.Db.Save(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to drop enrollment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment dropped successfully!", enrollment)
}

// ensureEnrollment is the payment-side upsert: a completing payment must
// leave an enrollment behind even when payment preceded enrollment.
func ensureEnrollment(profile models.StudentProfile, course courseModels.Course) (courseModels.Enrollment, error) {
	if enrollment, err := activeEnrollment(profile.ID, course.ID); err == nil {
		return enrollment, nil
	}

	enrollment := courseModels.Enrollment{
		StudentProfileID: profile.ID,
		CourseID:         course.ID,
		EnrollmentCode:   utils.GenerateEnrollmentCode(profile.ID, course.ID),
		CompletionStatus: courseModels.EnrollmentActive,
	}

	err := database.Database.Db.Create(&enrollment).Error
	if err != nil && isDuplicateKey(err) {
		// A dropped enrollment still holds the unique slot; revive it.
		var existing courseModels.Enrollment
		if ferr := database.Database.Db.
			Where("student_profile_id = ? AND course_id = ? AND is_deleted = ?", profile.ID, course.ID, false).
			First(&existing).Error; ferr == nil {
			existing.CompletionStatus = courseModels.EnrollmentActive
			existing.CompletedAt = nil
			if serr := database.Database.Db.Save(&existing).Error; serr == nil {
				return existing, nil
			}
		}
	}
	return enrollment, err
}

// touchCompletedAt stamps the completion time once.
func touchCompletedAt(enrollment *courseModels.Enrollment) {
	if enrollment.CompletedAt == nil {
		now := time.Now()
		enrollment.CompletedAt = &now
	}
}
