package controllers

import (
	"errors"
	"ocms/database"
	"ocms/models"
	courseModels "ocms/models/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// currentStudentProfile resolves the student profile for the authenticated
// user. Returns false when the user has no student profile.
func currentStudentProfile(c *fiber.Ctx) (models.StudentProfile, bool) {
	user, ok := c.Locals("user").(models.User)
	if !ok {
		return models.StudentProfile{}, false
	}

	var profile models.StudentProfile
	if err := database.Database.Db.Where("user_id = ? AND is_deleted = ?", user.ID, false).First(&profile).Error; err != nil {
		return models.StudentProfile{}, false
	}
	return profile, true
}

// currentInstructorProfile resolves the instructor profile for the
// authenticated user.
func currentInstructorProfile(c *fiber.Ctx) (models.InstructorProfile, bool) {
	user, ok := c.Locals("user").(models.User)
	if !ok {
		return models.InstructorProfile{}, false
	}

	var profile models.InstructorProfile
	if err := database.Database.Db.Where("user_id = ? AND is_deleted = ?", user.ID, false).First(&profile).Error; err != nil {
		return models.InstructorProfile{}, false
	}
	return profile, true
}

// findPublishedCourse looks up a published, non-deleted course.
func findPublishedCourse(courseID uint) (courseModels.Course, error) {
	var course courseModels.Course
	err := database.Database.Db.
		Where("id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).
		First(&course).Error
	return course, err
}

// findOwnedCourse looks up a non-deleted course owned by the given
// instructor profile. gorm.ErrRecordNotFound distinguishes "missing" from
// "not yours": callers check existence separately when they need a 403.
func findOwnedCourse(courseID, instructorProfileID uint) (courseModels.Course, error) {
	var course courseModels.Course
	err := database.Database.Db.
		Where("id = ? AND instructor_id = ? AND is_deleted = ?", courseID, instructorProfileID, false).
		First(&course).Error
	return course, err
}

// activeEnrollment returns the student's non-dropped enrollment for a
// course, if any.
func activeEnrollment(studentProfileID, courseID uint) (courseModels.Enrollment, error) {
	var enrollment courseModels.Enrollment
	err := database.Database.Db.
		Where("student_profile_id = ? AND course_id = ? AND is_deleted = ? AND completion_status <> ?",
			studentProfileID, courseID, false, courseModels.EnrollmentDropped).
		First(&enrollment).Error
	return enrollment, err
}

// hasCompletedPayment reports whether the student has a COMPLETED payment
// for the course.
func hasCompletedPayment(studentProfileID, courseID uint) bool {
	var payment courseModels.Payment
	err := database.Database.Db.
		Where("student_profile_id = ? AND course_id = ? AND status = ? AND is_deleted = ?",
			studentProfileID, courseID, courseModels.PaymentCompleted, false).
		First(&payment).Error
	return err == nil
}

// canAccessContent applies the content gate: the student must hold a live
// enrollment, and priced courses additionally require a completed payment.
// Free courses skip the payment gate.
func canAccessContent(studentProfileID uint, course courseModels.Course) (bool, string) {
	if _, err := activeEnrollment(studentProfileID, course.ID); err != nil {
		return false, "You are not enrolled in this course!"
	}
	if !course.IsFree() && !hasCompletedPayment(studentProfileID, course.ID) {
		return false, "Please complete the payment to access this course!"
	}
	return true, ""
}

// isDuplicateKey reports whether err is a unique-constraint violation.
func isDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
