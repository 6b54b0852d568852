package controllers

import (
	"ocms/database"
	"ocms/middleware"
	"ocms/models"
	courseModels "ocms/models/course"
	"ocms/utils"

	"github.com/gofiber/fiber/v2"
)

// StudentDashboard aggregates the student's enrollments, certificates,
// quiz performance and recent activity for display.
func StudentDashboard(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	profile, ok := currentStudentProfile(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Student profile not found!", nil)
	}

	db := database.Database.Db

	countByStatus := func(status string) int64 {
		var n int64
		db.Model(&courseModels.Enrollment{}).
			Where("student_profile_id = ? AND completion_status = ? AND is_deleted = ?", profile.ID, status, false).
			Count(&n)
		return n
	}

	var certificates int64
	db.Model(&courseModels.Certificate{}).
		Where("user_id = ? AND is_deleted = ?", user.ID, false).
		Count(&certificates)

	var recentActivity []models.Activity
	db.Where("user_id = ? AND is_deleted = ?", user.ID, false).
		Order("created_at desc").
		Limit(10).
		Find(&recentActivity)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard fetched successfully!", fiber.Map{
		"enrollments": fiber.Map{
			"active":    countByStatus(courseModels.EnrollmentActive),
			"completed": countByStatus(courseModels.EnrollmentCompleted),
			"dropped":   countByStatus(courseModels.EnrollmentDropped),
		},
		"certificates":         certificates,
		"average_quiz_percent": averageQuizPercentage(profile.ID),
		"recent_activity":      recentActivity,
	})
}

// InstructorDashboard aggregates the instructor's courses, enrollments and
// revenue.
func InstructorDashboard(c *fiber.Ctx) error {
	profile, ok := currentInstructorProfile(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Instructor profile not found!", nil)
	}

	db := database.Database.Db

	var courses []courseModels.Course
	db.Where("instructor_id = ? AND is_deleted = ?", profile.ID, false).Find(&courses)

	type CourseStats struct {
		CourseID       uint    `json:"course_id"`
		Title          string  `json:"title"`
		Enrollments    int64   `json:"enrollments"`
		Completed      int64   `json:"completed"`
		CompletionRate int     `json:"completion_rate"`
		Revenue        float64 `json:"revenue"`
		IsPublished    bool    `json:"is_published"`
	}

	totalEnrollments := int64(0)
	totalRevenue := float64(0)
	stats := make([]CourseStats, len(courses))

	for i, course := range courses {
		var enrollments, completed int64
		db.Model(&courseModels.Enrollment{}).
			Where("course_id = ? AND is_deleted = ?", course.ID, false).
			Count(&enrollments)
		db.Model(&courseModels.Enrollment{}).
			Where("course_id = ? AND completion_status = ? AND is_deleted = ?", course.ID, courseModels.EnrollmentCompleted, false).
			Count(&completed)

		var revenue float64
		db.Model(&courseModels.Payment{}).
			Where("course_id = ? AND status = ? AND is_deleted = ?", course.ID, courseModels.PaymentCompleted, false).
			Select("COALESCE(SUM(amount), 0)").
			Scan(&revenue)

		totalEnrollments += enrollments
		totalRevenue += revenue

		stats[i] = CourseStats{
			CourseID:       course.ID,
			Title:          course.Title,
			Enrollments:    enrollments,
			Completed:      completed,
			CompletionRate: utils.RoundPercent(completed, enrollments),
			Revenue:        revenue,
			IsPublished:    course.IsPublished,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard fetched successfully!", fiber.Map{
		"course_count":      len(courses),
		"total_enrollments": totalEnrollments,
		"total_revenue":     totalRevenue,
		"courses":           stats,
	})
}
