package controllers

import (
	"log"
	"ocms/database"
	"ocms/middleware"
	courseModels "ocms/models/course"

	"github.com/gofiber/fiber/v2"
)

// GetAllCourses lists published courses with pagination and optional
// category/level filters.
func GetAllCourses(c *fiber.Ctx) error {
	reqData, _ := c.Locals("validatedList").(*struct {
		Page  *int `json:"page"`
		Limit *int `json:"limit"`
	})

	page := 1
	limit := 10
	if reqData != nil && reqData.Page != nil && *reqData.Page > 0 {
		page = *reqData.Page
	}
	if reqData != nil && reqData.Limit != nil && *reqData.Limit > 0 {
		limit = *reqData.Limit
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&courseModels.Course{}).
		Where("is_deleted = ? AND is_published = ?", false, true)

	if category := c.Query("category"); category != "" {
		db = db.Where("category = ?", category)
	}
	if level := c.Query("level"); level != "" {
		db = db.Where("level = ?", level)
	}

	var total int64
	db.Count(&total)

	var courses []courseModels.Course
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	response := map[string]interface{}{
		"courses": courses,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", response)
}

// GetCourseDetails returns one published course with its published lessons.
func GetCourseDetails(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	course, err := findPublishedCourse(courseID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var lessons []courseModels.Lesson
	database.Database.Db.
		Where("course_id = ? AND is_deleted = ? AND is_published = ?", course.ID, false, true).
		Order("order_index asc").
		Find(&lessons)

	// Catalog view: titles only, no lesson content until the gate passes.
	type lessonSummary struct {
		ID          uint   `json:"id"`
		Title       string `json:"title"`
		ContentType string `json:"content_type"`
		OrderIndex  int    `json:"order_index"`
	}
	summaries := make([]lessonSummary, len(lessons))
	for i, l := range lessons {
		summaries[i] = lessonSummary{ID: l.ID, Title: l.Title, ContentType: l.ContentType, OrderIndex: l.OrderIndex}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", fiber.Map{
		"course":  course,
		"lessons": summaries,
	})
}

// CreateCourse creates a draft course. Only verified instructors may do
// this; a pending instructor gets a 403.
func CreateCourse(c *fiber.Ctx) error {
	profile, ok := currentInstructorProfile(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Instructor profile not found!", nil)
	}

	if !profile.IsVerified {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Your instructor account is pending approval!", nil)
	}

	reqData, ok := c.Locals("validatedCourse").(*struct {
		Title       string  `json:"title"`
		Description string  `json:"description"`
		Category    string  `json:"category"`
		Level       string  `json:"level"`
		Price       float64 `json:"price"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	course := courseModels.Course{
		Title:        reqData.Title,
		Description:  reqData.Description,
		Category:     reqData.Category,
		Level:        reqData.Level,
		Price:        reqData.Price,
		InstructorID: profile.ID,
	}
	if course.Level == "" {
		course.Level = "BEGINNER"
	}

	if err := database.Database.Db.Create(&course).Error; err != nil {
		log.Printf("Error creating course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// UpdateCourse updates an instructor's own course.
func UpdateCourse(c *fiber.Ctx) error {
	profile, ok := currentInstructorProfile(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Instructor profile not found!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	course, err := findOwnedCourse(courseID, profile.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	reqData, ok := c.Locals("validatedCourseUpdate").(*struct {
		Title       *string  `json:"title"`
		Description *string  `json:"description"`
		Category    *string  `json:"category"`
		Level       *string  `json:"level"`
		Price       *float64 `json:"price"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if reqData.Title != nil {
		course.Title = *reqData.Title
	}
	if reqData.Description != nil {
		course.Description = *reqData.Description
	}
	if reqData.Category != nil {
		course.Category = *reqData.Category
	}
	if reqData.Level != nil {
		course.Level = *reqData.Level
	}
	if reqData.Price != nil {
		course.Price = *reqData.Price
	}

	if err := database.Database.Db.Save(&course).Error; err != nil {
		log.Printf("Error updating course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

// DeleteCourse soft-deletes an instructor's own course.
func DeleteCourse(c *fiber.Ctx) error {
	profile, ok := currentInstructorProfile(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Instructor profile not found!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	course, err := findOwnedCourse(courseID, profile.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	course.IsDeleted = true
	course.IsPublished = false
	if err := database.Database.Db.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}

// PublishCourse flips a draft course to published (or back).
func PublishCourse(c *fiber.Ctx) error {
	profile, ok := currentInstructorProfile(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Instructor profile not found!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	course, err := findOwnedCourse(courseID, profile.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	reqData := new(struct {
		Publish *bool `json:"publish"`
	})
	if err := c.BodyParser(reqData); err != nil || reqData.Publish == nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	course.IsPublished = *reqData.Publish
	if err := database.Database.Db.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	msg := "Course unpublished successfully!"
	if course.IsPublished {
		msg = "Course published successfully!"
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, msg, course)
}

// GetInstructorCourses lists the instructor's own courses with enrollment
// counts, drafts included.
func GetInstructorCourses(c *fiber.Ctx) error {
	profile, ok := currentInstructorProfile(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Instructor profile not found!", nil)
	}

	var courses []courseModels.Course
	if err := database.Database.Db.
		Where("instructor_id = ? AND is_deleted = ?", profile.ID, false).
		Order("created_at desc").
		Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	type CourseWithStats struct {
		courseModels.Course
		EnrollmentCount int64 `json:"enrollment_count"`
		LessonCount     int64 `json:"lesson_count"`
	}

	result := make([]CourseWithStats, len(courses))
	for i, course := range courses {
		var enrollments, lessons int64
		database.Database.Db.Model(&courseModels.Enrollment{}).
			Where("course_id = ? AND is_deleted = ?", course.ID, false).
			Count(&enrollments)
		database.Database.Db.Model(&courseModels.Lesson{}).
			Where("course_id = ? AND is_deleted = ?", course.ID, false).
			Count(&lessons)
		result[i] = CourseWithStats{Course: course, EnrollmentCount: enrollments, LessonCount: lessons}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": result,
		"total":   len(result),
	})
}
