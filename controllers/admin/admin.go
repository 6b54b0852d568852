package adminController

import (
	"log"
	"ocms/database"
	"ocms/middleware"
	"ocms/models"
	courseModels "ocms/models/course"

	"github.com/gofiber/fiber/v2"
)

// GetAllUsers lists users with pagination and an optional role filter.
func GetAllUsers(c *fiber.Ctx) error {
	reqData, _ := c.Locals("validatedList").(*struct {
		Page  *int `json:"page"`
		Limit *int `json:"limit"`
	})

	page := 1
	limit := 20
	if reqData != nil && reqData.Page != nil && *reqData.Page > 0 {
		page = *reqData.Page
	}
	if reqData != nil && reqData.Limit != nil && *reqData.Limit > 0 {
		limit = *reqData.Limit
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&models.User{}).Where("is_deleted = ?", false)
	if role := c.Query("role"); role != "" {
		db = db.Where("role = ?", role)
	}

	var total int64
	db.Count(&total)

	var users []models.User
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&users).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch users!", nil)
	}

	for i := range users {
		users[i].Password = ""
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Users fetched successfully!", fiber.Map{
		"users": users,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// GetUser returns a single user with their role profile.
func GetUser(c *fiber.Ctx) error {
	userID := c.Locals("targetUserID").(uint)

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}
	user.Password = ""

	response := fiber.Map{"user": user}
	switch user.Role {
	case models.RoleInstructor:
		var profile models.InstructorProfile
		if err := database.Database.Db.Where("user_id = ?", user.ID).First(&profile).Error; err == nil {
			response["instructor_profile"] = profile
		}
	case models.RoleStudent:
		var profile models.StudentProfile
		if err := database.Database.Db.Where("user_id = ?", user.ID).First(&profile).Error; err == nil {
			response["student_profile"] = profile
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User fetched successfully!", response)
}

// SetUserActive flips a user's active flag. Deactivated users cannot log
// in and their tokens stop working at the middleware re-fetch.
func SetUserActive(c *fiber.Ctx) error {
	userID := c.Locals("targetUserID").(uint)

	reqData := new(struct {
		Active *bool `json:"active"`
	})
	if err := c.BodyParser(reqData); err != nil || reqData.Active == nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	result := database.Database.Db.Model(&models.User{}).
		Where("id = ? AND is_deleted = ?", userID, false).
		Update("is_active", *reqData.Active)
	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update user!", nil)
	}
	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	msg := "User deactivated successfully!"
	if *reqData.Active {
		msg = "User reactivated successfully!"
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, msg, nil)
}

// DeleteUser soft-deletes a user.
func DeleteUser(c *fiber.Ctx) error {
	userID := c.Locals("targetUserID").(uint)

	result := database.Database.Db.Model(&models.User{}).
		Where("id = ? AND is_deleted = ?", userID, false).
		Updates(map[string]interface{}{"is_deleted": true, "is_active": false})
	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete user!", nil)
	}
	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User deleted successfully!", nil)
}

// GetPendingInstructors lists instructor profiles awaiting approval.
func GetPendingInstructors(c *fiber.Ctx) error {
	var profiles []models.InstructorProfile
	if err := database.Database.Db.
		Where("is_pending_approval = ? AND is_deleted = ?", true, false).
		Order("created_at asc").
		Find(&profiles).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch pending instructors!", nil)
	}

	type PendingInstructor struct {
		models.InstructorProfile
		Email     string `json:"email"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}

	result := make([]PendingInstructor, len(profiles))
	for i, p := range profiles {
		var user models.User
		database.Database.Db.Where("id = ?", p.UserID).First(&user)
		result[i] = PendingInstructor{
			InstructorProfile: p,
			Email:             user.Email,
			FirstName:         user.FirstName,
			LastName:          user.LastName,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Pending instructors fetched successfully!", fiber.Map{
		"instructors": result,
		"total":       len(result),
	})
}

// ApproveInstructor verifies an instructor so they can create courses.
func ApproveInstructor(c *fiber.Ctx) error {
	profileID := c.Locals("profileID").(uint)

	var profile models.InstructorProfile
	if err := database.Database.Db.
		Where("id = ? AND is_deleted = ?", profileID, false).
		First(&profile).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Instructor profile not found!", nil)
	}

	if profile.IsVerified {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Instructor is already verified!", nil)
	}

	profile.IsVerified = true
	profile.IsPendingApproval = false
	if err := database.Database.Db.Save(&profile).Error; err != nil {
		log.Printf("Error approving instructor %d: %v", profile.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to approve instructor!", nil)
	}

	database.Database.Db.Create(&models.Notification{
		UserID:  profile.UserID,
		Title:   "Instructor account approved",
		Message: "You can now create and publish courses.",
		Type:    "APPROVAL",
	})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Instructor approved successfully!", profile)
}

// RejectInstructor clears the pending flag without verifying.
func RejectInstructor(c *fiber.Ctx) error {
	profileID := c.Locals("profileID").(uint)

	var profile models.InstructorProfile
	if err := database.Database.Db.
		Where("id = ? AND is_deleted = ?", profileID, false).
		First(&profile).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Instructor profile not found!", nil)
	}

	profile.IsVerified = false
	profile.IsPendingApproval = false
	if err := database.Database.Db.Save(&profile).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reject instructor!", nil)
	}

	database.Database.Db.Create(&models.Notification{
		UserID:  profile.UserID,
		Title:   "Instructor application rejected",
		Message: "Your instructor application was not approved.",
		Type:    "APPROVAL",
	})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Instructor rejected.", profile)
}

// GetAllPayments lists every payment with an optional status filter.
func GetAllPayments(c *fiber.Ctx) error {
	db := database.Database.Db.Model(&courseModels.Payment{}).Where("is_deleted = ?", false)
	if status := c.Query("status"); status != "" {
		db = db.Where("status = ?", status)
	}

	var payments []courseModels.Payment
	if err := db.Order("created_at desc").Find(&payments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch payments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payments fetched successfully!", fiber.Map{
		"payments": payments,
		"total":    len(payments),
	})
}

// RefundPayment moves a COMPLETED payment to REFUNDED.
func RefundPayment(c *fiber.Ctx) error {
	paymentID := c.Locals("paymentID").(uint)

	var payment courseModels.Payment
	if err := database.Database.Db.
		Where("id = ? AND is_deleted = ?", paymentID, false).
		First(&payment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Payment not found!", nil)
	}

	if payment.Status != courseModels.PaymentCompleted {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Only completed payments can be refunded!", nil)
	}

	payment.Status = courseModels.PaymentRefunded
	if err := database.Database.Db.Save(&payment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to refund payment!", nil)
	}

	var profile models.StudentProfile
	if err := database.Database.Db.First(&profile, payment.StudentProfileID).Error; err == nil {
		database.Database.Db.Create(&models.Notification{
			UserID:  profile.UserID,
			Title:   "Payment refunded",
			Message: "Your payment " + payment.TransactionID + " has been refunded.",
			Type:    "PAYMENT",
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment refunded successfully!", payment)
}

// PlatformStats is the admin dashboard rollup.
func PlatformStats(c *fiber.Ctx) error {
	db := database.Database.Db

	countUsers := func(role string) int64 {
		var n int64
		db.Model(&models.User{}).Where("role = ? AND is_deleted = ?", role, false).Count(&n)
		return n
	}

	var courses, published, enrollments, completedEnrollments, certificates int64
	db.Model(&courseModels.Course{}).Where("is_deleted = ?", false).Count(&courses)
	db.Model(&courseModels.Course{}).Where("is_deleted = ? AND is_published = ?", false, true).Count(&published)
	db.Model(&courseModels.Enrollment{}).Where("is_deleted = ?", false).Count(&enrollments)
	db.Model(&courseModels.Enrollment{}).
		Where("is_deleted = ? AND completion_status = ?", false, courseModels.EnrollmentCompleted).
		Count(&completedEnrollments)
	db.Model(&courseModels.Certificate{}).Where("is_deleted = ?", false).Count(&certificates)

	var revenue float64
	db.Model(&courseModels.Payment{}).
		Where("status = ? AND is_deleted = ?", courseModels.PaymentCompleted, false).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&revenue)

	var pendingInstructors int64
	db.Model(&models.InstructorProfile{}).
		Where("is_pending_approval = ? AND is_deleted = ?", true, false).
		Count(&pendingInstructors)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Stats fetched successfully!", fiber.Map{
		"users": fiber.Map{
			"students":    countUsers(models.RoleStudent),
			"instructors": countUsers(models.RoleInstructor),
			"admins":      countUsers(models.RoleAdmin),
		},
		"courses": fiber.Map{
			"total":     courses,
			"published": published,
		},
		"enrollments": fiber.Map{
			"total":     enrollments,
			"completed": completedEnrollments,
		},
		"certificates":        certificates,
		"total_revenue":       revenue,
		"pending_instructors": pendingInstructors,
	})
}
