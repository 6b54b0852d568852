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

// IssueCertificate creates the certificate for a completed course. It is
// idempotent per (user, course) and safe to call from a goroutine.
func IssueCertificate(studentProfileID, courseID uint) {
	db := database.Database.Db

	var profile models.StudentProfile
	if err := db.Where("id = ? AND is_deleted = ?", studentProfileID, false).First(&profile).Error; err != nil {
		log.Printf("Certificate issuance: student profile %d not found: %v", studentProfileID, err)
		return
	}

	var existing courseModels.Certificate
	if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", profile.UserID, courseID, false).
		First(&existing).Error; err == nil {
		return
	}

	var course courseModels.Course
	if err := db.Where("id = ?", courseID).First(&course).Error; err != nil {
		log.Printf("Certificate issuance: course %d not found: %v", courseID, err)
		return
	}

	certificate := courseModels.Certificate{
		UserID:           profile.UserID,
		CourseID:         courseID,
		VerificationCode: utils.GenerateVerificationCode(),
		IssuedAt:         time.Now(),
	}

	if err := db.Create(&certificate).Error; err != nil {
		log.Printf("Certificate issuance failed for user %d course %d: %v", profile.UserID, courseID, err)
		return
	}

	db.Create(&models.Activity{
		UserID: profile.UserID, Action: "CERTIFICATE", Description: "Certificate issued for " + course.Title,
	})
	db.Create(&models.Notification{
		UserID:  profile.UserID,
		Title:   "Certificate issued",
		Message: "Your certificate for " + course.Title + " is ready.",
		Type:    "CERTIFICATE",
	})

	var user models.User
	if err := db.First(&user, profile.UserID).Error; err == nil {
		utils.SendCertificateEmail(user.Email, user.FirstName, course.Title, certificate.VerificationCode)
	}
}

// GetUserCertificates lists the authenticated user's certificates.
func GetUserCertificates(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var certificates []courseModels.Certificate
	if err := database.Database.Db.
		Where("user_id = ? AND is_deleted = ?", user.ID, false).
		Order("issued_at desc").
		Find(&certificates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	type CertificateWithCourse struct {
		courseModels.Certificate
		CourseTitle string `json:"course_title"`
	}

	result := make([]CertificateWithCourse, len(certificates))
	for i, cert := range certificates {
		var course courseModels.Course
		database.Database.Db.Where("id = ?", cert.CourseID).First(&course)
		result[i] = CertificateWithCourse{Certificate: cert, CourseTitle: course.Title}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", fiber.Map{
		"certificates": result,
		"total":        len(result),
	})
}

// VerifyCertificate is the public lookup by verification code.
func VerifyCertificate(c *fiber.Ctx) error {
	code := c.Params("code")
	if code == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Verification code is required!", nil)
	}

	var certificate courseModels.Certificate
	if err := database.Database.Db.
		Where("verification_code = ? AND is_deleted = ?", code, false).
		First(&certificate).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found!", nil)
	}

	var course courseModels.Course
	database.Database.Db.Where("id = ?", certificate.CourseID).First(&course)

	var user models.User
	database.Database.Db.Where("id = ?", certificate.UserID).First(&user)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate is valid.", fiber.Map{
		"holder_name":  user.FirstName + " " + user.LastName,
		"course_title": course.Title,
		"issued_at":    certificate.IssuedAt,
	})
}
