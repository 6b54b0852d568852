package controllers

import (
	"encoding/json"
	"log"
	"ocms/config"
	"ocms/database"
	"ocms/middleware"
	"ocms/models"
	courseModels "ocms/models/course"
	"ocms/utils"

	"github.com/go-resty/resty/v2"
	"github.com/gofiber/fiber/v2"
)

// CreatePayment opens a PENDING payment for a priced, published course.
func CreatePayment(c *fiber.Ctx) error {
	profile, ok := currentStudentProfile(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Student profile not found!", nil)
	}

	reqData, ok := c.Locals("validatedPayment").(*struct {
		CourseID uint   `json:"course_id" validate:"required"`
		Method   string `json:"method" validate:"required,oneof=CARD MOBILE_MONEY BANK CASH"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	course, err := findPublishedCourse(reqData.CourseID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or not published!", nil)
	}

	if course.IsFree() {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "This course is free, no payment is required!", nil)
	}

	if hasCompletedPayment(profile.ID, course.ID) {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "You have already paid for this course!", nil)
	}

	payment := courseModels.Payment{
		StudentProfileID: profile.ID,
		CourseID:         course.ID,
		Amount:           course.Price,
		Method:           reqData.Method,
		TransactionID:    utils.GenerateTransactionID(profile.ID, course.ID),
		Status:           courseModels.PaymentPending,
	}

	if err := database.Database.Db.Create(&payment).Error; err != nil {
		log.Printf("Error creating payment: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create payment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Payment created successfully!", payment)
}

// CompletePayment moves a PENDING payment to COMPLETED and makes sure the
// matching enrollment exists afterwards. When a gateway URL is configured
// the transaction is confirmed there first.
func CompletePayment(c *fiber.Ctx) error {
	profile, ok := currentStudentProfile(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Student profile not found!", nil)
	}

	paymentID := c.Locals("paymentID").(uint)

	var payment courseModels.Payment
	if err := database.Database.Db.
		Where("id = ? AND is_deleted = ?", paymentID, false).
		First(&payment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Payment not found!", nil)
	}

	if payment.StudentProfileID != profile.ID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "This payment does not belong to you!", nil)
	}

	if payment.Status != courseModels.PaymentPending {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Payment is not pending!", nil)
	}

	if !confirmWithGateway(payment.TransactionID) {
		payment.Status = courseModels.PaymentFailed
		database.Database.Db.Save(&payment)
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Payment could not be confirmed!", payment)
	}

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", payment.CourseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	payment.Status = courseModels.PaymentCompleted
	if err := database.Database.Db.Save(&payment).Error; err != nil {
		log.Printf("Error completing payment: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to complete payment!", nil)
	}

	// COMPLETED payment must imply an enrollment, whichever came first.
	enrollment, err := ensureEnrollment(profile, course)
	if err != nil {
		log.Printf("Error upserting enrollment for payment %d: %v", payment.ID, err)
	}

	db := database.Database.Db
	db.Create(&models.Activity{UserID: profile.UserID, Action: "PAYMENT", Description: "Paid for " + course.Title})
	db.Create(&models.Notification{
		UserID:  profile.UserID,
		Title:   "Payment received",
		Message: "Your payment for " + course.Title + " is complete.",
		Type:    "PAYMENT",
	})

	var user models.User
	if err := db.First(&user, profile.UserID).Error; err == nil {
		go utils.SendPaymentReceiptEmail(user.Email, user.FirstName, course.Title, payment.TransactionID, payment.Amount)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment completed successfully!", fiber.Map{
		"payment":    payment,
		"enrollment": enrollment,
	})
}

// confirmWithGateway asks the configured payment gateway whether the
// transaction settled. Without a configured gateway the call is trusted.
func confirmWithGateway(transactionID string) bool {
	cfg := config.AppConfig
	if cfg.PaymentGatewayURL == "" {
		return true
	}

	client := resty.New()
	resp, err := client.R().
		SetHeader("Authorization", "Bearer "+cfg.PaymentGatewayKey).
		SetQueryParam("transaction_id", transactionID).
		Get(cfg.PaymentGatewayURL + "/transactions/status")
	if err != nil {
		log.Printf("Gateway confirmation failed for %s: %v", transactionID, err)
		return false
	}
	if resp.StatusCode() != fiber.StatusOK {
		log.Printf("Gateway rejected %s: status %d", transactionID, resp.StatusCode())
		return false
	}

	var body struct {
		Settled bool `json:"settled"`
	}
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		log.Printf("Invalid gateway response for %s: %v", transactionID, err)
		return false
	}
	return body.Settled
}

// GetPayments lists the student's payment history.
func GetPayments(c *fiber.Ctx) error {
	profile, ok := currentStudentProfile(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Student profile not found!", nil)
	}

	var payments []courseModels.Payment
	if err := database.Database.Db.
		Where("student_profile_id = ? AND is_deleted = ?", profile.ID, false).
		Order("created_at desc").
		Find(&payments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch payments!", nil)
	}

	type PaymentWithCourse struct {
		courseModels.Payment
		CourseTitle string `json:"course_title"`
	}

	result := make([]PaymentWithCourse, len(payments))
	for i, p := range payments {
		var course courseModels.Course
		database.Database.Db.Where("id = ?", p.CourseID).First(&course)
		result[i] = PaymentWithCourse{Payment: p, CourseTitle: course.Title}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payments fetched successfully!", fiber.Map{
		"payments": result,
		"total":    len(result),
	})
}
