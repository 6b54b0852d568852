package courseRoutes

import (
	controllers "ocms/controllers/course"
	"ocms/middleware"
	validators "ocms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up the student-facing course, enrollment,
// payment, progress, quiz, certificate and resource routes.
func SetupCourseRoutes(app *fiber.App) {
	// Catalog (any authenticated user)
	courseGroup := app.Group("/api/courses", middleware.JWTMiddleware)
	courseGroup.Get("/", validators.CourseList(), controllers.GetAllCourses)
	courseGroup.Get("/:id", validators.CourseID(), controllers.GetCourseDetails)

	// Gated lesson content
	courseGroup.Get("/:id/lessons/:lesson_id",
		middleware.RequireStudent, validators.CourseID(), validators.LessonID(), controllers.GetLessonContent)

	// Enrollments
	enrollGroup := app.Group("/api/enrollments", middleware.JWTMiddleware, middleware.RequireStudent)
	enrollGroup.Post("/course/:id", validators.CourseID(), controllers.EnrollInCourse)
	enrollGroup.Get("/", controllers.GetEnrollments)
	enrollGroup.Post("/:id/drop", validators.EnrollmentID(), controllers.DropEnrollment)

	// Progress
	progressGroup := app.Group("/api/progress", middleware.JWTMiddleware, middleware.RequireStudent)
	progressGroup.Post("/", validators.MarkProgress(), controllers.MarkLessonComplete)
	progressGroup.Get("/course/:id", validators.CourseID(), controllers.GetCourseProgress)

	// Payments
	paymentGroup := app.Group("/api/payments", middleware.JWTMiddleware, middleware.RequireStudent)
	paymentGroup.Post("/", validators.CreatePayment(), controllers.CreatePayment)
	paymentGroup.Get("/", controllers.GetPayments)
	paymentGroup.Post("/:id/complete", validators.PaymentID(), controllers.CompletePayment)

	// Quizzes (student side)
	quizGroup := app.Group("/api/quizzes", middleware.JWTMiddleware)
	quizGroup.Get("/:id", middleware.RequireStudent, validators.QuizID(), controllers.GetQuiz)
	quizGroup.Post("/:id/submit", middleware.RequireStudent, validators.QuizID(), controllers.SubmitQuiz)
	quizGroup.Get("/:id/attempts", middleware.RequireStudent, validators.QuizID(), controllers.GetMyAttempts)

	// Certificates. Verification is public: the code is the capability.
	app.Get("/api/certificates/verify/:code", controllers.VerifyCertificate)
	app.Get("/api/certificates", middleware.JWTMiddleware, controllers.GetUserCertificates)

	// Course resources (student read side)
	resourceGroup := app.Group("/api/course-resources", middleware.JWTMiddleware)
	resourceGroup.Get("/course/:id", middleware.RequireStudent, validators.CourseID(), controllers.GetCourseResources)
}
