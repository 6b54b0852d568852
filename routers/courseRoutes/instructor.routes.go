package courseRoutes

import (
	controllers "ocms/controllers/course"
	"ocms/middleware"
	validators "ocms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupInstructorRoutes sets up the instructor course-management subtree.
func SetupInstructorRoutes(app *fiber.App) {
	instructorGroup := app.Group("/api/instructor", middleware.JWTMiddleware, middleware.RequireInstructor)

	// Course management
	instructorGroup.Get("/courses", controllers.GetInstructorCourses)
	instructorGroup.Post("/courses", validators.CreateCourse(), controllers.CreateCourse)
	instructorGroup.Put("/courses/:id", validators.CourseID(), validators.UpdateCourse(), controllers.UpdateCourse)
	instructorGroup.Delete("/courses/:id", validators.CourseID(), controllers.DeleteCourse)
	instructorGroup.Post("/courses/:id/publish", validators.CourseID(), controllers.PublishCourse)

	// Lesson management
	instructorGroup.Post("/courses/:id/lessons", validators.CourseID(), validators.CreateLesson(), controllers.CreateLesson)
	instructorGroup.Put("/courses/:id/lessons/:lesson_id", validators.CourseID(), validators.LessonID(), controllers.UpdateLesson)
	instructorGroup.Delete("/courses/:id/lessons/:lesson_id", validators.CourseID(), validators.LessonID(), controllers.DeleteLesson)

	// Quiz management
	instructorGroup.Post("/quizzes", validators.CreateQuiz(), controllers.CreateQuiz)
	instructorGroup.Post("/quizzes/:id/questions", validators.QuizID(), validators.AddQuestion(), controllers.AddQuestion)
	instructorGroup.Delete("/questions/:question_id", validators.QuestionID(), controllers.DeleteQuestion)

	// Resource uploads
	instructorGroup.Post("/courses/:id/resources", validators.CourseID(), controllers.UploadCourseResource)
	instructorGroup.Delete("/course-resources/:id", validators.ResourceID(), controllers.DeleteCourseResource)
	instructorGroup.Post("/lessons/:lesson_id/resources", validators.LessonID(), controllers.UploadLessonResource)
	instructorGroup.Delete("/lesson-resources/:id", validators.ResourceID(), controllers.DeleteLessonResource)

	// Dashboard
	instructorGroup.Get("/dashboard", controllers.InstructorDashboard)
}
