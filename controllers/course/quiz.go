package controllers

import (
	"log"
	"ocms/database"
	"ocms/middleware"
	"ocms/models"
	courseModels "ocms/models/course"

	"github.com/gofiber/fiber/v2"
)

// sanitizedAnswer is the only shape in which answer options leave the
// server before submission. There is deliberately no correctness field.
type sanitizedAnswer struct {
	ID   uint   `json:"id"`
	Text string `json:"text"`
}

type sanitizedQuestion struct {
	ID      uint              `json:"id"`
	Text    string            `json:"text"`
	Marks   int               `json:"marks"`
	Answers []sanitizedAnswer `json:"answers"`
}

// sanitizeQuestions is the single serialization path for student-facing
// question fetches. Every read path goes through here so IsCorrect can
// never leak from a forgotten field copy.
func sanitizeQuestions(questions []courseModels.Question) []sanitizedQuestion {
	result := make([]sanitizedQuestion, len(questions))
	for i, q := range questions {
		var answers []courseModels.Answer
		database.Database.Db.
			Where("question_id = ? AND is_deleted = ?", q.ID, false).
			Order("id asc").
			Find(&answers)

		sanitized := make([]sanitizedAnswer, len(answers))
		for j, a := range answers {
			sanitized[j] = sanitizedAnswer{ID: a.ID, Text: a.Text}
		}
		result[i] = sanitizedQuestion{ID: q.ID, Text: q.Text, Marks: q.Marks, Answers: sanitized}
	}
	return result
}

// quizCourse resolves the course a quiz hangs off via its lesson.
func quizCourse(quiz courseModels.Quiz) (courseModels.Course, error) {
	var lesson courseModels.Lesson
	if err := database.Database.Db.
		Where("id = ? AND is_deleted = ?", quiz.LessonID, false).
		First(&lesson).Error; err != nil {
		return courseModels.Course{}, err
	}
	var course courseModels.Course
	err := database.Database.Db.
		Where("id = ? AND is_deleted = ?", lesson.CourseID, false).
		First(&course).Error
	return course, err
}

// CreateQuiz attaches a quiz to a lesson on the instructor's own course.
func CreateQuiz(c *fiber.Ctx) error {
	profile, ok := currentInstructorProfile(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Instructor profile not found!", nil)
	}

	reqData, ok := c.Locals("validatedQuiz").(*struct {
		LessonID     uint   `json:"lesson_id"`
		Title        string `json:"title"`
		PassingScore int    `json:"passing_score"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	var lesson courseModels.Lesson
	if err := database.Database.Db.
		Where("id = ? AND is_deleted = ?", reqData.LessonID, false).
		First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	if _, err := findOwnedCourse(lesson.CourseID, profile.ID); err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "This lesson is not on one of your courses!", nil)
	}

	quiz := courseModels.Quiz{
		LessonID:     reqData.LessonID,
		Title:        reqData.Title,
		PassingScore: reqData.PassingScore,
	}

	if err := database.Database.Db.Create(&quiz).Error; err != nil {
		log.Printf("Error creating quiz: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create quiz!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Quiz created successfully!", quiz)
}

// AddQuestion adds a question with its answer options to a quiz on the
// instructor's own course. Exactly one option must be marked correct.
func AddQuestion(c *fiber.Ctx) error {
	profile, ok := currentInstructorProfile(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Instructor profile not found!", nil)
	}

	quizID := c.Locals("quizID").(uint)

	var quiz courseModels.Quiz
	if err := database.Database.Db.
		Where("id = ? AND is_deleted = ?", quizID, false).
		First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	course, err := quizCourse(quiz)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}
	if course.InstructorID != profile.ID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "This quiz is not on one of your courses!", nil)
	}

	reqData, ok := c.Locals("validatedQuestion").(*struct {
		Text    string `json:"text"`
		Marks   int    `json:"marks"`
		Answers []struct {
			Text      string `json:"text"`
			IsCorrect bool   `json:"is_correct"`
		} `json:"answers"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	question := courseModels.Question{QuizID: quiz.ID, Text: reqData.Text, Marks: reqData.Marks}

	tx := database.Database.Db.Begin()
	if err := tx.Create(&question).Error; err != nil {
		tx.Rollback()
		log.Printf("Error creating question: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create question!", nil)
	}
	for _, a := range reqData.Answers {
		answer := courseModels.Answer{QuestionID: question.ID, Text: a.Text, IsCorrect: a.IsCorrect}
		if err := tx.Create(&answer).Error; err != nil {
			tx.Rollback()
			log.Printf("Error creating answer: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create question!", nil)
		}
	}
	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Question added successfully!", question)
}

// DeleteQuestion soft-deletes a question and its answers.
func DeleteQuestion(c *fiber.Ctx) error {
	profile, ok := currentInstructorProfile(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Instructor profile not found!", nil)
	}

	questionID := c.Locals("questionID").(uint)

	var question courseModels.Question
	if err := database.Database.Db.
		Where("id = ? AND is_deleted = ?", questionID, false).
		First(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question not found!", nil)
	}

	var quiz courseModels.Quiz
	if err := database.Database.Db.
		Where("id = ? AND is_deleted = ?", question.QuizID, false).
		First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	course, err := quizCourse(quiz)
	if err != nil || course.InstructorID != profile.ID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "This quiz is not on one of your courses!", nil)
	}

	database.Database.Db.Model(&courseModels.Question{}).Where("id = ?", question.ID).Update("is_deleted", true)
	database.Database.Db.Model(&courseModels.Answer{}).Where("question_id = ?", question.ID).Update("is_deleted", true)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Question deleted successfully!", nil)
}

// GetQuiz serves a quiz with its questions to an enrolled (and for priced
// courses, paid-up) student. Answer correctness never leaves the server
// here.
func GetQuiz(c *fiber.Ctx) error {
	profile, ok := currentStudentProfile(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Student profile not found!", nil)
	}

	quizID := c.Locals("quizID").(uint)

	var quiz courseModels.Quiz
	if err := database.Database.Db.
		Where("id = ? AND is_deleted = ?", quizID, false).
		First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	course, err := quizCourse(quiz)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if allowed, reason := canAccessContent(profile.ID, course); !allowed {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, reason, nil)
	}

	var questions []courseModels.Question
	database.Database.Db.
		Where("quiz_id = ? AND is_deleted = ?", quiz.ID, false).
		Order("id asc").
		Find(&questions)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz fetched successfully!", fiber.Map{
		"quiz":      quiz,
		"questions": sanitizeQuestions(questions),
	})
}

// SubmitQuiz grades a submission and records the attempt.
func SubmitQuiz(c *fiber.Ctx) error {
	profile, ok := currentStudentProfile(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Student profile not found!", nil)
	}

	quizID := c.Locals("quizID").(uint)

	var quiz courseModels.Quiz
	if err := database.Database.Db.
		Where("id = ? AND is_deleted = ?", quizID, false).
		First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	course, err := quizCourse(quiz)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if allowed, reason := canAccessContent(profile.ID, course); !allowed {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, reason, nil)
	}

	reqData := new(struct {
		Answers []struct {
			QuestionID uint `json:"question_id"`
			AnswerID   uint `json:"answer_id"`
		} `json:"answers"`
	})
	if err := c.BodyParser(reqData); err != nil || len(reqData.Answers) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Please answer at least one question!", nil)
	}

	selected := make(map[uint]uint, len(reqData.Answers))
	for _, a := range reqData.Answers {
		selected[a.QuestionID] = a.AnswerID
	}

	var questions []courseModels.Question
	database.Database.Db.
		Where("quiz_id = ? AND is_deleted = ?", quiz.ID, false).
		Find(&questions)
	if len(questions) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Quiz has no questions!", nil)
	}

	score := 0
	totalMarks := 0
	for _, q := range questions {
		totalMarks += q.Marks

		answerID, answered := selected[q.ID]
		if !answered {
			continue
		}

		var answer courseModels.Answer
		if err := database.Database.Db.
			Where("id = ? AND question_id = ? AND is_deleted = ?", answerID, q.ID, false).
			First(&answer).Error; err != nil {
			continue
		}
		if answer.IsCorrect {
			score += q.Marks
		}
	}

	percentage := float64(0)
	if totalMarks > 0 {
		percentage = float64(score) / float64(totalMarks) * 100
	}
	passed := percentage >= float64(quiz.PassingScore)

	var attemptCount int64
	database.Database.Db.Model(&courseModels.QuizAttempt{}).
		Where("quiz_id = ? AND student_profile_id = ? AND is_deleted = ?", quiz.ID, profile.ID, false).
		Count(&attemptCount)

	attempt := courseModels.QuizAttempt{
		QuizID:           quiz.ID,
		StudentProfileID: profile.ID,
		Score:            score,
		TotalMarks:       totalMarks,
		Percentage:       percentage,
		Passed:           passed,
		AttemptNumber:    int(attemptCount) + 1,
	}

	if err := database.Database.Db.Create(&attempt).Error; err != nil {
		log.Printf("Error recording quiz attempt: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit quiz!", nil)
	}

	database.Database.Db.Create(&models.Activity{
		UserID: profile.UserID, Action: "QUIZ_ATTEMPT", Description: "Attempted quiz " + quiz.Title,
	})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz submitted successfully!", attempt)
}

// GetMyAttempts lists the student's attempts for a quiz.
func GetMyAttempts(c *fiber.Ctx) error {
	profile, ok := currentStudentProfile(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Student profile not found!", nil)
	}

	quizID := c.Locals("quizID").(uint)

	var attempts []courseModels.QuizAttempt
	if err := database.Database.Db.
		Where("quiz_id = ? AND student_profile_id = ? AND is_deleted = ?", quizID, profile.ID, false).
		Order("created_at desc").
		Find(&attempts).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch attempts!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attempts fetched successfully!", fiber.Map{
		"attempts": attempts,
		"total":    len(attempts),
	})
}

// averageQuizPercentage is used by the student dashboard.
func averageQuizPercentage(studentProfileID uint) float64 {
	var attempts []courseModels.QuizAttempt
	database.Database.Db.
		Where("student_profile_id = ? AND is_deleted = ?", studentProfileID, false).
		Find(&attempts)
	if len(attempts) == 0 {
		return 0
	}
	sum := float64(0)
	for _, a := range attempts {
		sum += a.Percentage
	}
	return sum / float64(len(attempts))
}
