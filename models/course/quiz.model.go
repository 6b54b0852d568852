package course

import "gorm.io/gorm"

// Quiz belongs to one lesson. PassingScore is a percentage threshold.
type Quiz struct {
	gorm.Model
	LessonID     uint   `json:"lesson_id" gorm:"index;not null"`
	Title        string `json:"title"`
	PassingScore int    `json:"passing_score" gorm:"default:50"` // percent, 0-100
	IsDeleted    bool   `json:"-" gorm:"default:false"`
}

type Question struct {
	gorm.Model
	QuizID    uint   `json:"quiz_id" gorm:"index;not null"`
	Text      string `json:"text"`
	Marks     int    `json:"marks" gorm:"default:1"`
	IsDeleted bool   `json:"-" gorm:"default:false"`
}

// Answer is one option for a question. IsCorrect must never reach a student
// before submission; the quiz controller strips it in its one shared
// serialization path.
type Answer struct {
	gorm.Model
	QuestionID uint   `json:"question_id" gorm:"index;not null"`
	Text       string `json:"text"`
	IsCorrect  bool   `json:"is_correct" gorm:"default:false"`
	IsDeleted  bool   `json:"-" gorm:"default:false"`
}

// QuizAttempt records one graded submission.
type QuizAttempt struct {
	gorm.Model
	QuizID           uint    `json:"quiz_id" gorm:"index;not null"`
	StudentProfileID uint    `json:"student_profile_id" gorm:"index;not null"`
	Score            int     `json:"score"`
	TotalMarks       int     `json:"total_marks"`
	Percentage       float64 `json:"percentage"`
	Passed           bool    `json:"passed"`
	AttemptNumber    int     `json:"attempt_number" gorm:"default:1"`
	IsDeleted        bool    `json:"-" gorm:"default:false"`
}
