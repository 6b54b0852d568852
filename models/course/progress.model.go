package course

import (
	"time"

	"gorm.io/gorm"
)

// Progress marks one lesson complete for one enrollment. The unique index
// on (enrollment_id, lesson_id) rejects duplicate completion marks.
type Progress struct {
	gorm.Model
	EnrollmentID uint       `json:"enrollment_id" gorm:"uniqueIndex:idx_enrollment_lesson;not null"`
	LessonID     uint       `json:"lesson_id" gorm:"uniqueIndex:idx_enrollment_lesson;not null"`
	IsCompleted  bool       `json:"is_completed" gorm:"default:true"`
	CompletedAt  *time.Time `json:"completed_at"`
	IsDeleted    bool       `json:"-" gorm:"default:false"`
}
