package course

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment completion statuses.
const (
	EnrollmentActive    = "ACTIVE"
	EnrollmentCompleted = "COMPLETED"
	EnrollmentDropped   = "DROPPED"
)

// Enrollment links a student profile to a course. The unique index on
// (student_profile_id, course_id) is what keeps two concurrent enroll calls
// from both succeeding: the loser surfaces as a duplicate-key error mapped
// to a 409.
type Enrollment struct {
	gorm.Model
	StudentProfileID uint       `json:"student_profile_id" gorm:"uniqueIndex:idx_student_course;not null"`
	CourseID         uint       `json:"course_id" gorm:"uniqueIndex:idx_student_course;not null"`
	EnrollmentCode   string     `json:"enrollment_code" gorm:"unique"`
	CompletionStatus string     `json:"completion_status" gorm:"default:'ACTIVE'"` // ACTIVE, COMPLETED, DROPPED
	CompletedAt      *time.Time `json:"completed_at"`
	IsDeleted        bool       `json:"-" gorm:"default:false"`
}
