package course

import (
	"time"

	"gorm.io/gorm"
)

// Certificate is issued once per (user, course) when the course completes.
// The verification code is a random UUID used as a public lookup key; it
// carries no information about the holder.
type Certificate struct {
	gorm.Model
	UserID           uint      `json:"user_id" gorm:"index;not null"`
	CourseID         uint      `json:"course_id" gorm:"index;not null"`
	VerificationCode string    `json:"verification_code" gorm:"unique;not null"`
	IssuedAt         time.Time `json:"issued_at"`
	IsDeleted        bool      `json:"-" gorm:"default:false"`
}
