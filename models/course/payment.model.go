package course

import "gorm.io/gorm"

// Payment statuses.
const (
	PaymentPending   = "PENDING"
	PaymentCompleted = "COMPLETED"
	PaymentFailed    = "FAILED"
	PaymentRefunded  = "REFUNDED"
)

// Payment records a student's payment for a course. A COMPLETED payment
// guarantees an enrollment exists for the same (student, course) pair; the
// complete-payment transition upserts it.
type Payment struct {
	gorm.Model
	StudentProfileID uint    `json:"student_profile_id" gorm:"index;not null"`
	CourseID         uint    `json:"course_id" gorm:"index;not null"`
	Amount           float64 `json:"amount" gorm:"not null"`
	Method           string  `json:"method" gorm:"not null"` // CARD, MOBILE_MONEY, BANK, CASH
	TransactionID    string  `json:"transaction_id" gorm:"unique;not null"`
	Status           string  `json:"status" gorm:"default:'PENDING'"` // PENDING, COMPLETED, FAILED, REFUNDED
	IsDeleted        bool    `json:"-" gorm:"default:false"`
}
