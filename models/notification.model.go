package models

import "gorm.io/gorm"

// Notification is an in-app message shown to a user (enrollment confirmed,
// payment received, certificate issued, instructor approved, ...).
type Notification struct {
	gorm.Model
	UserID    uint   `json:"user_id" gorm:"index;not null"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Type      string `json:"type" gorm:"default:'INFO'"` // INFO, ENROLLMENT, PAYMENT, CERTIFICATE, APPROVAL
	IsRead    bool   `json:"is_read" gorm:"default:false"`
	IsDeleted bool   `json:"-" gorm:"default:false"`
}

// Activity is an audit-log row for significant user actions, used by the
// dashboards for "recent activity" feeds.
type Activity struct {
	gorm.Model
	UserID      uint   `json:"user_id" gorm:"index;not null"`
	Action      string `json:"action"` // SIGNUP, ENROLL, PAYMENT, LESSON_COMPLETE, QUIZ_ATTEMPT, CERTIFICATE
	Description string `json:"description"`
	IsDeleted   bool   `json:"-" gorm:"default:false"`
}
