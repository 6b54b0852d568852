package models

import (
	"gorm.io/gorm"
)

// User roles. Role checks everywhere go through these constants, never
// through free-form strings.
const (
	RoleStudent    = "STUDENT"
	RoleInstructor = "INSTRUCTOR"
	RoleAdmin      = "ADMIN"
)

type User struct {
	gorm.Model
	Email     string `json:"email" gorm:"unique;not null"`
	Password  string `json:"-" gorm:"not null"`
	FirstName string `json:"first_name" gorm:"default:''"`
	LastName  string `json:"last_name" gorm:"default:''"`
	Role      string `json:"role" gorm:"default:'STUDENT'"` // STUDENT, INSTRUCTOR, ADMIN
	IsActive  bool   `json:"is_active" gorm:"default:true"`
	IsDeleted bool   `json:"-" gorm:"default:false"`
}

// StudentProfile is the 1:1 student extension of a User, created at signup.
type StudentProfile struct {
	gorm.Model
	UserID    uint   `json:"user_id" gorm:"uniqueIndex;not null"`
	Bio       string `json:"bio"`
	AvatarURL string `json:"avatar_url"`
	IsDeleted bool   `json:"-" gorm:"default:false"`
}

// InstructorProfile is the 1:1 instructor extension of a User. A freshly
// signed-up instructor is unverified and pending admin approval; course
// creation is blocked until IsVerified flips to true.
type InstructorProfile struct {
	gorm.Model
	UserID            uint   `json:"user_id" gorm:"uniqueIndex;not null"`
	Bio               string `json:"bio"`
	Expertise         string `json:"expertise"`
	IsVerified        bool   `json:"is_verified" gorm:"default:false"`
	IsPendingApproval bool   `json:"is_pending_approval" gorm:"default:true"`
	IsDeleted         bool   `json:"-" gorm:"default:false"`
}
