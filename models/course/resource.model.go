package course

import "gorm.io/gorm"

// CourseResource is an uploaded file attached to a course.
type CourseResource struct {
	gorm.Model
	CourseID  uint   `json:"course_id" gorm:"index;not null"`
	Title     string `json:"title"`
	FileURL   string `json:"file_url"`
	FileSize  int64  `json:"file_size"`
	IsDeleted bool   `json:"-" gorm:"default:false"`
}

// LessonResource is an uploaded file attached to a lesson.
type LessonResource struct {
	gorm.Model
	LessonID  uint   `json:"lesson_id" gorm:"index;not null"`
	Title     string `json:"title"`
	FileURL   string `json:"file_url"`
	FileSize  int64  `json:"file_size"`
	IsDeleted bool   `json:"-" gorm:"default:false"`
}
