package course

import "gorm.io/gorm"

// Course represents a learning course owned by exactly one instructor.
// It becomes visible and enrollable only once published.
type Course struct {
	gorm.Model
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Category     string  `json:"category"`
	Level        string  `json:"level" gorm:"default:'BEGINNER'"` // BEGINNER, INTERMEDIATE, ADVANCED
	Price        float64 `json:"price" gorm:"default:0"`          // 0 means free
	ThumbnailURL string  `json:"thumbnail_url"`
	InstructorID uint    `json:"instructor_id" gorm:"index;not null"`
	IsPublished  bool    `json:"is_published" gorm:"default:false"`
	IsDeleted    bool    `json:"-" gorm:"default:false"`
}

// IsFree reports whether the course skips the payment gate.
func (c Course) IsFree() bool {
	return c.Price <= 0
}

// Lesson belongs to exactly one course.
type Lesson struct {
	gorm.Model
	CourseID    uint   `json:"course_id" gorm:"index;not null"`
	Title       string `json:"title"`
	ContentType string `json:"content_type" gorm:"default:'TEXT'"` // TEXT, VIDEO, PDF
	ContentURL  string `json:"content_url"`                        // for VIDEO / PDF
	TextContent string `json:"text_content" gorm:"type:text"`      // for TEXT
	OrderIndex  int    `json:"order_index" gorm:"default:0"`
	IsPublished bool   `json:"is_published" gorm:"default:false"`
	IsDeleted   bool   `json:"-" gorm:"default:false"`
}
