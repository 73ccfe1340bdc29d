package models

import (
	"strings"
	"time"
)

type Course struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Level       string    `json:"level"`
	Description string    `json:"description"`
	Category    string    `gorm:"index" json:"category"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Lessons     []Lesson       `gorm:"constraint:OnDelete:CASCADE" json:"lessons,omitempty"`
	Questions   []QuizQuestion `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	QuizResults []QuizResult   `gorm:"constraint:OnDelete:SET NULL" json:"-"`
}

type Lesson struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CourseID    uint      `gorm:"index;not null" json:"course_id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	VideoURL    string    `json:"video_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Steps       []LessonStep `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Completions []UserLesson `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// LessonStep is one instruction of a lesson. StepOrder is 1-based and dense
// per lesson.
type LessonStep struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	LessonID  uint      `gorm:"index;not null" json:"lesson_id"`
	StepOrder int       `gorm:"not null" json:"step_order"`
	StepText  string    `json:"step_text"`
	CreatedAt time.Time `json:"created_at"`
}

// UserLesson records that a user completed a lesson.
type UserLesson struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"uniqueIndex:idx_user_lesson;not null" json:"user_id"`
	LessonID    uint       `gorm:"uniqueIndex:idx_user_lesson;not null" json:"lesson_id"`
	Completed   bool       `gorm:"not null;default:false" json:"completed"`
	CompletedAt *time.Time `json:"completed_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

// NewLesson builds a lesson with its steps numbered by position.
func NewLesson(courseID uint, title, description, videoURL string, steps []string) Lesson {
	lesson := Lesson{
		CourseID:    courseID,
		Title:       title,
		Description: description,
		VideoURL:    videoURL,
	}
	for i, text := range steps {
		lesson.Steps = append(lesson.Steps, LessonStep{StepOrder: i + 1, StepText: text})
	}
	return lesson
}

// CourseSummary is a course annotated with the number of its lessons.
type CourseSummary struct {
	Course
	LessonCount int `json:"lesson_count"`
}

// LessonSummary is a lesson without its steps.
type LessonSummary struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// CourseDetail is a course with its ordered lesson summaries.
type CourseDetail struct {
	Course
	Lessons []LessonSummary `json:"lessons"`
}

// LessonWithSteps is a lesson and its step texts in step order.
type LessonWithSteps struct {
	Lesson
	Steps []string `json:"steps"`
}

type CompletedLesson struct {
	LessonID    uint       `json:"lesson_id"`
	Title       string     `json:"title"`
	CompletedAt *time.Time `json:"completed_at"`
}

type CreateCourseRequest struct {
	Title       string `json:"title" validate:"required"`
	Level       string `json:"level"`
	Description string `json:"description"`
	Category    string `json:"category" validate:"required"`
}

// UpdateCourseRequest is a partial update: nil fields are left untouched.
type UpdateCourseRequest struct {
	Title       *string `json:"title"`
	Level       *string `json:"level"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
}

func (r UpdateCourseRequest) Columns() map[string]interface{} {
	cols := map[string]interface{}{}
	if r.Title != nil {
		cols["title"] = *r.Title
	}
	if r.Level != nil {
		cols["level"] = *r.Level
	}
	if r.Description != nil {
		cols["description"] = *r.Description
	}
	if r.Category != nil {
		cols["category"] = *r.Category
	}
	return cols
}

type CreateLessonRequest struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description"`
	VideoURL    string   `json:"video_url"`
	CourseID    uint     `json:"course_id" validate:"required"`
	Steps       []string `json:"steps"`
}

// Normalize trims the title and drops blank steps.
func (r *CreateLessonRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	steps := r.Steps[:0]
	for _, s := range r.Steps {
		if strings.TrimSpace(s) != "" {
			steps = append(steps, s)
		}
	}
	r.Steps = steps
}
