package models

import "time"

// LearningProgress holds per-user aggregate counters. Exactly one row exists
// per user; it is created together with the user.
type LearningProgress struct {
	ID                 uint       `gorm:"primaryKey" json:"id"`
	UserID             uint       `gorm:"uniqueIndex;not null" json:"user_id"`
	GesturesMastered   int        `gorm:"not null;default:0" json:"gestures_mastered"`
	QuizAccuracy       float64    `gorm:"not null;default:0" json:"quiz_accuracy"`
	LearningStreak     int        `gorm:"not null;default:0" json:"learning_streak"`
	TotalPracticeHours float64    `gorm:"not null;default:0" json:"total_practice_hours"`
	LastPracticeDate   *time.Time `json:"last_practice_date"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

func (LearningProgress) TableName() string { return "learning_progress" }

// GestureRecord counts how often a user practiced one gesture.
type GestureRecord struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	UserID        uint       `gorm:"uniqueIndex:idx_gesture_user_name;not null" json:"user_id"`
	GestureName   string     `gorm:"uniqueIndex:idx_gesture_user_name;not null" json:"gesture_name"`
	Accuracy      *float64   `json:"accuracy"`
	PracticeCount int        `gorm:"not null;default:1" json:"practice_count"`
	LastPracticed *time.Time `json:"last_practiced"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// UpdateProgressRequest is a partial update: nil fields are left untouched.
type UpdateProgressRequest struct {
	GesturesMastered   *int     `json:"gestures_mastered" validate:"omitempty,min=0"`
	QuizAccuracy       *float64 `json:"quiz_accuracy" validate:"omitempty,min=0,max=100"`
	LearningStreak     *int     `json:"learning_streak" validate:"omitempty,min=0"`
	TotalPracticeHours *float64 `json:"total_practice_hours" validate:"omitempty,min=0"`
}

// Columns returns the supplied fields keyed by column name.
func (r UpdateProgressRequest) Columns() map[string]interface{} {
	cols := map[string]interface{}{}
	if r.GesturesMastered != nil {
		cols["gestures_mastered"] = *r.GesturesMastered
	}
	if r.QuizAccuracy != nil {
		cols["quiz_accuracy"] = *r.QuizAccuracy
	}
	if r.LearningStreak != nil {
		cols["learning_streak"] = *r.LearningStreak
	}
	if r.TotalPracticeHours != nil {
		cols["total_practice_hours"] = *r.TotalPracticeHours
	}
	return cols
}

type RecordGestureRequest struct {
	GestureName string   `json:"gesture_name" validate:"required"`
	Accuracy    *float64 `json:"accuracy" validate:"omitempty,min=0,max=100"`
}

type RecordQuizResultRequest struct {
	QuizName       string `json:"quiz_name"`
	Score          *int   `json:"score" validate:"required,min=0"`
	TotalQuestions *int   `json:"total_questions" validate:"required,min=0"`
	CourseID       *uint  `json:"course_id"`
}
