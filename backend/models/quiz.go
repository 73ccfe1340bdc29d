package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// QuizQuestion belongs to a course. CorrectAnswer is a 1-based index into
// Options; it is translated to 0-based at the API boundary.
type QuizQuestion struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	CourseID      uint      `gorm:"index;not null" json:"course_id"`
	Question      string    `gorm:"not null" json:"question"`
	CorrectAnswer int       `gorm:"not null" json:"-"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Options []QuizOption `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"-"`
}

type QuizOption struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	QuestionID  uint      `gorm:"index;not null" json:"question_id"`
	OptionOrder int       `gorm:"not null" json:"option_order"`
	OptionText  string    `gorm:"not null" json:"option_text"`
	CreatedAt   time.Time `json:"created_at"`
}

// QuizResult is one finished quiz. CourseID is set for course quizzes and nil
// for results recorded without a course.
type QuizResult struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         uint      `gorm:"index;not null" json:"user_id"`
	CourseID       *uint     `gorm:"index" json:"course_id"`
	QuizName       string    `json:"quiz_name"`
	Score          int       `gorm:"not null" json:"score"`
	TotalQuestions int       `gorm:"not null" json:"total_questions"`
	CompletedAt    time.Time `gorm:"index" json:"completed_at"`
}

// AccuracyPercent is the result as a whole percentage, 0 when there were no questions.
func (r QuizResult) AccuracyPercent() int {
	if r.TotalQuestions == 0 {
		return 0
	}
	return int(float64(r.Score)/float64(r.TotalQuestions)*100 + 0.5)
}

// CourseQuizName is the display name of the quiz attached to a course.
func CourseQuizName(courseID uint) string {
	return fmt.Sprintf("Course %d Quiz", courseID)
}

var (
	ErrEmptyQuestion     = errors.New("question text is required")
	ErrTooFewOptions     = errors.New("at least two options are required")
	ErrCorrectOutOfRange = errors.New("correct answer does not reference an option")
	ErrBlankOption       = errors.New("options must not be blank")
)

// NewQuizQuestion builds a question and its options. correctAnswer is
// 0-based and must reference one of options; it is stored 1-based.
func NewQuizQuestion(courseID uint, question string, options []string, correctAnswer int) (QuizQuestion, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return QuizQuestion{}, ErrEmptyQuestion
	}
	if len(options) < 2 {
		return QuizQuestion{}, ErrTooFewOptions
	}
	if correctAnswer < 0 || correctAnswer >= len(options) {
		return QuizQuestion{}, ErrCorrectOutOfRange
	}

	q := QuizQuestion{
		CourseID:      courseID,
		Question:      question,
		CorrectAnswer: correctAnswer + 1,
	}
	for i, text := range options {
		text = strings.TrimSpace(text)
		if text == "" {
			return QuizQuestion{}, ErrBlankOption
		}
		q.Options = append(q.Options, QuizOption{OptionOrder: i + 1, OptionText: text})
	}
	return q, nil
}

// QuizQuestionView is how a question is shown to clients.
type QuizQuestionView struct {
	ID            uint     `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
}

// View converts the question for the API. Options must be loaded in order.
func (q QuizQuestion) View() QuizQuestionView {
	opts := make([]string, 0, len(q.Options))
	for _, o := range q.Options {
		opts = append(opts, o.OptionText)
	}
	return QuizQuestionView{
		ID:            q.ID,
		Question:      q.Question,
		Options:       opts,
		CorrectAnswer: q.CorrectAnswer - 1,
	}
}

type CreateQuizQuestion struct {
	Question      string   `json:"question" validate:"required"`
	Options       []string `json:"options" validate:"required,min=2"`
	CorrectAnswer *int     `json:"correct_answer" validate:"required,min=0"`
}

type CreateQuizRequest struct {
	CourseID  uint                 `json:"course_id" validate:"required"`
	Questions []CreateQuizQuestion `json:"questions" validate:"required,min=1,dive"`
}

type QuizHistoryEntry struct {
	QuizResult
	Accuracy int `json:"accuracy"`
}
