package models

// LessonCompletionStat counts the users that completed one lesson.
type LessonCompletionStat struct {
	LessonID    uint   `json:"lesson_id"`
	Title       string `json:"title"`
	Completions int64  `json:"completions"`
}

// CourseAnalytics summarises how learners use a course.
type CourseAnalytics struct {
	CourseID          uint                   `json:"course_id"`
	Title             string                 `json:"title"`
	LessonCount       int64                  `json:"lesson_count"`
	QuestionCount     int64                  `json:"question_count"`
	Learners          int64                  `json:"learners"`
	LessonCompletions []LessonCompletionStat `json:"lesson_completions"`
	QuizAttempts      int64                  `json:"quiz_attempts"`
	AverageAccuracy   float64                `json:"average_accuracy"`
}
