package controllers_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signlearn/backend/models"
	"signlearn/backend/seed"
)

type quizView struct {
	CourseID    uint                      `json:"course_id"`
	CourseTitle string                    `json:"course_title"`
	QuizName    string                    `json:"quiz_name"`
	Questions   []models.QuizQuestionView `json:"questions"`
}

type submission struct {
	ResultID   uint    `json:"result_id"`
	Score      int     `json:"score"`
	Total      int     `json:"total"`
	Accuracy   float64 `json:"accuracy"`
	Percentage string  `json:"percentage"`
	Results    []struct {
		QuestionID    uint `json:"question_id"`
		UserAnswer    *int `json:"user_answer"`
		CorrectAnswer int  `json:"correct_answer"`
		IsCorrect     bool `json:"is_correct"`
	} `json:"results"`
}

func seededCourse(t *testing.T, env *testEnv, title string) uint {
	t.Helper()
	_, err := seed.Populate(context.Background(), env.db)
	require.NoError(t, err)

	var course models.Course
	require.NoError(t, env.db.Where("title = ?", title).First(&course).Error)
	return course.ID
}

func TestGetSeededQuiz(t *testing.T) {
	env := newTestEnv(t)
	courseID := seededCourse(t, env, "Beginner Sign Language")

	resp, body := env.request(http.MethodGet, fmt.Sprintf("/api/quizzes/%d", courseID), nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var quiz quizView
	decode(t, body.Data, &quiz)
	assert.Equal(t, "Beginner Sign Language", quiz.CourseTitle)
	assert.Equal(t, models.CourseQuizName(courseID), quiz.QuizName)
	require.Len(t, quiz.Questions, 5)
	for _, q := range quiz.Questions {
		assert.Zero(t, q.CorrectAnswer)
		assert.GreaterOrEqual(t, len(q.Options), 2)
	}

	resp, _ = env.request(http.MethodGet, "/api/quizzes/999", nil, "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestSubmitQuizScoresAnswers(t *testing.T) {
	env := newTestEnv(t)
	courseID := seededCourse(t, env, "Beginner Sign Language")
	token := env.signup("Ann", "ann@example.com", "secret1")

	resp, body := env.request(http.MethodPost, fmt.Sprintf("/api/quizzes/submit/%d", courseID),
		map[string]interface{}{"answers": []int{0, 1, 0, 0, 1}}, token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, body.Message)
	assert.Equal(t, "Quiz submitted successfully", body.Message)

	var sub submission
	decode(t, body.Data, &sub)
	assert.Equal(t, 3, sub.Score)
	assert.Equal(t, 5, sub.Total)
	assert.Equal(t, 60.0, sub.Accuracy)
	assert.Equal(t, "60%", sub.Percentage)
	require.Len(t, sub.Results, 5)
	assert.True(t, sub.Results[0].IsCorrect)
	assert.False(t, sub.Results[1].IsCorrect)
	require.NotNil(t, sub.Results[1].UserAnswer)
	assert.Equal(t, 1, *sub.Results[1].UserAnswer)

	var stored models.QuizResult
	require.NoError(t, env.db.First(&stored, sub.ResultID).Error)
	require.NotNil(t, stored.CourseID)
	assert.Equal(t, courseID, *stored.CourseID)
	assert.Equal(t, 3, stored.Score)
	assert.Equal(t, 5, stored.TotalQuestions)
}

func TestSubmitQuizMissingAndKeyedAnswers(t *testing.T) {
	env := newTestEnv(t)
	token := env.admin()
	courseID := env.createCourse(token, "Basics", "daily")
	env.createQuiz(token, courseID,
		question("Q1", 0, "a", "b"),
		question("Q2", 1, "a", "b"),
		question("Q3", 1, "a", "b", "c"),
	)

	resp, body := env.request(http.MethodGet, fmt.Sprintf("/api/quizzes/%d", courseID), nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var quiz quizView
	decode(t, body.Data, &quiz)
	require.Len(t, quiz.Questions, 3)
	assert.Equal(t, 1, quiz.Questions[2].CorrectAnswer)

	path := fmt.Sprintf("/api/quizzes/submit/%d", courseID)

	_, body = env.request(http.MethodPost, path, map[string]interface{}{"answers": []int{0}}, token)
	var partial submission
	decode(t, body.Data, &partial)
	assert.Equal(t, 1, partial.Score)
	assert.Equal(t, 3, partial.Total)
	assert.Equal(t, 33.33, partial.Accuracy)
	assert.Nil(t, partial.Results[2].UserAnswer)

	keyed := []interface{}{
		map[string]interface{}{"question_id": quiz.Questions[2].ID, "answer": 1},
		map[string]interface{}{"question_id": quiz.Questions[1].ID, "answer": 1},
	}
	_, body = env.request(http.MethodPost, path, map[string]interface{}{"answers": keyed}, token)
	var byID submission
	decode(t, body.Data, &byID)
	assert.Equal(t, 2, byID.Score)
}

func TestSubmitQuizRejectsBadInput(t *testing.T) {
	env := newTestEnv(t)
	token := env.admin()
	courseID := env.createCourse(token, "Basics", "daily")
	empty := env.createCourse(token, "Empty", "daily")
	env.createQuiz(token, courseID, question("Q1", 0, "a", "b"))
	path := fmt.Sprintf("/api/quizzes/submit/%d", courseID)

	for _, payload := range []interface{}{
		map[string]interface{}{"answers": "0,1"},
		map[string]interface{}{"answers": map[string]int{"a": 1}},
		map[string]interface{}{},
	} {
		resp, body := env.request(http.MethodPost, path, payload, token)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Answers must be an array", body.Message)
	}

	resp, _ := env.request(http.MethodPost, path, map[string]interface{}{"answers": []string{"x"}}, token)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, body := env.request(http.MethodPost, fmt.Sprintf("/api/quizzes/submit/%d", empty),
		map[string]interface{}{"answers": []int{0}}, token)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "No quiz found for this course", body.Message)

	var n int64
	require.NoError(t, env.db.Model(&models.QuizResult{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestQuizHistory(t *testing.T) {
	env := newTestEnv(t)
	token := env.admin()
	courseID := env.createCourse(token, "Basics", "daily")
	env.createQuiz(token, courseID, question("Q1", 0, "a", "b"), question("Q2", 0, "a", "b"))
	path := fmt.Sprintf("/api/quizzes/submit/%d", courseID)

	env.request(http.MethodPost, path, map[string]interface{}{"answers": []int{1, 1}}, token)
	env.request(http.MethodPost, path, map[string]interface{}{"answers": []int{0, 1}}, token)

	resp, body := env.request(http.MethodGet, fmt.Sprintf("/api/quizzes/history/%d", courseID), nil, token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var history []models.QuizHistoryEntry
	decode(t, body.Data, &history)
	require.Len(t, history, 2)
	assert.Equal(t, 50, history[0].Accuracy)
	assert.Equal(t, 0, history[1].Accuracy)
}

func TestCreateQuizValidation(t *testing.T) {
	env := newTestEnv(t)
	token := env.admin()
	courseID := env.createCourse(token, "Basics", "daily")

	resp, body := env.request(http.MethodPost, "/api/quizzes", map[string]interface{}{"course_id": courseID}, token)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "course_id and questions array are required", body.Message)

	resp, body = env.request(http.MethodPost, "/api/quizzes", map[string]interface{}{
		"course_id": courseID,
		"questions": []interface{}{
			question("Fine", 0, "a", "b"),
			question("Out of range", 5, "a", "b"),
		},
	}, token)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	var details map[string]string
	decode(t, body.Details, &details)
	assert.Contains(t, details, "questions[1]")

	resp, _ = env.request(http.MethodPost, "/api/quizzes", map[string]interface{}{
		"course_id": 999,
		"questions": []interface{}{question("Q", 0, "a", "b")},
	}, token)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	var n int64
	require.NoError(t, env.db.Model(&models.QuizQuestion{}).Count(&n).Error)
	assert.Zero(t, n)
}
