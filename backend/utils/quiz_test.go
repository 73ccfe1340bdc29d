package utils

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signlearn/backend/models"
)

func questions(n int) []models.QuizQuestion {
	qs := make([]models.QuizQuestion, n)
	for i := range qs {
		qs[i] = models.QuizQuestion{ID: uint(i + 1), CorrectAnswer: 1}
	}
	return qs
}

func rawAnswers(t *testing.T, body string) []json.RawMessage {
	t.Helper()
	var raw []json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(body), &raw))
	return raw
}

func TestScoreQuizPositional(t *testing.T) {
	qs := questions(5)
	aligned, err := AlignAnswers(rawAnswers(t, `[0,1,0,0,1]`), qs)
	require.NoError(t, err)

	s := ScoreQuiz(qs, aligned)
	assert.Equal(t, 3, s.Score)
	assert.Equal(t, 5, s.Total)
	assert.Equal(t, 60.0, s.Accuracy)
	assert.Equal(t, "60%", s.Percentage)
	require.Len(t, s.Results, 5)
	assert.True(t, s.Results[0].IsCorrect)
	assert.False(t, s.Results[1].IsCorrect)
	assert.Equal(t, 0, s.Results[1].CorrectAnswer)
}

func TestScoreQuizMissingAnswersAreWrong(t *testing.T) {
	qs := questions(3)
	aligned, err := AlignAnswers(rawAnswers(t, `[0]`), qs)
	require.NoError(t, err)

	s := ScoreQuiz(qs, aligned)
	assert.Equal(t, 1, s.Score)
	assert.Equal(t, 33.33, s.Accuracy)
	assert.Equal(t, "33%", s.Percentage)
	assert.Nil(t, s.Results[2].UserAnswer)
}

func TestAlignAnswersKeyedWinsOverPosition(t *testing.T) {
	qs := questions(2)
	aligned, err := AlignAnswers(rawAnswers(t, `[2, {"question_id": 1, "answer": 0}]`), qs)
	require.NoError(t, err)

	require.NotNil(t, aligned[0])
	assert.Equal(t, 0, *aligned[0])
	require.NotNil(t, aligned[1])
	assert.Equal(t, 2, *aligned[1])
}

func TestAlignAnswersBareFillsUnclaimedQuestions(t *testing.T) {
	qs := questions(3)
	aligned, err := AlignAnswers(rawAnswers(t, `[{"question_id": 2, "answer": 0}, 1, 2]`), qs)
	require.NoError(t, err)

	require.NotNil(t, aligned[0])
	assert.Equal(t, 1, *aligned[0])
	require.NotNil(t, aligned[1])
	assert.Equal(t, 0, *aligned[1])
	require.NotNil(t, aligned[2])
	assert.Equal(t, 2, *aligned[2])
}

func TestAlignAnswersNullSkipsQuestion(t *testing.T) {
	qs := questions(2)
	aligned, err := AlignAnswers(rawAnswers(t, `[null, 1]`), qs)
	require.NoError(t, err)

	assert.Nil(t, aligned[0])
	require.NotNil(t, aligned[1])
	assert.Equal(t, 1, *aligned[1])
}

func TestAlignAnswersRejectsDuplicateKeys(t *testing.T) {
	qs := questions(2)
	_, err := AlignAnswers(rawAnswers(t, `[{"question_id": 1, "answer": 0}, {"question_id": 1, "answer": 1}]`), qs)
	var appErr *AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 400, appErr.Status)
}

func TestAlignAnswersRejectsGarbage(t *testing.T) {
	qs := questions(2)

	_, err := AlignAnswers(rawAnswers(t, `["a"]`), qs)
	var appErr *AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 400, appErr.Status)

	_, err = AlignAnswers(rawAnswers(t, `[{"question_id": 99, "answer": 0}]`), qs)
	require.Error(t, err)
}

func TestScoreQuizEmpty(t *testing.T) {
	s := ScoreQuiz(nil, nil)
	assert.Equal(t, 0, s.Score)
	assert.Equal(t, 0.0, s.Accuracy)
	assert.Equal(t, "0%", s.Percentage)
}
