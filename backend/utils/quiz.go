package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"signlearn/backend/models"
)

// QuestionResult is the outcome of one question of a submitted quiz.
// UserAnswer and CorrectAnswer are 0-based option indexes.
type QuestionResult struct {
	QuestionID    uint `json:"question_id"`
	UserAnswer    *int `json:"user_answer"`
	CorrectAnswer int  `json:"correct_answer"`
	IsCorrect     bool `json:"is_correct"`
}

type QuizScore struct {
	Score      int              `json:"score"`
	Total      int              `json:"total"`
	Accuracy   float64          `json:"accuracy"`
	Percentage string           `json:"percentage"`
	Results    []QuestionResult `json:"results"`
}

type keyedAnswer struct {
	QuestionID uint `json:"question_id"`
	Answer     *int `json:"answer"`
}

// AlignAnswers lines submitted answers up with questions, which must be in id
// order. An element is either an object {question_id, answer}, which claims
// that question, or a bare option index. Bare elements fill the questions no
// object claimed, in order; a null element leaves its question unanswered.
// Questions without an answer get nil.
func AlignAnswers(raw []json.RawMessage, questions []models.QuizQuestion) ([]*int, error) {
	aligned := make([]*int, len(questions))
	claimed := make([]bool, len(questions))
	index := make(map[uint]int, len(questions))
	for i, q := range questions {
		index[q.ID] = i
	}

	// Bare elements in submission order; nil stands for null.
	var bare []*int
	for pos, elem := range raw {
		elem = bytes.TrimSpace(elem)
		switch {
		case len(elem) == 0 || bytes.Equal(elem, []byte("null")):
			bare = append(bare, nil)
		case elem[0] == '{':
			var ka keyedAnswer
			if err := json.Unmarshal(elem, &ka); err != nil {
				return nil, ErrValidation(fmt.Sprintf("answer %d is malformed", pos))
			}
			i, ok := index[ka.QuestionID]
			if !ok {
				return nil, ErrValidation(fmt.Sprintf("answer %d references unknown question %d", pos, ka.QuestionID))
			}
			if claimed[i] {
				return nil, ErrValidation(fmt.Sprintf("question %d is answered twice", ka.QuestionID))
			}
			claimed[i] = true
			aligned[i] = ka.Answer
		default:
			n, err := strconv.Atoi(string(elem))
			if err != nil {
				return nil, ErrValidation(fmt.Sprintf("answer %d must be an option index", pos))
			}
			bare = append(bare, &n)
		}
	}

	next := 0
	for i := range aligned {
		if claimed[i] {
			continue
		}
		if next >= len(bare) {
			break
		}
		aligned[i] = bare[next]
		next++
	}
	return aligned, nil
}

// ScoreQuiz compares aligned answers with each question's correct option.
// A missing answer counts as wrong.
func ScoreQuiz(questions []models.QuizQuestion, aligned []*int) QuizScore {
	score := QuizScore{Total: len(questions), Results: make([]QuestionResult, 0, len(questions))}
	for i, q := range questions {
		var ans *int
		if i < len(aligned) {
			ans = aligned[i]
		}
		correct := q.CorrectAnswer - 1
		ok := ans != nil && *ans == correct
		if ok {
			score.Score++
		}
		score.Results = append(score.Results, QuestionResult{
			QuestionID:    q.ID,
			UserAnswer:    ans,
			CorrectAnswer: correct,
			IsCorrect:     ok,
		})
	}

	if score.Total > 0 {
		acc := float64(score.Score) / float64(score.Total) * 100
		score.Accuracy = math.Round(acc*100) / 100
	}
	score.Percentage = fmt.Sprintf("%d%%", int(math.Round(score.Accuracy)))
	return score
}
