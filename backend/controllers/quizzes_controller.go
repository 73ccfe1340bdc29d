package controllers

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"signlearn/backend/config"
	"signlearn/backend/models"
	"signlearn/backend/utils"
)

type QuizzesController struct {
	DB  *gorm.DB
	Cfg *config.Config
	Log *utils.Logger
}

func NewQuizzesController(db *gorm.DB, cfg *config.Config, log *utils.Logger) *QuizzesController {
	return &QuizzesController{DB: db, Cfg: cfg, Log: log}
}

// courseQuestions loads the questions of a course by id with ordered options.
func courseQuestions(db *gorm.DB, courseID uint) ([]models.QuizQuestion, error) {
	var questions []models.QuizQuestion
	err := db.Preload("Options", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("option_order")
	}).Where("course_id = ?", courseID).Order("id").Find(&questions).Error
	return questions, err
}

// GetQuiz godoc
// @Summary Quiz of a course
// @Description Questions by id with options in order and the 0-based correct answer
// @Tags quizzes
// @Produce json
// @Param courseId path int true "Course ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /quizzes/{courseId} [get]
func (qc *QuizzesController) GetQuiz(c *fiber.Ctx) error {
	courseID, err := paramID(c, "courseId", "course")
	if err != nil {
		return err
	}

	db := qc.DB.WithContext(c.UserContext())
	var course models.Course
	if err := db.First(&course, courseID).Error; err != nil {
		if utils.IsNotFound(err) {
			return utils.NotFound(c, "Course not found")
		}
		return err
	}

	questions, err := courseQuestions(db, courseID)
	if err != nil {
		return err
	}
	views := make([]models.QuizQuestionView, 0, len(questions))
	for _, q := range questions {
		views = append(views, q.View())
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"course_id":    course.ID,
		"course_title": course.Title,
		"quiz_name":    models.CourseQuizName(course.ID),
		"questions":    views,
	})
}

type submitQuizRequest struct {
	Answers json.RawMessage `json:"answers"`
}

// SubmitQuiz godoc
// @Summary Submit quiz answers
// @Description Scores the answers, stores the result and returns per-question detail.
// @Description Each answer is an option index matched by position or {"question_id", "answer"}.
// @Tags quizzes
// @Accept json
// @Produce json
// @Param courseId path int true "Course ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /quizzes/submit/{courseId} [post]
func (qc *QuizzesController) SubmitQuiz(c *fiber.Ctx) error {
	me, err := currentUser(c)
	if err != nil {
		return err
	}
	courseID, err := paramID(c, "courseId", "course")
	if err != nil {
		return err
	}

	var req submitQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	var answers []json.RawMessage
	if len(req.Answers) == 0 || json.Unmarshal(req.Answers, &answers) != nil || answers == nil {
		return utils.BadRequest(c, "Answers must be an array")
	}

	db := qc.DB.WithContext(c.UserContext())
	questions, err := courseQuestions(db, courseID)
	if err != nil {
		return err
	}
	if len(questions) == 0 {
		return utils.NotFound(c, "No quiz found for this course")
	}

	aligned, err := utils.AlignAnswers(answers, questions)
	if err != nil {
		return err
	}
	score := utils.ScoreQuiz(questions, aligned)

	result := models.QuizResult{
		UserID:         me.UserID,
		CourseID:       &courseID,
		QuizName:       models.CourseQuizName(courseID),
		Score:          score.Score,
		TotalQuestions: score.Total,
		CompletedAt:    time.Now(),
	}
	if err := db.Create(&result).Error; err != nil {
		return err
	}

	return utils.Message(c, fiber.StatusOK, "Quiz submitted successfully", fiber.Map{
		"result_id":  result.ID,
		"score":      score.Score,
		"total":      score.Total,
		"accuracy":   score.Accuracy,
		"percentage": score.Percentage,
		"results":    score.Results,
	})
}

// GetQuizHistory lists the caller's results for a course, newest first.
func (qc *QuizzesController) GetQuizHistory(c *fiber.Ctx) error {
	me, err := currentUser(c)
	if err != nil {
		return err
	}
	courseID, err := paramID(c, "courseId", "course")
	if err != nil {
		return err
	}

	var results []models.QuizResult
	if err := qc.DB.WithContext(c.UserContext()).
		Where("user_id = ? AND course_id = ?", me.UserID, courseID).
		Order("completed_at DESC, id DESC").
		Find(&results).Error; err != nil {
		return err
	}

	history := make([]models.QuizHistoryEntry, 0, len(results))
	for _, r := range results {
		history = append(history, models.QuizHistoryEntry{QuizResult: r, Accuracy: r.AccuracyPercent()})
	}
	return utils.List(c, history, len(history))
}

// CreateQuiz godoc
// @Summary Create quiz questions
// @Description Adds questions to a course quiz; correct_answer is a 0-based option index
// @Tags quizzes
// @Accept json
// @Produce json
// @Param input body models.CreateQuizRequest true "Quiz"
// @Success 201 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /quizzes [post]
func (qc *QuizzesController) CreateQuiz(c *fiber.Ctx) error {
	var req models.CreateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if req.CourseID == 0 || len(req.Questions) == 0 {
		return utils.BadRequest(c, "course_id and questions array are required")
	}
	if err := utils.ValidateStruct(&req); err != nil {
		return err
	}

	questions := make([]models.QuizQuestion, 0, len(req.Questions))
	invalid := map[string]string{}
	for i, in := range req.Questions {
		q, err := models.NewQuizQuestion(req.CourseID, in.Question, in.Options, *in.CorrectAnswer)
		if err != nil {
			invalid[fmt.Sprintf("questions[%d]", i)] = err.Error()
			continue
		}
		questions = append(questions, q)
	}
	if len(invalid) > 0 {
		return utils.ErrValidation("Invalid questions", invalid)
	}

	err := qc.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		var course models.Course
		if err := tx.Select("id").First(&course, req.CourseID).Error; err != nil {
			if utils.IsNotFound(err) {
				return utils.ErrNotFound("Course not found")
			}
			return err
		}
		for i := range questions {
			if err := tx.Create(&questions[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	views := make([]models.QuizQuestionView, 0, len(questions))
	for _, q := range questions {
		views = append(views, q.View())
	}
	return utils.Created(c, "Quiz created successfully", fiber.Map{
		"course_id": req.CourseID,
		"questions": views,
	})
}
