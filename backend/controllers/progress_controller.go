package controllers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"signlearn/backend/config"
	"signlearn/backend/models"
	"signlearn/backend/utils"
)

type ProgressController struct {
	DB  *gorm.DB
	Cfg *config.Config
	Log *utils.Logger
}

func NewProgressController(db *gorm.DB, cfg *config.Config, log *utils.Logger) *ProgressController {
	return &ProgressController{DB: db, Cfg: cfg, Log: log}
}

// GetProgress godoc
// @Summary Get learning progress
// @Description Returns the caller's aggregate learning counters
// @Tags learning
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /learning/progress [get]
func (pc *ProgressController) GetProgress(c *fiber.Ctx) error {
	me, err := currentUser(c)
	if err != nil {
		return err
	}

	var progress models.LearningProgress
	err = pc.DB.WithContext(c.UserContext()).Where("user_id = ?", me.UserID).First(&progress).Error
	if utils.IsNotFound(err) {
		return utils.NotFound(c, "Learning progress not found")
	}
	if err != nil {
		return err
	}
	return utils.Success(c, fiber.StatusOK, progress)
}

// UpdateProgress godoc
// @Summary Update learning progress
// @Description Partial update; omitted fields keep their value
// @Tags learning
// @Accept json
// @Produce json
// @Param input body models.UpdateProgressRequest true "Counters"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /learning/progress [put]
func (pc *ProgressController) UpdateProgress(c *fiber.Ctx) error {
	me, err := currentUser(c)
	if err != nil {
		return err
	}

	var req models.UpdateProgressRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	cols := req.Columns()
	if len(cols) == 0 {
		return utils.BadRequest(c, "No valid fields to update")
	}

	db := pc.DB.WithContext(c.UserContext())
	var progress models.LearningProgress
	if err := db.Where("user_id = ?", me.UserID).First(&progress).Error; err != nil {
		if utils.IsNotFound(err) {
			return utils.NotFound(c, "Learning progress not found")
		}
		return err
	}
	cols["updated_at"] = time.Now()
	if err := db.Model(&progress).Updates(cols).Error; err != nil {
		return err
	}

	return utils.Message(c, fiber.StatusOK, "Progress updated successfully", progress)
}

func (pc *ProgressController) GetGestures(c *fiber.Ctx) error {
	me, err := currentUser(c)
	if err != nil {
		return err
	}

	records := make([]models.GestureRecord, 0)
	if err := pc.DB.WithContext(c.UserContext()).
		Where("user_id = ?", me.UserID).
		Order("gesture_name").
		Find(&records).Error; err != nil {
		return err
	}
	return utils.List(c, records, len(records))
}

// RecordGesture godoc
// @Summary Record gesture practice
// @Description Creates the record on first practice, otherwise increments practice_count and overwrites accuracy
// @Tags learning
// @Accept json
// @Produce json
// @Param input body models.RecordGestureRequest true "Practice"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /learning/gestures [post]
func (pc *ProgressController) RecordGesture(c *fiber.Ctx) error {
	me, err := currentUser(c)
	if err != nil {
		return err
	}

	var req models.RecordGestureRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	req.GestureName = strings.TrimSpace(req.GestureName)
	if req.GestureName == "" {
		return utils.BadRequest(c, "Gesture name is required")
	}
	if err := utils.ValidateStruct(&req); err != nil {
		return err
	}

	db := pc.DB.WithContext(c.UserContext())
	record, err := upsertGesture(db, me.UserID, req)
	if utils.IsDuplicate(err) {
		// Lost an insert race with a concurrent request; the row exists now.
		record, err = upsertGesture(db, me.UserID, req)
	}
	if err != nil {
		return err
	}

	return utils.Message(c, fiber.StatusOK, "Gesture practice recorded successfully", record)
}

func upsertGesture(db *gorm.DB, userID uint, req models.RecordGestureRequest) (*models.GestureRecord, error) {
	var record models.GestureRecord
	err := db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		err := tx.Where("user_id = ? AND gesture_name = ?", userID, req.GestureName).First(&record).Error
		if utils.IsNotFound(err) {
			record = models.GestureRecord{
				UserID:        userID,
				GestureName:   req.GestureName,
				Accuracy:      req.Accuracy,
				PracticeCount: 1,
				LastPracticed: &now,
			}
			return tx.Create(&record).Error
		}
		if err != nil {
			return err
		}

		if err := tx.Model(&record).Updates(map[string]interface{}{
			"practice_count": gorm.Expr("practice_count + ?", 1),
			"accuracy":       req.Accuracy,
			"last_practiced": now,
		}).Error; err != nil {
			return err
		}
		return tx.First(&record, record.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// RecordQuizResult stores a result for a quiz taken outside a course.
func (pc *ProgressController) RecordQuizResult(c *fiber.Ctx) error {
	me, err := currentUser(c)
	if err != nil {
		return err
	}

	var req models.RecordQuizResultRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if req.Score == nil || req.TotalQuestions == nil {
		return utils.BadRequest(c, "Score and total_questions are required")
	}
	if err := utils.ValidateStruct(&req); err != nil {
		return err
	}

	if *req.Score > *req.TotalQuestions {
		return utils.BadRequest(c, "Score cannot exceed total_questions")
	}

	db := pc.DB.WithContext(c.UserContext())
	if req.CourseID != nil {
		var course models.Course
		if err := db.Select("id").First(&course, *req.CourseID).Error; err != nil {
			if utils.IsNotFound(err) {
				return utils.NotFound(c, "Course not found")
			}
			return err
		}
	}

	name := strings.TrimSpace(req.QuizName)
	if name == "" {
		name = "Unnamed Quiz"
	}
	result := models.QuizResult{
		UserID:         me.UserID,
		CourseID:       req.CourseID,
		QuizName:       name,
		Score:          *req.Score,
		TotalQuestions: *req.TotalQuestions,
		CompletedAt:    time.Now(),
	}
	if err := db.Create(&result).Error; err != nil {
		return err
	}
	return utils.Created(c, "Quiz result recorded successfully", result)
}

func (pc *ProgressController) GetQuizResults(c *fiber.Ctx) error {
	me, err := currentUser(c)
	if err != nil {
		return err
	}

	results := make([]models.QuizResult, 0)
	if err := pc.DB.WithContext(c.UserContext()).
		Where("user_id = ?", me.UserID).
		Order("completed_at DESC, id DESC").
		Find(&results).Error; err != nil {
		return err
	}
	return utils.List(c, results, len(results))
}
