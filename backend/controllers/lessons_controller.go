package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"signlearn/backend/config"
	"signlearn/backend/models"
	"signlearn/backend/utils"
)

type LessonsController struct {
	DB  *gorm.DB
	Cfg *config.Config
	Log *utils.Logger
}

func NewLessonsController(db *gorm.DB, cfg *config.Config, log *utils.Logger) *LessonsController {
	return &LessonsController{DB: db, Cfg: cfg, Log: log}
}

// lessonStepRow is one row of the lessons LEFT JOIN lesson_steps query.
type lessonStepRow struct {
	ID          uint
	CourseID    uint
	Title       string
	Description string
	VideoURL    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	StepText    *string
}

func (r lessonStepRow) lesson() models.Lesson {
	return models.Lesson{
		ID:          r.ID,
		CourseID:    r.CourseID,
		Title:       r.Title,
		Description: r.Description,
		VideoURL:    r.VideoURL,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// loadLessons reads lessons matching where together with their steps in one
// query. Lessons come back by id and steps by step_order.
func loadLessons(db *gorm.DB, where string, args ...interface{}) ([]models.LessonWithSteps, error) {
	var rows []lessonStepRow
	err := db.Model(&models.Lesson{}).
		Select("lessons.id, lessons.course_id, lessons.title, lessons.description, lessons.video_url, " +
			"lessons.created_at, lessons.updated_at, lesson_steps.step_text AS step_text").
		Joins("LEFT JOIN lesson_steps ON lesson_steps.lesson_id = lessons.id").
		Where(where, args...).
		Order("lessons.id, lesson_steps.step_order").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]models.LessonWithSteps, 0)
	for _, r := range rows {
		if len(out) == 0 || out[len(out)-1].ID != r.ID {
			out = append(out, models.LessonWithSteps{Lesson: r.lesson(), Steps: make([]string, 0)})
		}
		if r.StepText != nil {
			last := &out[len(out)-1]
			last.Steps = append(last.Steps, *r.StepText)
		}
	}
	return out, nil
}

// GetCourseLessons godoc
// @Summary Lessons of a course
// @Description Lessons ordered by id, each with its ordered steps
// @Tags lessons
// @Produce json
// @Param courseId path int true "Course ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /lessons/course/{courseId} [get]
func (lc *LessonsController) GetCourseLessons(c *fiber.Ctx) error {
	courseID, err := paramID(c, "courseId", "course")
	if err != nil {
		return err
	}

	db := lc.DB.WithContext(c.UserContext())
	var course models.Course
	if err := db.Select("id").First(&course, courseID).Error; err != nil {
		if utils.IsNotFound(err) {
			return utils.NotFound(c, "Course not found")
		}
		return err
	}

	lessons, err := loadLessons(db, "lessons.course_id = ?", courseID)
	if err != nil {
		return err
	}
	return utils.List(c, lessons, len(lessons))
}

func (lc *LessonsController) GetLesson(c *fiber.Ctx) error {
	lessonID, err := paramID(c, "id", "lesson")
	if err != nil {
		return err
	}

	lessons, err := loadLessons(lc.DB.WithContext(c.UserContext()), "lessons.id = ?", lessonID)
	if err != nil {
		return err
	}
	if len(lessons) == 0 {
		return utils.NotFound(c, "Lesson not found")
	}
	return utils.Success(c, fiber.StatusOK, lessons[0])
}

// CreateLesson godoc
// @Summary Create lesson
// @Description Creates a lesson and its steps; step order follows the list order
// @Tags lessons
// @Accept json
// @Produce json
// @Param input body models.CreateLessonRequest true "Lesson"
// @Success 201 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /lessons [post]
func (lc *LessonsController) CreateLesson(c *fiber.Ctx) error {
	var req models.CreateLessonRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	req.Normalize()
	if req.Title == "" || req.CourseID == 0 {
		return utils.BadRequest(c, "Title and course_id are required")
	}

	lesson := models.NewLesson(req.CourseID, req.Title, req.Description, req.VideoURL, req.Steps)
	err := lc.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		var course models.Course
		if err := tx.Select("id").First(&course, req.CourseID).Error; err != nil {
			if utils.IsNotFound(err) {
				return utils.ErrNotFound("Course not found")
			}
			return err
		}
		return tx.Create(&lesson).Error
	})
	if err != nil {
		return err
	}

	steps := make([]string, 0, len(lesson.Steps))
	for _, s := range lesson.Steps {
		steps = append(steps, s.StepText)
	}
	return utils.Created(c, "Lesson created successfully", models.LessonWithSteps{Lesson: lesson, Steps: steps})
}

// CompleteLesson marks a lesson as completed for the caller. Repeating it
// only refreshes completed_at.
func (lc *LessonsController) CompleteLesson(c *fiber.Ctx) error {
	me, err := currentUser(c)
	if err != nil {
		return err
	}
	lessonID, err := paramID(c, "id", "lesson")
	if err != nil {
		return err
	}

	db := lc.DB.WithContext(c.UserContext())
	var lesson models.Lesson
	if err := db.Select("id").First(&lesson, lessonID).Error; err != nil {
		if utils.IsNotFound(err) {
			return utils.NotFound(c, "Lesson not found")
		}
		return err
	}

	now := time.Now()
	record, err := upsertCompletion(db, me.UserID, lessonID, now)
	if utils.IsDuplicate(err) {
		// A concurrent request inserted the row first.
		record, err = upsertCompletion(db, me.UserID, lessonID, now)
	}
	if err != nil {
		return err
	}

	return utils.Message(c, fiber.StatusOK, "Lesson marked as completed", record)
}

func upsertCompletion(db *gorm.DB, userID, lessonID uint, at time.Time) (*models.UserLesson, error) {
	var record models.UserLesson
	err := db.Where("user_id = ? AND lesson_id = ?", userID, lessonID).First(&record).Error
	switch {
	case err == nil:
		err = db.Model(&record).Updates(map[string]interface{}{"completed": true, "completed_at": at}).Error
	case utils.IsNotFound(err):
		record = models.UserLesson{UserID: userID, LessonID: lessonID, Completed: true, CompletedAt: &at}
		err = db.Create(&record).Error
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// GetCompletedLessons lists the caller's completed lessons of a course,
// most recent first.
func (lc *LessonsController) GetCompletedLessons(c *fiber.Ctx) error {
	me, err := currentUser(c)
	if err != nil {
		return err
	}
	courseID, err := paramID(c, "courseId", "course")
	if err != nil {
		return err
	}

	completed := make([]models.CompletedLesson, 0)
	if err := lc.DB.WithContext(c.UserContext()).
		Model(&models.UserLesson{}).
		Select("user_lessons.lesson_id, lessons.title, user_lessons.completed_at").
		Joins("JOIN lessons ON lessons.id = user_lessons.lesson_id").
		Where("user_lessons.user_id = ? AND lessons.course_id = ? AND user_lessons.completed = ?", me.UserID, courseID, true).
		Order("user_lessons.completed_at DESC").
		Scan(&completed).Error; err != nil {
		return err
	}
	return utils.List(c, completed, len(completed))
}
