package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"signlearn/backend/config"
	"signlearn/backend/models"
	"signlearn/backend/utils"
)

type CoursesController struct {
	DB  *gorm.DB
	Cfg *config.Config
	Log *utils.Logger
}

func NewCoursesController(db *gorm.DB, cfg *config.Config, log *utils.Logger) *CoursesController {
	return &CoursesController{DB: db, Cfg: cfg, Log: log}
}

// GetCourses godoc
// @Summary List courses
// @Description Lists courses by title with their lesson count
// @Tags courses
// @Produce json
// @Param category query string false "Exact category"
// @Param search query string false "Substring of title or description"
// @Success 200 {object} utils.SuccessResponse
// @Router /courses [get]
func (cc *CoursesController) GetCourses(c *fiber.Ctx) error {
	db := cc.DB.WithContext(c.UserContext())
	query := db.Model(&models.Course{})

	if category := strings.TrimSpace(c.Query("category")); category != "" {
		query = query.Where("category = ?", category)
	}
	if search := strings.ToLower(strings.TrimSpace(c.Query("search"))); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	var courses []models.Course
	if err := query.Order("title").Find(&courses).Error; err != nil {
		return err
	}

	var counts []struct {
		CourseID uint
		Lessons  int
	}
	if err := db.Model(&models.Lesson{}).
		Select("course_id, COUNT(*) AS lessons").
		Group("course_id").
		Scan(&counts).Error; err != nil {
		return err
	}
	byCourse := make(map[uint]int, len(counts))
	for _, n := range counts {
		byCourse[n.CourseID] = n.Lessons
	}

	summaries := make([]models.CourseSummary, 0, len(courses))
	for _, course := range courses {
		summaries = append(summaries, models.CourseSummary{Course: course, LessonCount: byCourse[course.ID]})
	}
	return utils.List(c, summaries, len(summaries))
}

// GetCourse godoc
// @Summary Course details
// @Description Returns a course with its lessons ordered by id, without steps
// @Tags courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /courses/{id} [get]
func (cc *CoursesController) GetCourse(c *fiber.Ctx) error {
	courseID, err := paramID(c, "id", "course")
	if err != nil {
		return err
	}

	db := cc.DB.WithContext(c.UserContext())
	var course models.Course
	if err := db.First(&course, courseID).Error; err != nil {
		if utils.IsNotFound(err) {
			return utils.NotFound(c, "Course not found")
		}
		return err
	}

	lessons := make([]models.LessonSummary, 0)
	if err := db.Model(&models.Lesson{}).
		Select("id, title, description").
		Where("course_id = ?", courseID).
		Order("id").
		Find(&lessons).Error; err != nil {
		return err
	}

	return utils.Success(c, fiber.StatusOK, models.CourseDetail{Course: course, Lessons: lessons})
}

// CreateCourse godoc
// @Summary Create course
// @Tags courses
// @Accept json
// @Produce json
// @Param input body models.CreateCourseRequest true "Course"
// @Success 201 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /courses [post]
func (cc *CoursesController) CreateCourse(c *fiber.Ctx) error {
	var req models.CreateCourseRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	course := models.Course{
		Title:       strings.TrimSpace(req.Title),
		Level:       req.Level,
		Description: req.Description,
		Category:    strings.TrimSpace(req.Category),
	}
	if course.Title == "" || course.Category == "" {
		return utils.BadRequest(c, "Title and category are required")
	}

	if err := cc.DB.WithContext(c.UserContext()).Create(&course).Error; err != nil {
		return err
	}
	return utils.Created(c, "Course created", course)
}

func (cc *CoursesController) UpdateCourse(c *fiber.Ctx) error {
	courseID, err := paramID(c, "id", "course")
	if err != nil {
		return err
	}

	var req models.UpdateCourseRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	cols := req.Columns()
	if len(cols) == 0 {
		return utils.BadRequest(c, "No valid fields to update")
	}
	if title, ok := cols["title"].(string); ok && strings.TrimSpace(title) == "" {
		return utils.BadRequest(c, "Title cannot be empty")
	}

	db := cc.DB.WithContext(c.UserContext())
	var course models.Course
	if err := db.First(&course, courseID).Error; err != nil {
		if utils.IsNotFound(err) {
			return utils.NotFound(c, "Course not found")
		}
		return err
	}
	if err := db.Model(&course).Updates(cols).Error; err != nil {
		return err
	}

	return utils.Message(c, fiber.StatusOK, "Course updated", course)
}

// DeleteCourse removes a course with its lessons, steps, completions and quiz.
// Quiz results keep their score but lose the course reference.
func (cc *CoursesController) DeleteCourse(c *fiber.Ctx) error {
	courseID, err := paramID(c, "id", "course")
	if err != nil {
		return err
	}

	err = cc.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		var course models.Course
		if err := tx.Select("id").First(&course, courseID).Error; err != nil {
			if utils.IsNotFound(err) {
				return utils.ErrNotFound("Course not found")
			}
			return err
		}

		lessonIDs := tx.Model(&models.Lesson{}).Select("id").Where("course_id = ?", courseID)
		questionIDs := tx.Model(&models.QuizQuestion{}).Select("id").Where("course_id = ?", courseID)

		steps := []func() error{
			func() error { return tx.Where("lesson_id IN (?)", lessonIDs).Delete(&models.UserLesson{}).Error },
			func() error { return tx.Where("lesson_id IN (?)", lessonIDs).Delete(&models.LessonStep{}).Error },
			func() error { return tx.Where("course_id = ?", courseID).Delete(&models.Lesson{}).Error },
			func() error { return tx.Where("question_id IN (?)", questionIDs).Delete(&models.QuizOption{}).Error },
			func() error { return tx.Where("course_id = ?", courseID).Delete(&models.QuizQuestion{}).Error },
			func() error {
				return tx.Model(&models.QuizResult{}).Where("course_id = ?", courseID).Update("course_id", nil).Error
			},
			func() error { return tx.Delete(&models.Course{}, courseID).Error },
		}
		for _, step := range steps {
			if err := step(); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	cc.Log.Info("course deleted", "course_id", courseID)
	return utils.Message(c, fiber.StatusOK, "Course deleted", fiber.Map{"id": courseID})
}

// GetCourseAnalytics godoc
// @Summary Course analytics
// @Description Lesson completions, quiz attempts and average quiz accuracy of a course
// @Tags courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /courses/{id}/analytics [get]
func (cc *CoursesController) GetCourseAnalytics(c *fiber.Ctx) error {
	courseID, err := paramID(c, "id", "course")
	if err != nil {
		return err
	}

	db := cc.DB.WithContext(c.UserContext())
	var course models.Course
	if err := db.First(&course, courseID).Error; err != nil {
		if utils.IsNotFound(err) {
			return utils.NotFound(c, "Course not found")
		}
		return err
	}

	stats := models.CourseAnalytics{CourseID: course.ID, Title: course.Title}

	if err := db.Model(&models.Lesson{}).Where("course_id = ?", courseID).Count(&stats.LessonCount).Error; err != nil {
		return err
	}
	if err := db.Model(&models.QuizQuestion{}).Where("course_id = ?", courseID).Count(&stats.QuestionCount).Error; err != nil {
		return err
	}

	stats.LessonCompletions = make([]models.LessonCompletionStat, 0)
	if err := db.Model(&models.Lesson{}).
		Select("lessons.id AS lesson_id, lessons.title, COUNT(user_lessons.id) AS completions").
		Joins("LEFT JOIN user_lessons ON user_lessons.lesson_id = lessons.id AND user_lessons.completed = ?", true).
		Where("lessons.course_id = ?", courseID).
		Group("lessons.id, lessons.title").
		Order("lessons.id").
		Scan(&stats.LessonCompletions).Error; err != nil {
		return err
	}

	if err := db.Model(&models.UserLesson{}).
		Joins("JOIN lessons ON lessons.id = user_lessons.lesson_id").
		Where("lessons.course_id = ? AND user_lessons.completed = ?", courseID, true).
		Distinct("user_lessons.user_id").
		Count(&stats.Learners).Error; err != nil {
		return err
	}

	var quiz struct {
		Attempts int64
		Score    float64
		Total    float64
	}
	if err := db.Model(&models.QuizResult{}).
		Select("COUNT(*) AS attempts, COALESCE(SUM(score), 0) AS score, COALESCE(SUM(total_questions), 0) AS total").
		Where("course_id = ?", courseID).
		Scan(&quiz).Error; err != nil {
		return err
	}
	stats.QuizAttempts = quiz.Attempts
	if quiz.Total > 0 {
		stats.AverageAccuracy = roundTo2(quiz.Score / quiz.Total * 100)
	}

	return utils.Success(c, fiber.StatusOK, stats)
}
