package controllers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"signlearn/backend/seed"
	"signlearn/backend/utils"
)

type SeedController struct {
	DB  *gorm.DB
	Log *utils.Logger
}

func NewSeedController(db *gorm.DB, log *utils.Logger) *SeedController {
	return &SeedController{DB: db, Log: log}
}

// Populate godoc
// @Summary Seed demo content
// @Description Inserts demo courses, lessons and quizzes unless courses already exist
// @Tags seed
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 403 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /seed/populate [post]
func (sc *SeedController) Populate(c *fiber.Ctx) error {
	res, err := seed.Populate(c.UserContext(), sc.DB)
	if err != nil {
		return utils.ErrInternal("Error seeding database", err)
	}
	if !res.Seeded {
		return utils.Message(c, fiber.StatusOK, "Database already has courses. Skipping seed.", res)
	}
	sc.Log.Info("database seeded", "courses", res.Courses, "lessons", res.Lessons)
	return utils.Message(c, fiber.StatusOK, "Database seeded successfully with courses, lessons, and quizzes!", res)
}

func (sc *SeedController) Status(c *fiber.Ctx) error {
	st, err := seed.CurrentStatus(c.UserContext(), sc.DB)
	if err != nil {
		return err
	}
	return utils.Success(c, fiber.StatusOK, st)
}
