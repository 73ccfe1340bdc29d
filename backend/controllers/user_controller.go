package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"signlearn/backend/config"
	"signlearn/backend/models"
	"signlearn/backend/session"
	"signlearn/backend/utils"
)

type UserController struct {
	DB       *gorm.DB
	Cfg      *config.Config
	Log      *utils.Logger
	Sessions *session.Manager
}

func NewUserController(db *gorm.DB, cfg *config.Config, log *utils.Logger, sessions *session.Manager) *UserController {
	return &UserController{DB: db, Cfg: cfg, Log: log, Sessions: sessions}
}

// GetProfile godoc
// @Summary Get user profile
// @Description Returns the caller's profile together with learning progress
// @Tags users
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /user/profile [get]
func (uc *UserController) GetProfile(c *fiber.Ctx) error {
	me, err := currentUser(c)
	if err != nil {
		return err
	}

	var user models.User
	err = uc.DB.WithContext(c.UserContext()).Preload("Progress").First(&user, me.UserID).Error
	if utils.IsNotFound(err) {
		return utils.NotFound(c, "User not found")
	}
	if err != nil {
		return err
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"id":         user.ID,
		"name":       user.Name,
		"email":      user.Email,
		"age":        user.Age,
		"role":       user.Role,
		"created_at": user.CreatedAt,
		"progress":   user.Progress,
	})
}

// UpdateProfile godoc
// @Summary Update user profile
// @Description Partially updates name, email and age; changing the password requires old_password
// @Tags users
// @Accept json
// @Produce json
// @Param input body models.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /user/profile [put]
func (uc *UserController) UpdateProfile(c *fiber.Ctx) error {
	me, err := currentUser(c)
	if err != nil {
		return err
	}

	var req models.UpdateProfileRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	db := uc.DB.WithContext(c.UserContext())
	var user models.User
	if err := db.First(&user, me.UserID).Error; err != nil {
		if utils.IsNotFound(err) {
			return utils.NotFound(c, "User not found")
		}
		return err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return utils.BadRequest(c, "Name cannot be empty")
		}
		updates["name"] = name
	}
	if req.Age != nil {
		updates["age"] = *req.Age
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email != user.Email {
			var count int64
			if err := db.Model(&models.User{}).Where("email = ? AND id <> ?", email, user.ID).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return utils.Conflict(c, "Email already in use")
			}
			updates["email"] = email
		}
	}
	if req.NewPassword != "" {
		if req.OldPassword == "" {
			return utils.BadRequest(c, "Old password is required to change password")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)); err != nil {
			return utils.Unauthorized(c, "Old password is incorrect")
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), uc.Cfg.BcryptCost)
		if err != nil {
			return utils.ErrInternal("Could not hash password", err)
		}
		updates["password_hash"] = string(hashed)
	}

	if len(updates) == 0 {
		return utils.BadRequest(c, "No valid fields to update")
	}

	if err := db.Model(&user).Updates(updates).Error; err != nil {
		if utils.IsDuplicate(err) {
			return utils.Conflict(c, "Email already in use")
		}
		return err
	}

	if email, ok := updates["email"].(string); ok {
		user.Email = email
	}
	if err := uc.Sessions.Refresh(c, session.Identity{UserID: user.ID, Email: user.Email, Role: user.Role}); err != nil {
		uc.Log.Warn("could not refresh session", "user_id", user.ID, "error", err)
	}
	return utils.Message(c, fiber.StatusOK, "Profile updated", user.Public())
}

// DeleteAccount removes the caller and everything they own, then ends the session.
func (uc *UserController) DeleteAccount(c *fiber.Ctx) error {
	me, err := currentUser(c)
	if err != nil {
		return err
	}

	err = uc.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		for _, owned := range []interface{}{
			&models.UserLesson{},
			&models.QuizResult{},
			&models.HealthMetric{},
			&models.GestureRecord{},
			&models.LearningProgress{},
		} {
			if err := tx.Where("user_id = ?", me.UserID).Delete(owned).Error; err != nil {
				return err
			}
		}
		res := tx.Delete(&models.User{}, me.UserID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return utils.ErrNotFound("User not found")
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := uc.Sessions.Destroy(c); err != nil {
		uc.Log.Warn("could not destroy session", "user_id", me.UserID, "error", err)
	}
	uc.Log.Info("account deleted", "user_id", me.UserID)
	return utils.Message(c, fiber.StatusOK, "Account deleted", nil)
}
