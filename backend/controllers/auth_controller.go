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

type AuthController struct {
	DB       *gorm.DB
	Cfg      *config.Config
	Log      *utils.Logger
	Sessions *session.Manager
}

func NewAuthController(db *gorm.DB, cfg *config.Config, log *utils.Logger, sessions *session.Manager) *AuthController {
	return &AuthController{DB: db, Cfg: cfg, Log: log, Sessions: sessions}
}

// Register godoc
// @Summary Register a new user
// @Description Creates an account with empty learning progress and logs it in
// @Tags auth
// @Accept json
// @Produce json
// @Param user body models.RegisterRequest true "User registration data"
// @Success 201 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /auth/signup [post]
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var req models.RegisterRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), ac.Cfg.BcryptCost)
	if err != nil {
		return utils.ErrInternal("Could not hash password", err)
	}

	user := models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hashedPassword),
		Age:          req.Age,
		Role:         models.RoleUser,
	}
	if ac.Cfg.IsAdminEmail(email) {
		user.Role = models.RoleAdmin
	}

	err = ac.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return utils.ErrConflict("Email already registered")
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return tx.Create(&models.LearningProgress{UserID: user.ID}).Error
	})
	if utils.IsDuplicate(err) {
		return utils.ErrConflict("Email already registered")
	}
	if err != nil {
		return err
	}

	ac.Log.Info("user registered", "user_id", user.ID, "role", user.Role)
	return ac.startSession(c, fiber.StatusCreated, "User registered successfully", &user)
}

// Login godoc
// @Summary User login
// @Description Authenticates with email and password and starts a session
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login credentials"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /auth/login [post]
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	var user models.User
	err := ac.DB.WithContext(c.UserContext()).
		Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).
		First(&user).Error
	if utils.IsNotFound(err) {
		return utils.Unauthorized(c, "Invalid email or password")
	}
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return utils.Unauthorized(c, "Invalid email or password")
	}

	// ADMIN_EMAILS decides the role, both ways.
	role := models.RoleUser
	if ac.Cfg.IsAdminEmail(user.Email) {
		role = models.RoleAdmin
	}
	if user.Role != role {
		if err := ac.DB.WithContext(c.UserContext()).Model(&user).Update("role", role).Error; err != nil {
			return err
		}
	}

	return ac.startSession(c, fiber.StatusOK, "Login successful", &user)
}

func (ac *AuthController) startSession(c *fiber.Ctx, status int, message string, user *models.User) error {
	if err := ac.Sessions.Start(c, session.Identity{UserID: user.ID, Email: user.Email, Role: user.Role}); err != nil {
		return utils.ErrInternal("Could not start session", err)
	}
	token, err := utils.GenerateJWTToken(user.ID, user.Email, user.Role, ac.Cfg.JWTSecret)
	if err != nil {
		return utils.ErrInternal("Could not generate token", err)
	}
	return utils.Message(c, status, message, fiber.Map{
		"user":  user.Public(),
		"token": token,
	})
}

// Status reports whether the caller is logged in.
func (ac *AuthController) Status(c *fiber.Ctx) error {
	claimed, err := ac.Sessions.Identity(c)
	if err != nil || claimed == nil {
		return utils.Success(c, fiber.StatusOK, fiber.Map{"logged_in": false})
	}
	id, err := session.Verify(c.UserContext(), ac.DB, claimed)
	if err != nil {
		return err
	}
	if id == nil {
		return utils.Success(c, fiber.StatusOK, fiber.Map{"logged_in": false})
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"logged_in": true, "user": id})
}

func (ac *AuthController) Logout(c *fiber.Ctx) error {
	if err := ac.Sessions.Destroy(c); err != nil {
		return utils.ErrInternal("Could not log out, please try again", err)
	}
	return utils.Message(c, fiber.StatusOK, "Logout successful", nil)
}
