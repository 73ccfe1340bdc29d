package routes

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"signlearn/backend/config"
	"signlearn/backend/controllers"
	"signlearn/backend/middleware"
	"signlearn/backend/session"
	"signlearn/backend/translator"
	"signlearn/backend/utils"
)

// NewApp builds the HTTP application with its middleware chain and routes.
func NewApp(db *gorm.DB, cfg *config.Config, sessions *session.Manager, log *utils.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "signlearn",
		ErrorHandler: utils.ErrorHandler(log),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	origins := strings.ReplaceAll(cfg.CORSOrigins, " ", "")
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		// Browsers refuse credentials for a wildcard origin.
		AllowCredentials: origins != "*",
	}))
	app.Use(middleware.LoggingMiddleware(log))
	app.Use(middleware.Timeout(cfg.RequestTimeout))

	SetupRoutes(app, db, cfg, sessions, log)
	return app
}

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config, sessions *session.Manager, log *utils.Logger) {
	api := app.Group("/api")

	authMiddleware := middleware.RequireAuth(sessions, db)
	adminMiddleware := middleware.RequireAdmin()

	// Auth routes
	authController := controllers.NewAuthController(db, cfg, log, sessions)
	auth := api.Group("/auth")
	auth.Post("/signup", authController.Register)
	auth.Post("/login", authController.Login)
	auth.Get("/status", authController.Status)
	auth.Post("/logout", authController.Logout)

	// User routes
	userController := controllers.NewUserController(db, cfg, log, sessions)
	user := api.Group("/user", authMiddleware)
	user.Get("/profile", userController.GetProfile)
	user.Put("/profile", userController.UpdateProfile)
	user.Delete("/profile", userController.DeleteAccount)

	// Courses routes
	coursesController := controllers.NewCoursesController(db, cfg, log)
	courses := api.Group("/courses")
	courses.Get("/", coursesController.GetCourses)
	courses.Get("/:id", coursesController.GetCourse)
	courses.Post("/", authMiddleware, adminMiddleware, coursesController.CreateCourse)
	courses.Put("/:id", authMiddleware, adminMiddleware, coursesController.UpdateCourse)
	courses.Delete("/:id", authMiddleware, adminMiddleware, coursesController.DeleteCourse)
	courses.Get("/:id/analytics", authMiddleware, adminMiddleware, coursesController.GetCourseAnalytics)

	// Lessons routes
	lessonsController := controllers.NewLessonsController(db, cfg, log)
	lessons := api.Group("/lessons")
	lessons.Get("/course/:courseId", lessonsController.GetCourseLessons)
	lessons.Get("/user/:courseId", authMiddleware, lessonsController.GetCompletedLessons)
	lessons.Get("/:id", lessonsController.GetLesson)
	lessons.Post("/", authMiddleware, adminMiddleware, lessonsController.CreateLesson)
	lessons.Post("/:id/complete", authMiddleware, lessonsController.CompleteLesson)

	// Quizzes routes
	quizzesController := controllers.NewQuizzesController(db, cfg, log)
	quizzes := api.Group("/quizzes")
	quizzes.Post("/submit/:courseId", authMiddleware, quizzesController.SubmitQuiz)
	quizzes.Get("/history/:courseId", authMiddleware, quizzesController.GetQuizHistory)
	quizzes.Post("/", authMiddleware, adminMiddleware, quizzesController.CreateQuiz)
	quizzes.Get("/:courseId", quizzesController.GetQuiz)

	// Learning progress routes
	progressController := controllers.NewProgressController(db, cfg, log)
	learning := api.Group("/learning", authMiddleware)
	learning.Get("/progress", progressController.GetProgress)
	learning.Put("/progress", progressController.UpdateProgress)
	learning.Get("/gestures", progressController.GetGestures)
	learning.Post("/gestures", progressController.RecordGesture)
	learning.Post("/quiz", progressController.RecordQuizResult)
	learning.Get("/quiz-results", progressController.GetQuizResults)

	// Health routes
	healthController := controllers.NewHealthController(db, cfg, log)
	health := api.Group("/health", authMiddleware)
	health.Post("/record-metric", healthController.RecordMetric)
	health.Get("/metrics", healthController.GetMetrics)
	health.Get("/metrics-summary", healthController.GetSummary)
	health.Delete("/metrics/:id", healthController.DeleteMetric)

	// Translator routes
	translatorController := controllers.NewTranslatorController(translator.Default())
	tr := api.Group("/translator")
	tr.Get("/word-to-gesture", translatorController.WordToGesture)
	tr.Get("/gesture-to-word", translatorController.GestureToWord)
	tr.Get("/all-translations", translatorController.AllTranslations)

	// Seed routes
	seedController := controllers.NewSeedController(db, log)
	seedGroup := api.Group("/seed")
	seedGroup.Post("/populate", authMiddleware, adminMiddleware, seedController.Populate)
	seedGroup.Get("/status", seedController.Status)
}
