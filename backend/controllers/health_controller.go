package controllers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"signlearn/backend/config"
	"signlearn/backend/models"
	"signlearn/backend/utils"
)

const maxLookbackDays = 3650

type HealthController struct {
	DB  *gorm.DB
	Cfg *config.Config
	Log *utils.Logger
}

func NewHealthController(db *gorm.DB, cfg *config.Config, log *utils.Logger) *HealthController {
	return &HealthController{DB: db, Cfg: cfg, Log: log}
}

// RecordMetric godoc
// @Summary Record health metric
// @Tags health
// @Accept json
// @Produce json
// @Param input body models.RecordMetricRequest true "Reading"
// @Success 201 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /health/record-metric [post]
func (hc *HealthController) RecordMetric(c *fiber.Ctx) error {
	me, err := currentUser(c)
	if err != nil {
		return err
	}

	var req models.RecordMetricRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	req.MetricType = strings.TrimSpace(req.MetricType)
	if req.MetricType == "" || req.MetricValue == nil {
		return utils.BadRequest(c, "metric_type and metric_value are required")
	}

	metric := models.HealthMetric{
		UserID:      me.UserID,
		MetricType:  req.MetricType,
		MetricValue: *req.MetricValue,
		Unit:        req.Unit,
		RecordedAt:  time.Now(),
	}
	if err := hc.DB.WithContext(c.UserContext()).Create(&metric).Error; err != nil {
		return err
	}
	return utils.Created(c, "Health metric recorded successfully", metric)
}

// GetMetrics godoc
// @Summary List health metrics
// @Description Newest first; optional metric_type filter and days lookback window
// @Tags health
// @Produce json
// @Param metric_type query string false "Metric type"
// @Param days query int false "Only readings of the last N days"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /health/metrics [get]
func (hc *HealthController) GetMetrics(c *fiber.Ctx) error {
	me, err := currentUser(c)
	if err != nil {
		return err
	}

	query := hc.DB.WithContext(c.UserContext()).Where("user_id = ?", me.UserID)
	if metricType := strings.TrimSpace(c.Query("metric_type")); metricType != "" {
		query = query.Where("metric_type = ?", metricType)
	}
	if raw := c.Query("days"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil || days < 0 || days > maxLookbackDays {
			return utils.BadRequest(c, "days must be a non-negative number")
		}
		query = query.Where("recorded_at >= ?", time.Now().AddDate(0, 0, -days))
	}

	metrics := make([]models.HealthMetric, 0)
	if err := query.Order("recorded_at DESC, id DESC").Find(&metrics).Error; err != nil {
		return err
	}
	return utils.List(c, metrics, len(metrics))
}

func (hc *HealthController) GetSummary(c *fiber.Ctx) error {
	me, err := currentUser(c)
	if err != nil {
		return err
	}

	summary := make([]models.MetricSummary, 0)
	if err := hc.DB.WithContext(c.UserContext()).
		Model(&models.HealthMetric{}).
		Select("metric_type, COUNT(*) AS count, AVG(metric_value) AS average, " +
			"MIN(metric_value) AS minimum, MAX(metric_value) AS maximum, MAX(unit) AS unit").
		Where("user_id = ?", me.UserID).
		Group("metric_type").
		Order("metric_type").
		Scan(&summary).Error; err != nil {
		return err
	}
	return utils.Success(c, fiber.StatusOK, summary)
}

func (hc *HealthController) DeleteMetric(c *fiber.Ctx) error {
	me, err := currentUser(c)
	if err != nil {
		return err
	}
	metricID, err := paramID(c, "id", "metric")
	if err != nil {
		return err
	}

	res := hc.DB.WithContext(c.UserContext()).
		Where("id = ? AND user_id = ?", metricID, me.UserID).
		Delete(&models.HealthMetric{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.NotFound(c, "Health metric not found")
	}
	return utils.Message(c, fiber.StatusOK, "Health metric deleted successfully", nil)
}
