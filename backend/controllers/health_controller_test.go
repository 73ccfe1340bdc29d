package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signlearn/backend/models"
)

func (e *testEnv) recordMetric(token, metricType string, value float64) models.HealthMetric {
	e.t.Helper()
	resp, body := e.request(http.MethodPost, "/api/health/record-metric", map[string]interface{}{
		"metric_type": metricType, "metric_value": value, "unit": "bpm",
	}, token)
	require.Equal(e.t, fiber.StatusCreated, resp.StatusCode, body.Message)

	var metric models.HealthMetric
	decode(e.t, body.Data, &metric)
	return metric
}

func TestHealthMetrics(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup("Ann", "ann@example.com", "secret1")

	env.recordMetric(token, "heart_rate", 60)
	env.recordMetric(token, "heart_rate", 80)
	env.recordMetric(token, "stress", 3)

	resp, body := env.request(http.MethodGet, "/api/health/metrics", nil, token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 3, body.Meta["total"])

	_, body = env.request(http.MethodGet, "/api/health/metrics?metric_type=heart_rate", nil, token)
	var heart []models.HealthMetric
	decode(t, body.Data, &heart)
	assert.Len(t, heart, 2)

	resp, _ = env.request(http.MethodGet, "/api/health/metrics?days=-1", nil, token)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	resp, _ = env.request(http.MethodGet, "/api/health/metrics?days=abc", nil, token)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, body = env.request(http.MethodGet, "/api/health/metrics-summary", nil, token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var summary []models.MetricSummary
	decode(t, body.Data, &summary)
	require.Len(t, summary, 2)
	assert.Equal(t, "heart_rate", summary[0].MetricType)
	assert.Equal(t, int64(2), summary[0].Count)
	assert.Equal(t, 70.0, summary[0].Average)
	assert.Equal(t, 60.0, summary[0].Minimum)
	assert.Equal(t, 80.0, summary[0].Maximum)
	require.NotNil(t, summary[0].Unit)
	assert.Equal(t, "bpm", *summary[0].Unit)
}

func TestRecordMetricValidation(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup("Ann", "ann@example.com", "secret1")

	resp, body := env.request(http.MethodPost, "/api/health/record-metric", map[string]interface{}{"metric_type": "heart_rate"}, token)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "metric_type and metric_value are required", body.Message)

	resp, _ = env.request(http.MethodPost, "/api/health/record-metric", map[string]interface{}{"metric_type": "heart_rate", "metric_value": 0}, token)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

func TestDeleteMetricIsScopedToOwner(t *testing.T) {
	env := newTestEnv(t)
	ann := env.signup("Ann", "ann@example.com", "secret1")
	bob := env.signup("Bob", "bob@example.com", "secret2")
	metric := env.recordMetric(ann, "heart_rate", 72)
	path := fmt.Sprintf("/api/health/metrics/%d", metric.ID)

	resp, body := env.request(http.MethodDelete, path, nil, bob)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Health metric not found", body.Message)

	resp, _ = env.request(http.MethodDelete, path, nil, ann)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var n int64
	require.NoError(t, env.db.Model(&models.HealthMetric{}).Count(&n).Error)
	assert.Zero(t, n)
}
