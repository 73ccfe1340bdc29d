package models

import "time"

// HealthMetric is an append-only reading such as heart rate or hand tremor.
type HealthMetric struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index;not null" json:"user_id"`
	MetricType  string    `gorm:"index;not null" json:"metric_type"`
	MetricValue float64   `json:"metric_value"`
	Unit        *string   `json:"unit"`
	RecordedAt  time.Time `gorm:"index" json:"recorded_at"`
}

type RecordMetricRequest struct {
	MetricType  string   `json:"metric_type" validate:"required"`
	MetricValue *float64 `json:"metric_value" validate:"required"`
	Unit        *string  `json:"unit"`
}

// MetricSummary aggregates all readings of one metric type.
type MetricSummary struct {
	MetricType string  `json:"metric_type"`
	Count      int64   `json:"count"`
	Average    float64 `json:"average"`
	Minimum    float64 `json:"minimum"`
	Maximum    float64 `json:"maximum"`
	Unit       *string `json:"unit"`
}
