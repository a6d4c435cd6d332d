package storage

import (
	"errors"
	"time"
)

// ErrNotFound is returned when the requested row does not exist.
var ErrNotFound = errors.New("not found")

// InterviewRecord is one completed interview: the summary columns plus the
// full report serialized as JSON.
type InterviewRecord struct {
	ID              string    `json:"id"`
	CreatedAt       time.Time `json:"created_at"`
	Role            string    `json:"role"`
	ExperienceLevel string    `json:"experience_level"`
	QuestionCount   int       `json:"question_count"`
	ReadinessScore  float64   `json:"readiness_score"`
	HiringIndicator string    `json:"hiring_indicator"`
	EarlyTerminated bool      `json:"early_terminated"`
	ReportJSON      string    `json:"report_json"`
}
