package service

import (
	"database/sql"

	"github.com/papertrade/stock-trading-backend/internal/database"
)

// SystemService reports service health.
type SystemService struct {
	db *sql.DB
}

// NewSystemService creates a new SystemService.
func NewSystemService(db *sql.DB) *SystemService {
	return &SystemService{db: db}
}

// HealthStatus is the health endpoint payload.
type HealthStatus struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// Health pings the database and reports overall status.
func (s *SystemService) Health() HealthStatus {
	if err := database.HealthCheck(s.db); err != nil {
		return HealthStatus{Status: "degraded", Database: err.Error()}
	}
	return HealthStatus{Status: "ok", Database: "ok"}
}
