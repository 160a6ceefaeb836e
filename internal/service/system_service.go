package service

import (
	"context"
	"database/sql"
	"strconv"

	"github.com/ndewijer/stock-portfolio-tracker/internal/database"
	"github.com/ndewijer/stock-portfolio-tracker/internal/version"
)

// SystemService handles system-related operations
type SystemService struct {
	db *sql.DB
}

// NewSystemService creates a new SystemService
func NewSystemService(db *sql.DB) *SystemService {
	return &SystemService{
		db: db,
	}
}

// VersionInfo describes the running binary and the schema it is using.
type VersionInfo struct {
	AppVersion string
	DbVersion  string
}

// CheckHealth reports whether the holding store can be reached.
func (s *SystemService) CheckHealth(ctx context.Context) error {
	return database.HealthCheck(ctx, s.db)
}

// CheckVersion returns the application version and the applied schema version.
func (s *SystemService) CheckVersion(ctx context.Context) (VersionInfo, error) {
	v, err := database.SchemaVersion(ctx, s.db)
	if err != nil {
		return VersionInfo{}, err
	}

	return VersionInfo{
		AppVersion: version.Version,
		DbVersion:  strconv.FormatInt(v, 10),
	}, nil
}
