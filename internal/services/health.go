package services

import (
	"context"
	"time"
)

// PlacementProvider reports where the process is deployed. Lookups are best
// effort: a false second return value means "not available" and is never an
// error.
type PlacementProvider interface {
	Region(ctx context.Context) (string, bool)
	Zone(ctx context.Context) (string, bool)
}

// HealthStatus is the result of a health check. Region and Zone are nil when
// placement metadata could not be determined.
type HealthStatus struct {
	Status    string
	Version   string
	Region    *string
	Zone      *string
	Timestamp time.Time
}

// HealthService reports process liveness and deployment placement.
type HealthService struct {
	version   string
	placement PlacementProvider
}

func NewHealthService(version string, placement PlacementProvider) *HealthService {
	return &HealthService{version: version, placement: placement}
}

// Status always succeeds. Placement metadata is attached when the provider
// can supply it within its own timeout; any failure is reported as absence.
func (s *HealthService) Status(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    "healthy",
		Version:   s.version,
		Timestamp: time.Now().UTC(),
	}

	if s.placement != nil {
		if region, ok := s.placement.Region(ctx); ok {
			status.Region = &region
		}
		if zone, ok := s.placement.Zone(ctx); ok {
			status.Zone = &zone
		}
	}

	return status
}
