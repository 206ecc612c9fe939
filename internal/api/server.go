package api

import (
	"context"
	"time"

	"github.com/vytor/killstats/internal/services"
)

// ReadinessChecker reports whether the storage backend can serve requests.
type ReadinessChecker interface {
	Ready(ctx context.Context) error
}

type Server struct {
	IngestService   services.IngestService
	DumpService     services.DumpService
	StatsService    services.StatsService
	RegistryService services.RegistryService
	Readiness       ReadinessChecker

	CORSAllowOrigins  []string
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration
	MaxDumpBytes      int64
}
