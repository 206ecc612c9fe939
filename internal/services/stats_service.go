package services

import (
	"context"
	"strings"
	"time"

	"github.com/vytor/killstats/internal/errors"
	"github.com/vytor/killstats/internal/logger"
	"github.com/vytor/killstats/internal/models"
	"github.com/vytor/killstats/internal/repository"
	"github.com/vytor/killstats/internal/stats"
	"github.com/vytor/killstats/internal/table"
)

const isoDate = "2006-01-02"

// StatsService builds the kill statistics dashboard
type StatsService interface {
	Dashboard(ctx context.Context, filter models.StatsFilter) (*models.Dashboard, error)
}

type statsService struct {
	worldRepo    repository.WorldRepository
	bossRepo     repository.BossRepository
	killRepo     repository.KillRepository
	uploadRepo   repository.UploadRepository
	defaultWorld string
	loc          *time.Location
	now          func() time.Time
}

// NewStatsService creates a new StatsService. "Today" is computed in loc.
func NewStatsService(
	worldRepo repository.WorldRepository,
	bossRepo repository.BossRepository,
	killRepo repository.KillRepository,
	uploadRepo repository.UploadRepository,
	defaultWorld string,
	loc *time.Location,
	now func() time.Time,
) StatsService {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &statsService{
		worldRepo:    worldRepo,
		bossRepo:     bossRepo,
		killRepo:     killRepo,
		uploadRepo:   uploadRepo,
		defaultWorld: defaultWorld,
		loc:          loc,
		now:          now,
	}
}

type dashboardQuery struct {
	asOf   time.Time
	status table.Status
	field  table.Field
	dir    table.Direction
}

func (s *statsService) parseFilter(filter models.StatsFilter) (dashboardQuery, error) {
	q := dashboardQuery{field: table.FieldLastKill, dir: table.Desc}

	if filter.AsOf == "" {
		q.asOf = s.now().In(s.loc)
	} else {
		t, err := time.Parse(isoDate, filter.AsOf)
		if err != nil {
			return q, errors.NewValidationError("as_of", "must be a YYYY-MM-DD date")
		}
		q.asOf = t
	}

	status, err := table.ParseStatus(filter.Status)
	if err != nil {
		return q, errors.NewValidationError("status", err.Error())
	}
	q.status = status

	if filter.SortBy != "" {
		f, err := table.ParseField(filter.SortBy)
		if err != nil {
			return q, errors.NewValidationError("sort", err.Error())
		}
		q.field = f
	}
	if filter.SortDir != "" {
		d, err := table.ParseDirection(filter.SortDir)
		if err != nil {
			return q, errors.NewValidationError("dir", err.Error())
		}
		q.dir = d
	}
	return q, nil
}

func (s *statsService) Dashboard(ctx context.Context, filter models.StatsFilter) (*models.Dashboard, error) {
	log := logger.FromContext(ctx).WithPrefix("stats")

	q, err := s.parseFilter(filter)
	if err != nil {
		return nil, err
	}

	worldName, err := s.resolveWorld(ctx, filter.World)
	if err != nil {
		log.Error("failed to resolve world: %v", err)
		return nil, errors.NewStorageError("failed to load boss data", err)
	}
	log = log.WithField("world", worldName)

	var lastUpdated *time.Time
	world, err := s.worldRepo.GetByName(ctx, worldName)
	if err != nil {
		log.Error("failed to load world: %v", err)
		return nil, errors.NewStorageError("failed to load boss data", err)
	}
	if world != nil {
		latest, err := s.uploadRepo.Latest(ctx, &world.ID)
		if err != nil {
			log.Error("failed to load latest upload: %v", err)
			return nil, errors.NewStorageError("failed to load boss data", err)
		}
		if latest != nil {
			ts := latest.UploadedAt
			lastUpdated = &ts
		}
	}

	bosses, err := s.bossRepo.List(ctx)
	if err != nil {
		log.Error("failed to list bosses: %v", err)
		return nil, errors.NewStorageError("failed to load boss data", err)
	}
	registry := make([]string, 0, len(bosses))
	for _, b := range bosses {
		registry = append(registry, b.Name)
	}

	records := []models.DailyKillRecord{}
	if world != nil {
		records, err = s.killRepo.List(ctx, models.KillFilter{World: worldName})
		if err != nil {
			log.Error("failed to list kills: %v", err)
			return nil, errors.NewStorageError("failed to load boss data", err)
		}
	}

	all, global, err := stats.Aggregate(records, q.asOf, stats.Options{
		Registry:    registry,
		World:       worldName,
		LastUpdated: lastUpdated,
	})
	if err != nil {
		log.Error("failed to aggregate kill records: %v", err)
		return nil, errors.NewInternalError(err)
	}

	rows := table.Filter(all, filter.Search)
	rows = table.FilterStatus(rows, q.status)
	rows = table.Sort(rows, q.field, q.dir)

	log.Debug("dashboard built: bosses=%d, shown=%d, killed_today=%d", len(all), len(rows), global.KilledToday)
	return &models.Dashboard{
		Global:  global,
		Summary: stats.Summarize(all),
		Bosses:  rows,
		Shown:   len(rows),
		Total:   len(all),
		AsOf:    q.asOf.Format(isoDate),
	}, nil
}

// resolveWorld picks the requested world, then the world of the newest upload,
// then the configured default.
func (s *statsService) resolveWorld(ctx context.Context, requested string) (string, error) {
	if w := strings.TrimSpace(requested); w != "" {
		return w, nil
	}
	latest, err := s.uploadRepo.Latest(ctx, nil)
	if err != nil {
		return "", err
	}
	if latest != nil && latest.World != "" {
		return latest.World, nil
	}
	return s.defaultWorld, nil
}
