package stats

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/vytor/killstats/internal/models"
)

const (
	isoDate       = "2006-01-02"
	secondsPerDay = 24 * 60 * 60
)

// ErrInvalidRecord is wrapped by Aggregate when a record breaks the record contract.
var ErrInvalidRecord = errors.New("invalid kill record")

// Options carries the inputs of Aggregate that do not come from the records.
type Options struct {
	// Registry names every known boss, including bosses never killed.
	Registry    []string
	World       string
	LastUpdated *time.Time
}

type accumulator struct {
	total int
	today int
	days  map[string]struct{}
}

// Aggregate computes per-boss statistics and the global summary relative to asOf.
// Bosses are returned ordered by name. The result depends only on the arguments.
func Aggregate(records []models.DailyKillRecord, asOf time.Time, opts Options) ([]models.BossStats, models.GlobalStats, error) {
	today := asOf.Format(isoDate)
	byBoss := make(map[string]*accumulator, len(opts.Registry))

	for _, name := range opts.Registry {
		if name == "" {
			continue
		}
		if _, ok := byBoss[name]; !ok {
			byBoss[name] = &accumulator{days: map[string]struct{}{}}
		}
	}

	for i, r := range records {
		if err := validate(r); err != nil {
			return nil, models.GlobalStats{}, fmt.Errorf("record %d: %w", i, err)
		}
		acc, ok := byBoss[r.Boss]
		if !ok {
			acc = &accumulator{days: map[string]struct{}{}}
			byBoss[r.Boss] = acc
		}
		acc.total += r.Kills
		if r.Date == today {
			acc.today += r.Kills
		}
		acc.days[r.Date] = struct{}{}
	}

	names := make([]string, 0, len(byBoss))
	for name := range byBoss {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]models.BossStats, 0, len(names))
	killedToday := 0
	for _, name := range names {
		s := bossStats(name, byBoss[name])
		if s.KillsToday > 0 {
			killedToday++
		}
		out = append(out, s)
	}

	global := models.GlobalStats{
		TotalBosses: len(names),
		KilledToday: killedToday,
		World:       opts.World,
		LastUpdated: opts.LastUpdated,
	}
	return out, global, nil
}

func validate(r models.DailyKillRecord) error {
	if r.Boss == "" {
		return fmt.Errorf("%w: empty boss name", ErrInvalidRecord)
	}
	if r.Kills < 0 {
		return fmt.Errorf("%w: negative kills %d for %s on %s", ErrInvalidRecord, r.Kills, r.Boss, r.Date)
	}
	if _, err := time.Parse(isoDate, r.Date); err != nil {
		return fmt.Errorf("%w: date %q for %s is not YYYY-MM-DD", ErrInvalidRecord, r.Date, r.Boss)
	}
	return nil
}

func bossStats(name string, acc *accumulator) models.BossStats {
	s := models.BossStats{
		Boss:        name,
		KillsToday:  acc.today,
		TotalKills:  acc.total,
		DaysSpawned: len(acc.days),
	}
	if len(acc.days) == 0 {
		return s
	}

	days := make([]string, 0, len(acc.days))
	for d := range acc.days {
		days = append(days, d)
	}
	sort.Strings(days)

	last := days[len(days)-1]
	s.LastKill = &last
	if len(days) < 2 {
		return s
	}

	avg := averageGap(days)
	s.AvgDays = &avg

	lastDay, _ := time.Parse(isoDate, last)
	next := lastDay.AddDate(0, 0, avg).Format(isoDate)
	s.NextSpawn = &next
	return s
}

// averageGap returns the mean gap in whole days between consecutive sorted days,
// rounded half up. days must hold at least two valid ISO dates.
func averageGap(days []string) int {
	sum := 0
	prev, _ := time.Parse(isoDate, days[0])
	for _, d := range days[1:] {
		cur, _ := time.Parse(isoDate, d)
		sum += int((cur.Unix() - prev.Unix()) / secondsPerDay)
		prev = cur
	}
	mean := float64(sum) / float64(len(days)-1)
	return int(math.Floor(mean + 0.5))
}
