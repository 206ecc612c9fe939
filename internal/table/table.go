package table

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/vytor/killstats/internal/models"
)

// Field names a sortable BossStats column.
type Field string

const (
	FieldBoss        Field = "boss"
	FieldLastKill    Field = "lastKill"
	FieldKillsToday  Field = "killsToday"
	FieldTotalKills  Field = "totalKills"
	FieldAvgDays     Field = "avgDays"
	FieldNextSpawn   Field = "nextSpawn"
	FieldDaysSpawned Field = "daysSpawned"
)

var fields = map[string]Field{
	"boss":        FieldBoss,
	"lastkill":    FieldLastKill,
	"killstoday":  FieldKillsToday,
	"totalkills":  FieldTotalKills,
	"avgdays":     FieldAvgDays,
	"nextspawn":   FieldNextSpawn,
	"daysspawned": FieldDaysSpawned,
}

// ParseField accepts camelCase or snake_case column names, case-insensitively.
func ParseField(s string) (Field, error) {
	key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "_", ""))
	if f, ok := fields[key]; ok {
		return f, nil
	}
	return "", fmt.Errorf("unknown sort field %q", s)
}

type Direction int

const (
	Asc Direction = iota
	Desc
)

func (d Direction) String() string {
	if d == Desc {
		return "desc"
	}
	return "asc"
}

func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "ascending":
		return Asc, nil
	case "desc", "descending":
		return Desc, nil
	default:
		return Asc, fmt.Errorf("unknown sort direction %q", s)
	}
}

// Status narrows the rows shown on the dashboard.
type Status string

const (
	StatusAll      Status = "all"
	StatusKilled   Status = "killed"
	StatusActive   Status = "active"
	StatusNever    Status = "never"
	StatusExpected Status = "expected"
)

func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToLower(strings.TrimSpace(s))); st {
	case StatusAll, StatusKilled, StatusActive, StatusNever, StatusExpected:
		return st, nil
	case "":
		return StatusAll, nil
	default:
		return "", fmt.Errorf("unknown status %q", s)
	}
}

// Filter keeps rows whose boss name contains query, ignoring case.
// An empty query keeps every row. The input slice is not modified.
func Filter(rows []models.BossStats, query string) []models.BossStats {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]models.BossStats, 0, len(rows))
	for _, r := range rows {
		if q == "" || strings.Contains(strings.ToLower(r.Boss), q) {
			out = append(out, r)
		}
	}
	return out
}

func FilterStatus(rows []models.BossStats, status Status) []models.BossStats {
	out := make([]models.BossStats, 0, len(rows))
	for _, r := range rows {
		if matchStatus(r, status) {
			out = append(out, r)
		}
	}
	return out
}

func matchStatus(r models.BossStats, status Status) bool {
	switch status {
	case StatusKilled:
		return r.KillsToday > 0
	case StatusActive:
		return r.TotalKills > 0
	case StatusNever:
		return r.TotalKills == 0
	case StatusExpected:
		return r.NextSpawn != nil
	default:
		return true
	}
}

// Sort returns a sorted copy of rows. Rows whose field is undefined come last in
// both directions; ties keep their input order.
func Sort(rows []models.BossStats, field Field, dir Direction) []models.BossStats {
	out := slices.Clone(rows)
	slices.SortStableFunc(out, func(a, b models.BossStats) int {
		return compare(a, b, field, dir)
	})
	return out
}

func compare(a, b models.BossStats, field Field, dir Direction) int {
	var c int
	switch field {
	case FieldBoss:
		c = cmp.Compare(a.Boss, b.Boss)
	case FieldKillsToday:
		c = cmp.Compare(a.KillsToday, b.KillsToday)
	case FieldTotalKills:
		c = cmp.Compare(a.TotalKills, b.TotalKills)
	case FieldDaysSpawned:
		c = cmp.Compare(a.DaysSpawned, b.DaysSpawned)
	case FieldLastKill:
		return compareOptional(a.LastKill, b.LastKill, dir)
	case FieldNextSpawn:
		return compareOptional(a.NextSpawn, b.NextSpawn, dir)
	case FieldAvgDays:
		return compareOptional(a.AvgDays, b.AvgDays, dir)
	}
	if dir == Desc {
		return -c
	}
	return c
}

func compareOptional[T cmp.Ordered](a, b *T, dir Direction) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	c := cmp.Compare(*a, *b)
	if dir == Desc {
		return -c
	}
	return c
}
