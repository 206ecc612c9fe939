package models

import "time"

// BossStats is derived from every kill record of a single boss.
// LastKill, AvgDays and NextSpawn are nil when undefined.
type BossStats struct {
	Boss        string  `json:"boss"`
	LastKill    *string `json:"last_kill,omitempty"`
	KillsToday  int     `json:"kills_today"`
	TotalKills  int     `json:"total_kills"`
	AvgDays     *int    `json:"avg_days,omitempty"`
	NextSpawn   *string `json:"next_spawn,omitempty"`
	DaysSpawned int     `json:"days_spawned"`
}

type GlobalStats struct {
	TotalBosses int        `json:"total_bosses"`
	KilledToday int        `json:"killed_today"`
	World       string     `json:"world"`
	LastUpdated *time.Time `json:"last_updated"`
}

type SummaryStats struct {
	ActiveBosses   int     `json:"active_bosses"`
	TotalKills     int     `json:"total_kills"`
	AvgKills       float64 `json:"avg_kills"`
	ExpectedSpawns int     `json:"expected_spawns"`
}

// StatsFilter carries the dashboard query as received from the caller.
// Empty fields fall back to defaults.
type StatsFilter struct {
	World   string
	AsOf    string
	Search  string
	Status  string
	SortBy  string
	SortDir string
}

type Dashboard struct {
	Global  GlobalStats  `json:"global"`
	Summary SummaryStats `json:"summary"`
	Bosses  []BossStats  `json:"bosses"`
	Shown   int          `json:"shown"`
	Total   int          `json:"total"`
	AsOf    string       `json:"as_of"`
}
