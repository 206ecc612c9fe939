package models

import "fmt"

// DailyKillRecord is the number of kills of one boss on one calendar day in one world.
// Date is always in ISO form (YYYY-MM-DD).
type DailyKillRecord struct {
	Boss  string `json:"boss"`
	Date  string `json:"date"`
	Kills int    `json:"kills"`
	World string `json:"world"`
}

type KillFilter struct {
	World string
	Boss  string
	From  string // inclusive ISO date
	To    string // inclusive ISO date
}

// IngestResult reports how many parsed records made it into storage.
type IngestResult struct {
	OK       bool     `json:"ok"`
	World    string   `json:"world"`
	Inserted int      `json:"inserted"`
	Total    int      `json:"total"`
	Errors   []string `json:"errors,omitempty"`
}

func (r *IngestResult) AddErrorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}
