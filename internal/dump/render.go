package dump

import (
	"fmt"
	"strings"
	"time"

	"github.com/vytor/killstats/internal/models"
)

// DefaultTitle is used in rendered headers when a dump has no title of its own.
const DefaultTitle = "RubinOT Boss Kill Tracker"

// DefaultBoss is the single placeholder block of a freshly synthesized dump.
const DefaultBoss = "Arthom the Hunter"

const separator = "============================================================"

// FormatEntry renders a record as a history entry, "DD/MM/YYYY (Nx)".
// It returns an empty string when the record date is not an ISO date.
func FormatEntry(r models.DailyKillRecord) string {
	d, err := time.Parse(isoDate, r.Date)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%s (%dx)", d.Format("02/01/2006"), r.Kills)
}

// Render writes a parse result back in dump form. Blocks follow res.Bosses, with
// bosses that only appear in res.Records appended in first-seen order.
// Parsing the output yields the same (boss, date, kills) records grouped by boss.
func Render(res Result, updatedAt time.Time) string {
	title := res.Title
	if title == "" {
		title = DefaultTitle
	}
	world := res.World
	if world == "" {
		world = UnknownWorld
	}

	byBoss := make(map[string][]models.DailyKillRecord)
	order := make([]string, 0, len(res.Bosses))
	seen := make(map[string]bool, len(res.Bosses))
	for _, b := range res.Bosses {
		if !seen[b] {
			seen[b] = true
			order = append(order, b)
		}
	}
	for _, r := range res.Records {
		if !seen[r.Boss] {
			seen[r.Boss] = true
			order = append(order, r.Boss)
		}
		byBoss[r.Boss] = append(byBoss[r.Boss], r)
	}

	var sb strings.Builder
	sb.WriteString(separator + "\n")
	fmt.Fprintf(&sb, "%s - %s\n", title, world)
	fmt.Fprintf(&sb, "Last Updated: %s\n", updatedAt.Format("02/01/2006, 15:04:05"))
	sb.WriteString(separator + "\n")
	fmt.Fprintf(&sb, "Total Bosses Tracked: %d\n", len(order))
	sb.WriteString(separator + "\n")

	for _, boss := range order {
		records := byBoss[boss]
		days := make(map[string]bool, len(records))
		total := 0
		entries := make([]string, 0, len(records))
		for _, r := range records {
			days[r.Date] = true
			total += r.Kills
			if e := FormatEntry(r); e != "" {
				entries = append(entries, e)
			}
		}
		history := noHistory
		if len(entries) > 0 {
			history = strings.Join(entries, ", ")
		}

		sb.WriteString("\n")
		fmt.Fprintf(&sb, "%s %s\n", bossPrefix, boss)
		fmt.Fprintf(&sb, "Total Days Spawned: %d\n", len(days))
		fmt.Fprintf(&sb, "Total Kills: %d\n", total)
		fmt.Fprintf(&sb, "%s %s\n", historyPrefix, history)
		sb.WriteString(blockDelimiter)
	}
	return sb.String()
}

// Default synthesizes the empty dump served before anything has been uploaded.
func Default(world string, at time.Time) string {
	return Render(Result{
		Title:  DefaultTitle,
		World:  world,
		Bosses: []string{DefaultBoss},
	}, at)
}
