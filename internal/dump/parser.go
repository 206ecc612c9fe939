package dump

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/vytor/killstats/internal/models"
)

// UnknownWorld is reported when a dump has no "<Title> - <World>" header.
const UnknownWorld = "Unknown"

const (
	blockDelimiter = "---"
	bossPrefix     = "Boss:"
	historyPrefix  = "History:"
	noHistory      = "None"
	isoDate        = "2006-01-02"
)

// headerRe needs whitespace before the dash so hyphenated titles stay intact.
var headerRe = regexp.MustCompile(`^(.+?)\s+-\s*(.*)$`)

var entryRe = regexp.MustCompile(`^(\d{2})/(\d{2})/(\d{4})\s*\((\d+)x\)$`)

// Result is the outcome of parsing one dump.
type Result struct {
	Title   string                   `json:"title,omitempty"`
	World   string                   `json:"world"`
	Records []models.DailyKillRecord `json:"records"`
	// Bosses lists every boss block that carried a History line, including
	// bosses whose history is "None".
	Bosses []string `json:"bosses"`
}

// Parse extracts the world name and the per-boss daily kill records from a raw dump.
// It never fails: unrecognizable blocks and entries are skipped.
func Parse(raw string) Result {
	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")

	res := Result{
		World:   UnknownWorld,
		Records: []models.DailyKillRecord{},
		Bosses:  []string{},
	}
	res.Title, res.World = parseHeader(lines)

	for _, block := range splitBlocks(lines) {
		boss, history, ok := blockFields(block)
		if !ok {
			continue
		}
		res.Bosses = append(res.Bosses, boss)
		if strings.EqualFold(history, noHistory) {
			continue
		}
		for _, entry := range strings.Split(history, ",") {
			date, kills, ok := parseEntry(strings.TrimSpace(entry))
			if !ok {
				continue
			}
			res.Records = append(res.Records, models.DailyKillRecord{
				Boss:  boss,
				Date:  date,
				Kills: kills,
				World: res.World,
			})
		}
	}
	return res
}

// parseHeader looks for the first "<Title> - <World>" line ahead of the first boss block.
func parseHeader(lines []string) (title, world string) {
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, bossPrefix) {
			break
		}
		m := headerRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		title = m[1]
		world = strings.TrimSpace(m[2])
		if world == "" {
			world = UnknownWorld
		}
		return title, world
	}
	return "", UnknownWorld
}

func splitBlocks(lines []string) [][]string {
	var blocks [][]string
	var cur []string
	for _, line := range lines {
		if strings.TrimSpace(line) == blockDelimiter {
			blocks = append(blocks, cur)
			cur = nil
			continue
		}
		cur = append(cur, line)
	}
	if len(cur) > 0 {
		blocks = append(blocks, cur)
	}
	return blocks
}

// blockFields returns the boss name and raw history value of a block.
// ok is false when either line is missing or empty.
func blockFields(block []string) (boss, history string, ok bool) {
	var haveBoss, haveHistory bool
	for _, line := range block {
		line = strings.TrimSpace(line)
		switch {
		case !haveBoss && strings.HasPrefix(line, bossPrefix):
			boss = strings.TrimSpace(strings.TrimPrefix(line, bossPrefix))
			haveBoss = true
		case !haveHistory && strings.HasPrefix(line, historyPrefix):
			history = strings.TrimSpace(strings.TrimPrefix(line, historyPrefix))
			haveHistory = true
		}
	}
	return boss, history, boss != "" && history != ""
}

// parseEntry converts "DD/MM/YYYY (Nx)" into an ISO date and a kill count.
func parseEntry(entry string) (string, int, bool) {
	m := entryRe.FindStringSubmatch(entry)
	if m == nil {
		return "", 0, false
	}
	date := m[3] + "-" + m[2] + "-" + m[1]
	if _, err := time.Parse(isoDate, date); err != nil {
		return "", 0, false
	}
	kills, err := strconv.Atoi(m[4])
	if err != nil {
		return "", 0, false
	}
	return date, kills, true
}
