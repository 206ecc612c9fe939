package stats

import (
	"math"

	"github.com/vytor/killstats/internal/models"
)

// Summarize derives the dashboard summary cards from computed boss rows.
func Summarize(bosses []models.BossStats) models.SummaryStats {
	var sum models.SummaryStats
	for _, b := range bosses {
		sum.TotalKills += b.TotalKills
		if b.TotalKills > 0 {
			sum.ActiveBosses++
		}
		if b.NextSpawn != nil {
			sum.ExpectedSpawns++
		}
	}
	if sum.ActiveBosses > 0 {
		avg := float64(sum.TotalKills) / float64(sum.ActiveBosses)
		sum.AvgKills = math.Round(avg*10) / 10
	}
	return sum
}
