package stats_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/killstats/internal/models"
	"github.com/vytor/killstats/internal/stats"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func rec(boss, date string, kills int) models.DailyKillRecord {
	return models.DailyKillRecord{Boss: boss, Date: date, Kills: kills, World: "Lunarian"}
}

func TestAggregate_FerumbrasExample(t *testing.T) {
	records := []models.DailyKillRecord{
		rec("Ferumbras", "2025-11-01", 1),
		rec("Ferumbras", "2025-11-03", 2),
	}

	bosses, global, err := stats.Aggregate(records, day("2025-11-03"), stats.Options{World: "Lunarian"})
	require.NoError(t, err)
	require.Len(t, bosses, 1)

	b := bosses[0]
	assert.Equal(t, "Ferumbras", b.Boss)
	assert.Equal(t, 3, b.TotalKills)
	assert.Equal(t, 2, b.KillsToday)
	assert.Equal(t, 2, b.DaysSpawned)
	require.NotNil(t, b.LastKill)
	assert.Equal(t, "2025-11-03", *b.LastKill)
	require.NotNil(t, b.AvgDays)
	assert.Equal(t, 2, *b.AvgDays)
	require.NotNil(t, b.NextSpawn)
	assert.Equal(t, "2025-11-05", *b.NextSpawn)

	assert.Equal(t, 1, global.TotalBosses)
	assert.Equal(t, 1, global.KilledToday)
	assert.Equal(t, "Lunarian", global.World)
}

func TestAggregate_SingleSpawnDayHasNoAverage(t *testing.T) {
	records := []models.DailyKillRecord{
		rec("Orshabaal", "2025-11-01", 1),
		rec("Orshabaal", "2025-11-01", 2),
	}

	bosses, _, err := stats.Aggregate(records, day("2025-11-05"), stats.Options{})
	require.NoError(t, err)
	require.Len(t, bosses, 1)

	b := bosses[0]
	assert.Equal(t, 3, b.TotalKills, "same-day duplicates both count")
	assert.Equal(t, 1, b.DaysSpawned)
	require.NotNil(t, b.LastKill)
	assert.Nil(t, b.AvgDays)
	assert.Nil(t, b.NextSpawn)
}

func TestAggregate_RegistryBossWithoutRecords(t *testing.T) {
	bosses, global, err := stats.Aggregate(nil, day("2025-11-03"), stats.Options{
		Registry: []string{"Arthom the Hunter"},
	})
	require.NoError(t, err)
	require.Len(t, bosses, 1)

	b := bosses[0]
	assert.Equal(t, "Arthom the Hunter", b.Boss)
	assert.Zero(t, b.TotalKills)
	assert.Zero(t, b.DaysSpawned)
	assert.Nil(t, b.LastKill)
	assert.Nil(t, b.AvgDays)
	assert.Nil(t, b.NextSpawn)
	assert.Equal(t, 1, global.TotalBosses)
	assert.Zero(t, global.KilledToday)
}

func TestAggregate_TotalBossesIsRegistryUnionRecords(t *testing.T) {
	records := []models.DailyKillRecord{rec("Zulazza", "2025-11-01", 1)}

	bosses, global, err := stats.Aggregate(records, day("2025-11-01"), stats.Options{
		Registry: []string{"Ferumbras", "Zulazza", "Ferumbras", ""},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, global.TotalBosses)
	require.Len(t, bosses, 2)
	assert.Equal(t, "Ferumbras", bosses[0].Boss)
	assert.Equal(t, "Zulazza", bosses[1].Boss)
}

func TestAggregate_GroupingIsCaseSensitive(t *testing.T) {
	records := []models.DailyKillRecord{
		rec("ferumbras", "2025-11-01", 1),
		rec("Ferumbras", "2025-11-01", 1),
	}
	bosses, _, err := stats.Aggregate(records, day("2025-11-01"), stats.Options{})
	require.NoError(t, err)
	assert.Len(t, bosses, 2)
}

func TestAggregate_AverageRoundsHalfUp(t *testing.T) {
	// gaps 1 and 2 days: mean 1.5 rounds to 2
	records := []models.DailyKillRecord{
		rec("Morgaroth", "2025-11-01", 1),
		rec("Morgaroth", "2025-11-02", 1),
		rec("Morgaroth", "2025-11-04", 1),
	}
	bosses, _, err := stats.Aggregate(records, day("2025-11-04"), stats.Options{})
	require.NoError(t, err)
	require.NotNil(t, bosses[0].AvgDays)
	assert.Equal(t, 2, *bosses[0].AvgDays)
	assert.Equal(t, "2025-11-06", *bosses[0].NextSpawn)
}

func TestAggregate_AverageRoundsDown(t *testing.T) {
	// five gaps summing to 6 days: mean 1.2 rounds to 1
	records := []models.DailyKillRecord{
		rec("Morgaroth", "2025-11-04", 1),
		rec("Morgaroth", "2025-11-01", 1),
		rec("Morgaroth", "2025-11-02", 1),
		rec("Morgaroth", "2025-11-03", 1),
		rec("Morgaroth", "2025-11-05", 1),
		rec("Morgaroth", "2025-11-07", 1),
	}
	bosses, _, err := stats.Aggregate(records, day("2025-11-07"), stats.Options{})
	require.NoError(t, err)
	require.NotNil(t, bosses[0].AvgDays)
	assert.Equal(t, 1, *bosses[0].AvgDays)
	assert.Equal(t, "2025-11-07", *bosses[0].LastKill)
	assert.Equal(t, "2025-11-08", *bosses[0].NextSpawn)
}

func TestAggregate_CrossesMonthAndLeapDay(t *testing.T) {
	records := []models.DailyKillRecord{
		rec("Ghazbaran", "2024-02-27", 1),
		rec("Ghazbaran", "2024-03-01", 1),
	}
	bosses, _, err := stats.Aggregate(records, day("2024-03-01"), stats.Options{})
	require.NoError(t, err)
	assert.Equal(t, 3, *bosses[0].AvgDays)
	assert.Equal(t, "2024-03-04", *bosses[0].NextSpawn)
}

func TestAggregate_GapLongerThanDurationRange(t *testing.T) {
	records := []models.DailyKillRecord{
		rec("Ghazbaran", "1500-01-01", 1),
		rec("Ghazbaran", "2000-01-01", 1),
	}

	bosses, _, err := stats.Aggregate(records, day("2000-01-01"), stats.Options{})
	require.NoError(t, err)
	require.Len(t, bosses, 1)
	require.NotNil(t, bosses[0].AvgDays)
	assert.Equal(t, 182621, *bosses[0].AvgDays)
	require.NotNil(t, bosses[0].NextSpawn)
	assert.Equal(t, "2499-12-31", *bosses[0].NextSpawn)
}

func TestAggregate_ChangingAsOfOnlyAffectsToday(t *testing.T) {
	records := []models.DailyKillRecord{
		rec("Ferumbras", "2025-11-01", 1),
		rec("Ferumbras", "2025-11-03", 2),
	}

	_, onDay, err := stats.Aggregate(records, day("2025-11-03"), stats.Options{})
	require.NoError(t, err)
	bosses, later, err := stats.Aggregate(records, day("2025-12-01"), stats.Options{})
	require.NoError(t, err)

	assert.Equal(t, 1, onDay.KilledToday)
	assert.Zero(t, later.KilledToday)
	assert.Zero(t, bosses[0].KillsToday)
	assert.Equal(t, 3, bosses[0].TotalKills)
}

func TestAggregate_Deterministic(t *testing.T) {
	records := []models.DailyKillRecord{
		rec("Zulazza", "2025-11-02", 1),
		rec("Ferumbras", "2025-11-01", 1),
		rec("Ferumbras", "2025-11-03", 2),
	}
	opts := stats.Options{Registry: []string{"Arthom the Hunter"}, World: "Lunarian"}

	a1, g1, err := stats.Aggregate(records, day("2025-11-03"), opts)
	require.NoError(t, err)
	a2, g2, err := stats.Aggregate(records, day("2025-11-03"), opts)
	require.NoError(t, err)

	assert.Equal(t, a1, a2)
	assert.Equal(t, g1, g2)
	assert.Equal(t, []string{"Arthom the Hunter", "Ferumbras", "Zulazza"},
		[]string{a1[0].Boss, a1[1].Boss, a1[2].Boss})
}

func TestAggregate_ContractViolations(t *testing.T) {
	tests := []struct {
		name   string
		record models.DailyKillRecord
	}{
		{"negative kills", rec("Ferumbras", "2025-11-01", -1)},
		{"empty boss", rec("", "2025-11-01", 1)},
		{"bad date", rec("Ferumbras", "01/11/2025", 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := stats.Aggregate([]models.DailyKillRecord{tt.record}, day("2025-11-01"), stats.Options{})
			require.Error(t, err)
			assert.ErrorIs(t, err, stats.ErrInvalidRecord)
		})
	}
}

func TestAggregate_PassesLastUpdated(t *testing.T) {
	ts := time.Date(2025, 11, 3, 10, 25, 24, 0, time.UTC)
	_, global, err := stats.Aggregate(nil, day("2025-11-03"), stats.Options{LastUpdated: &ts})
	require.NoError(t, err)
	require.NotNil(t, global.LastUpdated)
	assert.True(t, ts.Equal(*global.LastUpdated))
	assert.Zero(t, global.TotalBosses)
}

func TestSummarize(t *testing.T) {
	next := "2025-11-05"
	bosses := []models.BossStats{
		{Boss: "A", TotalKills: 3, NextSpawn: &next},
		{Boss: "B", TotalKills: 4},
		{Boss: "C", TotalKills: 0},
	}

	sum := stats.Summarize(bosses)
	assert.Equal(t, 2, sum.ActiveBosses)
	assert.Equal(t, 7, sum.TotalKills)
	assert.Equal(t, 3.5, sum.AvgKills)
	assert.Equal(t, 1, sum.ExpectedSpawns)
}

func TestSummarize_Empty(t *testing.T) {
	sum := stats.Summarize(nil)
	assert.Zero(t, sum.AvgKills)
	assert.Zero(t, sum.ActiveBosses)
}
