package table_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/killstats/internal/models"
	"github.com/vytor/killstats/internal/table"
)

func strp(s string) *string { return &s }
func intp(i int) *int       { return &i }

func names(rows []models.BossStats) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Boss
	}
	return out
}

func fixture() []models.BossStats {
	return []models.BossStats{
		{Boss: "Ferumbras", LastKill: strp("2025-11-03"), KillsToday: 2, TotalKills: 3, AvgDays: intp(2), NextSpawn: strp("2025-11-05"), DaysSpawned: 2},
		{Boss: "Arthom the Hunter"},
		{Boss: "Zulazza", LastKill: strp("2025-11-04"), TotalKills: 4, AvgDays: intp(1), NextSpawn: strp("2025-11-05"), DaysSpawned: 3},
		{Boss: "Ghazbaran", LastKill: strp("2025-10-30"), TotalKills: 1, DaysSpawned: 1},
	}
}

func TestFilter(t *testing.T) {
	rows := fixture()

	assert.Equal(t, []string{"Ferumbras"}, names(table.Filter(rows, "FERUM")))
	assert.Equal(t, []string{"Arthom the Hunter"}, names(table.Filter(rows, " the ")))
	assert.Len(t, table.Filter(rows, ""), 4)
	assert.Empty(t, table.Filter(rows, "orshabaal"))
}

func TestFilterStatus(t *testing.T) {
	rows := fixture()

	tests := []struct {
		status   table.Status
		expected []string
	}{
		{table.StatusAll, []string{"Ferumbras", "Arthom the Hunter", "Zulazza", "Ghazbaran"}},
		{table.StatusKilled, []string{"Ferumbras"}},
		{table.StatusActive, []string{"Ferumbras", "Zulazza", "Ghazbaran"}},
		{table.StatusNever, []string{"Arthom the Hunter"}},
		{table.StatusExpected, []string{"Ferumbras", "Zulazza"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.expected, names(table.FilterStatus(rows, tt.status)))
		})
	}
}

func TestSort_UndefinedLastInBothDirections(t *testing.T) {
	rows := fixture()

	asc := table.Sort(rows, table.FieldAvgDays, table.Asc)
	assert.Equal(t, []string{"Zulazza", "Ferumbras", "Arthom the Hunter", "Ghazbaran"}, names(asc))

	desc := table.Sort(rows, table.FieldAvgDays, table.Desc)
	assert.Equal(t, []string{"Ferumbras", "Zulazza", "Arthom the Hunter", "Ghazbaran"}, names(desc))
}

func TestSort_LastKill(t *testing.T) {
	rows := fixture()

	desc := table.Sort(rows, table.FieldLastKill, table.Desc)
	assert.Equal(t, []string{"Zulazza", "Ferumbras", "Ghazbaran", "Arthom the Hunter"}, names(desc))

	asc := table.Sort(rows, table.FieldLastKill, table.Asc)
	assert.Equal(t, []string{"Ghazbaran", "Ferumbras", "Zulazza", "Arthom the Hunter"}, names(asc))
}

func TestSort_IsStableOnTies(t *testing.T) {
	rows := fixture()

	// Ferumbras and Zulazza share the same next spawn.
	asc := table.Sort(rows, table.FieldNextSpawn, table.Asc)
	assert.Equal(t, []string{"Ferumbras", "Zulazza", "Arthom the Hunter", "Ghazbaran"}, names(asc))
	desc := table.Sort(rows, table.FieldNextSpawn, table.Desc)
	assert.Equal(t, []string{"Ferumbras", "Zulazza", "Arthom the Hunter", "Ghazbaran"}, names(desc))
}

func TestSort_PlainFields(t *testing.T) {
	rows := fixture()

	assert.Equal(t, []string{"Arthom the Hunter", "Ferumbras", "Ghazbaran", "Zulazza"}, names(table.Sort(rows, table.FieldBoss, table.Asc)))
	assert.Equal(t, []string{"Zulazza", "Ferumbras", "Ghazbaran", "Arthom the Hunter"}, names(table.Sort(rows, table.FieldTotalKills, table.Desc)))
	assert.Equal(t, []string{"Arthom the Hunter", "Ghazbaran", "Ferumbras", "Zulazza"}, names(table.Sort(rows, table.FieldDaysSpawned, table.Asc)))
}

func TestSort_DoesNotModifyInput(t *testing.T) {
	rows := fixture()
	_ = table.Sort(rows, table.FieldBoss, table.Asc)
	assert.Equal(t, "Ferumbras", rows[0].Boss)
}

func TestParseField(t *testing.T) {
	for _, in := range []string{"lastKill", "last_kill", "LASTKILL"} {
		f, err := table.ParseField(in)
		require.NoError(t, err)
		assert.Equal(t, table.FieldLastKill, f)
	}
	_, err := table.ParseField("hp")
	assert.Error(t, err)
}

func TestParseDirection(t *testing.T) {
	d, err := table.ParseDirection("DESC")
	require.NoError(t, err)
	assert.Equal(t, table.Desc, d)
	assert.Equal(t, "desc", d.String())

	_, err = table.ParseDirection("sideways")
	assert.Error(t, err)
}

func TestParseStatus(t *testing.T) {
	s, err := table.ParseStatus("")
	require.NoError(t, err)
	assert.Equal(t, table.StatusAll, s)

	s, err = table.ParseStatus("Expected")
	require.NoError(t, err)
	assert.Equal(t, table.StatusExpected, s)

	_, err = table.ParseStatus("dead")
	assert.Error(t, err)
}
