package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/vytor/killstats/internal/models"
)

func writeTable(w io.Writer, global models.GlobalStats, summary models.SummaryStats, rows []models.BossStats, total int) error {
	fmt.Fprintf(w, "World: %s\n", global.World)
	fmt.Fprintf(w, "Bosses tracked: %d, killed today: %d\n", global.TotalBosses, global.KilledToday)
	fmt.Fprintf(w, "Active: %d, total kills: %d, avg kills: %.1f, expected spawns: %d\n\n",
		summary.ActiveBosses, summary.TotalKills, summary.AvgKills, summary.ExpectedSpawns)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "BOSS\tLAST KILL\tTODAY\tTOTAL\tAVG DAYS\tNEXT SPAWN\tDAYS")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\t%s\t%d\n",
			r.Boss, orDash(r.LastKill), r.KillsToday, r.TotalKills, intOrDash(r.AvgDays), orDash(r.NextSpawn), r.DaysSpawned)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\nShowing %d of %d bosses\n", len(rows), total)
	return err
}

func orDash(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

func intOrDash(n *int) string {
	if n == nil {
		return "-"
	}
	return strconv.Itoa(*n)
}
