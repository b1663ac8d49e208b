package cli

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/Nixie-Tech-LLC/solat/internal/jakim"
	"github.com/Nixie-Tech-LLC/solat/internal/prayer"
	"github.com/Nixie-Tech-LLC/solat/internal/zone"
)

// maxDays bounds a --from/--to request.
const maxDays = 62

func newTimesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "times",
		Short: "Fetch prayer times for a zone",
		Long: "Fetch JAKIM prayer times for one date (--date, default today) or an inclusive\n" +
			"range (--from and --to).\n\nExamples:\n  solatctl times --zone SGR01\n  solatctl times --zone WLY01 --from 2024-12-01 --to 2024-12-07",
		Args: cobra.NoArgs,
		RunE: runTimes,
	}

	f := cmd.Flags()
	f.String("zone", string(zone.Default), "JAKIM zone code")
	f.String("date", "", "Date as YYYY-MM-DD (default: today in Malaysia)")
	f.String("from", "", "Range start as YYYY-MM-DD")
	f.String("to", "", "Range end as YYYY-MM-DD")
	f.StringVar(&FlagBaseURL, "base-url", jakim.DefaultBaseURL, "Prayer time API base URL")
	f.Duration("timeout", jakim.DefaultTimeout, "Upstream request timeout")
	return cmd
}

func runTimes(cmd *cobra.Command, args []string) error {
	f := cmd.Flags()
	rawZone, _ := f.GetString("zone")
	date, _ := f.GetString("date")
	from, _ := f.GetString("from")
	to, _ := f.GetString("to")
	timeout, _ := f.GetDuration("timeout")

	z, err := zone.Parse(rawZone)
	if err != nil {
		return err
	}

	start, end, err := dateWindow(date, from, to, time.Now())
	if err != nil {
		return err
	}

	svc := prayer.NewService(jakim.NewClientWithTimeout(FlagBaseURL, timeout))
	schedules, err := svc.FetchRange(cmd.Context(), "", start, end, z)
	if err != nil {
		return err
	}

	if FlagJSON {
		return renderJSON(cmd.OutOrStdout(), schedules)
	}
	rows := make([]table.Row, 0, len(schedules))
	for _, s := range schedules {
		rows = append(rows, table.Row{s.Date, s.Fajr, s.Sunrise, s.Dhuhr, s.Asr, s.Maghrib, s.Isha})
	}
	info, _ := zone.Lookup(z)
	fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", info.Description, info.Code)
	renderTable(cmd.OutOrStdout(), table.Row{"Date", "Fajr", "Syuruk", "Zohor", "Asar", "Maghrib", "Isyak"}, rows)
	return nil
}

// dateWindow turns the --date/--from/--to flags into an inclusive range.
func dateWindow(date, from, to string, now time.Time) (time.Time, time.Time, error) {
	if date != "" && (from != "" || to != "") {
		return time.Time{}, time.Time{}, fmt.Errorf("--date cannot be combined with --from/--to")
	}
	if from == "" && to == "" {
		d := jakim.Today(now)
		if date != "" {
			var err error
			if d, err = prayer.ParseDate(date); err != nil {
				return time.Time{}, time.Time{}, err
			}
		}
		return d, d, nil
	}
	if from == "" || to == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("--from and --to must be given together")
	}

	start, err := prayer.ParseDate(from)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("--from: %w", err)
	}
	end, err := prayer.ParseDate(to)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("--to: %w", err)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("--to must not be before --from")
	}
	if n := len(prayer.DateRange(start, end)); n > maxDays {
		return time.Time{}, time.Time{}, fmt.Errorf("range spans %d days, at most %d allowed", n, maxDays)
	}
	return start, end, nil
}
