package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/jakechorley/duty-rota/pkg/core/scheduler"
	"github.com/jakechorley/duty-rota/pkg/report"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
	colorBold   = "\033[1m"
)

// levelColor highlights how good a slot's preference level was
func levelColor(level scheduler.PreferenceLevel) string {
	switch level {
	case scheduler.MostPreferred:
		return colorGreen
	case scheduler.Acceptable:
		return ""
	case scheduler.NotPreferred, scheduler.NotAvailable:
		return colorYellow
	default:
		return ""
	}
}

func slotLabel(user scheduler.UserID, level scheduler.PreferenceLevel) string {
	if user == "" {
		return colorRed + "—" + colorReset
	}
	label := string(user)
	if level.Valid() {
		label = fmt.Sprintf("%s (%s)", user, level)
	}
	if color := levelColor(level); color != "" {
		return color + label + colorReset
	}
	return label
}

// printSchedule writes one row per date. Carried entries are skipped.
func printSchedule(w io.Writer, entries []scheduler.Entry) {
	fmt.Fprintf(w, "%s%-12s  %-10s  %-36s  %-36s%s\n", colorBold, "Date", "Type", "CF1", "CF2", colorReset)
	fmt.Fprintln(w, strings.Repeat("-", 100))
	for _, e := range entries {
		if e.Carried {
			continue
		}
		fmt.Fprintf(w, "%-12s  %-10s  %-36s  %-36s\n",
			e.Date,
			e.Type,
			slotLabel(e.Primary, e.PrimaryLevel),
			slotLabel(e.Secondary, e.SecondaryLevel))
	}
	fmt.Fprintln(w)
}

// printBreakdown writes the per-caretaker duty counts
func printBreakdown(w io.Writer, loads []report.UserLoad) {
	fmt.Fprintf(w, "%s%-30s", colorBold, "Caretaker")
	for _, dayType := range scheduler.DayTypeOrder {
		fmt.Fprintf(w, "  %9s", dayType)
	}
	fmt.Fprintf(w, "  %9s%s\n", "Total", colorReset)

	for _, load := range loads {
		fmt.Fprintf(w, "%-30s", load.User)
		for _, dayType := range scheduler.DayTypeOrder {
			fmt.Fprintf(w, "  %9d", load.Counts[dayType])
		}
		fmt.Fprintf(w, "  %9d\n", load.Total)
	}
	fmt.Fprintln(w)
}

// printFairness writes the spread of duties per caretaker
func printFairness(w io.Writer, stats report.FairnessStats) {
	fmt.Fprintf(w, "%-10s  mean %5.2f  std-dev %5.2f  range %2.0f\n", "Total", stats.Total.Mean, stats.Total.StdDev, stats.Total.Range())
	for _, dayType := range scheduler.DayTypeOrder {
		s := stats.ByType[dayType]
		fmt.Fprintf(w, "%-10s  mean %5.2f  std-dev %5.2f  range %2.0f\n", dayType, s.Mean, s.StdDev, s.Range())
	}
	fmt.Fprintln(w)
}

// printPairs writes how often each level combination was used
func printPairs(w io.Writer, pairs []report.PairCount) {
	for _, p := range pairs {
		fmt.Fprintf(w, "  %-15s / %-15s  %3d\n", p.Pair.Primary, p.Pair.Secondary, p.Count)
	}
	fmt.Fprintln(w)
}

// periodArg returns the optional period ID argument
func periodArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}
