// Package observability provides formatted terminal output for the CLI.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/startup-radar/internal/catalog"
	"github.com/jonathan/startup-radar/internal/stage"
	"github.com/jonathan/startup-radar/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 72
	// descriptionWidth bounds the description excerpt shown per startup
	descriptionWidth = 60
)

// Printer handles formatted CLI output
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens s to width runes, ending in "..." when cut.
func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	inner := boxWidth - 4
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, inner))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, inner), inner))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// pad right-pads s with spaces to width runes.
func pad(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// ResultSummary is the "Showing N of M companies" line.
func ResultSummary(r catalog.Result) string {
	return fmt.Sprintf("Showing %d of %d companies", r.Matched, r.Total)
}

// PrintResults lists the matched startups followed by the result summary.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintResults(r catalog.Result, state catalog.State) {
	if active := describeState(state); active != "" {
		fmt.Fprintf(p.out, "Filters: %s\n\n", active)
	}

	if len(r.Startups) == 0 {
		fmt.Fprintln(p.out, "No companies match the current filters.")
	}
	for _, s := range r.Startups {
		p.printStartupLine(s)
	}

	fmt.Fprintf(p.out, "\n%s\n", ResultSummary(r))
}

//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printStartupLine(s types.Startup) {
	label := stage.Parse(s.Stage).String()
	fmt.Fprintf(p.out, "#%-5d %s  [%s]\n", s.ID, s.Name, label)

	var details []string
	for _, v := range []string{s.Location, s.CompanySize, s.Industry} {
		if v != "" {
			details = append(details, v)
		}
	}
	if len(details) > 0 {
		fmt.Fprintf(p.out, "       %s\n", strings.Join(details, " · "))
	}
	if s.Description != "" {
		fmt.Fprintf(p.out, "       %s\n", truncate(s.Description, descriptionWidth))
	}
}

// describeState renders the active query and selections, or "" when none.
func describeState(state catalog.State) string {
	var parts []string
	if state.Query != "" {
		parts = append(parts, fmt.Sprintf("query=%q", state.Query))
	}
	for _, facet := range types.Facets() {
		if vals := state.Filters.Selected(facet); len(vals) > 0 {
			parts = append(parts, fmt.Sprintf("%s=%s", facet, strings.Join(vals, "|")))
		}
	}
	return strings.Join(parts, " ")
}

// PrintAvailableFilters outputs the selectable values for each facet.
func (p *Printer) PrintAvailableFilters(f types.AvailableFilters) {
	var sb strings.Builder
	writeList := func(name string, values []string) {
		sb.WriteString(fmt.Sprintf("%s (%d):\n", name, len(values)))
		if len(values) == 0 {
			sb.WriteString("  (none)\n")
		}
		for _, v := range values {
			sb.WriteString(fmt.Sprintf("  • %s\n", v))
		}
	}
	writeList("Locations", f.Locations)
	writeList("Stages", f.Stages)
	writeList("Company sizes", f.CompanySizes)

	p.printBox("AVAILABLE FILTERS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintStats outputs the directory summary.
func (p *Printer) PrintStats(st catalog.Stats) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Startups tracked:  %d\n", st.StartupsTracked))
	sb.WriteString(fmt.Sprintf("Total funding:     $%.1fM\n", st.TotalFundingMillion))
	sb.WriteString(fmt.Sprintf("Industries:        %d\n", st.Industries))

	if len(st.ByStage) > 0 {
		sb.WriteString("\nBy stage:\n")
		labels := make([]string, 0, len(st.ByStage))
		for label := range st.ByStage {
			labels = append(labels, label)
		}
		sort.SliceStable(labels, func(i, j int) bool {
			return stage.Compare(labels[i], labels[j]) < 0
		})
		for _, label := range labels {
			sb.WriteString(fmt.Sprintf("  %-14s %d\n", label, st.ByStage[label]))
		}
	}

	p.printBox("STARTUP RADAR", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintStartup outputs every populated field of one record.
func (p *Printer) PrintStartup(s *types.Startup) {
	if s == nil {
		return
	}

	var sb strings.Builder
	field := func(name, value string) {
		if value != "" {
			sb.WriteString(fmt.Sprintf("%-10s %s\n", name+":", value))
		}
	}
	field("Stage", stage.Parse(s.Stage).String())
	field("Raw stage", s.Stage)
	field("Location", s.Location)
	field("Size", s.CompanySize)
	field("Industry", s.Industry)
	field("Work type", s.WorkType)
	field("Website", s.WebsiteURL)
	field("Jobs", s.JobsURL)
	if len(s.Investors) > 0 {
		field("Investors", strings.Join(s.Investors, ", "))
	}
	if s.Description != "" {
		sb.WriteString("\n")
		sb.WriteString(s.Description)
	}

	p.printBox(s.Name, strings.TrimSuffix(sb.String(), "\n"))
}
