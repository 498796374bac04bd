// Package observability provides logging setup and formatted output for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-builder/internal/corpus"
	"github.com/jonathan/resume-builder/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "..."
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// moreLine reports how many items were not shown
func moreLine(total int) string {
	if total > maxItemsToShow {
		return fmt.Sprintf("  ... and %d more\n", total-maxItemsToShow)
	}
	return ""
}

// dateRange renders start and end as "MM/YYYY - MM/YYYY", omitting unknown sides
func dateRange(start, end types.MonthYear, current bool) string {
	s, e := monthYear(start), monthYear(end)
	if current {
		e = "Present"
	}
	switch {
	case s == "" && e == "":
		return ""
	case s == "":
		return e
	case e == "":
		return s
	default:
		return s + " - " + e
	}
}

func monthYear(m types.MonthYear) string {
	if m.Year == "" {
		return ""
	}
	if m.Month == "" {
		return m.Year
	}
	return m.Month + "/" + m.Year
}

// PrintSources outputs which documents went into the corpus and which failed extraction.
func (p *Printer) PrintSources(sources []corpus.Source, excluded []types.Document) {
	if len(sources) == 0 && len(excluded) == 0 {
		return
	}

	var sb strings.Builder
	for _, s := range sources {
		status := fmt.Sprintf("%d chars", s.Characters)
		if s.Failed {
			status = "FAILED: " + s.Error
		}
		sb.WriteString(fmt.Sprintf("• %s (%s)\n", s.DocumentID, status))
	}
	for _, d := range excluded {
		sb.WriteString(fmt.Sprintf("✗ %s excluded (%s)\n", d.ID, d.Category))
	}

	p.printBox("DOCUMENTS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintContact outputs the extracted contact information.
func (p *Printer) PrintContact(c types.ContactInformation) {
	var sb strings.Builder
	name := c.FullName
	if name == "" {
		name = "(not found)"
	}
	sb.WriteString(fmt.Sprintf("Name:    %s\n", name))
	sb.WriteString(fmt.Sprintf("Emails:  %s\n", strings.Join(c.Email, ", ")))
	sb.WriteString(fmt.Sprintf("Phones:  %s", strings.Join(c.Phones, ", ")))

	p.printBox("CONTACT INFORMATION", sb.String())
}

// PrintSkills outputs the extracted skills. When none were found, suggestions are shown
// under a separate heading so they are never mistaken for extracted data.
func (p *Printer) PrintSkills(skills []string, suggestions []string) {
	var sb strings.Builder
	if len(skills) == 0 {
		sb.WriteString("No skills found.")
		if len(suggestions) > 0 {
			sb.WriteString("\n\nSuggestions (not extracted):\n")
			sb.WriteString(strings.Join(suggestions, ", "))
		}
	} else {
		sb.WriteString(fmt.Sprintf("%d skills:\n", len(skills)))
		sb.WriteString(strings.Join(skills, ", "))
	}

	p.printBox("SKILLS", wrap(sb.String(), boxWidth-4))
}

// PrintEducation outputs education entries, most recent first as stored.
func (p *Printer) PrintEducation(entries []types.EducationEntry) {
	if len(entries) == 0 {
		return
	}

	var sb strings.Builder
	count := min(len(entries), maxItemsToShow)
	for i := 0; i < count; i++ {
		e := entries[i]
		sb.WriteString(fmt.Sprintf("• %s\n", e.School))
		if e.Degree != "" {
			sb.WriteString(fmt.Sprintf("  %s\n", e.Degree))
		}
		if d := dateRange(e.StartDate, e.EndDate, false); d != "" {
			sb.WriteString(fmt.Sprintf("  %s\n", d))
		}
		if e.Grade != "" {
			sb.WriteString(fmt.Sprintf("  Grade: %s\n", e.Grade))
		}
	}
	sb.WriteString(moreLine(len(entries)))

	p.printBox("EDUCATION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCertifications outputs certification entries.
func (p *Printer) PrintCertifications(entries []types.CertificationEntry) {
	if len(entries) == 0 {
		return
	}

	var sb strings.Builder
	count := min(len(entries), maxItemsToShow)
	for i := 0; i < count; i++ {
		c := entries[i]
		sb.WriteString(fmt.Sprintf("• %s\n", c.CertName))
		var details []string
		if c.Issuer != "" {
			details = append(details, c.Issuer)
		}
		if d := monthYear(c.IssuedDate); d != "" {
			details = append(details, d)
		}
		if c.CredentialID != "" {
			details = append(details, "ID "+c.CredentialID)
		}
		if len(details) > 0 {
			sb.WriteString(fmt.Sprintf("  %s\n", strings.Join(details, " · ")))
		}
	}
	sb.WriteString(moreLine(len(entries)))

	p.printBox("CERTIFICATIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintJobHistory outputs job entries with their first accomplishments.
func (p *Printer) PrintJobHistory(jobs []types.JobHistoryEntry) {
	if len(jobs) == 0 {
		return
	}

	var sb strings.Builder
	count := min(len(jobs), maxItemsToShow)
	for i := 0; i < count; i++ {
		j := jobs[i]
		sb.WriteString(fmt.Sprintf("• %s @ %s\n", j.Title, j.Company))
		if d := dateRange(j.StartDate, j.EndDate, j.CurrentlyWorking); d != "" {
			sb.WriteString(fmt.Sprintf("  %s\n", d))
		}
		shown := min(len(j.Accomplishments), 2)
		for _, a := range j.Accomplishments[:shown] {
			sb.WriteString(fmt.Sprintf("    - %s\n", a))
		}
		if len(j.Accomplishments) > shown {
			sb.WriteString(fmt.Sprintf("    ... and %d more\n", len(j.Accomplishments)-shown))
		}
	}
	sb.WriteString(moreLine(len(jobs)))

	p.printBox("JOB HISTORY", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintHistory outputs every section of a structured history.
func (p *Printer) PrintHistory(h types.StructuredHistory, suggestions []string) {
	p.PrintContact(h.ContactInformation)
	p.PrintSkills(h.Skills, suggestions)
	p.PrintEducation(h.Education)
	p.PrintCertifications(h.Certifications)
	p.PrintJobHistory(h.JobHistory)
}

// wrap breaks comma-separated text so no line exceeds width
func wrap(s string, width int) string {
	var out []string
	for _, para := range strings.Split(s, "\n") {
		line := ""
		for _, word := range strings.Fields(para) {
			if line != "" && len([]rune(line))+1+len([]rune(word)) > width {
				out = append(out, line)
				line = word
				continue
			}
			if line == "" {
				line = word
			} else {
				line += " " + word
			}
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
