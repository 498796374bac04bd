package parsing

import (
	"context"
	"regexp"
	"strings"

	"github.com/jonathan/resume-builder/internal/dates"
	"github.com/jonathan/resume-builder/internal/types"
)

var (
	titleCompanySplit = regexp.MustCompile(`(?i)\s+(?:at|@)\s+`)
	titleWord         = regexp.MustCompile(`(?i)\b(engineer|developer|programmer|manager|director|analyst|consultant|designer|architect|scientist|specialist|lead|head|intern|assistant|associate|officer|coordinator|administrator|technician|representative|teacher|nurse|accountant|supervisor|president|founder|owner|executive|advisor|researcher|editor|writer|clerk|cashier|agent)\b`)
)

// maxDescriptionLines caps how many non-bullet lines under a job header form its description
const maxDescriptionLines = 2

// JobHistory extracts roles in document order. A present-role phrase sets currentlyWorking and
// always clears the end date.
func (e *Extractor) JobHistory(ctx context.Context, corpus string) []types.JobHistoryEntry {
	if payload, ok := e.generate(ctx, FieldJobHistory, corpus); ok {
		return FinalizeJobHistory(normalizeJobHistory(payload))
	}
	entries := FinalizeJobHistory(fallbackJobHistory(corpus))
	e.logFallback(FieldJobHistory, len(entries))
	return entries
}

func normalizeJobHistory(payload any) []types.JobHistoryEntry {
	objects := asObjects(payload)
	out := make([]types.JobHistoryEntry, 0, len(objects))
	for _, m := range objects {
		entry := types.JobHistoryEntry{
			Title:            asString(lookup(m, "title", "position", "role", "jobTitle")),
			Company:          asString(lookup(m, "company", "employer", "organization", "companyName")),
			StartDate:        asMonthYear(lookup(m, "startDate", "start", "from")),
			CurrentlyWorking: asBool(lookup(m, "currentlyWorking", "current", "isCurrent")),
			JobDescription:   asString(lookup(m, "jobDescription", "description", "summary")),
			Accomplishments:  asAccomplishments(lookup(m, "accomplishments", "achievements", "highlights", "bullets")),
		}
		end := lookup(m, "endDate", "end", "to")
		if s, ok := end.(string); ok && dates.IsPresent(s) {
			entry.CurrentlyWorking = true
		} else {
			entry.EndDate = asMonthYear(end)
		}
		out = append(out, entry)
	}
	return out
}

// asAccomplishments accepts an array or a single newline-separated bullet block
func asAccomplishments(v any) []string {
	items := asStringSlice(v)
	if len(items) != 1 || !strings.Contains(items[0], "\n") {
		return items
	}
	out := []string{}
	for _, line := range strings.Split(items[0], "\n") {
		if line = stripBullet(strings.TrimSpace(line)); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// FinalizeJobHistory enforces the current-role invariant, normalizes dates, drops entries
// that carry nothing, and guarantees non-nil accomplishments.
func FinalizeJobHistory(entries []types.JobHistoryEntry) []types.JobHistoryEntry {
	out := make([]types.JobHistoryEntry, 0, len(entries))
	for _, entry := range entries {
		entry.Title = strings.TrimSpace(entry.Title)
		entry.Company = strings.TrimSpace(entry.Company)
		entry.JobDescription = strings.TrimSpace(entry.JobDescription)

		accomplishments := make([]string, 0, len(entry.Accomplishments))
		for _, a := range entry.Accomplishments {
			if a = strings.TrimSpace(a); a != "" {
				accomplishments = append(accomplishments, a)
			}
		}
		entry.Accomplishments = accomplishments

		if entry.Title == "" && entry.Company == "" && entry.JobDescription == "" && len(accomplishments) == 0 {
			continue
		}

		entry.StartDate = dates.Normalize(entry.StartDate)
		entry.EndDate = dates.Normalize(entry.EndDate)
		if entry.CurrentlyWorking {
			entry.EndDate = types.MonthYear{}
		}
		out = append(out, entry)
	}
	return out
}

// isJobDateLine reports whether a line carries a start date or a present-role range
func isJobDateLine(line string) bool {
	r, ok := dates.FindRange(line)
	return ok && (!r.Start.IsZero() || r.Current)
}

// jobSpan is one job found by the fallback: its date line, the lines holding its header and
// the first line that belongs to the next job or section
type jobSpan struct {
	dateLine int
	header   []int
	end      int
}

// fallbackJobHistory anchors a job on every line with a date range, takes the title and company
// from that line or the lines just above it, and reads the lines below as its description
// and accomplishments. Each document is scanned separately.
func fallbackJobHistory(text string) []types.JobHistoryEntry {
	var entries []types.JobHistoryEntry
	for _, section := range splitSections(text) {
		lines := corpusLines(section)
		for _, span := range findJobSpans(lines) {
			entries = append(entries, jobAt(lines, span))
		}
	}
	return entries
}

func findJobSpans(lines []string) []jobSpan {
	var spans []jobSpan
	skip := false
	for i, line := range lines {
		if isHeading(line) {
			l := strings.ToLower(line)
			skip = strings.Contains(l, "education") || strings.Contains(l, "certif") || strings.Contains(l, "licens") || strings.Contains(l, "academic")
			continue
		}
		if skip || !isJobDateLine(line) || degreeKeyword.MatchString(line) || isCertificationCue(line) {
			continue
		}

		span := jobSpan{dateLine: i, end: len(lines)}
		if title, company := parseTitleCompany(withoutDates(stripBullet(line))); title == "" || company == "" {
			span.header = headerLinesAbove(lines, i, spans)
		}
		spans = append(spans, span)
	}

	for k := range spans {
		if k+1 < len(spans) {
			next := spans[k+1]
			spans[k].end = next.dateLine
			if len(next.header) > 0 {
				spans[k].end = next.header[0]
			}
		}
		for j := spans[k].dateLine + 1; j < spans[k].end; j++ {
			if isHeading(lines[j]) {
				spans[k].end = j
				break
			}
		}
	}
	return spans
}

// headerLinesAbove returns up to two plain lines directly above a date line that are not
// already part of an earlier job
func headerLinesAbove(lines []string, i int, earlier []jobSpan) []int {
	floor := 0
	if n := len(earlier); n > 0 {
		floor = earlier[n-1].dateLine + 1
	}
	var header []int
	for j := i - 1; j >= floor && len(header) < 2; j-- {
		l := lines[j]
		if isHeading(l) || isBullet(l) || len(dates.Find(l)) > 0 || len(strings.Fields(l)) > 10 {
			break
		}
		header = append([]int{j}, header...)
	}
	return header
}

func jobAt(lines []string, span jobSpan) types.JobHistoryEntry {
	line := lines[span.dateLine]
	r, _ := dates.FindRange(line)

	entry := types.JobHistoryEntry{
		StartDate:        r.Start,
		EndDate:          r.End,
		CurrentlyWorking: r.Current,
		Accomplishments:  []string{},
	}

	inline := withoutDates(stripBullet(line))
	var above []string
	for _, idx := range span.header {
		above = append(above, lines[idx])
	}
	entry.Title, entry.Company = resolveHeader(inline, above)

	var description []string
	for j := span.dateLine + 1; j < span.end; j++ {
		l := lines[j]
		switch {
		case isBullet(l):
			entry.Accomplishments = append(entry.Accomplishments, stripBullet(l))
		case len(entry.Accomplishments) == 0 && len(description) < maxDescriptionLines:
			description = append(description, l)
		default:
			entry.Accomplishments = append(entry.Accomplishments, l)
		}
	}
	entry.JobDescription = strings.Join(description, " ")
	return entry
}

// resolveHeader derives title and company from the text left on the date line and the
// header lines above it
func resolveHeader(inline string, above []string) (title, company string) {
	if title, company = parseTitleCompany(inline); title != "" && company != "" {
		return title, company
	}

	switch len(above) {
	case 0:
		return parseTitleCompany(inline)
	case 1:
		if inline == "" {
			return parseTitleCompany(above[0])
		}
		return pairTitleCompany(above[0], inline)
	default:
		// a line that names both wins, nearest first
		for k := len(above) - 1; k >= 0; k-- {
			if t, c := parseTitleCompany(above[k]); t != "" && c != "" {
				return t, c
			}
		}
		if inline == "" {
			return pairTitleCompany(above[0], above[1])
		}
		t, c := parseTitleCompany(strings.Join(above, ", "))
		if c == "" {
			c = inline
		}
		return t, c
	}
}

// parseTitleCompany splits "Title at Company", "Title | Company" or "Company, Title".
// A single phrase is returned as the title.
func parseTitleCompany(s string) (title, company string) {
	s = tidy(s)
	if s == "" {
		return "", ""
	}
	if parts := titleCompanySplit.Split(s, 2); len(parts) == 2 {
		return tidy(parts[0]), tidy(parts[1])
	}
	segs := segments(s)
	switch len(segs) {
	case 0:
		return "", ""
	case 1:
		return segs[0], ""
	default:
		return pairTitleCompany(segs[0], segs[1])
	}
}

// pairTitleCompany orders two phrases, preferring the one with a job-title word as the title
func pairTitleCompany(a, b string) (title, company string) {
	if !titleWord.MatchString(a) && titleWord.MatchString(b) {
		return tidy(b), tidy(a)
	}
	return tidy(a), tidy(b)
}
