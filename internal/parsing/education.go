package parsing

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/jonathan/resume-builder/internal/dates"
	"github.com/jonathan/resume-builder/internal/types"
)

// educationWindow is how many lines after a school anchor belong to the same entry
const educationWindow = 3

var gradeValue = regexp.MustCompile(`(?i)\b(?:c?gpa|grade)\s*[:\-]?\s*([0-9](?:\.[0-9]{1,2})?(?:\s*/\s*[0-9](?:\.[0-9]{1,2})?)?)`)

// Education extracts education entries. The single-date rule and same-year collapse are
// enforced on both paths.
func (e *Extractor) Education(ctx context.Context, corpus string) []types.EducationEntry {
	if payload, ok := e.generate(ctx, FieldEducation, corpus); ok {
		return FinalizeEducation(normalizeEducation(payload))
	}
	entries := FinalizeEducation(fallbackEducation(corpus))
	e.logFallback(FieldEducation, len(entries))
	return entries
}

func normalizeEducation(payload any) []types.EducationEntry {
	objects := asObjects(payload)
	out := make([]types.EducationEntry, 0, len(objects))
	for _, m := range objects {
		out = append(out, types.EducationEntry{
			School:    asString(lookup(m, "school", "institution", "university")),
			Degree:    asString(lookup(m, "degree", "program", "qualification")),
			StartDate: asMonthYear(lookup(m, "startDate", "start")),
			EndDate:   asMonthYear(lookup(m, "endDate", "end", "graduationDate")),
			Grade:     asString(lookup(m, "grade", "gpa", "honors")),
		})
	}
	return out
}

// FinalizeEducation enforces the date invariants on every entry, drops entries with
// neither school nor degree, and returns a non-nil slice.
func FinalizeEducation(entries []types.EducationEntry) []types.EducationEntry {
	out := make([]types.EducationEntry, 0, len(entries))
	for _, entry := range entries {
		entry.School = strings.TrimSpace(entry.School)
		entry.Degree = strings.TrimSpace(entry.Degree)
		entry.Grade = strings.TrimSpace(entry.Grade)
		if entry.School == "" && entry.Degree == "" {
			continue
		}
		entry.StartDate = dates.Normalize(entry.StartDate)
		entry.EndDate = dates.Normalize(entry.EndDate)
		// a start date with no end date is the single date, which always means the end
		if !entry.StartDate.IsZero() && entry.EndDate.IsZero() {
			entry.StartDate, entry.EndDate = types.MonthYear{}, entry.StartDate
		}
		entry.StartDate, entry.EndDate = dates.CollapseSameYear(entry.StartDate, entry.EndDate)
		out = append(out, entry)
	}
	return out
}

// fallbackEducation anchors an entry on each line with a school keyword and scans the
// next few lines for a degree, dates and a grade. Lines under experience and certification
// headings never anchor an entry, and each document is scanned separately.
func fallbackEducation(text string) []types.EducationEntry {
	var entries []types.EducationEntry
	for _, section := range splitSections(text) {
		entries = append(entries, educationIn(corpusLines(section))...)
	}

	sort.SliceStable(entries, func(a, b int) bool {
		return entries[a].EndDate.Year > entries[b].EndDate.Year
	})
	return entries
}

func educationIn(lines []string) []types.EducationEntry {
	var entries []types.EducationEntry
	skip := false
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		if isHeading(line) {
			skip = excludesEducation(line)
			continue
		}
		if skip || !schoolKeyword.MatchString(line) || isCredentialLine(line) {
			continue
		}

		window := []string{line}
		for j := i + 1; j < len(lines) && j <= i+educationWindow; j++ {
			next := lines[j]
			if schoolKeyword.MatchString(next) || isHeading(next) || isCredentialLine(next) || isJobLine(next) {
				break
			}
			window = append(window, next)
		}

		entry := types.EducationEntry{School: schoolName(line)}
		var candidates []types.MonthYear
		for k, w := range window {
			candidates = append(candidates, dates.FindDates(w)...)
			if entry.Degree == "" {
				// the anchor line's school segment never doubles as the degree
				entry.Degree = degreeFrom(w, k == 0)
			}
			if entry.Grade == "" {
				entry.Grade = gradeFrom(w)
			}
		}
		entry.StartDate, entry.EndDate = dates.ReconcileEducation(candidates)

		entries = append(entries, entry)
		i += len(window) - 1
	}
	return entries
}

// excludesEducation reports whether a heading opens a job or credential section
func excludesEducation(heading string) bool {
	l := strings.ToLower(heading)
	for _, w := range []string{"experience", "employment", "work", "career", "job", "certif", "licens"} {
		if strings.Contains(l, w) {
			return true
		}
	}
	return false
}

// isCredentialLine reports whether a line names a certification or license rather than a degree
func isCredentialLine(line string) bool {
	return isCertificationCue(line) && !degreeKeyword.MatchString(line)
}

// isJobLine reports whether a line is a job header: a job title next to a start date or a
// present-role range
func isJobLine(line string) bool {
	if degreeKeyword.MatchString(line) || !isJobDateLine(line) || isDateOnly(line) {
		return false
	}
	return titleWord.MatchString(line)
}

// schoolName returns the segment of line that carries the school keyword
func schoolName(line string) string {
	for _, seg := range segments(stripBullet(line)) {
		if schoolKeyword.MatchString(seg) {
			return withoutDates(seg)
		}
	}
	return withoutDates(stripBullet(line))
}

// degreeFrom returns the degree segment of a line together with any following field of
// study segments ("MBA, Operations"), stopping at dates and grades.
func degreeFrom(line string, anchor bool) string {
	segs := segments(stripBullet(line))
	for idx, seg := range segs {
		if !degreeKeyword.MatchString(seg) {
			continue
		}
		if anchor && schoolKeyword.MatchString(seg) {
			continue
		}
		parts := []string{withoutDates(seg)}
		for _, more := range segs[idx+1:] {
			if schoolKeyword.MatchString(more) || gradeKeyword.MatchString(more) || isDateOnly(more) {
				break
			}
			if rest := withoutDates(more); rest != "" {
				parts = append(parts, rest)
			}
		}
		return strings.Join(nonEmpty(parts), ", ")
	}
	return ""
}

// gradeFrom returns a GPA value or an honors phrase from a line
func gradeFrom(line string) string {
	if m := gradeValue.FindStringSubmatch(line); m != nil {
		return strings.Join(strings.Fields(m[1]), "")
	}
	for _, seg := range segments(stripBullet(line)) {
		if gradeKeyword.MatchString(seg) {
			return withoutDates(seg)
		}
	}
	return ""
}

func nonEmpty(in []string) []string {
	out := in[:0]
	for _, s := range in {
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}
