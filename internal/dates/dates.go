// Package dates turns heterogeneous natural-language date mentions into canonical MonthYear values
// and applies the reconciliation rules shared by the education and job history extractors.
package dates

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

// monthNames maps lowercase month names and abbreviations to two-digit months
var monthNames = map[string]string{
	"january": "01", "jan": "01",
	"february": "02", "feb": "02",
	"march": "03", "mar": "03",
	"april": "04", "apr": "04",
	"may":  "05",
	"june": "06", "jun": "06",
	"july": "07", "jul": "07",
	"august": "08", "aug": "08",
	"september": "09", "sep": "09", "sept": "09",
	"october": "10", "oct": "10",
	"november": "11", "nov": "11",
	"december": "12", "dec": "12",
}

const monthPattern = `jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|sept(?:ember)?|sep|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?`

var (
	// 03/2023, 3/2023, 03-2023, 03.2023
	numericRe = regexp.MustCompile(`\b(0?[1-9]|1[0-2])\s*[/.\-]\s*((?:19|20)\d{2})\b`)
	// 2023-03, 2023/03
	isoRe = regexp.MustCompile(`\b((?:19|20)\d{2})[/\-](0[1-9]|1[0-2])\b`)
	// March 2023, Mar. 2023, Mar, 2023, Sept 2023
	namedRe = regexp.MustCompile(`(?i)\b(` + monthPattern + `)\.?,?\s+((?:19|20)\d{2})\b`)
	// bare years
	yearRe = regexp.MustCompile(`\b((?:19|20)\d{2})\b`)

	presentRe = regexp.MustCompile(`(?i)\b(present|current(?:ly)?|now|to date|ongoing)\b`)
	twoDigits = regexp.MustCompile(`^\d{1,2}$`)
	fourDigit = regexp.MustCompile(`^\d{4}$`)
)

// Match is one date mention found in text
type Match struct {
	Date  types.MonthYear
	Start int
	End   int
}

// NormalizeMonth converts a month token ("3", "03", "Mar", "march") to "01".."12".
// Returns "" when the token is not a valid month.
func NormalizeMonth(s string) string {
	s = strings.ToLower(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), ".")))
	if s == "" {
		return ""
	}
	if twoDigits.MatchString(s) {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > 12 {
			return ""
		}
		return strconv.Itoa(100 + n)[1:]
	}
	if m, ok := monthNames[s]; ok {
		return m
	}
	return ""
}

// NormalizeYear returns s when it is exactly four digits, otherwise "".
func NormalizeYear(s string) string {
	s = strings.TrimSpace(s)
	if fourDigit.MatchString(s) {
		return s
	}
	return ""
}

// Normalize enforces the MonthYear invariants on an arbitrary value
func Normalize(d types.MonthYear) types.MonthYear {
	return types.MonthYear{
		Month: NormalizeMonth(d.Month),
		Year:  NormalizeYear(d.Year),
	}
}

// Find returns every date mention in text in order of appearance.
// Bare years are reported with an empty month unless covered by a fuller match.
func Find(text string) []Match {
	var matches []Match
	covered := func(start, end int) bool {
		for _, m := range matches {
			if start < m.End && end > m.Start {
				return true
			}
		}
		return false
	}

	for _, loc := range namedRe.FindAllStringSubmatchIndex(text, -1) {
		matches = append(matches, Match{
			Date:  types.MonthYear{Month: NormalizeMonth(text[loc[2]:loc[3]]), Year: text[loc[4]:loc[5]]},
			Start: loc[0],
			End:   loc[1],
		})
	}
	for _, loc := range numericRe.FindAllStringSubmatchIndex(text, -1) {
		if covered(loc[0], loc[1]) || decimalTail(text, loc[0]) {
			continue
		}
		matches = append(matches, Match{
			Date:  types.MonthYear{Month: NormalizeMonth(text[loc[2]:loc[3]]), Year: text[loc[4]:loc[5]]},
			Start: loc[0],
			End:   loc[1],
		})
	}
	for _, loc := range isoRe.FindAllStringSubmatchIndex(text, -1) {
		if covered(loc[0], loc[1]) {
			continue
		}
		matches = append(matches, Match{
			Date:  types.MonthYear{Month: NormalizeMonth(text[loc[4]:loc[5]]), Year: text[loc[2]:loc[3]]},
			Start: loc[0],
			End:   loc[1],
		})
	}
	for _, loc := range yearRe.FindAllStringSubmatchIndex(text, -1) {
		if covered(loc[0], loc[1]) || phoneGroup(text, loc[0]) {
			continue
		}
		matches = append(matches, Match{
			Date:  types.MonthYear{Year: text[loc[2]:loc[3]]},
			Start: loc[0],
			End:   loc[1],
		})
	}

	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Start < matches[j].Start })
	return matches
}

// FindDates returns the dates mentioned in text in order of appearance
func FindDates(text string) []types.MonthYear {
	found := Find(text)
	out := make([]types.MonthYear, 0, len(found))
	for _, m := range found {
		out = append(out, m.Date)
	}
	return out
}

// Parse parses a single free-form date string such as "03/2023", "March 2023",
// "2023-03" or "2023". The second return value is false when nothing date-like is found.
func Parse(s string) (types.MonthYear, bool) {
	found := Find(s)
	if len(found) == 0 {
		return types.MonthYear{}, false
	}
	return found[0].Date, true
}

// IsPresent reports whether s contains a current-role phrase such as "Present" or "current"
func IsPresent(s string) bool {
	return presentRe.MatchString(s)
}

// ReconcileEndDate applies the multi-date rule: the most recent year wins, and its month is
// kept only when all candidates for that year agree on a single month.
func ReconcileEndDate(candidates []types.MonthYear) types.MonthYear {
	latest := ""
	for _, c := range candidates {
		if c.Year != "" && c.Year > latest {
			latest = c.Year
		}
	}
	if latest == "" {
		return types.MonthYear{}
	}

	months := make(map[string]struct{})
	for _, c := range candidates {
		if c.Year == latest && c.Month != "" {
			months[c.Month] = struct{}{}
		}
	}

	end := types.MonthYear{Year: latest}
	if len(months) == 1 {
		for m := range months {
			end.Month = m
		}
	}
	return end
}

// ReconcileEducation derives start and end dates from the dates found near one education entry.
// A single date is always the end date. With several dates only the end date is derived;
// the start date is left empty because proximity alone cannot order them reliably.
func ReconcileEducation(candidates []types.MonthYear) (start, end types.MonthYear) {
	switch len(candidates) {
	case 0:
		return types.MonthYear{}, types.MonthYear{}
	case 1:
		return types.MonthYear{}, Normalize(candidates[0])
	default:
		return types.MonthYear{}, ReconcileEndDate(candidates)
	}
}

// CollapseSameYear clears start when it falls in the same year as end
func CollapseSameYear(start, end types.MonthYear) (types.MonthYear, types.MonthYear) {
	if start.Year != "" && start.Year == end.Year {
		return types.MonthYear{}, end
	}
	return start, end
}

// Range is a start/end pair parsed from text such as "January 2020 - Present"
type Range struct {
	Start   types.MonthYear
	End     types.MonthYear
	Current bool
}

// FindRange parses the first date range in text. A single date followed by a present phrase
// yields a current range; a lone date without a present phrase is treated as the end date.
func FindRange(text string) (Range, bool) {
	found := Find(text)
	if len(found) == 0 {
		return Range{}, false
	}

	first := found[0]
	rest := text[first.End:]
	if len(found) > 1 {
		between := text[first.End:found[1].Start]
		if isRangeSeparator(between) {
			r := Range{Start: first.Date, End: found[1].Date}
			return r, true
		}
	}

	if sep := strings.TrimLeft(rest, " \t"); sep != "" && isRangeSeparatorPrefix(sep) && IsPresent(firstWords(sep, 4)) {
		return Range{Start: first.Date, Current: true}, true
	}

	if IsPresent(text) {
		return Range{Start: first.Date, Current: true}, true
	}
	return Range{End: first.Date}, true
}

// decimalTail reports whether the digits at start are the fraction of a decimal number such as
// a GPA ("3.8 - 2019"), which is not a month
func decimalTail(text string, start int) bool {
	return start >= 2 && text[start-1] == '.' && text[start-2] >= '0' && text[start-2] <= '9'
}

// phoneGroup reports whether the four digits at start follow a three-digit group
// such as "555-1990" or "555 1990", which is a phone number rather than a year.
func phoneGroup(text string, start int) bool {
	if start < 4 {
		return false
	}
	switch text[start-1] {
	case '-', '.', ' ':
	default:
		return false
	}
	digits := 0
	for i := start - 2; i >= 0 && text[i] >= '0' && text[i] <= '9'; i-- {
		digits++
	}
	return digits == 3
}

func isRangeSeparator(s string) bool {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "-", "–", "—", "to", "until", "through", "thru", "~":
		return true
	}
	return false
}

func isRangeSeparatorPrefix(s string) bool {
	for _, p := range []string{"-", "–", "—", "to ", "until ", "~"} {
		if strings.HasPrefix(strings.ToLower(s), p) {
			return true
		}
	}
	return false
}

func firstWords(s string, n int) string {
	fields := strings.Fields(s)
	if len(fields) > n {
		fields = fields[:n]
	}
	return strings.Join(fields, " ")
}
