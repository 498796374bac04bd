package parsing

import (
	"context"
	"regexp"
	"strings"
	"unicode"

	"github.com/jonathan/resume-builder/internal/types"
)

var (
	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	phonePattern = regexp.MustCompile(`(?:\+\d{1,3}[\s.\-]?)?(?:\(\d{2,4}\)[\s.\-]?|\d{2,4}[\s.\-])?\d{3,4}[\s.\-]?\d{3,4}`)
	yearGroup    = regexp.MustCompile(`^(?:19|20)\d{2}$`)
	nameLabel    = regexp.MustCompile(`(?i)^(?:full\s+)?name\s*[:\-]\s*(.+)$`)
)

// nameStopWords disqualify a line from being the candidate's name
var nameStopWords = []string{
	"resume", "résumé", "curriculum", "vitae", "cv", "profile", "summary", "objective",
	"university", "college", "institute", "school", "inc", "llc", "ltd", "corp", "company",
	"engineer", "developer", "manager", "certified", "street", "avenue", "road",
	"services", "solutions", "systems", "technologies", "technology", "group", "bank",
	"labs", "software", "consulting", "web", "cloud", "amazon", "google", "microsoft",
}

// nameLookahead is how many leading lines of each document are scanned for a name
const nameLookahead = 6

// Contact extracts the candidate's contact information. It never fails; missing data is
// represented by empty values.
func (e *Extractor) Contact(ctx context.Context, corpus string) types.ContactInformation {
	if payload, ok := e.generate(ctx, FieldContact, corpus); ok {
		return normalizeContact(payload)
	}
	c := fallbackContact(corpus)
	e.logFallback(FieldContact, len(c.Email)+len(c.Phones))
	return c
}

// normalizeContact coerces a decoded AI payload into ContactInformation
func normalizeContact(payload any) types.ContactInformation {
	m := asObject(payload)
	return types.ContactInformation{
		FullName: asString(lookup(m, "fullName", "name")),
		Email:    DedupEmails(asStringSlice(lookup(m, "email", "emails", "emailAddresses"))),
		Phones:   DedupPhones(asStringSlice(lookup(m, "phones", "phone", "phoneNumbers"))),
	}
}

func fallbackContact(text string) types.ContactInformation {
	lines := corpusLines(text)

	var emails, phones []string
	for _, line := range lines {
		emails = append(emails, emailPattern.FindAllString(line, -1)...)
		phones = append(phones, findPhones(line)...)
	}

	return types.ContactInformation{
		FullName: findName(text),
		Email:    DedupEmails(emails),
		Phones:   DedupPhones(phones),
	}
}

// findPhones returns phone-like substrings, ignoring date ranges and short numbers
func findPhones(line string) []string {
	var out []string
	for _, m := range phonePattern.FindAllString(line, -1) {
		m = strings.TrimSpace(m)
		digits := digitsOnly(m)
		if len(digits) < 7 || len(digits) > 15 {
			continue
		}
		if allYearGroups(m) {
			continue
		}
		// unseparated runs shorter than a full national number are ids, not phones
		if digits == m && len(digits) < 10 {
			continue
		}
		out = append(out, m)
	}
	return out
}

func allYearGroups(s string) bool {
	groups := strings.FieldsFunc(s, func(r rune) bool { return !unicode.IsDigit(r) })
	for _, g := range groups {
		if !yearGroup.MatchString(g) {
			return false
		}
	}
	return len(groups) > 0
}

// findName returns the first name-like line near the top of any document
func findName(text string) string {
	for _, section := range splitSections(text) {
		lines := corpusLines(section)
		for i, line := range lines {
			if i >= nameLookahead {
				break
			}
			if m := nameLabel.FindStringSubmatch(line); m != nil {
				if looksLikeName(m[1]) {
					return strings.TrimSpace(m[1])
				}
			}
			if looksLikeName(line) {
				return line
			}
		}
	}
	return ""
}

// looksLikeName accepts two to four capitalized words made of letters, apostrophes,
// hyphens and periods
func looksLikeName(line string) bool {
	words := strings.Fields(line)
	if len(words) < 2 || len(words) > 4 {
		return false
	}
	if isHeading(line) {
		return false
	}
	lower := strings.ToLower(line)
	for _, w := range strings.FieldsFunc(lower, func(r rune) bool { return !unicode.IsLetter(r) }) {
		for _, stop := range nameStopWords {
			if w == stop {
				return false
			}
		}
	}
	for _, w := range words {
		first := []rune(w)[0]
		if !unicode.IsUpper(first) {
			return false
		}
		for _, r := range w {
			if !unicode.IsLetter(r) && r != '\'' && r != '-' && r != '.' && r != '’' {
				return false
			}
		}
	}
	return true
}

// DedupEmails removes case-insensitive duplicates, keeping the first spelling and order
func DedupEmails(emails []string) []string {
	out := make([]string, 0, len(emails))
	seen := make(map[string]bool, len(emails))
	for _, e := range emails {
		e = strings.Trim(strings.TrimSpace(e), ".,;<>()")
		e = strings.TrimPrefix(e, "mailto:")
		key := strings.ToLower(e)
		if e == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, e)
	}
	return out
}

// DedupPhones removes duplicates that differ only in formatting, keeping the first
// spelling and order. A leading North American country code is ignored for comparison.
func DedupPhones(phones []string) []string {
	out := make([]string, 0, len(phones))
	seen := make(map[string]bool, len(phones))
	for _, p := range phones {
		p = strings.TrimSpace(p)
		key := phoneKey(p)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, p)
	}
	return out
}

func phoneKey(p string) string {
	digits := digitsOnly(p)
	if len(digits) == 11 && strings.HasPrefix(digits, "1") {
		digits = digits[1:]
	}
	return digits
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
