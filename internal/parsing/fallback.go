package parsing

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-builder/internal/corpus"
	"github.com/jonathan/resume-builder/internal/dates"
)

// Shared helpers for the deterministic fallback extractors.

var (
	segmentSplit = regexp.MustCompile(`\s*(?:,|\||;|\s[–—-]\s|\s·\s)\s*`)
	bulletPrefix = regexp.MustCompile(`^(?:[-*•▪◦●·]|\d{1,2}[.)])\s+`)

	schoolKeyword = regexp.MustCompile(`(?i)\b(university|universität|université|universidad|college|institute|institut|school|academy|polytechnic|conservatory)\b`)
	degreeKeyword = regexp.MustCompile(`(?i)(\b(bachelor|master|doctor|doctorate|associate|diploma|degree|mba|ph\.?\s?d|bsc|msc|bba|b\.?tech|m\.?tech|b\.?eng|m\.?eng|llb|llm|jd)\b|\b[BM]\.[AS]c?\.?(\s|,|$)|(?-i:\b(?:BA|BS|BSc|MA|MS|MSc|AA)\b))`)
	gradeKeyword  = regexp.MustCompile(`(?i)\b(gpa|cgpa|grade|honou?rs|cum laude|magna|summa|distinction|first class|second class|dean'?s list|with merit)\b`)
)

// sectionHeadings are lines that introduce a resume section and carry no data
var sectionHeadings = map[string]bool{
	"experience": true, "work experience": true, "professional experience": true, "employment": true,
	"employment history": true, "work history": true, "career history": true, "job history": true,
	"education": true, "academic background": true, "qualifications": true,
	"certifications": true, "certificates": true, "licenses": true, "licenses & certifications": true,
	"licenses and certifications": true, "certifications & licenses": true,
	"skills": true, "technical skills": true, "core competencies": true,
	"summary": true, "profile": true, "objective": true, "contact": true, "references": true,
	"projects": true, "accomplishments": true, "achievements": true,
}

// corpusLines returns the non-empty document lines of a corpus with markers and
// placeholders removed
func corpusLines(text string) []string {
	raw := strings.Split(corpus.StripMarkers(text), "\n")
	out := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// splitSections returns the text of each document in a corpus
func splitSections(text string) []string {
	sections := corpus.Split(text)
	out := make([]string, 0, len(sections))
	for _, s := range sections {
		out = append(out, s.Text)
	}
	return out
}

func isHeading(line string) bool {
	l := strings.ToLower(strings.TrimSpace(strings.TrimRight(line, ":")))
	return sectionHeadings[l]
}

func isBullet(line string) bool {
	return bulletPrefix.MatchString(line)
}

func stripBullet(line string) string {
	return strings.TrimSpace(bulletPrefix.ReplaceAllString(line, ""))
}

// segments splits a line on list punctuation, dropping empty pieces
func segments(line string) []string {
	parts := segmentSplit.Split(line, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Trim(strings.TrimSpace(p), "()[]")
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// withoutDates removes every date mention and present phrase from s and tidies separators
func withoutDates(s string) string {
	found := dates.Find(s)
	for i := len(found) - 1; i >= 0; i-- {
		s = s[:found[i].Start] + s[found[i].End:]
	}
	s = presentPhrase.ReplaceAllString(s, "")
	return tidy(s)
}

var (
	presentPhrase = regexp.MustCompile(`(?i)\b(present|current(?:ly)?|now|to date|ongoing)\b`)
	danglingSep   = regexp.MustCompile(`(?:\s*(?:[,|;:·–—-]|\bto\b|\bfrom\b|\bsince\b|\buntil\b|\(\s*\)))+\s*$`)
	leadingSep    = regexp.MustCompile(`^\s*(?:[,|;:·–—-]\s*)+`)
	emptyParens   = regexp.MustCompile(`[(\[]\s*(?:[,|;:·–—-]|\bto\b|\s)*[)\]]`)
)

func tidy(s string) string {
	s = strings.Join(strings.Fields(emptyParens.ReplaceAllString(s, "")), " ")
	for {
		next := leadingSep.ReplaceAllString(danglingSep.ReplaceAllString(s, ""), "")
		next = strings.TrimSpace(next)
		if next == s {
			return s
		}
		s = next
	}
}

// isDateOnly reports whether a line carries nothing but dates and date labels
func isDateOnly(line string) bool {
	if len(dates.Find(line)) == 0 && !dates.IsPresent(line) {
		return false
	}
	rest := strings.ToLower(withoutDates(line))
	for _, label := range []string{"issued", "issue date", "date", "graduated", "graduation", "expires", "expiry", "valid until", "completed", "awarded", "obtained", "earned", "received", "since", "from", "dates"} {
		rest = strings.ReplaceAll(rest, label, "")
	}
	return strings.Trim(rest, " :,.-–—|()") == ""
}
