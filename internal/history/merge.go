// Package history assembles extractor outputs into the StructuredHistory aggregate and merges
// aggregates produced from separately processed documents.
package history

import (
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/blake2b"

	"github.com/jonathan/resume-builder/internal/parsing"
	"github.com/jonathan/resume-builder/internal/types"
)

// Combine assembles the five outputs of one extraction run over a single corpus. No conflict
// resolution is needed because every extractor already saw the whole corpus.
func Combine(
	contact types.ContactInformation,
	skills []string,
	education []types.EducationEntry,
	certifications []types.CertificationEntry,
	jobs []types.JobHistoryEntry,
) types.StructuredHistory {
	h := types.StructuredHistory{
		ContactInformation: contact,
		Skills:             skills,
		Education:          education,
		Certifications:     certifications,
		JobHistory:         jobs,
	}
	h.Normalize()
	return h
}

// Sanitize re-applies the extraction invariants to a history that did not come from an
// extractor, such as a client edit: contact and skills are deduplicated, entries without a
// name are dropped, dates are normalized and current roles carry no end date.
func Sanitize(h types.StructuredHistory) types.StructuredHistory {
	out := types.StructuredHistory{
		ContactInformation: types.ContactInformation{
			FullName: strings.TrimSpace(h.ContactInformation.FullName),
			Email:    parsing.DedupEmails(h.ContactInformation.Email),
			Phones:   parsing.DedupPhones(h.ContactInformation.Phones),
		},
		Skills:         parsing.NormalizeSkills(h.Skills),
		Education:      parsing.FinalizeEducation(h.Education),
		Certifications: parsing.FinalizeCertifications(h.Certifications),
		JobHistory:     parsing.FinalizeJobHistory(h.JobHistory),
	}
	out.Normalize()
	return out
}

// Merge combines histories extracted from separate documents, in order.
//
// The last non-empty full name wins. Emails and phones are concatenated and deduplicated.
// Skills are concatenated and deduplicated with case-sensitive set semantics, then capped.
// Education, certification and job entries with equal fingerprints collapse into one entry:
// the last writer's content is kept at the position the entry was first seen.
func Merge(parts ...types.StructuredHistory) types.StructuredHistory {
	out := types.EmptyStructuredHistory()

	var emails, phones []string
	seenSkill := make(map[string]bool)
	education := newDeduper[types.EducationEntry](EducationFingerprint)
	certifications := newDeduper[types.CertificationEntry](CertificationFingerprint)
	jobs := newDeduper[types.JobHistoryEntry](JobFingerprint)

	for _, part := range parts {
		if name := strings.TrimSpace(part.ContactInformation.FullName); name != "" {
			out.ContactInformation.FullName = name
		}
		emails = append(emails, part.ContactInformation.Email...)
		phones = append(phones, part.ContactInformation.Phones...)

		for _, s := range part.Skills {
			if s == "" || seenSkill[s] || len(out.Skills) >= parsing.MaxSkills {
				continue
			}
			seenSkill[s] = true
			out.Skills = append(out.Skills, s)
		}

		for _, e := range part.Education {
			education.add(e)
		}
		for _, c := range part.Certifications {
			certifications.add(c)
		}
		for _, j := range part.JobHistory {
			jobs.add(j)
		}
	}

	out.ContactInformation.Email = parsing.DedupEmails(emails)
	out.ContactInformation.Phones = parsing.DedupPhones(phones)
	out.Education = education.items
	out.Certifications = certifications.items
	out.JobHistory = jobs.items
	out.Normalize()
	return out
}

// deduper keeps entries in first-seen order and replaces an entry in place when a later
// entry has the same fingerprint
type deduper[T any] struct {
	fingerprint func(T) string
	index       map[string]int
	items       []T
}

func newDeduper[T any](fingerprint func(T) string) *deduper[T] {
	return &deduper[T]{fingerprint: fingerprint, index: make(map[string]int), items: []T{}}
}

func (d *deduper[T]) add(item T) {
	key := d.fingerprint(item)
	if i, ok := d.index[key]; ok {
		d.items[i] = item
		return
	}
	d.index[key] = len(d.items)
	d.items = append(d.items, item)
}

// EducationFingerprint identifies an education entry by school, degree and end date
func EducationFingerprint(e types.EducationEntry) string {
	return fingerprint("edu", e.School, e.Degree, e.EndDate.Month, e.EndDate.Year)
}

// CertificationFingerprint identifies a certification by name, issuer and issue date
func CertificationFingerprint(c types.CertificationEntry) string {
	return fingerprint("cert", c.CertName, c.Issuer, c.IssuedDate.Month, c.IssuedDate.Year)
}

// JobFingerprint identifies a job by title, company and start date
func JobFingerprint(j types.JobHistoryEntry) string {
	return fingerprint("job", j.Title, j.Company, j.StartDate.Month, j.StartDate.Year)
}

// fingerprint hashes the case-folded, whitespace-collapsed parts with BLAKE2b-256
func fingerprint(parts ...string) string {
	normalized := make([]string, len(parts))
	for i, p := range parts {
		normalized[i] = strings.ToLower(strings.Join(strings.Fields(p), " "))
	}
	sum := blake2b.Sum256([]byte(strings.Join(normalized, "\x1f")))
	return hex.EncodeToString(sum[:])
}
