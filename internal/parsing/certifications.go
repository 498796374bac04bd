package parsing

import (
	"context"
	"regexp"
	"strings"

	"github.com/jonathan/resume-builder/internal/dates"
	"github.com/jonathan/resume-builder/internal/types"
)

var (
	// certCue marks a line as naming a professional credential
	certCue = regexp.MustCompile(`(?i)\b(certified|certification|certificate|accredited|accreditation|credential)\b`)
	// licenseCue accepts licenses only with a professional qualifier
	licenseCue = regexp.MustCompile(`(?i)\b(licensed\s+[a-z]+|(professional|nursing|medical|engineering|teaching|pharmacy|real estate|insurance|securities|bar|law|contractor|electrical|plumbing|cpa)\s+licen[cs]e)\b`)
	// acronymCue lists well known credentials that are usually written bare
	acronymCue = regexp.MustCompile(`\b(PMP|CAPM|CPA|CFA|CISSP|CISM|CISA|CCNA|CCNP|CCIE|CKA|CKAD|CKS|CSM|PSM|ITIL|OSCP|CEH|PHR|SPHR|SHRM-CP|CSSLP|RN)\b`)

	// nonProfessional covers personal documents that are never certifications
	nonProfessional = regexp.MustCompile(`(?i)(\b(driver[’']?s?|driving|learner[’']?s?|motorcycle)\s+(licen[cs]e|permit)|\bpassport\b|\b(national|state|voter)\s+id\b|\b(work|student|travel|tourist)\s+visa\b|\bmarriage\s+licen[cs]e|\b(fishing|hunting|firearms?|gun|pet|dog)\s+licen[cs]e|\bvehicle\s+registration\b|\bCDL\b|\bcommercial\s+driver)`)

	credentialPattern = regexp.MustCompile(`(?i)\b(?:credential|certificate|cert|license|licence)\s*(?:id|#|no\.?|number)\s*[:#]?\s*([A-Za-z0-9][A-Za-z0-9\-]{3,})`)
	issuedBy          = regexp.MustCompile(`(?i)\bissued\s+by\b`)
	issuerLabel       = regexp.MustCompile(`(?i)^(?:issuer|issued by|issuing (?:body|organi[sz]ation|authority)|by)\s*[:\-]?\s*`)
	dateLabel         = regexp.MustCompile(`(?i)\b(?:issued|issue date|expires|expiry|expiration|valid until|obtained|earned|awarded|completed)\b(?:\s+on)?\s*:?`)
	certSplit         = regexp.MustCompile(`(?i),\s+|\s+\|\s+|\s+by\s+|\s+from\s+`)
)

// certLookahead bounds how many lines after a credential are read for its issuer and date
const certLookahead = 2

// Certifications extracts professional certifications and licenses. Personal documents such
// as driver's licenses are excluded on both paths.
func (e *Extractor) Certifications(ctx context.Context, corpus string) []types.CertificationEntry {
	if payload, ok := e.generate(ctx, FieldCertifications, corpus); ok {
		return FinalizeCertifications(normalizeCertifications(payload))
	}
	entries := FinalizeCertifications(fallbackCertifications(corpus))
	e.logFallback(FieldCertifications, len(entries))
	return entries
}

func normalizeCertifications(payload any) []types.CertificationEntry {
	objects := asObjects(payload)
	out := make([]types.CertificationEntry, 0, len(objects))
	for _, m := range objects {
		out = append(out, types.CertificationEntry{
			CertName:     asString(lookup(m, "certName", "name", "certification", "title")),
			Issuer:       asString(lookup(m, "issuer", "issuingOrganization", "organization", "authority")),
			IssuedDate:   asMonthYear(lookup(m, "issuedDate", "issueDate", "date", "issued")),
			CredentialID: asScalar(lookup(m, "credentialId", "credentialID", "id", "licenseNumber")),
		})
	}
	return out
}

// FinalizeCertifications normalizes dates, drops unnamed entries and personal documents,
// and returns a non-nil slice.
func FinalizeCertifications(entries []types.CertificationEntry) []types.CertificationEntry {
	out := make([]types.CertificationEntry, 0, len(entries))
	for _, entry := range entries {
		entry.CertName = strings.TrimSpace(entry.CertName)
		entry.Issuer = strings.TrimSpace(entry.Issuer)
		entry.CredentialID = strings.TrimSpace(entry.CredentialID)
		if entry.CertName == "" || IsPersonalDocument(entry.CertName) {
			continue
		}
		entry.IssuedDate = dates.Normalize(entry.IssuedDate)
		out = append(out, entry)
	}
	return out
}

// IsPersonalDocument reports whether s names a personal document (driver's license,
// passport, visa, ...) rather than a professional credential
func IsPersonalDocument(s string) bool {
	return nonProfessional.MatchString(s)
}

// isCertificationCue reports whether a line names a professional credential
func isCertificationCue(line string) bool {
	if IsPersonalDocument(line) {
		return false
	}
	return certCue.MatchString(line) || licenseCue.MatchString(line) || acronymCue.MatchString(line)
}

func fallbackCertifications(text string) []types.CertificationEntry {
	var entries []types.CertificationEntry
	scanCertifications(corpusLines(text), func(entry types.CertificationEntry, _, _ int) {
		entries = append(entries, entry)
	})
	return entries
}

// scanCertifications calls visit for every certification found in lines with the indices of
// its first and last line
func scanCertifications(lines []string, visit func(entry types.CertificationEntry, first, last int)) {
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		if isHeading(line) || !isCertificationCue(line) || isJobDateLine(line) {
			continue
		}
		if schoolKeyword.MatchString(line) && degreeKeyword.MatchString(line) {
			continue
		}

		entry, consumed := certificationAt(lines, i)
		if entry.CertName == "" {
			continue
		}
		visit(entry, i, i+consumed)
		i += consumed
	}
}

// certificationAt builds the entry anchored at lines[i] and reports how many following
// lines it used for the issuer and date
func certificationAt(lines []string, i int) (types.CertificationEntry, int) {
	line := stripBullet(lines[i])
	var entry types.CertificationEntry

	if m := credentialPattern.FindStringSubmatch(line); m != nil {
		entry.CredentialID = m[1]
		line = credentialPattern.ReplaceAllString(line, "")
	}
	if found := dates.FindDates(line); len(found) > 0 {
		entry.IssuedDate = found[0]
	}

	name := issuedBy.ReplaceAllString(withoutDates(line), "by")
	name = tidy(dateLabel.ReplaceAllString(name, ""))
	parts := certSplit.Split(name, 2)
	entry.CertName = tidy(parts[0])
	if len(parts) == 2 {
		entry.Issuer = tidy(parts[1])
	}

	consumed := 0
	for k := 1; k <= certLookahead && i+k < len(lines); k++ {
		next := lines[i+k]
		if isHeading(next) || isCertificationCue(next) || isJobDateLine(next) {
			break
		}
		used := false
		if entry.CredentialID == "" {
			if m := credentialPattern.FindStringSubmatch(next); m != nil {
				entry.CredentialID = m[1]
				next = credentialPattern.ReplaceAllString(next, "")
				used = true
			}
		}
		if entry.IssuedDate.IsZero() {
			if found := dates.FindDates(next); len(found) > 0 {
				entry.IssuedDate = found[0]
				used = true
			}
		}
		if entry.Issuer == "" && !isDateOnly(next) && !isBullet(next) && len(strings.Fields(next)) <= 8 {
			issuer := issuerLabel.ReplaceAllString(withoutDates(next), "")
			if issuer = tidy(dateLabel.ReplaceAllString(issuer, "")); issuer != "" {
				entry.Issuer = issuer
				used = true
			}
		}
		if !used {
			break
		}
		consumed = k
	}
	return entry, consumed
}
