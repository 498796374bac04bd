// Package types provides type definitions for structured data used throughout the resume-builder system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// MonthYear is a partial date. Month is "01".."12" or empty, Year is four digits or empty.
// Either half may be empty independently; empty is a valid terminal state.
type MonthYear struct {
	Month string `json:"month"`
	Year  string `json:"year"`
}

// IsZero reports whether both month and year are empty
func (m MonthYear) IsZero() bool {
	return m.Month == "" && m.Year == ""
}

// ContactInformation holds the candidate's name and deduplicated contact channels
type ContactInformation struct {
	FullName string   `json:"fullName"`
	Email    []string `json:"email"`
	Phones   []string `json:"phones"`
}

// EducationEntry represents one school/degree record
type EducationEntry struct {
	School    string    `json:"school"`
	Degree    string    `json:"degree"`
	StartDate MonthYear `json:"startDate"`
	EndDate   MonthYear `json:"endDate"`
	Grade     string    `json:"grade"`
}

// CertificationEntry represents a professional certification or license
type CertificationEntry struct {
	CertName     string    `json:"certName"`
	Issuer       string    `json:"issuer"`
	IssuedDate   MonthYear `json:"issuedDate"`
	CredentialID string    `json:"credentialId,omitempty"`
}

// JobHistoryEntry represents one role held at one employer
type JobHistoryEntry struct {
	Title            string    `json:"title"`
	Company          string    `json:"company"`
	StartDate        MonthYear `json:"startDate"`
	EndDate          MonthYear `json:"endDate"`
	CurrentlyWorking bool      `json:"currentlyWorking"`
	JobDescription   string    `json:"jobDescription"`
	Accomplishments  []string  `json:"accomplishments"`
}

// StructuredHistory is the complete career record produced by one parse run
type StructuredHistory struct {
	ContactInformation ContactInformation   `json:"contactInformation"`
	Skills             []string             `json:"skills"`
	Education          []EducationEntry     `json:"education"`
	Certifications     []CertificationEntry `json:"certifications"`
	JobHistory         []JobHistoryEntry    `json:"jobHistory"`
}

// EmptyContactInformation returns contact information with non-nil empty slices
func EmptyContactInformation() ContactInformation {
	return ContactInformation{
		FullName: "",
		Email:    []string{},
		Phones:   []string{},
	}
}

// EmptyStructuredHistory returns a fully shaped history with every field empty.
// It marshals to {"contactInformation":{"fullName":"","email":[],"phones":[]},"skills":[],...}.
func EmptyStructuredHistory() StructuredHistory {
	return StructuredHistory{
		ContactInformation: EmptyContactInformation(),
		Skills:             []string{},
		Education:          []EducationEntry{},
		Certifications:     []CertificationEntry{},
		JobHistory:         []JobHistoryEntry{},
	}
}

// IsEmpty reports whether the history carries no data at all
func (h StructuredHistory) IsEmpty() bool {
	c := h.ContactInformation
	return c.FullName == "" && len(c.Email) == 0 && len(c.Phones) == 0 &&
		len(h.Skills) == 0 && len(h.Education) == 0 &&
		len(h.Certifications) == 0 && len(h.JobHistory) == 0
}

// Normalize replaces nil slices with empty ones so the JSON shape never contains null.
func (h *StructuredHistory) Normalize() {
	if h.ContactInformation.Email == nil {
		h.ContactInformation.Email = []string{}
	}
	if h.ContactInformation.Phones == nil {
		h.ContactInformation.Phones = []string{}
	}
	if h.Skills == nil {
		h.Skills = []string{}
	}
	if h.Education == nil {
		h.Education = []EducationEntry{}
	}
	if h.Certifications == nil {
		h.Certifications = []CertificationEntry{}
	}
	if h.JobHistory == nil {
		h.JobHistory = []JobHistoryEntry{}
	}
	for i := range h.JobHistory {
		if h.JobHistory[i].Accomplishments == nil {
			h.JobHistory[i].Accomplishments = []string{}
		}
	}
}
