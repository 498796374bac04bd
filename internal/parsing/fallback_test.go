package parsing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-builder/internal/corpus"
	"github.com/jonathan/resume-builder/internal/types"
)

func fallbackOnly() *Extractor {
	return NewExtractor(nil, nil)
}

func TestContact_Fallback(t *testing.T) {
	text := corpus.Block("resume.pdf", "Jane Doe\njane.doe@example.com | (555) 123-4567\nSenior Software Engineer") +
		"\n\n" +
		corpus.Block("cover.docx", "Dear hiring manager,\nReach me at JANE.DOE@example.com or +1 555 123 4567.")

	c := fallbackOnly().Contact(context.Background(), text)

	assert.Equal(t, "Jane Doe", c.FullName)
	assert.Equal(t, []string{"jane.doe@example.com"}, c.Email)
	assert.Equal(t, []string{"(555) 123-4567"}, c.Phones)
}

func TestContact_DateRangesAreNotPhones(t *testing.T) {
	c := fallbackOnly().Contact(context.Background(), "Acme Corp 2015-2019\nCredential ID 12345678")

	assert.Empty(t, c.Phones)
	assert.NotNil(t, c.Phones)
}

func TestContact_NoNameIsEmptyString(t *testing.T) {
	c := fallbackOnly().Contact(context.Background(), "jane@example.com\nexperience with distributed systems")

	assert.Equal(t, "", c.FullName)
	assert.Equal(t, []string{"jane@example.com"}, c.Email)
}

func TestContact_NameLabel(t *testing.T) {
	c := fallbackOnly().Contact(context.Background(), "Curriculum Vitae\nName: María José García")

	assert.Equal(t, "María José García", c.FullName)
}

func TestDedupPhones(t *testing.T) {
	result := DedupPhones([]string{"555.123.4567", "(555) 123-4567", "+1 (555) 123-4567", "555-987-6543", ""})
	assert.Equal(t, []string{"555.123.4567", "555-987-6543"}, result)
}

func TestDedupEmails(t *testing.T) {
	result := DedupEmails([]string{"mailto:a@x.com", "A@X.com", "b@x.com."})
	assert.Equal(t, []string{"a@x.com", "b@x.com"}, result)
}

func TestSkills_Fallback(t *testing.T) {
	text := "Skills: golang, JS, Docker\nBuilt services in Python and deployed them on Kubernetes."

	skills := fallbackOnly().Skills(context.Background(), text)

	assert.Equal(t, []string{"Go", "JavaScript", "Docker", "Python", "Kubernetes"}, skills)
}

func TestSkills_FallbackHeadingList(t *testing.T) {
	text := "Technical Skills\n- Terraform\n- Go, Rust\nExperience"

	skills := fallbackOnly().Skills(context.Background(), text)

	assert.Equal(t, []string{"Terraform", "Go", "Rust"}, skills)
}

func TestSkills_FallbackDoesNotFabricate(t *testing.T) {
	skills := fallbackOnly().Skills(context.Background(), "Enjoys hiking, reading and going to the lake.")

	assert.NotNil(t, skills)
	assert.Empty(t, skills)
}

func TestSkills_CredentialLinesNotScanned(t *testing.T) {
	text := "Certifications\n" +
		"Project Management Professional (PMP)\n" +
		"Project Management Institute, 2019\n" +
		"Experience\n" +
		"Ran two-week sprints with Scrum"

	skills := fallbackOnly().Skills(context.Background(), text)

	assert.Equal(t, []string{"Scrum"}, skills)
}

func TestSkills_GoNeedsListContext(t *testing.T) {
	skills := fallbackOnly().Skills(context.Background(), "Go to market strategy for a new product line.")

	assert.NotContains(t, skills, "Go")
}

func TestEducation_SchoolDegreeSingleDate(t *testing.T) {
	entries := fallbackOnly().Education(context.Background(), "University of Michigan, MBA, Operations, 12/1989")

	require.Len(t, entries, 1)
	assert.Equal(t, types.EducationEntry{
		School:  "University of Michigan",
		Degree:  "MBA, Operations",
		EndDate: types.MonthYear{Month: "12", Year: "1989"},
	}, entries[0])
}

func TestEducation_SingleDateOnFollowingLine(t *testing.T) {
	text := "Education\nStanford University\nBachelor of Science in Computer Science\nGraduated: May 2015\nGPA: 3.8 / 4.0"

	entries := fallbackOnly().Education(context.Background(), text)

	require.Len(t, entries, 1)
	assert.Equal(t, "Stanford University", entries[0].School)
	assert.Equal(t, "Bachelor of Science in Computer Science", entries[0].Degree)
	assert.Equal(t, types.MonthYear{}, entries[0].StartDate)
	assert.Equal(t, types.MonthYear{Month: "05", Year: "2015"}, entries[0].EndDate)
	assert.Equal(t, "3.8/4.0", entries[0].Grade)
}

func TestEducation_ConflictingMonthsBlankMonth(t *testing.T) {
	text := "Stanford University, MS Computer Science\nJune 2015\nAugust 2015"

	entries := fallbackOnly().Education(context.Background(), text)

	require.Len(t, entries, 1)
	assert.Equal(t, "MS Computer Science", entries[0].Degree)
	assert.Equal(t, types.MonthYear{Year: "2015"}, entries[0].EndDate)
	assert.Equal(t, types.MonthYear{}, entries[0].StartDate)
}

func TestEducation_MostRecentFirst(t *testing.T) {
	text := "Boston College, BA Economics, 2005\nColumbia University, MBA, 2010"

	entries := fallbackOnly().Education(context.Background(), text)

	require.Len(t, entries, 2)
	assert.Equal(t, "Columbia University", entries[0].School)
	assert.Equal(t, "Boston College", entries[1].School)
	assert.Equal(t, "BA Economics", entries[1].Degree)
}

func TestEducation_SkipsJobAndCertificationSections(t *testing.T) {
	text := "Education\n" +
		"Massachusetts Institute of Technology\n" +
		"Bachelor of Science in Physics, 2010\n" +
		"Experience\n" +
		"Research Scientist at Acme Labs, June 2012 - Present\n" +
		"Teaching Assistant, Boston College, 2010 - 2012\n" +
		"Certifications\n" +
		"Project Management Professional (PMP)\n" +
		"Project Management Institute, 2019"

	entries := fallbackOnly().Education(context.Background(), text)

	require.Len(t, entries, 1)
	assert.Equal(t, types.EducationEntry{
		School:  "Massachusetts Institute of Technology",
		Degree:  "Bachelor of Science in Physics",
		EndDate: types.MonthYear{Year: "2010"},
	}, entries[0])
}

func TestEducation_JobLineEndsEntry(t *testing.T) {
	text := "Stanford University\nBS CS, 2012\nSoftware Engineer at Google, Jan 2015 - Present"

	entries := fallbackOnly().Education(context.Background(), text)

	require.Len(t, entries, 1)
	assert.Equal(t, "BS CS", entries[0].Degree)
	assert.Equal(t, types.MonthYear{Year: "2012"}, entries[0].EndDate)
	assert.Equal(t, types.MonthYear{}, entries[0].StartDate)
}

func TestEducation_CredentialLineIsNotSchool(t *testing.T) {
	entries := fallbackOnly().Education(context.Background(), "PMP, Project Management Institute, 2019")

	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestEducation_FieldOfStudyRangeKept(t *testing.T) {
	entries := fallbackOnly().Education(context.Background(), "Stanford University\nBachelor of Science\nComputer Science, 2012 - 2016")

	require.Len(t, entries, 1)
	assert.Equal(t, types.MonthYear{Year: "2016"}, entries[0].EndDate)
}

func TestEducation_GPAIsNotDate(t *testing.T) {
	entries := fallbackOnly().Education(context.Background(), "Boston College\nBachelor of Arts, GPA 3.8 - 2019")

	require.Len(t, entries, 1)
	assert.Equal(t, "Bachelor of Arts", entries[0].Degree)
	assert.Equal(t, "3.8", entries[0].Grade)
	assert.Equal(t, types.MonthYear{Year: "2019"}, entries[0].EndDate)
}

func TestFinalizeEducation(t *testing.T) {
	entries := FinalizeEducation([]types.EducationEntry{
		{School: "MIT", StartDate: types.MonthYear{Month: "09", Year: "2014"}, EndDate: types.MonthYear{Month: "05", Year: "2014"}},
		{School: "Yale", StartDate: types.MonthYear{Month: "9", Year: "2010"}, EndDate: types.MonthYear{Month: "05", Year: "2014"}},
		{Grade: "3.9"},
	})

	require.Len(t, entries, 2)
	assert.Equal(t, types.MonthYear{}, entries[0].StartDate)
	assert.Equal(t, types.MonthYear{Month: "09", Year: "2010"}, entries[1].StartDate)
}

func TestCertifications_Fallback(t *testing.T) {
	text := "AWS Certified Solutions Architect - Professional\nAmazon Web Services\nIssued: March 2023"

	entries := fallbackOnly().Certifications(context.Background(), text)

	require.Len(t, entries, 1)
	assert.Regexp(t, `(?i)aws.*solutions architect`, entries[0].CertName)
	assert.Equal(t, "Amazon Web Services", entries[0].Issuer)
	assert.Equal(t, types.MonthYear{Month: "03", Year: "2023"}, entries[0].IssuedDate)
}

func TestCertifications_CredentialID(t *testing.T) {
	text := "Certified Kubernetes Administrator (CKA) - Credential ID: ABC-1234\nThe Linux Foundation\nIssued Jan 2022"

	entries := fallbackOnly().Certifications(context.Background(), text)

	require.Len(t, entries, 1)
	assert.Equal(t, types.CertificationEntry{
		CertName:     "Certified Kubernetes Administrator (CKA)",
		Issuer:       "The Linux Foundation",
		IssuedDate:   types.MonthYear{Month: "01", Year: "2022"},
		CredentialID: "ABC-1234",
	}, entries[0])
}

func TestCertifications_PersonalDocumentsExcluded(t *testing.T) {
	text := "Licenses & Certifications\nDriver's License, State of California, 2015\nCertified Scrum Master (CSM), Scrum Alliance, 2019"

	entries := fallbackOnly().Certifications(context.Background(), text)

	require.Len(t, entries, 1)
	assert.Equal(t, "Certified Scrum Master (CSM)", entries[0].CertName)
	assert.Equal(t, "Scrum Alliance", entries[0].Issuer)
	assert.Equal(t, types.MonthYear{Year: "2019"}, entries[0].IssuedDate)
}

func TestIsPersonalDocument(t *testing.T) {
	assert.True(t, IsPersonalDocument("Driver’s license"))
	assert.True(t, IsPersonalDocument("US Passport"))
	assert.True(t, IsPersonalDocument("Class A CDL"))
	assert.False(t, IsPersonalDocument("Professional Engineer License"))
	assert.False(t, IsPersonalDocument("PMP"))
}

func TestJobHistory_CurrentRole(t *testing.T) {
	text := "Senior Software Engineer at TechCorp\nJanuary 2020 - Present\n- Led migration to Kubernetes\n- Mentored four engineers"

	jobs := fallbackOnly().JobHistory(context.Background(), text)

	require.Len(t, jobs, 1)
	assert.Equal(t, "Senior Software Engineer", jobs[0].Title)
	assert.Equal(t, "TechCorp", jobs[0].Company)
	assert.True(t, jobs[0].CurrentlyWorking)
	assert.Equal(t, types.MonthYear{Month: "01", Year: "2020"}, jobs[0].StartDate)
	assert.Equal(t, types.MonthYear{}, jobs[0].EndDate)
	assert.Equal(t, []string{"Led migration to Kubernetes", "Mentored four engineers"}, jobs[0].Accomplishments)
}

func TestJobHistory_CurrentRoleSingleLine(t *testing.T) {
	jobs := fallbackOnly().JobHistory(context.Background(), "Senior Software Engineer at TechCorp, January 2020 - Present")

	require.Len(t, jobs, 1)
	assert.Equal(t, "Senior Software Engineer", jobs[0].Title)
	assert.Equal(t, "TechCorp", jobs[0].Company)
	assert.True(t, jobs[0].CurrentlyWorking)
	assert.Equal(t, types.MonthYear{}, jobs[0].EndDate)
}

func TestJobHistory_SeveralRoles(t *testing.T) {
	text := "Experience\n" +
		"Acme Corp | Software Engineer | 06/2016 - 12/2019\n" +
		"Built the billing system.\n" +
		"- Cut infrastructure costs 20%\n" +
		"TechCorp\n" +
		"Senior Engineer\n" +
		"Jan 2020 - Present\n" +
		"- Led the platform team\n" +
		"Education\n" +
		"State University, BS, 2012 - 2016"

	jobs := fallbackOnly().JobHistory(context.Background(), text)

	require.Len(t, jobs, 2)

	assert.Equal(t, "Software Engineer", jobs[0].Title)
	assert.Equal(t, "Acme Corp", jobs[0].Company)
	assert.Equal(t, types.MonthYear{Month: "06", Year: "2016"}, jobs[0].StartDate)
	assert.Equal(t, types.MonthYear{Month: "12", Year: "2019"}, jobs[0].EndDate)
	assert.False(t, jobs[0].CurrentlyWorking)
	assert.Equal(t, "Built the billing system.", jobs[0].JobDescription)
	assert.Equal(t, []string{"Cut infrastructure costs 20%"}, jobs[0].Accomplishments)

	assert.Equal(t, "Senior Engineer", jobs[1].Title)
	assert.Equal(t, "TechCorp", jobs[1].Company)
	assert.True(t, jobs[1].CurrentlyWorking)
	assert.Equal(t, []string{"Led the platform team"}, jobs[1].Accomplishments)
}

func TestJobHistory_DocumentsScannedSeparately(t *testing.T) {
	text := corpus.Block("a.pdf", "Engineer at Acme\n2015 - 2018\nShipped the product") + "\n\n" +
		corpus.Block("b.pdf", "Jane Doe\nAnalyst at Beta\n2018 - 2020")

	jobs := fallbackOnly().JobHistory(context.Background(), text)

	require.Len(t, jobs, 2)
	assert.Equal(t, "Shipped the product", jobs[0].JobDescription)
	assert.Equal(t, "Analyst", jobs[1].Title)
	assert.Equal(t, "Beta", jobs[1].Company)
}

func TestFinalizeJobHistory_CurrentRoleInvariant(t *testing.T) {
	jobs := FinalizeJobHistory([]types.JobHistoryEntry{
		{Title: "Engineer", CurrentlyWorking: true, EndDate: types.MonthYear{Month: "01", Year: "2024"}},
		{},
	})

	require.Len(t, jobs, 1)
	assert.Equal(t, types.MonthYear{}, jobs[0].EndDate)
	assert.NotNil(t, jobs[0].Accomplishments)
}
