package dates

import (
	"testing"

	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeMonth(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1", "01"},
		{"01", "01"},
		{"12", "12"},
		{"13", ""},
		{"0", ""},
		{"Jan", "01"},
		{"jan.", "01"},
		{"September", "09"},
		{"Sept", "09"},
		{"  march ", "03"},
		{"", ""},
		{"Spring", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeMonth(tt.input))
		})
	}
}

func TestNormalizeYear(t *testing.T) {
	assert.Equal(t, "2023", NormalizeYear("2023"))
	assert.Equal(t, "2023", NormalizeYear(" 2023 "))
	assert.Equal(t, "", NormalizeYear("23"))
	assert.Equal(t, "", NormalizeYear("20230"))
	assert.Equal(t, "", NormalizeYear("abcd"))
}

func TestParse(t *testing.T) {
	tests := []struct {
		input    string
		expected types.MonthYear
		ok       bool
	}{
		{"12/1989", types.MonthYear{Month: "12", Year: "1989"}, true},
		{"3/2021", types.MonthYear{Month: "03", Year: "2021"}, true},
		{"March 2023", types.MonthYear{Month: "03", Year: "2023"}, true},
		{"Issued: Mar. 2023", types.MonthYear{Month: "03", Year: "2023"}, true},
		{"Sept, 2019", types.MonthYear{Month: "09", Year: "2019"}, true},
		{"2020-06", types.MonthYear{Month: "06", Year: "2020"}, true},
		{"2018", types.MonthYear{Year: "2018"}, true},
		{"no date here", types.MonthYear{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := Parse(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestFind_DoesNotDoubleCountYears(t *testing.T) {
	found := FindDates("Graduated 12/1989 and again in May 1995, then 2001")

	require.Len(t, found, 3)
	assert.Equal(t, types.MonthYear{Month: "12", Year: "1989"}, found[0])
	assert.Equal(t, types.MonthYear{Month: "05", Year: "1995"}, found[1])
	assert.Equal(t, types.MonthYear{Year: "2001"}, found[2])
}

func TestFind_IgnoresPhoneNumbers(t *testing.T) {
	found := FindDates("Call (555) 555-1990 or +1 734 555 0199")
	assert.Empty(t, found)
}

func TestFind_DecimalIsNotMonth(t *testing.T) {
	found := FindDates("Bachelor of Arts, GPA 3.8 - 2019")

	require.Len(t, found, 1)
	assert.Equal(t, types.MonthYear{Year: "2019"}, found[0])
}

func TestReconcileEducation_SingleDateIsEndDate(t *testing.T) {
	start, end := ReconcileEducation(FindDates("University of Michigan, MBA, Operations, 12/1989"))

	assert.Equal(t, types.MonthYear{}, start)
	assert.Equal(t, types.MonthYear{Month: "12", Year: "1989"}, end)
}

func TestReconcileEducation_ConflictingMonthsBlankMonth(t *testing.T) {
	candidates := []types.MonthYear{
		{Month: "05", Year: "2015"},
		{Month: "12", Year: "2015"},
		{Month: "09", Year: "2011"},
	}

	start, end := ReconcileEducation(candidates)

	assert.Equal(t, types.MonthYear{}, start)
	assert.Equal(t, types.MonthYear{Month: "", Year: "2015"}, end)
}

func TestReconcileEndDate(t *testing.T) {
	tests := []struct {
		name       string
		candidates []types.MonthYear
		expected   types.MonthYear
	}{
		{
			name:       "empty",
			candidates: nil,
			expected:   types.MonthYear{},
		},
		{
			name:       "agreeing months for latest year",
			candidates: []types.MonthYear{{Month: "06", Year: "2019"}, {Month: "06", Year: "2019"}, {Month: "09", Year: "2015"}},
			expected:   types.MonthYear{Month: "06", Year: "2019"},
		},
		{
			name:       "bare year does not conflict",
			candidates: []types.MonthYear{{Year: "2019"}, {Month: "06", Year: "2019"}},
			expected:   types.MonthYear{Month: "06", Year: "2019"},
		},
		{
			name:       "only bare years",
			candidates: []types.MonthYear{{Year: "2015"}, {Year: "2019"}},
			expected:   types.MonthYear{Year: "2019"},
		},
		{
			name:       "month only candidates are ignored",
			candidates: []types.MonthYear{{Month: "06"}},
			expected:   types.MonthYear{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ReconcileEndDate(tt.candidates))
		})
	}
}

func TestCollapseSameYear(t *testing.T) {
	start, end := CollapseSameYear(
		types.MonthYear{Month: "01", Year: "2020"},
		types.MonthYear{Month: "12", Year: "2020"},
	)
	assert.Equal(t, types.MonthYear{}, start)
	assert.Equal(t, types.MonthYear{Month: "12", Year: "2020"}, end)

	start, _ = CollapseSameYear(
		types.MonthYear{Month: "09", Year: "2016"},
		types.MonthYear{Month: "05", Year: "2020"},
	)
	assert.Equal(t, types.MonthYear{Month: "09", Year: "2016"}, start)

	start, _ = CollapseSameYear(types.MonthYear{Month: "09"}, types.MonthYear{})
	assert.Equal(t, types.MonthYear{Month: "09"}, start)
}

func TestFindRange(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Range
	}{
		{
			name:     "month name to present",
			input:    "January 2020 - Present",
			expected: Range{Start: types.MonthYear{Month: "01", Year: "2020"}, Current: true},
		},
		{
			name:  "closed range with en dash",
			input: "Mar 2016 – Dec 2019",
			expected: Range{
				Start: types.MonthYear{Month: "03", Year: "2016"},
				End:   types.MonthYear{Month: "12", Year: "2019"},
			},
		},
		{
			name:  "numeric range with to",
			input: "06/2012 to 02/2016",
			expected: Range{
				Start: types.MonthYear{Month: "06", Year: "2012"},
				End:   types.MonthYear{Month: "02", Year: "2016"},
			},
		},
		{
			name:     "year range",
			input:    "2010 - 2012",
			expected: Range{Start: types.MonthYear{Year: "2010"}, End: types.MonthYear{Year: "2012"}},
		},
		{
			name:     "current keyword elsewhere",
			input:    "Since 05/2021 (current role)",
			expected: Range{Start: types.MonthYear{Month: "05", Year: "2021"}, Current: true},
		},
		{
			name:     "single date",
			input:    "Left in 08/2014",
			expected: Range{End: types.MonthYear{Month: "08", Year: "2014"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FindRange(tt.input)
			require.True(t, ok)
			assert.Equal(t, tt.expected, got)
		})
	}

	_, ok := FindRange("no dates")
	assert.False(t, ok)
}

func TestIsPresent(t *testing.T) {
	assert.True(t, IsPresent("Jan 2020 - Present"))
	assert.True(t, IsPresent("currently employed"))
	assert.True(t, IsPresent("2019 - Current"))
	assert.False(t, IsPresent("Jan 2020 - Dec 2021"))
}
