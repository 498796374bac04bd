// Package llm - extractor.go builds structured extraction prompts.
package llm

import (
	"fmt"
	"strings"
)

// ExtractionSchema defines the structure for LLM-based content extraction.
// Rules come from the prompt catalog; Fields declare the exact output shape.
type ExtractionSchema struct {
	Name        string        // Schema name (e.g., "ContactInformation")
	Description string        // Instruction preamble with the normalisation rules
	Fields      []SchemaField // Expected top-level output fields
}

// SchemaField defines a single field in the extraction output.
type SchemaField struct {
	Name        string // JSON field name
	Type        string // Type hint, e.g. "string", "[]string" or an inline object shape
	Description string // Description for the LLM
}

// BuildExtractionPrompt constructs the LLM prompt from schema and input text.
func BuildExtractionPrompt(schema ExtractionSchema, inputText string) string {
	var sb strings.Builder

	sb.WriteString(schema.Description)
	sb.WriteString("\n\n")

	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n{\n")
	for i, field := range schema.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = "string"
		}
		sb.WriteString(fmt.Sprintf("  %q: %s", field.Name, typeHint))
		if field.Description != "" {
			sb.WriteString(fmt.Sprintf(" // %s", field.Description))
		}
		if i < len(schema.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n\n")

	sb.WriteString("IMPORTANT:\n")
	sb.WriteString("- Extract information directly from the text, do not invent or summarize.\n")
	sb.WriteString("- Every key above must be present. Use \"\" or [] when nothing is found, never null.\n")
	sb.WriteString("- Dates are {\"month\": \"MM\" or \"\", \"year\": \"YYYY\" or \"\"}.\n")
	sb.WriteString("- Return ONLY the JSON object, no markdown, no explanation, no code blocks.\n\n")

	sb.WriteString("Documents:\n\"\"\"\n")
	sb.WriteString(inputText)
	sb.WriteString("\n\"\"\"\n")

	return sb.String()
}

const monthYearShape = `{"month": string, "year": string}`

// ContactSchema returns the extraction schema for contact information.
func ContactSchema(rules string) ExtractionSchema {
	return ExtractionSchema{
		Name:        "ContactInformation",
		Description: rules,
		Fields: []SchemaField{
			{Name: "fullName", Type: "string", Description: "the candidate's full name, or empty"},
			{Name: "email", Type: "[]string", Description: "unique email addresses in order of appearance"},
			{Name: "phones", Type: "[]string", Description: "unique phone numbers in order of appearance"},
		},
	}
}

// SkillsSchema returns the extraction schema for the flat skill list.
func SkillsSchema(rules string) ExtractionSchema {
	return ExtractionSchema{
		Name:        "Skills",
		Description: rules,
		Fields: []SchemaField{
			{Name: "skills", Type: "[]string", Description: "at most 30 unique skills in standard terminology"},
		},
	}
}

// EducationSchema returns the extraction schema for education entries.
func EducationSchema(rules string) ExtractionSchema {
	return ExtractionSchema{
		Name:        "Education",
		Description: rules,
		Fields: []SchemaField{
			{
				Name: "education",
				Type: `[{"school": string, "degree": string, "startDate": ` + monthYearShape +
					`, "endDate": ` + monthYearShape + `, "grade": string}]`,
				Description: "most recent first",
			},
		},
	}
}

// CertificationsSchema returns the extraction schema for professional certifications.
func CertificationsSchema(rules string) ExtractionSchema {
	return ExtractionSchema{
		Name:        "Certifications",
		Description: rules,
		Fields: []SchemaField{
			{
				Name: "certifications",
				Type: `[{"certName": string, "issuer": string, "issuedDate": ` + monthYearShape +
					`, "credentialId": string}]`,
				Description: "professional credentials only",
			},
		},
	}
}

// JobHistorySchema returns the extraction schema for job history entries.
func JobHistorySchema(rules string) ExtractionSchema {
	return ExtractionSchema{
		Name:        "JobHistory",
		Description: rules,
		Fields: []SchemaField{
			{
				Name: "jobHistory",
				Type: `[{"title": string, "company": string, "startDate": ` + monthYearShape +
					`, "endDate": ` + monthYearShape + `, "currentlyWorking": bool, "jobDescription": string, "accomplishments": []string}]`,
				Description: "most recent first",
			},
		},
	}
}
