package ingestion

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

var (
	multiSpace  = regexp.MustCompile(`\s+`)
	excessBlank = regexp.MustCompile(`\n\n\n+`)
)

// bulletGlyphs are rewritten to "- " so downstream heuristics see one bullet style
var bulletGlyphs = []string{"• ", "· ", "▪ ", "◦ ", "● ", "– "}

// CleanText cleans and normalizes extracted text while preserving line structure
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = strings.ReplaceAll(content, "\u00a0", " ")
	content = strings.ReplaceAll(content, "\u200b", "")

	lines := strings.Split(content, "\n")
	cleanedLines := make([]string, 0, len(lines))
	for _, line := range lines {
		cleanedLines = append(cleanedLines, cleanLine(line))
	}

	result := strings.Join(cleanedLines, "\n")
	result = excessBlank.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine trims a line, collapses inner whitespace and normalizes bullets
func cleanLine(line string) string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return ""
	}

	for _, glyph := range bulletGlyphs {
		if strings.HasPrefix(trimmed, glyph) {
			trimmed = "- " + strings.TrimPrefix(trimmed, glyph)
			break
		}
	}
	if strings.HasPrefix(trimmed, "* ") {
		trimmed = "- " + strings.TrimPrefix(trimmed, "* ")
	}

	return multiSpace.ReplaceAllString(trimmed, " ")
}

// IsBulletLine reports whether a cleaned line is a bullet list item
func IsBulletLine(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "- ")
}

// ReadDocument loads a local file as a document. The document id is the file's base name
// and the type is taken from its extension.
func ReadDocument(path string) (types.Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return types.Document{}, fmt.Errorf("file not found: %w", err)
		}
		return types.Document{}, fmt.Errorf("failed to read file: %w", err)
	}

	name := filepath.Base(path)
	docType := types.DocumentTypeFromName(name)
	if docType == "" {
		return types.Document{}, &UnsupportedTypeError{Type: types.DocumentType(strings.TrimPrefix(filepath.Ext(name), "."))}
	}

	return types.Document{
		ID:      name,
		Name:    name,
		Type:    docType,
		Content: content,
	}, nil
}
