package ingestion

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-builder/internal/types"
)

func TestCleanText_NormalizeWhitespace(t *testing.T) {
	result := CleanText("Senior    Engineer\t\tat   TechCorp")
	assert.Equal(t, "Senior Engineer at TechCorp", result)
}

func TestCleanText_NormalizeBullets(t *testing.T) {
	result := CleanText("• Led migration\n* Cut costs 20%\n  ▪ Mentored interns\n- Already normal")

	assert.Equal(t, "- Led migration\n- Cut costs 20%\n- Mentored interns\n- Already normal", result)
}

func TestCleanText_RemoveExcessiveBlankLines(t *testing.T) {
	result := CleanText("Education\n\n\n\n\nExperience")
	assert.Equal(t, "Education\n\nExperience", result)
}

func TestCleanText_NormalizeLineEndings(t *testing.T) {
	result := CleanText("Line 1\r\nLine 2\rLine 3\nLine 4")

	assert.NotContains(t, result, "\r")
	assert.Equal(t, "Line 1\nLine 2\nLine 3\nLine 4", result)
}

func TestCleanText_NonBreakingSpace(t *testing.T) {
	assert.Equal(t, "Jane Doe", CleanText("Jane\u00a0Doe\u200b"))
}

func TestCleanText_EmptyAndWhitespace(t *testing.T) {
	assert.Empty(t, CleanText(""))
	assert.Empty(t, CleanText("   \n  \n  "))
}

func TestCleanText_KeepsUnicode(t *testing.T) {
	result := CleanText("José Müller, Universität Zürich")
	assert.Equal(t, "José Müller, Universität Zürich", result)
}

func TestIsBulletLine(t *testing.T) {
	assert.True(t, IsBulletLine("- Shipped v2"))
	assert.True(t, IsBulletLine("   - Shipped v2"))
	assert.False(t, IsBulletLine("Shipped v2"))
	assert.False(t, IsBulletLine("-5% churn"))
}

func TestReadDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resume.txt")
	require.NoError(t, os.WriteFile(path, []byte("Jane Doe\njane@example.com"), 0644))

	doc, err := ReadDocument(path)
	require.NoError(t, err)

	assert.Equal(t, "resume.txt", doc.ID)
	assert.Equal(t, "resume.txt", doc.Name)
	assert.Equal(t, types.DocumentTypeTXT, doc.Type)
	assert.Equal(t, "Jane Doe\njane@example.com", string(doc.Content))
}

func TestReadDocument_NotFound(t *testing.T) {
	_, err := ReadDocument("/nonexistent/resume.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")
}

func TestReadDocument_UnsupportedExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "photo.png")
	require.NoError(t, os.WriteFile(path, []byte{0x89, 0x50}, 0644))

	_, err := ReadDocument(path)
	var unsupported *UnsupportedTypeError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, types.DocumentType("png"), unsupported.Type)
}
