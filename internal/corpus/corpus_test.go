package corpus

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-builder/internal/ingestion"
	"github.com/jonathan/resume-builder/internal/types"
)

func TestFilterBiographical(t *testing.T) {
	docs := []types.Document{
		{ID: "resume", Category: types.CategoryResume},
		{ID: "posting", Category: types.CategoryJobPosting},
		{ID: "untagged"},
		{ID: "license", Category: types.CategoryDriverLicense},
		{ID: "cert", Category: types.CategoryCertificate},
		{ID: "passport", Category: types.CategoryPersonalID},
		{ID: "mystery", Category: "tax_return"},
	}

	kept, excluded := FilterBiographical(docs)

	assert.Equal(t, []string{"resume", "untagged", "cert"}, ids(kept))
	assert.Equal(t, []string{"posting", "license", "passport", "mystery"}, ids(excluded))
}

func TestFilterBiographical_Empty(t *testing.T) {
	kept, excluded := FilterBiographical(nil)
	assert.Empty(t, kept)
	assert.Empty(t, excluded)
}

func TestAssemble_OrderAndMarkers(t *testing.T) {
	docs := []types.Document{
		{ID: "b-second", Type: types.DocumentTypeTXT, Content: []byte("Jane Doe")},
		{ID: "a-first", Type: types.DocumentTypeTXT, Content: []byte("Skills: Go")},
	}

	c := NewAssembler(nil, nil).Assemble(context.Background(), docs)

	expected := "===== BEGIN DOCUMENT b-second =====\nJane Doe\n===== END DOCUMENT b-second =====" +
		"\n\n" +
		"===== BEGIN DOCUMENT a-first =====\nSkills: Go\n===== END DOCUMENT a-first ====="
	assert.Equal(t, expected, c.Text)
	require.Len(t, c.Sources, 2)
	assert.Equal(t, "b-second", c.Sources[0].DocumentID)
	assert.Equal(t, 0, c.Failed())
}

func TestAssemble_FailureGetsPlaceholder(t *testing.T) {
	extractor := ingestion.ExtractorFunc(func(_ context.Context, doc types.Document) (string, error) {
		if doc.ID == "broken" {
			return "", errors.New("corrupt file")
		}
		return string(doc.Content), nil
	})
	docs := []types.Document{
		{ID: "one", Content: []byte("first")},
		{ID: "broken", Content: []byte("???")},
		{ID: "three", Content: []byte("third")},
	}

	c := NewAssembler(extractor, nil).Assemble(context.Background(), docs)

	assert.Contains(t, c.Text, "===== BEGIN DOCUMENT broken =====\n[content of document broken could not be extracted]\n===== END DOCUMENT broken =====")
	assert.Less(t, strings.Index(c.Text, "first"), strings.Index(c.Text, "broken"))
	assert.Less(t, strings.Index(c.Text, "broken"), strings.Index(c.Text, "third"))
	assert.Equal(t, 1, c.Failed())
	assert.True(t, c.Sources[1].Failed)
	assert.Equal(t, "corrupt file", c.Sources[1].Error)
	assert.NotContains(t, c.Text, "corrupt file")
}

func TestAssemble_NoDocuments(t *testing.T) {
	c := NewAssembler(nil, nil).Assemble(context.Background(), nil)
	assert.Equal(t, "", c.Text)
	assert.Empty(t, c.Sources)
}

func TestBlock_MultilineID(t *testing.T) {
	block := Block("my\nresume.pdf", "text")
	assert.True(t, strings.HasPrefix(block, "===== BEGIN DOCUMENT my resume.pdf =====\n"))
	assert.Equal(t, "===== BEGIN DOCUMENT unnamed =====\nx\n===== END DOCUMENT unnamed =====", Block("  ", "x"))
}

func TestSplit(t *testing.T) {
	text := Block("a", "line 1\nline 2") + "\n\n" + Block("b", Placeholder("b"))

	sections := Split(text)

	require.Len(t, sections, 2)
	assert.Equal(t, Section{DocumentID: "a", Text: "line 1\nline 2"}, sections[0])
	assert.Equal(t, "b", sections[1].DocumentID)
}

func TestSplit_UnmarkedText(t *testing.T) {
	sections := Split("just a plain corpus")
	require.Len(t, sections, 1)
	assert.Equal(t, "", sections[0].DocumentID)
	assert.Equal(t, "just a plain corpus", sections[0].Text)
}

func TestStripMarkers(t *testing.T) {
	text := Block("a", "Jane Doe") + "\n\n" + Block("b", Placeholder("b"))
	assert.Equal(t, "Jane Doe\n", StripMarkers(text))
}

func ids(docs []types.Document) []string {
	out := make([]string, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.ID)
	}
	return out
}
