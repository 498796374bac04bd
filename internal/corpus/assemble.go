package corpus

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/resume-builder/internal/ingestion"
	"github.com/jonathan/resume-builder/internal/types"
)

const (
	beginMarker = "===== BEGIN DOCUMENT %s ====="
	endMarker   = "===== END DOCUMENT %s ====="
	// separator between consecutive document blocks
	separator = "\n\n"
)

var markerLine = regexp.MustCompile(`^===== (BEGIN|END) DOCUMENT (.*) =====$`)

// Source records what happened to one document during assembly
type Source struct {
	DocumentID string `json:"document_id"`
	Hash       string `json:"hash"`
	Characters int    `json:"characters"`
	Failed     bool   `json:"failed,omitempty"`
	Error      string `json:"error,omitempty"`
}

// Corpus is the assembled text plus per-document provenance
type Corpus struct {
	Text    string   `json:"text"`
	Sources []Source `json:"sources"`
}

// Failed returns the number of documents that could not be extracted
func (c *Corpus) Failed() int {
	n := 0
	for _, s := range c.Sources {
		if s.Failed {
			n++
		}
	}
	return n
}

// Assembler concatenates extracted documents into one corpus
type Assembler struct {
	extractor ingestion.TextExtractor
	logger    *zap.Logger
}

// NewAssembler creates an Assembler. A nil extractor uses ingestion.NewExtractor and a nil
// logger discards output.
func NewAssembler(extractor ingestion.TextExtractor, logger *zap.Logger) *Assembler {
	if extractor == nil {
		extractor = ingestion.NewExtractor()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Assembler{extractor: extractor, logger: logger}
}

// Assemble extracts every document in order and wraps each one in BEGIN/END markers
// carrying its id. A document that fails extraction gets a placeholder in its slot and
// never stops the rest. Documents are processed sequentially.
func (a *Assembler) Assemble(ctx context.Context, docs []types.Document) *Corpus {
	blocks := make([]string, 0, len(docs))
	sources := make([]Source, 0, len(docs))

	for _, doc := range docs {
		source := Source{DocumentID: doc.ID, Hash: ingestion.ContentHash(doc.Content)}

		text, err := a.extractor.Extract(ctx, doc)
		if err != nil {
			a.logger.Warn("document extraction failed",
				zap.String("document_id", doc.ID),
				zap.String("type", string(doc.Type)),
				zap.Error(err),
			)
			text = Placeholder(doc.ID)
			source.Failed = true
			source.Error = err.Error()
		}
		source.Characters = len([]rune(text))

		blocks = append(blocks, Block(doc.ID, text))
		sources = append(sources, source)
	}

	return &Corpus{
		Text:    strings.Join(blocks, separator),
		Sources: sources,
	}
}

// Block wraps text in the start and end markers for documentID
func Block(documentID, text string) string {
	id := markerID(documentID)
	return fmt.Sprintf(beginMarker, id) + "\n" + text + "\n" + fmt.Sprintf(endMarker, id)
}

// Placeholder is the text inserted for a document whose content could not be extracted
func Placeholder(documentID string) string {
	return fmt.Sprintf("[content of document %s could not be extracted]", markerID(documentID))
}

// Section is one document's slice of a corpus
type Section struct {
	DocumentID string
	Text       string
}

// Split parses a corpus back into its document sections. Text outside any markers is
// returned as a section with an empty id.
func Split(text string) []Section {
	var (
		sections []Section
		current  *Section
		loose    []string
		body     []string
	)
	flushLoose := func() {
		if s := strings.TrimSpace(strings.Join(loose, "\n")); s != "" {
			sections = append(sections, Section{Text: s})
		}
		loose = nil
	}

	for _, line := range strings.Split(text, "\n") {
		m := markerLine.FindStringSubmatch(strings.TrimSpace(line))
		switch {
		case m != nil && m[1] == "BEGIN":
			flushLoose()
			current = &Section{DocumentID: m[2]}
			body = nil
		case m != nil && m[1] == "END" && current != nil:
			current.Text = strings.Join(body, "\n")
			sections = append(sections, *current)
			current = nil
		case current != nil:
			body = append(body, line)
		default:
			loose = append(loose, line)
		}
	}
	if current != nil {
		current.Text = strings.Join(body, "\n")
		sections = append(sections, *current)
	}
	flushLoose()
	return sections
}

// StripMarkers removes marker lines and extraction placeholders, leaving only document text
func StripMarkers(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if markerLine.MatchString(trimmed) || isPlaceholder(trimmed) {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

func isPlaceholder(line string) bool {
	return strings.HasPrefix(line, "[content of document ") && strings.HasSuffix(line, " could not be extracted]")
}

// markerID keeps ids on a single line so markers stay parseable
func markerID(id string) string {
	id = strings.Join(strings.Fields(id), " ")
	if id == "" {
		return "unnamed"
	}
	return id
}
