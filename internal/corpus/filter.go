// Package corpus selects a user's biographical documents and assembles them into one
// marker-delimited text corpus for the field extractors.
package corpus

import (
	"github.com/jonathan/resume-builder/internal/types"
)

// biographical is the closed allow-list of categories that may enter a corpus.
// Anything not listed, including job postings and identity documents, is excluded.
var biographical = map[types.DocumentCategory]struct{}{
	types.CategoryUnspecified:  {},
	types.CategoryResume:       {},
	types.CategoryCV:           {},
	types.CategoryTranscript:   {},
	types.CategoryCertificate:  {},
	types.CategoryReference:    {},
	types.CategoryPortfolio:    {},
	types.CategoryBiographical: {},
}

// IsBiographical reports whether documents of category c may enter a corpus
func IsBiographical(c types.DocumentCategory) bool {
	_, ok := biographical[c]
	return ok
}

// FilterBiographical splits docs into those allowed into a corpus and those excluded.
// Input order is preserved in both results.
func FilterBiographical(docs []types.Document) (kept, excluded []types.Document) {
	kept = make([]types.Document, 0, len(docs))
	for _, doc := range docs {
		if IsBiographical(doc.Category) {
			kept = append(kept, doc)
			continue
		}
		excluded = append(excluded, doc)
	}
	return kept, excluded
}
