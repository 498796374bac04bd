package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/resume-builder/internal/corpus"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/history"
	"github.com/jonathan/resume-builder/internal/parsing"
	"github.com/jonathan/resume-builder/internal/pipeline"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/types"
)

// ParseRequest is the optional body of a parse request
type ParseRequest struct {
	PerDocument *bool `json:"per_document,omitempty"`
}

// ParseResponse is the result of a parse run
type ParseResponse struct {
	History      types.StructuredHistory `json:"history"`
	Sources      []corpus.Source         `json:"sources"`
	Excluded     []types.Document        `json:"excluded"`
	Stored       bool                    `json:"stored"`
	SchemaErrors []string                `json:"schema_errors,omitempty"`
	// Suggestions is set only when nothing was extracted for the field it covers
	Suggestions *Suggestions `json:"suggestions,omitempty"`
}

// Suggestions holds defaults a client may offer the user. They are never part of the history.
type Suggestions struct {
	Skills []string `json:"skills,omitempty"`
}

func newParseResponse(res *pipeline.Result) ParseResponse {
	resp := ParseResponse{
		History:      res.History,
		Sources:      res.Sources,
		Excluded:     res.Excluded,
		Stored:       res.Stored,
		SchemaErrors: res.SchemaErrors,
	}
	if resp.Sources == nil {
		resp.Sources = []corpus.Source{}
	}
	if resp.Excluded == nil {
		resp.Excluded = []types.Document{}
	}
	if len(res.History.Skills) == 0 {
		resp.Suggestions = &Suggestions{Skills: parsing.SuggestedSkills()}
	}
	return resp
}

// readBody reads the request body up to the upload limit and removes any callable-function
// envelope. An empty body is returned as nil.
func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxUpload))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, &ErrPayloadTooLarge{Limit: maxErr.Limit}
		}
		return nil, &ErrValidation{Field: "body", Message: err.Error()}
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil, nil
	}
	return UnwrapEnvelope(body), nil
}

// decodeBody reads and decodes a required JSON body into v
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	body, err := s.readBody(w, r)
	if err != nil {
		return err
	}
	if body == nil {
		return &ErrValidation{Field: "body", Message: "request body is required"}
	}
	if err := json.Unmarshal(body, v); err != nil {
		return &ErrValidation{Field: "body", Message: fmt.Sprintf("invalid JSON: %v", err)}
	}
	return nil
}

// userID returns the validated {id} path value
func userID(r *http.Request) (string, error) {
	id := r.PathValue("id")
	if _, err := db.ParseUserID(id); err != nil {
		return "", err
	}
	return id, nil
}

// handleUploadDocument stores one uploaded document
func (s *Server) handleUploadDocument(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	var req types.UploadDocumentRequest
	if err := s.decodeBody(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.handleError(w, r, &ErrValidation{Field: "document", Message: err.Error()})
		return
	}

	doc, err := req.Document()
	if err != nil {
		s.handleError(w, r, &ErrValidation{Field: "content", Message: err.Error()})
		return
	}
	if doc.Type == "" {
		s.handleError(w, r, &ErrUnsupportedDocument{Name: req.Name, Type: req.Type})
		return
	}

	rec, err := s.store.SaveDocument(r.Context(), uid, doc)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.logger.Info("document stored",
		zap.String("user_id", uid),
		zap.String("document_id", rec.ID.String()),
		zap.String("type", string(rec.Type)),
		zap.Int("size_bytes", rec.SizeBytes),
	)
	s.jsonResponse(w, http.StatusCreated, rec)
}

// handleListDocuments returns the metadata of a user's documents
func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	docs, err := s.store.ListDocuments(r.Context(), uid)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"documents": docs})
}

// parseOptions builds pipeline options from the request and the user's stored documents
func (s *Server) parseOptions(w http.ResponseWriter, r *http.Request) (pipeline.Options, error) {
	uid, err := userID(r)
	if err != nil {
		return pipeline.Options{}, err
	}

	body, err := s.readBody(w, r)
	if err != nil {
		return pipeline.Options{}, err
	}
	perDocument := s.perDocument
	if body != nil {
		var req ParseRequest
		if err := json.Unmarshal(body, &req); err != nil {
			return pipeline.Options{}, &ErrValidation{Field: "body", Message: fmt.Sprintf("invalid JSON: %v", err)}
		}
		if req.PerDocument != nil {
			perDocument = *req.PerDocument
		}
	}

	docs, err := s.store.LoadDocuments(r.Context(), uid)
	if err != nil {
		return pipeline.Options{}, err
	}
	return pipeline.Options{UserID: uid, Documents: docs, PerDocument: perDocument}, nil
}

// handleParse runs the pipeline over the user's stored documents
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	opts, err := s.parseOptions(w, r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	res, err := s.pipeline.Run(r.Context(), opts)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, newParseResponse(res))
}

// handleParseStream runs the pipeline and reports progress as Server-Sent Events
func (s *Server) handleParseStream(w http.ResponseWriter, r *http.Request) {
	opts, err := s.parseOptions(w, r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	opts.OnProgress = func(event pipeline.ProgressEvent) {
		sse.WriteEvent("progress", event) //nolint:errcheck
	}

	res, err := s.pipeline.Run(r.Context(), opts)
	if err != nil {
		sse.WriteError(err.Error())
		return
	}
	sse.WriteComplete(newParseResponse(res))
}

// handleGetHistory returns the stored history, or the empty aggregate when there is none
func (s *Server) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	h, err := s.store.GetHistory(r.Context(), uid)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, h)
}

// handlePutHistory replaces the stored history with a sanitized copy of the body
func (s *Server) handlePutHistory(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	var h types.StructuredHistory
	if err := s.decodeBody(w, r, &h); err != nil {
		s.handleError(w, r, err)
		return
	}
	h = history.Sanitize(h)
	if err := schemas.ValidateHistory(h); err != nil {
		s.handleError(w, r, err)
		return
	}

	if err := s.store.SaveHistory(r.Context(), uid, h); err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, h)
}

// handlePutContact replaces only the contact field and returns the full history
func (s *Server) handlePutContact(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	var req types.UpdateContactRequest
	if err := s.decodeBody(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.handleError(w, r, &ErrValidation{Field: "contact", Message: err.Error()})
		return
	}

	contact := types.ContactInformation{
		FullName: strings.TrimSpace(req.FullName),
		Email:    parsing.DedupEmails(req.Email),
		Phones:   parsing.DedupPhones(req.Phones),
	}
	h, err := s.store.UpdateContact(r.Context(), uid, contact)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, h)
}

// handleExportHistory returns the stored history as an XLSX workbook
func (s *Server) handleExportHistory(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	h, err := s.store.GetHistory(r.Context(), uid)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	data, err := export.HistoryXLSX(h)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "history-"+uid+".xlsx"))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		s.logger.Error("failed to write export", zap.Error(err))
	}
}
