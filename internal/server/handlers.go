package server

import (
	"errors"
	"fmt"
	"net/http"

	gojson "github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	"github.com/reoring/draftkit/draft"
	"github.com/reoring/draftkit/migrate"
	"github.com/reoring/draftkit/validate"
)

// DetectRequest is the body of POST /api/v1/detect.
type DetectRequest struct {
	Schema any `json:"schema" jsonschema:"required"`
}

// DetectResponse describes the detected dialect.
type DetectResponse struct {
	Draft       draft.Draft `json:"draft"`
	DisplayName string      `json:"displayName"`
	SchemaURI   string      `json:"schemaURI"`
	Compatible  bool        `json:"compatible"`
}

// MigrateRequest is the body of POST /api/v1/migrate and /api/v1/summary.
type MigrateRequest struct {
	Schema    any    `json:"schema" jsonschema:"required"`
	FromDraft string `json:"fromDraft,omitempty" jsonschema:"enum=draft-07,enum=2019-09,enum=2020-12"`
}

// ValidateRequest is the body of POST /api/v1/validate.
type ValidateRequest struct {
	Schema any    `json:"schema" jsonschema:"required"`
	Data   any    `json:"data"`
	Draft  string `json:"draft,omitempty" jsonschema:"enum=draft-07,enum=2019-09,enum=2020-12"`
}

// ValidateResponse is a validation result with the dialect that produced it.
type ValidateResponse struct {
	validate.Result
	Draft draft.Draft `json:"draft"`
}

// CheckRequest is the body of POST /api/v1/check.
type CheckRequest struct {
	Schema any    `json:"schema" jsonschema:"required"`
	Draft  string `json:"draft,omitempty" jsonschema:"enum=draft-07,enum=2019-09,enum=2020-12"`
}

// CheckResponse reports meta-validation of a schema.
type CheckResponse struct {
	Valid bool        `json:"valid"`
	Draft draft.Draft `json:"draft"`
	Error string      `json:"error,omitempty"`
}

// DraftInfo describes one supported dialect.
type DraftInfo struct {
	Draft       draft.Draft    `json:"draft"`
	DisplayName string         `json:"displayName"`
	SchemaURI   string         `json:"schemaURI"`
	Engine      string         `json:"engine"`
	Features    draft.Features `json:"features"`
}

// DraftsResponse is returned by GET /api/v1/drafts.
type DraftsResponse struct {
	Drafts []DraftInfo `json:"drafts"`
	Latest draft.Draft `json:"latest"`
}

// ErrorResponse is returned for malformed requests.
type ErrorResponse struct {
	Error string `json:"error"`
}

var errMissingSchema = errors.New("schema is required")

func (s *Server) listDrafts(w http.ResponseWriter, r *http.Request) {
	resp := DraftsResponse{Latest: draft.Latest}
	for _, d := range draft.Supported() {
		info := validate.Info(d)
		resp.Drafts = append(resp.Drafts, DraftInfo{
			Draft:       d,
			DisplayName: d.DisplayName(),
			SchemaURI:   d.URI(),
			Engine:      info.Engine,
			Features:    info.Supports,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) detect(w http.ResponseWriter, r *http.Request) {
	var req DetectRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	if req.Schema == nil {
		writeError(w, http.StatusBadRequest, errMissingSchema)
		return
	}
	d := draft.Detect(req.Schema)
	s.metrics.detected(d)
	writeJSON(w, http.StatusOK, DetectResponse{
		Draft:       d,
		DisplayName: d.DisplayName(),
		SchemaURI:   d.URI(),
		Compatible:  draft.IsCompatible(req.Schema, d),
	})
}

func (s *Server) migrate(w http.ResponseWriter, r *http.Request) {
	req, from, ok := s.migrateRequest(w, r)
	if !ok {
		return
	}
	report := migrate.MigrateWithReport(req.Schema, from)
	s.metrics.migrated(report.Summary.SourceDraft, report.Completeness.Success)
	if !report.Completeness.Success {
		log.Debug().Strs("warnings", report.Completeness.Warnings).Msg("Incomplete migration")
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) summary(w http.ResponseWriter, r *http.Request) {
	req, from, ok := s.migrateRequest(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, migrate.Summarize(req.Schema, from))
}

func (s *Server) migrateRequest(w http.ResponseWriter, r *http.Request) (MigrateRequest, draft.Draft, bool) {
	var req MigrateRequest
	if !decodeRequest(w, r, &req) {
		return req, "", false
	}
	if req.Schema == nil {
		writeError(w, http.StatusBadRequest, errMissingSchema)
		return req, "", false
	}
	from, err := optionalDraft(req.FromDraft)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return req, "", false
	}
	return req, from, true
}

func (s *Server) validate(w http.ResponseWriter, r *http.Request) {
	var req ValidateRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	if req.Schema == nil {
		writeError(w, http.StatusBadRequest, errMissingSchema)
		return
	}
	d, err := optionalDraft(req.Draft)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if d == "" {
		d = draft.Detect(req.Schema)
	}
	res := validate.Validate(req.Schema, req.Data, d, validate.DefaultOptions())
	s.metrics.validated(d, res.Valid)
	writeJSON(w, http.StatusOK, ValidateResponse{Result: res, Draft: d})
}

func (s *Server) check(w http.ResponseWriter, r *http.Request) {
	var req CheckRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	if req.Schema == nil {
		writeError(w, http.StatusBadRequest, errMissingSchema)
		return
	}
	d, err := optionalDraft(req.Draft)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if d == "" {
		d = draft.Detect(req.Schema)
	}
	resp := CheckResponse{Valid: true, Draft: d}
	if err := validate.CheckSchema(req.Schema, d); err != nil {
		resp.Valid = false
		resp.Error = err.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}

// healthCheck returns server health status
func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

// handleOptions handles CORS preflight requests
func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func optionalDraft(s string) (draft.Draft, error) {
	if s == "" {
		return "", nil
	}
	return draft.Parse(s)
}

// decodeRequest reads a JSON body into v, keeping numbers as json.Number.
// It writes a 400 response and returns false on failure.
func decodeRequest(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := gojson.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := gojson.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, ErrorResponse{Error: err.Error()})
}
