package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	adapterstats "golehmer/adapters/stats"
	"golehmer/domain/core"
	"golehmer/domain/lehmer"
	"golehmer/ports"
)

// createRunRequest is the JSON form of a generator configuration. Seed
// is the only required field.
type createRunRequest struct {
	Modulus     int64  `json:"modulus,omitempty"`
	Multiplier  int64  `json:"multiplier,omitempty"`
	Seed        int64  `json:"seed"`
	StreamCount int    `json:"stream_count,omitempty"`
	Policy      string `json:"policy,omitempty"`
	JumpExp     int    `json:"jump_exp,omitempty"`
}

type selectRequest struct {
	Index int `json:"index"`
}

type drawResponse struct {
	RunID      string    `json:"run_id"`
	Values     []int64   `json:"values,omitempty"`
	Normalized []float64 `json:"normalized,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCreateRun(w http.ResponseWriter, r *http.Request) {
	var req createRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}

	record, err := s.runs.CreateRun(r.Context(), lehmer.Config{
		Modulus:     req.Modulus,
		Multiplier:  req.Multiplier,
		Seed:        req.Seed,
		StreamCount: req.StreamCount,
		Policy:      lehmer.SeedingPolicy(req.Policy),
		JumpExp:     uint(req.JumpExp),
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	records, err := s.runs.ListRuns(r.Context(), limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	id, ok := s.runID(w, r)
	if !ok {
		return
	}
	record, err := s.runs.GetRun(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (s *Server) handleDraw(w http.ResponseWriter, r *http.Request) {
	id, ok := s.runID(w, r)
	if !ok {
		return
	}

	n, _ := strconv.Atoi(r.URL.Query().Get("n"))
	if n < 1 {
		n = 1
	}

	if r.URL.Query().Get("normalized") == "true" {
		values, err := s.runs.DrawNormalized(r.Context(), id, n)
		if err != nil {
			s.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, drawResponse{RunID: id.String(), Normalized: values})
		return
	}

	values, err := s.runs.Draw(r.Context(), id, n)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, drawResponse{RunID: id.String(), Values: values})
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	id, ok := s.runID(w, r)
	if !ok {
		return
	}

	var req selectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}

	idx, err := s.runs.SelectStream(r.Context(), id, req.Index)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"stream_index": idx})
}

func (s *Server) handleReplay(w http.ResponseWriter, r *http.Request) {
	id, ok := s.runID(w, r)
	if !ok {
		return
	}
	if err := s.runs.Replay(r.Context(), id); err != nil {
		if core.IsNotFoundError(err) {
			s.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "reproduced"})
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	id, ok := s.runID(w, r)
	if !ok {
		return
	}
	report, err := s.reportFor(r, id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleReportHTML(w http.ResponseWriter, r *http.Request) {
	id, ok := s.runID(w, r)
	if !ok {
		return
	}
	report, err := s.reportFor(r, id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	record, err := s.runs.GetRun(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}

	md := adapterstats.BuildMarkdown(*record, report)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(renderMarkdown(md))
}

func (s *Server) reportFor(r *http.Request, id core.RunID) (*ports.QualityReport, error) {
	samples, _ := strconv.Atoi(r.URL.Query().Get("samples"))
	return s.runs.Report(r.Context(), id, samples)
}

// runID parses the path parameter, answering 400 itself on failure.
func (s *Server) runID(w http.ResponseWriter, r *http.Request) (core.RunID, bool) {
	id, err := core.ParseRunID(chi.URLParam(r, "runID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return "", false
	}
	return id, true
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case core.IsNotFoundError(err):
		status = http.StatusNotFound
	case core.IsConfigurationError(err), core.IsSeedError(err):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed: %v", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// renderMarkdown converts a markdown report to a standalone HTML page.
func renderMarkdown(md string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	doc := p.Parse([]byte(md))
	renderer := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.CompletePage,
	})
	return markdown.Render(doc, renderer)
}
