package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dhamidi/hermes/format"
	"github.com/dhamidi/hermes/jpql/assist"
)

// ParseRequest is the body of POST /v1/parse. Tolerant defaults to true.
type ParseRequest struct {
	Query    string `json:"query"`
	Version  string `json:"version,omitempty"`
	Tolerant *bool  `json:"tolerant,omitempty"`
	Tokens   bool   `json:"tokens,omitempty"`
}

type ParseResponse struct {
	Version  string           `json:"version"`
	Valid    bool             `json:"valid"`
	Tree     *format.ASTNode  `json:"tree"`
	Problems []assist.Problem `json:"problems"`
}

type FormatRequest struct {
	Query     string `json:"query"`
	Version   string `json:"version,omitempty"`
	Multiline bool   `json:"multiline,omitempty"`
}

type FormatResponse struct {
	Query string `json:"query"`
}

type CompleteRequest struct {
	Query   string `json:"query"`
	Cursor  int    `json:"cursor"`
	Version string `json:"version,omitempty"`
}

type CompleteResponse struct {
	Items []assist.Proposal `json:"items"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	s.metrics.requests.WithLabelValues("parse").Inc()
	var req ParseRequest
	if !s.decode(w, r, &req) {
		return
	}
	resp, err := s.parseResult(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) parseResult(req ParseRequest) (*ParseResponse, error) {
	version, err := s.version(req.Version)
	if err != nil {
		return nil, err
	}
	tolerant := req.Tolerant == nil || *req.Tolerant
	root := s.parse(req.Query, version, tolerant)
	problems := assist.Problems(root)
	s.metrics.problems.Add(float64(len(problems)))
	if problems == nil {
		problems = []assist.Problem{}
	}
	return &ParseResponse{
		Version:  version.String(),
		Valid:    len(problems) == 0,
		Tree:     format.ToAST(root, req.Tokens),
		Problems: problems,
	}, nil
}

func (s *Server) handleFormat(w http.ResponseWriter, r *http.Request) {
	s.metrics.requests.WithLabelValues("format").Inc()
	var req FormatRequest
	if !s.decode(w, r, &req) {
		return
	}
	version, err := s.version(req.Version)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	printer := format.NewJPQLPrinter(nil)
	printer.Multiline = req.Multiline
	root := s.parse(req.Query, version, true)
	writeJSON(w, http.StatusOK, FormatResponse{Query: printer.Format(root)})
}

func (s *Server) handleComplete(w http.ResponseWriter, r *http.Request) {
	s.metrics.requests.WithLabelValues("complete").Inc()
	var req CompleteRequest
	if !s.decode(w, r, &req) {
		return
	}
	items, err := s.complete(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, CompleteResponse{Items: items})
}

func (s *Server) complete(req CompleteRequest) ([]assist.Proposal, error) {
	version, err := s.version(req.Version)
	if err != nil {
		return nil, err
	}
	if req.Cursor < 0 || req.Cursor > len(req.Query) {
		return nil, fmt.Errorf("cursor %d outside query of length %d", req.Cursor, len(req.Query))
	}
	items := assist.CompleteAt(s.parse(req.Query, version, true), req.Cursor)
	if items == nil {
		items = []assist.Proposal{}
	}
	return items, nil
}

func (s *Server) handleGrammar(w http.ResponseWriter, r *http.Request) {
	s.metrics.requests.WithLabelValues("grammar").Inc()
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if err := s.registry.WriteGrammar(w); err != nil {
		log.Errorf("writing grammar: %s", err)
	}
}

// handleKeywords lists the reserved words of the version named by the
// "version" query parameter.
func (s *Server) handleKeywords(w http.ResponseWriter, r *http.Request) {
	s.metrics.requests.WithLabelValues("keywords").Inc()
	version, err := s.version(r.URL.Query().Get("version"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, s.registry.Keywords(version))
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxRequestBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Errorf("writing response: %s", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
