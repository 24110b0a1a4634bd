package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/pipeforge-labs/pipeforge/internal/state"
	"github.com/pipeforge-labs/pipeforge/pkg/descriptor"
	"github.com/pipeforge-labs/pipeforge/pkg/parser"
)

type compileRequest struct {
	SQL      string         `json:"sql"`
	Pipeline string         `json:"pipeline,omitempty"`
	Config   map[string]any `json:"config,omitempty"`
}

type tokensRequest struct {
	SQL string `json:"sql"`
}

type tokenInfo struct {
	Kind    string `json:"kind"`
	Literal string `json:"literal"`
	Line    int    `json:"line"`
	Col     int    `json:"col"`
}

type errorBody struct {
	Message string `json:"message"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

// handleCompile compiles one statement into a pipeline descriptor.
// Request options overlay the server's base compile config; a pipeline
// name makes the result part of the generation history.
func (s *Server) handleCompile(w http.ResponseWriter, r *http.Request) {
	var req compileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if strings.TrimSpace(req.SQL) == "" {
		writeError(w, http.StatusUnprocessableEntity, "sql is required")
		return
	}

	cfg := s.CompileConfig()
	if len(req.Config) > 0 {
		merged, err := cfg.MergeMap(req.Config)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		cfg = merged
	}

	desc, err := compile(req.SQL, cfg)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if req.Pipeline != "" && s.store != nil {
		s.record(r, req, desc)
	}

	writeJSON(w, http.StatusOK, desc)
}

// compile runs one statement through the parse and build stages.
func compile(sql string, cfg descriptor.Config) (*descriptor.Descriptor, error) {
	stmt, err := parser.ParseOne(sql)
	if err != nil {
		return nil, err
	}
	return descriptor.Build(stmt, cfg)
}

// record stores a compile result in the generation history. Failures are
// logged and do not affect the response; the descriptor was already built.
func (s *Server) record(r *http.Request, req compileRequest, desc *descriptor.Descriptor) {
	descJSON, err := json.Marshal(desc)
	if err != nil {
		s.logger.Warn("failed to encode descriptor for history", "pipeline", req.Pipeline, "error", err)
		return
	}
	gen := &state.Generation{
		Pipeline:       req.Pipeline,
		SQLText:        req.SQL,
		DescriptorJSON: string(descJSON),
		SourceType:     desc.Source.Type,
		SinkType:       desc.Sink.Type,
		Status:         state.GenerationStatusSuccess,
	}
	if err := s.store.RecordGeneration(r.Context(), gen); err != nil {
		s.logger.Warn("failed to record generation", "pipeline", req.Pipeline, "error", err)
	}
}

// handleTokens returns the token stream for a statement, for editor and
// debugging integrations.
func (s *Server) handleTokens(w http.ResponseWriter, r *http.Request) {
	var req tokensRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if strings.TrimSpace(req.SQL) == "" {
		writeError(w, http.StatusUnprocessableEntity, "sql is required")
		return
	}

	tokens, err := parser.Tokenize(req.SQL)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	out := make([]tokenInfo, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Type == parser.TOKEN_EOF {
			continue
		}
		out = append(out, tokenInfo{
			Kind:    tok.Type.String(),
			Literal: tok.Literal,
			Line:    tok.Pos.Line,
			Col:     tok.Pos.Column,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"tokens": out})
}

// handleHistory lists recorded generations, newest first.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "generation history is not available")
		return
	}

	filter := state.ListFilter{Pipeline: r.URL.Query().Get("pipeline")}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid limit %q", raw))
			return
		}
		filter.Limit = limit
	}

	gens, err := s.store.ListGenerations(r.Context(), filter)
	if err != nil {
		s.logger.Error("failed to list generations", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list generations")
		return
	}
	if gens == nil {
		gens = []*state.Generation{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"generations": gens})
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorEnvelope{Error: errorBody{Message: msg}})
}
