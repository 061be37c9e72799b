package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/aatumaykin/cronlens/internal/cron"
	"github.com/aatumaykin/cronlens/internal/locale"
)

// ErrorResponse is returned with every 4xx status
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the JSON response for GET /health
type HealthResponse struct {
	Status string `json:"status"`
}

// ValidateResponse is the JSON response for GET /api/validate
type ValidateResponse struct {
	Field string `json:"field"`
	Value string `json:"value"`
	Valid bool   `json:"valid"`
}

// ParseResponse is the JSON response for GET /api/parse
type ParseResponse struct {
	Expression string           `json:"expression"`
	Fields     *cron.Expression `json:"fields"`
}

// NextResponse is the JSON response for GET /api/next
type NextResponse struct {
	Expression string      `json:"expression"`
	Next       []time.Time `json:"next"`
}

func (s *Server) handleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
	}
}

// handleValidate checks a single field value: ?field=minute&value=*/5
func (s *Server) handleValidate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ft, err := cron.ParseFieldType(r.URL.Query().Get("field"))
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}

		value := r.URL.Query().Get("value")
		valid := cron.ValidateField(value, ft)
		s.metrics.RecordFieldCheck(ft.String(), valid)

		writeJSON(w, http.StatusOK, ValidateResponse{Field: ft.String(), Value: value, Valid: valid})
	}
}

func (s *Server) handleParse() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		expr, err := cron.Parse(r.URL.Query().Get("expr"))
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		writeJSON(w, http.StatusOK, ParseResponse{Expression: expr.String(), Fields: expr})
	}
}

// handleDescribe always answers 200: an invalid expression is a result of type "error".
func (s *Server) handleDescribe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		from, count, err := s.runParams(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}

		lang := s.locale.String()
		if l := q.Get("lang"); l != "" {
			lang = locale.Resolve(l).String()
		}

		out := cron.Explain(q.Get("expr"), lang, from, count, s.estimator)
		s.metrics.RecordDescribe(string(out.Result.Type))
		if out.Result.Type != cron.TypeError && len(out.Next) < count {
			s.metrics.RecordHorizonExhausted()
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func (s *Server) handleNext() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		expr, err := cron.Parse(r.URL.Query().Get("expr"))
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}

		from, count, err := s.runParams(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}

		runs := s.estimator.NextRuns(expr, from, count)
		if len(runs) < count {
			s.metrics.RecordHorizonExhausted()
		}
		writeJSON(w, http.StatusOK, NextResponse{Expression: expr.String(), Next: runs})
	}
}

// runParams reads ?from=RFC3339&count=N, defaulting to now and the configured count.
// from is moved into the configured timezone before matching.
func (s *Server) runParams(r *http.Request) (time.Time, int, error) {
	q := r.URL.Query()

	from := s.now().In(s.location)
	if v := q.Get("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return time.Time{}, 0, fmt.Errorf("invalid from: %w", err)
		}
		from = t.In(s.location)
	}

	count := s.cfg.Estimator.Count
	if v := q.Get("count"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return time.Time{}, 0, fmt.Errorf("invalid count: %q", v)
		}
		if n > s.cfg.Server.MaxRunCount {
			return time.Time{}, 0, fmt.Errorf("count %d exceeds maximum %d", n, s.cfg.Server.MaxRunCount)
		}
		count = n
	}

	return from, count, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, ErrorResponse{Error: err.Error()})
}
