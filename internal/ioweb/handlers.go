package ioweb

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/http"

	"github.com/bikeq/bikeq/pkg/answer"
)

var errNotJSON = errors.New("body is not JSON")

type queryRequest struct {
	Question string `json:"question"`
}

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
	Error    string `json:"error,omitempty"`
}

func (s *Server) index(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(
		"bikeq: POST {\"question\": \"...\"} to /query, GET /health\n",
	))
}

func (s *Server) query(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := decodeJSON(r, &req); err != nil {
		res, st := answer.Failure(answer.RequestDecodeError(err), nil)
		writeJSON(w, httpStatus(st), res)
		return
	}

	res, st := s.svc.Answer(r.Context(), req.Question)
	writeJSON(w, httpStatus(st), res)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Health(r.Context()); err != nil {
		slog.Error("Health check failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, healthResponse{
			Status: "unhealthy",
			Error:  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{
		Status:   "healthy",
		Database: "connected",
	})
}

// decodeJSON accepts only bodies sent as application/json.
func decodeJSON(r *http.Request, v any) error {
	ct, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return err
	}
	if ct != "application/json" {
		return fmt.Errorf("content type %q: %w", ct, errNotJSON)
	}
	return json.NewDecoder(r.Body).Decode(v)
}

func httpStatus(st answer.Status) int {
	switch st {
	case answer.StatusOK:
		return http.StatusOK
	case answer.StatusBadRequest:
		return http.StatusBadRequest
	case answer.StatusUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Cannot write response", "error", err)
	}
}
