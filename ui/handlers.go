package ui

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"slotcorr/app"
	"slotcorr/domain/core"
	apperrors "slotcorr/internal/errors"
	"slotcorr/internal/report"
)

func (s *Server) handleCreateRun(w http.ResponseWriter, r *http.Request) {
	var req app.AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, apperrors.InvalidInput("request body is not valid JSON"))
		return
	}

	run, err := s.analysis.Run(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, run)
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, apperrors.InvalidInput("limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	runs, err := s.analysis.ListRuns(r.Context(), limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"runs": runs})
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	id, err := core.ParseRunID(chi.URLParam(r, "runID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, apperrors.InvalidInput(err.Error()))
		return
	}

	run, err := s.analysis.GetRun(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func (s *Server) handleRunReport(w http.ResponseWriter, r *http.Request) {
	id, err := core.ParseRunID(chi.URLParam(r, "runID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, apperrors.InvalidInput(err.Error()))
		return
	}

	run, err := s.analysis.GetRun(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(report.HTML(run)); err != nil {
		log.Printf("[Server] failed to write report for run %s: %v", id, err)
	}
}

// writeDomainError maps domain errors onto HTTP statuses and stable codes.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case core.IsNotFoundError(err):
		writeError(w, http.StatusNotFound, apperrors.New(apperrors.CodeNotFound, err.Error()))
	case core.IsDegenerateInputError(err):
		writeError(w, http.StatusUnprocessableEntity, apperrors.New(apperrors.CodeDegenerateInput, err.Error()))
	case errors.Is(err, core.ErrInvalidConfig):
		writeError(w, http.StatusBadRequest, apperrors.New(apperrors.CodeConfigInvalid, err.Error()))
	default:
		log.Printf("[Server] internal error: %v", err)
		writeError(w, http.StatusInternalServerError, apperrors.InternalError("estimation failed"))
	}
}

func writeError(w http.ResponseWriter, status int, appErr *apperrors.AppError) {
	writeJSON(w, status, map[string]string{
		"code":  appErr.Code,
		"error": appErr.Message,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("[Server] failed to encode response: %v", err)
	}
}
