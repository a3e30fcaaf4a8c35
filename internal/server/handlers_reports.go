package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/simonvc/huvudbok/internal/reporting"
)

func (s *Server) balanceSheet(w http.ResponseWriter, r *http.Request) {
	year, err := yearParam(r)
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	bs, err := s.reports.BalanceSheet(r.Context(), year, periodParam(r))
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, bs)
}

func (s *Server) incomeStatement(w http.ResponseWriter, r *http.Request) {
	year, err := yearParam(r)
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	is, err := s.reports.IncomeStatement(r.Context(), year)
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, is)
}

func (s *Server) vatReport(w http.ResponseWriter, r *http.Request) {
	year, err := yearParam(r)
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	vat, err := s.reports.VatReport(r.Context(), year, periodParam(r))
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, vat)
}

type invalidateRequest struct {
	Keys  []string `json:"keys"`
	Years []int    `json:"years"`
}

type invalidateResponse struct {
	Invalidated []string `json:"invalidated"`
	Flushed     bool     `json:"flushed,omitempty"`
}

// invalidateReports drops cached reports by key or by year. An empty
// request flushes the whole cache.
func (s *Server) invalidateReports(w http.ResponseWriter, r *http.Request) {
	var req invalidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	if len(req.Keys) == 0 && len(req.Years) == 0 {
		s.reports.Flush()
		writeJSON(w, http.StatusOK, invalidateResponse{Invalidated: []string{}, Flushed: true})
		return
	}

	keys := append([]string{}, req.Keys...)
	for _, y := range req.Years {
		keys = append(keys, reporting.KeysForYear(y)...)
	}
	s.reports.Invalidate(keys...)
	writeJSON(w, http.StatusOK, invalidateResponse{Invalidated: keys})
}
