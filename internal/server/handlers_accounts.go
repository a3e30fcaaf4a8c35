package server

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/simonvc/huvudbok/internal/ledger"
)

func (s *Server) getChart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ledger.AllChartEntries())
}

type classificationResponse struct {
	AccountNumber  string                `json:"account_number"`
	Name           string                `json:"name,omitempty"`
	Classification ledger.Classification `json:"classification"`
	VatBox         string                `json:"vat_box,omitempty"`
}

func (s *Server) classifyAccount(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "number")
	if !ledger.ValidAccountNumber(number) {
		err := fmt.Errorf("%w: %q", ledger.ErrInvalidAccountNumber, number)
		writeError(w, mapError(err), err.Error())
		return
	}

	resp := classificationResponse{
		AccountNumber:  number,
		Classification: ledger.Classify(number),
	}
	if entry, ok := ledger.LookupChartEntry(number); ok {
		resp.Name = entry.Name
	}
	if box, ok := ledger.VatBoxFor(number); ok {
		resp.VatBox = box.Code
	}
	writeJSON(w, http.StatusOK, resp)
}
