package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/simonvc/huvudbok/internal/ledger"
)

func (s *Server) listTemplates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ledger.Templates())
}

// applyTemplate builds a verification from a template and stores it. With
// ?dry_run=true the built verification is returned without storing.
func (s *Server) applyTemplate(w http.ResponseWriter, r *http.Request) {
	kind, err := ledger.ParseTemplateKind(chi.URLParam(r, "kind"))
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}

	var params ledger.TemplateParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	txn, err := ledger.ApplyTemplate(kind, params)
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	if r.URL.Query().Get("dry_run") == "true" {
		writeJSON(w, http.StatusOK, txn)
		return
	}
	s.storeTransaction(w, r, txn)
}
