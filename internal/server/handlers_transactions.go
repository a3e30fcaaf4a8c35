package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/simonvc/huvudbok/internal/ledger"
	"github.com/simonvc/huvudbok/internal/store"
	"go.uber.org/zap"
)

type createTransactionRequest struct {
	Description      string `json:"description"`
	Date             string `json:"date"`
	IsOpeningBalance bool   `json:"is_opening_balance"`
	Postings         []struct {
		AccountNumber      string          `json:"account_number"`
		AccountDescription string          `json:"account_description"`
		Debit              decimal.Decimal `json:"debit"`
		Credit             decimal.Decimal `json:"credit"`
	} `json:"postings"`
}

func (s *Server) createTransaction(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	txn := &ledger.Transaction{
		Description:      req.Description,
		Date:             req.Date,
		IsOpeningBalance: req.IsOpeningBalance,
	}
	for _, p := range req.Postings {
		txn.Postings = append(txn.Postings, ledger.Posting{
			AccountNumber:      p.AccountNumber,
			AccountDescription: p.AccountDescription,
			Debit:              p.Debit,
			Credit:             p.Credit,
		})
	}

	s.storeTransaction(w, r, txn)
}

// storeTransaction persists txn, drops the reports it makes stale and
// writes the stored verification.
func (s *Server) storeTransaction(w http.ResponseWriter, r *http.Request, txn *ledger.Transaction) {
	if err := s.store.CreateTransaction(r.Context(), txn); err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}

	date, _ := ledger.ParseDate(txn.Date)
	s.reports.InvalidateYears(date.Year())
	s.log.Info("transaction stored",
		zap.String("id", txn.ID),
		zap.String("date", txn.Date),
		zap.Int("postings", len(txn.Postings)),
	)

	// Fetch back the full transaction
	created, err := s.store.GetTransaction(r.Context(), txn.ID)
	if err != nil {
		writeJSON(w, http.StatusCreated, txn)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request) {
	filter := store.TxnFilter{
		Account: r.URL.Query().Get("account"),
		Limit:   intParam(r, "limit"),
		Offset:  intParam(r, "offset"),
	}
	if r.URL.Query().Get("year") != "" {
		y, err := yearParam(r)
		if err != nil {
			writeError(w, mapError(err), err.Error())
			return
		}
		filter.Year = y
	}

	txns, err := s.store.ListTransactions(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if txns == nil {
		txns = []ledger.Transaction{}
	}
	writeJSON(w, http.StatusOK, txns)
}

func (s *Server) getTransaction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	txn, err := s.store.GetTransaction(r.Context(), id)
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, txn)
}
