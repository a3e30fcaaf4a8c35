package server

import (
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/simonvc/huvudbok/internal/reporting"
	"github.com/simonvc/huvudbok/internal/store"
	"go.uber.org/zap"
)

type Server struct {
	store   *store.Store
	reports *reporting.Service
	router  chi.Router
	addr    string
	log     *zap.Logger
}

func New(st *store.Store, reports *reporting.Service, addr string, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	s := &Server{store: st, reports: reports, router: r, addr: addr, log: logger}

	r.Route("/api/v1", func(r chi.Router) {
		// Verifications
		r.Post("/transactions", s.createTransaction)
		r.Get("/transactions", s.listTransactions)
		r.Get("/transactions/{id}", s.getTransaction)

		// Posting templates
		r.Get("/templates", s.listTemplates)
		r.Post("/templates/{kind}", s.applyTemplate)

		// BAS chart reference
		r.Get("/chart", s.getChart)
		r.Get("/accounts/{number}/classification", s.classifyAccount)

		// Reports
		r.Get("/reports/balance-sheet", s.balanceSheet)
		r.Get("/reports/income-statement", s.incomeStatement)
		r.Get("/reports/vat", s.vatReport)
		r.Post("/reports/invalidate", s.invalidateReports)
	})

	return s
}

// requestLogger logs one line per request.
func requestLogger(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			logger.Info("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}

func (s *Server) ListenAndServe() error {
	s.log.Info("huvudbok server listening", zap.String("addr", s.addr))
	return http.ListenAndServe(s.addr, s.router)
}

func (s *Server) Serve(ln net.Listener) error {
	s.log.Info("huvudbok server listening", zap.String("addr", ln.Addr().String()))
	return http.Serve(ln, s.router)
}

func (s *Server) Handler() http.Handler {
	return s.router
}
