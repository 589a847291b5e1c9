package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Leo-Carroll/EconBot/internal/economy"
)

// Server exposes a read-only view of the economy over HTTP. All mutation
// happens through the chat commands; this surface exists for dashboards and
// the econctl CLI.
type Server struct {
	log  *slog.Logger
	econ *economy.Service
	mux  *chi.Mux
}

func New(logger *slog.Logger, econ *economy.Service) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		log:  logger,
		econ: econ,
		mux:  chi.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) routes() {
	r := s.mux
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Get("/leaderboard", s.handleLeaderboard)
		r.Get("/profiles/{id}", s.handleProfile)
		r.Get("/profiles/{id}/loans", s.handleLoansGiven)
		r.Get("/profiles/{id}/debts", s.handleLoansOwed)

		r.Get("/catalog/jobs", s.handleCatalogJobs)
		r.Get("/catalog/houses", s.handleCatalogHouses)
		r.Get("/catalog/businesses", s.handleCatalogBusinesses)
		r.Get("/catalog/illegal-businesses", s.handleCatalogIllegal)
		r.Get("/catalog/drugs", s.handleCatalogDrugs)
	})
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}
	rows, err := s.econ.Leaderboard(r.Context(), limit)
	if err != nil {
		s.log.Error("leaderboard", "err", err)
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"leaderboard": rows})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	profile, err := s.econ.Profile(r.Context(), id)
	if err != nil {
		s.log.Error("profile", "user", id, "err", err)
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleLoansGiven(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	loans, err := s.econ.LoansGiven(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"loans": loans})
}

func (s *Server) handleLoansOwed(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	loans, err := s.econ.LoansOwed(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"debts": loans})
}

func (s *Server) handleCatalogJobs(w http.ResponseWriter, _ *http.Request) {
	type rank struct {
		Title        string `json:"title"`
		HourlyPay    int64  `json:"hourly_pay"`
		PromoteAfter int    `json:"promote_after"`
	}
	var tracks [][]rank
	for tier := 1; tier < len(economy.Jobs); tier++ {
		var track []rank
		for _, r := range economy.Jobs[tier] {
			track = append(track, rank{Title: r.Title, HourlyPay: r.HourlyPay, PromoteAfter: r.PromoteAfter})
		}
		tracks = append(tracks, track)
	}
	writeJSON(w, http.StatusOK, map[string]any{"jobs": tracks})
}

func (s *Server) handleCatalogHouses(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"houses": economy.Houses})
}

func (s *Server) handleCatalogBusinesses(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"businesses": economy.Businesses})
}

func (s *Server) handleCatalogIllegal(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"minimum_balance":    economy.IllegalShopMinimum,
		"illegal_businesses": economy.IllegalBusinesses,
	})
}

func (s *Server) handleCatalogDrugs(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"drugs": economy.Drugs})
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, economy.ErrLoanNotFound), errors.Is(err, economy.ErrItemNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, economy.ErrInsufficientFunds), errors.Is(err, economy.ErrInvalidBet),
		errors.Is(err, economy.ErrInvalidAsset):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, economy.ErrPermissionDenied):
		writeError(w, http.StatusForbidden, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": strings.TrimSpace(message)})
}
