// Package api serves the camp state over HTTP for tuning dashboards.
// GET endpoints are public (read-only observation). POST endpoints
// require a bearer token.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/talgya/camplife/internal/clock"
	"github.com/talgya/camplife/internal/defs"
	"github.com/talgya/camplife/internal/needs"
	"github.com/talgya/camplife/internal/session"
)

// Server serves a read-only view of a running camp session.
type Server struct {
	Session  *session.Session
	Engine   *clock.Engine
	News     *needs.MemoryNews
	Port     int
	AdminKey string // Bearer token for POST endpoints. Empty = POST disabled.
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	limiter := NewRateLimiter(240, time.Hour)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/news", s.handleNews)
	mux.HandleFunc("/api/v1/schedule", s.handleSchedule)
	mux.HandleFunc("/api/v1/opportunities", RateLimitMiddleware(limiter, s.handleOpportunities))
	mux.HandleFunc("/api/v1/commitments", s.handleCommitments)

	mux.HandleFunc("/api/v1/speed", s.adminOnly(s.handleSpeed))

	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr, "admin_auth", s.AdminKey != "")

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	var payload map[string]any
	s.Engine.Sync(func() {
		now := s.Engine.Now
		roster := s.Session.Daily.Roster
		press := s.Session.Daily.Pressure

		payload = map[string]any{
			"time":     now.String(),
			"day":      now.Day,
			"hour":     now.Hour,
			"phase":    clock.PhaseName(now.Phase()),
			"speed":    s.Engine.Speed,
			"running":  s.Engine.Running,
			"enlisted": s.Session.Enlisted,
			"lord":     s.Session.LordName,
			"roster": map[string]int{
				"total":    roster.Total,
				"fit":      roster.FitForDuty(),
				"sick":     roster.Sick,
				"wounded":  roster.Wounded,
				"missing":  roster.Missing(),
				"dead":     roster.Dead,
				"deserted": roster.Deserted,
			},
			"needs": map[string]int{
				"supplies":   s.Session.Store.Get(needs.ResourceSupplies),
				"morale":     s.Session.Store.Get(needs.ResourceMorale),
				"rest":       s.Session.Store.Get(needs.ResourceRest),
				"discipline": s.Session.Store.Get(needs.ResourceDiscipline),
			},
			"pressure": map[string]int{
				"days_low_supplies":      press.DaysLowSupplies,
				"days_critical_supplies": press.DaysCriticalSupplies,
				"days_low_discipline":    press.DaysLowDiscipline,
				"days_high_sickness":     press.DaysHighSickness,
				"recent_desertions":      press.RecentDesertions,
			},
			"gold":       s.Session.Gold.Gold(),
			"reputation": s.Session.Reputation.Reputation(),
		}
	})
	writeJSON(w, payload)
}

func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	out := []map[string]any{}
	s.Engine.Sync(func() {
		for _, e := range s.News.Recent(limit) {
			out = append(out, map[string]any{
				"id":       e.ID,
				"day":      e.Day,
				"severity": int(e.Severity),
				"category": e.Category,
				"text":     e.Text,
			})
		}
	})
	writeJSON(w, map[string]any{"news": out})
}

func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	var payload map[string]any
	s.Engine.Sync(func() {
		plan := s.Session.CurrentSchedule(s.Engine.Now)

		slots := make([]map[string]any, 0, len(plan.Slots))
		for _, slot := range plan.Slots {
			slots = append(slots, map[string]any{
				"category":    slot.Category,
				"description": slot.Description,
				"skipped":     slot.Skipped,
			})
		}
		payload = map[string]any{
			"phase":            clock.PhaseName(plan.Phase),
			"slots":            slots,
			"deviation_reason": plan.DeviationReason,
			"player_committed": plan.PlayerCommitted,
			"commitment_title": plan.CommitmentTitle,
			"flavor":           plan.Flavor,
		}
	})
	writeJSON(w, payload)
}

func (s *Server) handleOpportunities(w http.ResponseWriter, r *http.Request) {
	out := []map[string]any{}
	s.Engine.Sync(func() {
		for _, c := range s.Session.CurrentOpportunities(s.Engine.Now) {
			out = append(out, map[string]any{
				"id":    c.Def.ID,
				"title": c.Def.Title,
				"type":  defs.TypeName(c.Def.Type),
				"score": c.Score,
			})
		}
	})
	writeJSON(w, map[string]any{"opportunities": out})
}

func (s *Server) handleCommitments(w http.ResponseWriter, r *http.Request) {
	out := []map[string]any{}
	s.Engine.Sync(func() {
		for _, c := range s.Session.Opportunities.Commitments.Active {
			out = append(out, map[string]any{
				"opportunity_id": c.OpportunityID,
				"title":          c.Title,
				"phase":          clock.PhaseName(c.Phase),
				"day":            c.Day,
				"display_text":   c.DisplayText,
			})
		}
	})
	writeJSON(w, map[string]any{"commitments": out})
}

// handleSpeed adjusts the clock speed: POST {"speed": 120}.
func (s *Server) handleSpeed(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Speed float64 `json:"speed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if req.Speed < 0 || req.Speed > 3600 {
		http.Error(w, "speed out of range", http.StatusBadRequest)
		return
	}

	s.Engine.Sync(func() {
		s.Engine.Speed = req.Speed
	})
	slog.Info("speed changed via API", "speed", req.Speed)
	writeJSON(w, map[string]any{"speed": req.Speed})
}

// adminOnly wraps a handler to require bearer token auth on POST requests.
func (s *Server) adminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			if s.AdminKey == "" {
				http.Error(w, "admin endpoints disabled", http.StatusForbidden)
				return
			}
			auth := r.Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") || strings.TrimPrefix(auth, "Bearer ") != s.AdminKey {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
		}
		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("JSON encode error", "error", err)
	}
}
