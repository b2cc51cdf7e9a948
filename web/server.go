//go:build !test

/* server.go
 * Contains the HTTP server Start function that listens for incoming connections.
 * Excluded from test coverage as it blocks and requires real network binding.
 */

package web

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Start initializes and starts the HTTP server with the given configuration
func Start(cfg Config) error {
	s := &Server{
		api: cfg.API,
		hub: cfg.Hub,
		log: cfg.Log,
	}

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	cfg.Log.Info("HTTP server listening", zap.String("addr", cfg.Addr))
	return srv.ListenAndServe()
}

// Router builds the route table. Separate from Start so tests can drive the
// handlers without binding a socket.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/api/results", s.SubmitResultHandler).Methods(http.MethodPost)
	r.HandleFunc("/api/results", s.ListResultsHandler).Methods(http.MethodGet)
	r.HandleFunc("/api/results/{programId}/approve", s.ApproveResultHandler).Methods(http.MethodPost)
	r.HandleFunc("/api/analytics", s.AnalyticsHandler).Methods(http.MethodGet)
	r.HandleFunc("/api/leaderboard", s.LeaderboardHandler).Methods(http.MethodGet)

	r.HandleFunc("/api/events", s.CreateEventHandler).Methods(http.MethodPost)
	r.HandleFunc("/api/events", s.ListEventsHandler).Methods(http.MethodGet)
	r.HandleFunc("/api/events/{eventId}/close", s.CloseEventHandler).Methods(http.MethodPost)
	r.HandleFunc("/api/events/{eventId}/predictions", s.PlacePredictionHandler).Methods(http.MethodPost)

	r.HandleFunc("/api/teams", s.RegisterTeamHandler).Methods(http.MethodPost)
	r.HandleFunc("/api/teams", s.ListTeamsHandler).Methods(http.MethodGet)
	r.HandleFunc("/api/students", s.RegisterStudentHandler).Methods(http.MethodPost)
	r.HandleFunc("/api/students", s.ListStudentsHandler).Methods(http.MethodGet)
	r.HandleFunc("/api/roster/reload", s.ReloadRosterHandler).Methods(http.MethodPost)

	r.HandleFunc("/api/polls", s.CreatePollHandler).Methods(http.MethodPost)
	r.HandleFunc("/api/polls/{pollId}", s.GetPollHandler).Methods(http.MethodGet)
	r.HandleFunc("/api/polls/{pollId}/votes", s.VotePollHandler).Methods(http.MethodPost)

	if s.hub != nil {
		r.HandleFunc("/ws", s.hub.ServeWS)
	}

	return r
}
