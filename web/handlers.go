/* handlers.go
 * HTTP endpoints for results, analytics, prediction events, rosters and polls.
 * Handlers are thin, all rules live in the api package
 */

package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"festpoints/api/shared"
	"festpoints/api/store"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

var errNoRoster = errors.New("no participant roster configured")

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Error("failed to encode response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}

// SubmitResultHandler records a jury submission as a pending result
// Preconditions: Receives HTTP ResponseWriter and Http Request containing a submitResultRequest body
// Postconditions: A pending result is stored, or an error status is returned
func (s *Server) SubmitResultHandler(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req submitResultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := s.api.SubmitResult(req.ProgramID, req.ProgramName, req.ProgramType, req.Entries, req.Penalties); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, statusResponse{Status: shared.StatusPending})
}

// ListResultsHandler returns result records filtered by lifecycle status,
// defaulting to pending so the review queue is one request away
func (s *Server) ListResultsHandler(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status == "" {
		status = shared.StatusPending
	}

	records, err := s.api.GetResults(status)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	if records == nil {
		records = []store.ResultRecord{}
	}

	s.writeJSON(w, http.StatusOK, records)
}

// ApproveResultHandler promotes a pending result and settles its prediction event
// Preconditions: HTTP server has been started, receives HTTP ResponseWriter and Http Request
// Postconditions: The result is approved and settlement ran, or an error status is returned
func (s *Server) ApproveResultHandler(w http.ResponseWriter, r *http.Request) {
	programID := mux.Vars(r)["programId"]

	if err := s.api.ApproveResult(programID); err != nil {
		s.writeError(w, http.StatusConflict, err)
		return
	}

	s.writeJSON(w, http.StatusOK, statusResponse{Status: shared.StatusApproved})
}

// AnalyticsHandler returns the recomputed dashboard summary
func (s *Server) AnalyticsHandler(w http.ResponseWriter, r *http.Request) {
	summary, err := s.api.GetAnalytics()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.writeJSON(w, http.StatusOK, summary)
}

// LeaderboardHandler returns user prediction scores, highest first
func (s *Server) LeaderboardHandler(w http.ResponseWriter, r *http.Request) {
	scores, err := s.api.GetLeaderboard()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	if scores == nil {
		scores = []store.UserScore{}
	}

	s.writeJSON(w, http.StatusOK, scores)
}

// CreateEventHandler opens a prediction event. Option names are resolved against
// the roster, so a typo comes back as a 400 before anything is stored
func (s *Server) CreateEventHandler(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req createEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	var deadline time.Time
	if req.Deadline != "" {
		parsed, err := time.Parse(time.RFC3339, req.Deadline)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, err)
			return
		}
		deadline = parsed
	}

	event, err := s.api.CreatePredictionEvent(req.ProgramID, req.ProgramName, req.Question, req.Options, deadline, req.Points)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, event)
}

// ListEventsHandler returns every prediction event
func (s *Server) ListEventsHandler(w http.ResponseWriter, r *http.Request) {
	events, err := s.api.GetPredictionEvents()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	if events == nil {
		events = []store.PredictionEvent{}
	}

	s.writeJSON(w, http.StatusOK, events)
}

// CloseEventHandler stops an open event from taking further predictions
func (s *Server) CloseEventHandler(w http.ResponseWriter, r *http.Request) {
	eventID := mux.Vars(r)["eventId"]

	if err := s.api.ClosePredictionEvent(eventID); err != nil {
		s.writeError(w, http.StatusConflict, err)
		return
	}

	s.writeJSON(w, http.StatusOK, statusResponse{Status: shared.EventClosed})
}

// PlacePredictionHandler stores a user's pick on an open event
// Preconditions: Receives HTTP ResponseWriter and Http Request containing a placePredictionRequest body
// Postconditions: The pick is upserted, or an error status is returned
func (s *Server) PlacePredictionHandler(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	eventID := mux.Vars(r)["eventId"]

	var req placePredictionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	user := shared.User{UserID: req.UserID, Username: req.Username}
	if err := s.api.PlacePrediction(user, eventID, req.OptionID); err != nil {
		s.writeError(w, http.StatusConflict, err)
		return
	}

	s.writeJSON(w, http.StatusOK, statusResponse{Status: "recorded"})
}

// RegisterTeamHandler stores a new festival team
func (s *Server) RegisterTeamHandler(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var team store.Team
	if err := json.NewDecoder(r.Body).Decode(&team); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := s.api.RegisterTeam(team); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, team)
}

// ListTeamsHandler returns all registered teams
func (s *Server) ListTeamsHandler(w http.ResponseWriter, r *http.Request) {
	teams, err := s.api.GetTeams()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	if teams == nil {
		teams = []store.Team{}
	}

	s.writeJSON(w, http.StatusOK, teams)
}

// RegisterStudentHandler stores a new student under a team
func (s *Server) RegisterStudentHandler(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var student store.Student
	if err := json.NewDecoder(r.Body).Decode(&student); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := s.api.RegisterStudent(student); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, student)
}

// ListStudentsHandler returns all registered students
func (s *Server) ListStudentsHandler(w http.ResponseWriter, r *http.Request) {
	students, err := s.api.GetStudents()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	if students == nil {
		students = []store.Student{}
	}

	s.writeJSON(w, http.StatusOK, students)
}

// ReloadRosterHandler re-reads the participant roster CSV from disk, used after
// the festival office edits the file
func (s *Server) ReloadRosterHandler(w http.ResponseWriter, r *http.Request) {
	if s.api.Roster == nil {
		s.writeError(w, http.StatusConflict, errNoRoster)
		return
	}

	if err := s.api.Roster.Reload(); err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.log.Info("roster reloaded", zap.Int("participants", s.api.Roster.Len()))
	s.writeJSON(w, http.StatusOK, statusResponse{Status: "reloaded"})
}

// CreatePollHandler stores a new audience poll
func (s *Server) CreatePollHandler(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req createPollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	poll, err := s.api.CreatePoll(req.Question, req.Options)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, poll)
}

// GetPollHandler returns one poll with its running vote counts
func (s *Server) GetPollHandler(w http.ResponseWriter, r *http.Request) {
	poll, err := s.api.GetPoll(mux.Vars(r)["pollId"])
	if err != nil {
		s.writeError(w, http.StatusNotFound, err)
		return
	}

	s.writeJSON(w, http.StatusOK, poll)
}

// VotePollHandler counts one vote on an active poll
func (s *Server) VotePollHandler(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req votePollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := s.api.VotePoll(mux.Vars(r)["pollId"], req.OptionID); err != nil {
		s.writeError(w, http.StatusConflict, err)
		return
	}

	s.writeJSON(w, http.StatusOK, statusResponse{Status: "counted"})
}
