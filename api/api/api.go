/* api.go
 * This file contains the public methods for interacting with this package. For consistent results,
 * functions should only be called from this file, not the store or logic sub packages
 */

package api

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"festpoints/api/logic"
	"festpoints/api/roster"
	"festpoints/api/shared"
	"festpoints/api/store"
	"festpoints/realtime"

	"github.com/go-andiamo/splitter"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// API provides methods for interacting with the festival data layer
type API struct {
	Store    store.Interface
	Roster   *roster.Cache
	Notifier realtime.Notifier
	Log      *zap.Logger
}

// NewAPI creates a new API instance with the provided configuration
func NewAPI(dbName string, mongoURI string, participants *roster.Cache, notifier realtime.Notifier, log *zap.Logger) (*API, error) {
	if dbName == "" {
		return nil, fmt.Errorf("dbName is required")
	}

	s, err := store.NewStore(dbName, mongoURI)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}

	return &API{
		Store:    s,
		Roster:   participants,
		Notifier: notifier,
		Log:      log,
	}, nil
}

// SubmitResult records a jury submission as a pending result. Entry scores are
// computed here, from the program type, placement and grade, and stored on the
// record so later rule changes cannot rewrite history.
// Preconditions: Receives the program identity, its type, the ranked entries and any penalties
// Postconditions: Inserts a pending ResultRecord, or returns an error if it occurs
func (a *API) SubmitResult(programID string, programName string, programType string, entries []EntryInput, penalties []store.PenaltyEntry) error {
	if programID == "" {
		return fmt.Errorf("program id is required")
	}
	if programType != shared.ProgramSingle && programType != shared.ProgramGroup {
		return fmt.Errorf("unknown program type: %s", programType)
	}
	if len(entries) == 0 {
		return fmt.Errorf("a result needs at least one entry")
	}

	seen := make(map[int]bool, len(entries))
	record := store.ResultRecord{
		ProgramID:   programID,
		ProgramName: programName,
		ProgramType: programType,
	}
	for _, entry := range entries {
		if seen[entry.Position] {
			return fmt.Errorf("position %d entered multiple times", entry.Position)
		}
		seen[entry.Position] = true

		record.Entries = append(record.Entries, store.ResultEntry{
			Position:  entry.Position,
			StudentID: entry.StudentID,
			TeamID:    entry.TeamID,
			Score:     logic.CalculateScore(programType, entry.Position, entry.Grade),
		})
	}
	record.Penalties = penalties

	if err := a.Store.InsertResult(record); err != nil {
		return err
	}

	a.Log.Info("result submitted", zap.String("program_id", programID))
	return nil
}

// ApproveResult promotes a program's pending result to approved and kicks off
// prediction settlement for it. Approval succeeds even when settlement cannot
// proceed for data reasons, only store failures during settlement propagate.
// Preconditions: Receives the program id whose pending result should be approved
// Postconditions: The result is approved, connected clients are signalled, the
// program's prediction event is settled
func (a *API) ApproveResult(programID string) error {
	record, err := a.Store.ApproveResult(programID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fmt.Errorf("no pending result found for program %s", programID)
		}
		return err
	}

	a.Log.Info("result approved", zap.String("program_id", programID))
	a.Notifier.Notify(realtime.ChannelResults, realtime.EventResultApproved, map[string]string{"program_id": programID})

	return a.SettlePredictions(programID, record.Entries)
}

// SettlePredictions evaluates the prediction event tied to a finalized program
// result and credits every user who predicted the winner. Safe to call twice:
// the event transition is an atomic compare-and-set, so of any number of
// concurrent or repeated calls exactly one performs the crediting pass.
// Preconditions: Receives the program id and the finalized result entries
// Postconditions: The event is marked evaluated and correct predictors are
// credited, or the call is a clean no-op when there is nothing to settle
func (a *API) SettlePredictions(programID string, entries []store.ResultEntry) error {
	winnerID := logic.WinningParticipant(entries)
	if winnerID == "" {
		// A program can finish without a clear first place, nothing to settle
		a.Log.Info("no winner in result, skipping settlement", zap.String("program_id", programID))
		return nil
	}

	event, err := a.Store.FindSettleableEvent(programID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			a.Log.Info("no settleable prediction event", zap.String("program_id", programID))
			return nil
		}
		return err
	}

	winningOption, ok := logic.MatchWinningOption(event.Options, winnerID)
	if !ok {
		// The event was created with option ids outside the participant id space.
		// Operator attention is needed, silently retrying cannot fix the data
		a.Log.Warn("winner id not found among event options",
			zap.String("program_id", programID),
			zap.String("event_id", event.ID),
			zap.String("winner_id", winnerID))
		return nil
	}

	won, err := a.Store.MarkEventEvaluated(event.ID, winningOption.ID)
	if err != nil {
		return err
	}
	if !won {
		a.Log.Info("prediction event already evaluated", zap.String("event_id", event.ID))
		return nil
	}

	predictions, err := a.Store.FetchPredictionsForOption(event.ID, winningOption.ID)
	if err != nil {
		return err
	}

	points := logic.EventPoints(event)
	for _, user := range logic.DedupePredictors(predictions) {
		if err := a.Store.CreditUserScore(user.UserID, user.Username, points); err != nil {
			return err
		}
	}

	a.Log.Info("prediction event settled",
		zap.String("event_id", event.ID),
		zap.String("correct_option_id", winningOption.ID),
		zap.Int("points", points))

	a.Notifier.Notify(realtime.ChannelPredictions, realtime.EventEvaluated, map[string]string{"event_id": event.ID})
	a.Notifier.Notify(realtime.ChannelLeaderboard, realtime.EventLeaderboardUpdated, nil)

	return nil
}

// GetAnalytics recomputes the dashboard summary from the current result records.
// Preconditions: Receives receiver pointer to api
// Postconditions: Returns the AnalyticsSummary, or an error if it occurs
func (a *API) GetAnalytics() (logic.AnalyticsSummary, error) {
	teams, err := a.Store.FetchTeams()
	if err != nil {
		return logic.AnalyticsSummary{}, err
	}
	students, err := a.Store.FetchStudents()
	if err != nil {
		return logic.AnalyticsSummary{}, err
	}
	pending, err := a.Store.FetchResultsByStatus(shared.StatusPending)
	if err != nil {
		return logic.AnalyticsSummary{}, err
	}
	approved, err := a.Store.FetchResultsByStatus(shared.StatusApproved)
	if err != nil {
		return logic.AnalyticsSummary{}, err
	}

	return logic.Aggregate(teams, students, pending, approved), nil
}

// GetLeaderboard fetches the user score leaderboard, highest score first.
// Postconditions: Returns a slice of UserScore, or an error if it occurs
func (a *API) GetLeaderboard() ([]store.UserScore, error) {
	return a.Store.FetchLeaderboard()
}

// GetResults returns all result records in the given lifecycle status
func (a *API) GetResults(status string) ([]store.ResultRecord, error) {
	if status != shared.StatusPending && status != shared.StatusApproved {
		return nil, fmt.Errorf("unknown result status: %s", status)
	}
	return a.Store.FetchResultsByStatus(status)
}

// GetPredictionEvents returns every prediction event, newest first
func (a *API) GetPredictionEvents() ([]store.PredictionEvent, error) {
	return a.Store.FetchPredictionEvents()
}

// CreatePredictionEvent opens a prediction event for a program. The options are
// given as one comma-separated line of participant names, names containing commas
// are quoted. Each name is resolved against the roster so the stored option ids
// are real participant ids, a winner can then be matched by id at settlement time.
// Preconditions: Receives the program identity, the question, the option names line,
// the prediction deadline and the payout points (0 means the default)
// Postconditions: Returns the stored event, or an error listing unresolved names
func (a *API) CreatePredictionEvent(programID string, programName string, question string, optionNames string, deadline time.Time, points int) (store.PredictionEvent, error) {
	if a.Roster == nil {
		return store.PredictionEvent{}, fmt.Errorf("no participant roster configured")
	}

	commaSplitter, _ := splitter.NewSplitter(',', splitter.DoubleQuotes, splitter.LeftRightDoubleDoubleQuotes)
	names, err := commaSplitter.Split(optionNames)
	if err != nil {
		return store.PredictionEvent{}, fmt.Errorf("failed to parse option names: %w", err)
	}
	for i := range names {
		names[i] = strings.Trim(strings.TrimSpace(names[i]), "\"")
	}

	participants, invalid := a.Roster.ResolveNames(names)
	if len(invalid) > 0 {
		var str strings.Builder
		str.WriteString("the following participant names are invalid:")
		for i := range invalid {
			str.WriteString(fmt.Sprintf(" '%s'", invalid[i]))
		}
		return store.PredictionEvent{}, errors.New(str.String())
	}

	seen := make(map[string]bool, len(participants))
	event := store.PredictionEvent{
		ID:          uuid.NewString(),
		ProgramID:   programID,
		ProgramName: programName,
		Question:    question,
		Deadline:    deadline,
		Points:      points,
		Status:      shared.EventOpen,
	}
	for _, p := range participants {
		if seen[p.ID] {
			return store.PredictionEvent{}, fmt.Errorf("'%s' entered multiple times, event was not created", p.Name)
		}
		seen[p.ID] = true
		event.Options = append(event.Options, store.EventOption{ID: p.ID, Label: p.Name})
	}

	if err := a.Store.InsertPredictionEvent(event); err != nil {
		return store.PredictionEvent{}, err
	}

	a.Log.Info("prediction event created", zap.String("event_id", event.ID), zap.String("program_id", programID))
	return event, nil
}

// ClosePredictionEvent pauses an open event so no further predictions come in.
// Postconditions: The event is closed and clients signalled, or an error when it was not open
func (a *API) ClosePredictionEvent(eventID string) error {
	closed, err := a.Store.CloseEvent(eventID)
	if err != nil {
		return err
	}
	if !closed {
		return fmt.Errorf("event %s is not open", eventID)
	}

	a.Notifier.Notify(realtime.ChannelPredictions, realtime.EventClosed, map[string]string{"event_id": eventID})
	return nil
}

// PlacePrediction stores a user's pick for an event. Picks are rejected once the
// event leaves the open state or its deadline has passed, repeat picks before the
// deadline replace the previous one.
// Preconditions: Receives the user, the event id and the selected option id
// Postconditions: Upserts the user's prediction, or returns an error if it occurs
func (a *API) PlacePrediction(user shared.User, eventID string, optionID string) error {
	event, err := a.Store.FetchPredictionEvent(eventID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fmt.Errorf("prediction event %s does not exist", eventID)
		}
		return err
	}

	if event.Status != shared.EventOpen {
		return fmt.Errorf("prediction event %s is not open", eventID)
	}
	if !event.Deadline.IsZero() && time.Now().After(event.Deadline) {
		return fmt.Errorf("prediction deadline for event %s has passed", eventID)
	}
	if _, ok := logic.MatchWinningOption(event.Options, optionID); !ok {
		return fmt.Errorf("option %s does not exist on event %s", optionID, eventID)
	}

	return a.Store.StorePrediction(store.Prediction{
		EventID:          eventID,
		UserID:           user.UserID,
		Username:         user.Username,
		SelectedOptionID: optionID,
		Timestamp:        time.Now(),
	})
}

// RegisterTeam stores a new festival team
func (a *API) RegisterTeam(team store.Team) error {
	return a.Store.RegisterTeam(team)
}

// RegisterStudent stores a new student under a team
func (a *API) RegisterStudent(student store.Student) error {
	return a.Store.RegisterStudent(student)
}

// GetTeams returns all registered teams
func (a *API) GetTeams() ([]store.Team, error) {
	return a.Store.FetchTeams()
}

// GetStudents returns all registered students
func (a *API) GetStudents() ([]store.Student, error) {
	return a.Store.FetchStudents()
}

// CreatePoll stores a new active poll with fresh option ids.
// Preconditions: Receives the poll question and at least two option labels
// Postconditions: Returns the stored poll, or an error if it occurs
func (a *API) CreatePoll(question string, optionLabels []string) (store.Poll, error) {
	poll := store.Poll{
		ID:       uuid.NewString(),
		Question: question,
		Active:   true,
	}
	for _, label := range optionLabels {
		poll.Options = append(poll.Options, store.PollOption{ID: uuid.NewString(), Label: label})
	}

	if err := a.Store.InsertPoll(poll); err != nil {
		return store.Poll{}, err
	}
	return poll, nil
}

// VotePoll counts one vote on a poll option and signals connected clients.
// Postconditions: The vote is counted, or an error when the poll is inactive or the option unknown
func (a *API) VotePoll(pollID string, optionID string) error {
	counted, err := a.Store.CastPollVote(pollID, optionID)
	if err != nil {
		return err
	}
	if !counted {
		return fmt.Errorf("poll %s is not accepting votes for option %s", pollID, optionID)
	}

	a.Notifier.Notify(realtime.ChannelPolls, realtime.EventPollUpdated, map[string]string{"poll_id": pollID})
	return nil
}

// GetPoll returns one poll with its running vote counts
func (a *API) GetPoll(pollID string) (store.Poll, error) {
	poll, err := a.Store.FetchPoll(pollID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return store.Poll{}, fmt.Errorf("poll %s does not exist", pollID)
		}
		return store.Poll{}, err
	}
	return poll, nil
}
