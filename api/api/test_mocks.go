/* test_mocks.go
 * Contains mock structures and interfaces for testing the API package
 */

package api

import (
	"context"

	"festpoints/api/store"

	"go.mongodb.org/mongo-driver/mongo"
)

// MockStore implements the store Interface for testing
type MockStore struct {
	// Storage for mock data
	Results     map[string]store.ResultRecord
	Events      map[string]store.PredictionEvent
	Predictions map[string]store.Prediction
	Scores      map[string]store.UserScore
	Teams       []store.Team
	Students    []store.Student
	Polls       map[string]store.Poll

	// Error injection for testing error paths
	InsertResultError        error
	ApproveResultError       error
	FetchResultsError        error
	InsertEventError         error
	FindSettleableEventError error
	MarkEventEvaluatedError  error
	StorePredictionError     error
	FetchPredictionsError    error
	CreditUserScoreError     error
	FetchLeaderboardError    error

	// Call recording for asserting on side effects
	CreditedUsers []string

	Database interface{ Name() string }
}

// mockDatabase implements the minimal Database interface needed for tests
type mockDatabase struct {
	name string
}

func (m *mockDatabase) Name() string {
	return m.name
}

// mockClient implements minimal client interface
type mockClient struct{}

func (m *mockClient) Disconnect(ctx context.Context) error {
	return nil
}

// NewMockStore creates a new MockStore with default values
func NewMockStore() *MockStore {
	return &MockStore{
		Results:     make(map[string]store.ResultRecord),
		Events:      make(map[string]store.PredictionEvent),
		Predictions: make(map[string]store.Prediction),
		Scores:      make(map[string]store.UserScore),
		Polls:       make(map[string]store.Poll),
		Database:    &mockDatabase{name: "test_db"},
	}
}

// InsertResult mock implementation
func (m *MockStore) InsertResult(record store.ResultRecord) error {
	if m.InsertResultError != nil {
		return m.InsertResultError
	}
	record.Status = "pending"
	m.Results[record.ProgramID] = record
	return nil
}

// ApproveResult mock implementation
func (m *MockStore) ApproveResult(programID string) (store.ResultRecord, error) {
	if m.ApproveResultError != nil {
		return store.ResultRecord{}, m.ApproveResultError
	}
	record, ok := m.Results[programID]
	if !ok || record.Status != "pending" {
		return store.ResultRecord{}, mongo.ErrNoDocuments
	}
	record.Status = "approved"
	m.Results[programID] = record
	return record, nil
}

// FetchResultsByStatus mock implementation
func (m *MockStore) FetchResultsByStatus(status string) ([]store.ResultRecord, error) {
	if m.FetchResultsError != nil {
		return nil, m.FetchResultsError
	}
	var records []store.ResultRecord
	for _, record := range m.Results {
		if record.Status == status {
			records = append(records, record)
		}
	}
	return records, nil
}

// FetchResult mock implementation
func (m *MockStore) FetchResult(programID string) (store.ResultRecord, error) {
	record, ok := m.Results[programID]
	if !ok {
		return store.ResultRecord{}, mongo.ErrNoDocuments
	}
	return record, nil
}

// InsertPredictionEvent mock implementation
func (m *MockStore) InsertPredictionEvent(event store.PredictionEvent) error {
	if m.InsertEventError != nil {
		return m.InsertEventError
	}
	event.Status = "open"
	m.Events[event.ID] = event
	return nil
}

// FindSettleableEvent mock implementation
func (m *MockStore) FindSettleableEvent(programID string) (store.PredictionEvent, error) {
	if m.FindSettleableEventError != nil {
		return store.PredictionEvent{}, m.FindSettleableEventError
	}
	for _, event := range m.Events {
		if event.ProgramID == programID && event.Status != "evaluated" {
			return event, nil
		}
	}
	return store.PredictionEvent{}, mongo.ErrNoDocuments
}

// MarkEventEvaluated mock implementation
func (m *MockStore) MarkEventEvaluated(eventID string, optionID string) (bool, error) {
	if m.MarkEventEvaluatedError != nil {
		return false, m.MarkEventEvaluatedError
	}
	event, ok := m.Events[eventID]
	if !ok || event.Status == "evaluated" {
		return false, nil
	}
	event.Status = "evaluated"
	event.CorrectOptionID = optionID
	m.Events[eventID] = event
	return true, nil
}

// CloseEvent mock implementation
func (m *MockStore) CloseEvent(eventID string) (bool, error) {
	event, ok := m.Events[eventID]
	if !ok || event.Status != "open" {
		return false, nil
	}
	event.Status = "closed"
	m.Events[eventID] = event
	return true, nil
}

// FetchPredictionEvent mock implementation
func (m *MockStore) FetchPredictionEvent(eventID string) (store.PredictionEvent, error) {
	event, ok := m.Events[eventID]
	if !ok {
		return store.PredictionEvent{}, mongo.ErrNoDocuments
	}
	return event, nil
}

// FetchPredictionEvents mock implementation
func (m *MockStore) FetchPredictionEvents() ([]store.PredictionEvent, error) {
	var events []store.PredictionEvent
	for _, event := range m.Events {
		events = append(events, event)
	}
	return events, nil
}

// StorePrediction mock implementation
func (m *MockStore) StorePrediction(prediction store.Prediction) error {
	if m.StorePredictionError != nil {
		return m.StorePredictionError
	}
	m.Predictions[prediction.EventID+"/"+prediction.UserID] = prediction
	return nil
}

// GetUserPrediction mock implementation
func (m *MockStore) GetUserPrediction(eventID string, userID string) (store.Prediction, error) {
	pred, ok := m.Predictions[eventID+"/"+userID]
	if !ok {
		return store.Prediction{}, mongo.ErrNoDocuments
	}
	return pred, nil
}

// FetchPredictionsForOption mock implementation
func (m *MockStore) FetchPredictionsForOption(eventID string, optionID string) ([]store.Prediction, error) {
	if m.FetchPredictionsError != nil {
		return nil, m.FetchPredictionsError
	}
	var predictions []store.Prediction
	for _, pred := range m.Predictions {
		if pred.EventID == eventID && pred.SelectedOptionID == optionID {
			predictions = append(predictions, pred)
		}
	}
	return predictions, nil
}

// CreditUserScore mock implementation
func (m *MockStore) CreditUserScore(userID string, username string, points int) error {
	if m.CreditUserScoreError != nil {
		return m.CreditUserScoreError
	}
	score := m.Scores[userID]
	score.UserID = userID
	score.Username = username
	score.Score += points
	m.Scores[userID] = score
	m.CreditedUsers = append(m.CreditedUsers, userID)
	return nil
}

// FetchLeaderboard mock implementation
func (m *MockStore) FetchLeaderboard() ([]store.UserScore, error) {
	if m.FetchLeaderboardError != nil {
		return nil, m.FetchLeaderboardError
	}
	var scores []store.UserScore
	for _, score := range m.Scores {
		scores = append(scores, score)
	}
	return scores, nil
}

// RegisterTeam mock implementation
func (m *MockStore) RegisterTeam(team store.Team) error {
	m.Teams = append(m.Teams, team)
	return nil
}

// RegisterStudent mock implementation
func (m *MockStore) RegisterStudent(student store.Student) error {
	m.Students = append(m.Students, student)
	return nil
}

// FetchTeams mock implementation
func (m *MockStore) FetchTeams() ([]store.Team, error) {
	return m.Teams, nil
}

// FetchStudents mock implementation
func (m *MockStore) FetchStudents() ([]store.Student, error) {
	return m.Students, nil
}

// InsertPoll mock implementation
func (m *MockStore) InsertPoll(poll store.Poll) error {
	m.Polls[poll.ID] = poll
	return nil
}

// CastPollVote mock implementation
func (m *MockStore) CastPollVote(pollID string, optionID string) (bool, error) {
	poll, ok := m.Polls[pollID]
	if !ok || !poll.Active {
		return false, nil
	}
	for i := range poll.Options {
		if poll.Options[i].ID == optionID {
			poll.Options[i].Votes++
			m.Polls[pollID] = poll
			return true, nil
		}
	}
	return false, nil
}

// FetchPoll mock implementation
func (m *MockStore) FetchPoll(pollID string) (store.Poll, error) {
	poll, ok := m.Polls[pollID]
	if !ok {
		return store.Poll{}, mongo.ErrNoDocuments
	}
	return poll, nil
}

// Implement getter methods for the store Interface
func (m *MockStore) GetDatabase() interface{ Name() string } {
	return m.Database
}

func (m *MockStore) GetClient() interface{ Disconnect(context.Context) error } {
	return &mockClient{}
}

// Ensure MockStore implements the store Interface
var _ store.Interface = (*MockStore)(nil)
