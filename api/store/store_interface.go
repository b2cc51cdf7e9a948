/* store_interface.go
 * Contains the Store interface for dependency injection and testing
 */

package store

import "context"

// Interface defines the methods that Store implements.
// This allows for mocking in tests.
type Interface interface {
	// Results
	InsertResult(record ResultRecord) error
	ApproveResult(programID string) (ResultRecord, error)
	FetchResultsByStatus(status string) ([]ResultRecord, error)
	FetchResult(programID string) (ResultRecord, error)

	// Prediction events
	InsertPredictionEvent(event PredictionEvent) error
	FindSettleableEvent(programID string) (PredictionEvent, error)
	MarkEventEvaluated(eventID string, optionID string) (bool, error)
	CloseEvent(eventID string) (bool, error)
	FetchPredictionEvent(eventID string) (PredictionEvent, error)
	FetchPredictionEvents() ([]PredictionEvent, error)

	// Predictions
	StorePrediction(prediction Prediction) error
	GetUserPrediction(eventID string, userID string) (Prediction, error)
	FetchPredictionsForOption(eventID string, optionID string) ([]Prediction, error)

	// User scores
	CreditUserScore(userID string, username string, points int) error
	FetchLeaderboard() ([]UserScore, error)

	// Roster
	RegisterTeam(team Team) error
	RegisterStudent(student Student) error
	FetchTeams() ([]Team, error)
	FetchStudents() ([]Student, error)

	// Polls
	InsertPoll(poll Poll) error
	CastPollVote(pollID string, optionID string) (bool, error)
	FetchPoll(pollID string) (Poll, error)

	// Getter methods for accessing fields
	GetDatabase() interface{ Name() string }
	GetClient() interface{ Disconnect(context.Context) error }
}

// Ensure Store implements Interface
var _ Interface = (*Store)(nil)

// GetDatabase returns the database instance
func (s *Store) GetDatabase() interface{ Name() string } {
	return s.Database
}

// GetClient returns the MongoDB client
func (s *Store) GetClient() interface{ Disconnect(context.Context) error } {
	return s.Client
}
