/* test_helpers.go
 * Contains test helper functions and sample data builders for store package tests
 */

package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateTestStore creates a Store connected to a test database.
// Returns the store and a cleanup function.
func CreateTestStore(mongoURI string) (*Store, func(), error) {
	store, err := NewStore("test_festpoints", mongoURI)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		if store.Client != nil {
			store.Database.Drop(context.TODO())
			store.Client.Disconnect(context.TODO())
		}
	}

	return store, cleanup, nil
}

// CreateTestClient creates a test MongoDB client.
func CreateTestClient(mongoURI string) (*mongo.Client, error) {
	client, err := mongo.Connect(context.TODO(), options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, err
	}
	return client, nil
}

// CreateSampleResult builds a two-entry result record for testing.
func CreateSampleResult(programID string, status string) ResultRecord {
	return ResultRecord{
		ProgramID:   programID,
		ProgramName: "Quran Recitation",
		ProgramType: "group",
		Status:      status,
		CreatedAt:   time.Unix(1700000000, 0),
		Entries: []ResultEntry{
			{Position: 1, TeamID: "T1", Score: 15},
			{Position: 2, TeamID: "T2", Score: 10},
		},
	}
}

// CreateSampleEvent builds an open two-option prediction event for testing.
func CreateSampleEvent(eventID string, programID string) PredictionEvent {
	return PredictionEvent{
		ID:          eventID,
		ProgramID:   programID,
		ProgramName: "Quran Recitation",
		Question:    "Who takes first place?",
		Options: []EventOption{
			{ID: "T1", Label: "Team One"},
			{ID: "T2", Label: "Team Two"},
		},
		Deadline: time.Unix(1700000000, 0),
		Points:   10,
		Status:   "open",
	}
}

// CreateSamplePrediction builds a prediction row for testing.
func CreateSamplePrediction(eventID string, userID string, username string, optionID string) Prediction {
	return Prediction{
		EventID:          eventID,
		UserID:           userID,
		Username:         username,
		SelectedOptionID: optionID,
		Timestamp:        time.Unix(1700000500, 0),
	}
}
