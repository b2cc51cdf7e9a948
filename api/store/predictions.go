/* predictions.go
 * Contains the methods for interacting with the predictions collection
 */

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// StorePrediction stores or replaces a user's pick for an event. The upsert is
// keyed on (event_id, user_id), which is what keeps one row per user per event.
// Preconditions: Receives a Prediction with event id, user id and selected option set
// Postconditions: Stores or updates the user's prediction, or returns an error if it occurs
func (s *Store) StorePrediction(prediction Prediction) error {
	if prediction.EventID == "" || prediction.UserID == "" || prediction.SelectedOptionID == "" {
		return fmt.Errorf("prediction must have an event id, user id and selected option")
	}
	if prediction.Timestamp.IsZero() {
		prediction.Timestamp = time.Now()
	}

	filter := bson.M{"event_id": prediction.EventID, "user_id": prediction.UserID}
	update := bson.M{"$set": bson.M{
		"username":           prediction.Username,
		"selected_option_id": prediction.SelectedOptionID,
		"timestamp":          prediction.Timestamp,
	}}
	opts := options.Update().SetUpsert(true)

	_, err := s.Collections.Predictions.UpdateOne(context.TODO(), filter, update, opts)
	if err != nil {
		return fmt.Errorf("failed to store prediction: %w", err)
	}
	return nil
}

// GetUserPrediction does a DB lookup for one user's pick on one event.
// Preconditions: Receives the event id and user id
// Postconditions: Returns the prediction if it exists, or mongo.ErrNoDocuments, or another error if it occurs
func (s *Store) GetUserPrediction(eventID string, userID string) (Prediction, error) {
	var prediction Prediction
	err := s.Collections.Predictions.FindOne(context.TODO(), bson.M{"event_id": eventID, "user_id": userID}).Decode(&prediction)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Prediction{}, err
		}
		return Prediction{}, fmt.Errorf("error fetching prediction from db: %w", err)
	}

	return prediction, nil
}

// FetchPredictionsForOption returns every prediction on an event that picked one
// option. Used by settlement to find the users to credit.
// Preconditions: Receives the event id and the winning option id
// Postconditions: Returns a slice of Predictions, empty when nobody picked the option, or an error if it occurs
func (s *Store) FetchPredictionsForOption(eventID string, optionID string) ([]Prediction, error) {
	filter := bson.D{
		{Key: "event_id", Value: eventID},
		{Key: "selected_option_id", Value: optionID},
	}

	cursor, err := s.Collections.Predictions.Find(context.TODO(), filter)
	if err != nil {
		return nil, fmt.Errorf("error fetching predictions from db: %w", err)
	}

	var predictions []Prediction
	if err = cursor.All(context.TODO(), &predictions); err != nil {
		return nil, fmt.Errorf("error unpacking cursor into slice of predictions: %w", err)
	}

	return predictions, nil
}
