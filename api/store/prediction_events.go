/* prediction_events.go
 * Contains the methods for interacting with the prediction_events collection
 */

package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// InsertPredictionEvent stores a new prediction event.
// Preconditions: Receives a PredictionEvent whose option ids are participant ids
// Postconditions: Inserts the event with status "open" and returns nil, or an error if it occurs
func (s *Store) InsertPredictionEvent(event PredictionEvent) error {
	if event.ID == "" || event.ProgramID == "" {
		return fmt.Errorf("prediction event must have an id and a program id")
	}
	if len(event.Options) < 2 {
		return fmt.Errorf("prediction event needs at least two options")
	}

	event.Status = "open"
	_, err := s.Collections.PredictionEvents.InsertOne(context.TODO(), event)
	if err != nil {
		return fmt.Errorf("failed to insert prediction event: %w", err)
	}
	return nil
}

// FindSettleableEvent looks up the prediction event tied to a program that has not
// been evaluated yet. Open and closed events both qualify, closed is only a manual
// pause of new predictions.
// Preconditions: Receives the program id whose result was finalized
// Postconditions: Returns the event, or mongo.ErrNoDocuments when no settleable event
// exists (never opened, or already evaluated), or another error if it occurs
func (s *Store) FindSettleableEvent(programID string) (PredictionEvent, error) {
	filter := bson.M{"program_id": programID, "status": bson.M{"$ne": "evaluated"}}

	var event PredictionEvent
	err := s.Collections.PredictionEvents.FindOne(context.TODO(), filter).Decode(&event)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return PredictionEvent{}, err
		}
		return PredictionEvent{}, fmt.Errorf("error fetching prediction event for program %s: %w", programID, err)
	}

	return event, nil
}

// MarkEventEvaluated performs the terminal state transition for an event. The
// status guard sits in the update filter itself, so of any number of concurrent
// settlement calls exactly one observes a match and proceeds to credit users.
// Preconditions: Receives the event id and the winning option id
// Postconditions: Returns true when this call performed the transition, false when
// another caller already evaluated the event, or an error if it occurs
func (s *Store) MarkEventEvaluated(eventID string, optionID string) (bool, error) {
	filter := bson.M{"id": eventID, "status": bson.M{"$ne": "evaluated"}}
	update := bson.M{"$set": bson.M{"status": "evaluated", "correct_option_id": optionID}}

	res, err := s.Collections.PredictionEvents.UpdateOne(context.TODO(), filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to mark event %s evaluated: %w", eventID, err)
	}

	return res.MatchedCount == 1, nil
}

// CloseEvent pauses an open event so no further predictions are accepted.
// Evaluated events are terminal and cannot be reopened or closed.
// Preconditions: Receives the event id
// Postconditions: Returns true when the event was transitioned to closed, false when
// it was not open, or an error if it occurs
func (s *Store) CloseEvent(eventID string) (bool, error) {
	filter := bson.M{"id": eventID, "status": "open"}
	update := bson.M{"$set": bson.M{"status": "closed"}}

	res, err := s.Collections.PredictionEvents.UpdateOne(context.TODO(), filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to close event %s: %w", eventID, err)
	}

	return res.MatchedCount == 1, nil
}

// FetchPredictionEvent returns one event by id.
// Preconditions: Receives the event id
// Postconditions: Returns the event, or mongo.ErrNoDocuments if it does not exist, or another error if it occurs
func (s *Store) FetchPredictionEvent(eventID string) (PredictionEvent, error) {
	var event PredictionEvent
	err := s.Collections.PredictionEvents.FindOne(context.TODO(), bson.M{"id": eventID}).Decode(&event)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return PredictionEvent{}, err
		}
		return PredictionEvent{}, fmt.Errorf("error fetching prediction event %s: %w", eventID, err)
	}

	return event, nil
}

// FetchPredictionEvents returns all prediction events.
// Postconditions: Returns a slice of events, empty when none exist, or an error if it occurs
func (s *Store) FetchPredictionEvents() ([]PredictionEvent, error) {
	cursor, err := s.Collections.PredictionEvents.Find(context.TODO(), bson.D{})
	if err != nil {
		return nil, fmt.Errorf("error fetching prediction events from db: %w", err)
	}

	var events []PredictionEvent
	if err = cursor.All(context.TODO(), &events); err != nil {
		return nil, fmt.Errorf("error unpacking cursor into slice of prediction events: %w", err)
	}

	return events, nil
}
