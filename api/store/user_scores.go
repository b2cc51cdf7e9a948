/* user_scores.go
 * Contains the methods for interacting with the user_scores collection, the
 * leaderboard read model
 */

package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreditUserScore adds points to a user's running score. The increment happens at
// the store level with $inc rather than read-modify-write in application code, so
// concurrent settlement calls cannot lose updates. The upsert bootstraps a row for
// a user's first win.
// Preconditions: Receives the user id, username and a positive point amount
// Postconditions: Increments (or creates) the user's score row, or returns an error if it occurs
func (s *Store) CreditUserScore(userID string, username string, points int) error {
	if userID == "" {
		return fmt.Errorf("cannot credit score without a user id")
	}
	if points <= 0 {
		return fmt.Errorf("credit amount must be positive, got %d", points)
	}

	filter := bson.M{"user_id": userID}
	update := bson.M{
		"$inc": bson.M{"score": points},
		"$set": bson.M{"username": username},
	}
	opts := options.Update().SetUpsert(true)

	_, err := s.Collections.UserScores.UpdateOne(context.TODO(), filter, update, opts)
	if err != nil {
		return fmt.Errorf("failed to credit score for user %s: %w", userID, err)
	}
	return nil
}

// FetchLeaderboard returns all user scores ordered highest first. Ties keep
// whatever order the store returns, there is no further tie breaker.
// Postconditions: Returns a slice of UserScore, empty when nobody has scored yet, or an error if it occurs
func (s *Store) FetchLeaderboard() ([]UserScore, error) {
	opts := options.Find().SetSort(bson.D{{Key: "score", Value: -1}})

	cursor, err := s.Collections.UserScores.Find(context.TODO(), bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch leaderboard from database: %w", err)
	}

	var scores []UserScore
	if err = cursor.All(context.TODO(), &scores); err != nil {
		return nil, fmt.Errorf("error unpacking cursor into slice of user scores: %w", err)
	}

	return scores, nil
}
