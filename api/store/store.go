/* store.go
 * Contains the store struct and NewStore function. The methods for this package are split per
 * collection: results, prediction_events, predictions, user_scores, roster_records and polls.
 * Each of these files contains the methods for interacting with that part of the database
 */

package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	Client      *mongo.Client
	Database    *mongo.Database
	Collections struct {
		Results          *mongo.Collection
		PredictionEvents *mongo.Collection
		Predictions      *mongo.Collection
		UserScores       *mongo.Collection
		Teams            *mongo.Collection
		Students         *mongo.Collection
		Polls            *mongo.Collection
	}
}

// NewStore initialises the db connection and binds the festival collections.
// Preconditions: Receives strings containing dbName and mongoURI
// Postconditions: Returns a pointer to the Store object, or an error if it occurs
func NewStore(dbName string, mongoURI string) (*Store, error) {
	if dbName == "" {
		return nil, fmt.Errorf("dbName cannot be empty")
	}

	client, err := mongo.Connect(context.TODO(), options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, err
	}
	db := client.Database(dbName)

	s := &Store{
		Client:   client,
		Database: db,
	}
	s.Collections.Results = db.Collection("results")
	s.Collections.PredictionEvents = db.Collection("prediction_events")
	s.Collections.Predictions = db.Collection("predictions")
	s.Collections.UserScores = db.Collection("user_scores")
	s.Collections.Teams = db.Collection("teams")
	s.Collections.Students = db.Collection("students")
	s.Collections.Polls = db.Collection("polls")

	return s, nil
}
