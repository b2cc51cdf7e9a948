/* results.go
 * Contains the methods for interacting with the results collection
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

// InsertResult stores a jury submission as a pending result.
// Preconditions: Receives a ResultRecord with program id and entries set
// Postconditions: Inserts the record with status "pending" and returns nil, or an error if it occurs
func (s *Store) InsertResult(record ResultRecord) error {
	if record.ProgramID == "" {
		return fmt.Errorf("result record must have a program id")
	}

	record.Status = "pending"
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	_, err := s.Collections.Results.InsertOne(context.TODO(), record)
	if err != nil {
		return fmt.Errorf("failed to insert result record: %w", err)
	}
	return nil
}

// ApproveResult promotes a pending result to approved. The status check and the
// transition happen in one conditional update so two admins racing on the same
// program cannot both approve it.
// Preconditions: Receives the program id whose pending result should be approved
// Postconditions: Returns the approved record, or mongo.ErrNoDocuments when no pending
// result exists for the program (not found, or already approved), or another error if it occurs
func (s *Store) ApproveResult(programID string) (ResultRecord, error) {
	filter := bson.M{"program_id": programID, "status": "pending"}
	update := bson.M{"$set": bson.M{"status": "approved"}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var record ResultRecord
	err := s.Collections.Results.FindOneAndUpdate(context.TODO(), filter, update, opts).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ResultRecord{}, err
		}
		return ResultRecord{}, fmt.Errorf("failed to approve result for program %s: %w", programID, err)
	}

	return record, nil
}

// FetchResultsByStatus returns every result record in one status bucket.
// Preconditions: Receives the status bucket to fetch ("pending" or "approved")
// Postconditions: Returns a slice of ResultRecord, empty when the bucket is empty, or an error if it occurs
func (s *Store) FetchResultsByStatus(status string) ([]ResultRecord, error) {
	filter := bson.D{{Key: "status", Value: status}}

	cursor, err := s.Collections.Results.Find(context.TODO(), filter)
	if err != nil {
		return nil, fmt.Errorf("error fetching %s results from db: %w", status, err)
	}

	var records []ResultRecord
	if err = cursor.All(context.TODO(), &records); err != nil {
		return nil, fmt.Errorf("error unpacking cursor into slice of result records: %w", err)
	}

	return records, nil
}

// FetchResult returns the result record for one program regardless of status.
// Preconditions: Receives the program id
// Postconditions: Returns the record, or mongo.ErrNoDocuments if none exists, or another error if it occurs
func (s *Store) FetchResult(programID string) (ResultRecord, error) {
	var record ResultRecord
	err := s.Collections.Results.FindOne(context.TODO(), bson.M{"program_id": programID}).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ResultRecord{}, err
		}
		return ResultRecord{}, fmt.Errorf("error fetching result for program %s: %w", programID, err)
	}

	return record, nil
}
