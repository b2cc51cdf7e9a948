/* polls.go
 * Contains the methods for interacting with the polls collection
 */

package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// InsertPoll stores a new active poll.
// Preconditions: Receives a Poll with id, question and at least two options
// Postconditions: Inserts the poll and returns nil, or an error if it occurs
func (s *Store) InsertPoll(poll Poll) error {
	if poll.ID == "" || poll.Question == "" {
		return fmt.Errorf("poll must have an id and a question")
	}
	if len(poll.Options) < 2 {
		return fmt.Errorf("poll needs at least two options")
	}

	poll.Active = true
	_, err := s.Collections.Polls.InsertOne(context.TODO(), poll)
	if err != nil {
		return fmt.Errorf("failed to insert poll: %w", err)
	}
	return nil
}

// CastPollVote bumps one option's vote count with an atomic positional $inc, so
// concurrent votes never lose updates. Only active polls accept votes.
// Preconditions: Receives the poll id and the option id being voted for
// Postconditions: Returns true when the vote was counted, false when the poll is
// inactive or the option does not exist, or an error if it occurs
func (s *Store) CastPollVote(pollID string, optionID string) (bool, error) {
	filter := bson.M{"id": pollID, "active": true, "options.id": optionID}
	update := bson.M{"$inc": bson.M{"options.$.votes": 1}}

	res, err := s.Collections.Polls.UpdateOne(context.TODO(), filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to cast vote on poll %s: %w", pollID, err)
	}

	return res.MatchedCount == 1, nil
}

// FetchPoll returns one poll by id.
// Preconditions: Receives the poll id
// Postconditions: Returns the poll, or mongo.ErrNoDocuments if it does not exist, or another error if it occurs
func (s *Store) FetchPoll(pollID string) (Poll, error) {
	var poll Poll
	err := s.Collections.Polls.FindOne(context.TODO(), bson.M{"id": pollID}).Decode(&poll)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Poll{}, err
		}
		return Poll{}, fmt.Errorf("error fetching poll %s: %w", pollID, err)
	}

	return poll, nil
}
