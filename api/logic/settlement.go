/* settlement.go
 * Contains the pure parts of prediction settlement: winner extraction, option
 * matching and predictor dedupe. The database transitions live in the store package
 */

package logic

import (
	"festpoints/api/shared"
	"festpoints/api/store"
)

// Points credited per correct prediction when an event does not set its own value
const DefaultEventPoints = 10

// WinningParticipant extracts the winner's participant id from a result's entries.
// Preconditions: Receives the ranked entries of a finalized result
// Postconditions: Returns the student id (preferred) or team id of the position-1
// entry, or "" when there is no position-1 entry or it carries neither id. A program
// can be scored without a clear first place, so "" is a normal outcome, not an error
func WinningParticipant(entries []store.ResultEntry) string {
	for _, entry := range entries {
		if entry.Position != 1 {
			continue
		}
		if entry.StudentID != "" {
			return entry.StudentID
		}
		return entry.TeamID
	}
	return ""
}

// MatchWinningOption searches an event's options for the one whose id equals the
// winner's participant id. Option ids are seeded from the participant id space at
// event creation, so a failed match means the event was created with bad data
func MatchWinningOption(options []store.EventOption, winnerID string) (store.EventOption, bool) {
	for _, option := range options {
		if option.ID == winnerID {
			return option, true
		}
	}
	return store.EventOption{}, false
}

// DedupePredictors collapses predictions to one user each, keeping first occurrence
// order. The store already upserts on (event, user), this is a second guard so a
// duplicated row can never double-credit
func DedupePredictors(predictions []store.Prediction) []shared.User {
	seen := make(map[string]bool, len(predictions))
	var users []shared.User

	for _, prediction := range predictions {
		if seen[prediction.UserID] {
			continue
		}
		seen[prediction.UserID] = true
		users = append(users, shared.User{UserID: prediction.UserID, Username: prediction.Username})
	}
	return users
}

// EventPoints returns the points an event pays out, falling back to the default
// when the event was stored without an explicit value
func EventPoints(event store.PredictionEvent) int {
	if event.Points <= 0 {
		return DefaultEventPoints
	}
	return event.Points
}
