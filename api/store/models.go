/* models.go
 * This file contains the structs that map to documents in the festival database
 */

package store

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ResultEntry is one ranked placement inside a program result. Score is computed
// at entry time and stored, it is never re-derived when results are read back.
// This lets grading rules change without invalidating historical results
type ResultEntry struct {
	Position  int    `bson:"position" json:"position"`
	StudentID string `bson:"student_id,omitempty" json:"student_id,omitempty"`
	TeamID    string `bson:"team_id,omitempty" json:"team_id,omitempty"`
	Score     int    `bson:"score" json:"score"`
}

// PenaltyEntry deducts points from a team, and optionally from a student as well
type PenaltyEntry struct {
	StudentID string `bson:"student_id,omitempty" json:"student_id,omitempty"`
	TeamID    string `bson:"team_id,omitempty" json:"team_id,omitempty"`
	Points    int    `bson:"points" json:"points"`
}

// ResultRecord is the jury submission for one program. Created as "pending",
// promoted to "approved" by an admin, approval is what triggers settlement
type ResultRecord struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	ProgramID   string             `bson:"program_id" json:"program_id"`
	ProgramName string             `bson:"program_name,omitempty" json:"program_name,omitempty"`
	ProgramType string             `bson:"program_type,omitempty" json:"program_type,omitempty"`
	Entries     []ResultEntry      `bson:"entries" json:"entries"`
	Penalties   []PenaltyEntry     `bson:"penalties,omitempty" json:"penalties,omitempty"`
	Status      string             `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"created_at,omitempty" json:"created_at,omitempty"`
}

// EventOption is one pickable outcome of a prediction event. Option ids are the
// actual student/team ids of the eligible participants, never arbitrary strings,
// so a result's winner id can be matched against them directly
type EventOption struct {
	ID    string `bson:"id" json:"id"`
	Label string `bson:"label" json:"label"`
}

// PredictionEvent is the question fans predict on for one program
type PredictionEvent struct {
	ID              string        `bson:"id" json:"id"`
	ProgramID       string        `bson:"program_id" json:"program_id"`
	ProgramName     string        `bson:"program_name,omitempty" json:"program_name,omitempty"`
	Question        string        `bson:"question" json:"question"`
	Options         []EventOption `bson:"options" json:"options"`
	Deadline        time.Time     `bson:"deadline" json:"deadline"`
	Points          int           `bson:"points" json:"points"`
	Status          string        `bson:"status" json:"status"`
	CorrectOptionID string        `bson:"correct_option_id,omitempty" json:"correct_option_id,omitempty"`
}

// Prediction is one user's pick for one event. Uniqueness of (event_id, user_id)
// is enforced at write time by an upsert keyed on that pair
type Prediction struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	EventID          string             `bson:"event_id" json:"event_id"`
	UserID           string             `bson:"user_id" json:"user_id"`
	Username         string             `bson:"username" json:"username"`
	SelectedOptionID string             `bson:"selected_option_id" json:"selected_option_id"`
	Timestamp        time.Time          `bson:"timestamp" json:"timestamp"`
}

// UserScore is the leaderboard read model, one row per user. It is only ever
// increased by the settlement engine, never decreased or reset
type UserScore struct {
	UserID   string `bson:"user_id" json:"user_id"`
	Username string `bson:"username" json:"username"`
	Score    int    `bson:"score" json:"score"`
}

// Team is a registered festival team
type Team struct {
	ID   string `bson:"id" json:"id"`
	Name string `bson:"name" json:"name"`
}

// Student is a registered participant belonging to a team
type Student struct {
	ID       string `bson:"id" json:"id"`
	Name     string `bson:"name" json:"name"`
	TeamID   string `bson:"team_id" json:"team_id"`
	Category string `bson:"category,omitempty" json:"category,omitempty"`
}

// PollOption is one choice in a poll with its running vote count
type PollOption struct {
	ID    string `bson:"id" json:"id"`
	Label string `bson:"label" json:"label"`
	Votes int    `bson:"votes" json:"votes"`
}

// Poll is a fan poll. Vote counts are bumped with atomic increments
type Poll struct {
	ID       string       `bson:"id" json:"id"`
	Question string       `bson:"question" json:"question"`
	Options  []PollOption `bson:"options" json:"options"`
	Active   bool         `bson:"active" json:"active"`
}
