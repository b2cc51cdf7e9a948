/* roster_records.go
 * Contains the methods for interacting with the teams and students collections
 */

package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

// RegisterTeam stores a new festival team.
// Preconditions: Receives a Team with id and name set
// Postconditions: Inserts the team and returns nil, or an error if it occurs
func (s *Store) RegisterTeam(team Team) error {
	if team.ID == "" || team.Name == "" {
		return fmt.Errorf("team must have an id and a name")
	}

	_, err := s.Collections.Teams.InsertOne(context.TODO(), team)
	if err != nil {
		return fmt.Errorf("failed to insert team: %w", err)
	}
	return nil
}

// RegisterStudent stores a new student under a team.
// Preconditions: Receives a Student with id, name and team id set
// Postconditions: Inserts the student and returns nil, or an error if it occurs
func (s *Store) RegisterStudent(student Student) error {
	if student.ID == "" || student.Name == "" || student.TeamID == "" {
		return fmt.Errorf("student must have an id, a name and a team id")
	}

	_, err := s.Collections.Students.InsertOne(context.TODO(), student)
	if err != nil {
		return fmt.Errorf("failed to insert student: %w", err)
	}
	return nil
}

// FetchTeams returns all registered teams.
// Postconditions: Returns a slice of Team, empty when none are registered, or an error if it occurs
func (s *Store) FetchTeams() ([]Team, error) {
	cursor, err := s.Collections.Teams.Find(context.TODO(), bson.D{})
	if err != nil {
		return nil, fmt.Errorf("error fetching teams from db: %w", err)
	}

	var teams []Team
	if err = cursor.All(context.TODO(), &teams); err != nil {
		return nil, fmt.Errorf("error unpacking cursor into slice of teams: %w", err)
	}

	return teams, nil
}

// FetchStudents returns all registered students.
// Postconditions: Returns a slice of Student, empty when none are registered, or an error if it occurs
func (s *Store) FetchStudents() ([]Student, error) {
	cursor, err := s.Collections.Students.Find(context.TODO(), bson.D{})
	if err != nil {
		return nil, fmt.Errorf("error fetching students from db: %w", err)
	}

	var students []Student
	if err = cursor.All(context.TODO(), &students); err != nil {
		return nil, fmt.Errorf("error unpacking cursor into slice of students: %w", err)
	}

	return students, nil
}
