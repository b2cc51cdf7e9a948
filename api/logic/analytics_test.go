/* analytics_test.go
 * Contains unit tests for analytics.go functions
 */

package logic

import (
	"testing"

	"festpoints/api/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTeams() []store.Team {
	return []store.Team{
		{ID: "T1", Name: "Team One"},
		{ID: "T2", Name: "Team Two"},
		{ID: "T3", Name: "Team Three"},
	}
}

func sampleStudents() []store.Student {
	return []store.Student{
		{ID: "S1", Name: "Amina", TeamID: "T1", Category: "junior"},
		{ID: "S2", Name: "Bilal", TeamID: "T1", Category: "senior"},
		{ID: "S3", Name: "Zainab", TeamID: "T2", Category: "junior"},
	}
}

func standingFor(t *testing.T, summary AnalyticsSummary, teamID string) TeamStanding {
	t.Helper()
	for _, team := range summary.Teams {
		if team.TeamID == teamID {
			return team
		}
	}
	t.Fatalf("team %s not found in summary", teamID)
	return TeamStanding{}
}

func studentFor(t *testing.T, summary AnalyticsSummary, studentID string) StudentStanding {
	t.Helper()
	for _, student := range summary.Students {
		if student.StudentID == studentID {
			return student
		}
	}
	t.Fatalf("student %s not found in summary", studentID)
	return StudentStanding{}
}

// TestAggregate_ZeroFloor tests that teams and students with no results still appear with zero points
func TestAggregate_ZeroFloor(t *testing.T) {
	summary := Aggregate(sampleTeams(), sampleStudents(), nil, nil)

	assert.Len(t, summary.Teams, 3)
	assert.Len(t, summary.Students, 3)

	for _, team := range summary.Teams {
		assert.Equal(t, 0, team.ApprovedPoints)
		assert.Equal(t, 0, team.PendingPoints)
		assert.Equal(t, 0, team.TotalPoints)
	}
	for _, student := range summary.Students {
		assert.Equal(t, 0, student.Points)
	}
	assert.Equal(t, 0, summary.PendingCount)
	assert.Equal(t, 0, summary.ApprovedCount)
}

// TestAggregate_BucketSplit tests that approved and pending results land in separate team buckets
func TestAggregate_BucketSplit(t *testing.T) {
	approved := []store.ResultRecord{{
		ProgramID: "P1",
		Status:    "approved",
		Entries:   []store.ResultEntry{{Position: 1, TeamID: "T1", Score: 15}},
	}}
	pending := []store.ResultRecord{{
		ProgramID: "P2",
		Status:    "pending",
		Entries:   []store.ResultEntry{{Position: 2, TeamID: "T1", Score: 10}},
	}}

	summary := Aggregate(sampleTeams(), sampleStudents(), pending, approved)

	team := standingFor(t, summary, "T1")
	assert.Equal(t, 15, team.ApprovedPoints)
	assert.Equal(t, 10, team.PendingPoints)
	assert.Equal(t, 25, team.TotalPoints)
	assert.Equal(t, 1, summary.PendingCount)
	assert.Equal(t, 1, summary.ApprovedCount)
}

// TestAggregate_Additivity tests that total points always equals approved plus pending
func TestAggregate_Additivity(t *testing.T) {
	approved := []store.ResultRecord{
		{ProgramID: "P1", Entries: []store.ResultEntry{{Position: 1, TeamID: "T1", Score: 15}, {Position: 2, TeamID: "T2", Score: 10}}},
		{ProgramID: "P2", Entries: []store.ResultEntry{{Position: 1, StudentID: "S1", TeamID: "T1", Score: 13}}},
	}
	pending := []store.ResultRecord{
		{ProgramID: "P3", Entries: []store.ResultEntry{{Position: 3, TeamID: "T2", Score: 7}}, Penalties: []store.PenaltyEntry{{TeamID: "T1", Points: 4}}},
	}

	summary := Aggregate(sampleTeams(), sampleStudents(), pending, approved)

	for _, team := range summary.Teams {
		assert.Equal(t, team.ApprovedPoints+team.PendingPoints, team.TotalPoints, "team %s", team.TeamID)
	}
}

// TestAggregate_StudentCumulative tests that student points accumulate across both buckets
func TestAggregate_StudentCumulative(t *testing.T) {
	approved := []store.ResultRecord{{
		ProgramID: "P1",
		Entries:   []store.ResultEntry{{Position: 1, StudentID: "S1", TeamID: "T1", Score: 13}},
	}}
	pending := []store.ResultRecord{{
		ProgramID: "P2",
		Entries:   []store.ResultEntry{{Position: 2, StudentID: "S1", TeamID: "T1", Score: 7}},
	}}

	summary := Aggregate(sampleTeams(), sampleStudents(), pending, approved)

	assert.Equal(t, 20, studentFor(t, summary, "S1").Points)

	// The student's team sees the same points in the matching buckets
	team := standingFor(t, summary, "T1")
	assert.Equal(t, 13, team.ApprovedPoints)
	assert.Equal(t, 7, team.PendingPoints)
}

// TestAggregate_PenaltySign tests that a penalty of N decreases the owning team's bucket by exactly N
func TestAggregate_PenaltySign(t *testing.T) {
	base := []store.ResultRecord{{
		ProgramID: "P1",
		Entries: []store.ResultEntry{
			{Position: 1, TeamID: "T1", Score: 15},
			{Position: 2, TeamID: "T1", Score: 10},
		},
	}}
	withPenalty := []store.ResultRecord{{
		ProgramID: "P1",
		Entries: []store.ResultEntry{
			{Position: 1, TeamID: "T1", Score: 15},
			{Position: 2, TeamID: "T1", Score: 10},
		},
		Penalties: []store.PenaltyEntry{{TeamID: "T1", Points: 6}},
	}}

	before := standingFor(t, Aggregate(sampleTeams(), sampleStudents(), nil, base), "T1")
	after := standingFor(t, Aggregate(sampleTeams(), sampleStudents(), nil, withPenalty), "T1")

	assert.Equal(t, before.ApprovedPoints-6, after.ApprovedPoints)
}

// TestAggregate_StudentPenaltyHitsTeam tests that a student penalty also reaches the team via membership
func TestAggregate_StudentPenaltyHitsTeam(t *testing.T) {
	approved := []store.ResultRecord{{
		ProgramID: "P1",
		Entries:   []store.ResultEntry{{Position: 1, StudentID: "S1", TeamID: "T1", Score: 13}},
		Penalties: []store.PenaltyEntry{{StudentID: "S1", Points: 3}},
	}}

	summary := Aggregate(sampleTeams(), sampleStudents(), nil, approved)

	assert.Equal(t, 10, studentFor(t, summary, "S1").Points)
	assert.Equal(t, 10, standingFor(t, summary, "T1").ApprovedPoints)
}

// TestAggregate_TeamOnlyPenalty tests that a team-only penalty leaves student totals untouched
func TestAggregate_TeamOnlyPenalty(t *testing.T) {
	approved := []store.ResultRecord{{
		ProgramID: "P1",
		Entries:   []store.ResultEntry{{Position: 1, StudentID: "S1", TeamID: "T1", Score: 13}},
		Penalties: []store.PenaltyEntry{{TeamID: "T1", Points: 5}},
	}}

	summary := Aggregate(sampleTeams(), sampleStudents(), nil, approved)

	assert.Equal(t, 13, studentFor(t, summary, "S1").Points)
	assert.Equal(t, 8, standingFor(t, summary, "T1").ApprovedPoints)
}

// TestAggregate_MalformedEntriesSkipped tests that entries with neither id contribute nothing and never fail the fold
func TestAggregate_MalformedEntriesSkipped(t *testing.T) {
	approved := []store.ResultRecord{{
		ProgramID: "P1",
		Entries: []store.ResultEntry{
			{Position: 1, Score: 15}, // no ids
			{Position: 2, TeamID: "T1", Score: 10},
		},
		Penalties: []store.PenaltyEntry{{Points: 2}}, // no ids
	}}

	summary := Aggregate(sampleTeams(), sampleStudents(), nil, approved)

	assert.Equal(t, 10, standingFor(t, summary, "T1").ApprovedPoints)
	assert.Equal(t, 0, standingFor(t, summary, "T2").ApprovedPoints)
}

// TestAggregate_UnknownIDsSkipped tests that entries referencing unregistered ids are ignored
func TestAggregate_UnknownIDsSkipped(t *testing.T) {
	approved := []store.ResultRecord{{
		ProgramID: "P1",
		Entries:   []store.ResultEntry{{Position: 1, TeamID: "T99", Score: 15}, {Position: 2, StudentID: "S99", Score: 7}},
	}}

	summary := Aggregate(sampleTeams(), sampleStudents(), nil, approved)

	for _, team := range summary.Teams {
		assert.Equal(t, 0, team.TotalPoints)
	}
	for _, student := range summary.Students {
		assert.Equal(t, 0, student.Points)
	}
}

// TestAggregate_CategoryRankings tests that the category rankings filter on the literal tag and sort descending
func TestAggregate_CategoryRankings(t *testing.T) {
	students := []store.Student{
		{ID: "J1", Name: "Junior One", TeamID: "T1", Category: "junior"},
		{ID: "J2", Name: "Junior Two", TeamID: "T2", Category: "junior"},
		{ID: "SR1", Name: "Senior One", TeamID: "T1", Category: "senior"},
		{ID: "G1", Name: "General One", TeamID: "T2", Category: "general"},
		{ID: "U1", Name: "Untagged", TeamID: "T1"},
	}
	approved := []store.ResultRecord{{
		ProgramID: "P1",
		Entries: []store.ResultEntry{
			{Position: 1, StudentID: "J2", TeamID: "T2", Score: 13},
			{Position: 2, StudentID: "J1", TeamID: "T1", Score: 7},
			{Position: 3, StudentID: "U1", TeamID: "T1", Score: 5},
		},
	}}

	summary := Aggregate(sampleTeams(), students, nil, approved)

	require.Len(t, summary.TopJuniors, 2)
	assert.Equal(t, "J2", summary.TopJuniors[0].StudentID)
	assert.Equal(t, "J1", summary.TopJuniors[1].StudentID)

	require.Len(t, summary.TopSeniors, 1)
	assert.Equal(t, "SR1", summary.TopSeniors[0].StudentID)

	// Untagged students appear in no category ranking, "general" means the literal tag
	require.Len(t, summary.TopGeneral, 1)
	assert.Equal(t, "G1", summary.TopGeneral[0].StudentID)
}

// TestAggregate_TopFiveTruncation tests that category rankings keep at most five students
func TestAggregate_TopFiveTruncation(t *testing.T) {
	var students []store.Student
	var entries []store.ResultEntry
	for i := 0; i < 7; i++ {
		id := string(rune('a' + i))
		students = append(students, store.Student{ID: id, Name: "Student " + id, TeamID: "T1", Category: "junior"})
		entries = append(entries, store.ResultEntry{Position: 1, StudentID: id, TeamID: "T1", Score: 10 + i})
	}
	approved := []store.ResultRecord{{ProgramID: "P1", Entries: entries}}

	summary := Aggregate(sampleTeams(), students, nil, approved)

	require.Len(t, summary.TopJuniors, 5)
	// Highest scorer first
	assert.Equal(t, 16, summary.TopJuniors[0].Points)
	assert.Equal(t, 12, summary.TopJuniors[4].Points)
}

// TestAggregate_TeamOrdering tests that teams are reported highest total first
func TestAggregate_TeamOrdering(t *testing.T) {
	approved := []store.ResultRecord{{
		ProgramID: "P1",
		Entries: []store.ResultEntry{
			{Position: 1, TeamID: "T2", Score: 15},
			{Position: 2, TeamID: "T1", Score: 10},
		},
	}}

	summary := Aggregate(sampleTeams(), sampleStudents(), nil, approved)

	assert.Equal(t, "T2", summary.Teams[0].TeamID)
	assert.Equal(t, "T1", summary.Teams[1].TeamID)
}
