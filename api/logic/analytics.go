/* analytics.go
 * Contains the logic for folding result records into team and student point totals
 */

package logic

import (
	"sort"

	"festpoints/api/shared"
	"festpoints/api/store"
)

// How many students each category ranking keeps
const topStudentCount = 5

// TeamStanding is one team's row in the analytics summary. Pending points are a
// preview figure for admins, official standings use approved points only
type TeamStanding struct {
	TeamID         string `json:"team_id"`
	Name           string `json:"name"`
	ApprovedPoints int    `json:"approved_points"`
	PendingPoints  int    `json:"pending_points"`
	TotalPoints    int    `json:"total_points"`
}

// StudentStanding is one student's row in the analytics summary. Students track a
// single cumulative figure, they are not split into pending/approved buckets
type StudentStanding struct {
	StudentID string `json:"student_id"`
	Name      string `json:"name"`
	TeamID    string `json:"team_id"`
	Category  string `json:"category,omitempty"`
	Points    int    `json:"points"`
}

// AnalyticsSummary is the dashboard projection recomputed on demand
type AnalyticsSummary struct {
	Teams         []TeamStanding    `json:"teams"`
	Students      []StudentStanding `json:"students"`
	TopJuniors    []StudentStanding `json:"top_juniors"`
	TopSeniors    []StudentStanding `json:"top_seniors"`
	TopGeneral    []StudentStanding `json:"top_general"`
	PendingCount  int               `json:"pending_count"`
	ApprovedCount int               `json:"approved_count"`
}

type teamTotals struct {
	approved int
	pending  int
}

// Aggregate folds all result records into per-team and per-student point totals.
// Preconditions: Receives the registered teams and students, and the result records split into pending and approved buckets
// Postconditions: Returns an AnalyticsSummary covering every registered team and student, including the ones with no
// results yet, which report zero points. Entries referencing ids that were never registered are skipped, the fold never
// fails on partially malformed historical data
func Aggregate(teams []store.Team, students []store.Student, pending []store.ResultRecord, approved []store.ResultRecord) AnalyticsSummary {
	teamPoints := make(map[string]*teamTotals, len(teams))
	for _, team := range teams {
		teamPoints[team.ID] = &teamTotals{}
	}

	studentPoints := make(map[string]int, len(students))
	studentTeam := make(map[string]string, len(students))
	for _, student := range students {
		studentPoints[student.ID] = 0
		studentTeam[student.ID] = student.TeamID
	}

	foldBucket(approved, false, teamPoints, studentPoints, studentTeam)
	foldBucket(pending, true, teamPoints, studentPoints, studentTeam)

	summary := AnalyticsSummary{
		PendingCount:  len(pending),
		ApprovedCount: len(approved),
	}

	for _, team := range teams {
		totals := teamPoints[team.ID]
		summary.Teams = append(summary.Teams, TeamStanding{
			TeamID:         team.ID,
			Name:           team.Name,
			ApprovedPoints: totals.approved,
			PendingPoints:  totals.pending,
			TotalPoints:    totals.approved + totals.pending,
		})
	}
	sort.SliceStable(summary.Teams, func(i, j int) bool {
		return summary.Teams[i].TotalPoints > summary.Teams[j].TotalPoints
	})

	for _, student := range students {
		summary.Students = append(summary.Students, StudentStanding{
			StudentID: student.ID,
			Name:      student.Name,
			TeamID:    student.TeamID,
			Category:  student.Category,
			Points:    studentPoints[student.ID],
		})
	}
	sort.SliceStable(summary.Students, func(i, j int) bool {
		return summary.Students[i].Points > summary.Students[j].Points
	})

	// Category rankings filter on the literal category tag. A student only appears
	// in the general ranking when explicitly tagged "general"
	summary.TopJuniors = topStudents(summary.Students, shared.CategoryJunior)
	summary.TopSeniors = topStudents(summary.Students, shared.CategorySenior)
	summary.TopGeneral = topStudents(summary.Students, shared.CategoryGeneral)

	return summary
}

// foldBucket walks one status bucket of result records and accumulates points.
// The bucket decides which half of the team totals is mutated, student totals are
// cumulative across both buckets
func foldBucket(records []store.ResultRecord, pending bool, teamPoints map[string]*teamTotals, studentPoints map[string]int, studentTeam map[string]string) {
	for _, record := range records {
		for _, entry := range record.Entries {
			if entry.StudentID == "" && entry.TeamID == "" {
				// Malformed legacy entry, contributes to neither aggregate
				continue
			}
			addTeamPoints(owningTeam(entry.TeamID, entry.StudentID, studentTeam), entry.Score, pending, teamPoints)
			if entry.StudentID != "" {
				if _, ok := studentPoints[entry.StudentID]; ok {
					studentPoints[entry.StudentID] += entry.Score
				}
			}
		}

		for _, penalty := range record.Penalties {
			if penalty.StudentID == "" && penalty.TeamID == "" {
				continue
			}
			addTeamPoints(owningTeam(penalty.TeamID, penalty.StudentID, studentTeam), -penalty.Points, pending, teamPoints)
			if penalty.StudentID != "" {
				if _, ok := studentPoints[penalty.StudentID]; ok {
					studentPoints[penalty.StudentID] -= penalty.Points
				}
			}
		}
	}
}

// owningTeam resolves which team an entry or penalty belongs to: the explicit
// team id when present, otherwise the student's team via membership
func owningTeam(teamID string, studentID string, studentTeam map[string]string) string {
	if teamID != "" {
		return teamID
	}
	return studentTeam[studentID]
}

func addTeamPoints(teamID string, points int, pending bool, teamPoints map[string]*teamTotals) {
	totals, ok := teamPoints[teamID]
	if !ok {
		return
	}
	if pending {
		totals.pending += points
	} else {
		totals.approved += points
	}
}

// topStudents filters an already sorted standing slice by category tag and keeps the first N
func topStudents(sorted []StudentStanding, category string) []StudentStanding {
	var top []StudentStanding
	for _, student := range sorted {
		if student.Category != category {
			continue
		}
		top = append(top, student)
		if len(top) == topStudentCount {
			break
		}
	}
	return top
}
