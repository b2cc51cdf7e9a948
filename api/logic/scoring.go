/* scoring.go
 * Contains the fixed score tables and the score calculation used when jury results are entered
 */

package logic

import "festpoints/api/shared"

// Base points by placement for individual programs
var individualScores = map[int]int{
	1: 10,
	2: 7,
	3: 5,
}

// Base points by placement for group programs
var groupScores = map[int]int{
	1: 15,
	2: 10,
	3: 7,
}

// Bonus points by grade label. Any other label contributes nothing
var gradeBonus = map[string]int{
	"A": 3,
	"B": 2,
	"C": 1,
}

// CalculateScore computes the points awarded for a single placement.
// Preconditions: Receives the program type ("single" or "group"), the placement position and a grade label ("A", "B", "C" or "none")
// Postconditions: Returns basePoints + gradeBonus as a non-negative integer. Positions outside 1-3 score 0 base points,
// an unknown grade label adds 0, so an unplaced ungraded entry scores exactly 0
func CalculateScore(programType string, position int, grade string) int {
	table := individualScores
	if programType == shared.ProgramGroup {
		table = groupScores
	}

	// Missing positions resolve to 0, this mirrors "no award" results
	base := table[position]
	bonus := gradeBonus[grade]

	return base + bonus
}
