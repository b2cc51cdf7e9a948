/* models.go
 * This file contain the structs that are used by api consumers
 */

package api

// EntryInput is one ranked placement as submitted by the jury, before its score
// has been computed
type EntryInput struct {
	Position  int    `json:"position"`
	StudentID string `json:"student_id,omitempty"`
	TeamID    string `json:"team_id,omitempty"`
	Grade     string `json:"grade,omitempty"`
}
