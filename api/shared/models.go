/* models.go
 * This file contains the structs and constants that are shared between sub packages
 */

package shared

// User identifies a fan account placing predictions and poll votes
type User struct {
	UserID   string
	Username string
}

// Program types used by the score tables
const (
	ProgramSingle = "single"
	ProgramGroup  = "group"
)

// Result record lifecycle states
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
)

// Prediction event lifecycle states. Evaluated is terminal
const (
	EventOpen      = "open"
	EventClosed    = "closed"
	EventEvaluated = "evaluated"
)

// Student categories recognised by the analytics rankings
const (
	CategoryJunior  = "junior"
	CategorySenior  = "senior"
	CategoryGeneral = "general"
)
