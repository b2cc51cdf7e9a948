/* models.go
 * Request and response shapes for the HTTP surface, plus the server configuration
 */

package web

import (
	"festpoints/api/api"
	"festpoints/api/store"
	"festpoints/realtime"

	"go.uber.org/zap"
)

// Config holds the configuration for the web server
type Config struct {
	Addr string
	API  *api.API
	Hub  *realtime.Hub
	Log  *zap.Logger
}

// Server is the HTTP server that handles festival requests
type Server struct {
	api *api.API
	hub *realtime.Hub
	log *zap.Logger
}

type submitResultRequest struct {
	ProgramID   string               `json:"program_id"`
	ProgramName string               `json:"program_name"`
	ProgramType string               `json:"program_type"`
	Entries     []api.EntryInput     `json:"entries"`
	Penalties   []store.PenaltyEntry `json:"penalties,omitempty"`
}

type createEventRequest struct {
	ProgramID   string `json:"program_id"`
	ProgramName string `json:"program_name"`
	Question    string `json:"question"`
	Options     string `json:"options"`
	Deadline    string `json:"deadline,omitempty"`
	Points      int    `json:"points,omitempty"`
}

type placePredictionRequest struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	OptionID string `json:"option_id"`
}

type createPollRequest struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

type votePollRequest struct {
	OptionID string `json:"option_id"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type statusResponse struct {
	Status string `json:"status"`
}
