/* notifier.go
 * Contains the Notifier interface and the HTTP push client that forwards signals
 * to the managed pub/sub service. Delivery is fire-and-forget: failures are
 * logged and never retried, a lost signal only delays the next client re-fetch
 */

package realtime

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Channel and event names fanned out to clients
const (
	ChannelPredictions = "predictions"
	ChannelLeaderboard = "leaderboard"
	ChannelResults     = "results"
	ChannelPolls       = "polls"

	EventEvaluated          = "event-evaluated"
	EventClosed             = "event-closed"
	EventLeaderboardUpdated = "leaderboard-updated"
	EventResultApproved     = "result-approved"
	EventPollUpdated        = "poll-updated"
)

// Notifier tells connected clients that something changed and they should re-fetch
type Notifier interface {
	Notify(channel string, event string, payload any)
}

// message is the wire shape posted to the pub/sub service and broadcast on websockets
type message struct {
	Channel string `json:"channel"`
	Event   string `json:"event"`
	Payload any    `json:"payload,omitempty"`
}

// PushClient posts signals to the managed pub/sub service over HTTP. Outbound
// calls are rate limited, a burst of approvals must not hammer the service
type PushClient struct {
	endpoint string
	key      string
	client   *http.Client
	limiter  *rate.Limiter
	log      *zap.Logger
}

// NewPushClient creates a push client for the given pub/sub endpoint.
// Preconditions: Receives the endpoint URL, the service auth key and a logger
// Postconditions: Returns a PushClient ready for use
func NewPushClient(endpoint string, key string, log *zap.Logger) *PushClient {
	return &PushClient{
		endpoint: endpoint,
		key:      key,
		client:   &http.Client{Timeout: 5 * time.Second},
		limiter:  rate.NewLimiter(rate.Limit(10), 20),
		log:      log,
	}
}

// Notify posts one signal to the pub/sub service. The call blocks for at most one
// HTTP round-trip, delivery beyond an accepted request is the service's problem.
// Failures are logged at warn level and swallowed
func (p *PushClient) Notify(channel string, event string, payload any) {
	if p.endpoint == "" {
		return
	}
	if !p.limiter.Allow() {
		p.log.Warn("realtime notify dropped by rate limit", zap.String("channel", channel), zap.String("event", event))
		return
	}

	if err := p.post(message{Channel: channel, Event: event, Payload: payload}); err != nil {
		p.log.Warn("realtime notify failed", zap.String("channel", channel), zap.String("event", event), zap.Error(err))
	}
}

func (p *PushClient) post(msg message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal notify payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build notify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.key != "" {
		req.Header.Set("Authorization", "Bearer "+p.key)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("notify request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("pub/sub service returned status %d", resp.StatusCode)
	}
	return nil
}

// Multi fans one signal out to several notifiers, typically the pub/sub client
// and the local websocket hub
type Multi []Notifier

func (m Multi) Notify(channel string, event string, payload any) {
	for _, n := range m {
		n.Notify(channel, event, payload)
	}
}

// Nop discards every signal. Used in tests and when realtime is not configured
type Nop struct{}

func (Nop) Notify(string, string, any) {}
