// internal/engine/session/controller.go
package session

import (
	"context"
	"sync"
	"time"

	"guardmatch/internal/common/errors"
	"guardmatch/internal/common/logger"
	"guardmatch/internal/common/metrics"
	"guardmatch/internal/common/observability"
	"guardmatch/internal/engine"
	"guardmatch/internal/models"

	"github.com/google/uuid"
)

// State is the lifecycle phase of the recommendation session.
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateFailed  State = "failed"
)

// Snapshot is the immutable view of the session handed to callers. Ready
// with an empty Recommendations slice means "no matches", which is a valid
// terminal outcome distinct from Failed.
type Snapshot struct {
	State           State
	Shift           *models.ShiftContext
	Recommendations []models.Recommendation
	ErrorMessage    string
	RequestID       string
}

// Controller owns the request lifecycle for one shift-selection session.
// At most one in-flight computation is live: selecting new parameters
// cancels the previous fetch, and a request token guarantees a stale
// response can never overwrite a newer selection's result.
type Controller struct {
	rec      *engine.Recommender
	timeout  time.Duration
	logger   logger.Logger
	obs      *observability.Observability
	onChange func(Snapshot)

	mu     sync.Mutex
	token  uint64
	cancel context.CancelFunc
	snap   Snapshot
}

// NewController builds an idle session. obs may be nil.
func NewController(rec *engine.Recommender, timeout time.Duration, log logger.Logger, obs *observability.Observability) *Controller {
	return &Controller{
		rec:     rec,
		timeout: timeout,
		logger:  log.WithFields(map[string]interface{}{"component": "session"}),
		obs:     obs,
		snap:    Snapshot{State: StateIdle},
	}
}

// OnChange registers a callback invoked after every state transition with
// the new snapshot. Must be set before the first Select.
func (c *Controller) OnChange(fn func(Snapshot)) {
	c.onChange = fn
}

// Snapshot returns the current session view.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snap
}

// Select starts a recommendation request for the given shift. Any in-flight
// request is cancelled and its eventual result discarded; the session moves
// to loading immediately.
func (c *Controller) Select(shift models.ShiftContext) {
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	c.token++
	token := c.token

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	c.cancel = cancel

	requestID := uuid.NewString()
	shiftCopy := shift
	c.snap = Snapshot{
		State:     StateLoading,
		Shift:     &shiftCopy,
		RequestID: requestID,
	}
	snap := c.snap
	c.mu.Unlock()

	c.logger.Info("recommendation request started", map[string]interface{}{
		"requestId": requestID,
		"siteId":    shift.SiteID,
		"date":      shift.Date.Format("2006-01-02"),
	})

	c.notify(snap)

	go c.run(ctx, cancel, token, requestID, shift)
}

// Clear returns the session to idle from any state, cancelling any
// in-flight request and discarding its result.
func (c *Controller) Clear() {
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.token++
	c.snap = Snapshot{State: StateIdle}
	snap := c.snap
	c.mu.Unlock()

	c.notify(snap)
}

func (c *Controller) run(ctx context.Context, cancel context.CancelFunc, token uint64, requestID string, shift models.ShiftContext) {
	defer cancel()
	start := time.Now()

	recs, err := c.rec.Recommend(ctx, shift)

	c.mu.Lock()
	if token != c.token {
		c.mu.Unlock()
		metrics.StaleResponsesDiscarded.Inc()
		c.logger.Debug("stale response discarded", map[string]interface{}{
			"requestId": requestID,
		})
		return
	}

	outcome := "ready"
	if err != nil {
		outcome = "failed"
		c.snap = Snapshot{
			State:        StateFailed,
			Shift:        c.snap.Shift,
			ErrorMessage: errors.UserMessage(err),
			RequestID:    requestID,
		}
	} else {
		c.snap = Snapshot{
			State:           StateReady,
			Shift:           c.snap.Shift,
			Recommendations: recs,
			RequestID:       requestID,
		}
	}
	snap := c.snap
	c.mu.Unlock()

	elapsed := time.Since(start)
	metrics.RecommendationRequests.WithLabelValues(outcome).Inc()
	metrics.RecommendationDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())
	if c.obs != nil {
		c.obs.RecordRequest(ctx, outcome)
		c.obs.RecordDuration(ctx, elapsed, outcome)
	}

	if err != nil {
		c.logger.Warn("recommendation request failed", map[string]interface{}{
			"requestId": requestID,
			"errorCode": errors.CodeOf(err),
			"error":     err,
		})
	} else {
		c.logger.Info("recommendation request completed", map[string]interface{}{
			"requestId": requestID,
			"count":     len(recs),
			"elapsedMs": elapsed.Milliseconds(),
		})
	}

	c.notify(snap)
}

func (c *Controller) notify(snap Snapshot) {
	if c.onChange != nil {
		c.onChange(snap)
	}
}
