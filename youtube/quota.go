package youtube

import (
	"log/slog"
	"sync"
)

// DefaultDailyCallLimit is the local ceiling on API calls per session.
const DefaultDailyCallLimit = 10000

// Estimated Data API quota units per call type.
const (
	searchQuotaCost  = 100
	defaultQuotaCost = 1
)

// Quota counts API calls made during a session and refuses new ones once the
// configured ceiling is reached. A Quota belongs to exactly one Client.
type Quota struct {
	mu     sync.Mutex
	limit  int
	used   int
	units  int
	logger *slog.Logger
}

// NewQuota creates a call counter with the given ceiling.
// A non-positive limit falls back to DefaultDailyCallLimit.
func NewQuota(limit int, logger *slog.Logger) *Quota {
	if limit <= 0 {
		limit = DefaultDailyCallLimit
	}
	if logger == nil {
		logger = discardLogger()
	}
	return &Quota{limit: limit, logger: logger}
}

// Reserve accounts for one call of the named operation. It must be called
// before any network I/O; a *QuotaExceededError means the call must not be made.
func (q *Quota) Reserve(op string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.used >= q.limit {
		return &QuotaExceededError{Operation: op, Used: q.used, Limit: q.limit}
	}

	q.used++
	q.units += quotaCost(op)

	q.logger.Debug("youtube api call reserved",
		slog.String("operation", op),
		slog.Int("used", q.used),
		slog.Int("remaining", q.limit-q.used),
		slog.Int("units", q.units))

	if q.used == q.limit {
		q.logger.Warn("youtube api call ceiling reached", slog.Int("limit", q.limit))
	}
	return nil
}

// Used returns the number of calls made so far.
func (q *Quota) Used() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.used
}

// Remaining returns how many calls may still be made.
func (q *Quota) Remaining() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.limit - q.used
}

// Limit returns the configured ceiling.
func (q *Quota) Limit() int {
	return q.limit
}

// Units returns the estimated Data API quota units consumed.
func (q *Quota) Units() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.units
}

func quotaCost(op string) int {
	if op == opSearch {
		return searchQuotaCost
	}
	return defaultQuotaCost
}
