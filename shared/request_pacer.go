package shared

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// RequestPacer enforces a minimum interval between successive requests to the
// same site. The scrape pipeline is single-threaded, but the pacer keeps its
// own bookkeeping behind a mutex so it stays correct if a caller ever shares it.
type RequestPacer struct {
	minimumDelay    time.Duration
	lastRequestTime time.Time
	mutex           sync.Mutex
	requestCount    int64
}

// NewRequestPacer creates a pacer with the specified minimum delay between
// requests. The first call to Wait never sleeps.
func NewRequestPacer(minimumDelay time.Duration) *RequestPacer {
	return &RequestPacer{
		minimumDelay: minimumDelay,
	}
}

// Wait blocks until the minimum delay has elapsed since the previous request.
func (p *RequestPacer) Wait() {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if !p.lastRequestTime.IsZero() {
		elapsedTime := time.Since(p.lastRequestTime)
		if elapsedTime < p.minimumDelay {
			remainingDelay := p.minimumDelay - elapsedTime

			logrus.WithFields(logrus.Fields{
				"component":       "RequestPacer",
				"elapsed_time":    elapsedTime,
				"minimum_delay":   p.minimumDelay,
				"remaining_delay": remainingDelay,
				"request_count":   p.requestCount + 1,
			}).Debug("Enforcing pacing delay")

			time.Sleep(remainingDelay)
		}
	}

	p.lastRequestTime = time.Now()
	p.requestCount++
}

// RequestCount returns the total number of paced requests.
func (p *RequestPacer) RequestCount() int64 {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.requestCount
}
