// Package focus maintains the client side of focus-time tracking: a
// one-second tick accumulates seconds while a session is active, and the
// local tally is periodically reconciled against the server's stored value.
package focus

import (
	"context"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
)

// defaultFlushEvery is how many ticks pass between periodic flushes.
const defaultFlushEvery = 10

// Session is the transient per-process focus tally. Its accumulated seconds
// are advisory and are reconciled against storage before being trusted: the
// tick only advances while the session is actively running, and a larger
// stored value always replaces the local one.
type Session struct {
	mu sync.Mutex

	client  *http.Client
	baseURL string
	token   string
	log     *zap.Logger

	// accumulated is the local tally, seeded from storage on start.
	accumulated int64
	// lastStored is the most recently observed stored value, the
	// reconciliation floor.
	lastStored int64

	ticks      int
	flushEvery int

	cancel context.CancelFunc
	done   chan struct{}
}

// NewSession creates a session that flushes through the given server.
// token is the bearer token identifying the user.
func NewSession(client *http.Client, baseURL, token string, log *zap.Logger) *Session {
	return &Session{
		client:     client,
		baseURL:    baseURL,
		token:      token,
		log:        log,
		flushEvery: defaultFlushEvery,
	}
}

// Start seeds the baseline from storage and begins ticking once per second.
// A cold start never begins from zero if storage already holds a larger
// value for today.
func (s *Session) Start(ctx context.Context) error {
	if err := s.Reconcile(ctx); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})
	go s.loop(ctx)
	return nil
}

func (s *Session) loop(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	defer close(s.done)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.mu.Lock()
			s.accumulated++
			s.ticks++
			flushDue := s.ticks%s.flushEvery == 0
			s.mu.Unlock()

			if flushDue {
				// A failed flush is retried on the next cadence,
				// never blocking the tick.
				if err := s.Reconcile(ctx); err != nil {
					s.log.Warn("focus flush failed, will retry", zap.Error(err))
				}
			}
		}
	}
}

// Reconcile merges the local tally with storage and adopts the larger value
// as the new baseline. The tally is only submitted when it exceeds the last
// known stored value; otherwise the call is a pure read, which is also how a
// session resumed after suspension re-reads storage before trusting itself.
func (s *Session) Reconcile(ctx context.Context) error {
	s.mu.Lock()
	submit := int64(0)
	if s.accumulated > s.lastStored {
		submit = s.accumulated
	}
	s.mu.Unlock()

	stored, err := s.flush(ctx, submit)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.lastStored = stored
	if stored > s.accumulated {
		s.accumulated = stored
	}
	s.mu.Unlock()
	return nil
}

// End stops the tick and performs one final flush.
func (s *Session) End() error {
	if s.cancel != nil {
		s.cancel()
		<-s.done
	}
	return s.Reconcile(context.Background())
}

// Elapsed returns the current reconciled tally in seconds.
func (s *Session) Elapsed() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accumulated
}
