package persistence

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/voyagelog/internal/logging"
	"github.com/dmitrijs2005/voyagelog/internal/models"
	"github.com/dmitrijs2005/voyagelog/internal/repositories/kv"
)

// DefaultDelay is how long edits must settle before they are written.
const DefaultDelay = 500 * time.Millisecond

// Persister owns the single debounce timer for state writes. Every Schedule
// call pushes the deadline back; when it expires the current state is taken
// from source and written as one batch. Writes are serialised and their
// failures are logged, never returned to the editing flow. Flush and Close
// return only after every write already taken by the timer has finished.
type Persister struct {
	repo   kv.Repository
	source func() models.LogState
	delay  time.Duration
	logger logging.Logger

	mu      sync.Mutex
	timer   *time.Timer
	pending bool
	closed  bool
	writing int // writes taken but not yet finished
	idle    *sync.Cond

	writeMu sync.Mutex
}

func NewPersister(repo kv.Repository, source func() models.LogState, delay time.Duration, logger logging.Logger) *Persister {
	if delay <= 0 {
		delay = DefaultDelay
	}
	p := &Persister{repo: repo, source: source, delay: delay, logger: logger.With("component", "persistence")}
	p.idle = sync.NewCond(&p.mu)
	return p
}

// Schedule records that tracked state changed.
func (p *Persister) Schedule() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	p.pending = true
	if p.timer == nil {
		p.timer = time.AfterFunc(p.delay, p.fire)
		return
	}
	p.timer.Stop()
	p.timer.Reset(p.delay)
}

// Pending reports whether a write is waiting for its deadline.
func (p *Persister) Pending() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pending
}

func (p *Persister) fire() {
	if !p.takePending() {
		return
	}
	defer p.finish()
	ctx := context.Background()
	if err := p.write(ctx); err != nil {
		p.logger.Error(ctx, "failed to persist log state", "error", err)
	}
}

func (p *Persister) takePending() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	was := p.pending
	p.pending = false
	if was {
		p.writing++
	}
	return was
}

func (p *Persister) finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.writing--
	if p.writing == 0 {
		p.idle.Broadcast()
	}
}

func (p *Persister) waitIdle() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for p.writing > 0 {
		p.idle.Wait()
	}
}

// Flush writes a pending change immediately and waits for a timer write
// that is already running.
func (p *Persister) Flush(ctx context.Context) error {
	p.mu.Lock()
	if p.timer != nil {
		p.timer.Stop()
	}
	p.mu.Unlock()

	var err error
	if p.takePending() {
		err = p.write(ctx)
		p.finish()
	}
	p.waitIdle()
	return err
}

// Close flushes and stops accepting new schedules.
func (p *Persister) Close(ctx context.Context) error {
	err := p.Flush(ctx)
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	return err
}

func (p *Persister) write(ctx context.Context) error {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()

	values, encErr := Encode(p.source())
	if encErr != nil {
		p.logger.Error(ctx, "failed to encode log state", "error", encErr)
	}
	if err := p.repo.SetAll(ctx, values); err != nil {
		return err
	}
	p.logger.Debug(ctx, "log state saved", "fields", len(values))
	return nil
}
