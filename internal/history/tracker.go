package history

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"SchoolMeal/internal/neis"
)

const (
	// BufferSize is the size of the selection buffer
	BufferSize = 1000

	// FlushInterval is how often buffered selections are written
	FlushInterval = 2 * time.Second

	// FlushBatchSize triggers an early flush
	FlushBatchSize = 100

	// CleanupInterval is how often old selections are removed
	CleanupInterval = time.Hour

	// RetentionPeriod is how long selections are kept
	RetentionPeriod = 30 * 24 * time.Hour
)

// Tracker records school selections with buffered writes, so a slow disk
// never holds up a page event.
type Tracker struct {
	repo   *Repository
	buffer chan Entry
	stopCh chan struct{}
	wg     sync.WaitGroup
	log    *slog.Logger
	now    func() time.Time
}

// NewTracker creates a new selection tracker
func NewTracker(repo *Repository, logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Tracker{
		repo:   repo,
		buffer: make(chan Entry, BufferSize),
		stopCh: make(chan struct{}),
		log:    logger.With("component", "history"),
		now:    time.Now,
	}
}

// RecordSelection queues a selection (non-blocking)
func (t *Tracker) RecordSelection(identity neis.SchoolIdentity, source string) {
	entry := Entry{
		Identity:   identity,
		Source:     source,
		SelectedAt: t.now(),
	}

	// Dropping is preferable to blocking the page event
	select {
	case t.buffer <- entry:
	default:
		t.log.Warn("history buffer full, dropping selection", "school", identity.Name)
	}
}

// Start begins the background goroutines for flushing and cleanup
func (t *Tracker) Start(ctx context.Context) {
	t.wg.Add(2)

	go func() {
		defer t.wg.Done()
		t.writer(ctx)
	}()

	go func() {
		defer t.wg.Done()
		t.cleanupTicker(ctx)
	}()
}

// Stop flushes what is buffered and waits for the goroutines to exit
func (t *Tracker) Stop() {
	close(t.stopCh)
	t.wg.Wait()
}

func (t *Tracker) writer(ctx context.Context) {
	ticker := time.NewTicker(FlushInterval)
	defer ticker.Stop()

	var batch []Entry

	for {
		select {
		case <-ctx.Done():
			t.flush(batch)
			t.drainAndFlush()
			return
		case <-t.stopCh:
			t.flush(batch)
			t.drainAndFlush()
			return
		case entry := <-t.buffer:
			batch = append(batch, entry)
			if len(batch) >= FlushBatchSize {
				t.flush(batch)
				batch = nil
			}
		case <-ticker.C:
			if len(batch) > 0 {
				t.flush(batch)
				batch = nil
			}
		}
	}
}

func (t *Tracker) drainAndFlush() {
	var batch []Entry
	for {
		select {
		case entry := <-t.buffer:
			batch = append(batch, entry)
		default:
			t.flush(batch)
			return
		}
	}
}

func (t *Tracker) flush(batch []Entry) {
	if len(batch) == 0 {
		return
	}
	if err := t.repo.InsertBatch(batch); err != nil {
		t.log.Error("failed to write selections", "count", len(batch), "error", err)
	}
}

func (t *Tracker) cleanupTicker(ctx context.Context) {
	ticker := time.NewTicker(CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.stopCh:
			return
		case <-ticker.C:
			if err := t.repo.DeleteBefore(t.now().Add(-RetentionPeriod)); err != nil {
				t.log.Error("failed to clean up selections", "error", err)
			}
		}
	}
}
