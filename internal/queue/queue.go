package queue

import (
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"taipeihouse/server/internal/models"
)

var (
	ErrQueueFull   = errors.New("queue is full")
	ErrQueueClosed = errors.New("queue is closed")
)

// RowQueue is an in-memory queue of parsed CSV row batches feeding the
// ingest writer.
type RowQueue struct {
	items    chan []*models.SourceRow
	done     chan struct{}
	maxSize  int
	closed   bool
	mu       sync.RWMutex
	logger   *logrus.Logger
	handlers []func([]*models.SourceRow) error
}

// NewRowQueue creates a queue holding at most bufferSize pending batches.
func NewRowQueue(bufferSize int, logger *logrus.Logger) *RowQueue {
	return &RowQueue{
		items:    make(chan []*models.SourceRow, bufferSize),
		done:     make(chan struct{}),
		maxSize:  bufferSize,
		logger:   logger,
		handlers: make([]func([]*models.SourceRow) error, 0),
	}
}

// Push enqueues one batch without blocking. A full queue returns
// ErrQueueFull so the producer can back off instead of stalling.
func (q *RowQueue) Push(rows []*models.SourceRow) error {
	q.mu.RLock()
	if q.closed {
		q.mu.RUnlock()
		return ErrQueueClosed
	}
	q.mu.RUnlock()

	select {
	case q.items <- rows:
		q.logger.WithField("batch_size", len(rows)).Debug("Pushed batch to queue")
		return nil
	default:
		return ErrQueueFull
	}
}

// Subscribe registers a handler invoked for every drained batch.
func (q *RowQueue) Subscribe(handler func([]*models.SourceRow) error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.handlers = append(q.handlers, handler)
}

// Start drains the queue on a background goroutine.
func (q *RowQueue) Start() {
	go q.process()
}

func (q *RowQueue) process() {
	for {
		select {
		case <-q.done:
			return
		case batch, ok := <-q.items:
			if !ok {
				return
			}
			q.processBatch(batch)
		}
	}
}

func (q *RowQueue) processBatch(batch []*models.SourceRow) {
	q.mu.RLock()
	handlers := q.handlers
	q.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler(batch); err != nil {
			q.logger.WithError(err).Error("Handler failed to process batch")
		}
	}
}

// Close rejects further pushes and stops the drain loop. Batches still
// buffered at that point may go undelivered; callers drain first.
func (q *RowQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}

	q.closed = true
	close(q.done)
	close(q.items)
	return nil
}

// Len reports how many batches are waiting to be drained.
func (q *RowQueue) Len() int {
	return len(q.items)
}

// IsClosed reports whether Close has been called.
func (q *RowQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
