package bot

import (
	"errors"
	"sync"

	"github.com/go-telegram/bot/models"
)

var (
	// ErrQueueFull is returned by Enqueue when the buffer has no free slot.
	ErrQueueFull = errors.New("update queue is full")
	// ErrQueueClosed is returned by Enqueue after Close.
	ErrQueueClosed = errors.New("update queue is closed")
)

// Queue hands decoded updates from the gateway to the event loop. Enqueue
// never blocks.
type Queue struct {
	mu     sync.RWMutex
	ch     chan *models.Update
	closed bool
}

// NewQueue creates a queue buffering up to size updates.
func NewQueue(size int) *Queue {
	if size < 1 {
		size = 1
	}
	return &Queue{ch: make(chan *models.Update, size)}
}

// Enqueue adds upd without waiting for the consumer.
func (q *Queue) Enqueue(upd *models.Update) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return ErrQueueClosed
	}
	select {
	case q.ch <- upd:
		return nil
	default:
		return ErrQueueFull
	}
}

// Close stops accepting updates. Buffered updates remain readable.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.closed {
		q.closed = true
		close(q.ch)
	}
}

// Updates is the consumer side of the queue.
func (q *Queue) Updates() <-chan *models.Update {
	return q.ch
}

// Len reports the number of buffered updates.
func (q *Queue) Len() int {
	return len(q.ch)
}
