package bot

import (
	"errors"
	"sync"
	"testing"

	"github.com/go-telegram/bot/models"
)

func TestQueueEnqueue(t *testing.T) {
	t.Parallel()

	q := NewQueue(2)

	for i := range 2 {
		if err := q.Enqueue(&models.Update{ID: int64(i)}); err != nil {
			t.Fatalf("Enqueue(%d) error = %v", i, err)
		}
	}
	if err := q.Enqueue(&models.Update{ID: 3}); !errors.Is(err, ErrQueueFull) {
		t.Fatalf("Enqueue on full queue error = %v, want ErrQueueFull", err)
	}
	if q.Len() != 2 {
		t.Errorf("Len() = %d, want 2", q.Len())
	}

	first := <-q.Updates()
	if first.ID != 0 {
		t.Errorf("first update ID = %d, want 0 (FIFO)", first.ID)
	}
	if err := q.Enqueue(&models.Update{ID: 4}); err != nil {
		t.Errorf("Enqueue after drain error = %v", err)
	}
}

func TestQueueClose(t *testing.T) {
	t.Parallel()

	q := NewQueue(4)
	if err := q.Enqueue(&models.Update{ID: 1}); err != nil {
		t.Fatal(err)
	}

	q.Close()
	q.Close()

	if err := q.Enqueue(&models.Update{ID: 2}); !errors.Is(err, ErrQueueClosed) {
		t.Fatalf("Enqueue after Close error = %v, want ErrQueueClosed", err)
	}

	var got []int64
	for upd := range q.Updates() {
		got = append(got, upd.ID)
	}
	if len(got) != 1 || got[0] != 1 {
		t.Errorf("drained %v, want [1]", got)
	}
}

func TestQueueMinimumSize(t *testing.T) {
	t.Parallel()

	q := NewQueue(0)
	if err := q.Enqueue(&models.Update{}); err != nil {
		t.Fatalf("Enqueue on size-0 queue error = %v", err)
	}
}

func TestQueueConcurrentCloseAndEnqueue(t *testing.T) {
	t.Parallel()

	q := NewQueue(8)
	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = q.Enqueue(&models.Update{ID: int64(i)})
		}()
	}
	q.Close()
	wg.Wait()

	for range q.Updates() {
	}
}
