package edge_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/ERnsTL/flowd-go/edge"
)

func TestMPMCBasic(t *testing.T) {
	q := edge.NewMPMC[int](4)

	for i := 0; i < 4; i++ {
		if err := q.Push(i); err != nil {
			t.Fatalf("Push(%d): %v", i, err)
		}
	}
	if err := q.Push(999); !errors.Is(err, edge.ErrWouldBlock) {
		t.Fatalf("Push on full: got %v, want ErrWouldBlock", err)
	}

	seen := make(map[int]bool)
	for i := 0; i < 4; i++ {
		v, err := q.Pop()
		if err != nil {
			t.Fatalf("Pop(%d): %v", i, err)
		}
		seen[v] = true
	}
	for i := 0; i < 4; i++ {
		if !seen[i] {
			t.Fatalf("never popped %d", i)
		}
	}

	if _, err := q.Pop(); !errors.Is(err, edge.ErrWouldBlock) {
		t.Fatalf("Pop on empty: got %v, want ErrWouldBlock", err)
	}
}

// TestMPMCManyProducersManyConsumers checks that every produced element is
// delivered to exactly one consumer: the trace bus's core requirement.
func TestMPMCManyProducersManyConsumers(t *testing.T) {
	q := edge.NewMPMC[int](64)
	const producers = 4
	const perProducer = 200
	const total = producers * perProducer

	var wg sync.WaitGroup
	wg.Add(producers)
	for p := 0; p < producers; p++ {
		go func(base int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				for {
					if err := q.Push(base + i); err == nil {
						break
					}
				}
			}
		}(p * perProducer)
	}

	results := make(chan int, total)
	const consumers = 3
	var cwg sync.WaitGroup
	cwg.Add(consumers)
	done := make(chan struct{})
	for c := 0; c < consumers; c++ {
		go func() {
			defer cwg.Done()
			for {
				v, err := q.Pop()
				if err == nil {
					results <- v
					continue
				}
				select {
				case <-done:
					return
				default:
				}
			}
		}()
	}

	wg.Wait()
	got := make(map[int]int)
	for len(got) < total {
		v := <-results
		got[v]++
	}
	close(done)
	cwg.Wait()

	if len(got) != total {
		t.Fatalf("got %d distinct values, want %d", len(got), total)
	}
	for v, n := range got {
		if n != 1 {
			t.Fatalf("value %d delivered %d times, want exactly 1", v, n)
		}
	}
}

func TestMPMCCap(t *testing.T) {
	q := edge.NewMPMC[int](3)
	if q.Cap() != 4 {
		t.Fatalf("Cap: got %d, want 4", q.Cap())
	}
}
