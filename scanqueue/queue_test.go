package scanqueue

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"
)

func newTestQueue() *Queue {
	return New(NewMemoryStore())
}

func TestIngestValidation(t *testing.T) {
	q := newTestQueue()
	ctx := context.Background()

	if _, err := q.Ingest(ctx, "", "dev1", 0); err == nil {
		t.Fatal("expected error for empty payload")
	}
	if _, err := q.Ingest(ctx, "   ", "dev1", 0); err == nil {
		t.Fatal("expected error for whitespace payload")
	}
}

func TestIngestDefaults(t *testing.T) {
	q := newTestQueue()
	rec, err := q.Ingest(context.Background(), "PARA-001", "", 0)
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if rec.DeviceID != "UNKNOWN" {
		t.Errorf("device id = %q, want UNKNOWN", rec.DeviceID)
	}
	if rec.ProductCode != "PARA-001" {
		t.Errorf("product code = %q, want PARA-001", rec.ProductCode)
	}
	if rec.ID == "" || rec.ReceivedAt == 0 {
		t.Errorf("id/timestamp not generated: %+v", rec)
	}
	if rec.Processed {
		t.Error("new record must start unprocessed")
	}
}

func TestPollDrainsOnce(t *testing.T) {
	q := newTestQueue()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := q.Ingest(ctx, fmt.Sprintf("CODE-%d", i), "dev1", 0); err != nil {
			t.Fatalf("ingest %d: %v", i, err)
		}
	}

	batch, err := q.Poll(ctx)
	if err != nil {
		t.Fatalf("poll: %v", err)
	}
	if len(batch) != 3 {
		t.Fatalf("first poll returned %d records, want 3", len(batch))
	}
	// arrival order preserved
	for i, r := range batch {
		if want := fmt.Sprintf("CODE-%d", i); r.ProductCode != want {
			t.Errorf("batch[%d] = %q, want %q", i, r.ProductCode, want)
		}
	}

	again, err := q.Poll(ctx)
	if err != nil {
		t.Fatalf("second poll: %v", err)
	}
	if len(again) != 0 {
		t.Fatalf("second poll returned %d records, want 0", len(again))
	}
}

func TestMaxSizeEvictsOldest(t *testing.T) {
	q := newTestQueue()
	ctx := context.Background()

	for i := 0; i < DefaultMaxSize+5; i++ {
		if _, err := q.Ingest(ctx, fmt.Sprintf("CODE-%d", i), "dev1", 0); err != nil {
			t.Fatalf("ingest %d: %v", i, err)
		}
	}

	n, err := q.Len(ctx)
	if err != nil {
		t.Fatalf("len: %v", err)
	}
	if n != DefaultMaxSize {
		t.Fatalf("queue length = %d, want %d", n, DefaultMaxSize)
	}

	batch, err := q.Poll(ctx)
	if err != nil {
		t.Fatalf("poll: %v", err)
	}
	if batch[0].ProductCode != "CODE-5" {
		t.Errorf("oldest surviving record = %q, want CODE-5", batch[0].ProductCode)
	}
}

func TestRetentionEvictsProcessedOnly(t *testing.T) {
	q := newTestQueue()
	ctx := context.Background()

	base := time.Now()
	q.now = func() time.Time { return base }

	if _, err := q.Ingest(ctx, "OLD-1", "dev1", 0); err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if _, err := q.Poll(ctx); err != nil { // OLD-1 becomes processed
		t.Fatalf("poll: %v", err)
	}
	if _, err := q.Ingest(ctx, "OLD-2", "dev1", 0); err != nil { // stays unprocessed
		t.Fatalf("ingest: %v", err)
	}

	// jump past the retention window
	q.now = func() time.Time { return base.Add(DefaultRetention + time.Minute) }

	batch, err := q.Poll(ctx)
	if err != nil {
		t.Fatalf("poll: %v", err)
	}
	if len(batch) != 1 || batch[0].ProductCode != "OLD-2" {
		t.Fatalf("batch = %+v, want just OLD-2", batch)
	}

	n, err := q.Len(ctx)
	if err != nil {
		t.Fatalf("len: %v", err)
	}
	if n != 1 {
		t.Errorf("queue length after retention sweep = %d, want 1", n)
	}
}

func TestClear(t *testing.T) {
	q := newTestQueue()
	ctx := context.Background()

	if _, err := q.Ingest(ctx, "CODE-1", "dev1", 0); err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if err := q.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	n, err := q.Len(ctx)
	if err != nil {
		t.Fatalf("len: %v", err)
	}
	if n != 0 {
		t.Errorf("queue length after clear = %d, want 0", n)
	}
}

func TestConcurrentPollNoDoubleDelivery(t *testing.T) {
	q := newTestQueue()
	ctx := context.Background()

	const total = 50
	for i := 0; i < total; i++ {
		if _, err := q.Ingest(ctx, fmt.Sprintf("CODE-%d", i), "dev1", 0); err != nil {
			t.Fatalf("ingest %d: %v", i, err)
		}
	}

	var mu sync.Mutex
	seen := make(map[string]int)
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			batch, err := q.Poll(ctx)
			if err != nil {
				t.Errorf("poll: %v", err)
				return
			}
			mu.Lock()
			for _, r := range batch {
				seen[r.ID]++
			}
			mu.Unlock()
		}()
	}
	wg.Wait()

	if len(seen) != total {
		t.Fatalf("delivered %d distinct records, want %d", len(seen), total)
	}
	for id, n := range seen {
		if n != 1 {
			t.Errorf("record %s delivered %d times", id, n)
		}
	}
}
