package scanqueue

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Jasith06/jlink-pos-web/apperr"
	"github.com/Jasith06/jlink-pos-web/extractor"
	"github.com/Jasith06/jlink-pos-web/utils"
)

const (
	// DefaultMaxSize caps the queue; past it the oldest records are evicted
	// regardless of processed state.
	DefaultMaxSize = 100

	// DefaultRetention is how long a processed record survives before Poll
	// garbage-collects it. Unprocessed records are never evicted by age.
	DefaultRetention = time.Hour
)

// Queue implements the scan ingestion/polling protocol over a Store.
// Every record moves created(unprocessed) -> processed, exactly once.
// Load-mutate-save runs under one mutex, so concurrent Poll calls
// partition the unprocessed set without overlap and concurrent Ingest
// calls preserve arrival order.
type Queue struct {
	mu        sync.Mutex
	store     Store
	maxSize   int
	retention time.Duration
	now       func() time.Time
}

func New(store Store) *Queue {
	return &Queue{
		store:     store,
		maxSize:   DefaultMaxSize,
		retention: DefaultRetention,
		now:       time.Now,
	}
}

// Ingest validates and enqueues one scan. The returned record carries the
// generated id and the extracted product code.
func (q *Queue) Ingest(ctx context.Context, payload, deviceID string, timestamp int64) (*ScanRecord, error) {
	if payload == "" {
		return nil, apperr.NewValidation("payload", "QR payload is required")
	}
	code := extractor.ProductCode(payload)
	if code == "" {
		return nil, apperr.NewValidation("payload", "could not extract a product code")
	}

	if deviceID == "" {
		deviceID = "UNKNOWN"
	}
	if timestamp == 0 {
		timestamp = q.now().UnixMilli()
	}

	rec := ScanRecord{
		ID:          "scan_" + utils.GetUUID(),
		Payload:     payload,
		ProductCode: code,
		DeviceID:    deviceID,
		ReceivedAt:  timestamp,
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	records, err := q.store.Load(ctx)
	if err != nil {
		return nil, apperr.NewUpstream("scan queue unavailable", err)
	}

	records = append(records, rec)
	if len(records) > q.maxSize {
		records = records[len(records)-q.maxSize:]
	}

	if err := q.store.Save(ctx, records); err != nil {
		return nil, apperr.NewUpstream("scan queue unavailable", err)
	}
	return &rec, nil
}

// Poll returns every unprocessed record and marks exactly that set
// processed. Records enqueued while the batch is being flipped land in the
// next poll. Processed records past the retention window are evicted first.
func (q *Queue) Poll(ctx context.Context) ([]ScanRecord, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	records, err := q.store.Load(ctx)
	if err != nil {
		return nil, apperr.NewUpstream("scan queue unavailable", err)
	}

	now := q.now()
	cutoff := now.Add(-q.retention).UnixMilli()

	kept := records[:0]
	for _, r := range records {
		if r.Processed && r.ReceivedAt < cutoff {
			continue
		}
		kept = append(kept, r)
	}
	records = kept

	var batch []ScanRecord
	for i := range records {
		if records[i].Processed {
			continue
		}
		batch = append(batch, records[i]) // snapshot before the flip
		records[i].Processed = true
		records[i].ProcessedAt = now.UnixMilli()
	}

	if err := q.store.Save(ctx, records); err != nil {
		return nil, apperr.NewUpstream("scan queue unavailable", err)
	}
	return batch, nil
}

// Clear empties the queue. Administrative reset, not part of the
// steady-state protocol.
func (q *Queue) Clear(ctx context.Context) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if err := q.store.Save(ctx, []ScanRecord{}); err != nil {
		return apperr.NewUpstream("scan queue unavailable", err)
	}
	return nil
}

// Len reports the current queue length, processed records included.
func (q *Queue) Len(ctx context.Context) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	records, err := q.store.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("load queue: %w", err)
	}
	return len(records), nil
}
