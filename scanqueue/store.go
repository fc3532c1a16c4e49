package scanqueue

import (
	"context"
	"fmt"
)

// Store persists the scan queue as one ordered collection, rewritten
// wholesale on every mutation. Backends are interchangeable; the Queue
// provides all ordering and atomicity on top.
type Store interface {
	Load(ctx context.Context) ([]ScanRecord, error)
	Save(ctx context.Context, records []ScanRecord) error
}

// OpenStore selects a backend by name: "memory", "file" or "redis".
func OpenStore(backend, filePath string) (Store, error) {
	switch backend {
	case "", "memory":
		return NewMemoryStore(), nil
	case "file":
		if filePath == "" {
			filePath = "queue/scanner_queue.json"
		}
		return NewFileStore(filePath), nil
	case "redis":
		return NewRedisStore("scanner:queue"), nil
	default:
		return nil, fmt.Errorf("unknown scan queue backend %q", backend)
	}
}

// MemoryStore keeps the queue in process memory. Contents are lost on
// restart; meant for development and tests.
type MemoryStore struct {
	records []ScanRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(_ context.Context) ([]ScanRecord, error) {
	out := make([]ScanRecord, len(s.records))
	copy(out, s.records)
	return out, nil
}

func (s *MemoryStore) Save(_ context.Context, records []ScanRecord) error {
	s.records = make([]ScanRecord, len(records))
	copy(s.records, records)
	return nil
}
