package services

import (
	"sync"

	"bacbo-live-client/internal/models"
)

// History keeps the last rounds in memory, newest last.
type History struct {
	mu      sync.Mutex
	size    int
	records []*models.RoundRecord
}

func NewHistory(size int) *History {
	if size <= 0 {
		size = DefaultHistorySize
	}
	return &History{size: size}
}

func (h *History) RecordRound(rec *models.RoundRecord) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.records = append(h.records, rec)
	if len(h.records) > h.size {
		h.records = h.records[len(h.records)-h.size:]
	}
	return nil
}

func (h *History) Records() []*models.RoundRecord {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]*models.RoundRecord, len(h.records))
	copy(out, h.records)
	return out
}

// Tally counts submitted results by value.
func (h *History) Tally() map[models.Result]int {
	h.mu.Lock()
	defer h.mu.Unlock()

	counts := make(map[models.Result]int)
	for _, rec := range h.records {
		counts[rec.Result]++
	}
	return counts
}
