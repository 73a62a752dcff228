package memory

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vsinha/receiptaging/pkg/domain/entities"
	"github.com/vsinha/receiptaging/pkg/domain/repositories"
)

// DefaultReportCapacity is the number of reports kept when no capacity is given
const DefaultReportCapacity = 32

// ReportRepository provides bounded in-memory storage for rendered reports.
// Once full, saving a report evicts the oldest one.
type ReportRepository struct {
	mu       sync.RWMutex
	capacity int
	reports  map[string]*entities.StoredReport
	order    []string
	now      func() time.Time
}

// NewReportRepository creates a new in-memory report repository
func NewReportRepository(capacity int) *ReportRepository {
	if capacity <= 0 {
		capacity = DefaultReportCapacity
	}
	return &ReportRepository{
		capacity: capacity,
		reports:  make(map[string]*entities.StoredReport, capacity),
		order:    make([]string, 0, capacity),
		now:      time.Now,
	}
}

// Verify interface compliance
var _ repositories.ReportRepository = (*ReportRepository)(nil)

// Save stores a report under a new id and returns the id
func (r *ReportRepository) Save(report *entities.StoredReport) (string, error) {
	if report == nil {
		return "", fmt.Errorf("report cannot be nil")
	}

	stored := *report
	stored.ID = uuid.NewString()
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = r.now()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for len(r.order) >= r.capacity {
		oldest := r.order[0]
		r.order = r.order[1:]
		delete(r.reports, oldest)
	}
	r.reports[stored.ID] = &stored
	r.order = append(r.order, stored.ID)

	return stored.ID, nil
}

// Get returns a stored report by id
func (r *ReportRepository) Get(id string) (*entities.StoredReport, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	report, exists := r.reports[id]
	if !exists {
		return nil, fmt.Errorf("report %s: %w", id, repositories.ErrReportNotFound)
	}
	return report, nil
}

// Len returns the number of stored reports
func (r *ReportRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.reports)
}
