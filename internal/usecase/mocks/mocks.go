package mocks

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/iho/cashflow/internal/domain"
	"github.com/iho/cashflow/internal/usecase"
)

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &MockTransaction{}, nil
}

// MockTransaction is a mock implementation of Transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	return nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	GenerateFunc func() string
	counter      int
	mu           sync.Mutex
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("mock-id-%d", m.counter)
}

// MockRetrier runs the operation once, or RetryFunc when set.
type MockRetrier struct {
	RetryFunc func(ctx context.Context, operation func() error) error
}

func (m *MockRetrier) Retry(ctx context.Context, operation func() error) error {
	if m.RetryFunc != nil {
		return m.RetryFunc(ctx, operation)
	}
	return operation()
}

// InMemoryMarkerRepository is a MarkerRepository backed by a set. Claims are
// atomic but not transactional: they survive a rollback.
type InMemoryMarkerRepository struct {
	mu      sync.Mutex
	markers map[string]time.Time
}

func NewInMemoryMarkerRepository() *InMemoryMarkerRepository {
	return &InMemoryMarkerRepository{markers: make(map[string]time.Time)}
}

func (m *InMemoryMarkerRepository) Claim(_ context.Context, _ usecase.Transaction, entryID string, processedAt time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.markers[entryID]; ok {
		return false, nil
	}
	m.markers[entryID] = processedAt
	return true, nil
}

func (m *InMemoryMarkerRepository) Exists(_ context.Context, entryID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.markers[entryID]
	return ok, nil
}

// Len returns the number of stored markers.
func (m *InMemoryMarkerRepository) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.markers)
}

// InMemoryConsolidationRepository stores copies of consolidations keyed by
// (merchant, date). It counts updates so tests can observe write effects.
type InMemoryConsolidationRepository struct {
	mu      sync.Mutex
	rows    map[domain.ConsolidationKey]domain.DailyConsolidation
	nextID  int64
	Updates int
}

func NewInMemoryConsolidationRepository() *InMemoryConsolidationRepository {
	return &InMemoryConsolidationRepository{rows: make(map[domain.ConsolidationKey]domain.DailyConsolidation)}
}

func (m *InMemoryConsolidationRepository) GetOrCreateForUpdate(_ context.Context, _ usecase.Transaction, key domain.ConsolidationKey) (*domain.DailyConsolidation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if row, ok := m.rows[key]; ok {
		return &row, nil
	}
	c, err := domain.NewDailyConsolidation(key.Merchant, key.Date)
	if err != nil {
		return nil, err
	}
	m.nextID++
	c.ID = m.nextID
	m.rows[key] = *c
	return c, nil
}

func (m *InMemoryConsolidationRepository) Update(_ context.Context, _ usecase.Transaction, c *domain.DailyConsolidation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[c.Key()]; !ok {
		return domain.ErrConsolidationNotFound
	}
	m.rows[c.Key()] = *c
	m.Updates++
	return nil
}

func (m *InMemoryConsolidationRepository) Get(_ context.Context, key domain.ConsolidationKey) (*domain.DailyConsolidation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[key]
	if !ok {
		return nil, domain.ErrConsolidationNotFound
	}
	return &row, nil
}

func (m *InMemoryConsolidationRepository) List(_ context.Context, filter usecase.ConsolidationFilter) ([]*domain.DailyConsolidation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.DailyConsolidation
	for key, row := range m.rows {
		if !filter.Period.Contains(key.Date) {
			continue
		}
		if filter.Merchant != "" && filter.Merchant != key.Merchant {
			continue
		}
		row := row
		out = append(out, &row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key().Less(out[j].Key()) })
	return out, nil
}

func (m *InMemoryConsolidationRepository) Delete(ctx context.Context, filter usecase.ConsolidationFilter) (int64, error) {
	rows, _ := m.List(ctx, filter)
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range rows {
		delete(m.rows, row.Key())
	}
	return int64(len(rows)), nil
}

// Len returns the number of stored consolidations.
func (m *InMemoryConsolidationRepository) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

// RecordingPublisher captures published events. Err, when set, is returned
// from every publish.
type RecordingPublisher struct {
	mu               sync.Mutex
	MarkConsolidated []domain.MarkConsolidatedEvent
	Entries          []domain.EntryEvent
	Err              error
}

func (p *RecordingPublisher) PublishMarkConsolidated(_ context.Context, event domain.MarkConsolidatedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.MarkConsolidated = append(p.MarkConsolidated, event)
	return nil
}

func (p *RecordingPublisher) PublishEntry(_ context.Context, event domain.EntryEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.Entries = append(p.Entries, event)
	return nil
}

// MarkConsolidatedEvents returns a snapshot of published mark-consolidated events.
func (p *RecordingPublisher) MarkConsolidatedEvents() []domain.MarkConsolidatedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]domain.MarkConsolidatedEvent(nil), p.MarkConsolidated...)
}

// EntryEvents returns a snapshot of published entry events.
func (p *RecordingPublisher) EntryEvents() []domain.EntryEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]domain.EntryEvent(nil), p.Entries...)
}
