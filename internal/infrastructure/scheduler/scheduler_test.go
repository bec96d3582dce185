package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/cashflow/internal/domain"
	"github.com/iho/cashflow/internal/usecase"
)

type recordingReconciler struct {
	mu     sync.Mutex
	inputs []usecase.ReconcileInput
	err    error
}

func (r *recordingReconciler) Reconcile(_ context.Context, input usecase.ReconcileInput) (*usecase.ReconciliationResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.inputs = append(r.inputs, input)
	if r.err != nil {
		return nil, r.err
	}
	return &usecase.ReconciliationResult{Start: input.Start, End: input.End}, nil
}

func (r *recordingReconciler) calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.inputs)
}

func TestReconcileJob_WindowUsesUTCDates(t *testing.T) {
	job := NewReconcileJob(&recordingReconciler{}, 1, zerolog.Nop())
	// 23:30 at -03:00 is already the next day in UTC.
	job.now = func() time.Time {
		return time.Date(2024, time.March, 1, 23, 30, 0, 0, time.FixedZone("BRT", -3*3600))
	}

	start, end := job.Window()
	assert.Equal(t, domain.MustDate(2024, time.March, 1), start)
	assert.Equal(t, domain.MustDate(2024, time.March, 2), end)
}

func TestReconcileJob_Run(t *testing.T) {
	rec := &recordingReconciler{}
	job := NewReconcileJob(rec, 0, zerolog.Nop())
	job.now = func() time.Time { return time.Date(2024, time.January, 10, 1, 0, 0, 0, time.UTC) }

	require.NoError(t, job.Run(context.Background()))
	require.Len(t, rec.inputs, 1)
	assert.Equal(t, domain.MustDate(2024, time.January, 10), rec.inputs[0].Start)
	assert.Equal(t, rec.inputs[0].Start, rec.inputs[0].End)
	assert.Empty(t, rec.inputs[0].Merchant)
}

func TestReconcileJob_RunErrors(t *testing.T) {
	job := NewReconcileJob(&recordingReconciler{err: domain.ErrReconciliationInProgress}, 1, zerolog.Nop())
	assert.NoError(t, job.Run(context.Background()))

	job = NewReconcileJob(&recordingReconciler{err: errors.New("ledger down")}, 1, zerolog.Nop())
	assert.Error(t, job.Run(context.Background()))
}

func TestScheduler_RejectsInvalidSpec(t *testing.T) {
	s := New(zerolog.Nop())
	err := s.AddReconcileJob(context.Background(), "every day", NewReconcileJob(&recordingReconciler{}, 1, zerolog.Nop()))
	assert.Error(t, err)
}

func TestScheduler_RunsJob(t *testing.T) {
	rec := &recordingReconciler{}
	s := New(zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, s.AddReconcileJob(ctx, "@every 1s", NewReconcileJob(rec, 1, zerolog.Nop())))

	done := make(chan struct{})
	go func() {
		s.Start(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return rec.calls() > 0 }, 3*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop")
	}
}
