package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/iho/cashflow/internal/domain"
	"github.com/iho/cashflow/internal/usecase"
	"github.com/iho/cashflow/internal/usecase/mocks"
)

func TestCreateEntry(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockEntryRepository(ctrl)
	publisher := &mocks.RecordingPublisher{}
	idGen := &mocks.MockIDGenerator{GenerateFunc: func() string { return "01HX0000000000000000000000" }}

	var stored *domain.LedgerEntry
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e *domain.LedgerEntry) error {
		stored = e
		return nil
	})

	uc := usecase.NewLedgerUseCase(repo, publisher, idGen, testLogger())

	entry, err := uc.CreateEntry(context.Background(), usecase.CreateEntryInput{
		Merchant:    " Acme ",
		Amount:      decimal.RequireFromString("99.90"),
		Kind:        "Credit",
		Date:        jan1,
		Description: "sale",
	})
	require.NoError(t, err)
	uc.Wait()

	assert.Same(t, stored, entry)
	assert.Equal(t, "01HX0000000000000000000000", entry.ID)
	assert.Equal(t, "Acme", entry.Merchant)
	assert.Equal(t, domain.EntryKindCredit, entry.Kind)
	assert.False(t, entry.Consolidated)
	assert.False(t, entry.RecordedAt.IsZero())

	events := publisher.EntryEvents()
	require.Len(t, events, 1)
	assert.Equal(t, entry.ID, events[0].ID)
	assert.Equal(t, "credit", events[0].Kind)
	assert.Equal(t, jan1, events[0].Date)
}

func TestCreateEntry_PublishFailureDoesNotFailRequest(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockEntryRepository(ctrl)
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	publisher := &mocks.RecordingPublisher{Err: domain.ErrPublishFailed}
	uc := usecase.NewLedgerUseCase(repo, publisher, mocks.NewMockIDGenerator(), testLogger())

	_, err := uc.CreateEntry(context.Background(), usecase.CreateEntryInput{
		Merchant: "A", Amount: decimal.NewFromInt(1), Kind: "debit", Date: jan1,
	})
	require.NoError(t, err)
	uc.Wait()
}

func TestCreateEntry_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		input       usecase.CreateEntryInput
		expectError error
	}{
		{
			name:        "unknown kind",
			input:       usecase.CreateEntryInput{Merchant: "A", Amount: decimal.NewFromInt(1), Kind: "refund", Date: jan1},
			expectError: domain.ErrInvalidEntryKind,
		},
		{
			name:        "zero amount",
			input:       usecase.CreateEntryInput{Merchant: "A", Amount: decimal.Zero, Kind: "credit", Date: jan1},
			expectError: domain.ErrInvalidAmount,
		},
		{
			name:        "blank merchant",
			input:       usecase.CreateEntryInput{Merchant: "  ", Amount: decimal.NewFromInt(1), Kind: "credit", Date: jan1},
			expectError: domain.ErrMerchantRequired,
		},
		{
			name:        "missing date",
			input:       usecase.CreateEntryInput{Merchant: "A", Amount: decimal.NewFromInt(1), Kind: "credit"},
			expectError: domain.ErrDateRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mocks.NewMockEntryRepository(ctrl)

			uc := usecase.NewLedgerUseCase(repo, &mocks.RecordingPublisher{}, mocks.NewMockIDGenerator(), testLogger())
			_, err := uc.CreateEntry(context.Background(), tt.input)
			assert.ErrorIs(t, err, tt.expectError)
		})
	}
}

func TestCreateEntry_StoreError(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockEntryRepository(ctrl)
	boom := errors.New("write concern")
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(boom)

	publisher := &mocks.RecordingPublisher{}
	uc := usecase.NewLedgerUseCase(repo, publisher, mocks.NewMockIDGenerator(), testLogger())

	_, err := uc.CreateEntry(context.Background(), usecase.CreateEntryInput{
		Merchant: "A", Amount: decimal.NewFromInt(1), Kind: "credit", Date: jan1,
	})
	require.ErrorIs(t, err, boom)
	uc.Wait()
	assert.Empty(t, publisher.EntryEvents())
}

func TestListEntries(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockEntryRepository(ctrl)

	unconsolidated := false
	want := usecase.EntryFilter{
		Period:       domain.Period{Start: jan1, End: jan2},
		Merchant:     "A",
		Consolidated: &unconsolidated,
		Limit:        usecase.MaxListEntries + 1,
	}
	entries := []*domain.LedgerEntry{credit("e1", "A", 1, jan1)}
	repo.EXPECT().List(gomock.Any(), want).Return(entries, nil)

	uc := usecase.NewLedgerUseCase(repo, &mocks.RecordingPublisher{}, mocks.NewMockIDGenerator(), testLogger())

	got, err := uc.ListEntries(context.Background(), usecase.ListEntriesInput{
		Start: jan1, End: jan2, Merchant: "A ", Consolidated: &unconsolidated,
	})
	require.NoError(t, err)
	assert.Equal(t, entries, got.Entries)
	assert.Empty(t, got.NextAfterID)

	_, err = uc.ListEntries(context.Background(), usecase.ListEntriesInput{Start: jan2, End: jan1})
	assert.ErrorIs(t, err, domain.ErrInvalidPeriod)
}

func TestListEntries_Pages(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockEntryRepository(ctrl)

	// The repository hands back one row beyond the page.
	repo.EXPECT().List(gomock.Any(), usecase.EntryFilter{
		Period:  domain.Period{Start: jan1, End: jan1},
		AfterID: "e2",
		Limit:   3,
	}).Return([]*domain.LedgerEntry{
		credit("e3", "A", 1, jan1),
		credit("e4", "A", 1, jan1),
		credit("e5", "A", 1, jan1),
	}, nil)

	uc := usecase.NewLedgerUseCase(repo, &mocks.RecordingPublisher{}, mocks.NewMockIDGenerator(), testLogger())

	page, err := uc.ListEntries(context.Background(), usecase.ListEntriesInput{
		Start: jan1, End: jan1, AfterID: "e2", Limit: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"e3", "e4"}, domain.EntryIDs(page.Entries))
	assert.Equal(t, "e4", page.NextAfterID)
}

func TestListEntries_ClampsLimit(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockEntryRepository(ctrl)
	repo.EXPECT().List(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, f usecase.EntryFilter) ([]*domain.LedgerEntry, error) {
			assert.Equal(t, usecase.MaxListEntries+1, f.Limit)
			return nil, nil
		})

	uc := usecase.NewLedgerUseCase(repo, &mocks.RecordingPublisher{}, mocks.NewMockIDGenerator(), testLogger())

	page, err := uc.ListEntries(context.Background(), usecase.ListEntriesInput{
		Start: jan1, End: jan1, Limit: usecase.MaxListEntries * 10,
	})
	require.NoError(t, err)
	assert.Empty(t, page.Entries)
	assert.Empty(t, page.NextAfterID)
}
