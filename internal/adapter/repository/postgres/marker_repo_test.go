package postgres

import (
	"context"
	"regexp"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
)

func TestMarkerRepository_Claim(t *testing.T) {
	mockPool := newMockPool(t)
	mockPool.ExpectBegin()
	mockPool.ExpectExec(regexp.QuoteMeta("INSERT INTO processed_entries")).
		WithArgs("e1", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mockPool.ExpectExec(regexp.QuoteMeta("INSERT INTO processed_entries")).
		WithArgs("e1", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 0))
	mockPool.ExpectCommit()

	tx := beginTx(t, mockPool)
	repo := NewMarkerRepository(mockPool)

	claimed, err := repo.Claim(context.Background(), tx, "e1", testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !claimed {
		t.Fatal("expected first claim to succeed")
	}

	claimed, err = repo.Claim(context.Background(), tx, "e1", testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claimed {
		t.Fatal("expected second claim to report already processed")
	}

	if err := tx.Commit(context.Background()); err != nil {
		t.Fatalf("commit failed: %v", err)
	}
	assertExpectations(t, mockPool)
}

func TestMarkerRepository_Exists(t *testing.T) {
	mockPool := newMockPool(t)
	mockPool.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WithArgs("e1").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	repo := NewMarkerRepository(mockPool)

	exists, err := repo.Exists(context.Background(), "e1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !exists {
		t.Fatal("expected marker to exist")
	}

	assertExpectations(t, mockPool)
}
