package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/iho/cashflow/internal/domain"
	"github.com/iho/cashflow/internal/usecase"
)

// EntriesCollection is the collection holding ledger entries.
const EntriesCollection = "entries"

// ErrDuplicateEntry is returned when an entry id is reused.
var ErrDuplicateEntry = errors.New("entry already exists")

type entryDocument struct {
	RecordedAt     time.Time            `bson:"recordedAt"`
	Date           time.Time            `bson:"date"`
	ConsolidatedAt *time.Time           `bson:"consolidatedAt,omitempty"`
	ID             string               `bson:"_id"`
	Merchant       string               `bson:"merchant"`
	Kind           string               `bson:"kind"`
	Description    string               `bson:"description,omitempty"`
	Amount         primitive.Decimal128 `bson:"amount"`
	Consolidated   bool                 `bson:"consolidated"`
}

// EntryRepository implements usecase.EntryRepository on MongoDB.
type EntryRepository struct {
	coll *mongo.Collection
}

// NewEntryRepository creates a new EntryRepository over coll.
func NewEntryRepository(coll *mongo.Collection) *EntryRepository {
	return &EntryRepository{coll: coll}
}

// EnsureIndexes creates the index serving the period query.
func (r *EntryRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "consolidated", Value: 1},
				{Key: "date", Value: 1},
				{Key: "merchant", Value: 1},
			},
			Options: options.Index().SetName("consolidated_date_merchant"),
		},
	})
	return err
}

// Create inserts a new entry.
func (r *EntryRepository) Create(ctx context.Context, entry *domain.LedgerEntry) error {
	doc, err := toDocument(entry)
	if err != nil {
		return err
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %s", ErrDuplicateEntry, entry.ID)
		}
		return err
	}

	return nil
}

// List returns entries matching the filter ordered by _id, starting after
// filter.AfterID. Ids are ULIDs, so the order follows recording time and the
// cursor stays stable while new entries arrive. A zero Limit falls back to
// usecase.MaxListEntries.
func (r *EntryRepository) List(ctx context.Context, filter usecase.EntryFilter) ([]*domain.LedgerEntry, error) {
	query := bson.M{
		"date": bson.M{
			"$gte": filter.Period.Start.Time(),
			"$lte": filter.Period.End.Time(),
		},
	}
	if filter.Merchant != "" {
		query["merchant"] = filter.Merchant
	}
	if filter.Consolidated != nil {
		query["consolidated"] = *filter.Consolidated
	}
	if filter.AfterID != "" {
		query["_id"] = bson.M{"$gt": filter.AfterID}
	}

	limit := int64(filter.Limit)
	if limit <= 0 {
		limit = usecase.MaxListEntries
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetLimit(limit)

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []entryDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	entries := make([]*domain.LedgerEntry, 0, len(docs))
	for _, doc := range docs {
		entry, err := fromDocument(doc)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// MarkConsolidated flags all ids in one UpdateMany and returns the matched count.
// Entries already flagged still match, so redelivered events do not look like misses.
func (r *EntryRepository) MarkConsolidated(ctx context.Context, ids []string) (int64, error) {
	now := time.Now().UTC()

	result, err := r.coll.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		bson.M{"$set": bson.M{"consolidated": true, "consolidatedAt": now}},
	)
	if err != nil {
		return 0, err
	}

	return result.MatchedCount, nil
}

func toDocument(e *domain.LedgerEntry) (entryDocument, error) {
	amount, err := primitive.ParseDecimal128(e.Amount.String())
	if err != nil {
		return entryDocument{}, fmt.Errorf("%w: %s", domain.ErrInvalidAmount, e.Amount)
	}

	return entryDocument{
		ID:           e.ID,
		Merchant:     e.Merchant,
		Amount:       amount,
		Kind:         string(e.Kind),
		Date:         e.Date.Time(),
		Description:  e.Description,
		RecordedAt:   e.RecordedAt.UTC(),
		Consolidated: e.Consolidated,
	}, nil
}

func fromDocument(doc entryDocument) (*domain.LedgerEntry, error) {
	amount, err := decimal.NewFromString(doc.Amount.String())
	if err != nil {
		return nil, fmt.Errorf("entry %s: decode amount: %w", doc.ID, err)
	}

	return &domain.LedgerEntry{
		ID:           doc.ID,
		Merchant:     doc.Merchant,
		Amount:       amount,
		Kind:         domain.EntryKind(doc.Kind),
		Date:         domain.DateOf(doc.Date.UTC()),
		Description:  doc.Description,
		RecordedAt:   doc.RecordedAt,
		Consolidated: doc.Consolidated,
	}, nil
}
