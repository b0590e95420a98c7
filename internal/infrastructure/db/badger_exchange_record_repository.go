// Package db stores exchange audit records in BadgerDB
package db

import (
	"context"
	"encoding/json"

	"github.com/dgraph-io/badger/v3"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/damon-houk/plaid-stripe-link/internal/domain/entity"
	"github.com/damon-houk/plaid-stripe-link/internal/domain/repository"
)

const exchangeKeyPrefix = "exchange:"

// BadgerExchangeRecordRepository implements the exchange record repository using BadgerDB
type BadgerExchangeRecordRepository struct {
	db *badger.DB
}

var _ repository.ExchangeRecordRepository = (*BadgerExchangeRecordRepository)(nil)

// NewBadgerExchangeRecordRepository creates a new BadgerDB exchange record repository
func NewBadgerExchangeRecordRepository(db *badger.DB) *BadgerExchangeRecordRepository {
	return &BadgerExchangeRecordRepository{db: db}
}

// Open opens (or creates) a Badger database at dir. An empty dir opens an in-memory store.
func Open(dir string) (*badger.DB, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open badger database at %q", dir)
	}
	return db, nil
}

// Store validates and saves a record, assigning an ID when it has none
func (r *BadgerExchangeRecordRepository) Store(ctx context.Context, record *entity.ExchangeRecord) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := record.Validate(); err != nil {
		return "", errors.Wrap(err, "invalid exchange record")
	}
	if record.ID == "" {
		record.ID = uuid.New().String()
	}

	data, err := json.Marshal(record)
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal exchange record")
	}

	err = r.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(exchangeKeyPrefix+record.ID), data)
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to store exchange record")
	}

	return record.ID, nil
}

// FindByID retrieves a record by its unique identifier
func (r *BadgerExchangeRecordRepository) FindByID(ctx context.Context, id string) (*entity.ExchangeRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var record entity.ExchangeRecord
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(exchangeKeyPrefix + id))
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &record)
		})
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, errors.Wrapf(repository.ErrExchangeNotFound, "id %s", id)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to retrieve exchange record")
	}

	return &record, nil
}
