package repositories

import (
	"postcard/app/models"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

// BadgerMediaRepository implements MediaRepository using BadgerDB.
// Blobs ride the same database as the rest of the data.
type BadgerMediaRepository struct {
	db *badger.DB
}

// NewBadgerMediaRepository creates a new BadgerMediaRepository
func NewBadgerMediaRepository(db *badger.DB) *BadgerMediaRepository {
	return &BadgerMediaRepository{db: db}
}

// Save stores a blob, assigning it a fresh ID if it has none
func (r *BadgerMediaRepository) Save(blob *models.Media) error {
	if blob.ID == "" {
		blob.ID = uuid.NewString()
	}

	data, err := marshalEntity(blob)
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(MediaKeyPrefix+blob.ID), data)
	})
}

// Get retrieves a blob by ID
func (r *BadgerMediaRepository) Get(id string) (*models.Media, error) {
	var blob models.Media

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(MediaKeyPrefix + id))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return unmarshalEntity(val, &blob)
		})
	})

	if err != nil {
		return nil, err
	}
	return &blob, nil
}
