package repositories

import (
	"postcard/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerGroupRepository implements GroupRepository using BadgerDB.
// Groups are keyed by slug, so a slug can exist only once.
type BadgerGroupRepository struct {
	db *badger.DB
}

// NewBadgerGroupRepository creates a new BadgerGroupRepository
func NewBadgerGroupRepository(db *badger.DB) *BadgerGroupRepository {
	return &BadgerGroupRepository{db: db}
}

// Create creates a new group
func (r *BadgerGroupRepository) Create(group *models.Group) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := []byte(GroupKeyPrefix + group.Slug)
		if _, err := txn.Get(key); err == nil {
			return ErrExists
		} else if err != badger.ErrKeyNotFound {
			return err
		}

		id, err := getNextID(txn, GroupSeqKey)
		if err != nil {
			return err
		}
		group.ID = id

		data, err := marshalEntity(group)
		if err != nil {
			return err
		}
		return txn.Set(key, data)
	})
}

// GetBySlug retrieves a group by its URL slug
func (r *BadgerGroupRepository) GetBySlug(slug string) (*models.Group, error) {
	var group models.Group

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(GroupKeyPrefix + slug))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return unmarshalEntity(val, &group)
		})
	})

	if err != nil {
		return nil, err
	}
	return &group, nil
}

// GetByID retrieves a group by its numeric ID
func (r *BadgerGroupRepository) GetByID(id int) (*models.Group, error) {
	var found *models.Group

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(GroupKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			var group models.Group
			err := item.Value(func(val []byte) error {
				return unmarshalEntity(val, &group)
			})
			if err != nil {
				return err
			}
			if group.ID == id {
				found = &group
				return nil
			}
		}
		return ErrNotFound
	})

	if err != nil {
		return nil, err
	}
	return found, nil
}
