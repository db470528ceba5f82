package repositories

import (
	"strings"

	"postcard/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerFollowRepository implements FollowRepository using BadgerDB.
// Edges are keyed as follow:<user>:<author>, so a given (user, author)
// pair cannot be stored twice even under concurrent requests.
type BadgerFollowRepository struct {
	db *badger.DB
}

// NewBadgerFollowRepository creates a new BadgerFollowRepository
func NewBadgerFollowRepository(db *badger.DB) *BadgerFollowRepository {
	return &BadgerFollowRepository{db: db}
}

func followKey(user, author string) []byte {
	return []byte(FollowKeyPrefix + user + ":" + author)
}

// Create stores a follow edge. Storing an existing edge is a no-op.
func (r *BadgerFollowRepository) Create(follow *models.Follow) error {
	data, err := marshalEntity(follow)
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(followKey(follow.User, follow.Author), data)
	})
}

// Delete removes a follow edge. Deleting a missing edge is a no-op.
func (r *BadgerFollowRepository) Delete(user, author string) error {
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(followKey(user, author))
	})
}

// Exists reports whether user currently follows author
func (r *BadgerFollowRepository) Exists(user, author string) (bool, error) {
	var exists bool
	err := r.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(followKey(user, author))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		exists = true
		return nil
	})
	return exists, err
}

// Authors returns the authors the given user follows
func (r *BadgerFollowRepository) Authors(user string) ([]string, error) {
	var authors []string

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(FollowKeyPrefix + user + ":")
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			key := string(it.Item().Key())
			authors = append(authors, strings.TrimPrefix(key, string(prefix)))
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return authors, nil
}
