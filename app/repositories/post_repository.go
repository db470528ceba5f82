package repositories

import (
	"fmt"

	"postcard/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerPostRepository implements PostRepository using BadgerDB
type BadgerPostRepository struct {
	db *badger.DB
}

// NewBadgerPostRepository creates a new BadgerPostRepository
func NewBadgerPostRepository(db *badger.DB) *BadgerPostRepository {
	return &BadgerPostRepository{db: db}
}

// Create creates a new post
func (r *BadgerPostRepository) Create(post *models.Post) error {
	return r.db.Update(func(txn *badger.Txn) error {
		id, err := getNextID(txn, PostSeqKey)
		if err != nil {
			return err
		}
		post.ID = id

		data, err := marshalEntity(post)
		if err != nil {
			return err
		}

		key := []byte(fmt.Sprintf("%s%d", PostKeyPrefix, post.ID))
		return txn.Set(key, data)
	})
}

// GetByID retrieves a post by ID
func (r *BadgerPostRepository) GetByID(id int) (*models.Post, error) {
	var post models.Post

	err := r.db.View(func(txn *badger.Txn) error {
		key := []byte(fmt.Sprintf("%s%d", PostKeyPrefix, id))
		item, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return unmarshalEntity(val, &post)
		})
	})

	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Update updates an existing post
func (r *BadgerPostRepository) Update(post *models.Post) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := []byte(fmt.Sprintf("%s%d", PostKeyPrefix, post.ID))

		// Verify post exists
		_, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		data, err := marshalEntity(post)
		if err != nil {
			return err
		}
		return txn.Set(key, data)
	})
}

// ListAll retrieves every post
func (r *BadgerPostRepository) ListAll() ([]*models.Post, error) {
	return r.list(func(*models.Post) bool { return true })
}

// ListByGroup retrieves all posts filed under a group
func (r *BadgerPostRepository) ListByGroup(groupID int) ([]*models.Post, error) {
	return r.list(func(p *models.Post) bool { return p.GroupID == groupID })
}

// ListByAuthor retrieves all posts published by an author
func (r *BadgerPostRepository) ListByAuthor(author string) ([]*models.Post, error) {
	return r.list(func(p *models.Post) bool { return p.Author == author })
}

// ListByAuthors retrieves all posts published by any of the given authors
func (r *BadgerPostRepository) ListByAuthors(authors []string) ([]*models.Post, error) {
	set := make(map[string]struct{}, len(authors))
	for _, a := range authors {
		set[a] = struct{}{}
	}
	return r.list(func(p *models.Post) bool {
		_, ok := set[p.Author]
		return ok
	})
}

// CountByAuthor counts the posts published by an author
func (r *BadgerPostRepository) CountByAuthor(author string) (int, error) {
	posts, err := r.ListByAuthor(author)
	if err != nil {
		return 0, err
	}
	return len(posts), nil
}

// list scans the post keyspace and keeps posts matching the predicate
func (r *BadgerPostRepository) list(match func(*models.Post) bool) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(PostKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			var post models.Post
			err := item.Value(func(val []byte) error {
				return unmarshalEntity(val, &post)
			})
			if err != nil {
				return fmt.Errorf("failed to unmarshal post: %v", err)
			}
			if match(&post) {
				posts = append(posts, &post)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return posts, nil
}
