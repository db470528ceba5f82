package repositories

import (
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDB(t *testing.T) *badger.DB {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestGetNextID(t *testing.T) {
	db := testDB(t)

	var first, second int
	err := db.Update(func(txn *badger.Txn) error {
		var err error
		first, err = getNextID(txn, PostSeqKey)
		return err
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, first)

	err = db.Update(func(txn *badger.Txn) error {
		var err error
		second, err = getNextID(txn, PostSeqKey)
		return err
	})
	assert.NoError(t, err)
	assert.Equal(t, 2, second)
}

func TestSequencesAreIndependent(t *testing.T) {
	db := testDB(t)

	var postID, commentID int
	err := db.Update(func(txn *badger.Txn) error {
		var err error
		if postID, err = getNextID(txn, PostSeqKey); err != nil {
			return err
		}
		commentID, err = getNextID(txn, CommentSeqKey)
		return err
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, postID)
	assert.Equal(t, 1, commentID)
}
