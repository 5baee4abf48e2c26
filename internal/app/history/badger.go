package history

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

const (
	badgerKeyPrefix = "chat:"
	badgerSeqKey    = "chat-seq"

	// sequence numbers leased from disk per batch.
	badgerSeqBandwidth = 256
)

// BadgerStore keeps room logs in an embedded Badger database.
//
// Keys are "chat:{hex(room)}:{seq}" with a 20-digit zero padded sequence, so
// a prefix scan returns a room's lines in append order. The room id is hex
// encoded so a ':' inside it cannot make one room's prefix match another's.
type BadgerStore struct {
	db  *badger.DB
	seq *badger.Sequence
}

// OpenBadger opens (or creates) the database directory at path.
func OpenBadger(path string) (*BadgerStore, error) {
	db, err := badger.Open(badger.DefaultOptions(path).WithLoggingLevel(badger.WARNING))
	if err != nil {
		return nil, fmt.Errorf("open badger at %s: %w", path, err)
	}

	store, err := NewBadgerStore(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// NewBadgerStore uses an already open database.
func NewBadgerStore(db *badger.DB) (*BadgerStore, error) {
	seq, err := db.GetSequence([]byte(badgerSeqKey), badgerSeqBandwidth)
	if err != nil {
		return nil, fmt.Errorf("badger sequence: %w", err)
	}
	return &BadgerStore{db: db, seq: seq}, nil
}

func badgerRoomPrefix(roomID string) []byte {
	return []byte(badgerKeyPrefix + hex.EncodeToString([]byte(roomID)) + ":")
}

func (s *BadgerStore) Append(_ context.Context, roomID, text string) error {
	n, err := s.seq.Next()
	if err != nil {
		return fmt.Errorf("badger next sequence: %w", err)
	}

	key := fmt.Appendf(badgerRoomPrefix(roomID), "%020d", n)
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, []byte(text))
	})
}

func (s *BadgerStore) ReadAll(_ context.Context, roomID string) ([]string, error) {
	lines := []string{}
	prefix := badgerRoomPrefix(roomID)

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			value, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			lines = append(lines, string(value))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("badger read %s: %w", roomID, err)
	}
	return lines, nil
}

// Close returns unused sequence numbers and closes the database.
func (s *BadgerStore) Close() error {
	if err := s.seq.Release(); err != nil {
		return fmt.Errorf("badger release sequence: %w", err)
	}
	return s.db.Close()
}
