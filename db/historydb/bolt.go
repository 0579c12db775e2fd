package historydb

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/ananyarao/notescout/logger"
)

const historyBucket = "history"

type BoltStore struct {
	store      *bolt.DB
	logger     logger.Logger
	maxEntries int
}

// New opens (creating if necessary) the history database at path. maxEntries
// bounds retention; the oldest entries are pruned as new ones arrive.
func New(logger logger.Logger, path string, maxEntries int) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		logger.Error("failed to create history database directory", "err", err.Error(), "path", path)
		return nil, fmt.Errorf("failed to create history database directory: %w", err)
	}

	store, err := bolt.Open(path, 0600, &bolt.Options{
		Timeout: 1 * time.Second,
	})
	if err != nil {
		logger.Error("failed to open history database", "err", err.Error(), "path", path)
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	boltStore := &BoltStore{
		store:      store,
		logger:     logger,
		maxEntries: maxEntries,
	}

	if err := boltStore.initBucket(); err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to initialize bucket: %w", err)
	}

	return boltStore, nil
}

func (b *BoltStore) initBucket() error {
	return b.store.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(historyBucket))
		if err != nil {
			b.logger.Error("failed to create bucket", "err", err.Error())
			return fmt.Errorf("failed to create bucket: %w", err)
		}
		return nil
	})
}

// Append stores entry and prunes the oldest entries beyond the retention cap.
// Keys order chronologically, so a forward cursor walks oldest-first.
func (b *BoltStore) Append(entry Entry) error {
	if entry.ID == "" {
		b.logger.Error("entry ID cannot be empty")
		return &InvalidEntryError{Reason: "entry ID cannot be empty"}
	}
	if entry.SearchedAt.IsZero() {
		b.logger.Error("entry timestamp cannot be zero", "id", entry.ID)
		return &InvalidEntryError{Reason: "entry timestamp cannot be zero"}
	}

	data, err := json.Marshal(entry)
	if err != nil {
		b.logger.Error("failed to marshal history entry", "id", entry.ID, "err", err.Error())
		return fmt.Errorf("failed to marshal history entry: %w", err)
	}

	return b.store.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(historyBucket))
		if bucket == nil {
			b.logger.Error("bucket not found", "bucket", historyBucket)
			return fmt.Errorf("bucket not found")
		}

		if err := bucket.Put(entryKey(entry), data); err != nil {
			b.logger.Error("failed to store history entry", "id", entry.ID, "err", err.Error())
			return fmt.Errorf("failed to store history entry: %w", err)
		}

		return b.prune(bucket)
	})
}

// Recent returns up to limit entries, most recent first.
func (b *BoltStore) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		return nil, nil
	}

	var entries []Entry
	err := b.store.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(historyBucket))
		if bucket == nil {
			b.logger.Error("bucket not found", "bucket", historyBucket)
			return fmt.Errorf("bucket not found")
		}

		cursor := bucket.Cursor()
		for key, value := cursor.Last(); key != nil && len(entries) < limit; key, value = cursor.Prev() {
			var entry Entry
			if err := json.Unmarshal(value, &entry); err != nil {
				b.logger.Error("failed to unmarshal history entry", "key", string(key), "err", err.Error())
				continue
			}
			entries = append(entries, entry)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return entries, nil
}

func (b *BoltStore) Clear() error {
	return b.store.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket([]byte(historyBucket)); err != nil {
			b.logger.Error("failed to delete bucket", "err", err.Error())
			return fmt.Errorf("failed to delete bucket: %w", err)
		}
		if _, err := tx.CreateBucket([]byte(historyBucket)); err != nil {
			b.logger.Error("failed to recreate bucket", "err", err.Error())
			return fmt.Errorf("failed to recreate bucket: %w", err)
		}
		return nil
	})
}

func (b *BoltStore) Close() error {
	if b.store != nil {
		return b.store.Close()
	}
	return nil
}

func (b *BoltStore) prune(bucket *bolt.Bucket) error {
	if b.maxEntries <= 0 {
		return nil
	}

	excess := bucket.Stats().KeyN + 1 - b.maxEntries
	if excess <= 0 {
		return nil
	}

	cursor := bucket.Cursor()
	for key, _ := cursor.First(); key != nil && excess > 0; key, _ = cursor.Next() {
		if err := cursor.Delete(); err != nil {
			b.logger.Error("failed to prune history entry", "key", string(key), "err", err.Error())
			return fmt.Errorf("failed to prune history entry: %w", err)
		}
		excess--
	}

	return nil
}

// Keys must order lexically by time; RFC3339Nano drops trailing zeros, so a
// fixed-width nanosecond stamp is used instead.
func entryKey(entry Entry) []byte {
	return []byte(fmt.Sprintf("%020d_%s", entry.SearchedAt.UTC().UnixNano(), entry.ID))
}
