package store

import (
	"encoding/json"
	"fmt"

	"freq/internal/domain"
	"github.com/google/uuid"
	"go.etcd.io/bbolt"
)

var (
	bucketRuns   = []byte("runs")
	bucketLatest = []byte("latest")
	bucketMeta   = []byte("meta")
)

// BoltStore records batch runs in a bbolt database.
type BoltStore struct {
	db *bbolt.DB
}

func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, b := range [][]byte{bucketRuns, bucketLatest, bucketMeta} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", b, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}

func latestKey(mode domain.Mode, input string) []byte {
	return []byte(fmt.Sprintf("%d:%s", int(mode), input))
}

// PutRun stores rec and marks it as the latest run for its (mode, input).
// An empty ID is filled with a time-ordered UUID.
func (s *BoltStore) PutRun(rec *domain.RunRecord) error {
	if rec.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("failed to generate run id: %w", err)
		}
		rec.ID = id.String()
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.Bucket(bucketRuns).Put([]byte(rec.ID), data); err != nil {
			return err
		}
		return tx.Bucket(bucketLatest).Put(latestKey(rec.Mode, rec.Input), []byte(rec.ID))
	})
}

func (s *BoltStore) GetRun(id string) (domain.RunRecord, error) {
	var rec domain.RunRecord
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketRuns).Get([]byte(id))
		if data == nil {
			return fmt.Errorf("run not found: %s", id)
		}
		return json.Unmarshal(data, &rec)
	})
	return rec, err
}

// Latest returns the most recent run for (mode, input).
func (s *BoltStore) Latest(mode domain.Mode, input string) (domain.RunRecord, bool, error) {
	var rec domain.RunRecord
	found := false
	err := s.db.View(func(tx *bbolt.Tx) error {
		id := tx.Bucket(bucketLatest).Get(latestKey(mode, input))
		if id == nil {
			return nil
		}
		data := tx.Bucket(bucketRuns).Get(id)
		if data == nil {
			return nil
		}
		found = true
		return json.Unmarshal(data, &rec)
	})
	return rec, found, err
}

// ListRuns returns up to limit runs, newest first. limit <= 0 means all.
func (s *BoltStore) ListRuns(limit int) ([]domain.RunRecord, error) {
	var runs []domain.RunRecord
	err := s.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket(bucketRuns).Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			if limit > 0 && len(runs) >= limit {
				break
			}
			var rec domain.RunRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("corrupt run %s: %w", k, err)
			}
			runs = append(runs, rec)
		}
		return nil
	})
	return runs, err
}

// ForgetLatest drops every latest pointer so the next batch recounts all
// inputs. Run history is kept.
func (s *BoltStore) ForgetLatest() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return clearBucket(tx.Bucket(bucketLatest))
	})
}

// Clear removes all runs (schema info is kept).
func (s *BoltStore) Clear() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketRuns, bucketLatest} {
			if err := clearBucket(tx.Bucket(name)); err != nil {
				return err
			}
		}
		return nil
	})
}

func clearBucket(b *bbolt.Bucket) error {
	if b == nil {
		return nil
	}
	var keys [][]byte
	c := b.Cursor()
	for k, _ := c.First(); k != nil; k, _ = c.Next() {
		keys = append(keys, append([]byte(nil), k...))
	}
	for _, k := range keys {
		if err := b.Delete(k); err != nil {
			return err
		}
	}
	return nil
}
