package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"

	"loadcmp/internal/bench"
	"loadcmp/internal/metrics"
)

const bucketResults = "results"

// Entry is one persisted scenario result.
type Entry struct {
	ID        string         `json:"id"`
	Timestamp time.Time      `json:"timestamp"`
	Label     string         `json:"label"`
	TestName  string         `json:"test_name"`
	Config    bench.Config   `json:"config"`
	Result    metrics.Result `json:"result"`
}

// Store keeps finished results in a bbolt file so the report command
// can compose comparisons across runs.
type Store struct {
	db *bbolt.DB
}

// DefaultPath is ~/.loadcmp/history.db.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	dir := filepath.Join(home, ".loadcmp")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return filepath.Join(dir, "history.db"), nil
}

func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open history store: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketResults))
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Save persists one entry, assigning an ID and timestamp when missing.
func (s *Store) Save(e Entry) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketResults))

		data, err := json.Marshal(e)
		if err != nil {
			return err
		}
		// Key by timestamp so cursor order is chronological.
		key := fmt.Sprintf("%020d_%s", e.Timestamp.UnixNano(), e.ID)
		return b.Put([]byte(key), data)
	})
}

// List returns all entries, newest first.
func (s *Store) List() ([]Entry, error) {
	var items []Entry

	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketResults))
		c := b.Cursor()

		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			var e Entry
			if err := json.Unmarshal(v, &e); err == nil {
				items = append(items, e)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return items, nil
}

// ByLabel returns the stored results for one system label, newest first.
func (s *Store) ByLabel(label string) ([]metrics.Result, error) {
	items, err := s.List()
	if err != nil {
		return nil, err
	}

	var results []metrics.Result
	for _, e := range items {
		if e.Label == label {
			results = append(results, e.Result)
		}
	}
	return results, nil
}
