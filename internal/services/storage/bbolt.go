package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"github.com/compas-audio/compas/internal/domain"
	"github.com/compas-audio/compas/internal/ports"
)

var (
	historyBucket     = []byte("history")
	preferencesBucket = []byte("preferences")

	timerModeKey = []byte("timerMode")
)

type BboltStore struct {
	db *bbolt.DB
}

func NewBboltStore(dbPath string) (ports.StorageService, error) {
	options := &bbolt.Options{Timeout: 1 * time.Second}
	db, err := bbolt.Open(dbPath, 0600, options)
	if err != nil {
		return nil, fmt.Errorf("could not open bbolt database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, bucket := range [][]byte{historyBucket, preferencesBucket} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("could not create buckets: %w", err)
	}

	return &BboltStore{db: db}, nil
}

// History keys sort chronologically; the track path suffix keeps one entry
// per track.
func (s *BboltStore) createHistoryKey(t time.Time, trackPath string) []byte {
	return []byte(fmt.Sprintf("%s:%s", t.UTC().Format(time.RFC3339Nano), trackPath))
}

func (s *BboltStore) findAndDeleteOldEntry(b *bbolt.Bucket, trackPath string) error {
	c := b.Cursor()
	suffix := []byte(":" + trackPath)

	for k, _ := c.First(); k != nil; k, _ = c.Next() {
		if bytes.HasSuffix(k, suffix) {
			return c.Delete()
		}
	}
	return nil
}

func (s *BboltStore) AddToHistory(entry domain.HistoryEntry) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(historyBucket)

		if err := s.findAndDeleteOldEntry(b, entry.Track.Path); err != nil {
			return err
		}

		entry.PlayedAt = time.Now()
		key := s.createHistoryKey(entry.PlayedAt, entry.Track.Path)

		value, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("error serializing history entry: %w", err)
		}

		return b.Put(key, value)
	})
}

func (s *BboltStore) GetHistory(limit int) ([]domain.HistoryEntry, error) {
	var entries []domain.HistoryEntry

	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(historyBucket)
		c := b.Cursor()

		for k, v := c.Last(); k != nil && len(entries) < limit; k, v = c.Prev() {
			var entry domain.HistoryEntry
			if err := json.Unmarshal(v, &entry); err != nil {
				return fmt.Errorf("error deserializing history entry: %w", err)
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

func (s *BboltStore) SaveTimerMode(mode domain.TimerMode) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(preferencesBucket).Put(timerModeKey, []byte(mode))
	})
}

// LoadTimerMode returns the persisted seekbar display mode, defaulting to
// TimerModeBoth when nothing was saved or the saved value is unknown.
func (s *BboltStore) LoadTimerMode() (domain.TimerMode, error) {
	mode := domain.TimerModeBoth

	err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(preferencesBucket).Get(timerModeKey)
		switch domain.TimerMode(v) {
		case domain.TimerModeElapsed, domain.TimerModeRemaining, domain.TimerModeBoth:
			mode = domain.TimerMode(v)
		}
		return nil
	})

	return mode, err
}

func (s *BboltStore) Close() error {
	return s.db.Close()
}
