package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/albionarcade/gully/pkg/metrics"
)

// dayLayout is the wire format for calendar days in the recency file.
const dayLayout = "2006-01-02"

// SelectionRecord is one (date, player id) pair in the recency log.
type SelectionRecord struct {
	Date     time.Time
	PlayerID int
}

// recordJSON is the persisted shape of a SelectionRecord.
type recordJSON struct {
	Date     string `json:"date"`
	PlayerID int    `json:"player_id"`
}

// RecencyLog is the append-only list of recent daily selections, persisted
// as a flat JSON file. It is the only mutable shared state in the service;
// every mutation happens under one mutex and persists via a temp-file
// write followed by an atomic rename.
type RecencyLog struct {
	mu      sync.Mutex
	path    string
	loc     *time.Location
	entries []SelectionRecord
}

// OpenRecencyLog loads the recency file at path, creating an empty log
// when the file does not exist yet. A corrupt file is an error; losing the
// window silently would break the no-repeat invariant.
func OpenRecencyLog(path string, opts ...LogOption) (*RecencyLog, error) {
	l := &RecencyLog{
		path: path,
		loc:  time.UTC,
	}
	for _, opt := range opts {
		opt(l)
	}

	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return l, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLogCorrupt, err)
	}

	var wire []recordJSON
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLogCorrupt, err)
	}
	for _, r := range wire {
		day, err := time.ParseInLocation(dayLayout, r.Date, l.loc)
		if err != nil {
			return nil, fmt.Errorf("%w: bad date %q", ErrLogCorrupt, r.Date)
		}
		l.entries = append(l.entries, SelectionRecord{Date: day, PlayerID: r.PlayerID})
	}
	metrics.UpdateRecencyLogSize(len(l.entries))
	return l, nil
}

// EntryFor returns the recorded player id for a calendar day, if any.
func (l *RecencyLog) EntryFor(_ context.Context, day time.Time) (int, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.entries {
		if sameDay(e.Date, day) {
			return e.PlayerID, true
		}
	}
	return 0, false
}

// UsedWithin returns the player ids recorded in the trailing windowDays of
// day, the day itself excluded.
func (l *RecencyLog) UsedWithin(_ context.Context, day time.Time, windowDays int) map[int]struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := day.AddDate(0, 0, -windowDays)
	used := make(map[int]struct{})
	for _, e := range l.entries {
		if sameDay(e.Date, day) {
			continue
		}
		if !e.Date.Before(cutoff) && e.Date.Before(day) {
			used[e.PlayerID] = struct{}{}
		}
	}
	return used
}

// Append records a new (day, id) pair and persists the log.
func (l *RecencyLog) Append(_ context.Context, day time.Time, id int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, SelectionRecord{Date: day, PlayerID: id})
	if err := l.persistLocked(); err != nil {
		// Roll back the in-memory append so memory and disk agree.
		l.entries = l.entries[:len(l.entries)-1]
		return err
	}
	metrics.UpdateRecencyLogSize(len(l.entries))
	return nil
}

// Prune drops entries older than the cutoff day.
func (l *RecencyLog) Prune(_ context.Context, cutoff time.Time) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	kept := l.entries[:0]
	for _, e := range l.entries {
		if !e.Date.Before(cutoff) {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(l.entries) {
		return nil
	}
	l.entries = kept
	if err := l.persistLocked(); err != nil {
		return err
	}
	metrics.UpdateRecencyLogSize(len(l.entries))
	return nil
}

// Snapshot returns a copy of all entries in append order.
func (l *RecencyLog) Snapshot(_ context.Context) []SelectionRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]SelectionRecord, len(l.entries))
	copy(out, l.entries)
	return out
}

// Clear empties the log. Only the debug surface reaches this.
func (l *RecencyLog) Clear(_ context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
	if err := l.persistLocked(); err != nil {
		return err
	}
	metrics.UpdateRecencyLogSize(0)
	return nil
}

// Len returns the number of entries currently held.
func (l *RecencyLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// persistLocked writes the log to a temp file in the same directory and
// renames it over the target. Must be called with l.mu held.
func (l *RecencyLog) persistLocked() error {
	wire := make([]recordJSON, len(l.entries))
	for i, e := range l.entries {
		wire[i] = recordJSON{Date: e.Date.Format(dayLayout), PlayerID: e.PlayerID}
	}
	raw, err := json.MarshalIndent(wire, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLogPersist, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(l.path), filepath.Base(l.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLogPersist, err)
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: %v", ErrLogPersist, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: %v", ErrLogPersist, err)
	}
	if err := os.Rename(tmp.Name(), l.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: %v", ErrLogPersist, err)
	}
	return nil
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
