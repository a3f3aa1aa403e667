package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"sync"
	"time"
)

// StatsKey is the single persistence key holding the serialized snapshot.
const StatsKey = "deepWorkStats"

// unhealthyAfter is the number of consecutive failed writes after which the
// store reports that stats may not be saved.
const unhealthyAfter = 3

// StatsStore owns the date -> seconds snapshot. Every mutation is written
// through synchronously; a failed write leaves the store dirty and the next
// mutation or Flush retries it with the in-memory snapshot.
type StatsStore struct {
	mu           sync.Mutex
	kv           KVStore
	records      map[string]int
	applied      map[string]struct{}
	dirty        bool
	pendingClear bool
	failures     int
}

// NewStatsStore creates an empty store over kv. Call Load before use.
func NewStatsStore(kv KVStore) *StatsStore {
	return &StatsStore{
		kv:      kv,
		records: make(map[string]int),
		applied: make(map[string]struct{}),
	}
}

// DateKey returns the YYYY-MM-DD key of t in t's own location. Pass local
// time so the local day a session ended in is the one credited.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// Load replaces the in-memory snapshot with the persisted one. A missing key,
// an unavailable store or an unparseable payload all yield an empty
// snapshot; malformed entries are skipped individually. A failed ClearAll is
// retried first.
func (s *StatsStore) Load(ctx context.Context) []DailyRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = make(map[string]int)
	s.dirty = false

	// A clear that never reached the store must win over the stale payload.
	if s.pendingClear {
		if err := s.clearLocked(ctx); err != nil {
			LogWarn("Stats clear still pending, starting empty: %v", err)
			return s.recordsLocked()
		}
	}

	raw, found, err := s.kv.Get(ctx, StatsKey)
	if err != nil {
		LogWarn("Failed to read stats, starting empty: %v", err)
		return s.recordsLocked()
	}
	if !found || raw == "" {
		LogDebug("No persisted stats found")
		return s.recordsLocked()
	}

	records, skipped, err := DecodeSnapshot(raw)
	if err != nil {
		LogWarn("Persisted stats are unreadable, starting empty: %v", err)
		return s.recordsLocked()
	}
	for _, perr := range skipped {
		LogWarn("Skipping %v", perr)
	}
	for _, record := range records {
		s.records[record.Date] += record.Duration
	}
	LogDebug("Loaded %d daily record(s)", len(s.records))
	return s.recordsLocked()
}

// RecordDuration adds seconds to date's record, inserting it when absent,
// then persists. A returned ErrPersistenceUnavailable is a warning: the
// in-memory snapshot already holds the new total.
func (s *StatsStore) RecordDuration(ctx context.Context, date string, seconds int) error {
	if seconds < 0 {
		return &DurationError{Input: strconv.Itoa(seconds), Err: fmt.Errorf("must not be negative")}
	}
	if _, err := time.Parse(DateLayout, date); err != nil {
		return fmt.Errorf("%w %q: %v", ErrInvalidDate, date, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[date] += seconds
	s.dirty = true
	return s.persistLocked(ctx)
}

// Apply records a completion event at most once, keyed by its ID.
func (s *StatsStore) Apply(ctx context.Context, completion Completion) error {
	if completion.Seconds < 0 {
		return &DurationError{Input: strconv.Itoa(completion.Seconds), Err: fmt.Errorf("must not be negative")}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if completion.ID != "" {
		if _, seen := s.applied[completion.ID]; seen {
			LogDebug("Ignoring redelivered completion %s", completion.ID)
			return nil
		}
		s.applied[completion.ID] = struct{}{}
	}

	date := DateKey(completion.EndedAt)
	s.records[date] += completion.Seconds
	s.dirty = true
	LogInfo("Recorded %s on %s", FormatClock(completion.Seconds), date)
	return s.persistLocked(ctx)
}

// Persist writes the full snapshot, overwriting whatever was stored.
func (s *StatsStore) Persist(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dirty = true
	return s.persistLocked(ctx)
}

// Flush retries a pending write or delete. It is a no-op when clean.
func (s *StatsStore) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pendingClear {
		return s.clearLocked(ctx)
	}
	if !s.dirty {
		return nil
	}
	return s.persistLocked(ctx)
}

// ClearAll empties the snapshot and deletes the persisted key. Irreversible.
func (s *StatsStore) ClearAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = make(map[string]int)
	s.dirty = false
	return s.clearLocked(ctx)
}

// Records returns the snapshot sorted by date.
func (s *StatsStore) Records() []DailyRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recordsLocked()
}

// Lookup returns the seconds recorded for date.
func (s *StatsStore) Lookup(date string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seconds, ok := s.records[date]
	return seconds, ok
}

// Pending reports whether the in-memory snapshot has not been written yet.
func (s *StatsStore) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty || s.pendingClear
}

// Healthy is false once writes have failed several times in a row.
func (s *StatsStore) Healthy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failures < unhealthyAfter
}

func (s *StatsStore) persistLocked(ctx context.Context) error {
	payload, err := encodeSnapshot(s.recordsLocked())
	if err != nil {
		return fmt.Errorf("encode stats: %w", err)
	}
	if err := s.kv.Put(ctx, StatsKey, payload); err != nil {
		s.failures++
		LogWarn("Failed to save stats (attempt %d): %v", s.failures, err)
		return err
	}
	s.dirty = false
	s.pendingClear = false
	s.failures = 0
	return nil
}

func (s *StatsStore) clearLocked(ctx context.Context) error {
	if err := s.kv.Delete(ctx, StatsKey); err != nil {
		s.pendingClear = true
		s.failures++
		LogWarn("Failed to delete stats: %v", err)
		return err
	}
	s.pendingClear = false
	s.failures = 0
	LogInfo("All stats cleared")
	return nil
}

func (s *StatsStore) recordsLocked() []DailyRecord {
	records := make([]DailyRecord, 0, len(s.records))
	for date, seconds := range s.records {
		records = append(records, DailyRecord{Date: date, Duration: seconds})
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Date < records[j].Date })
	return records
}

func encodeSnapshot(records []DailyRecord) (string, error) {
	if records == nil {
		records = []DailyRecord{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

type persistedRecord struct {
	Date     *string  `json:"date"`
	Duration *float64 `json:"duration"`
}

// DecodeSnapshot parses the persisted list. Entries that fail validation are
// returned as ParseErrors instead of aborting the whole load.
func DecodeSnapshot(raw string) ([]DailyRecord, []error, error) {
	var entries []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, nil, &ParseError{Source: StatsKey, Key: "snapshot", Err: err}
	}

	records := make([]DailyRecord, 0, len(entries))
	var skipped []error
	for i, entry := range entries {
		record, err := decodeRecord(entry)
		if err != nil {
			skipped = append(skipped, &ParseError{Source: StatsKey, Key: "entry " + strconv.Itoa(i), Err: err})
			continue
		}
		records = append(records, record)
	}
	return records, skipped, nil
}

func decodeRecord(entry json.RawMessage) (DailyRecord, error) {
	var p persistedRecord
	if err := json.Unmarshal(entry, &p); err != nil {
		return DailyRecord{}, err
	}
	if p.Date == nil {
		return DailyRecord{}, fmt.Errorf("missing date")
	}
	if _, err := time.Parse(DateLayout, *p.Date); err != nil {
		return DailyRecord{}, fmt.Errorf("bad date %q", *p.Date)
	}
	if p.Duration == nil {
		return DailyRecord{}, fmt.Errorf("missing duration")
	}
	value := *p.Duration
	if value < 0 || value != math.Trunc(value) || value > math.MaxInt32 {
		return DailyRecord{}, fmt.Errorf("bad duration %v", value)
	}
	return DailyRecord{Date: *p.Date, Duration: int(value)}, nil
}
