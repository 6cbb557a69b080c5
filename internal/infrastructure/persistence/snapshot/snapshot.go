// Package snapshot defines the abstract key/value store contract the engine
// persists through, and the versioned envelope codec used for the journal
// snapshot. Concrete stores (memory, sqlite, postgres, redis) live in
// sibling packages and never see journal types.
package snapshot

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"time"

	"golang.org/x/crypto/blake2b"

	"github.com/hafalan-hub/hafalan-engine/internal/domain/journal"
	"github.com/hafalan-hub/hafalan-engine/internal/domain/murojaah"
	"github.com/hafalan-hub/hafalan-engine/internal/domain/shared"
	"github.com/hafalan-hub/hafalan-engine/internal/domain/target"
)

// SchemaVersion is the current snapshot schema. Version 1 was the ad-hoc
// format of the original client with per-field date fixups; version 2 is the
// enveloped format with RFC 3339 dates revived by typed decoding.
const SchemaVersion = 2

// JournalKey is the store key of the learner's journal snapshot.
const JournalKey = "hafalan:journal"

// Store is the durable key/value snapshot store. Get returns
// shared.ErrNotFound for a missing key.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
	Close() error
}

// envelope wraps the journal payload on the wire. All date-typed fields
// inside the payload are RFC 3339 strings; decoding into the typed journal
// structs revives every one of them in a single pass, so no field-by-field
// revival code exists anywhere.
type envelope struct {
	SchemaVersion int             `json:"schema_version"`
	SavedAt       time.Time       `json:"saved_at"`
	Checksum      string          `json:"checksum"`
	Journal       json.RawMessage `json:"journal"`
}

// Encode serializes a journal into the enveloped snapshot format.
func Encode(j *journal.Journal, now time.Time) ([]byte, error) {
	payload, err := json.Marshal(j)
	if err != nil {
		return nil, shared.WrapError("snapshot", "Encode", shared.ErrPersistence, "marshal journal", err)
	}

	env := envelope{
		SchemaVersion: SchemaVersion,
		SavedAt:       now,
		Checksum:      checksum(payload),
		Journal:       payload,
	}

	data, err := json.Marshal(env)
	if err != nil {
		return nil, shared.WrapError("snapshot", "Encode", shared.ErrPersistence, "marshal envelope", err)
	}
	return data, nil
}

// Decode parses an enveloped snapshot, verifying schema version and
// payload integrity before reviving the journal.
func Decode(data []byte) (*journal.Journal, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, shared.WrapError("snapshot", "Decode", shared.ErrCorrupt, "unmarshal envelope", err)
	}

	if env.SchemaVersion != SchemaVersion {
		return nil, shared.ErrSchemaVersion
	}
	if env.Checksum != checksum(env.Journal) {
		return nil, shared.ErrCorrupt
	}

	j := journal.New()
	if err := json.Unmarshal(env.Journal, j); err != nil {
		return nil, shared.WrapError("snapshot", "Decode", shared.ErrCorrupt, "unmarshal journal", err)
	}
	normalize(j)
	return j, nil
}

// checksum returns the hex BLAKE2b-256 digest of the payload.
func checksum(payload []byte) string {
	sum := blake2b.Sum256(bytes.TrimSpace(payload))
	return hex.EncodeToString(sum[:])
}

// normalize restores the non-nil slice invariants JSON round-tripping loses.
func normalize(j *journal.Journal) {
	if j.Targets == nil {
		j.Targets = []*target.Target{}
	}
	if j.SurahDetails == nil {
		j.SurahDetails = []*murojaah.SurahDetail{}
	}
}

// Repository implements journal.Repository over a Store.
type Repository struct {
	store Store
	key   string
	now   func() time.Time
}

// NewRepository creates a journal repository over the given store.
func NewRepository(store Store) *Repository {
	return &Repository{
		store: store,
		key:   JournalKey,
		now:   time.Now,
	}
}

// Load reads and decodes the journal. A missing snapshot yields a fresh
// empty journal rather than an error: first launch has nothing persisted.
func (r *Repository) Load(ctx context.Context) (*journal.Journal, error) {
	data, err := r.store.Get(ctx, r.key)
	if err != nil {
		if shared.IsNotFound(err) {
			return journal.New(), nil
		}
		return nil, shared.WrapError("snapshot", "Load", shared.ErrPersistence, "read snapshot", err)
	}
	return Decode(data)
}

// Save encodes and writes the journal through. Failures surface as
// persistence errors; the caller's in-memory journal has already advanced
// and is not rolled back.
func (r *Repository) Save(ctx context.Context, j *journal.Journal) error {
	data, err := Encode(j, r.now())
	if err != nil {
		return err
	}
	if err := r.store.Set(ctx, r.key, data); err != nil {
		return shared.WrapError("snapshot", "Save", shared.ErrPersistence, "write snapshot", err)
	}
	return nil
}
