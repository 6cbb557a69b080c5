// Package target contains the memorization-target entity: a verse range the
// learner has committed to memorize, its preparation counters, its lifecycle
// status machine, and the murojaah schedule attached once it is memorized.
package target

import (
	"time"

	"github.com/hafalan-hub/hafalan-engine/internal/domain/achievement"
	"github.com/hafalan-hub/hafalan-engine/internal/domain/quran"
	"github.com/hafalan-hub/hafalan-engine/internal/domain/review"
	"github.com/hafalan-hub/hafalan-engine/internal/domain/shared"
)

// Status is the lifecycle state of a memorization target.
type Status string

const (
	// StatusPlanned - the target exists but work has not started.
	StatusPlanned Status = "PLANNED"
	// StatusInProgress - the learner is actively preparing and memorizing.
	StatusInProgress Status = "IN_PROGRESS"
	// StatusSelfReview - memorized, reviewing alone on the murojaah cadence.
	StatusSelfReview Status = "MEMORIZED_SELF_REVIEW"
	// StatusTeacherReview - memorized, being reviewed by a teacher.
	StatusTeacherReview Status = "MEMORIZED_TEACHER_REVIEW"
	// StatusMutqin - mastered. Terminal.
	StatusMutqin Status = "MUTQIN"
)

// statusOrder fixes the lifecycle chain. Transitions are legal only to the
// immediately following state.
var statusOrder = []Status{
	StatusPlanned,
	StatusInProgress,
	StatusSelfReview,
	StatusTeacherReview,
	StatusMutqin,
}

// IsValid checks that the status is one of the lifecycle states.
func (s Status) IsValid() bool {
	for _, known := range statusOrder {
		if s == known {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status ends the lifecycle.
func (s Status) IsTerminal() bool {
	return s == StatusMutqin
}

// IsMemorized reports whether the target counts toward memorized statistics.
func (s Status) IsMemorized() bool {
	switch s {
	case StatusSelfReview, StatusTeacherReview, StatusMutqin:
		return true
	default:
		return false
	}
}

// Next returns the following lifecycle state, or false at the end.
func (s Status) Next() (Status, bool) {
	for i, known := range statusOrder {
		if s == known && i+1 < len(statusOrder) {
			return statusOrder[i+1], true
		}
	}
	return "", false
}

// CanTransitionTo reports whether moving to next is legal from s.
func (s Status) CanTransitionTo(next Status) bool {
	following, ok := s.Next()
	return ok && following == next
}

// Preparation thresholds. Crossing all three unlocks the client-side
// "mark memorized" button; it never advances the state machine by itself.
const (
	ListeningThreshold    = 10 // listening sessions
	ReadingThreshold      = 40 // minutes
	MemorizationThreshold = 20 // minutes
)

// PreparationKind names one of the preparation counters.
type PreparationKind string

const (
	PrepListening    PreparationKind = "listening"
	PrepReading      PreparationKind = "reading"
	PrepMemorization PreparationKind = "memorization"
)

// IsValid checks the preparation kind.
func (k PreparationKind) IsValid() bool {
	switch k {
	case PrepListening, PrepReading, PrepMemorization:
		return true
	default:
		return false
	}
}

// Preparation tracks the effort spent before a target is memorized.
type Preparation struct {
	ListeningCount      int       `json:"listening_count"`
	ReadingMinutes      int       `json:"reading_minutes"`
	MemorizationMinutes int       `json:"memorization_minutes"`
	LastUpdated         time.Time `json:"last_updated"`
}

// Ready reports whether all three counters crossed their thresholds.
func (p Preparation) Ready() bool {
	return p.ListeningCount >= ListeningThreshold &&
		p.ReadingMinutes >= ReadingThreshold &&
		p.MemorizationMinutes >= MemorizationThreshold
}

// LogEntry is one line of the target's progress log.
type LogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Kind      string    `json:"kind"`
	Detail    string    `json:"detail"`
}

// Log entry kinds.
const (
	LogCreated           = "created"
	LogPreparationUpdate = "preparation_update"
	LogStatusChange      = "status_change"
	LogPeerReview        = "peer_review"
)

// Target is a verse range committed to memory.
type Target struct {
	ID           string                    `json:"id"`
	Range        quran.AyahRange           `json:"ayah_range"`
	Status       Status                    `json:"status"`
	Preparation  Preparation               `json:"preparation"`
	Logs         []LogEntry                `json:"logs"`
	Reviews      []review.Schedule         `json:"reviews"`
	Achievements []achievement.Achievement `json:"achievements"`
	CreatedAt    time.Time                 `json:"created_at"`
	UpdatedAt    time.Time                 `json:"updated_at"`
}

// New creates a target in PLANNED with zero preparation counters.
// The ayah range is validated against the surah table.
func New(id string, r quran.AyahRange, now time.Time) (*Target, error) {
	if id == "" {
		return nil, shared.NewDomainError("target", "New", shared.ErrInvalidID, "target id is required")
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}

	t := &Target{
		ID:           id,
		Range:        r,
		Status:       StatusPlanned,
		Preparation:  Preparation{},
		Logs:         []LogEntry{},
		Reviews:      []review.Schedule{},
		Achievements: []achievement.Achievement{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	t.appendLog(now, LogCreated, r.String())
	return t, nil
}

// AyahCount returns the number of ayahs the target covers.
func (t *Target) AyahCount() int {
	return t.Range.AyahCount()
}

// SetPreparation sets the named counter to value. Values are absolute, not
// deltas; the UI sends the running total it displays.
func (t *Target) SetPreparation(kind PreparationKind, value int, now time.Time) error {
	if !kind.IsValid() {
		return shared.NewDomainError("target", "SetPreparation", shared.ErrInvalidInput, "unknown preparation kind")
	}
	if value < 0 {
		return shared.NewDomainError("target", "SetPreparation", shared.ErrValueOutOfRange, "preparation value cannot be negative")
	}

	switch kind {
	case PrepListening:
		t.Preparation.ListeningCount = value
	case PrepReading:
		t.Preparation.ReadingMinutes = value
	case PrepMemorization:
		t.Preparation.MemorizationMinutes = value
	}
	t.Preparation.LastUpdated = now
	t.UpdatedAt = now
	t.appendLog(now, LogPreparationUpdate, string(kind))
	return nil
}

// ChangeStatus transitions the target. Same-state changes are a no-op and
// report changed=false. The IN_PROGRESS to MEMORIZED_SELF_REVIEW transition
// generates the murojaah cadence anchored at now.
func (t *Target) ChangeStatus(next Status, now time.Time) (changed bool, err error) {
	if !next.IsValid() {
		return false, shared.NewDomainError("target", "ChangeStatus", shared.ErrInvalidInput, "unknown status")
	}
	if next == t.Status {
		return false, nil
	}
	if !t.Status.CanTransitionTo(next) {
		return false, shared.ErrInvalidTargetStatus
	}

	previous := t.Status
	t.Status = next
	t.UpdatedAt = now
	t.appendLog(now, LogStatusChange, string(previous)+" -> "+string(next))

	if previous == StatusInProgress && next == StatusSelfReview {
		t.Reviews = append(t.Reviews, review.Generate(now)...)
	}
	return true, nil
}

// Activate is the PLANNED to IN_PROGRESS side effect of being designated the
// active target. Targets already past PLANNED are left untouched.
func (t *Target) Activate(now time.Time) (changed bool, err error) {
	if t.Status != StatusPlanned {
		return false, nil
	}
	return t.ChangeStatus(StatusInProgress, now)
}

// RecordPeerReview appends a peer review to the schedule entry on the
// calendar day of date. The peer review is stamped with now regardless of
// any caller-supplied date. Returns whether the entry completed on this
// append (not whether it was already completed).
func (t *Target) RecordPeerReview(date time.Time, pr review.PeerReview, now time.Time) (completedNow bool, err error) {
	if err := pr.Validate(); err != nil {
		return false, err
	}

	idx, ok := review.FindByDay(t.Reviews, date)
	if !ok {
		return false, shared.ErrReviewNotFound
	}

	entry := &t.Reviews[idx]
	wasCompleted := entry.Completed
	entry.AddPeerReview(pr, now)
	t.UpdatedAt = now
	t.appendLog(now, LogPeerReview, pr.PeerName)

	return entry.Completed && !wasCompleted, nil
}

// Unlock appends newly earned achievements. Append-only.
func (t *Target) Unlock(fresh []achievement.Achievement, now time.Time) {
	if len(fresh) == 0 {
		return
	}
	t.Achievements = append(t.Achievements, fresh...)
	t.UpdatedAt = now
}

// Clone creates a deep copy of the target.
func (t *Target) Clone() *Target {
	if t == nil {
		return nil
	}

	clone := *t
	clone.Logs = append([]LogEntry(nil), t.Logs...)
	clone.Achievements = append([]achievement.Achievement(nil), t.Achievements...)
	clone.Reviews = make([]review.Schedule, len(t.Reviews))
	for i, entry := range t.Reviews {
		entry.PeerReviews = append([]review.PeerReview(nil), entry.PeerReviews...)
		clone.Reviews[i] = entry
	}
	return &clone
}

func (t *Target) appendLog(now time.Time, kind, detail string) {
	t.Logs = append(t.Logs, LogEntry{Timestamp: now, Kind: kind, Detail: detail})
}
