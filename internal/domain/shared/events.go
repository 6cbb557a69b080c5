package shared

import (
	"strconv"
	"time"
)

// SurahAggregateID derives the event aggregate id for surah-scoped events,
// which have no entity id of their own.
func SurahAggregateID(surahNumber int) string {
	return "surah:" + strconv.Itoa(surahNumber)
}

// EventType represents the type of domain event.
type EventType string

// Domain event types. Each event represents something significant that
// happened in the hafalan journal; subscribers (the embedding app) decide
// what to do with them.
const (
	EventTargetAdded         EventType = "target.added"
	EventTargetActivated     EventType = "target.activated"
	EventTargetStatusChanged EventType = "target.status_changed"
	EventTargetRemoved       EventType = "target.removed"

	EventReviewCompleted    EventType = "review.completed"
	EventPeerReviewRecorded EventType = "review.peer_recorded"

	EventSegmentReviewed EventType = "murojaah.segment_reviewed"

	EventAchievementUnlocked EventType = "achievement.unlocked"
)

// Event is the base interface for all domain events.
type Event interface {
	// EventType returns the type of the event.
	EventType() EventType

	// OccurredAt returns when the event occurred.
	OccurredAt() time.Time

	// AggregateID returns the ID of the aggregate that produced this event.
	AggregateID() string

	// Payload returns the event data as a map for serialization.
	Payload() map[string]interface{}
}

// BaseEvent provides common event functionality.
type BaseEvent struct {
	Type        EventType `json:"type"`
	Timestamp   time.Time `json:"timestamp"`
	AggregateId string    `json:"aggregate_id"`
}

// EventType implements Event interface.
func (e BaseEvent) EventType() EventType {
	return e.Type
}

// OccurredAt implements Event interface.
func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// AggregateID implements Event interface.
func (e BaseEvent) AggregateID() string {
	return e.AggregateId
}

// NewBaseEvent creates a new base event.
func NewBaseEvent(eventType EventType, aggregateID string) BaseEvent {
	return BaseEvent{
		Type:        eventType,
		Timestamp:   time.Now(),
		AggregateId: aggregateID,
	}
}

// TargetAddedEvent is emitted when a new target enters the journal.
type TargetAddedEvent struct {
	BaseEvent
	Range string `json:"range"`
}

// Payload implements Event interface.
func (e TargetAddedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{"range": e.Range}
}

// NewTargetAddedEvent creates a new TargetAddedEvent.
func NewTargetAddedEvent(targetID, ayahRange string) TargetAddedEvent {
	return TargetAddedEvent{
		BaseEvent: NewBaseEvent(EventTargetAdded, targetID),
		Range:     ayahRange,
	}
}

// TargetActivatedEvent is emitted when a target is designated active.
type TargetActivatedEvent struct {
	BaseEvent
}

// Payload implements Event interface.
func (e TargetActivatedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{}
}

// NewTargetActivatedEvent creates a new TargetActivatedEvent.
func NewTargetActivatedEvent(targetID string) TargetActivatedEvent {
	return TargetActivatedEvent{BaseEvent: NewBaseEvent(EventTargetActivated, targetID)}
}

// TargetRemovedEvent is emitted when a target is deleted from the journal.
type TargetRemovedEvent struct {
	BaseEvent
	WasActive bool `json:"was_active"`
}

// Payload implements Event interface.
func (e TargetRemovedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{"was_active": e.WasActive}
}

// NewTargetRemovedEvent creates a new TargetRemovedEvent.
func NewTargetRemovedEvent(targetID string, wasActive bool) TargetRemovedEvent {
	return TargetRemovedEvent{
		BaseEvent: NewBaseEvent(EventTargetRemoved, targetID),
		WasActive: wasActive,
	}
}

// PeerReviewRecordedEvent is emitted for every recorded peer review,
// completed entry or not.
type PeerReviewRecordedEvent struct {
	BaseEvent
	PeerName string `json:"peer_name"`
	Mistakes int    `json:"mistakes"`
}

// Payload implements Event interface.
func (e PeerReviewRecordedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"peer_name": e.PeerName,
		"mistakes":  e.Mistakes,
	}
}

// NewPeerReviewRecordedEvent creates a new PeerReviewRecordedEvent.
func NewPeerReviewRecordedEvent(targetID, peerName string, mistakes int) PeerReviewRecordedEvent {
	return PeerReviewRecordedEvent{
		BaseEvent: NewBaseEvent(EventPeerReviewRecorded, targetID),
		PeerName:  peerName,
		Mistakes:  mistakes,
	}
}

// TargetStatusChangedEvent is emitted when a target moves through its
// lifecycle, including the initial transition triggered by activation.
type TargetStatusChangedEvent struct {
	BaseEvent
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
}

// Payload implements Event interface.
func (e TargetStatusChangedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"old_status": e.OldStatus,
		"new_status": e.NewStatus,
	}
}

// NewTargetStatusChangedEvent creates a new TargetStatusChangedEvent.
func NewTargetStatusChangedEvent(targetID, oldStatus, newStatus string) TargetStatusChangedEvent {
	return TargetStatusChangedEvent{
		BaseEvent: NewBaseEvent(EventTargetStatusChanged, targetID),
		OldStatus: oldStatus,
		NewStatus: newStatus,
	}
}

// ReviewCompletedEvent is emitted when a murojaah entry collects its third
// peer review and flips to completed.
type ReviewCompletedEvent struct {
	BaseEvent
	ReviewDate  string `json:"review_date"`
	PeerReviews int    `json:"peer_reviews"`
}

// Payload implements Event interface.
func (e ReviewCompletedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"review_date":  e.ReviewDate,
		"peer_reviews": e.PeerReviews,
	}
}

// NewReviewCompletedEvent creates a new ReviewCompletedEvent.
func NewReviewCompletedEvent(targetID, reviewDate string, peerReviews int) ReviewCompletedEvent {
	return ReviewCompletedEvent{
		BaseEvent:   NewBaseEvent(EventReviewCompleted, targetID),
		ReviewDate:  reviewDate,
		PeerReviews: peerReviews,
	}
}

// AchievementUnlockedEvent is emitted for every newly unlocked achievement.
type AchievementUnlockedEvent struct {
	BaseEvent
	RuleID string `json:"rule_id"`
	Name   string `json:"name"`
}

// Payload implements Event interface.
func (e AchievementUnlockedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"rule_id": e.RuleID,
		"name":    e.Name,
	}
}

// NewAchievementUnlockedEvent creates a new AchievementUnlockedEvent.
func NewAchievementUnlockedEvent(targetID, ruleID, name string) AchievementUnlockedEvent {
	return AchievementUnlockedEvent{
		BaseEvent: NewBaseEvent(EventAchievementUnlocked, targetID),
		RuleID:    ruleID,
		Name:      name,
	}
}

// SegmentReviewedEvent is emitted when a smoothness review is recorded
// against a surah segment.
type SegmentReviewedEvent struct {
	BaseEvent
	SurahNumber  int  `json:"surah_number"`
	SegmentIndex int  `json:"segment_index"`
	IsSmooth     bool `json:"is_smooth"`
}

// Payload implements Event interface.
func (e SegmentReviewedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"surah_number":  e.SurahNumber,
		"segment_index": e.SegmentIndex,
		"is_smooth":     e.IsSmooth,
	}
}

// NewSegmentReviewedEvent creates a new SegmentReviewedEvent.
func NewSegmentReviewedEvent(aggregateID string, surah, segment int, smooth bool) SegmentReviewedEvent {
	return SegmentReviewedEvent{
		BaseEvent:    NewBaseEvent(EventSegmentReviewed, aggregateID),
		SurahNumber:  surah,
		SegmentIndex: segment,
		IsSmooth:     smooth,
	}
}

// EventPublisher publishes domain events to interested subscribers.
type EventPublisher interface {
	Publish(event Event) error
}
