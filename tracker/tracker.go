// Package tracker is the event-tracking core: it verifies and routes
// inbound EventSub notifications, keeps the set of remote webhook
// subscriptions consistent with the local registry and accumulates counted
// user events per live stream.
//
// Every component receives its persistence collaborator at construction.
// There is no shared in-process mutable state: deduplication and session
// lifecycle races are resolved by the storage layer's constraints, so any
// number of dispatcher instances can run concurrently.
package tracker

import (
	"time"

	"github.com/streamrewards/streamrewards/gen/sr/public/model"
	"github.com/streamrewards/streamrewards/helix"
	"github.com/streamrewards/streamrewards/repo"
	"github.com/streamrewards/streamrewards/utils"
)

// SessionStore persists live stream rows. InsertStream must fail with a
// unique violation when the broadcaster already has an open stream, and
// CloseStreams must only touch rows where is_complete is still false.
type SessionStore interface {
	InsertStream(st *model.LiveStreams) error
	CloseStreams(userID string) error
	CurrentStream(userID string) (*model.LiveStreams, error)
}

// EventStore persists counted user events, append-only.
type EventStore interface {
	InsertEvent(evt *model.TwitchUserEvents) error
	EventsFor(userID, streamID string, eventType model.Eventtype) ([]*model.TwitchUserEvents, error)
}

// Registry is the local source of truth for active webhook subscriptions,
// mirrored against the platform's subscription store by the Reconciler.
type Registry interface {
	Webhook(userID string, subType model.Eventtype) (*model.TwitchWebhooks, error)
	Webhooks(userID string) ([]*model.TwitchWebhooks, error)
	AddWebhook(hook *model.TwitchWebhooks) error
	RemoveWebhook(subscriptionID string) error
}

// Ledger records received notification ids, reporting true only on the
// first delivery.
type Ledger interface {
	RecordNotification(messageID string, receivedAt time.Time) bool
}

// Tracker owns the live session lifecycle of each broadcaster and the
// events counted against the open session.
type Tracker struct {
	sessions SessionStore
	events   EventStore
}

func NewTracker(sessions SessionStore, events EventStore) *Tracker {
	return &Tracker{
		sessions: sessions,
		events:   events,
	}
}

// OpenSession starts tracking a live stream. A second online notification
// for an already-live broadcaster trips the open-stream unique constraint
// and is ignored, keeping the original start time.
func (t *Tracker) OpenSession(evt *helix.EventStreamOnline) {
	l := utils.Logger("tracker")

	err := t.sessions.InsertStream(&model.LiveStreams{
		ID:         evt.ID,
		UserID:     evt.Broadcaster.ID,
		StartTime:  evt.StartedAt,
		IsComplete: false,
	})
	if err != nil {
		if repo.IsUniqueViolation(err) {
			l.Debug().
				Str("bid", evt.Broadcaster.ID).
				Msg("stream.online for an already live broadcaster, ignoring")
		}
		return
	}
	l.Info().
		Str("bid", evt.Broadcaster.ID).
		Str("stream_id", evt.ID).
		Msg("stream online")
}

// CloseSession completes the broadcaster's open stream. An offline event
// with no tracked stream is a no-op.
func (t *Tracker) CloseSession(userID string) {
	l := utils.Logger("tracker")

	if err := t.sessions.CloseStreams(userID); err != nil {
		return
	}
	l.Info().
		Str("bid", userID).
		Msg("stream offline")
}

// CurrentSession returns the broadcaster's open stream, or nil when offline
// or when storage is unavailable.
func (t *Tracker) CurrentSession(userID string) *model.LiveStreams {
	st, err := t.sessions.CurrentStream(userID)
	if err != nil {
		return nil
	}
	return st
}

// RecordEvent appends a counted user action to the broadcaster's open
// stream. Events arriving while no stream is open are dropped, reported as
// false, and never queued.
//
// The session lookup and the insert are two separate storage operations: a
// stream closing in between leaves the event attributed to the stream that
// was open at lookup time. That window is accepted, not locked away.
func (t *Tracker) RecordEvent(userID, eventUserID, eventUserLogin, eventUserName string, eventType model.Eventtype) bool {
	st := t.CurrentSession(userID)
	if st == nil {
		return false
	}

	err := t.events.InsertEvent(&model.TwitchUserEvents{
		UserID:         userID,
		StreamID:       st.ID,
		EventUserID:    eventUserID,
		EventUserLogin: eventUserLogin,
		EventUserName:  eventUserName,
		EventType:      eventType,
		CreatedAt:      time.Now().UTC(),
	})
	return err == nil
}

// OnStreamOffline closes the broadcaster's open session.
func (t *Tracker) OnStreamOffline(evt *helix.EventStreamOffline) {
	t.CloseSession(evt.Broadcaster.ID)
}

// OnFollow counts a follow against the broadcaster's open session.
func (t *Tracker) OnFollow(evt *helix.EventChannelFollow) bool {
	return t.RecordEvent(
		evt.Broadcaster.ID,
		evt.UserID, evt.UserLogin, evt.UserName,
		model.Eventtype_ChannelFollow,
	)
}

// OnSubscribe counts a subscription against the broadcaster's open session.
// Gift subs count like any other.
func (t *Tracker) OnSubscribe(evt *helix.EventChannelSubscribe) bool {
	return t.RecordEvent(
		evt.Broadcaster.ID,
		evt.UserID, evt.UserLogin, evt.UserName,
		model.Eventtype_ChannelSubscribe,
	)
}

type EventStats struct {
	Count       int                     `json:"count"`
	LatestEvent *model.TwitchUserEvents `json:"latestEvent,omitempty"`
}

// EventStats answers count and latest-event queries for one
// (broadcaster, stream, event type) key. Storage failures surface as empty
// stats, never as a crash.
func (t *Tracker) EventStats(userID, streamID string, eventType model.Eventtype) *EventStats {
	evts, err := t.events.EventsFor(userID, streamID, eventType)
	if err != nil {
		return &EventStats{}
	}

	stats := &EventStats{Count: len(evts)}
	if len(evts) > 0 {
		stats.LatestEvent = evts[len(evts)-1]
	}
	return stats
}
