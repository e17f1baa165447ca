package tracker

import (
	"testing"
	"time"

	"github.com/go-test/deep"
	"github.com/lib/pq"
	"github.com/streamrewards/streamrewards/gen/sr/public/model"
	"github.com/streamrewards/streamrewards/helix"
)

// memStore is an in-memory stand-in for repo.Store honoring the same
// constraint semantics: one open stream per user, write-once notification
// ids, one webhook per (user, type).
type memStore struct {
	streams []*model.LiveStreams
	events  []*model.TwitchUserEvents
	hooks   []*model.TwitchWebhooks
	seen    map[string]time.Time
}

func newMemStore() *memStore {
	return &memStore{seen: make(map[string]time.Time)}
}

func uniqueViolation() error {
	return &pq.Error{Code: "23505"}
}

func (m *memStore) InsertStream(st *model.LiveStreams) error {
	for _, s := range m.streams {
		if s.UserID == st.UserID && !s.IsComplete {
			return uniqueViolation()
		}
	}
	cp := *st
	m.streams = append(m.streams, &cp)
	return nil
}

func (m *memStore) CloseStreams(userID string) error {
	for _, s := range m.streams {
		if s.UserID == userID && !s.IsComplete {
			s.IsComplete = true
		}
	}
	return nil
}

func (m *memStore) CurrentStream(userID string) (*model.LiveStreams, error) {
	for _, s := range m.streams {
		if s.UserID == userID && !s.IsComplete {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memStore) InsertEvent(evt *model.TwitchUserEvents) error {
	cp := *evt
	cp.ID = int64(len(m.events) + 1)
	m.events = append(m.events, &cp)
	return nil
}

func (m *memStore) EventsFor(userID, streamID string, eventType model.Eventtype) ([]*model.TwitchUserEvents, error) {
	var out []*model.TwitchUserEvents
	for _, e := range m.events {
		if e.UserID == userID && e.StreamID == streamID && e.EventType == eventType {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memStore) Webhook(userID string, subType model.Eventtype) (*model.TwitchWebhooks, error) {
	for _, h := range m.hooks {
		if h.UserID == userID && h.SubType == subType {
			return h, nil
		}
	}
	return nil, nil
}

func (m *memStore) Webhooks(userID string) ([]*model.TwitchWebhooks, error) {
	var out []*model.TwitchWebhooks
	for _, h := range m.hooks {
		if h.UserID == userID {
			out = append(out, h)
		}
	}
	return out, nil
}

func (m *memStore) AddWebhook(hook *model.TwitchWebhooks) error {
	for _, h := range m.hooks {
		if h.UserID == hook.UserID && h.SubType == hook.SubType {
			return uniqueViolation()
		}
	}
	m.hooks = append(m.hooks, hook)
	return nil
}

func (m *memStore) RemoveWebhook(subscriptionID string) error {
	out := m.hooks[:0]
	for _, h := range m.hooks {
		if h.ID != subscriptionID {
			out = append(out, h)
		}
	}
	m.hooks = out
	return nil
}

func (m *memStore) RecordNotification(messageID string, receivedAt time.Time) bool {
	if _, ok := m.seen[messageID]; ok {
		return false
	}
	m.seen[messageID] = receivedAt
	return true
}

func (m *memStore) openCount(userID string) int {
	n := 0
	for _, s := range m.streams {
		if s.UserID == userID && !s.IsComplete {
			n++
		}
	}
	return n
}

func onlineEvt(id, bid string, startedAt time.Time) *helix.EventStreamOnline {
	return &helix.EventStreamOnline{
		ID:        id,
		Type:      helix.StreamLive,
		StartedAt: startedAt,
		Broadcaster: &helix.Broadcaster{
			ID:       bid,
			Login:    "cool_user",
			Username: "Cool_User",
		},
	}
}

func TestTrackerSingleOpenSession(t *testing.T) {
	t.Parallel()

	sto := newMemStore()
	tr := NewTracker(sto, sto)
	ts := time.Date(2020, 10, 11, 10, 11, 12, 0, time.UTC)

	// out-of-order and duplicated lifecycle events
	tr.CloseSession("1337")
	tr.OpenSession(onlineEvt("9001", "1337", ts))
	tr.OpenSession(onlineEvt("9002", "1337", ts.Add(time.Minute)))
	if n := sto.openCount("1337"); n != 1 {
		t.Fatalf("expected exactly 1 open session, got %d", n)
	}

	st := tr.CurrentSession("1337")
	if st == nil || st.ID != "9001" {
		t.Fatalf("expected the first session to stay open, got %+v", st)
	}

	tr.CloseSession("1337")
	if n := sto.openCount("1337"); n != 0 {
		t.Fatalf("expected no open session after close, got %d", n)
	}
	tr.OpenSession(onlineEvt("9003", "1337", ts.Add(time.Hour)))
	if n := sto.openCount("1337"); n != 1 {
		t.Fatalf("expected exactly 1 open session after reopen, got %d", n)
	}
}

func TestTrackerRecordEventWhileLive(t *testing.T) {
	t.Parallel()

	sto := newMemStore()
	tr := NewTracker(sto, sto)
	ts := time.Date(2020, 10, 11, 10, 11, 12, 0, time.UTC)

	tr.OpenSession(onlineEvt("9001", "1337", ts))

	if !tr.RecordEvent("1337", "44", "fan_one", "Fan_One", model.Eventtype_ChannelFollow) {
		t.Fatal("expected the follow to be recorded while live")
	}

	stats := tr.EventStats("1337", "9001", model.Eventtype_ChannelFollow)
	if stats.Count != 1 {
		t.Fatalf("expected count=1, got %d", stats.Count)
	}
	if stats.LatestEvent == nil || stats.LatestEvent.EventUserLogin != "fan_one" {
		t.Fatalf("unexpected latest event: %+v", stats.LatestEvent)
	}
}

func TestTrackerDropEventWhileOffline(t *testing.T) {
	t.Parallel()

	sto := newMemStore()
	tr := NewTracker(sto, sto)

	if tr.RecordEvent("1337", "44", "fan_one", "Fan_One", model.Eventtype_ChannelFollow) {
		t.Fatal("expected the follow to be dropped with no open session")
	}
	stats := tr.EventStats("1337", "9001", model.Eventtype_ChannelFollow)
	if stats.Count != 0 || stats.LatestEvent != nil {
		t.Fatalf("expected empty stats, got %+v", stats)
	}
}

func TestTrackerEventStatsLatest(t *testing.T) {
	t.Parallel()

	sto := newMemStore()
	tr := NewTracker(sto, sto)
	ts := time.Date(2020, 10, 11, 10, 11, 12, 0, time.UTC)

	tr.OpenSession(onlineEvt("9001", "1337", ts))
	tr.RecordEvent("1337", "44", "fan_one", "Fan_One", model.Eventtype_ChannelSubscribe)
	tr.RecordEvent("1337", "45", "fan_two", "Fan_Two", model.Eventtype_ChannelSubscribe)
	tr.RecordEvent("1337", "46", "fan_three", "Fan_Three", model.Eventtype_ChannelFollow)

	got := tr.EventStats("1337", "9001", model.Eventtype_ChannelSubscribe)
	if got.Count != 2 {
		t.Fatalf("expected count=2, got %d", got.Count)
	}
	want := []string{"fan_two", "Fan_Two"}
	if diff := deep.Equal(
		[]string{got.LatestEvent.EventUserLogin, got.LatestEvent.EventUserName},
		want,
	); diff != nil {
		t.Fatal(diff)
	}

	// follows are counted independently of subscribes
	if stats := tr.EventStats("1337", "9001", model.Eventtype_ChannelFollow); stats.Count != 1 {
		t.Fatalf("expected follow count=1, got %d", stats.Count)
	}
}
