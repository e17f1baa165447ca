package helix

import (
	"time"
)

// Twitch stream types
// See "Stream Online Event" https://dev.twitch.tv/docs/eventsub/eventsub-reference#events
const (
	StreamLive       string = "live"
	StreamPlaylist   string = "playlist"
	StreamWatchParty string = "watch_party"
	StreamPremiere   string = "premiere"
	StreamRerun      string = "rerun"
)

// Twitch Events
// See https://dev.twitch.tv/docs/eventsub/eventsub-reference#events

type Broadcaster struct {
	ID       string
	Login    string
	Username string
}

type EventStreamOnline struct {
	ID          string
	Type        string
	StartedAt   time.Time
	Broadcaster *Broadcaster
}

type EventStreamOffline struct {
	Broadcaster *Broadcaster
}

// EventChannelFollow carries the identity of the follower. FollowedAt comes
// from the platform, not from our clock.
type EventChannelFollow struct {
	Broadcaster *Broadcaster
	UserID      string
	UserLogin   string
	UserName    string
	FollowedAt  time.Time
}

type EventChannelSubscribe struct {
	Broadcaster *Broadcaster
	UserID      string
	UserLogin   string
	UserName    string
	Tier        string
	IsGift      bool
}
