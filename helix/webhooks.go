package helix

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/streamrewards/streamrewards/utils"
)

var (
	WebhookEventHMACPrefix       = []byte("sha256=")
	WebhookEventHMACPrefixLength = len(WebhookEventHMACPrefix)
)

// Twitch webhook event type
// See https://dev.twitch.tv/docs/eventsub/handling-webhook-events
const (
	WebhookEventNotification string = "notification"
	WebhookEventVerification string = "webhook_callback_verification"
	WebhookEventRevocation   string = "revocation"

	SubStreamOnline      string = "stream.online"
	SubStreamOffline     string = "stream.offline"
	SubChannelFollow     string = "channel.follow"
	SubChannelSubscribe  string = "channel.subscribe"
)

// Twitch webhook headers
// https://dev.twitch.tv/docs/eventsub/handling-webhook-events#list-of-request-headers
const (
	WebhookHeaderID        = "Twitch-Eventsub-Message-Id"
	WebhookHeaderTimestamp = "Twitch-Eventsub-Message-Timestamp"
	WebhookHeaderSignature = "Twitch-Eventsub-Message-Signature"
	WebhookHeaderType      = "Twitch-Eventsub-Message-Type"
)

// WebhookHeaders holds the signed parts of an inbound notification. Body must
// be the raw bytes as transmitted: re-serializing the JSON before Valid()
// changes the byte content and invalidates the signature.
type WebhookHeaders struct {
	ID        string
	Timestamp string
	Signature string
	Type      string
	Body      []byte
}

// Valid reports whether the signature header matches the HMAC-SHA256 of
// id+timestamp+body under the shared secret. The comparison is constant-time.
// Missing headers simply never match.
func (evt *WebhookHeaders) Valid(secret []byte) bool {
	// Important note: DO NOT mutate id, sig and ts, they are meant to be read-only
	var (
		id   = utils.StringToByte(evt.ID)
		ts   = utils.StringToByte(evt.Timestamp)
		sig  = utils.StringToByte(evt.Signature)
		body = evt.Body
	)

	mac := hmac.New(sha256.New, secret)
	mac.Write(id)
	mac.Write(ts)
	mac.Write(body)
	hash := mac.Sum(nil)
	l := len(hash)
	hexHash := make([]byte, hex.EncodedLen(l), hex.EncodedLen(l)+WebhookEventHMACPrefixLength)
	hex.Encode(hexHash, hash)
	hexHash = utils.Prepend(hexHash, WebhookEventHMACPrefix)
	return hmac.Equal(sig, hexHash)
}

type WebhookSubscription struct {
	ID        string `json:"id"`
	Status    string `json:"status"`
	Type      string `json:"type"`
	Version   string `json:"version"`
	Cost      int    `json:"cost"`
	Condition struct {
		BroadcasterUserID string `json:"broadcaster_user_id"`
	} `json:"condition"`
	Transport struct {
		Method   string `json:"method"`
		Callback string `json:"callback"`
	} `json:"transport"`
	CreatedAt time.Time `json:"created_at"`
}

type WebhookNotificationPayload struct {
	Subscription WebhookSubscription `json:"subscription"`
	Event        struct {
		// stream.online
		ID        string    `json:"id"`
		Type      string    `json:"type"`
		StartedAt time.Time `json:"started_at"`

		BroadcasterUserID    string `json:"broadcaster_user_id"`
		BroadcasterUserLogin string `json:"broadcaster_user_login"`
		BroadcasterUserName  string `json:"broadcaster_user_name"`

		// channel.follow / channel.subscribe
		UserID     string    `json:"user_id"`
		UserLogin  string    `json:"user_login"`
		UserName   string    `json:"user_name"`
		FollowedAt time.Time `json:"followed_at"`
		Tier       string    `json:"tier"`
		IsGift     bool      `json:"is_gift"`
	} `json:"event"`
}

type WebhookVerificationPayload struct {
	Challenge    string              `json:"challenge"`
	Subscription WebhookSubscription `json:"subscription"`
}

type WebhookRevokePayload struct {
	Subscription WebhookSubscription `json:"subscription"`
}
