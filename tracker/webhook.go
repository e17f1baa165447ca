package tracker

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/streamrewards/streamrewards/gen/sr/public/model"
	"github.com/streamrewards/streamrewards/helix"
	"github.com/streamrewards/streamrewards/utils"
)

// WebhookHandler is the top-level controller for the callback endpoint. A
// notification flows verify -> dedup -> (challenge | revocation | event
// routing); every inbound request is handled in full isolation.
type WebhookHandler struct {
	secret   []byte
	ledger   Ledger
	registry Registry
	tracker  *Tracker
}

func NewWebhookHandler(secret []byte, ledger Ledger, registry Registry, tracker *Tracker) *WebhookHandler {
	return &WebhookHandler{
		secret:   secret,
		ledger:   ledger,
		registry: registry,
		tracker:  tracker,
	}
}

// Handler returns the fiber handler for the webhook callback route.
func (h *WebhookHandler) Handler() fiber.Handler {
	return h.handle
}

func (h *WebhookHandler) handle(c *fiber.Ctx) error {
	// The signature covers the body bytes exactly as transmitted, so they
	// must not be parsed or re-serialized before Valid().
	headers := &helix.WebhookHeaders{
		ID:        c.Get(helix.WebhookHeaderID),
		Timestamp: c.Get(helix.WebhookHeaderTimestamp),
		Signature: c.Get(helix.WebhookHeaderSignature),
		Type:      c.Get(helix.WebhookHeaderType),
		Body:      c.Body(),
	}
	if !headers.Valid(h.secret) {
		return fiber.NewError(fiber.StatusForbidden, "Invalid signature")
	}

	receivedAt, err := time.Parse(time.RFC3339Nano, headers.Timestamp)
	if err != nil {
		// the timestamp header is signed, so a format quirk is not a forgery
		receivedAt = time.Now().UTC()
	}
	if !h.ledger.RecordNotification(headers.ID, receivedAt) {
		// Redelivery. Ack silently: processing it again would double-count,
		// erroring would make the platform retry forever.
		return nil
	}

	if !c.Is("json") {
		return fiber.NewError(fiber.StatusBadRequest, "Expected application/json content")
	}

	switch headers.Type {
	case helix.WebhookEventVerification:
		return h.verification(c)
	case helix.WebhookEventRevocation:
		return h.revocation(c)
	case helix.WebhookEventNotification:
		return h.notification(c)
	default:
		return fiber.NewError(fiber.StatusBadRequest, "Unknown Twitch-Eventsub-Message-Type header")
	}
}

// verification answers the platform's proof-of-ownership handshake. The
// challenge is echoed only when the pending subscription is one the
// reconciler actually registered; anything else is refused without echo.
func (h *WebhookHandler) verification(c *fiber.Ctx) error {
	var payload *helix.WebhookVerificationPayload
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid verification body")
	}
	if payload.Challenge == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Empty challenge")
	}

	sub := payload.Subscription
	hook, err := h.registry.Webhook(sub.Condition.BroadcasterUserID, model.Eventtype(sub.Type))
	if err != nil || hook == nil || hook.ID != sub.ID {
		return fiber.NewError(fiber.StatusBadRequest, "Unknown subscription")
	}
	return c.SendString(payload.Challenge)
}

// revocation drops the local record for a platform-revoked subscription.
// Acked even when no record exists.
func (h *WebhookHandler) revocation(c *fiber.Ctx) error {
	l := utils.Logger("webhook")

	var payload *helix.WebhookRevokePayload
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid revocation body")
	}

	h.registry.RemoveWebhook(payload.Subscription.ID)
	l.Info().
		Str("sub_id", payload.Subscription.ID).
		Str("status", payload.Subscription.Status).
		Msg("subscription revoked by platform")
	return nil
}

func (h *WebhookHandler) notification(c *fiber.Ctx) error {
	var payload *helix.WebhookNotificationPayload
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid notification body")
	}

	evt := payload.Event
	bc := &helix.Broadcaster{
		ID:       evt.BroadcasterUserID,
		Login:    evt.BroadcasterUserLogin,
		Username: evt.BroadcasterUserName,
	}

	switch payload.Subscription.Type {
	case helix.SubStreamOnline:
		h.tracker.OpenSession(&helix.EventStreamOnline{
			ID:          evt.ID,
			Type:        evt.Type,
			StartedAt:   evt.StartedAt,
			Broadcaster: bc,
		})
	case helix.SubStreamOffline:
		h.tracker.OnStreamOffline(&helix.EventStreamOffline{
			Broadcaster: bc,
		})
	case helix.SubChannelFollow:
		h.tracker.OnFollow(&helix.EventChannelFollow{
			Broadcaster: bc,
			UserID:      evt.UserID,
			UserLogin:   evt.UserLogin,
			UserName:    evt.UserName,
			FollowedAt:  evt.FollowedAt,
		})
	case helix.SubChannelSubscribe:
		h.tracker.OnSubscribe(&helix.EventChannelSubscribe{
			Broadcaster: bc,
			UserID:      evt.UserID,
			UserLogin:   evt.UserLogin,
			UserName:    evt.UserName,
			Tier:        evt.Tier,
			IsGift:      evt.IsGift,
		})
	default:
		// subscription types we don't track yet are acked and ignored
	}
	return nil
}
