package tracker

import (
	"github.com/streamrewards/streamrewards/gen/sr/public/model"
	"github.com/streamrewards/streamrewards/helix"
	"github.com/streamrewards/streamrewards/utils"
)

// EnsureStatus is the outcome of a subscription reconciliation attempt.
type EnsureStatus int

const (
	StatusConnected EnsureStatus = iota
	StatusDuplicate
	StatusRejected
)

func (s EnsureStatus) String() string {
	switch s {
	case StatusConnected:
		return "connected"
	case StatusDuplicate:
		return "duplicate"
	case StatusRejected:
		return "rejected"
	}
	return "unknown"
}

// Upstream is the slice of the helix client the reconciler needs.
type Upstream interface {
	Credentials() error
	CreateEventSubSubscription(sub *helix.Subscription) (*helix.CreatedSubscription, error)
	RemoveEventSubSubscription(subscriptionID string) error
}

// Reconciler keeps the local subscription registry consistent with the
// platform's subscription store.
type Reconciler struct {
	hx       Upstream
	registry Registry

	// transport settings handed to the platform on create
	callback string
	secret   string
}

func NewReconciler(hx Upstream, registry Registry, callbackURL, secret string) *Reconciler {
	return &Reconciler{
		hx:       hx,
		registry: registry,
		callback: callbackURL,
		secret:   secret,
	}
}

// EnsureSubscription makes sure an upstream subscription of the given type
// exists for the broadcaster. The registry is consulted first so an
// existing subscription never causes a second upstream create, which would
// orphan a duplicate in the platform's store.
func (r *Reconciler) EnsureSubscription(userID string, subType model.Eventtype) EnsureStatus {
	l := utils.Logger("reconciler")

	if err := r.hx.Credentials(); err != nil {
		l.Warn().Err(err).Msg("no valid app credentials")
		return StatusRejected
	}

	hook, err := r.registry.Webhook(userID, subType)
	if err != nil {
		return StatusRejected
	}
	if hook != nil {
		return StatusDuplicate
	}

	created, err := r.hx.CreateEventSubSubscription(&helix.Subscription{
		Type:    subType.String(),
		Version: "1",
		Condition: &helix.Condition{
			BroadcasterUserID: userID,
		},
		Transport: &helix.Transport{
			Method:   "webhook",
			Callback: r.callback,
			Secret:   r.secret,
		},
	})
	if err != nil {
		l.Error().Err(err).
			Str("bid", userID).
			Str("sub_type", subType.String()).
			Msg("upstream subscription create failed")
		return StatusRejected
	}

	if err := r.registry.AddWebhook(&model.TwitchWebhooks{
		ID:      created.ID,
		SubType: model.Eventtype(created.Type),
		UserID:  userID,
	}); err != nil {
		// The upstream subscription exists but we lost its record. The next
		// verification challenge for it will be refused and the platform will
		// drop it on its own after the handshake fails.
		l.Error().Err(err).
			Str("sub_id", created.ID).
			Msg("created upstream subscription could not be registered locally")
		return StatusRejected
	}

	l.Info().
		Str("bid", userID).
		Str("sub_type", subType.String()).
		Str("sub_id", created.ID).
		Msg("subscription connected")
	return StatusConnected
}

// RemoveSubscription deletes the broadcaster's subscription of the given
// type, upstream first. The local record is only removed after the upstream
// delete succeeded; otherwise the platform would keep delivering events the
// registry no longer expects.
func (r *Reconciler) RemoveSubscription(userID string, subType model.Eventtype) bool {
	if err := r.hx.Credentials(); err != nil {
		return false
	}

	hook, err := r.registry.Webhook(userID, subType)
	if err != nil {
		return false
	}
	if hook == nil {
		return true
	}

	if err := r.hx.RemoveEventSubSubscription(hook.ID); err != nil {
		return false
	}
	return r.registry.RemoveWebhook(hook.ID) == nil
}

// EnsureStreamLifecycleSubscriptions bootstraps the online and offline
// subscriptions a tracked broadcaster needs. Both legs are attempted even
// if the first fails; the result is false if either leg failed.
func (r *Reconciler) EnsureStreamLifecycleSubscriptions(userID string) bool {
	ok := true
	for _, subType := range []model.Eventtype{
		model.Eventtype_StreamOnline,
		model.Eventtype_StreamOffline,
	} {
		if r.EnsureSubscription(userID, subType) == StatusRejected {
			ok = false
		}
	}
	return ok
}
