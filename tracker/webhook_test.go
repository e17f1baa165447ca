package tracker

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/streamrewards/streamrewards/gen/sr/public/model"
	"github.com/streamrewards/streamrewards/helix"
)

var secret = []byte("thisisanososecretsecret")

func newWebhookApp(sto *memStore) *fiber.App {
	h := NewWebhookHandler(secret, sto, sto, NewTracker(sto, sto))
	app := fiber.New()
	app.Post("/webhook", h.Handler())
	return app
}

func signedRequest(msgType, msgID string, body []byte) *http.Request {
	const ts = "2020-10-11T10:11:12.123Z"

	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(msgID))
	mac.Write([]byte(ts))
	mac.Write(body)
	sig := "sha256=" + hex.EncodeToString(mac.Sum(nil))

	req := httptest.NewRequest("POST", "http://localhost:7123/webhook", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(helix.WebhookHeaderID, msgID)
	req.Header.Set(helix.WebhookHeaderTimestamp, ts)
	req.Header.Set(helix.WebhookHeaderSignature, sig)
	req.Header.Set(helix.WebhookHeaderType, msgType)
	return req
}

func dispatch(t *testing.T, app *fiber.App, req *http.Request) (int, string) {
	t.Helper()
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp.StatusCode, string(b)
}

var onlineBody = []byte(`{
    "subscription": {
        "id": "f1c2a387-161a-49f9-a165-0f21d7a4e1c4",
        "type": "stream.online",
        "version": "1",
        "status": "enabled",
        "cost": 0,
        "condition": {
            "broadcaster_user_id": "1337"
        },
        "transport": {
            "method": "webhook",
            "callback": "https://example.com/webhooks/callback"
        },
        "created_at": "2019-11-16T10:11:12.123Z"
    },
    "event": {
        "id": "9001",
        "broadcaster_user_id": "1337",
        "broadcaster_user_login": "cool_user",
        "broadcaster_user_name": "Cool_User",
        "type": "live",
        "started_at": "2020-10-11T10:11:12.123Z"
    }
  }`)

var offlineBody = []byte(`{
    "subscription": {
        "id": "f1c2a387-161a-49f9-a165-0f21d7a4e1c4",
        "type": "stream.offline",
        "version": "1",
        "status": "enabled",
        "cost": 0,
        "condition": {
            "broadcaster_user_id": "1337"
        },
        "transport": {
            "method": "webhook",
            "callback": "https://example.com/webhooks/callback"
        },
        "created_at": "2019-11-16T10:11:12.123Z"
    },
    "event": {
        "broadcaster_user_id": "1337",
        "broadcaster_user_login": "cool_user",
        "broadcaster_user_name": "Cool_User"
    }
  }`)

var followBody = []byte(`{
    "subscription": {
        "id": "a9c2e387-161a-49f9-a165-0f21d7a4e1c4",
        "type": "channel.follow",
        "version": "1",
        "status": "enabled",
        "cost": 1,
        "condition": {
            "broadcaster_user_id": "1337"
        },
        "transport": {
            "method": "webhook",
            "callback": "https://example.com/webhooks/callback"
        },
        "created_at": "2019-11-16T10:11:12.123Z"
    },
    "event": {
        "user_id": "44",
        "user_login": "fan_one",
        "user_name": "Fan_One",
        "broadcaster_user_id": "1337",
        "broadcaster_user_login": "cool_user",
        "broadcaster_user_name": "Cool_User",
        "followed_at": "2020-10-11T11:00:00.123Z"
    }
  }`)

func TestWebhookStreamLifecycle(t *testing.T) {
	t.Parallel()

	sto := newMemStore()
	app := newWebhookApp(sto)

	code, body := dispatch(t, app, signedRequest(helix.WebhookEventNotification, "msg-1", onlineBody))
	if code != 200 || body != "" {
		t.Fatalf("expected empty 200, got %d %q", code, body)
	}
	st, _ := sto.CurrentStream("1337")
	if st == nil || st.ID != "9001" {
		t.Fatalf("expected an open session 9001, got %+v", st)
	}

	code, _ = dispatch(t, app, signedRequest(helix.WebhookEventNotification, "msg-2", offlineBody))
	if code != 200 {
		t.Fatalf("expected 200, got %d", code)
	}
	if st, _ := sto.CurrentStream("1337"); st != nil {
		t.Fatalf("expected no open session after offline, got %+v", st)
	}
}

func TestWebhookFollowCounted(t *testing.T) {
	t.Parallel()

	sto := newMemStore()
	app := newWebhookApp(sto)

	dispatch(t, app, signedRequest(helix.WebhookEventNotification, "msg-1", onlineBody))
	code, _ := dispatch(t, app, signedRequest(helix.WebhookEventNotification, "msg-2", followBody))
	if code != 200 {
		t.Fatalf("expected 200, got %d", code)
	}

	evts, _ := sto.EventsFor("1337", "9001", model.Eventtype_ChannelFollow)
	if len(evts) != 1 {
		t.Fatalf("expected 1 follow event, got %d", len(evts))
	}
	if evts[0].EventUserLogin != "fan_one" {
		t.Fatalf("unexpected event user: %+v", evts[0])
	}
}

func TestWebhookFollowDroppedWhileOffline(t *testing.T) {
	t.Parallel()

	sto := newMemStore()
	app := newWebhookApp(sto)

	// no prior online event: the follow is dropped but still acked
	code, body := dispatch(t, app, signedRequest(helix.WebhookEventNotification, "msg-1", followBody))
	if code != 200 || body != "" {
		t.Fatalf("expected empty 200, got %d %q", code, body)
	}
	if len(sto.events) != 0 {
		t.Fatalf("expected no events, got %d", len(sto.events))
	}
}

func TestWebhookRedeliveryIsIdempotent(t *testing.T) {
	t.Parallel()

	sto := newMemStore()
	app := newWebhookApp(sto)

	dispatch(t, app, signedRequest(helix.WebhookEventNotification, "msg-1", onlineBody))
	dispatch(t, app, signedRequest(helix.WebhookEventNotification, "msg-2", followBody))

	// redeliver both with the same message ids
	code, body := dispatch(t, app, signedRequest(helix.WebhookEventNotification, "msg-1", onlineBody))
	if code != 200 || body != "" {
		t.Fatalf("expected silent 200 for a redelivery, got %d %q", code, body)
	}
	dispatch(t, app, signedRequest(helix.WebhookEventNotification, "msg-2", followBody))

	evts, _ := sto.EventsFor("1337", "9001", model.Eventtype_ChannelFollow)
	if len(evts) != 1 {
		t.Fatalf("expected redelivery to not double count, got %d events", len(evts))
	}
	if n := sto.openCount("1337"); n != 1 {
		t.Fatalf("expected 1 open session, got %d", n)
	}
}

func TestWebhookInvalidSignature(t *testing.T) {
	t.Parallel()

	sto := newMemStore()
	app := newWebhookApp(sto)

	req := signedRequest(helix.WebhookEventNotification, "msg-1", onlineBody)
	req.Header.Set(helix.WebhookHeaderSignature, "sha256=0000000000000000000000000000000000000000000000000000000000000000")
	code, _ := dispatch(t, app, req)
	if code != 403 {
		t.Fatalf("expected 403, got %d", code)
	}
	if len(sto.seen) != 0 {
		t.Fatal("expected rejected notifications to stay out of the ledger")
	}
}

func TestWebhookAlteredBody(t *testing.T) {
	t.Parallel()

	sto := newMemStore()
	app := newWebhookApp(sto)

	req := signedRequest(helix.WebhookEventNotification, "msg-1", onlineBody)
	altered := bytes.Replace(onlineBody, []byte(`"9001"`), []byte(`"9002"`), 1)
	req.Body = io.NopCloser(bytes.NewBuffer(altered))
	req.ContentLength = int64(len(altered))

	code, _ := dispatch(t, app, req)
	if code != 403 {
		t.Fatalf("expected 403 for an altered body, got %d", code)
	}
}

func TestWebhookWrongContentType(t *testing.T) {
	t.Parallel()

	sto := newMemStore()
	app := newWebhookApp(sto)

	req := signedRequest(helix.WebhookEventNotification, "msg-1", onlineBody)
	req.Header.Set("Content-Type", "text/plain")
	code, _ := dispatch(t, app, req)
	if code != 400 {
		t.Fatalf("expected 400, got %d", code)
	}
}

func TestWebhookMalformedJSON(t *testing.T) {
	t.Parallel()

	sto := newMemStore()
	app := newWebhookApp(sto)

	code, _ := dispatch(t, app, signedRequest(helix.WebhookEventNotification, "msg-1", []byte(`{not json`)))
	if code != 400 {
		t.Fatalf("expected 400, got %d", code)
	}
}

func TestWebhookUnknownSubscriptionType(t *testing.T) {
	t.Parallel()

	sto := newMemStore()
	app := newWebhookApp(sto)

	body := bytes.Replace(onlineBody, []byte("stream.online"), []byte("channel.cheer"), 1)
	code, respBody := dispatch(t, app, signedRequest(helix.WebhookEventNotification, "msg-1", body))
	if code != 200 || respBody != "" {
		t.Fatalf("expected unknown types to be acked and ignored, got %d %q", code, respBody)
	}
	if len(sto.streams) != 0 || len(sto.events) != 0 {
		t.Fatal("expected no side effects for an unknown subscription type")
	}
}

func TestWebhookUnknownMessageType(t *testing.T) {
	t.Parallel()

	sto := newMemStore()
	app := newWebhookApp(sto)

	code, _ := dispatch(t, app, signedRequest("not_a_message_type", "msg-1", onlineBody))
	if code != 400 {
		t.Fatalf("expected 400, got %d", code)
	}
}

var verificationBody = []byte(`{
    "challenge": "pogchamp-kappa-360noscope-vohiyo",
    "subscription": {
      "id": "f1c2a387-161a-49f9-a165-0f21d7a4e1c4",
      "status": "webhook_callback_verification_pending",
      "type": "channel.follow",
      "version": "1",
      "cost": 1,
      "condition": {
        "broadcaster_user_id": "12826"
      },
      "transport": {
        "method": "webhook",
        "callback": "https://example.com/webhooks/callback"
      },
      "created_at": "2019-11-16T10:11:12.123Z"
    }
  }`)

func TestWebhookVerificationChallengeEcho(t *testing.T) {
	t.Parallel()

	sto := newMemStore()
	sto.AddWebhook(&model.TwitchWebhooks{
		ID:      "f1c2a387-161a-49f9-a165-0f21d7a4e1c4",
		SubType: model.Eventtype_ChannelFollow,
		UserID:  "12826",
	})
	app := newWebhookApp(sto)

	code, body := dispatch(t, app, signedRequest(helix.WebhookEventVerification, "msg-1", verificationBody))
	if code != 200 {
		t.Fatalf("expected 200, got %d", code)
	}
	if body != "pogchamp-kappa-360noscope-vohiyo" {
		t.Fatalf("expected the challenge to be echoed, got %q", body)
	}
}

func TestWebhookVerificationUnknownSubscription(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		hook *model.TwitchWebhooks
	}{
		{name: "no subscription at all", hook: nil},
		{
			name: "subscription id mismatch",
			hook: &model.TwitchWebhooks{
				ID:      "some-other-subscription-id",
				SubType: model.Eventtype_ChannelFollow,
				UserID:  "12826",
			},
		},
	}

	for _, test := range tests {
		sto := newMemStore()
		if test.hook != nil {
			sto.AddWebhook(test.hook)
		}
		app := newWebhookApp(sto)

		code, body := dispatch(t, app, signedRequest(helix.WebhookEventVerification, "msg-1", verificationBody))
		if code != 400 {
			t.Fatalf("%s: expected 400, got %d", test.name, code)
		}
		// the challenge must never leak to an unverifiable requester
		if bytes.Contains([]byte(body), []byte("pogchamp-kappa-360noscope-vohiyo")) {
			t.Fatalf("%s: challenge echoed to an unverifiable request", test.name)
		}
	}
}

var revocationBody = []byte(`{
    "subscription": {
      "id": "f1c2a387-161a-49f9-a165-0f21d7a4e1c4",
      "status": "authorization_revoked",
      "type": "channel.follow",
      "cost": 1,
      "version": "1",
      "condition": {
        "broadcaster_user_id": "12826"
      },
      "transport": {
        "method": "webhook",
        "callback": "https://example.com/webhooks/callback"
      },
      "created_at": "2019-11-16T10:11:12.123Z"
    }
  }`)

func TestWebhookRevocation(t *testing.T) {
	t.Parallel()

	sto := newMemStore()
	sto.AddWebhook(&model.TwitchWebhooks{
		ID:      "f1c2a387-161a-49f9-a165-0f21d7a4e1c4",
		SubType: model.Eventtype_ChannelFollow,
		UserID:  "12826",
	})
	app := newWebhookApp(sto)

	code, _ := dispatch(t, app, signedRequest(helix.WebhookEventRevocation, "msg-1", revocationBody))
	if code != 200 {
		t.Fatalf("expected 200, got %d", code)
	}
	if hook, _ := sto.Webhook("12826", model.Eventtype_ChannelFollow); hook != nil {
		t.Fatalf("expected the revoked subscription to be unregistered, got %+v", hook)
	}
}

func TestWebhookRevocationUnknownSubscription(t *testing.T) {
	t.Parallel()

	sto := newMemStore()
	app := newWebhookApp(sto)

	code, _ := dispatch(t, app, signedRequest(helix.WebhookEventRevocation, "msg-1", revocationBody))
	if code != 200 {
		t.Fatalf("expected revocation of an unknown subscription to be acked, got %d", code)
	}
}
