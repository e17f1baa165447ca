package helix

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/oauth2/twitch"
)

// Upstream calls never hang: every request runs under this client timeout
// and a timeout is reported as a plain error to the caller.
const RequestTimeout = 10 * time.Second

var ErrNoCredentials = errors.New("helix: no valid app credentials")

type ClientCreds struct {
	ClientID, ClientSecret string
}

/// Helix is a client for the authenticated Twitch Helix API: EventSub
// subscription management, user lookup and token validation.
type Helix struct {
	ctx   context.Context
	creds ClientCreds

	APIUrl           string
	AuthURL          string
	EventSubEndpoint string

	// c injects the app token (see Exchange), vc is a plain client for
	// endpoints authenticated with a user token instead.
	c  *http.Client
	vc *http.Client
	ts oauth2.TokenSource
}

type Condition struct {
	BroadcasterUserID string `json:"broadcaster_user_id"`
}

type Transport struct {
	Method   string `json:"method"`
	Callback string `json:"callback"`
	Secret   string `json:"secret,omitempty"`
}

type Subscription struct {
	Type      string     `json:"type"`
	Version   string     `json:"version"`
	Condition *Condition `json:"condition"`
	Transport *Transport `json:"transport"`
}

// CreatedSubscription is the platform-assigned record returned by a
// successful create call.
type CreatedSubscription struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

type User struct {
	ID              string `json:"id"`
	Login           string `json:"login"`
	DisplayName     string `json:"display_name"`
	ProfileImageURL string `json:"profile_image_url"`
}

const EstimatedSubscriptionJSONSize = 350

// CreateEventSubSubscription registers a webhook subscription upstream and
// returns the platform-assigned record. Any transport error or non-2xx
// response fails.
func (hx *Helix) CreateEventSubSubscription(sub *Subscription) (*CreatedSubscription, error) {
	buf := bytes.NewBuffer(make([]byte, 0, EstimatedSubscriptionJSONSize))
	if err := json.NewEncoder(buf).Encode(sub); err != nil {
		return nil, err
	}
	req, err := http.NewRequest(
		"POST",
		hx.APIUrl+hx.EventSubEndpoint+"/subscriptions",
		buf,
	)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Client-Id", hx.creds.ClientID)

	resp, err := hx.c.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("helix: expected 2xx response, got %d", resp.StatusCode)
	}

	var body struct {
		Data []*CreatedSubscription `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}
	if len(body.Data) == 0 {
		return nil, errors.New("helix: create subscription response with empty data")
	}
	return body.Data[0], nil
}

// RemoveEventSubSubscription deletes the given subscription upstream.
func (hx *Helix) RemoveEventSubSubscription(subscriptionID string) error {
	req, err := http.NewRequest(
		"DELETE",
		hx.APIUrl+hx.EventSubEndpoint+"/subscriptions?id="+url.QueryEscape(subscriptionID),
		nil,
	)
	if err != nil {
		return err
	}
	req.Header.Set("Client-Id", hx.creds.ClientID)

	resp, err := hx.c.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("helix: expected 2xx response, got %d", resp.StatusCode)
	}
	return nil
}

// UserByLogin resolves a Twitch user by login name. A nil user with nil
// error means the login is unknown upstream.
func (hx *Helix) UserByLogin(login string) (*User, error) {
	req, err := http.NewRequest(
		"GET",
		hx.APIUrl+"/users?login="+url.QueryEscape(login),
		nil,
	)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Client-Id", hx.creds.ClientID)

	resp, err := hx.c.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("helix: expected 2xx response, got %d", resp.StatusCode)
	}

	var body struct {
		Data []*User `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}
	if len(body.Data) == 0 {
		return nil, nil
	}
	return body.Data[0], nil
}

// ValidateUserToken probes the OAuth validate endpoint with a user token,
// reporting whether the token is still good for upstream calls.
func (hx *Helix) ValidateUserToken(token string) bool {
	req, err := http.NewRequest("GET", hx.AuthURL+"/validate", nil)
	if err != nil {
		return false
	}
	req.Header.Set("Authorization", "OAuth "+token)

	resp, err := hx.vc.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false
	}

	var body struct {
		ExpiresIn int `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return false
	}
	return body.ExpiresIn > 0
}

// Credentials reports whether a valid app credential is available, fetching
// or refreshing the token if needed.
func (hx *Helix) Credentials() error {
	if hx.ts == nil {
		if hx.c != nil {
			// no token source but a preconfigured client, e.g. in tests
			return nil
		}
		return ErrNoCredentials
	}
	if _, err := hx.ts.Token(); err != nil {
		return fmt.Errorf("%w: %v", ErrNoCredentials, err)
	}
	return nil
}

// Exchange uses the client credentials to get a new http client with the
// corresponding token source, refreshing the token when needed. This http
// client injects the required Authorization header to the requests and will be
// used by the following requests.
//
// Must be used before using authenticated endpoints.
func (hx *Helix) Exchange() {
	o2 := &clientcredentials.Config{
		ClientID:     hx.creds.ClientID,
		ClientSecret: hx.creds.ClientSecret,
		TokenURL:     twitch.Endpoint.TokenURL,
	}
	hx.ts = o2.TokenSource(hx.ctx)
	hx.c = o2.Client(hx.ctx)
	hx.c.Timeout = RequestTimeout
}

// NewWithoutExchange instantiates a new Helix client but without exchanging
// credentials for a token source. Useful for testing.
//
// Use New() if your helix client will be using authenticated endpoints.
func NewWithoutExchange(creds ClientCreds) *Helix {
	return &Helix{
		creds:            creds,
		ctx:              context.Background(),
		APIUrl:           "https://api.twitch.tv/helix",
		AuthURL:          "https://id.twitch.tv/oauth2",
		EventSubEndpoint: "/eventsub",
		vc:               &http.Client{Timeout: RequestTimeout},
	}
}

func New(creds ClientCreds) *Helix {
	hx := NewWithoutExchange(creds)
	hx.Exchange()
	return hx
}
