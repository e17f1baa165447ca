package server

import (
	"encoding/json"
	"errors"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/streamrewards/streamrewards/helix"
)

const (
	// CookieToken holds the user OAuth token, json-encoded as {"t": token}.
	CookieToken = "__twtk"
	// CookieUser holds the json-encoded twitch user set at login.
	CookieUser = "__twRw"
)

var ErrUnauthorized = errors.New("server: unauthorized")

// AuthedUser is the identity attached to an authenticated API request.
type AuthedUser struct {
	ID              string `json:"id"`
	Login           string `json:"login"`
	DisplayName     string `json:"displayName"`
	ProfileImageURL string `json:"profileImageUrl"`
	Token           string `json:"-"`
}

// Identity resolves the user behind a request. Implementations return
// ErrUnauthorized when the request carries no usable identity.
type Identity interface {
	User(c *fiber.Ctx) (*AuthedUser, error)
}

// CookieIdentity reads the identity cookies set at login and probes the token
// against the Twitch OAuth validate endpoint on every call.
type CookieIdentity struct {
	hx TokenValidator
}

// TokenValidator reports whether a user OAuth token is still live.
type TokenValidator interface {
	ValidateUserToken(token string) bool
}

func NewCookieIdentity(hx TokenValidator) *CookieIdentity {
	return &CookieIdentity{hx: hx}
}

func (ci *CookieIdentity) User(c *fiber.Ctx) (*AuthedUser, error) {
	rawToken := c.Cookies(CookieToken)
	rawUser := c.Cookies(CookieUser)
	if rawToken == "" || rawUser == "" {
		return nil, ErrUnauthorized
	}

	// cookies are percent-encoded json
	rawToken, err := url.QueryUnescape(rawToken)
	if err != nil {
		return nil, ErrUnauthorized
	}
	rawUser, err = url.QueryUnescape(rawUser)
	if err != nil {
		return nil, ErrUnauthorized
	}

	var wrap struct {
		T string `json:"t"`
	}
	if err := json.Unmarshal([]byte(rawToken), &wrap); err != nil || wrap.T == "" {
		return nil, ErrUnauthorized
	}

	usr := new(AuthedUser)
	if err := json.Unmarshal([]byte(rawUser), usr); err != nil || usr.ID == "" {
		return nil, ErrUnauthorized
	}
	usr.Token = wrap.T

	if !ci.hx.ValidateUserToken(wrap.T) {
		return nil, ErrUnauthorized
	}
	return usr, nil
}

var _ TokenValidator = (*helix.Helix)(nil)
