// Package server exposes the public HTTP surface: the webhook callback
// endpoint plus the json API used by the site and the chat bot.
package server

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	l "github.com/rs/zerolog/log"

	"github.com/streamrewards/streamrewards/gen/sr/public/model"
	"github.com/streamrewards/streamrewards/helix"
	"github.com/streamrewards/streamrewards/rewards"
	"github.com/streamrewards/streamrewards/tracker"
	"github.com/streamrewards/streamrewards/utils"
)

// UserStore persists broadcaster accounts.
type UserStore interface {
	UpsertUser(usr *model.Users) error
	UserByLogin(login string) (*model.Users, error)
}

// RewardStore persists the reward tiers a broadcaster configured.
type RewardStore interface {
	AddReward(rw *model.UserRewards) (*model.UserRewards, error)
	Rewards(userID string) ([]*model.UserRewards, error)
	RemoveReward(userID string, rewardID int64) error
}

// Directory resolves arbitrary twitch users upstream, used by the resub
// chat command for users that never signed in here.
type Directory interface {
	Credentials() error
	UserByLogin(login string) (*helix.User, error)
}

type ServerOpts struct {
	Port            string
	WebhookEndpoint string

	Identity   Identity
	Users      UserStore
	Registry   tracker.Registry
	Rewards    RewardStore
	Tracker    *tracker.Tracker
	Reconciler *tracker.Reconciler
	Webhooks   *tracker.WebhookHandler
	Directory  Directory
}

type Server struct {
	opts *ServerOpts
	sv   *fiber.App
}

func New(opts *ServerOpts) *Server {
	s := &Server{
		opts: opts,
		sv:   fiber.New(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.sv.Post(s.opts.WebhookEndpoint, s.opts.Webhooks.Handler())

	s.sv.Post("/api/webhooks/subscribe", s.subscribe)
	s.sv.Post("/api/webhooks/connect", s.connect)
	s.sv.Get("/api/webhooks/list", s.listWebhooks)

	s.sv.Get("/api/user/stream", s.currentStream)
	s.sv.Get("/api/user/metrics", s.metrics)

	s.sv.Get("/api/rewards/list", s.listRewards)
	s.sv.Post("/api/rewards/add", s.addReward)
	s.sv.Post("/api/rewards/remove", s.removeReward)

	s.sv.Get("/webhooks/resub", s.resub)
}

func (s *Server) Start() error {
	l := l.With().
		Str("context", "server").
		Logger()

	s.sv.Hooks().OnListen(func() error {
		l.Info().Msgf("-> listening on %s", s.opts.Port)
		return nil
	})
	return s.sv.Listen(":" + s.opts.Port)
}

func (s *Server) subscribe(c *fiber.Ctx) error {
	usr, err := s.opts.Identity.User(c)
	if err != nil {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	var body struct {
		SubType string `json:"sub_type"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}
	subType, ok := parseEventType(body.SubType)
	if !ok {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	switch s.opts.Reconciler.EnsureSubscription(usr.ID, subType) {
	case tracker.StatusRejected:
		return c.SendStatus(fiber.StatusInternalServerError)
	case tracker.StatusDuplicate:
		return c.SendStatus(fiber.StatusConflict)
	}
	return nil
}

func (s *Server) connect(c *fiber.Ctx) error {
	usr, err := s.opts.Identity.User(c)
	if err != nil {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	if err := s.opts.Users.UpsertUser(&model.Users{
		ID:            usr.ID,
		Login:         usr.Login,
		ProfileImgURL: utils.StrPtr(usr.ProfileImageURL),
	}); err != nil {
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	if !s.opts.Reconciler.EnsureStreamLifecycleSubscriptions(usr.ID) {
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	return nil
}

func (s *Server) listWebhooks(c *fiber.Ctx) error {
	if _, err := s.opts.Identity.User(c); err != nil {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	id := c.Query("id")
	if id == "" {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	hooks, err := s.opts.Registry.Webhooks(id)
	if err != nil {
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	if hooks == nil {
		hooks = []*model.TwitchWebhooks{}
	}
	return c.JSON(hooks)
}

func (s *Server) currentStream(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		return c.SendStatus(fiber.StatusBadRequest)
	}
	return c.JSON(s.opts.Tracker.CurrentSession(id))
}

func (s *Server) metrics(c *fiber.Ctx) error {
	userID := c.Query("userId")
	streamID := c.Query("streamId")
	rawType := c.Query("eventType")
	if userID == "" || streamID == "" || rawType == "" {
		return c.SendStatus(fiber.StatusBadRequest)
	}
	eventType, ok := parseEventType(rawType)
	if !ok {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	stats := s.opts.Tracker.EventStats(userID, streamID, eventType)
	return c.JSON(fiber.Map{
		"label":        rewards.FriendlyName(eventType),
		"count":        stats.Count,
		"latest_event": stats.LatestEvent,
	})
}

func (s *Server) listRewards(c *fiber.Ctx) error {
	login := c.Query("login")
	if login == "" {
		return c.SendStatus(fiber.StatusNotFound)
	}

	usr, err := s.opts.Users.UserByLogin(login)
	if err != nil {
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	if usr == nil {
		return c.SendStatus(fiber.StatusNotFound)
	}

	tiers, err := s.opts.Rewards.Rewards(usr.ID)
	if err != nil {
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	// while live, rank the tiers against the running subscribe count of the
	// open session
	var count int32
	if st := s.opts.Tracker.CurrentSession(usr.ID); st != nil {
		stats := s.opts.Tracker.EventStats(usr.ID, st.ID, model.Eventtype_ChannelSubscribe)
		count = int32(stats.Count)
	}
	next, upcoming := rewards.Next(count, tiers)

	if tiers == nil {
		tiers = []*model.UserRewards{}
	}
	return c.JSON(fiber.Map{
		"rewards":  tiers,
		"next":     next,
		"upcoming": upcoming,
	})
}

func (s *Server) addReward(c *fiber.Ctx) error {
	var body struct {
		SubCount *int32 `json:"subCount"`
		Reward   string `json:"reward"`
	}
	if err := c.BodyParser(&body); err != nil || body.SubCount == nil || body.Reward == "" {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	usr, err := s.opts.Identity.User(c)
	if err != nil {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	created, err := s.opts.Rewards.AddReward(&model.UserRewards{
		UserID:   usr.ID,
		SubCount: *body.SubCount,
		Reward:   body.Reward,
	})
	if err != nil {
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	return c.JSON(created)
}

func (s *Server) removeReward(c *fiber.Ctx) error {
	usr, err := s.opts.Identity.User(c)
	if err != nil {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	id, err := strconv.ParseInt(c.Query("id"), 10, 64)
	if err != nil {
		return c.SendStatus(fiber.StatusNotFound)
	}

	if err := s.opts.Rewards.RemoveReward(usr.ID, id); err != nil {
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	return nil
}

// resub credits a manual resubscription reported from chat as a subscribe
// event against the broadcaster's open session. Replies are plain text meant
// to be echoed verbatim by a chat bot.
func (s *Server) resub(c *fiber.Ctx) error {
	broadcasterLogin := c.Query("u")
	resubLogin := c.Query("s")

	if broadcasterLogin == "" || resubLogin == "" ||
		strings.EqualFold(broadcasterLogin, resubLogin) {
		return c.SendString("NotLikeThis Hmm, that doesn't look right")
	}

	if err := s.opts.Directory.Credentials(); err != nil {
		return c.SendString("FailFish Something went wrong. Try again pls. FailFish")
	}

	broadcaster, err := s.opts.Users.UserByLogin(broadcasterLogin)
	if err != nil || broadcaster == nil {
		return c.SendString(fmt.Sprintf("FailFish %s doesn't use stream-rewards! FailFish", broadcasterLogin))
	}

	if s.opts.Tracker.CurrentSession(broadcaster.ID) == nil {
		return c.SendString(fmt.Sprintf("NotLikeThis %s isn't even streaming!", broadcaster.Login))
	}

	hook, err := s.opts.Registry.Webhook(broadcaster.ID, model.Eventtype_ChannelSubscribe)
	if err != nil || hook == nil {
		return c.SendString(fmt.Sprintf("FailFish %s I just can't do that. FailFish", broadcasterLogin))
	}

	resubUser, err := s.opts.Directory.UserByLogin(resubLogin)
	if err != nil || resubUser == nil {
		return c.SendString(fmt.Sprintf("Who's this CoolCat %s you speak of. FailFish", resubLogin))
	}

	ok := s.opts.Tracker.RecordEvent(
		broadcaster.ID,
		resubUser.ID,
		resubUser.Login,
		resubUser.DisplayName,
		model.Eventtype_ChannelSubscribe,
	)
	if !ok {
		return c.SendString("NotLikeThis It's our fault that it didn't work.")
	}

	return c.SendString(fmt.Sprintf("TwitchLit %s thank you! Your resub counts toward our rewards!", resubLogin))
}

func parseEventType(s string) (model.Eventtype, bool) {
	et := model.Eventtype(s)
	switch et {
	case model.Eventtype_StreamOnline,
		model.Eventtype_StreamOffline,
		model.Eventtype_ChannelFollow,
		model.Eventtype_ChannelSubscribe:
		return et, true
	}
	return "", false
}
