package repo

import (
	"errors"

	//lint:ignore ST1001 This library is prepared for dot imports
	. "github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"

	"github.com/streamrewards/streamrewards/gen/sr/public/model"
	//lint:ignore ST1001 This library is prepared for dot imports
	. "github.com/streamrewards/streamrewards/gen/sr/public/table"
	"github.com/streamrewards/streamrewards/utils"
)

// Webhook returns the active subscription of the given type for a
// broadcaster, or nil if there is none. The (user_id, sub_type) unique
// constraint guarantees at most one row.
func (s *Store) Webhook(userID string, subType model.Eventtype) (*model.TwitchWebhooks, error) {
	l := utils.Logger("query")

	var hook model.TwitchWebhooks
	stmt := SELECT(TwitchWebhooks.AllColumns).
		FROM(TwitchWebhooks).
		WHERE(
			TwitchWebhooks.UserID.EQ(String(userID)).
				AND(TwitchWebhooks.SubType.EQ(String(subType.String()))),
		).
		LIMIT(1)

	if err := stmt.Query(s.db, &hook); err != nil {
		if errors.Is(err, qrm.ErrNoRows) {
			return nil, nil
		}
		l.Error().Err(err).Msg("error while executing query")
		return nil, err
	}
	return &hook, nil
}

func (s *Store) Webhooks(userID string) ([]*model.TwitchWebhooks, error) {
	l := utils.Logger("query")

	var hooks []*model.TwitchWebhooks
	stmt := SELECT(TwitchWebhooks.AllColumns).
		FROM(TwitchWebhooks).
		WHERE(TwitchWebhooks.UserID.EQ(String(userID)))

	if err := stmt.Query(s.db, &hooks); err != nil {
		l.Error().Err(err).Msg("error while executing query")
		return nil, err
	}
	return hooks, nil
}

func (s *Store) AddWebhook(hook *model.TwitchWebhooks) error {
	l := utils.Logger("query")

	stmt := TwitchWebhooks.INSERT(TwitchWebhooks.AllColumns).MODEL(hook)

	if _, err := stmt.Exec(s.db); err != nil {
		l.Error().Err(err).Msg("error while executing query")
		return err
	}
	return nil
}

// RemoveWebhook deletes the local record for a platform subscription id. It
// is not an error if no record exists.
func (s *Store) RemoveWebhook(subscriptionID string) error {
	l := utils.Logger("query")

	stmt := TwitchWebhooks.DELETE().
		WHERE(TwitchWebhooks.ID.EQ(String(subscriptionID)))

	if _, err := stmt.Exec(s.db); err != nil {
		l.Error().Err(err).Msg("error while executing query")
		return err
	}
	return nil
}
