package repo

import (
	//lint:ignore ST1001 This library is prepared for dot imports
	. "github.com/go-jet/jet/v2/postgres"

	"github.com/streamrewards/streamrewards/gen/sr/public/model"
	//lint:ignore ST1001 This library is prepared for dot imports
	. "github.com/streamrewards/streamrewards/gen/sr/public/table"
	"github.com/streamrewards/streamrewards/utils"
)

func (s *Store) AddReward(rw *model.UserRewards) (*model.UserRewards, error) {
	l := utils.Logger("query")

	var created model.UserRewards
	stmt := UserRewards.INSERT(UserRewards.MutableColumns).
		MODEL(rw).
		RETURNING(UserRewards.AllColumns)

	if err := stmt.Query(s.db, &created); err != nil {
		l.Error().Err(err).Msg("error while executing query")
		return nil, err
	}
	return &created, nil
}

// Rewards lists a broadcaster's reward tiers ordered by sub count, the order
// the next-milestone lookup expects.
func (s *Store) Rewards(userID string) ([]*model.UserRewards, error) {
	l := utils.Logger("query")

	var rws []*model.UserRewards
	stmt := SELECT(UserRewards.AllColumns).
		FROM(UserRewards).
		WHERE(UserRewards.UserID.EQ(String(userID))).
		ORDER_BY(UserRewards.SubCount.ASC())

	if err := stmt.Query(s.db, &rws); err != nil {
		l.Error().Err(err).Msg("error while executing query")
		return nil, err
	}
	return rws, nil
}

func (s *Store) RemoveReward(userID string, rewardID int64) error {
	l := utils.Logger("query")

	stmt := UserRewards.DELETE().
		WHERE(
			UserRewards.UserID.EQ(String(userID)).
				AND(UserRewards.ID.EQ(Int(rewardID))),
		)

	if _, err := stmt.Exec(s.db); err != nil {
		l.Error().Err(err).Msg("error while executing query")
		return err
	}
	return nil
}
