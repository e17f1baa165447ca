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

// UpsertUser inserts a broadcaster on first authentication; on later logins
// only the profile fields are refreshed.
func (s *Store) UpsertUser(usr *model.Users) error {
	l := utils.Logger("query")

	stmt := Users.INSERT(Users.AllColumns).
		MODEL(usr).
		ON_CONFLICT(Users.ID).
		DO_UPDATE(SET(
			Users.Login.SET(Users.EXCLUDED.Login),
			Users.ProfileImgURL.SET(Users.EXCLUDED.ProfileImgURL),
		))

	if _, err := stmt.Exec(s.db); err != nil {
		l.Error().Err(err).Msg("error while executing query")
		return err
	}
	return nil
}

func (s *Store) UserByID(id string) (*model.Users, error) {
	l := utils.Logger("query")

	var usr model.Users
	stmt := SELECT(Users.AllColumns).
		FROM(Users).
		WHERE(Users.ID.EQ(String(id))).
		LIMIT(1)

	if err := stmt.Query(s.db, &usr); err != nil {
		if errors.Is(err, qrm.ErrNoRows) {
			return nil, nil
		}
		l.Error().Err(err).Msg("error while executing query")
		return nil, err
	}
	return &usr, nil
}

func (s *Store) UserByLogin(login string) (*model.Users, error) {
	l := utils.Logger("query")

	var usr model.Users
	stmt := SELECT(Users.AllColumns).
		FROM(Users).
		WHERE(Users.Login.EQ(String(login))).
		LIMIT(1)

	if err := stmt.Query(s.db, &usr); err != nil {
		if errors.Is(err, qrm.ErrNoRows) {
			return nil, nil
		}
		l.Error().Err(err).Msg("error while executing query")
		return nil, err
	}
	return &usr, nil
}
