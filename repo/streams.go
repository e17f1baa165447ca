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

// InsertStream opens a live stream row. If the broadcaster is already live
// the partial unique index rejects the insert; callers detect that with
// IsUniqueViolation.
func (s *Store) InsertStream(st *model.LiveStreams) error {
	l := utils.Logger("query")

	stmt := LiveStreams.INSERT(LiveStreams.AllColumns).MODEL(st)

	if _, err := stmt.Exec(s.db); err != nil {
		if !IsUniqueViolation(err) {
			l.Error().Err(err).Msg("error while executing query")
		}
		return err
	}
	return nil
}

// CloseStreams marks the open stream of a broadcaster complete. The
// is_complete predicate makes concurrent closes converge without locks;
// closing with no open stream updates zero rows and is not an error.
func (s *Store) CloseStreams(userID string) error {
	l := utils.Logger("query")

	stmt := LiveStreams.UPDATE(LiveStreams.IsComplete).
		SET(Bool(true)).
		WHERE(
			LiveStreams.UserID.EQ(String(userID)).
				AND(LiveStreams.IsComplete.EQ(Bool(false))),
		)

	if _, err := stmt.Exec(s.db); err != nil {
		l.Error().Err(err).Msg("error while executing query")
		return err
	}
	return nil
}

func (s *Store) CurrentStream(userID string) (*model.LiveStreams, error) {
	l := utils.Logger("query")

	var st model.LiveStreams
	stmt := SELECT(LiveStreams.AllColumns).
		FROM(LiveStreams).
		WHERE(
			LiveStreams.UserID.EQ(String(userID)).
				AND(LiveStreams.IsComplete.EQ(Bool(false))),
		).
		LIMIT(1)

	if err := stmt.Query(s.db, &st); err != nil {
		if errors.Is(err, qrm.ErrNoRows) {
			return nil, nil
		}
		l.Error().Err(err).Msg("error while executing query")
		return nil, err
	}
	return &st, nil
}
