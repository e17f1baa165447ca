package repo

import (
	//lint:ignore ST1001 This library is prepared for dot imports
	. "github.com/go-jet/jet/v2/postgres"

	"github.com/streamrewards/streamrewards/gen/sr/public/model"
	//lint:ignore ST1001 This library is prepared for dot imports
	. "github.com/streamrewards/streamrewards/gen/sr/public/table"
	"github.com/streamrewards/streamrewards/utils"
)

func (s *Store) InsertEvent(evt *model.TwitchUserEvents) error {
	l := utils.Logger("query")

	stmt := TwitchUserEvents.INSERT(TwitchUserEvents.MutableColumns).MODEL(evt)

	if _, err := stmt.Exec(s.db); err != nil {
		l.Error().Err(err).Msg("error while executing query")
		return err
	}
	return nil
}

// EventsFor returns the events of one type for a stream, oldest first.
func (s *Store) EventsFor(userID, streamID string, eventType model.Eventtype) ([]*model.TwitchUserEvents, error) {
	l := utils.Logger("query")

	var evts []*model.TwitchUserEvents
	stmt := SELECT(TwitchUserEvents.AllColumns).
		FROM(TwitchUserEvents).
		WHERE(
			TwitchUserEvents.UserID.EQ(String(userID)).
				AND(TwitchUserEvents.StreamID.EQ(String(streamID))).
				AND(TwitchUserEvents.EventType.EQ(String(eventType.String()))),
		).
		ORDER_BY(TwitchUserEvents.CreatedAt.ASC())

	if err := stmt.Query(s.db, &evts); err != nil {
		l.Error().Err(err).Msg("error while executing query")
		return nil, err
	}
	return evts, nil
}
