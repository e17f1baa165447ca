package repo

import (
	"time"

	"github.com/streamrewards/streamrewards/gen/sr/public/model"
	//lint:ignore ST1001 This library is prepared for dot imports
	. "github.com/streamrewards/streamrewards/gen/sr/public/table"
	"github.com/streamrewards/streamrewards/utils"
)

// RecordNotification appends a message id to the write-once notification
// ledger and reports whether this is the first delivery. The primary key is
// the whole dedup mechanism: the insert is atomic in the database, so
// concurrent redeliveries across dispatcher instances agree on a single
// winner without in-process locking.
//
// A storage failure other than the key conflict is logged and reported as
// already-seen, so a flaky database can never cause double counting.
func (s *Store) RecordNotification(messageID string, receivedAt time.Time) bool {
	l := utils.Logger("query")

	stmt := TwitchWebhookLog.INSERT(TwitchWebhookLog.AllColumns).
		MODEL(&model.TwitchWebhookLog{
			ID:         messageID,
			ReceivedAt: receivedAt,
		})

	if _, err := stmt.Exec(s.db); err != nil {
		if !IsUniqueViolation(err) {
			l.Error().Err(err).Msg("error while executing query")
		}
		return false
	}
	return true
}
