package repo

import (
	"errors"

	"github.com/lib/pq"
)

// IsUniqueViolation reports whether err is a postgres unique-constraint
// violation. A few call sites rely on this as a semantic answer rather than
// a failure: the dedup ledger ("already seen") and the open-stream insert
// ("already live").
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation"
}
