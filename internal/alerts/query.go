// Package alerts holds the filter-driven read model for historical
// alerts. Results are whatever the server returned last: no client-side
// re-sort, no merging across fetches, last-known-good kept on failure.
package alerts

import (
	"context"

	"github.com/Promzy01/logsentinel-frontend/internal/api"
	"github.com/Promzy01/logsentinel-frontend/internal/session"
)

// Fetcher is the slice of the HTTP boundary the query needs.
type Fetcher interface {
	Alerts(ctx context.Context, filter api.AlertFilter, token string) ([]api.AlertRecord, error)
}

type Query struct {
	client Fetcher
	sess   *session.Session

	filter  api.AlertFilter
	records []api.AlertRecord
	fetched bool

	// seq is bumped on every issued fetch; a completion is applied only
	// when it still carries the latest value, so out-of-order responses
	// resolve as last-writer-wins instead of an undefined race.
	seq uint64
}

func New(client Fetcher, sess *session.Session) *Query {
	return &Query{client: client, sess: sess}
}

func (q *Query) Filter() api.AlertFilter     { return q.filter }
func (q *Query) SetFilter(f api.AlertFilter) { q.filter = f }

// Records returns the last successfully fetched set, in server order.
func (q *Query) Records() []api.AlertRecord {
	return append([]api.AlertRecord(nil), q.records...)
}

// Fetched reports whether at least one fetch has completed successfully.
func (q *Query) Fetched() bool { return q.fetched }

// Begin gates a fetch. While the session is anonymous the fetch is
// suppressed entirely (ok=false, no request may be issued). Otherwise it
// returns the sequence token the eventual completion must carry and the
// borrowed bearer token to attach.
func (q *Query) Begin() (seq uint64, token string, ok bool) {
	if !q.sess.Authenticated() {
		return 0, "", false
	}
	q.seq++
	return q.seq, q.sess.Token(), true
}

// Apply installs a completed fetch. Stale completions (a newer fetch was
// issued since) are discarded. On error the held records stay untouched
// and the error is returned for display.
func (q *Query) Apply(seq uint64, records []api.AlertRecord, err error) (bool, error) {
	if seq != q.seq {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	q.records = records
	q.fetched = true
	return true, nil
}

// Fetch runs one gated fetch to completion for blocking callers. It is a
// no-op returning (false, nil) while anonymous.
func (q *Query) Fetch(ctx context.Context) (bool, error) {
	seq, token, ok := q.Begin()
	if !ok {
		return false, nil
	}
	records, err := q.client.Alerts(ctx, q.filter, token)
	return q.Apply(seq, records, err)
}
