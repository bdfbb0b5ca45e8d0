package newrelic

import (
	"context"

	"github.com/newrelic/go-agent/v3/newrelic"
)

// WithSegment executes fn within a New Relic segment when a transaction is in ctx
func WithSegment(ctx context.Context, segmentName string, fn func() error) error {
	txn := newrelic.FromContext(ctx)
	if txn == nil {
		return fn()
	}

	segment := txn.StartSegment(segmentName)
	defer segment.End()

	err := fn()
	if err != nil {
		txn.NoticeError(err)
	}
	return err
}
