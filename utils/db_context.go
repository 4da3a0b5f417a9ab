package utils

import (
	"context"
	"time"
)

// Query deadline tiers for the quotation store. Health probes and list
// lookups get the fast tier, the joined quotation fetch the default tier,
// and the missing-quotation diagnostics chain the slow tier since it runs
// several probe queries in sequence.
const (
	FastQueryTimeout    = 10 * time.Second
	DefaultQueryTimeout = 30 * time.Second
	SlowQueryTimeout    = 60 * time.Second
)

// GetQueryContext derives a query context with the given deadline. A nil
// parent falls back to context.Background so repository helpers can run
// outside a request.
func GetQueryContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, timeout)
}

// GetFastQueryContext bounds health probes and simple lookups.
func GetFastQueryContext(parent context.Context) (context.Context, context.CancelFunc) {
	return GetQueryContext(parent, FastQueryTimeout)
}

// GetDefaultQueryContext bounds the joined header and line-item fetch.
func GetDefaultQueryContext(parent context.Context) (context.Context, context.CancelFunc) {
	return GetQueryContext(parent, DefaultQueryTimeout)
}

// GetSlowQueryContext bounds the diagnostics probe chain.
func GetSlowQueryContext(parent context.Context) (context.Context, context.CancelFunc) {
	return GetQueryContext(parent, SlowQueryTimeout)
}
