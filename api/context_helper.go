package api

import (
	"context"
	"time"
)

// QueryTimeout bounds every database round trip the handlers make
const QueryTimeout = 10 * time.Second

// WithQueryTimeout derives a context capped at QueryTimeout. A nil parent
// starts from Background, which index bootstrap uses before any request
// context exists.
func WithQueryTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, QueryTimeout)
}

