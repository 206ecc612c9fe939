package source

import "context"

// Fetcher retrieves one raw dump.
type Fetcher interface {
	Fetch(ctx context.Context) (string, error)
}

var _ Fetcher = (*Client)(nil)
