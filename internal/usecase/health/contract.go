package health

import "context"

// CatalogCounter reports how many drug records are loaded.
type CatalogCounter interface {
	Len() int
}

// Pinger checks availability of an external dependency.
type Pinger interface {
	Ping(ctx context.Context) error
}
