package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// IndexStatus reports whether the search index snapshot is installed.
type IndexStatus interface {
	IsLoaded() bool
}
