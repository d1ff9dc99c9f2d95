package domain

import "context"

// ReaderPort exposes read access to a loaded catalog. Implementations return
// records in catalog order
type ReaderPort interface {
	Works(ctx context.Context) ([]Work, error)
	Editions(ctx context.Context) ([]Edition, error)
	Work(ctx context.Context, id string) (Work, error)
	Edition(ctx context.Context, isbn string) (Edition, error)
}

// SearchPort is the search surface offered to callers (the CLI)
type SearchPort interface {
	SearchWorks(ctx context.Context, query string) ([]Work, error)
	SearchEditions(ctx context.Context, query string) ([]Edition, error)
	WorksByAuthor(ctx context.Context, author string) ([]Work, error)
	WorksBySeries(ctx context.Context, series string) ([]Work, error)
	EditionsOfWork(ctx context.Context, workID string) ([]Edition, error)
	Stats(ctx context.Context) (Stats, error)
}
