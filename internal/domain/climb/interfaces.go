package climb

import "context"

// LogRepository provides persistence for climb logs.
type LogRepository interface {
	Create(ctx context.Context, log *Log) error
	Get(ctx context.Context, id string) (*Log, error)
	Update(ctx context.Context, log *Log) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, opts ListOptions) (*ListResult, error)
}

// ImageRepository stores photos attached to climb logs.
type ImageRepository interface {
	Put(ctx context.Context, img *Image) error
	Get(ctx context.Context, logID string) (*Image, error)
	Delete(ctx context.Context, logID string) error
}

// StatsRepository computes aggregate statistics over the collection.
type StatsRepository interface {
	Stats(ctx context.Context) (*Stats, error)
}
