package block

import (
	"context"
	"time"
)

// Repository defines the storage interface for time blocks and tags.
type Repository interface {
	// CreateBlock adds a new block to the repository.
	// Returns ErrTimeBlockOverlap if the block conflicts with an existing one.
	CreateBlock(ctx context.Context, b *TimeBlock) error

	// GetBlock retrieves a block by ID. Returns nil, nil if not found.
	GetBlock(ctx context.Context, id string) (*TimeBlock, error)

	// ListBlocksByDateRange returns all blocks scheduled within the date
	// range (inclusive), ordered by date then start time.
	ListBlocksByDateRange(ctx context.Context, start, end time.Time) ([]*TimeBlock, error)

	// MoveBlock reschedules a block to a new date and time window.
	// The duration must be preserved by the caller. Returns
	// ErrTimeBlockOverlap if the new position conflicts with another block.
	MoveBlock(ctx context.Context, id string, newDate time.Time, newStart, newEnd string) error

	// ResizeBlock changes only the end time of a block.
	// Returns ErrTimeBlockOverlap if extending into another block.
	ResizeBlock(ctx context.Context, id string, newEnd string) error

	// UpdateBlockDetails changes a block's activity name, quadrant, and
	// energy rating without touching its schedule.
	UpdateBlockDetails(ctx context.Context, id, name string, q Quadrant, e Energy) error

	// DeleteBlock removes a block permanently.
	DeleteBlock(ctx context.Context, id string) error

	// UpsertExternalBlock creates or updates a block keyed by its
	// ExternalEventID. Used by calendar import so re-syncing is idempotent.
	UpsertExternalBlock(ctx context.Context, b *TimeBlock) error

	// CreateTag adds a new tag.
	CreateTag(ctx context.Context, t *Tag) error

	// GetTag retrieves a tag by ID. Returns ErrTagNotFound if missing.
	GetTag(ctx context.Context, id string) (*Tag, error)

	// ListTags returns all tags ordered by name.
	ListTags(ctx context.Context) ([]*Tag, error)

	// Close releases any resources held by the repository.
	Close() error
}
