package ics

import (
	"context"
	"fmt"
	"time"

	"github.com/palisadeengineering/timeaudit/internal/block"
	"github.com/palisadeengineering/timeaudit/internal/dateutil"
)

// Importer syncs an external calendar feed into the block repository.
type Importer struct {
	fetcher *Fetcher
	repo    block.Repository
}

// NewImporter creates an Importer writing to repo.
func NewImporter(repo block.Repository) *Importer {
	return &Importer{
		fetcher: NewFetcher(),
		repo:    repo,
	}
}

// Sync fetches the feed at url, expands recurrences across the inclusive
// date range, and upserts every occurrence as an external block. Returns
// the number of blocks written. Re-running with the same feed is
// idempotent: existing blocks are updated in place.
func (i *Importer) Sync(ctx context.Context, url string, rangeStart, rangeEnd time.Time) (int, error) {
	body, err := i.fetcher.Fetch(ctx, url)
	if err != nil {
		return 0, err
	}

	events, err := Parse(body)
	if err != nil {
		return 0, err
	}

	occs, err := Expand(events, ExpandConfig{
		RangeStart: dateutil.TruncateToDay(rangeStart),
		RangeEnd:   dateutil.TruncateToDay(rangeEnd).AddDate(0, 0, 1),
	})
	if err != nil {
		return 0, err
	}

	written := 0
	for _, b := range Blocks(occs) {
		if err := i.repo.UpsertExternalBlock(ctx, b); err != nil {
			return written, fmt.Errorf("upserting %q: %w", b.ActivityName, err)
		}
		written++
	}

	return written, nil
}
