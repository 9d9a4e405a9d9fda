package dataset

import (
	"context"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/cinegraph/cinegraph/errors"
	"github.com/cinegraph/cinegraph/internal/httpclient"
)

const fetchTimeout = 30 * time.Second

// Loader resolves a dataset from the configured sources in order: the
// primary URL, the bundled fallback file, then the local fetch cache.
// There are no retries beyond that sequence; every failure is terminal for
// the load attempt and requires a new user action.
type Loader struct {
	client       *httpclient.Client
	primaryURL   string
	fallbackPath string
	cache        *Cache
	logger       *zap.SugaredLogger
}

// NewLoader creates a loader. Any of primaryURL, fallbackPath, and cache may
// be empty/nil; sources that are not configured are skipped.
func NewLoader(primaryURL, fallbackPath string, cache *Cache, logger *zap.SugaredLogger) *Loader {
	return &Loader{
		client:       httpclient.New(fetchTimeout),
		primaryURL:   primaryURL,
		fallbackPath: fallbackPath,
		cache:        cache,
		logger:       logger.Named("dataset.loader"),
	}
}

// Load attempts each configured source in order and returns the first
// dataset that decodes. When all sources fail the returned error wraps
// ErrNoData; the caller keeps its previous state and surfaces the message.
func (l *Loader) Load(ctx context.Context) (*Dataset, error) {
	if l.primaryURL != "" {
		ds, err := l.fetch(ctx, l.primaryURL)
		if err == nil {
			l.logger.Infow("Dataset loaded from primary source",
				"source", l.primaryURL,
				"movies", len(ds.Movies),
			)
			l.storeInCache(ds)
			return ds, nil
		}
		l.logger.Warnw("Primary source failed, trying fallback", "error", err)
	}

	if l.fallbackPath != "" {
		ds, err := l.LoadFile(l.fallbackPath)
		if err == nil {
			l.logger.Infow("Dataset loaded from fallback file",
				"path", l.fallbackPath,
				"movies", len(ds.Movies),
			)
			return ds, nil
		}
		l.logger.Warnw("Fallback file failed", "error", err)
	}

	if l.cache != nil {
		ds, err := l.cache.Latest()
		if err == nil {
			l.logger.Infow("Dataset loaded from fetch cache",
				"source", ds.Source,
				"fetched_at", ds.FetchedAt,
				"movies", len(ds.Movies),
			)
			return ds, nil
		}
		l.logger.Debugw("Fetch cache empty", "error", err)
	}

	return nil, errors.WithHint(
		errors.Wrap(errors.ErrNoData, "all dataset sources failed"),
		"check the dataset URL or select a local file",
	)
}

// LoadFile reads a user-selected file and parses it as UTF-8 JSON. A read or
// parse failure wraps ErrInvalidDataset, distinct from the no-data case.
func (l *Loader) LoadFile(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapInvalidDataset(err, "failed to read dataset file")
	}
	return Parse(data)
}

func (l *Loader) fetch(ctx context.Context, url string) (*Dataset, error) {
	body, err := l.client.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	return Parse(body)
}

// storeInCache records a successful remote fetch. Cache failures are logged,
// never surfaced; the cache is an optimization, not a source of truth.
func (l *Loader) storeInCache(ds *Dataset) {
	if l.cache == nil {
		return
	}
	if err := l.cache.Store(ds); err != nil {
		l.logger.Warnw("Failed to cache dataset", "error", err)
	}
}
