package pipeline

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/dmelo/ticketstats/internal/model"
	"github.com/dmelo/ticketstats/internal/normalize"
)

// Session owns the canonical dataset for one analysis run and the cache that
// backs repeated loads of the same file set. The caller holds the Session;
// the pipeline itself keeps no ambient state.
type Session struct {
	log     zerolog.Logger
	schema  *model.Schema
	cache   *Cache
	dataset *model.Dataset
	summary *model.LoadSummary
}

// NewSession creates a session with an empty cache.
func NewSession(log zerolog.Logger, schema *model.Schema) *Session {
	return &Session{log: log, schema: schema, cache: NewCache()}
}

// Load produces the canonical dataset for the given file set, consulting the
// content-addressed cache first. A cache hit returns the previously
// normalized batch without re-parsing; the summary is marked FromCache.
// Loading replaces whatever dataset the session held before.
func (s *Session) Load(ctx context.Context, paths []string) (*model.Dataset, *model.LoadSummary, error) {
	key := batchKey(paths)

	if key != "" {
		if ds, sum, ok := s.cache.get(key); ok {
			s.log.Debug().Str("batch_key", key).Msg("batch cache hit")
			cached := *sum
			cached.FromCache = true
			s.dataset, s.summary = ds, &cached
			return ds, &cached, nil
		}
	}

	ds, sum, err := Load(ctx, s.log, s.schema, paths)
	if err != nil {
		s.dataset, s.summary = nil, sum
		return nil, sum, err
	}
	sum.BatchKey = key
	if key != "" {
		s.cache.put(key, ds, sum)
	}
	s.dataset, s.summary = ds, sum
	return ds, sum, nil
}

// Dataset returns the currently loaded dataset, or nil before a successful Load.
func (s *Session) Dataset() *model.Dataset {
	return s.dataset
}

// Summary returns the summary of the most recent Load attempt.
func (s *Session) Summary() *model.LoadSummary {
	return s.summary
}

// Invalidate discards the loaded dataset and every cached batch. The next
// Load re-parses from scratch.
func (s *Session) Invalidate() {
	s.cache.Clear()
	s.dataset, s.summary = nil, nil
}

// batchKey hashes the input file set. An unreadable file yields an empty key,
// disabling the cache for that load; the pipeline then surfaces the file's
// problem as a normal diagnostic.
func batchKey(paths []string) string {
	hashes := make([]string, 0, len(paths))
	for _, p := range paths {
		h, err := normalize.FileHash(p)
		if err != nil {
			return ""
		}
		hashes = append(hashes, h)
	}
	return normalize.BatchKey(hashes)
}
