// Copyright 2026 Opporank Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package opporank

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/opporank/opporank/ai"
	"github.com/opporank/opporank/ai/openai"
	"github.com/opporank/opporank/build"
	"github.com/opporank/opporank/catalog"
	"github.com/opporank/opporank/core"
	"github.com/opporank/opporank/index"
	"github.com/opporank/opporank/recommend"
	"github.com/opporank/opporank/storage"
	"github.com/opporank/opporank/storage/badger"
)

// Engine is the composition root: it owns the posting database, the
// embedding provider, and the artifact locations, and hands out the
// seeding, building, and serving operations over them.
type Engine struct {
	config   *Config
	backend  *badger.Backend
	repo     storage.PostingRepository
	embedder ai.Embedder
	logger   *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	embedder ai.Embedder
	inMemory bool
}

// WithEmbedder substitutes the embedding provider. Default is the
// OpenAI-compatible provider built from the configuration.
func WithEmbedder(embedder ai.Embedder) EngineOption {
	return func(o *engineOptions) {
		o.embedder = embedder
	}
}

// WithInMemoryStorage keeps the posting database in memory. Used by tests
// and throwaway runs.
func WithInMemoryStorage() EngineOption {
	return func(o *engineOptions) {
		o.inMemory = true
	}
}

// NewEngine opens the posting database and the embedding provider.
func NewEngine(config *Config, opts ...EngineOption) (*Engine, error) {
	if config == nil {
		config = DefaultConfig()
	}

	// Apply options
	options := &engineOptions{}
	for _, opt := range opts {
		opt(options)
	}

	// Artifacts land in the data dir even when the database is in memory.
	if err := os.MkdirAll(config.DataDir, 0o755); err != nil {
		return nil, err
	}

	// Open backend
	backend, err := badger.OpenBackend(config.DatabasePath(), options.inMemory)
	if err != nil {
		return nil, err
	}

	// Create posting repository
	repo, err := badger.NewPostingRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	embedder := options.embedder
	if embedder == nil {
		embedder, err = openai.NewEmbedder(config.AIConfig())
		if err != nil {
			repo.Close()
			backend.Close()
			return nil, err
		}
	}

	return &Engine{
		config:   config,
		backend:  backend,
		repo:     repo,
		embedder: embedder,
		logger:   slog.Default(),
	}, nil
}

// Close releases the engine's resources.
func (e *Engine) Close() error {
	if err := e.repo.Close(); err != nil {
		e.logger.Error("error closing posting repository", "err", err)
		return err
	}
	if err := e.backend.Close(); err != nil {
		e.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// PostingRepository returns the durable posting store.
func (e *Engine) PostingRepository() storage.PostingRepository {
	return e.repo
}

// SeedFromCSV ingests a catalog source into the posting database and
// returns the number of postings stored. Insertion order is preserved; a
// later build embeds postings in this order.
func (e *Engine) SeedFromCSV(ctx context.Context, r io.Reader) (int, error) {
	postings, err := catalog.ReadPostings(r, e.config.ColumnConfig())
	if err != nil {
		return 0, err
	}
	if err := e.repo.PutPostings(ctx, postings...); err != nil {
		return 0, err
	}
	e.logger.Info("catalog seeded", "postings", len(postings))
	return len(postings), nil
}

// SeedFromFile ingests a catalog CSV file.
func (e *Engine) SeedFromFile(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return e.SeedFromCSV(ctx, f)
}

// loadStore materializes the catalog snapshot from the posting database.
func (e *Engine) loadStore(ctx context.Context) (*catalog.Store, error) {
	postings, err := e.repo.AllPostings(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.NewStore(postings)
}

// BuildIndex embeds the full catalog and writes the (index, id map)
// artifact pair. The pair carries the catalog fingerprint so serving can
// detect artifacts built from a different catalog state.
func (e *Engine) BuildIndex(ctx context.Context, opts ...build.Option) error {
	store, err := e.loadStore(ctx)
	if err != nil {
		return err
	}

	base := []build.Option{
		build.WithBatchSize(e.config.Build.BatchSize),
		build.WithRetry(e.config.Build.MaxRetries, time.Second),
		build.WithEmbedTimeout(e.config.EmbedTimeout()),
	}
	if e.config.Build.PoolSize > 0 {
		base = append(base, build.WithPoolSize(e.config.Build.PoolSize))
	}
	builder, err := build.NewBuilder(e.embedder, append(base, opts...)...)
	if err != nil {
		return err
	}

	idx, idMap, err := builder.Build(ctx, store)
	if err != nil {
		return err
	}

	return index.WriteArtifacts(
		e.config.IndexArtifactPath(), e.config.IDMapArtifactPath(),
		idx, idMap, store.Fingerprint())
}

// OpenRecommender loads the artifact pair, verifies it matches the current
// catalog state, and returns a recommender with the snapshot published.
func (e *Engine) OpenRecommender(ctx context.Context, opts ...recommend.Option) (*recommend.Recommender, error) {
	store, err := e.loadStore(ctx)
	if err != nil {
		return nil, err
	}

	artifacts, err := index.LoadArtifacts(ctx, e.config.IndexArtifactPath(), e.config.IDMapArtifactPath())
	if err != nil {
		return nil, err
	}
	if artifacts.Fingerprint != store.Fingerprint() {
		return nil, fmt.Errorf("%w: artifacts were built from a different catalog state, rebuild the index",
			core.ErrIndexCorrupt)
	}

	snapshot, err := recommend.NewSnapshot(store, artifacts.Index, artifacts.IDMap)
	if err != nil {
		return nil, err
	}

	base := []recommend.Option{
		recommend.WithPoolSize(e.config.Ranking.PoolSize),
		recommend.WithWeights(e.config.Weights()),
		recommend.WithRankerConfig(e.config.RankerConfig()),
		recommend.WithEmbedTimeout(e.config.EmbedTimeout()),
	}
	recommender, err := recommend.NewRecommender(e.embedder, append(base, opts...)...)
	if err != nil {
		return nil, err
	}
	recommender.Publish(snapshot)
	return recommender, nil
}
