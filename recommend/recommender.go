package recommend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/opporank/opporank/ai"
	"github.com/opporank/opporank/core"
	"github.com/opporank/opporank/index"
)

const (
	// DefaultPoolSize is the retrieval candidate pool size. It is a
	// generous pool for the ranker to filter, not the final answer size.
	DefaultPoolSize = 200

	// DefaultEmbedTimeout bounds the query-time embedding call.
	DefaultEmbedTimeout = 10 * time.Second
)

// Recommendation is one ranked posting in a query response, with the
// skill-overlap explanation the serving layer presents alongside it.
type Recommendation struct {
	PostingID     string
	Title         string
	Location      string
	FinalScore    float64
	SemanticScore float64
	KeywordScore  float64
	MatchedSkills []string
	MissingSkills []string
}

// Result is a complete query response: the tier that produced it and the
// ordered recommendations.
type Result struct {
	Tier            core.Tier
	Recommendations []Recommendation
}

// Recommender serves ranked recommendations against a published snapshot.
// Queries are read-only and lock-free; publishing a new snapshot is an
// atomic pointer swap, so in-flight queries finish against the snapshot
// they started with.
type Recommender struct {
	snapshot     atomic.Pointer[Snapshot]
	embedder     ai.Embedder
	poolSize     int
	weights      Weights
	ranker       RankerConfig
	embedTimeout time.Duration
	logger       *slog.Logger
}

// Option configures a Recommender.
type Option func(*Recommender) error

// WithPoolSize sets the retrieval candidate pool size.
// Default is DefaultPoolSize.
func WithPoolSize(size int) Option {
	return func(r *Recommender) error {
		if size < 1 {
			size = 1
		}
		r.poolSize = size
		return nil
	}
}

// WithWeights sets the score fusion weights.
func WithWeights(w Weights) Option {
	return func(r *Recommender) error {
		r.weights = w
		return nil
	}
}

// WithRankerConfig sets the tiered ranker tuning.
func WithRankerConfig(cfg RankerConfig) Option {
	return func(r *Recommender) error {
		r.ranker = cfg
		return nil
	}
}

// WithEmbedTimeout bounds query-time embedding calls.
// Default is DefaultEmbedTimeout.
func WithEmbedTimeout(d time.Duration) Option {
	return func(r *Recommender) error {
		if d > 0 {
			r.embedTimeout = d
		}
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Recommender) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewRecommender creates a recommender. A snapshot must be published
// before the first query.
func NewRecommender(embedder ai.Embedder, opts ...Option) (*Recommender, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	r := &Recommender{
		embedder:     embedder,
		poolSize:     DefaultPoolSize,
		weights:      DefaultWeights,
		ranker:       DefaultRankerConfig(),
		embedTimeout: DefaultEmbedTimeout,
		logger:       slog.Default().With("component", "recommender"),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Publish installs a snapshot. Subsequent queries observe it atomically.
func (r *Recommender) Publish(s *Snapshot) {
	r.snapshot.Store(s)
	r.logger.Info("snapshot published", "postings", s.Store.Len(), "dimension", s.Index.Dim())
}

// Current returns the currently published snapshot, or nil.
func (r *Recommender) Current() *Snapshot {
	return r.snapshot.Load()
}

// Recommend ranks postings for a profile against the current snapshot.
func (r *Recommender) Recommend(ctx context.Context, profile core.Profile) (*Result, error) {
	return r.RecommendWithMonitor(ctx, profile, nil)
}

// RecommendWithMonitor ranks postings for a profile with monitoring.
// The monitor receives callbacks at each stage of the pipeline.
func (r *Recommender) RecommendWithMonitor(ctx context.Context, profile core.Profile, monitor QueryMonitor) (*Result, error) {
	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	snap := r.snapshot.Load()
	if snap == nil {
		return nil, ErrSnapshotRequired
	}

	profile = core.NormalizeProfile(profile)
	queryText := core.ProfileText(&profile)
	monitor.Start(queryText)

	// An empty catalog is not an error; there is genuinely nothing to rank.
	if snap.Store.Len() == 0 {
		monitor.Finish(core.TierEmpty, nil)
		return &Result{Tier: core.TierEmpty}, nil
	}

	vector, err := r.embedQuery(ctx, queryText)
	if err != nil {
		r.logger.Error("error generating embedding for query", "err", err)
		return nil, err
	}
	monitor.AfterEmbedding(len(vector))

	// A query vector of the wrong width means the serving model differs
	// from the one the artifacts were built with. Scoring it would
	// produce plausible-looking nonsense, so refuse instead.
	if len(vector) != snap.Index.Dim() {
		return nil, fmt.Errorf("%w: query embedded to dimension %d, index dimension is %d",
			core.ErrIndexCorrupt, len(vector), snap.Index.Dim())
	}

	hits := snap.Index.Search(index.Normalize(vector), r.poolSize)
	positions := make([]int, len(hits))
	for i, hit := range hits {
		positions[i] = hit.Position
	}
	monitor.AfterRetrieval(positions)

	candidates, err := r.scoreHits(snap, &profile, hits)
	if err != nil {
		return nil, err
	}
	monitor.AfterScoring(candidates)

	ranked, tier := Rank(candidates, &profile, r.ranker)
	monitor.Finish(tier, ranked)

	result := &Result{
		Tier:            tier,
		Recommendations: make([]Recommendation, 0, len(ranked)),
	}
	for _, c := range ranked {
		result.Recommendations = append(result.Recommendations, Recommendation{
			PostingID:     c.Posting.ID,
			Title:         c.Posting.Title,
			Location:      c.Posting.Location,
			FinalScore:    c.FinalScore,
			SemanticScore: c.SemanticScore,
			KeywordScore:  c.KeywordScore,
			MatchedSkills: profile.Skills.Matched(c.Posting.Skills),
			MissingSkills: profile.Skills.Missing(c.Posting.Skills),
		})
	}

	r.logger.Debug("query ranked", "tier", tier.String(), "results", len(result.Recommendations))
	return result, nil
}

// embedQuery calls the embedding provider under a per-call timeout. A
// timeout surfaces as ProviderTimeout and any other provider failure as
// ProviderUnavailable; the core never retries query-time calls.
func (r *Recommender) embedQuery(ctx context.Context, text string) ([]float32, error) {
	ctx, cancel := context.WithTimeout(ctx, r.embedTimeout)
	defer cancel()

	vector, err := r.embedder.EmbedText(ctx, text)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %w", core.ErrProviderTimeout, err)
		}
		return nil, fmt.Errorf("%w: %w", core.ErrProviderUnavailable, err)
	}
	return vector, nil
}

// scoreHits resolves every retrieved position through the id map and the
// store, then scores it. An unresolvable position is corruption, never
// skipped.
func (r *Recommender) scoreHits(snap *Snapshot, profile *core.Profile, hits []index.Hit) ([]*core.ScoredCandidate, error) {
	candidates := make([]*core.ScoredCandidate, 0, len(hits))
	for rank, hit := range hits {
		id, err := snap.IDMap.Resolve(hit.Position)
		if err != nil {
			return nil, err
		}
		posting := snap.Store.Get(id)
		if posting == nil {
			return nil, fmt.Errorf("%w: id map position %d resolves to unknown posting %q",
				core.ErrIndexDesync, hit.Position, id)
		}
		candidates = append(candidates, ScoreCandidate(posting, profile, float64(hit.Score), rank, r.weights))
	}
	return candidates, nil
}
