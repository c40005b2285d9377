package build

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/opporank/opporank/ai"
	"github.com/opporank/opporank/catalog"
	"github.com/opporank/opporank/core"
	"github.com/opporank/opporank/index"
	"github.com/panjf2000/ants/v2"
)

const (
	defaultBatchSize      = 64
	defaultMaxRetries     = 3
	defaultRetryBaseDelay = time.Second
	defaultEmbedTimeout   = 30 * time.Second
)

// Builder constructs the vector index and id map for a catalog snapshot.
// Embedding batches run concurrently on a bounded worker pool; insertion
// into the index is sequential in store order, because index position is
// the join key with the id map.
type Builder struct {
	embedder       ai.Embedder
	batchSize      int
	poolSize       int
	maxRetries     int
	retryBaseDelay time.Duration
	embedTimeout   time.Duration
	progress       *ProgressTracker
	logger         *slog.Logger
}

// Option configures a Builder.
type Option func(*Builder) error

// WithBatchSize sets the number of postings embedded per provider call.
// Default is 64.
func WithBatchSize(size int) Option {
	return func(b *Builder) error {
		if size < 1 {
			size = 1
		}
		b.batchSize = size
		return nil
	}
}

// WithPoolSize sets the worker pool size for concurrent embedding batches.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(b *Builder) error {
		if size < 1 {
			size = 1
		}
		b.poolSize = size
		return nil
	}
}

// WithRetry configures retry behavior for embedding calls.
func WithRetry(maxRetries int, baseDelay time.Duration) Option {
	return func(b *Builder) error {
		if maxRetries < 1 {
			return ErrInvalidMaxAttempts
		}
		b.maxRetries = maxRetries
		b.retryBaseDelay = baseDelay
		return nil
	}
}

// WithEmbedTimeout bounds each provider call. Each embedding batch gets
// its own deadline, so one stalled call cannot hang the whole build.
// Default is 30 seconds; zero or negative restores the default.
func WithEmbedTimeout(timeout time.Duration) Option {
	return func(b *Builder) error {
		if timeout <= 0 {
			timeout = defaultEmbedTimeout
		}
		b.embedTimeout = timeout
		return nil
	}
}

// WithProgress sets a progress tracker for the build.
func WithProgress(progress *ProgressTracker) Option {
	return func(b *Builder) error {
		b.progress = progress
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) error {
		if logger == nil {
			logger = slog.Default()
		}
		b.logger = logger
		return nil
	}
}

// NewBuilder creates a new index builder.
func NewBuilder(embedder ai.Embedder, opts ...Option) (*Builder, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	b := &Builder{
		embedder:       embedder,
		batchSize:      defaultBatchSize,
		poolSize:       poolSize,
		maxRetries:     defaultMaxRetries,
		retryBaseDelay: defaultRetryBaseDelay,
		embedTimeout:   defaultEmbedTimeout,
		logger:         slog.Default().With("component", "index-builder"),
	}

	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, err
		}
	}

	return b, nil
}

// Build embeds every posting in the store and produces the (index, id map)
// pair. The build is one-shot and all-or-nothing: any embedding failure
// aborts the whole build with core.ErrBuildFailed and nothing is returned.
// Cancellation is honored at batch boundaries only, never mid-vector.
func (b *Builder) Build(ctx context.Context, store *catalog.Store) (*index.Flat, index.IDMap, error) {
	n := store.Len()
	b.logger.Info("building index", "postings", n, "batchSize", b.batchSize, "workers", b.poolSize)

	if n == 0 {
		idx, err := index.NewFlat(0)
		if err != nil {
			return nil, nil, err
		}
		return idx, index.IDMap{}, nil
	}

	texts := make([]string, n)
	for i := 0; i < n; i++ {
		texts[i] = core.PostingText(store.At(i))
	}

	batches := chunkRange(n, b.batchSize)
	results := make([][][]float32, len(batches))

	pool, err := ants.NewPool(b.poolSize)
	if err != nil {
		return nil, nil, err
	}
	defer pool.Release()

	if b.progress != nil {
		b.progress.Start()
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		buildErr error
	)
	setErr := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		if buildErr == nil {
			buildErr = err
		}
	}
	failed := func() bool {
		mu.Lock()
		defer mu.Unlock()
		return buildErr != nil
	}

	for bi, batch := range batches {
		// Cancellation is only honored here, between batches.
		if err := ctx.Err(); err != nil {
			setErr(err)
			break
		}
		if failed() {
			break
		}

		bi, batch := bi, batch
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()

			if err := ctx.Err(); err != nil {
				setErr(err)
				return
			}

			batchTexts := texts[batch.start:batch.end]
			var vectors [][]float32
			err := RetryWithBackoff(ctx, func() error {
				callCtx, cancel := context.WithTimeout(ctx, b.embedTimeout)
				defer cancel()

				var embErr error
				vectors, embErr = b.embedder.EmbedTexts(callCtx, batchTexts)
				if embErr != nil && errors.Is(embErr, context.DeadlineExceeded) && ctx.Err() == nil {
					return fmt.Errorf("%w: batch %d exceeded %s", core.ErrProviderTimeout, bi, b.embedTimeout)
				}
				return embErr
			}, b.maxRetries, b.retryBaseDelay)
			if err != nil {
				b.logger.Error("embedding batch failed", "batch", bi, "err", err)
				setErr(err)
				return
			}
			if len(vectors) != len(batchTexts) {
				setErr(fmt.Errorf("embedding result mismatch: expected %d, received %d",
					len(batchTexts), len(vectors)))
				return
			}

			results[bi] = vectors
			if b.progress != nil {
				b.progress.Increment(len(batchTexts))
			}
		})
		if submitErr != nil {
			wg.Done()
			setErr(submitErr)
			break
		}
	}

	wg.Wait()

	if buildErr != nil {
		if errors.Is(buildErr, context.Canceled) || errors.Is(buildErr, context.DeadlineExceeded) {
			return nil, nil, buildErr
		}
		return nil, nil, fmt.Errorf("%w: %w", core.ErrBuildFailed, buildErr)
	}

	// Assemble sequentially in store order. Every vector must share one
	// dimension; the index declares it.
	dim := len(results[0][0])
	idx, err := index.NewFlat(dim)
	if err != nil {
		return nil, nil, err
	}
	idMap := make(index.IDMap, 0, n)

	pos := 0
	for _, vectors := range results {
		for _, v := range vectors {
			if len(v) != dim {
				return nil, nil, fmt.Errorf("%w: posting %q embedded to dimension %d, index dimension is %d",
					core.ErrBuildFailed, store.At(pos).ID, len(v), dim)
			}
			if err := idx.Add(index.Normalize(v)); err != nil {
				return nil, nil, fmt.Errorf("%w: %w", core.ErrBuildFailed, err)
			}
			idMap = append(idMap, store.At(pos).ID)
			pos++
		}
	}

	if b.progress != nil {
		b.progress.Finish()
	}
	b.logger.Info("index build complete", "vectors", idx.Count(), "dimension", dim)

	return idx, idMap, nil
}

type span struct {
	start, end int
}

func chunkRange(n, size int) []span {
	var spans []span
	for start := 0; start < n; start += size {
		end := start + size
		if end > n {
			end = n
		}
		spans = append(spans, span{start: start, end: end})
	}
	return spans
}
