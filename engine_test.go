package opporank

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/opporank/opporank/ai/mock"
	"github.com/opporank/opporank/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCatalog = `id,title,location,skills
sih-1,Data Analyst,Remote,"python, sql, excel"
sih-2,Backend Developer,Bengaluru,"java, spring"
sih-3,ML Engineer,Remote,"python, pytorch"
`

func testEngine(t *testing.T) *Engine {
	t.Helper()
	cfg := DefaultConfig()
	cfg.DataDir = t.TempDir()
	engine, err := NewEngine(cfg, WithEmbedder(mock.NewEmbedder()), WithInMemoryStorage())
	require.NoError(t, err)
	t.Cleanup(func() { engine.Close() })
	return engine
}

func TestNewEngine(t *testing.T) {
	engine := testEngine(t)
	assert.NotNil(t, engine.PostingRepository())
}

func TestEngine_SeedBuildRecommend(t *testing.T) {
	ctx := context.Background()
	engine := testEngine(t)

	n, err := engine.SeedFromCSV(ctx, strings.NewReader(testCatalog))
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	require.NoError(t, engine.BuildIndex(ctx))

	recommender, err := engine.OpenRecommender(ctx)
	require.NoError(t, err)

	result, err := recommender.Recommend(ctx, core.Profile{
		Skills:             core.NewSkillSet("python", "sql"),
		LocationPreference: "Remote",
	})
	require.NoError(t, err)
	assert.NotEqual(t, core.TierEmpty, result.Tier)
	assert.NotEmpty(t, result.Recommendations)

	// With a deterministic provider, rebuilding and re-querying yields an
	// identical ranking.
	require.NoError(t, engine.BuildIndex(ctx))
	again, err := engine.OpenRecommender(ctx)
	require.NoError(t, err)
	result2, err := again.Recommend(ctx, core.Profile{
		Skills:             core.NewSkillSet("python", "sql"),
		LocationPreference: "Remote",
	})
	require.NoError(t, err)
	assert.Equal(t, result, result2)
}

func TestEngine_EmbedTimeoutFromConfig(t *testing.T) {
	ctx := context.Background()
	cfg := DefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.Embedding.TimeoutSecs = 1

	m := mock.NewEmbedder()
	engine, err := NewEngine(cfg, WithEmbedder(m), WithInMemoryStorage())
	require.NoError(t, err)
	t.Cleanup(func() { engine.Close() })

	_, err = engine.SeedFromCSV(ctx, strings.NewReader(testCatalog))
	require.NoError(t, err)
	require.NoError(t, engine.BuildIndex(ctx))

	recommender, err := engine.OpenRecommender(ctx)
	require.NoError(t, err)

	// Stall the provider on the query path. The configured one second
	// deadline must fire, not the recommender's built-in default.
	m.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}

	start := time.Now()
	_, err = recommender.Recommend(ctx, core.Profile{Skills: core.NewSkillSet("python")})
	assert.ErrorIs(t, err, core.ErrProviderTimeout)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestEngine_OpenRecommenderStaleArtifacts(t *testing.T) {
	ctx := context.Background()
	engine := testEngine(t)

	_, err := engine.SeedFromCSV(ctx, strings.NewReader(testCatalog))
	require.NoError(t, err)
	require.NoError(t, engine.BuildIndex(ctx))

	// Grow the catalog after the build; the artifacts no longer describe
	// the stored catalog.
	extra := &core.Posting{ID: "sih-4", Title: "Designer", Location: "Remote", Skills: core.NewSkillSet("figma")}
	require.NoError(t, engine.PostingRepository().PutPostings(ctx, extra))

	_, err = engine.OpenRecommender(ctx)
	assert.ErrorIs(t, err, core.ErrIndexCorrupt)
}

func TestEngine_OpenRecommenderWithoutBuild(t *testing.T) {
	ctx := context.Background()
	engine := testEngine(t)

	_, err := engine.SeedFromCSV(ctx, strings.NewReader(testCatalog))
	require.NoError(t, err)

	_, err = engine.OpenRecommender(ctx)
	assert.Error(t, err, "artifacts missing")
}
