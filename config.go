package opporank

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/opporank/opporank/ai"
	"github.com/opporank/opporank/catalog"
	"github.com/opporank/opporank/recommend"
)

// EmbeddingConfig configures the OpenAI-compatible embedding provider.
type EmbeddingConfig struct {
	Host        string `yaml:"host"`
	Model       string `yaml:"model"`
	Token       string `yaml:"token"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// CatalogConfig configures catalog ingestion.
type CatalogConfig struct {
	// Column header names, matched case-insensitively when TrustHeader
	// is true.
	IDColumn       string `yaml:"id_column"`
	TitleColumn    string `yaml:"title_column"`
	LocationColumn string `yaml:"location_column"`
	SkillsColumn   string `yaml:"skills_column"`

	// TrustHeader resolves columns by header name. Disable it for sources
	// with unreliable header rows and give the positional ColumnOrder
	// instead.
	TrustHeader bool     `yaml:"trust_header"`
	ColumnOrder []string `yaml:"column_order,omitempty"`
}

// RankingConfig configures score fusion and the tiered ranker.
type RankingConfig struct {
	SemanticWeight float64 `yaml:"semantic_weight"`
	KeywordWeight  float64 `yaml:"keyword_weight"`
	Threshold      float64 `yaml:"threshold"`
	PrimarySize    int     `yaml:"primary_size"`
	FallbackSize   int     `yaml:"fallback_size"`
	PoolSize       int     `yaml:"pool_size"`
}

// BuildConfig configures the index build pipeline.
type BuildConfig struct {
	BatchSize  int `yaml:"batch_size"`
	PoolSize   int `yaml:"pool_size"`
	MaxRetries int `yaml:"max_retries"`
}

// Config is the root application configuration.
type Config struct {
	// DataDir holds the posting database; artifacts default to siblings
	// inside it.
	DataDir   string `yaml:"data_dir"`
	IndexPath string `yaml:"index_path,omitempty"`
	IDMapPath string `yaml:"id_map_path,omitempty"`

	Embedding EmbeddingConfig `yaml:"embedding"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Ranking   RankingConfig   `yaml:"ranking"`
	Build     BuildConfig     `yaml:"build"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() *Config {
	aiDefaults := ai.DefaultConfig()
	cfg := &Config{
		DataDir: "opporank-data",
		Embedding: EmbeddingConfig{
			Host:        aiDefaults.Host,
			Model:       aiDefaults.Model,
			Token:       aiDefaults.Token,
			TimeoutSecs: int(aiDefaults.Timeout / time.Second),
		},
		Catalog: CatalogConfig{
			IDColumn:       "id",
			TitleColumn:    "title",
			LocationColumn: "location",
			SkillsColumn:   "skills",
			TrustHeader:    true,
		},
		Ranking: RankingConfig{
			SemanticWeight: recommend.DefaultWeights.Semantic,
			KeywordWeight:  recommend.DefaultWeights.Keyword,
			Threshold:      0.50,
			PrimarySize:    5,
			FallbackSize:   3,
			PoolSize:       recommend.DefaultPoolSize,
		},
		Build: BuildConfig{
			BatchSize:  64,
			MaxRetries: 3,
		},
	}
	return cfg
}

// LoadConfig reads a YAML configuration file, layering it over the
// defaults. A missing file is not an error; the defaults are returned.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

// applyDefaults fills fields a partial file left at their zero value.
func (c *Config) applyDefaults() {
	d := DefaultConfig()
	if c.DataDir == "" {
		c.DataDir = d.DataDir
	}
	if c.Embedding.Host == "" {
		c.Embedding.Host = d.Embedding.Host
	}
	if c.Embedding.Model == "" {
		c.Embedding.Model = d.Embedding.Model
	}
	if c.Embedding.Token == "" {
		c.Embedding.Token = d.Embedding.Token
	}
	if c.Embedding.TimeoutSecs <= 0 {
		c.Embedding.TimeoutSecs = d.Embedding.TimeoutSecs
	}
	if c.Catalog.IDColumn == "" {
		c.Catalog.IDColumn = d.Catalog.IDColumn
	}
	if c.Catalog.TitleColumn == "" {
		c.Catalog.TitleColumn = d.Catalog.TitleColumn
	}
	if c.Catalog.LocationColumn == "" {
		c.Catalog.LocationColumn = d.Catalog.LocationColumn
	}
	if c.Catalog.SkillsColumn == "" {
		c.Catalog.SkillsColumn = d.Catalog.SkillsColumn
	}
	if c.Ranking.SemanticWeight == 0 && c.Ranking.KeywordWeight == 0 {
		c.Ranking.SemanticWeight = d.Ranking.SemanticWeight
		c.Ranking.KeywordWeight = d.Ranking.KeywordWeight
	}
	if c.Ranking.Threshold == 0 {
		c.Ranking.Threshold = d.Ranking.Threshold
	}
	if c.Ranking.PrimarySize <= 0 {
		c.Ranking.PrimarySize = d.Ranking.PrimarySize
	}
	if c.Ranking.FallbackSize <= 0 {
		c.Ranking.FallbackSize = d.Ranking.FallbackSize
	}
	if c.Ranking.PoolSize <= 0 {
		c.Ranking.PoolSize = d.Ranking.PoolSize
	}
	if c.Build.BatchSize <= 0 {
		c.Build.BatchSize = d.Build.BatchSize
	}
	if c.Build.MaxRetries <= 0 {
		c.Build.MaxRetries = d.Build.MaxRetries
	}
}

// IndexArtifactPath resolves the index artifact location.
func (c *Config) IndexArtifactPath() string {
	if c.IndexPath != "" {
		return c.IndexPath
	}
	return filepath.Join(c.DataDir, "postings.opix")
}

// IDMapArtifactPath resolves the id-map artifact location.
func (c *Config) IDMapArtifactPath() string {
	if c.IDMapPath != "" {
		return c.IDMapPath
	}
	return filepath.Join(c.DataDir, "postings.opim")
}

// DatabasePath resolves the posting database location.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "postings.db")
}

// AIConfig converts the embedding section to the provider configuration.
func (c *Config) AIConfig() *ai.Config {
	return ai.NewConfig(
		ai.WithHost(c.Embedding.Host),
		ai.WithModel(c.Embedding.Model),
		ai.WithToken(c.Embedding.Token),
		ai.WithTimeout(time.Duration(c.Embedding.TimeoutSecs)*time.Second),
	)
}

// EmbedTimeout resolves the per-call provider deadline.
func (c *Config) EmbedTimeout() time.Duration {
	return time.Duration(c.Embedding.TimeoutSecs) * time.Second
}

// ColumnConfig converts the catalog section to the CSV reader mapping.
func (c *Config) ColumnConfig() catalog.ColumnConfig {
	return catalog.ColumnConfig{
		ID:          c.Catalog.IDColumn,
		Title:       c.Catalog.TitleColumn,
		Location:    c.Catalog.LocationColumn,
		Skills:      c.Catalog.SkillsColumn,
		TrustHeader: c.Catalog.TrustHeader,
		Order:       c.Catalog.ColumnOrder,
	}
}

// Weights converts the ranking section to fusion weights.
func (c *Config) Weights() recommend.Weights {
	return recommend.Weights{
		Semantic: c.Ranking.SemanticWeight,
		Keyword:  c.Ranking.KeywordWeight,
	}
}

// RankerConfig converts the ranking section to ranker tuning.
func (c *Config) RankerConfig() recommend.RankerConfig {
	return recommend.RankerConfig{
		Threshold:    c.Ranking.Threshold,
		PrimarySize:  c.Ranking.PrimarySize,
		FallbackSize: c.Ranking.FallbackSize,
	}
}
