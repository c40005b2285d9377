package recommend

import "github.com/opporank/opporank/core"

// QueryMonitor provides hooks to observe the recommendation pipeline.
// Implement this interface to track intermediate steps during a query.
type QueryMonitor interface {
	Start(queryText string)
	AfterEmbedding(dimension int)
	AfterRetrieval(positions []int)
	AfterScoring(candidates []*core.ScoredCandidate)
	Finish(tier core.Tier, ranked []*core.ScoredCandidate)
}

// noopMonitor is a no-op implementation of QueryMonitor
type noopMonitor struct{}

var _ QueryMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                                {}
func (n *noopMonitor) AfterEmbedding(_ int)                          {}
func (n *noopMonitor) AfterRetrieval(_ []int)                        {}
func (n *noopMonitor) AfterScoring(_ []*core.ScoredCandidate)        {}
func (n *noopMonitor) Finish(_ core.Tier, _ []*core.ScoredCandidate) {}
