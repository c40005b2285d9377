package recommend

import "github.com/opporank/opporank/core"

// Weights controls the fusion of semantic similarity and keyword overlap
// into one ranking score.
type Weights struct {
	Semantic float64
	Keyword  float64
}

// DefaultWeights is the standard 60/40 semantic/keyword split.
var DefaultWeights = Weights{Semantic: 0.6, Keyword: 0.4}

// FuseScores combines a semantic similarity score and a keyword Jaccard
// score into a final score. Pure function of its inputs.
func FuseScores(semantic, keyword float64, w Weights) float64 {
	return w.Semantic*semantic + w.Keyword*keyword
}

// ScoreCandidate builds a scored candidate for one retrieved posting.
// semantic is the raw inner product from retrieval; no renormalization
// happens here. rank is the candidate's position in the retrieval ordering.
func ScoreCandidate(posting *core.Posting, profile *core.Profile, semantic float64, rank int, w Weights) *core.ScoredCandidate {
	keyword := profile.Skills.Jaccard(posting.Skills)
	return &core.ScoredCandidate{
		Posting:       posting,
		SemanticScore: semantic,
		KeywordScore:  keyword,
		FinalScore:    FuseScores(semantic, keyword, w),
		RetrievalRank: rank,
	}
}
