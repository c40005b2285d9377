package core

// Tier identifies which relaxation level of the fallback ranking state
// machine produced a result set. The tiers are terminal and mutually
// exclusive per query.
type Tier int

const (
	// TierLocationMatch means candidates in the preferred location cleared
	// the quality threshold.
	TierLocationMatch Tier = iota + 1
	// TierGlobalFallback means no in-location candidate cleared the
	// threshold, but candidates elsewhere did.
	TierGlobalFallback
	// TierClosestMatch means no candidate anywhere cleared the threshold;
	// the best of the pool is returned regardless.
	TierClosestMatch
	// TierEmpty means there was genuinely nothing to rank.
	TierEmpty
)

func (t Tier) String() string {
	switch t {
	case TierLocationMatch:
		return "LOCATION_MATCH"
	case TierGlobalFallback:
		return "GLOBAL_FALLBACK"
	case TierClosestMatch:
		return "CLOSEST_MATCH"
	case TierEmpty:
		return "EMPTY"
	default:
		return "UNKNOWN"
	}
}
