package minire

import "sync/atomic"

// Stats tracks execution statistics for performance analysis.
type Stats struct {
	// Searches counts calls that ran a search
	Searches uint64

	// LiteralSearches counts searches answered by a complete prefilter
	// without running the matcher
	LiteralSearches uint64

	// PrefilterHits counts prefilter candidates where a match started
	PrefilterHits uint64

	// PrefilterMisses counts prefilter candidates the matcher rejected
	PrefilterMisses uint64

	// Aborts counts searches stopped by a resource limit
	Aborts uint64
}

// Stats returns a snapshot of the execution statistics.
func (r *Regex) Stats() Stats {
	return Stats{
		Searches:        atomic.LoadUint64(&r.stats.Searches),
		LiteralSearches: atomic.LoadUint64(&r.stats.LiteralSearches),
		PrefilterHits:   atomic.LoadUint64(&r.stats.PrefilterHits),
		PrefilterMisses: atomic.LoadUint64(&r.stats.PrefilterMisses),
		Aborts:          atomic.LoadUint64(&r.stats.Aborts),
	}
}

// ResetStats resets execution statistics to zero.
func (r *Regex) ResetStats() {
	atomic.StoreUint64(&r.stats.Searches, 0)
	atomic.StoreUint64(&r.stats.LiteralSearches, 0)
	atomic.StoreUint64(&r.stats.PrefilterHits, 0)
	atomic.StoreUint64(&r.stats.PrefilterMisses, 0)
	atomic.StoreUint64(&r.stats.Aborts, 0)
}
