package tt

// Stats is a snapshot of cache occupancy and traffic.
type Stats struct {
	Entries       int   `json:"entries"`
	Buckets       int   `json:"buckets"`
	Occupied      int   `json:"occupied"`
	LongestChain  int   `json:"longest_chain"`
	Lookups       int64 `json:"lookups"`
	Hits          int64 `json:"hits"`
	Dropped       int64 `json:"dropped"`
	Invalidations int64 `json:"invalidations"`
}

// HitRate returns hits/lookups, or 0 before the first lookup.
func (s Stats) HitRate() float64 {
	if s.Lookups == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.Lookups)
}

// Stats walks every chain. O(entries + buckets).
func (c *Cache) Stats() Stats {
	st := Stats{
		Entries:       len(c.arena),
		Buckets:       len(c.buckets),
		Lookups:       c.lookups,
		Hits:          c.hits,
		Dropped:       c.dropped,
		Invalidations: c.invalidations,
	}
	for _, head := range c.buckets {
		if head == nilIndex {
			continue
		}
		st.Occupied++
		n := 0
		for i := head; i != nilIndex; i = c.arena[i].next {
			n++
		}
		if n > st.LongestChain {
			st.LongestChain = n
		}
	}
	return st
}
