package score

// Run is a maximal sequence of consecutive flagged sample indices.
type Run struct {
	Start uint64
	Len   int
}

// End returns the index one past the last sample of the run.
func (r Run) End() uint64 {
	return r.Start + uint64(r.Len)
}

// GroupRuns splits ascending flagged indices into runs of strictly
// consecutive values. Any step other than +1 starts a new run.
func GroupRuns(flagged []uint64) []Run {
	if len(flagged) == 0 {
		return nil
	}

	runs := make([]Run, 0, 1)
	cur := Run{Start: flagged[0], Len: 1}
	for _, e := range flagged[1:] {
		if e == cur.Start+uint64(cur.Len) {
			cur.Len++
			continue
		}
		runs = append(runs, cur)
		cur = Run{Start: e, Len: 1}
	}
	return append(runs, cur)
}
