package reid

import "gonum.org/v1/gonum/floats"

type APVector []float64 // 1D: per-query average precision

type ValidityMask []bool // 1D: whether a query has a valid true match

// Count returns the number of valid queries.
func (v ValidityMask) Count() int {
	n := 0
	for _, ok := range v {
		if ok {
			n++
		}
	}
	return n
}

// Sum returns the total AP over all queries. Invalid queries hold 0.
func (a APVector) Sum() float64 {
	return floats.Sum(a)
}

type Result struct {
	Score    float64      // mean AP over valid queries, set when Averaged
	AP       APVector     // per-query AP
	Valid    ValidityMask // per-query validity
	Averaged bool         // whether Score is the answer
	Method   APMethod     // rule used to compute AP
}

// NumValid returns how many queries contributed to the mean.
func (r *Result) NumValid() int {
	return r.Valid.Count()
}

// queryRanking is the ranked, trivial-match-filtered view of one query row.
type queryRanking struct {
	yTrue  []bool    // whether each valid ranked gallery item shares the query id
	yScore []float64 // negated distance of each valid ranked gallery item
}
