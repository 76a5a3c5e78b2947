package das

import "math"

// ResolveMonetaryCandidates picks the largest non-negative finite value.
// An empty pool is absence; a pool holding only 0 resolves to 0.
// The total is taken to be the largest figure on the slip; a slip whose
// penalty exceeds its total is misread and needs manual correction.
func ResolveMonetaryCandidates(values []float64) (float64, bool) {
	best, found := 0.0, false
	for _, v := range values {
		if !plausibleAmount(v) {
			continue
		}
		if !found || v > best {
			best, found = v, true
		}
	}
	return best, found
}

// ResolveCandidates is ResolveMonetaryCandidates keeping provenance. Equal
// values resolve to the candidate of the lower rule index.
func ResolveCandidates(candidates []Candidate) (Candidate, bool) {
	var best Candidate
	found := false
	for _, c := range candidates {
		if !plausibleAmount(c.Value) {
			continue
		}
		if !found || c.Value > best.Value || (c.Value == best.Value && c.RuleIndex < best.RuleIndex) {
			best, found = c, true
		}
	}
	return best, found
}

func plausibleAmount(v float64) bool {
	return v >= 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}
