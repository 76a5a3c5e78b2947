package das

// Match is the value chosen by a single-decisive cascade.
type Match struct {
	Value     string
	RuleIndex int
}

// Candidate is one monetary value found by a pooled rule.
type Candidate struct {
	Value     float64
	Raw       string
	RuleIndex int
}

// MatchField runs a single-decisive cascade: the first rule producing an
// accepted occurrence wins and later rules are never consulted. A nil accept
// func accepts every non-empty occurrence.
func MatchField(text string, rules []MatchRule, accept func(string) bool) (Match, bool) {
	return matchField(text, rules, accept, nil)
}

func matchField(text string, rules []MatchRule, accept func(string) bool, onMatch func(int, string)) (Match, bool) {
	for i, rule := range rules {
		if rule.Pooled {
			continue
		}

		var best string
		for _, v := range rule.values(text) {
			if accept != nil && !accept(v) {
				continue
			}
			if rule.Selection == SelectFirst {
				best = v
				break
			}
			if len(v) > len(best) {
				best = v
			}
		}

		if best != "" {
			if onMatch != nil {
				onMatch(i, best)
			}
			return Match{Value: best, RuleIndex: i}, true
		}
	}
	return Match{}, false
}

// CollectCandidates runs a pooled cascade. Rules sharing a priority form a
// tier; the candidates of the first tier yielding any parseable amount are
// returned and lower tiers are ignored.
func CollectCandidates(text string, rules []MatchRule) []Candidate {
	return collectCandidates(text, rules, nil)
}

func collectCandidates(text string, rules []MatchRule, onMatch func(int, string)) []Candidate {
	var pool []Candidate

	for i := 0; i < len(rules); {
		tier := rules[i].Priority
		for ; i < len(rules) && rules[i].Priority == tier; i++ {
			if !rules[i].Pooled {
				continue
			}
			for _, raw := range rules[i].values(text) {
				v, ok := NormalizeMonetary(raw)
				if !ok {
					continue
				}
				if onMatch != nil {
					onMatch(i, raw)
				}
				pool = append(pool, Candidate{Value: v, Raw: raw, RuleIndex: i})
			}
		}
		if len(pool) > 0 {
			return pool
		}
	}
	return nil
}
