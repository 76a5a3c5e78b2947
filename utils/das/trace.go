package das

// Tracer receives extraction events. Implementations must be safe for
// concurrent use when one Extractor is shared.
type Tracer interface {
	FieldStarted(field string)
	RuleMatched(field string, ruleIndex int, kind RuleKind, value string)
	FieldResolved(field string, value string, found bool)
}

// NopTracer discards every event.
type NopTracer struct{}

func (NopTracer) FieldStarted(string)                       {}
func (NopTracer) RuleMatched(string, int, RuleKind, string) {}
func (NopTracer) FieldResolved(string, string, bool)        {}
