package das

import (
	"fmt"
	"regexp"
)

// RuleKind tags how a rule finds its value.
type RuleKind int

const (
	// LabelAnchored rules require the value to follow the field's own caption.
	LabelAnchored RuleKind = iota
	// ShapeOnly rules match the value's syntax anywhere in the text.
	ShapeOnly
	// LastResort rules are permissive digit-run patterns.
	LastResort
)

func (k RuleKind) String() string {
	switch k {
	case LabelAnchored:
		return "label-anchored"
	case ShapeOnly:
		return "shape-only"
	case LastResort:
		return "last-resort"
	}
	return fmt.Sprintf("RuleKind(%d)", int(k))
}

// Selection decides which occurrence of a single-decisive rule is taken.
type Selection int

const (
	// SelectFirst takes the first accepted occurrence in text order.
	SelectFirst Selection = iota
	// SelectLongest takes the longest accepted occurrence.
	SelectLongest
)

// contextWindow is how many bytes before a value NotAfter is matched against.
const contextWindow = 48

// MatchRule is one step of a field's cascade. Pattern must have exactly one
// capture group holding the value. When NotAfter is set, an occurrence whose
// preceding text matches it belongs to another field and is skipped.
type MatchRule struct {
	Priority  int
	Kind      RuleKind
	Pattern   *regexp.Regexp
	NotAfter  *regexp.Regexp
	Selection Selection
	Pooled    bool
}

// values returns every captured value of the rule in text order.
func (r MatchRule) values(text string) []string {
	matches := r.Pattern.FindAllStringSubmatchIndex(text, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		if len(m) < 4 || m[2] < 0 || m[2] == m[3] {
			continue
		}
		if r.NotAfter != nil {
			start := m[2] - contextWindow
			if start < 0 {
				start = 0
			}
			if r.NotAfter.MatchString(text[start:m[2]]) {
				continue
			}
		}
		out = append(out, text[m[2]:m[3]])
	}
	return out
}

// ValidateRules checks that a rule set is ordered by priority and that
// label-anchored rules come before shape-only rules, which come before
// last-resort rules.
func ValidateRules(rules []MatchRule) error {
	for i, r := range rules {
		if r.Pattern == nil {
			return fmt.Errorf("rule %d: nil pattern", i)
		}
		if r.Pattern.NumSubexp() < 1 {
			return fmt.Errorf("rule %d: pattern %q has no capture group", i, r.Pattern)
		}
		if i == 0 {
			continue
		}
		prev := rules[i-1]
		if r.Priority < prev.Priority {
			return fmt.Errorf("rule %d: priority %d after %d", i, r.Priority, prev.Priority)
		}
		if r.Kind < prev.Kind {
			return fmt.Errorf("rule %d: %s rule after %s rule", i, r.Kind, prev.Kind)
		}
		if r.Pooled != prev.Pooled {
			return fmt.Errorf("rule %d: mixes pooled and single-decisive rules", i)
		}
	}
	return nil
}

const (
	datePattern   = `(\d{1,2}\s?[/.\-]\s?\d{1,2}\s?[/.\-]\s?\d{2,4})\b`
	amountPattern = `(\d{1,3}(?:\.\d{3})+,\d{2}|\d+,\d{2})\b`
	currency      = `(?:R\$\s*)?`
)

// DocumentNumberRules locates the "Número do Documento" (e.g. 07.20.25319.3494827-4).
var DocumentNumberRules = []MatchRule{
	{
		Priority: 0,
		Kind:     LabelAnchored,
		Pattern:  regexp.MustCompile(`(?i)n[úu]mero\s*(?:do\s*)?documento\s*:?\s*(\d{2}\.\d{2}\.\d{5}\.\d{7}-\d)\b`),
	},
	{
		Priority: 1,
		Kind:     LabelAnchored,
		Pattern:  regexp.MustCompile(`(?i)n[úu]mero\s*(?:do\s*)?documento\s*:?\s*(\d[\d.\-]{9,}\d)`),
	},
	{
		Priority: 2,
		Kind:     ShapeOnly,
		Pattern:  regexp.MustCompile(`\b(\d{2}\.\d{2}\.\d{5}\.\d{7}-\d)\b`),
	},
	{
		Priority:  3,
		Kind:      LastResort,
		Pattern:   regexp.MustCompile(`\b(\d{15,20})\b`),
		Selection: SelectLongest,
	},
}

// reAcceptanceCaption matches text ending in the acceptance-deadline caption.
var reAcceptanceCaption = regexp.MustCompile(`(?i)acolhimento\s*(?:at[ée])?\s*:?\s*$`)

// DueDateRules locates the payment due date ("Pagar este documento até", "Data de Vencimento").
var DueDateRules = []MatchRule{
	{
		Priority: 0,
		Kind:     LabelAnchored,
		Pattern:  regexp.MustCompile(`(?i)pagar\s+(?:este\s+documento\s+)?at[ée]\s*:?\s*` + datePattern),
	},
	{
		Priority: 1,
		Kind:     LabelAnchored,
		Pattern:  regexp.MustCompile(`(?i)(?:data\s+de\s+)?vencimento\s*:?\s*` + datePattern),
	},
	{
		Priority: 2,
		Kind:     ShapeOnly,
		Pattern:  regexp.MustCompile(`\b(\d{1,2}[/.\-]\d{1,2}[/.\-]\d{4})\b`),
		NotAfter: reAcceptanceCaption,
	},
}

// AcceptanceDeadlineRules locates the "Data limite para acolhimento". The field
// is optional, so no shape-only fallback is used.
var AcceptanceDeadlineRules = []MatchRule{
	{
		Priority: 0,
		Kind:     LabelAnchored,
		Pattern:  regexp.MustCompile(`(?i)data\s+limite\s+(?:para\s+)?(?:o\s+)?acolhimento\s*:?\s*` + datePattern),
	},
	{
		Priority: 1,
		Kind:     LabelAnchored,
		Pattern:  regexp.MustCompile(`(?i)acolhimento\s*(?:at[ée])?\s*:?\s*` + datePattern),
	},
}

// TotalAmountRules collect monetary candidates. Rules sharing a priority form one tier.
var TotalAmountRules = []MatchRule{
	{
		Priority: 0,
		Kind:     LabelAnchored,
		Pattern:  regexp.MustCompile(`(?i)valor\s+total\s*(?:do\s+documento)?\s*:?\s*` + currency + amountPattern),
		Pooled:   true,
	},
	{
		Priority: 0,
		Kind:     LabelAnchored,
		Pattern:  regexp.MustCompile(`(?i)total\s+a\s+pagar\s*:?\s*` + currency + amountPattern),
		Pooled:   true,
	},
	{
		Priority: 1,
		Kind:     ShapeOnly,
		Pattern:  regexp.MustCompile(`R\$\s*` + amountPattern),
		Pooled:   true,
	},
	{
		Priority: 2,
		Kind:     LastResort,
		Pattern:  regexp.MustCompile(`\b` + amountPattern),
		Pooled:   true,
	},
}
