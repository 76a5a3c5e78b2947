package das

import (
	"strings"

	"github.com/Aashish23092/das-field-extraction/dto"
)

// Field names used in trace events.
const (
	FieldDocumentNumber     = "document_number"
	FieldDueDate            = "due_date"
	FieldAcceptanceDeadline = "acceptance_deadline"
	FieldTotalAmount        = "total_amount"
)

// Extractor pulls the DAS fields out of acquired text. It holds no state
// between calls.
type Extractor struct {
	tracer Tracer
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithTracer installs a trace sink. nil keeps the no-op tracer.
func WithTracer(t Tracer) Option {
	return func(e *Extractor) {
		if t != nil {
			e.tracer = t
		}
	}
}

// NewExtractor returns an extractor with the no-op tracer unless an option sets one.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{tracer: NopTracer{}}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var defaultExtractor = NewExtractor()

// ExtractDocumentFields extracts the four DAS fields with the default extractor.
func ExtractDocumentFields(rawText string) dto.ExtractedDocument {
	return defaultExtractor.Extract(rawText)
}

// NormalizeText collapses every whitespace run to a single space.
func NormalizeText(rawText string) string {
	return strings.Join(strings.Fields(rawText), " ")
}

// Extract returns the fields found in rawText; missing fields are empty.
func (e *Extractor) Extract(rawText string) dto.ExtractedDocument {
	doc, _ := e.ExtractWithText(rawText)
	return doc
}

// ExtractWithText returns the extracted record together with the normalized
// text the rules ran against.
func (e *Extractor) ExtractWithText(rawText string) (dto.ExtractedDocument, string) {
	text := NormalizeText(rawText)

	doc := dto.ExtractedDocument{
		DocumentNumber:     e.single(FieldDocumentNumber, text, DocumentNumberRules, nil, identity),
		DueDate:            e.single(FieldDueDate, text, DueDateRules, isDate, normalizeDateOrEmpty),
		AcceptanceDeadline: e.single(FieldAcceptanceDeadline, text, AcceptanceDeadlineRules, isDate, normalizeDateOrEmpty),
		TotalAmount:        e.amount(text),
	}
	return doc, text
}

func (e *Extractor) single(field, text string, rules []MatchRule, accept func(string) bool, canon func(string) string) string {
	e.tracer.FieldStarted(field)

	m, ok := matchField(text, rules, accept, func(i int, v string) {
		e.tracer.RuleMatched(field, i, rules[i].Kind, v)
	})
	value := ""
	if ok {
		value = canon(m.Value)
	}

	e.tracer.FieldResolved(field, value, value != "")
	return value
}

func (e *Extractor) amount(text string) string {
	e.tracer.FieldStarted(FieldTotalAmount)

	pool := collectCandidates(text, TotalAmountRules, func(i int, v string) {
		e.tracer.RuleMatched(FieldTotalAmount, i, TotalAmountRules[i].Kind, v)
	})
	value := ""
	if c, ok := ResolveCandidates(pool); ok {
		value = FormatAmount(c.Value)
	}

	e.tracer.FieldResolved(FieldTotalAmount, value, value != "")
	return value
}

func identity(s string) string { return strings.TrimSpace(s) }

func isDate(s string) bool {
	_, ok := NormalizeDate(s)
	return ok
}

func normalizeDateOrEmpty(s string) string {
	d, _ := NormalizeDate(s)
	return d
}
