package service

import (
	"github.com/Aashish23092/das-field-extraction/utils/das"
	"go.uber.org/zap"
)

// ZapTracer writes extractor events to a zap logger at debug level.
type ZapTracer struct {
	logger *zap.Logger
}

func NewZapTracer(logger *zap.Logger) *ZapTracer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapTracer{logger: logger.Named("das")}
}

func (t *ZapTracer) FieldStarted(field string) {
	t.logger.Debug("field extraction started", zap.String("field", field))
}

func (t *ZapTracer) RuleMatched(field string, ruleIndex int, kind das.RuleKind, value string) {
	t.logger.Debug("rule matched",
		zap.String("field", field),
		zap.Int("rule", ruleIndex),
		zap.Stringer("kind", kind),
		zap.String("value", value))
}

func (t *ZapTracer) FieldResolved(field string, value string, found bool) {
	t.logger.Debug("field resolved",
		zap.String("field", field),
		zap.String("value", value),
		zap.Bool("found", found))
}
